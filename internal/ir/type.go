// Package ir defines the intermediate representation the tsonic core
// lowers source syntax into, type-checks, and finally hands to the C#
// emitter. Every IR node is built once during frontend lowering and is
// not rebuilt downstream; the one in-place change is the numeric proof
// pass, which attaches proofs to expressions through SetNumericProof
// (§3, §5).
package ir

// TypeKind tags the IrType sum. Pattern matching on Kind is the only
// dispatch mechanism the rest of the core uses over types (§9).
type TypeKind int

const (
	KindPrimitive TypeKind = iota
	KindLiteral
	KindReference
	KindTypeParameter
	KindArray
	KindTuple
	KindUnion
	KindIntersection
	KindDictionary
	KindFunction
	KindObject
	KindAny
	KindUnknown
	KindVoid
	KindNever
)

func (k TypeKind) String() string {
	names := [...]string{
		"primitive", "literal", "reference", "typeParameter", "array",
		"tuple", "union", "intersection", "dictionary", "function",
		"object", "any", "unknown", "void", "never",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "invalid"
}

// Type is the IrType sum (§3.1). Every variant below implements it.
//
// Leaf variants (Primitive, TypeParameter, Literal, Any, Unknown, Void,
// Never) are plain comparable values. Composite variants that carry
// slices (Reference, Array, Tuple, Union, Intersection, Dictionary,
// Function, Object) are pointers: composite values are never safe to
// compare with `==` (Go panics comparing structs holding slices), and a
// pointer gives substitute() a cheap, correct way to report "unchanged"
// by returning the same pointer (§4.2.5 "structural sharing").
type Type interface {
	Kind() TypeKind
	String() string
}

// PrimitiveName enumerates the source language's surface primitives, plus
// the CLR numeric keywords the source exposes directly (e.g. `int`,
// `long`). A Primitive carrying one of the CLR names is the *unbound*
// surface form captured straight from type syntax and stays a Primitive;
// nothing rewrites it. A bound Reference with a ResolvedExternal qualified
// name is a separate form (§3.1 invariants). Downstream passes
// must not treat Primitive(Int) and Reference("int") as interchangeable.
type PrimitiveName string

const (
	Number    PrimitiveName = "number"
	StringP   PrimitiveName = "string"
	Boolean   PrimitiveName = "boolean"
	Char      PrimitiveName = "char"
	Null      PrimitiveName = "null"
	Undefined PrimitiveName = "undefined"
	Int       PrimitiveName = "int"
	Long      PrimitiveName = "long"
	Byte      PrimitiveName = "byte"
	SByte     PrimitiveName = "sbyte"
	Short     PrimitiveName = "short"
	UShort    PrimitiveName = "ushort"
	UInt      PrimitiveName = "uint"
	ULong     PrimitiveName = "ulong"
	Float     PrimitiveName = "float"
	Double    PrimitiveName = "double"
	Decimal   PrimitiveName = "decimal"
)

// Primitive is a surface primitive type, e.g. the TypeScript `number` or
// the source's explicit `int` keyword.
type Primitive struct {
	Name PrimitiveName
}

func (Primitive) Kind() TypeKind   { return KindPrimitive }
func (p Primitive) String() string { return string(p.Name) }

// LiteralValue is the scalar payload of a Literal type: a string, float64,
// or bool, matching the source's three literal-type families.
type LiteralValue struct {
	String string
	Number float64
	Bool   bool
	IsStr  bool
	IsNum  bool
	IsBool bool
}

// Literal is a literal type such as `"ok"` or `42` used in a type position.
type Literal struct {
	Value LiteralValue
}

func (Literal) Kind() TypeKind { return KindLiteral }
func (l Literal) String() string {
	switch {
	case l.Value.IsStr:
		return "\"" + l.Value.String + "\""
	case l.Value.IsBool:
		if l.Value.Bool {
			return "true"
		}
		return "false"
	default:
		return formatFloat(l.Value.Number)
	}
}

// StructuralMember is an inline member of an Object type: either a
// property signature or a method signature (§3.1 `object`).
type StructuralMember struct {
	Name       string
	IsMethod   bool
	PropType   Type    // set when !IsMethod
	Parameters []Param // set when IsMethod
	ReturnType Type    // set when IsMethod
	Optional   bool
}

// Reference is a nominal type reference: a local name, optional type
// arguments, an optional resolved external qualified name (bound once the
// binding registry resolves it), and an optional structural block used
// for tsbindgen-style synthetic shapes (§3.1, §9 open question).
type Reference struct {
	Name             string
	TypeArgs         []Type
	ResolvedExternal string // e.g. "System.Int32"; empty means unbound
	Structural       []StructuralMember
}

func (*Reference) Kind() TypeKind { return KindReference }
func (r *Reference) String() string {
	s := r.Name
	if len(r.TypeArgs) > 0 {
		s += "<" + joinTypes(r.TypeArgs) + ">"
	}
	return s
}

// Bound reports whether this reference carries a resolved external name
// (§3.1: "A reference with a resolved external qualified name is
// considered bound").
func (r *Reference) Bound() bool { return r.ResolvedExternal != "" }

// TypeParameter is a formal type parameter, e.g. `T` in `List<T>`.
type TypeParameter struct {
	Name string
}

func (TypeParameter) Kind() TypeKind   { return KindTypeParameter }
func (t TypeParameter) String() string { return t.Name }

// Array is `T[]`.
type Array struct {
	Element Type
}

func (*Array) Kind() TypeKind   { return KindArray }
func (a *Array) String() string { return a.Element.String() + "[]" }

// Tuple is an ordered fixed-arity product type.
type Tuple struct {
	Elements []Type
}

func (*Tuple) Kind() TypeKind   { return KindTuple }
func (t *Tuple) String() string { return "[" + joinTypes(t.Elements) + "]" }

// Union is an ordered sum type, `A | B | C`.
type Union struct {
	Members []Type
}

func (*Union) Kind() TypeKind   { return KindUnion }
func (u *Union) String() string { return joinTypesSep(u.Members, " | ") }

// Intersection is `A & B & C`.
type Intersection struct {
	Members []Type
}

func (*Intersection) Kind() TypeKind   { return KindIntersection }
func (i *Intersection) String() string { return joinTypesSep(i.Members, " & ") }

// Dictionary is a computed-index map type, `{ [key: K]: V }`.
type Dictionary struct {
	Key   Type
	Value Type
}

func (*Dictionary) Kind() TypeKind { return KindDictionary }
func (d *Dictionary) String() string {
	return "{[key: " + d.Key.String() + "]: " + d.Value.String() + "}"
}

// Param is one formal parameter of a Function type.
type Param struct {
	Name string
	Type Type
}

// Function is `(params) => returnType`.
type Function struct {
	Parameters []Param
	ReturnType Type
}

func (*Function) Kind() TypeKind { return KindFunction }
func (f *Function) String() string {
	s := "("
	for i, p := range f.Parameters {
		if i > 0 {
			s += ", "
		}
		s += p.Name + ": " + p.Type.String()
	}
	return s + ") => " + f.ReturnType.String()
}

// Object is an anonymous structural type: an ordered list of property and
// method signatures.
type Object struct {
	Members []StructuralMember
}

func (*Object) Kind() TypeKind { return KindObject }
func (o *Object) String() string {
	s := "{"
	for i, m := range o.Members {
		if i > 0 {
			s += "; "
		}
		s += m.Name
	}
	return s + "}"
}

// Any, Unknown, Void, and Never are the terminal types. Any must never
// reach the emitter (soundness gate, §4.5, §8.1).
type (
	Any     struct{}
	Unknown struct{}
	Void    struct{}
	Never   struct{}
)

func (Any) Kind() TypeKind     { return KindAny }
func (Any) String() string     { return "any" }
func (Unknown) Kind() TypeKind { return KindUnknown }
func (Unknown) String() string { return "unknown" }
func (Void) Kind() TypeKind    { return KindVoid }
func (Void) String() string    { return "void" }
func (Never) Kind() TypeKind   { return KindNever }
func (Never) String() string   { return "never" }

func joinTypes(ts []Type) string { return joinTypesSep(ts, ", ") }

func joinTypesSep(ts []Type, sep string) string {
	s := ""
	for i, t := range ts {
		if i > 0 {
			s += sep
		}
		s += t.String()
	}
	return s
}
