package emitter

import (
	"strings"

	"github.com/tsonic-lang/tsonic-core/internal/ir"
)

// clrKeywords maps the source's explicit CLR numeric/primitive
// keywords to their C# surface spelling. The two coincide for every entry
// except boolean, which C# spells bool; the table keeps renderType from
// silently drifting if either vocabulary changes.
var clrKeywords = map[ir.PrimitiveName]string{
	ir.Int: "int", ir.Long: "long", ir.Byte: "byte", ir.SByte: "sbyte",
	ir.Short: "short", ir.UShort: "ushort", ir.UInt: "uint", ir.ULong: "ulong",
	ir.Float: "float", ir.Double: "double", ir.Decimal: "decimal",
	ir.Boolean: "bool", ir.Char: "char", ir.StringP: "string",
}

// clrValueTypeNames is the set of ResolvedExternal qualified names that
// denote a CLR value type, used for a Reference that the binding registry
// has bound to one of them (§3.1 invariants).
var clrValueTypeNames = map[string]bool{
	"System.Int32": true, "System.Int64": true, "System.Byte": true, "System.SByte": true,
	"System.Int16": true, "System.UInt16": true, "System.UInt32": true, "System.UInt64": true,
	"System.Single": true, "System.Double": true, "System.Decimal": true,
	"System.Boolean": true, "System.Char": true,
}

// renderType maps an ir.Type to its C# surface spelling (§4.6). It never
// returns an error: a type the soundness gate should have already refused
// (ir.Any reaching here) renders as "object" rather than panicking, since
// renderType is a pure helper that may run before the gate in debug
// dumps.
func (e *Emitter) renderType(t ir.Type) string {
	switch v := t.(type) {
	case ir.Primitive:
		if s, ok := clrKeywords[v.Name]; ok {
			return s
		}
		if v.Name == ir.Null || v.Name == ir.Undefined {
			return "object"
		}
		return "double" // unbound `number` with no narrower proof
	case ir.Literal:
		switch {
		case v.Value.IsStr:
			return "string"
		case v.Value.IsBool:
			return "bool"
		default:
			return "double"
		}
	case *ir.Reference:
		name := v.Name
		if v.Bound() {
			name = v.ResolvedExternal
		}
		if len(v.TypeArgs) == 0 {
			return name
		}
		args := make([]string, len(v.TypeArgs))
		for i, a := range v.TypeArgs {
			args[i] = e.renderType(a)
		}
		return name + "<" + strings.Join(args, ", ") + ">"
	case ir.TypeParameter:
		return v.Name
	case *ir.Array:
		return e.renderType(v.Element) + "[]"
	case *ir.Tuple:
		parts := make([]string, len(v.Elements))
		for i, el := range v.Elements {
			parts[i] = e.renderType(el)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *ir.Union:
		if inner, ok := isNullableUnion(t); ok {
			rendered := e.renderType(inner)
			if isClrValueType(inner) {
				return rendered + "?"
			}
			return rendered
		}
		// A union with no single nullable shape has no direct CLR
		// representation in the subset this emitter targets; the closest
		// approximation is its first member, which the soundness gate
		// has already constrained to a single practical case in practice
		// (the nullable-union shape above).
		if len(v.Members) > 0 {
			return e.renderType(v.Members[0])
		}
		return "object"
	case *ir.Intersection:
		for _, m := range v.Members {
			if !isErasableMarker(m) {
				return e.renderType(m)
			}
		}
		if len(v.Members) > 0 {
			return e.renderType(v.Members[0])
		}
		return "object"
	case *ir.Dictionary:
		return "Dictionary<" + e.renderType(v.Key) + ", " + e.renderType(v.Value) + ">"
	case *ir.Function:
		params := make([]string, len(v.Parameters))
		for i, p := range v.Parameters {
			params[i] = e.renderType(p.Type)
		}
		if _, isVoid := v.ReturnType.(ir.Void); isVoid {
			if len(params) == 0 {
				return "Action"
			}
			return "Action<" + strings.Join(params, ", ") + ">"
		}
		all := append(params, e.renderType(v.ReturnType))
		return "Func<" + strings.Join(all, ", ") + ">"
	case *ir.Object:
		return "object"
	case ir.Any, ir.Unknown:
		return "object"
	case ir.Void, ir.Never:
		return "void"
	default:
		return "object"
	}
}

// isErasableMarker reports whether m is one of the synthetic
// `ExtensionMethods<...>`/`__Ext_*` intersection members erasable
// assertions surface (§4.6 "erasable assertions"); these never get their
// own C# type, so renderType and intersection rendering skip them.
func isErasableMarker(m ir.Type) bool {
	ref, ok := m.(*ir.Reference)
	if !ok {
		return false
	}
	return ref.Name == "ExtensionMethods" || strings.HasPrefix(ref.Name, "__Ext_")
}

// isNullableUnion reports whether t is exactly `T | null`, `T | undefined`,
// or `T | null | undefined` for a single non-null member T, returning T.
func isNullableUnion(t ir.Type) (ir.Type, bool) {
	u, ok := t.(*ir.Union)
	if !ok {
		return nil, false
	}
	var real ir.Type
	sawNullish := false
	for _, m := range u.Members {
		if p, isPrim := m.(ir.Primitive); isPrim && (p.Name == ir.Null || p.Name == ir.Undefined) {
			sawNullish = true
			continue
		}
		if real != nil {
			return nil, false // more than one real member: not a simple nullable shape
		}
		real = m
	}
	if real == nil || !sawNullish {
		return nil, false
	}
	return real, true
}

// isClrValueType reports whether t denotes a non-nullable CLR value type:
// a primitive numeric/bool/char keyword, or a bound Reference resolved to
// one of the corresponding boxed CLR struct names (§4.6 "Nullable
// value-type unwrapping").
func isClrValueType(t ir.Type) bool {
	switch v := t.(type) {
	case ir.Primitive:
		_, ok := clrKeywords[v.Name]
		return ok && v.Name != ir.StringP
	case *ir.Reference:
		return v.Bound() && clrValueTypeNames[v.ResolvedExternal]
	default:
		return false
	}
}

// isNumericClrType reports whether t is one of the CLR numeric keywords,
// used by boolean-context coercion (§4.6 "Boolean coercion").
func isNumericClrType(t ir.Type) bool {
	switch v := t.(type) {
	case ir.Primitive:
		switch v.Name {
		case ir.Int, ir.Long, ir.Byte, ir.SByte, ir.Short, ir.UShort, ir.UInt, ir.ULong, ir.Float, ir.Double, ir.Decimal, ir.Number:
			return true
		default:
			return false
		}
	case *ir.Reference:
		if !v.Bound() {
			return false
		}
		switch v.ResolvedExternal {
		case "System.Int32", "System.Int64", "System.Byte", "System.SByte", "System.Int16", "System.UInt16",
			"System.UInt32", "System.UInt64", "System.Single", "System.Double", "System.Decimal":
			return true
		default:
			return false
		}
	default:
		return false
	}
}

// isFloatingClrType reports whether t is a CLR floating-point kind, for
// which boolean-context coercion must also exclude NaN (§4.6 "Boolean
// coercion"): JS/TS truthiness treats NaN as falsy, but `NaN != 0` is
// `true` in C#, so `!= 0` alone is not enough for a floating operand.
func isFloatingClrType(t ir.Type) bool {
	switch v := t.(type) {
	case ir.Primitive:
		return v.Name == ir.Float || v.Name == ir.Double || v.Name == ir.Number
	case *ir.Reference:
		return v.Bound() && (v.ResolvedExternal == "System.Single" || v.ResolvedExternal == "System.Double")
	default:
		return false
	}
}

// floatKeyword returns the C# floating-point keyword matching t, used to
// qualify the `IsNaN` call boolean coercion emits for a floating operand.
func floatKeyword(t ir.Type) string {
	switch v := t.(type) {
	case ir.Primitive:
		if v.Name == ir.Float {
			return "float"
		}
	case *ir.Reference:
		if v.Bound() && v.ResolvedExternal == "System.Single" {
			return "float"
		}
	}
	return "double"
}

// isStringClrType reports whether t is the string primitive or a string
// literal type, used by boolean-context coercion's non-empty check.
func isStringClrType(t ir.Type) bool {
	switch v := t.(type) {
	case ir.Primitive:
		return v.Name == ir.StringP
	case ir.Literal:
		return v.Value.IsStr
	default:
		return false
	}
}

// isDynamicBooleanType reports whether t gives boolean-context coercion
// no single static CLR shape to key off: `any`/`unknown`, a structural
// object type, or a union that isn't the simple nullable shape
// isNullableUnion recognizes. These fall back to a runtime pattern-match
// switch (§4.6 "Boolean coercion").
func isDynamicBooleanType(t ir.Type) bool {
	switch t.(type) {
	case ir.Any, ir.Unknown, *ir.Object:
		return true
	case *ir.Union:
		_, nullable := isNullableUnion(t)
		return !nullable
	default:
		return false
	}
}
