package typesystem

import "github.com/tsonic-lang/tsonic-core/internal/ir"

// Bindings accumulates the type-parameter assignments unify discovers. A
// type parameter bound twice to different concrete types is a conflict —
// callers surface that as a diagnostic rather than silently widening
// (§4.2.4 "never silently widened").
type Bindings map[string]ir.Type

// unifyConflict names the type parameter that received two incompatible
// bindings. ResolveCall does not read it; its failure reports only the
// index of the parameter that did not unify.
type unifyConflict struct {
	Param string
	First ir.Type
	Second ir.Type
}

func (c *unifyConflict) Error() string {
	return "conflicting binding for type parameter " + c.Param
}

// Unify matches formal against actual, recording type-parameter bindings
// into out. It succeeds only when the two types' kinds match exactly,
// modulo formal being (or containing, at the top level) a bare type
// parameter. When formal is a union or intersection that mentions a type
// parameter anywhere inside it, Unify refuses outright rather than
// guessing which branch the parameter should bind against (§4.2.5,
// §4.2.4 "Unification rule for unions/intersections").
func Unify(formal, actual ir.Type, out Bindings) bool {
	if formal == nil || actual == nil {
		return false
	}
	if tp, ok := formal.(ir.TypeParameter); ok {
		return bindParam(tp.Name, actual, out)
	}
	switch f := formal.(type) {
	case *ir.Union:
		if containsTypeParameter(f) {
			return false
		}
		return formal.Kind() == actual.Kind()
	case *ir.Intersection:
		if containsTypeParameter(f) {
			return false
		}
		return formal.Kind() == actual.Kind()
	}

	if formal.Kind() != actual.Kind() {
		return false
	}

	switch f := formal.(type) {
	case ir.Primitive:
		a := actual.(ir.Primitive)
		return f.Name == a.Name
	case *ir.Reference:
		a, ok := actual.(*ir.Reference)
		if !ok || f.Name != a.Name || len(f.TypeArgs) != len(a.TypeArgs) {
			return false
		}
		for i := range f.TypeArgs {
			if !Unify(f.TypeArgs[i], a.TypeArgs[i], out) {
				return false
			}
		}
		return true
	case *ir.Array:
		a, ok := actual.(*ir.Array)
		return ok && Unify(f.Element, a.Element, out)
	case *ir.Tuple:
		a, ok := actual.(*ir.Tuple)
		if !ok || len(f.Elements) != len(a.Elements) {
			return false
		}
		for i := range f.Elements {
			if !Unify(f.Elements[i], a.Elements[i], out) {
				return false
			}
		}
		return true
	case *ir.Dictionary:
		a, ok := actual.(*ir.Dictionary)
		return ok && Unify(f.Key, a.Key, out) && Unify(f.Value, a.Value, out)
	case *ir.Function:
		a, ok := actual.(*ir.Function)
		if !ok || len(f.Parameters) != len(a.Parameters) {
			return false
		}
		for i := range f.Parameters {
			if !Unify(f.Parameters[i].Type, a.Parameters[i].Type, out) {
				return false
			}
		}
		return Unify(f.ReturnType, a.ReturnType, out)
	default:
		// Literal, Any, Unknown, Void, Never, Object: equal kind suffices,
		// no recursive structure to descend into for unification purposes.
		return true
	}
}

func bindParam(name string, actual ir.Type, out Bindings) bool {
	if existing, ok := out[name]; ok {
		return sameType(existing, actual)
	}
	out[name] = actual
	return true
}

// sameType is a shallow structural equality check used only to detect
// unify conflicts — it is intentionally stricter than type-compatibility.
func sameType(a, b ir.Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}
	return a.String() == b.String()
}

func containsTypeParameter(t ir.Type) bool {
	switch v := t.(type) {
	case ir.TypeParameter:
		return true
	case *ir.Union:
		for _, m := range v.Members {
			if containsTypeParameter(m) {
				return true
			}
		}
	case *ir.Intersection:
		for _, m := range v.Members {
			if containsTypeParameter(m) {
				return true
			}
		}
	case *ir.Array:
		return containsTypeParameter(v.Element)
	case *ir.Tuple:
		for _, e := range v.Elements {
			if containsTypeParameter(e) {
				return true
			}
		}
	case *ir.Dictionary:
		return containsTypeParameter(v.Key) || containsTypeParameter(v.Value)
	case *ir.Reference:
		for _, a := range v.TypeArgs {
			if containsTypeParameter(a) {
				return true
			}
		}
	case *ir.Function:
		for _, p := range v.Parameters {
			if containsTypeParameter(p.Type) {
				return true
			}
		}
		return containsTypeParameter(v.ReturnType)
	}
	return false
}
