package typesystem

import "github.com/tsonic-lang/tsonic-core/internal/ir"

// Subst maps a type-parameter (or bare reference) name to its replacement
// type. Substitute only replaces names that appear as keys — anything
// else flows through unchanged, which is what lets callers share
// structure instead of deep-copying (§4.2.5).
type Subst map[string]ir.Type

// Substitute replaces typeParameter nodes and bare reference names that
// appear as keys in s. It returns t unchanged (same value/pointer) when no
// substitution applies anywhere in the tree, satisfying the substitution-
// identity invariant (§8.1): Substitute(t, Subst{}) behaves as identity.
func Substitute(t ir.Type, s Subst) ir.Type {
	if len(s) == 0 || t == nil {
		return t
	}
	switch v := t.(type) {
	case ir.TypeParameter:
		if rep, ok := s[v.Name]; ok {
			return rep
		}
		return t
	case *ir.Reference:
		if rep, ok := s[v.Name]; ok && len(v.TypeArgs) == 0 {
			return rep
		}
		if len(v.TypeArgs) == 0 {
			return t
		}
		args, changed := substituteAll(v.TypeArgs, s)
		if !changed {
			return t
		}
		cp := *v
		cp.TypeArgs = args
		return &cp
	case *ir.Array:
		elem := Substitute(v.Element, s)
		if elem == v.Element {
			return t
		}
		return &ir.Array{Element: elem}
	case *ir.Tuple:
		elems, changed := substituteAll(v.Elements, s)
		if !changed {
			return t
		}
		return &ir.Tuple{Elements: elems}
	case *ir.Union:
		members, changed := substituteAll(v.Members, s)
		if !changed {
			return t
		}
		return &ir.Union{Members: members}
	case *ir.Intersection:
		members, changed := substituteAll(v.Members, s)
		if !changed {
			return t
		}
		return &ir.Intersection{Members: members}
	case *ir.Dictionary:
		key := Substitute(v.Key, s)
		val := Substitute(v.Value, s)
		if key == v.Key && val == v.Value {
			return t
		}
		return &ir.Dictionary{Key: key, Value: val}
	case *ir.Function:
		params := make([]ir.Param, len(v.Parameters))
		changed := false
		for i, p := range v.Parameters {
			np := Substitute(p.Type, s)
			params[i] = ir.Param{Name: p.Name, Type: np}
			if np != p.Type {
				changed = true
			}
		}
		ret := Substitute(v.ReturnType, s)
		if !changed && ret == v.ReturnType {
			return t
		}
		return &ir.Function{Parameters: params, ReturnType: ret}
	case *ir.Object:
		members := make([]ir.StructuralMember, len(v.Members))
		changed := false
		for i, m := range v.Members {
			nm := m
			if !m.IsMethod {
				nm.PropType = Substitute(m.PropType, s)
				if nm.PropType != m.PropType {
					changed = true
				}
			} else {
				nm.ReturnType = Substitute(m.ReturnType, s)
				if nm.ReturnType != m.ReturnType {
					changed = true
				}
			}
			members[i] = nm
		}
		if !changed {
			return t
		}
		return &ir.Object{Members: members}
	default:
		// Leaf terminals (Primitive, Literal, Any, Unknown, Void, Never)
		// carry no type parameters to substitute.
		return t
	}
}

// substituteAll substitutes every element and reports whether any of them
// actually changed, so callers can preserve identity when nothing moved.
func substituteAll(ts []ir.Type, s Subst) ([]ir.Type, bool) {
	out := make([]ir.Type, len(ts))
	changed := false
	for i, t := range ts {
		out[i] = Substitute(t, s)
		if out[i] != t {
			changed = true
		}
	}
	return out, changed
}
