package lowering

import (
	"github.com/tsonic-lang/tsonic-core/internal/ir"
	"github.com/tsonic-lang/tsonic-core/internal/syntax"
	"github.com/tsonic-lang/tsonic-core/internal/typesystem"
)

// resolveType converts a captured type annotation into a bound IR type:
// type_from_syntax (§4.2.1) followed by binding-registry resolution of
// any bare reference name the binding manifest declares externally
// (§3.1 "A reference with a resolved external qualified name is
// considered bound"). A name resolving to neither a binding, a local
// declaration, nor a type parameter is left unbound for the soundness
// gate to flag later (§4.5).
func (l *Lowerer) resolveType(te *syntax.TypeExpr) ir.Type {
	t := typesystem.TypeFromSyntax(te)
	return l.bindReferences(t)
}

func (l *Lowerer) bindReferences(t ir.Type) ir.Type {
	switch v := t.(type) {
	case *ir.Reference:
		if v.Bound() {
			return v
		}
		if len(v.TypeArgs) == 0 && l.typeParamInScope(v.Name) {
			return ir.TypeParameter{Name: v.Name}
		}
		cp := *v
		if bt, ok := l.Bindings.GetType(v.Name); ok {
			cp.ResolvedExternal = bt.External
		}
		args := make([]ir.Type, len(v.TypeArgs))
		for i, a := range v.TypeArgs {
			args[i] = l.bindReferences(a)
		}
		cp.TypeArgs = args
		return &cp
	case *ir.Array:
		return &ir.Array{Element: l.bindReferences(v.Element)}
	case *ir.Tuple:
		return &ir.Tuple{Elements: l.bindReferencesAll(v.Elements)}
	case *ir.Union:
		return &ir.Union{Members: l.bindReferencesAll(v.Members)}
	case *ir.Intersection:
		return &ir.Intersection{Members: l.bindReferencesAll(v.Members)}
	case *ir.Dictionary:
		return &ir.Dictionary{Key: l.bindReferences(v.Key), Value: l.bindReferences(v.Value)}
	case *ir.Function:
		params := make([]ir.Param, len(v.Parameters))
		for i, p := range v.Parameters {
			params[i] = ir.Param{Name: p.Name, Type: l.bindReferences(p.Type)}
		}
		return &ir.Function{Parameters: params, ReturnType: l.bindReferences(v.ReturnType)}
	case *ir.Object:
		members := make([]ir.StructuralMember, len(v.Members))
		for i, m := range v.Members {
			mc := m
			if m.IsMethod {
				mc.ReturnType = l.bindReferences(m.ReturnType)
			} else {
				mc.PropType = l.bindReferences(m.PropType)
			}
			members[i] = mc
		}
		return &ir.Object{Members: members}
	default:
		return t
	}
}

func (l *Lowerer) bindReferencesAll(ts []ir.Type) []ir.Type {
	out := make([]ir.Type, len(ts))
	for i, t := range ts {
		out[i] = l.bindReferences(t)
	}
	return out
}

// Resolved reports whether name is known to the soundness gate (§4.5):
// a locally declared type, an externally bound type, or a type parameter
// currently in scope. It has no list of builtin type names, so a builtin
// name that reaches it as an unbound reference is reported as unknown;
// builtin primitives written as primitives are ir.Primitive and never
// reach it. The build command passes it to validate.NewGate as the
// Resolved callback.
func (l *Lowerer) Resolved(name string) bool {
	if _, ok := l.System.DeclIDFor(name); ok {
		return true
	}
	if _, ok := l.System.DeclIDFor(l.qualify(name)); ok {
		return true
	}
	if _, ok := l.Bindings.GetType(name); ok {
		return true
	}
	return l.typeParamInScope(name)
}
