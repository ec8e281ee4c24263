package typesystem

import (
	"github.com/tsonic-lang/tsonic-core/internal/ir"
	"github.com/tsonic-lang/tsonic-core/internal/syntax"
)

// TypeFromSyntax converts a captured type annotation into an IR type
// (type_from_syntax, used by type_of_decl, §4.2.1). It performs no
// binding-registry resolution itself — a Reference produced here is
// unbound until the binding layer attaches a ResolvedExternal name.
func TypeFromSyntax(te *syntax.TypeExpr) ir.Type {
	if te == nil {
		return ir.Unknown{}
	}
	switch te.Kind {
	case syntax.TypeExprName:
		if len(te.TypeArgs) == 0 {
			if p, ok := primitiveByName(te.Name); ok {
				return p
			}
		}
		args := make([]ir.Type, len(te.TypeArgs))
		for i, a := range te.TypeArgs {
			args[i] = TypeFromSyntax(a)
		}
		return &ir.Reference{Name: te.Name, TypeArgs: args}
	case syntax.TypeExprArray:
		return &ir.Array{Element: TypeFromSyntax(te.Element)}
	case syntax.TypeExprTuple:
		elems := make([]ir.Type, len(te.Elements))
		for i, e := range te.Elements {
			elems[i] = TypeFromSyntax(e)
		}
		return &ir.Tuple{Elements: elems}
	case syntax.TypeExprUnion:
		members := make([]ir.Type, len(te.Members))
		for i, m := range te.Members {
			members[i] = TypeFromSyntax(m)
		}
		return &ir.Union{Members: members}
	case syntax.TypeExprIntersection:
		members := make([]ir.Type, len(te.Members))
		for i, m := range te.Members {
			members[i] = TypeFromSyntax(m)
		}
		return &ir.Intersection{Members: members}
	case syntax.TypeExprFunction:
		params := make([]ir.Param, len(te.Params))
		for i, p := range te.Params {
			params[i] = ir.Param{Name: p.Name, Type: TypeFromSyntax(p.Type)}
		}
		return &ir.Function{Parameters: params, ReturnType: TypeFromSyntax(te.Return)}
	case syntax.TypeExprObject:
		members := make([]ir.StructuralMember, len(te.Params))
		for i, f := range te.Params {
			if f.IsMethod {
				members[i] = ir.StructuralMember{Name: f.Name, IsMethod: true, ReturnType: TypeFromSyntax(f.Type), Optional: f.Optional}
			} else {
				members[i] = ir.StructuralMember{Name: f.Name, PropType: TypeFromSyntax(f.Type), Optional: f.Optional}
			}
		}
		return &ir.Object{Members: members}
	case syntax.TypeExprDictionary:
		return &ir.Dictionary{Key: TypeFromSyntax(te.Key), Value: TypeFromSyntax(te.Value)}
	case syntax.TypeExprLiteral:
		return ir.Literal{Value: ir.LiteralValue{
			String: te.LitString,
			Number: te.LitNumber,
			Bool:   te.LitBool,
			IsStr:  te.LitIsStr,
			IsNum:  !te.LitIsStr && !te.LitIsBool,
			IsBool: te.LitIsBool,
		}}
	case syntax.TypeExprAny:
		return ir.Any{}
	case syntax.TypeExprUnknown:
		return ir.Unknown{}
	case syntax.TypeExprVoid:
		return ir.Void{}
	case syntax.TypeExprNever:
		return ir.Never{}
	default:
		return ir.Unknown{}
	}
}

func primitiveByName(name string) (ir.Primitive, bool) {
	switch ir.PrimitiveName(name) {
	case ir.Number, ir.StringP, ir.Boolean, ir.Char, ir.Null, ir.Undefined,
		ir.Int, ir.Long, ir.Byte, ir.SByte, ir.Short, ir.UShort, ir.UInt,
		ir.ULong, ir.Float, ir.Double, ir.Decimal:
		return ir.Primitive{Name: ir.PrimitiveName(name)}, true
	default:
		return ir.Primitive{}, false
	}
}
