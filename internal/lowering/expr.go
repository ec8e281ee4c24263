package lowering

import (
	"github.com/tsonic-lang/tsonic-core/internal/ast"
	"github.com/tsonic-lang/tsonic-core/internal/diag"
	"github.com/tsonic-lang/tsonic-core/internal/ir"
	"github.com/tsonic-lang/tsonic-core/internal/typesystem"
)

// lowerExpr dispatches one source expression to its IR form, resolving
// identifiers against the lexical scope and threading every type query
// through the type system as it goes (§4.3).
func (l *Lowerer) lowerExpr(e ast.Expr) ir.Expr {
	pos := l.pos(e.Pos(), l.file)
	switch v := e.(type) {
	case *ast.Literal:
		return l.lowerLiteral(v, pos)
	case *ast.Ident:
		return l.lowerIdent(v, pos)
	case *ast.ArrayLit:
		elems := make([]ir.Expr, len(v.Elements))
		for i, el := range v.Elements {
			elems[i] = l.lowerExpr(el)
		}
		elemType := arrayElementType(elems)
		return &ir.ArrayExpr{ExprBase: ir.ExprBase{NodePos: pos, Type: &ir.Array{Element: elemType}}, Elements: elems}
	case *ast.ObjectLit:
		return l.lowerObjectLit(v, pos)
	case *ast.MemberExpr:
		return l.lowerMemberAccess(v)
	case *ast.CallExpr:
		return l.lowerCall(v)
	case *ast.NewExpr:
		return l.lowerNew(v, pos)
	case *ast.UnaryExpr:
		return l.lowerUnary(v, pos)
	case *ast.UpdateExpr:
		operand := l.lowerExpr(v.Operand)
		return &ir.UpdateExpr{ExprBase: ir.ExprBase{NodePos: pos, Type: operand.InferredType()}, Operand: operand, Op: v.Op, Prefix: v.Prefix}
	case *ast.BinaryExpr:
		return l.lowerBinary(v, pos)
	case *ast.LogicalExpr:
		return l.lowerLogical(v, pos)
	case *ast.ConditionalExpr:
		then := l.lowerExpr(v.Then)
		els := l.lowerExpr(v.Else)
		return &ir.ConditionalExpr{
			ExprBase: ir.ExprBase{NodePos: pos, Type: joinBranchTypes(then.InferredType(), els.InferredType())},
			Cond:     l.lowerExpr(v.Cond), Then: then, Else: els,
		}
	case *ast.AssignmentExpr:
		target := l.lowerExpr(v.Target)
		value := l.lowerExpr(v.Value)
		return &ir.AssignmentExpr{ExprBase: ir.ExprBase{NodePos: pos, Type: target.InferredType()}, Op: v.Op, Target: target, Value: value}
	case *ast.TemplateLiteral:
		exprs := make([]ir.Expr, len(v.Expressions))
		for i, ex := range v.Expressions {
			exprs[i] = l.lowerExpr(ex)
		}
		return &ir.TemplateLiteralExpr{
			ExprBase: ir.ExprBase{NodePos: pos, Type: ir.Primitive{Name: ir.StringP}},
			Quasis:   v.Quasis, Expressions: exprs,
		}
	case *ast.SpreadExpr:
		operand := l.lowerExpr(v.Operand)
		return &ir.SpreadExpr{ExprBase: ir.ExprBase{NodePos: pos, Type: operand.InferredType()}, Operand: operand}
	case *ast.AwaitExpr:
		return l.lowerAwait(v, pos)
	case *ast.YieldExpr:
		operand := l.lowerExpr(v.Operand)
		return &ir.YieldExpr{ExprBase: ir.ExprBase{NodePos: pos, Type: ir.Void{}}, Operand: operand, Delegate: v.Delegate}
	case *ast.AsExpr:
		return l.lowerAs(v, pos)
	case *ast.ArrowFunction:
		return l.lowerLambda(v, nil)
	default:
		l.Diags.Errorf(diag.CodeUnsupportedConstruct, pos, "unsupported expression")
		return &ir.LiteralExpr{ExprBase: ir.ExprBase{NodePos: pos, Type: ir.Unknown{}}}
	}
}

func (l *Lowerer) lowerLiteral(v *ast.Literal, pos diag.Position) ir.Expr {
	val := ir.LiteralValue{String: v.Str, Number: v.Number, Bool: v.Bool}
	var t ir.Type
	switch v.Kind {
	case ast.LitNumber:
		val.IsNum = true
		t = ir.Primitive{Name: ir.Number}
	case ast.LitString:
		val.IsStr = true
		t = ir.Primitive{Name: ir.StringP}
	case ast.LitBool:
		val.IsBool = true
		t = ir.Primitive{Name: ir.Boolean}
	case ast.LitNull:
		t = ir.Primitive{Name: ir.Null}
	case ast.LitUndefined:
		t = ir.Primitive{Name: ir.Undefined}
	default:
		t = ir.Unknown{}
	}
	return &ir.LiteralExpr{ExprBase: ir.ExprBase{NodePos: pos, Type: t}, Value: val}
}

func (l *Lowerer) lowerIdent(v *ast.Ident, pos diag.Position) ir.Expr {
	if v.Name == "this" {
		var t ir.Type = ir.Unknown{}
		if l.classDecl != 0 {
			if rec, ok := l.Handles.Decl(l.classDecl); ok {
				t = &ir.Reference{Name: rec.Qualified}
			}
		}
		return &ir.ThisExpr{ExprBase: ir.ExprBase{NodePos: pos, Type: t}}
	}

	sym, ok := l.scope.lookup(v.Name)
	if !ok {
		l.Diags.Errorf(diag.CodeUnresolvedReference, pos, "%q is not defined", v.Name)
		return &ir.IdentifierExpr{ExprBase: ir.ExprBase{NodePos: pos, Type: ir.Unknown{}}, Name: v.Name}
	}
	return &ir.IdentifierExpr{ExprBase: ir.ExprBase{NodePos: pos, Type: sym.typ}, Name: v.Name, Decl: sym.declID}
}

func (l *Lowerer) lowerObjectLit(v *ast.ObjectLit, pos diag.Position) ir.Expr {
	props := make([]ir.ObjectProperty, len(v.Properties))
	members := make([]ir.StructuralMember, 0, len(v.Properties))
	for i, p := range v.Properties {
		val := l.lowerExpr(p.Value)
		props[i] = ir.ObjectProperty{Key: p.Key, Value: val, IsSpread: p.IsSpread}
		if !p.IsSpread {
			members = append(members, ir.StructuralMember{Name: p.Key, PropType: val.InferredType()})
		}
	}
	return &ir.ObjectExpr{ExprBase: ir.ExprBase{NodePos: pos, Type: &ir.Object{Members: members}}, Properties: props}
}

func (l *Lowerer) lowerNew(v *ast.NewExpr, pos diag.Position) ir.Expr {
	callee := l.lowerExpr(v.Callee)
	resultType := callee.InferredType()
	typeName := nominalTypeName(resultType)

	node := &ir.NewExpr{ExprBase: ir.ExprBase{NodePos: pos, Type: resultType}, Callee: callee, Args: make([]ir.Expr, len(v.Args))}

	declID, ok := l.System.DeclIDFor(typeName)
	if !ok {
		declID, ok = l.System.DeclIDFor(l.qualify(typeName))
	}
	if !ok {
		for i, a := range v.Args {
			node.Args[i] = l.lowerExpr(a)
		}
		return node
	}
	sig, found := l.System.LookupSignature(declID, "constructor")
	for i, a := range v.Args {
		node.Args[i] = l.lowerExpr(a)
	}
	if !found {
		return node
	}
	res := typesystem.ResolveCallFromFunctionType(&ir.Function{Parameters: sig.Parameters, ReturnType: sig.ReturnType})
	node.ParameterTypes = res.ParameterTypes
	node.ArgumentPassing = res.ParameterModes
	return node
}

func (l *Lowerer) lowerUnary(v *ast.UnaryExpr, pos diag.Position) ir.Expr {
	operand := l.lowerExpr(v.Operand)
	var t ir.Type
	switch v.Op {
	case "!", "delete":
		t = ir.Primitive{Name: ir.Boolean}
	case "typeof":
		t = ir.Primitive{Name: ir.StringP}
	case "void":
		t = ir.Void{}
	default: // unary -, +, ~
		t = operand.InferredType()
	}
	return &ir.UnaryExpr{ExprBase: ir.ExprBase{NodePos: pos, Type: t}, Op: v.Op, Operand: operand}
}

func (l *Lowerer) lowerBinary(v *ast.BinaryExpr, pos diag.Position) ir.Expr {
	left := l.lowerExpr(v.Left)
	right := l.lowerExpr(v.Right)
	var t ir.Type
	switch v.Op {
	case "==", "!=", "===", "!==", "<", "<=", ">", ">=", "in", "instanceof":
		t = ir.Primitive{Name: ir.Boolean}
	case "+":
		if isStringType(left.InferredType()) || isStringType(right.InferredType()) {
			t = ir.Primitive{Name: ir.StringP}
		} else {
			t = joinBranchTypes(left.InferredType(), right.InferredType())
		}
	default:
		t = joinBranchTypes(left.InferredType(), right.InferredType())
	}
	return &ir.BinaryExpr{ExprBase: ir.ExprBase{NodePos: pos, Type: t}, Op: v.Op, Left: left, Right: right}
}

func (l *Lowerer) lowerLogical(v *ast.LogicalExpr, pos diag.Position) ir.Expr {
	left := l.lowerExpr(v.Left)
	right := l.lowerExpr(v.Right)
	var t ir.Type
	if v.Op == "&&" || v.Op == "||" {
		t = joinBranchTypes(left.InferredType(), right.InferredType())
	} else { // ??
		t = right.InferredType()
	}
	return &ir.LogicalExpr{ExprBase: ir.ExprBase{NodePos: pos, Type: t}, Op: v.Op, Left: left, Right: right}
}

func (l *Lowerer) lowerAwait(v *ast.AwaitExpr, pos diag.Position) ir.Expr {
	operand := l.lowerExpr(v.Operand)
	t := operand.InferredType()
	// `Task<T>` awaits to T; a bare `Task` (or anything else reference-
	// shaped with no type argument) awaits to void.
	if ref, ok := t.(*ir.Reference); ok {
		if len(ref.TypeArgs) == 1 {
			t = ref.TypeArgs[0]
		} else {
			t = ir.Void{}
		}
	}
	return &ir.AwaitExpr{ExprBase: ir.ExprBase{NodePos: pos, Type: t}, Operand: operand}
}

// lowerAs classifies an `as`-cast per §4.4: a numeric target makes this a
// narrowing node for the numeric proof pass to attach proof to later; an
// `as unknown` target makes it erasable (§4.6); `as? T` is a safe cast;
// everything else is a plain type assertion.
func (l *Lowerer) lowerAs(v *ast.AsExpr, pos diag.Position) ir.Expr {
	operand := l.lowerExpr(v.Operand)
	target := l.resolveType(v.Type)

	if v.AsKind == ast.AsSafeCast {
		return &ir.TryCastExpr{ExprBase: ir.ExprBase{NodePos: pos, Type: target}, Operand: operand}
	}
	if v.AsKind == ast.AsUnknown {
		return &ir.AsInterfaceExpr{ExprBase: ir.ExprBase{NodePos: pos, Type: target}, Operand: operand}
	}
	if isNumericKindType(target) {
		return &ir.NumericNarrowingExpr{ExprBase: ir.ExprBase{NodePos: pos, Type: target}, Operand: operand}
	}
	return &ir.TypeAssertionExpr{ExprBase: ir.ExprBase{NodePos: pos, Type: target}, Operand: operand}
}

func isNumericKindType(t ir.Type) bool {
	p, ok := t.(ir.Primitive)
	if !ok {
		return false
	}
	switch p.Name {
	case ir.Int, ir.Long, ir.Byte, ir.SByte, ir.Short, ir.UShort, ir.UInt, ir.ULong, ir.Float, ir.Double, ir.Decimal:
		return true
	default:
		return false
	}
}

func isStringType(t ir.Type) bool {
	p, ok := t.(ir.Primitive)
	return ok && p.Name == ir.StringP
}

// joinBranchTypes is the deterministic fallback used wherever this stand-in
// frontend needs "a single type for two branches" outside the numeric
// proof pass's own join rule (§4.4, "binary-join"): identical types collapse
// to themselves, anything else widens to Unknown rather than guessing.
func joinBranchTypes(a, b ir.Type) ir.Type {
	if sameTypeShallow(a, b) {
		return a
	}
	return ir.Unknown{}
}

func sameTypeShallow(a, b ir.Type) bool {
	if a == nil || b == nil {
		return false
	}
	return a.String() == b.String()
}

func arrayElementType(elems []ir.Expr) ir.Type {
	if len(elems) == 0 {
		return ir.Unknown{}
	}
	first := elems[0].InferredType()
	for _, e := range elems[1:] {
		if !sameTypeShallow(e.InferredType(), first) {
			return ir.Unknown{}
		}
	}
	return first
}
