package lowering

import (
	"github.com/tsonic-lang/tsonic-core/internal/ast"
	"github.com/tsonic-lang/tsonic-core/internal/handle"
	"github.com/tsonic-lang/tsonic-core/internal/ir"
	"github.com/tsonic-lang/tsonic-core/internal/typesystem"
)

// lowerCall executes the two-pass call-resolution protocol exactly as
// specified (§4.2.4, §4.3.2): resolve once without arg types to learn the
// formals, convert non-lambda arguments against those expected types,
// re-resolve with the concrete argument types to infer generics, convert
// lambda arguments against the newly instantiated parameter types, then
// do a final resolve with every argument type present.
func (l *Lowerer) lowerCall(c *ast.CallExpr) *ir.CallExpr {
	pos := l.pos(c.P, l.file)
	callee := l.lowerExpr(c.Callee)

	node := &ir.CallExpr{
		ExprBase: ir.ExprBase{NodePos: pos},
		Callee:   callee,
		Args:     make([]ir.Expr, len(c.Args)),
	}
	for _, ta := range c.TypeArgs {
		node.TypeArgs = append(node.TypeArgs, l.resolveType(ta))
	}

	sigID, receiverType, ok := l.resolveCallSignature(c.Callee, callee)
	if !ok {
		// §4.3.2: no signature handle resolvable — fall back to the
		// callee's own function IR type, if it has one.
		if fn, isFn := callee.InferredType().(*ir.Function); isFn {
			res := typesystem.ResolveCallFromFunctionType(fn)
			l.lowerCallArgsSimple(node, c.Args, res)
			node.ParameterTypes = res.ParameterTypes
			node.ArgumentPassing = res.ParameterModes
			node.Type = res.ReturnType
			return node
		}
		node.Type = ir.Unknown{}
		for i, a := range c.Args {
			node.Args[i] = l.lowerExpr(a)
		}
		return node
	}
	node.Signature = sigID

	req := typesystem.CallRequest{
		SigID: sigID, ArgumentCount: len(c.Args), ReceiverType: receiverType,
		ExplicitTypeArgs: node.TypeArgs,
	}
	// Pass 1: resolve with no arg types at all, to learn the formals that
	// non-lambda arguments should be converted against.
	l.System.ResolveCall(req, l.Diags, pos)

	argTypes := make([]ir.Type, len(c.Args))
	lowered := make([]ir.Expr, len(c.Args))
	for i, a := range c.Args {
		if isPlainLambda(a) {
			continue // deferred to the lambda pass below
		}
		lowered[i] = l.lowerExpr(a)
		argTypes[i] = lowered[i].InferredType()
	}

	req.ArgTypes = argTypes
	pass2 := l.System.ResolveCall(req, l.Diags, pos)

	// Convert lambda arguments next, using the newly instantiated
	// parameter types as their expected type.
	for i, a := range c.Args {
		if !isPlainLambda(a) {
			continue
		}
		var expected ir.Type
		if i < len(pass2.ParameterTypes) {
			expected = pass2.ParameterTypes[i]
		}
		lowered[i] = l.lowerLambda(a.(*ast.ArrowFunction), expected)
		argTypes[i] = lowered[i].InferredType()
	}

	req.ArgTypes = argTypes
	final := l.System.ResolveCall(req, l.Diags, pos)

	node.Args = lowered
	node.ParameterTypes = final.ParameterTypes
	node.ArgumentPassing = final.ParameterModes
	node.Narrowing = final.TypePredicate
	node.Type = final.ReturnType
	return node
}

// isPlainLambda reports whether arg is an untyped arrow function, i.e.
// one that still needs the call's generics resolved before its parameter
// types are known (§4.2.4: "Lambdas with explicit parameter or return
// annotations are treated as non-lambdas ... and skip the defer step").
func isPlainLambda(arg ast.Expr) bool {
	fn, ok := arg.(*ast.ArrowFunction)
	if !ok {
		return false
	}
	if fn.ReturnType != nil {
		return false
	}
	for _, p := range fn.Params {
		if p.Type != nil {
			return false
		}
	}
	return true
}

func (l *Lowerer) lowerLambda(fn *ast.ArrowFunction, expected ir.Type) ir.Expr {
	expectedFn, _ := expected.(*ir.Function)
	l.scope = newScope(l.scope)
	defer func() { l.scope = l.scope.parent }()

	params := make([]ir.Param, len(fn.Params))
	for i, p := range fn.Params {
		var pt ir.Type = ir.Unknown{}
		if p.Type != nil {
			pt = l.resolveType(p.Type)
		} else if expectedFn != nil && i < len(expectedFn.Parameters) {
			pt = expectedFn.Parameters[i].Type
		}
		params[i] = ir.Param{Name: p.Name, Type: pt}
		l.scope.define(p.Name, &symbol{typ: pt})
	}
	var ret ir.Type = ir.Unknown{}
	if fn.ReturnType != nil {
		ret = l.resolveType(fn.ReturnType)
	} else if expectedFn != nil {
		ret = expectedFn.ReturnType
	}

	node := &ir.ArrowFunctionExpr{
		ExprBase:   ir.ExprBase{NodePos: l.pos(fn.P, l.file)},
		Parameters: params,
		ReturnType: ret,
		IsAsync:    fn.IsAsync,
	}
	if fn.ExprBody != nil {
		node.ExprBody = l.lowerExpr(fn.ExprBody)
		// An unannotated expression body's own type is always at least as
		// precise as whatever the call site's expected-type hint supplied
		// (that hint may itself still be an unresolved type parameter, e.g.
		// `R` before the call's second pass has bound it) — so it always
		// wins here, not just when the hint was literally unknown.
		if fn.ReturnType == nil {
			ret = node.ExprBody.InferredType()
			node.ReturnType = ret
		}
	} else if fn.BlockBody != nil {
		node.BlockBody = l.lowerBlock(fn.BlockBody)
	}
	node.Type = &ir.Function{Parameters: params, ReturnType: ret}
	return node
}

// lowerCallArgsSimple lowers call arguments with no generics to infer —
// used by the function-IR-type fallback path (§4.3.2), which has no
// call-site generics to thread through a two-pass conversion.
func (l *Lowerer) lowerCallArgsSimple(node *ir.CallExpr, args []ast.Expr, res typesystem.CallResolution) {
	node.Args = make([]ir.Expr, len(args))
	for i, a := range args {
		if fn, ok := a.(*ast.ArrowFunction); ok && isPlainLambda(a) {
			var expected ir.Type
			if i < len(res.ParameterTypes) {
				expected = res.ParameterTypes[i]
			}
			node.Args[i] = l.lowerLambda(fn, expected)
			continue
		}
		node.Args[i] = l.lowerExpr(a)
	}
}

// resolveCallSignature finds the SignatureId call lowering needs to
// drive resolve_call, and the receiver type (for a method/member call)
// (§4.2.4 "Request"). ok is false when callee has no catalog signature
// at all — the caller falls back to the callee's bare function type.
func (l *Lowerer) resolveCallSignature(calleeAst ast.Expr, callee ir.Expr) (handle.SignatureId, ir.Type, bool) {
	switch v := calleeAst.(type) {
	case *ast.Ident:
		if sym, ok := l.scope.lookup(v.Name); ok && sym.fn != nil {
			return sym.fn.sigID, nil, true
		}
	case *ast.MemberExpr:
		m, isMember := callee.(*ir.MemberAccessExpr)
		if !isMember {
			return 0, nil, false
		}
		receiverType := m.Receiver.InferredType()
		typeName := nominalTypeName(receiverType)
		declID, ok := l.System.DeclIDFor(typeName)
		if !ok {
			return 0, receiverType, false
		}
		sig, ok := l.System.LookupSignature(declID, v.Name)
		if !ok {
			return 0, receiverType, false
		}
		return sig.ID, receiverType, true
	}
	return 0, nil, false
}
