package lowering

import (
	"testing"

	"github.com/tsonic-lang/tsonic-core/internal/diag"
	"github.com/tsonic-lang/tsonic-core/internal/ir"
	"github.com/tsonic-lang/tsonic-core/internal/parser"
)

// TestTwoPassLambdaInference drives the two-pass call-resolution protocol
// (§4.2.4/§4.3.2) over a generic higher-order call whose lambda argument
// carries no type annotations at all: `T` must be inferred from the
// array argument in the first real pass, and the lambda's own return
// type - not the call's still-unbound `R` - must win the second pass, so
// that the final resolve instantiates `R` to a concrete type rather than
// leaving it an unresolved type parameter.
func TestTwoPassLambdaInference(t *testing.T) {
	src := `
function select<T, R>(xs: T[], f: (x: T) => R): R[] {
	return xs;
}
const xs: number[] = [1, 2, 3];
const doubled = select(xs, x => x * 2);
`
	prog, diags := parser.Parse("t.ts", src)
	if diags.HasErrors() {
		t.Fatalf("parser errors: %v", diags.All())
	}

	diags = diag.NewCollector()
	l := New(nil, diags)
	module := l.LowerModule(prog, "Test")
	if diags.HasErrors() {
		t.Fatalf("lowering errors: %v", diags.All())
	}

	decl, ok := module.Body[2].(*ir.VariableDeclStmt)
	if !ok {
		t.Fatalf("statement 2 is %T, want *ir.VariableDeclStmt", module.Body[2])
	}
	call, ok := decl.Init.(*ir.CallExpr)
	if !ok {
		t.Fatalf("doubled's initializer is %T, want *ir.CallExpr", decl.Init)
	}

	// R must have resolved to a concrete array-of-number, not stayed an
	// unresolved type parameter.
	arr, ok := call.InferredType().(*ir.Array)
	if !ok {
		t.Fatalf("call's return type is %T (%s), want *ir.Array", call.InferredType(), call.InferredType().String())
	}
	if _, isTypeParam := arr.Element.(ir.TypeParameter); isTypeParam {
		t.Fatalf("call's return element type is still an unresolved type parameter %s", arr.Element.String())
	}
	if arr.Element.String() != "number" {
		t.Errorf("call's return element type = %s, want number", arr.Element.String())
	}

	// The lambda argument's own inferred return type must match - it must
	// not have been permanently fixed to the call's first-pass R hint.
	lambda, ok := call.Args[1].(*ir.ArrowFunctionExpr)
	if !ok {
		t.Fatalf("second argument is %T, want *ir.ArrowFunctionExpr", call.Args[1])
	}
	if _, isTypeParam := lambda.ReturnType.(ir.TypeParameter); isTypeParam {
		t.Fatalf("lambda's return type is still an unresolved type parameter %s", lambda.ReturnType.String())
	}
	if lambda.ReturnType.String() != "number" {
		t.Errorf("lambda's return type = %s, want number", lambda.ReturnType.String())
	}
	if len(lambda.Parameters) != 1 || lambda.Parameters[0].Type.String() != "number" {
		t.Errorf("lambda's parameter type = %+v, want a single number parameter", lambda.Parameters)
	}
}

// TestTwoPassLambdaInferenceExplicitAnnotationSkipsDefer covers the
// `isPlainLambda` exception (§4.2.4): a lambda with an explicit parameter
// annotation is treated as a non-lambda argument and converted in the
// first real pass rather than deferred, so its parameter type comes from
// its own annotation, not the call's inferred formal.
func TestTwoPassLambdaInferenceExplicitAnnotationSkipsDefer(t *testing.T) {
	src := `
function select<T, R>(xs: T[], f: (x: T) => R): R[] {
	return xs;
}
const xs: number[] = [1, 2, 3];
const doubled = select(xs, (x: number) => x * 2);
`
	prog, diags := parser.Parse("t.ts", src)
	if diags.HasErrors() {
		t.Fatalf("parser errors: %v", diags.All())
	}

	diags = diag.NewCollector()
	l := New(nil, diags)
	module := l.LowerModule(prog, "Test")
	if diags.HasErrors() {
		t.Fatalf("lowering errors: %v", diags.All())
	}

	decl := module.Body[2].(*ir.VariableDeclStmt)
	call := decl.Init.(*ir.CallExpr)
	arr, ok := call.InferredType().(*ir.Array)
	if !ok || arr.Element.String() != "number" {
		t.Fatalf("call's return type = %v, want number[]", call.InferredType())
	}
}
