package emitter

import (
	"testing"

	"github.com/tsonic-lang/tsonic-core/internal/handle"
	"github.com/tsonic-lang/tsonic-core/internal/ir"
)

func intIdent(name string, decl handle.DeclId) *ir.IdentifierExpr {
	return &ir.IdentifierExpr{ExprBase: ir.ExprBase{Type: ir.Primitive{Name: ir.Int}}, Name: name, Decl: decl}
}

func nullableIntIdent(name string, decl handle.DeclId) *ir.IdentifierExpr {
	nullable := &ir.Union{Members: []ir.Type{ir.Primitive{Name: ir.Int}, ir.Primitive{Name: ir.Null}}}
	return &ir.IdentifierExpr{ExprBase: ir.ExprBase{Type: nullable}, Name: name, Decl: decl}
}

func stringIdent(name string, decl handle.DeclId) *ir.IdentifierExpr {
	return &ir.IdentifierExpr{ExprBase: ir.ExprBase{Type: ir.Primitive{Name: ir.StringP}}, Name: name, Decl: decl}
}

func doubleIdent(name string, decl handle.DeclId) *ir.IdentifierExpr {
	return &ir.IdentifierExpr{ExprBase: ir.ExprBase{Type: ir.Primitive{Name: ir.Double}}, Name: name, Decl: decl}
}

func anyIdent(name string, decl handle.DeclId) *ir.IdentifierExpr {
	return &ir.IdentifierExpr{ExprBase: ir.ExprBase{Type: ir.Any{}}, Name: name, Decl: decl}
}

func TestNumericNarrowingFromLiteral(t *testing.T) {
	e := newEmitter()
	lit := &ir.LiteralExpr{ExprBase: ir.ExprBase{Type: ir.Primitive{Name: ir.Number}}, Value: ir.LiteralValue{IsNum: true, Number: 42}}
	narrow := &ir.NumericNarrowingExpr{ExprBase: ir.ExprBase{Type: ir.Primitive{Name: ir.Int}}, Operand: lit}
	narrow.SetNumericProof(&ir.NumericProof{Kind: ir.KInt32, Source: ir.ProofFromLiteral})

	got := e.emitExpr(narrow)
	if _, isCast := got.(*Cast); isCast {
		t.Fatalf("a literal-proven narrowing should emit the literal directly, got %#v", got)
	}
	if lit2, ok := got.(*Literal); !ok || lit2.Text != "42" {
		t.Fatalf("expected literal 42, got %#v", got)
	}
}

func TestNumericNarrowingFromExpression(t *testing.T) {
	e := newEmitter()
	id := intIdent("n", 1)
	id.Type = ir.Primitive{Name: ir.Number}
	narrow := &ir.NumericNarrowingExpr{ExprBase: ir.ExprBase{Type: ir.Primitive{Name: ir.Int}}, Operand: id}
	narrow.SetNumericProof(&ir.NumericProof{Kind: ir.KInt32, Source: ir.ProofFromNarrowing})

	got, ok := e.emitExpr(narrow).(*Cast)
	if !ok {
		t.Fatalf("expected a Cast, got %#v", e.emitExpr(narrow))
	}
	if got.Type != "int" {
		t.Errorf("cast type = %q, want int", got.Type)
	}
}

func TestNumericNarrowingMissingProofPanics(t *testing.T) {
	e := newEmitter()
	id := intIdent("n", 1)
	narrow := &ir.NumericNarrowingExpr{ExprBase: ir.ExprBase{Type: ir.Primitive{Name: ir.Int}}, Operand: id}
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected an ICE panic for a narrowing with no proof attached")
		}
	}()
	e.emitExpr(narrow)
}

func TestCoerceNullableUnwrap(t *testing.T) {
	e := newEmitter()
	src := nullableIntIdent("n", 1)
	got := e.coerceToExpectedType(src, ir.Primitive{Name: ir.Int})
	access, ok := got.(*NullableValueAccess)
	if !ok {
		t.Fatalf("expected NullableValueAccess, got %#v", got)
	}
	if _, ok := access.Expr.(*Ident); !ok {
		t.Errorf("expected the unwrapped inner expression to be the identifier, got %#v", access.Expr)
	}
}

func TestCoerceNullableUnwrapSkippedWhenNarrowed(t *testing.T) {
	e := newEmitter()
	src := nullableIntIdent("n", 7)
	e.narrowed[7] = true
	got := e.coerceToExpectedType(src, ir.Primitive{Name: ir.Int})
	if _, ok := got.(*NullableValueAccess); ok {
		t.Fatalf("a narrowed binding should not be unwrapped, got %#v", got)
	}
}

func TestCoerceNullableUnwrapSkippedForCoalesce(t *testing.T) {
	e := newEmitter()
	nullable := nullableIntIdent("n", 1)
	coalesce := &ir.LogicalExpr{ExprBase: ir.ExprBase{Type: ir.Primitive{Name: ir.Int}}, Op: "??", Left: nullable, Right: &ir.LiteralExpr{
		ExprBase: ir.ExprBase{Type: ir.Primitive{Name: ir.Int}}, Value: ir.LiteralValue{IsNum: true, Number: 0},
	}}
	got := e.coerceToExpectedType(coalesce, ir.Primitive{Name: ir.Int})
	if _, ok := got.(*NullableValueAccess); ok {
		t.Fatalf("a ?? composite already produces non-null, should not be unwrapped, got %#v", got)
	}
}

func TestVoidExpressionStatementDiscard(t *testing.T) {
	e := newEmitter()
	id := intIdent("x", 1)
	voidExpr := &ir.UnaryExpr{ExprBase: ir.ExprBase{Type: ir.Void{}}, Op: "void", Operand: id}
	stmt := &ir.ExpressionStmt{Expr: voidExpr}

	var out []Stmt
	e.emitStmtInto(stmt, &out)
	if len(out) != 1 {
		t.Fatalf("expected one statement, got %d", len(out))
	}
	exprStmt, ok := out[0].(*ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt, got %#v", out[0])
	}
	assign, ok := exprStmt.Expr.(*Assignment)
	if !ok || assign.Op != "=" {
		t.Fatalf("expected a discard assignment, got %#v", exprStmt.Expr)
	}
	if _, ok := assign.Target.(*Discard); !ok {
		t.Fatalf("expected discard target, got %#v", assign.Target)
	}
}

func TestVoidExpressionStatementBareCall(t *testing.T) {
	e := newEmitter()
	call := &ir.CallExpr{ExprBase: ir.ExprBase{Type: ir.Void{}}, Callee: intIdent("f", 1)}
	voidExpr := &ir.UnaryExpr{ExprBase: ir.ExprBase{Type: ir.Void{}}, Op: "void", Operand: call}
	stmt := &ir.ExpressionStmt{Expr: voidExpr}

	var out []Stmt
	e.emitStmtInto(stmt, &out)
	if len(out) != 1 {
		t.Fatalf("expected one statement, got %d", len(out))
	}
	exprStmt, ok := out[0].(*ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt, got %#v", out[0])
	}
	if _, ok := exprStmt.Expr.(*Invocation); !ok {
		t.Fatalf("a call is already a valid statement-expression, expected it emitted bare, got %#v", exprStmt.Expr)
	}
}

func TestReturnInVoidLoweringProducesTwoStatements(t *testing.T) {
	e := newEmitter()
	call := &ir.CallExpr{ExprBase: ir.ExprBase{Type: ir.Void{}}, Callee: intIdent("f", 1)}
	stmt := &ir.ReturnStmt{Expr: call}

	var out []Stmt
	e.emitStmtInto(stmt, &out)
	if len(out) != 2 {
		t.Fatalf("expected two statements for return-in-void lowering, got %d", len(out))
	}
	if _, ok := out[0].(*ExprStmt); !ok {
		t.Errorf("first statement should be the evaluated call, got %#v", out[0])
	}
	ret, ok := out[1].(*Return)
	if !ok || ret.Expr != nil {
		t.Errorf("second statement should be a bare return, got %#v", out[1])
	}
}

func TestBooleanContextNumericCoercion(t *testing.T) {
	e := newEmitter()
	got, ok := e.emitBooleanContext(intIdent("a", 1)).(*Binary)
	if !ok || got.Op != "!=" {
		t.Fatalf("expected `!= 0` coercion, got %#v", e.emitBooleanContext(intIdent("a", 1)))
	}
	if lit, ok := got.Right.(*Literal); !ok || lit.Text != "0" {
		t.Errorf("expected comparison against 0, got %#v", got.Right)
	}
}

func TestBooleanContextStringNonEmpty(t *testing.T) {
	e := newEmitter()
	got, ok := e.emitBooleanContext(stringIdent("s", 1)).(*Binary)
	if !ok || got.Op != "!=" {
		t.Fatalf("expected a `!= 0` Binary over .Length, got %#v", e.emitBooleanContext(stringIdent("s", 1)))
	}
	access, ok := got.Left.(*MemberAccess)
	if !ok || access.Name != "Length" {
		t.Fatalf("expected a .Length member access, got %#v", got.Left)
	}
	if lit, ok := got.Right.(*Literal); !ok || lit.Text != "0" {
		t.Errorf("expected comparison against 0, got %#v", got.Right)
	}
}

func TestBooleanContextFloatingExcludesNaN(t *testing.T) {
	e := newEmitter()
	got, ok := e.emitBooleanContext(doubleIdent("d", 1)).(*Binary)
	if !ok || got.Op != "&&" {
		t.Fatalf("expected a && Binary conjoining the != 0 and !IsNaN checks, got %#v", e.emitBooleanContext(doubleIdent("d", 1)))
	}
	cmp, ok := got.Left.(*Binary)
	if !ok || cmp.Op != "!=" {
		t.Fatalf("expected `!= 0` as the left conjunct, got %#v", got.Left)
	}
	notNaN, ok := got.Right.(*Unary)
	if !ok || notNaN.Op != "!" {
		t.Fatalf("expected a negated IsNaN check as the right conjunct, got %#v", got.Right)
	}
	call, ok := notNaN.Operand.(*Invocation)
	if !ok {
		t.Fatalf("expected an IsNaN invocation, got %#v", notNaN.Operand)
	}
	callee, ok := call.Callee.(*MemberAccess)
	if !ok || callee.Name != "IsNaN" {
		t.Fatalf("expected double.IsNaN, got %#v", call.Callee)
	}
	if recv, ok := callee.Receiver.(*Ident); !ok || recv.Name != "double" {
		t.Errorf("expected the double.IsNaN qualifier, got %#v", callee.Receiver)
	}
}

func TestBooleanContextUnknownAnyPatternSwitch(t *testing.T) {
	e := newEmitter()
	got, ok := e.emitBooleanContext(anyIdent("v", 1)).(*TruthySwitch)
	if !ok {
		t.Fatalf("expected a TruthySwitch for an any-typed operand, got %#v", e.emitBooleanContext(anyIdent("v", 1)))
	}
	if _, ok := got.Operand.(*Ident); !ok {
		t.Errorf("expected the operand evaluated once as the switch governing expression, got %#v", got.Operand)
	}
}

func TestBooleanContextLogicalParenthesizesOr(t *testing.T) {
	e := newEmitter()
	a, b, c := intIdent("a", 1), intIdent("b", 2), intIdent("c", 3)
	or := &ir.LogicalExpr{ExprBase: ir.ExprBase{Type: ir.Primitive{Name: ir.Boolean}}, Op: "||", Left: a, Right: b}
	and := &ir.LogicalExpr{ExprBase: ir.ExprBase{Type: ir.Primitive{Name: ir.Boolean}}, Op: "&&", Left: or, Right: c}

	got, ok := e.emitLogical(and).(*Binary)
	if !ok || got.Op != "&&" {
		t.Fatalf("expected a && Binary, got %#v", e.emitLogical(and))
	}
	inner, ok := got.Left.(*Binary)
	if !ok || inner.Op != "||" || !inner.Parenthesize {
		t.Fatalf("nested || under && must be parenthesized, got %#v", got.Left)
	}
}

func TestPushNarrowingFromCond(t *testing.T) {
	e := newEmitter()
	id := nullableIntIdent("n", 1)
	cond := &ir.BinaryExpr{
		ExprBase: ir.ExprBase{Type: ir.Primitive{Name: ir.Boolean}},
		Op:       "!=",
		Left:     id,
		Right:    &ir.LiteralExpr{ExprBase: ir.ExprBase{Type: ir.Primitive{Name: ir.Null}}, Value: ir.LiteralValue{}},
	}
	if e.narrowed[1] {
		t.Fatal("binding should not be narrowed before the check")
	}
	restore := e.pushNarrowingFromCond(cond)
	if !e.narrowed[1] {
		t.Fatal("binding should be narrowed inside the then-branch")
	}
	restore()
	if e.narrowed[1] {
		t.Fatal("narrowing should be undone after leaving the then-branch")
	}
}
