package numeric

import (
	"testing"

	"github.com/tsonic-lang/tsonic-core/internal/diag"
	"github.com/tsonic-lang/tsonic-core/internal/ir"
)

func numLit(n float64) *ir.LiteralExpr {
	return &ir.LiteralExpr{Value: ir.LiteralValue{Number: n, IsNum: true}}
}

func TestProveLiteralDefaultsToInt32WithinRange(t *testing.T) {
	p := NewPass(diag.NewCollector())
	proof := p.ProveExpr(numLit(42))
	if proof == nil || proof.Kind != ir.KInt32 {
		t.Fatalf("expected Int32 proof, got %v", proof)
	}
}

func TestProveLiteralFractionalIsDouble(t *testing.T) {
	p := NewPass(diag.NewCollector())
	proof := p.ProveExpr(numLit(3.14))
	if proof == nil || proof.Kind != ir.KDouble {
		t.Fatalf("expected Double proof, got %v", proof)
	}
}

func TestProveLiteralBeyondInt32IsInt64(t *testing.T) {
	p := NewPass(diag.NewCollector())
	proof := p.ProveExpr(numLit(9999999999))
	if proof == nil || proof.Kind != ir.KInt64 {
		t.Fatalf("expected Int64 proof, got %v", proof)
	}
}

func int32Type() ir.Type { return ir.Primitive{Name: ir.Int} }
func int64Type() ir.Type { return ir.Primitive{Name: ir.Long} }
func byteType() ir.Type  { return ir.Primitive{Name: ir.Byte} }

func TestNarrowingAtMaxSafeIntegerSucceeds(t *testing.T) {
	diags := diag.NewCollector()
	p := NewPass(diags)
	narrowing := &ir.NumericNarrowingExpr{
		ExprBase: ir.ExprBase{Type: int64Type()},
		Operand:  numLit(maxSafeInteger),
	}
	proof := p.ProveExpr(narrowing)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.All())
	}
	if proof == nil || proof.Kind != ir.KInt64 {
		t.Fatalf("expected Int64 proof at MAX_SAFE_INTEGER, got %v", proof)
	}
}

func TestNarrowingBeyondMaxSafeIntegerFails(t *testing.T) {
	diags := diag.NewCollector()
	p := NewPass(diags)
	narrowing := &ir.NumericNarrowingExpr{
		ExprBase: ir.ExprBase{Type: int64Type()},
		Operand:  numLit(maxSafeInteger + 1),
	}
	p.ProveExpr(narrowing)
	if !diags.HasErrors() {
		t.Fatal("expected an unsafe-integer diagnostic")
	}
}

func TestInt32RangeBoundary(t *testing.T) {
	cases := []struct {
		value   float64
		wantErr bool
	}{
		{2147483647, false},
		{2147483648, true},
	}
	for _, c := range cases {
		diags := diag.NewCollector()
		p := NewPass(diags)
		narrowing := &ir.NumericNarrowingExpr{
			ExprBase: ir.ExprBase{Type: int32Type()},
			Operand:  numLit(c.value),
		}
		p.ProveExpr(narrowing)
		if diags.HasErrors() != c.wantErr {
			t.Errorf("value %v: HasErrors() = %v, want %v", c.value, diags.HasErrors(), c.wantErr)
		}
	}
}

func TestByteRangeBoundary(t *testing.T) {
	cases := []struct {
		value   float64
		wantErr bool
	}{
		{255, false},
		{256, true},
	}
	for _, c := range cases {
		diags := diag.NewCollector()
		p := NewPass(diags)
		narrowing := &ir.NumericNarrowingExpr{
			ExprBase: ir.ExprBase{Type: byteType()},
			Operand:  numLit(c.value),
		}
		p.ProveExpr(narrowing)
		if diags.HasErrors() != c.wantErr {
			t.Errorf("value %v: HasErrors() = %v, want %v", c.value, diags.HasErrors(), c.wantErr)
		}
	}
}

func TestFloatLiteralNarrowedToIntegerRejected(t *testing.T) {
	diags := diag.NewCollector()
	p := NewPass(diags)
	narrowing := &ir.NumericNarrowingExpr{
		ExprBase: ir.ExprBase{Type: int32Type()},
		Operand:  numLit(3.5),
	}
	p.ProveExpr(narrowing)
	if !diags.HasErrors() {
		t.Fatal("expected a diagnostic narrowing a float literal to an integer type")
	}
}

func TestBinaryJoinWidensToInt64(t *testing.T) {
	p := NewPass(diag.NewCollector())
	left := numLit(1)
	right := &ir.NumericNarrowingExpr{ExprBase: ir.ExprBase{Type: int64Type()}, Operand: numLit(2)}
	bin := &ir.BinaryExpr{Op: "+", Left: left, Right: right}
	proof := p.ProveExpr(bin)
	if proof == nil || proof.Kind != ir.KInt64 {
		t.Fatalf("expected join to widen to Int64, got %v", proof)
	}
}

func TestNarrowingJoinBroaderThanTargetIsUnprovable(t *testing.T) {
	diags := diag.NewCollector()
	p := NewPass(diags)
	left := &ir.NumericNarrowingExpr{ExprBase: ir.ExprBase{Type: int64Type()}, Operand: numLit(1)}
	right := numLit(2)
	bin := &ir.BinaryExpr{Op: "+", Left: left, Right: right}
	narrowToInt32 := &ir.NumericNarrowingExpr{ExprBase: ir.ExprBase{Type: int32Type()}, Operand: bin}

	p.ProveExpr(narrowToInt32)
	if !diags.HasErrors() {
		t.Fatal("expected narrowing an Int64 join down to Int32 to be unprovable")
	}
}

func TestIndexedAccessRequiresInt32Proof(t *testing.T) {
	diags := diag.NewCollector()
	p := NewPass(diags)
	access := &ir.MemberAccessExpr{
		Receiver:   &ir.IdentifierExpr{Name: "arr"},
		Computed:   numLit(3.5),
		AccessKind: ir.AccessCLRIndexer,
	}
	p.ProveExpr(access)
	if !diags.HasErrors() {
		t.Fatal("expected a diagnostic for a non-Int32 indexer access")
	}
}

func TestIndexedAccessWithInt32LiteralSucceeds(t *testing.T) {
	diags := diag.NewCollector()
	p := NewPass(diags)
	access := &ir.MemberAccessExpr{
		Receiver:   &ir.IdentifierExpr{Name: "arr"},
		Computed:   numLit(0),
		AccessKind: ir.AccessCLRIndexer,
	}
	p.ProveExpr(access)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.All())
	}
}

func TestVariableDeclProofPropagatesToIdentifier(t *testing.T) {
	p := NewPass(diag.NewCollector())

	decl := ir.VariableDeclStmt{Decl: 1, Name: "i", Init: numLit(0)}
	p.ProveStmt(&decl)

	ident := &ir.IdentifierExpr{Name: "i", Decl: 1}
	proof := p.ProveExpr(ident)
	if proof == nil || proof.Kind != ir.KInt32 {
		t.Fatalf("expected i to inherit Int32 proof, got %v", proof)
	}
}
