package validate

import (
	"testing"

	"github.com/tsonic-lang/tsonic-core/internal/diag"
	"github.com/tsonic-lang/tsonic-core/internal/ir"
)

func noneKnown(string) bool { return false }
func allKnown(string) bool  { return true }

func TestGateRejectsAnyType(t *testing.T) {
	diags := diag.NewCollector()
	g := NewGate(diags, allKnown)
	decl := &ir.VariableDeclStmt{Name: "x", Type: ir.Any{}}
	g.checkStmt(decl)
	if !diags.HasErrors() {
		t.Fatal("expected an any-at-emit diagnostic")
	}
}

func TestGateRejectsUnresolvedReference(t *testing.T) {
	diags := diag.NewCollector()
	g := NewGate(diags, noneKnown)
	decl := &ir.VariableDeclStmt{Name: "x", Type: &ir.Reference{Name: "Widget"}}
	g.checkStmt(decl)
	if !diags.HasErrors() {
		t.Fatal("expected an unresolved-reference diagnostic")
	}
}

func TestGateAcceptsBoundReference(t *testing.T) {
	diags := diag.NewCollector()
	g := NewGate(diags, noneKnown)
	decl := &ir.VariableDeclStmt{Name: "x", Type: &ir.Reference{Name: "int", ResolvedExternal: "System.Int32"}}
	g.checkStmt(decl)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.All())
	}
}

func TestGateAcceptsKnownLocalReference(t *testing.T) {
	diags := diag.NewCollector()
	g := NewGate(diags, allKnown)
	decl := &ir.VariableDeclStmt{Name: "x", Type: &ir.Reference{Name: "Widget"}}
	g.checkStmt(decl)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.All())
	}
}

func TestGateFlagsRefTypedParameterWithoutMode(t *testing.T) {
	diags := diag.NewCollector()
	g := NewGate(diags, allKnown)
	fn := &ir.FunctionDeclStmt{
		Name:       "mutate",
		Parameters: []ir.Param{{Name: "x", Type: &ir.Reference{Name: "ref"}}},
		ParamModes: []ir.ParamMode{ir.ModeValue},
		ReturnType: ir.Void{},
	}
	g.checkStmt(fn)
	if !diags.HasErrors() {
		t.Fatal("expected a diagnostic for a ref-typed parameter with no explicit passing mode")
	}
}

func TestGateAcceptsRefParameterWithExplicitMode(t *testing.T) {
	diags := diag.NewCollector()
	g := NewGate(diags, allKnown)
	fn := &ir.FunctionDeclStmt{
		Name:       "mutate",
		Parameters: []ir.Param{{Name: "x", Type: ir.Primitive{Name: ir.Int}}},
		ParamModes: []ir.ParamMode{ir.ModeRef},
		ReturnType: ir.Void{},
	}
	g.checkStmt(fn)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.All())
	}
}

func TestGateRecursesIntoNestedTypes(t *testing.T) {
	diags := diag.NewCollector()
	g := NewGate(diags, noneKnown)
	decl := &ir.VariableDeclStmt{
		Name: "x",
		Type: &ir.Array{Element: &ir.Reference{Name: "Missing"}},
	}
	g.checkStmt(decl)
	if !diags.HasErrors() {
		t.Fatal("expected the gate to recurse into the array element type")
	}
}

func TestCheckModuleWalksEveryStatement(t *testing.T) {
	diags := diag.NewCollector()
	g := NewGate(diags, noneKnown)
	m := &ir.Module{
		Body: []ir.Stmt{
			&ir.VariableDeclStmt{Name: "a", Type: ir.Any{}},
			&ir.VariableDeclStmt{Name: "b", Type: &ir.Reference{Name: "Gadget"}},
		},
	}
	g.CheckModule(m)
	if len(diags.All()) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d: %v", len(diags.All()), diags.All())
	}
}
