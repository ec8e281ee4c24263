package typesystem

import (
	"testing"

	"github.com/tsonic-lang/tsonic-core/internal/ir"
)

func TestUnifyBindsTypeParameter(t *testing.T) {
	out := make(Bindings)
	ok := Unify(ir.TypeParameter{Name: "T"}, ir.Primitive{Name: ir.Number}, out)
	if !ok {
		t.Fatal("expected unify to succeed")
	}
	if out["T"].String() != "number" {
		t.Fatalf("T bound to %v, want number", out["T"])
	}
}

func TestUnifyDetectsConflict(t *testing.T) {
	out := make(Bindings)
	if !Unify(ir.TypeParameter{Name: "T"}, ir.Primitive{Name: ir.Number}, out) {
		t.Fatal("first bind should succeed")
	}
	if Unify(ir.TypeParameter{Name: "T"}, ir.Primitive{Name: ir.StringP}, out) {
		t.Fatal("second conflicting bind should fail")
	}
}

func TestUnifyRefusesUnionContainingTypeParameter(t *testing.T) {
	formal := &ir.Union{Members: []ir.Type{ir.TypeParameter{Name: "T"}, ir.Primitive{Name: ir.Null}}}
	out := make(Bindings)
	if Unify(formal, ir.Primitive{Name: ir.Number}, out) {
		t.Fatal("expected unify to refuse a union formal mentioning a type parameter")
	}
}

func TestUnifyMatchesArrayElementwise(t *testing.T) {
	formal := &ir.Array{Element: ir.TypeParameter{Name: "T"}}
	actual := &ir.Array{Element: ir.Primitive{Name: ir.StringP}}
	out := make(Bindings)
	if !Unify(formal, actual, out) {
		t.Fatal("expected array unification to succeed")
	}
	if out["T"].String() != "string" {
		t.Fatalf("T bound to %v, want string", out["T"])
	}
}

func TestUnifyFailsOnKindMismatch(t *testing.T) {
	out := make(Bindings)
	if Unify(&ir.Array{Element: ir.Primitive{Name: ir.Number}}, ir.Primitive{Name: ir.Number}, out) {
		t.Fatal("expected kind mismatch to fail unification")
	}
}

func TestUnifyReferenceTypeArgsRecurse(t *testing.T) {
	formal := &ir.Reference{Name: "List", TypeArgs: []ir.Type{ir.TypeParameter{Name: "T"}}}
	actual := &ir.Reference{Name: "List", TypeArgs: []ir.Type{ir.Primitive{Name: ir.Number}}}
	out := make(Bindings)
	if !Unify(formal, actual, out) {
		t.Fatal("expected reference unification to succeed")
	}
	if out["T"].String() != "number" {
		t.Fatalf("T bound to %v, want number", out["T"])
	}
}
