package typesystem

import (
	"testing"

	"github.com/tsonic-lang/tsonic-core/internal/ir"
)

func TestSubstituteIdentityOnEmptySubst(t *testing.T) {
	array := &ir.Array{Element: ir.TypeParameter{Name: "T"}}
	got := Substitute(array, Subst{})
	if got != ir.Type(array) {
		t.Fatalf("expected identical pointer back for empty substitution, got different value")
	}
}

func TestSubstituteReplacesTypeParameter(t *testing.T) {
	tp := ir.TypeParameter{Name: "T"}
	s := Subst{"T": ir.Primitive{Name: ir.Number}}
	got := Substitute(tp, s)
	if got.String() != "number" {
		t.Fatalf("Substitute(T, {T: number}) = %s, want number", got.String())
	}
}

func TestSubstituteRecursesThroughArray(t *testing.T) {
	array := &ir.Array{Element: ir.TypeParameter{Name: "T"}}
	s := Subst{"T": ir.Primitive{Name: ir.StringP}}
	got := Substitute(array, s)
	gotArr, ok := got.(*ir.Array)
	if !ok {
		t.Fatalf("expected *ir.Array, got %T", got)
	}
	if gotArr.Element.String() != "string" {
		t.Fatalf("element = %s, want string", gotArr.Element.String())
	}
}

func TestSubstituteUnchangedWhenNoKeyMatches(t *testing.T) {
	union := &ir.Union{Members: []ir.Type{ir.Primitive{Name: ir.Number}, ir.Primitive{Name: ir.Null}}}
	got := Substitute(union, Subst{"T": ir.Primitive{Name: ir.Boolean}})
	if got != ir.Type(union) {
		t.Fatalf("expected same pointer when substitution doesn't apply")
	}
}

func TestSubstituteComposesTwoSubstitutions(t *testing.T) {
	ref := &ir.Reference{Name: "List", TypeArgs: []ir.Type{ir.TypeParameter{Name: "T"}}}
	first := Substitute(ref, Subst{"T": ir.TypeParameter{Name: "U"}})
	second := Substitute(first, Subst{"U": ir.Primitive{Name: ir.Number}})
	if second.String() != "List<number>" {
		t.Fatalf("composed substitution = %s, want List<number>", second.String())
	}
}
