package handle

import (
	"testing"

	"github.com/tsonic-lang/tsonic-core/internal/diag"
)

func TestRegistryDeclStability(t *testing.T) {
	r := New()
	pos := diag.Position{Line: 1, Column: 1}
	foo := r.NewDecl(DeclClass, "Foo", "app.Foo", pos, 0)
	bar := r.NewDecl(DeclFunction, "bar", "app.bar", pos, foo)

	rec, ok := r.Decl(foo)
	if !ok || rec.Name != "Foo" || rec.Kind != DeclClass {
		t.Fatalf("unexpected decl record: %+v ok=%v", rec, ok)
	}

	barRec, ok := r.Decl(bar)
	if !ok || barRec.Parent != foo {
		t.Fatalf("expected bar's parent to be foo, got %+v", barRec)
	}

	if _, ok := r.Decl(999); ok {
		t.Fatal("expected lookup miss for unknown id")
	}
}

func TestRegistrySignaturesAttachToOwner(t *testing.T) {
	r := New()
	pos := diag.Position{Line: 2}
	fn := r.NewDecl(DeclFunction, "select", "app.select", pos, 0)
	sig1 := r.AddSignature(fn, []string{"T", "R"}, pos)
	sig2 := r.AddSignature(fn, []string{"T", "R"}, pos)

	rec, _ := r.Decl(fn)
	if len(rec.Signatures) != 2 || rec.Signatures[0] != sig1 || rec.Signatures[1] != sig2 {
		t.Fatalf("expected both signatures attached in order, got %+v", rec.Signatures)
	}
}

func TestRegistryTypeSyntaxRoundTrip(t *testing.T) {
	r := New()
	id := r.CaptureTypeSyntax(diag.Position{Line: 3}, "Foo<Bar>")
	rec, ok := r.TypeSyntax(id)
	if !ok || rec.Syntax != "Foo<Bar>" {
		t.Fatalf("unexpected type syntax record: %+v", rec)
	}
}
