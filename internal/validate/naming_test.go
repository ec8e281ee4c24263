package validate

import (
	"testing"

	"github.com/tsonic-lang/tsonic-core/internal/diag"
	"github.com/tsonic-lang/tsonic-core/internal/ir"
)

func TestTargetNamePascalCases(t *testing.T) {
	cases := map[string]string{"foo": "Foo", "Bar": "Bar", "": ""}
	for in, want := range cases {
		if got := TargetName(in); got != want {
			t.Errorf("TargetName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNamingPassFlagsModuleValueCollision(t *testing.T) {
	diags := diag.NewCollector()
	p := NewNamingPass(diags)
	m := &ir.Module{
		Body: []ir.Stmt{
			&ir.FunctionDeclStmt{Name: "foo"},
			&ir.VariableDeclStmt{Name: "Foo"},
		},
	}
	p.CheckModule(m)
	if !diags.HasErrors() {
		t.Fatal("expected a naming collision between \"foo\" and \"Foo\"")
	}
}

func TestNamingPassAllowsDistinctTargets(t *testing.T) {
	diags := diag.NewCollector()
	p := NewNamingPass(diags)
	m := &ir.Module{
		Body: []ir.Stmt{
			&ir.FunctionDeclStmt{Name: "foo"},
			&ir.VariableDeclStmt{Name: "bar"},
		},
	}
	p.CheckModule(m)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.All())
	}
}

func TestNamingPassFlagsClassMemberCollision(t *testing.T) {
	diags := diag.NewCollector()
	p := NewNamingPass(diags)
	m := &ir.Module{
		Body: []ir.Stmt{
			&ir.ClassDeclStmt{
				Name: "Widget",
				Members: []ir.ClassMember{
					{Name: "count"},
					{Name: "Count"},
				},
			},
		},
	}
	p.CheckModule(m)
	if !diags.HasErrors() {
		t.Fatal("expected a class-member naming collision")
	}
}

func TestNamingPassScopesMembersPerClass(t *testing.T) {
	diags := diag.NewCollector()
	p := NewNamingPass(diags)
	m := &ir.Module{
		Body: []ir.Stmt{
			&ir.ClassDeclStmt{Name: "A", Members: []ir.ClassMember{{Name: "value"}}},
			&ir.ClassDeclStmt{Name: "B", Members: []ir.ClassMember{{Name: "value"}}},
		},
	}
	p.CheckModule(m)
	if diags.HasErrors() {
		t.Fatalf("same member name across two distinct classes must not collide: %v", diags.All())
	}
}

func TestNamingPassFlagsEnumMemberCollision(t *testing.T) {
	diags := diag.NewCollector()
	p := NewNamingPass(diags)
	m := &ir.Module{
		Body: []ir.Stmt{
			&ir.EnumDeclStmt{
				Name:    "Color",
				Members: []ir.EnumMember{{Name: "red"}, {Name: "Red"}},
			},
		},
	}
	p.CheckModule(m)
	if !diags.HasErrors() {
		t.Fatal("expected an enum-member naming collision")
	}
}

func TestNamingPassFlagsObjectTypeAliasMemberCollision(t *testing.T) {
	diags := diag.NewCollector()
	p := NewNamingPass(diags)
	m := &ir.Module{
		Body: []ir.Stmt{
			&ir.TypeAliasStmt{
				Name: "Point",
				Aliased: &ir.Object{Members: []ir.StructuralMember{
					{Name: "x", PropType: ir.Primitive{Name: ir.Number}},
					{Name: "X", PropType: ir.Primitive{Name: ir.Number}},
				}},
			},
		},
	}
	p.CheckModule(m)
	if !diags.HasErrors() {
		t.Fatal("expected an object-type-alias member naming collision")
	}
}

func TestNamingPassFlagsNamespaceTypeCollision(t *testing.T) {
	diags := diag.NewCollector()
	p := NewNamingPass(diags)
	m := &ir.Module{
		Body: []ir.Stmt{
			&ir.ClassDeclStmt{Name: "widget"},
			&ir.InterfaceDeclStmt{Name: "Widget"},
		},
	}
	p.CheckModule(m)
	if !diags.HasErrors() {
		t.Fatal("expected a namespace-type naming collision between a class and an interface")
	}
}
