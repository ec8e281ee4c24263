package emitter

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

func TestPrintModuleSnapshot(t *testing.T) {
	file := &File{
		Usings: []string{"System", "System.Collections.Generic"},
		Namespace: &NamespaceDecl{
			Name: "Acme.Widgets",
			Types: []TypeDecl{
				&ClassDecl{
					Name: "Counter",
					Members: []MemberDecl{
						&FieldDecl{Name: "Count", Type: "int"},
						&MethodDecl{
							Name:       "Increment",
							ReturnType: "void",
							Body: &Block{Statements: []Stmt{
								&ExprStmt{Expr: &Assignment{Op: "+=", Target: &Ident{Name: "Count"}, Value: &Literal{Text: "1"}}},
							}},
						},
					},
				},
			},
		},
	}

	snaps.MatchSnapshot(t, "counter_class", Print(file))
}

func TestPrintIfStatementBraces(t *testing.T) {
	file := &File{Namespace: &NamespaceDecl{Name: "N", Types: []TypeDecl{
		&ClassDecl{Name: "C", Members: []MemberDecl{
			&MethodDecl{Name: "M", ReturnType: "void", Body: &Block{Statements: []Stmt{
				&If{
					Cond: &Binary{Op: "!=", Left: &Ident{Name: "x"}, Right: &Literal{Text: "0"}},
					Then: &Return{},
				},
			}}},
		}},
	}}}

	out := Print(file)
	if !strings.Contains(out, "if (x != 0)") {
		t.Fatalf("expected the condition to print bare, got:\n%s", out)
	}
	if !strings.Contains(out, "{") || !strings.Contains(out, "return;") {
		t.Fatalf("expected the single-statement then-branch wrapped in braces, got:\n%s", out)
	}
}

func TestPrintNullableValueAccess(t *testing.T) {
	p := NewPrinter(Options{})
	got := p.printExpr(&NullableValueAccess{Expr: &Ident{Name: "n"}})
	if got != "n.Value" {
		t.Errorf("printExpr(NullableValueAccess) = %q, want %q", got, "n.Value")
	}
}

func TestPrintParenthesizedOrUnderAnd(t *testing.T) {
	p := NewPrinter(Options{})
	inner := &Binary{Op: "||", Left: &Ident{Name: "a"}, Right: &Ident{Name: "b"}, Parenthesize: true}
	outer := &Binary{Op: "&&", Left: inner, Right: &Ident{Name: "c"}}
	got := p.printExpr(outer)
	if got != "(a || b) && c" {
		t.Errorf("printExpr(parenthesized &&) = %q, want %q", got, "(a || b) && c")
	}
}

func TestPrintYieldExprValue(t *testing.T) {
	p := NewPrinter(Options{})
	got := p.printExpr(&YieldExprValue{Operand: &Literal{Text: "42"}})
	if got != "/* yield */ 42" {
		t.Errorf("printExpr(YieldExprValue) = %q, want %q", got, "/* yield */ 42")
	}
}

func TestPrintStackAlloc(t *testing.T) {
	p := NewPrinter(Options{})
	got := p.printExpr(&StackAlloc{ElementType: "byte", Size: &Literal{Text: "16"}})
	if got != "stackalloc byte[16]" {
		t.Errorf("printExpr(StackAlloc) = %q, want %q", got, "stackalloc byte[16]")
	}
}

func TestPrintLocalFunctionStmt(t *testing.T) {
	p := NewPrinter(Options{})
	var b strings.Builder
	p.printStmt(&b, &LocalFunctionStmt{Func: &MethodDecl{
		Name: "Helper", ReturnType: "int", Body: &Block{Statements: []Stmt{&Return{Expr: &Literal{Text: "0"}}}},
	}}, 1)
	out := b.String()
	if !strings.Contains(out, "int Helper()") {
		t.Errorf("expected a local function signature, got:\n%s", out)
	}
}
