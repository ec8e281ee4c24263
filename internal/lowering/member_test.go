package lowering

import (
	"testing"

	"github.com/tsonic-lang/tsonic-core/internal/ast"
	"github.com/tsonic-lang/tsonic-core/internal/binding"
	"github.com/tsonic-lang/tsonic-core/internal/diag"
	"github.com/tsonic-lang/tsonic-core/internal/ir"
)

func sampleBindingManifest() binding.Manifest {
	return binding.Manifest{
		Assembly: "System.Linq",
		Namespaces: []binding.NamespaceEntry{
			{Name: "systemLinq", Alias: "System.Linq", Types: []string{"enumerable"}},
		},
		Types: []binding.TypeEntry{
			{Name: "Enumerable", Alias: "Enumerable", Kind: binding.TypeClass, Members: []string{"select"}},
		},
		Members: []binding.MemberEntry{
			{
				Kind: binding.MemberMethod, Name: "select",
				Binding: binding.ExternalBinding{Assembly: "System.Linq", Type: "Enumerable", Member: "Select"},
			},
		},
	}
}

// TestResolveMemberBindingInstanceAccess covers step 4 of the member-access
// resolution protocol (§4.1): a receiver with no namespace/type shortcut
// falls back to its nominal type name.
func TestResolveMemberBindingInstanceAccess(t *testing.T) {
	l := New(binding.Load(sampleBindingManifest()), diag.NewCollector())

	m := &ast.MemberExpr{Receiver: &ast.Ident{Name: "xs"}, Name: "select"}
	recvType := &ir.Reference{Name: "Enumerable"}

	got := l.resolveMemberBinding(m, recvType)
	if got == nil {
		t.Fatalf("expected a resolved binding, got nil")
	}
	if got.Type != "Enumerable" || got.Member != "Select" {
		t.Errorf("got binding %+v, want Enumerable.Select", got)
	}
}

// TestResolveMemberBindingNamespaceTypeReferenceIsNotAMember covers step 1
// of the protocol: a receiver naming a namespace, accessing one of that
// namespace's declared types, is a type reference rather than a member
// access and resolves to no binding at all.
func TestResolveMemberBindingNamespaceTypeReferenceIsNotAMember(t *testing.T) {
	l := New(binding.Load(sampleBindingManifest()), diag.NewCollector())

	m := &ast.MemberExpr{Receiver: &ast.Ident{Name: "systemLinq"}, Name: "enumerable"}
	got := l.resolveMemberBinding(m, &ir.Reference{Name: "whatever"})
	if got != nil {
		t.Errorf("expected nil binding for a namespace.type reference, got %+v", got)
	}
}

// TestResolveMemberBindingUnboundReceiverYieldsNoBinding covers an
// unresolved (Unknown-typed) receiver, whose nominal type name is empty
// per nominalTypeName's default case.
func TestResolveMemberBindingUnboundReceiverYieldsNoBinding(t *testing.T) {
	l := New(binding.Load(sampleBindingManifest()), diag.NewCollector())

	m := &ast.MemberExpr{Receiver: &ast.Ident{Name: "xs"}, Name: "select"}
	got := l.resolveMemberBinding(m, ir.Unknown{})
	if got != nil {
		t.Errorf("expected nil binding for an unresolved receiver type, got %+v", got)
	}
}

// TestMemberAccessReceiverLoweredOnce is a regression test for the
// double-lowering bug resolveMemberBinding used to have: it re-lowered
// m.Receiver from the AST to get its type, instead of reusing the type
// lowerMemberAccess already computed lowering it once. A receiver with
// lowering-time side effects - here, a call to an undefined function,
// which reports one diagnostic while lowering its callee identifier -
// must only have that side effect happen once per member access.
func TestMemberAccessReceiverLoweredOnce(t *testing.T) {
	diags := diag.NewCollector()
	l := New(nil, diags)
	l.scope = newScope(nil)

	receiver := &ast.CallExpr{Callee: &ast.Ident{Name: "undefinedFn"}}
	m := &ast.MemberExpr{Receiver: receiver, Name: "toString"}

	l.lowerMemberAccess(m)

	// Two diagnostics are expected from a single lowering of the receiver:
	// one from lowering the undefined callee identifier, one from
	// TypeOfMember rejecting the resulting Unknown-typed receiver. A third
	// (a repeated "undefined" diagnostic) would mean resolveMemberBinding
	// re-lowered m.Receiver from the AST instead of reusing receiver's
	// already-computed type.
	if n := len(diags.All()); n != 2 {
		t.Fatalf("got %d diagnostics lowering the receiver, want exactly 2 (receiver must be lowered once, not twice): %v", n, diags.All())
	}
}
