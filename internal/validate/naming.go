package validate

import (
	"unicode"

	"github.com/tsonic-lang/tsonic-core/internal/diag"
	"github.com/tsonic-lang/tsonic-core/internal/ir"
)

// TargetName computes the identifier a source-level name emits as in the
// backend AST. The default policy PascalCases every name, mirroring the
// CLR member-naming convention the binding manifest already assumes
// (§4.7). Two source names distinct under the source language's rules can
// still collide once folded through this policy (e.g. "foo" and "Foo"
// both target "Foo"), which is exactly the case NamingPass exists to
// catch before the emitter ever sees it.
func TargetName(name string) string {
	if name == "" {
		return name
	}
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// NamingPass is the C6 naming-collision check (§4.7): for every scope it
// considers, two distinct original names must never compute the same
// TargetName.
type NamingPass struct {
	diags *diag.Collector
}

// NewNamingPass returns a NamingPass reporting into diags.
func NewNamingPass(diags *diag.Collector) *NamingPass {
	return &NamingPass{diags: diags}
}

// scopeChecker accumulates (original name, position) pairs for one naming
// scope and flags any TargetName collision once the scope is complete.
type scopeChecker struct {
	seen map[string]string // target -> first original seen
}

func newScopeChecker() *scopeChecker { return &scopeChecker{seen: make(map[string]string)} }

func (p *NamingPass) add(sc *scopeChecker, original string, pos diag.Position) {
	if original == "" {
		return
	}
	target := TargetName(original)
	if prior, exists := sc.seen[target]; exists {
		if prior != original {
			p.diags.Errorf(diag.CodeNamingCollision, pos,
				"%q and %q both target the identifier %q", prior, original, target)
		}
		return
	}
	sc.seen[target] = original
}

// CheckModule runs every naming scope the policy considers over m (§4.7):
// module values, namespace types, each class/interface's own members,
// each enum's own members, and each object-type alias's own members.
func (p *NamingPass) CheckModule(m *ir.Module) {
	values := newScopeChecker()
	types := newScopeChecker()
	p.add(types, m.Namespace, diag.Position{})

	for _, s := range m.Body {
		switch v := s.(type) {
		case *ir.FunctionDeclStmt:
			p.add(values, v.Name, v.Pos())
		case *ir.VariableDeclStmt:
			p.add(values, v.Name, v.Pos())
		case *ir.ClassDeclStmt:
			p.add(types, v.Name, v.Pos())
			p.checkMemberScope(v.Name, v.Members, v.Pos())
		case *ir.InterfaceDeclStmt:
			p.add(types, v.Name, v.Pos())
			p.checkStructuralScope(v.Members, v.Pos())
		case *ir.EnumDeclStmt:
			p.add(types, v.Name, v.Pos())
			p.checkEnumScope(v.Members, v.Pos())
		case *ir.TypeAliasStmt:
			p.add(types, v.Name, v.Pos())
			if obj, ok := v.Aliased.(*ir.Object); ok {
				p.checkStructuralScope(obj.Members, v.Pos())
			}
		}
	}
}

func (p *NamingPass) checkMemberScope(ownerName string, members []ir.ClassMember, pos diag.Position) {
	sc := newScopeChecker()
	for _, m := range members {
		p.add(sc, m.Name, pos)
	}
}

func (p *NamingPass) checkStructuralScope(members []ir.StructuralMember, pos diag.Position) {
	sc := newScopeChecker()
	for _, m := range members {
		p.add(sc, m.Name, pos)
	}
}

func (p *NamingPass) checkEnumScope(members []ir.EnumMember, pos diag.Position) {
	sc := newScopeChecker()
	for _, m := range members {
		p.add(sc, m.Name, pos)
	}
}
