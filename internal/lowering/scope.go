// Package lowering converts internal/ast and internal/syntax trees into
// internal/ir, threading internal/typesystem queries through member access
// and call expressions the way the core's frontend lowering stage (C5) is
// specified to.
package lowering

import (
	"github.com/tsonic-lang/tsonic-core/internal/handle"
	"github.com/tsonic-lang/tsonic-core/internal/ir"
)

// funcInfo is a callable symbol's signature, used both for free functions
// and for arrow functions bound to a `const`.
type funcInfo struct {
	typeParams []string
	params     []ir.Param
	modes      []ir.ParamMode
	ret        ir.Type
	sigID      handle.SignatureId
}

// symbol is one lexically-scoped binding.
type symbol struct {
	declID handle.DeclId
	typ    ir.Type
	fn     *funcInfo // non-nil when the binding names a callable
}

// scope is one lexical block; lookup walks outward through parents.
type scope struct {
	parent *scope
	vars   map[string]*symbol
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, vars: make(map[string]*symbol)}
}

func (s *scope) define(name string, sym *symbol) {
	s.vars[name] = sym
}

func (s *scope) lookup(name string) (*symbol, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if sym, ok := cur.vars[name]; ok {
			return sym, true
		}
	}
	return nil, false
}
