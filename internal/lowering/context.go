package lowering

import (
	"github.com/tsonic-lang/tsonic-core/internal/ast"
	"github.com/tsonic-lang/tsonic-core/internal/binding"
	"github.com/tsonic-lang/tsonic-core/internal/diag"
	"github.com/tsonic-lang/tsonic-core/internal/handle"
	"github.com/tsonic-lang/tsonic-core/internal/ir"
	"github.com/tsonic-lang/tsonic-core/internal/typesystem"
)

// Lowerer is the frontend lowering stage's per-compile state (C5, §4.3):
// the handle/binding/type-system registries it reads and writes, the
// current lexical scope, and the diagnostics every query reports into.
// One Lowerer lowers one Program's worth of modules; nothing here is
// shared across compiles (§5).
type Lowerer struct {
	Handles  *handle.Registry
	Bindings *binding.Registry
	System   *typesystem.System
	Diags    *diag.Collector

	namespace      string
	file           string
	moduleDecl     handle.DeclId
	scope          *scope
	classDecl      handle.DeclId // enclosing class, 0 outside one
	inGenerator    bool
	typeParamStack [][]string
	declIDs        map[ast.Stmt]handle.DeclId
	funcInfos      map[*ast.FunctionDecl]*funcInfo
}

// pushTypeParams enters a new type-parameter scope (a function/class/
// interface/alias's own formals), used by Resolved to recognize `T` as
// known rather than an unresolved reference (§4.5).
func (l *Lowerer) pushTypeParams(names []string) {
	l.typeParamStack = append(l.typeParamStack, names)
}

func (l *Lowerer) popTypeParams() {
	l.typeParamStack = l.typeParamStack[:len(l.typeParamStack)-1]
}

func (l *Lowerer) typeParamInScope(name string) bool {
	for _, frame := range l.typeParamStack {
		for _, p := range frame {
			if p == name {
				return true
			}
		}
	}
	return false
}

// New returns a Lowerer over a fresh handle registry and type system,
// reporting diagnostics into diags. bindings may be nil when no sidecar
// manifest was loaded for this compile.
func New(bindings *binding.Registry, diags *diag.Collector) *Lowerer {
	handles := handle.New()
	if bindings == nil {
		bindings = binding.New()
	}
	return &Lowerer{
		Handles:  handles,
		Bindings: bindings,
		System:   typesystem.NewSystem(handles),
		Diags:     diags,
		declIDs:   make(map[ast.Stmt]handle.DeclId),
		funcInfos: make(map[*ast.FunctionDecl]*funcInfo),
	}
}

// LowerModule lowers one parsed source file into an IR module (§3.5,
// §4.3). namespace is the module's derived namespace (root namespace +
// file-path-derived segment, computed by the caller per §3.5).
func (l *Lowerer) LowerModule(prog *ast.Program, namespace string) *ir.Module {
	l.namespace = namespace
	l.file = prog.File
	l.scope = newScope(nil)
	l.moduleDecl = l.Handles.NewDecl(handle.DeclVariable, "<module>", namespace, diag.Position{}, 0)
	l.System.RegisterType(namespace, l.moduleDecl)

	// Pass 1: hoist every top-level declaration's handle, nominal-env
	// entry, and catalog signature so forward references (a function
	// calling a sibling declared later in the file, a class extending one
	// declared after it) resolve during pass 2 (§5 "Ordering": statement
	// order is source order, but declarations are mutually visible).
	// Names are created first, then wired (extends/implements/signatures),
	// since wiring one declaration may need another's name to already
	// exist.
	for _, s := range prog.Statements {
		l.declareName(s, prog.File)
	}
	for _, s := range prog.Statements {
		l.wireDecl(s, prog.File)
	}

	body := make([]ir.Stmt, 0, len(prog.Statements))
	for _, s := range prog.Statements {
		if lowered := l.lowerStmt(s); lowered != nil {
			body = append(body, lowered)
		}
	}

	return &ir.Module{FilePath: prog.File, Namespace: namespace, Body: body}
}

func (l *Lowerer) pos(p ast.Pos, file string) diag.Position {
	return diag.Position{File: file, Line: p.Line, Column: p.Column}
}

// qualify builds a namespace-qualified name for a top-level declaration,
// the name recorded as handle.DeclRecord.Qualified and registered with the
// type system for reference-name lookups (§4.2.2 step 2).
func (l *Lowerer) qualify(name string) string {
	if l.namespace == "" {
		return name
	}
	return l.namespace + "." + name
}
