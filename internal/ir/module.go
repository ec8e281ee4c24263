package ir

// ImportSpecifier is one named (or default/namespace) binding pulled in
// by a Module's import.
type ImportSpecifier struct {
	Imported string // name as exported by the source module
	Local    string // local binding name
}

// Import is one `import { ... } from "path"` statement.
type Import struct {
	FromPath    string
	Specifiers  []ImportSpecifier
	IsNamespace bool // `import * as ns from "path"`
}

// Export is one exported local binding.
type Export struct {
	Local    string
	Exported string
}

// Module is one source file's lowered IR (§3.5).
type Module struct {
	FilePath  string
	Namespace string
	Imports   []Import
	Body      []Stmt
	Exports   []Export
}

// Program is a whole compile: a mapping from file path to its lowered
// Module. The core accepts any iteration order over Program, since
// cross-module references resolve only at binding-load time, never at
// emit time (§5, "ordering").
type Program struct {
	Modules map[string]*Module
}

// NewProgram returns an empty Program.
func NewProgram() *Program {
	return &Program{Modules: make(map[string]*Module)}
}

// AddModule inserts or replaces a module by file path.
func (p *Program) AddModule(m *Module) {
	p.Modules[m.FilePath] = m
}
