package lowering

import (
	"strings"
	"testing"

	"github.com/tsonic-lang/tsonic-core/internal/config"
	"github.com/tsonic-lang/tsonic-core/internal/diag"
	"github.com/tsonic-lang/tsonic-core/internal/emitter"
	"github.com/tsonic-lang/tsonic-core/internal/numeric"
	"github.com/tsonic-lang/tsonic-core/internal/parser"
	"github.com/tsonic-lang/tsonic-core/internal/validate"
)

// TestPipelineParseToEmit drives a small source file through every stage
// of the pipeline the same way cmd/tsonicc's build command does: parse,
// lower to IR, prove numeric narrowings, run the soundness gate and
// naming-collision check, then emit C#. Nothing here hand-constructs IR
// or backend AST directly - it is the only test in the tree that carries
// a parsed source file all the way through to emitted C#.
func TestPipelineParseToEmit(t *testing.T) {
	src := `
function add(a: number, b: number): number {
	return a + b;
}
const sum = add(1, 2);
`
	diags := diag.NewCollector()

	p := parser.New("widget.ts", src, diags)
	prog := p.ParseProgram()
	if diags.HasErrors() {
		t.Fatalf("parser errors: %v", diags.All())
	}

	lowerer := New(nil, diags)
	module := lowerer.LowerModule(prog, "Generated.Widget")
	if diags.HasErrors() {
		t.Fatalf("lowering errors: %v", diags.All())
	}

	numeric.NewPass(diags).ProveModule(module)

	gate := validate.NewGate(diags, lowerer.Resolved)
	gate.CheckModule(module)
	validate.NewNamingPass(diags).CheckModule(module)
	if diags.HasErrors() {
		t.Fatalf("validation errors: %v", diags.All())
	}

	em := emitter.New(config.NamingCLRStyle)
	file := em.EmitModule(module)
	out := emitter.Print(file)

	if !strings.Contains(out, "namespace Generated.Widget") {
		t.Errorf("emitted output missing namespace declaration:\n%s", out)
	}
	if !strings.Contains(out, "Add") {
		t.Errorf("emitted output missing the Add method:\n%s", out)
	}
	if !strings.Contains(out, "Add(1, 2)") {
		t.Errorf("emitted output missing the call site:\n%s", out)
	}
}
