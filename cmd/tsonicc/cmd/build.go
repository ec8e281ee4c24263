package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/tsonic-lang/tsonic-core/internal/binding"
	"github.com/tsonic-lang/tsonic-core/internal/config"
	"github.com/tsonic-lang/tsonic-core/internal/diag"
	"github.com/tsonic-lang/tsonic-core/internal/emitter"
	"github.com/tsonic-lang/tsonic-core/internal/lowering"
	"github.com/tsonic-lang/tsonic-core/internal/numeric"
	"github.com/tsonic-lang/tsonic-core/internal/parser"
	"github.com/tsonic-lang/tsonic-core/internal/validate"
)

var (
	outputFile     string
	configFile     string
	bindingsFile   string
	rootNamespace  string
	dumpIR         bool
	buildVerbose   bool
)

var buildCmd = &cobra.Command{
	Use:   "build [file]",
	Short: "Lower a source file to IR, validate it, and emit C#",
	Long: `Run a single source file through the full pipeline: parse, lower to
IR, prove numeric narrowings, run the soundness gate and naming-collision
check, and emit the result as C#.

Examples:
  # Emit to stdout
  tsonicc build widget.ts

  # Emit to a file, with a workspace config and a binding manifest
  tsonicc build widget.ts -o Widget.cs --config tsonic.yaml --bindings dotnet.json`,
	Args: cobra.ExactArgs(1),
	RunE: buildFile,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	buildCmd.Flags().StringVar(&configFile, "config", "", "workspace configuration YAML (§6.1)")
	buildCmd.Flags().StringVar(&bindingsFile, "bindings", "", "binding manifest JSON (§6.2)")
	buildCmd.Flags().StringVar(&rootNamespace, "namespace", "Generated", "root namespace a module's own namespace nests under")
	buildCmd.Flags().BoolVar(&dumpIR, "dump-ir", false, "dump the lowered IR module before emission")
	buildCmd.Flags().BoolVarP(&buildVerbose, "verbose", "v", false, "verbose output")
}

func buildFile(_ *cobra.Command, args []string) error {
	filename := args[0]

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	src := string(content)

	naming := config.NamingJSStyle
	if configFile != "" {
		ws, err := config.Load(configFile)
		if err != nil {
			exitWithError("loading workspace config: %v", err)
		}
		naming = ws.NamingConvention()
	}

	var bindings *binding.Registry
	if bindingsFile != "" {
		bindings, err = loadBindings(bindingsFile)
		if err != nil {
			return fmt.Errorf("failed to load binding manifest %s: %w", bindingsFile, err)
		}
	}

	diags := diag.NewCollector()

	p := parser.New(filename, src, diags)
	prog := p.ParseProgram()
	if diags.HasErrors() {
		printDiagnostics(diags)
		return fmt.Errorf("parsing failed")
	}

	lowerer := lowering.New(bindings, diags)
	namespace := deriveNamespace(rootNamespace, filename)
	module := lowerer.LowerModule(prog, namespace)
	if diags.HasErrors() {
		printDiagnostics(diags)
		return fmt.Errorf("lowering failed")
	}

	numeric.NewPass(diags).ProveModule(module)

	gate := validate.NewGate(diags, lowerer.Resolved)
	gate.CheckModule(module)
	validate.NewNamingPass(diags).CheckModule(module)
	if diags.HasErrors() {
		printDiagnostics(diags)
		return fmt.Errorf("validation failed with %d error(s)", countErrors(diags))
	}
	printDiagnostics(diags) // warnings only, reaching here

	if buildVerbose {
		fmt.Fprintf(os.Stderr, "Lowered %s as namespace %s\n", filename, namespace)
	}
	if dumpIR {
		fmt.Fprintf(os.Stderr, "IR:\n%#v\n\n", module)
	}

	em := emitter.New(naming)
	file := em.EmitModule(module)
	out := emitter.Print(file)

	if outputFile == "" {
		fmt.Print(out)
		return nil
	}
	if err := os.WriteFile(outputFile, []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outputFile, err)
	}
	if buildVerbose {
		fmt.Fprintf(os.Stderr, "Wrote %s (%d bytes)\n", outputFile, len(out))
	} else {
		fmt.Printf("Compiled %s -> %s\n", filename, outputFile)
	}
	return nil
}

func loadBindings(path string) (*binding.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m binding.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return binding.Load(m), nil
}

func printDiagnostics(diags *diag.Collector) {
	for _, d := range diags.All() {
		fmt.Fprintln(os.Stderr, d.String())
	}
}

func countErrors(diags *diag.Collector) int {
	n := 0
	for _, d := range diags.All() {
		if d.Severity == diag.Error {
			n++
		}
	}
	return n
}

// deriveNamespace computes a module's namespace as root-namespace plus a
// PascalCased, identifier-safe segment derived from the file's base name
// (§3.5 "namespace derived from file path + root namespace").
func deriveNamespace(root, filename string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	seg := validate.TargetName(sanitizeIdent(base))
	if root == "" {
		return seg
	}
	return root + "." + seg
}

func sanitizeIdent(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case unicode.IsLetter(r) || r == '_':
			b.WriteRune(r)
		case unicode.IsDigit(r) && i > 0:
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
