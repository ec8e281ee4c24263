package typesystem

import (
	"testing"

	"github.com/tsonic-lang/tsonic-core/internal/diag"
	"github.com/tsonic-lang/tsonic-core/internal/handle"
	"github.com/tsonic-lang/tsonic-core/internal/ir"
	"github.com/tsonic-lang/tsonic-core/internal/syntax"
)

// buildListOfT registers a generic List<T> declaring a "count" property of
// type number, a "head" property of type T and a single-arg indexer
// T get(System.Int32), mirroring the kind of
// CLR-backed generic collection the binding layer exposes.
func buildListOfT(handles *handle.Registry, sys *System) handle.DeclId {
	id := handles.NewDecl(handle.DeclClass, "List", "List", diag.Position{}, 0)
	sys.RegisterType("List", id)
	sys.Nominal.Declare(id, []string{"T"})
	sys.Catalog.AddProperty(id, "count", ir.Primitive{Name: ir.Number})
	sys.Catalog.AddProperty(id, "head", ir.TypeParameter{Name: "T"})
	sys.Catalog.SetIndexer(id, IndexerInfo{KeyExternalType: "System.Int32", ValueType: ir.TypeParameter{Name: "T"}})
	return id
}

func TestTypeOfMemberSubstitutesThroughTypeArgs(t *testing.T) {
	handles := handle.New()
	sys := NewSystem(handles)
	buildListOfT(handles, sys)

	receiver := &ir.Reference{Name: "List", TypeArgs: []ir.Type{ir.Primitive{Name: ir.StringP}}}
	diags := diag.NewCollector()
	got := sys.TypeOfMember(receiver, "head", diag.Position{}, diags)

	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.All())
	}
	if got.String() != "string" {
		t.Fatalf("head on List<string> = %s, want string", got.String())
	}
}

func TestTypeOfMemberMissingReportsDiagnostic(t *testing.T) {
	handles := handle.New()
	sys := NewSystem(handles)
	buildListOfT(handles, sys)

	receiver := &ir.Reference{Name: "List", TypeArgs: []ir.Type{ir.Primitive{Name: ir.Number}}}
	diags := diag.NewCollector()
	got := sys.TypeOfMember(receiver, "nope", diag.Position{}, diags)

	if !diags.HasErrors() {
		t.Fatal("expected a diagnostic for a missing member")
	}
	if _, ok := got.(ir.Unknown); !ok {
		t.Fatalf("expected ir.Unknown, got %T", got)
	}
}

func TestTypeOfMemberStripsNullishUnion(t *testing.T) {
	handles := handle.New()
	sys := NewSystem(handles)
	buildListOfT(handles, sys)

	nullable := &ir.Union{Members: []ir.Type{
		&ir.Reference{Name: "List", TypeArgs: []ir.Type{ir.Primitive{Name: ir.Boolean}}},
		ir.Primitive{Name: ir.Null},
	}}
	diags := diag.NewCollector()
	got := sys.TypeOfMember(nullable, "head", diag.Position{}, diags)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.All())
	}
	if got.String() != "boolean" {
		t.Fatalf("head on List<boolean> | null = %s, want boolean", got.String())
	}
}

func TestGetIndexerInfoSubstitutesValueType(t *testing.T) {
	handles := handle.New()
	sys := NewSystem(handles)
	buildListOfT(handles, sys)

	receiver := &ir.Reference{Name: "List", TypeArgs: []ir.Type{ir.Primitive{Name: ir.Number}}}
	info, ok := sys.GetIndexerInfo(receiver)
	if !ok {
		t.Fatal("expected an indexer to be found")
	}
	if info.ValueType.String() != "number" {
		t.Fatalf("indexer value type = %s, want number", info.ValueType.String())
	}
}

func TestGetIndexerInfoAmbiguousReturnsAbsent(t *testing.T) {
	handles := handle.New()
	sys := NewSystem(handles)
	id := handles.NewDecl(handle.DeclClass, "Multi", "Multi", diag.Position{}, 0)
	sys.RegisterType("Multi", id)
	sys.Nominal.Declare(id, nil)
	sys.Catalog.SetIndexer(id, IndexerInfo{KeyExternalType: "System.Int32", ValueType: ir.Primitive{Name: ir.Number}})
	sys.Catalog.SetIndexer(id, IndexerInfo{KeyExternalType: "System.String", ValueType: ir.Primitive{Name: ir.StringP}})

	_, ok := sys.GetIndexerInfo(&ir.Reference{Name: "Multi"})
	if ok {
		t.Fatal("expected ambiguous indexer to be reported absent")
	}
}

func TestTypeOfDeclUsesExplicitAnnotation(t *testing.T) {
	handles := handle.New()
	sys := NewSystem(handles)
	id := handles.NewDecl(handle.DeclVariable, "x", "x", diag.Position{}, 0)
	syn := handles.CaptureTypeSyntax(diag.Position{}, &syntax.TypeExpr{Kind: syntax.TypeExprName, Name: "string"})
	handles.SetDeclTypeSyntax(id, syn)

	got := sys.TypeOfDecl(id, nil, diag.NewCollector(), diag.Position{})
	if got.String() != "string" {
		t.Fatalf("TypeOfDecl with annotation = %s, want string", got.String())
	}
}

func TestTypeOfDeclInfersFromLiteralInitializer(t *testing.T) {
	handles := handle.New()
	sys := NewSystem(handles)
	id := handles.NewDecl(handle.DeclVariable, "x", "x", diag.Position{}, 0)

	init := &Initializer{Kind: InitLiteral, LiteralType: ir.Primitive{Name: ir.Number}}
	got := sys.TypeOfDecl(id, init, diag.NewCollector(), diag.Position{})
	if got.String() != "number" {
		t.Fatalf("TypeOfDecl inferred = %s, want number", got.String())
	}
}

func TestTypeOfDeclArrayInferenceRequiresUniformElementType(t *testing.T) {
	handles := handle.New()
	sys := NewSystem(handles)
	id := handles.NewDecl(handle.DeclVariable, "xs", "xs", diag.Position{}, 0)

	uniform := &Initializer{Kind: InitArray, Elements: []Initializer{
		{Kind: InitLiteral, LiteralType: ir.Primitive{Name: ir.Number}},
		{Kind: InitLiteral, LiteralType: ir.Primitive{Name: ir.Number}},
	}}
	got := sys.TypeOfDecl(id, uniform, diag.NewCollector(), diag.Position{})
	if got.String() != "number[]" {
		t.Fatalf("uniform array inference = %s, want number[]", got.String())
	}

	mixed := &Initializer{Kind: InitArray, Elements: []Initializer{
		{Kind: InitLiteral, LiteralType: ir.Primitive{Name: ir.Number}},
		{Kind: InitLiteral, LiteralType: ir.Primitive{Name: ir.StringP}},
	}}
	got = sys.TypeOfDecl(id, mixed, diag.NewCollector(), diag.Position{})
	if _, ok := got.(ir.Unknown); !ok {
		t.Fatalf("mixed-element array should infer as unknown, got %T", got)
	}
}

func TestResolveCallTwoPassInfersTypeParameter(t *testing.T) {
	handles := handle.New()
	sys := NewSystem(handles)
	owner := handles.NewDecl(handle.DeclFunction, "identity", "identity", diag.Position{}, 0)
	sigID := handles.AddSignature(owner, []string{"T"}, diag.Position{})
	sys.Catalog.AddMethodSignature(owner, "identity", SignatureInfo{
		ID:         sigID,
		TypeParams: []string{"T"},
		Parameters: []ir.Param{{Name: "x", Type: ir.TypeParameter{Name: "T"}}},
		ReturnType: ir.TypeParameter{Name: "T"},
	})

	diags := diag.NewCollector()
	first := sys.ResolveCall(CallRequest{SigID: sigID, ArgumentCount: 1}, diags, diag.Position{})
	if _, ok := first.ParameterTypes[0].(ir.TypeParameter); !ok {
		t.Fatalf("first pass should leave T unresolved, got %v", first.ParameterTypes[0])
	}

	second := sys.ResolveCall(CallRequest{
		SigID:         sigID,
		ArgumentCount: 1,
		ArgTypes:      []ir.Type{ir.Primitive{Name: ir.StringP}},
	}, diags, diag.Position{})
	if second.ReturnType.String() != "string" {
		t.Fatalf("second pass return type = %s, want string", second.ReturnType.String())
	}
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.All())
	}
}

func TestResolveCallConflictingArgumentsIsDiagnostic(t *testing.T) {
	handles := handle.New()
	sys := NewSystem(handles)
	owner := handles.NewDecl(handle.DeclFunction, "pair", "pair", diag.Position{}, 0)
	sigID := handles.AddSignature(owner, []string{"T"}, diag.Position{})
	sys.Catalog.AddMethodSignature(owner, "pair", SignatureInfo{
		ID:         sigID,
		TypeParams: []string{"T"},
		Parameters: []ir.Param{
			{Name: "a", Type: ir.TypeParameter{Name: "T"}},
			{Name: "b", Type: ir.TypeParameter{Name: "T"}},
		},
		ReturnType: ir.TypeParameter{Name: "T"},
	})

	diags := diag.NewCollector()
	sys.ResolveCall(CallRequest{
		SigID:         sigID,
		ArgumentCount: 2,
		ArgTypes:      []ir.Type{ir.Primitive{Name: ir.Number}, ir.Primitive{Name: ir.StringP}},
	}, diags, diag.Position{})

	if !diags.HasErrors() {
		t.Fatal("expected a diagnostic for conflicting type-parameter bindings")
	}
}
