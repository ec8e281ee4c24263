package binding

import "testing"

func sampleManifest() Manifest {
	return Manifest{
		Assembly: "System.Linq",
		Namespaces: []NamespaceEntry{
			{Name: "systemLinq", Alias: "System.Linq", Types: []string{"enumerable"}},
		},
		Types: []TypeEntry{
			{Name: "enumerable", Alias: "Enumerable", Kind: TypeClass, Members: []string{"selectMany", "select"}},
		},
		Members: []MemberEntry{
			{
				Kind: MemberMethod, Name: "selectMany",
				Binding: ExternalBinding{Assembly: "System.Linq", Type: "Enumerable", Member: "SelectMany"},
			},
			{
				Kind: MemberMethod, Name: "select",
				Binding: ExternalBinding{Assembly: "System.Linq", Type: "Enumerable", Member: "Select"},
			},
			{
				Kind: MemberMethod, Name: "select",
				Binding:            ExternalBinding{Assembly: "System.Linq", Type: "Enumerable", Member: "Select"},
				ParameterModifiers: []ParamModifier{{Index: 1, Modifier: "ref"}},
			},
		},
	}
}

func TestRegistryHierarchicalLookup(t *testing.T) {
	r := Load(sampleManifest())

	ns, ok := r.GetNamespace("systemLinq")
	if !ok || ns.External != "System.Linq" {
		t.Fatalf("expected systemLinq -> System.Linq, got %+v ok=%v", ns, ok)
	}

	typ, ok := r.GetType("enumerable")
	if !ok || typ.External != "Enumerable" {
		t.Fatalf("expected enumerable -> Enumerable, got %+v ok=%v", typ, ok)
	}

	overloads := r.GetMemberOverloads("Enumerable", "select")
	if len(overloads) != 2 {
		t.Fatalf("expected 2 overloads preserved in declaration order, got %d", len(overloads))
	}
}

func TestAgreeOnExternalTargetCollapsesMatchingOverloads(t *testing.T) {
	r := Load(sampleManifest())
	overloads := r.GetMemberOverloads("Enumerable", "select")
	if !AgreeOnExternalTarget(overloads) {
		t.Fatal("expected overloads targeting the same external member to agree")
	}

	// Modifiers disagree (one overload has an index-1 ref, the other none),
	// so collapsing them must yield nil — left to call-time selection.
	if mods := CollapseModifiers(overloads); mods != nil {
		t.Fatalf("expected disagreeing modifiers to collapse to nil, got %+v", mods)
	}
}

func TestAgreeOnExternalTargetDetectsDisagreement(t *testing.T) {
	r := Load(Manifest{
		Members: []MemberEntry{
			{Name: "parse", Binding: ExternalBinding{Assembly: "mscorlib", Type: "Int32", Member: "Parse"}},
			{Name: "parse", Binding: ExternalBinding{Assembly: "mscorlib", Type: "Int64", Member: "Parse"}},
		},
	})
	// Both registered under the same local alias but different external
	// types never land under the same typeAlias bucket in a real manifest
	// (lookup is per declaring type), so simulate the ambiguous-call-site
	// case directly via the candidate slice the caller would assemble.
	candidates := append(r.GetMemberOverloads("Int32", "parse"), r.GetMemberOverloads("Int64", "parse")...)
	if AgreeOnExternalTarget(candidates) {
		t.Fatal("expected overloads with different external types to disagree")
	}
}

func TestExtensionMethodResolutionShiftsReceiverIndex(t *testing.T) {
	m := Manifest{
		Types: []TypeEntry{{Name: "__Ext_Array", Alias: "ArrayExtensions", Kind: TypeClass}},
		Members: []MemberEntry{
			{
				Name: "first", IsExtensionMethod: true,
				Binding:            ExternalBinding{Assembly: "System.Linq", Type: "Enumerable", Member: "First"},
				ParameterModifiers: []ParamModifier{{Index: 0, Modifier: "ref"}, {Index: 1, Modifier: "out"}},
			},
		},
	}
	// Place the member under the bucket type alias so it is discoverable
	// both by receiver type and by synthetic bucket name.
	m.Members[0].Binding.Type = "__Ext_Array"

	r := Load(m)
	bound, ok := r.ResolveExtensionMethod("__Ext_Array", "first", -1)
	if !ok {
		t.Fatal("expected extension method bucket lookup to succeed")
	}
	if len(bound.Modifiers) != 1 {
		t.Fatalf("receiver slot's modifier must be dropped after shifting, leaving 1 modifier, got %+v", bound.Modifiers)
	}
	if mode, ok := bound.Modifiers[0-1+1]; !ok || mode.String() != "out" {
		t.Fatalf("expected shifted index 0 to carry the original index-1 modifier, got %+v", bound.Modifiers)
	}
}

func TestIsExtensionBucket(t *testing.T) {
	cases := map[string]bool{
		"__Ext_Array":           true,
		"__TsonicExtMethods_X":  true,
		"Enumerable":            false,
		"":                      false,
	}
	for name, want := range cases {
		if got := IsExtensionBucket(name); got != want {
			t.Errorf("IsExtensionBucket(%q) = %v, want %v", name, got, want)
		}
	}
}
