package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeWorkspace(t *testing.T, dir string, body string) string {
	t.Helper()
	path := filepath.Join(dir, "workspace.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoadDecodesPackageReferences(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkspace(t, dir, `
dotnet:
  version: "net8.0"
  typeRoots:
    - ./types
  packageReferences:
    - id: System.Collections.Generic
      version: "8.0.0"
      types: ["ListOfT"]
`)
	w, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if w.Dotnet.Version != "net8.0" {
		t.Errorf("Version = %q, want net8.0", w.Dotnet.Version)
	}
	if len(w.Dotnet.PackageReferences) != 1 || w.Dotnet.PackageReferences[0].ID != "System.Collections.Generic" {
		t.Errorf("unexpected package references: %+v", w.Dotnet.PackageReferences)
	}
}

func TestNamingConventionFollowsTypeRoots(t *testing.T) {
	var w Workspace
	if got := w.NamingConvention(); got != NamingJSStyle {
		t.Errorf("empty TypeRoots: got %v, want %v", got, NamingJSStyle)
	}
	w.Dotnet.TypeRoots = []string{"./types"}
	if got := w.NamingConvention(); got != NamingCLRStyle {
		t.Errorf("non-empty TypeRoots: got %v, want %v", got, NamingCLRStyle)
	}
}

func TestInspectReadsNestedField(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkspace(t, dir, "dotnet:\n  version: \"net8.0\"\n")
	result, err := Inspect(path, "dotnet.version")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if result.String() != "net8.0" {
		t.Errorf("Inspect = %q, want net8.0", result.String())
	}
}

func TestPatchVersionRewritesInPlace(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkspace(t, dir, "dotnet:\n  version: \"net6.0\"\n")
	if err := PatchVersion(path, "net8.0"); err != nil {
		t.Fatalf("PatchVersion: %v", err)
	}
	w, err := Load(path)
	if err != nil {
		t.Fatalf("Load after patch: %v", err)
	}
	if w.Dotnet.Version != "net8.0" {
		t.Errorf("Version after patch = %q, want net8.0", w.Dotnet.Version)
	}
}
