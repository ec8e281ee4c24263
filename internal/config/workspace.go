// Package config loads and patches the workspace configuration record
// (§6.1): the YAML document that tells the core which .NET packages are
// available and where their type roots live.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// PackageReference is one referenced .NET package and, optionally, the
// subset of its types this workspace actually binds against.
type PackageReference struct {
	ID      string   `yaml:"id"`
	Version string   `yaml:"version"`
	Types   []string `yaml:"types,omitempty"`
}

// Workspace is the decoded workspace configuration record (§6.1).
type Workspace struct {
	Dotnet struct {
		PackageReferences []PackageReference `yaml:"packageReferences"`
		TypeRoots         []string           `yaml:"typeRoots"`
		Version           string             `yaml:"version"`
	} `yaml:"dotnet"`
}

// NamingConvention is which member-casing convention the emitter's naming
// policy (§4.7) should assume for this workspace.
type NamingConvention string

const (
	// NamingJSStyle keeps source-level camelCase member names as-is.
	NamingJSStyle NamingConvention = "js-style"
	// NamingCLRStyle PascalCases member names to match CLR convention.
	NamingCLRStyle NamingConvention = "clr-style"
)

// NamingConvention is a pure function of whether TypeRoots is populated
// (§6.1): a workspace that points at real CLR type roots emits CLR-style
// member names; one with none configured assumes a JS-facing target.
func (w *Workspace) NamingConvention() NamingConvention {
	if len(w.Dotnet.TypeRoots) > 0 {
		return NamingCLRStyle
	}
	return NamingJSStyle
}

// Load decodes a workspace configuration document from path.
func Load(path string) (*Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var w Workspace
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return &w, nil
}

// Save encodes w back to path as YAML.
func Save(path string, w *Workspace) error {
	data, err := yaml.Marshal(w)
	if err != nil {
		return fmt.Errorf("config: encoding workspace: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// toJSONView decodes a YAML document through goccy/go-yaml into a generic
// tree and re-encodes it as JSON, giving gjson/sjson a byte view to work
// against.
func toJSONView(yamlBytes []byte) ([]byte, error) {
	var tree any
	if err := yaml.Unmarshal(yamlBytes, &tree); err != nil {
		return nil, err
	}
	return json.Marshal(tree)
}

// Inspect converts a workspace YAML document to its JSON view and returns
// the gjson result at the given dotted path, e.g. "dotnet.version" or
// "dotnet.packageReferences.0.id".
func Inspect(path string, query string) (gjson.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	jsonBytes, err := toJSONView(data)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("config: converting %s to JSON view: %w", path, err)
	}
	return gjson.GetBytes(jsonBytes, query), nil
}

// PatchVersion rewrites the dotnet.version field of the workspace document
// at path, round-tripping through the JSON view so sjson can make a
// targeted edit instead of a full decode/re-encode.
func PatchVersion(path string, newVersion string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: reading %s: %w", path, err)
	}
	jsonBytes, err := toJSONView(data)
	if err != nil {
		return fmt.Errorf("config: converting %s to JSON view: %w", path, err)
	}
	patched, err := sjson.SetBytes(jsonBytes, "dotnet.version", newVersion)
	if err != nil {
		return fmt.Errorf("config: patching dotnet.version: %w", err)
	}
	var tree any
	if err := json.Unmarshal(patched, &tree); err != nil {
		return fmt.Errorf("config: re-decoding patched document: %w", err)
	}
	yamlBytes, err := yaml.Marshal(tree)
	if err != nil {
		return fmt.Errorf("config: converting patched document back to YAML: %w", err)
	}
	return os.WriteFile(path, yamlBytes, 0o644)
}
