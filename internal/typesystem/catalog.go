// Package typesystem implements the deterministic type queries of C4
// (§4.2): declaration types, member lookup with substitution, indexer
// info, and two-pass call resolution. TypeScript-style bidirectional
// inference is explicitly not modeled — every query here either derives
// its answer from annotations/bindings or refuses (§4.2 intro).
package typesystem

import (
	"github.com/tsonic-lang/tsonic-core/internal/handle"
	"github.com/tsonic-lang/tsonic-core/internal/ir"
)

// SignatureInfo is one call/constructor signature of a catalog member,
// keyed externally by handle.SignatureId (§3.3).
type SignatureInfo struct {
	ID         handle.SignatureId
	TypeParams []string
	Parameters []ir.Param
	ParamModes []ir.ParamMode
	ReturnType ir.Type
	Predicate  *ir.TypePredicate // user-defined type guard, if any
}

// MemberEntry is one catalog entry for a type: either a property (Declared
// non-nil) or a method family (Signatures non-empty).
type MemberEntry struct {
	Name       string
	Declared   ir.Type // property's declared type; nil for methods
	Signatures []SignatureInfo
}

// IndexerInfo is a type's CLR indexer, if it declares exactly one at its
// level of the hierarchy (§4.2.3).
type IndexerInfo struct {
	KeyExternalType string
	ValueType       ir.Type
}

// TypeRecord is the unified_catalog's entry for one DeclId: its members in
// declaration order, plus at most one indexer.
type TypeRecord struct {
	Members    map[string]MemberEntry
	MemberOrder []string
	Indexer    *IndexerInfo
	// MultipleIndexers is set when two or more indexers exist at this
	// exact hierarchy level — such a type has no unambiguous indexer
	// (§4.2.3).
	MultipleIndexers bool
}

// Catalog is the unified_catalog: for each type DeclId, its members and
// their signatures (§4.2 "State"). Build-then-freeze, like every other
// registry in the core (§5).
type Catalog struct {
	types map[handle.DeclId]*TypeRecord
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{types: make(map[handle.DeclId]*TypeRecord)}
}

func (c *Catalog) ensure(id handle.DeclId) *TypeRecord {
	rec, ok := c.types[id]
	if !ok {
		rec = &TypeRecord{Members: make(map[string]MemberEntry)}
		c.types[id] = rec
	}
	return rec
}

// AddProperty registers a property member on a type.
func (c *Catalog) AddProperty(owner handle.DeclId, name string, declared ir.Type) {
	rec := c.ensure(owner)
	if _, exists := rec.Members[name]; !exists {
		rec.MemberOrder = append(rec.MemberOrder, name)
	}
	rec.Members[name] = MemberEntry{Name: name, Declared: declared}
}

// AddMethodSignature appends one overload signature to a method member.
func (c *Catalog) AddMethodSignature(owner handle.DeclId, name string, sig SignatureInfo) {
	rec := c.ensure(owner)
	entry, exists := rec.Members[name]
	if !exists {
		rec.MemberOrder = append(rec.MemberOrder, name)
		entry = MemberEntry{Name: name}
	}
	entry.Signatures = append(entry.Signatures, sig)
	rec.Members[name] = entry
}

// SetIndexer registers owner's indexer. A second call for the same owner
// marks it ambiguous rather than overwriting (§4.2.3).
func (c *Catalog) SetIndexer(owner handle.DeclId, info IndexerInfo) {
	rec := c.ensure(owner)
	if rec.Indexer != nil {
		rec.MultipleIndexers = true
		return
	}
	cp := info
	rec.Indexer = &cp
}

// Lookup returns the TypeRecord for id, if any members were registered.
func (c *Catalog) Lookup(id handle.DeclId) (*TypeRecord, bool) {
	rec, ok := c.types[id]
	return rec, ok
}

// Member returns a single member entry for id by name.
func (c *Catalog) Member(id handle.DeclId, name string) (MemberEntry, bool) {
	rec, ok := c.types[id]
	if !ok {
		return MemberEntry{}, false
	}
	m, ok := rec.Members[name]
	return m, ok
}
