// Package handle implements the Handle Registry (§3.3). Handles are
// opaque, stable IDs minted once during frontend lowering; the rest of
// the core never touches raw source-syntax nodes again, only handles and
// captured type syntax. This is the mechanism that keeps the type system,
// binding registry, and validation passes independent of the concrete
// source-syntax representation (§9, "cyclic graphs" / "global mutable
// state" notes).
package handle

import "github.com/tsonic-lang/tsonic-core/internal/diag"

// DeclId identifies any named declaration: class, interface, function,
// variable, parameter, enum, or type alias.
type DeclId int

// SignatureId identifies one call/constructor signature of a declaration
// or member (a declaration may own more than one, for overloads).
type SignatureId int

// MemberId identifies a single member of a type.
type MemberId int

// TypeSyntaxId identifies a captured syntax node representing a type
// annotation, e.g. the `Foo<Bar>` in `let x: Foo<Bar>`.
type TypeSyntaxId int

// DeclKind classifies what a DeclId names.
type DeclKind int

const (
	DeclClass DeclKind = iota
	DeclInterface
	DeclFunction
	DeclVariable
	DeclParameter
	DeclEnum
	DeclTypeAlias
)

// DeclRecord is the immutable record a DeclId resolves to.
type DeclRecord struct {
	ID          DeclId
	Kind        DeclKind
	Name        string // local surface name
	Qualified   string // fully-qualified name within the program
	Pos         diag.Position
	TypeSyntax  TypeSyntaxId // 0 if no explicit annotation
	Signatures  []SignatureId
	Parent      DeclId // enclosing declaration, 0 if module-level
}

// SignatureRecord is one signature of a DeclRecord or member.
type SignatureRecord struct {
	ID         SignatureId
	Owner      DeclId
	TypeParams []string
	Pos        diag.Position
}

// MemberRecord is one member of a type.
type MemberRecord struct {
	ID    MemberId
	Owner DeclId
	Name  string
	Pos   diag.Position
}

// TypeSyntaxRecord is a captured type annotation. Syntax is an opaque
// payload supplied by the frontend (the concrete source-syntax node); the
// core never inspects it beyond what type_from_syntax needs, and that
// conversion (TypeFromSyntax) lives in the typesystem package, not here.
type TypeSyntaxRecord struct {
	ID     TypeSyntaxId
	Pos    diag.Position
	Syntax any
}

// Registry is the Handle Registry: a build-then-freeze map from each kind
// of ID to its immutable record. It is populated once during frontend
// lowering and is read-only for the rest of the pipeline (§5).
type Registry struct {
	decls      []DeclRecord
	signatures []SignatureRecord
	members    []MemberRecord
	typeSyntax []TypeSyntaxRecord
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{}
}

// NewDecl mints a fresh DeclId and stores its record. The returned ID is
// stable for the rest of the compile.
func (r *Registry) NewDecl(kind DeclKind, name, qualified string, pos diag.Position, parent DeclId) DeclId {
	id := DeclId(len(r.decls) + 1)
	r.decls = append(r.decls, DeclRecord{ID: id, Kind: kind, Name: name, Qualified: qualified, Pos: pos, Parent: parent})
	return id
}

// Decl looks up a DeclRecord by ID.
func (r *Registry) Decl(id DeclId) (DeclRecord, bool) {
	if id <= 0 || int(id) > len(r.decls) {
		return DeclRecord{}, false
	}
	return r.decls[id-1], true
}

// SetDeclTypeSyntax attaches a captured type annotation to an existing
// declaration.
func (r *Registry) SetDeclTypeSyntax(id DeclId, syn TypeSyntaxId) {
	if id <= 0 || int(id) > len(r.decls) {
		return
	}
	r.decls[id-1].TypeSyntax = syn
}

// AddSignature mints a SignatureId owned by decl.
func (r *Registry) AddSignature(owner DeclId, typeParams []string, pos diag.Position) SignatureId {
	id := SignatureId(len(r.signatures) + 1)
	r.signatures = append(r.signatures, SignatureRecord{ID: id, Owner: owner, TypeParams: typeParams, Pos: pos})
	if rec, ok := r.Decl(owner); ok {
		rec.Signatures = append(rec.Signatures, id)
		r.decls[owner-1] = rec
	}
	return id
}

// Signature looks up a SignatureRecord by ID.
func (r *Registry) Signature(id SignatureId) (SignatureRecord, bool) {
	if id <= 0 || int(id) > len(r.signatures) {
		return SignatureRecord{}, false
	}
	return r.signatures[id-1], true
}

// NewMember mints a MemberId owned by owner.
func (r *Registry) NewMember(owner DeclId, name string, pos diag.Position) MemberId {
	id := MemberId(len(r.members) + 1)
	r.members = append(r.members, MemberRecord{ID: id, Owner: owner, Name: name, Pos: pos})
	return id
}

// Member looks up a MemberRecord by ID.
func (r *Registry) Member(id MemberId) (MemberRecord, bool) {
	if id <= 0 || int(id) > len(r.members) {
		return MemberRecord{}, false
	}
	return r.members[id-1], true
}

// CaptureTypeSyntax mints a TypeSyntaxId for a raw syntax payload.
func (r *Registry) CaptureTypeSyntax(pos diag.Position, syntax any) TypeSyntaxId {
	id := TypeSyntaxId(len(r.typeSyntax) + 1)
	r.typeSyntax = append(r.typeSyntax, TypeSyntaxRecord{ID: id, Pos: pos, Syntax: syntax})
	return id
}

// TypeSyntax looks up a TypeSyntaxRecord by ID.
func (r *Registry) TypeSyntax(id TypeSyntaxId) (TypeSyntaxRecord, bool) {
	if id <= 0 || int(id) > len(r.typeSyntax) {
		return TypeSyntaxRecord{}, false
	}
	return r.typeSyntax[id-1], true
}
