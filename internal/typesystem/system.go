package typesystem

import (
	"github.com/tsonic-lang/tsonic-core/internal/handle"
	"github.com/tsonic-lang/tsonic-core/internal/ir"
	"github.com/tsonic-lang/tsonic-core/internal/nominal"
)

// System is the type system's top-level state (§4.2 "State"): the handle
// registry it queries against, the nominal inheritance graph, the unified
// member catalog, and the member-lookup cache keyed by (receiver, member,
// type args). It is built incrementally during frontend lowering and
// queried repeatedly afterward; nothing here is safe for concurrent
// mutation (§5, mirroring the other registries' build-then-freeze shape).
type System struct {
	Handles *handle.Registry
	Nominal *nominal.Env
	Catalog *Catalog

	// byQualified resolves a Reference's Name to the DeclId that declared
	// it, so member/indexer lookups can find the nominal_env entry. Built
	// by the frontend as each class/interface/enum/alias is declared.
	byQualified map[string]handle.DeclId

	memberCache map[memberCacheKey]ir.Type
}

type memberCacheKey struct {
	declID handle.DeclId
	name   string
	args   string
}

// NewSystem wires a fresh System over the given handle registry. Catalog
// and Nominal are populated by the caller as declarations are processed.
func NewSystem(handles *handle.Registry) *System {
	return &System{
		Handles:     handles,
		Nominal:     nominal.New(),
		Catalog:     NewCatalog(),
		byQualified: make(map[string]handle.DeclId),
		memberCache: make(map[memberCacheKey]ir.Type),
	}
}

// RegisterType records the DeclId that owns a qualified type name, so a
// later Reference carrying that name can be normalized back to its
// declaration (§4.2.2 step 2).
func (s *System) RegisterType(qualifiedName string, id handle.DeclId) {
	s.byQualified[qualifiedName] = id
}

// DeclIDFor looks up the declaration that owns a qualified type name.
func (s *System) DeclIDFor(qualifiedName string) (handle.DeclId, bool) {
	id, ok := s.byQualified[qualifiedName]
	return id, ok
}

// stripNullish removes `| null` and `| undefined` members from a union,
// returning the remaining single type, or the narrowed union if more than
// one member survives (§4.2.2 step 1).
func stripNullish(t ir.Type) ir.Type {
	u, ok := t.(*ir.Union)
	if !ok {
		return t
	}
	var kept []ir.Type
	for _, m := range u.Members {
		if p, isPrim := m.(ir.Primitive); isPrim && (p.Name == ir.Null || p.Name == ir.Undefined) {
			continue
		}
		kept = append(kept, m)
	}
	switch len(kept) {
	case 0:
		return t
	case 1:
		return kept[0]
	default:
		return &ir.Union{Members: kept}
	}
}

// normalizeReceiver reduces a receiver type to its declaring DeclId and
// concrete type arguments, per §4.2.2 step 2. ok is false when the
// receiver is not a nominal reference (e.g. it is structural, an array,
// or a primitive) — callers fall through to structural lookup in that
// case.
func (s *System) normalizeReceiver(receiver ir.Type) (declID handle.DeclId, typeArgs []ir.Type, ok bool) {
	ref, isRef := stripNullish(receiver).(*ir.Reference)
	if !isRef {
		return 0, nil, false
	}
	id, found := s.byQualified[ref.Name]
	if !found {
		return 0, nil, false
	}
	return id, ref.TypeArgs, true
}

func argsKey(args []ir.Type) string {
	if len(args) == 0 {
		return ""
	}
	s := ""
	for i, a := range args {
		if i > 0 {
			s += ","
		}
		if a != nil {
			s += a.String()
		}
	}
	return s
}

// instantiationSubst composes the outer substitution (subject's own type
// parameters bound to the receiver's concrete type arguments) with
// nominal_env's name-level instantiation from subject to declaringID,
// producing a Subst ready to apply to a member declared on declaringID
// (§4.2.2 step 4, §4.2.3).
func (s *System) instantiationSubst(subjectID handle.DeclId, typeArgs []ir.Type, declaringID handle.DeclId) Subst {
	subjectParams := s.Nominal.TypeParams(subjectID)
	outer := make(map[string]ir.Type, len(subjectParams))
	for i, p := range subjectParams {
		if i < len(typeArgs) {
			outer[p] = typeArgs[i]
		}
	}
	if subjectID == declaringID {
		return Subst(outer)
	}
	subjectArgNames := make([]string, len(subjectParams))
	copy(subjectArgNames, subjectParams)
	nameSubst, found := s.Nominal.GetInstantiation(subjectID, subjectArgNames, declaringID)
	if !found {
		return Subst{}
	}
	resolved := make(Subst, len(nameSubst))
	for baseParam, name := range nameSubst {
		if concrete, ok := outer[name]; ok {
			resolved[baseParam] = concrete
		} else {
			resolved[baseParam] = &ir.Reference{Name: name}
		}
	}
	return resolved
}
