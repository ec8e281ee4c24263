package typesystem

import (
	"github.com/tsonic-lang/tsonic-core/internal/diag"
	"github.com/tsonic-lang/tsonic-core/internal/handle"
	"github.com/tsonic-lang/tsonic-core/internal/ir"
)

// TypeOfMember implements type_of_member(receiver, {byName: name}) (§4.2.2).
// Absence of the member is reported as a diagnostic against pos and returns
// ir.Unknown{} — callers must not treat that as "no type", only as
// "lookup failed".
func (s *System) TypeOfMember(receiver ir.Type, name string, pos diag.Position, diags *diag.Collector) ir.Type {
	stripped := stripNullish(receiver)

	declID, typeArgs, ok := s.normalizeReceiver(stripped)
	if !ok {
		if obj, isObj := stripped.(*ir.Object); isObj {
			return structuralMemberType(obj, name)
		}
		diags.Errorf(diag.CodeUnresolvedReference, pos, "cannot resolve member %q on non-nominal, non-structural receiver", name)
		return ir.Unknown{}
	}

	key := memberCacheKey{declID: declID, name: name, args: argsKey(typeArgs)}
	if cached, hit := s.memberCache[key]; hit {
		return cached
	}

	declaringID, entry, found := s.findMemberEntry(declID, name)
	if !found {
		diags.Errorf(diag.CodeUnresolvedReference, pos, "member %q not found", name)
		return ir.Unknown{}
	}

	subst := s.instantiationSubst(declID, typeArgs, declaringID)
	var result ir.Type
	if entry.Declared != nil {
		result = Substitute(entry.Declared, subst)
	} else if len(entry.Signatures) > 0 {
		result = materializeFunctionType(entry.Signatures[0], subst)
	} else {
		result = ir.Unknown{}
	}

	s.memberCache[key] = result
	return result
}

// findMemberEntry walks the inheritance chain from declID looking for the
// first type whose catalog entry declares name, per §4.2.2 step 4 ("ask
// nominal_env for the declaring type id").
func (s *System) findMemberEntry(declID handle.DeclId, name string) (handle.DeclId, MemberEntry, bool) {
	for _, id := range s.Nominal.GetInheritanceChain(declID) {
		rec, ok := s.Catalog.Lookup(id)
		if !ok {
			continue
		}
		if m, ok := rec.Members[name]; ok {
			return id, m, true
		}
	}
	return 0, MemberEntry{}, false
}

// LookupSignature returns the first call signature for name found by
// walking declID's inheritance chain, giving frontend call lowering a
// SignatureId to place into a CallRequest (§4.2.4, §4.3.2). The overload
// the frontend should use for a particular call site is otherwise a
// binding-layer concern (§4.1); this is the single-signature fallback
// for in-source (non-externally-bound) calls, which this core does not
// model as overloaded.
func (s *System) LookupSignature(declID handle.DeclId, name string) (SignatureInfo, bool) {
	_, entry, found := s.findMemberEntry(declID, name)
	if !found || len(entry.Signatures) == 0 {
		return SignatureInfo{}, false
	}
	return entry.Signatures[0], true
}

func structuralMemberType(obj *ir.Object, name string) ir.Type {
	for _, m := range obj.Members {
		if m.Name != name {
			continue
		}
		if m.IsMethod {
			return &ir.Function{Parameters: m.Parameters, ReturnType: m.ReturnType}
		}
		return m.PropType
	}
	return ir.Unknown{}
}

func materializeFunctionType(sig SignatureInfo, subst Subst) ir.Type {
	params := make([]ir.Param, len(sig.Parameters))
	for i, p := range sig.Parameters {
		params[i] = ir.Param{Name: p.Name, Type: Substitute(p.Type, subst)}
	}
	return &ir.Function{Parameters: params, ReturnType: Substitute(sig.ReturnType, subst)}
}
