package typesystem

import (
	"github.com/tsonic-lang/tsonic-core/internal/diag"
	"github.com/tsonic-lang/tsonic-core/internal/handle"
	"github.com/tsonic-lang/tsonic-core/internal/ir"
)

// CallRequest is resolve_call's input (§4.2.4). SigID identifies the
// candidate signature the frontend already selected (overload resolution
// itself is C2/binding-layer territory for externally bound calls, or a
// single catalog signature for in-source functions); resolve_call's job
// is purely to instantiate that signature's generics against the call
// site, not to choose among overloads.
type CallRequest struct {
	SigID             handle.SignatureId
	ArgumentCount     int
	ReceiverType      ir.Type
	ExplicitTypeArgs  []ir.Type
	ArgTypes          []ir.Type // nil on the first pass
	ExpectedReturnType ir.Type
}

// CallResolution is resolve_call's output (§4.2.4).
type CallResolution struct {
	ReturnType      ir.Type
	ParameterTypes  []ir.Type
	ParameterModes  []ir.ParamMode
	TypePredicate   *ir.TypePredicate
}

// ResolveCall implements resolve_call(request) (§4.2.4). The frontend
// drives the two-pass protocol itself by calling this repeatedly (first
// with ArgTypes nil, then with it populated); this function only does the
// per-call instantiation work, not the pass sequencing.
func (s *System) ResolveCall(req CallRequest, diags *diag.Collector, pos diag.Position) CallResolution {
	sig, ok := s.Catalog.signatureByID(req.SigID)
	if !ok {
		diags.Errorf(diag.CodeUnresolvedReference, pos, "unknown call signature")
		return CallResolution{ReturnType: ir.Unknown{}}
	}

	bindings := make(Bindings)

	// Explicit call-site type arguments take precedence over anything
	// unify would infer (§4.2.4 "Inference sources").
	for i, tp := range sig.TypeParams {
		if i < len(req.ExplicitTypeArgs) {
			bindings[tp] = req.ExplicitTypeArgs[i]
		}
	}

	if req.ArgTypes != nil {
		for i, p := range sig.Parameters {
			if i >= len(req.ArgTypes) || req.ArgTypes[i] == nil {
				continue
			}
			before := cloneBindings(bindings)
			if !Unify(p.Type, req.ArgTypes[i], bindings) {
				diags.Errorf(diag.CodeUnificationRefused, pos,
					"cannot unify parameter %d's type against the supplied argument; provide an explicit type argument", i)
				bindings = before
				continue
			}
		}
	}

	subst := Subst(bindings)
	paramTypes := make([]ir.Type, len(sig.Parameters))
	modes := make([]ir.ParamMode, len(sig.Parameters))
	for i, p := range sig.Parameters {
		paramTypes[i] = Substitute(p.Type, subst)
		if i < len(sig.ParamModes) {
			modes[i] = sig.ParamModes[i]
		} else {
			modes[i] = ir.ModeValue
		}
	}

	resolution := CallResolution{
		ReturnType:     Substitute(sig.ReturnType, subst),
		ParameterTypes: paramTypes,
		ParameterModes: modes,
	}
	if sig.Predicate != nil {
		tp := *sig.Predicate
		tp.TargetType = Substitute(tp.TargetType, subst)
		resolution.TypePredicate = &tp
	}
	return resolution
}

// ResolveCallFromFunctionType falls back to a callee's bare function IR
// type when no signature handle is resolvable (§4.3.2): the function
// type's own parameters are used as the expected types directly, with no
// generics to instantiate.
func ResolveCallFromFunctionType(fn *ir.Function) CallResolution {
	paramTypes := make([]ir.Type, len(fn.Parameters))
	modes := make([]ir.ParamMode, len(fn.Parameters))
	for i, p := range fn.Parameters {
		paramTypes[i] = p.Type
		modes[i] = ir.ModeValue
	}
	return CallResolution{ReturnType: fn.ReturnType, ParameterTypes: paramTypes, ParameterModes: modes}
}

func cloneBindings(b Bindings) Bindings {
	cp := make(Bindings, len(b))
	for k, v := range b {
		cp[k] = v
	}
	return cp
}

// signatureByID is a thin lookup over the catalog's registered signatures,
// searching every type's members. Catalog entries are few enough per
// compile that a linear scan keyed by ID avoids a second ID-indexed index
// for a query that runs once per ResolveCall.
func (c *Catalog) signatureByID(id handle.SignatureId) (SignatureInfo, bool) {
	for _, rec := range c.types {
		for _, m := range rec.Members {
			for _, sig := range m.Signatures {
				if sig.ID == id {
					return sig, true
				}
			}
		}
	}
	return SignatureInfo{}, false
}
