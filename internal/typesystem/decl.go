package typesystem

import (
	"github.com/tsonic-lang/tsonic-core/internal/diag"
	"github.com/tsonic-lang/tsonic-core/internal/handle"
	"github.com/tsonic-lang/tsonic-core/internal/ir"
	"github.com/tsonic-lang/tsonic-core/internal/syntax"
)

// InitKind tags the narrow family of initializer expressions
// type_of_decl's deterministic inference sub-routine understands (§4.2.1).
// Anything outside this family makes inferInitializer return ir.Unknown{}
// and the caller must treat the declaration as having no inferred type.
type InitKind int

const (
	InitLiteral InitKind = iota
	InitIdentifier
	InitMemberAccess
	InitCall
	InitNew
	InitAssertion
	InitArray
)

// Initializer is the minimal shape deterministic initializer inference
// needs from a declaration's initializer expression — intentionally
// decoupled from the full source AST so the type system package has no
// dependency on frontend lowering's concrete expression nodes.
type Initializer struct {
	Kind InitKind

	// InitLiteral
	LiteralType ir.Type

	// InitIdentifier: resolves by recursing into that declaration's own
	// type_of_decl.
	ReferencedDecl handle.DeclId

	// InitMemberAccess: receiver must already be typed (simple member
	// access on a typed receiver only, not a chain requiring inference).
	Receiver ir.Type
	Member   string

	// InitCall: the callee's resolved return type, computed via the full
	// call-resolution protocol (§4.2.4) before inferInitializer runs.
	CallReturnType ir.Type

	// InitNew: the constructed type.
	NewType ir.Type

	// InitAssertion: `expr as T`.
	AssertedType ir.Type

	// InitArray: element initializers; all must resolve to the exact same
	// type for the array to be inferred as T[].
	Elements []Initializer
}

// TypeOfDecl implements type_of_decl(decl_id) (§4.2.1). When the
// declaration has no explicit annotation and is not itself a type
// declaration, callers supply init (possibly zero-valued with no
// recognizable Kind) to drive deterministic initializer inference; a
// failed or unsupported inference returns ir.Unknown{} without raising a
// diagnostic — a missing annotation is the caller's concern, not this
// function's.
func (s *System) TypeOfDecl(id handle.DeclId, init *Initializer, diags *diag.Collector, pos diag.Position) ir.Type {
	rec, ok := s.Handles.Decl(id)
	if !ok {
		return ir.Unknown{}
	}

	if rec.TypeSyntax != 0 {
		if ts, ok := s.Handles.TypeSyntax(rec.TypeSyntax); ok {
			if typeExpr, ok := ts.Syntax.(*syntax.TypeExpr); ok {
				return TypeFromSyntax(typeExpr)
			}
		}
	}

	switch rec.Kind {
	case handle.DeclClass, handle.DeclInterface, handle.DeclEnum, handle.DeclTypeAlias:
		return &ir.Reference{Name: rec.Qualified}
	}

	if init == nil {
		return ir.Unknown{}
	}
	return s.inferInitializer(*init)
}

func (s *System) inferInitializer(init Initializer) ir.Type {
	switch init.Kind {
	case InitLiteral:
		if init.LiteralType != nil {
			return init.LiteralType
		}
		return ir.Unknown{}
	case InitIdentifier:
		if init.ReferencedDecl == 0 {
			return ir.Unknown{}
		}
		return s.TypeOfDecl(init.ReferencedDecl, nil, diag.NewCollector(), diag.Position{})
	case InitMemberAccess:
		if init.Receiver == nil {
			return ir.Unknown{}
		}
		return s.TypeOfMember(init.Receiver, init.Member, diag.Position{}, diag.NewCollector())
	case InitCall:
		if init.CallReturnType != nil {
			return init.CallReturnType
		}
		return ir.Unknown{}
	case InitNew:
		if init.NewType != nil {
			return init.NewType
		}
		return ir.Unknown{}
	case InitAssertion:
		if init.AssertedType != nil {
			return init.AssertedType
		}
		return ir.Unknown{}
	case InitArray:
		return s.inferArrayInitializer(init.Elements)
	default:
		return ir.Unknown{}
	}
}

func (s *System) inferArrayInitializer(elements []Initializer) ir.Type {
	if len(elements) == 0 {
		return ir.Unknown{}
	}
	first := s.inferInitializer(elements[0])
	if _, isUnknown := first.(ir.Unknown); isUnknown {
		return ir.Unknown{}
	}
	for _, e := range elements[1:] {
		t := s.inferInitializer(e)
		if !sameType(t, first) {
			return ir.Unknown{}
		}
	}
	return &ir.Array{Element: first}
}
