package ir

import "github.com/tsonic-lang/tsonic-core/internal/diag"

// ExprKind tags the IR expression sum (§3.2).
type ExprKind int

const (
	ExprLiteral ExprKind = iota
	ExprIdentifier
	ExprArray
	ExprObject
	ExprMemberAccess
	ExprCall
	ExprNew
	ExprThis
	ExprUpdate
	ExprUnary
	ExprBinary
	ExprLogical
	ExprConditional
	ExprAssignment
	ExprTemplateLiteral
	ExprSpread
	ExprAwait
	ExprYield
	ExprNumericNarrowing
	ExprTypeAssertion
	ExprTryCast
	ExprAsInterface
	ExprStackAlloc
	ExprDefaultOf
	ExprArrowFunction
)

// Expr is the IR expression sum. Every expression carries an optional
// InferredType; for ExprNumericNarrowing and ExprTypeAssertion the field
// is mandatory and holds the conversion's target type (§3.2).
//
// NumericProof/SetNumericProof carry the numeric proof pass's output
// (§4.4) uniformly across every expression kind rather than only the
// narrowing node, since literals, identifiers, and binary-op results all
// need proof attached and propagated downstream. Because SetNumericProof
// has a pointer receiver on the embedded ExprBase, every concrete node
// must be constructed and passed around as a pointer (`&LiteralExpr{...}`,
// not `LiteralExpr{...}`) for the proof to stick.
type Expr interface {
	Kind() ExprKind
	Pos() diag.Position
	InferredType() Type
	NumericProof() *NumericProof
	SetNumericProof(*NumericProof)
	exprNode()
}

// ExprBase is embedded by every concrete Expr to supply position,
// inferred-type, and numeric-proof storage without re-deriving the
// boilerplate per node.
type ExprBase struct {
	NodePos diag.Position
	Type    Type
	Proof   *NumericProof
}

func (b ExprBase) Pos() diag.Position             { return b.NodePos }
func (b ExprBase) InferredType() Type              { return b.Type }
func (b ExprBase) NumericProof() *NumericProof     { return b.Proof }
func (b *ExprBase) SetNumericProof(p *NumericProof) { b.Proof = p }
func (*ExprBase) exprNode()                        {}

// AccessKind classifies a computed member access (§3.2, §4.3.1).
type AccessKind int

const (
	AccessUnknown AccessKind = iota
	AccessCLRIndexer
	AccessDictionary
	AccessStringChar
)

func (k AccessKind) String() string {
	switch k {
	case AccessCLRIndexer:
		return "clrIndexer"
	case AccessDictionary:
		return "dictionary"
	case AccessStringChar:
		return "stringChar"
	default:
		return "unknown"
	}
}

// MemberBinding is the external-member binding attached to a member
// access or call IR node. It is deliberately separate from InferredType:
// the emitter uses MemberBinding for the external member name (e.g.
// property casing), validation uses InferredType (§4.3.1).
type MemberBinding struct {
	Assembly string
	Type     string
	Member   string
	IsExtensionMethod bool
}

// ParamMode is a parameter-passing mode, mirroring the binding manifest's
// `ref`/`out`/`in` modifiers plus the default by-value mode (§3.4).
type ParamMode int

const (
	ModeValue ParamMode = iota
	ModeRef
	ModeOut
	ModeIn
)

func (m ParamMode) String() string {
	switch m {
	case ModeRef:
		return "ref"
	case ModeOut:
		return "out"
	case ModeIn:
		return "in"
	default:
		return "value"
	}
}

// TypePredicate carries narrowing metadata from a resolved call signature,
// e.g. a user-defined type guard's `x is T` return annotation.
type TypePredicate struct {
	ParamIndex int
	TargetType Type
}
