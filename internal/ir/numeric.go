package ir

// NumericKind is a node in the CLR numeric lattice the proof pass proves
// expressions into (§4.4).
type NumericKind int

const (
	KByte NumericKind = iota
	KSByte
	KInt16
	KUInt16
	KInt32
	KUInt32
	KInt64
	KUInt64
	KSingle
	KDouble
)

func (k NumericKind) String() string {
	names := [...]string{
		"Byte", "SByte", "Int16", "UInt16", "Int32", "UInt32",
		"Int64", "UInt64", "Single", "Double",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "invalid"
}

// IsIntegral reports whether k is one of the integer kinds (as opposed to
// Single/Double).
func (k NumericKind) IsIntegral() bool { return k != KSingle && k != KDouble }

// ProofSource records why a NumericProof was attached, for diagnostics and
// for the emitter's narrowing-lowering rule (§4.6 "narrowing lowering").
type ProofSource int

const (
	ProofFromLiteral ProofSource = iota
	ProofFromNarrowing
	ProofFromBinaryJoin
	ProofFromInherited // propagated from a prior proven binding (§4.4)
)

// NumericProof is attached by the numeric proof pass to any IR expression
// proven to produce a specific CLR numeric kind.
type NumericProof struct {
	Kind   NumericKind
	Source ProofSource
}
