package numeric

import "github.com/tsonic-lang/tsonic-core/internal/ir"

// family buckets a kind for narrowing/widening comparisons: unsigned
// integral, signed integral, or floating point. Crossing families is
// never implicitly provable; only an in-range literal crosses them
// (integral literal narrowed to a float kind).
type family int

const (
	famUnsigned family = iota
	famSigned
	famFloat
)

type rank struct {
	fam   family
	width int
}

var ranks = map[ir.NumericKind]rank{
	ir.KByte:   {famUnsigned, 1},
	ir.KUInt16: {famUnsigned, 2},
	ir.KUInt32: {famUnsigned, 4},
	ir.KUInt64: {famUnsigned, 8},
	ir.KSByte:  {famSigned, 1},
	ir.KInt16:  {famSigned, 2},
	ir.KInt32:  {famSigned, 4},
	ir.KInt64:  {famSigned, 8},
	ir.KSingle: {famFloat, 4},
	ir.KDouble: {famFloat, 8},
}

// promoteSmallIntegral mirrors C#'s rule that byte/sbyte/short/ushort
// operands are promoted to int before arithmetic.
func promoteSmallIntegral(k ir.NumericKind) ir.NumericKind {
	switch k {
	case ir.KByte, ir.KSByte, ir.KInt16, ir.KUInt16:
		return ir.KInt32
	default:
		return k
	}
}

// joinKinds computes the lattice join of two operand kinds per a
// simplified version of C#'s binary numeric promotion (§4.4 "Binary
// ops"). It models the common cases the spec's worked examples exercise;
// it does not claim full fidelity to C#'s implicit-conversion DAG for
// unusual signed/unsigned 64-bit combinations.
func joinKinds(a, b ir.NumericKind) ir.NumericKind {
	a, b = promoteSmallIntegral(a), promoteSmallIntegral(b)
	if a == ir.KDouble || b == ir.KDouble {
		return ir.KDouble
	}
	if a == ir.KSingle || b == ir.KSingle {
		return ir.KSingle
	}
	if a == ir.KUInt64 || b == ir.KUInt64 {
		return ir.KUInt64
	}
	if a == ir.KInt64 || b == ir.KInt64 {
		return ir.KInt64
	}
	if a == ir.KUInt32 && b == ir.KUInt32 {
		return ir.KUInt32
	}
	if (a == ir.KUInt32 && b == ir.KInt32) || (a == ir.KInt32 && b == ir.KUInt32) {
		return ir.KInt64
	}
	return ir.KInt32
}

// canNarrowProvenKind reports whether a non-literal expression already
// proven to produce inner can be narrowed to target without the proof
// pass needing to guess: same family, and target at least as wide
// (§4.4 "If the join is broader than an enclosing narrowing's target,
// the narrowing is unprovable").
func canNarrowProvenKind(inner, target ir.NumericKind) bool {
	if inner == target {
		return true
	}
	ri, ok1 := ranks[inner]
	rt, ok2 := ranks[target]
	if !ok1 || !ok2 || ri.fam != rt.fam {
		return false
	}
	return rt.width >= ri.width
}

// numericKindOfType maps an IR type to the NumericKind it denotes, if
// any. Decimal is intentionally unmapped: the spec's NumericKind lattice
// lists it with an ellipsis and the worked examples never narrow to it,
// so this pass does not attempt to prove decimal narrowings (§4.4).
func numericKindOfType(t ir.Type) (ir.NumericKind, bool) {
	var name ir.PrimitiveName
	switch v := t.(type) {
	case ir.Primitive:
		name = v.Name
	case *ir.Reference:
		name = ir.PrimitiveName(v.Name)
	default:
		return 0, false
	}
	switch name {
	case ir.Byte:
		return ir.KByte, true
	case ir.SByte:
		return ir.KSByte, true
	case ir.Short:
		return ir.KInt16, true
	case ir.UShort:
		return ir.KUInt16, true
	case ir.Int:
		return ir.KInt32, true
	case ir.UInt:
		return ir.KUInt32, true
	case ir.Long:
		return ir.KInt64, true
	case ir.ULong:
		return ir.KUInt64, true
	case ir.Float:
		return ir.KSingle, true
	case ir.Double:
		return ir.KDouble, true
	default:
		return 0, false
	}
}
