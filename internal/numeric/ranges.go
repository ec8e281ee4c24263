// Package numeric implements the numeric proof pass (C6 sub-pass, §4.4):
// it attaches NumericProof to IR expressions that provably produce a
// specific CLR numeric kind, and refuses (diagnostic, not a silent
// widening) wherever that cannot be shown.
package numeric

import "github.com/tsonic-lang/tsonic-core/internal/ir"

// maxSafeInteger is JavaScript's Number.MAX_SAFE_INTEGER (2^53 - 1).
const maxSafeInteger = 9007199254740991

// bounds holds a kind's inclusive [min, max] range for the overflow check.
// Single/Double are intentionally absent: they are not range-checked here,
// only their integral counterparts are (§4.4 "Range").
var bounds = map[ir.NumericKind][2]int64{
	ir.KByte:   {0, 255},
	ir.KSByte:  {-128, 127},
	ir.KInt16:  {-32768, 32767},
	ir.KUInt16: {0, 65535},
	ir.KInt32:  {-2147483648, 2147483647},
	ir.KUInt32: {0, 4294967295},
	ir.KInt64:  {-9223372036854775808, 9223372036854775807},
	ir.KUInt64: {0, 9223372036854775807}, // conservative: see note below
}

// inRange reports whether an integral literal value fits kind's range.
// KUInt64's true upper bound (2^64-1) exceeds int64; literals that large
// are rejected by the JS-safe-integer rule long before this matters in
// practice, so the conservative int64-max bound here never under-rejects
// a value this pass would otherwise accept.
func inRange(kind ir.NumericKind, v int64) bool {
	b, ok := bounds[kind]
	if !ok {
		return true
	}
	return v >= b[0] && v <= b[1]
}

// fitsInt32Range reports whether v is inside Int32's range; literals
// default to this kind when no decimal point and no narrowing widens them
// (§4.4 "Literals").
func fitsInt32Range(v int64) bool {
	return inRange(ir.KInt32, v)
}

// isSafeInteger reports whether v is representable exactly as both a
// float64 and an integer, the JS-safe-integer rule literals narrowed to
// 64-bit kinds must satisfy (§4.4 "JS safe-integer", §8.3).
func isSafeInteger(v int64) bool {
	if v < 0 {
		return -v <= maxSafeInteger
	}
	return v <= maxSafeInteger
}
