package calculator

import (
	"math"

	"github.com/shopspring/decimal"
)

// Tolerance is the threshold under which a balance counts as zero.
// It is used for cursor advance in settlement and for discrepancy detection.
const Tolerance = 0.01

// IsZero reports whether v is within Tolerance of zero.
func IsZero(v float64) bool {
	return math.Abs(v) < Tolerance
}

// Round2 rounds v to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
