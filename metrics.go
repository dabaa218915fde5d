package fixed

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// MaxScale is the maximum number of digits after the decimal point.
// 10^19 still fits into uint64, but not into int64.
const MaxScale = 18

// pow10 is a cache of powers of 10, where pow10[x] = 10^x.
var pow10 = [...]uint64{
	1,                          // 10^0
	10,                         // 10^1
	100,                        // 10^2
	1_000,                      // 10^3
	10_000,                     // 10^4
	100_000,                    // 10^5
	1_000_000,                  // 10^6
	10_000_000,                 // 10^7
	100_000_000,                // 10^8
	1_000_000_000,              // 10^9
	10_000_000_000,             // 10^10
	100_000_000_000,            // 10^11
	1_000_000_000_000,          // 10^12
	10_000_000_000_000,         // 10^13
	100_000_000_000_000,        // 10^14
	1_000_000_000_000_000,      // 10^15
	10_000_000_000_000_000,     // 10^16
	100_000_000_000_000_000,    // 10^17
	1_000_000_000_000_000_000,  // 10^18
	10_000_000_000_000_000_000, // 10^19
}

// ScaleMetrics holds the scale factor 10^scale and the constants derived
// from it.
// There is exactly one instance per scale, see [Metrics].
type ScaleMetrics struct {
	scale      int
	factor     int64 // 10^scale
	factorNLZ  int   // leading zeros of factor
	sqrtFactor int64 // ⌊√factor⌋
	maxInt     int64 // ⌊MaxInt64 / factor⌋
	minInt     int64 // ⌈MinInt64 / factor⌉
}

// scaleMetrics is the table of all scale metrics, where scaleMetrics[x]
// describes scale x.
var scaleMetrics = newScaleMetricsTable()

func newScaleMetricsTable() [MaxScale + 1]ScaleMetrics {
	var t [MaxScale + 1]ScaleMetrics
	for s := range t {
		t[s] = newScaleMetrics(s)
	}
	return t
}

// newScaleMetrics panics if the scale is out of range or one of the derived
// constants cannot be represented.
func newScaleMetrics(scale int) ScaleMetrics {
	if scale < 0 || scale > MaxScale {
		panic(fmt.Sprintf("newScaleMetrics(%v) failed: %v", scale, ErrScaleRange))
	}
	f := pow10[scale]
	if f > math.MaxInt64 {
		panic(fmt.Sprintf("newScaleMetrics(%v) failed: factor %v: %v", scale, f, ErrOverflow))
	}
	factor := int64(f)
	sqrt := isqrt64(f)
	if sqrt*sqrt > f || (sqrt+1)*(sqrt+1) <= f {
		panic(fmt.Sprintf("newScaleMetrics(%v) failed: square root of %v", scale, f))
	}
	return ScaleMetrics{
		scale:      scale,
		factor:     factor,
		factorNLZ:  bits.LeadingZeros64(f),
		sqrtFactor: int64(sqrt),
		maxInt:     math.MaxInt64 / factor,
		minInt:     math.MinInt64 / factor,
	}
}

// Metrics returns the scale metrics for the given scale.
func Metrics(scale int) (*ScaleMetrics, error) {
	if scale < 0 || scale > MaxScale {
		return nil, errors.Wrapf(ErrScaleRange, "Metrics(%v)", scale)
	}
	return &scaleMetrics[scale], nil
}

// Scale returns the number of digits after the decimal point.
func (m *ScaleMetrics) Scale() int {
	return m.scale
}

// Factor returns 10^scale.
// It is also the unscaled value of 1 at this scale.
func (m *ScaleMetrics) Factor() int64 {
	return m.factor
}

// FactorNLZ returns the number of leading zero bits of the scale factor.
func (m *ScaleMetrics) FactorNLZ() int {
	return m.factorNLZ
}

// SqrtFactor returns ⌊√(10^scale)⌋, which is exact for even scales.
func (m *ScaleMetrics) SqrtFactor() int64 {
	return m.sqrtFactor
}

// MaxIntegerValue returns the largest v such that v * 10^scale does not
// overflow int64.
func (m *ScaleMetrics) MaxIntegerValue() int64 {
	return m.maxInt
}

// MinIntegerValue returns the smallest v such that v * 10^scale does not
// overflow int64.
func (m *ScaleMetrics) MinIntegerValue() int64 {
	return m.minInt
}

// IsValidIntegerValue reports whether v * 10^scale fits into int64.
func (m *ScaleMetrics) IsValidIntegerValue(v int64) bool {
	return m.minInt <= v && v <= m.maxInt
}

// MulByFactor returns v * 10^scale, wrapping around on overflow.
func (m *ScaleMetrics) MulByFactor(v int64) int64 {
	return v * m.factor
}

// MulByFactorExact returns v * 10^scale and reports whether the product
// fits into int64.
func (m *ScaleMetrics) MulByFactorExact(v int64) (int64, bool) {
	if !m.IsValidIntegerValue(v) {
		return 0, false
	}
	return v * m.factor, true
}

// QuoByFactor returns v / 10^scale truncated towards zero.
func (m *ScaleMetrics) QuoByFactor(v int64) int64 {
	return v / m.factor
}

// ModByFactor returns v % 10^scale, which has the sign of v.
func (m *ScaleMetrics) ModByFactor(v int64) int64 {
	return v % m.factor
}

// split returns the integral and fractional parts of v, both with the sign
// of v.
func (m *ScaleMetrics) split(v int64) (i, f int64) {
	i = v / m.factor
	return i, v - i*m.factor
}

// FactorBigInt returns 10^scale as a new [big.Int].
func (m *ScaleMetrics) FactorBigInt() *big.Int {
	return new(big.Int).SetInt64(m.factor)
}

// FactorDecimal returns 10^scale as an arbitrary-precision decimal.
func (m *ScaleMetrics) FactorDecimal() decimal.Decimal {
	return decimal.New(1, int32(m.scale))
}

// Arithmetic returns the engine for this scale and the given modes.
func (m *ScaleMetrics) Arithmetic(rounding RoundingMode, overflow OverflowMode) (*Arithmetic, error) {
	return Get(m.scale, rounding, overflow)
}

// DefaultArithmetic returns the engine with [RoundHalfUp] and [Unchecked]
// modes for this scale.
func (m *ScaleMetrics) DefaultArithmetic() *Arithmetic {
	return arithmetics[m.scale][RoundHalfUp][Unchecked]
}

// TruncatingArithmetic returns the engine with [RoundDown] and [Unchecked]
// modes for this scale.
func (m *ScaleMetrics) TruncatingArithmetic() *Arithmetic {
	return arithmetics[m.scale][RoundDown][Unchecked]
}

// String implements the [fmt.Stringer] interface.
func (m *ScaleMetrics) String() string {
	return fmt.Sprintf("Scale%df", m.scale)
}

// isqrt64 calculates ⌊√x⌋.
func isqrt64(x uint64) uint64 {
	r, _ := isqrt128(u128{lo: x})
	return r
}
