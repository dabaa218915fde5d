package fixed

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
)

// Arithmetic is an engine operating on unscaled values of one scale with one
// rounding mode and one overflow mode.
//
// An unscaled value u represents the decimal u × 10^-scale.
// Engines are immutable and safe for concurrent use.
// There is exactly one engine per combination of scale and modes,
// see [Get].
type Arithmetic struct {
	metrics  *ScaleMetrics
	rounding RoundingMode
	overflow OverflowMode
	mulFn    mulFunc

	// Lazily computed float64 bounds, NaN until first use.
	minFloat *atomic.Float64
	maxFloat *atomic.Float64
}

// arithmetics is the table of all engines, indexed by scale, rounding mode
// and overflow mode.
var arithmetics = newArithmeticTable()

func newArithmeticTable() *[MaxScale + 1][numRoundingModes][numOverflowModes]*Arithmetic {
	t := new([MaxScale + 1][numRoundingModes][numOverflowModes]*Arithmetic)
	for s := range t {
		for r := range t[s] {
			for o := range t[s][r] {
				t[s][r][o] = newArithmetic(&scaleMetrics[s], RoundingMode(r), OverflowMode(o))
			}
		}
	}
	return t
}

func newArithmetic(m *ScaleMetrics, r RoundingMode, o OverflowMode) *Arithmetic {
	a := &Arithmetic{
		metrics:  m,
		rounding: r,
		overflow: o,
		minFloat: atomic.NewFloat64(math.NaN()),
		maxFloat: atomic.NewFloat64(math.NaN()),
	}
	switch {
	case m.scale == 0:
		a.mulFn = mulLong
	case m.scale <= 9:
		a.mulFn = mulSmall
	default:
		a.mulFn = mulLarge
	}
	return a
}

// Get returns the engine for the given scale and modes.
func Get(scale int, rounding RoundingMode, overflow OverflowMode) (*Arithmetic, error) {
	switch {
	case scale < 0 || scale > MaxScale:
		return nil, errors.Wrapf(ErrScaleRange, "Get(%v, %v, %v)", scale, rounding, overflow)
	case !rounding.valid() || !overflow.valid():
		return nil, errors.Wrapf(ErrInvalidMode, "Get(%v, %v, %v)", scale, rounding, overflow)
	}
	return arithmetics[scale][rounding][overflow], nil
}

// Default returns the engine with [RoundHalfUp] and [Unchecked] modes for
// the given scale.
func Default(scale int) (*Arithmetic, error) {
	return Get(scale, RoundHalfUp, Unchecked)
}

// DeriveScale returns the engine with the same modes and the given scale.
func (a *Arithmetic) DeriveScale(scale int) (*Arithmetic, error) {
	return Get(scale, a.rounding, a.overflow)
}

// DeriveRounding returns the engine with the same scale and overflow mode
// and the given rounding mode.
func (a *Arithmetic) DeriveRounding(rounding RoundingMode) (*Arithmetic, error) {
	return Get(a.metrics.scale, rounding, a.overflow)
}

// DeriveOverflow returns the engine with the same scale and rounding mode
// and the given overflow mode.
func (a *Arithmetic) DeriveOverflow(overflow OverflowMode) (*Arithmetic, error) {
	return Get(a.metrics.scale, a.rounding, overflow)
}

// Scale returns the number of digits after the decimal point.
func (a *Arithmetic) Scale() int {
	return a.metrics.scale
}

// Rounding returns the rounding mode of the engine.
func (a *Arithmetic) Rounding() RoundingMode {
	return a.rounding
}

// Overflow returns the overflow mode of the engine.
func (a *Arithmetic) Overflow() OverflowMode {
	return a.overflow
}

// Metrics returns the scale metrics of the engine.
func (a *Arithmetic) Metrics() *ScaleMetrics {
	return a.metrics
}

// String implements the [fmt.Stringer] interface.
func (a *Arithmetic) String() string {
	return fmt.Sprintf("%v[%v,%v]", a.metrics, a.rounding, a.overflow)
}

// wrap annotates an error with the failed operation and its operands.
func (a *Arithmetic) wrap(err error, op string, args ...any) error {
	s := make([]string, len(args))
	for i, arg := range args {
		s[i] = fmt.Sprint(arg)
	}
	return errors.Wrapf(err, "%v.%v(%v)", a, op, strings.Join(s, ", "))
}

func (a *Arithmetic) checked() bool {
	return a.overflow == Checked
}

// Zero returns the unscaled value of 0.
func (a *Arithmetic) Zero() int64 {
	return 0
}

// One returns the unscaled value of 1, which is 10^scale.
func (a *Arithmetic) One() int64 {
	return a.metrics.factor
}

// ULP returns the unscaled value of the unit in the last place,
// which is 10^-scale.
func (a *Arithmetic) ULP() int64 {
	return 1
}

// Sign returns -1, 0 or +1 depending on the sign of x.
func (a *Arithmetic) Sign(x int64) int {
	return sign(x)
}

// Cmp compares x and y and returns -1, 0 or +1.
func (a *Arithmetic) Cmp(x, y int64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

// Add returns x + y.
func (a *Arithmetic) Add(x, y int64) (int64, error) {
	z, err := a.add(x, y)
	if err != nil {
		return 0, a.wrap(err, "Add", x, y)
	}
	return z, nil
}

// Sub returns x - y.
func (a *Arithmetic) Sub(x, y int64) (int64, error) {
	z, err := a.sub(x, y)
	if err != nil {
		return 0, a.wrap(err, "Sub", x, y)
	}
	return z, nil
}

// AddInt64 returns x + n, where n is an integer rather than an unscaled value.
func (a *Arithmetic) AddInt64(x, n int64) (int64, error) {
	z, err := a.addMag(x, n < 0, mul128(uabs(n), uint64(a.metrics.factor)))
	if err != nil {
		return 0, a.wrap(err, "AddInt64", x, n)
	}
	return z, nil
}

// SubInt64 returns x - n, where n is an integer rather than an unscaled value.
func (a *Arithmetic) SubInt64(x, n int64) (int64, error) {
	z, err := a.addMag(x, n > 0, mul128(uabs(n), uint64(a.metrics.factor)))
	if err != nil {
		return 0, a.wrap(err, "SubInt64", x, n)
	}
	return z, nil
}

// AddUnscaled returns x + u × 10^-uScale, rounded to the engine's scale.
func (a *Arithmetic) AddUnscaled(x, u int64, uScale int) (int64, error) {
	z, err := a.addUnscaled(x, u < 0, uabs(u), uScale)
	if err != nil {
		return 0, a.wrap(err, "AddUnscaled", x, u, uScale)
	}
	return z, nil
}

// SubUnscaled returns x - u × 10^-uScale, rounded to the engine's scale.
func (a *Arithmetic) SubUnscaled(x, u int64, uScale int) (int64, error) {
	z, err := a.addUnscaled(x, u > 0, uabs(u), uScale)
	if err != nil {
		return 0, a.wrap(err, "SubUnscaled", x, u, uScale)
	}
	return z, nil
}

// Neg returns -x.
func (a *Arithmetic) Neg(x int64) (int64, error) {
	z, err := a.neg(x)
	if err != nil {
		return 0, a.wrap(err, "Neg", x)
	}
	return z, nil
}

// Abs returns |x|.
func (a *Arithmetic) Abs(x int64) (int64, error) {
	if x >= 0 {
		return x, nil
	}
	z, err := a.neg(x)
	if err != nil {
		return 0, a.wrap(err, "Abs", x)
	}
	return z, nil
}

func (a *Arithmetic) add(x, y int64) (int64, error) {
	if !a.checked() {
		return x + y, nil
	}
	z, ok := addExact(x, y)
	if !ok {
		return 0, ErrOverflow
	}
	return z, nil
}

func (a *Arithmetic) sub(x, y int64) (int64, error) {
	if !a.checked() {
		return x - y, nil
	}
	z, ok := subExact(x, y)
	if !ok {
		return 0, ErrOverflow
	}
	return z, nil
}

func (a *Arithmetic) neg(x int64) (int64, error) {
	if !a.checked() {
		return -x, nil
	}
	z, ok := negExact(x)
	if !ok {
		return 0, ErrOverflow
	}
	return z, nil
}

// magLimit returns the largest magnitude m such that x + m (or x - m if
// neg is true) stays in range.
func magLimit(x int64, neg bool) uint64 {
	if neg {
		return uint64(x) + 1<<63 // x - MinInt64
	}
	return uint64(math.MaxInt64) - uint64(x)
}

// addMag calculates x + m or x - m, where m is a 128-bit magnitude.
func (a *Arithmetic) addMag(x int64, neg bool, m u128) (int64, error) {
	if a.checked() && (m.hi != 0 || m.lo > magLimit(x, neg)) {
		return 0, ErrOverflow
	}
	if neg {
		return x - int64(m.lo), nil
	}
	return x + int64(m.lo), nil
}

// addUnscaled calculates x ± m × 10^-mScale.
func (a *Arithmetic) addUnscaled(x int64, neg bool, m uint64, mScale int) (int64, error) {
	k := mScale - a.metrics.scale
	if k <= 0 {
		if -k >= len(pow10) {
			if m == 0 {
				return x, nil
			}
			if a.checked() {
				return 0, ErrOverflow
			}
			return a.addMag(x, neg, u128{lo: wrapPow10(m, -k)})
		}
		return a.addMag(x, neg, mul128(m, pow10[-k]))
	}

	// Integral part at the engine's scale
	var (
		q    uint64
		part TruncatedPart
	)
	if k < len(pow10) {
		p := pow10[k]
		q = m / p
		part = partOf(m%p, p)
	} else if m != 0 {
		part = PartLessThanHalf
	}
	t, err := a.addMag(x, neg, u128{lo: q})
	if err != nil {
		return 0, err
	}
	if part == PartZero {
		return t, nil
	}

	// Fractional part
	fs := 1
	if neg {
		fs = -1
	}
	ts := sign(t)
	switch {
	case q > magLimit(x, neg):
		// Wrapped, the exact result has the sign of the fraction
		return a.round(fs, t, part)
	case ts == 0:
		return a.round(fs, 0, part)
	case ts == fs:
		return a.round(ts, t, part)
	}
	return a.round(ts, t-int64(ts), part.complement())
}

// round applies the rounding increment to a value truncated towards zero.
func (a *Arithmetic) round(sign int, truncated int64, part TruncatedPart) (int64, error) {
	inc, err := a.rounding.Increment(sign, truncated, part)
	if err != nil {
		return 0, err
	}
	if inc == 0 {
		return truncated, nil
	}
	return a.add(truncated, inc)
}

// roundQuotient converts a magnitude truncated towards zero into a signed
// unscaled value and rounds it.
// If over is true, q holds only the lowest 64 bits of the magnitude.
func (a *Arithmetic) roundQuotient(neg bool, q uint64, part TruncatedPart, over bool) (int64, error) {
	return roundMagnitude(a.rounding, a.overflow, neg, q, part, over)
}

func roundMagnitude(r RoundingMode, o OverflowMode, neg bool, q uint64, part TruncatedPart, over bool) (int64, error) {
	limit := uint64(math.MaxInt64)
	if neg {
		limit++
	}
	if o == Checked && (over || q > limit) {
		return 0, ErrOverflow
	}
	t := int64(q)
	s := 1
	if neg {
		t = -t
		s = -1
	}
	inc, err := r.Increment(s, t, part)
	if err != nil {
		return 0, err
	}
	if inc == 0 {
		return t, nil
	}
	if o == Checked {
		z, ok := addExact(t, inc)
		if !ok {
			return 0, ErrOverflow
		}
		return z, nil
	}
	return t + inc, nil
}

// scaleUp calculates x × p for a power p.
func (a *Arithmetic) scaleUp(x int64, p uint64) (int64, error) {
	z := mul128(uabs(x), p)
	return a.roundQuotient(x < 0, z.lo, PartZero, z.hi != 0)
}

// wrapPow10 calculates x × 10^n modulo 2^64.
func wrapPow10(x uint64, n int) uint64 {
	if n >= 64 {
		return 0 // 10^n is a multiple of 2^64
	}
	for n > 0 {
		k := min(n, len(pow10)-1)
		x *= pow10[k]
		n -= k
	}
	return x
}
