package fixed

import (
	"math"
	"math/bits"
)

// FromFloat64 converts f to an unscaled value, rounding the binary tail
// with the engine's rounding mode.
// FromFloat64 returns [ErrNotFinite] for NaN and infinities, and
// [ErrOverflow] regardless of the overflow mode if the result is out of
// range.
func (a *Arithmetic) FromFloat64(f float64) (int64, error) {
	z, err := a.fromFloat64(f)
	if err != nil {
		return 0, a.wrap(err, "FromFloat64", f)
	}
	return z, nil
}

func (a *Arithmetic) fromFloat64(f float64) (int64, error) {
	switch {
	case math.IsNaN(f) || math.IsInf(f, 0):
		return 0, ErrNotFinite
	case f == 0:
		return 0, nil
	}

	// f = ±sig × 2^exp
	b := math.Float64bits(f)
	neg := b>>63 != 0
	exp := int(b>>52) & 0x7ff
	sig := b & (1<<52 - 1)
	if exp == 0 {
		exp = 1 // subnormal
	} else {
		sig |= 1 << 52
	}
	exp -= 1023 + 52

	// Unscaled value = ±sig × 10^scale × 2^exp
	p := mul128(sig, uint64(a.metrics.factor))
	if exp >= 0 {
		if exp >= p.leadingZeros() {
			return 0, ErrOverflow
		}
		p = p.lsh(uint(exp))
		return roundMagnitude(a.rounding, Checked, neg, p.lo, PartZero, p.hi != 0)
	}
	q, part := p.rshPart(uint(-exp))
	return roundMagnitude(a.rounding, Checked, neg, q.lo, part, q.hi != 0)
}

// Float64 converts x to the nearest float64 in the direction given by
// the engine's rounding mode.
// With [RoundUnnecessary] it fails unless the conversion is exact.
func (a *Arithmetic) Float64(x int64) (float64, error) {
	f, err := a.float64(x)
	if err != nil {
		return 0, a.wrap(err, "Float64", x)
	}
	return f, nil
}

func (a *Arithmetic) float64(x int64) (float64, error) {
	if x == 0 {
		return 0, nil
	}
	neg := x < 0
	ux, uf := uabs(x), uint64(a.metrics.factor)

	// Shift the dividend left, so that the quotient has 55 to 64 bits
	k := max(0, 55+bits.Len64(uf)-bits.Len64(ux))
	n := u128{lo: ux}.lsh(uint(k))
	q, r := div128(n.hi, n.lo, uf)

	// Round the quotient to 53 bits
	drop := bits.Len64(q) - 53
	m := q >> drop
	part := partOfPow2(q, uint(drop)).withSticky(r != 0)
	s := 1
	t := int64(m)
	if neg {
		s = -1
		t = -t
	}
	inc, err := a.rounding.Increment(s, t, part)
	if err != nil {
		return 0, err
	}
	m = uabs(t + inc)
	if m == 1<<53 {
		m >>= 1
		drop++
	}
	f := math.Ldexp(float64(m), drop-k)
	if neg {
		f = -f
	}
	return f, nil
}

// MinFloat64 returns the float64 nearest to the smallest unscaled value.
// The value is calculated on first use.
func (a *Arithmetic) MinFloat64() float64 {
	f := a.minFloat.Load()
	if math.IsNaN(f) {
		f = boundFloat64(a.metrics.scale, math.MinInt64)
		a.minFloat.Store(f)
	}
	return f
}

// MaxFloat64 returns the float64 nearest to the largest unscaled value.
// The value is calculated on first use.
func (a *Arithmetic) MaxFloat64() float64 {
	f := a.maxFloat.Load()
	if math.IsNaN(f) {
		f = boundFloat64(a.metrics.scale, math.MaxInt64)
		a.maxFloat.Store(f)
	}
	return f
}

// boundFloat64 converts x with half-even rounding, which never fails.
func boundFloat64(scale int, x int64) float64 {
	f, err := arithmetics[scale][RoundHalfEven][Unchecked].float64(x)
	if err != nil {
		panic(err)
	}
	return f
}
