package fixed

import (
	"math/bits"

	"github.com/pkg/errors"
)

// MaxPowExponent is the largest absolute value of the exponent accepted by
// [Arithmetic.Pow].
const MaxPowExponent = 999_999_999

// powPrec is the number of significant digits kept by the high-precision
// power path.
const powPrec = 36

// Pow returns x^n.
//
// Exact powers are always calculated exactly. When an unchecked engine
// overflows, the result is the wrapped correctly rounded power, provided
// that the power is exact or its operands are small enough for exact
// integer arithmetic. Otherwise the result is calculated with 36
// significant digits and may differ from the correctly rounded result by
// one unit in the last place.
func (a *Arithmetic) Pow(x int64, n int) (int64, error) {
	z, err := a.pow(x, n)
	if err != nil {
		return 0, a.wrap(err, "Pow", x, n)
	}
	return z, nil
}

func (a *Arithmetic) pow(x int64, n int) (int64, error) {
	f := a.metrics.factor

	// Special cases
	switch {
	case n < -MaxPowExponent || n > MaxPowExponent:
		return 0, ErrExponentRange
	case n == 0:
		return f, nil
	case x == 0:
		if n < 0 {
			return 0, ErrDivisionByZero
		}
		return 0, nil
	case x == f:
		return f, nil
	case x == -f:
		if n&1 == 0 {
			return f, nil
		}
		return -f, nil
	case x == 2*f || x == -2*f:
		one := f
		if x < 0 && n&1 != 0 {
			one = -f
		}
		return a.lsh(one, n)
	case n == 1:
		return x, nil
	case n == -1:
		return a.quo(f, x)
	case n == 2:
		return a.mul(x, x)
	case f == 1 && n > 0:
		return a.powLong(x, n)
	}

	// General case
	z, err := a.powHigh(x, n, Checked)
	if a.checked() || !errors.Is(err, ErrOverflow) {
		return z, err
	}
	return a.powWrap(x, n)
}

// powWrap calculates x^n for an unchecked engine when the result is known
// to overflow.
func (a *Arithmetic) powWrap(x int64, n int) (int64, error) {
	if z, ok := a.powExact(x, n); ok {
		return z, nil
	}
	k := int64(n)
	if k < 0 {
		k = -k
	}
	if k*int64(bits.Len64(uabs(x))+4*a.metrics.scale) <= maxPowBits {
		return a.powBig(x, n)
	}
	return a.powHigh(x, n, Unchecked)
}

// maxPowBits limits the size of the operands of powBig.
const maxPowBits = 1 << 16

// powExact returns the lowest 64 bits of x^n if x^n is a multiple of the
// unit in the last place.
func (a *Arithmetic) powExact(x int64, n int) (int64, bool) {
	s := int64(a.metrics.scale)
	k := int64(n)
	if k < 0 {
		k = -k
	}

	// |x| = m × 10^t, m is not divisible by 10
	m, t := uabs(x), int64(0)
	for m%10 == 0 {
		m /= 10
		t++
	}

	var mag uint64
	if n > 0 {
		// m^k × 10^(tk - s(k-1))
		e := t*k - s*(k-1)
		if e < 0 {
			return 0, false
		}
		mag = wrapPow10(powMod(m, k), int(min(e, 64)))
	} else {
		// 10^(s(k+1) - tk) / m^k, exact only if m = 2^i or m = 5^j
		e := s*(k+1) - t*k
		i := int64(bits.TrailingZeros64(m))
		r, j := m>>i, int64(0)
		for r%5 == 0 {
			r /= 5
			j++
		}
		if r != 1 || e < i*k || e < j*k {
			return 0, false
		}
		mag = powMod(5, e-j*k)
		if d := e - i*k; d < 64 {
			mag <<= d
		} else {
			mag = 0
		}
	}
	z := int64(mag)
	if x < 0 && n&1 != 0 {
		z = -z
	}
	return z, true
}

// powMod returns the lowest 64 bits of x^k.
func powMod(x uint64, k int64) uint64 {
	z := uint64(1)
	for ; k > 0; k >>= 1 {
		if k&1 != 0 {
			z *= x
		}
		x *= x
	}
	return z
}

// powBig calculates x^n by exact integer division.
func (a *Arithmetic) powBig(x int64, n int) (int64, error) {
	s := a.metrics.scale
	k := n
	if k < 0 {
		k = -k
	}
	num := getBint()
	defer putBint(num)
	den := getBint()
	defer putBint(den)
	if n > 0 {
		num.pow(uabs(x), k)
		den.pow10(s * (k - 1))
	} else {
		num.pow10(s * (k + 1))
		den.pow(uabs(x), k)
	}
	q := getBint()
	defer putBint(q)
	r := getBint()
	defer putBint(r)
	q.quoRem(num, den, r)
	return a.roundQuotient(x < 0 && n&1 != 0, q.low64(), partOfBig(r, den), !q.isUint64())
}

// powLong calculates x^n at scale 0 by repeated squaring.
// The last squaring of the base is never calculated, so it cannot cause
// a spurious overflow.
func (a *Arithmetic) powLong(x int64, n int) (int64, error) {
	checked := a.checked()
	z := int64(1)
	for {
		var ok bool
		if n&1 != 0 {
			if z, ok = mul64(z, x, checked); !ok {
				return 0, ErrOverflow
			}
		}
		n >>= 1
		if n == 0 {
			return z, nil
		}
		if x, ok = mul64(x, x, checked); !ok {
			return 0, ErrOverflow
		}
	}
}

// powHigh calculates x^n by binary exponentiation of decimals with powPrec
// significant digits.
func (a *Arithmetic) powHigh(x int64, n int, o OverflowMode) (int64, error) {
	var base, acc hdec
	base.init(uabs(x), -int64(a.metrics.scale))
	defer base.free()
	acc.init(1, 0)
	defer acc.free()

	e := n
	if e < 0 {
		e = -e
	}
	for {
		if e&1 != 0 {
			acc.mul(&base)
		}
		e >>= 1
		if e == 0 {
			break
		}
		base.mul(&base)
	}
	if n < 0 {
		acc.inv()
	}
	return acc.unscaled(a.rounding, o, a.metrics.scale, x < 0 && n&1 != 0)
}

// hdec is a positive decimal coef × 10^exp with at most powPrec digits in
// the coefficient.
// The inexact flag is sticky: it is set once any non-zero digit has been
// discarded.
type hdec struct {
	coef    *bint
	exp     int64
	inexact bool
}

func (h *hdec) init(coef uint64, exp int64) {
	h.coef = getBint()
	h.coef.setUint64(coef)
	h.exp = exp
	h.inexact = false
}

func (h *hdec) free() {
	putBint(h.coef)
	h.coef = nil
}

// mul calculates h = h × y, y may be h itself.
func (h *hdec) mul(y *hdec) {
	h.coef.mul(h.coef, y.coef)
	h.exp += y.exp
	h.inexact = h.inexact || y.inexact
	h.normalize()
}

// inv calculates h = 1 / h by long division of a power of ten.
func (h *hdec) inv() {
	k := powPrec + h.coef.prec()
	num := getBint()
	defer putBint(num)
	num.pow10(k)
	q := getBint()
	defer putBint(q)
	r := getBint()
	defer putBint(r)
	q.quoRem(num, h.coef, r)
	h.coef.setBint(q)
	h.exp = -int64(k) - h.exp
	h.inexact = h.inexact || r.sign() != 0
	h.normalize()
}

// normalize truncates the coefficient to powPrec digits.
func (h *hdec) normalize() {
	p := h.coef.prec()
	if p <= powPrec {
		return
	}
	d := p - powPrec
	if h.coef.rshPart(h.coef, d) != PartZero {
		h.inexact = true
	}
	h.exp += int64(d)
}

// unscaled rounds h to the given scale.
func (h *hdec) unscaled(r RoundingMode, o OverflowMode, scale int, neg bool) (int64, error) {
	shift := h.exp + int64(scale)

	// Integral result
	if shift >= 0 {
		part := PartZero.withSticky(h.inexact)
		if shift >= int64(len(pow10)) {
			// The coefficient is at least 1
			return roundMagnitude(r, o, neg, wrapPow10(h.coef.low64(), int(min(shift, 64))), part, true)
		}
		v := getBint()
		defer putBint(v)
		v.lsh(h.coef, int(shift))
		return roundMagnitude(r, o, neg, v.low64(), part, !v.isUint64())
	}

	// Fractional result
	k := -shift
	if k > int64(h.coef.prec()) {
		// h < 0.1
		return roundMagnitude(r, o, neg, 0, PartLessThanHalf, false)
	}
	q := getBint()
	defer putBint(q)
	part := q.rshPart(h.coef, int(k))
	return roundMagnitude(r, o, neg, q.low64(), part.withSticky(h.inexact), !q.isUint64())
}
