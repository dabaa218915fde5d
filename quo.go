package fixed

import "math"

// Quo returns x / y.
func (a *Arithmetic) Quo(x, y int64) (int64, error) {
	z, err := a.quo(x, y)
	if err != nil {
		return 0, a.wrap(err, "Quo", x, y)
	}
	return z, nil
}

// Inv returns 1 / x.
func (a *Arithmetic) Inv(x int64) (int64, error) {
	z, err := a.quo(a.metrics.factor, x)
	if err != nil {
		return 0, a.wrap(err, "Inv", x)
	}
	return z, nil
}

// QuoInt64 returns x / n, where n is an integer rather than an unscaled value.
func (a *Arithmetic) QuoInt64(x, n int64) (int64, error) {
	if n == 0 {
		return 0, a.wrap(ErrDivisionByZero, "QuoInt64", x, n)
	}
	ux, un := uabs(x), uabs(n)
	z, err := a.roundQuotient((x < 0) != (n < 0), ux/un, partOf(ux%un, un), false)
	if err != nil {
		return 0, a.wrap(err, "QuoInt64", x, n)
	}
	return z, nil
}

// QuoUnscaled returns x / (u × 10^-uScale), rounded to the engine's scale.
// The scale of u must be in [0, 19].
func (a *Arithmetic) QuoUnscaled(x, u int64, uScale int) (int64, error) {
	switch {
	case uScale < 0 || uScale >= len(pow10):
		return 0, a.wrap(ErrScaleRange, "QuoUnscaled", x, u, uScale)
	case u == 0:
		return 0, a.wrap(ErrDivisionByZero, "QuoUnscaled", x, u, uScale)
	}
	z, err := a.mulQuo((x < 0) != (u < 0), uabs(x), pow10[uScale], uabs(u))
	if err != nil {
		return 0, a.wrap(err, "QuoUnscaled", x, u, uScale)
	}
	return z, nil
}

// QuoRem returns the integral quotient q = trunc(x / y) and the remainder
// r = x - q × y.
// Both are unscaled values, q is always a whole number.
func (a *Arithmetic) QuoRem(x, y int64) (q, r int64, err error) {
	q, r, err = a.quoRem(x, y)
	if err != nil {
		return 0, 0, a.wrap(err, "QuoRem", x, y)
	}
	return q, r, nil
}

// QuoToInt returns the integral quotient trunc(x / y) as an unscaled value.
func (a *Arithmetic) QuoToInt(x, y int64) (int64, error) {
	q, _, err := a.quoRem(x, y)
	if err != nil {
		return 0, a.wrap(err, "QuoToInt", x, y)
	}
	return q, nil
}

// Rem returns x - trunc(x / y) × y, which has the sign of x.
func (a *Arithmetic) Rem(x, y int64) (int64, error) {
	if y == 0 {
		return 0, a.wrap(ErrDivisionByZero, "Rem", x, y)
	}
	if y == -1 {
		return 0, nil
	}
	return x % y, nil
}

func (a *Arithmetic) quoRem(x, y int64) (q, r int64, err error) {
	if y == 0 {
		return 0, 0, ErrDivisionByZero
	}
	if y == -1 {
		if a.checked() && x == math.MinInt64 {
			return 0, 0, ErrOverflow
		}
		return a.scaleInt(-x, 0)
	}
	return a.scaleInt(x/y, x%y)
}

// scaleInt converts the integral quotient into an unscaled value.
func (a *Arithmetic) scaleInt(q, r int64) (int64, int64, error) {
	if !a.checked() {
		return a.metrics.MulByFactor(q), r, nil
	}
	z, ok := a.metrics.MulByFactorExact(q)
	if !ok {
		return 0, 0, ErrOverflow
	}
	return z, r, nil
}

func (a *Arithmetic) quo(x, y int64) (int64, error) {
	f := a.metrics.factor

	// Special cases
	switch {
	case y == 0:
		return 0, ErrDivisionByZero
	case x == 0:
		return 0, nil
	case f == 1:
		ux, uy := uabs(x), uabs(y)
		return a.roundQuotient((x < 0) != (y < 0), ux/uy, partOf(ux%uy, uy), false)
	case y == f:
		return x, nil
	case y == -f:
		return a.neg(x)
	case x == y:
		return f, nil
	case x == -y:
		return -f, nil
	}

	neg := (x < 0) != (y < 0)
	ux, uy := uabs(x), uabs(y)

	// Division by a power of ten
	if k, ok := log10(uy); ok {
		s := a.metrics.scale
		if k <= s {
			z := mul128(ux, pow10[s-k])
			return a.roundQuotient(neg, z.lo, PartZero, z.hi != 0)
		}
		p := pow10[k-s]
		return a.roundQuotient(neg, ux/p, partOf(ux%p, p), false)
	}

	// General case
	uf := uint64(f)
	if ux <= math.MaxUint64/uf {
		n := ux * uf
		return a.roundQuotient(neg, n/uy, partOf(n%uy, uy), false)
	}
	return a.mulQuo(neg, ux, uf, uy)
}

// log10 returns k if x = 10^k.
func log10(x uint64) (int, bool) {
	for k, p := range pow10 {
		switch {
		case x == p:
			return k, true
		case x < p:
			return 0, false
		}
	}
	return 0, false
}

// MulPow10 returns x × 10^n.
// Negative n divides with rounding.
func (a *Arithmetic) MulPow10(x int64, n int) (int64, error) {
	z, err := a.mulPow10(x, n)
	if err != nil {
		return 0, a.wrap(err, "MulPow10", x, n)
	}
	return z, nil
}

// QuoPow10 returns x / 10^n.
// Negative n multiplies.
func (a *Arithmetic) QuoPow10(x int64, n int) (int64, error) {
	z, err := a.quoPow10(x, n)
	if err != nil {
		return 0, a.wrap(err, "QuoPow10", x, n)
	}
	return z, nil
}

// maxShift bounds shift distances, every shift beyond it gives the same
// result.
const maxShift = 1 << 10

func clampShift(n int) int {
	return max(-maxShift, min(n, maxShift))
}

func (a *Arithmetic) mulPow10(x int64, n int) (int64, error) {
	n = clampShift(n)
	switch {
	case n < 0:
		return a.quoPow10(x, -n)
	case n == 0 || x == 0:
		return x, nil
	case n >= len(pow10):
		if a.checked() {
			return 0, ErrOverflow
		}
		return int64(wrapPow10(uint64(x), n)), nil
	}
	return a.scaleUp(x, pow10[n])
}

func (a *Arithmetic) quoPow10(x int64, n int) (int64, error) {
	n = clampShift(n)
	switch {
	case n < 0:
		return a.mulPow10(x, -n)
	case n == 0 || x == 0:
		return x, nil
	case n >= len(pow10):
		// |x| < 10^n / 2
		return a.roundQuotient(x < 0, 0, PartLessThanHalf, false)
	}
	ux, p := uabs(x), pow10[n]
	return a.roundQuotient(x < 0, ux/p, partOf(ux%p, p), false)
}

// Lsh returns x × 2^n.
// Negative n divides with rounding.
func (a *Arithmetic) Lsh(x int64, n int) (int64, error) {
	z, err := a.lsh(x, n)
	if err != nil {
		return 0, a.wrap(err, "Lsh", x, n)
	}
	return z, nil
}

// Rsh returns x / 2^n rounded with the engine's rounding mode.
// Negative n multiplies.
func (a *Arithmetic) Rsh(x int64, n int) (int64, error) {
	z, err := a.rsh(x, n)
	if err != nil {
		return 0, a.wrap(err, "Rsh", x, n)
	}
	return z, nil
}

func (a *Arithmetic) lsh(x int64, n int) (int64, error) {
	n = clampShift(n)
	switch {
	case n < 0:
		return a.rsh(x, -n)
	case n == 0 || x == 0:
		return x, nil
	case !a.checked():
		if n >= 64 {
			return 0, nil
		}
		return x << n, nil
	}
	z, ok := lshExact(x, n)
	if !ok {
		return 0, ErrOverflow
	}
	return z, nil
}

func (a *Arithmetic) rsh(x int64, n int) (int64, error) {
	n = clampShift(n)
	switch {
	case n < 0:
		return a.lsh(x, -n)
	case n == 0 || x == 0:
		return x, nil
	}
	ux := uabs(x)
	var q uint64
	if n < 64 {
		q = ux >> n
	}
	return a.roundQuotient(x < 0, q, partOfPow2(ux, uint(n)), false)
}

// Round returns x rounded to the given number of digits after the decimal
// point, keeping the engine's scale.
// Negative precision rounds to tens, hundreds, and so on.
func (a *Arithmetic) Round(x int64, precision int) (int64, error) {
	z, err := a.roundTo(x, precision)
	if err != nil {
		return 0, a.wrap(err, "Round", x, precision)
	}
	return z, nil
}

func (a *Arithmetic) roundTo(x int64, precision int) (int64, error) {
	drop := a.metrics.scale - max(precision, -maxShift)
	if drop <= 0 || x == 0 {
		return x, nil
	}
	if drop >= len(pow10) {
		// Only zero or ±1 × 10^drop are candidates, the latter never fits
		t, err := a.roundQuotient(x < 0, 0, PartLessThanHalf, false)
		if err != nil || t == 0 {
			return t, err
		}
		if a.checked() {
			return 0, ErrOverflow
		}
		return int64(wrapPow10(uint64(t), drop)), nil
	}
	t, err := a.quoPow10(x, drop)
	if err != nil {
		return 0, err
	}
	return a.scaleUp(t, pow10[drop])
}

// Avg returns (x + y) / 2 rounded with the engine's rounding mode.
// It never overflows.
func (a *Arithmetic) Avg(x, y int64) (int64, error) {
	z, err := a.avg(x, y)
	if err != nil {
		return 0, a.wrap(err, "Avg", x, y)
	}
	return z, nil
}

func (a *Arithmetic) avg(x, y int64) (int64, error) {
	fl := (x & y) + (x^y)>>1 // ⌊(x + y) / 2⌋
	if (x^y)&1 == 0 {
		return fl, nil
	}
	if fl >= 0 {
		return a.round(1, fl, PartEqualToHalf)
	}
	return a.round(-1, fl+1, PartEqualToHalf)
}
