package fixed

// Sqrt returns √x.
// The root is the integer square root of x × 10^scale, which keeps the
// engine's scale, rounded according to the remainder.
func (a *Arithmetic) Sqrt(x int64) (int64, error) {
	z, err := a.sqrt(x)
	if err != nil {
		return 0, a.wrap(err, "Sqrt", x)
	}
	return z, nil
}

func (a *Arithmetic) sqrt(x int64) (int64, error) {
	switch {
	case x < 0:
		return 0, ErrInvalidOperation
	case x == 0:
		return 0, nil
	}
	r, rem := isqrt128(mul128(uint64(x), uint64(a.metrics.factor)))

	// (r + ½)² = r² + r + ¼ is never an integer, so the root is never
	// exactly halfway.
	var part TruncatedPart
	switch {
	case rem.isZero():
		part = PartZero
	case rem.cmp(u128{lo: r}) <= 0:
		part = PartLessThanHalf
	default:
		part = PartGreaterThanHalf
	}
	return a.round(1, int64(r), part)
}
