package fixed

// mulFunc calculates x × y / 10^scale truncated towards zero and classifies
// the discarded remainder.
// If checked is true, ok is false when the truncated product does not fit
// into int64, otherwise the product wraps around.
type mulFunc func(m *ScaleMetrics, x, y int64, checked bool) (z int64, part TruncatedPart, ok bool)

// limb is the base of the 9-digit limbs used by mulLarge.
const limb = 1_000_000_000

func mul64(x, y int64, checked bool) (int64, bool) {
	if checked {
		return mulExact(x, y)
	}
	return x * y, true
}

func add64(x, y int64, checked bool) (int64, bool) {
	if checked {
		return addExact(x, y)
	}
	return x + y, true
}

// mulLong is the multiplication at scale 0, which is exact.
func mulLong(_ *ScaleMetrics, x, y int64, checked bool) (int64, TruncatedPart, bool) {
	z, ok := mul64(x, y, checked)
	return z, PartZero, ok
}

// mulSmall is the multiplication at scales 1..9.
//
// Both operands are split at the decimal point, x = ix × F + fx, so that
//
//	x × y / F = ix × iy × F + ix × fy + iy × fx + fx × fy / F
//
// All terms have the sign of the product and |fx × fy| < F² fits into int64.
func mulSmall(m *ScaleMetrics, x, y int64, checked bool) (int64, TruncatedPart, bool) {
	ix, fx := m.split(x)
	iy, fy := m.split(y)

	z, ok := mul64(ix, iy, checked)
	if !ok {
		return 0, 0, false
	}
	z, ok = mul64(z, m.factor, checked)
	if !ok {
		return 0, 0, false
	}
	t, ok := mul64(ix, fy, checked)
	if !ok {
		return 0, 0, false
	}
	z, ok = add64(z, t, checked)
	if !ok {
		return 0, 0, false
	}
	t, ok = mul64(iy, fx, checked)
	if !ok {
		return 0, 0, false
	}
	z, ok = add64(z, t, checked)
	if !ok {
		return 0, 0, false
	}

	ff := fx * fy
	z, ok = add64(z, ff/m.factor, checked)
	if !ok {
		return 0, 0, false
	}
	return z, partOf(uabs(ff%m.factor), uint64(m.factor)), true
}

// mulLarge is the multiplication at scales 10..18.
//
// The integral parts are small enough that ix × fy and iy × fx fit into
// int64, but fx × fy does not. The fractional parts are split further
// into two 9-digit limbs, fx = fxh × 10^9 + fxl, and the product is
// accumulated in three lanes of 9 digits each:
//
//	fx × fy = a × 10^18 + b × 10^9 + c
func mulLarge(m *ScaleMetrics, x, y int64, checked bool) (int64, TruncatedPart, bool) {
	ix, fx := m.split(x)
	iy, fy := m.split(y)

	z, ok := mul64(ix, iy, checked)
	if !ok {
		return 0, 0, false
	}
	z, ok = mul64(z, m.factor, checked)
	if !ok {
		return 0, 0, false
	}
	z, ok = add64(z, ix*fy, checked)
	if !ok {
		return 0, 0, false
	}
	z, ok = add64(z, iy*fx, checked)
	if !ok {
		return 0, 0, false
	}

	// Fractional lanes
	fxh, fxl := fx/limb, fx%limb
	fyh, fyl := fy/limb, fy%limb
	a := fxh * fyh
	b := fxh*fyl + fxl*fyh
	c := fxl * fyl
	b += c / limb
	c %= limb
	a += b / limb
	b %= limb

	// fx × fy / F = a × 10^(18-scale) + (b × 10^9 + c) / F
	low := b*limb + c
	z, ok = add64(z, a*int64(pow10[2*9-m.scale])+low/m.factor, checked)
	if !ok {
		return 0, 0, false
	}
	return z, partOf(uabs(low%m.factor), uint64(m.factor)), true
}

// Mul returns x × y.
func (a *Arithmetic) Mul(x, y int64) (int64, error) {
	z, err := a.mul(x, y)
	if err != nil {
		return 0, a.wrap(err, "Mul", x, y)
	}
	return z, nil
}

// Square returns x².
func (a *Arithmetic) Square(x int64) (int64, error) {
	z, err := a.mul(x, x)
	if err != nil {
		return 0, a.wrap(err, "Square", x)
	}
	return z, nil
}

// MulInt64 returns x × n, where n is an integer rather than an unscaled value.
func (a *Arithmetic) MulInt64(x, n int64) (int64, error) {
	z, ok := mul64(x, n, a.checked())
	if !ok {
		return 0, a.wrap(ErrOverflow, "MulInt64", x, n)
	}
	return z, nil
}

// MulUnscaled returns x × u × 10^-uScale, rounded to the engine's scale.
// The scale of u must be in [0, 19].
func (a *Arithmetic) MulUnscaled(x, u int64, uScale int) (int64, error) {
	if uScale < 0 || uScale >= len(pow10) {
		return 0, a.wrap(ErrScaleRange, "MulUnscaled", x, u, uScale)
	}
	z, err := a.mulQuo((x < 0) != (u < 0), uabs(x), uabs(u), pow10[uScale])
	if err != nil {
		return 0, a.wrap(err, "MulUnscaled", x, u, uScale)
	}
	return z, nil
}

func (a *Arithmetic) mul(x, y int64) (int64, error) {
	z, part, ok := a.mulFn(a.metrics, x, y, a.checked())
	if !ok {
		return 0, ErrOverflow
	}
	if part == PartZero {
		return z, nil
	}
	return a.round(sign(x)*sign(y), z, part)
}

// mulQuo calculates x × y / d for magnitudes and rounds the result.
func (a *Arithmetic) mulQuo(neg bool, x, y, d uint64) (int64, error) {
	q, r, over := mulQuo(x, y, d)
	return a.roundQuotient(neg, q, partOf(r, d), over)
}
