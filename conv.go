package fixed

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// FromInt64 converts the integer n to an unscaled value.
func (a *Arithmetic) FromInt64(n int64) (int64, error) {
	if !a.checked() {
		return a.metrics.MulByFactor(n), nil
	}
	z, ok := a.metrics.MulByFactorExact(n)
	if !ok {
		return 0, a.wrap(ErrOverflow, "FromInt64", n)
	}
	return z, nil
}

// FromUnscaled converts u × 10^-uScale to an unscaled value at the engine's
// scale, rounding if uScale is greater than the engine's scale.
func (a *Arithmetic) FromUnscaled(u int64, uScale int) (int64, error) {
	z, err := a.mulPow10(u, a.metrics.scale-uScale)
	if err != nil {
		return 0, a.wrap(err, "FromUnscaled", u, uScale)
	}
	return z, nil
}

// Unscaled converts x to an unscaled value with the given scale,
// rounding if the target scale is less than the engine's scale.
func (a *Arithmetic) Unscaled(x int64, scale int) (int64, error) {
	z, err := a.mulPow10(x, scale-a.metrics.scale)
	if err != nil {
		return 0, a.wrap(err, "Unscaled", x, scale)
	}
	return z, nil
}

// Int64 converts x to an integer rounded with the engine's rounding mode.
func (a *Arithmetic) Int64(x int64) (int64, error) {
	z, err := a.quoPow10(x, a.metrics.scale)
	if err != nil {
		return 0, a.wrap(err, "Int64", x)
	}
	return z, nil
}

// FromBigInt converts the integer b to an unscaled value.
// It returns [ErrOverflow] regardless of the overflow mode if the result
// is out of range.
func (a *Arithmetic) FromBigInt(b *big.Int) (int64, error) {
	v := getBint()
	defer putBint(v)
	(*big.Int)(v).Abs(b)
	v.lsh(v, a.metrics.scale)
	if !v.isUint64() {
		return 0, a.wrap(ErrOverflow, "FromBigInt", b)
	}
	z, err := roundMagnitude(a.rounding, Checked, b.Sign() < 0, v.low64(), PartZero, false)
	if err != nil {
		return 0, a.wrap(err, "FromBigInt", b)
	}
	return z, nil
}

// BigInt converts x to an integer rounded with the engine's rounding mode.
func (a *Arithmetic) BigInt(x int64) (*big.Int, error) {
	z, err := a.quoPow10(x, a.metrics.scale)
	if err != nil {
		return nil, a.wrap(err, "BigInt", x)
	}
	return big.NewInt(z), nil
}

// FromDecimal converts an arbitrary-precision decimal to an unscaled value,
// rounding the digits beyond the engine's scale.
// It returns [ErrOverflow] regardless of the overflow mode if the result
// is out of range.
func (a *Arithmetic) FromDecimal(d decimal.Decimal) (int64, error) {
	z, err := a.fromDecimal(d)
	if err != nil {
		return 0, a.wrap(err, "FromDecimal", d)
	}
	return z, nil
}

func (a *Arithmetic) fromDecimal(d decimal.Decimal) (int64, error) {
	coef := d.Coefficient()
	neg := coef.Sign() < 0
	c := (*bint)(coef.Abs(coef))
	if c.sign() == 0 {
		return 0, nil
	}

	// d = coef × 10^exp = coef × 10^(exp + scale) × 10^-scale
	shift := int(d.Exponent()) + a.metrics.scale
	v := getBint()
	defer putBint(v)
	var part TruncatedPart
	switch {
	case shift >= len(pow10):
		return 0, ErrOverflow
	case shift >= 0:
		v.lsh(c, shift)
	case -shift > c.prec():
		// d < 10^-scale / 10
		part = PartLessThanHalf
		v.setUint64(0)
	default:
		part = v.rshPart(c, -shift)
	}
	if !v.isUint64() {
		return 0, ErrOverflow
	}
	return roundMagnitude(a.rounding, Checked, neg, v.low64(), part, false)
}

// Decimal converts x to an arbitrary-precision decimal, which is exact.
func (a *Arithmetic) Decimal(x int64) decimal.Decimal {
	return decimal.New(x, -int32(a.metrics.scale))
}
