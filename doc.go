/*
Package fixed implements arithmetic on 64-bit fixed-point decimal numbers.
It is specifically designed for use in transactional financial systems,
where amounts need deterministic rounding and an explicit overflow policy
without the cost of arbitrary-precision decimals.

# Representation

A fixed-point decimal is an int64, the unscaled value, together with a scale
known to the caller.
The numerical value of an unscaled value u at scale s is u / 10^s.
For example, at scale 2 the unscaled value 12345 represents 123.45.
The range of allowed values for the scale is from 0 to [MaxScale].

Unscaled values carry no scale of their own.
All operations are provided by an engine, [Arithmetic], which fixes the
scale, the [RoundingMode] and the [OverflowMode] of every operation.
Engines are obtained once with [Get] and shared:

	a := fixed.MustGet(2, fixed.RoundHalfEven, fixed.Checked)
	x := a.MustParse("1.50")
	y, err := a.Pow(x, 3) // 3.38

# Constraints

The range of a decimal is determined by its scale.
Here are the ranges for frequently used scales:

	| Example      | Scale | Minimum                    | Maximum                   |
	| ------------ | ----- | -------------------------- | ------------------------- |
	| Japanese Yen | 0     | -9,223,372,036,854,775,808 | 9,223,372,036,854,775,807 |
	| US Dollar    | 2     | -92,233,720,368,547,758.08 | 92,233,720,368,547,758.07 |
	| Omani Rial   | 3     | -9,223,372,036,854,775.808 | 9,223,372,036,854,775.807 |
	| Bitcoin      | 8     | -92,233,720,368.54775808   | 92,233,720,368.54775807   |
	| Etherium     | 9     | -9,223,372,036.854775808   | 9,223,372,036.854775807   |

Special values such as NaN, infinity, or negative zero are not supported.

# Conversions

The engine provides methods for converting unscaled values:

  - from/to string:
    [Arithmetic.Parse], [Arithmetic.Text], [Arithmetic.AppendDecimal].
  - from/to float64:
    [Arithmetic.FromFloat64], [Arithmetic.Float64].
  - from/to int64:
    [Arithmetic.FromInt64], [Arithmetic.Int64].
  - from/to other scales:
    [Arithmetic.FromUnscaled], [Arithmetic.Unscaled].
  - from/to arbitrary precision:
    [Arithmetic.FromBigInt], [Arithmetic.BigInt],
    [Arithmetic.FromDecimal], [Arithmetic.Decimal].

# Operations

Every operation is computed with 64-bit integers only.
Multiplication splits each operand into an integral and a fractional part,
and at scales above 9 the fractional part is split again into two 9-digit
limbs, so that every partial product fits into 64 bits.
Division, square root and conversions widen the dividend to 128 bits made
of two 64-bit limbs.
Only [Arithmetic.Pow] falls back to [big.Int] for exponents that cannot be
handled by repeated squaring.

# Rounding

The result of every operation is the one that would be obtained by computing
the exact mathematical result with infinite precision and then rounding it
to the engine's scale with the engine's rounding mode.
[Arithmetic.Pow] may occasionally round an inexact power so that it is
off by 1 unit in the last place. Exact powers are never affected.

The rounding decision is made in one place, [RoundingMode.Increment], from
the sign of the exact result, the parity of the truncated result and the
[TruncatedPart] classification of the discarded remainder.

# Errors

All methods are panic-free and pure, except for the Must functions.
Errors are returned in the following cases:

  - Overflow.
    [Checked] engines return [ErrOverflow] for out-of-range results.
    [Unchecked] engines wrap around like native integers.
    Parsing and conversions from float64 and arbitrary-precision numbers
    always return [ErrOverflow] for out-of-range values.

  - Division by Zero.
    [Arithmetic.Quo], [Arithmetic.Inv], [Arithmetic.QuoRem] and
    [Arithmetic.Pow] with a negative exponent return [ErrDivisionByZero].

  - Rounding Necessary.
    Engines with [RoundUnnecessary] return [ErrRoundingNecessary] instead of
    discarding non-zero digits.

  - Invalid Operation.
    [Arithmetic.Sqrt] of a negative value returns [ErrInvalidOperation].

Every error wraps one of the exported sentinels, use [errors.Is] to test
for a particular kind.

[big.Int]: https://pkg.go.dev/math/big#Int
[errors.Is]: https://pkg.go.dev/errors#Is
*/
package fixed
