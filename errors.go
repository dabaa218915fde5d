package fixed

import "github.com/pkg/errors"

// The following errors are returned by the engine.
// All of them are wrapped with the failed operation and its operands,
// use [errors.Is] to test for a particular kind.
var (
	// ErrOverflow is returned by checked engines when the result does not
	// fit into 64 bits at the engine's scale, and by text and big number
	// conversions regardless of the overflow mode.
	ErrOverflow = errors.New("overflow")

	// ErrDivisionByZero is returned when the divisor is 0, regardless of
	// the overflow mode.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrRoundingNecessary is returned by engines with [RoundUnnecessary]
	// when a non-zero remainder would have to be discarded.
	ErrRoundingNecessary = errors.New("rounding necessary")

	// ErrInvalidOperation is returned when an operand is outside of the
	// domain of the operation, for example a square root of a negative value.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrExponentRange is returned by [Arithmetic.Pow] when the absolute value
	// of the exponent exceeds [MaxPowExponent].
	ErrExponentRange = errors.New("exponent out of range")

	// ErrInvalidDecimal is returned when a text does not represent a decimal.
	ErrInvalidDecimal = errors.New("invalid decimal")

	// ErrScaleRange is returned when a scale is outside of [0, MaxScale].
	ErrScaleRange = errors.New("scale out of range")

	// ErrInvalidMode is returned for unknown rounding or overflow modes.
	ErrInvalidMode = errors.New("invalid mode")

	// ErrNotFinite is returned when converting NaN or an infinity.
	ErrNotFinite = errors.New("not a finite number")
)
