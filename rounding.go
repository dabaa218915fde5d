package fixed

import (
	"fmt"

	"github.com/pkg/errors"
)

// RoundingMode is a strategy for discarding the digits of a result that
// cannot be represented at the engine's scale.
type RoundingMode int8

const (
	RoundUp          RoundingMode = iota // away from zero
	RoundDown                            // towards zero
	RoundCeiling                         // towards positive infinity
	RoundFloor                           // towards negative infinity
	RoundHalfUp                          // to nearest, ties away from zero
	RoundHalfDown                        // to nearest, ties towards zero
	RoundHalfEven                        // to nearest, ties to the even neighbour
	RoundUnnecessary                     // exact results only
	numRoundingModes
)

var roundingModeNames = [numRoundingModes]string{
	RoundUp:          "up",
	RoundDown:        "down",
	RoundCeiling:     "ceiling",
	RoundFloor:       "floor",
	RoundHalfUp:      "half-up",
	RoundHalfDown:    "half-down",
	RoundHalfEven:    "half-even",
	RoundUnnecessary: "unnecessary",
}

// RoundingModes returns all rounding modes in declaration order.
func RoundingModes() []RoundingMode {
	modes := make([]RoundingMode, numRoundingModes)
	for i := range modes {
		modes[i] = RoundingMode(i)
	}
	return modes
}

func (m RoundingMode) valid() bool {
	return 0 <= m && m < numRoundingModes
}

// String implements the [fmt.Stringer] interface.
func (m RoundingMode) String() string {
	if !m.valid() {
		return fmt.Sprintf("RoundingMode(%d)", int8(m))
	}
	return roundingModeNames[m]
}

// ParseRoundingMode converts a name returned by [RoundingMode.String]
// back to the rounding mode.
// Underscores are accepted in place of dashes.
func ParseRoundingMode(s string) (RoundingMode, error) {
	for m, name := range roundingModeNames {
		if s == name || s == underscored(name) {
			return RoundingMode(m), nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidMode, "rounding mode %q", s)
}

// MarshalText implements the [encoding.TextMarshaler] interface.
func (m RoundingMode) MarshalText() ([]byte, error) {
	if !m.valid() {
		return nil, errors.Wrapf(ErrInvalidMode, "rounding mode %d", int8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (m *RoundingMode) UnmarshalText(text []byte) error {
	var err error
	*m, err = ParseRoundingMode(string(text))
	return err
}

func underscored(name string) string {
	b := []byte(name)
	for i := range b {
		if b[i] == '-' {
			b[i] = '_'
		}
	}
	return string(b)
}

// TruncatedPart classifies a discarded remainder relative to half of the
// divisor it was produced by.
type TruncatedPart int8

const (
	PartZero            TruncatedPart = iota // nothing was discarded
	PartLessThanHalf                         // 0 < remainder < divisor / 2
	PartEqualToHalf                          // remainder = divisor / 2
	PartGreaterThanHalf                      // divisor / 2 < remainder < divisor
)

var truncatedPartNames = [...]string{
	PartZero:            "zero",
	PartLessThanHalf:    "less-than-half",
	PartEqualToHalf:     "equal-to-half",
	PartGreaterThanHalf: "greater-than-half",
}

// String implements the [fmt.Stringer] interface.
func (p TruncatedPart) String() string {
	if p < 0 || int(p) >= len(truncatedPartNames) {
		return fmt.Sprintf("TruncatedPart(%d)", int8(p))
	}
	return truncatedPartNames[p]
}

// complement returns the classification of divisor - remainder.
func (p TruncatedPart) complement() TruncatedPart {
	switch p {
	case PartLessThanHalf:
		return PartGreaterThanHalf
	case PartGreaterThanHalf:
		return PartLessThanHalf
	}
	return p
}

// Increment returns the value that has to be added to the truncated result
// to obtain the rounded result: -1, 0 or +1.
//
// The sign is the sign of the exact result, truncated is the exact result
// rounded towards zero, and part classifies what was discarded.
// Increment returns [ErrRoundingNecessary] if the mode is [RoundUnnecessary]
// and part is not [PartZero].
func (m RoundingMode) Increment(sign int, truncated int64, part TruncatedPart) (int64, error) {
	if part == PartZero {
		return 0, nil
	}
	inc := int64(1)
	if sign < 0 {
		inc = -1
	}
	switch m {
	case RoundUp:
		return inc, nil
	case RoundDown:
		return 0, nil
	case RoundCeiling:
		if sign > 0 {
			return 1, nil
		}
		return 0, nil
	case RoundFloor:
		if sign < 0 {
			return -1, nil
		}
		return 0, nil
	case RoundHalfUp:
		if part >= PartEqualToHalf {
			return inc, nil
		}
		return 0, nil
	case RoundHalfDown:
		if part == PartGreaterThanHalf {
			return inc, nil
		}
		return 0, nil
	case RoundHalfEven:
		if part == PartGreaterThanHalf || (part == PartEqualToHalf && truncated&1 != 0) {
			return inc, nil
		}
		return 0, nil
	case RoundUnnecessary:
		return 0, ErrRoundingNecessary
	}
	return 0, ErrInvalidMode
}

// partOf classifies remainder r of a division by d, where r < d.
func partOf(r, d uint64) TruncatedPart {
	if r == 0 {
		return PartZero
	}
	h := d - r
	switch {
	case r < h:
		return PartLessThanHalf
	case r == h:
		return PartEqualToHalf
	}
	return PartGreaterThanHalf
}

// partOf128 is like partOf but for 128-bit operands.
func partOf128(r, d u128) TruncatedPart {
	if r.isZero() {
		return PartZero
	}
	switch r.cmp(d.sub(r)) {
	case -1:
		return PartLessThanHalf
	case 0:
		return PartEqualToHalf
	}
	return PartGreaterThanHalf
}

// partOfPow2 classifies the lowest n bits of x, discarded by a right
// shift by n.
// Bits of x above n are ignored.
func partOfPow2(x uint64, n uint) TruncatedPart {
	switch {
	case n == 0:
		return PartZero
	case n > 64:
		if x == 0 {
			return PartZero
		}
		return PartLessThanHalf
	}
	half := uint64(1) << (n - 1)
	r := x & (half<<1 - 1) // n = 64 wraps the mask to all ones
	switch {
	case r == 0:
		return PartZero
	case r < half:
		return PartLessThanHalf
	case r == half:
		return PartEqualToHalf
	}
	return PartGreaterThanHalf
}

// partOfDigit classifies a discarded decimal tail given its first digit
// and whether any of the following digits is non-zero.
func partOfDigit(first byte, sticky bool) TruncatedPart {
	switch {
	case first == 0 && !sticky:
		return PartZero
	case first < 5:
		return PartLessThanHalf
	case first == 5 && !sticky:
		return PartEqualToHalf
	}
	return PartGreaterThanHalf
}

// withSticky adjusts the classification of an exact remainder when the
// true remainder is known to be slightly larger.
func (p TruncatedPart) withSticky(sticky bool) TruncatedPart {
	if !sticky {
		return p
	}
	switch p {
	case PartZero:
		return PartLessThanHalf
	case PartEqualToHalf:
		return PartGreaterThanHalf
	}
	return p
}
