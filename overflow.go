package fixed

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/pkg/errors"
)

// OverflowMode defines what happens when a result does not fit into 64 bits.
type OverflowMode int8

const (
	// Unchecked engines silently wrap around like native integer arithmetic.
	Unchecked OverflowMode = iota
	// Checked engines fail with [ErrOverflow].
	Checked
	numOverflowModes
)

var overflowModeNames = [numOverflowModes]string{
	Unchecked: "unchecked",
	Checked:   "checked",
}

func (o OverflowMode) valid() bool {
	return 0 <= o && o < numOverflowModes
}

// String implements the [fmt.Stringer] interface.
func (o OverflowMode) String() string {
	if !o.valid() {
		return fmt.Sprintf("OverflowMode(%d)", int8(o))
	}
	return overflowModeNames[o]
}

// ParseOverflowMode converts a name returned by [OverflowMode.String]
// back to the overflow mode.
func ParseOverflowMode(s string) (OverflowMode, error) {
	for o, name := range overflowModeNames {
		if s == name {
			return OverflowMode(o), nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidMode, "overflow mode %q", s)
}

// MarshalText implements the [encoding.TextMarshaler] interface.
func (o OverflowMode) MarshalText() ([]byte, error) {
	if !o.valid() {
		return nil, errors.Wrapf(ErrInvalidMode, "overflow mode %d", int8(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (o *OverflowMode) UnmarshalText(text []byte) error {
	var err error
	*o, err = ParseOverflowMode(string(text))
	return err
}

// addExact calculates x + y and checks overflow.
// The sum overflows iff both operands have the same sign and the sign of
// the sum differs from it.
func addExact(x, y int64) (z int64, ok bool) {
	z = x + y
	if (x^z)&(y^z) < 0 {
		return 0, false
	}
	return z, true
}

// subExact calculates x - y and checks overflow.
func subExact(x, y int64) (z int64, ok bool) {
	z = x - y
	if (x^y)&(x^z) < 0 {
		return 0, false
	}
	return z, true
}

// mulExact calculates x * y and checks overflow.
//
// See Hacker's Delight, section 2-12: the product of an m-bit and an n-bit
// signed number has at most m + n bits, so the sum of the leading sign bits
// of both operands decides most cases without a division.
func mulExact(x, y int64) (z int64, ok bool) {
	n := bits.LeadingZeros64(uint64(x)) + bits.LeadingZeros64(^uint64(x)) +
		bits.LeadingZeros64(uint64(y)) + bits.LeadingZeros64(^uint64(y))
	z = x * y
	switch {
	case n > 65:
		return z, true
	case n < 64:
		return 0, false
	}
	// Borderline case, verify by division
	if (x < 0 && y == math.MinInt64) || (y < 0 && x == math.MinInt64) {
		return 0, false
	}
	if x != 0 && z/x != y {
		return 0, false
	}
	return z, true
}

// quoExact calculates x / y truncated towards zero and checks overflow.
// The only overflowing case is MinInt64 / -1.
// The divisor must not be zero.
func quoExact(x, y int64) (z int64, ok bool) {
	if x == math.MinInt64 && y == -1 {
		return 0, false
	}
	return x / y, true
}

// negExact calculates -x and checks overflow.
func negExact(x int64) (z int64, ok bool) {
	if x == math.MinInt64 {
		return 0, false
	}
	return -x, true
}

// absExact calculates |x| and checks overflow.
func absExact(x int64) (z int64, ok bool) {
	if x < 0 {
		return negExact(x)
	}
	return x, true
}

// lshExact calculates x * 2^n and checks overflow.
// The shift fits iff it does not exceed the number of redundant sign bits.
func lshExact(x int64, n int) (z int64, ok bool) {
	if x == 0 || n <= 0 {
		return x, true
	}
	var lz int
	if x < 0 {
		lz = bits.LeadingZeros64(^uint64(x))
	} else {
		lz = bits.LeadingZeros64(uint64(x))
	}
	if n >= lz {
		return 0, false
	}
	return x << n, true
}

// uabs returns |x| as an unsigned number, which is exact for MinInt64.
func uabs(x int64) uint64 {
	if x < 0 {
		return -uint64(x)
	}
	return uint64(x)
}

// sign returns -1, 0 or +1 depending on the sign of x.
func sign(x int64) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}
