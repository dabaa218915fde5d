package fixed

import (
	"strconv"

	"github.com/pkg/errors"
)

// Parse converts a decimal string to an unscaled value.
//
// The string must match the grammar:
//
//	sign           ::= '+' | '-'
//	digits         ::= { '0' | '1' | '2' | '3' | '4' | '5' | '6' | '7' | '8' | '9' }
//	significand    ::= digits '.' digits | '.' digits | digits '.' | digits
//	numeric-string ::= [sign] significand
//
// Digits beyond the engine's scale are rounded with the engine's rounding
// mode.
//
// Parse returns error:
//   - [ErrInvalidDecimal] if the string does not represent a decimal.
//   - [ErrOverflow] if the value is out of range, regardless of the
//     overflow mode.
//   - [ErrRoundingNecessary] if digits would be discarded with [RoundUnnecessary].
func (a *Arithmetic) Parse(s string) (int64, error) {
	z, err := a.parse(s)
	if err != nil {
		return 0, errors.Wrapf(err, "%v.Parse(%q)", a, s)
	}
	return z, nil
}

func (a *Arithmetic) parse(s string) (int64, error) {
	var (
		pos     int
		width   int
		neg     bool
		coef    uint64
		scale   int
		hascoef bool
		first   byte // the first discarded digit
		sticky  bool // any of the following discarded digits is non-zero
		ok      bool
	)

	width = len(s)

	// Sign
	switch {
	case pos == width:
		// skip
	case s[pos] == '-':
		neg = true
		pos++
	case s[pos] == '+':
		pos++
	}

	// Integer
	for pos < width && s[pos] >= '0' && s[pos] <= '9' {
		hascoef = true
		coef, ok = fsa(coef, s[pos]-'0')
		if !ok {
			return 0, ErrOverflow
		}
		pos++
	}

	// Fraction
	if pos < width && s[pos] == '.' {
		pos++
		for pos < width && s[pos] >= '0' && s[pos] <= '9' {
			hascoef = true
			d := s[pos] - '0'
			switch {
			case scale < a.metrics.scale:
				coef, ok = fsa(coef, d)
				if !ok {
					return 0, ErrOverflow
				}
				scale++
			case scale == a.metrics.scale:
				first = d
				scale++
			default:
				sticky = sticky || d != 0
			}
			pos++
		}
	}

	if pos != width || !hascoef {
		return 0, ErrInvalidDecimal
	}

	// Missing fraction digits
	if scale < a.metrics.scale {
		p := mul128(coef, pow10[a.metrics.scale-scale])
		if p.hi != 0 {
			return 0, ErrOverflow
		}
		coef = p.lo
	}

	return roundMagnitude(a.rounding, Checked, neg, coef, partOfDigit(first, sticky), false)
}

// fsa (Fused Shift and Addition) calculates x × 10 + d and checks overflow.
func fsa(x uint64, d byte) (uint64, bool) {
	p := mul128(x, 10)
	if p.hi != 0 {
		return 0, false
	}
	z := p.lo + uint64(d)
	if z < p.lo {
		return 0, false
	}
	return z, true
}

// Text returns the decimal representation of x with exactly scale digits
// after the decimal point.
func (a *Arithmetic) Text(x int64) string {
	var buf [24]byte
	return string(a.AppendDecimal(buf[:0], x))
}

// AppendDecimal appends the decimal representation of x to dst,
// see [Arithmetic.Text].
func (a *Arithmetic) AppendDecimal(dst []byte, x int64) []byte {
	if x < 0 {
		dst = append(dst, '-')
	}
	u := uabs(x)
	if a.metrics.scale == 0 {
		return strconv.AppendUint(dst, u, 10)
	}
	f := uint64(a.metrics.factor)
	dst = strconv.AppendUint(dst, u/f, 10)
	dst = append(dst, '.')

	// Fraction is zero-padded to the scale, then filled from the right
	end := len(dst) + a.metrics.scale
	for len(dst) < end {
		dst = append(dst, '0')
	}
	for i, r := end-1, u%f; r != 0; i, r = i-1, r/10 {
		dst[i] = byte(r%10) + '0'
	}
	return dst
}
