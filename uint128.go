package fixed

import (
	"fmt"
	"math/bits"
)

// u128 is an unsigned 128-bit integer made of two 64-bit limbs.
type u128 struct {
	hi, lo uint64
}

const mask32 = 1<<32 - 1

// mul128 calculates the full 128-bit product x * y.
// The operands are split into 32-bit halves, so that every partial product
// fits into 64 bits.
func mul128(x, y uint64) u128 {
	x0, x1 := x&mask32, x>>32
	y0, y1 := y&mask32, y>>32
	w0 := x0 * y0
	t := x1*y0 + w0>>32
	w1 := t & mask32
	w2 := t >> 32
	w1 += x0 * y1
	hi := x1*y1 + w2 + w1>>32
	return u128{hi: hi, lo: x * y}
}

// div128 calculates q = ⌊(hi, lo) / d⌋ and r = (hi, lo) - q * d.
// The quotient must fit into 64 bits, so hi must be less than d.
//
// This is Knuth's algorithm D with 32-bit digits, see also
// Hacker's Delight, section 9-4.
func div128(hi, lo, d uint64) (q, r uint64) {
	const b = 1 << 32
	if d == 0 || hi >= d {
		panic(fmt.Sprintf("div128(%v, %v, %v) failed: quotient overflow", hi, lo, d))
	}
	if hi == 0 {
		return lo / d, lo % d
	}

	// Normalize divisor, so that its top bit is set
	s := uint(bits.LeadingZeros64(d))
	d <<= s
	dn1, dn0 := d>>32, d&mask32
	un32 := hi<<s | lo>>(64-s)
	un10 := lo << s
	un1, un0 := un10>>32, un10&mask32

	// First quotient digit
	q1 := un32 / dn1
	rhat := un32 - q1*dn1
	for q1 >= b || q1*dn0 > b*rhat+un1 {
		q1--
		rhat += dn1
		if rhat >= b {
			break
		}
	}

	// Second quotient digit
	un21 := un32*b + un1 - q1*d
	q0 := un21 / dn1
	rhat = un21 - q0*dn1
	for q0 >= b || q0*dn0 > b*rhat+un0 {
		q0--
		rhat += dn1
		if rhat >= b {
			break
		}
	}

	return q1*b + q0, (un21*b + un0 - q0*d) >> s
}

// mulQuo calculates q = ⌊x * y / d⌋ and r = x * y - q * d.
// If the quotient does not fit into 64 bits, over is true and q holds
// the lowest 64 bits of the quotient.
func mulQuo(x, y, d uint64) (q, r uint64, over bool) {
	p := mul128(x, y)
	if p.hi >= d {
		over = true
		p.hi %= d
	}
	q, r = div128(p.hi, p.lo, d)
	return q, r, over
}

func (x u128) isZero() bool {
	return x.hi == 0 && x.lo == 0
}

// cmp returns -1, 0 or +1 depending on whether x is less than, equal to,
// or greater than y.
func (x u128) cmp(y u128) int {
	switch {
	case x.hi < y.hi:
		return -1
	case x.hi > y.hi:
		return 1
	case x.lo < y.lo:
		return -1
	case x.lo > y.lo:
		return 1
	}
	return 0
}

// add calculates x + y modulo 2^128.
func (x u128) add(y u128) u128 {
	lo, c := bits.Add64(x.lo, y.lo, 0)
	hi, _ := bits.Add64(x.hi, y.hi, c)
	return u128{hi: hi, lo: lo}
}

// sub calculates x - y modulo 2^128.
func (x u128) sub(y u128) u128 {
	lo, b := bits.Sub64(x.lo, y.lo, 0)
	hi, _ := bits.Sub64(x.hi, y.hi, b)
	return u128{hi: hi, lo: lo}
}

// lsh calculates x << n, dropping the bits shifted out.
func (x u128) lsh(n uint) u128 {
	switch {
	case n == 0:
		return x
	case n >= 128:
		return u128{}
	case n >= 64:
		return u128{hi: x.lo << (n - 64)}
	}
	return u128{hi: x.hi<<n | x.lo>>(64-n), lo: x.lo << n}
}

// rsh calculates x >> n.
func (x u128) rsh(n uint) u128 {
	switch {
	case n == 0:
		return x
	case n >= 128:
		return u128{}
	case n >= 64:
		return u128{lo: x.hi >> (n - 64)}
	}
	return u128{hi: x.hi >> n, lo: x.lo>>n | x.hi<<(64-n)}
}

// rshPart calculates x >> n and classifies the bits shifted out
// relative to 2^(n-1).
func (x u128) rshPart(n uint) (u128, TruncatedPart) {
	switch {
	case n == 0:
		return x, PartZero
	case n <= 64:
		return x.rsh(n), partOfPow2(x.lo, n)
	case n > 128:
		if x.isZero() {
			return u128{}, PartZero
		}
		return u128{}, PartLessThanHalf
	case n == 128:
		if x.isZero() {
			return u128{}, PartZero
		}
		switch x.cmp(u128{hi: 1 << 63}) {
		case -1:
			return u128{}, PartLessThanHalf
		case 0:
			return u128{}, PartEqualToHalf
		}
		return u128{}, PartGreaterThanHalf
	}
	// The tail spans both limbs
	m := n - 64
	half := uint64(1) << (m - 1)
	th := x.hi & (half<<1 - 1)
	var part TruncatedPart
	switch {
	case th == 0 && x.lo == 0:
		part = PartZero
	case th < half:
		part = PartLessThanHalf
	case th == half && x.lo == 0:
		part = PartEqualToHalf
	default:
		part = PartGreaterThanHalf
	}
	return x.rsh(n), part
}

// leadingZeros returns the number of leading zero bits in x.
func (x u128) leadingZeros() int {
	if x.hi != 0 {
		return bits.LeadingZeros64(x.hi)
	}
	return 64 + bits.LeadingZeros64(x.lo)
}

// isqrt128 calculates r = ⌊√x⌋ and the remainder x - r².
// The remainder does not exceed 2r, which may not fit into 64 bits.
func isqrt128(x u128) (r uint64, rem u128) {
	var res u128
	bit := u128{hi: 1 << 62} // the highest power of 4 in 128 bits
	for bit.cmp(x) > 0 {
		bit = bit.rsh(2)
	}
	for !bit.isZero() {
		t := res.add(bit)
		if x.cmp(t) >= 0 {
			x = x.sub(t)
			res = res.rsh(1).add(bit)
		} else {
			res = res.rsh(1)
		}
		bit = bit.rsh(2)
	}
	return res.lo, x
}

// String implements the [fmt.Stringer] interface.
func (x u128) String() string {
	return fmt.Sprintf("0x%016x%016x", x.hi, x.lo)
}
