package fixed

import (
	"math"
	"math/big"
	"sync"
)

// bint is a big.Int with the operations needed by the power and
// conversion paths. Temporaries come from bpool.
type bint big.Int

// bpow10[i] = 10^i, enough for a product of two powPrec-digit
// coefficients and the dividend of its inverse.
var bpow10 = func() []*bint {
	t := make([]*bint, 2*powPrec+2)
	p, ten := big.NewInt(1), big.NewInt(10)
	for i := range t {
		t[i] = (*bint)(new(big.Int).Set(p))
		p.Mul(p, ten)
	}
	return t
}()

var bmask64 = (*bint)(new(big.Int).SetUint64(math.MaxUint64))

func (z *bint) sign() int {
	return (*big.Int)(z).Sign()
}

func (z *bint) cmp(x *bint) int {
	return (*big.Int)(z).Cmp((*big.Int)(x))
}

func (z *bint) setBint(x *bint) {
	(*big.Int)(z).Set((*big.Int)(x))
}

func (z *bint) setUint64(x uint64) {
	(*big.Int)(z).SetUint64(x)
}

func (z *bint) isUint64() bool {
	return (*big.Int)(z).IsUint64()
}

// low64 returns z mod 2^64, z must not be negative.
func (z *bint) low64() uint64 {
	if z.isUint64() {
		return (*big.Int)(z).Uint64()
	}
	b := getBint()
	defer putBint(b)
	(*big.Int)(b).And((*big.Int)(z), (*big.Int)(bmask64))
	return (*big.Int)(b).Uint64()
}

// dbl calculates z = 2x.
func (z *bint) dbl(x *bint) {
	(*big.Int)(z).Lsh((*big.Int)(x), 1)
}

// mul calculates z = x × y, z may alias x or y.
func (z *bint) mul(x, y *bint) {
	(*big.Int)(z).Mul((*big.Int)(x), (*big.Int)(y))
}

// pow10 calculates z = 10^n, n must not be negative.
func (z *bint) pow10(n int) {
	if n < len(bpow10) {
		z.setBint(bpow10[n])
		return
	}
	(*big.Int)(z).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

// pow calculates z = x^n.
func (z *bint) pow(x uint64, n int) {
	b := getBint()
	defer putBint(b)
	b.setUint64(x)
	(*big.Int)(z).Exp((*big.Int)(b), big.NewInt(int64(n)), nil)
}

// quoRem calculates z = ⌊x / y⌋ and r = x - y × z.
func (z *bint) quoRem(x, y, r *bint) {
	(*big.Int)(z).QuoRem((*big.Int)(x), (*big.Int)(y), (*big.Int)(r))
}

// lsh calculates z = x × 10^n.
func (z *bint) lsh(x *bint, n int) {
	if n < len(bpow10) {
		z.mul(x, bpow10[n])
		return
	}
	p := getBint()
	defer putBint(p)
	p.pow10(n)
	z.mul(x, p)
}

// rshPart calculates z = ⌊x / 10^n⌋ and classifies the discarded digits.
func (z *bint) rshPart(x *bint, n int) TruncatedPart {
	if n <= 0 || x.sign() == 0 {
		z.setBint(x)
		return PartZero
	}
	d := getBint()
	defer putBint(d)
	d.pow10(n)
	r := getBint()
	defer putBint(r)
	z.quoRem(x, d, r)
	return partOfBig(r, d)
}

// prec returns the number of decimal digits of z, 0 has none.
func (z *bint) prec() int {
	if z.sign() == 0 {
		return 0
	}
	b := (*big.Int)(z).BitLen()
	if b > 1<<16 {
		return len((*big.Int)(z).String())
	}
	// 1233 / 4096 is slightly below log10(2)
	n := b * 1233 >> 12
	p := getBint()
	defer putBint(p)
	p.pow10(n)
	if z.cmp(p) >= 0 {
		n++
	}
	return n
}

// partOfBig classifies the remainder r of a division by d, 0 ≤ r < d.
func partOfBig(r, d *bint) TruncatedPart {
	if r.sign() == 0 {
		return PartZero
	}
	h := getBint()
	defer putBint(h)
	h.dbl(r)
	switch h.cmp(d) {
	case -1:
		return PartLessThanHalf
	case 0:
		return PartEqualToHalf
	}
	return PartGreaterThanHalf
}

var bpool = sync.Pool{
	New: func() any {
		return (*bint)(new(big.Int))
	},
}

func getBint() *bint {
	return bpool.Get().(*bint)
}

func putBint(b *bint) {
	bpool.Put(b)
}
