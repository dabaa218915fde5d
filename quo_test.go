package fixed

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArithmetic_Quo(t *testing.T) {
	tests := []struct {
		scale    int
		rounding RoundingMode
		x, y     int64
		want     int64
	}{
		{0, RoundHalfUp, 7, 2, 4},
		{0, RoundHalfEven, 7, 2, 4},
		{0, RoundHalfEven, 5, 2, 2},
		{0, RoundDown, -7, 2, -3},
		{0, RoundFloor, -7, 2, -4},
		{2, RoundHalfUp, 100, 300, 33}, // 1 / 3
		{2, RoundHalfUp, 200, 300, 67}, // 2 / 3
		{2, RoundDown, 200, 300, 66},   // 2 / 3
		{2, RoundUp, 100, 300, 34},     // 1 / 3
		{2, RoundHalfUp, 1, 200, 1},    // 0.01 / 2
		{2, RoundHalfEven, 1, 200, 0},  // 0.01 / 2
		{2, RoundHalfEven, 3, 200, 2},  // 0.03 / 2
		{2, RoundHalfUp, 12_345, 100, 12_345},
		{2, RoundHalfUp, 12_345, -100, -12_345},
		{2, RoundHalfUp, 12_345, 12_345, 100},
		{2, RoundHalfUp, 12_345, -12_345, -100},
		{2, RoundHalfUp, 12_345, 1, 1_234_500},   // 123.45 / 0.01
		{2, RoundHalfUp, 12_345, 1_000, 1_235},   // 123.45 / 10
		{2, RoundHalfEven, 12_345, 1_000, 1_234}, // 123.45 / 10
		{18, RoundHalfUp, 1_000_000_000_000_000_000, 3_000_000_000_000_000_000, 333_333_333_333_333_333},
		{18, RoundHalfUp, 2_000_000_000_000_000_000, 3_000_000_000_000_000_000, 666_666_666_666_666_667},
		{18, RoundHalfUp, 9_000_000_000_000_000_000, 4_500_000_000_000_000_000, 2_000_000_000_000_000_000},
		{18, RoundDown, math.MaxInt64, math.MaxInt64 - 1, 1_000_000_000_000_000_000},
		{18, RoundUp, math.MaxInt64, math.MaxInt64 - 1, 1_000_000_000_000_000_001},
	}
	for _, tt := range tests {
		a := MustGet(tt.scale, tt.rounding, Checked)
		got, err := a.Quo(tt.x, tt.y)
		if err != nil {
			t.Errorf("%v.Quo(%v, %v) failed: %v", a, tt.x, tt.y, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%v.Quo(%v, %v) = %v, want %v", a, tt.x, tt.y, got, tt.want)
		}
	}

	t.Run("error", func(t *testing.T) {
		a := MustGet(2, RoundHalfUp, Checked)
		_, err := a.Quo(1, 0)
		assert.ErrorIs(t, err, ErrDivisionByZero)
		_, err = MustGet(2, RoundHalfUp, Unchecked).Quo(0, 0)
		assert.ErrorIs(t, err, ErrDivisionByZero)
		_, err = a.Quo(math.MaxInt64, 1)
		assert.ErrorIs(t, err, ErrOverflow)
		_, err = a.Quo(math.MinInt64, -100)
		assert.ErrorIs(t, err, ErrOverflow)
		_, err = MustGet(0, RoundDown, Checked).Quo(math.MinInt64, -1)
		assert.ErrorIs(t, err, ErrOverflow)
		_, err = MustGet(2, RoundUnnecessary, Checked).Quo(100, 300)
		assert.ErrorIs(t, err, ErrRoundingNecessary)
		_, err = a.Inv(0)
		assert.ErrorIs(t, err, ErrDivisionByZero)
		_, err = a.QuoInt64(1, 0)
		assert.ErrorIs(t, err, ErrDivisionByZero)
		_, err = a.QuoUnscaled(1, 0, 2)
		assert.ErrorIs(t, err, ErrDivisionByZero)
		_, err = a.QuoUnscaled(1, 1, -1)
		assert.ErrorIs(t, err, ErrScaleRange)
	})
}

func TestArithmetic_Quo_Reference(t *testing.T) {
	for _, a := range engines(allScales()...) {
		f := big.NewInt(a.One())
		for _, x := range corpus {
			for _, y := range corpus {
				if y == 0 {
					continue
				}
				num := new(big.Int).Mul(big.NewInt(x), f)
				want, wantErr := wantRound(num, big.NewInt(y), a)
				got, err := a.Quo(x, y)
				checkResult(t, a, "Quo", got, err, want, wantErr, x, y)
			}
		}
	}
}

func FuzzArithmetic_Quo(f *testing.F) {
	for _, x := range corpus {
		for _, y := range corpus {
			f.Add(x, y)
		}
	}
	all := engines(allScales()...)
	f.Fuzz(func(t *testing.T, x, y int64) {
		if y == 0 {
			return
		}
		for _, a := range all {
			num := new(big.Int).Mul(big.NewInt(x), big.NewInt(a.One()))
			want, wantErr := wantRound(num, big.NewInt(y), a)
			got, err := a.Quo(x, y)
			checkResult(t, a, "Quo", got, err, want, wantErr, x, y)
		}
	})
}

func TestArithmetic_Inv(t *testing.T) {
	for _, a := range engines(0, 2, 9, 18) {
		for _, x := range corpus {
			if x == 0 {
				continue
			}
			num := new(big.Int).Mul(big.NewInt(a.One()), big.NewInt(a.One()))
			want, wantErr := wantRound(num, big.NewInt(x), a)
			got, err := a.Inv(x)
			checkResult(t, a, "Inv", got, err, want, wantErr, x)
		}
	}
}

func TestArithmetic_QuoInt64(t *testing.T) {
	for _, a := range engines(0, 3) {
		for _, x := range corpus {
			for _, n := range corpus {
				if n == 0 {
					continue
				}
				want, wantErr := wantRound(big.NewInt(x), big.NewInt(n), a)
				got, err := a.QuoInt64(x, n)
				checkResult(t, a, "QuoInt64", got, err, want, wantErr, x, n)
			}
		}
	}
}

func TestArithmetic_QuoUnscaled(t *testing.T) {
	for _, a := range engines(0, 4, 18) {
		for _, x := range corpus {
			for _, u := range corpus {
				if u == 0 {
					continue
				}
				for _, us := range []int{0, 2, 4, 19} {
					num := new(big.Int).Mul(big.NewInt(x), bigPow10(us))
					want, wantErr := wantRound(num, big.NewInt(u), a)
					got, err := a.QuoUnscaled(x, u, us)
					checkResult(t, a, "QuoUnscaled", got, err, want, wantErr, x, u, us)
				}
			}
		}
	}
}

func TestArithmetic_QuoRem(t *testing.T) {
	tests := []struct {
		x, y, q, r int64
	}{
		{750, 200, 300, 150},    // 7.50 / 2.00 = 3 rem 1.50
		{-750, 200, -300, -150}, // -7.50 / 2.00 = -3 rem -1.50
		{750, -200, -300, 150},
		{100, 300, 0, 100},
		{12_345, 1, 1_234_500, 0},
		{math.MinInt64, math.MinInt64, 100, 0},
	}
	a := MustGet(2, RoundHalfUp, Checked)
	for _, tt := range tests {
		q, r, err := a.QuoRem(tt.x, tt.y)
		require.NoError(t, err)
		if q != tt.q || r != tt.r {
			t.Errorf("%v.QuoRem(%v, %v) = (%v, %v), want (%v, %v)", a, tt.x, tt.y, q, r, tt.q, tt.r)
		}
		q, err = a.QuoToInt(tt.x, tt.y)
		require.NoError(t, err)
		assert.Equal(t, tt.q, q)
		r, err = a.Rem(tt.x, tt.y)
		require.NoError(t, err)
		assert.Equal(t, tt.r, r)
	}

	t.Run("error", func(t *testing.T) {
		_, _, err := a.QuoRem(1, 0)
		assert.ErrorIs(t, err, ErrDivisionByZero)
		_, err = a.Rem(1, 0)
		assert.ErrorIs(t, err, ErrDivisionByZero)
		_, _, err = a.QuoRem(math.MaxInt64, 1)
		assert.ErrorIs(t, err, ErrOverflow)
		_, err = a.QuoToInt(math.MinInt64, -1)
		assert.ErrorIs(t, err, ErrOverflow)
	})

	t.Run("reference", func(t *testing.T) {
		for _, a := range engines(0, 2, 18) {
			for _, x := range corpus {
				for _, y := range corpus {
					if y == 0 {
						continue
					}
					bq, br := new(big.Int).QuoRem(big.NewInt(x), big.NewInt(y), new(big.Int))
					bq.Mul(bq, big.NewInt(a.One()))
					wantQ, wantErr := wantUnscaled(bq, nil, a.Overflow())
					q, r, err := a.QuoRem(x, y)
					checkResult(t, a, "QuoRem", q, err, wantQ, wantErr, x, y)
					if err == nil && r != br.Int64() {
						t.Errorf("%v.QuoRem(%v, %v) remainder = %v, want %v", a, x, y, r, br)
					}
				}
			}
		}
	})
}

func TestArithmetic_MulPow10(t *testing.T) {
	tests := []struct {
		rounding RoundingMode
		x        int64
		n        int
		want     int64
	}{
		{RoundHalfUp, 123, 0, 123},
		{RoundHalfUp, 123, 2, 12_300},
		{RoundHalfUp, -123, 2, -12_300},
		{RoundHalfUp, 125, -1, 13},
		{RoundHalfEven, 125, -1, 12},
		{RoundHalfEven, -125, -1, -12},
		{RoundFloor, -125, -1, -13},
		{RoundHalfUp, 5, -1, 1},
		{RoundHalfUp, 4, -1, 0},
		{RoundUp, 1, -40, 1},
		{RoundUp, -1, -2000, -1},
		{RoundDown, math.MaxInt64, -19, 0},
		{RoundHalfUp, math.MaxInt64, -18, 9},
		{RoundHalfUp, 0, 1000, 0},
	}
	for _, tt := range tests {
		a := MustGet(2, tt.rounding, Checked)
		got, err := a.MulPow10(tt.x, tt.n)
		if err != nil {
			t.Errorf("%v.MulPow10(%v, %v) failed: %v", a, tt.x, tt.n, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%v.MulPow10(%v, %v) = %v, want %v", a, tt.x, tt.n, got, tt.want)
		}
		got, err = a.QuoPow10(tt.x, -tt.n)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%v.QuoPow10(%v, %v)", a, tt.x, -tt.n)
	}

	t.Run("reference", func(t *testing.T) {
		for _, a := range engines(0, 2, 18) {
			for _, x := range corpus {
				for _, n := range []int{-1500, -64, -20, -19, -18, -3, -1, 0, 1, 3, 18, 19, 20, 63, 64, 1500} {
					var want int64
					var wantErr error
					if n >= 0 {
						want, wantErr = wantUnscaled(new(big.Int).Mul(big.NewInt(x), bigPow10(min(n, maxShift))), nil, a.Overflow())
					} else {
						want, wantErr = wantRound(big.NewInt(x), bigPow10(-n), a)
					}
					got, err := a.MulPow10(x, n)
					checkResult(t, a, "MulPow10", got, err, want, wantErr, x, n)
					got, err = a.QuoPow10(x, -n)
					checkResult(t, a, "QuoPow10", got, err, want, wantErr, x, -n)
				}
			}
		}
	})
}

func TestArithmetic_Shift(t *testing.T) {
	tests := []struct {
		rounding RoundingMode
		x        int64
		n        int
		want     int64
	}{
		{RoundHalfUp, 3, 2, 12},
		{RoundHalfUp, -3, 2, -12},
		{RoundHalfUp, 3, -1, 2},
		{RoundHalfEven, 3, -1, 2},
		{RoundHalfEven, 5, -1, 2},
		{RoundHalfEven, -5, -1, -2},
		{RoundHalfUp, -5, -1, -3},
		{RoundFloor, -5, -2, -2},
		{RoundUp, 1, -100, 1},
		{RoundDown, math.MaxInt64, -63, 0},
		{RoundHalfUp, math.MinInt64, -63, -1},
		{RoundHalfDown, math.MinInt64, -64, 0},
		{RoundHalfUp, math.MinInt64, -64, -1},
		{RoundHalfUp, 1, 62, 1 << 62},
		{RoundHalfUp, -1, 63, math.MinInt64},
	}
	for _, tt := range tests {
		a := MustGet(4, tt.rounding, Checked)
		got, err := a.Lsh(tt.x, tt.n)
		if err != nil {
			t.Errorf("%v.Lsh(%v, %v) failed: %v", a, tt.x, tt.n, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%v.Lsh(%v, %v) = %v, want %v", a, tt.x, tt.n, got, tt.want)
		}
		got, err = a.Rsh(tt.x, -tt.n)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%v.Rsh(%v, %v)", a, tt.x, -tt.n)
	}

	t.Run("overflow", func(t *testing.T) {
		_, err := MustGet(4, RoundDown, Checked).Lsh(1, 63)
		assert.ErrorIs(t, err, ErrOverflow)
		z, err := MustGet(4, RoundDown, Unchecked).Lsh(3, 63)
		require.NoError(t, err)
		assert.Equal(t, int64(math.MinInt64), z)
		z, err = MustGet(4, RoundDown, Unchecked).Lsh(3, 64)
		require.NoError(t, err)
		assert.Zero(t, z)
	})

	t.Run("reference", func(t *testing.T) {
		for _, a := range engines(4) {
			for _, x := range corpus {
				for _, n := range []int{-2000, -65, -64, -63, -10, -1, 0, 1, 10, 62, 63, 64, 2000} {
					var want int64
					var wantErr error
					if n >= 0 {
						p := new(big.Int).Lsh(big.NewInt(1), uint(min(n, maxShift)))
						want, wantErr = wantUnscaled(new(big.Int).Mul(big.NewInt(x), p), nil, a.Overflow())
					} else {
						want, wantErr = wantRound(big.NewInt(x), new(big.Int).Lsh(big.NewInt(1), uint(-n)), a)
					}
					got, err := a.Lsh(x, n)
					checkResult(t, a, "Lsh", got, err, want, wantErr, x, n)
					got, err = a.Rsh(x, -n)
					checkResult(t, a, "Rsh", got, err, want, wantErr, x, -n)
				}
			}
		}
	})
}

func TestArithmetic_Avg(t *testing.T) {
	tests := []struct {
		rounding RoundingMode
		x, y     int64
		want     int64
	}{
		{RoundHalfUp, 2, 4, 3},
		{RoundHalfUp, 2, 5, 4},
		{RoundHalfEven, 2, 5, 4},
		{RoundHalfEven, 2, 3, 2},
		{RoundHalfDown, 2, 5, 3},
		{RoundHalfUp, -2, -5, -4},
		{RoundHalfDown, -2, -5, -3},
		{RoundFloor, -2, -5, -4},
		{RoundCeiling, -2, -5, -3},
		{RoundHalfUp, -1, 0, -1},
		{RoundHalfDown, -1, 0, 0},
		{RoundHalfUp, math.MaxInt64, math.MaxInt64, math.MaxInt64},
		{RoundHalfUp, math.MinInt64, math.MinInt64, math.MinInt64},
		{RoundHalfUp, math.MaxInt64, math.MinInt64, -1},
		{RoundHalfDown, math.MaxInt64, math.MinInt64, 0},
		{RoundUp, math.MaxInt64, math.MaxInt64 - 1, math.MaxInt64},
		{RoundUp, math.MinInt64, math.MinInt64 + 1, math.MinInt64},
	}
	for _, tt := range tests {
		a := MustGet(1, tt.rounding, Checked)
		got, err := a.Avg(tt.x, tt.y)
		if err != nil {
			t.Errorf("%v.Avg(%v, %v) failed: %v", a, tt.x, tt.y, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%v.Avg(%v, %v) = %v, want %v", a, tt.x, tt.y, got, tt.want)
		}
	}

	t.Run("reference", func(t *testing.T) {
		for _, a := range engines(3) {
			for _, x := range corpus {
				for _, y := range corpus {
					num := new(big.Int).Add(big.NewInt(x), big.NewInt(y))
					want, wantErr := wantRound(num, big.NewInt(2), a)
					got, err := a.Avg(x, y)
					checkResult(t, a, "Avg", got, err, want, wantErr, x, y)
				}
			}
		}
	})
}
