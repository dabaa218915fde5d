package fixed

import (
	"math"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArithmetic_Pow(t *testing.T) {
	tests := []struct {
		scale    int
		rounding RoundingMode
		x        int64
		n        int
		want     int64
	}{
		{2, RoundHalfUp, 150, 0, 100},
		{2, RoundHalfUp, 0, 0, 100},
		{2, RoundHalfUp, 0, 5, 0},
		{2, RoundHalfUp, 150, 1, 150},
		{2, RoundHalfUp, 150, 2, 225},
		{2, RoundHalfEven, 150, 3, 338},
		{2, RoundHalfUp, 150, 3, 338},
		{2, RoundDown, 150, 3, 337},
		{2, RoundHalfUp, 150, -1, 67},
		{2, RoundHalfUp, 200, 10, 102_400},
		{2, RoundHalfUp, 200, -2, 25},
		{2, RoundHalfUp, -200, 3, -800},
		{2, RoundHalfUp, -100, 7, -100},
		{2, RoundHalfUp, -100, -8, 100},
		{2, RoundHalfUp, 101, 100, 270},
		{4, RoundHalfUp, 11_000, -3, 7_513},
		{4, RoundHalfUp, 5_000, 10, 10},
		{4, RoundHalfEven, 5_000, 13, 1},
		{6, RoundHalfUp, 990_000, -50, 1_652_876},
		{9, RoundHalfUp, -1_200_000_000, -7, -279_081_647},
		{0, RoundHalfUp, 3, 39, 4_052_555_153_018_976_267},
		{0, RoundHalfUp, 2, -1, 1},
		{0, RoundHalfEven, 2, -1, 0},
		{0, RoundHalfUp, 3, -2, 0},
		{9, RoundHalfUp, 1_000_000_001, MaxPowExponent, 2_718_281_824},
		{9, RoundHalfUp, 999_999_999, MaxPowExponent, 367_879_441},
		{9, RoundHalfUp, 1_000_000_001, -MaxPowExponent, 367_879_442},
		{9, RoundHalfUp, 2_000_000_000, -30, 1},
	}
	for _, tt := range tests {
		a := MustGet(tt.scale, tt.rounding, Checked)
		got, err := a.Pow(tt.x, tt.n)
		if err != nil {
			t.Errorf("%v.Pow(%v, %v) failed: %v", a, tt.x, tt.n, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%v.Pow(%v, %v) = %v, want %v", a, tt.x, tt.n, got, tt.want)
		}
	}

	t.Run("error", func(t *testing.T) {
		tests := []struct {
			scale    int
			rounding RoundingMode
			x        int64
			n        int
			want     error
		}{
			{2, RoundHalfUp, 150, MaxPowExponent + 1, ErrExponentRange},
			{2, RoundHalfUp, 150, -MaxPowExponent - 1, ErrExponentRange},
			{2, RoundHalfUp, 0, -1, ErrDivisionByZero},
			{2, RoundHalfUp, 0, -MaxPowExponent, ErrDivisionByZero},
			{2, RoundHalfUp, math.MaxInt64, 3, ErrOverflow},
			{2, RoundHalfUp, 200, 63, ErrOverflow},
			{2, RoundHalfUp, 101, MaxPowExponent, ErrOverflow},
			{0, RoundHalfUp, 3, 40, ErrOverflow},
			{2, RoundUnnecessary, 150, 3, ErrRoundingNecessary},
			{2, RoundUnnecessary, 300, -1, ErrRoundingNecessary},
		}
		for _, tt := range tests {
			a := MustGet(tt.scale, tt.rounding, Checked)
			_, err := a.Pow(tt.x, tt.n)
			if !errors.Is(err, tt.want) {
				t.Errorf("%v.Pow(%v, %v) did not fail with %v: %v", a, tt.x, tt.n, tt.want, err)
			}
		}
	})

	t.Run("wrap", func(t *testing.T) {
		tests := []struct {
			scale    int
			rounding RoundingMode
			x        int64
			n        int
			want     int64
		}{
			{0, RoundHalfUp, 3, 40, -6_289_078_614_652_622_815},
			{1, RoundUnnecessary, -292_952_609_620, 14, -8_411_288_505_250_840_576},
			{6, RoundDown, -16, -19, 6_862_905_289_973_170_176},
			{2, RoundUnnecessary, 1_000, MaxPowExponent, 0},         // 10^999999999
			{6, RoundUnnecessary, 2, -MaxPowExponent, 0},            // 500000^999999999
			{3, RoundHalfUp, 1_500, 200, 2_753_898_491_689_713_267}, // 1.5^200
			{3, RoundUp, 1_500, 200, 2_753_898_491_689_713_268},     // 1.5^200
		}
		for _, tt := range tests {
			a := MustGet(tt.scale, tt.rounding, Unchecked)
			got, err := a.Pow(tt.x, tt.n)
			require.NoError(t, err, "%v.Pow(%v, %v)", a, tt.x, tt.n)
			assert.Equal(t, tt.want, got, "%v.Pow(%v, %v)", a, tt.x, tt.n)
		}
	})
}

// powFrac returns (x × 10^-scale)^n × 10^scale as a fraction.
func powFrac(x int64, n, scale int) (num, den *big.Int) {
	if n >= 0 {
		num = new(big.Int).Exp(big.NewInt(x), big.NewInt(int64(n)), nil)
		return num.Mul(num, bigPow10(scale)), bigPow10(scale * n)
	}
	den = new(big.Int).Exp(big.NewInt(x), big.NewInt(int64(-n)), nil)
	return bigPow10(scale * (1 - n)), den
}

func TestArithmetic_Pow_Reference(t *testing.T) {
	bases := []int64{-2_000_000_000_000_000_000, -15, -1, 1, 2, 3, 7, 15, 99, 101, 150, 999, 1_001, 123_456, 9_999_999}
	for _, a := range engines(0, 2, 6, 12, 18) {
		for _, x := range bases {
			for n := -12; n <= 12; n++ {
				num, den := powFrac(x, n, a.Scale())
				want, wantErr := wantRound(num, den, a)
				got, err := a.Pow(x, n)
				exact := new(big.Int).Rem(num, den).Sign() == 0
				wrapped := !fitsInt64(new(big.Int).Quo(num, den))
				if exact || wrapped || wantErr != nil || err != nil {
					// Exact results, wrapped results and errors are reproduced exactly
					checkResult(t, a, "Pow", got, err, want, wantErr, x, n)
					continue
				}
				if d := got - want; d < -1 || d > 1 {
					t.Errorf("%v.Pow(%v, %v) = %v, want %v ± 1", a, x, n, got, want)
				}
			}
		}
	}
}
