package fixed

import "fmt"

// MustGet is like [Get] but panics if the scale or one of the modes is
// invalid.
func MustGet(scale int, rounding RoundingMode, overflow OverflowMode) *Arithmetic {
	a, err := Get(scale, rounding, overflow)
	if err != nil {
		panic(fmt.Sprintf("MustGet(%v, %v, %v) failed: %v", scale, rounding, overflow, err))
	}
	return a
}

// MustMetrics is like [Metrics] but panics if the scale is out of range.
func MustMetrics(scale int) *ScaleMetrics {
	m, err := Metrics(scale)
	if err != nil {
		panic(fmt.Sprintf("MustMetrics(%v) failed: %v", scale, err))
	}
	return m
}

// MustParse is like [Arithmetic.Parse] but panics if the string cannot be
// parsed.
// Use only for variable initialization and test code!
func (a *Arithmetic) MustParse(s string) int64 {
	x, err := a.Parse(s)
	if err != nil {
		panic(fmt.Sprintf("MustParse(%q) failed: %v", s, err))
	}
	return x
}

// MustAdd is like [Arithmetic.Add] but panics if computing error.
func (a *Arithmetic) MustAdd(x, y int64) int64 {
	z, err := a.Add(x, y)
	if err != nil {
		panic(fmt.Sprintf("MustAdd(%v, %v) failed: %v", x, y, err))
	}
	return z
}

// MustSub is like [Arithmetic.Sub] but panics if computing error.
func (a *Arithmetic) MustSub(x, y int64) int64 {
	z, err := a.Sub(x, y)
	if err != nil {
		panic(fmt.Sprintf("MustSub(%v, %v) failed: %v", x, y, err))
	}
	return z
}

// MustMul is like [Arithmetic.Mul] but panics if computing error.
func (a *Arithmetic) MustMul(x, y int64) int64 {
	z, err := a.Mul(x, y)
	if err != nil {
		panic(fmt.Sprintf("MustMul(%v, %v) failed: %v", x, y, err))
	}
	return z
}

// MustQuo is like [Arithmetic.Quo] but panics if computing error.
func (a *Arithmetic) MustQuo(x, y int64) int64 {
	z, err := a.Quo(x, y)
	if err != nil {
		panic(fmt.Sprintf("MustQuo(%v, %v) failed: %v", x, y, err))
	}
	return z
}
