// Package numeric holds the small numerical helpers shared by the beam model
// and the ponding iteration.
package numeric

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

// DivideByZero returns a/b, or +Inf when b is zero (including 0/0).
func DivideByZero(a, b float64) float64 {
	if b == 0 {
		return math.Inf(1)
	}
	return a / b
}

// Linspace returns n evenly spaced values over [start, stop], endpoints included
func Linspace(start, stop float64, n int) []float64 {
	if n < 2 {
		return []float64{start}
	}
	return floats.Span(make([]float64, n), start, stop)
}

// Simpson integrates samples f taken at positions x with Simpson's rule
func Simpson(x, f []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	if len(x) == 2 {
		return 0.5 * (f[0] + f[1]) * (x[1] - x[0])
	}
	return integrate.Simpsons(x, f)
}

// Scale returns a new slice with every value of v multiplied by c
func Scale(c float64, v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	floats.Scale(c, out)
	return out
}

// IsClose mirrors numpy.isclose with its default tolerances
func IsClose(a, b float64) bool {
	return math.Abs(a-b) <= 1e-8+1e-5*math.Abs(b)
}

// Finite reports whether every value is neither NaN nor infinite
func Finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
