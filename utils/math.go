package utils

import (
	"math"
)

// WrapToPi returns the given angle in the (-pi, pi] range.
func WrapToPi(theta float64) float64 {
	wrapped := math.Mod(theta+math.Pi, 2*math.Pi)
	if wrapped <= 0 {
		wrapped += 2 * math.Pi
	}
	return wrapped - math.Pi
}

// Factorial returns n! for small non-negative n.
func Factorial(n int) float64 {
	f := 1.
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}
	return f
}

// FallingFactorial returns n!/(n-k)!, the coefficient produced by differentiating s^n k times.
// It is zero when k > n.
func FallingFactorial(n, k int) float64 {
	if k > n {
		return 0
	}
	return Factorial(n) / Factorial(n-k)
}
