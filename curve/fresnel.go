package curve

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/integrate/quad"
)

const (
	minQuadPoints = 12
	maxQuadPoints = 256
)

// legendreRule holds Gauss-Legendre nodes and weights on [0, 1].
type legendreRule struct {
	x, w []float64
}

var legendreRules sync.Map

func legendre(n int) *legendreRule {
	if rule, ok := legendreRules.Load(n); ok {
		return rule.(*legendreRule)
	}
	rule := &legendreRule{x: make([]float64, n), w: make([]float64, n)}
	quad.Legendre{}.FixedLocations(rule.x, rule.w, 0, 1)
	actual, _ := legendreRules.LoadOrStore(n, rule)
	return actual.(*legendreRule)
}

// quadPoints picks a rule size from the total phase swept, so oscillating integrands keep their accuracy.
func quadPoints(a, b float64) int {
	n := minQuadPoints + 2*int(math.Ceil(math.Abs(a)/2+math.Abs(b)))
	if n > maxQuadPoints {
		return maxQuadPoints
	}
	return n
}

// fresnelCS returns the generalized Fresnel integrals
//
//	X = int_0^1 cos(a/2 t^2 + b t + c) dt,  Y = int_0^1 sin(a/2 t^2 + b t + c) dt.
func fresnelCS(a, b, c float64) (float64, float64) {
	rule := legendre(quadPoints(a, b))
	var x, y float64
	for i, t := range rule.x {
		sin, cos := math.Sincos(a/2*t*t + b*t + c)
		x += rule.w[i] * cos
		y += rule.w[i] * sin
	}
	return x, y
}

// fresnelSinAndDerivative returns Y(a, b, c) and its derivative along the G1 fitting direction,
// d/dA int_0^1 sin(A t^2 + (delta-A) t + c) dt = int_0^1 (t^2 - t) cos(...) dt.
func fresnelSinAndDerivative(a, b, c float64) (float64, float64) {
	rule := legendre(quadPoints(a, b))
	var y, dy float64
	for i, t := range rule.x {
		sin, cos := math.Sincos(a/2*t*t + b*t + c)
		y += rule.w[i] * sin
		dy += rule.w[i] * (t*t - t) * cos
	}
	return y, dy
}
