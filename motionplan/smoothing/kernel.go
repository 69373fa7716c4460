package smoothing

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/latticeplan/utils"
)

const numCoeffs = 6

// derivative orders penalized by each kernel.
const (
	velocityOrder = 1
	accelOrder    = 2
	jerkOrder     = 3
)

// KernelWeights scale the individual kernels when combined.
type KernelWeights struct {
	Jerk     float64 `json:"jerk"`
	Accel    float64 `json:"accel"`
	Velocity float64 `json:"velocity"`
}

// derivativeKernel returns H such that 1/2 p^T H p = integral_0^S (l^(order)(s))^2 ds for a quintic with
// coefficients p. Rows and columns below `order` are zero.
func derivativeKernel(order int, length float64) *mat.SymDense {
	h := mat.NewSymDense(numCoeffs, nil)
	for i := order; i < numCoeffs; i++ {
		ci := utils.FallingFactorial(i, order)
		for j := i; j < numCoeffs; j++ {
			cj := utils.FallingFactorial(j, order)
			e := float64(i + j - 2*order + 1)
			h.SetSym(i, j, 2*ci*cj*math.Pow(length, e)/e)
		}
	}
	return h
}

// JerkKernel returns the Hessian of the integrated squared third derivative over a span of length S.
func JerkKernel(length float64) *mat.SymDense {
	return derivativeKernel(jerkOrder, length)
}

// AccelKernel returns the Hessian of the integrated squared second derivative over a span of length S.
func AccelKernel(length float64) *mat.SymDense {
	return derivativeKernel(accelOrder, length)
}

// VelocityKernel returns the Hessian of the integrated squared first derivative over a span of length S.
func VelocityKernel(length float64) *mat.SymDense {
	return derivativeKernel(velocityOrder, length)
}

// Combine returns wJerk*hJerk + wAccel*hAccel + wVel*hVel. The inputs are left unmodified.
func Combine(hJerk, hAccel, hVel mat.Symmetric, wJerk, wAccel, wVel float64) *mat.SymDense {
	out := mat.NewSymDense(numCoeffs, nil)
	scaled := mat.NewSymDense(numCoeffs, nil)
	for _, term := range []struct {
		h mat.Symmetric
		w float64
	}{{hJerk, wJerk}, {hAccel, wAccel}, {hVel, wVel}} {
		scaled.ScaleSym(term.w, term.h)
		out.AddSym(out, scaled)
	}
	return out
}

// SmoothnessKernel builds and combines all three kernels for a span of length S.
func SmoothnessKernel(length float64, weights KernelWeights) (*mat.SymDense, error) {
	if length <= 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return nil, errors.Errorf("kernel span must be positive and finite, got %v", length)
	}
	return Combine(JerkKernel(length), AccelKernel(length), VelocityKernel(length),
		weights.Jerk, weights.Accel, weights.Velocity), nil
}

// QuadraticCost evaluates 1/2 p^T H p.
func QuadraticCost(h mat.Symmetric, coeffs [6]float64) float64 {
	p := mat.NewVecDense(numCoeffs, coeffs[:])
	return 0.5 * mat.Inner(p, h, p)
}
