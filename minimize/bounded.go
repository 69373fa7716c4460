// Package minimize provides bounded scalar minimization.
package minimize

import (
	"math"

	"github.com/pkg/errors"
)

const (
	defaultXTol    = 1e-8
	defaultMaxIter = 500
)

var (
	sqrtEps    = math.Sqrt(2.2e-16)
	goldenMean = 0.5 * (3 - math.Sqrt(5))
)

var (
	// ErrNotConverged is returned when the iteration limit is reached before the bracket shrinks below tolerance.
	ErrNotConverged = errors.New("bounded minimizer did not converge")
	// ErrInvalidBounds is returned for NaN or inverted bounds.
	ErrInvalidBounds = errors.New("invalid minimization bounds")
	// ErrNaN is returned when the objective evaluates to NaN.
	ErrNaN = errors.New("objective returned NaN")
)

// Settings bound the work done by Bounded. Zero values select defaults.
type Settings struct {
	// Absolute tolerance on the argmin.
	XTol float64 `json:"x_tol"`
	// Maximum number of objective evaluations.
	MaxIter int `json:"max_iter"`
}

// Result is the outcome of a successful minimization.
type Result struct {
	X           float64
	F           float64
	Evaluations int
}

// Bounded minimizes f over the closed interval [lo, hi] with Brent's method: golden-section steps safeguarded
// parabolic interpolation. Only a local minimum is guaranteed when f is not unimodal on the interval.
func Bounded(f func(float64) float64, lo, hi float64, settings Settings) (Result, error) {
	if math.IsNaN(lo) || math.IsNaN(hi) || lo > hi {
		return Result{}, errors.Wrapf(ErrInvalidBounds, "[%v, %v]", lo, hi)
	}
	xtol := settings.XTol
	if xtol <= 0 {
		xtol = defaultXTol
	}
	maxIter := settings.MaxIter
	if maxIter <= 0 {
		maxIter = defaultMaxIter
	}
	if lo == hi {
		fx := f(lo)
		if math.IsNaN(fx) {
			return Result{}, ErrNaN
		}
		return Result{X: lo, F: fx, Evaluations: 1}, nil
	}

	a, b := lo, hi
	// x is the best point so far, w the second best, v the previous value of w.
	v := a + goldenMean*(b-a)
	w, x := v, v
	fx := f(x)
	if math.IsNaN(fx) {
		return Result{}, ErrNaN
	}
	fv, fw := fx, fx
	evals := 1

	var step, prevStep float64
	xm := 0.5 * (a + b)
	tol1 := sqrtEps*math.Abs(x) + xtol/3
	tol2 := 2 * tol1

	for math.Abs(x-xm) > tol2-0.5*(b-a) {
		if evals >= maxIter {
			return Result{X: x, F: fx, Evaluations: evals}, errors.Wrapf(ErrNotConverged, "after %d evaluations", evals)
		}
		golden := true
		if math.Abs(prevStep) > tol1 {
			// Try a parabola through x, w, v.
			r := (x - w) * (fx - fv)
			q := (x - v) * (fx - fw)
			p := (x-v)*q - (x-w)*r
			q = 2 * (q - r)
			if q > 0 {
				p = -p
			}
			q = math.Abs(q)
			r = prevStep
			prevStep = step

			if math.Abs(p) < math.Abs(0.5*q*r) && p > q*(a-x) && p < q*(b-x) {
				golden = false
				step = p / q
				u := x + step
				if u-a < tol2 || b-u < tol2 {
					step = tol1 * signOrOne(xm-x)
				}
			}
		}
		if golden {
			if x >= xm {
				prevStep = a - x
			} else {
				prevStep = b - x
			}
			step = goldenMean * prevStep
		}

		u := x + signOrOne(step)*math.Max(math.Abs(step), tol1)
		fu := f(u)
		evals++
		if math.IsNaN(fu) {
			return Result{}, errors.Wrapf(ErrNaN, "at %v", u)
		}

		if fu <= fx {
			if u >= x {
				a = x
			} else {
				b = x
			}
			v, fv = w, fw
			w, fw = x, fx
			x, fx = u, fu
		} else {
			if u < x {
				a = u
			} else {
				b = u
			}
			switch {
			case fu <= fw || w == x:
				v, fv = w, fw
				w, fw = u, fu
			case fu <= fv || v == x || v == w:
				v, fv = u, fu
			}
		}

		xm = 0.5 * (a + b)
		tol1 = sqrtEps*math.Abs(x) + xtol/3
		tol2 = 2 * tol1
	}
	return Result{X: x, F: fx, Evaluations: evals}, nil
}

func signOrOne(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
