package curve

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"go.viam.com/latticeplan/spatialmath"
	"go.viam.com/latticeplan/utils"
)

const (
	g1MaxIter      = 50
	g1Tolerance    = 1e-12
	minChordLength = 1e-9
)

// ErrConstruction is returned when no clothoid joins two poses.
var ErrConstruction = errors.New("cannot construct clothoid between poses")

// Clothoid is a curve whose curvature changes linearly with arc length:
//
//	theta(s) = theta0 + kappa0*s + dkappa*s^2/2
type Clothoid struct {
	x0, y0 float64
	theta0 float64
	kappa0 float64
	dkappa float64
	length float64
}

// NewClothoid returns the clothoid starting at `start` with initial curvature kappa and curvature rate dkappa.
func NewClothoid(start spatialmath.Pose2D, kappa, dkappa, length float64) (*Clothoid, error) {
	if length < 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return nil, errors.Errorf("invalid clothoid length %v", length)
	}
	return &Clothoid{
		x0:     start.X,
		y0:     start.Y,
		theta0: start.Theta,
		kappa0: kappa,
		dkappa: dkappa,
		length: length,
	}, nil
}

// G1Hermite fits the clothoid that leaves `start` along its heading and arrives at `end` with the end heading.
// Position and heading match at both ends; curvature is free. Returns ErrConstruction when no fit exists.
func G1Hermite(start, end spatialmath.Pose2D) (*Clothoid, error) {
	dx := end.X - start.X
	dy := end.Y - start.Y
	chord := math.Hypot(dx, dy)
	if chord < minChordLength {
		return nil, errors.Wrap(ErrConstruction, "coincident endpoints")
	}
	phi := math.Atan2(dy, dx)
	phi0 := utils.WrapToPi(start.Theta - phi)
	phi1 := utils.WrapToPi(end.Theta - phi)
	delta := phi1 - phi0

	// In chord-normalized form the heading relative to the chord is phi0 + (delta-A)t + A t^2 for t in [0,1].
	// A is the root of the lateral closure condition int_0^1 sin(...) dt = 0.
	a := 3 * (phi0 + phi1)
	converged := false
	for iter := 0; iter < g1MaxIter; iter++ {
		g, dg := fresnelSinAndDerivative(2*a, delta-a, phi0)
		if math.Abs(g) < g1Tolerance {
			converged = true
			break
		}
		if dg == 0 || math.IsNaN(dg) {
			break
		}
		a -= g / dg
	}
	if !converged {
		return nil, errors.Wrapf(ErrConstruction, "no root from %v to %v", start, end)
	}

	x, _ := fresnelCS(2*a, delta-a, phi0)
	if x <= 0 {
		return nil, errors.Wrapf(ErrConstruction, "non-positive length from %v to %v", start, end)
	}
	length := chord / x
	c := &Clothoid{
		x0:     start.X,
		y0:     start.Y,
		theta0: start.Theta,
		kappa0: (delta - a) / length,
		dkappa: 2 * a / (length * length),
		length: length,
	}

	// Guard against a numerically poor root before handing the segment out.
	if miss := c.Position(length).Sub(end.Point()).Norm(); miss > 1e-6*(1+chord) {
		return nil, errors.Wrapf(ErrConstruction, "endpoint miss of %v from %v to %v", miss, start, end)
	}
	return c, nil
}

// Position returns the point at arc length s.
func (c *Clothoid) Position(s float64) r2.Point {
	x, y := fresnelCS(c.dkappa*s*s, c.kappa0*s, c.theta0)
	return r2.Point{X: c.x0 + s*x, Y: c.y0 + s*y}
}

// X returns the x coordinate at arc length s.
func (c *Clothoid) X(s float64) float64 {
	return c.Position(s).X
}

// Y returns the y coordinate at arc length s.
func (c *Clothoid) Y(s float64) float64 {
	return c.Position(s).Y
}

// Theta returns the tangent heading at arc length s.
func (c *Clothoid) Theta(s float64) float64 {
	return c.theta0 + c.kappa0*s + 0.5*c.dkappa*s*s
}

// Curvature returns the signed curvature at arc length s.
func (c *Clothoid) Curvature(s float64) float64 {
	return c.kappa0 + c.dkappa*s
}

// CurvatureRate returns the constant derivative of curvature with respect to arc length.
func (c *Clothoid) CurvatureRate() float64 {
	return c.dkappa
}

// Length returns the arc length of the clothoid.
func (c *Clothoid) Length() float64 {
	return c.length
}

// StartPose returns the pose at s = 0.
func (c *Clothoid) StartPose() spatialmath.Pose2D {
	return spatialmath.NewPose2D(c.x0, c.y0, c.theta0)
}

// EndPose returns the pose at s = Length().
func (c *Clothoid) EndPose() spatialmath.Pose2D {
	return PoseAt(c, c.length)
}

// ThetaEnd returns the heading at s = Length().
func (c *Clothoid) ThetaEnd() float64 {
	return c.Theta(c.length)
}

// SampleXY returns n points evenly spaced in arc length, including both endpoints.
func (c *Clothoid) SampleXY(n int) []r2.Point {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []r2.Point{c.Position(0)}
	}
	stations := floats.Span(make([]float64, n), 0, c.length)
	pts := make([]r2.Point, 0, n)
	for _, s := range stations {
		pts = append(pts, c.Position(s))
	}
	return pts
}

func (c *Clothoid) String() string {
	return fmt.Sprintf("Clothoid{start:%v kappa:%.4g dkappa:%.4g length:%.4f}", c.StartPose(), c.kappa0, c.dkappa, c.length)
}
