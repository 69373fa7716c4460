// Package frenet maps Cartesian points and obstacles into the curvilinear (station, lateral offset) frame of a
// reference curve.
package frenet

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"

	"go.viam.com/latticeplan/curve"
	"go.viam.com/latticeplan/minimize"
	"go.viam.com/latticeplan/utils"
)

// Point is a position in the curvilinear frame. L is positive to the left of the reference tangent.
type Point struct {
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// R2 returns the point as (S, L) in a planar vector, the layout used for curvilinear polygons.
func (p Point) R2() r2.Point {
	return r2.Point{X: p.S, Y: p.L}
}

func (p Point) String() string {
	return fmt.Sprintf("(s=%.4f, l=%.4f)", p.S, p.L)
}

// ProjectionError is returned when the station search does not converge.
type ProjectionError struct {
	X, Y float64
	Err  error
}

func (e *ProjectionError) Error() string {
	return fmt.Sprintf("projecting (%.4f, %.4f) onto reference: %v", e.X, e.Y, e.Err)
}

func (e *ProjectionError) Unwrap() error {
	return e.Err
}

// Projector finds the closest station on a reference curve with a bounded scalar search over [0, Length()].
// The search is local: on strongly curved references with several distance minima it may settle on a
// non-global one.
type Projector struct {
	Settings minimize.Settings
}

// NewProjector returns a projector using the given minimizer settings; zero values select defaults.
func NewProjector(settings minimize.Settings) *Projector {
	return &Projector{Settings: settings}
}

// Project returns the curvilinear coordinates of (x, y) relative to ref.
func (p *Projector) Project(x, y float64, ref curve.Curve) (Point, error) {
	target := r2.Point{X: x, Y: y}
	sqDist := func(s float64) float64 {
		d := ref.Position(s).Sub(target)
		return d.Dot(d)
	}
	res, err := minimize.Bounded(sqDist, 0, ref.Length(), p.Settings)
	if err != nil {
		return Point{}, &ProjectionError{X: x, Y: y, Err: err}
	}

	s := res.X
	foot := ref.Position(s)
	dist := math.Sqrt(res.F)
	if dist == 0 {
		return Point{S: s}, nil
	}
	lineOfSight := math.Atan2(y-foot.Y, x-foot.X)
	if utils.WrapToPi(lineOfSight-ref.Theta(s)) < 0 {
		dist = -dist
	}
	return Point{S: s, L: dist}, nil
}
