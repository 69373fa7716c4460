// Package curve defines arc-length parameterized planar curves and the clothoid (Euler spiral) used both as the
// planning reference line and as the lattice's segment primitive.
package curve

import (
	"github.com/golang/geo/r2"

	"go.viam.com/latticeplan/spatialmath"
)

// Curve is a planar curve parameterized by arc length s in [0, Length()]. Evaluation outside that range
// continues the curve analytically.
type Curve interface {
	X(s float64) float64
	Y(s float64) float64
	// Theta is the tangent heading at s, counter-clockwise from +X.
	Theta(s float64) float64
	Position(s float64) r2.Point
	Length() float64
	// SampleXY returns n points evenly spaced in arc length, including both endpoints.
	SampleXY(n int) []r2.Point
}

// PoseAt returns the position and tangent heading of the curve at s.
func PoseAt(c Curve, s float64) spatialmath.Pose2D {
	pt := c.Position(s)
	return spatialmath.NewPose2D(pt.X, pt.Y, c.Theta(s))
}
