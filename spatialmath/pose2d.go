package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// Pose2D is a planar pose: a position and a heading in radians, measured counter-clockwise from +X.
type Pose2D struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Theta float64 `json:"theta"`
}

// NewPose2D returns a planar pose.
func NewPose2D(x, y, theta float64) Pose2D {
	return Pose2D{X: x, Y: y, Theta: theta}
}

// Point returns the position of the pose.
func (p Pose2D) Point() r2.Point {
	return r2.Point{X: p.X, Y: p.Y}
}

// Heading returns the unit vector along the pose's heading.
func (p Pose2D) Heading() r2.Point {
	return r2.Point{X: math.Cos(p.Theta), Y: math.Sin(p.Theta)}
}

// Offset returns the pose displaced by `lateral` along the left normal of the heading. Negative values move right.
func (p Pose2D) Offset(lateral float64) Pose2D {
	return Pose2D{
		X:     p.X - lateral*math.Sin(p.Theta),
		Y:     p.Y + lateral*math.Cos(p.Theta),
		Theta: p.Theta,
	}
}

func (p Pose2D) String() string {
	return fmt.Sprintf("{X:%.4f Y:%.4f Theta:%.4f}", p.X, p.Y, p.Theta)
}
