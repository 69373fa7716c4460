package testutils

import (
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"go.viam.com/latticeplan/curve"
	"go.viam.com/latticeplan/spatialmath"
)

// StraightReference returns a straight clothoid along +X from the origin.
func StraightReference(tb testing.TB, length float64) *curve.Clothoid {
	tb.Helper()
	ref, err := curve.G1Hermite(spatialmath.NewPose2D(0, 0, 0), spatialmath.NewPose2D(length, 0, 0))
	test.That(tb, err, test.ShouldBeNil)
	return ref
}

// Rectangle returns the counter-clockwise corners of an axis aligned rectangle.
func Rectangle(minX, minY, maxX, maxY float64) []r2.Point {
	return []r2.Point{{X: minX, Y: minY}, {X: maxX, Y: minY}, {X: maxX, Y: maxY}, {X: minX, Y: maxY}}
}
