package curve

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/latticeplan/spatialmath"
)

func TestG1HermiteStraight(t *testing.T) {
	c, err := G1Hermite(spatialmath.NewPose2D(0, 0, 0), spatialmath.NewPose2D(10, 0, 0))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, c.Length(), test.ShouldAlmostEqual, 10.)
	test.That(t, c.CurvatureRate(), test.ShouldAlmostEqual, 0.)
	test.That(t, c.Curvature(3), test.ShouldAlmostEqual, 0.)
	test.That(t, c.X(2.5), test.ShouldAlmostEqual, 2.5)
	test.That(t, c.Y(2.5), test.ShouldAlmostEqual, 0.)
	test.That(t, c.Theta(7), test.ShouldAlmostEqual, 0.)
}

func TestG1HermiteQuarterCircle(t *testing.T) {
	c, err := G1Hermite(spatialmath.NewPose2D(0, 0, 0), spatialmath.NewPose2D(1, 1, math.Pi/2))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, c.Length(), test.ShouldAlmostEqual, math.Pi/2, 1e-9)
	test.That(t, c.Curvature(0), test.ShouldAlmostEqual, 1., 1e-9)
	test.That(t, c.CurvatureRate(), test.ShouldAlmostEqual, 0., 1e-9)

	mid := c.Position(math.Pi / 4)
	test.That(t, mid.X, test.ShouldAlmostEqual, math.Sin(math.Pi/4), 1e-9)
	test.That(t, mid.Y, test.ShouldAlmostEqual, 1-math.Cos(math.Pi/4), 1e-9)
}

func TestG1HermiteReproducesEndpoints(t *testing.T) {
	cases := []struct {
		name       string
		start, end spatialmath.Pose2D
	}{
		{"lane change", spatialmath.NewPose2D(0, 0, 0), spatialmath.NewPose2D(2, 2.5, 0)},
		{"lane change right", spatialmath.NewPose2D(2, 1.5, 0), spatialmath.NewPose2D(10, -0.5, 0)},
		{"curving", spatialmath.NewPose2D(1, -1, 0.3), spatialmath.NewPose2D(6, 2, 1.2)},
		{"heading change only", spatialmath.NewPose2D(0, 0, -0.5), spatialmath.NewPose2D(4, 0, 0.5)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := G1Hermite(tc.start, tc.end)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, c.StartPose(), test.ShouldResemble, tc.start)

			end := c.EndPose()
			test.That(t, end.X, test.ShouldAlmostEqual, tc.end.X, 1e-6)
			test.That(t, end.Y, test.ShouldAlmostEqual, tc.end.Y, 1e-6)
			test.That(t, math.Cos(c.ThetaEnd()), test.ShouldAlmostEqual, math.Cos(tc.end.Theta), 1e-9)
			test.That(t, math.Sin(c.ThetaEnd()), test.ShouldAlmostEqual, math.Sin(tc.end.Theta), 1e-9)

			chord := tc.end.Point().Sub(tc.start.Point()).Norm()
			test.That(t, c.Length(), test.ShouldBeGreaterThanOrEqualTo, chord)
		})
	}
}

func TestG1HermiteFailure(t *testing.T) {
	_, err := G1Hermite(spatialmath.NewPose2D(1, 1, 0), spatialmath.NewPose2D(1, 1, 1))
	test.That(t, errors.Is(err, ErrConstruction), test.ShouldBeTrue)
}

func TestClothoidSampling(t *testing.T) {
	c, err := NewClothoid(spatialmath.NewPose2D(0, 0, 0), 0, 0, 4)
	test.That(t, err, test.ShouldBeNil)

	pts := c.SampleXY(5)
	test.That(t, pts, test.ShouldHaveLength, 5)
	for i, pt := range pts {
		test.That(t, pt.X, test.ShouldAlmostEqual, float64(i))
		test.That(t, pt.Y, test.ShouldAlmostEqual, 0.)
	}
	test.That(t, c.SampleXY(1), test.ShouldResemble, []r2.Point{{X: 0, Y: 0}})
	test.That(t, c.SampleXY(0), test.ShouldBeNil)

	// analytic continuation past the end
	test.That(t, c.X(6), test.ShouldAlmostEqual, 6.)

	_, err = NewClothoid(spatialmath.NewPose2D(0, 0, 0), 0, 0, -1)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestClothoidCurvatureRate(t *testing.T) {
	c, err := NewClothoid(spatialmath.NewPose2D(0, 0, 0), 0.1, 0.05, 5)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, c.Theta(2), test.ShouldAlmostEqual, 0.1*2+0.5*0.05*4)
	test.That(t, c.Curvature(2), test.ShouldAlmostEqual, 0.2)

	// Heading must be the derivative of position.
	const h = 1e-5
	s := 3.
	d := c.Position(s + h).Sub(c.Position(s - h)).Mul(1 / (2 * h))
	test.That(t, math.Atan2(d.Y, d.X), test.ShouldAlmostEqual, c.Theta(s), 1e-6)
	test.That(t, d.Norm(), test.ShouldAlmostEqual, 1., 1e-6)

	pose := PoseAt(c, s)
	test.That(t, pose.Theta, test.ShouldEqual, c.Theta(s))
}
