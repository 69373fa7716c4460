package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.viam.com/test"
)

func unitSquare() []r2.Point {
	return []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
}

func TestNewPolygon(t *testing.T) {
	t.Run("valid square", func(t *testing.T) {
		poly, err := NewPolygon(unitSquare())
		test.That(t, err, test.ShouldBeNil)
		test.That(t, poly.Area(), test.ShouldAlmostEqual, 1.)
		test.That(t, poly.SignedArea(), test.ShouldBeGreaterThan, 0)
		test.That(t, poly.Vertices(), test.ShouldResemble, unitSquare())
	})

	t.Run("closing vertex is dropped", func(t *testing.T) {
		poly, err := NewPolygon(append(unitSquare(), r2.Point{X: 0, Y: 0}))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, poly.Vertices(), test.ShouldHaveLength, 4)
	})

	t.Run("clockwise winding is preserved", func(t *testing.T) {
		cw := []r2.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}
		poly, err := NewPolygon(cw)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, poly.SignedArea(), test.ShouldAlmostEqual, -1.)
	})

	t.Run("degenerate inputs", func(t *testing.T) {
		_, err := NewPolygon([]r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}})
		test.That(t, errors.Is(err, ErrTooFewVertices), test.ShouldBeTrue)

		// two pairs of identical corners make a zero-width sliver
		_, err = NewPolygon([]r2.Point{{X: 2.5, Y: -1}, {X: 2.5, Y: -1}, {X: 2.5, Y: 1}, {X: 2.5, Y: 1}})
		test.That(t, errors.Is(err, ErrDuplicateVertex), test.ShouldBeTrue)

		_, err = NewPolygon([]r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}})
		test.That(t, errors.Is(err, ErrZeroArea), test.ShouldBeTrue)

		_, err = NewPolygon([]r2.Point{{X: 0, Y: 0}, {X: 2, Y: 2}, {X: 2, Y: 0}, {X: 0, Y: 1}})
		test.That(t, errors.Is(err, ErrSelfIntersecting), test.ShouldBeTrue)
	})
}

func TestPolygonContains(t *testing.T) {
	poly, err := NewPolygon(unitSquare())
	test.That(t, err, test.ShouldBeNil)

	test.That(t, poly.Contains(r2.Point{X: 0.5, Y: 0.5}), test.ShouldBeTrue)
	test.That(t, poly.Contains(r2.Point{X: 1, Y: 0.5}), test.ShouldBeTrue)
	test.That(t, poly.Contains(r2.Point{X: 0, Y: 0}), test.ShouldBeTrue)
	test.That(t, poly.Contains(r2.Point{X: 1.01, Y: 0.5}), test.ShouldBeFalse)
	test.That(t, poly.Contains(r2.Point{X: -0.5, Y: -0.5}), test.ShouldBeFalse)

	test.That(t, poly.DistanceToPoint(r2.Point{X: 0.5, Y: 0.5}), test.ShouldEqual, 0.)
	test.That(t, poly.DistanceToPoint(r2.Point{X: 3, Y: 0.5}), test.ShouldAlmostEqual, 2.)
	test.That(t, poly.DistanceToPoint(r2.Point{X: 2, Y: 2}), test.ShouldAlmostEqual, math.Sqrt2)
}

func TestSegmentsIntersect(t *testing.T) {
	test.That(t, SegmentsIntersect(r2.Point{X: 0, Y: 0}, r2.Point{X: 2, Y: 2}, r2.Point{X: 0, Y: 2}, r2.Point{X: 2, Y: 0}), test.ShouldBeTrue)
	test.That(t, SegmentsIntersect(r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 0}, r2.Point{X: 1, Y: 0}, r2.Point{X: 1, Y: 5}), test.ShouldBeTrue)
	test.That(t, SegmentsIntersect(r2.Point{X: 0, Y: 0}, r2.Point{X: 2, Y: 0}, r2.Point{X: 1, Y: 0}, r2.Point{X: 3, Y: 0}), test.ShouldBeTrue)
	test.That(t, SegmentsIntersect(r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 0}, r2.Point{X: 2, Y: 0}, r2.Point{X: 3, Y: 0}), test.ShouldBeFalse)
	test.That(t, SegmentsIntersect(r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 1}, r2.Point{X: 0, Y: 1}, r2.Point{X: 0.4, Y: 0.6}), test.ShouldBeFalse)

	test.That(t, SegmentDistanceToSegment(r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 0}, r2.Point{X: 0, Y: 2}, r2.Point{X: 1, Y: 2}), test.ShouldAlmostEqual, 2.)
	test.That(t, SegmentDistanceToSegment(r2.Point{X: 0, Y: 0}, r2.Point{X: 2, Y: 2}, r2.Point{X: 0, Y: 2}, r2.Point{X: 2, Y: 0}), test.ShouldEqual, 0.)
	test.That(t, SegmentDistanceToSegment(r2.Point{X: 0, Y: 0}, r2.Point{X: 2, Y: 0}, r2.Point{X: 5, Y: 3}, r2.Point{X: 5, Y: 4}), test.ShouldAlmostEqual, math.Hypot(3, 3))
}

func TestPolylineAgainstPolygon(t *testing.T) {
	poly, err := NewPolygon(unitSquare())
	test.That(t, err, test.ShouldBeNil)

	t.Run("crossing", func(t *testing.T) {
		line := Polyline{{X: -1, Y: 0.5}, {X: 2, Y: 0.5}}
		test.That(t, line.CollidesWith(poly), test.ShouldBeTrue)
		test.That(t, line.DistanceFrom(poly), test.ShouldEqual, 0.)
	})

	t.Run("touching boundary counts", func(t *testing.T) {
		line := Polyline{{X: -1, Y: 1}, {X: 0, Y: 1}}
		test.That(t, line.CollidesWith(poly), test.ShouldBeTrue)
	})

	t.Run("fully inside", func(t *testing.T) {
		line := Polyline{{X: 0.2, Y: 0.2}, {X: 0.8, Y: 0.8}}
		test.That(t, line.CollidesWith(poly), test.ShouldBeTrue)
	})

	t.Run("clear", func(t *testing.T) {
		line := Polyline{{X: -1, Y: 2}, {X: 0, Y: 3}, {X: 2, Y: 3}}
		test.That(t, line.CollidesWith(poly), test.ShouldBeFalse)
		test.That(t, line.DistanceFrom(poly), test.ShouldAlmostEqual, math.Sqrt2)
		test.That(t, line.Length(), test.ShouldAlmostEqual, math.Sqrt2+2)
	})

	t.Run("single point", func(t *testing.T) {
		test.That(t, Polyline{{X: 3, Y: 0}}.DistanceFrom(poly), test.ShouldAlmostEqual, 2.)
	})
}

func TestPose2DOffset(t *testing.T) {
	p := NewPose2D(1, 2, math.Pi/2)
	left := p.Offset(1)
	test.That(t, left.X, test.ShouldAlmostEqual, 0.)
	test.That(t, left.Y, test.ShouldAlmostEqual, 2.)
	right := p.Offset(-1)
	test.That(t, right.X, test.ShouldAlmostEqual, 2.)
	test.That(t, right.Theta, test.ShouldEqual, math.Pi/2)
	test.That(t, p.Heading().X, test.ShouldAlmostEqual, 0.)
	test.That(t, p.Point(), test.ShouldResemble, r2.Point{X: 1, Y: 2})
}

func TestDegenerateRing(t *testing.T) {
	// corners of an obstacle behind the start of a reference all land on station 0
	flat := NewRing([]r2.Point{{X: 0, Y: 2}, {X: 0, Y: 3}, {X: 0, Y: 3.5}, {X: 0, Y: 2.5}})
	test.That(t, flat.HasArea(), test.ShouldBeFalse)
	test.That(t, flat.Area(), test.ShouldEqual, 0.)
	test.That(t, flat.SignedArea(), test.ShouldEqual, 0.)
	test.That(t, flat.Contains(r2.Point{X: 0, Y: 2.75}), test.ShouldBeTrue)
	test.That(t, flat.Contains(r2.Point{X: 0.1, Y: 2.75}), test.ShouldBeFalse)

	t.Run("crossing", func(t *testing.T) {
		line := Polyline{{X: -1, Y: 3}, {X: 1, Y: 3}}
		test.That(t, line.CollidesWith(flat), test.ShouldBeTrue)
		test.That(t, line.DistanceFrom(flat), test.ShouldEqual, 0.)
	})

	t.Run("clear", func(t *testing.T) {
		line := Polyline{{X: 1, Y: 0}, {X: 1, Y: 5}}
		test.That(t, line.CollidesWith(flat), test.ShouldBeFalse)
		test.That(t, line.DistanceFrom(flat), test.ShouldAlmostEqual, 1.)
	})

	t.Run("self intersecting ring is kept", func(t *testing.T) {
		bowtie := NewRing([]r2.Point{{X: 0, Y: 0}, {X: 2, Y: 2}, {X: 2, Y: 0}, {X: 0, Y: 2}})
		test.That(t, bowtie.Vertices(), test.ShouldHaveLength, 4)
		test.That(t, Polyline{{X: 1, Y: -1}, {X: 1, Y: 3}}.CollidesWith(bowtie), test.ShouldBeTrue)
		test.That(t, Polyline{{X: 3, Y: -1}, {X: 3, Y: 3}}.CollidesWith(bowtie), test.ShouldBeFalse)
	})
}
