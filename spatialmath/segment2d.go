package spatialmath

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/paulmach/orb/planar"
)

// collinearEpsilon is the cross product magnitude below which three points are treated as collinear.
const collinearEpsilon = 1e-12

// orientation returns twice the signed area of the triangle abc. Positive when c is left of a->b.
func orientation(a, b, c r2.Point) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

func sign(v float64) int {
	switch {
	case v > collinearEpsilon:
		return 1
	case v < -collinearEpsilon:
		return -1
	default:
		return 0
	}
}

// onSegment reports whether p, already known to be collinear with ab, lies within the segment's bounds.
func onSegment(a, b, p r2.Point) bool {
	return p.X <= math.Max(a.X, b.X)+collinearEpsilon && p.X >= math.Min(a.X, b.X)-collinearEpsilon &&
		p.Y <= math.Max(a.Y, b.Y)+collinearEpsilon && p.Y >= math.Min(a.Y, b.Y)-collinearEpsilon
}

// SegmentsIntersect reports whether the closed segments a1a2 and b1b2 share at least one point.
// Touching endpoints and collinear overlaps count as intersecting.
func SegmentsIntersect(a1, a2, b1, b2 r2.Point) bool {
	d1 := sign(orientation(b1, b2, a1))
	d2 := sign(orientation(b1, b2, a2))
	d3 := sign(orientation(a1, a2, b1))
	d4 := sign(orientation(a1, a2, b2))

	if d1*d2 < 0 && d3*d4 < 0 {
		return true
	}
	switch {
	case d1 == 0 && onSegment(b1, b2, a1):
		return true
	case d2 == 0 && onSegment(b1, b2, a2):
		return true
	case d3 == 0 && onSegment(a1, a2, b1):
		return true
	case d4 == 0 && onSegment(a1, a2, b2):
		return true
	}
	return false
}

// SegmentDistanceToSegment returns the minimum distance between two closed segments, zero if they intersect.
// Without a crossing the minimum is reached at an endpoint of one of them.
func SegmentDistanceToSegment(a1, a2, b1, b2 r2.Point) float64 {
	if SegmentsIntersect(a1, a2, b1, b2) {
		return 0
	}
	pa1, pa2, pb1, pb2 := toOrb(a1), toOrb(a2), toOrb(b1), toOrb(b2)
	best := planar.DistanceFromSegment(pb1, pb2, pa1)
	best = math.Min(best, planar.DistanceFromSegment(pb1, pb2, pa2))
	best = math.Min(best, planar.DistanceFromSegment(pa1, pa2, pb1))
	return math.Min(best, planar.DistanceFromSegment(pa1, pa2, pb2))
}
