package spatialmath

import (
	"math"

	"github.com/golang/geo/r2"
)

// Polyline is an open chain of points.
type Polyline []r2.Point

// Length returns the summed length of the polyline's segments.
func (l Polyline) Length() float64 {
	total := 0.
	for i := 1; i < len(l); i++ {
		total += l[i].Sub(l[i-1]).Norm()
	}
	return total
}

// Bounds returns the axis aligned bounding rectangle of the polyline.
func (l Polyline) Bounds() r2.Rect {
	return r2.RectFromPoints(l...)
}

// CollidesWith reports whether the polyline touches the polygon's boundary or enters its interior. A ring
// without area is hit only by touching or crossing its edges.
func (l Polyline) CollidesWith(p *Polygon) bool {
	if len(l) == 0 || len(p.vertices) == 0 || !l.Bounds().Intersects(p.Bounds().ExpandedByMargin(collinearEpsilon)) {
		return false
	}
	// A polyline wholly inside the polygon crosses no edge.
	if p.HasArea() && p.Contains(l[0]) {
		return true
	}
	for i := 1; i < len(l); i++ {
		for j := range p.vertices {
			b1, b2 := p.edge(j)
			if SegmentsIntersect(l[i-1], l[i], b1, b2) {
				return true
			}
		}
	}
	return false
}

// DistanceFrom returns the minimum distance between the polyline and the polygon, zero when they collide.
func (l Polyline) DistanceFrom(p *Polygon) float64 {
	if len(l) == 0 {
		return math.Inf(1)
	}
	if l.CollidesWith(p) {
		return 0
	}
	if len(l) == 1 {
		return p.DistanceToPoint(l[0])
	}
	best := math.Inf(1)
	for i := 1; i < len(l); i++ {
		for j := range p.vertices {
			b1, b2 := p.edge(j)
			best = math.Min(best, SegmentDistanceToSegment(l[i-1], l[i], b1, b2))
		}
	}
	return best
}
