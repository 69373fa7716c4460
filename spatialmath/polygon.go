package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"
)

// minPolygonArea is the smallest enclosed area accepted for a polygon.
const minPolygonArea = 1e-9

var (
	// ErrTooFewVertices is returned when fewer than three distinct vertices are given.
	ErrTooFewVertices = errors.New("polygon needs at least 3 vertices")
	// ErrDuplicateVertex is returned when two consecutive vertices coincide.
	ErrDuplicateVertex = errors.New("polygon has duplicate consecutive vertices")
	// ErrZeroArea is returned for collinear or otherwise flat polygons.
	ErrZeroArea = errors.New("polygon encloses no area")
	// ErrSelfIntersecting is returned when two non-adjacent edges cross.
	ErrSelfIntersecting = errors.New("polygon edges self-intersect")
)

// Polygon is a closed planar ring. The closing edge from the last vertex back to the first is implicit.
// Polygons from NewPolygon are simple with non-zero area; NewRing accepts any ring, including flat or
// self-intersecting ones.
type Polygon struct {
	vertices []r2.Point
	ring     orb.Ring
	bounds   r2.Rect
}

// NewPolygon validates the given vertices and returns a polygon. A trailing vertex equal to the first is dropped.
func NewPolygon(vertices []r2.Point) (*Polygon, error) {
	poly := NewRing(vertices)
	verts := poly.vertices
	if len(verts) < 3 {
		return nil, errors.Wrapf(ErrTooFewVertices, "got %d", len(verts))
	}
	for i := range verts {
		next := verts[(i+1)%len(verts)]
		if verts[i].Sub(next).Norm() <= collinearEpsilon {
			return nil, errors.Wrapf(ErrDuplicateVertex, "vertex %d at %v", i, verts[i])
		}
	}
	if !poly.HasArea() {
		return nil, ErrZeroArea
	}
	if i, j, ok := poly.crossingEdges(); ok {
		return nil, errors.Wrapf(ErrSelfIntersecting, "edges %d and %d", i, j)
	}
	return poly, nil
}

// NewRing returns the closed ring through the given vertices without validating its shape. A trailing vertex
// equal to the first is dropped.
func NewRing(vertices []r2.Point) *Polygon {
	verts := append([]r2.Point(nil), vertices...)
	if len(verts) > 1 && verts[0] == verts[len(verts)-1] {
		verts = verts[:len(verts)-1]
	}
	ring := make(orb.Ring, 0, len(verts)+1)
	for _, v := range verts {
		ring = append(ring, toOrb(v))
	}
	if len(verts) > 0 {
		ring = append(ring, toOrb(verts[0]))
	}
	return &Polygon{vertices: verts, ring: ring, bounds: r2.RectFromPoints(verts...)}
}

func toOrb(p r2.Point) orb.Point {
	return orb.Point{p.X, p.Y}
}

// Vertices returns a copy of the polygon's vertices in their original winding.
func (p *Polygon) Vertices() []r2.Point {
	return append([]r2.Point(nil), p.vertices...)
}

// Bounds returns the axis aligned bounding rectangle of the polygon.
func (p *Polygon) Bounds() r2.Rect {
	return p.bounds
}

// SignedArea returns the enclosed area, positive for counter-clockwise winding.
func (p *Polygon) SignedArea() float64 {
	if len(p.vertices) < 3 {
		return 0
	}
	return float64(p.ring.Orientation()) * p.Area()
}

// Area returns the unsigned enclosed area.
func (p *Polygon) Area() float64 {
	if len(p.vertices) < 3 {
		return 0
	}
	return math.Abs(planar.Area(p.ring))
}

// HasArea reports whether the ring encloses a non-negligible area. Rings without area have no interior and
// only their edges count for containment.
func (p *Polygon) HasArea() bool {
	return p.Area() >= minPolygonArea
}

func (p *Polygon) edge(i int) (r2.Point, r2.Point) {
	return p.vertices[i], p.vertices[(i+1)%len(p.vertices)]
}

// crossingEdges returns the first pair of non-adjacent edges that intersect.
func (p *Polygon) crossingEdges() (int, int, bool) {
	n := len(p.vertices)
	for i := 0; i < n; i++ {
		a1, a2 := p.edge(i)
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			b1, b2 := p.edge(j)
			if SegmentsIntersect(a1, a2, b1, b2) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// onBoundary reports whether pt lies on any edge of the ring.
func (p *Polygon) onBoundary(pt r2.Point) bool {
	for i := range p.vertices {
		a, b := p.edge(i)
		if sign(orientation(a, b, pt)) == 0 && onSegment(a, b, pt) {
			return true
		}
	}
	return false
}

// Contains reports whether pt is inside the polygon or on its boundary. For a ring without area only the
// boundary counts.
func (p *Polygon) Contains(pt r2.Point) bool {
	if len(p.vertices) == 0 || !p.bounds.ExpandedByMargin(collinearEpsilon).ContainsPoint(pt) {
		return false
	}
	if p.onBoundary(pt) {
		return true
	}
	return p.HasArea() && planar.RingContains(p.ring, toOrb(pt))
}

// DistanceToPoint returns zero for points inside or on the polygon, otherwise the distance to the nearest edge.
func (p *Polygon) DistanceToPoint(pt r2.Point) float64 {
	if p.Contains(pt) {
		return 0
	}
	best := math.Inf(1)
	for i := range p.vertices {
		a, b := p.edge(i)
		best = math.Min(best, planar.DistanceFromSegment(toOrb(a), toOrb(b), toOrb(pt)))
	}
	return best
}

func (p *Polygon) String() string {
	return fmt.Sprintf("Polygon%v", p.vertices)
}
