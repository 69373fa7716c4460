package frenet

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/latticeplan/curve"
	"go.viam.com/latticeplan/spatialmath"
)

// Footprint is an obstacle expressed in the curvilinear frame. Corners keep the caller's winding.
type Footprint struct {
	Corners []Point
	// Polygon holds the corners as (s, l) vertices. Parts of the obstacle beyond either end of the reference
	// collapse onto that end, so the ring may be flat or self-intersecting.
	Polygon *spatialmath.Polygon
}

// MapToCurvilinear validates the Cartesian corners of an obstacle and projects each onto ref. Only the
// Cartesian polygon is checked; its curvilinear image is kept whatever its shape.
func MapToCurvilinear(corners []r2.Point, ref curve.Curve, projector *Projector) (*Footprint, error) {
	if _, err := spatialmath.NewPolygon(corners); err != nil {
		return nil, errors.Wrap(err, "invalid obstacle")
	}

	fp := &Footprint{Corners: make([]Point, 0, len(corners))}
	verts := make([]r2.Point, 0, len(corners))
	for _, c := range corners {
		pt, err := projector.Project(c.X, c.Y, ref)
		if err != nil {
			return nil, err
		}
		fp.Corners = append(fp.Corners, pt)
		verts = append(verts, pt.R2())
	}

	fp.Polygon = spatialmath.NewRing(verts)
	return fp, nil
}
