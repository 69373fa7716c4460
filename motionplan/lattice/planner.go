// Package lattice implements a lattice path planner: candidate clothoid segments between lateral offsets at
// increasing stations along a reference curve, scored in the reference's curvilinear frame and searched for
// the cheapest obstacle-free chain.
package lattice

import (
	"context"
	"time"

	"github.com/golang/geo/r2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"

	"go.viam.com/latticeplan/curve"
	"go.viam.com/latticeplan/logging"
	"go.viam.com/latticeplan/motionplan/frenet"
	"go.viam.com/latticeplan/spatialmath"
)

// Outcome is the result kind of a planning call.
type Outcome int

const (
	// PathFound means Result.Path holds the cheapest feasible chain.
	PathFound Outcome = iota
	// NoFeasiblePath means no terminal node is reachable through feasible edges.
	NoFeasiblePath
)

func (o Outcome) String() string {
	switch o {
	case PathFound:
		return "path_found"
	case NoFeasiblePath:
		return "no_feasible_path"
	default:
		return "unknown"
	}
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// PlanningRequest is everything a single planning call reads.
type PlanningRequest struct {
	Reference curve.Curve
	// Start defaults to the reference pose at station 0.
	Start *spatialmath.Pose2D
	// Obstacles are Cartesian polygons given as ordered corners.
	Obstacles [][]r2.Point
	// Options default to NewBasicPlannerOptions().
	Options *PlannerOptions
}

// Result is the output of a planning call.
type Result struct {
	RequestID string  `json:"request_id"`
	Outcome   Outcome `json:"outcome"`
	// Path is ordered from the start node. Empty unless Outcome is PathFound.
	Path  []*PathSegment `json:"path"`
	Nodes []NodeID       `json:"nodes"`
	Cost  Cost           `json:"cost"`

	// Graph and Footprints are kept for diagnostics and plotting.
	Graph      *Graph              `json:"-"`
	Footprints []*frenet.Footprint `json:"-"`
}

// Planner plans paths with a lattice search. It keeps no state between calls.
type Planner struct {
	logger logging.Logger
}

// NewPlanner returns a planner logging to logger.
func NewPlanner(logger logging.Logger) *Planner {
	return &Planner{logger: logger}
}

// Plan validates the request, builds and scores the lattice and returns the cheapest feasible path.
// Invalid input returns a *DataError before any edge is scored. A projection failure or deadline returns a
// *PlanningError. Finding no feasible path is not an error; it is reported as Outcome NoFeasiblePath.
func (p *Planner) Plan(ctx context.Context, req *PlanningRequest) (*Result, error) {
	requestID := uuid.NewString()
	logger := p.logger.Sublogger("lattice")

	opt := req.Options
	if opt == nil {
		opt = NewBasicPlannerOptions()
	}
	if req.Reference == nil {
		return nil, NewDataError(errors.New("no reference curve"))
	}
	if err := opt.Validate(req.Reference.Length()); err != nil {
		return nil, NewDataError(err)
	}

	projector := frenet.NewProjector(opt.ProjectionSettings())
	footprints, err := mapObstacles(req.Obstacles, req.Reference, projector)
	if err != nil {
		return nil, err
	}

	start := curve.PoseAt(req.Reference, 0)
	var startPoint frenet.Point
	if req.Start != nil {
		start = *req.Start
		if startPoint, err = projector.Project(start.X, start.Y, req.Reference); err != nil {
			return nil, NewPlanningError(err, "projecting start pose")
		}
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(opt.Timeout*float64(time.Second)))
	defer cancel()

	planStart := time.Now()
	g := buildGraph(req.Reference, start, opt, logger)
	root := g.nodes[0]
	root.Station, root.Lateral = startPoint.S, startPoint.L

	evaluator := NewEdgeCostEvaluator(opt)
	if err := evaluator.evaluateEdges(ctx, g, req.Reference, footprints, opt.NumThreads); err != nil {
		return nil, NewPlanningError(err, "scoring lattice edges")
	}
	logger.CDebugw(ctx, "scored lattice",
		"request", requestID,
		"edges", len(g.edges),
		"feasible", g.FeasibleEdges(),
		"elapsed", time.Since(planStart))

	res := &Result{RequestID: requestID, Graph: g, Footprints: footprints}
	found, ok := search(g)
	if !ok {
		res.Outcome = NoFeasiblePath
		logger.CDebugw(ctx, "no terminal reachable", "request", requestID)
		return res, nil
	}

	res.Outcome = PathFound
	res.Cost = Feasible(found.cost)
	res.Path = lo.Map(found.edges, func(e *Edge, _ int) *PathSegment { return e.Segment })
	res.Nodes = lo.Map(found.nodes, func(idx, _ int) NodeID { return g.nodes[idx].ID })
	logger.CDebugw(ctx, "chose path", "request", requestID, "terminal", res.Nodes[len(res.Nodes)-1], "cost", res.Cost)
	return res, nil
}

// mapObstacles builds the curvilinear footprint of every obstacle. Invalid polygons are collected into one
// DataError; a projection failure is a PlanningError.
func mapObstacles(obstacles [][]r2.Point, ref curve.Curve, projector *frenet.Projector) ([]*frenet.Footprint, error) {
	footprints := make([]*frenet.Footprint, 0, len(obstacles))
	var dataErrs error
	for i, corners := range obstacles {
		fp, err := frenet.MapToCurvilinear(corners, ref, projector)
		var projErr *frenet.ProjectionError
		switch {
		case errors.As(err, &projErr):
			return nil, NewPlanningError(err, "mapping obstacles")
		case err != nil:
			dataErrs = multierr.Append(dataErrs, errors.Wrapf(err, "obstacle %d", i))
		default:
			footprints = append(footprints, fp)
		}
	}
	if dataErrs != nil {
		return nil, NewDataError(dataErrs)
	}
	return footprints, nil
}
