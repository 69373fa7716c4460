package lattice

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"go.viam.com/latticeplan/curve"
	"go.viam.com/latticeplan/motionplan/frenet"
	"go.viam.com/latticeplan/spatialmath"
)

// EdgeCostEvaluator scores a segment in the curvilinear frame of the reference:
//
//	w_smooth*|dk|*length + w_obs/(clearance+eps) + w_guide*mean(l^2)
//
// Touching or entering any obstacle footprint makes the segment infeasible regardless of the other terms.
type EdgeCostEvaluator struct {
	smoothnessWeight float64
	obstacleWeight   float64
	guidanceWeight   float64
	sampleCount      int
	epsilon          float64
	projector        *frenet.Projector
}

// NewEdgeCostEvaluator returns an evaluator configured from the planner options.
func NewEdgeCostEvaluator(opt *PlannerOptions) *EdgeCostEvaluator {
	return &EdgeCostEvaluator{
		smoothnessWeight: opt.SmoothnessWeight,
		obstacleWeight:   opt.ObstacleWeight,
		guidanceWeight:   opt.GuidanceWeight,
		sampleCount:      max(opt.SampleCount, defaultSampleCount),
		epsilon:          opt.Epsilon,
		projector:        frenet.NewProjector(opt.ProjectionSettings()),
	}
}

// Cost scores seg against ref and the obstacle footprints. The error is a *frenet.ProjectionError when a sample
// cannot be projected.
func (e *EdgeCostEvaluator) Cost(seg *PathSegment, ref curve.Curve, footprints []*frenet.Footprint) (Cost, error) {
	if seg == nil || seg.Curve == nil {
		return Infeasible(), nil
	}
	line, lateral, err := e.curvilinearSamples(seg, ref)
	if err != nil {
		return Infeasible(), err
	}

	clearance := math.Inf(1)
	for _, fp := range footprints {
		if line.CollidesWith(fp.Polygon) {
			return Infeasible(), nil
		}
		clearance = math.Min(clearance, line.DistanceFrom(fp.Polygon))
	}
	obstacleCost := 0.
	if len(footprints) > 0 {
		obstacleCost = 1 / (clearance + e.epsilon)
	}
	guidanceCost := floats.Dot(lateral, lateral) / float64(len(lateral))

	return Feasible(e.smoothnessWeight*curvatureRateCost(seg) +
		e.obstacleWeight*obstacleCost +
		e.guidanceWeight*guidanceCost), nil
}

func (e *EdgeCostEvaluator) curvilinearSamples(seg *PathSegment, ref curve.Curve) (spatialmath.Polyline, []float64, error) {
	samples := seg.Curve.SampleXY(e.sampleCount)
	line := make(spatialmath.Polyline, 0, len(samples))
	lateral := make([]float64, 0, len(samples))
	for _, pt := range samples {
		sl, err := e.projector.Project(pt.X, pt.Y, ref)
		if err != nil {
			return nil, nil, err
		}
		line = append(line, sl.R2())
		lateral = append(lateral, sl.L)
	}
	return line, lateral, nil
}

// curvatureRateCost is the segment smoothness measure used during search: |curvature rate| * length. It is
// unrelated to the quadratic smoothness kernels over polynomial coefficients.
func curvatureRateCost(seg *PathSegment) float64 {
	return math.Abs(seg.CurvatureRate()) * seg.Length()
}

// evaluateEdges scores every constructed edge of g, at most numThreads at a time. Edges without a segment stay
// infeasible. The first projection failure or context cancellation stops the remaining work.
func (e *EdgeCostEvaluator) evaluateEdges(
	ctx context.Context,
	g *Graph,
	ref curve.Curve,
	footprints []*frenet.Footprint,
	numThreads int,
) error {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(max(numThreads, 1))
	for _, edge := range g.edges {
		if edge.Segment == nil {
			continue
		}
		if egCtx.Err() != nil {
			break
		}
		edge := edge
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			cost, err := e.Cost(edge.Segment, ref, footprints)
			if err != nil {
				return err
			}
			edge.Cost = cost
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	// The loop stops early on cancellation, leaving edges unscored.
	return ctx.Err()
}
