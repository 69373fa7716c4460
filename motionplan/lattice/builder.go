package lattice

import (
	"go.viam.com/latticeplan/curve"
	"go.viam.com/latticeplan/logging"
	"go.viam.com/latticeplan/spatialmath"
)

// buildGraph lays out the lattice nodes along ref and fits a clothoid for every edge. Edge costs are left
// infeasible for the evaluator to fill in. A pair of poses that no clothoid joins gets an infeasible edge
// without a segment, so node and edge counts never depend on the geometry.
func buildGraph(ref curve.Curve, start spatialmath.Pose2D, opt *PlannerOptions, logger logging.Logger) *Graph {
	n := opt.LateralSamples
	g := newGraph(n, opt.NumPlies())
	g.setNode(&Node{ID: StartID, Pose: start, Heading: start.Theta})

	for ply, station := range opt.Stations {
		refPose := curve.PoseAt(ref, station)
		for offset := -n; offset <= n; offset++ {
			lateral := float64(offset) * opt.OffsetScales[ply]
			pose := refPose.Offset(lateral)
			g.setNode(&Node{
				ID:      NodeID{Ply: ply + 1, Offset: offset},
				Station: station,
				Lateral: lateral,
				Pose:    pose,
				Heading: pose.Theta,
			})
		}
	}

	failed := 0
	for ply := 0; ply < g.numPlies; ply++ {
		for _, from := range g.Ply(ply) {
			fromIdx, _ := g.Index(from.ID)
			for _, to := range g.Ply(ply + 1) {
				toIdx, _ := g.Index(to.ID)
				edge := &Edge{From: fromIdx, To: toIdx}
				seg, err := curve.G1Hermite(from.departure(), to.Pose)
				if err != nil {
					failed++
					logger.Debugw("no segment between nodes", "from", from.ID, "to", to.ID, "error", err)
				} else {
					edge.Segment = &PathSegment{From: from.ID, To: to.ID, Curve: seg}
				}
				g.addEdge(edge)
			}
		}
		propagateHeadings(g, ply+1)
	}
	logger.Debugw("built lattice", "nodes", len(g.nodes), "edges", len(g.edges), "unconstructible", failed)
	return g
}

// propagateHeadings sets the heading of each node in ply to the end heading of its first constructed
// incoming segment. Nodes with no constructed incoming segment keep the reference heading.
func propagateHeadings(g *Graph, ply int) {
	for _, node := range g.Ply(ply) {
		idx, _ := g.Index(node.ID)
		for _, e := range g.Incoming(idx) {
			if e.Segment != nil {
				node.Heading = e.Segment.Curve.ThetaEnd()
				break
			}
		}
	}
}
