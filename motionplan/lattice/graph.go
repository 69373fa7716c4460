package lattice

import (
	"fmt"

	"github.com/samber/lo"

	"go.viam.com/latticeplan/curve"
	"go.viam.com/latticeplan/spatialmath"
)

// NodeID identifies a lattice node by ply and lateral offset index. Ply 0 holds only the start node.
type NodeID struct {
	Ply    int `json:"ply"`
	Offset int `json:"offset"`
}

// StartID is the id of the start node.
var StartID = NodeID{}

func (id NodeID) String() string {
	if id.Ply == 0 {
		return "start"
	}
	return fmt.Sprintf("%d_%d", id.Ply, id.Offset)
}

// Node is a candidate waypoint.
type Node struct {
	ID NodeID `json:"id"`
	// Station and Lateral locate the node in the reference's curvilinear frame. For the start node they are the
	// projection of the start pose.
	Station float64 `json:"station"`
	Lateral float64 `json:"lateral"`
	// Pose is the reference pose at Station displaced by Lateral.
	Pose spatialmath.Pose2D `json:"pose"`
	// Heading is the end heading of the segments arriving at the node, used as the start heading of the
	// segments leaving it.
	Heading float64 `json:"heading"`
}

// departure returns the pose segments leaving this node start from.
func (n *Node) departure() spatialmath.Pose2D {
	return spatialmath.NewPose2D(n.Pose.X, n.Pose.Y, n.Heading)
}

// PathSegment is the clothoid joining two lattice nodes.
type PathSegment struct {
	From  NodeID          `json:"from"`
	To    NodeID          `json:"to"`
	Curve *curve.Clothoid `json:"-"`
}

// Length returns the arc length of the segment.
func (ps *PathSegment) Length() float64 {
	return ps.Curve.Length()
}

// CurvatureRate returns the constant curvature rate of the segment.
func (ps *PathSegment) CurvatureRate() float64 {
	return ps.Curve.CurvatureRate()
}

func (ps *PathSegment) String() string {
	return fmt.Sprintf("%v -> %v %v", ps.From, ps.To, ps.Curve)
}

// Edge joins two nodes by index. Segment is nil when no clothoid joins them; such an edge is always infeasible.
type Edge struct {
	From    int
	To      int
	Cost    Cost
	Segment *PathSegment
}

// Graph is a layered lattice: a start node followed by plies of 2n+1 nodes, with every node of a ply joined to
// every node of the next. It is acyclic since stations strictly increase across plies.
type Graph struct {
	lateralSamples int
	numPlies       int

	nodes []*Node
	edges []*Edge
	out   [][]int
	in    [][]int
}

func newGraph(lateralSamples, numPlies int) *Graph {
	numNodes := 1 + numPlies*(2*lateralSamples+1)
	return &Graph{
		lateralSamples: lateralSamples,
		numPlies:       numPlies,
		nodes:          make([]*Node, numNodes),
		out:            make([][]int, numNodes),
		in:             make([][]int, numNodes),
	}
}

// Index returns the position of the node in Nodes().
func (g *Graph) Index(id NodeID) (int, bool) {
	if id == StartID {
		return 0, true
	}
	n := g.lateralSamples
	if id.Ply < 1 || id.Ply > g.numPlies || id.Offset < -n || id.Offset > n {
		return 0, false
	}
	return 1 + (id.Ply-1)*(2*n+1) + id.Offset + n, true
}

// Node returns the node with the given id.
func (g *Graph) Node(id NodeID) (*Node, bool) {
	idx, ok := g.Index(id)
	if !ok {
		return nil, false
	}
	return g.nodes[idx], true
}

// Nodes returns all nodes ordered by ply then offset.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// Edges returns all edges ordered by source node then destination node.
func (g *Graph) Edges() []*Edge {
	return g.edges
}

// Outgoing returns the edges leaving the node at index idx.
func (g *Graph) Outgoing(idx int) []*Edge {
	return g.edgesAt(g.out[idx])
}

// Incoming returns the edges arriving at the node at index idx.
func (g *Graph) Incoming(idx int) []*Edge {
	return g.edgesAt(g.in[idx])
}

func (g *Graph) edgesAt(indices []int) []*Edge {
	edges := make([]*Edge, 0, len(indices))
	for _, i := range indices {
		edges = append(edges, g.edges[i])
	}
	return edges
}

// NumPlies returns the number of plies after the start node.
func (g *Graph) NumPlies() int {
	return g.numPlies
}

// Ply returns the nodes of a ply ordered by offset. Ply 0 is the start node alone.
func (g *Graph) Ply(ply int) []*Node {
	if ply == 0 {
		return g.nodes[:1]
	}
	if ply < 0 || ply > g.numPlies {
		return nil
	}
	width := 2*g.lateralSamples + 1
	first := 1 + (ply-1)*width
	return g.nodes[first : first+width]
}

// Terminals returns the nodes of the last ply ordered by offset.
func (g *Graph) Terminals() []*Node {
	return g.Ply(g.numPlies)
}

func (g *Graph) setNode(node *Node) {
	idx, _ := g.Index(node.ID)
	g.nodes[idx] = node
}

func (g *Graph) addEdge(e *Edge) {
	g.edges = append(g.edges, e)
	g.out[e.From] = append(g.out[e.From], len(g.edges)-1)
	g.in[e.To] = append(g.in[e.To], len(g.edges)-1)
}

// FeasibleEdges returns the number of edges with a finite cost.
func (g *Graph) FeasibleEdges() int {
	return lo.CountBy(g.edges, func(e *Edge) bool { return e.Cost.IsFeasible() })
}
