package main

import (
	"image/color"

	"github.com/golang/geo/r2"
	"github.com/samber/lo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"go.viam.com/latticeplan/curve"
	"go.viam.com/latticeplan/motionplan/lattice"
)

const segmentSamples = 100

var (
	feasibleColor   = color.NRGBA{G: 128, A: 40}
	infeasibleColor = color.NRGBA{R: 255, A: 128}
	pathColor       = color.NRGBA{B: 255, A: 255}
	obstacleColor   = color.Black
)

func toXYs(pts []r2.Point) plotter.XYs {
	return lo.Map(pts, func(pt r2.Point, _ int) plotter.XY { return plotter.XY{X: pt.X, Y: pt.Y} })
}

// renderPlan draws the reference, every constructed segment (green when feasible, red otherwise), the
// obstacles and the chosen path.
func renderPlan(res *lattice.Result, ref curve.Curve, obstacles [][]r2.Point, file string) error {
	p := plot.New()
	p.Title.Text = "Lattice plan"
	p.X.Label.Text = "X coordinate"
	p.Y.Label.Text = "Y coordinate"
	p.Add(plotter.NewGrid())

	refLine, err := plotter.NewLine(toXYs(ref.SampleXY(500)))
	if err != nil {
		return err
	}
	refLine.Color = color.Black
	refLine.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(refLine)
	p.Legend.Add("Reference", refLine)

	for _, e := range res.Graph.Edges() {
		if e.Segment == nil {
			continue
		}
		line, err := plotter.NewLine(toXYs(e.Segment.Curve.SampleXY(segmentSamples)))
		if err != nil {
			return err
		}
		line.Color = infeasibleColor
		if e.Cost.IsFeasible() {
			line.Color = feasibleColor
		}
		line.Width = vg.Points(1)
		p.Add(line)
	}

	for i, corners := range obstacles {
		poly, err := plotter.NewPolygon(toXYs(corners))
		if err != nil {
			return err
		}
		poly.Color = nil
		poly.LineStyle.Color = obstacleColor
		poly.LineStyle.Width = vg.Points(3)
		p.Add(poly)
		if i == 0 {
			p.Legend.Add("Obstacle", poly)
		}
	}

	for i, seg := range res.Path {
		line, err := plotter.NewLine(toXYs(seg.Curve.SampleXY(segmentSamples)))
		if err != nil {
			return err
		}
		line.Color = pathColor
		line.Width = vg.Points(3)
		p.Add(line)
		if i == 0 {
			p.Legend.Add("Optimal path", line)
		}
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p.Save(12*vg.Inch, 8*vg.Inch, file)
}
