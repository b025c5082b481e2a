// Package preview renders a quick-look plot of the normalized contour and,
// for structured runs, the block decomposition outline. The output format
// follows the file extension (png, svg, pdf).
package preview

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cassyr/airfoil2d/pkg/geometry"
	"github.com/cassyr/airfoil2d/pkg/topology"
)

// XYs adapts a point sequence to the plotter.XYer interface.
type XYs []geometry.Point

// Len returns the number of points.
func (x XYs) Len() int { return len(x) }

// XY returns the coordinates at index i.
func (x XYs) XY(i int) (float64, float64) { return x[i].X, x[i].Y }

// arcSamples is the polyline resolution used to draw the nose arc.
const arcSamples = 48

// Save writes a plot of the contour to path. topo may be nil; when given,
// the outer block boundary and the nose arc are drawn around the airfoil.
func Save(c *geometry.Contour, topo *topology.Topology, path string) error {
	p := plot.New()
	p.Title.Text = "airfoil preview"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	skin, err := plotter.NewLine(closedLoop(c))
	if err != nil {
		return err
	}
	p.Add(skin)

	if topo != nil {
		if err := addBlockOutline(p, c, topo); err != nil {
			return err
		}
	}

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}

func closedLoop(c *geometry.Contour) XYs {
	pts := make(XYs, 0, c.Len()+1)
	pts = append(pts, c.Points()...)
	pts = append(pts, c.At(0))
	return pts
}

// addBlockOutline draws the straight boundary lines of the five-block plan
// plus a sampled nose arc.
func addBlockOutline(p *plot.Plot, c *geometry.Contour, t *topology.Topology) error {
	te := geometry.Point{X: t.Outer["tte"].X, Y: t.Outer["wr"].Y}
	noseUp := c.At(t.NoseUpperIdx)
	noseDown := c.At(t.NoseLowerIdx)

	segments := []XYs{
		{t.Outer["tl"], t.Outer["tte"], t.Outer["tr"], t.Outer["br"], t.Outer["bte"], t.Outer["bl"]},
		{t.Outer["tte"], te, t.Outer["bte"]},
		{te, t.Outer["wr"]},
		{noseUp, t.Outer["tl"]},
		{noseDown, t.Outer["bl"]},
		arc(t),
	}
	for _, seg := range segments {
		line, err := plotter.NewLine(seg)
		if err != nil {
			return err
		}
		line.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(line)
	}
	return nil
}

// arc samples the nose arc between the two left corners around the arc
// center.
func arc(t *topology.Topology) XYs {
	center := t.Outer["center"]
	tl, bl := t.Outer["tl"], t.Outer["bl"]
	radius := math.Hypot(tl.X-center.X, tl.Y-center.Y)
	start := math.Atan2(tl.Y-center.Y, tl.X-center.X)
	end := math.Atan2(bl.Y-center.Y, bl.X-center.X)

	pts := make(XYs, 0, arcSamples+1)
	for i := 0; i <= arcSamples; i++ {
		a := start + (end-start)*float64(i)/arcSamples
		pts = append(pts, geometry.Point{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		})
	}
	return pts
}
