package geometry

import (
	"slices"

	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/floats/scalar"
)

const (
	// bluntTol is the x tolerance under which a trailing-edge neighbor is
	// considered part of a flat-cut (blunt) trailing edge.
	bluntTol = 1e-4

	// repairWindow is how far past the trailing edge a synthesized closing
	// point may lie: an extrapolated intersection is accepted only when its
	// x falls in (te.x, te.x+repairWindow].
	repairWindow = 0.1

	// acceptBehind is the width of the no-repair window behind the trailing
	// edge: an intersection with x in (te.x-acceptBehind, te.x] means the
	// existing geometry already closes acceptably.
	acceptBehind = 1e-3

	// fallbackAdvance is the x offset past the trailing edge where the
	// constrained fallback point is placed when extrapolation fails.
	fallbackAdvance = 0.05
)

// Split is the decomposition of a contour into its upper and lower surface
// curves. Upper runs from the leading edge to the trailing edge in contour
// order; Lower runs from the trailing edge back to the leading edge. Both
// share the leading-edge point, and share the trailing-edge point unless the
// profile is blunt and unrepaired, in which case Upper ends at UpperTrailing
// and Lower starts at LowerTrailing and the skin needs one capping edge
// between them.
type Split struct {
	Upper []Point
	Lower []Point

	LeadingEdge  Point
	TrailingEdge Point

	// Blunt reports whether the trailing edge consists of two physically
	// separate points at the same extremal x.
	Blunt bool
	// Repaired reports whether a synthesized closing point was inserted.
	Repaired bool
	// UpperTrailing and LowerTrailing are the two original trailing points
	// of a blunt profile. Meaningful only when Blunt is true; after a
	// repair they remain in the contour as ordinary skin points.
	UpperTrailing, LowerTrailing Point

	teIndex        int
	upIdx, downIdx int
	upEnd          int
	downStart      int
}

// UpperEnd returns the contour index the upper surface run ends at.
func (s *Split) UpperEnd() int { return s.upEnd }

// LowerStart returns the contour index the lower surface run starts at.
// The run continues to the end of the contour and closes on index 0.
func (s *Split) LowerStart() int { return s.downStart }

// TrailingIndex returns the contour index of the (possibly synthesized)
// trailing-edge point.
func (s *Split) TrailingIndex() int { return s.teIndex }

// SplitContour locates the leading and trailing edges of a normalized
// contour, repairs a blunt trailing edge when repairTE is set, and
// partitions the point sequence into the upper and lower surface curves.
//
// meshSize is the advisory element size assigned to any synthesized point.
// The contour is mutated only by the single insertion a repair performs;
// afterwards it is read-only.
//
// Returns [ErrPointNumeration] if the minimum-x point is not at index 0.
func SplitContour(c *Contour, meshSize float64, repairTE bool) (*Split, error) {
	pts := c.Points()

	le, te := 0, 0
	for i, p := range pts {
		if p.X < pts[le].X {
			le = i
		}
		if p.X > pts[te].X {
			te = i
		}
	}
	if le != 0 {
		return nil, ErrPointNumeration
	}

	s := &Split{
		LeadingEdge:  pts[0],
		TrailingEdge: pts[te],
		teIndex:      te,
	}

	// A blunt trailing edge shows up as a neighbor at (tolerance-equal)
	// extremal x. The contour winds clockwise, so of the two trailing
	// points the earlier one belongs to the upper surface.
	upIdx, downIdx := -1, -1
	switch {
	case scalar.EqualWithinAbs(c.At(te-1).X, pts[te].X, bluntTol):
		upIdx, downIdx = te-1, te
	case scalar.EqualWithinAbs(c.At(te+1).X, pts[te].X, bluntTol):
		upIdx, downIdx = te, te+1
	}
	if upIdx >= 0 {
		s.Blunt = true
		if c.At(upIdx).Y < c.At(downIdx).Y {
			upIdx, downIdx = downIdx, upIdx
		}
		n := c.Len()
		s.upIdx, s.downIdx = ((upIdx%n)+n)%n, ((downIdx%n)+n)%n
		s.UpperTrailing = c.At(upIdx)
		s.LowerTrailing = c.At(downIdx)

		if repairTE {
			repairBluntEdge(c, s, s.upIdx, s.downIdx, meshSize)
		}
	}

	s.partition(c)
	return s, nil
}

// repairBluntEdge synthesizes a single closing point for a blunt trailing
// edge by extrapolating the last skin segment on each side and intersecting
// the two rays. The point is inserted at the lower trailing position and
// becomes the new trailing edge; the two original trailing points stay in
// the contour as ordinary skin points.
//
// When the rays are parallel or the intersection falls outside the accepted
// window past the trailing edge, the policy of the original tool applies:
// an intersection just behind the trailing edge means the geometry already
// closes and no repair happens; anything else falls back to the midpoint of
// the two trailing points advanced along the averaged ray direction.
func repairBluntEdge(c *Contour, s *Split, upIdx, downIdx int, meshSize float64) {
	up, down := c.At(upIdx), c.At(downIdx)
	teX := s.TrailingEdge.X

	// Upper ray: predecessor -> upper trailing. Lower ray: successor ->
	// lower trailing. Both extend past the trailing edge.
	dirUp := up.Vec().Sub(c.At(upIdx - 1).Vec())
	dirDown := down.Vec().Sub(c.At(downIdx + 1).Vec())

	hit, ok := intersectRays(up.Vec(), dirUp, down.Vec(), dirDown)
	if ok && hit.X > teX && hit.X <= teX+repairWindow {
		s.insertClosing(c, downIdx, Point{X: hit.X, Y: hit.Y, Z: up.Z, MeshSize: meshSize})
		return
	}
	if ok && hit.X > teX-acceptBehind && hit.X <= teX {
		// Existing geometry already closes acceptably.
		return
	}

	// Constrained fallback: advance the trailing midpoint along the
	// averaged ray direction until x reaches te.x + fallbackAdvance.
	mid := up.Vec().Add(down.Vec()).Mul(0.5)
	avg := dirUp.Add(dirDown).Mul(0.5)
	targetX := teX + fallbackAdvance
	p := Point{X: targetX, Y: mid.Y, Z: up.Z, MeshSize: meshSize}
	if avg.X > 1e-12 {
		t := (targetX - mid.X) / avg.X
		p.Y = mid.Y + t*avg.Y
	}
	s.insertClosing(c, downIdx, p)
}

// insertClosing inserts the synthesized point before the lower trailing
// point and records it as the new trailing edge.
func (s *Split) insertClosing(c *Contour, downIdx int, p Point) {
	s.teIndex = c.InsertAt(downIdx, p)
	s.TrailingEdge = p
	s.Repaired = true
}

// intersectRays solves p1 + t1*d1 = p2 + t2*d2 for the intersection point.
// ok is false when the directions are parallel.
func intersectRays(p1, d1, p2, d2 r2.Point) (r2.Point, bool) {
	det := d1.Cross(d2)
	if scalar.EqualWithinAbs(det, 0, 1e-12) {
		return r2.Point{}, false
	}
	t1 := p2.Sub(p1).Cross(d2) / det
	return p1.Add(d1.Mul(t1)), true
}

// partition splits the contour into the upper and lower point runs. For a
// blunt unrepaired profile the runs end/start at the two trailing points;
// otherwise both run through the single trailing edge.
func (s *Split) partition(c *Contour) {
	pts := c.Points()
	n := len(pts)

	s.upEnd, s.downStart = s.teIndex, s.teIndex
	if s.Blunt && !s.Repaired {
		// Two trailing points; the skin keeps them both and the gap is
		// closed by a separate capping edge.
		s.upEnd, s.downStart = s.upIdx, s.downIdx
	}

	s.Upper = slices.Clone(pts[:s.upEnd+1])
	lower := make([]Point, 0, n-s.downStart+1)
	lower = append(lower, pts[s.downStart:]...)
	lower = append(lower, pts[0])
	s.Lower = lower
}
