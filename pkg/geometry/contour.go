// Package geometry implements the pure point-sequence preprocessing that
// turns a raw airfoil coordinate cloud into the upper/lower surface
// decomposition consumed by the meshing stages.
//
// The package has no kernel dependency: everything here is an in-memory
// transformation over ordered point sequences. Kernel entities are created
// later, from the finished Contour, by pkg/kernel and pkg/topology.
package geometry

import (
	"errors"
	"slices"
)

var (
	// ErrDegenerateCloud is returned by [Normalize] when the input has fewer
	// than 3 distinct points and therefore cannot describe a closed profile.
	ErrDegenerateCloud = errors.New("point cloud has fewer than 3 distinct points")

	// ErrPointNumeration is returned by [SplitContour] when the leading edge
	// (minimum-x point) is not at index 0. This signals an upstream
	// normalization failure, not bad user input.
	ErrPointNumeration = errors.New("point numeration error: leading edge not at index 0")
)

// Contour is an ordered, cyclic sequence of points describing a closed
// airfoil skin. After [Normalize], index 0 is the leading edge (minimum x)
// and the sequence winds clockwise. No two consecutive points coincide.
//
// A Contour is mutated only by whole-contour rigid transforms ([Contour.Rotate],
// [Contour.Translate]) and by the single trailing-edge insertion performed
// during blunt-edge repair. From the moment [SplitContour] has run, the
// point indices are fixed and the Contour must be treated as read-only.
type Contour struct {
	pts []Point
}

// Normalize builds a Contour from a raw closed polyline.
//
// The sequence is rotated so the point of minimum x (first occurrence on
// ties) sits at index 0, and reversed if it winds counter-clockwise, so the
// output always starts at the leading edge and winds clockwise. Consecutive
// coincident points (including a duplicated closing point, common in
// database files) are dropped.
//
// Returns [ErrDegenerateCloud] if fewer than 3 distinct points remain.
func Normalize(points []Point) (*Contour, error) {
	pts := dedupe(points)
	if len(pts) < 3 {
		return nil, ErrDegenerateCloud
	}

	// Leading edge to index 0.
	le := 0
	for i, p := range pts {
		if p.X < pts[le].X {
			le = i
		}
	}
	pts = rotateTo(pts, le)

	// The point after the leading edge must sit above the point before it,
	// otherwise the polyline winds counter-clockwise.
	if pts[1].Y < pts[len(pts)-1].Y {
		slices.Reverse(pts)
		// Reversal moved the leading edge to the last index.
		pts = rotateTo(pts, len(pts)-1)
	}

	return &Contour{pts: pts}, nil
}

// dedupe drops consecutive coincident points, treating the sequence as
// cyclic (a closing point equal to the first is dropped too).
func dedupe(points []Point) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if len(out) > 0 && coincident(out[len(out)-1], p) {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && coincident(out[len(out)-1], out[0]) {
		out = out[:len(out)-1]
	}
	return out
}

// rotateTo returns the cyclic rotation of pts that places index i first.
func rotateTo(pts []Point, i int) []Point {
	return append(pts[i:], pts[:i]...)
}

// Len returns the number of points in the contour.
func (c *Contour) Len() int { return len(c.pts) }

// At returns the point at cyclic index i (negative indices wrap).
func (c *Contour) At(i int) Point {
	n := len(c.pts)
	return c.pts[((i%n)+n)%n]
}

// Points returns the underlying point sequence. The slice is shared, not
// copied; callers must not mutate it.
func (c *Contour) Points() []Point { return c.pts }

// InsertAt inserts p before cyclic index i and returns the index p ended up
// at. Indices captured before the call and ≥ i are invalidated; callers must
// recompute them from the returned index.
func (c *Contour) InsertAt(i int, p Point) int {
	n := len(c.pts)
	i = ((i % n) + n) % n
	c.pts = slices.Insert(c.pts, i, p)
	return i
}

// Rotate applies a rigid rotation by angle (radians) about the z axis
// through origin to every point. Allowed only before [SplitContour] runs.
func (c *Contour) Rotate(angle float64, origin Point) {
	for i := range c.pts {
		c.pts[i] = c.pts[i].Rotated(angle, origin)
	}
}

// Translate applies a rigid translation to every point.
func (c *Contour) Translate(dx, dy, dz float64) {
	for i := range c.pts {
		c.pts[i] = c.pts[i].Translated(dx, dy, dz)
	}
}

// SignedArea returns the shoelace signed area of the contour. Negative for
// clockwise winding, which is the normalized orientation.
func (c *Contour) SignedArea() float64 {
	var sum float64
	n := len(c.pts)
	for i := range n {
		p, q := c.pts[i], c.pts[(i+1)%n]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// Bounds returns the in-plane bounding box of the contour.
func (c *Contour) Bounds() (minX, maxX, minY, maxY float64) {
	minX, maxX = c.pts[0].X, c.pts[0].X
	minY, maxY = c.pts[0].Y, c.pts[0].Y
	for _, p := range c.pts[1:] {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	return minX, maxX, minY, maxY
}
