package geometry

import (
	"math"

	"github.com/golang/geo/r2"
)

// Point is a single boundary coordinate of an airfoil skin.
//
// Identity is positional: a Point is identified by its index in the Contour
// that owns it, not by a stable id. MeshSize is an advisory local element
// size hint forwarded to the meshing kernel; it carries no geometric meaning.
type Point struct {
	X, Y, Z  float64
	MeshSize float64
}

// Vec returns the in-plane coordinates as an r2 vector. The Z coordinate is
// dropped: all preprocessing operates on the z=0 cross-section plane.
func (p Point) Vec() r2.Point {
	return r2.Point{X: p.X, Y: p.Y}
}

// DistanceTo returns the in-plane Euclidean distance to q.
func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Rotated returns the point rotated by angle (radians, counter-clockwise
// positive) about the z axis through origin.
func (p Point) Rotated(angle float64, origin Point) Point {
	sin, cos := math.Sincos(angle)
	dx, dy := p.X-origin.X, p.Y-origin.Y
	return Point{
		X:        origin.X + dx*cos - dy*sin,
		Y:        origin.Y + dx*sin + dy*cos,
		Z:        p.Z,
		MeshSize: p.MeshSize,
	}
}

// Translated returns the point shifted by (dx, dy, dz).
func (p Point) Translated(dx, dy, dz float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy, Z: p.Z + dz, MeshSize: p.MeshSize}
}

// coincident reports whether two points occupy the same in-plane position.
// Coordinates in the UIUC database are quantized to about 1e-6 of chord, so
// anything closer than 1e-9 is the same physical point.
func coincident(p, q Point) bool {
	return math.Abs(p.X-q.X) < 1e-9 && math.Abs(p.Y-q.Y) < 1e-9
}
