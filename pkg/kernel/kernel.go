// Package kernel defines the interface to the external geometry/meshing
// backend and the shape builders that issue request sequences against it.
//
// The preprocessing core never depends on backend internals: every component
// receives an explicit [Kernel] handle and emits create/constrain/generate
// requests in dependency order (points before curves, curves before loops,
// loops before surfaces, geometry before transfinite constraints, all
// geometry before mesh generation). [Recorder] implements Kernel and records
// the request sequence, which is what the pipeline tests assert against.
package kernel

import "github.com/cassyr/airfoil2d/pkg/geometry"

// Dimensions of kernel entities.
const (
	DimPoint   = 0
	DimCurve   = 1
	DimSurface = 2
)

// Entity identifies a kernel-held geometric object as a (dimension, tag)
// pair. Tags are assigned by the kernel and are only meaningful to it.
type Entity struct {
	Dim int
	Tag int
}

// PointEntity wraps a point tag.
func PointEntity(tag int) Entity { return Entity{Dim: DimPoint, Tag: tag} }

// CurveEntity wraps a curve tag.
func CurveEntity(tag int) Entity { return Entity{Dim: DimCurve, Tag: tag} }

// SurfaceEntity wraps a surface tag.
func SurfaceEntity(tag int) Entity { return Entity{Dim: DimSurface, Tag: tag} }

// Vec3 is a 3-component vector used for transform origins, axes and
// translation offsets.
type Vec3 struct {
	X, Y, Z float64
}

// MeshType selects the node spacing law of a transfinite curve constraint.
type MeshType string

const (
	// MeshProgression spaces nodes in a geometric progression with the
	// given coefficient (1 = uniform).
	MeshProgression MeshType = "Progression"
	// MeshBump concentrates nodes symmetrically toward both curve ends.
	MeshBump MeshType = "Bump"
)

// Kernel is the geometry/meshing backend contract. Implementations hold all
// geometric state; this core only issues requests and bookkeeps the returned
// tags.
//
// Calls must be issued in dependency order. Curve splitting mutates
// kernel-held curve identities, so it must not run before the base geometry
// it splits exists, and tags returned by SplitCurve replace the input tag.
type Kernel interface {
	// AddPoint creates a point and returns its tag. meshSize > 0 attaches a
	// local element-size constraint at the point.
	AddPoint(x, y, z, meshSize float64) int

	// AddLine creates a straight segment between two point tags.
	AddLine(start, end int) int

	// AddSpline creates a smooth interpolated curve through the given
	// point tags, in order.
	AddSpline(pointTags []int) int

	// AddCircleArc creates an arc of less than pi from start to end around
	// center.
	AddCircleArc(start, center, end int) int

	// SplitCurve splits the curve at the given points and returns the tags
	// of the resulting curve pieces, in curve order. The input tag becomes
	// invalid.
	SplitCurve(curveTag int, pointTags []int) []int

	// AddCurveLoop creates a closed loop from oriented curve tags
	// (negative tag = reversed orientation) and returns the loop tag.
	AddCurveLoop(curveTags []int) int

	// AddPlaneSurface creates a planar surface from loop tags. The first
	// loop is the outer boundary; the rest are holes.
	AddPlaneSurface(loopTags []int) int

	// Rotate rigidly rotates entities by angle (radians) about the axis
	// through origin.
	Rotate(entities []Entity, origin, axis Vec3, angle float64)

	// Translate rigidly shifts entities by offset.
	Translate(entities []Entity, offset Vec3)

	// SetTransfiniteCurve constrains a curve to the given node count with
	// the given spacing law. coef is the progression/bump coefficient.
	SetTransfiniteCurve(curveTag, nodes int, meshType MeshType, coef float64)

	// SetTransfiniteSurface marks a surface as a transfinite (structured)
	// block with the given corner point tags.
	SetTransfiniteSurface(surfaceTag int, cornerTags []int)

	// Recombine requests quadrilateral recombination on a surface.
	Recombine(surfaceTag int)

	// AddPhysicalGroup names a group of same-dimension entities for
	// boundary-condition assignment and returns the group tag.
	AddPhysicalGroup(dim int, tags []int, name string) int

	// Synchronize flushes pending geometry to the kernel's model.
	Synchronize()

	// SetOption sets a named numeric meshing option.
	SetOption(name string, value float64)

	// BoundaryLayerField requests an extruded boundary-layer field on the
	// given curves. fanPoints get fan refinement (sharp trailing edges).
	BoundaryLayerField(curveTags []int, firstHeight, ratio, thickness float64, fanPoints []int)

	// Generate meshes the model up to the given dimension.
	Generate(dim int) error

	// Optimize smooths the generated mesh with the named method for the
	// given number of passes. Must run after Generate.
	Optimize(method string, passes int)

	// Write serializes the generated mesh to path; the format follows the
	// file extension.
	Write(path string) error
}

// AddContourPoints creates kernel points for every point of a contour and
// returns the tags in contour order.
func AddContourPoints(k Kernel, c *geometry.Contour) []int {
	tags := make([]int, c.Len())
	for i, p := range c.Points() {
		tags[i] = k.AddPoint(p.X, p.Y, p.Z, p.MeshSize)
	}
	return tags
}
