package kernel

import (
	"math"

	"github.com/cassyr/airfoil2d/pkg/geometry"
)

// Transformable is a shape that can be rigidly moved as a whole.
type Transformable interface {
	Rotate(angle float64, origin, axis Vec3)
	Translate(offset Vec3)
}

// Closable is a shape whose boundary curves can form a closed loop usable
// as a surface boundary. CloseLoop must only be called once the shape is in
// its final position.
type Closable interface {
	CloseLoop() int
}

// Markable is a shape that can name its boundary entities for
// boundary-condition assignment.
type Markable interface {
	MarkBoundary()
}

// capNodes is the fixed transfinite node count on the capping edge of an
// unrepaired blunt trailing edge.
const capNodes = 10

// AirfoilSkin is the airfoil boundary as kernel entities: one spline per
// surface and, for an unrepaired blunt trailing edge, a short capping arc
// joining the two trailing points.
type AirfoilSkin struct {
	Name string

	k         Kernel
	pointTags []int
	upper     int
	lower     int
	cap       int // 0 when the trailing edge is sharp or repaired
	teTag     int
}

// NewAirfoilSkin creates the kernel points for the whole contour and the
// surface splines for the given split. Point creation precedes all curve
// creation, per the kernel dependency order.
func NewAirfoilSkin(k Kernel, c *geometry.Contour, s *geometry.Split) *AirfoilSkin {
	tags := AddContourPoints(k, c)

	upperTags := tags[:s.UpperEnd()+1]
	lowerTags := make([]int, 0, len(tags)-s.LowerStart()+1)
	lowerTags = append(lowerTags, tags[s.LowerStart():]...)
	lowerTags = append(lowerTags, tags[0])

	a := &AirfoilSkin{
		Name:      "airfoil",
		k:         k,
		pointTags: tags,
		upper:     k.AddSpline(upperTags),
		lower:     k.AddSpline(lowerTags),
		teTag:     tags[s.TrailingIndex()],
	}

	if s.Blunt && !s.Repaired {
		a.cap = addTrailingCap(k, s, upperTags[len(upperTags)-1], lowerTags[0])
		a.teTag = upperTags[len(upperTags)-1]
	}
	return a
}

// addTrailingCap closes the gap of a flat-cut trailing edge with a shallow
// arc bulging slightly outward, constrained to a fixed node count.
func addTrailingCap(k Kernel, s *geometry.Split, upTag, downTag int) int {
	up, down := s.UpperTrailing, s.LowerTrailing
	cx := (up.X+down.X)/2 + (down.Y-up.Y)/3
	cy := (up.Y+down.Y)/2 + (up.X-down.X)/3
	center := k.AddPoint(cx, cy, up.Z, up.MeshSize)
	arc := k.AddCircleArc(upTag, center, downTag)
	k.SetTransfiniteCurve(arc, capNodes, MeshProgression, 1)
	return arc
}

// UpperTag returns the curve tag of the upper surface spline.
func (a *AirfoilSkin) UpperTag() int { return a.upper }

// LowerTag returns the curve tag of the lower surface spline.
func (a *AirfoilSkin) LowerTag() int { return a.lower }

// TrailingTag returns the point tag of the trailing edge (the upper
// trailing point for an unrepaired blunt edge).
func (a *AirfoilSkin) TrailingTag() int { return a.teTag }

// PointTags returns the contour point tags in contour order.
func (a *AirfoilSkin) PointTags() []int { return a.pointTags }

// CurveTags returns the skin's curve tags: upper and lower splines plus the
// trailing cap when present.
func (a *AirfoilSkin) CurveTags() []int {
	tags := []int{a.upper, a.lower}
	if a.cap != 0 {
		tags = append(tags, a.cap)
	}
	return tags
}

// Sharp reports whether the skin closes at a single trailing point.
func (a *AirfoilSkin) Sharp() bool { return a.cap == 0 }

// Rotate rotates every skin point. Curves follow their defining points.
func (a *AirfoilSkin) Rotate(angle float64, origin, axis Vec3) {
	a.k.Rotate(a.entities(), origin, axis, angle)
}

// Translate shifts every skin point.
func (a *AirfoilSkin) Translate(offset Vec3) {
	a.k.Translate(a.entities(), offset)
}

func (a *AirfoilSkin) entities() []Entity {
	ents := make([]Entity, 0, len(a.pointTags)+3)
	for _, t := range a.pointTags {
		ents = append(ents, PointEntity(t))
	}
	ents = append(ents, CurveEntity(a.upper), CurveEntity(a.lower))
	if a.cap != 0 {
		ents = append(ents, CurveEntity(a.cap))
	}
	return ents
}

// CloseLoop forms the closed skin loop and returns its tag.
func (a *AirfoilSkin) CloseLoop() int {
	curves := []int{a.upper}
	if a.cap != 0 {
		curves = append(curves, a.cap)
	}
	return a.k.AddCurveLoop(append(curves, a.lower))
}

// MarkBoundary names the skin curves as the airfoil wall.
func (a *AirfoilSkin) MarkBoundary() {
	tags := []int{a.upper, a.lower}
	if a.cap != 0 {
		tags = append(tags, a.cap)
	}
	a.k.AddPhysicalGroup(DimCurve, tags, a.Name)
}

// Rectangle is an axis-aligned rectangular farfield boundary built from
// four corner points and four lines.
type Rectangle struct {
	k      Kernel
	points [4]int
	lines  [4]int
}

// NewRectangle creates a rectangle centered at (xc, yc, z) with side
// lengths dx and dy. Lines run bottom, right, top, left in clockwise point
// order starting at the lower-left corner.
func NewRectangle(k Kernel, xc, yc, z, dx, dy, meshSize float64) *Rectangle {
	r := &Rectangle{k: k}
	r.points = [4]int{
		k.AddPoint(xc-dx/2, yc-dy/2, z, meshSize),
		k.AddPoint(xc+dx/2, yc-dy/2, z, meshSize),
		k.AddPoint(xc+dx/2, yc+dy/2, z, meshSize),
		k.AddPoint(xc-dx/2, yc+dy/2, z, meshSize),
	}
	for i := range 4 {
		r.lines[i] = k.AddLine(r.points[i], r.points[(i+1)%4])
	}
	return r
}

// Rotate rotates the rectangle's points and lines.
func (r *Rectangle) Rotate(angle float64, origin, axis Vec3) {
	r.k.Rotate(r.entities(), origin, axis, angle)
}

// Translate shifts the rectangle's points and lines.
func (r *Rectangle) Translate(offset Vec3) {
	r.k.Translate(r.entities(), offset)
}

func (r *Rectangle) entities() []Entity {
	ents := make([]Entity, 0, 8)
	for _, t := range r.points {
		ents = append(ents, PointEntity(t))
	}
	for _, t := range r.lines {
		ents = append(ents, CurveEntity(t))
	}
	return ents
}

// CloseLoop forms the rectangle's boundary loop and returns its tag.
func (r *Rectangle) CloseLoop() int {
	return r.k.AddCurveLoop(r.lines[:])
}

// MarkBoundary names the rectangle sides: left is the inlet, right the
// outlet, bottom and top the walls.
func (r *Rectangle) MarkBoundary() {
	r.k.AddPhysicalGroup(DimCurve, []int{r.lines[3]}, "inlet")
	r.k.AddPhysicalGroup(DimCurve, []int{r.lines[1]}, "outlet")
	r.k.AddPhysicalGroup(DimCurve, []int{r.lines[0], r.lines[2]}, "wall")
}

// Circle is a circular farfield boundary assembled from arc segments. The
// segment count follows the requested mesh size along the circumference.
type Circle struct {
	k    Kernel
	arcs []int
}

// NewCircle creates a circle of the given radius centered at (xc, yc, z).
func NewCircle(k Kernel, xc, yc, z, radius, meshSize float64) *Circle {
	segments := max(3, int(math.Floor(2*math.Pi*radius/meshSize)))
	realSize := 2 * math.Pi * radius / float64(segments)

	center := k.AddPoint(xc, yc, z, realSize)
	pts := make([]int, segments)
	for i := range segments {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = k.AddPoint(xc+radius*math.Cos(angle), yc+radius*math.Sin(angle), z, realSize)
	}

	c := &Circle{k: k, arcs: make([]int, segments)}
	for i := range segments {
		c.arcs[i] = k.AddCircleArc(pts[i], center, pts[(i+1)%segments])
	}
	return c
}

// Rotate rotates every arc of the circle.
func (c *Circle) Rotate(angle float64, origin, axis Vec3) {
	c.k.Rotate(c.entities(), origin, axis, angle)
}

// Translate shifts every arc of the circle.
func (c *Circle) Translate(offset Vec3) {
	c.k.Translate(c.entities(), offset)
}

func (c *Circle) entities() []Entity {
	ents := make([]Entity, len(c.arcs))
	for i, t := range c.arcs {
		ents[i] = CurveEntity(t)
	}
	return ents
}

// CloseLoop forms the circle's boundary loop and returns its tag.
func (c *Circle) CloseLoop() int {
	return c.k.AddCurveLoop(c.arcs)
}

// MarkBoundary names the whole circle as the farfield.
func (c *Circle) MarkBoundary() {
	c.k.AddPhysicalGroup(DimCurve, c.arcs, "farfield")
}

// PlaneSurface creates a planar surface bounded by the loops of the given
// closable shapes. The first shape is the outer boundary; the rest become
// holes. Returns the surface tag.
func PlaneSurface(k Kernel, shapes ...Closable) int {
	loops := make([]int, len(shapes))
	for i, s := range shapes {
		loops[i] = s.CloseLoop()
	}
	return k.AddPlaneSurface(loops)
}

// MarkFluid names a surface as the fluid domain.
func MarkFluid(k Kernel, surfaceTag int) {
	k.AddPhysicalGroup(DimSurface, []int{surfaceTag}, "fluid")
}

var (
	_ Transformable = (*AirfoilSkin)(nil)
	_ Closable      = (*AirfoilSkin)(nil)
	_ Markable      = (*AirfoilSkin)(nil)
	_ Transformable = (*Rectangle)(nil)
	_ Closable      = (*Rectangle)(nil)
	_ Markable      = (*Rectangle)(nil)
	_ Transformable = (*Circle)(nil)
	_ Closable      = (*Circle)(nil)
	_ Markable      = (*Circle)(nil)
)
