package kernel

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Script is a Kernel that records every request as a Gmsh .geo statement.
// Write stores the accumulated script next to the requested mesh path (same
// name, .geo extension) with a trailing Save directive, so running
//
//	gmsh -2 mesh_airfoil_naca0012.geo
//
// produces the mesh file the pipeline asked for. Tags are allocated
// monotonically per entity dimension, matching Gmsh's next-available-tag
// numbering for script-created entities.
type Script struct {
	stmts []string

	nextPoint   int
	nextCurve   int
	nextLoop    int
	nextSurface int
	nextField   int
}

// NewScript creates an empty script backend.
func NewScript() *Script {
	return &Script{
		nextPoint:   1,
		nextCurve:   1,
		nextLoop:    1,
		nextSurface: 1,
		nextField:   1,
	}
}

// GeoPath returns the script location for a mesh path: the same file name
// with the extension replaced by .geo.
func GeoPath(meshPath string) string {
	return strings.TrimSuffix(meshPath, filepath.Ext(meshPath)) + ".geo"
}

// Source returns the script accumulated so far.
func (s *Script) Source() string {
	return strings.Join(s.stmts, "\n") + "\n"
}

func (s *Script) addf(format string, args ...any) {
	s.stmts = append(s.stmts, fmt.Sprintf(format, args...))
}

// fnum formats a float the way .geo files expect, with no trailing zeros.
func fnum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func tagList(tags []int) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = strconv.Itoa(t)
	}
	return strings.Join(parts, ", ")
}

func (s *Script) AddPoint(x, y, z, meshSize float64) int {
	tag := s.nextPoint
	s.nextPoint++
	if meshSize > 0 {
		s.addf("Point(%d) = {%s, %s, %s, %s};", tag, fnum(x), fnum(y), fnum(z), fnum(meshSize))
	} else {
		s.addf("Point(%d) = {%s, %s, %s};", tag, fnum(x), fnum(y), fnum(z))
	}
	return tag
}

func (s *Script) AddLine(start, end int) int {
	tag := s.nextCurve
	s.nextCurve++
	s.addf("Line(%d) = {%d, %d};", tag, start, end)
	return tag
}

func (s *Script) AddSpline(pointTags []int) int {
	tag := s.nextCurve
	s.nextCurve++
	s.addf("Spline(%d) = {%s};", tag, tagList(pointTags))
	return tag
}

func (s *Script) AddCircleArc(start, center, end int) int {
	tag := s.nextCurve
	s.nextCurve++
	s.addf("Circle(%d) = {%d, %d, %d};", tag, start, center, end)
	return tag
}

func (s *Script) SplitCurve(curveTag int, pointTags []int) []int {
	s.addf("Split Curve {%d} Point {%s};", curveTag, tagList(pointTags))
	pieces := make([]int, len(pointTags)+1)
	for i := range pieces {
		pieces[i] = s.nextCurve
		s.nextCurve++
	}
	return pieces
}

func (s *Script) AddCurveLoop(curveTags []int) int {
	tag := s.nextLoop
	s.nextLoop++
	s.addf("Curve Loop(%d) = {%s};", tag, tagList(curveTags))
	return tag
}

func (s *Script) AddPlaneSurface(loopTags []int) int {
	tag := s.nextSurface
	s.nextSurface++
	s.addf("Plane Surface(%d) = {%s};", tag, tagList(loopTags))
	return tag
}

func (s *Script) Rotate(entities []Entity, origin, axis Vec3, angle float64) {
	s.addf("Rotate {{%s, %s, %s}, {%s, %s, %s}, %s} { %s }",
		fnum(axis.X), fnum(axis.Y), fnum(axis.Z),
		fnum(origin.X), fnum(origin.Y), fnum(origin.Z),
		fnum(angle), entityList(entities))
}

func (s *Script) Translate(entities []Entity, offset Vec3) {
	s.addf("Translate {%s, %s, %s} { %s }",
		fnum(offset.X), fnum(offset.Y), fnum(offset.Z), entityList(entities))
}

func entityList(entities []Entity) string {
	var b strings.Builder
	for _, e := range entities {
		switch e.Dim {
		case DimPoint:
			fmt.Fprintf(&b, "Point{%d}; ", e.Tag)
		case DimCurve:
			fmt.Fprintf(&b, "Curve{%d}; ", e.Tag)
		case DimSurface:
			fmt.Fprintf(&b, "Surface{%d}; ", e.Tag)
		}
	}
	return strings.TrimSpace(b.String())
}

func (s *Script) SetTransfiniteCurve(curveTag, nodes int, meshType MeshType, coef float64) {
	s.addf("Transfinite Curve {%d} = %d Using %s %s;", curveTag, nodes, meshType, fnum(coef))
}

func (s *Script) SetTransfiniteSurface(surfaceTag int, cornerTags []int) {
	s.addf("Transfinite Surface {%d} = {%s};", surfaceTag, tagList(cornerTags))
}

func (s *Script) Recombine(surfaceTag int) {
	s.addf("Recombine Surface {%d};", surfaceTag)
}

func (s *Script) AddPhysicalGroup(dim int, tags []int, name string) int {
	kind := "Point"
	switch dim {
	case DimCurve:
		kind = "Curve"
	case DimSurface:
		kind = "Surface"
	}
	s.addf("Physical %s(%q) = {%s};", kind, name, tagList(tags))
	return len(s.stmts)
}

// Synchronize is a no-op: .geo statements are evaluated in order.
func (s *Script) Synchronize() {}

func (s *Script) SetOption(name string, value float64) {
	s.addf("%s = %s;", name, fnum(value))
}

func (s *Script) BoundaryLayerField(curveTags []int, firstHeight, ratio, thickness float64, fanPoints []int) {
	f := s.nextField
	s.nextField++
	s.addf("Field[%d] = BoundaryLayer;", f)
	s.addf("Field[%d].CurvesList = {%s};", f, tagList(curveTags))
	s.addf("Field[%d].Size = %s;", f, fnum(firstHeight))
	s.addf("Field[%d].Ratio = %s;", f, fnum(ratio))
	s.addf("Field[%d].Thickness = %s;", f, fnum(thickness))
	s.addf("Field[%d].Quads = 1;", f)
	if len(fanPoints) > 0 {
		s.addf("Field[%d].FanPointsList = {%s};", f, tagList(fanPoints))
	}
	s.addf("BoundaryLayer Field = %d;", f)
}

func (s *Script) Generate(dim int) error {
	s.addf("Mesh %d;", dim)
	return nil
}

// Optimize emits one OptimizeMesh directive per pass.
func (s *Script) Optimize(method string, passes int) {
	for range passes {
		s.addf("OptimizeMesh %q;", method)
	}
}

// Write appends a Save directive for path and writes the script to
// [GeoPath](path).
func (s *Script) Write(path string) error {
	s.addf("Save %q;", filepath.Base(path))
	return os.WriteFile(GeoPath(path), []byte(s.Source()), 0o644)
}

var _ Kernel = (*Script)(nil)
