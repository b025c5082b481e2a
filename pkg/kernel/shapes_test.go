package kernel

import (
	"slices"
	"testing"

	"github.com/cassyr/airfoil2d/pkg/geometry"
)

func sharpSplit(t *testing.T) (*geometry.Contour, *geometry.Split) {
	t.Helper()
	c, err := geometry.Normalize([]geometry.Point{
		{X: 0, Y: 0},
		{X: 0.5, Y: 0.1},
		{X: 1, Y: 0},
		{X: 0.5, Y: -0.1},
	})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	s, err := geometry.SplitContour(c, 0.01, false)
	if err != nil {
		t.Fatalf("SplitContour failed: %v", err)
	}
	return c, s
}

func bluntSplit(t *testing.T) (*geometry.Contour, *geometry.Split) {
	t.Helper()
	c, err := geometry.Normalize([]geometry.Point{
		{X: 0, Y: 0},
		{X: 0.5, Y: 0.1},
		{X: 1, Y: 0.02},
		{X: 1, Y: -0.02},
		{X: 0.5, Y: -0.1},
	})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	s, err := geometry.SplitContour(c, 0.01, false)
	if err != nil {
		t.Fatalf("SplitContour failed: %v", err)
	}
	if !s.Blunt {
		t.Fatal("expected a blunt trailing edge")
	}
	return c, s
}

func TestAirfoilSkinSharp(t *testing.T) {
	k := NewRecorder()
	c, s := sharpSplit(t)
	a := NewAirfoilSkin(k, c, s)

	if got := k.Count("AddPoint"); got != c.Len() {
		t.Errorf("AddPoint count = %d, want %d", got, c.Len())
	}
	if got := k.Count("AddSpline"); got != 2 {
		t.Errorf("AddSpline count = %d, want 2", got)
	}
	if k.Count("AddCircleArc") != 0 {
		t.Error("sharp trailing edge created a capping arc")
	}
	// Points are created before any curve.
	if k.Last("AddPoint") > k.First("AddSpline") {
		t.Error("curve created before its points")
	}

	// Both splines reference the trailing-edge point tag.
	upperPts := k.Calls[k.First("AddSpline")].Args[0].([]int)
	lowerPts := k.Calls[k.First("AddSpline")+1].Args[0].([]int)
	if upperPts[len(upperPts)-1] != a.TrailingTag() {
		t.Error("upper spline does not end at the trailing edge")
	}
	if lowerPts[0] != a.TrailingTag() {
		t.Error("lower spline does not start at the trailing edge")
	}
	// Lower spline closes on the leading edge the upper spline starts at.
	if lowerPts[len(lowerPts)-1] != upperPts[0] {
		t.Error("lower spline does not close on the leading edge")
	}
}

func TestAirfoilSkinBluntCap(t *testing.T) {
	k := NewRecorder()
	c, s := bluntSplit(t)
	a := NewAirfoilSkin(k, c, s)

	if got := k.Count("AddCircleArc"); got != 1 {
		t.Fatalf("AddCircleArc count = %d, want 1 capping arc", got)
	}
	// The cap is transfinite with the fixed node count.
	i := k.First("SetTransfiniteCurve")
	if i < 0 {
		t.Fatal("capping arc has no transfinite constraint")
	}
	if nodes := k.Calls[i].Args[1].(int); nodes != capNodes {
		t.Errorf("cap node count = %d, want %d", nodes, capNodes)
	}

	loop := a.CloseLoop()
	if loop == 0 {
		t.Fatal("CloseLoop returned zero tag")
	}
	curves := k.Calls[k.First("AddCurveLoop")].Args[0].([]int)
	if len(curves) != 3 {
		t.Errorf("loop curve count = %d, want 3 (upper, cap, lower)", len(curves))
	}
}

func TestAirfoilSkinTransforms(t *testing.T) {
	k := NewRecorder()
	c, s := sharpSplit(t)
	a := NewAirfoilSkin(k, c, s)

	a.Rotate(-0.1, Vec3{X: 0.5}, Vec3{Z: 1})
	a.Translate(Vec3{Y: 2})

	ents := k.Calls[k.First("Rotate")].Args[0].([]Entity)
	if len(ents) != c.Len()+2 {
		t.Errorf("rotated %d entities, want %d points + 2 curves", len(ents), c.Len()+2)
	}
	if k.Count("Translate") != 1 {
		t.Error("Translate not issued")
	}
}

func TestRectangleMarkBoundary(t *testing.T) {
	k := NewRecorder()
	r := NewRectangle(k, 0.5, 0, 0, 10, 10, 0.2)
	r.MarkBoundary()

	names := []string{}
	for _, call := range k.Calls {
		if call.Method == "AddPhysicalGroup" {
			names = append(names, call.Args[2].(string))
		}
	}
	want := []string{"inlet", "outlet", "wall"}
	if !slices.Equal(names, want) {
		t.Errorf("boundary names = %v, want %v", names, want)
	}
}

func TestCircleSegments(t *testing.T) {
	k := NewRecorder()
	c := NewCircle(k, 0.5, 0, 0, 10, 0.2)

	// floor(2*pi*10/0.2) = 314 arc segments.
	if got := k.Count("AddCircleArc"); got != 314 {
		t.Errorf("arc count = %d, want 314", got)
	}
	c.MarkBoundary()
	i := k.First("AddPhysicalGroup")
	if name := k.Calls[i].Args[2].(string); name != "farfield" {
		t.Errorf("boundary name = %q, want farfield", name)
	}
}

func TestPlaneSurfaceLoopOrder(t *testing.T) {
	k := NewRecorder()
	c, s := sharpSplit(t)
	a := NewAirfoilSkin(k, c, s)
	r := NewRectangle(k, 0.5, 0, 0, 10, 10, 0.2)

	tag := PlaneSurface(k, r, a)
	if tag == 0 {
		t.Fatal("PlaneSurface returned zero tag")
	}
	loops := k.Calls[k.First("AddPlaneSurface")].Args[0].([]int)
	if len(loops) != 2 {
		t.Fatalf("loop count = %d, want 2", len(loops))
	}
	// The exterior loop comes first, the airfoil hole second.
	if loops[0] == loops[1] {
		t.Error("outer and hole loops share a tag")
	}
}
