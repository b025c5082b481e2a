package geometry

import (
	"errors"
	"math"
	"testing"
)

// bluntProfile is a clockwise contour with a flat-cut trailing edge: two
// trailing points at x=1 whose adjacent skin segments converge behind it.
func bluntProfile() *Contour {
	return &Contour{pts: []Point{
		{X: 0, Y: 0},
		{X: 0.5, Y: 0.1},
		{X: 0.98, Y: 0.05},
		{X: 1, Y: 0.02},
		{X: 1, Y: -0.02},
		{X: 0.98, Y: -0.05},
		{X: 0.5, Y: -0.1},
	}}
}

func TestSplitSharpProfile(t *testing.T) {
	c, err := Normalize(diamond())
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	s, err := SplitContour(c, 0.01, false)
	if err != nil {
		t.Fatalf("SplitContour failed: %v", err)
	}

	if s.Blunt {
		t.Error("Blunt = true for a sharp trailing edge")
	}
	if s.Upper[0] != s.Lower[len(s.Lower)-1] {
		t.Error("upper and lower do not share the leading edge")
	}
	if s.Upper[len(s.Upper)-1] != s.Lower[0] {
		t.Error("upper and lower do not share the trailing edge")
	}
	if s.TrailingEdge.X != 1 {
		t.Errorf("trailing edge x = %v, want 1", s.TrailingEdge.X)
	}
	// Upper plus lower (dropping the two shared endpoints) covers the
	// contour exactly once.
	if got := len(s.Upper) + len(s.Lower) - 2; got != c.Len() {
		t.Errorf("covered %d points, contour has %d", got, c.Len())
	}
}

func TestSplitPointNumeration(t *testing.T) {
	c := &Contour{pts: []Point{
		{X: 0.5, Y: 0.1},
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 0.5, Y: -0.1},
	}}
	if _, err := SplitContour(c, 0.01, false); !errors.Is(err, ErrPointNumeration) {
		t.Errorf("err = %v, want ErrPointNumeration", err)
	}
}

func TestSplitBluntDetection(t *testing.T) {
	c := bluntProfile()
	s, err := SplitContour(c, 0.01, false)
	if err != nil {
		t.Fatalf("SplitContour failed: %v", err)
	}
	if !s.Blunt {
		t.Fatal("Blunt = false, want true")
	}
	if s.Repaired {
		t.Error("Repaired = true without repair requested")
	}
	if s.UpperTrailing.Y != 0.02 || s.LowerTrailing.Y != -0.02 {
		t.Errorf("trailing pair = (%v, %v), want (0.02, -0.02)",
			s.UpperTrailing.Y, s.LowerTrailing.Y)
	}
	// Unrepaired blunt split shares only the leading edge; the trailing gap
	// is closed by a capping edge later.
	if s.Upper[len(s.Upper)-1] != s.UpperTrailing {
		t.Error("upper surface does not end at the upper trailing point")
	}
	if s.Lower[0] != s.LowerTrailing {
		t.Error("lower surface does not start at the lower trailing point")
	}
	if got := len(s.Upper) + len(s.Lower) - 1; got != c.Len() {
		t.Errorf("covered %d points, contour has %d", got, c.Len())
	}
}

func TestSplitBluntRepair(t *testing.T) {
	c := bluntProfile()
	before := c.Len()
	s, err := SplitContour(c, 0.01, true)
	if err != nil {
		t.Fatalf("SplitContour failed: %v", err)
	}

	if !s.Repaired {
		t.Fatal("Repaired = false, want true")
	}
	if c.Len() != before+1 {
		t.Fatalf("contour length = %d, want %d", c.Len(), before+1)
	}
	te := s.TrailingEdge
	if te.X <= 1 || te.X > 1.1 {
		t.Errorf("synthesized trailing edge x = %v, want in (1, 1.1]", te.X)
	}
	// Converging symmetric rays from (0.98,0.05) and (0.98,-0.05) through
	// the two trailing points meet on the chord line.
	if math.Abs(te.Y) > 1e-12 {
		t.Errorf("synthesized trailing edge y = %v, want 0", te.Y)
	}
	if math.Abs(te.X-(1+0.02/1.5)) > 1e-9 {
		t.Errorf("synthesized trailing edge x = %v, want %v", te.X, 1+0.02/1.5)
	}

	// The new point sits between the two original trailing points.
	idx := s.TrailingIndex()
	if c.At(idx-1) != s.UpperTrailing {
		t.Errorf("point before trailing edge = %+v, want upper trailing", c.At(idx-1))
	}
	if c.At(idx+1) != s.LowerTrailing {
		t.Errorf("point after trailing edge = %+v, want lower trailing", c.At(idx+1))
	}

	// Both surfaces share the synthesized point.
	if s.Upper[len(s.Upper)-1] != te || s.Lower[0] != te {
		t.Error("surfaces do not share the synthesized trailing edge")
	}
	if got := len(s.Upper) + len(s.Lower) - 2; got != c.Len() {
		t.Errorf("covered %d points, contour has %d", got, c.Len())
	}
}

func TestSplitRepairIdempotent(t *testing.T) {
	c := bluntProfile()
	first, err := SplitContour(c, 0.01, true)
	if err != nil {
		t.Fatalf("first SplitContour failed: %v", err)
	}
	if !first.Repaired {
		t.Fatal("first run did not repair")
	}

	lenAfter := c.Len()
	second, err := SplitContour(c, 0.01, true)
	if err != nil {
		t.Fatalf("second SplitContour failed: %v", err)
	}
	if second.Blunt {
		t.Error("bluntness still detected after repair")
	}
	if second.Repaired || c.Len() != lenAfter {
		t.Error("second run performed a repair on already-repaired contour")
	}
	if second.TrailingEdge != first.TrailingEdge {
		t.Errorf("trailing edge moved: %+v -> %+v", first.TrailingEdge, second.TrailingEdge)
	}
}

func TestSplitParallelRayFallback(t *testing.T) {
	c := &Contour{pts: []Point{
		{X: 0, Y: 0},
		{X: 0.5, Y: 0.1},
		{X: 0.98, Y: 0.02},
		{X: 1, Y: 0.02},
		{X: 1, Y: -0.02},
		{X: 0.98, Y: -0.02},
		{X: 0.5, Y: -0.1},
	}}
	s, err := SplitContour(c, 0.01, true)
	if err != nil {
		t.Fatalf("SplitContour failed: %v", err)
	}
	if !s.Repaired {
		t.Fatal("Repaired = false, want constrained fallback")
	}
	if s.TrailingEdge.X != 1.05 {
		t.Errorf("fallback trailing edge x = %v, want exactly 1.05", s.TrailingEdge.X)
	}
	if math.Abs(s.TrailingEdge.Y) > 1e-12 {
		t.Errorf("fallback trailing edge y = %v, want 0 (midpoint)", s.TrailingEdge.Y)
	}
}

func TestSplitAcceptableGeometryNoRepair(t *testing.T) {
	// Skin segments diverge behind the trailing edge; their backward
	// intersection lands 0.0005 behind it, inside the no-repair window.
	c := &Contour{pts: []Point{
		{X: 0, Y: 0},
		{X: 0.5, Y: 0.3},
		{X: 0.98, Y: -0.0195},
		{X: 1, Y: 0.0005},
		{X: 1, Y: -0.0005},
		{X: 0.98, Y: 0.0195},
		{X: 0.5, Y: -0.3},
	}}
	before := c.Len()
	s, err := SplitContour(c, 0.01, true)
	if err != nil {
		t.Fatalf("SplitContour failed: %v", err)
	}
	if !s.Blunt {
		t.Fatal("Blunt = false, want true")
	}
	if s.Repaired || c.Len() != before {
		t.Error("repair performed on geometry inside the no-repair window")
	}
}

func TestSplitMeshSizeOnSynthesizedPoint(t *testing.T) {
	c := bluntProfile()
	s, err := SplitContour(c, 0.025, true)
	if err != nil {
		t.Fatalf("SplitContour failed: %v", err)
	}
	if s.TrailingEdge.MeshSize != 0.025 {
		t.Errorf("synthesized point mesh size = %v, want 0.025", s.TrailingEdge.MeshSize)
	}
}
