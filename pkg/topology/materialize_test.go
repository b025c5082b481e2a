package topology

import (
	"reflect"
	"strings"
	"testing"

	"github.com/cassyr/airfoil2d/pkg/geometry"
	"github.com/cassyr/airfoil2d/pkg/kernel"
)

func materializeTestPlan(t *testing.T) (*kernel.Recorder, *kernel.AirfoilSkin, *Topology, *Materialized) {
	t.Helper()
	c, err := geometry.Normalize(testProfile())
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	s, err := geometry.SplitContour(c, 0.01, true)
	if err != nil {
		t.Fatalf("SplitContour: %v", err)
	}
	topo, err := Build(c, s, defaultParams())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	rec := kernel.NewRecorder()
	skin := kernel.NewAirfoilSkin(rec, c, s)
	m := topo.Materialize(rec, skin)
	return rec, skin, topo, m
}

func TestMaterializeRequestCounts(t *testing.T) {
	rec, _, _, m := materializeTestPlan(t)

	counts := map[string]int{
		"AddLine":               11,
		"AddCircleArc":          1,
		"SplitCurve":            2,
		"AddSpline":             3, // two skin surfaces plus the merged nose
		"AddCurveLoop":          5,
		"AddPlaneSurface":       5,
		"SetTransfiniteCurve":   15,
		"SetTransfiniteSurface": 5,
		"Recombine":             5,
		"AddPhysicalGroup":      3,
	}
	for method, want := range counts {
		if got := rec.Count(method); got != want {
			t.Errorf("%s called %d times, want %d", method, got, want)
		}
	}

	wantSurfaces := []string{"nose", "upper-mid", "upper-wake", "lower-wake", "lower-mid"}
	for _, name := range wantSurfaces {
		if _, ok := m.Surfaces[name]; !ok {
			t.Errorf("no surface recorded for block %q", name)
		}
	}
}

func TestMaterializeDependencyOrder(t *testing.T) {
	rec, _, _, _ := materializeTestPlan(t)

	checks := []struct {
		before, after string
	}{
		{"AddPoint", "SplitCurve"},     // all geometry exists before splitting
		{"AddLine", "SplitCurve"},      // lines reference pre-split tags only
		{"AddCircleArc", "SplitCurve"}, // same for the nose arc
		{"SplitCurve", "AddCurveLoop"}, // loops reference the split pieces
		{"AddCurveLoop", "AddPlaneSurface"},
		{"AddPlaneSurface", "SetTransfiniteSurface"},
		{"SetTransfiniteSurface", "Recombine"},
		{"Recombine", "AddPhysicalGroup"},
	}
	for _, c := range checks {
		last, first := rec.Last(c.before), rec.First(c.after)
		if last < 0 || first < 0 {
			t.Fatalf("missing calls for %s / %s", c.before, c.after)
		}
		if last > first {
			t.Errorf("last %s at %d after first %s at %d", c.before, last, c.after, first)
		}
	}
}

func TestMaterializeNoseSpline(t *testing.T) {
	rec, skin, topo, _ := materializeTestPlan(t)

	// The merged nose spline is the last AddSpline call. It must run from
	// the lower split point through the leading edge to the upper one.
	idx := rec.Last("AddSpline")
	pts := rec.Calls[idx].Args[0].([]int)

	contourTags := skin.PointTags()
	if pts[0] != contourTags[topo.NoseLowerIdx] {
		t.Errorf("nose spline starts at tag %d, want %d", pts[0], contourTags[topo.NoseLowerIdx])
	}
	if pts[len(pts)-1] != contourTags[topo.NoseUpperIdx] {
		t.Errorf("nose spline ends at tag %d, want %d", pts[len(pts)-1], contourTags[topo.NoseUpperIdx])
	}
	le := contourTags[0]
	found := false
	for _, p := range pts {
		if p == le {
			found = true
		}
	}
	if !found {
		t.Error("nose spline does not pass through the leading edge")
	}

	wantLen := len(contourTags) - topo.NoseLowerIdx + topo.NoseUpperIdx + 1
	if len(pts) != wantLen {
		t.Errorf("nose spline has %d points, want %d", len(pts), wantLen)
	}
}

func TestMaterializeSplitTargets(t *testing.T) {
	rec, skin, topo, m := materializeTestPlan(t)

	contourTags := skin.PointTags()
	var splits []kernel.Call
	for _, c := range rec.Calls {
		if c.Method == "SplitCurve" {
			splits = append(splits, c)
		}
	}
	if len(splits) != 2 {
		t.Fatalf("%d SplitCurve calls, want 2", len(splits))
	}

	upAt := splits[0].Args[1].([]int)
	if len(upAt) != 1 || upAt[0] != contourTags[topo.NoseUpperIdx] {
		t.Errorf("upper spline split at %v, want [%d]", upAt, contourTags[topo.NoseUpperIdx])
	}
	downAt := splits[1].Args[1].([]int)
	if len(downAt) != 1 || downAt[0] != contourTags[topo.NoseLowerIdx] {
		t.Errorf("lower spline split at %v, want [%d]", downAt, contourTags[topo.NoseLowerIdx])
	}

	for _, name := range []string{"upper-front", "upper-back", "lower-back", "lower-front"} {
		if m.Curves[name] == 0 {
			t.Errorf("no curve tag recorded for %q", name)
		}
	}
}

func TestMaterializePhysicalGroups(t *testing.T) {
	rec, _, topo, m := materializeTestPlan(t)

	groups := map[string]kernel.Call{}
	for _, c := range rec.Calls {
		if c.Method == "AddPhysicalGroup" {
			groups[c.Args[2].(string)] = c
		}
	}
	for _, name := range []string{"airfoil", "farfield", "fluid"} {
		if _, ok := groups[name]; !ok {
			t.Fatalf("missing physical group %q", name)
		}
	}

	airfoil := groups["airfoil"].Args[1].([]int)
	want := []int{m.Curves["nose"], m.Curves["upper-back"], m.Curves["lower-back"]}
	if len(airfoil) != len(want) {
		t.Fatalf("airfoil group has %d curves, want %d", len(airfoil), len(want))
	}
	for i, tag := range want {
		if airfoil[i] != tag {
			t.Errorf("airfoil group curve %d = %d, want %d", i, airfoil[i], tag)
		}
	}

	if dim := groups["fluid"].Args[0].(int); dim != kernel.DimSurface {
		t.Errorf("fluid group dim = %d, want %d", dim, kernel.DimSurface)
	}
	fluid := groups["fluid"].Args[1].([]int)
	if len(fluid) != len(topo.Blocks) {
		t.Errorf("fluid group has %d surfaces, want %d", len(fluid), len(topo.Blocks))
	}
}

func TestToDOT(t *testing.T) {
	_, _, topo, _ := materializeTestPlan(t)

	dot := ToDOT(topo)
	for _, want := range []string{"graph topology", `"nose"`, `"upper-wake"`, "wake (51)"} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
}

func TestMaterializeDeterministic(t *testing.T) {
	a, _, _, _ := materializeTestPlan(t)
	b, _, _, _ := materializeTestPlan(t)

	if !reflect.DeepEqual(a.Calls, b.Calls) {
		for i := range a.Calls {
			if i >= len(b.Calls) || !reflect.DeepEqual(a.Calls[i], b.Calls[i]) {
				t.Fatalf("call %d differs between identical plans: %v vs %v",
					i, a.Calls[i], b.Calls[i])
			}
		}
		t.Fatalf("call counts differ: %d vs %d", len(a.Calls), len(b.Calls))
	}
}
