package topology

import "github.com/cassyr/airfoil2d/pkg/kernel"

// Materialized holds the kernel tags produced by [Topology.Materialize],
// keyed the same way the plan names things.
type Materialized struct {
	Points   map[string]int // outer boundary point tags by name
	Curves   map[string]int // final curve tags by plan curve name
	Surfaces map[string]int // surface tags by block name
}

// Materialize issues the kernel request sequence realizing the plan on top
// of an existing airfoil skin, one phase at a time: outer points, boundary
// lines and arc, the surface-spline splits at the nose points, the merged
// nose spline, the transfinite curve constraints, all five loops, all five
// surfaces, the structured-surface constraints, recombination, and finally
// the boundary groups. The sequence is deterministic for a given plan.
//
// The skin's trailing edge must be sharp or repaired; a capped blunt edge
// has two distinct trailing points and cannot anchor the wake line.
func (t *Topology) Materialize(k kernel.Kernel, skin *kernel.AirfoilSkin) *Materialized {
	m := &Materialized{
		Points:   map[string]int{},
		Curves:   map[string]int{},
		Surfaces: map[string]int{},
	}

	for _, name := range []string{"tl", "tte", "tr", "wr", "br", "bte", "bl", "center"} {
		p := t.Outer[name]
		m.Points[name] = k.AddPoint(p.X, p.Y, p.Z, p.MeshSize)
	}

	contourTags := skin.PointTags()
	noseUpTag := contourTags[t.NoseUpperIdx]
	noseDownTag := contourTags[t.NoseLowerIdx]
	teTag := skin.TrailingTag()

	lines := []struct {
		name       string
		start, end int
	}{
		{"nose-up", noseUpTag, m.Points["tl"]},
		{"nose-down", noseDownTag, m.Points["bl"]},
		{"te-up", teTag, m.Points["tte"]},
		{"te-down", teTag, m.Points["bte"]},
		{"right-up", m.Points["tr"], m.Points["wr"]},
		{"right-down", m.Points["br"], m.Points["wr"]},
		{"top-mid", m.Points["tl"], m.Points["tte"]},
		{"top-wake", m.Points["tte"], m.Points["tr"]},
		{"bottom-mid", m.Points["bl"], m.Points["bte"]},
		{"bottom-wake", m.Points["bte"], m.Points["br"]},
		{"wake", teTag, m.Points["wr"]},
	}
	for _, l := range lines {
		m.Curves[l.name] = k.AddLine(l.start, l.end)
	}
	m.Curves["arc"] = k.AddCircleArc(m.Points["tl"], m.Points["center"], m.Points["bl"])

	// Splitting runs after all base geometry exists; the spline tags held
	// by the skin are invalid from here on.
	upperPieces := k.SplitCurve(skin.UpperTag(), []int{noseUpTag})
	m.Curves["upper-front"] = upperPieces[0]
	m.Curves["upper-back"] = upperPieces[1]
	lowerPieces := k.SplitCurve(skin.LowerTag(), []int{noseDownTag})
	m.Curves["lower-back"] = lowerPieces[0]
	m.Curves["lower-front"] = lowerPieces[1]

	m.Curves["nose"] = k.AddSpline(noseSplinePoints(t, contourTags))

	// One transfinite constraint per physical curve, in block/side
	// declaration order so identical plans emit identical sequences.
	// Validate guarantees agreeing counts, so the first occurrence wins.
	constrained := map[string]bool{}
	for _, b := range t.Blocks {
		for _, side := range b.Sides {
			if constrained[side.Curve] {
				continue
			}
			constrained[side.Curve] = true
			k.SetTransfiniteCurve(m.Curves[side.Curve], side.Nodes, side.Prog.Type, side.Prog.Coef)
		}
	}

	// Loops before surfaces, surfaces before their structured constraints.
	loops := make([]int, len(t.Blocks))
	for i, b := range t.Blocks {
		oriented := make([]int, len(b.Sides))
		for j, side := range b.Sides {
			tag := m.Curves[side.Curve]
			if side.Reverse {
				tag = -tag
			}
			oriented[j] = tag
		}
		loops[i] = k.AddCurveLoop(oriented)
	}
	for i, b := range t.Blocks {
		m.Surfaces[b.Name] = k.AddPlaneSurface([]int{loops[i]})
	}

	corners := map[string][4]int{
		"nose":       {noseDownTag, noseUpTag, m.Points["tl"], m.Points["bl"]},
		"upper-mid":  {noseUpTag, teTag, m.Points["tte"], m.Points["tl"]},
		"upper-wake": {teTag, m.Points["wr"], m.Points["tr"], m.Points["tte"]},
		"lower-wake": {teTag, m.Points["bte"], m.Points["br"], m.Points["wr"]},
		"lower-mid":  {teTag, noseDownTag, m.Points["bl"], m.Points["bte"]},
	}
	for _, b := range t.Blocks {
		cs := corners[b.Name]
		k.SetTransfiniteSurface(m.Surfaces[b.Name], cs[:])
	}
	for _, b := range t.Blocks {
		if b.Recombine {
			k.Recombine(m.Surfaces[b.Name])
		}
	}

	k.AddPhysicalGroup(kernel.DimCurve,
		[]int{m.Curves["nose"], m.Curves["upper-back"], m.Curves["lower-back"]}, "airfoil")
	k.AddPhysicalGroup(kernel.DimCurve,
		[]int{m.Curves["arc"], m.Curves["top-mid"], m.Curves["top-wake"],
			m.Curves["right-up"], m.Curves["right-down"],
			m.Curves["bottom-wake"], m.Curves["bottom-mid"]}, "farfield")

	surfaces := make([]int, 0, len(t.Blocks))
	for _, b := range t.Blocks {
		surfaces = append(surfaces, m.Surfaces[b.Name])
	}
	k.AddPhysicalGroup(kernel.DimSurface, surfaces, "fluid")

	return m
}

// noseSplinePoints lists the point tags of the merged nose curve: from the
// lower nose-split point through the leading edge to the upper one.
func noseSplinePoints(t *Topology, contourTags []int) []int {
	n := len(contourTags)
	tags := make([]int, 0, n-t.NoseLowerIdx+t.NoseUpperIdx+1)
	for i := t.NoseLowerIdx; i < n; i++ {
		tags = append(tags, contourTags[i])
	}
	for i := 0; i <= t.NoseUpperIdx; i++ {
		tags = append(tags, contourTags[i])
	}
	return tags
}

// curveConstraints collapses the block sides into one transfinite
// constraint per physical curve. Validate guarantees agreement, so the
// first occurrence wins.
func (t *Topology) curveConstraints() map[string]Side {
	out := map[string]Side{}
	for _, b := range t.Blocks {
		for _, side := range b.Sides {
			if _, ok := out[side.Curve]; !ok {
				out[side.Curve] = side
			}
		}
	}
	return out
}
