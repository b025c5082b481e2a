// Package topology derives the five-block structured ("C-type")
// quadrilateral decomposition of the domain around a split airfoil contour.
//
// The decomposition is computed as a pure plan first: blocks, boundary
// curves, node counts and spacing progressions, with the cross-block
// consistency invariant checkable without a kernel. Materialization against
// the meshing kernel is a separate step (see [Materialize]).
//
// Block layout around the airfoil:
//
//	  tl ------ tte ------ tr
//	  /    B     |    C    |
//	( A  ((airfoil))--te---wr     (wake)
//	  \    E     |    D    |
//	  bl ------ bte ------ br
//
// A is the curved nose block, B/E the upper/lower mid blocks above and
// below the skin, C/D the upper/lower wake blocks behind the trailing edge.
package topology

import (
	"math"

	"github.com/cassyr/airfoil2d/pkg/errors"
	"github.com/cassyr/airfoil2d/pkg/geometry"
	"github.com/cassyr/airfoil2d/pkg/kernel"
)

// noseSplitX is the chordwise threshold separating the nose curve segments
// from the mid segments on each surface.
const noseSplitX = 0.031

// wakeProgression is the mild spacing progression applied in the wake
// direction to smooth the transition from mid-block to wake-block sizing.
const wakeProgression = 0.98

// Params are the user-facing sizing parameters of the C-type topology.
type Params struct {
	DxLead     float64 // domain extension ahead of the leading edge
	DxTrail    float64 // wake extension behind the trailing edge
	Dy         float64 // total domain height
	ExtSize    float64 // target exterior element size
	FirstLayer float64 // first boundary-layer cell height
	Ratio      float64 // boundary-layer growth ratio
}

// Progression is the node spacing law along one boundary curve, oriented
// along the curve's own direction.
type Progression struct {
	Type kernel.MeshType
	Coef float64
}

// Uniform is the progression with equal spacing.
var Uniform = Progression{Type: kernel.MeshProgression, Coef: 1}

// Side is one oriented boundary curve of a block. Curve names are unique
// across the topology; two sides sharing a curve name refer to the same
// physical curve and must agree on Nodes.
type Side struct {
	Curve   string
	Reverse bool // curve traversed against its own direction in this block
	Nodes   int
	Prog    Progression
}

// Block is a topological quadrilateral: four ordered boundary sides plus
// the recombine-to-quadrilaterals flag handed to the kernel.
type Block struct {
	Name      string
	Sides     [4]Side
	Recombine bool
}

// Counts are the derived per-family node counts.
type Counts struct {
	Vertical int // airfoil/wake line to far boundary
	Wake     int // trailing edge to outflow boundary
	Mid      int // along-skin direction of the mid blocks
	Nose     int // around the nose arc
}

// Topology is the finished five-block plan.
type Topology struct {
	Params Params
	Counts Counts
	Blocks [5]Block

	// NoseUpperIdx and NoseLowerIdx are the contour indices of the
	// nose-split points on the upper and lower surfaces.
	NoseUpperIdx int
	NoseLowerIdx int

	// Outer holds the positions of the outer boundary points by name:
	// tl, tte, tr, wr, br, bte, bl, and the nose arc center.
	Outer map[string]geometry.Point
}

// Build computes the five-block plan for a split contour. The contour is
// read-only from here on.
//
// Fails with an INVALID_PROGRESSION error when the boundary-layer
// parameters cannot fill half the domain height with a geometric
// progression, or when the exterior element size is too coarse for the
// requested extents.
func Build(c *geometry.Contour, s *geometry.Split, p Params) (*Topology, error) {
	counts, err := deriveCounts(p)
	if err != nil {
		return nil, err
	}

	noseUp, noseDown, err := noseSplitIndices(c, s)
	if err != nil {
		return nil, err
	}

	te := s.TrailingEdge
	le := c.At(0)
	leftX := le.X - p.DxLead
	rightX := te.X + p.DxTrail
	halfH := p.Dy / 2

	t := &Topology{
		Params:       p,
		Counts:       counts,
		NoseUpperIdx: noseUp,
		NoseLowerIdx: noseDown,
		Outer: map[string]geometry.Point{
			"tl":     {X: leftX, Y: halfH, MeshSize: p.ExtSize},
			"tte":    {X: te.X, Y: halfH, MeshSize: p.ExtSize},
			"tr":     {X: rightX, Y: halfH, MeshSize: p.ExtSize},
			"wr":     {X: rightX, Y: te.Y, MeshSize: p.ExtSize},
			"br":     {X: rightX, Y: -halfH, MeshSize: p.ExtSize},
			"bte":    {X: te.X, Y: -halfH, MeshSize: p.ExtSize},
			"bl":     {X: leftX, Y: -halfH, MeshSize: p.ExtSize},
			"center": {X: 0.5, Y: 0, MeshSize: p.ExtSize},
		},
	}

	grow := Progression{Type: kernel.MeshProgression, Coef: p.Ratio}
	// Vertical curves on the outflow boundary run outer-to-inner, so they
	// carry the reciprocal coefficient to stay fine at the wake line.
	shrink := Progression{Type: kernel.MeshProgression, Coef: 1 / p.Ratio}
	wake := Progression{Type: kernel.MeshProgression, Coef: wakeProgression}

	vert := func(name string, prog Progression, rev bool) Side {
		return Side{Curve: name, Nodes: counts.Vertical, Prog: prog, Reverse: rev}
	}
	mid := func(name string, rev bool) Side {
		return Side{Curve: name, Nodes: counts.Mid, Prog: Uniform, Reverse: rev}
	}
	wk := func(name string, rev bool) Side {
		return Side{Curve: name, Nodes: counts.Wake, Prog: wake, Reverse: rev}
	}

	t.Blocks = [5]Block{
		{
			Name: "nose",
			Sides: [4]Side{
				{Curve: "nose", Nodes: counts.Nose, Prog: Uniform},
				vert("nose-up", grow, false),
				{Curve: "arc", Nodes: counts.Nose, Prog: Uniform},
				vert("nose-down", grow, true),
			},
			Recombine: true,
		},
		{
			Name: "upper-mid",
			Sides: [4]Side{
				mid("upper-back", false),
				vert("te-up", grow, false),
				mid("top-mid", true),
				vert("nose-up", grow, true),
			},
			Recombine: true,
		},
		{
			Name: "upper-wake",
			Sides: [4]Side{
				wk("wake", false),
				vert("right-up", shrink, true),
				wk("top-wake", true),
				vert("te-up", grow, true),
			},
			Recombine: true,
		},
		{
			Name: "lower-wake",
			Sides: [4]Side{
				vert("te-down", grow, false),
				wk("bottom-wake", false),
				vert("right-down", shrink, false),
				wk("wake", true),
			},
			Recombine: true,
		},
		{
			Name: "lower-mid",
			Sides: [4]Side{
				mid("lower-back", false),
				vert("nose-down", grow, false),
				mid("bottom-mid", false),
				vert("te-down", grow, true),
			},
			Recombine: true,
		},
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// deriveCounts computes the per-family node counts from the sizing
// parameters.
//
// The vertical count inverts the finite geometric series sum: a
// progression with first interval FirstLayer and ratio Ratio needs
// log(1 + (dy/2)/h*(r-1))/log(r) intervals to fill the half height, padded
// by three nodes.
func deriveCounts(p Params) (Counts, error) {
	if p.FirstLayer <= 0 || p.Dy <= 0 {
		return Counts{}, errors.New(errors.ErrCodeInvalidProgression,
			"first layer height and domain height must be positive")
	}
	if p.Ratio <= 1 {
		return Counts{}, errors.New(errors.ErrCodeInvalidProgression,
			"growth ratio %g incompatible with a boundary-fitted progression (need > 1)", p.Ratio)
	}
	arg := 1 + (p.Dy/2)/p.FirstLayer*(p.Ratio-1)
	if arg <= 0 {
		return Counts{}, errors.New(errors.ErrCodeInvalidProgression,
			"boundary-layer progression cannot reach half height %g", p.Dy/2)
	}
	vertical := 3 + int(math.Floor(math.Log(arg)/math.Log(p.Ratio)))
	if vertical < 3 {
		return Counts{}, errors.New(errors.ErrCodeInvalidProgression,
			"vertical node count %d below minimum 3", vertical)
	}

	wakeN := int(math.Floor(p.DxTrail/p.ExtSize)) + 1
	midN := int(math.Floor((1 + p.DxLead/4) / p.ExtSize * 2))

	rNose := math.Sqrt(p.Dy*p.Dy/4 + (0.5+p.DxLead)*(0.5+p.DxLead))
	theta := 2 * math.Atan(p.Dy/(1+2*p.DxLead))
	noseN := max(4, int(math.Floor(rNose/4*theta/p.ExtSize*1.4))+1)

	if wakeN < 2 || midN < 2 {
		return Counts{}, errors.New(errors.ErrCodeInvalidProgression,
			"exterior element size %g too coarse for the requested extents", p.ExtSize)
	}

	return Counts{Vertical: vertical, Wake: wakeN, Mid: midN, Nose: noseN}, nil
}

// noseSplitIndices finds, on each surface, the first contour point past the
// near-nose threshold walking away from the leading edge.
func noseSplitIndices(c *geometry.Contour, s *geometry.Split) (upper, lower int, err error) {
	upper, lower = -1, -1
	for i := 1; i <= s.UpperEnd(); i++ {
		if c.At(i).X > noseSplitX {
			upper = i
			break
		}
	}
	for i := c.Len() - 1; i >= s.LowerStart(); i-- {
		if c.At(i).X > noseSplitX {
			lower = i
			break
		}
	}
	if upper < 0 || lower < 0 {
		return 0, 0, errors.New(errors.ErrCodeDegenerateGeometry,
			"contour has no points past the nose split threshold x=%g", noseSplitX)
	}
	return upper, lower, nil
}

// Validate checks the controlling invariant of the decomposition: every
// curve shared between two blocks carries the identical node count on both
// sides.
func (t *Topology) Validate() error {
	nodes := map[string]int{}
	for _, b := range t.Blocks {
		for _, side := range b.Sides {
			if prev, ok := nodes[side.Curve]; ok && prev != side.Nodes {
				return errors.New(errors.ErrCodeInternal,
					"curve %q has conflicting node counts %d and %d", side.Curve, prev, side.Nodes)
			}
			nodes[side.Curve] = side.Nodes
		}
	}
	return nil
}

// SharedCurves returns, for every curve used by more than one block, the
// names of the blocks using it.
func (t *Topology) SharedCurves() map[string][]string {
	users := map[string][]string{}
	for _, b := range t.Blocks {
		for _, side := range b.Sides {
			users[side.Curve] = append(users[side.Curve], b.Name)
		}
	}
	shared := map[string][]string{}
	for curve, blocks := range users {
		if len(blocks) > 1 {
			shared[curve] = blocks
		}
	}
	return shared
}

// HalfHeightReached reports whether a geometric progression with the given
// interval count actually spans the half domain height. Used to sanity
// check the vertical count derivation.
func (p Params) HalfHeightReached(intervals int) bool {
	sum := p.FirstLayer * (math.Pow(p.Ratio, float64(intervals)) - 1) / (p.Ratio - 1)
	return sum >= p.Dy/2
}
