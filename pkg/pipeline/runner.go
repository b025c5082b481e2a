package pipeline

import (
	"context"
	"math"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cassyr/airfoil2d/pkg/errors"
	"github.com/cassyr/airfoil2d/pkg/geometry"
	"github.com/cassyr/airfoil2d/pkg/kernel"
	"github.com/cassyr/airfoil2d/pkg/naca"
	"github.com/cassyr/airfoil2d/pkg/topology"
)

// PointSource resolves a named profile to its raw point cloud. The
// database client implements it; tests substitute a local source.
type PointSource interface {
	FetchPoints(ctx context.Context, name string, refresh bool) ([]geometry.Point, error)
}

// Runner executes meshing runs against a kernel. It is stateless aside
// from its collaborators, but the kernel it drives holds model state, so a
// Runner must not execute two runs concurrently against the same kernel.
type Runner struct {
	Kernel kernel.Kernel
	Source PointSource
	Logger *log.Logger
}

// NewRunner creates a runner. logger may be nil.
func NewRunner(k kernel.Kernel, src PointSource, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Kernel: k, Source: src, Logger: logger}
}

// Result contains the outputs of one run.
type Result struct {
	// MeshPath is where the mesh file was written.
	MeshPath string

	// Contour is the normalized (and rotated) airfoil contour.
	Contour *geometry.Contour

	// Split is the upper/lower decomposition, after any trailing-edge
	// repair.
	Split *geometry.Split

	// Topology is the structured block plan; nil for unstructured runs.
	Topology *topology.Topology

	// Stats contains counters and timings.
	Stats Stats
}

// Stats contains run statistics.
type Stats struct {
	Points       int
	Blunt        bool
	Repaired     bool
	ResolveTime  time.Duration
	GenerateTime time.Duration
}

// Run executes the full pipeline: resolve, normalize, rotate, split,
// validate or plan, materialize, generate, write.
//
// Geometry errors abort before the first kernel call; domain-sizing errors
// abort before mesh generation; kernel errors are propagated fatally.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	// The options logger wins when set; otherwise the runner's own.
	// Resolved before validation, which installs a discard logger into
	// unset options.
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	resolveStart := time.Now()
	points, err := r.resolve(ctx, opts)
	if err != nil {
		return nil, err
	}
	for i := range points {
		points[i].MeshSize = opts.AirfoilMeshSize
	}

	c, err := geometry.Normalize(points)
	if err != nil {
		return nil, err
	}
	if c.Len() < 20 {
		logger.Warn("very coarse point cloud", "points", c.Len())
	}

	if opts.AngleOfAttack != 0 {
		// Rotating the airfoil instead of the flow keeps the domain
		// axis-aligned. Negative angle pitches the leading edge up.
		c.Rotate(-opts.AngleOfAttack*math.Pi/180, geometry.Point{X: 0.5})
	}

	// Structured blocks need a single trailing point to anchor the wake
	// line, so blunt edges are repaired there; the unstructured path keeps
	// them and caps the gap instead.
	s, err := geometry.SplitContour(c, opts.AirfoilMeshSize, opts.Structural)
	if err != nil {
		return nil, err
	}
	logger.Info("resolved profile",
		"airfoil", opts.Airfoil,
		"points", c.Len(),
		"blunt", s.Blunt,
		"repaired", s.Repaired,
		"duration", time.Since(resolveStart))

	result := &Result{
		Contour: c,
		Split:   s,
		Stats: Stats{
			Points:      c.Len(),
			Blunt:       s.Blunt,
			Repaired:    s.Repaired,
			ResolveTime: time.Since(resolveStart),
		},
	}

	if opts.Structural {
		if err := r.buildStructured(opts, c, s, result); err != nil {
			return nil, err
		}
	} else {
		if err := r.buildUnstructured(opts, c, s, logger); err != nil {
			return nil, err
		}
	}

	k := r.Kernel
	k.SetOption("Mesh.BoundaryLayerFanElements", boundaryLayerFanElements)
	k.SetOption("Mesh.MeshSizeFromPoints", 1)
	k.SetOption("Mesh.MeshSizeFromCurvature", 0)
	k.SetOption("Mesh.SaveAll", 0)
	k.Synchronize()

	generateStart := time.Now()
	if err := k.Generate(kernel.DimSurface); err != nil {
		return nil, errors.Wrap(errors.ErrCodeKernel, err, "generating mesh")
	}
	k.Optimize(optimizeMethod, optimizePasses)
	result.Stats.GenerateTime = time.Since(generateStart)

	path := filepath.Join(opts.Output, opts.MeshFilename())
	if err := k.Write(path); err != nil {
		return nil, errors.Wrap(errors.ErrCodeKernel, err, "writing mesh to %s", path)
	}
	result.MeshPath = path

	logger.Info("wrote mesh", "path", path, "duration", result.Stats.GenerateTime)
	return result, nil
}

// resolve produces the raw point cloud: analytically for a 4-digit code,
// from the database otherwise.
func (r *Runner) resolve(ctx context.Context, opts Options) ([]geometry.Point, error) {
	if naca.IsCode(opts.Airfoil) {
		return naca.Generate(opts.Airfoil, opts.Points)
	}
	if r.Source == nil {
		return nil, errors.New(errors.ErrCodeInternal, "no point source configured")
	}
	return r.Source.FetchPoints(ctx, opts.Airfoil, opts.Refresh)
}

// buildStructured plans and materializes the five-block topology.
func (r *Runner) buildStructured(opts Options, c *geometry.Contour, s *geometry.Split, result *Result) error {
	topo, err := topology.Build(c, s, topology.Params{
		DxLead:     opts.DxLead,
		DxTrail:    opts.DxTrail,
		Dy:         opts.Dy,
		ExtSize:    opts.ExtMeshSize,
		FirstLayer: opts.FirstLayer,
		Ratio:      opts.Ratio,
	})
	if err != nil {
		return err
	}
	result.Topology = topo

	skin := kernel.NewAirfoilSkin(r.Kernel, c, s)
	topo.Materialize(r.Kernel, skin)
	return nil
}

// buildUnstructured validates the domain, builds the skin and exterior
// shape, and requests an extruded boundary layer along the skin unless
// the run disables it.
func (r *Runner) buildUnstructured(opts Options, c *geometry.Contour, s *geometry.Split, logger *log.Logger) error {
	// Without a boundary layer there is no extrusion the domain must
	// leave room for.
	thickness := 0.0
	if !opts.NoBoundaryLayer {
		thickness = layerThickness(opts.FirstLayer, opts.Ratio, opts.Layers)
	}

	domain := geometry.FarfieldDomain(opts.FarfieldRadius)
	if opts.BoxLength > 0 {
		domain = geometry.BoxDomain(opts.BoxLength, opts.BoxWidth)
	}
	if err := geometry.CheckBounds(c, domain, thickness); err != nil {
		return errors.Wrap(errors.ErrCodeDomainTooSmall, err, "validating domain")
	}

	k := r.Kernel
	skin := kernel.NewAirfoilSkin(k, c, s)

	var shape interface {
		kernel.Closable
		kernel.Markable
	}
	if opts.BoxLength > 0 {
		shape = kernel.NewRectangle(k, 0.5, 0, 0, opts.BoxLength, opts.BoxWidth, opts.ExtMeshSize)
	} else {
		shape = kernel.NewCircle(k, 0.5, 0, 0, opts.FarfieldRadius, opts.ExtMeshSize)
	}

	surface := kernel.PlaneSurface(k, shape, skin)

	if opts.NoBoundaryLayer {
		logger.Info("boundary layer disabled")
	} else {
		// Fan refinement around a sharp trailing edge keeps the extruded
		// layers from folding over at the point.
		var fan []int
		if skin.Sharp() {
			fan = []int{skin.TrailingTag()}
		}
		k.BoundaryLayerField(skin.CurveTags(), opts.FirstLayer, opts.Ratio, thickness, fan)
		logger.Info("boundary layer",
			"first", opts.FirstLayer,
			"ratio", opts.Ratio,
			"layers", opts.Layers,
			"thickness", thickness)
	}

	skin.MarkBoundary()
	shape.MarkBoundary()
	kernel.MarkFluid(k, surface)
	return nil
}

// layerThickness is the total height of n geometric layers: the finite
// series sum h*(r^n - 1)/(r - 1), degenerating to n*h at ratio 1.
func layerThickness(h, ratio float64, n int) float64 {
	if ratio == 1 {
		return h * float64(n)
	}
	return h * (math.Pow(ratio, float64(n)) - 1) / (ratio - 1)
}
