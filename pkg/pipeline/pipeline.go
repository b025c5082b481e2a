// Package pipeline orchestrates the full meshing run: profile resolution,
// normalization, rotation, contour splitting, domain validation, kernel
// geometry and mesh output.
//
// [Options] carries every user-facing parameter and supports TOML presets;
// [Runner.Run] executes the pipeline against any [kernel.Kernel]. Tests run
// it against the [kernel.Recorder] double.
package pipeline

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/cassyr/airfoil2d/pkg/errors"
)

// Defaults mirroring the established CLI behavior.
const (
	DefaultFarfieldRadius  = 10.0
	DefaultAirfoilMeshSize = 0.01
	DefaultExtMeshSize     = 0.2
	DefaultFirstLayer      = 3e-5
	DefaultRatio           = 1.2
	DefaultLayers          = 35
	DefaultFormat          = FormatSU2
	DefaultDxLead          = 1.0
	DefaultDxTrail         = 10.0
	DefaultDy              = 10.0
)

// Meshing options passed to every kernel before generation, and the
// post-generation smoothing request.
const (
	boundaryLayerFanElements = 15
	optimizeMethod           = "Laplace2D"
	optimizePasses           = 5
)

// Supported mesh output formats.
const (
	FormatSU2  = "su2"
	FormatMSH  = "msh"
	FormatVTK  = "vtk"
	FormatCGNS = "cgns"
	FormatSTL  = "stl"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSU2:  true,
	FormatMSH:  true,
	FormatVTK:  true,
	FormatCGNS: true,
	FormatSTL:  true,
}

// Options contains all configuration for one meshing run. The toml tags
// allow a preset file to pre-populate any subset of fields; flag values
// set afterwards win.
type Options struct {
	// Profile selection: a database name (e.g. "e423") or a 4-digit code
	// (e.g. "naca0012", "0012").
	Airfoil string `toml:"airfoil"`
	// Points is the per-surface point count for generated 4-digit
	// profiles. Zero selects the generator default.
	Points int `toml:"points"`

	// AngleOfAttack in degrees; positive pitches the leading edge up.
	AngleOfAttack float64 `toml:"angle_of_attack"`

	// Domain: a circular farfield of the given radius, or a length×width
	// box when both box dimensions are set. Box wins when both are given.
	FarfieldRadius float64 `toml:"farfield_radius"`
	BoxLength      float64 `toml:"box_length"`
	BoxWidth       float64 `toml:"box_width"`

	// Mesh sizing.
	AirfoilMeshSize float64 `toml:"airfoil_mesh_size"`
	ExtMeshSize     float64 `toml:"ext_mesh_size"`

	// Boundary layer. NoBoundaryLayer skips the extruded layer entirely
	// and meshes the near field with plain triangles.
	FirstLayer      float64 `toml:"first_layer"`
	Ratio           float64 `toml:"ratio"`
	Layers          int     `toml:"layers"`
	NoBoundaryLayer bool    `toml:"no_bl"`

	// Structural selects the five-block structured topology with the
	// given extents instead of an unstructured triangulation.
	Structural bool    `toml:"structural"`
	DxLead     float64 `toml:"dx_lead"`
	DxTrail    float64 `toml:"dx_trail"`
	Dy         float64 `toml:"dy"`

	// Output.
	Format string `toml:"format"`
	Output string `toml:"output"`

	// Refresh bypasses the database cache.
	Refresh bool `toml:"refresh"`

	// Runtime options, never read from presets.
	Logger *log.Logger `toml:"-"`

	validated bool `toml:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if strings.TrimSpace(o.Airfoil) == "" {
		return errors.New(errors.ErrCodeInvalidInput, "an airfoil name or 4-digit code is required")
	}

	if o.FarfieldRadius == 0 && o.BoxLength == 0 && o.BoxWidth == 0 {
		o.FarfieldRadius = DefaultFarfieldRadius
	}
	if (o.BoxLength == 0) != (o.BoxWidth == 0) {
		return errors.New(errors.ErrCodeInvalidConfig, "a box domain needs both length and width")
	}
	if o.AirfoilMeshSize == 0 {
		o.AirfoilMeshSize = DefaultAirfoilMeshSize
	}
	if o.ExtMeshSize == 0 {
		o.ExtMeshSize = DefaultExtMeshSize
	}
	if o.FirstLayer == 0 {
		o.FirstLayer = DefaultFirstLayer
	}
	if o.Ratio == 0 {
		o.Ratio = DefaultRatio
	}
	if o.Layers == 0 {
		o.Layers = DefaultLayers
	}
	if o.Structural {
		if o.DxLead == 0 {
			o.DxLead = DefaultDxLead
		}
		if o.DxTrail == 0 {
			o.DxTrail = DefaultDxTrail
		}
		if o.Dy == 0 {
			o.Dy = DefaultDy
		}
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if !ValidFormats[o.Format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"unsupported mesh format %q (supported: su2, msh, vtk, cgns, stl)", o.Format)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// MeshFilename is the output filename for a profile: mesh_airfoil_<name>
// with the format as extension. Names are lowercased with whitespace
// removed so they are filesystem-safe.
func (o *Options) MeshFilename() string {
	name := strings.ToLower(strings.TrimSpace(o.Airfoil))
	name = strings.ReplaceAll(name, " ", "")
	return fmt.Sprintf("mesh_airfoil_%s.%s", name, o.Format)
}
