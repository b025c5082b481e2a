package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cassyr/airfoil2d/pkg/kernel"
	"github.com/cassyr/airfoil2d/pkg/pipeline"
	"github.com/cassyr/airfoil2d/pkg/preview"
)

// meshCommand creates the mesh command, the main entry point of the tool.
func (c *CLI) meshCommand() *cobra.Command {
	var (
		configPath  string
		previewPath string
		boxStr      string
		noCache     bool
	)
	opts := pipeline.Options{
		FarfieldRadius:  pipeline.DefaultFarfieldRadius,
		AirfoilMeshSize: pipeline.DefaultAirfoilMeshSize,
		ExtMeshSize:     pipeline.DefaultExtMeshSize,
		FirstLayer:      pipeline.DefaultFirstLayer,
		Ratio:           pipeline.DefaultRatio,
		Layers:          pipeline.DefaultLayers,
		DxLead:          pipeline.DefaultDxLead,
		DxTrail:         pipeline.DefaultDxTrail,
		Dy:              pipeline.DefaultDy,
		Format:          pipeline.DefaultFormat,
	}

	cmd := &cobra.Command{
		Use:   "mesh <airfoil>",
		Short: "Generate a mesh around an airfoil",
		Long: `Generate a 2D mesh around an airfoil profile.

The airfoil is either a 4-digit NACA code (e.g. "naca0012", "4415") or the
name of a profile in the UIUC database (e.g. "e423"). Database fetches are
cached locally.

The output is a Gmsh .geo script next to the mesh path; run it through gmsh
to produce the mesh file itself.

Examples:
  airfoil2d mesh naca0012
  airfoil2d mesh e423 --aoa 5 --format vtk
  airfoil2d mesh naca4415 --box 12x4
  airfoil2d mesh naca0012 --structural --dy 8
  airfoil2d mesh naca0012 --config fine.toml --preview contour.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Airfoil = args[0]
			if configPath != "" {
				if err := applyPreset(cmd.Flags(), configPath, &opts); err != nil {
					return err
				}
			}
			if boxStr != "" {
				length, width, err := parseBox(boxStr)
				if err != nil {
					return err
				}
				opts.BoxLength, opts.BoxWidth = length, width
			}
			return c.runMesh(cmd, opts, previewPath, noCache)
		},
	}

	cmd.Flags().IntVar(&opts.Points, "points", opts.Points, "points per surface for generated NACA profiles")
	cmd.Flags().Float64Var(&opts.AngleOfAttack, "aoa", opts.AngleOfAttack, "angle of attack in degrees")
	cmd.Flags().Float64Var(&opts.FarfieldRadius, "farfield", opts.FarfieldRadius, "circular farfield radius in chords")
	cmd.Flags().StringVar(&boxStr, "box", "", "rectangular domain as LENGTHxWIDTH in chords (e.g. 12x4)")
	cmd.Flags().Float64Var(&opts.AirfoilMeshSize, "airfoil-mesh-size", opts.AirfoilMeshSize, "element size on the airfoil")
	cmd.Flags().Float64Var(&opts.ExtMeshSize, "ext-mesh-size", opts.ExtMeshSize, "element size at the domain boundary")
	cmd.Flags().Float64Var(&opts.FirstLayer, "first-layer", opts.FirstLayer, "first boundary-layer cell height")
	cmd.Flags().Float64Var(&opts.Ratio, "ratio", opts.Ratio, "boundary-layer growth ratio")
	cmd.Flags().IntVar(&opts.Layers, "layers", opts.Layers, "number of boundary-layer cells")
	cmd.Flags().BoolVar(&opts.NoBoundaryLayer, "no-bl", false, "mesh the near field with plain triangles, no extruded layer")
	cmd.Flags().BoolVar(&opts.Structural, "structural", false, "build a five-block structured C-grid")
	cmd.Flags().Float64Var(&opts.DxLead, "dx-lead", opts.DxLead, "structured domain extent ahead of the leading edge")
	cmd.Flags().Float64Var(&opts.DxTrail, "dx-trail", opts.DxTrail, "structured domain extent behind the trailing edge")
	cmd.Flags().Float64Var(&opts.Dy, "dy", opts.Dy, "structured total domain height")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", opts.Format, "mesh format: su2 (default), msh, vtk, cgns, stl")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output directory (default current)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the database cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML preset file; explicit flags win")
	cmd.Flags().StringVar(&previewPath, "preview", "", "also save a contour plot (png or svg)")

	return cmd
}

// runMesh executes the pipeline against the script backend and reports.
func (c *CLI) runMesh(cmd *cobra.Command, opts pipeline.Options, previewPath string, noCache bool) error {
	ctx := cmd.Context()
	opts.Logger = c.Logger

	runner := pipeline.NewRunner(kernel.NewScript(), newDatabaseClient(noCache), c.Logger)

	track := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Meshing %s...", opts.Airfoil))
	spinner.Start()

	res, err := runner.Run(ctx, opts)
	if err != nil {
		spinner.StopWithError("Meshing failed")
		return err
	}
	spinner.Stop()
	track.done(fmt.Sprintf("Meshed %s with %d contour points", opts.Airfoil, res.Stats.Points))

	printSuccess("Generated %s mesh script for %s", opts.Format, opts.Airfoil)
	printFile(kernel.GeoPath(res.MeshPath))
	printMeshStats(res.Stats.Points, res.Stats.Blunt, res.Stats.Repaired, res.Topology != nil)

	if previewPath != "" {
		if err := preview.Save(res.Contour, res.Topology, previewPath); err != nil {
			return fmt.Errorf("save preview: %w", err)
		}
		printFile(previewPath)
	}

	printNewline()
	printNextStep("Produce the mesh", fmt.Sprintf("gmsh -2 %s", kernel.GeoPath(res.MeshPath)))
	return nil
}

// applyPreset loads a TOML preset into opts, keeping any value that was set
// explicitly on the command line.
func applyPreset(flags *pflag.FlagSet, path string, opts *pipeline.Options) error {
	var preset pipeline.Options
	if _, err := toml.DecodeFile(path, &preset); err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}

	// Every flag shadowed by a preset key restores its command-line value
	// after the preset is merged.
	keep := map[string]func(){}
	saved := *opts
	keep["points"] = func() { opts.Points = saved.Points }
	keep["aoa"] = func() { opts.AngleOfAttack = saved.AngleOfAttack }
	keep["farfield"] = func() { opts.FarfieldRadius = saved.FarfieldRadius }
	keep["airfoil-mesh-size"] = func() { opts.AirfoilMeshSize = saved.AirfoilMeshSize }
	keep["ext-mesh-size"] = func() { opts.ExtMeshSize = saved.ExtMeshSize }
	keep["first-layer"] = func() { opts.FirstLayer = saved.FirstLayer }
	keep["ratio"] = func() { opts.Ratio = saved.Ratio }
	keep["layers"] = func() { opts.Layers = saved.Layers }
	keep["no-bl"] = func() { opts.NoBoundaryLayer = saved.NoBoundaryLayer }
	keep["structural"] = func() { opts.Structural = saved.Structural }
	keep["dx-lead"] = func() { opts.DxLead = saved.DxLead }
	keep["dx-trail"] = func() { opts.DxTrail = saved.DxTrail }
	keep["dy"] = func() { opts.Dy = saved.Dy }
	keep["format"] = func() { opts.Format = saved.Format }
	keep["output"] = func() { opts.Output = saved.Output }
	keep["refresh"] = func() { opts.Refresh = saved.Refresh }

	mergePreset(opts, &preset)
	flags.Visit(func(f *pflag.Flag) {
		if restore, ok := keep[f.Name]; ok {
			restore()
		}
	})
	return nil
}

// mergePreset copies the preset's non-zero values into opts. The airfoil name
// always comes from the command line.
func mergePreset(opts, preset *pipeline.Options) {
	if preset.Points != 0 {
		opts.Points = preset.Points
	}
	if preset.AngleOfAttack != 0 {
		opts.AngleOfAttack = preset.AngleOfAttack
	}
	if preset.FarfieldRadius != 0 {
		opts.FarfieldRadius = preset.FarfieldRadius
	}
	if preset.BoxLength != 0 {
		opts.BoxLength = preset.BoxLength
	}
	if preset.BoxWidth != 0 {
		opts.BoxWidth = preset.BoxWidth
	}
	if preset.AirfoilMeshSize != 0 {
		opts.AirfoilMeshSize = preset.AirfoilMeshSize
	}
	if preset.ExtMeshSize != 0 {
		opts.ExtMeshSize = preset.ExtMeshSize
	}
	if preset.FirstLayer != 0 {
		opts.FirstLayer = preset.FirstLayer
	}
	if preset.Ratio != 0 {
		opts.Ratio = preset.Ratio
	}
	if preset.Layers != 0 {
		opts.Layers = preset.Layers
	}
	if preset.NoBoundaryLayer {
		opts.NoBoundaryLayer = true
	}
	if preset.Structural {
		opts.Structural = true
	}
	if preset.DxLead != 0 {
		opts.DxLead = preset.DxLead
	}
	if preset.DxTrail != 0 {
		opts.DxTrail = preset.DxTrail
	}
	if preset.Dy != 0 {
		opts.Dy = preset.Dy
	}
	if preset.Format != "" {
		opts.Format = preset.Format
	}
	if preset.Output != "" {
		opts.Output = preset.Output
	}
	if preset.Refresh {
		opts.Refresh = true
	}
}

// parseBox parses a LENGTHxWIDTH domain spec like "12x4".
func parseBox(s string) (length, width float64, err error) {
	l, w, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid box %q, expected LENGTHxWIDTH (e.g. 12x4)", s)
	}
	length, err = strconv.ParseFloat(strings.TrimSpace(l), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid box length %q", l)
	}
	width, err = strconv.ParseFloat(strings.TrimSpace(w), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid box width %q", w)
	}
	return length, width, nil
}
