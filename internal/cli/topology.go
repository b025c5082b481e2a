package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cassyr/airfoil2d/pkg/geometry"
	"github.com/cassyr/airfoil2d/pkg/pipeline"
	"github.com/cassyr/airfoil2d/pkg/topology"
)

// topologyCommand creates the topology command, a debug tool that renders
// the structured block plan as a graph instead of meshing it.
func (c *CLI) topologyCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
	)
	params := topology.Params{
		DxLead:     pipeline.DefaultDxLead,
		DxTrail:    pipeline.DefaultDxTrail,
		Dy:         pipeline.DefaultDy,
		ExtSize:    pipeline.DefaultExtMeshSize,
		FirstLayer: pipeline.DefaultFirstLayer,
		Ratio:      pipeline.DefaultRatio,
	}

	cmd := &cobra.Command{
		Use:   "topology <airfoil>",
		Short: "Show the structured block plan for an airfoil",
		Long: `Show the five-block structured topology planned for an airfoil.

The plan is emitted as Graphviz DOT on stdout, or rendered to SVG when the
output path ends in .svg. Nodes are mesh blocks; edges are the curves two
blocks share, labeled with their transfinite node counts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topo, err := c.planTopology(cmd, args[0], params, noCache, refresh)
			if err != nil {
				return err
			}

			dot := topology.ToDOT(topo)
			if output == "" {
				fmt.Print(dot)
				return nil
			}

			if strings.HasSuffix(output, ".svg") {
				svg, err := topology.RenderSVG(dot)
				if err != nil {
					return fmt.Errorf("render svg: %w", err)
				}
				if err := os.WriteFile(output, svg, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
			} else {
				if err := os.WriteFile(output, []byte(dot), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
			}

			printSuccess("Wrote block plan for %s", args[0])
			printFile(output)
			return nil
		},
	}

	cmd.Flags().Float64Var(&params.DxLead, "dx-lead", params.DxLead, "domain extent ahead of the leading edge")
	cmd.Flags().Float64Var(&params.DxTrail, "dx-trail", params.DxTrail, "domain extent behind the trailing edge")
	cmd.Flags().Float64Var(&params.Dy, "dy", params.Dy, "total domain height")
	cmd.Flags().Float64Var(&params.ExtSize, "ext-mesh-size", params.ExtSize, "element size at the domain boundary")
	cmd.Flags().Float64Var(&params.FirstLayer, "first-layer", params.FirstLayer, "first boundary-layer cell height")
	cmd.Flags().Float64Var(&params.Ratio, "ratio", params.Ratio, "boundary-layer growth ratio")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.dot or .svg; stdout if empty)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the database cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// planTopology resolves a profile and builds its block plan without touching
// a kernel.
func (c *CLI) planTopology(cmd *cobra.Command, name string, params topology.Params, noCache, refresh bool) (*topology.Topology, error) {
	client := newDatabaseClient(noCache)

	points, err := resolveProfile(cmd.Context(), client, name, 0, refresh)
	if err != nil {
		return nil, err
	}

	contour, err := geometry.Normalize(points)
	if err != nil {
		return nil, err
	}
	split, err := geometry.SplitContour(contour, pipeline.DefaultAirfoilMeshSize, true)
	if err != nil {
		return nil, err
	}
	return topology.Build(contour, split, params)
}
