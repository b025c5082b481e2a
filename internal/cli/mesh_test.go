package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/cassyr/airfoil2d/pkg/pipeline"
)

func TestParseBox(t *testing.T) {
	tests := []struct {
		in      string
		length  float64
		width   float64
		wantErr bool
	}{
		{in: "12x4", length: 12, width: 4},
		{in: "30.5x10", length: 30.5, width: 10},
		{in: "12 x 4", length: 12, width: 4},
		{in: "12", wantErr: true},
		{in: "axb", wantErr: true},
		{in: "12x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			length, width, err := parseBox(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseBox(%q) error: %v", tt.in, err)
			}
			if length != tt.length || width != tt.width {
				t.Errorf("parseBox(%q) = %v, %v, want %v, %v", tt.in, length, width, tt.length, tt.width)
			}
		})
	}
}

func writePreset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preset.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}
	return path
}

func TestApplyPreset(t *testing.T) {
	path := writePreset(t, `
ratio = 2.0
layers = 50
format = "vtk"
structural = true
no_bl = true
`)

	opts := pipeline.Options{
		Ratio:  pipeline.DefaultRatio,
		Layers: pipeline.DefaultLayers,
		Format: pipeline.DefaultFormat,
	}

	flags := pflag.NewFlagSet("mesh", pflag.ContinueOnError)
	flags.Float64Var(&opts.Ratio, "ratio", opts.Ratio, "")
	flags.IntVar(&opts.Layers, "layers", opts.Layers, "")
	flags.StringVar(&opts.Format, "format", opts.Format, "")

	// Explicit flag: must survive the preset.
	if err := flags.Set("ratio", "1.5"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	opts.Ratio = 1.5

	if err := applyPreset(flags, path, &opts); err != nil {
		t.Fatalf("applyPreset() error: %v", err)
	}

	if opts.Ratio != 1.5 {
		t.Errorf("Ratio = %v, explicit flag should win over preset", opts.Ratio)
	}
	if opts.Layers != 50 {
		t.Errorf("Layers = %d, want 50 from preset", opts.Layers)
	}
	if opts.Format != "vtk" {
		t.Errorf("Format = %q, want vtk from preset", opts.Format)
	}
	if !opts.Structural {
		t.Error("Structural should come from preset")
	}
	if !opts.NoBoundaryLayer {
		t.Error("NoBoundaryLayer should come from preset")
	}
}

func TestApplyPresetMissingFile(t *testing.T) {
	opts := pipeline.Options{}
	flags := pflag.NewFlagSet("mesh", pflag.ContinueOnError)
	if err := applyPreset(flags, "/nonexistent/preset.toml", &opts); err == nil {
		t.Fatal("expected error for missing preset file")
	}
}

func TestMergePresetKeepsAirfoil(t *testing.T) {
	opts := pipeline.Options{Airfoil: "naca0012"}
	preset := pipeline.Options{Airfoil: "e423", Dy: 8}

	mergePreset(&opts, &preset)

	if opts.Airfoil != "naca0012" {
		t.Errorf("Airfoil = %q, the command-line name must win", opts.Airfoil)
	}
	if opts.Dy != 8 {
		t.Errorf("Dy = %v, want 8", opts.Dy)
	}
}
