package naca

import (
	"math"
	"testing"

	"github.com/cassyr/airfoil2d/pkg/errors"
	"github.com/cassyr/airfoil2d/pkg/geometry"
)

func TestGenerateSymmetric(t *testing.T) {
	pts, err := Generate("0012", 50)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(pts) != 99 {
		t.Fatalf("%d points, want 99", len(pts))
	}

	// Closed trailing edge: both ends of the sequence meet at (1, 0).
	first, last := pts[0], pts[len(pts)-1]
	if math.Abs(first.X-1) > 1e-9 || math.Abs(first.Y) > 1e-6 {
		t.Errorf("first point = %v, want (1, 0)", first)
	}
	if math.Abs(last.X-1) > 1e-9 || math.Abs(last.Y) > 1e-6 {
		t.Errorf("last point = %v, want (1, 0)", last)
	}

	// Symmetric profile: for every upper point there is a mirrored lower
	// point at the same x.
	n := 50
	for i := range n {
		up := pts[i]
		down := pts[len(pts)-1-i]
		if math.Abs(up.X-down.X) > 1e-9 || math.Abs(up.Y+down.Y) > 1e-9 {
			t.Fatalf("points %v and %v are not mirrored", up, down)
		}
	}

	// Maximum thickness near 12% of chord.
	maxY := 0.0
	for _, p := range pts {
		maxY = math.Max(maxY, p.Y)
	}
	if math.Abs(2*maxY-0.12) > 0.005 {
		t.Errorf("max thickness = %g, want about 0.12", 2*maxY)
	}
}

func TestGenerateCambered(t *testing.T) {
	pts, err := Generate("naca2412", 80)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// Camber pushes the midpoint of the profile above the chord line.
	sum := 0.0
	for _, p := range pts {
		sum += p.Y
	}
	if sum <= 0 {
		t.Errorf("mean y = %g, want > 0 for positive camber", sum/float64(len(pts)))
	}

	// Normalization accepts the cloud as a valid closed contour.
	if _, err := geometry.Normalize(pts); err != nil {
		t.Errorf("Normalize rejects generated cloud: %v", err)
	}
}

func TestGenerateDefaultPoints(t *testing.T) {
	pts, err := Generate("0012", 0)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(pts) != 2*DefaultPoints-1 {
		t.Errorf("%d points, want %d", len(pts), 2*DefaultPoints-1)
	}
}

func TestParseCodeErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"too short", "012"},
		{"too long", "00123"},
		{"letters", "00ab"},
		{"zero thickness", "2400"},
		{"camber without position", "2012"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.code, 50)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if code := errors.GetCode(err); code != errors.ErrCodeInvalidProfile {
				t.Errorf("code = %s, want %s", code, errors.ErrCodeInvalidProfile)
			}
		})
	}
}

func TestIsCode(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"0012", true},
		{"naca2412", true},
		{"NACA 4415", true},
		{"e423", false},
		{"ag03", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsCode(tt.in); got != tt.want {
			t.Errorf("IsCode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
