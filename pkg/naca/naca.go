// Package naca generates 4-digit NACA profile point clouds analytically.
//
// A 4-digit code MPTT encodes maximum camber M (percent of chord), camber
// position P (tenths of chord) and thickness TT (percent of chord). The
// generated cloud traces the contour in one sequence from the trailing
// edge over the upper surface to the leading edge and back, matching the
// layout of database coordinate files.
package naca

import (
	"math"
	"strings"

	"github.com/cassyr/airfoil2d/pkg/errors"
	"github.com/cassyr/airfoil2d/pkg/geometry"
)

// DefaultPoints is the per-surface point count used when the caller does
// not override it.
const DefaultPoints = 100

// Generate computes the point cloud of a 4-digit profile. code accepts
// both bare digits ("0012") and the prefixed form ("naca0012"). n is the
// point count per surface; n < 2 falls back to [DefaultPoints].
func Generate(code string, n int) ([]geometry.Point, error) {
	m, p, thick, err := parseCode(code)
	if err != nil {
		return nil, err
	}
	if n < 2 {
		n = DefaultPoints
	}

	upper := make([]geometry.Point, n)
	lower := make([]geometry.Point, n)
	for i := range n {
		// Cosine spacing clusters points at both chord ends where the
		// curvature is highest.
		x := (1 - math.Cos(math.Pi*float64(i)/float64(n-1))) / 2
		yt := thickness(x, thick)
		yc, grad := camber(x, m, p)
		theta := math.Atan(grad)

		upper[i] = geometry.Point{X: x - yt*math.Sin(theta), Y: yc + yt*math.Cos(theta)}
		lower[i] = geometry.Point{X: x + yt*math.Sin(theta), Y: yc - yt*math.Cos(theta)}
	}

	// Trailing edge, up and over to the leading edge, back along the
	// bottom. The shared endpoints appear once.
	pts := make([]geometry.Point, 0, 2*n-1)
	for i := n - 1; i >= 0; i-- {
		pts = append(pts, upper[i])
	}
	pts = append(pts, lower[1:]...)
	return pts, nil
}

// IsCode reports whether s looks like a 4-digit profile code.
func IsCode(s string) bool {
	_, _, _, err := parseCode(s)
	return err == nil
}

func parseCode(code string) (m, p, thick float64, err error) {
	s := strings.ToLower(strings.TrimSpace(code))
	s = strings.TrimSpace(strings.TrimPrefix(s, "naca"))
	if len(s) != 4 {
		return 0, 0, 0, errors.New(errors.ErrCodeInvalidProfile,
			"%q is not a 4-digit profile code", code)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, 0, 0, errors.New(errors.ErrCodeInvalidProfile,
				"%q is not a 4-digit profile code", code)
		}
	}

	m = float64(s[0]-'0') / 100
	p = float64(s[1]-'0') / 10
	thick = float64((s[2]-'0')*10+(s[3]-'0')) / 100
	if thick == 0 {
		return 0, 0, 0, errors.New(errors.ErrCodeInvalidProfile,
			"profile %q has zero thickness", code)
	}
	if m > 0 && p == 0 {
		return 0, 0, 0, errors.New(errors.ErrCodeInvalidProfile,
			"profile %q is cambered but places the camber at the leading edge", code)
	}
	return m, p, thick, nil
}

// thickness is the 4-digit half-thickness distribution. The -0.1036 final
// coefficient closes the trailing edge.
func thickness(x, t float64) float64 {
	return 5 * t * (0.2969*math.Sqrt(x) -
		0.1260*x -
		0.3516*x*x +
		0.2843*x*x*x -
		0.1036*x*x*x*x)
}

// camber returns the camber-line height and its gradient at x.
func camber(x, m, p float64) (yc, grad float64) {
	if m == 0 {
		return 0, 0
	}
	if x < p {
		yc = m / (p * p) * (2*p*x - x*x)
		grad = 2 * m / (p * p) * (p - x)
		return yc, grad
	}
	yc = m / ((1 - p) * (1 - p)) * (1 - 2*p + 2*p*x - x*x)
	grad = 2 * m / ((1 - p) * (1 - p)) * (p - x)
	return yc, grad
}
