package database

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cassyr/airfoil2d/pkg/geometry"
)

// ParseDat parses an airfoil coordinate file in either of the two layouts
// found in the UIUC database:
//
//   - Selig: a title line, then one x-y pair per line tracing the whole
//     contour in one sequence (trailing edge, over the top to the leading
//     edge, back under the bottom).
//   - Lednicer: a title line, a counts line "NU NL" with both values
//     greater than one, then NU upper-surface pairs and NL lower-surface
//     pairs, each running leading edge to trailing edge.
//
// Lednicer input is rewound into a single Selig-style loop. The result is
// raw: ordering, winding and duplicate removal are the normalizer's job.
func ParseDat(data []byte) ([]geometry.Point, error) {
	pairs := parsePairs(string(data))
	if len(pairs) == 0 {
		return nil, fmt.Errorf("no coordinate pairs found")
	}

	// A leading pair with both values past the unit chord is a Lednicer
	// counts line, not a coordinate.
	if pairs[0][0] > 1.01 && pairs[0][1] > 1.01 {
		return assembleLednicer(pairs)
	}

	pts := make([]geometry.Point, len(pairs))
	for i, p := range pairs {
		pts[i] = geometry.Point{X: p[0], Y: p[1]}
	}
	return pts, nil
}

func assembleLednicer(pairs [][2]float64) ([]geometry.Point, error) {
	nUpper := int(pairs[0][0])
	nLower := int(pairs[0][1])
	coords := pairs[1:]
	if len(coords) != nUpper+nLower {
		return nil, fmt.Errorf("counts line promises %d+%d points, file has %d",
			nUpper, nLower, len(coords))
	}

	upper := coords[:nUpper]
	lower := coords[nUpper:]

	// Trailing edge first, over the top to the leading edge, then the
	// lower surface back. The shared leading-edge point is kept once.
	pts := make([]geometry.Point, 0, nUpper+nLower-1)
	for i := nUpper - 1; i >= 0; i-- {
		pts = append(pts, geometry.Point{X: upper[i][0], Y: upper[i][1]})
	}
	for _, p := range lower[1:] {
		pts = append(pts, geometry.Point{X: p[0], Y: p[1]})
	}
	return pts, nil
}

// parsePairs extracts every line holding at least two leading floats,
// skipping titles and blank separators.
func parsePairs(text string) [][2]float64 {
	var pairs [][2]float64
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) < 2 {
			continue
		}
		x, errX := strconv.ParseFloat(fields[0], 64)
		y, errY := strconv.ParseFloat(fields[1], 64)
		if errX != nil || errY != nil {
			continue
		}
		pairs = append(pairs, [2]float64{x, y})
	}
	return pairs
}
