package database

import (
	"testing"
)

func TestParseDatSelig(t *testing.T) {
	data := `EPPLER 423
 1.00000  0.00000
 0.49412  0.11914
 0.00000  0.00795
 0.50340 -0.00255
 1.00000  0.00000
`
	pts, err := ParseDat([]byte(data))
	if err != nil {
		t.Fatalf("ParseDat: %v", err)
	}
	if len(pts) != 5 {
		t.Fatalf("%d points, want 5", len(pts))
	}
	if pts[1].X != 0.49412 || pts[1].Y != 0.11914 {
		t.Errorf("pts[1] = %v", pts[1])
	}
}

func TestParseDatLednicer(t *testing.T) {
	// Three upper and three lower points, both surfaces leading edge to
	// trailing edge, separated by blank lines.
	data := `NACA 0012
       3.       3.

  0.000000  0.000000
  0.500000  0.060000
  1.000000  0.001000

  0.000000  0.000000
  0.500000 -0.060000
  1.000000 -0.001000
`
	pts, err := ParseDat([]byte(data))
	if err != nil {
		t.Fatalf("ParseDat: %v", err)
	}
	// Upper reversed plus lower without the duplicate leading edge.
	if len(pts) != 5 {
		t.Fatalf("%d points, want 5", len(pts))
	}
	if pts[0].X != 1 || pts[0].Y != 0.001 {
		t.Errorf("pts[0] = %v, want trailing edge of the upper surface", pts[0])
	}
	if pts[2].X != 0 || pts[2].Y != 0 {
		t.Errorf("pts[2] = %v, want the leading edge", pts[2])
	}
	if pts[4].Y != -0.001 {
		t.Errorf("pts[4] = %v, want trailing edge of the lower surface", pts[4])
	}
}

func TestParseDatErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty file", ""},
		{"title only", "SOME AIRFOIL\n"},
		{"lednicer count mismatch", "NAME\n 5. 5.\n 0.0 0.0\n 1.0 0.0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseDat([]byte(tt.data)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestParseDatSkipsJunkLines(t *testing.T) {
	data := `TITLE WITH 2 WORDS BUT NO NUMBERS
# comment
 1.0 0.0
 0.5 0.1
 0.0 0.0
 0.5 -0.1
`
	pts, err := ParseDat([]byte(data))
	if err != nil {
		t.Fatalf("ParseDat: %v", err)
	}
	if len(pts) != 4 {
		t.Errorf("%d points, want 4", len(pts))
	}
}
