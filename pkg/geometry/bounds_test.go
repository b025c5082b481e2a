package geometry

import (
	"errors"
	"testing"
)

// unitAirfoil spans x in [0,1] and y in [-0.1,0.1].
func unitAirfoil(t *testing.T) *Contour {
	t.Helper()
	c, err := Normalize(diamond())
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	return c
}

func TestCheckBoundsFarfield(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		offset float64
		wantOK bool
	}{
		{"large farfield", 10, 0.001, true},
		{"tight farfield", 0.4, 0.001, false},
		{"exact fit blown by offset", 0.51, 0.1, false},
		{"negative offset uses magnitude", 10, -0.001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckBounds(unitAirfoil(t), FarfieldDomain(tt.radius), tt.offset)
			if tt.wantOK && err != nil {
				t.Errorf("CheckBounds failed: %v", err)
			}
			if !tt.wantOK {
				var oob *OutOfBoundsError
				if !errors.As(err, &oob) {
					t.Errorf("err = %v, want *OutOfBoundsError", err)
				}
			}
		})
	}
}

func TestCheckBoundsBox(t *testing.T) {
	tests := []struct {
		name          string
		length, width float64
		offset        float64
		wantOK        bool
	}{
		{"roomy box", 10, 10, 0.001, true},
		{"too short", 0.9, 10, 0.001, false},
		{"too flat", 10, 0.15, 0.001, false},
		{"offset exceeds height margin", 10, 0.4, 0.15, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckBounds(unitAirfoil(t), BoxDomain(tt.length, tt.width), tt.offset)
			if tt.wantOK && err != nil {
				t.Errorf("CheckBounds failed: %v", err)
			}
			if !tt.wantOK && err == nil {
				t.Error("CheckBounds passed, want out-of-bounds failure")
			}
		})
	}
}
