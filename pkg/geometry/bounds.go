package geometry

import (
	"fmt"
	"math"
)

// chordCenterX is the x coordinate the normalized chord is centered on:
// profiles span approximately [0,1], so the domain is centered at 0.5.
const chordCenterX = 0.5

// Domain describes the exterior computational region the airfoil must fit
// in. Exactly one of the two shapes is active: a circular farfield when
// Radius > 0, otherwise a Length x Width box. Both are centered at
// (chordCenterX, 0).
type Domain struct {
	Radius        float64
	Length, Width float64
}

// FarfieldDomain returns a circular domain of the given radius.
func FarfieldDomain(radius float64) Domain {
	return Domain{Radius: radius}
}

// BoxDomain returns a rectangular domain of the given dimensions.
func BoxDomain(length, width float64) Domain {
	return Domain{Length: length, Width: width}
}

// OutOfBoundsError reports that the airfoil plus its offset layer does not
// fit inside the requested domain. It is fatal: meshing such a domain would
// produce a boundary layer intersecting the farfield.
type OutOfBoundsError struct {
	Domain Domain
	Offset float64
}

func (e *OutOfBoundsError) Error() string {
	if e.Domain.Radius > 0 {
		return fmt.Sprintf("airfoil with offset %g does not fit inside farfield radius %g",
			e.Offset, e.Domain.Radius)
	}
	return fmt.Sprintf("airfoil with offset %g does not fit inside %gx%g box",
		e.Offset, e.Domain.Length, e.Domain.Width)
}

// CheckBounds verifies that the contour, grown by offset on every side
// (typically the total boundary-layer thickness), still fits inside the
// domain. It must run before any meshing kernel call is issued.
//
// Returns an *OutOfBoundsError on violation, nil otherwise.
func CheckBounds(c *Contour, d Domain, offset float64) error {
	off := math.Abs(offset)

	if d.Radius > 0 {
		var maxR float64
		for _, p := range c.Points() {
			maxR = max(maxR, math.Hypot(p.X-chordCenterX, p.Y))
		}
		if maxR+off > d.Radius {
			return &OutOfBoundsError{Domain: d, Offset: offset}
		}
		return nil
	}

	minX, maxX, minY, maxY := c.Bounds()
	if math.Abs(maxX-chordCenterX)+off > d.Length/2 ||
		math.Abs(minX-chordCenterX)+off > d.Length/2 ||
		math.Abs(maxY)+off > d.Width/2 ||
		math.Abs(minY)+off > d.Width/2 {
		return &OutOfBoundsError{Domain: d, Offset: offset}
	}
	return nil
}
