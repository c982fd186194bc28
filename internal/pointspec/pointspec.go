// Package pointspec turns authored point descriptions into points on (or
// near) the unit ball.
//
// Derive is deliberately permissive: it never fails, and out-of-domain input
// is clamped instead of rejected.
package pointspec

import (
	"math"

	"ballface/internal/mathutil"
)

// Spec is the authoring form of a point. X and Y are always present.
//
// When Z is nil it is inferred from the sphere equation, negated if Back is
// set, and D defaults to 1. When D is non-nil the resulting vector is
// rescaled to length D.
type Spec struct {
	X, Y float64
	Z    *float64
	D    *float64
	Back bool
}

// XY is a point given only by its silhouette coordinates.
func XY(x, y float64) Spec {
	return Spec{X: x, Y: y}
}

// XYZ is an explicit point, used as given.
func XYZ(x, y, z float64) Spec {
	return Spec{X: x, Y: y, Z: &z}
}

// XYD is a silhouette point lifted to distance d from the centre.
func XYD(x, y, d float64) Spec {
	return Spec{X: x, Y: y, D: &d}
}

// XYBack is a silhouette point on the far side of the ball.
func XYBack(x, y float64) Spec {
	return Spec{X: x, Y: y, Back: true}
}

// Derive resolves a Spec to a point.
func Derive(s Spec) mathutil.Vec3 {
	x, y := s.X, s.Y
	var z float64
	d := s.D
	if s.Z == nil {
		z = math.Sqrt(1 - x*x - y*y)
		if math.IsNaN(z) {
			z = 0
		} else if s.Back {
			z = -z
		}
		if d == nil {
			one := 1.0
			d = &one
		}
	} else {
		z = *s.Z
	}
	p := mathutil.Vec3{x, y, z}
	if d != nil {
		if l := p.Len(); l > 0 {
			p = p.Scale(*d / l)
		}
	}
	return p
}
