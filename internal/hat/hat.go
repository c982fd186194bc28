// Package hat draws a brimmed cone sitting on top of the ball.
//
// The hat is symmetric about the ball's vertical axis. Its brim is a flat
// ring at height Brim.Y and its sides run up to a circle of Top.Radius at
// Top.Y. Heights and radii are in ball units; y grows downward so a hat on
// top of the head has negative heights.
package hat

import (
	"math"

	"ballface/internal/mathutil"
	"ballface/internal/svgpath"
)

type Brim struct {
	Y           float64
	InnerRadius float64
	OuterRadius float64
}

type Top struct {
	Y      float64
	Radius float64
}

type Shape struct {
	Brim Brim
	Top  Top
}

// Clamped returns s with the brim's inner radius widened to at least the
// ball's cross-section at the brim height, so the sides never cut into the
// ball.
func (s Shape) Clamped() Shape {
	if smallest := math.Sqrt(math.Max(0, 1-s.Brim.Y*s.Brim.Y)); s.Brim.InnerRadius <= smallest {
		s.Brim.InnerRadius = smallest
	}
	return s
}

// Paths holds the hat's drawable parts. The back brim pieces are painted
// before the ball, everything else after the face.
type Paths struct {
	BrimBackFill     *svgpath.Path
	BrimBackOutline  *svgpath.Path
	Sides            *svgpath.Path
	BrimFrontFill    *svgpath.Path
	BrimFrontOutline *svgpath.Path
	Top              *svgpath.Path
}

func emptyPaths() Paths {
	return Paths{
		BrimBackFill:     &svgpath.Path{},
		BrimBackOutline:  &svgpath.Path{},
		Sides:            &svgpath.Path{},
		BrimFrontFill:    &svgpath.Path{},
		BrimFrontOutline: &svgpath.Path{},
		Top:              &svgpath.Path{},
	}
}

// Render projects s through the view matrix m of a ball with the given
// pixel radius.
func Render(s Shape, m mathutil.Mat3, radius float64) Paths {
	out := emptyPaths()

	dir := m.MulVec3(mathutil.Vec3{0, 1 / radius, 0})
	pB := m.MulVec3(mathutil.Vec3{0, s.Brim.Y, 0})
	pT := m.MulVec3(mathutil.Vec3{0, s.Top.Y, 0})
	dirXY := math.Sqrt(math.Max(0, 1-dir[2]*dir[2]))
	angle := math.Atan2(dir[1], dir[0]) + math.Pi/2
	above := dir[2] < 0

	topR := s.Top.Radius * radius
	top := ellipse{pT, angle, topR, topR * dir[2]}
	innerR := s.Brim.InnerRadius * radius
	base := ellipse{pB, angle, innerR, innerR * dir[2]}

	if s.Brim.OuterRadius > s.Brim.InnerRadius {
		outerR := s.Brim.OuterRadius * radius
		rim := ellipse{pB, angle, outerR, outerR * dir[2]}
		renderBrim(&out, s.Brim, rim, base, ratio(s.Brim.Y*dir[2], dirXY))
	}

	coneS := ratio((s.Brim.InnerRadius-s.Top.Radius)*ratio(dir[2], dirXY), s.Top.Y-s.Brim.Y)
	switch {
	case coneS <= -1:
	case coneS >= 1:
		base.ring(out.Sides)
		top.ring(out.Sides)
	default:
		ca := math.Asin(coneS)
		base.segment(out.Sides, true, -ca, math.Pi+ca, true)
		top.segment(out.Sides, false, math.Pi+ca, -ca, false)
		out.Sides.Close()
	}

	if s.Top.Radius > 0 && above {
		top.ring(out.Top)
	}
	return out
}

// renderBrim splits the brim ring where the brim plane passes behind the
// ball. clipDist is the signed distance of the brim plane from the ball's
// silhouette, in ball units.
func renderBrim(out *Paths, b Brim, rim, base ellipse, clipDist float64) {
	surfaceRad := math.Sqrt(math.Max(0, 1-b.Y*b.Y))
	if math.Abs(clipDist) >= surfaceRad {
		var d svgpath.Path
		rim.ring(&d)
		base.ring(&d)
		if clipDist > 0 {
			out.BrimFrontOutline, out.BrimFrontFill = d.Clone(), d.Clone()
		} else {
			out.BrimBackOutline, out.BrimBackFill = d.Clone(), d.Clone()
		}
		return
	}

	clipAngle := math.Asin(clipDist / surfaceRad)
	a1 := -clipAngle
	a2 := math.Pi + clipAngle
	// The back fill reaches past the cut so no seam shows against the front.
	overlap := math.Min(math.Pi*0.1, math.Pi*0.5-math.Abs(clipAngle))
	mid := ellipse{rim.centre, rim.angle, (base.r1 + rim.r1) / 2, (base.r2 + rim.r2) / 2}
	seamA, seamB := mid.at(a1+overlap), mid.at(a2-overlap)

	rim.segment(out.BrimBackOutline, true, a1, a2, false)
	base.segment(out.BrimBackOutline, true, a2, a1, true)

	rim.segment(out.BrimFrontOutline, true, a2, a1+2*math.Pi, false)
	base.segment(out.BrimFrontOutline, true, a1, a2+2*math.Pi, true)

	rim.segment(out.BrimBackFill, true, a1, a2, false)
	out.BrimBackFill.LineTo(seamB)
	base.segment(out.BrimBackFill, false, a2, a1, true)
	out.BrimBackFill.LineTo(seamA)
	out.BrimBackFill.Close()

	rim.segment(out.BrimFrontFill, true, a2, a1+2*math.Pi, false)
	base.segment(out.BrimFrontFill, false, a1, a2+2*math.Pi, true)
	out.BrimFrontFill.Close()
}

// ratio is a/b with 0/0 taken as 0, so looking straight along the hat's
// axis stays finite.
func ratio(a, b float64) float64 {
	if a == 0 || math.IsNaN(a) {
		return 0
	}
	return a / b
}
