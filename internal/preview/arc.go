package preview

import "math"

type point struct{ x, y float64 }

// quarterArc is the control distance for a 90° circular arc.
const quarterArc = 0.551915024494

// arcToCubics converts the SVG elliptical arc from p to q into cubic Bézier
// segments, three points per segment. It returns nil when the arc is
// degenerate and should be drawn as a line.
func arcToCubics(p, q point, rx, ry, rotDeg float64, large, sweep bool) []point {
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		return nil
	}
	sinR, cosR := math.Sincos(rotDeg * math.Pi / 180)

	// Midpoint in the ellipse's own frame.
	mx := cosR*(p.x-q.x)/2 + sinR*(p.y-q.y)/2
	my := -sinR*(p.x-q.x)/2 + cosR*(p.y-q.y)/2
	if mx == 0 && my == 0 {
		return nil
	}

	if l := mx*mx/(rx*rx) + my*my/(ry*ry); l > 1 {
		s := math.Sqrt(l)
		rx *= s
		ry *= s
	}

	cx, cy, start, delta := arcCentre(p, q, rx, ry, sinR, cosR, mx, my, large, sweep)

	n := math.Abs(delta) / (math.Pi / 2)
	if math.Abs(1-n) < 1e-7 {
		n = 1
	}
	segs := max(int(math.Ceil(n)), 1)
	delta /= float64(segs)

	out := make([]point, 0, 3*segs)
	for range segs {
		for _, u := range unitArc(start, delta) {
			x, y := u.x*rx, u.y*ry
			out = append(out, point{cosR*x - sinR*y + cx, sinR*x + cosR*y + cy})
		}
		start += delta
	}
	return out
}

func arcCentre(p, q point, rx, ry, sinR, cosR, mx, my float64, large, sweep bool) (cx, cy, start, delta float64) {
	rx2, ry2 := rx*rx, ry*ry
	mx2, my2 := mx*mx, my*my

	f := rx2*ry2 - rx2*my2 - ry2*mx2
	if f < 0 {
		f = 0
	} else {
		f = math.Sqrt(f / (rx2*my2 + ry2*mx2))
	}
	if large == sweep {
		f = -f
	}

	ccx := f * rx / ry * my
	ccy := f * -ry / rx * mx
	cx = cosR*ccx - sinR*ccy + (p.x+q.x)/2
	cy = sinR*ccx + cosR*ccy + (p.y+q.y)/2

	ux, uy := (mx-ccx)/rx, (my-ccy)/ry
	vx, vy := (-mx-ccx)/rx, (-my-ccy)/ry
	start = angleBetween(1, 0, ux, uy)
	delta = angleBetween(ux, uy, vx, vy)
	switch {
	case !sweep && delta > 0:
		delta -= 2 * math.Pi
	case sweep && delta < 0:
		delta += 2 * math.Pi
	}
	return cx, cy, start, delta
}

func angleBetween(ux, uy, vx, vy float64) float64 {
	a := math.Acos(math.Max(-1, math.Min(1, ux*vx+uy*vy)))
	if ux*vy-uy*vx < 0 {
		return -a
	}
	return a
}

// unitArc approximates the unit-circle arc from angle a through d.
func unitArc(a, d float64) [3]point {
	var k float64
	switch d {
	case math.Pi / 2:
		k = quarterArc
	case -math.Pi / 2:
		k = -quarterArc
	default:
		t := math.Tan(d / 2)
		k = math.Sin(d) * (math.Sqrt(4+3*t*t) - 1) / 3
	}
	s1, c1 := math.Sincos(a)
	s2, c2 := math.Sincos(a + d)
	return [3]point{
		{c1 - s1*k, s1 + c1*k},
		{c2 + s2*k, s2 - c2*k},
		{c2, s2},
	}
}
