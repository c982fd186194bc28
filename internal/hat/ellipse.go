package hat

import (
	"math"

	"ballface/internal/mathutil"
	"ballface/internal/svgpath"
)

// minEllipseRadius is the radius below which an ellipse is drawn as a line.
const minEllipseRadius = 0.1

// ellipse is a projected circle: centred on centre, rotated by angle
// (radians), with signed radii r1 along its axis and r2 across it.
type ellipse struct {
	centre mathutil.Vec3
	angle  float64
	r1, r2 float64
}

func (e ellipse) at(a float64) mathutil.Vec3 {
	s, c := math.Sincos(e.angle)
	fx := math.Cos(a) * e.r1
	fy := math.Sin(a) * e.r2
	return mathutil.Vec3{
		e.centre[0] + c*fx - s*fy,
		e.centre[1] + s*fx + c*fy,
		0,
	}
}

func (e ellipse) flat() bool {
	return math.Abs(e.r1) < minEllipseRadius || math.Abs(e.r2) < minEllipseRadius
}

func (e ellipse) degrees() float64 {
	return e.angle * 180 / math.Pi
}

func reach(p *svgpath.Path, move bool, pt mathutil.Vec3) {
	if move {
		p.MoveTo(pt)
	} else {
		p.LineTo(pt)
	}
}

// segment draws the part of e from angle begin to angle end, travelling
// clockwise or anticlockwise in ellipse-parameter space. The start point is
// reached with a MoveTo when move is set and a LineTo otherwise.
func (e ellipse) segment(p *svgpath.Path, move bool, begin, end float64, cw bool) {
	p1, p2 := e.at(begin), e.at(end)
	reach(p, move, p1)
	if e.flat() {
		p.LineTo(p2)
		return
	}
	span := mathutil.PosMod(end-begin, 2*math.Pi)
	if !cw {
		span -= 2 * math.Pi
	}
	large := math.Abs(span) > math.Pi
	sweep := cw != (e.r1 < 0) != (e.r2 < 0)
	p.ArcTo(e.r1, e.r2, e.degrees(), large, sweep, p2)
}

// ring draws the whole of e as a closed subpath.
func (e ellipse) ring(p *svgpath.Path) {
	p1, p2 := e.at(0), e.at(math.Pi)
	p.MoveTo(p1)
	if e.flat() {
		p.LineTo(p2)
		p.LineTo(p1)
	} else {
		p.ArcTo(e.r1, e.r2, e.degrees(), false, false, p2)
		p.ArcTo(e.r1, e.r2, e.degrees(), false, false, p1)
	}
	p.Close()
}
