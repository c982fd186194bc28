package ballpath

import (
	"math"

	"ballface/internal/mathutil"
	"ballface/internal/svgpath"
)

// MinArcDistance is the chord length, in pixels, below which consecutive
// points are joined by a straight line instead of an arc. Arc parameters
// become ill-conditioned as the chord shrinks.
const MinArcDistance = 5.0

// greatCircleTo continues path from p1 to p2 along the shorter great-circle
// arc between them. The projected great circle is an ellipse whose major
// radius is the ball radius and whose minor radius shrinks with the tilt of
// the circle's plane.
func greatCircleTo(path *svgpath.Path, p1, p2 mathutil.Vec3, radius float64) {
	if p1 == p2 {
		return
	}
	d := p2.Sub(p1)
	if d.Dot(d) < MinArcDistance*MinArcDistance {
		path.LineTo(p2)
		return
	}
	cross := p1.Cross(p2)
	l := cross.Len()
	if l == 0 {
		path.LineTo(p2)
		return
	}
	rot := math.Atan2(cross[1], cross[0]) * 180 / math.Pi
	path.ArcTo(radius*cross[2]/l, radius, rot, false, cross[2] > 0, p2)
}

// horizonArcTo continues path from p1 to p2 along the horizon circle in the
// given winding direction.
func horizonArcTo(path *svgpath.Path, p1, p2 mathutil.Vec3, radius float64, clockwise bool) {
	anticlockwise := p1[0]*p2[1]-p1[1]*p2[0] < 0
	short := anticlockwise != clockwise
	path.ArcTo(radius, radius, 0, !short, clockwise, p2)
}

// Disc returns the outline of the whole ball as two half-circle arcs.
func Disc(radius float64) *svgpath.Path {
	var p svgpath.Path
	appendDisc(&p, radius)
	return &p
}

func appendDisc(p *svgpath.Path, radius float64) {
	top := mathutil.Vec3{0, radius, 0}
	bottom := mathutil.Vec3{0, -radius, 0}
	p.MoveTo(top)
	p.ArcTo(radius, radius, 0, false, false, bottom)
	p.ArcTo(radius, radius, 0, false, false, top)
	p.Close()
}

// appendBallPath starts a subpath at pts[0] and follows the ball surface
// through the remaining points.
func appendBallPath(path *svgpath.Path, pts []mathutil.Vec3, radius float64, pointsAsLines bool) {
	if len(pts) == 0 {
		return
	}
	prev := pts[0]
	path.MoveTo(prev)
	for _, p := range pts[1:] {
		greatCircleTo(path, prev, p, radius)
		prev = p
	}
	if len(pts) == 1 && pointsAsLines {
		path.Nudge()
	}
}
