// Package ballpath turns rotated feature points into path data drawn on the
// surface of a ball seen orthographically along the z axis.
//
// Points are in pixel space with the ball centred on the origin. The front
// hemisphere is z > 0; a point exactly on the horizon counts as hidden.
package ballpath

import (
	"math"

	"ballface/internal/mathutil"
)

// windingEpsilon separates clockwise, anticlockwise and degenerate rings.
const windingEpsilon = 1e-6

// Visible reports whether p lies on the front hemisphere.
func Visible(p mathutil.Vec3) bool {
	return p[2] > 0
}

// Direction is the winding of the ring in the view plane: 1, -1 or 0 when
// the signed area is within windingEpsilon of zero. The closing edge from
// the last point back to the first is always included.
func Direction(pts []mathutil.Vec3) int {
	if len(pts) <= 1 {
		return 0
	}
	sum := 0.0
	prev := pts[len(pts)-1]
	for _, p := range pts {
		sum += (p[0] - prev[0]) * (p[1] + prev[1])
		prev = p
	}
	switch {
	case sum > windingEpsilon:
		return 1
	case sum < -windingEpsilon:
		return -1
	}
	return 0
}

// HorizonCrossing returns where the great circle through p1 and p2 meets the
// horizon, on the side of the shorter arc between them. The result has
// length radius and z == 0.
func HorizonCrossing(p1, p2 mathutil.Vec3, radius float64) mathutil.Vec3 {
	cross := p1.Cross(p2)
	l := cross.LenXY()
	if l == 0 {
		// p1 and p2 are parallel or both on the view axis; fall back to the
		// direction of whichever point has a usable projection.
		return horizonFallback(p1, p2, radius)
	}
	m := radius / l
	if p1[2] <= p2[2] {
		m = -m
	}
	return mathutil.Vec3{cross[1] * m, -cross[0] * m, 0}
}

func horizonFallback(p1, p2 mathutil.Vec3, radius float64) mathutil.Vec3 {
	for _, p := range []mathutil.Vec3{p1, p2} {
		if l := p.LenXY(); l > 0 {
			return mathutil.Vec3{p[0] * radius / l, p[1] * radius / l, 0}
		}
	}
	return mathutil.Vec3{radius, 0, 0}
}

// Section is a maximal run of visible points. When StartIsEdge (EndIsEdge)
// is set the first (last) point is a computed horizon crossing.
type Section struct {
	Points      []mathutil.Vec3
	StartIsEdge bool
	EndIsEdge   bool
}

// Partition splits pts into visible sections. A hidden ring yields no
// sections. A fully visible ring yields one section holding every point,
// with the first point repeated at the end when closed. Otherwise the walk
// starts at the first hidden-to-visible transition and adds a horizon
// crossing wherever the ring enters or leaves the front, except across the
// wrap-around of an open chain.
func Partition(pts []mathutil.Vec3, closed bool, radius float64) []Section {
	n := len(pts)
	if n == 0 {
		return nil
	}
	if allVisible(pts) {
		s := Section{Points: append([]mathutil.Vec3(nil), pts...)}
		if closed && n > 1 {
			s.Points = append(s.Points, pts[0])
		}
		return []Section{s}
	}

	begin := 0
	for i := 1; i < n; i++ {
		if !Visible(pts[i-1]) && Visible(pts[i]) {
			begin = i
			break
		}
	}

	var all []Section
	var cur *Section
	prev := pts[(begin+n-1)%n]
	for i := 0; i < n; i++ {
		index := (begin + i) % n
		p := pts[index]
		wraps := index == 0 && !closed
		switch {
		case Visible(p):
			if cur != nil && wraps {
				// The two ends of an open chain are not connected.
				all = append(all, *cur)
				cur = nil
			}
			if cur == nil {
				cur = &Section{}
				if !wraps {
					cur.StartIsEdge = true
					cur.Points = append(cur.Points, HorizonCrossing(prev, p, radius))
				}
			}
			cur.Points = append(cur.Points, p)
		case Visible(prev) && cur != nil:
			if !wraps {
				cur.EndIsEdge = true
				cur.Points = append(cur.Points, HorizonCrossing(prev, p, radius))
			}
			all = append(all, *cur)
			cur = nil
		}
		prev = p
	}
	if cur != nil {
		all = append(all, *cur)
	}
	return all
}

func anyVisible(pts []mathutil.Vec3) bool {
	for _, p := range pts {
		if Visible(p) {
			return true
		}
	}
	return false
}

func allVisible(pts []mathutil.Vec3) bool {
	for _, p := range pts {
		if !Visible(p) {
			return false
		}
	}
	return true
}

// horizonAngle is the polar angle of a point on the horizon.
func horizonAngle(p mathutil.Vec3) float64 {
	return math.Atan2(p[1], p[0])
}
