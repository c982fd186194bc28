package ballpath

import (
	"ballface/internal/mathutil"
	"ballface/internal/svgpath"
)

// RenderLines joins pts with straight lines in the view plane, ignoring the
// ball. It is used for features that stand off the surface.
func RenderLines(pts []mathutil.Vec3, closed bool) *svgpath.Path {
	path := &svgpath.Path{}
	if len(pts) == 0 {
		return path
	}
	path.MoveTo(pts[0])
	for _, p := range pts[1:] {
		path.LineTo(p)
	}
	if closed {
		path.Close()
	}
	return path
}

// RenderLinesHemi is RenderLines restricted to the front hemisphere. Edges
// crossing z == 0 are cut where the straight edge meets the view plane.
func RenderLinesHemi(pts []mathutil.Vec3, closed bool) *svgpath.Path {
	n := len(pts)
	switch {
	case n == 0 || !anyVisible(pts):
		return &svgpath.Path{}
	case allVisible(pts):
		return RenderLines(pts, closed)
	}

	begin, edges := 0, n-1
	if closed {
		edges = n
		// Start on a visible point entered from behind so a run is not
		// split across the end of the ring.
		for i := 0; i < n; i++ {
			if Visible(pts[i]) && !Visible(pts[(i+n-1)%n]) {
				begin = i
				break
			}
		}
	}

	path := &svgpath.Path{}
	if Visible(pts[begin]) {
		path.MoveTo(pts[begin])
	}
	for i := 0; i < edges; i++ {
		a := pts[(begin+i)%n]
		b := pts[(begin+i+1)%n]
		switch va, vb := Visible(a), Visible(b); {
		case va && vb:
			path.LineTo(b)
		case va:
			path.LineTo(planeCrossing(a, b))
		case vb:
			path.MoveTo(planeCrossing(a, b))
			path.LineTo(b)
		}
	}
	return path
}

// planeCrossing is the point of segment ab with z == 0. a and b must lie on
// opposite sides.
func planeCrossing(a, b mathutil.Vec3) mathutil.Vec3 {
	p := mathutil.Lerp(a, b, a[2]/(a[2]-b[2]))
	p[2] = 0
	return p
}
