package ballpath

import (
	"ballface/internal/mathutil"
	"ballface/internal/svgpath"
)

// Options control how a feature is drawn on the ball.
type Options struct {
	Radius float64
	// Filled features are closed along the horizon when partly hidden and
	// may cover the whole disc when seen from behind.
	Filled bool
	Closed bool
	// PointsAsLines adds a zero-length line to single-point subpaths so
	// they render as dots.
	PointsAsLines bool
}

// RenderOnBall draws pts (already rotated into pixel space) on the ball
// surface. pts is not modified.
//
// A hidden feature draws nothing, unless it is a filled ring wound
// anticlockwise in view, which means it covers the entire visible disc. A
// fully visible feature is drawn directly, plus the disc when it is a
// filled ring wound clockwise so that even-odd filling paints its outside.
// A partly visible feature is split at the horizon and, when filled, its
// pieces are joined along the horizon.
func RenderOnBall(pts []mathutil.Vec3, opts Options) *svgpath.Path {
	path := &svgpath.Path{}
	if len(pts) == 0 {
		return path
	}
	coversDisc := opts.Filled && opts.Closed

	switch {
	case !anyVisible(pts):
		if coversDisc && Direction(pts) < 0 {
			appendDisc(path, opts.Radius)
		}

	case allVisible(pts):
		sec := Partition(pts, opts.Closed, opts.Radius)[0]
		appendBallPath(path, sec.Points, opts.Radius, opts.PointsAsLines)
		if opts.Closed || len(pts) == 1 {
			path.Close()
		}
		if coversDisc && Direction(pts) > 0 {
			appendDisc(path, opts.Radius)
		}

	default:
		sections := Partition(pts, opts.Closed, opts.Radius)
		segs := make([]*Segment, 0, len(sections))
		for _, s := range sections {
			segs = append(segs, newSegment(s, opts.Radius, opts.PointsAsLines))
		}
		if opts.Filled {
			segs = JoinSections(segs, opts.Radius, true)
		}
		for _, s := range segs {
			path.Append(s.Path)
		}
	}
	return path
}
