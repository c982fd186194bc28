package ballpath

import (
	"math"

	"ballface/internal/mathutil"
	"ballface/internal/svgpath"
)

// Segment is a path fragment being stitched along the horizon. Its Path
// always begins with a MoveTo to Start. StartOpen (EndOpen) is set while the
// start (end) lies on the horizon and has not been joined yet.
type Segment struct {
	Path       *svgpath.Path
	Start, End mathutil.Vec3
	StartAngle float64
	EndAngle   float64
	StartOpen  bool
	EndOpen    bool
}

func newSegment(s Section, radius float64, pointsAsLines bool) *Segment {
	seg := &Segment{
		Path:      &svgpath.Path{},
		Start:     s.Points[0],
		End:       s.Points[len(s.Points)-1],
		StartOpen: s.StartIsEdge,
		EndOpen:   s.EndIsEdge,
	}
	appendBallPath(seg.Path, s.Points, radius, pointsAsLines)
	if seg.StartOpen {
		seg.StartAngle = horizonAngle(seg.Start)
	}
	if seg.EndOpen {
		seg.EndAngle = horizonAngle(seg.End)
	}
	return seg
}

// JoinSections connects open segment ends to open segment starts along the
// horizon so filled regions are closed. Each open end is matched greedily to
// the open start that follows it most closely in the winding direction. A
// segment matched to its own start is closed; otherwise the matched segment
// is absorbed and the search continues from the grown segment. The returned
// pool holds the remaining segments in their original order.
func JoinSections(segs []*Segment, radius float64, clockwise bool) []*Segment {
	sign := -1.0
	if clockwise {
		sign = 1
	}
	for i := 0; i < len(segs); {
		s1 := segs[i]
		if !s1.EndOpen {
			i++
			continue
		}
		best, choice := 4*math.Pi, -1
		for j, s2 := range segs {
			if !s2.StartOpen {
				continue
			}
			diff := math.Mod((s2.StartAngle-s1.EndAngle)*sign+4*math.Pi, 2*math.Pi)
			if diff < best {
				best, choice = diff, j
			}
		}
		if choice == -1 {
			break
		}
		s2 := segs[choice]
		horizonArcTo(s1.Path, s1.End, s2.Start, radius, clockwise)
		if choice == i {
			s1.Path.Close()
			s1.StartOpen = false
			s1.EndOpen = false
			i++
			continue
		}
		s1.Path.AppendTail(s2.Path)
		s1.End = s2.End
		s1.EndAngle = s2.EndAngle
		s1.EndOpen = s2.EndOpen
		// A segment absorbed from before i had a closed end, so s1 now does
		// too and it is fine for i to move past it.
		segs = append(segs[:choice], segs[choice+1:]...)
	}
	return segs
}
