package face

import (
	"sort"

	"ballface/internal/ballpath"
	"ballface/internal/hat"
	"ballface/internal/mathutil"
	"ballface/internal/skin"
	"ballface/internal/svgpath"
)

type Kind uint8

const (
	KindPath Kind = iota
	KindCircle
	// KindBlobs is a group of circles sharing one style.
	KindBlobs
)

type Circle struct {
	X, Y, R float64
}

// Element is one drawable item of the face, in pixel coordinates with the
// ball centred on the origin.
type Element struct {
	Name     string
	Kind     Kind
	Path     *svgpath.Path
	Circles  []Circle
	Style    skin.Style
	FillRule string
}

// Render recomputes the path data after a change of rotation or
// expression. It reports whether anything was recomputed.
func (f *Face) Render() bool {
	if !f.dirty {
		return false
	}
	if f.skin.Hat != nil {
		f.hatPaths = hat.Render(f.hatShape, f.mat, f.opts.Radius)
	}
	for _, p := range f.parts {
		f.renderPart(p)
	}
	f.dirty = false
	f.log.Debug("face: rendered", "yaw", f.rot.Yaw, "pitch", f.rot.Pitch)
	return true
}

// mirrored reflects view points through the view plane and reverses them,
// so that the back of the ball can be drawn as if it were the front.
func mirrored(pts []mathutil.Vec3) []mathutil.Vec3 {
	out := make([]mathutil.Vec3, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p.MirrorZ()
	}
	return out
}

func (f *Face) renderPart(p *part) {
	p.dFront, p.dBack = &svgpath.Path{}, &svgpath.Path{}
	p.blobsFront, p.blobsBack = nil, nil
	if len(p.points) == 0 {
		return
	}
	c := p.c
	view := f.mat.Apply(p.points)

	if c.Blob != nil {
		sort.SliceStable(view, func(i, j int) bool { return view[i][2] < view[j][2] })
		for _, v := range view {
			b := Circle{X: v[0], Y: v[1], R: c.Blob.Radius}
			if v[2] < 0 {
				if c.BackRendering {
					p.blobsBack = append(p.blobsBack, b)
				}
			} else if c.FrontRendering {
				p.blobsFront = append(p.blobsFront, b)
			}
		}
		return
	}

	if c.Flat {
		if p.frontFilled {
			p.dFront = ballpath.RenderLines(view, c.Closed)
			return
		}
		if c.FrontRendering {
			p.dFront = ballpath.RenderLinesHemi(view, c.Closed)
		}
		if c.BackRendering {
			p.dBack = ballpath.RenderLinesHemi(mirrored(view), c.Closed)
		}
		return
	}

	opts := ballpath.Options{
		Radius:        f.opts.Radius,
		Filled:        p.frontFilled,
		Closed:        c.Closed,
		PointsAsLines: f.opts.PointsAsLines,
	}
	if c.FrontRendering {
		p.dFront = ballpath.RenderOnBall(view, opts)
	}
	if c.BackRendering {
		opts.Filled = p.backFilled
		p.dBack = ballpath.RenderOnBall(mirrored(view), opts)
	}
}

// Elements renders if needed and returns the face in paint order: the back
// of the hat brim, component backs in reverse order, the ball, component
// fronts, then the rest of the hat.
func (f *Face) Elements() []Element {
	f.Render()

	var out []Element
	if f.skin.Hat != nil {
		out = append(out,
			pathElement("hat-brim-back-fill", f.hatPaths.BrimBackFill, f.hatStyles.brimFill, ""),
			pathElement("hat-brim-back-outline", f.hatPaths.BrimBackOutline, f.hatStyles.brimLine, ""),
		)
	}
	for i := len(f.parts) - 1; i >= 0; i-- {
		out = append(out, f.parts[i].element(true))
	}
	out = append(out, Element{
		Name:    "ball",
		Kind:    KindCircle,
		Circles: []Circle{{R: f.opts.Radius}},
		Style:   f.ballStyle,
	})
	for _, p := range f.parts {
		out = append(out, p.element(false))
	}
	if f.skin.Hat != nil {
		out = append(out,
			pathElement("hat-sides", f.hatPaths.Sides, f.hatStyles.sides, ""),
			pathElement("hat-brim-front-fill", f.hatPaths.BrimFrontFill, f.hatStyles.brimFill, ""),
			pathElement("hat-brim-front-outline", f.hatPaths.BrimFrontOutline, f.hatStyles.brimLine, ""),
			pathElement("hat-top", f.hatPaths.Top, f.hatStyles.top, ""),
		)
	}
	return out
}

func pathElement(name string, p *svgpath.Path, style skin.Style, fillRule string) Element {
	if p == nil {
		p = &svgpath.Path{}
	}
	return Element{Name: name, Kind: KindPath, Path: p, Style: style, FillRule: fillRule}
}

func (p *part) element(back bool) Element {
	name := p.c.Name
	if back {
		name += "-back"
	}
	if p.c.Blob != nil {
		circles := p.blobsFront
		if back {
			circles = p.blobsBack
		}
		return Element{Name: name, Kind: KindBlobs, Circles: circles, Style: p.c.Blob.Style}
	}
	if back {
		return pathElement(name, p.dBack, p.back, "evenodd")
	}
	return pathElement(name, p.dFront, p.front, "evenodd")
}
