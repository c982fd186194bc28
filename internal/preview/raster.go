// Package preview rasterises rendered faces and encodes them as images.
package preview

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/gogpu/gg"

	"ballface/internal/blend"
	"ballface/internal/face"
	"ballface/internal/logging"
)

// Scene is anything that can be drawn: a list of elements in paint order
// and the area they are framed by.
type Scene interface {
	Elements() []face.Element
	ViewBox() (x, y, w, h float64)
}

type Options struct {
	// Size of the square output image in pixels.
	Size int
	// Supersample renders at Size×Supersample and scales down.
	Supersample int
	// Background colour; empty leaves the image transparent.
	Background string
}

func (o Options) withDefaults() Options {
	if o.Size <= 0 {
		o.Size = 256
	}
	if o.Supersample <= 0 {
		o.Supersample = 1
	}
	return o
}

// transform maps view box coordinates to device pixels.
type transform struct {
	scale  float64
	dx, dy float64
}

func (t transform) apply(x, y float64) (float64, float64) {
	return (x + t.dx) * t.scale, (y + t.dy) * t.scale
}

// Rasterize draws s into a Size×Size image.
func Rasterize(s Scene, opts Options) (*image.NRGBA, error) {
	opts = opts.withDefaults()
	px := opts.Size * opts.Supersample

	dc := gg.NewContext(px, px)
	defer dc.Close()
	if opts.Background != "" {
		bg, ok := blend.ParseColour(opts.Background)
		if !ok {
			return nil, fmt.Errorf("preview: bad background colour %q", opts.Background)
		}
		dc.ClearWithColor(bg)
	}

	x, y, w, h := s.ViewBox()
	tr := transform{scale: float64(px) / max(w, h), dx: -x, dy: -y}

	for _, el := range s.Elements() {
		if err := drawElement(dc, tr, el); err != nil {
			return nil, fmt.Errorf("preview: draw %s: %w", el.Name, err)
		}
	}

	src := toRGBA(dc.Image())
	logging.Logger().Debug("preview: rasterised", "size", opts.Size, "supersample", opts.Supersample)
	return Downsample(src, opts.Size), nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}

func drawElement(dc *gg.Context, tr transform, el face.Element) error {
	var build func()
	switch el.Kind {
	case face.KindCircle, face.KindBlobs:
		if len(el.Circles) == 0 {
			return nil
		}
		build = func() {
			for _, c := range el.Circles {
				cx, cy := tr.apply(c.X, c.Y)
				dc.DrawCircle(cx, cy, c.R*tr.scale)
			}
		}
	default:
		if el.Path.Empty() {
			return nil
		}
		build = func() { el.Path.Walk(&sink{dc: dc, tr: tr}) }
	}

	p := paintFor(el.Style, el.FillRule)
	if p.fill != nil {
		build()
		dc.SetFillRule(gg.FillRuleNonZero)
		if p.evenOdd {
			dc.SetFillRule(gg.FillRuleEvenOdd)
		}
		dc.SetFillBrush(gg.Solid(*p.fill))
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	if p.stroke != nil {
		build()
		dc.SetLineWidth(p.width * tr.scale)
		dc.SetLineCap(p.lineCap)
		dc.SetLineJoin(p.lineJoin)
		dc.SetStrokeBrush(gg.Solid(*p.stroke))
		if err := dc.Stroke(); err != nil {
			return err
		}
	}
	return nil
}

// sink replays path commands onto a gg context in device space.
type sink struct {
	dc     *gg.Context
	tr     transform
	cx, cy float64
	sx, sy float64
}

func (s *sink) MoveTo(x, y float64) {
	s.cx, s.cy = s.tr.apply(x, y)
	s.sx, s.sy = s.cx, s.cy
	s.dc.MoveTo(s.cx, s.cy)
}

func (s *sink) LineTo(x, y float64) {
	s.cx, s.cy = s.tr.apply(x, y)
	s.dc.LineTo(s.cx, s.cy)
}

func (s *sink) ArcTo(rx, ry, rot float64, large, sweep bool, x, y float64) {
	ex, ey := s.tr.apply(x, y)
	pts := arcToCubics(point{s.cx, s.cy}, point{ex, ey}, rx*s.tr.scale, ry*s.tr.scale, rot, large, sweep)
	if pts == nil {
		s.dc.LineTo(ex, ey)
	}
	for i := 0; i+2 < len(pts); i += 3 {
		s.dc.CubicTo(pts[i].x, pts[i].y, pts[i+1].x, pts[i+1].y, pts[i+2].x, pts[i+2].y)
	}
	s.cx, s.cy = ex, ey
}

func (s *sink) ClosePath() {
	s.dc.ClosePath()
	s.cx, s.cy = s.sx, s.sy
}
