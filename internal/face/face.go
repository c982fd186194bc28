// Package face renders a skin as an SVG document for a given rotation and
// blend of expressions.
//
// A Face keeps the blended points and styles between renders. Changing the
// rotation or the expressions marks it dirty; Render recomputes the path
// data only when needed.
package face

import (
	"log/slog"

	"ballface/internal/hat"
	"ballface/internal/logging"
	"ballface/internal/mathutil"
	"ballface/internal/skin"
	"ballface/internal/svgpath"
)

const (
	DefaultRadius  = 50
	DefaultPadding = 5
)

// Shift moves the face within its view box, in pixels.
type Shift struct {
	X, Y float64
}

// Rotation is the direction the face is turned to, in radians. Yaw turns
// around the vertical axis, Pitch around the horizontal one.
type Rotation struct {
	Yaw   float64
	Pitch float64
}

type Options struct {
	// Radius of the ball in pixels. Zero means DefaultRadius.
	Radius  float64
	Padding float64
	Shift   Shift
	// Zoom scales the document size without changing the view box. Zero
	// means 1.
	Zoom          float64
	Rotation      Rotation
	Expressions   map[string]float64
	PointsAsLines bool
}

// DefaultOptions returns options for an unrotated face in its base
// expression.
func DefaultOptions() Options {
	return Options{Radius: DefaultRadius, Padding: DefaultPadding, Zoom: 1}
}

// part is the render state of one skin component.
type part struct {
	c *skin.Component
	// points is the blended shape in ball units.
	points      []mathutil.Vec3
	front       skin.Style
	back        skin.Style
	frontFilled bool
	backFilled  bool

	dFront *svgpath.Path
	dBack  *svgpath.Path
	// blobs are the projected blob centres, sorted back to front.
	blobsFront []Circle
	blobsBack  []Circle
}

type hatStyles struct {
	brimFill skin.Style
	brimLine skin.Style
	sides    skin.Style
	top      skin.Style
}

// Face is a skin prepared for rendering. It is not safe for concurrent use.
type Face struct {
	skin   *skin.Skin
	opts   Options
	parts  []*part
	active map[string]float64

	ballStyle skin.Style

	hatShape  hat.Shape
	hatStyles hatStyles
	hatPaths  hat.Paths

	rot    Rotation
	rotSet bool
	mat    mathutil.Mat3

	dirty bool
	log   *slog.Logger
}

// New prepares s for rendering. It fails when s is inconsistent, for
// example when an expression reshapes a component with the wrong number of
// points.
func New(s *skin.Skin, opts Options) (*Face, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if opts.Radius <= 0 {
		opts.Radius = DefaultRadius
	}
	if opts.Zoom <= 0 {
		opts.Zoom = 1
	}

	f := &Face{
		skin:   s,
		opts:   opts,
		active: map[string]float64{},
		dirty:  true,
		log:    logging.Logger().With("skin", s.Name),
	}

	for i := range s.Components {
		c := &s.Components[i]
		f.parts = append(f.parts, &part{
			c:      c,
			points: append([]mathutil.Vec3(nil), c.Points...),
		})
	}

	if s.Hat != nil {
		f.hatShape = s.Hat.Shape.Clamped()
		f.hatStyles = newHatStyles(s.Hat)
	}

	f.SetRotation(opts.Rotation.Yaw, opts.Rotation.Pitch)
	f.setExpressions(opts.Expressions, true)
	return f, nil
}

func newHatStyles(h *skin.Hat) hatStyles {
	round := func(base skin.Style) skin.Style {
		out := skin.Style{"stroke-linecap": "round", "stroke-linejoin": "round"}
		for k, v := range base {
			out[k] = v
		}
		return out
	}
	fill := skin.Style{"fill-rule": "evenodd"}
	for k, v := range h.BrimStyle {
		fill[k] = v
	}
	fill["stroke-width"] = "0"
	line := round(h.BrimStyle)
	line["fill"] = "none"
	return hatStyles{
		brimFill: fill,
		brimLine: line,
		sides:    round(h.SidesStyle),
		top:      round(h.TopStyle),
	}
}

// Skin returns the skin being rendered.
func (f *Face) Skin() *skin.Skin { return f.skin }

// Options returns the options in effect, with defaults filled in.
func (f *Face) Options() Options { return f.opts }

// size is the half-width of the view box.
func (f *Face) size() float64 {
	return f.opts.Radius + f.opts.Padding
}

// ViewBox returns the visible area in pixel coordinates as x, y, width and
// height.
func (f *Face) ViewBox() (x, y, w, h float64) {
	size := f.size()
	return -f.opts.Shift.X - size, -f.opts.Shift.Y - size, 2 * size, 2 * size
}
