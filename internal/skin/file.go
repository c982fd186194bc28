package skin

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"ballface/internal/hat"
	"ballface/internal/mathutil"
	"ballface/internal/pointspec"
)

type fileSkin struct {
	Name        string                    `toml:"name"`
	LiftAngle   float64                   `toml:"lift_angle"` // degrees
	Ball        fileBall                  `toml:"ball"`
	Hat         *fileHat                  `toml:"hat"`
	Shapes      map[string]fileSource     `toml:"shapes"`
	Components  []fileComponent           `toml:"components"`
	Expressions map[string]fileExpression `toml:"expressions"`
}

type fileBall struct {
	Style map[string]any `toml:"style"`
}

// fileSource is a point list. Points are gathered from the named shape,
// then the generated ring or band, then the literal points, and the
// modifiers are applied last in order.
type fileSource struct {
	Shape     string    `toml:"shape"`
	Ring      *fileRing `toml:"ring"`
	Band      *fileBand `toml:"band"`
	Points    []any     `toml:"points"`
	Modifiers []string  `toml:"modifiers"`
}

// fileRing is a circle in the view plane wrapped onto the front of the ball.
type fileRing struct {
	Radius float64 `toml:"radius"`
	Steps  int     `toml:"steps"`
}

// fileBand is a horizontal circle around the ball's vertical axis.
type fileBand struct {
	Y      float64 `toml:"y"`
	Radius float64 `toml:"radius"`
	Steps  int     `toml:"steps"`
}

type fileBlob struct {
	Radius float64        `toml:"radius"`
	Style  map[string]any `toml:"style"`
}

type fileComponent struct {
	fileSource
	Name           string         `toml:"name"`
	Closed         bool           `toml:"closed"`
	Flat           bool           `toml:"flat"`
	Style          map[string]any `toml:"style"`
	StyleBack      map[string]any `toml:"style_back"`
	FrontRendering *bool          `toml:"front_rendering"`
	BackRendering  *bool          `toml:"back_rendering"`
	Blob           *fileBlob      `toml:"blob"`
}

type fileOverride struct {
	fileSource
	Style     map[string]any `toml:"style"`
	StyleBack map[string]any `toml:"style_back"`
}

type fileExpression struct {
	Ball       fileBall                `toml:"ball"`
	Components map[string]fileOverride `toml:"components"`
}

type fileHat struct {
	Brim struct {
		Y           float64        `toml:"y"`
		InnerRadius float64        `toml:"inner_radius"`
		OuterRadius float64        `toml:"outer_radius"`
		Style       map[string]any `toml:"style"`
	} `toml:"brim"`
	Sides struct {
		Style map[string]any `toml:"style"`
	} `toml:"sides"`
	Top struct {
		Y      float64        `toml:"y"`
		Radius float64        `toml:"radius"`
		Style  map[string]any `toml:"style"`
	} `toml:"top"`
}

// Load reads and validates a skin file.
func Load(path string) (*Skin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("skin: read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("skin: load %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a skin from TOML.
func Parse(data []byte) (*Skin, error) {
	var f fileSkin
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, err
	}
	s, err := f.build()
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (f *fileSkin) build() (*Skin, error) {
	if f.Name == "" {
		return nil, &ValidationError{Msg: "missing name"}
	}
	s := &Skin{
		Name:        f.Name,
		Ball:        Ball{Style: toStyle(f.Ball.Style)},
		LiftAngle:   mathutil.Deg2Rad(f.LiftAngle),
		Expressions: make(map[string]Expression, len(f.Expressions)),
	}
	if s.Ball.Style == nil {
		s.Ball.Style = Style{}
	}
	ballStroke := s.Ball.Style.Number("stroke-width")

	for _, fc := range f.Components {
		pts, err := f.points(&fc.fileSource)
		if err != nil {
			return nil, &ValidationError{Skin: f.Name, Component: fc.Name, Msg: err.Error()}
		}
		c := Component{
			Name:           fc.Name,
			Points:         pts,
			Closed:         fc.Closed,
			Flat:           fc.Flat,
			Style:          toStyle(fc.Style),
			StyleBack:      toStyle(fc.StyleBack),
			FrontRendering: true,
		}
		if c.Style == nil {
			c.Style = Style{}
		}
		if fc.Blob != nil {
			c.Blob = &Blob{Radius: fc.Blob.Radius, Style: toStyle(fc.Blob.Style)}
		}
		if fc.FrontRendering != nil {
			c.FrontRendering = *fc.FrontRendering
		}
		// Outlines thicker than the ball's own would show around the
		// silhouette, so they are drawn from behind too.
		c.BackRendering = c.StyleBack != nil || c.Blob != nil || c.Flat ||
			c.Style.Number("stroke-width") > ballStroke
		if fc.BackRendering != nil {
			c.BackRendering = *fc.BackRendering
		}
		s.Components = append(s.Components, c)
	}

	for name, fe := range f.Expressions {
		e := Expression{
			Name:       name,
			Ball:       toStyle(fe.Ball.Style),
			Components: make(map[string]Override, len(fe.Components)),
		}
		for part, fo := range fe.Components {
			o := Override{Style: toStyle(fo.Style), StyleBack: toStyle(fo.StyleBack)}
			if !fo.empty() {
				pts, err := f.points(&fo.fileSource)
				if err != nil {
					return nil, &ValidationError{Skin: f.Name, Expression: name, Component: part, Msg: err.Error()}
				}
				o.Points = pts
			}
			e.Components[part] = o
		}
		s.Expressions[name] = e
	}

	if f.Hat != nil {
		h := f.Hat
		s.Hat = &Hat{
			Shape: hat.Shape{
				Brim: hat.Brim{Y: h.Brim.Y, InnerRadius: h.Brim.InnerRadius, OuterRadius: h.Brim.OuterRadius},
				Top:  hat.Top{Y: h.Top.Y, Radius: h.Top.Radius},
			}.Clamped(),
			BrimStyle:  orEmpty(toStyle(h.Brim.Style)),
			SidesStyle: orEmpty(toStyle(h.Sides.Style)),
			TopStyle:   orEmpty(toStyle(h.Top.Style)),
		}
	}
	return s, nil
}

func (src *fileSource) empty() bool {
	return src.Shape == "" && src.Ring == nil && src.Band == nil && src.Points == nil
}

func (f *fileSkin) points(src *fileSource) ([]mathutil.Vec3, error) {
	var pts []mathutil.Vec3
	if src.Shape != "" {
		shape, ok := f.Shapes[src.Shape]
		if !ok {
			return nil, fmt.Errorf("uses unknown shape %q", src.Shape)
		}
		if shape.Shape != "" {
			return nil, fmt.Errorf("shape %q refers to another shape", src.Shape)
		}
		base, err := f.points(&shape)
		if err != nil {
			return nil, err
		}
		pts = append(pts, base...)
	}
	if r := src.Ring; r != nil {
		pts = append(pts, ring(r.Radius, r.Steps)...)
	}
	if b := src.Band; b != nil {
		pts = append(pts, band(b.Y, b.Radius, b.Steps)...)
	}
	for i, raw := range src.Points {
		spec, err := parsePoint(raw)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		pts = append(pts, pointspec.Derive(spec))
	}
	for _, m := range src.Modifiers {
		switch m {
		case "symmetric_x":
			pts = pointspec.SymmetricX(pts)
		case "reflect_x":
			pts = pointspec.ReflectX(pts)
		case "backtrace":
			pts = pointspec.Backtraced(pts)
		default:
			return nil, fmt.Errorf("unknown modifier %q", m)
		}
	}
	return pts, nil
}

func ring(radius float64, steps int) []mathutil.Vec3 {
	pts := make([]mathutil.Vec3, 0, steps)
	for i := 0; i < steps; i++ {
		a := float64(i) * 2 * math.Pi / float64(steps)
		pts = append(pts, pointspec.Derive(pointspec.XY(math.Sin(a)*radius, -math.Cos(a)*radius)))
	}
	return pts
}

func band(y, radius float64, steps int) []mathutil.Vec3 {
	pts := make([]mathutil.Vec3, 0, steps)
	for i := 0; i < steps; i++ {
		a := float64(i) * 2 * math.Pi / float64(steps)
		pts = append(pts, mathutil.Vec3{math.Cos(a) * radius, y, math.Sin(a) * radius})
	}
	return pts
}

// parsePoint accepts [x, y], [x, y, z], [x, y, back], [x, y, z, d],
// [x, y, z, back] or a table with keys x, y, z, d and back.
func parsePoint(raw any) (pointspec.Spec, error) {
	switch v := raw.(type) {
	case []any:
		if len(v) < 2 || len(v) > 4 {
			return pointspec.Spec{}, fmt.Errorf("want 2 to 4 values, got %d", len(v))
		}
		var s pointspec.Spec
		var err error
		if s.X, err = number(v[0]); err != nil {
			return s, err
		}
		if s.Y, err = number(v[1]); err != nil {
			return s, err
		}
		for i, extra := range v[2:] {
			if b, ok := extra.(bool); ok {
				s.Back = b
				continue
			}
			n, err := number(extra)
			if err != nil {
				return s, err
			}
			if i == 0 {
				s.Z = &n
			} else {
				s.D = &n
			}
		}
		return s, nil

	case map[string]any:
		var s pointspec.Spec
		for key, val := range v {
			switch key {
			case "back":
				b, ok := val.(bool)
				if !ok {
					return s, fmt.Errorf("back must be a boolean")
				}
				s.Back = b
			case "x", "y", "z", "d":
				n, err := number(val)
				if err != nil {
					return s, fmt.Errorf("%s: %w", key, err)
				}
				switch key {
				case "x":
					s.X = n
				case "y":
					s.Y = n
				case "z":
					s.Z = &n
				case "d":
					s.D = &n
				}
			default:
				return s, fmt.Errorf("unknown key %q", key)
			}
		}
		if _, ok := v["x"]; !ok {
			return s, fmt.Errorf("missing x")
		}
		if _, ok := v["y"]; !ok {
			return s, fmt.Errorf("missing y")
		}
		return s, nil
	}
	return pointspec.Spec{}, fmt.Errorf("unsupported point %v", raw)
}

func number(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	}
	return 0, fmt.Errorf("not a number: %v", v)
}

func toStyle(m map[string]any) Style {
	if m == nil {
		return nil
	}
	s := make(Style, len(m))
	for k, v := range m {
		switch val := v.(type) {
		case string:
			s[k] = val
		case float64:
			s[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case int64:
			s[k] = strconv.FormatInt(val, 10)
		default:
			s[k] = fmt.Sprint(val)
		}
	}
	return s
}

func orEmpty(s Style) Style {
	if s == nil {
		return Style{}
	}
	return s
}
