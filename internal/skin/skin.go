// Package skin describes face skins: the ball, its features, an optional
// hat and the named expressions that reshape the features. Skins are read
// from TOML and validated once when loaded.
package skin

import (
	"fmt"
	"sort"
	"strconv"

	"ballface/internal/hat"
	"ballface/internal/mathutil"
)

// Style maps SVG presentation attributes to their values.
type Style map[string]string

// Clone returns a copy of s. The copy of a nil Style is nil.
func (s Style) Clone() Style {
	if s == nil {
		return nil
	}
	out := make(Style, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Number returns the attribute parsed as a float, or 0.
func (s Style) Number(key string) float64 {
	v, err := strconv.ParseFloat(s[key], 64)
	if err != nil {
		return 0
	}
	return v
}

// Filled reports whether the style paints an interior.
func (s Style) Filled() bool {
	f, ok := s["fill"]
	return ok && f != "none"
}

type Ball struct {
	Style Style
}

// Blob draws a small disc at every point of a component instead of a path.
type Blob struct {
	Radius float64
	Style  Style
}

type Component struct {
	Name   string
	Points []mathutil.Vec3
	Closed bool
	// Flat components are drawn as straight lines between their projected
	// points instead of following the ball's surface.
	Flat           bool
	Style          Style
	StyleBack      Style
	FrontRendering bool
	BackRendering  bool
	Blob           *Blob
}

// BackStyle is the style used when drawing the component from behind:
// StyleBack when set, otherwise Style without fill.
func (c *Component) BackStyle() Style {
	if c.StyleBack != nil {
		return c.StyleBack
	}
	s := c.Style.Clone()
	if s == nil {
		s = Style{}
	}
	s["fill"] = "none"
	return s
}

// Override replaces a component's points and styles while an expression is
// active. Nil fields leave the base untouched.
type Override struct {
	Points    []mathutil.Vec3
	Style     Style
	StyleBack Style
}

type Expression struct {
	Name       string
	Ball       Style
	Components map[string]Override
}

// Hat pairs a hat shape with the styles of its parts.
type Hat struct {
	Shape      hat.Shape
	BrimStyle  Style
	SidesStyle Style
	TopStyle   Style
}

type Skin struct {
	Name string
	Ball Ball
	// LiftAngle tilts the face up at rest, in radians.
	LiftAngle   float64
	Hat         *Hat
	Components  []Component
	Expressions map[string]Expression
}

// Component returns the named component.
func (s *Skin) Component(name string) (*Component, bool) {
	for i := range s.Components {
		if s.Components[i].Name == name {
			return &s.Components[i], true
		}
	}
	return nil, false
}

// ExpressionNames returns the expression names in sorted order.
func (s *Skin) ExpressionNames() []string {
	names := make([]string, 0, len(s.Expressions))
	for name := range s.Expressions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidationError reports a skin that is structurally inconsistent.
type ValidationError struct {
	Skin       string
	Expression string
	Component  string
	Msg        string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Expression != "":
		return fmt.Sprintf("skin %q: part %q in %q %s", e.Skin, e.Component, e.Expression, e.Msg)
	case e.Component != "":
		return fmt.Sprintf("skin %q: part %q %s", e.Skin, e.Component, e.Msg)
	}
	return fmt.Sprintf("skin %q: %s", e.Skin, e.Msg)
}

// Validate checks that component names are unique and that every
// expression only overrides existing components with matching point
// counts.
func (s *Skin) Validate() error {
	seen := make(map[string]bool, len(s.Components))
	for _, c := range s.Components {
		if c.Name == "" {
			return &ValidationError{Skin: s.Name, Msg: "component without a name"}
		}
		if seen[c.Name] {
			return &ValidationError{Skin: s.Name, Component: c.Name, Msg: "defined twice"}
		}
		seen[c.Name] = true
		if c.Blob != nil && c.Blob.Radius <= 0 {
			return &ValidationError{Skin: s.Name, Component: c.Name, Msg: "has a blob without a radius"}
		}
	}
	for _, name := range s.ExpressionNames() {
		e := s.Expressions[name]
		parts := make([]string, 0, len(e.Components))
		for part := range e.Components {
			parts = append(parts, part)
		}
		sort.Strings(parts)
		for _, part := range parts {
			base, ok := s.Component(part)
			if !ok {
				return &ValidationError{Skin: s.Name, Expression: name, Component: part, Msg: "but not in base"}
			}
			if pts := e.Components[part].Points; pts != nil && len(pts) != len(base.Points) {
				return &ValidationError{
					Skin: s.Name, Expression: name, Component: part,
					Msg: fmt.Sprintf("points mismatch (%d != %d)", len(pts), len(base.Points)),
				}
			}
		}
	}
	return nil
}
