package face

import (
	"maps"

	"ballface/internal/blend"
	"ballface/internal/mathutil"
	"ballface/internal/skin"
)

// SetExpressions replaces the active expressions with the given
// proportions. Unknown names and proportions <= 0 are ignored. Nothing is
// recomputed when the effective set is unchanged.
func (f *Face) SetExpressions(proportions map[string]float64) {
	f.setExpressions(proportions, false)
}

// SetExpression shows a single expression at full strength. An unknown
// name returns the face to its base expression.
func (f *Face) SetExpression(name string) {
	f.SetExpressions(map[string]float64{name: 1})
}

// Expressions returns a copy of the active proportions.
func (f *Face) Expressions() map[string]float64 {
	return maps.Clone(f.active)
}

func (f *Face) setExpressions(proportions map[string]float64, force bool) {
	next := make(map[string]float64, len(proportions))
	for name, v := range proportions {
		if _, ok := f.skin.Expressions[name]; !ok || v <= 0 {
			continue
		}
		next[name] = v
	}
	if !force && maps.Equal(next, f.active) {
		return
	}
	f.active = next
	f.log.Debug("face: expressions", "active", next)
	f.reblend()
}

func (f *Face) override(expr, comp string) (skin.Override, bool) {
	o, ok := f.skin.Expressions[expr].Components[comp]
	return o, ok
}

func (f *Face) reblend() {
	f.ballStyle = blend.Styles(blend.Parts(f.active, f.skin.Ball.Style,
		func(name string) (skin.Style, bool) {
			s := f.skin.Expressions[name].Ball
			return s, s != nil
		}))

	for _, p := range f.parts {
		name := p.c.Name
		p.front = blend.Styles(blend.Parts(f.active, p.c.Style,
			func(expr string) (skin.Style, bool) {
				o, ok := f.override(expr, name)
				return o.Style, ok && o.Style != nil
			}))
		p.back = blend.Styles(blend.Parts(f.active, p.c.BackStyle(),
			func(expr string) (skin.Style, bool) {
				o, ok := f.override(expr, name)
				if !ok {
					return nil, false
				}
				if o.StyleBack != nil {
					return o.StyleBack, true
				}
				return o.Style, o.Style != nil
			}))
		blend.Points(p.points, blend.Parts(f.active, p.c.Points,
			func(expr string) ([]mathutil.Vec3, bool) {
				o, ok := f.override(expr, name)
				return o.Points, ok && o.Points != nil
			}))
		p.frontFilled = p.front.Filled()
		p.backFilled = p.back.Filled()
	}
	f.dirty = true
}
