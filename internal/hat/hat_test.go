package hat

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ballface/internal/mathutil"
	"ballface/internal/svgpath"
)

const radius = 100.0

func topHat() Shape {
	return Shape{
		Brim: Brim{Y: -0.6, OuterRadius: 1.2},
		Top:  Top{Y: -1.9, Radius: 0.3},
	}.Clamped()
}

func TestClamped(t *testing.T) {
	s := Shape{Brim: Brim{Y: -0.6, InnerRadius: 0.5}}.Clamped()
	assert.InDelta(t, 0.8, s.Brim.InnerRadius, 1e-12)

	s = Shape{Brim: Brim{Y: -0.6, InnerRadius: 1.0}}.Clamped()
	assert.Equal(t, 1.0, s.Brim.InnerRadius)

	s = Shape{Brim: Brim{Y: -2}}.Clamped()
	assert.Equal(t, 0.0, s.Brim.InnerRadius)
}

func TestEllipseSegment(t *testing.T) {
	tests := []struct {
		name string
		e    ellipse
		cw   bool
		want string
	}{
		{"clockwise long way", ellipse{r1: 10, r2: 5}, true, "M10 0A10 5 0 1 1 0 -5"},
		{"anticlockwise short way", ellipse{r1: 10, r2: 5}, false, "M10 0A10 5 0 0 0 0 -5"},
		{"mirrored minor radius", ellipse{r1: 10, r2: -5}, true, "M10 0A10 -5 0 1 0 0 5"},
		{"flat", ellipse{r1: 10, r2: 0.05}, true, "M10 0L0 -0.05"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p svgpath.Path
			tt.e.segment(&p, true, 0, 1.5*math.Pi, tt.cw)
			assert.Equal(t, tt.want, p.String())
		})
	}
}

func TestEllipseRing(t *testing.T) {
	var p svgpath.Path
	ellipse{r1: 10, r2: 0.05}.ring(&p)
	assert.Equal(t, "M10 0L-10 0L10 0Z", p.String())

	p = svgpath.Path{}
	ellipse{centre: mathutil.Vec3{5, 5}, r1: 10, r2: 4}.ring(&p)
	assert.Equal(t, "M15 5A10 4 0 0 0 -5 5A10 4 0 0 0 15 5Z", p.String())
}

func TestRenderFacingViewer(t *testing.T) {
	s := Shape{Brim: Brim{Y: -0.6}, Top: Top{Y: -1.9}}.Clamped()
	out := Render(s, mathutil.ViewMatrix(0, 0, radius), radius)

	assert.Equal(t, "M-80 -60L80 -60L0 -190L0 -190Z", out.Sides.String())
	assert.True(t, out.Top.Empty())
	assert.True(t, out.BrimBackFill.Empty())
	assert.True(t, out.BrimFrontOutline.Empty())
}

func TestRenderFromAbove(t *testing.T) {
	out := Render(topHat(), mathutil.ViewMatrix(math.Pi/2, 0, radius), radius)

	require.False(t, out.Top.Empty())
	assert.True(t, strings.HasSuffix(out.Top.String(), "Z"))
	assert.Contains(t, out.Top.String(), "A")

	assert.Equal(t, 2, strings.Count(out.Sides.String(), "M"))
	assert.Equal(t, 2, strings.Count(out.BrimFrontOutline.String(), "M"))
	assert.Equal(t, out.BrimFrontOutline.String(), out.BrimFrontFill.String())
	assert.True(t, out.BrimBackOutline.Empty())
	assert.True(t, out.BrimBackFill.Empty())
}

func TestRenderFromBelow(t *testing.T) {
	out := Render(topHat(), mathutil.ViewMatrix(-math.Pi/2, 0, radius), radius)

	assert.True(t, out.Top.Empty())
	assert.True(t, out.Sides.Empty())
	assert.False(t, out.BrimBackOutline.Empty())
	assert.True(t, out.BrimFrontOutline.Empty())
}

func TestRenderTilted(t *testing.T) {
	out := Render(topHat(), mathutil.ViewMatrix(0.3, 0.2, radius), radius)

	assert.Equal(t, 2, strings.Count(out.BrimBackOutline.String(), "M"))
	assert.Equal(t, 2, strings.Count(out.BrimFrontOutline.String(), "M"))
	assert.True(t, strings.HasSuffix(out.BrimBackFill.String(), "Z"))
	assert.True(t, strings.HasSuffix(out.BrimFrontFill.String(), "Z"))
	assert.Equal(t, 1, strings.Count(out.BrimFrontFill.String(), "M"))
	assert.Equal(t, 1, strings.Count(out.Sides.String(), "M"))
	assert.False(t, out.Top.Empty())

	for _, p := range []*svgpath.Path{out.BrimBackFill, out.BrimFrontFill, out.Sides, out.Top} {
		assert.NotContains(t, p.String(), "NaN")
	}
}
