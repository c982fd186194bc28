package preview

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ballface/internal/face"
	"ballface/internal/mathutil"
	"ballface/internal/skin"
	"ballface/internal/svgpath"
)

type scene struct {
	els        []face.Element
	x, y, w, h float64
}

func (s scene) Elements() []face.Element        { return s.els }
func (s scene) ViewBox() (x, y, w, h float64) { return s.x, s.y, s.w, s.h }

func square(p *svgpath.Path, lo, hi float64) {
	p.MoveTo(mathutil.Vec3{lo, lo, 0})
	p.LineTo(mathutil.Vec3{hi, lo, 0})
	p.LineTo(mathutil.Vec3{hi, hi, 0})
	p.LineTo(mathutil.Vec3{lo, hi, 0})
	p.Close()
}

func assertColour(t *testing.T, want, got color.NRGBA, msgAndArgs ...any) {
	t.Helper()
	for i, pair := range [][2]uint8{{want.R, got.R}, {want.G, got.G}, {want.B, got.B}, {want.A, got.A}} {
		assert.InDelta(t, int(pair[0]), int(pair[1]), 2, append([]any{"channel %d of %v", i, got}, msgAndArgs...)...)
	}
}

func nestedSquares() *svgpath.Path {
	p := &svgpath.Path{}
	square(p, 1, 9)
	square(p, 3, 7)
	return p
}

func TestArcToCubicsQuarter(t *testing.T) {
	pts := arcToCubics(point{1, 0}, point{0, 1}, 1, 1, 0, false, true)
	require.Len(t, pts, 3)
	assert.InDelta(t, 1.0, pts[0].x, 1e-9)
	assert.InDelta(t, quarterArc, pts[0].y, 1e-3)
	assert.InDelta(t, quarterArc, pts[1].x, 1e-3)
	assert.InDelta(t, 1.0, pts[1].y, 1e-9)
	assert.InDelta(t, 0.0, pts[2].x, 1e-9)
	assert.InDelta(t, 1.0, pts[2].y, 1e-9)
}

// midpoint evaluates the single cubic starting at p0 at t = 0.5.
func midpoint(p0 point, c []point) point {
	return point{
		(p0.x + 3*c[0].x + 3*c[1].x + c[2].x) / 8,
		(p0.y + 3*c[0].y + 3*c[1].y + c[2].y) / 8,
	}
}

func TestArcToCubicsCentre(t *testing.T) {
	start := point{1, 0}
	m := midpoint(start, arcToCubics(start, point{0, 1}, 1, 1, 0, false, true))
	assert.InDelta(t, 1.0, math.Hypot(m.x, m.y), 1e-3)

	// The other sweep puts the centre at (1, 1).
	m = midpoint(start, arcToCubics(start, point{0, 1}, 1, 1, 0, false, false))
	assert.InDelta(t, 1.0, math.Hypot(m.x-1, m.y-1), 1e-3)
}

func TestArcToCubicsSegments(t *testing.T) {
	assert.Len(t, arcToCubics(point{1, 0}, point{-1, 0}, 1, 1, 0, false, true), 6)
	// Radii too small are scaled up to reach the end point.
	pts := arcToCubics(point{-100, 0}, point{100, 0}, 10, 10, 0, false, true)
	require.Len(t, pts, 6)
	assert.InDelta(t, 100.0, pts[5].x, 1e-9)
	assert.Nil(t, arcToCubics(point{0, 0}, point{1, 1}, 0, 1, 0, false, true))
	assert.Nil(t, arcToCubics(point{1, 1}, point{1, 1}, 1, 1, 0, false, true))
}

func TestPaintFor(t *testing.T) {
	p := paintFor(skin.Style{}, "")
	require.NotNil(t, p.fill)
	assert.Equal(t, gg.Black, *p.fill)
	assert.Nil(t, p.stroke)

	p = paintFor(skin.Style{
		"fill":            "none",
		"stroke":          "#FF0000",
		"stroke-width":    "3",
		"opacity":         "0.5",
		"stroke-opacity":  "0.5",
		"stroke-linecap":  "round",
		"stroke-linejoin": "bevel",
	}, "evenodd")
	assert.Nil(t, p.fill)
	require.NotNil(t, p.stroke)
	assert.InDelta(t, 0.25, p.stroke.A, 1e-12)
	assert.Equal(t, 3.0, p.width)
	assert.True(t, p.evenOdd)
	assert.Equal(t, gg.LineCapRound, p.lineCap)
	assert.Equal(t, gg.LineJoinBevel, p.lineJoin)

	p = paintFor(skin.Style{"fill": "#000", "stroke": "#000", "stroke-width": "0", "opacity": "0"}, "")
	assert.Nil(t, p.fill)
	assert.Nil(t, p.stroke)

	assert.True(t, paintFor(skin.Style{"fill-rule": "evenodd"}, "").evenOdd)
}

func TestRasterizeFillRules(t *testing.T) {
	red := skin.Style{"fill": "#FF0000"}
	s := scene{w: 10, h: 10, els: []face.Element{
		{Name: "evenodd", Kind: face.KindPath, Path: nestedSquares(), Style: red, FillRule: "evenodd"},
	}}
	img, err := Rasterize(s, Options{Size: 10})
	require.NoError(t, err)
	assert.Equal(t, uint8(0), img.NRGBAAt(5, 5).A, "hole")
	assertColour(t, color.NRGBA{255, 0, 0, 255}, img.NRGBAAt(2, 5))

	s.els[0].FillRule = ""
	img, err = Rasterize(s, Options{Size: 10})
	require.NoError(t, err)
	assertColour(t, color.NRGBA{255, 0, 0, 255}, img.NRGBAAt(5, 5))
}

func TestRasterizeStroke(t *testing.T) {
	p := &svgpath.Path{}
	p.MoveTo(mathutil.Vec3{1, 5, 0})
	p.LineTo(mathutil.Vec3{9, 5, 0})
	s := scene{w: 10, h: 10, els: []face.Element{{
		Name: "line", Kind: face.KindPath, Path: p,
		Style: skin.Style{"fill": "none", "stroke": "#000000", "stroke-width": "2"},
	}}}
	img, err := Rasterize(s, Options{Size: 10, Background: "#FFFFFF"})
	require.NoError(t, err)
	assertColour(t, color.NRGBA{0, 0, 0, 255}, img.NRGBAAt(5, 5))
	assertColour(t, color.NRGBA{255, 255, 255, 255}, img.NRGBAAt(5, 1))
}

func TestRasterizeBadBackground(t *testing.T) {
	_, err := Rasterize(scene{w: 1, h: 1}, Options{Size: 4, Background: "nope"})
	assert.Error(t, err)
}

func TestRasterizeEye(t *testing.T) {
	s, err := skin.NewRegistry(nil).Get("eye")
	require.NoError(t, err)
	f, err := face.New(s, face.DefaultOptions())
	require.NoError(t, err)

	img, err := Rasterize(f, Options{Size: 64, Supersample: 2})
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 64, 64), img.Bounds())

	pupil := img.NRGBAAt(32, 32)
	assert.InDelta(t, 255, int(pupil.A), 2)
	assert.Less(t, int(pupil.G), 10)

	iris := img.NRGBAAt(42, 32)
	assert.InDelta(t, 255, int(iris.A), 2)
	assert.InDelta(t, 204, int(iris.G), 3)
	assert.InDelta(t, 102, int(iris.B), 3)

	ball := img.NRGBAAt(52, 32)
	assertColour(t, color.NRGBA{255, 255, 255, 255}, ball)

	assert.Equal(t, uint8(0), img.NRGBAAt(0, 0).A)
}

func TestDownsample(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+3] = 128, 128
	}
	got := Downsample(src, 2)
	require.Equal(t, image.Rect(0, 0, 2, 2), got.Bounds())
	c := got.NRGBAAt(1, 1)
	assert.InDelta(t, 255, int(c.R), 2)
	assert.InDelta(t, 128, int(c.A), 2)

	same := Downsample(src, 4)
	assert.Equal(t, color.NRGBA{255, 0, 0, 128}, same.NRGBAAt(0, 0))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"webp": FormatWebP, ".PNG": FormatPNG, "tga": FormatTGA} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("gif")
	assert.Error(t, err)
	assert.Equal(t, ".webp", FormatWebP.Ext())
}

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 30), uint8(y * 30), 90, 255})
		}
	}
	return img
}

func TestEncode(t *testing.T) {
	img := testImage()
	decoders := map[Format]func(*bytes.Buffer) (image.Image, error){
		FormatPNG:  func(b *bytes.Buffer) (image.Image, error) { return png.Decode(b) },
		FormatTGA:  func(b *bytes.Buffer) (image.Image, error) { return tga.Decode(b) },
		FormatWebP: func(b *bytes.Buffer) (image.Image, error) { return nativewebp.Decode(b) },
	}
	for f, decode := range decoders {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, img, f))
			got, err := decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, img.Bounds(), got.Bounds())
			r, g, b, a := got.At(3, 5).RGBA()
			assert.Equal(t, []uint32{90, 150, 90, 255}, []uint32{r >> 8, g >> 8, b >> 8, a >> 8})
		})
	}
	assert.Error(t, Encode(&bytes.Buffer{}, img, "gif"))
}

func TestEncodeTurntable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeTurntable(&buf, []image.Image{testImage(), testImage()}, 80))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("RIFF")))
	assert.True(t, bytes.Contains(buf.Bytes(), []byte("ANIM")))
	assert.Error(t, EncodeTurntable(&buf, nil, 80))
}
