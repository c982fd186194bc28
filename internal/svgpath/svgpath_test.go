package svgpath

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"ballface/internal/mathutil"
)

func TestFxShort(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{-1, "-1"},
		{1.5, "1.5"},
		{10, "10"},
		{100.25, "100.25"},
		{0.000001, "0"},
		{-0.000001, "0"},
		{1.123456, "1.12346"},
		{-2.100000001, "-2.1"},
		{123456.7, "123456.7"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, FxShort(tt.in))
		})
	}
}

func TestFxKeepsZeros(t *testing.T) {
	assert.Equal(t, "1.50000", Fx(1.5))
	assert.Equal(t, "-0.25000", Fx(-0.25))
}

func TestPathString(t *testing.T) {
	var p Path
	p.MoveTo(mathutil.Vec3{0, 50})
	p.ArcTo(50, 50, 0, false, false, mathutil.Vec3{0, -50})
	p.ArcTo(50, 50, 0, false, false, mathutil.Vec3{0, 50})
	p.Close()
	assert.Equal(t, "M0 50A50 50 0 0 0 0 -50A50 50 0 0 0 0 50Z", p.String())

	var q Path
	q.MoveTo(mathutil.Vec3{1.25, -3})
	q.LineTo(mathutil.Vec3{2, 4.5})
	q.ArcTo(-10.5, 20, 45, true, true, mathutil.Vec3{3, 3})
	q.Nudge()
	assert.Equal(t, "M1.25 -3L2 4.5A-10.5 20 45 1 1 3 3l0 0.0001", q.String())
}

func TestAppendTail(t *testing.T) {
	var a, b Path
	a.MoveTo(mathutil.Vec3{0, 0})
	a.LineTo(mathutil.Vec3{1, 0})
	b.MoveTo(mathutil.Vec3{2, 0})
	b.LineTo(mathutil.Vec3{3, 0})

	c := a.Clone()
	c.ArcTo(5, 5, 0, false, true, mathutil.Vec3{2, 0})
	c.AppendTail(&b)
	assert.Equal(t, "M0 0L1 0A5 5 0 0 1 2 0L3 0", c.String())
	assert.Equal(t, 2, a.Len(), "clone must not share storage")

	a.Append(&b)
	assert.Equal(t, 1, strings.Count(a.String(), "L1 0"))
	assert.Equal(t, 4, a.Len())
}

func TestEmpty(t *testing.T) {
	var nilPath *Path
	assert.True(t, nilPath.Empty())
	assert.Equal(t, "", nilPath.String())
	assert.True(t, (&Path{}).Empty())
}

type recorder struct {
	ops []string
}

func (r *recorder) MoveTo(x, y float64) { r.ops = append(r.ops, fmt.Sprintf("M%g,%g", x, y)) }
func (r *recorder) LineTo(x, y float64) { r.ops = append(r.ops, fmt.Sprintf("L%g,%g", x, y)) }
func (r *recorder) ArcTo(rx, ry, rot float64, large, sweep bool, x, y float64) {
	r.ops = append(r.ops, fmt.Sprintf("A%g,%g,%g,%t,%t,%g,%g", rx, ry, rot, large, sweep, x, y))
}
func (r *recorder) ClosePath() { r.ops = append(r.ops, "Z") }

func TestWalk(t *testing.T) {
	var p Path
	p.MoveTo(mathutil.Vec3{1, 0})
	p.Nudge()
	p.MoveTo(mathutil.Vec3{5, 0})
	p.LineTo(mathutil.Vec3{6, 5})
	p.ArcTo(3, 3, 0, false, true, mathutil.Vec3{7, 7})
	p.Close()
	p.Nudge()

	var r recorder
	p.Walk(&r)
	assert.Equal(t, []string{
		"M1,0",
		"L1,0.0001",
		"M5,0",
		"L6,5",
		"A3,3,0,false,true,7,7",
		"Z",
		"L5,0.0001",
	}, r.ops)
}
