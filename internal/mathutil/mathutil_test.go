package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const tol = 1e-9

func assertVec(t *testing.T, want, got Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], tol, "component %d of %v", i, got)
	}
}

func TestViewMatrixIdentityAtRest(t *testing.T) {
	m := ViewMatrix(0, 0, 1)
	for i, v := range Mat3Identity() {
		assert.InDelta(t, v, m[i], tol)
	}
}

func TestViewMatrixScalesToRadius(t *testing.T) {
	m := ViewMatrix(0.3, -1.1, 40)
	p := m.MulVec3(Vec3{0, 0, 1})
	assert.InDelta(t, 40.0, p.Len(), tol)

	id := Mat3Mul(m, m.Transpose())
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			want := 0.0
			if r == c {
				want = 1600
			}
			assert.InDelta(t, want, id[r*3+c], 1e-6)
		}
	}
}

func TestViewMatrixMatchesComponents(t *testing.T) {
	// Written out: rows of r × Ry(yaw) × Rx(-pitch).
	pitch, yaw, r := 0.4, 0.7, 3.0
	s1, c1 := math.Sin(pitch), math.Cos(pitch)
	s2, c2 := math.Sin(yaw), math.Cos(yaw)
	want := Mat3{
		c2 * r, -s1 * s2 * r, c1 * s2 * r,
		0, c1 * r, s1 * r,
		-s2 * r, -s1 * c2 * r, c1 * c2 * r,
	}
	got := ViewMatrix(pitch, yaw, r)
	for i := range want {
		assert.InDelta(t, want[i], got[i], tol)
	}
}

func TestYawTurnsFaceSideways(t *testing.T) {
	// The nose (0,0,1) swings towards +x for positive yaw.
	p := ViewMatrix(0, math.Pi/2, 1).MulVec3(Vec3{0, 0, 1})
	assertVec(t, Vec3{1, 0, 0}, p)

	p = ViewMatrix(math.Pi/2, 0, 1).MulVec3(Vec3{0, 0, 1})
	assertVec(t, Vec3{0, 1, 0}, p)
}

func TestApplyDoesNotAliasInput(t *testing.T) {
	in := []Vec3{{1, 0, 0}, {0, 1, 0}}
	out := ViewMatrix(0, math.Pi, 2).Apply(in)
	assertVec(t, Vec3{1, 0, 0}, in[0])
	assertVec(t, Vec3{-2, 0, 0}, out[0])
	assertVec(t, Vec3{0, 2, 0}, out[1])
}

func TestVecOps(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}
	assertVec(t, Vec3{-3, 6, -3}, a.Cross(b))
	assert.InDelta(t, 32.0, a.Dot(b), tol)
	assertVec(t, Vec3{2.5, 3.5, 4.5}, Lerp(a, b, 0.5))
	assertVec(t, Vec3{1, 2, -3}, a.MirrorZ())
	assert.InDelta(t, 5.0, Vec3{3, 4, 12}.LenXY(), tol)
}

func TestPosMod(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{1, 3, 1},
		{-1, 3, 2},
		{7, 3, 1},
		{-2 * math.Pi, 2 * math.Pi, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, PosMod(tt.a, tt.b), tol)
	}
	assert.InDelta(t, math.Pi, Deg2Rad(180), tol)
}
