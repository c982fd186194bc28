package pointspec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"ballface/internal/mathutil"
)

func TestDeriveInfersZOnUnitSphere(t *testing.T) {
	for _, xy := range [][2]float64{{0, 0}, {0.3, -0.05}, {-0.6, 0.7}, {0.99, -0.09}} {
		p := Derive(XY(xy[0], xy[1]))
		assert.InDelta(t, 1.0, p.Dot(p), 1e-9)
		assert.Greater(t, p.Z(), -1e-12)
	}
}

func TestDeriveBackPicksNegativeRoot(t *testing.T) {
	p := Derive(XYBack(0.6, 0))
	assert.InDelta(t, -0.8, p.Z(), 1e-12)
	assert.InDelta(t, 0.6, p.X(), 1e-12)
}

func TestDeriveClampsOutsideDisc(t *testing.T) {
	// x²+y² > 1: z clamps to zero, then the default d=1 rescales.
	p := Derive(XY(3, 4))
	assert.False(t, math.IsNaN(p.Z()))
	assert.Equal(t, 0.0, p.Z())
	assert.InDelta(t, 1.0, p.Len(), 1e-12)
	assert.InDelta(t, 0.6, p.X(), 1e-12)
}

func TestDeriveWithDistance(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		d    float64
	}{
		{"inferred z lifted", XYD(0, 0.2, 1.2), 1.2},
		{"inferred z sunk", XYD(0.5, 0.5, 0.5), 0.5},
		{"explicit z", Spec{X: 1, Y: 2, Z: ptr(2.0), D: ptr(9.0)}, 9},
		{"back with d", Spec{X: 0.1, Y: 0.1, D: ptr(1.05), Back: true}, 1.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.d, Derive(tt.spec).Len(), 1e-9)
		})
	}
}

func TestDeriveExplicitZUntouched(t *testing.T) {
	p := Derive(XYZ(0, 0, -1))
	assert.Equal(t, mathutil.Vec3{0, 0, -1}, p)
	p = Derive(XYZ(2, 0, 0))
	assert.Equal(t, mathutil.Vec3{2, 0, 0}, p)
}

func TestSymmetricX(t *testing.T) {
	in := []mathutil.Vec3{{0, 1, 0}, {0.5, 1, 0}, {0.5, 2, 0}, {0, 2, 0}}
	got := SymmetricX(in)
	want := []mathutil.Vec3{
		{0, 1, 0}, {0.5, 1, 0}, {0.5, 2, 0}, {0, 2, 0},
		{-0.5, 2, 0}, {-0.5, 1, 0},
	}
	assert.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i][0], got[i][0], 0)
		assert.Equal(t, want[i][1], got[i][1])
	}
}

func TestReflectXAndBacktraced(t *testing.T) {
	in := []mathutil.Vec3{{1, 0, 0}, {2, 0, 0}, {3, 0, 0}}
	assert.Equal(t, []mathutil.Vec3{{-3, 0, 0}, {-2, 0, 0}, {-1, 0, 0}}, ReflectX(in))
	assert.Equal(t,
		[]mathutil.Vec3{{1, 0, 0}, {2, 0, 0}, {3, 0, 0}, {2, 0, 0}, {1, 0, 0}},
		Backtraced(in))
	assert.Equal(t, []mathutil.Vec3{{1, 0, 0}, {2, 0, 0}, {3, 0, 0}}, in)
}

func ptr(v float64) *float64 { return &v }
