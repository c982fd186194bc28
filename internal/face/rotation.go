package face

import (
	"math"

	"ballface/internal/mathutil"
)

// RotationForDirection returns the rotation that turns the face towards
// the direction (dx, dy, dz), where +z points at the viewer.
func RotationForDirection(dx, dy, dz float64) Rotation {
	yaw := math.Atan2(dx, dz)
	return Rotation{Yaw: yaw, Pitch: math.Atan2(math.Cos(yaw)*dy, dz)}
}

// SetRotation turns the face. The skin's lift angle is subtracted from
// pitch so that a zero pitch shows the face at rest.
func (f *Face) SetRotation(yaw, pitch float64) {
	pitch -= f.skin.LiftAngle
	r := Rotation{Yaw: yaw, Pitch: pitch}
	if f.rotSet && f.rot == r {
		return
	}
	f.rot = r
	f.rotSet = true
	f.mat = mathutil.ViewMatrix(pitch, yaw, f.opts.Radius)
	f.dirty = true
}

// Look turns the face towards (dx, dy, dz).
func (f *Face) Look(dx, dy, dz float64) {
	r := RotationForDirection(dx, dy, dz)
	f.SetRotation(r.Yaw, r.Pitch)
}

// Rotation returns the effective rotation, lift angle included.
func (f *Face) Rotation() Rotation { return f.rot }
