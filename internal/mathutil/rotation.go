package mathutil

import "math"

// RotX returns a 3×3 rotation matrix around the X axis. Angle in radians.
func RotX(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}
}

// RotY returns a 3×3 rotation matrix around the Y axis.
func RotY(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}
}

// ViewMatrix maps unit-ball points to pixel space for a ball of the given
// radius turned by yaw (around the vertical axis) and pitch (around the
// horizontal axis). Screen y points down, so positive pitch tips the face
// down and turns the top of the ball toward the viewer. The result is
// scale × Ry(yaw) × Rx(-pitch).
func ViewMatrix(pitch, yaw, scale float64) Mat3 {
	return Mat3Mul(RotY(yaw), RotX(-pitch)).Scale(scale)
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// PosMod returns a mod b in [0, b) for positive b.
func PosMod(a, b float64) float64 {
	return math.Mod(math.Mod(a, b)+b, b)
}
