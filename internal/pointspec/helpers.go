package pointspec

import "ballface/internal/mathutil"

// SymmetricX appends the mirror image (x → -x) of the chain in reverse
// order, producing a left-right symmetric ring. Mirrored end points that lie
// on the axis are not duplicated.
func SymmetricX(v []mathutil.Vec3) []mathutil.Vec3 {
	all := append([]mathutil.Vec3(nil), v...)
	for i := len(v) - 1; i >= 0; i-- {
		p := v[i]
		p[0] = -p[0]
		if (i == 0 || i == len(v)-1) && p[0] == 0 {
			continue
		}
		all = append(all, p)
	}
	return all
}

// ReflectX mirrors the chain in x and reverses it, keeping the winding of a
// closed ring unchanged on screen.
func ReflectX(v []mathutil.Vec3) []mathutil.Vec3 {
	all := make([]mathutil.Vec3, 0, len(v))
	for i := len(v) - 1; i >= 0; i-- {
		p := v[i]
		p[0] = -p[0]
		all = append(all, p)
	}
	return all
}

// Backtraced walks the chain forwards then back again to its first point,
// turning an open line into a degenerate closed ring.
func Backtraced(v []mathutil.Vec3) []mathutil.Vec3 {
	all := append([]mathutil.Vec3(nil), v...)
	for i := len(v) - 2; i >= 0; i-- {
		all = append(all, v[i])
	}
	return all
}
