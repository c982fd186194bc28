package svgpath

import (
	"strconv"
	"strings"
)

// Decimals is the fixed precision of every number written into path data.
const Decimals = 5

// Fx formats v with fixed precision and no trimming.
func Fx(v float64) string {
	return strconv.FormatFloat(v, 'f', Decimals, 64)
}

// FxShort formats v with fixed precision, then strips trailing zeros and a
// dangling decimal point. Negative zero is written as "0".
func FxShort(v float64) string {
	s := Fx(v)
	if strings.IndexByte(s, '.') >= 0 {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}

// Pt formats an x/y pair as "x y".
func Pt(x, y float64) string {
	return FxShort(x) + " " + FxShort(y)
}
