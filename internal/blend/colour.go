package blend

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"

	"ballface/internal/svgpath"
)

// ParseColour understands #rgb, #rgba, #rrggbb, #rrggbbaa, rgb(r,g,b),
// rgba(r,g,b,a) with 0-255 channels and a 0-1 alpha, and the SVG colour
// keywords.
func ParseColour(s string) (gg.RGBA, bool) {
	s = strings.TrimSpace(s)
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return gg.FromColor(c), true
	}
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		switch len(hex) {
		case 3, 4, 6, 8:
		default:
			return gg.RGBA{}, false
		}
		for _, c := range hex {
			if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
				return gg.RGBA{}, false
			}
		}
		return gg.Hex(hex), true
	}

	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return gg.RGBA{}, false
	}
	fn := strings.ToLower(strings.TrimSpace(s[:open]))
	args := strings.Split(s[open+1:len(s)-1], ",")
	if (fn != "rgb" || len(args) != 3) && (fn != "rgba" || len(args) != 4) {
		return gg.RGBA{}, false
	}
	var v [4]float64
	v[3] = 1
	for i, a := range args {
		n, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
		if err != nil {
			return gg.RGBA{}, false
		}
		if i < 3 {
			n /= 255
		}
		v[i] = clamp01(n)
	}
	return gg.RGBA2(v[0], v[1], v[2], v[3]), true
}

// FormatColour writes c as #rrggbb when opaque and as rgba() otherwise.
func FormatColour(c gg.RGBA) string {
	r, g, b := channel(c.R), channel(c.G), channel(c.B)
	if c.A >= 1 {
		return fmt.Sprintf("#%02X%02X%02X", r, g, b)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", r, g, b, svgpath.FxShort(clamp01(c.A)))
}

func channel(v float64) int {
	return int(clamp01(v)*255 + 0.5)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
