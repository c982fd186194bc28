package blend

import (
	"sort"
	"strconv"

	"github.com/gogpu/gg"

	"ballface/internal/skin"
	"ballface/internal/svgpath"
)

// defaultStyle applies to every drawn feature unless a part overrides it.
var defaultStyle = skin.Style{
	"fill":            "none",
	"stroke-linecap":  "round",
	"stroke-linejoin": "round",
}

// implicit holds the value a missing attribute is taken to have while
// blending, for attributes where that is well defined.
var implicit = map[string]string{
	"opacity":        "1",
	"fill-opacity":   "1",
	"stroke-opacity": "1",
}

// Styles blends style parts attribute by attribute. Numbers are
// interpolated and colours are mixed in premultiplied space. Any other
// value is taken from the heaviest part that sets it. Parts that do not
// set an attribute are left out of its blend.
func Styles(parts []Part[skin.Style]) skin.Style {
	keys := map[string]bool{}
	for _, p := range parts {
		for k := range p.Value {
			keys[k] = true
		}
	}
	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	out := defaultStyle.Clone()
	for _, k := range sorted {
		var vals []Part[string]
		for _, p := range parts {
			v, ok := p.Value[k]
			if !ok {
				if v, ok = implicit[k]; !ok {
					continue
				}
			}
			vals = append(vals, Part[string]{Weight: p.Weight, Value: v})
		}
		out[k] = value(vals)
	}
	return out
}

func value(vals []Part[string]) string {
	same := true
	for _, v := range vals[1:] {
		same = same && v.Value == vals[0].Value
	}
	if same {
		return vals[0].Value
	}
	total := 0.0
	for _, v := range vals {
		total += v.Weight
	}
	if total <= 0 {
		return heaviest(vals)
	}
	if n, ok := numbers(vals, total); ok {
		return svgpath.FxShort(n)
	}
	if c, ok := colours(vals, total); ok {
		return FormatColour(c)
	}
	return heaviest(vals)
}

func numbers(vals []Part[string], total float64) (float64, bool) {
	sum := 0.0
	for _, v := range vals {
		n, err := strconv.ParseFloat(v.Value, 64)
		if err != nil {
			return 0, false
		}
		sum += n * v.Weight
	}
	return sum / total, true
}

func colours(vals []Part[string], total float64) (gg.RGBA, bool) {
	var sum gg.RGBA
	for _, v := range vals {
		c, ok := ParseColour(v.Value)
		if !ok {
			return gg.RGBA{}, false
		}
		p := c.Premultiply()
		w := v.Weight / total
		sum.R += p.R * w
		sum.G += p.G * w
		sum.B += p.B * w
		sum.A += p.A * w
	}
	return sum.Unpremultiply(), true
}

func heaviest(vals []Part[string]) string {
	best := vals[0]
	for _, v := range vals[1:] {
		if v.Weight > best.Weight {
			best = v
		}
	}
	return best.Value
}
