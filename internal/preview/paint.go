package preview

import (
	"strconv"

	"github.com/gogpu/gg"

	"ballface/internal/blend"
	"ballface/internal/skin"
)

// paint is the subset of SVG presentation attributes the rasteriser
// understands.
type paint struct {
	fill     *gg.RGBA
	stroke   *gg.RGBA
	width    float64
	evenOdd  bool
	lineCap  gg.LineCap
	lineJoin gg.LineJoin
}

// paintFor resolves a style the way an SVG renderer would: fill defaults to
// black, stroke to none, stroke-width to 1. opacity is folded into both
// colours.
func paintFor(st skin.Style, fillRule string) paint {
	p := paint{width: 1, lineCap: gg.LineCapButt, lineJoin: gg.LineJoinMiter}

	opacity := number(st, "opacity", 1)
	if v, ok := st["fill"]; !ok {
		c := gg.Black
		p.fill = &c
	} else {
		p.fill = colour(v, opacity*number(st, "fill-opacity", 1))
	}
	if v, ok := st["stroke"]; ok {
		p.stroke = colour(v, opacity*number(st, "stroke-opacity", 1))
	}
	if v, ok := st["stroke-width"]; ok {
		p.width, _ = strconv.ParseFloat(v, 64)
	}
	if p.width <= 0 {
		p.stroke = nil
	}

	if fillRule == "" {
		fillRule = st["fill-rule"]
	}
	p.evenOdd = fillRule == "evenodd"

	switch st["stroke-linecap"] {
	case "round":
		p.lineCap = gg.LineCapRound
	case "square":
		p.lineCap = gg.LineCapSquare
	}
	switch st["stroke-linejoin"] {
	case "round":
		p.lineJoin = gg.LineJoinRound
	case "bevel":
		p.lineJoin = gg.LineJoinBevel
	}
	return p
}

func number(st skin.Style, key string, def float64) float64 {
	v, ok := st[key]
	if !ok {
		return def
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return max(0, min(1, n))
}

// colour returns nil for "none", unknown values and fully transparent
// results.
func colour(v string, alpha float64) *gg.RGBA {
	c, ok := blend.ParseColour(v)
	if !ok {
		return nil
	}
	c.A *= alpha
	if c.A <= 0 {
		return nil
	}
	return &c
}
