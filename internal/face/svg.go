package face

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"sort"

	svg "github.com/ajstarks/svgo/float"

	"ballface/internal/skin"
	"ballface/internal/svgpath"
)

// errWriter keeps the first write error; svgo discards them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

func attr(name, value string) string {
	return fmt.Sprintf(`%s="%s"`, name, html.EscapeString(value))
}

// attrs lists the style as presentation attributes in a stable order.
func attrs(style skin.Style, fillRule string) []string {
	var out []string
	if fillRule != "" {
		out = append(out, attr("fill-rule", fillRule))
	}
	keys := make([]string, 0, len(style))
	for k := range style {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, attr(k, style[k]))
	}
	return out
}

// WriteSVG renders if needed and writes the face as a standalone SVG
// document.
func (f *Face) WriteSVG(w io.Writer) error {
	f.Render()

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Decimals = svgpath.Decimals

	vx, vy, vw, vh := f.ViewBox()
	dim := svgpath.FxShort(vw * f.opts.Zoom)
	canvas.Startraw(
		attr("height", dim),
		attr("version", "1.1"),
		attr("viewBox", fmt.Sprintf("%s %s %s %s",
			svgpath.FxShort(vx), svgpath.FxShort(vy), svgpath.FxShort(vw), svgpath.FxShort(vh))),
		attr("width", dim),
	)
	for _, el := range f.Elements() {
		switch el.Kind {
		case KindCircle:
			for _, c := range el.Circles {
				canvas.Circle(c.X, c.Y, c.R, attrs(el.Style, el.FillRule)...)
			}
		case KindBlobs:
			canvas.Group(attr("class", el.Name))
			for _, c := range el.Circles {
				canvas.Circle(c.X, c.Y, c.R, attrs(el.Style, "")...)
			}
			canvas.Gend()
		default:
			canvas.Path(el.Path.String(), attrs(el.Style, el.FillRule)...)
		}
	}
	canvas.End()
	if ew.err != nil {
		return fmt.Errorf("face: write svg: %w", ew.err)
	}
	return nil
}

// SVG returns the document written by WriteSVG.
func (f *Face) SVG() string {
	var buf bytes.Buffer
	_ = f.WriteSVG(&buf)
	return buf.String()
}
