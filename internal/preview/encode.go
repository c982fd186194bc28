package preview

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

type Format string

const (
	FormatWebP Format = "webp"
	FormatPNG  Format = "png"
	FormatTGA  Format = "tga"
)

// ParseFormat accepts a format name or file extension, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.TrimPrefix(strings.ToLower(s), ".")); f {
	case FormatWebP, FormatPNG, FormatTGA:
		return f, nil
	}
	return "", fmt.Errorf("preview: unknown image format %q", s)
}

// Ext is the file extension for f, with the dot.
func (f Format) Ext() string { return "." + string(f) }

// Encode writes img to w in format f. WebP output is lossless.
func Encode(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case FormatWebP:
		err = nativewebp.Encode(w, img, nil)
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatTGA:
		err = tga.Encode(w, img)
	default:
		return fmt.Errorf("preview: unknown image format %q", f)
	}
	if err != nil {
		return fmt.Errorf("preview: %s encode: %w", f, err)
	}
	return nil
}

// EncodeTurntable writes frames as a looping animated WebP, showing each
// frame for frameMS milliseconds.
func EncodeTurntable(w io.Writer, frames []image.Image, frameMS uint) error {
	if len(frames) == 0 {
		return fmt.Errorf("preview: turntable without frames")
	}
	ani := &nativewebp.Animation{
		Images:    frames,
		Durations: make([]uint, len(frames)),
		Disposals: make([]uint, len(frames)),
	}
	for i := range frames {
		ani.Durations[i] = frameMS
		// Frames are transparent around the ball; clear before each.
		ani.Disposals[i] = 1
	}
	if err := nativewebp.EncodeAll(w, ani, nil); err != nil {
		return fmt.Errorf("preview: turntable encode: %w", err)
	}
	return nil
}
