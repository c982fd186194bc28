package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"ballface/internal/face"
	"ballface/internal/logging"
	"ballface/internal/mathutil"
	"ballface/internal/preview"
	"ballface/internal/skin"
)

type options struct {
	skin       string
	expression string
	face       face.Options
	out        string
	image      string
	size       int
	background string
}

func main() {
	skinName := flag.String("skin", "Clyde", "Skin to render")
	expression := flag.String("expression", "normal", "Expression to render")
	padding := flag.Float64("padding", 20, "Padding around the face in pixels")
	radius := flag.Float64("radius", 40, "Radius of the face in pixels")
	rotX := flag.Float64("x", 0, "Left/right rotation in degrees")
	rotY := flag.Float64("y", 0, "Up/down rotation in degrees")
	zoom := flag.Float64("zoom", 1, "Zoom ratio")
	shiftX := flag.Float64("shift-x", 0, "Horizontal shift in pixels")
	shiftY := flag.Float64("shift-y", 0, "Vertical shift in pixels")
	pointsAsLines := flag.Bool("points-as-lines", false, "Draw single points as short strokes instead of dots")
	skinDir := flag.String("skins", "", "Directory of extra skin files")
	out := flag.String("o", "", "Write the SVG to this file (default: stdout)")
	imagePath := flag.String("image", "", "Also write a raster preview (.webp, .png or .tga)")
	size := flag.Int("size", 256, "Raster preview size in pixels")
	background := flag.String("background", "", "Raster preview background colour")
	list := flag.Bool("list", false, "List the known skins and their expressions")
	watch := flag.Bool("watch", false, "Re-render whenever the skin directory changes")
	verbose := flag.Bool("v", false, "Log to stderr")

	flag.Parse()

	if *verbose {
		logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	registry := skin.NewRegistry(skin.BuildIndex(*skinDir))

	if *list {
		if err := listSkins(os.Stdout, registry); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	opts := options{
		skin:       *skinName,
		expression: *expression,
		face: face.Options{
			Radius:  *radius,
			Padding: *padding,
			Shift:   face.Shift{X: *shiftX, Y: *shiftY},
			Zoom:    *zoom,
			Rotation: face.Rotation{
				Yaw:   mathutil.Deg2Rad(*rotX),
				Pitch: mathutil.Deg2Rad(*rotY),
			},
			Expressions:   map[string]float64{*expression: 1},
			PointsAsLines: *pointsAsLines,
		},
		out:        *out,
		image:      *imagePath,
		size:       *size,
		background: *background,
	}

	if err := render(registry, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if !*watch {
			os.Exit(1)
		}
	}

	if *watch {
		if *skinDir == "" {
			fmt.Fprintln(os.Stderr, "Error: -watch needs -skins")
			os.Exit(1)
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := watchSkins(ctx, *skinDir, registry, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

func listSkins(w io.Writer, registry *skin.Registry) error {
	for _, name := range registry.Names() {
		s, err := registry.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s: %s\n", s.Name, strings.Join(s.ExpressionNames(), ", "))
	}
	return nil
}

func render(registry *skin.Registry, opts options) error {
	s, err := registry.Get(opts.skin)
	if err != nil {
		return err
	}
	f, err := face.New(s, opts.face)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := f.WriteSVG(&buf); err != nil {
		return err
	}
	buf.WriteByte('\n')
	if opts.out == "" {
		if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
			return err
		}
	} else if err := os.WriteFile(opts.out, buf.Bytes(), 0644); err != nil {
		return err
	}

	if opts.image == "" {
		return nil
	}
	format, err := preview.ParseFormat(filepath.Ext(opts.image))
	if err != nil {
		return err
	}
	img, err := preview.Rasterize(f, preview.Options{Size: opts.size, Supersample: 2, Background: opts.background})
	if err != nil {
		return err
	}
	var ibuf bytes.Buffer
	if err := preview.Encode(&ibuf, img, format); err != nil {
		return err
	}
	return os.WriteFile(opts.image, ibuf.Bytes(), 0644)
}

// watchSkins re-renders after every burst of changes under dir until ctx is
// cancelled.
func watchSkins(ctx context.Context, dir string, registry *skin.Registry, opts options) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	fmt.Fprintf(os.Stderr, "Watching %s\n", dir)

	// Editors often write a file in several steps; wait for a quiet spell.
	const settle = 150 * time.Millisecond
	timer := time.NewTimer(settle)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					w.Add(ev.Name)
				}
			}
			timer.Reset(settle)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logging.Logger().Warn("watch error", "err", err)
		case <-timer.C:
			registry.Reload()
			if err := render(registry, opts); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			fmt.Fprintf(os.Stderr, "Rendered %s (%s)\n", opts.skin, opts.expression)
		}
	}
}
