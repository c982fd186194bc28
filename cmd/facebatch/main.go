package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"ballface/internal/batch"
	"ballface/internal/config"
	"ballface/internal/face"
	"ballface/internal/logging"
	"ballface/internal/preview"
	"ballface/internal/skin"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to a config file (.json or .toml)")
	skinDir := flag.String("skins", "", "Directory of skin files (default: auto-detect)")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	format := flag.String("format", "", "Raster preview format: webp, png or tga (default: SVG only)")
	size := flag.Int("size", 0, "Raster preview size in pixels (default: 256)")
	frames := flag.Int("turntable", 0, "Also render a turntable with this many frames")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	verbose := flag.Bool("v", false, "Log to stderr")

	flag.Parse()

	if *verbose {
		logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		SkinDir:     *skinDir,
		OutputDir:   *outputDir,
		ImageFormat: *format,
		ImageSize:   *size,
		Workers:     *workers,
		Frames:      *frames,
	})

	var imageFormat preview.Format
	if cfg.ImageFormat != "" {
		var err error
		imageFormat, err = preview.ParseFormat(cfg.ImageFormat)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	index := skin.BuildIndex(cfg.SkinDir)
	registry := skin.NewRegistry(index)
	skins := cfg.Skins
	if len(skins) == 0 {
		skins = registry.Names()
	}

	rotations := make([][2]float64, len(cfg.Rotations))
	for i, r := range cfg.Rotations {
		rotations[i] = [2]float64{r.Yaw, r.Pitch}
	}
	jobs := batch.Jobs(skins, cfg.Expressions, rotations, cfg.TurntableFrames)

	if len(jobs) == 0 {
		fmt.Println("No faces to render.")
		os.Exit(0)
	}

	fmt.Println("Ball face renderer → SVG")
	fmt.Printf("Skins: %d (%d from %q), Jobs: %d, Workers: %d\n",
		len(skins), index.Len(), cfg.SkinDir, len(jobs), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()

	// Run batch
	batchCfg := batch.Config{
		Registry:  registry,
		OutputDir: cfg.OutputDir,
		Face: face.Options{
			Radius:        cfg.Radius,
			Padding:       cfg.Padding,
			Zoom:          cfg.Zoom,
			PointsAsLines: cfg.PointsAsLines,
		},
		Format: imageFormat,
		Preview: preview.Options{
			Size:        cfg.ImageSize,
			Supersample: cfg.Supersample,
			Background:  cfg.Background,
		},
		FrameMS: uint(cfg.FrameDurationMS),
		Workers: cfg.Workers,
	}

	results := batch.Run(ctx, batchCfg, jobs)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	var failures []batch.Result
	for _, r := range results {
		if !r.Success {
			failures = append(failures, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", len(results)-len(failures), len(results))

	if len(failures) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(failures))
		for _, e := range failures[:min(len(failures), 20)] {
			fmt.Printf("  %s/%s: %s\n", e.Skin, e.Expression, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if len(failures) > 0 {
		os.Exit(1)
	}
}
