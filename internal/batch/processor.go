// Package batch renders many faces in parallel and writes them to an
// output tree.
package batch

import (
	"context"
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"ballface/internal/face"
	"ballface/internal/logging"
	"ballface/internal/mathutil"
	"ballface/internal/preview"
	"ballface/internal/skin"
	"ballface/internal/svgpath"
)

// Config holds all shared resources for a batch run.
type Config struct {
	Registry  *skin.Registry
	OutputDir string
	// Face options shared by every job; rotation and expressions are set
	// per job.
	Face face.Options
	// Format of raster previews; empty writes SVG only.
	Format  preview.Format
	Preview preview.Options
	FrameMS uint
	Workers int
}

// Job is one output: a still at a rotation, or a turntable of Frames
// steps around the vertical axis.
type Job struct {
	Skin       string
	Expression string
	// Yaw and Pitch are in degrees.
	Yaw   float64
	Pitch float64
	// Frames > 0 makes this a turntable job.
	Frames int
}

// Result holds the outcome of processing one job. Paths are relative to
// the output directory.
type Result struct {
	Job
	SVG     string
	Image   string
	Success bool
	Error   string
}

// Jobs expands skins × expressions × rotations into stills, plus one
// turntable per skin and expression when frames > 0.
func Jobs(skins, expressions []string, rotations [][2]float64, frames int) []Job {
	var jobs []Job
	for _, s := range skins {
		for _, e := range expressions {
			for _, r := range rotations {
				jobs = append(jobs, Job{Skin: s, Expression: e, Yaw: r[0], Pitch: r[1]})
			}
			if frames > 0 {
				jobs = append(jobs, Job{Skin: s, Expression: e, Frames: frames})
			}
		}
	}
	return jobs
}

// Run processes all jobs using a worker pool. Cancelling ctx stops
// handing out jobs; jobs not started report the context error.
func Run(ctx context.Context, cfg Config, jobs []Job) []Result {
	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64
	workers := max(cfg.Workers, 1)

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f faces/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				if err := ctx.Err(); err != nil {
					results[idx] = Result{Job: jobs[idx], Error: err.Error()}
				} else {
					results[idx] = processJob(cfg, jobs[idx])
				}
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

// baseName is "<expression>_<yaw>_<pitch>" for stills and
// "<expression>_turntable" for turntables.
func baseName(j Job) string {
	if j.Frames > 0 {
		return j.Expression + "_turntable"
	}
	return fmt.Sprintf("%s_%s_%s", j.Expression, svgpath.FxShort(j.Yaw), svgpath.FxShort(j.Pitch))
}

func fail(j Job, err error) Result {
	logging.Logger().Warn("batch: job failed", "skin", j.Skin, "expression", j.Expression, "err", err)
	return Result{Job: j, Error: err.Error()}
}

func processJob(cfg Config, j Job) Result {
	s, err := cfg.Registry.Get(j.Skin)
	if err != nil {
		return fail(j, err)
	}
	f, err := face.New(s, cfg.Face)
	if err != nil {
		return fail(j, err)
	}
	f.SetExpression(j.Expression)

	rel := filepath.Join(s.Name, baseName(j))
	if err := os.MkdirAll(filepath.Join(cfg.OutputDir, s.Name), 0o755); err != nil {
		return fail(j, err)
	}

	if j.Frames > 0 {
		img := rel + preview.FormatWebP.Ext()
		if err := writeTurntable(cfg, f, j, filepath.Join(cfg.OutputDir, img)); err != nil {
			return fail(j, err)
		}
		return Result{Job: j, Image: img, Success: true}
	}

	f.SetRotation(mathutil.Deg2Rad(j.Yaw), mathutil.Deg2Rad(j.Pitch))
	res := Result{Job: j, SVG: rel + ".svg"}
	if err := writeFile(filepath.Join(cfg.OutputDir, res.SVG), f.WriteSVG); err != nil {
		return fail(j, err)
	}
	if cfg.Format != "" {
		res.Image = rel + cfg.Format.Ext()
		img, err := preview.Rasterize(f, cfg.Preview)
		if err != nil {
			return fail(j, err)
		}
		err = writeFile(filepath.Join(cfg.OutputDir, res.Image), func(w io.Writer) error {
			return preview.Encode(w, img, cfg.Format)
		})
		if err != nil {
			return fail(j, err)
		}
	}
	res.Success = true
	return res
}

func writeTurntable(cfg Config, f *face.Face, j Job, path string) error {
	frames := make([]image.Image, j.Frames)
	pitch := mathutil.Deg2Rad(j.Pitch)
	for i := range frames {
		f.SetRotation(2*math.Pi*float64(i)/float64(j.Frames), pitch)
		img, err := preview.Rasterize(f, cfg.Preview)
		if err != nil {
			return err
		}
		frames[i] = img
	}
	return writeFile(path, func(w io.Writer) error {
		return preview.EncodeTurntable(w, frames, cfg.FrameMS)
	})
}

// writeFile creates path and hands it to write, reporting the first error
// from writing or closing.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}
