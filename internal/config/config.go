// Package config loads batch render settings from JSON or TOML files and
// merges them with command-line overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Rotation is a view direction in degrees.
type Rotation struct {
	Yaw   float64 `json:"yaw" toml:"yaw"`
	Pitch float64 `json:"pitch" toml:"pitch"`
}

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	SkinDir   string `json:"skin_dir" toml:"skin_dir"`
	OutputDir string `json:"output_dir" toml:"output_dir"`

	// What to render. No skins means every known skin.
	Skins       []string   `json:"skins" toml:"skins"`
	Expressions []string   `json:"expressions" toml:"expressions"`
	Rotations   []Rotation `json:"rotations" toml:"rotations"`

	// Face geometry
	Radius        float64 `json:"radius" toml:"radius"`
	Padding       float64 `json:"padding" toml:"padding"`
	Zoom          float64 `json:"zoom" toml:"zoom"`
	PointsAsLines bool    `json:"points_as_lines" toml:"points_as_lines"`

	// Raster previews. An empty format writes SVG only.
	ImageFormat string `json:"image_format" toml:"image_format"`
	ImageSize   int    `json:"image_size" toml:"image_size"`
	Supersample int    `json:"supersample" toml:"supersample"`
	Background  string `json:"background" toml:"background"`

	// Animated turntables; zero frames disables them.
	TurntableFrames int `json:"turntable_frames" toml:"turntable_frames"`
	FrameDurationMS int `json:"frame_duration_ms" toml:"frame_duration_ms"`

	Workers int `json:"workers" toml:"workers"`
}

// Load reads a config file, choosing TOML or JSON by extension.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	SkinDir     string
	OutputDir   string
	ImageFormat string
	ImageSize   int
	Workers     int
	Frames      int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.SkinDir != "" {
		c.SkinDir = flags.SkinDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.ImageFormat != "" {
		c.ImageFormat = flags.ImageFormat
	}
	if flags.ImageSize > 0 {
		c.ImageSize = flags.ImageSize
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Frames > 0 {
		c.TurntableFrames = flags.Frames
	}

	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	if c.SkinDir == "" {
		c.SkinDir = detectSkinDir()
	}

	if len(c.Expressions) == 0 {
		c.Expressions = []string{"normal"}
	}
	if len(c.Rotations) == 0 {
		c.Rotations = []Rotation{{}}
	}
	if c.Radius <= 0 {
		c.Radius = 40
	}
	if c.Padding < 0 {
		c.Padding = 0
	}
	if c.Zoom <= 0 {
		c.Zoom = 1
	}

	if c.ImageSize <= 0 {
		c.ImageSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.TurntableFrames > 0 && c.ImageFormat == "" {
		c.ImageFormat = "webp"
	}
	if c.FrameDurationMS <= 0 {
		c.FrameDurationMS = 80
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// detectSkinDir looks for a skins directory next to the executable or in
// the working directory. It returns "" when there is none, leaving only
// the built-in skins.
func detectSkinDir() string {
	var candidates []string
	if exe, _ := os.Executable(); exe != "" {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), "skins"))
	}
	if cwd, _ := os.Getwd(); cwd != "" {
		candidates = append(candidates, filepath.Join(cwd, "skins"))
	}
	for _, dir := range candidates {
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			return dir
		}
	}
	return ""
}
