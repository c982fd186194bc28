package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadJSON(t *testing.T) {
	path := write(t, "cfg.json", `{
		"skins": ["clyde"],
		"rotations": [{"yaw": 30, "pitch": -10}],
		"radius": 60,
		"image_format": "png",
		"workers": 3
	}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"clyde"}, cfg.Skins)
	assert.Equal(t, []Rotation{{Yaw: 30, Pitch: -10}}, cfg.Rotations)
	assert.Equal(t, 60.0, cfg.Radius)
	assert.Equal(t, "png", cfg.ImageFormat)
	assert.Equal(t, 3, cfg.Workers)
}

func TestLoadTOML(t *testing.T) {
	path := write(t, "cfg.TOML", `
skins = ["christmas", "eye"]
expressions = ["smile", "normal"]
padding = 10
turntable_frames = 12

[[rotations]]
yaw = 45
pitch = 5
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"christmas", "eye"}, cfg.Skins)
	assert.Equal(t, []string{"smile", "normal"}, cfg.Expressions)
	assert.Equal(t, 10.0, cfg.Padding)
	assert.Equal(t, 12, cfg.TurntableFrames)
	assert.Equal(t, []Rotation{{Yaw: 45, Pitch: 5}}, cfg.Rotations)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "config: read")

	_, err = Load(write(t, "bad.json", "{"))
	assert.ErrorContains(t, err, "config: parse")

	_, err = Load(write(t, "bad.toml", "radius = ["))
	assert.ErrorContains(t, err, "config: parse")
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})
	assert.Equal(t, "renders", cfg.OutputDir)
	assert.Equal(t, []string{"normal"}, cfg.Expressions)
	assert.Equal(t, []Rotation{{}}, cfg.Rotations)
	assert.Equal(t, 40.0, cfg.Radius)
	assert.Equal(t, 1.0, cfg.Zoom)
	assert.Equal(t, "", cfg.ImageFormat)
	assert.Equal(t, 256, cfg.ImageSize)
	assert.Equal(t, 2, cfg.Supersample)
	assert.Equal(t, 80, cfg.FrameDurationMS)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
}

func TestResolveFlagsOverride(t *testing.T) {
	cfg := Config{OutputDir: "from-file", Workers: 2, ImageSize: 64}
	cfg.Resolve(Flags{OutputDir: "from-flag", Workers: 7, Frames: 8, SkinDir: "dir"})
	assert.Equal(t, "from-flag", cfg.OutputDir)
	assert.Equal(t, "dir", cfg.SkinDir)
	assert.Equal(t, 7, cfg.Workers)
	assert.Equal(t, 64, cfg.ImageSize)
	assert.Equal(t, 8, cfg.TurntableFrames)
	assert.Equal(t, "webp", cfg.ImageFormat, "turntables need a raster format")
}
