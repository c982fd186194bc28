package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ManifestEntry represents one rendered output in the manifest.
type ManifestEntry struct {
	Skin       string  `json:"skin"`
	Expression string  `json:"expression"`
	Yaw        float64 `json:"yaw"`
	Pitch      float64 `json:"pitch"`
	Frames     int     `json:"frames,omitempty"`
	SVG        string  `json:"svg,omitempty"`
	Image      string  `json:"image,omitempty"`
}

// WriteManifest writes the successful results as JSON to path.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Skin:       r.Skin,
			Expression: r.Expression,
			Yaw:        r.Yaw,
			Pitch:      r.Pitch,
			Frames:     r.Frames,
			SVG:        filepath.ToSlash(r.SVG),
			Image:      filepath.ToSlash(r.Image),
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
