package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/ivlev/motioncam/internal/camera"
)

// DefaultDir is where generated scene files are kept
var DefaultDir = filepath.Join("internal", "scenes")

// GenerateScenePath creates a timestamped scene filename in dir
func GenerateScenePath(dir string, format Format) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("scene_%s.%s", timestamp, format))
}

// FindLatest finds the most recently modified scene file in dir
func FindLatest(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read scenes directory: %w", err)
	}

	type candidate struct {
		path    string
		modTime time.Time
	}
	var scenes []candidate
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, err := FormatOf(entry.Name()); err != nil {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		scenes = append(scenes, candidate{filepath.Join(dir, entry.Name()), info.ModTime()})
	}

	if len(scenes) == 0 {
		return "", fmt.Errorf("no scene files found in %s", dir)
	}

	// Newest first
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].modTime.After(scenes[j].modTime)
	})

	return scenes[0].path, nil
}

// Example returns a small scene that exercises every feature: a named camera
// zoom anchor, a shake, free elements and a staggered group with an exit.
func Example() *Document {
	fps := DefaultFPS
	zero := 0.0
	half := 0.5
	shake := camera.DefaultShake()
	return &Document{
		Version:  "1",
		FPS:      &fps,
		Viewport: &ViewportDoc{Width: DefaultWidth, Height: DefaultHeight},
		Camera: CameraDoc{
			Easing: "cubic-in-out",
			Shake:  &ShakeDoc{Amplitude: shake.Amplitude, Frequency: shake.Frequency},
			Keyframes: []KeyframeDoc{
				{Time: 0, X: 960, Y: 540, Zoom: 1},
				{Time: 2, Name: "zoom", X: 700, Y: 400, Zoom: 1.6},
				{Time: 4, X: 960, Y: 540, Zoom: 1},
			},
		},
		Markers: map[string]float64{"intro": 0.2},
		Elements: []ElementDoc{
			{ID: "title", Kind: "pop", Entry: &half, Anchor: PointDoc{X: 960, Y: 300}},
			{ID: "pointer", Kind: "arrow", Trigger: &TriggerDoc{Event: "camera.zoom", Offset: 0.1}, Anchor: PointDoc{X: 700, Y: 420}},
		},
		Groups: []GroupDoc{
			{
				ID:      "bullets",
				Trigger: &TriggerDoc{Event: "title", Offset: 0.4},
				Stagger: 0.25,
				Exit:    &ExitDoc{PopDuration: 0.6, Hold: 1, Fade: 0.4, MaxBlur: 6, Grace: &zero},
				Members: []ElementDoc{
					{ID: "b1", Kind: "slide", Anchor: PointDoc{X: 600, Y: 600}},
					{ID: "b2", Kind: "slide", Anchor: PointDoc{X: 600, Y: 680}},
					{ID: "b3", Kind: "zoom", Anchor: PointDoc{X: 600, Y: 760}},
				},
			},
		},
	}
}
