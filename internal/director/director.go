// Package director plans a camera tour over focus regions: a full view, each
// region in reading order, then the full view again.
package director

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/ivlev/motioncam/internal/camera"
)

// Names of the full-view keyframes framing the tour
const (
	StartName = "start"
	EndName   = "end"
)

// Region is a world-space rectangle the camera should visit
type Region struct {
	Name string // Keyframe name; defaults to "region_<n>" (1-based, reading order)
	X, Y float64
	W, H float64
}

// Director generates camera keyframes from focus regions
type Director struct {
	ViewportWidth  float64
	ViewportHeight float64
	MinDwell       float64 // Minimum time per region (seconds)
	MaxDwell       float64 // Maximum time per region (seconds)
	Intro          float64 // Full view before the first region
	Outro          float64 // Reserved after the last region
	Padding        float64 // Fraction of the viewport a region may fill
	MaxZoom        float64
	RowThreshold   float64 // Regions whose tops differ less than this share a row
}

// NewDirector creates a new Director with default settings
func NewDirector(viewportWidth, viewportHeight float64) *Director {
	return &Director{
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
		MinDwell:       1.0,
		MaxDwell:       3.0,
		Intro:          1.0,
		Outro:          1.0,
		Padding:        0.9,
		MaxZoom:        3.0,
		RowThreshold:   20,
	}
}

// Plan creates camera keyframes visiting every region within totalDuration
func (d *Director) Plan(regions []Region, totalDuration float64) ([]camera.Keyframe, error) {
	if len(regions) == 0 {
		return nil, errors.New("no regions to visit")
	}
	if !(totalDuration > 0) {
		return nil, fmt.Errorf("tour duration must be positive, got %v", totalDuration)
	}
	if !(d.ViewportWidth > 0) || !(d.ViewportHeight > 0) {
		return nil, fmt.Errorf("viewport must be positive, got %vx%v", d.ViewportWidth, d.ViewportHeight)
	}
	if d.MinDwell > d.MaxDwell {
		return nil, fmt.Errorf("min dwell %v exceeds max dwell %v", d.MinDwell, d.MaxDwell)
	}
	for i, r := range regions {
		if r.W < 0 || r.H < 0 {
			return nil, fmt.Errorf("region %d (%q): negative size %vx%v", i, r.Name, r.W, r.H)
		}
	}

	sorted := d.sortRegions(regions)
	dwell := d.dwellTime(totalDuration, len(sorted))

	full := camera.Keyframe{X: d.ViewportWidth / 2, Y: d.ViewportHeight / 2, Zoom: 1}

	keyframes := make([]camera.Keyframe, 0, len(sorted)+2)
	start := full
	start.Name = StartName
	keyframes = append(keyframes, start)

	currentTime := d.Intro
	if !(currentTime > 0) {
		currentTime = dwell
	}
	for i, r := range sorted {
		name := r.Name
		if name == "" {
			name = fmt.Sprintf("region_%d", i+1)
		}
		keyframes = append(keyframes, camera.Keyframe{
			Time: currentTime,
			Name: name,
			X:    r.X + r.W/2,
			Y:    r.Y + r.H/2,
			Zoom: d.zoomFor(r),
		})
		currentTime += dwell
	}

	end := full
	end.Time = currentTime
	end.Name = EndName
	keyframes = append(keyframes, end)
	return keyframes, nil
}

// sortRegions orders regions top-to-bottom, left-to-right
func (d *Director) sortRegions(regions []Region) []Region {
	sorted := make([]Region, len(regions))
	copy(sorted, regions)

	sort.SliceStable(sorted, func(i, j int) bool {
		if math.Abs(sorted[i].Y-sorted[j].Y) > d.RowThreshold {
			return sorted[i].Y < sorted[j].Y
		}
		// Same row
		return sorted[i].X < sorted[j].X
	})
	return sorted
}

// dwellTime determines how long to show each region
func (d *Director) dwellTime(totalDuration float64, count int) float64 {
	available := totalDuration - d.Intro - d.Outro
	if available <= 0 {
		available = totalDuration
	}

	dwell := available / float64(count)
	return math.Min(math.Max(dwell, d.MinDwell), d.MaxDwell)
}

// zoomFor fits a region into the padded viewport
func (d *Director) zoomFor(r Region) float64 {
	if r.W == 0 || r.H == 0 {
		return 1.0
	}

	scaleX := d.ViewportWidth * d.Padding / r.W
	scaleY := d.ViewportHeight * d.Padding / r.H

	// The smaller scale keeps the whole region visible
	zoom := math.Min(scaleX, scaleY)
	return math.Min(math.Max(zoom, 1.0), d.MaxZoom)
}
