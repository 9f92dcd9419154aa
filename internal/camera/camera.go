package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/ivlev/motioncam/internal/easing"
	"github.com/ivlev/motioncam/internal/keyframe"
)

var (
	// ErrZoom is returned for keyframes with a non-positive zoom
	ErrZoom = errors.New("camera zoom must be positive")
	// ErrTime is returned for keyframes placed before time zero
	ErrTime = errors.New("camera keyframe time must not be negative")
)

// Pose is the camera position and zoom at a specific moment
type Pose struct {
	X     float64 // Look-at X in world units
	Y     float64 // Look-at Y in world units
	Scale float64 // Zoom level (1.0 = no zoom)
}

func (p Pose) Lerp(to Pose, t float64) Pose {
	return Pose{
		X:     easing.Lerp(p.X, to.X, t),
		Y:     easing.Lerp(p.Y, to.Y, t),
		Scale: easing.Lerp(p.Scale, to.Scale, t),
	}
}

// Keyframe represents a camera position at a specific time
type Keyframe struct {
	Time float64 // Time offset in seconds
	Name string  // Optional anchor name, published as event "camera.<name>"
	X    float64
	Y    float64
	Zoom float64
}

// Path is an immutable camera keyframe path eased with cubic-in-out
type Path struct {
	track   *keyframe.Track[Pose]
	anchors map[string]float64
}

// NewPath validates keyframes and builds a path
func NewPath(keyframes []Keyframe) (*Path, error) {
	return NewPathWithCurve(keyframes, easing.CubicInOut)
}

// NewPathWithCurve builds a path using a custom segment easing
func NewPathWithCurve(keyframes []Keyframe, curve easing.Curve) (*Path, error) {
	frames := make([]keyframe.Keyframe[Pose], len(keyframes))
	anchors := make(map[string]float64)
	for i, kf := range keyframes {
		if kf.Time < 0 {
			return nil, fmt.Errorf("camera keyframe %d: %w (time=%v)", i, ErrTime, kf.Time)
		}
		if !(kf.Zoom > 0) || math.IsInf(kf.Zoom, 0) {
			return nil, fmt.Errorf("camera keyframe %d: %w (zoom=%v)", i, ErrZoom, kf.Zoom)
		}
		if kf.Name != "" {
			if _, dup := anchors[kf.Name]; dup {
				return nil, fmt.Errorf("camera keyframe %d: duplicate name %q", i, kf.Name)
			}
			anchors[kf.Name] = kf.Time
		}
		frames[i] = keyframe.Keyframe[Pose]{
			Time:  kf.Time,
			Value: Pose{X: kf.X, Y: kf.Y, Scale: kf.Zoom},
		}
	}

	track, err := keyframe.NewTrack(curve, frames...)
	if err != nil {
		return nil, fmt.Errorf("camera path: %w", err)
	}
	return &Path{track: track, anchors: anchors}, nil
}

// Query returns the camera pose at the given time
func (p *Path) Query(time float64) Pose {
	return p.track.At(time)
}

// Anchors returns the named keyframe times
func (p *Path) Anchors() map[string]float64 {
	out := make(map[string]float64, len(p.anchors))
	for k, v := range p.anchors {
		out[k] = v
	}
	return out
}

// Keyframes returns a copy of the path's keyframes with their anchor names
func (p *Path) Keyframes() []Keyframe {
	names := make(map[float64]string, len(p.anchors))
	for name, t := range p.anchors {
		names[t] = name
	}
	out := make([]Keyframe, p.track.Len())
	for i := range out {
		kf := p.track.Keyframe(i)
		out[i] = Keyframe{Time: kf.Time, Name: names[kf.Time], X: kf.Value.X, Y: kf.Value.Y, Zoom: kf.Value.Scale}
	}
	return out
}

// Duration returns the time of the last keyframe
func (p *Path) Duration() float64 {
	return p.track.End()
}

// Static returns a path that holds a single pose forever
func Static(pose Pose) *Path {
	track, _ := keyframe.NewTrack(easing.Linear, keyframe.Keyframe[Pose]{Value: pose})
	return &Path{track: track, anchors: map[string]float64{}}
}
