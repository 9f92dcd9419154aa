package keyframe

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/ivlev/motioncam/internal/easing"
)

var (
	// ErrEmpty is returned when a track has no keyframes
	ErrEmpty = errors.New("track needs at least one keyframe")
	// ErrOrder is returned when keyframe times are not strictly increasing
	ErrOrder = errors.New("keyframe times must be strictly increasing")
)

// Lerper is any value that can be interpolated toward another value of its type
type Lerper[V any] interface {
	Lerp(to V, t float64) V
}

// Keyframe anchors a value at a time (seconds)
type Keyframe[V Lerper[V]] struct {
	Time  float64
	Value V
}

// Track is an ordered, immutable keyframe path
type Track[V Lerper[V]] struct {
	frames []Keyframe[V]
	curve  easing.Curve
}

// NewTrack validates the keyframes and builds a track eased with curve.
// The slice is copied; later changes by the caller do not affect the track.
func NewTrack[V Lerper[V]](curve easing.Curve, frames ...Keyframe[V]) (*Track[V], error) {
	if len(frames) == 0 {
		return nil, ErrEmpty
	}
	for i, kf := range frames {
		if math.IsNaN(kf.Time) || math.IsInf(kf.Time, 0) {
			return nil, fmt.Errorf("keyframe %d: invalid time %v", i, kf.Time)
		}
		if i > 0 && !(kf.Time > frames[i-1].Time) {
			return nil, fmt.Errorf("keyframe %d at %.4fs (previous %.4fs): %w", i, kf.Time, frames[i-1].Time, ErrOrder)
		}
	}

	owned := make([]Keyframe[V], len(frames))
	copy(owned, frames)
	return &Track[V]{frames: owned, curve: curve}, nil
}

// At returns the value at the given time.
// Outside the keyframe range the boundary value is returned verbatim.
func (tr *Track[V]) At(time float64) V {
	return Interpolate(tr.frames, tr.curve, time)
}

// Len returns the number of keyframes
func (tr *Track[V]) Len() int {
	return len(tr.frames)
}

// Keyframe returns the i-th keyframe
func (tr *Track[V]) Keyframe(i int) Keyframe[V] {
	return tr.frames[i]
}

// Start returns the time of the first keyframe
func (tr *Track[V]) Start() float64 {
	return tr.frames[0].Time
}

// End returns the time of the last keyframe
func (tr *Track[V]) End() float64 {
	return tr.frames[len(tr.frames)-1].Time
}

// Interpolate evaluates an ordered keyframe slice at the given time.
// It is the unchecked form of Track.At; frames must not be empty.
func Interpolate[V Lerper[V]](frames []Keyframe[V], curve easing.Curve, time float64) V {
	first := frames[0]
	if !(time > first.Time) {
		return first.Value
	}
	last := frames[len(frames)-1]
	if time >= last.Time {
		return last.Value
	}

	// First keyframe strictly after time; the bracket is [i-1, i).
	i := sort.Search(len(frames), func(i int) bool {
		return frames[i].Time > time
	})
	prev, next := frames[i-1], frames[i]

	span := next.Time - prev.Time
	if span <= 0 {
		return next.Value
	}
	t := curve.Ease((time - prev.Time) / span)

	return prev.Value.Lerp(next.Value, t)
}

// Scalar is a single-channel keyframe value
type Scalar float64

func (s Scalar) Lerp(to Scalar, t float64) Scalar {
	return Scalar(easing.Lerp(float64(s), float64(to), t))
}

// Vector is an N-channel keyframe value. Both ends must have the same length.
// Values returned at the track boundaries share storage with the track and
// must not be modified.
type Vector []float64

func (v Vector) Lerp(to Vector, t float64) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = easing.Lerp(v[i], to[i], t)
	}
	return out
}
