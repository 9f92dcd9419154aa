package timebase

import (
	"fmt"
	"math"
)

// Rate is a fixed frame rate in frames per second
type Rate float64

// Validate reports whether the rate can be used for a session
func (r Rate) Validate() error {
	if !(r > 0) || math.IsInf(float64(r), 0) {
		return fmt.Errorf("frame rate must be positive, got %v", float64(r))
	}
	return nil
}

// Seconds converts a (possibly fractional) frame position to seconds
func (r Rate) Seconds(frame float64) float64 {
	return frame / float64(r)
}

// Frame converts seconds to a fractional frame position
func (r Rate) Frame(seconds float64) float64 {
	return seconds * float64(r)
}

// FrameIndex converts seconds to the nearest whole frame.
// FrameIndex(Seconds(n)) == n for every integer n.
func (r Rate) FrameIndex(seconds float64) int {
	return int(math.Round(seconds * float64(r)))
}
