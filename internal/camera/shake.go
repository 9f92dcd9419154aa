package camera

import "math"

// Shake is a deterministic handheld-camera jitter.
// Each axis sums two sines with unrelated frequencies and phases, so the
// motion never reads as a single uniform wobble.
type Shake struct {
	// Amplitude in screen pixels at zoom 1. Zero disables the shake.
	Amplitude float64
	// Frequency of the primary component in Hz; the secondary runs at
	// Frequency*secondaryRatio.
	Frequency float64
}

const (
	secondaryRatio  = 2.371
	secondaryWeight = 0.35
)

// Per-axis phases keep X and Y decorrelated.
var (
	phaseX = [2]float64{0.0, 1.913}
	phaseY = [2]float64{2.417, 0.611}
)

// DefaultShake is a subtle shake suitable for slow camera moves
func DefaultShake() Shake {
	return Shake{Amplitude: 1.5, Frequency: 0.7}
}

// Offset returns the jitter at the given absolute time.
// The amplitude shrinks with zoom so the on-screen jitter stays constant
// once the offset is added after zoom scaling.
func (s Shake) Offset(time, zoom float64) (dx, dy float64) {
	if s.Amplitude == 0 || !(zoom > 0) || math.IsNaN(time) || math.IsInf(time, 0) {
		return 0, 0
	}
	amp := s.Amplitude / zoom
	w := 2 * math.Pi * s.Frequency

	dx = amp * (math.Sin(w*time+phaseX[0]) + secondaryWeight*math.Sin(w*secondaryRatio*time+phaseX[1]))
	dy = amp * (math.Sin(w*1.137*time+phaseY[0]) + secondaryWeight*math.Sin(w*secondaryRatio*0.913*time+phaseY[1]))
	return dx, dy
}

// Bound returns the largest absolute offset per axis at the given zoom
func (s Shake) Bound(zoom float64) float64 {
	if !(zoom > 0) {
		return 0
	}
	return math.Abs(s.Amplitude) / zoom * (1 + secondaryWeight)
}
