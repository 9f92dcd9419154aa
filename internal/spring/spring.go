// Package spring evaluates a damped spring settling from 0 to 1 in closed form.
//
// The curve is the analytic step response of a mass-spring-damper with zero
// initial velocity, taken from harmonica with a time step equal to the
// elapsed time. Any frame can be evaluated directly and nothing is retained
// between calls.
package spring

import (
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/harmonica"
)

// ErrParam is returned for non-positive spring parameters
var ErrParam = errors.New("spring parameters must be positive")

const (
	// settleEpsilon bounds |1-x| after SettleTime
	settleEpsilon = 1e-3
	// criticalBand is the damping-ratio window treated as critically damped
	criticalBand = 1e-6
	// criticalEnvelope is max over u of (1+u)*exp(-u/2), reached at u=1
	criticalEnvelope = 1.2130613194252668
)

// Config describes the virtual oscillator
type Config struct {
	Damping   float64 `yaml:"damping" toml:"damping"`
	Stiffness float64 `yaml:"stiffness" toml:"stiffness"`
	Mass      float64 `yaml:"mass" toml:"mass"`
	// OvershootClamping caps the output at 1
	OvershootClamping bool `yaml:"overshoot_clamping,omitempty" toml:"overshoot_clamping,omitempty"`
}

// Validate checks that damping, stiffness and mass are positive
func (c Config) Validate() error {
	if !(c.Damping > 0) {
		return fmt.Errorf("%w: damping=%v", ErrParam, c.Damping)
	}
	if !(c.Stiffness > 0) {
		return fmt.Errorf("%w: stiffness=%v", ErrParam, c.Stiffness)
	}
	if !(c.Mass > 0) {
		return fmt.Errorf("%w: mass=%v", ErrParam, c.Mass)
	}
	return nil
}

// DampingRatio returns zeta = c / (2*sqrt(k*m))
func (c Config) DampingRatio() float64 {
	return c.Damping / (2 * math.Sqrt(c.Stiffness*c.Mass))
}

// NaturalFrequency returns omega0 = sqrt(k/m) in radians per second
func (c Config) NaturalFrequency() float64 {
	return math.Sqrt(c.Stiffness / c.Mass)
}

// Underdamped reports whether the spring overshoots its rest value
func (c Config) Underdamped() bool {
	return c.DampingRatio() < 1-criticalBand
}

// SettleTime returns the elapsed seconds after which Value is exactly 1.
// It is where the analytic envelope of the residual drops below 1e-3.
func SettleTime(c Config) float64 {
	zeta := c.DampingRatio()
	w0 := c.NaturalFrequency()

	switch {
	case zeta < 1-criticalBand:
		// |1-x| <= exp(-zeta*w0*t) / sqrt(1-zeta^2)
		amp := 1 / math.Sqrt(1-zeta*zeta)
		return math.Log(amp/settleEpsilon) / (zeta * w0)
	case zeta <= 1+criticalBand:
		// (1+u)exp(-u) <= criticalEnvelope*exp(-u/2)
		return 2 * math.Log(criticalEnvelope/settleEpsilon) / w0
	default:
		// decay rates of the two real modes, slow first
		root := math.Sqrt(zeta*zeta - 1)
		slow, fast := w0*(zeta-root), w0*(zeta+root)
		return math.Log(fast/((fast-slow)*settleEpsilon)) / slow
	}
}

// Value returns the settling value at the given elapsed frame.
// It is exactly 0 for frame <= 0 and exactly 1 from SettleTime on.
func Value(frame, fps float64, c Config) float64 {
	if !(frame > 0) || !(fps > 0) {
		return 0
	}
	t := frame / fps
	if t >= SettleTime(c) {
		return 1
	}

	// A spring built for the whole elapsed time steps from rest at 0 to t in one update.
	s := harmonica.NewSpring(t, c.NaturalFrequency(), c.DampingRatio())
	v, _ := s.Update(0, 0, 1)
	if c.OvershootClamping && v > 1 {
		return 1
	}
	return v
}

// ValueAt is Value with elapsed time expressed in seconds
func ValueAt(seconds, fps float64, c Config) float64 {
	return Value(seconds*fps, fps, c)
}
