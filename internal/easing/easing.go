// Package easing remaps normalized animation progress onto motion curves.
//
// Every curve maps 0 to 0 and 1 to 1. Progress outside [0,1] is clamped
// before remapping; curves such as BackOut may leave [0,1] in between and the
// overshoot is returned as is.
package easing

import (
	"fmt"
	"math"
	"strings"
)

type kind uint8

const (
	kindLinear kind = iota
	kindCubicIn
	kindCubicOut
	kindCubicInOut
	kindBackOut
	kindQuadIn
	kindQuadOut
	kindExpoOut
)

// DefaultBackTension is the classic overshoot constant (about 10% overshoot)
const DefaultBackTension = 1.70158

// Curve identifies an easing function. The zero value is Linear.
type Curve struct {
	kind    kind
	tension float64
}

var (
	Linear     = Curve{kind: kindLinear}
	CubicIn    = Curve{kind: kindCubicIn}
	CubicOut   = Curve{kind: kindCubicOut}
	CubicInOut = Curve{kind: kindCubicInOut}
	QuadIn     = Curve{kind: kindQuadIn}
	QuadOut    = Curve{kind: kindQuadOut}
	ExpoOut    = Curve{kind: kindExpoOut}
)

// BackOut returns an ease-out curve that overshoots 1 before settling.
// Larger tension means a larger overshoot; tension 0 degrades to CubicOut.
func BackOut(tension float64) Curve {
	return Curve{kind: kindBackOut, tension: tension}
}

// Ease applies curve c to progress p
func Ease(c Curve, p float64) float64 {
	return c.Ease(p)
}

// Ease applies the curve to progress p
func (c Curve) Ease(p float64) float64 {
	// NaN compares false everywhere; treat it as the start.
	if !(p > 0) {
		return 0
	}
	if p >= 1 {
		return 1
	}

	switch c.kind {
	case kindCubicIn:
		return p * p * p
	case kindCubicOut:
		q := 1 - p
		return 1 - q*q*q
	case kindCubicInOut:
		return easeInOutCubic(p)
	case kindBackOut:
		s := c.tension
		q := p - 1
		return 1 + (s+1)*q*q*q + s*q*q
	case kindQuadIn:
		return p * p
	case kindQuadOut:
		return 1 - (1-p)*(1-p)
	case kindExpoOut:
		return 1 - math.Pow(2, -10*p)
	default:
		return p
	}
}

// Tension returns the overshoot tension of a BackOut curve, zero otherwise
func (c Curve) Tension() float64 {
	return c.tension
}

func (c Curve) String() string {
	switch c.kind {
	case kindCubicIn:
		return "cubic-in"
	case kindCubicOut:
		return "cubic-out"
	case kindCubicInOut:
		return "cubic-in-out"
	case kindBackOut:
		return "back-out"
	case kindQuadIn:
		return "quad-in"
	case kindQuadOut:
		return "quad-out"
	case kindExpoOut:
		return "expo-out"
	default:
		return "linear"
	}
}

// ParseCurve maps a configuration name to a curve. BackOut parsed this way
// uses DefaultBackTension; use BackOut directly for a custom tension.
func ParseCurve(name string) (Curve, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "linear":
		return Linear, nil
	case "cubic-in":
		return CubicIn, nil
	case "cubic-out":
		return CubicOut, nil
	case "cubic-in-out":
		return CubicInOut, nil
	case "back-out", "back":
		return BackOut(DefaultBackTension), nil
	case "quad-in":
		return QuadIn, nil
	case "quad-out":
		return QuadOut, nil
	case "expo-out":
		return ExpoOut, nil
	default:
		return Linear, fmt.Errorf("unknown easing curve: %q", name)
	}
}

// Lerp performs linear interpolation between a and b.
// It returns exactly a at t=0 and exactly b at t=1.
func Lerp(a, b, t float64) float64 {
	return (1-t)*a + t*b
}

// easeInOutCubic is slow at both ends and symmetric around 0.5
func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	q := -2*t + 2
	return 1 - q*q*q/2
}
