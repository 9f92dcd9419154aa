package animation

import (
	"github.com/ivlev/motioncam/internal/easing"
	"github.com/ivlev/motioncam/internal/spring"
)

// Channels are the resolved animation values of one element
type Channels struct {
	Opacity    float64
	TranslateX float64
	TranslateY float64
	Scale      float64
	Rotation   float64
	Blur       float64
}

// Resolve returns the channel values of spec at local elapsed seconds.
// Negative local time resolves to the start state.
func Resolve(spec Spec, local, fps float64) Channels {
	switch spec.Kind {
	case KindPop:
		return resolvePop(spec, local, fps)
	case KindSlide:
		return resolveSlide(spec, local, fps)
	case KindZoom:
		return resolveZoom(spec, local, fps)
	case KindSpin:
		return resolveSpin(spec, local, fps)
	case KindArrow:
		return resolveArrow(spec, local, fps)
	case KindScale:
		return resolveScale(spec, local, fps)
	default:
		return resolveCustom(spec, local, fps)
	}
}

// Rest returns the channel values once the entrance has finished
func Rest(spec Spec) Channels {
	return Channels{Opacity: 1, Scale: 1, Rotation: spec.FinalRotation}
}

// resolvePop: springy scale-up; blur clears with the opacity ramp so the
// element is sharp as soon as it is visible
func resolvePop(spec Spec, local, fps float64) Channels {
	p := progress(spec.Motion, Motion{Spring: &popSpring}, local, fps)
	c := travel(spec, p)
	c.Rotation = spec.FinalRotation
	c.Opacity = opacity(spec, OpacityRamp, p, local)
	c.Blur = easing.Lerp(spec.From.Blur, 0, rampProgress(spec, local))
	return c
}

// resolveSlide: translate in on a spring, fading with the motion
func resolveSlide(spec Spec, local, fps float64) Channels {
	p := progress(spec.Motion, Motion{Spring: &slideSpring}, local, fps)
	return Channels{
		Opacity:    opacity(spec, OpacityTrack, p, local),
		TranslateX: easing.Lerp(spec.From.TranslateX, 0, p),
		TranslateY: easing.Lerp(spec.From.TranslateY, 0, p),
		Scale:      1,
		Rotation:   spec.FinalRotation,
		Blur:       easing.Lerp(spec.From.Blur, 0, clamp01(p)),
	}
}

// resolveZoom: back-out eased scale with overshoot. Position and blur use the
// clamped progress so only the scale overshoots.
func resolveZoom(spec Spec, local, fps float64) Channels {
	p := progress(spec.Motion, zoomMotion, local, fps)
	c := travel(spec, clamp01(p))
	c.Scale = easing.Lerp(spec.From.Scale, 1, p)
	c.Rotation = spec.FinalRotation
	c.Opacity = opacity(spec, OpacityRamp, p, local)
	return c
}

// resolveSpin: rotation and scale share one spring
func resolveSpin(spec Spec, local, fps float64) Channels {
	p := progress(spec.Motion, Motion{Spring: &spinSpring}, local, fps)
	c := travel(spec, p)
	c.Opacity = opacity(spec, OpacityTrack, p, local)
	return c
}

// resolveArrow: eased draw-in along its translate offset. Arrows keep their
// size and are never blurred.
func resolveArrow(spec Spec, local, fps float64) Channels {
	p := progress(spec.Motion, arrowMotion, local, fps)
	return Channels{
		Opacity:    opacity(spec, OpacityRamp, p, local),
		TranslateX: easing.Lerp(spec.From.TranslateX, 0, p),
		TranslateY: easing.Lerp(spec.From.TranslateY, 0, p),
		Scale:      1,
		Rotation:   spec.FinalRotation,
	}
}

// resolveScale: scale only, opacity follows the spring
func resolveScale(spec Spec, local, fps float64) Channels {
	p := progress(spec.Motion, Motion{Spring: &scaleSpring}, local, fps)
	return Channels{
		Opacity:  opacity(spec, OpacityTrack, p, local),
		Scale:    easing.Lerp(spec.From.Scale, 1, p),
		Rotation: spec.FinalRotation,
	}
}

// resolveCustom: every channel from the configured motion
func resolveCustom(spec Spec, local, fps float64) Channels {
	p := progress(spec.Motion, Motion{Spring: &scaleSpring}, local, fps)
	c := travel(spec, p)
	c.Opacity = opacity(spec, OpacityTrack, p, local)
	return c
}

// travel moves every channel from spec.From towards rest by p.
// Blur never overshoots below zero.
func travel(spec Spec, p float64) Channels {
	return Channels{
		TranslateX: easing.Lerp(spec.From.TranslateX, 0, p),
		TranslateY: easing.Lerp(spec.From.TranslateY, 0, p),
		Scale:      easing.Lerp(spec.From.Scale, 1, p),
		Rotation:   easing.Lerp(spec.From.Rotation, spec.FinalRotation, p),
		Blur:       easing.Lerp(spec.From.Blur, 0, clamp01(p)),
	}
}

// progress evaluates m (or fallback when m is unset) at local seconds
func progress(m, fallback Motion, local, fps float64) float64 {
	if m.isZero() {
		m = fallback
	}
	if !(local > 0) {
		return 0
	}
	if m.Spring != nil {
		return spring.ValueAt(local, fps, *m.Spring)
	}
	if m.Duration <= 0 {
		return 1
	}
	return m.Curve.Ease(local / m.Duration)
}

func opacity(spec Spec, kindMode OpacityMode, p, local float64) float64 {
	mode := spec.Opacity
	if mode == OpacityDefault {
		mode = kindMode
	}
	if mode == OpacityRamp {
		return rampProgress(spec, local)
	}
	return clamp01(p)
}

// rampProgress is the linear ramp over the opacity window, in [0,1]
func rampProgress(spec Spec, local float64) float64 {
	window := spec.OpacityWindow
	if window == 0 {
		window = DefaultRampWindow
	}
	return clamp01(local / window)
}

func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
