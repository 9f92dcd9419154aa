package animation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ivlev/motioncam/internal/easing"
	"github.com/ivlev/motioncam/internal/spring"
)

// ErrKind is returned for an unknown animation kind
var ErrKind = errors.New("unknown animation kind")

// Kind is the closed set of entrance behaviours
type Kind uint8

const (
	KindPop Kind = iota
	KindSlide
	KindZoom
	KindSpin
	KindArrow
	KindScale
	KindCustom
	kindCount
)

var kindNames = [kindCount]string{"pop", "slide", "zoom", "spin", "arrow", "scale", "custom"}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind maps a configuration name to a kind
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrKind, name)
}

// OpacityMode selects how opacity follows the entrance
type OpacityMode uint8

const (
	// OpacityDefault uses the kind's own mode
	OpacityDefault OpacityMode = iota
	// OpacityTrack follows the dominant motion progress, clamped to [0,1]
	OpacityTrack
	// OpacityRamp is a fast linear ramp over a short fixed window
	OpacityRamp
)

// DefaultRampWindow is the ramp length used when none is configured
const DefaultRampWindow = 0.15

// ParseOpacityMode maps a configuration name to a mode
func ParseOpacityMode(name string) (OpacityMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return OpacityDefault, nil
	case "track", "spring":
		return OpacityTrack, nil
	case "ramp", "instant":
		return OpacityRamp, nil
	default:
		return OpacityDefault, fmt.Errorf("unknown opacity mode: %q", name)
	}
}

// Motion drives progress either with a spring or with an easing curve over
// a fixed duration. A nil Spring and zero Duration mean "use the kind default".
type Motion struct {
	Spring   *spring.Config
	Curve    easing.Curve
	Duration float64
}

func (m Motion) isZero() bool {
	return m.Spring == nil && m.Duration == 0
}

// Start holds the channel values at the beginning of an entrance.
// Every channel travels to its rest value: translate 0, scale 1,
// rotation FinalRotation, blur 0.
type Start struct {
	TranslateX float64
	TranslateY float64
	Scale      float64
	Rotation   float64
	Blur       float64
}

// Spec is the declarative description of one element's entrance
type Spec struct {
	ID            string
	Kind          Kind
	Motion        Motion
	From          Start
	FinalRotation float64
	Opacity       OpacityMode
	OpacityWindow float64
}

// Validate checks the spec for configuration errors
func (s Spec) Validate() error {
	if s.Kind >= kindCount {
		return fmt.Errorf("%w: %d", ErrKind, uint8(s.Kind))
	}
	if s.Kind == KindCustom && s.Motion.isZero() {
		return errors.New("custom animation needs an explicit spring or duration")
	}
	if s.Motion.Spring != nil {
		if err := s.Motion.Spring.Validate(); err != nil {
			return err
		}
	}
	if s.Motion.Duration < 0 {
		return fmt.Errorf("motion duration %v must not be negative", s.Motion.Duration)
	}
	if s.OpacityWindow < 0 {
		return fmt.Errorf("opacity window %v must not be negative", s.OpacityWindow)
	}
	if s.Opacity > OpacityRamp {
		return fmt.Errorf("unknown opacity mode %d", s.Opacity)
	}
	return nil
}

// Defaults returns a spec with the kind's default start values and motion
func Defaults(kind Kind) Spec {
	s := Spec{Kind: kind, From: Start{Scale: 1}}
	switch kind {
	case KindPop:
		s.From.Scale = 0.6
		s.From.Blur = 6
	case KindSlide:
		s.From.TranslateY = 40
		s.From.Blur = 8
	case KindZoom:
		s.From.Scale = 0.3
		s.From.Blur = 10
	case KindSpin:
		s.From.Rotation = -90
		s.From.Scale = 0.5
	case KindArrow:
		s.From.TranslateX = -60
	case KindScale:
		s.From.Scale = 0
	}
	return s
}

// Defaults for each kind's motion and opacity
var (
	popSpring   = spring.Config{Damping: 12, Stiffness: 180, Mass: 0.6}
	slideSpring = spring.Config{Damping: 20, Stiffness: 120, Mass: 1}
	spinSpring  = spring.Config{Damping: 14, Stiffness: 90, Mass: 1}
	scaleSpring = spring.Config{Damping: 10, Stiffness: 100, Mass: 1}

	zoomMotion  = Motion{Curve: easing.BackOut(easing.DefaultBackTension), Duration: 0.6}
	arrowMotion = Motion{Curve: easing.CubicOut, Duration: 0.5}
)
