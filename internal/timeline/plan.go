// Package timeline maps global time to per-element local time.
//
// A Plan declares free elements and phase groups. Entry times are either fixed
// or triggered relative to another event (another element, a group, a group
// exit, or an external anchor such as a camera keyframe). NewScheduler resolves
// every trigger once, in dependency order, and Resolve is then a pure
// function of global time.
package timeline

import "errors"

var (
	// ErrUnknownEvent is returned when a trigger references a missing event
	ErrUnknownEvent = errors.New("trigger references an unknown event")
	// ErrCycle is returned when triggers depend on each other in a loop
	ErrCycle = errors.New("trigger dependency cycle")
	// ErrDuplicate is returned when an id is declared twice
	ErrDuplicate = errors.New("duplicate id")
	// ErrNegative is returned for negative times or durations
	ErrNegative = errors.New("time must not be negative")
)

// Suffixes of the events published by groups with an exit
const (
	FadeEventSuffix = ".fade"
	EndEventSuffix  = ".end"
)

// Trigger places an entry relative to another event
type Trigger struct {
	Event  string
	Offset float64
}

// Element is a free-standing scheduled element
type Element struct {
	ID      string
	Entry   float64
	Trigger *Trigger
}

// Exit describes how a group leaves the stage
type Exit struct {
	PopDuration float64 // Time each member needs to finish entering
	Hold        float64
	Fade        float64
	MaxBlur     float64 // Blur reached at the end of the fade
	Grace       float64 // Delay after the fade before the group is retired
}

// Group is an ordered, staggered set of members sharing one start time
type Group struct {
	ID      string
	Start   float64
	Trigger *Trigger
	Stagger float64
	Members []string
	Exit    *Exit
}

// Plan is the declarative timeline of a scene
type Plan struct {
	Elements []Element
	Groups   []Group
	// Anchors are externally resolved events, e.g. "camera.zoom-in"
	Anchors map[string]float64
}
