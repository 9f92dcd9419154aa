// Package scene turns a declarative scene file into an immutable, time-pure
// evaluator of camera and element state.
package scene

import (
	"github.com/ivlev/motioncam/internal/animation"
	"github.com/ivlev/motioncam/internal/camera"
	"github.com/ivlev/motioncam/internal/compose"
	"github.com/ivlev/motioncam/internal/timebase"
	"github.com/ivlev/motioncam/internal/timeline"
)

type castMember struct {
	spec    animation.Spec
	anchorX float64
	anchorY float64
}

// Scene is a validated scene. It holds no mutable state, so Evaluate may be
// called concurrently and in any order.
type Scene struct {
	fps      timebase.Rate
	viewport compose.Viewport
	path     *camera.Path
	shake    camera.Shake
	sched    *timeline.Scheduler
	cast     []castMember
	duration float64
}

// Evaluate returns the composed frame at global time t (seconds)
func (s *Scene) Evaluate(t float64) compose.Frame {
	pose := s.path.Query(t)
	dx, dy := s.shake.Offset(t, pose.Scale)
	snap := s.sched.Resolve(t)

	elements := make([]compose.Element, len(snap.Elements))
	for i, st := range snap.Elements {
		m := s.cast[i]
		el := compose.Element{ID: st.ID, AnchorX: m.anchorX, AnchorY: m.anchorY}
		elements[i] = el

		if !st.Active {
			continue
		}
		ch := animation.Resolve(m.spec, st.Local, float64(s.fps))
		if st.Group >= 0 {
			g := snap.Groups[st.Group]
			if g.Phase == timeline.PhaseRetired {
				continue
			}
			ch.Opacity *= g.Opacity
			ch.Blur += g.Blur
		}
		elements[i].Active = true
		elements[i].Channels = ch
	}

	frame := compose.Compose(s.viewport, pose, dx, dy, elements)
	frame.Time = t
	return frame
}

// EvaluateFrame evaluates the frame with index n at the scene frame rate
func (s *Scene) EvaluateFrame(n int) compose.Frame {
	return s.Evaluate(s.fps.Seconds(float64(n)))
}

// Schedule returns the raw scheduling state at time t
func (s *Scene) Schedule(t float64) timeline.Snapshot {
	return s.sched.Resolve(t)
}

// Camera returns the camera pose at time t, without shake
func (s *Scene) Camera(t float64) camera.Pose {
	return s.path.Query(t)
}

// Entry returns the resolved entry time of an element
func (s *Scene) Entry(id string) (float64, bool) {
	return s.sched.Entry(id)
}

// Event returns the resolved time of any named event
func (s *Scene) Event(id string) (float64, bool) {
	return s.sched.Event(id)
}

// Spec returns the animation spec of an element
func (s *Scene) Spec(id string) (animation.Spec, bool) {
	i, ok := s.sched.Index(id)
	if !ok {
		return animation.Spec{}, false
	}
	return s.cast[i].spec, true
}

// IDs lists element ids in evaluation order
func (s *Scene) IDs() []string {
	ids := make([]string, len(s.cast))
	for i, m := range s.cast {
		ids[i] = m.spec.ID
	}
	return ids
}

func (s *Scene) FPS() timebase.Rate { return s.fps }

func (s *Scene) Viewport() compose.Viewport { return s.viewport }

// Duration is the explicit scene length, or the last event plus one second
func (s *Scene) Duration() float64 { return s.duration }

func (s *Scene) Shake() camera.Shake { return s.shake }

// Keyframes returns the camera keyframes
func (s *Scene) Keyframes() []camera.Keyframe {
	return s.path.Keyframes()
}

// FrameCount is the number of frames covering the scene duration
func (s *Scene) FrameCount() int {
	return s.fps.FrameIndex(s.duration) + 1
}
