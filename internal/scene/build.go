package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/ivlev/motioncam/internal/animation"
	"github.com/ivlev/motioncam/internal/camera"
	"github.com/ivlev/motioncam/internal/compose"
	"github.com/ivlev/motioncam/internal/director"
	"github.com/ivlev/motioncam/internal/easing"
	"github.com/ivlev/motioncam/internal/timebase"
	"github.com/ivlev/motioncam/internal/timeline"
)

// Defaults for optional document fields
const (
	DefaultFPS    = 30.0
	DefaultWidth  = 1920.0
	DefaultHeight = 1080.0
	DefaultGrace  = 0.1
	// CameraEventPrefix prefixes named camera keyframes in the event graph
	CameraEventPrefix = "camera."
	// tailPadding is added after the last event when duration is derived
	tailPadding = 1.0
)

// ConfigError identifies the part of a scene that failed validation
type ConfigError struct {
	Section string // e.g. "camera.keyframes", "elements", "groups"
	Index   int    // Position within the section, -1 when not applicable
	ID      string
	Err     error
}

func (e *ConfigError) Error() string {
	switch {
	case e.Index >= 0 && e.ID != "":
		return fmt.Sprintf("%s[%d] (%q): %v", e.Section, e.Index, e.ID, e.Err)
	case e.Index >= 0:
		return fmt.Sprintf("%s[%d]: %v", e.Section, e.Index, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Section, e.Err)
	}
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configErr(section string, index int, id string, err error) error {
	return &ConfigError{Section: section, Index: index, ID: id, Err: err}
}

// Build validates a document and returns an immutable scene.
// All configuration errors surface here; queries on the scene never fail.
func Build(doc *Document) (*Scene, error) {
	if doc == nil {
		return nil, configErr("scene", -1, "", errors.New("empty document"))
	}

	fps := timebase.Rate(DefaultFPS)
	if doc.FPS != nil {
		fps = timebase.Rate(*doc.FPS)
	}
	if err := fps.Validate(); err != nil {
		return nil, configErr("fps", -1, "", err)
	}

	vp := compose.Viewport{Width: DefaultWidth, Height: DefaultHeight}
	if doc.Viewport != nil {
		vp = compose.Viewport{Width: doc.Viewport.Width, Height: doc.Viewport.Height}
		if !(vp.Width > 0) || !(vp.Height > 0) {
			return nil, configErr("viewport", -1, "", fmt.Errorf("size must be positive, got %vx%v", vp.Width, vp.Height))
		}
	}

	path, shake, err := buildCamera(doc.Camera, vp)
	if err != nil {
		return nil, err
	}

	if !(doc.Duration >= 0) || math.IsInf(doc.Duration, 0) {
		return nil, configErr("duration", -1, "", fmt.Errorf("must be a non-negative number, got %v", doc.Duration))
	}

	plan := timeline.Plan{Anchors: make(map[string]float64)}
	for name, t := range path.Anchors() {
		plan.Anchors[CameraEventPrefix+name] = t
	}
	for name, t := range doc.Markers {
		if _, dup := plan.Anchors[name]; dup {
			return nil, configErr("markers", -1, name, errors.New("marker shadows a camera anchor"))
		}
		plan.Anchors[name] = t
	}

	var cast []castMember
	for i, el := range doc.Elements {
		spec, err := buildSpec(el)
		if err != nil {
			return nil, configErr("elements", i, el.ID, err)
		}
		entry, trig, err := buildEntry(el.Entry, el.Trigger)
		if err != nil {
			return nil, configErr("elements", i, el.ID, err)
		}
		plan.Elements = append(plan.Elements, timeline.Element{ID: el.ID, Entry: entry, Trigger: trig})
		cast = append(cast, castMember{spec: spec, anchorX: el.Anchor.X, anchorY: el.Anchor.Y})
	}

	for gi, g := range doc.Groups {
		group, members, err := buildGroup(g)
		if err != nil {
			return nil, configErr("groups", gi, g.ID, err)
		}
		plan.Groups = append(plan.Groups, group)
		cast = append(cast, members...)
	}

	sched, err := timeline.NewScheduler(plan)
	if err != nil {
		return nil, configErr("timeline", -1, "", err)
	}

	// Scheduler order is free elements then group members, the same as cast.
	for i, m := range cast {
		if idx, ok := sched.Index(m.spec.ID); !ok || idx != i {
			return nil, configErr("timeline", i, m.spec.ID, errors.New("element order mismatch"))
		}
	}

	duration := doc.Duration
	if duration == 0 {
		duration = math.Max(path.Duration(), sched.End()) + tailPadding
	}

	return &Scene{
		fps:      fps,
		viewport: vp,
		path:     path,
		shake:    shake,
		sched:    sched,
		cast:     cast,
		duration: duration,
	}, nil
}

func buildCamera(doc CameraDoc, vp compose.Viewport) (*camera.Path, camera.Shake, error) {
	curve := easing.CubicInOut
	if doc.Easing != "" {
		c, err := easing.ParseCurve(doc.Easing)
		if err != nil {
			return nil, camera.Shake{}, configErr("camera.easing", -1, "", err)
		}
		curve = c
	}

	var kfs []camera.Keyframe
	if doc.Tour != nil {
		if len(doc.Keyframes) > 0 {
			return nil, camera.Shake{}, configErr("camera", -1, "", errors.New("keyframes and tour are mutually exclusive"))
		}
		planned, err := planTour(*doc.Tour, vp)
		if err != nil {
			return nil, camera.Shake{}, configErr("camera.tour", -1, "", err)
		}
		kfs = planned
	} else {
		kfs = make([]camera.Keyframe, len(doc.Keyframes))
		for i, kf := range doc.Keyframes {
			kfs[i] = camera.Keyframe{Time: kf.Time, Name: kf.Name, X: kf.X, Y: kf.Y, Zoom: kf.Zoom}
		}
	}
	path, err := camera.NewPathWithCurve(kfs, curve)
	if err != nil {
		return nil, camera.Shake{}, configErr("camera.keyframes", -1, "", err)
	}

	var shake camera.Shake
	if doc.Shake != nil {
		if !(doc.Shake.Amplitude >= 0) || math.IsInf(doc.Shake.Amplitude, 0) {
			return nil, camera.Shake{}, configErr("camera.shake", -1, "", fmt.Errorf("amplitude must be a non-negative number, got %v", doc.Shake.Amplitude))
		}
		// A zero frequency would freeze the jitter into a constant offset.
		if doc.Shake.Amplitude > 0 && (!(doc.Shake.Frequency > 0) || math.IsInf(doc.Shake.Frequency, 0)) {
			return nil, camera.Shake{}, configErr("camera.shake", -1, "", fmt.Errorf("frequency must be positive when amplitude is set, got %v", doc.Shake.Frequency))
		}
		shake = camera.Shake{Amplitude: doc.Shake.Amplitude, Frequency: doc.Shake.Frequency}
	}
	return path, shake, nil
}

func planTour(doc TourDoc, vp compose.Viewport) ([]camera.Keyframe, error) {
	d := director.NewDirector(vp.Width, vp.Height)
	if doc.MinDwell != nil {
		d.MinDwell = *doc.MinDwell
	}
	if doc.MaxDwell != nil {
		d.MaxDwell = *doc.MaxDwell
	}
	if doc.MaxZoom != nil {
		if *doc.MaxZoom < 1 {
			return nil, fmt.Errorf("max zoom must be at least 1, got %v", *doc.MaxZoom)
		}
		d.MaxZoom = *doc.MaxZoom
	}

	regions := make([]director.Region, len(doc.Regions))
	for i, r := range doc.Regions {
		regions[i] = director.Region{Name: r.Name, X: r.X, Y: r.Y, W: r.W, H: r.H}
	}
	return d.Plan(regions, doc.Duration)
}

func buildEntry(entry *float64, trig *TriggerDoc) (float64, *timeline.Trigger, error) {
	if trig != nil {
		if entry != nil {
			return 0, nil, errors.New("entry and trigger are mutually exclusive")
		}
		if trig.Event == "" {
			return 0, nil, errors.New("trigger needs an event")
		}
		return 0, &timeline.Trigger{Event: trig.Event, Offset: trig.Offset}, nil
	}
	if entry == nil {
		return 0, nil, nil
	}
	return *entry, nil, nil
}

func buildGroup(g GroupDoc) (timeline.Group, []castMember, error) {
	start, trig, err := buildEntry(g.Start, g.Trigger)
	if err != nil {
		return timeline.Group{}, nil, err
	}
	group := timeline.Group{ID: g.ID, Start: start, Trigger: trig, Stagger: g.Stagger}

	if g.Exit != nil {
		grace := DefaultGrace
		if g.Exit.Grace != nil {
			grace = *g.Exit.Grace
		}
		group.Exit = &timeline.Exit{
			PopDuration: g.Exit.PopDuration,
			Hold:        g.Exit.Hold,
			Fade:        g.Exit.Fade,
			MaxBlur:     g.Exit.MaxBlur,
			Grace:       grace,
		}
	}

	members := make([]castMember, 0, len(g.Members))
	for mi, m := range g.Members {
		if m.Entry != nil || m.Trigger != nil {
			return timeline.Group{}, nil, fmt.Errorf("member %d (%q): entry is set by the group", mi, m.ID)
		}
		spec, err := buildSpec(m)
		if err != nil {
			return timeline.Group{}, nil, fmt.Errorf("member %d (%q): %w", mi, m.ID, err)
		}
		group.Members = append(group.Members, m.ID)
		members = append(members, castMember{spec: spec, anchorX: m.Anchor.X, anchorY: m.Anchor.Y})
	}
	return group, members, nil
}

func buildSpec(el ElementDoc) (animation.Spec, error) {
	if el.ID == "" {
		return animation.Spec{}, errors.New("missing id")
	}
	kind, err := animation.ParseKind(el.Kind)
	if err != nil {
		return animation.Spec{}, err
	}

	spec := animation.Defaults(kind)
	spec.ID = el.ID
	spec.FinalRotation = el.FinalRotation
	spec.OpacityWindow = el.OpacityWindow

	if spec.Opacity, err = animation.ParseOpacityMode(el.Opacity); err != nil {
		return animation.Spec{}, err
	}

	switch {
	case el.Spring != nil:
		if el.Easing != "" {
			return animation.Spec{}, errors.New("spring and easing are mutually exclusive")
		}
		cfg := *el.Spring
		spec.Motion = animation.Motion{Spring: &cfg}
	case el.Easing != "" || el.Duration != 0:
		curve, err := easing.ParseCurve(el.Easing)
		if err != nil {
			return animation.Spec{}, err
		}
		if el.Tension != nil {
			if curve.String() != "back-out" {
				return animation.Spec{}, fmt.Errorf("tension only applies to back-out, not %s", curve)
			}
			curve = easing.BackOut(*el.Tension)
		}
		if !(el.Duration > 0) {
			return animation.Spec{}, fmt.Errorf("easing %s needs a positive duration", curve)
		}
		spec.Motion = animation.Motion{Curve: curve, Duration: el.Duration}
	}

	applyFrom(&spec.From, el.From)
	if err := spec.Validate(); err != nil {
		return animation.Spec{}, err
	}
	return spec, nil
}

func applyFrom(dst *animation.Start, src FromDoc) {
	set := func(d *float64, s *float64) {
		if s != nil {
			*d = *s
		}
	}
	set(&dst.TranslateX, src.TranslateX)
	set(&dst.TranslateY, src.TranslateY)
	set(&dst.Scale, src.Scale)
	set(&dst.Rotation, src.Rotation)
	set(&dst.Blur, src.Blur)
}
