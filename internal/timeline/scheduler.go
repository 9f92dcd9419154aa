package timeline

import (
	"fmt"
	"math"
)

// Phase is the lifecycle stage of a group
type Phase uint8

const (
	PhasePending Phase = iota
	PhaseEntering
	PhaseHolding
	PhaseFading
	PhaseRetired
)

func (p Phase) String() string {
	switch p {
	case PhaseEntering:
		return "entering"
	case PhaseHolding:
		return "holding"
	case PhaseFading:
		return "fading"
	case PhaseRetired:
		return "retired"
	default:
		return "pending"
	}
}

// ElementState is the scheduling state of one element at a global time
type ElementState struct {
	ID     string
	Group  int // Index into Snapshot.Groups, -1 for free elements
	Active bool
	Entry  float64
	Local  float64 // Seconds since entry; 0 while inactive
}

// GroupState is the lifecycle state of one group at a global time
type GroupState struct {
	ID      string
	Phase   Phase
	Fade    float64 // Exit fade progress 0..1
	Opacity float64 // Multiplier applied to every member
	Blur    float64 // Blur added to every member
}

// Snapshot is the resolved schedule at one global time
type Snapshot struct {
	Time     float64
	Elements []ElementState
	Groups   []GroupState
}

type scheduledElement struct {
	id    string
	group int
	entry float64
}

type groupTiming struct {
	id        string
	start     float64
	holdStart float64
	fadeStart float64
	fadeEnd   float64
	retire    float64
	exit      *Exit
}

// Scheduler holds the resolved, immutable entry times of a plan
type Scheduler struct {
	elements []scheduledElement
	groups   []groupTiming
	events   map[string]float64
	index    map[string]int
}

// NewScheduler validates the plan and resolves all trigger times
func NewScheduler(plan Plan) (*Scheduler, error) {
	nodes, err := buildNodes(plan)
	if err != nil {
		return nil, err
	}
	events, err := resolveEvents(nodes)
	if err != nil {
		return nil, err
	}

	s := &Scheduler{events: events, index: make(map[string]int)}

	for i, el := range plan.Elements {
		entry := events[el.ID]
		if entry < 0 {
			return nil, fmt.Errorf("element %d (%q): entry %v: %w", i, el.ID, entry, ErrNegative)
		}
		s.add(scheduledElement{id: el.ID, group: -1, entry: entry})
	}

	for gi, g := range plan.Groups {
		start := events[g.ID]
		if start < 0 {
			return nil, fmt.Errorf("group %d (%q): start %v: %w", gi, g.ID, start, ErrNegative)
		}
		gt := groupTiming{id: g.ID, start: start, exit: g.Exit}
		if g.Exit != nil {
			gt.fadeStart = events[g.ID+FadeEventSuffix]
			gt.holdStart = gt.fadeStart - g.Exit.Hold
			gt.fadeEnd = events[g.ID+EndEventSuffix]
			gt.retire = gt.fadeEnd + g.Exit.Grace
		}
		s.groups = append(s.groups, gt)

		for _, member := range g.Members {
			s.add(scheduledElement{id: member, group: gi, entry: events[member]})
		}
	}
	return s, nil
}

func (s *Scheduler) add(el scheduledElement) {
	s.index[el.id] = len(s.elements)
	s.elements = append(s.elements, el)
}

// Resolve returns the state of every element and group at global time t.
// Elements appear in plan order: free elements first, then group members.
func (s *Scheduler) Resolve(t float64) Snapshot {
	snap := Snapshot{
		Time:     t,
		Elements: make([]ElementState, len(s.elements)),
		Groups:   make([]GroupState, len(s.groups)),
	}
	for i, el := range s.elements {
		snap.Elements[i] = s.elementAt(el, t)
	}
	for i, g := range s.groups {
		snap.Groups[i] = g.at(t)
	}
	return snap
}

func (s *Scheduler) elementAt(el scheduledElement, t float64) ElementState {
	st := ElementState{ID: el.id, Group: el.group, Entry: el.entry}
	if t >= el.entry {
		st.Active = true
		st.Local = t - el.entry
	}
	return st
}

func (g groupTiming) at(t float64) GroupState {
	st := GroupState{ID: g.id, Opacity: 1}
	switch {
	case !(t >= g.start):
		st.Phase = PhasePending
	case g.exit == nil:
		st.Phase = PhaseEntering
	case t < g.holdStart:
		st.Phase = PhaseEntering
	case t < g.fadeStart:
		st.Phase = PhaseHolding
	case t < g.retire:
		st.Phase = PhaseFading
		st.Fade = 1
		if t < g.fadeEnd {
			st.Fade = (t - g.fadeStart) / (g.fadeEnd - g.fadeStart)
		}
		st.Opacity = 1 - st.Fade
		st.Blur = st.Fade * g.exit.MaxBlur
	default:
		st.Phase = PhaseRetired
		st.Fade = 1
		st.Opacity = 0
		st.Blur = g.exit.MaxBlur
	}
	return st
}

// Entry returns the resolved entry time of an element
func (s *Scheduler) Entry(id string) (float64, bool) {
	i, ok := s.index[id]
	if !ok {
		return 0, false
	}
	return s.elements[i].entry, true
}

// Event returns the resolved time of any event
func (s *Scheduler) Event(id string) (float64, bool) {
	t, ok := s.events[id]
	return t, ok
}

// Index returns the position of an element in Snapshot.Elements
func (s *Scheduler) Index(id string) (int, bool) {
	i, ok := s.index[id]
	return i, ok
}

// Len returns the number of scheduled elements
func (s *Scheduler) Len() int {
	return len(s.elements)
}

// End returns the latest element entry or group retire time
func (s *Scheduler) End() float64 {
	end := 0.0
	for _, el := range s.elements {
		end = math.Max(end, el.entry)
	}
	for _, g := range s.groups {
		if g.exit == nil {
			continue
		}
		end = math.Max(end, g.retire)
	}
	return end
}
