package timeline

import (
	"fmt"
	"math"
	"sort"
)

// node is one event in the dependency graph.
// Its time is offset when dep is empty, or time(dep)+offset otherwise.
type node struct {
	id     string
	dep    string
	offset float64
	origin string
}

// resolveEvents resolves every node time in topological order (Kahn)
func resolveEvents(nodes []node) (map[string]float64, error) {
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if _, dup := index[n.id]; dup {
			return nil, fmt.Errorf("%s: %w %q", n.origin, ErrDuplicate, n.id)
		}
		index[n.id] = i
	}

	children := make(map[string][]int, len(nodes))
	queue := make([]int, 0, len(nodes))
	for i, n := range nodes {
		if n.dep == "" {
			queue = append(queue, i)
			continue
		}
		if _, ok := index[n.dep]; !ok {
			return nil, fmt.Errorf("%s: %w %q", n.origin, ErrUnknownEvent, n.dep)
		}
		children[n.dep] = append(children[n.dep], i)
	}

	times := make(map[string]float64, len(nodes))
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]

		n := nodes[i]
		t := n.offset
		if n.dep != "" {
			t += times[n.dep]
		}
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, fmt.Errorf("%s: invalid time %v", n.origin, t)
		}
		times[n.id] = t
		queue = append(queue, children[n.id]...)
	}

	if len(times) < len(nodes) {
		for _, n := range nodes {
			if _, ok := times[n.id]; !ok {
				return nil, fmt.Errorf("%s: %w through %q", n.origin, ErrCycle, n.dep)
			}
		}
	}
	return times, nil
}

// buildNodes turns a plan into graph nodes, anchors first in name order
func buildNodes(plan Plan) ([]node, error) {
	var nodes []node

	names := make([]string, 0, len(plan.Anchors))
	for name := range plan.Anchors {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		nodes = append(nodes, node{id: name, offset: plan.Anchors[name], origin: fmt.Sprintf("anchor %q", name)})
	}

	for i, el := range plan.Elements {
		origin := fmt.Sprintf("element %d (%q)", i, el.ID)
		if el.ID == "" {
			return nil, fmt.Errorf("element %d: empty id", i)
		}
		nodes = append(nodes, triggered(el.ID, el.Entry, el.Trigger, origin))
	}

	for gi, g := range plan.Groups {
		origin := fmt.Sprintf("group %d (%q)", gi, g.ID)
		if g.ID == "" {
			return nil, fmt.Errorf("group %d: empty id", gi)
		}
		if g.Stagger < 0 {
			return nil, fmt.Errorf("%s: stagger %v: %w", origin, g.Stagger, ErrNegative)
		}
		nodes = append(nodes, triggered(g.ID, g.Start, g.Trigger, origin))

		for mi, member := range g.Members {
			if member == "" {
				return nil, fmt.Errorf("%s: member %d has empty id", origin, mi)
			}
			nodes = append(nodes, node{
				id:     member,
				dep:    g.ID,
				offset: float64(mi) * g.Stagger,
				origin: fmt.Sprintf("%s member %d (%q)", origin, mi, member),
			})
		}

		if g.Exit != nil {
			if err := g.Exit.validate(); err != nil {
				return nil, fmt.Errorf("%s: %w", origin, err)
			}
			nodes = append(nodes,
				node{id: g.ID + FadeEventSuffix, dep: g.ID, offset: g.fadeOffset(), origin: origin + " exit"},
				node{id: g.ID + EndEventSuffix, dep: g.ID + FadeEventSuffix, offset: g.Exit.Fade, origin: origin + " exit"},
			)
		}
	}
	return nodes, nil
}

func triggered(id string, entry float64, trig *Trigger, origin string) node {
	if trig == nil {
		return node{id: id, offset: entry, origin: origin}
	}
	return node{id: id, dep: trig.Event, offset: trig.Offset, origin: origin}
}

// fadeOffset is the fade start relative to the group start
func (g Group) fadeOffset() float64 {
	last := 0.0
	if n := len(g.Members); n > 0 {
		last = float64(n-1) * g.Stagger
	}
	return last + g.Exit.PopDuration + g.Exit.Hold
}

func (e *Exit) validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"pop duration", e.PopDuration},
		{"hold", e.Hold},
		{"fade", e.Fade},
		{"max blur", e.MaxBlur},
		{"grace", e.Grace},
	} {
		if f.v < 0 || math.IsNaN(f.v) {
			return fmt.Errorf("exit %s %v: %w", f.name, f.v, ErrNegative)
		}
	}
	return nil
}
