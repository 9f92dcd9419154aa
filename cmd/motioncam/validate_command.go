package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ivlev/motioncam/internal/animation"
	"github.com/ivlev/motioncam/internal/camera"
	"github.com/ivlev/motioncam/internal/scene"
	"github.com/ivlev/motioncam/internal/timeline"
)

func newValidateCommand(ctx *commandContext) *cobra.Command {
	var showEvents bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a scene file and print its resolved schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, path, err := ctx.loadScene()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			snap := s.Schedule(0)
			rows := make([][]string, 0, len(snap.Elements))
			for _, st := range snap.Elements {
				spec, _ := s.Spec(st.ID)
				group := "-"
				if st.Group >= 0 {
					group = snap.Groups[st.Group].ID
				}
				rows = append(rows, []string{st.ID, spec.Kind.String(), group, fsec(st.Entry), describeMotion(spec)})
			}
			fmt.Fprintln(out, renderTable(out, "Elements",
				[]string{"ID", "Kind", "Group", "Entry", "Motion"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))

			if showEvents {
				fmt.Fprintln(out, renderTable(out, "Events", []string{"Event", "Time"}, eventRows(s.Event, eventNames(snap.Groups, s.Keyframes())), []columnAlignment{alignLeft, alignRight}))
			}

			fmt.Fprintf(out, "[+] %s: %d elements, %d groups, %.2fs @ %g FPS (%d frames)\n",
				path, len(snap.Elements), len(snap.Groups), s.Duration(), float64(s.FPS()), s.FrameCount())
			return nil
		},
	}

	cmd.Flags().BoolVar(&showEvents, "events", false, "Also list group and camera events")
	return cmd
}

func describeMotion(spec animation.Spec) string {
	m := spec.Motion
	switch {
	case m.Spring != nil:
		return fmt.Sprintf("spring d=%g k=%g m=%g", m.Spring.Damping, m.Spring.Stiffness, m.Spring.Mass)
	case m.Duration > 0:
		return fmt.Sprintf("%s %gs", m.Curve, m.Duration)
	default:
		return "default"
	}
}

func eventNames(groups []timeline.GroupState, keyframes []camera.Keyframe) []string {
	var names []string
	for _, kf := range keyframes {
		if kf.Name != "" {
			names = append(names, scene.CameraEventPrefix+kf.Name)
		}
	}
	for _, g := range groups {
		names = append(names, g.ID, g.ID+timeline.FadeEventSuffix, g.ID+timeline.EndEventSuffix)
	}
	return names
}

// eventRows lists the events that exist, ordered by time then name
func eventRows(lookup func(string) (float64, bool), names []string) [][]string {
	type event struct {
		name string
		at   float64
	}
	var events []event
	for _, name := range names {
		if at, ok := lookup(name); ok {
			events = append(events, event{name, at})
		}
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].at != events[j].at {
			return events[i].at < events[j].at
		}
		return events[i].name < events[j].name
	})

	rows := make([][]string, len(events))
	for i, e := range events {
		rows[i] = []string{e.name, strconv.FormatFloat(e.at, 'f', 3, 64) + "s"}
	}
	return rows
}
