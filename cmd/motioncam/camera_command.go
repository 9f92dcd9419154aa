package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCameraCommand(ctx *commandContext) *cobra.Command {
	var interval float64

	cmd := &cobra.Command{
		Use:   "camera",
		Short: "Print the camera keyframes and the eased path between them",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !(interval > 0) {
				return fmt.Errorf("interval must be positive, got %v", interval)
			}
			s, _, err := ctx.loadScene()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			var rows [][]string
			for _, kf := range s.Keyframes() {
				name := kf.Name
				if name == "" {
					name = "-"
				}
				rows = append(rows, []string{fsec(kf.Time), name, fnum(kf.X), fnum(kf.Y), fnum(kf.Zoom)})
			}
			fmt.Fprintln(out, renderTable(out, "Keyframes",
				[]string{"Time", "Name", "X", "Y", "Zoom"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight},
			))

			shake := s.Shake()
			rows = rows[:0]
			steps := int(s.Duration()/interval) + 1
			for i := 0; i < steps; i++ {
				t := float64(i) * interval
				pose := s.Camera(t)
				dx, dy := shake.Offset(t, pose.Scale)
				rows = append(rows, []string{fsec(t), fnum(pose.X), fnum(pose.Y), fnum(pose.Scale), fnum(dx), fnum(dy)})
			}
			fmt.Fprintln(out, renderTable(out, "Path",
				[]string{"Time", "X", "Y", "Zoom", "Shake X", "Shake Y"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().Float64Var(&interval, "interval", 0.5, "Sampling interval in seconds")
	return cmd
}
