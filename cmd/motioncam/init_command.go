package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ivlev/motioncam/internal/scene"
)

func newInitCommand(ctx *commandContext) *cobra.Command {
	var output string
	var format string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write an example scene file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := output
			if path == "" {
				f := scene.Format(format)
				if f != scene.FormatYAML && f != scene.FormatTOML {
					return fmt.Errorf("unsupported format %q (use yaml or toml)", format)
				}
				path = scene.GenerateScenePath(ctx.cfg.ScenesDir, f)
			}

			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return err
			}
			if err := scene.WriteDocument(scene.Example(), path); err != nil {
				return fmt.Errorf("failed to write scene: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "[+] Example scene saved: %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Scene file path (default: timestamped file in --scenes-dir)")
	cmd.Flags().StringVar(&format, "format", string(scene.FormatYAML), "Scene format when no output path is given: yaml or toml")
	return cmd
}
