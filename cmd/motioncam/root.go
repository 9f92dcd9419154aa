package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/ivlev/motioncam/internal/config"
)

func newRootCommand() *cobra.Command {
	cfg := config.Default()
	// Environment values become the flag defaults; explicit flags still win.
	if err := config.ParseEnv(&cfg); err != nil {
		log.Printf("[!] Ignoring environment: %v", err)
		cfg = config.Default()
	}
	cfg.BuildVersion = BuildVersion
	ctx := &commandContext{cfg: &cfg}

	rootCmd := &cobra.Command{
		Use:           "motioncam",
		Short:         "Evaluate animated scenes and virtual camera paths at any point in time",
		Version:       BuildVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfg.InputPath, "input", "i", cfg.InputPath, "Scene file (default: newest file in --scenes-dir)")
	rootCmd.PersistentFlags().StringVar(&cfg.ScenesDir, "scenes-dir", cfg.ScenesDir, "Directory searched for scene files")
	rootCmd.PersistentFlags().Float64Var(&cfg.FPS, "fps", cfg.FPS, "Override the scene frame rate")

	rootCmd.AddCommand(newValidateCommand(ctx))
	rootCmd.AddCommand(newSampleCommand(ctx))
	rootCmd.AddCommand(newCameraCommand(ctx))
	rootCmd.AddCommand(newInitCommand(ctx))

	return rootCmd
}
