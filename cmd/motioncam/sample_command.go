package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivlev/motioncam/internal/compose"
	"github.com/ivlev/motioncam/internal/engine"
	"github.com/ivlev/motioncam/internal/scene"
	"github.com/ivlev/motioncam/internal/system"
)

// sampleFile is the dump written by "sample --output"
type sampleFile struct {
	Scene  string        `yaml:"scene" toml:"scene"`
	FPS    float64       `yaml:"fps" toml:"fps"`
	Frames []frameRecord `yaml:"frames" toml:"frames"`
}

type frameRecord struct {
	Frame    int             `yaml:"frame" toml:"frame"`
	Time     float64         `yaml:"time" toml:"time"`
	CameraX  float64         `yaml:"camera_x" toml:"camera_x"`
	CameraY  float64         `yaml:"camera_y" toml:"camera_y"`
	Zoom     float64         `yaml:"zoom" toml:"zoom"`
	Elements []elementRecord `yaml:"elements,omitempty" toml:"elements,omitempty"`
}

type elementRecord struct {
	ID       string  `yaml:"id" toml:"id"`
	X        float64 `yaml:"x" toml:"x"` // Screen position of the anchor
	Y        float64 `yaml:"y" toml:"y"`
	Scale    float64 `yaml:"scale" toml:"scale"`
	Rotation float64 `yaml:"rotation" toml:"rotation"`
	Opacity  float64 `yaml:"opacity" toml:"opacity"`
	Blur     float64 `yaml:"blur,omitempty" toml:"blur,omitempty"`
}

func newSampleCommand(ctx *commandContext) *cobra.Command {
	cfg := ctx.cfg

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Evaluate every frame of a time window in parallel",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, path, err := ctx.loadScene()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			from, to := cfg.Window(s.Duration())
			fps := s.FPS()
			first, last := fps.FrameIndex(from), fps.FrameIndex(to)

			sampler := engine.NewSampler(s, cfg.Workers)
			log.Printf("[*] Sampling frames %d..%d of %s with %d workers", first, last, filepath.Base(path), cfg.Workers)

			startTime := time.Now()
			res, err := sampler.Run(cmd.Context(), first, last+1)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(res.Frames)/cfg.Step+1)
			for i := 0; i < len(res.Frames); i += cfg.Step {
				rows = append(rows, frameRow(res.From+i, res.Frames[i]))
			}
			fmt.Fprintln(out, renderTable(out, "Frames",
				[]string{"Frame", "Time", "Camera X", "Camera Y", "Zoom", "Visible"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft},
			))

			if cfg.OutputPath != "" {
				if err := writeSamples(cfg.OutputPath, path, float64(fps), res, cfg.Step); err != nil {
					return err
				}
				log.Printf("[*] Samples written: %s", cfg.OutputPath)
			}

			if cfg.ShowStats {
				printStats(out, cfg.BuildVersion, res, time.Since(startTime))
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&cfg.From, "from", 0, "Window start in seconds")
	cmd.Flags().Float64Var(&cfg.To, "to", 0, "Window end in seconds (default: scene duration)")
	cmd.Flags().IntVar(&cfg.Step, "step", cfg.Step, "Print every n-th frame")
	cmd.Flags().IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, "Parallel evaluation workers")
	cmd.Flags().StringVarP(&cfg.OutputPath, "output", "o", "", "Write sampled frames to a YAML or TOML file")
	cmd.Flags().BoolVar(&cfg.ShowStats, "stats", cfg.ShowStats, "Print a performance report")
	return cmd
}

func frameRow(n int, f compose.Frame) []string {
	ids := make([]string, len(f.Elements))
	for i, tr := range f.Elements {
		ids[i] = tr.ID
	}
	return []string{
		fmt.Sprintf("%d", n),
		fsec(f.Time),
		fnum(f.Camera.X),
		fnum(f.Camera.Y),
		fnum(f.Camera.Scale),
		strings.Join(ids, " "),
	}
}

func writeSamples(outPath, scenePath string, fps float64, res *engine.Result, step int) error {
	format, err := scene.FormatOf(outPath)
	if err != nil {
		return err
	}

	file := sampleFile{Scene: scenePath, FPS: fps}
	for i := 0; i < len(res.Frames); i += step {
		f := res.Frames[i]
		rec := frameRecord{Frame: res.From + i, Time: f.Time, CameraX: f.Camera.X, CameraY: f.Camera.Y, Zoom: f.Camera.Scale}
		for _, tr := range f.Elements {
			x, y := compose.Apply(tr.Screen, 0, 0)
			rec.Elements = append(rec.Elements, elementRecord{
				ID:       tr.ID,
				X:        x,
				Y:        y,
				Scale:    tr.Scale * f.View.Scale,
				Rotation: tr.Rotation,
				Opacity:  tr.Opacity,
				Blur:     tr.Blur,
			})
		}
		file.Frames = append(file.Frames, rec)
	}

	data, err := scene.Marshal(&file, format)
	if err != nil {
		return fmt.Errorf("failed to encode samples: %w", err)
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(outPath, data, 0644)
}

func printStats(out io.Writer, build string, res *engine.Result, total time.Duration) {
	report := fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Frames: %d\n"+
			"Workers: %d\n"+
			"Total Time: %.3fs\n"+
			"Evaluation: %.3fs\n"+
			"Effective FPS: %.0f\n",
		build, len(res.Frames), res.Workers, total.Seconds(), res.Elapsed.Seconds(), res.FPS(),
	)

	st, err := system.Snapshot()
	if err != nil {
		log.Printf("[!] Process stats unavailable: %v", err)
	}
	report += fmt.Sprintf(
		"CPU: %s (%d logical)\n"+
			"Process RSS: %s | Heap: %s | CPU: %.1f%%\n"+
			"Host memory: %s (%.1f%% used)\n"+
			"----------------------------\n",
		st.CPUModel, st.LogicalCPU,
		system.FormatBytes(st.RSS), system.FormatBytes(st.HeapAlloc), st.CPUPercent,
		system.FormatBytes(st.TotalMemory), st.UsedPercent,
	)
	fmt.Fprint(out, report)
}
