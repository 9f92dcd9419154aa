package config

import (
	"fmt"
	"runtime"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings of one CLI run
type Config struct {
	// Scene file; empty means the latest file in ScenesDir
	InputPath string `env:"MOTIONCAM_INPUT"`
	ScenesDir string `env:"MOTIONCAM_SCENES_DIR"`
	// Optional sample dump (YAML/TOML by extension)
	OutputPath string
	// Overrides the scene frame rate when > 0
	FPS float64 `env:"MOTIONCAM_FPS"`

	// Sampling window in seconds; To <= 0 means the scene duration
	From float64
	To   float64
	Step int // Emit every Step-th frame in tables

	Workers      int  `env:"MOTIONCAM_WORKERS"`
	ShowStats    bool `env:"MOTIONCAM_STATS"`
	BuildVersion string
}

// Default returns the configuration used when no flags are given
func Default() Config {
	return Config{
		ScenesDir: "internal/scenes",
		Step:      1,
		Workers:   runtime.NumCPU(),
	}
}

// ParseEnv applies MOTIONCAM_* environment overrides.
// Unset variables leave the current values in place.
func ParseEnv(target *Config) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks the flag values
func (c *Config) Validate() error {
	if c.FPS < 0 {
		return fmt.Errorf("fps must not be negative, got %v", c.FPS)
	}
	if c.From < 0 {
		return fmt.Errorf("from must not be negative, got %v", c.From)
	}
	if c.To > 0 && c.To < c.From {
		return fmt.Errorf("to (%v) is before from (%v)", c.To, c.From)
	}
	if c.Step < 1 {
		return fmt.Errorf("step must be at least 1, got %d", c.Step)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}

// Window returns the sampling window clamped to a scene of the given length
func (c *Config) Window(duration float64) (from, to float64) {
	from, to = c.From, c.To
	if to <= 0 || to > duration {
		to = duration
	}
	if from > to {
		from = to
	}
	return from, to
}
