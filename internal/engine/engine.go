package engine

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/motioncam/internal/compose"
)

// Evaluator produces the frame with a given index. It must be safe for
// concurrent use; *scene.Scene satisfies it.
type Evaluator interface {
	EvaluateFrame(n int) compose.Frame
}

// Sampler evaluates a range of frames with a bounded worker pool
type Sampler struct {
	Scene   Evaluator
	Workers int // <= 0 means runtime.NumCPU()
	// Progress, if set, is called after each finished frame with the number
	// of frames done so far. It may be called from several goroutines.
	Progress func(done, total int)
}

// Result is the output of one sampling run
type Result struct {
	From    int
	Frames  []compose.Frame // Frames[i] is frame From+i
	Workers int
	Elapsed time.Duration
}

// FPS returns the effective evaluation rate of the run
func (r *Result) FPS() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(len(r.Frames)) / r.Elapsed.Seconds()
}

// NewSampler creates a sampler for the given scene
func NewSampler(scene Evaluator, workers int) *Sampler {
	return &Sampler{Scene: scene, Workers: workers}
}

// Run evaluates every frame index in [from, to). Frames are stored by index,
// so the output does not depend on the worker count or scheduling order.
func (s *Sampler) Run(ctx context.Context, from, to int) (*Result, error) {
	if s.Scene == nil {
		return nil, fmt.Errorf("sampler has no scene")
	}
	if from < 0 || to < from {
		return nil, fmt.Errorf("invalid frame range [%d, %d)", from, to)
	}

	total := to - from
	workers := s.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > total && total > 0 {
		workers = total
	}

	start := time.Now()
	frames := make([]compose.Frame, total)
	done := make(chan struct{}, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var progressDone chan struct{}
	if s.Progress != nil {
		progressDone = make(chan struct{})
		go func() {
			defer close(progressDone)
			n := 0
			for range done {
				n++
				s.Progress(n, total)
			}
		}()
	}

	for i := 0; i < total; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			frames[i] = s.Scene.EvaluateFrame(from + i)
			done <- struct{}{}
			return nil
		})
	}

	err := g.Wait()
	close(done)
	if progressDone != nil {
		<-progressDone
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return nil, fmt.Errorf("sampling frames [%d, %d): %w", from, to, err)
	}

	return &Result{
		From:    from,
		Frames:  frames,
		Workers: workers,
		Elapsed: time.Since(start),
	}, nil
}
