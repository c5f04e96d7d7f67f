package tui

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/recycle/internal/metrics"
	"github.com/charmbracelet/recycle/internal/recycle"
)

// Frame is the engine state after one simulated step.
type Frame struct {
	Step     int
	Action   string
	Progress float64
	First    int
	Last     int
	Stats    recycle.Stats
}

// Simulation drives an engine over an off-screen host with random scrolls,
// jumps and resizes.
type Simulation struct {
	Layout   recycle.Config
	Store    *Store
	Viewport recycle.Size
	Steps    int
	Rand     *rand.Rand
	Metrics  *metrics.Metrics
}

// Run executes the simulation, calling visit after every step. It stops at
// the first engine error or when ctx is done.
func (s Simulation) Run(ctx context.Context, visit func(Frame) error) error {
	h := newHost(s.Layout.Mode.Axis(), s.Viewport)
	src := newDataSource(s.Store, h, s.Layout.Mode)
	engine, err := recycle.New(s.Layout, src, h, h, recycle.WithMetrics(s.Metrics))
	if err != nil {
		return err
	}
	r := s.Rand
	if r == nil {
		r = rand.New(rand.NewPCG(1, 2))
	}

	var attachErr error
	engine.Attach(h, func(err error) { attachErr = err })
	h.flush()
	if attachErr != nil {
		return attachErr
	}
	defer engine.Detach()

	for step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		action, err := s.step(engine, h, r)
		if err != nil {
			return fmt.Errorf("step %d %s: %w", step, action, err)
		}
		frame := Frame{
			Step:     step,
			Action:   action,
			Progress: h.progress(),
			First:    -1,
			Last:     -1,
			Stats:    engine.Stats(),
		}
		if active := engine.Active(); len(active) > 0 {
			frame.First = active[0].Index
			frame.Last = active[len(active)-1].Index
		}
		if visit != nil {
			if err := visit(frame); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s Simulation) step(engine *recycle.Engine, h *host, r *rand.Rand) (string, error) {
	switch n := r.IntN(20); {
	case n == 0:
		return "jump", engine.ScrollTo(r.Float64())
	case n == 1:
		s.Store.Resize(s.Store.Count() + r.IntN(2*resizeStep+1) - resizeStep)
		return "resize", engine.DataChanged()
	case n == 2:
		return "refresh", engine.RefreshVisible()
	default:
		page := h.mainViewport()
		if !h.scrollBy(r.Float64()*2*page - page) {
			return "idle", nil
		}
		return "scroll", engine.OnScrollPositionChanged(h.ScrollFraction())
	}
}
