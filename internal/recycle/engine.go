package recycle

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/recycle/internal/metrics"
)

// State is the lifecycle stage of an [Engine].
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Stats reports pool occupancy.
type Stats struct {
	Active     int
	Free       int
	Prototypes int
}

// Engine coordinates the prototype cache, the cell pool and a layout in
// response to host events. All methods must be called from the host's
// update loop.
type Engine struct {
	cfg     Config
	layout  Layout
	source  DataSource
	host    Host
	factory CellFactory
	pool    *Pool
	ctx     *Context
	metrics *metrics.Metrics

	state      State
	generation uint64
}

// Option configures an [Engine].
type Option func(*Engine)

// WithMetrics records engine activity into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// New returns an engine in the uninitialized state. A grid configuration
// over a data source with more than one prototype is rejected here, before
// any instance exists.
func New(cfg Config, source DataSource, host Host, factory CellFactory, opts ...Option) (*Engine, error) {
	switch {
	case source == nil:
		return nil, fmt.Errorf("%w: nil data source", ErrConfiguration)
	case host == nil:
		return nil, fmt.Errorf("%w: nil host", ErrConfiguration)
	case factory == nil:
		return nil, fmt.Errorf("%w: nil cell factory", ErrConfiguration)
	}

	cfg = cfg.Normalize()
	if cfg.Mode.Grid() && !source.SinglePrototype() {
		return nil, errMultiPrototype(cfg.Mode)
	}

	e := &Engine{
		cfg:     cfg,
		layout:  NewLayout(cfg),
		source:  source,
		host:    host,
		factory: factory,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.metrics == nil {
		e.metrics = metrics.NewMetrics()
	}

	e.ctx = &Context{
		Source:  source,
		factory: factory,
		metrics: e.metrics,
	}
	e.pool = newPool(source, factory, func(typ int) Zygote {
		return e.layout.PrepareType(e.ctx, typ)
	}, e.metrics)
	e.ctx.Pool = e.pool
	return e, nil
}

// Attach starts initialization. The sizing pass runs from sched once the
// host has laid itself out; onReady, if set, receives its outcome. Attach
// on an engine that is not uninitialized does nothing.
func (e *Engine) Attach(sched Scheduler, onReady func(error)) {
	if e.state != StateUninitialized {
		return
	}
	e.pool.Reset()
	e.state = StateInitializing
	e.generation++
	gen := e.generation
	slog.Debug("Engine attaching", "mode", e.cfg.Mode, "generation", gen)

	sched.AfterLayout(func() {
		if gen != e.generation || e.state != StateInitializing {
			slog.Debug("Engine initialization abandoned", "generation", gen)
			return
		}
		err := e.initialize()
		if err != nil {
			slog.Error("Engine initialization failed", "mode", e.cfg.Mode, "error", err)
			e.pool.Reset()
			e.state = StateUninitialized
		}
		if onReady != nil {
			onReady(err)
		}
	})
}

func (e *Engine) initialize() error {
	axis := e.layout.Axis()
	e.ctx.Viewport = e.host.Viewport()
	e.ctx.Content = e.host.Content()
	e.host.AnchorContent(axis)

	if err := e.applyExtent(); err != nil {
		return err
	}
	if err := e.layout.Initialize(e.ctx); err != nil {
		return err
	}
	e.state = StateReady
	slog.Debug("Engine ready",
		"mode", e.cfg.Mode,
		"extent", e.ctx.Extent,
		"active", e.pool.Len(),
	)
	return nil
}

// Detach destroys every instance and returns the engine to the
// uninitialized state. A pending initialization is abandoned without
// binding anything.
func (e *Engine) Detach() {
	e.generation++
	if e.state == StateUninitialized {
		return
	}
	e.pool.Reset()
	e.state = StateUninitialized
	slog.Debug("Engine detached", "mode", e.cfg.Mode)
}

func (e *Engine) applyExtent() error {
	extent, err := e.layout.TotalExtent(e.ctx)
	if err != nil {
		return err
	}
	e.ctx.Extent = extent
	e.host.SetContentExtent(e.layout.Axis(), extent)
	return nil
}

// OnScrollPositionChanged handles a continuous scroll sample. fraction is
// the host's normalized position on both axes.
func (e *Engine) OnScrollPositionChanged(fraction Vec2) error {
	if e.state != StateReady {
		return nil
	}
	return e.layout.OnPositionDelta(e.ctx, e.layout.Axis().Component(fraction))
}

// DataChanged rebuilds the window after the item count or identities
// changed. Instances are kept for reuse but every binding is dropped.
func (e *Engine) DataChanged() error {
	if e.state != StateReady {
		return nil
	}
	axis := e.layout.Axis()
	e.metrics.RecordRebuild()
	e.pool.EvictAll()
	if err := e.applyExtent(); err != nil {
		return err
	}
	fraction := axis.Component(e.host.ScrollFraction())
	if err := e.layout.OnJump(e.ctx, fraction); err != nil {
		return err
	}
	e.host.SetScrollFraction(axis, fraction)
	slog.Debug("Engine rebuilt",
		"count", e.source.Count(),
		"extent", e.ctx.Extent,
		"active", e.pool.Len(),
	)
	return nil
}

// ScrollTo jumps to progress along the sliding axis, where 0 is the first
// item and 1 the last. Values outside [0, 1] are clamped.
func (e *Engine) ScrollTo(progress float64) error {
	if e.state != StateReady {
		return nil
	}
	axis := e.layout.Axis()
	// Progress is its own inverse.
	fraction := axis.Progress(clamp01(progress))
	if err := e.layout.OnJump(e.ctx, fraction); err != nil {
		return err
	}
	e.host.SetScrollFraction(axis, fraction)
	return nil
}

// RefreshVisible rebinds every active entry in index order without moving
// the window.
func (e *Engine) RefreshVisible() error {
	if e.state != StateReady {
		return nil
	}
	for _, entry := range e.pool.active {
		e.source.Bind(entry.Cell, entry.Index)
	}
	e.metrics.RecordRefresh(len(e.pool.active))
	return nil
}

// State returns the lifecycle stage.
func (e *Engine) State() State { return e.state }

// Mode returns the layout variant.
func (e *Engine) Mode() Mode { return e.cfg.Mode }

// Config returns the normalized configuration.
func (e *Engine) Config() Config { return e.cfg }

// Active returns a copy of the active set in index order.
func (e *Engine) Active() []Entry { return e.pool.Active() }

// Stats returns current pool occupancy.
func (e *Engine) Stats() Stats {
	return Stats{
		Active:     e.pool.Len(),
		Free:       e.pool.FreeLen(),
		Prototypes: e.pool.Prototypes(),
	}
}

// TotalExtent returns the extent last applied to the host.
func (e *Engine) TotalExtent() float64 { return e.ctx.Extent }

// OffsetFor returns the placement of index. Before the engine is ready it
// returns the zero position.
func (e *Engine) OffsetFor(index int) (Vec2, error) {
	if e.state != StateReady {
		return Vec2{}, nil
	}
	return e.layout.OffsetFor(e.ctx, index)
}
