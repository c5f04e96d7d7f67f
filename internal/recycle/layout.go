package recycle

import (
	"fmt"
	"math"

	"github.com/charmbracelet/recycle/internal/metrics"
)

// Layout computes placement and windowing for one variant. Layouts keep
// only their own scroll tracking; everything else is reached through the
// Context passed to each call.
type Layout interface {
	Mode() Mode
	Axis() Axis

	// TotalExtent returns the size along the sliding axis needed to hold
	// every item. With more than one prototype it walks every index, so it
	// must not be called on every frame.
	TotalExtent(ctx *Context) (float64, error)

	// OffsetFor returns the position of the leading corner of index.
	OffsetFor(ctx *Context, index int) (Vec2, error)

	// PrepareType derives the prototype of a visual type from its raw
	// visual and the content's current cross-axis extent.
	PrepareType(ctx *Context, typ int) Zygote

	// Initialize fills the window at scroll offset zero.
	Initialize(ctx *Context) error

	// OnPositionDelta is the incremental path run on each scroll update.
	OnPositionDelta(ctx *Context, fraction float64) error

	// OnJump recomputes the window at fraction without assuming continuity
	// with the previous one.
	OnJump(ctx *Context, fraction float64) error
}

// NewLayout returns the layout variant selected by cfg.Mode.
func NewLayout(cfg Config) Layout {
	cfg = cfg.Normalize()
	if cfg.Mode.Grid() {
		return &gridLayout{cfg: cfg, axis: cfg.Mode.Axis()}
	}
	return &listLayout{cfg: cfg, axis: cfg.Mode.Axis()}
}

// Context is the state an engine shares with its layout.
type Context struct {
	Pool   *Pool
	Source DataSource

	// Viewport and Content are sampled from the host at initialization.
	Viewport Size
	Content  Size

	// Extent is the total extent last applied to the host.
	Extent float64

	factory CellFactory
	metrics *metrics.Metrics
}

// admit acquires an instance for index, places it, inserts it into the
// active set and only then binds it, so the bind callback observes a
// consistent active set.
func (ctx *Context) admit(index int, offset float64, pos Vec2) (Entry, error) {
	inst := ctx.Pool.Acquire(index)
	e := Entry{
		Index:    index,
		Offset:   offset,
		Position: pos,
		Instance: inst,
	}
	if err := ctx.Pool.Admit(e); err != nil {
		ctx.Pool.release(inst)
		return Entry{}, err
	}
	ctx.factory.Place(inst.Cell, pos)
	ctx.Source.Bind(inst.Cell, index)
	return e, nil
}

// trimCount evicts entries whose index no longer exists.
func (ctx *Context) trimCount() error {
	n := ctx.Source.Count()
	for {
		last, ok := ctx.Pool.Largest()
		if !ok || last.Index < n {
			return nil
		}
		if err := ctx.Pool.Evict(last); err != nil {
			return err
		}
	}
}

// window is the covered interval along the sliding axis.
type window struct {
	pos    float64
	lo, hi float64
}

// intersects reports whether [start, end] overlaps the window. Both bounds
// are inclusive, so an item touching the boundary is kept rather than
// oscillating between admission and eviction.
func (w window) intersects(start, end float64) bool {
	return end >= w.lo && start <= w.hi
}

// tracker is the scroll state shared by every variant.
type tracker struct {
	prev float64
	edge float64
}

func (t *tracker) reset(coverage, viewport float64) {
	t.edge = viewport * (coverage - 1) * 0.5
	t.prev = 0
}

func (t *tracker) window(pos, viewport float64) window {
	return window{
		pos: pos,
		lo:  pos - t.edge,
		hi:  pos + t.edge + viewport,
	}
}

// position converts a host fraction into a scroll offset. ok is false when
// the content fits inside the viewport and nothing can scroll.
func position(axis Axis, ctx *Context, fraction float64) (pos float64, ok bool) {
	viewport := axis.main(ctx.Viewport)
	if ctx.Extent <= viewport {
		return 0, false
	}
	return axis.Progress(fraction) * (ctx.Extent - viewport), true
}

// delta resolves a continuous update into a window and a direction. ok is
// false when the update must be ignored.
func (t *tracker) delta(axis Axis, ctx *Context, fraction, minMovement float64) (w window, dir float64, ok bool) {
	pos, ok := position(axis, ctx, fraction)
	if !ok {
		return window{}, 0, false
	}
	dir = pos - t.prev
	if math.Abs(dir) < minMovement {
		ctx.metrics.RecordDelta(true)
		return window{}, 0, false
	}
	ctx.metrics.RecordDelta(false)
	t.prev = pos
	return t.window(pos, axis.main(ctx.Viewport)), dir, true
}

// jump resolves a discontinuous update into a window.
func (t *tracker) jump(axis Axis, ctx *Context, fraction float64) window {
	pos, _ := position(axis, ctx, fraction)
	t.prev = pos
	ctx.metrics.RecordJump()
	return t.window(pos, axis.main(ctx.Viewport))
}

// activeRange returns the lowest and highest active index.
func activeRange(p *Pool) (first, last int, ok bool) {
	lo, ok := p.Smallest()
	if !ok {
		return 0, 0, false
	}
	hi, _ := p.Largest()
	return lo.Index, hi.Index, true
}

func errMultiPrototype(m Mode) error {
	return fmt.Errorf("%w: %s layout does not support multiple prototypes", ErrConfiguration, m)
}
