package tui

import (
	"github.com/charmbracelet/recycle/internal/recycle"
	"github.com/google/uuid"
)

// cell is a recyclable box on the terminal. Its id stays the same across
// rebinds, which makes reuse visible.
type cell struct {
	id     uuid.UUID
	zygote recycle.Zygote
	pos    recycle.Vec2
	index  int
	item   Item
	binds  int
}

// host is a terminal viewport scrolled in whole cells. It is the engine's
// Host, CellFactory and Scheduler at once; deferred work runs on the next
// frame message.
type host struct {
	axis     recycle.Axis
	viewport recycle.Size
	extent   float64
	offset   float64
	pending  []func()

	live      int
	created   int
	destroyed int
}

func newHost(axis recycle.Axis, viewport recycle.Size) *host {
	return &host{axis: axis, viewport: viewport}
}

func (h *host) resize(viewport recycle.Size) {
	h.viewport = viewport
	h.offset = min(h.offset, h.maxOffset())
}

func (h *host) mainViewport() float64 {
	if h.axis == recycle.Horizontal {
		return h.viewport.Width
	}
	return h.viewport.Height
}

func (h *host) maxOffset() float64 {
	return max(h.extent-h.mainViewport(), 0)
}

// progress is the scroll position from the leading edge in [0, 1].
func (h *host) progress() float64 {
	if m := h.maxOffset(); m > 0 {
		return h.offset / m
	}
	return 0
}

// scrollBy moves the viewport by d cells and reports whether it moved.
func (h *host) scrollBy(d float64) bool {
	next := min(max(h.offset+d, 0), h.maxOffset())
	if next == h.offset {
		return false
	}
	h.offset = next
	return true
}

func (h *host) Viewport() recycle.Size { return h.viewport }

func (h *host) Content() recycle.Size {
	if h.axis == recycle.Horizontal {
		return recycle.Size{Width: max(h.extent, h.viewport.Width), Height: h.viewport.Height}
	}
	return recycle.Size{Width: h.viewport.Width, Height: max(h.extent, h.viewport.Height)}
}

func (h *host) ScrollFraction() recycle.Vec2 {
	f := h.axis.Progress(h.progress())
	if h.axis == recycle.Horizontal {
		return recycle.Vec2{X: f, Y: 1}
	}
	return recycle.Vec2{X: 0, Y: f}
}

func (h *host) SetScrollFraction(axis recycle.Axis, fraction float64) {
	if axis != h.axis {
		return
	}
	h.offset = axis.Progress(fraction) * h.maxOffset()
}

func (h *host) SetContentExtent(axis recycle.Axis, extent float64) {
	if axis != h.axis {
		return
	}
	h.extent = extent
	h.offset = min(h.offset, h.maxOffset())
}

func (h *host) AnchorContent(axis recycle.Axis) {
	if axis == h.axis {
		h.offset = 0
	}
}

func (h *host) Create(z recycle.Zygote) recycle.Cell {
	h.live++
	h.created++
	return &cell{id: uuid.New(), zygote: z, index: -1}
}

func (h *host) Place(c recycle.Cell, pos recycle.Vec2) {
	c.(*cell).pos = pos
}

func (h *host) Destroy(recycle.Cell) {
	h.live--
	h.destroyed++
}

func (h *host) AfterLayout(fn func()) {
	h.pending = append(h.pending, fn)
}

// flush runs the work deferred to this frame.
func (h *host) flush() {
	pending := h.pending
	h.pending = nil
	for _, fn := range pending {
		fn()
	}
}
