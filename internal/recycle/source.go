package recycle

// Cell is a recyclable visual instance. The engine only relies on its
// identity; hosts type-assert it back to their own cell type.
type Cell any

// Visual is an uninstantiated visual asset. Its intrinsic size gives the
// aspect ratio that prototypes of its type preserve.
type Visual interface {
	Size() Size
}

// DataSource supplies the collection being virtualized.
type DataSource interface {
	// SinglePrototype reports whether every index shares one visual type,
	// which allows closed-form sizing. Grid layouts require it.
	SinglePrototype() bool
	// Count returns the number of items. Values below 1 mean empty.
	Count() int
	// Prototype returns the raw visual for a type. The engine memoizes the
	// prototype derived from it.
	Prototype(typ int) Visual
	// TypeOf returns the visual type of an index.
	TypeOf(index int) int
	// Bind populates cell with the content of index. It is called whenever
	// an index is admitted and on refresh.
	Bind(cell Cell, index int)
}

// CellFactory creates, positions and destroys the host's visual instances.
type CellFactory interface {
	Create(z Zygote) Cell
	Place(cell Cell, pos Vec2)
	Destroy(cell Cell)
}

// Host is the scrollable container the engine is attached to.
type Host interface {
	// Viewport returns the visible area.
	Viewport() Size
	// Content returns the current content rect; its cross-axis extent sizes
	// prototypes.
	Content() Size
	// ScrollFraction returns the normalized scroll position, vertical
	// bottom-anchored.
	ScrollFraction() Vec2
	SetScrollFraction(axis Axis, fraction float64)
	SetContentExtent(axis Axis, extent float64)
	// AnchorContent pins the content to its starting edge at offset zero.
	AnchorContent(axis Axis)
}

// Scheduler defers work until the host has completed its next layout pass.
type Scheduler interface {
	AfterLayout(fn func())
}

// SchedulerFunc adapts a function to [Scheduler].
type SchedulerFunc func(fn func())

func (f SchedulerFunc) AfterLayout(fn func()) { f(fn) }
