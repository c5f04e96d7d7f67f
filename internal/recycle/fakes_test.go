package recycle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeVisual Size

func (v fakeVisual) Size() Size { return Size(v) }

type bindCall struct {
	cell  *fakeCell
	index int
}

// fakeSource serves count items. Types lists the raw visual of each type;
// index i has type i%len(types).
type fakeSource struct {
	count  int
	types  []Size
	single bool
	binds  []bindCall
	// onBind, when set, runs after every bind.
	onBind func(index int)
}

func newSingleSource(count int, visual Size) *fakeSource {
	return &fakeSource{count: count, types: []Size{visual}, single: true}
}

func (s *fakeSource) SinglePrototype() bool { return s.single }
func (s *fakeSource) Count() int            { return s.count }

func (s *fakeSource) Prototype(typ int) Visual {
	return fakeVisual(s.types[typ])
}

func (s *fakeSource) TypeOf(index int) int {
	if index < 0 {
		return 0
	}
	return index % len(s.types)
}

func (s *fakeSource) Bind(cell Cell, index int) {
	c := cell.(*fakeCell)
	c.index = index
	s.binds = append(s.binds, bindCall{cell: c, index: index})
	if s.onBind != nil {
		s.onBind(index)
	}
}

type fakeCell struct {
	id        int
	zygote    Zygote
	pos       Vec2
	index     int
	destroyed bool
}

type fakeFactory struct {
	created   []*fakeCell
	destroyed int
}

func (f *fakeFactory) Create(z Zygote) Cell {
	c := &fakeCell{id: len(f.created), zygote: z, index: -1}
	f.created = append(f.created, c)
	return c
}

func (f *fakeFactory) Place(cell Cell, pos Vec2) {
	cell.(*fakeCell).pos = pos
}

func (f *fakeFactory) Destroy(cell Cell) {
	cell.(*fakeCell).destroyed = true
	f.destroyed++
}

type fakeHost struct {
	viewport Size
	content  Size
	fraction Vec2
	extent   map[Axis]float64
	anchored []Axis
}

func newFakeHost(viewport, content Size) *fakeHost {
	// Vertical hosts start at the top, which is fraction 1.
	return &fakeHost{
		viewport: viewport,
		content:  content,
		fraction: Vec2{X: 0, Y: 1},
		extent:   make(map[Axis]float64),
	}
}

func (h *fakeHost) Viewport() Size       { return h.viewport }
func (h *fakeHost) Content() Size        { return h.content }
func (h *fakeHost) ScrollFraction() Vec2 { return h.fraction }

func (h *fakeHost) SetScrollFraction(axis Axis, fraction float64) {
	if axis == Horizontal {
		h.fraction.X = fraction
		return
	}
	h.fraction.Y = fraction
}

func (h *fakeHost) SetContentExtent(axis Axis, extent float64) {
	h.extent[axis] = extent
}

func (h *fakeHost) AnchorContent(axis Axis) {
	h.anchored = append(h.anchored, axis)
}

// frames queues deferred work until flush, like a host's layout pass.
type frames struct {
	pending []func()
}

func (f *frames) AfterLayout(fn func()) {
	f.pending = append(f.pending, fn)
}

func (f *frames) flush() {
	pending := f.pending
	f.pending = nil
	for _, fn := range pending {
		fn()
	}
}

type fixture struct {
	engine  *Engine
	source  *fakeSource
	host    *fakeHost
	factory *fakeFactory
}

// newReady builds an engine and runs it through initialization.
func newReady(t *testing.T, cfg Config, source *fakeSource, host *fakeHost, opts ...Option) fixture {
	t.Helper()
	factory := &fakeFactory{}
	e, err := New(cfg, source, host, factory, opts...)
	require.NoError(t, err)

	var sched frames
	var readyErr error
	called := false
	e.Attach(&sched, func(err error) {
		called = true
		readyErr = err
	})
	sched.flush()
	require.True(t, called)
	require.NoError(t, readyErr)
	require.Equal(t, StateReady, e.State())
	return fixture{engine: e, source: source, host: host, factory: factory}
}

func indices(entries []Entry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Index
	}
	return out
}

func span(first, last int) []int {
	out := make([]int, 0, last-first+1)
	for i := first; i <= last; i++ {
		out = append(out, i)
	}
	return out
}

// requireWellFormed checks that the active set is sorted, has no duplicate
// and only holds existing indices.
func requireWellFormed(t *testing.T, e *Engine, count int) {
	t.Helper()
	active := e.Active()
	for i, entry := range active {
		require.GreaterOrEqual(t, entry.Index, 0)
		require.Less(t, entry.Index, count)
		if i > 0 {
			require.Greater(t, entry.Index, active[i-1].Index, "active set must be strictly ascending")
		}
	}
}
