package recycle

import (
	"testing"

	"github.com/charmbracelet/recycle/internal/metrics"
	"github.com/stretchr/testify/require"
)

// verticalFraction converts a scroll offset into the bottom-anchored host
// fraction of a vertical container.
func verticalFraction(pos, extent, viewport float64) Vec2 {
	return Vec2{Y: 1 - pos/(extent-viewport)}
}

func boundIndices(s *fakeSource) []int {
	out := make([]int, len(s.binds))
	for i, b := range s.binds {
		out[i] = b.index
	}
	return out
}

func TestListInitializeFillsCoverage(t *testing.T) {
	t.Parallel()

	source := newSingleSource(100, Size{Width: 100, Height: 50})
	host := newFakeHost(Size{Width: 100, Height: 300}, Size{Width: 100, Height: 300})
	f := newReady(t, Config{Mode: ModeVertical, CoverageFactor: 1.5}, source, host)

	active := f.engine.Active()
	require.Equal(t, span(0, 8), indices(active))
	for i, e := range active {
		require.InDelta(t, float64(i)*50, e.Offset, 1e-9)
		require.Equal(t, Vec2{X: 0, Y: float64(i) * 50}, e.Position)
		require.Equal(t, e.Position, e.Cell.(*fakeCell).pos)
	}
	require.Equal(t, span(0, 8), boundIndices(source))
	require.Equal(t, 5000.0, f.engine.TotalExtent())
	require.Equal(t, 5000.0, host.extent[Vertical])
	require.Equal(t, []Axis{Vertical}, host.anchored)
}

func TestListPrototypeFollowsContentWidth(t *testing.T) {
	t.Parallel()

	source := newSingleSource(10, Size{Width: 100, Height: 50})
	host := newFakeHost(Size{Width: 200, Height: 300}, Size{Width: 200, Height: 300})
	f := newReady(t, Config{Mode: ModeVertical}, source, host)

	z := f.factory.created[0].zygote
	require.Equal(t, Size{Width: 200, Height: 100}, z.Size)
	require.Equal(t, uniformAnchor(Vec2{X: 0.5, Y: 1}), z.Anchor)
	require.Equal(t, 1000.0, f.engine.TotalExtent())
}

func TestListMinimumActive(t *testing.T) {
	t.Parallel()

	source := newSingleSource(100, Size{Width: 100, Height: 50})
	host := newFakeHost(Size{Width: 100, Height: 10}, Size{Width: 100, Height: 10})
	f := newReady(t, Config{Mode: ModeVertical}, source, host)

	require.Equal(t, span(0, 2), indices(f.engine.Active()))
}

func TestListEmptySource(t *testing.T) {
	t.Parallel()

	source := newSingleSource(0, Size{Width: 100, Height: 50})
	host := newFakeHost(Size{Width: 100, Height: 300}, Size{Width: 100, Height: 300})
	f := newReady(t, Config{Mode: ModeVertical}, source, host)

	require.Empty(t, f.engine.Active())
	require.Zero(t, f.engine.TotalExtent())
	require.NoError(t, f.engine.ScrollTo(0.5))
	require.NoError(t, f.engine.OnScrollPositionChanged(Vec2{Y: 0.2}))
	require.Empty(t, f.engine.Active())
}

func TestListMultiplePrototypes(t *testing.T) {
	t.Parallel()

	source := &fakeSource{
		count: 10,
		types: []Size{{Width: 100, Height: 20}, {Width: 100, Height: 40}},
	}
	host := newFakeHost(Size{Width: 100, Height: 1000}, Size{Width: 100, Height: 1000})
	cfg := Config{Mode: ModeVertical, LeadingPadding: 10, TrailingPadding: 7, Spacing: 5}
	f := newReady(t, cfg, source, host)

	// 10 + 5*20 + 5*40 + 9*5 + 7
	require.InDelta(t, 362.0, f.engine.TotalExtent(), 1e-9)
	pos, err := f.engine.OffsetFor(3)
	require.NoError(t, err)
	require.InDelta(t, 105.0, pos.Y, 1e-9)

	active := f.engine.Active()
	require.Equal(t, span(0, 9), indices(active))
	for _, e := range active {
		want, err := f.engine.OffsetFor(e.Index)
		require.NoError(t, err)
		require.InDelta(t, want.Y, e.Offset, 1e-9)
		require.Equal(t, e.Index%2, e.Type)
	}
	require.Equal(t, 2, f.engine.Stats().Prototypes)
}

func TestListIncrementalScroll(t *testing.T) {
	t.Parallel()

	source := newSingleSource(100, Size{Width: 100, Height: 50})
	host := newFakeHost(Size{Width: 100, Height: 300}, Size{Width: 100, Height: 300})
	f := newReady(t, Config{Mode: ModeVertical, CoverageFactor: 1.5}, source, host)
	scrollTo := func(pos float64) {
		t.Helper()
		require.NoError(t, f.engine.OnScrollPositionChanged(verticalFraction(pos, 5000, 300)))
	}

	scrollTo(1000)
	require.Equal(t, span(18, 27), indices(f.engine.Active()))

	scrollTo(1060)
	require.Equal(t, span(19, 28), indices(f.engine.Active()))

	scrollTo(1000)
	require.Equal(t, span(18, 27), indices(f.engine.Active()))

	source.binds = nil
	scrollTo(700)
	require.Equal(t, span(12, 21), indices(f.engine.Active()))
	require.Equal(t, []int{17, 16, 15, 14, 13, 12}, boundIndices(source))

	for _, e := range f.engine.Active() {
		require.InDelta(t, float64(e.Index)*50, e.Offset, 1e-9)
	}
}

func TestListDebouncesSmallMovement(t *testing.T) {
	t.Parallel()

	m := metrics.NewMetrics()
	source := newSingleSource(100, Size{Width: 100, Height: 50})
	host := newFakeHost(Size{Width: 100, Height: 300}, Size{Width: 100, Height: 300})
	f := newReady(t, Config{Mode: ModeVertical, MinMovement: 5}, source, host, WithMetrics(m))
	before := indices(f.engine.Active())

	require.NoError(t, f.engine.OnScrollPositionChanged(verticalFraction(4, 5000, 300)))
	require.Equal(t, int64(1), m.Debounced.Load())
	require.Equal(t, before, indices(f.engine.Active()))

	require.NoError(t, f.engine.OnScrollPositionChanged(verticalFraction(600, 5000, 300)))
	require.Equal(t, int64(2), m.Deltas.Load())
	require.Equal(t, int64(1), m.Debounced.Load())
}

func TestListScrollToInvertsVertical(t *testing.T) {
	t.Parallel()

	source := newSingleSource(100, Size{Width: 100, Height: 50})
	host := newFakeHost(Size{Width: 100, Height: 300}, Size{Width: 100, Height: 300})
	f := newReady(t, Config{Mode: ModeVertical, CoverageFactor: 1.5}, source, host)

	require.NoError(t, f.engine.ScrollTo(1))
	require.Equal(t, 0.0, host.fraction.Y)
	require.Equal(t, span(92, 99), indices(f.engine.Active()))

	require.NoError(t, f.engine.ScrollTo(-3))
	require.Equal(t, 1.0, host.fraction.Y)
	require.Equal(t, span(0, 7), indices(f.engine.Active()))
}

func TestHorizontalList(t *testing.T) {
	t.Parallel()

	source := newSingleSource(100, Size{Width: 50, Height: 100})
	host := newFakeHost(Size{Width: 300, Height: 100}, Size{Width: 300, Height: 100})
	cfg := Config{Mode: ModeHorizontal, CoverageFactor: 1.5, LeadingPadding: 20, TrailingPadding: 30}
	f := newReady(t, cfg, source, host)

	require.Equal(t, 5050.0, host.extent[Horizontal])
	active := f.engine.Active()
	require.Equal(t, span(0, 8), indices(active))
	for i, e := range active {
		require.Equal(t, Vec2{X: 20 + float64(i)*50, Y: 0}, e.Position)
	}
	z := f.factory.created[0].zygote
	require.Equal(t, Size{Width: 50, Height: 100}, z.Size)
	require.Equal(t, uniformAnchor(Vec2{X: 0, Y: 0.5}), z.Anchor)

	// Horizontal fractions are not inverted.
	require.NoError(t, f.engine.ScrollTo(1))
	require.Equal(t, 1.0, host.fraction.X)
	require.Equal(t, span(93, 99), indices(f.engine.Active()))

	require.NoError(t, f.engine.OnScrollPositionChanged(Vec2{X: 0, Y: 0.3}))
	require.Equal(t, span(0, 7), indices(f.engine.Active()))
}

func TestListJumpIsIdempotent(t *testing.T) {
	t.Parallel()

	source := newSingleSource(100, Size{Width: 100, Height: 50})
	host := newFakeHost(Size{Width: 100, Height: 300}, Size{Width: 100, Height: 300})
	f := newReady(t, Config{Mode: ModeVertical}, source, host)

	require.NoError(t, f.engine.ScrollTo(0.37))
	first := indices(f.engine.Active())
	extent := f.engine.TotalExtent()
	binds := len(source.binds)

	require.NoError(t, f.engine.ScrollTo(0.37))
	require.Equal(t, first, indices(f.engine.Active()))
	require.Equal(t, extent, f.engine.TotalExtent())
	require.Equal(t, binds, len(source.binds))
}

func TestListContentFitsViewport(t *testing.T) {
	t.Parallel()

	source := newSingleSource(4, Size{Width: 100, Height: 50})
	host := newFakeHost(Size{Width: 100, Height: 300}, Size{Width: 100, Height: 300})
	f := newReady(t, Config{Mode: ModeVertical}, source, host)
	require.Equal(t, span(0, 3), indices(f.engine.Active()))

	require.NoError(t, f.engine.OnScrollPositionChanged(Vec2{Y: 0}))
	require.NoError(t, f.engine.ScrollTo(1))
	require.Equal(t, span(0, 3), indices(f.engine.Active()))
}
