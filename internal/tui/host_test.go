package tui

import (
	"testing"

	"github.com/charmbracelet/recycle/internal/recycle"
	"github.com/stretchr/testify/require"
)

func TestHostVerticalScroll(t *testing.T) {
	t.Parallel()

	h := newHost(recycle.Vertical, recycle.Size{Width: 80, Height: 20})
	h.SetContentExtent(recycle.Vertical, 100)
	require.Equal(t, recycle.Size{Width: 80, Height: 100}, h.Content())
	require.Equal(t, 80.0, h.maxOffset())
	require.Equal(t, recycle.Vec2{Y: 1}, h.ScrollFraction())

	require.True(t, h.scrollBy(10))
	require.InDelta(t, 0.125, h.progress(), 1e-9)
	require.InDelta(t, 0.875, h.ScrollFraction().Y, 1e-9)

	require.True(t, h.scrollBy(1000))
	require.Equal(t, 80.0, h.offset)
	require.False(t, h.scrollBy(1))

	h.SetScrollFraction(recycle.Vertical, 1)
	require.Zero(t, h.offset)
	require.False(t, h.scrollBy(-1))

	h.SetScrollFraction(recycle.Horizontal, 1)
	h.SetScrollFraction(recycle.Vertical, 0.5)
	require.Equal(t, 40.0, h.offset)

	h.AnchorContent(recycle.Vertical)
	require.Zero(t, h.offset)
}

func TestHostHorizontalFraction(t *testing.T) {
	t.Parallel()

	h := newHost(recycle.Horizontal, recycle.Size{Width: 40, Height: 10})
	h.SetContentExtent(recycle.Horizontal, 140)
	require.Equal(t, recycle.Size{Width: 140, Height: 10}, h.Content())
	require.True(t, h.scrollBy(25))
	require.Equal(t, recycle.Vec2{X: 0.25, Y: 1}, h.ScrollFraction())
}

func TestHostShrinkClampsOffset(t *testing.T) {
	t.Parallel()

	h := newHost(recycle.Vertical, recycle.Size{Width: 80, Height: 20})
	h.SetContentExtent(recycle.Vertical, 100)
	h.scrollBy(80)
	h.SetContentExtent(recycle.Vertical, 50)
	require.Equal(t, 30.0, h.offset)
	h.resize(recycle.Size{Width: 80, Height: 60})
	require.Zero(t, h.offset)
	require.Zero(t, h.progress())
}

func TestHostFactoryAndScheduler(t *testing.T) {
	t.Parallel()

	h := newHost(recycle.Vertical, recycle.Size{Width: 10, Height: 10})
	a := h.Create(recycle.Zygote{Type: 1}).(*cell)
	b := h.Create(recycle.Zygote{Type: 1}).(*cell)
	require.NotEqual(t, a.id, b.id)
	require.Equal(t, -1, a.index)
	require.Equal(t, 2, h.live)

	h.Place(a, recycle.Vec2{X: 1, Y: 2})
	require.Equal(t, recycle.Vec2{X: 1, Y: 2}, a.pos)

	h.Destroy(a)
	require.Equal(t, 1, h.live)
	require.Equal(t, 1, h.destroyed)

	ran := 0
	h.AfterLayout(func() { ran++ })
	h.AfterLayout(func() { ran++ })
	require.Zero(t, ran)
	h.flush()
	require.Equal(t, 2, ran)
	h.flush()
	require.Equal(t, 2, ran)
}

func TestDataSource(t *testing.T) {
	t.Parallel()

	store := NewStore(10, 3)
	h := newHost(recycle.Vertical, recycle.Size{Width: 80, Height: 20})

	list := newDataSource(store, h, recycle.ModeVertical)
	require.False(t, list.SinglePrototype())
	require.Equal(t, 10, list.Count())
	require.Equal(t, 1, list.TypeOf(4))
	require.Equal(t, recycle.Size{Width: 80, Height: 4}, list.Prototype(1).Size())

	grid := newDataSource(store, h, recycle.ModeGridVertical)
	require.True(t, grid.SinglePrototype())
	require.Zero(t, grid.TypeOf(4))
	require.Equal(t, recycle.Size{Width: 4, Height: 1}, grid.Prototype(0).Size())

	hh := newHost(recycle.Horizontal, recycle.Size{Width: 80, Height: 20})
	row := newDataSource(store, hh, recycle.ModeHorizontal)
	require.Equal(t, recycle.Size{Width: 26, Height: 20}, row.Prototype(2).Size())

	c := h.Create(recycle.Zygote{}).(*cell)
	list.Bind(c, 3)
	require.Equal(t, 3, c.index)
	require.Equal(t, "Item 4", c.item.Title)
	require.Equal(t, 1, c.binds)
}

func TestSingleTypeStoreIsSinglePrototype(t *testing.T) {
	t.Parallel()

	h := newHost(recycle.Vertical, recycle.Size{Width: 80, Height: 20})
	require.True(t, newDataSource(NewStore(5, 1), h, recycle.ModeVertical).SinglePrototype())
}
