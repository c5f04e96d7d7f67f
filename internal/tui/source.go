package tui

import (
	"github.com/charmbracelet/recycle/internal/recycle"
)

type visual recycle.Size

func (v visual) Size() recycle.Size { return recycle.Size(v) }

// dataSource presents a [Store] to the engine. Lists give each visual type
// its own extent; grids share one cell shape.
type dataSource struct {
	store *Store
	host  *host
	mode  recycle.Mode
}

func newDataSource(store *Store, h *host, mode recycle.Mode) *dataSource {
	return &dataSource{store: store, host: h, mode: mode}
}

func (s *dataSource) SinglePrototype() bool {
	return s.mode.Grid() || s.store.Types() == 1
}

func (s *dataSource) Count() int {
	return s.store.Count()
}

func (s *dataSource) TypeOf(index int) int {
	if s.SinglePrototype() {
		return 0
	}
	if item, ok := s.store.Get(index); ok {
		return item.Type
	}
	return index % s.store.Types()
}

// Prototype sizes list items to the content's cross extent, so list cells
// land on whole terminal cells. Grid cells are four columns per row, about
// square on most fonts.
func (s *dataSource) Prototype(typ int) recycle.Visual {
	content := s.host.Content()
	switch s.mode {
	case recycle.ModeVertical:
		return visual{Width: content.Width, Height: float64(3 + typ)}
	case recycle.ModeHorizontal:
		return visual{Width: float64(18 + 4*typ), Height: content.Height}
	default:
		return visual{Width: 4, Height: 1}
	}
}

func (s *dataSource) Bind(c recycle.Cell, index int) {
	cl := c.(*cell)
	cl.index = index
	cl.item, _ = s.store.Get(index)
	cl.binds++
}
