package recycle

import (
	"fmt"
	"math"
)

// gridLayout places items in whole rows (vertical) or whole columns
// (horizontal) of cfg.OrthogonalCount cells each. Rows are admitted and
// evicted atomically; only the final row of the data may be short.
type gridLayout struct {
	cfg  Config
	axis Axis
	tracker
}

func (g *gridLayout) Mode() Mode { return g.cfg.Mode }
func (g *gridLayout) Axis() Axis { return g.axis }

func (g *gridLayout) lines() int { return g.cfg.OrthogonalCount }

// cell returns the shared cell size, rejecting data sources with more than
// one prototype.
func (g *gridLayout) cell(ctx *Context) (Size, error) {
	if !ctx.Source.SinglePrototype() {
		return Size{}, errMultiPrototype(g.cfg.Mode)
	}
	return ctx.Pool.Zygote(0).Size, nil
}

func (g *gridLayout) rows(n int) int {
	if n < 1 {
		return 0
	}
	return (n-1)/g.lines() + 1
}

func (g *gridLayout) rowStart(cell Size, row int) float64 {
	return g.cfg.LeadingPadding + float64(row)*(g.axis.main(cell)+g.cfg.Spacing)
}

func (g *gridLayout) rowEnd(cell Size, row int) float64 {
	return g.rowStart(cell, row) + g.axis.main(cell)
}

func (g *gridLayout) position(cell Size, index int) (float64, Vec2) {
	row, col := index/g.lines(), index%g.lines()
	main := g.rowStart(cell, row)
	cross := g.cfg.CrossSpacing + float64(col)*(g.axis.cross(cell)+g.cfg.CrossSpacing)
	return main, g.axis.point(main, cross)
}

func (g *gridLayout) TotalExtent(ctx *Context) (float64, error) {
	n := ctx.Source.Count()
	if n < 1 {
		return 0, nil
	}
	cell, err := g.cell(ctx)
	if err != nil {
		return 0, err
	}
	return g.rowEnd(cell, g.rows(n)-1) + g.cfg.TrailingPadding, nil
}

func (g *gridLayout) OffsetFor(ctx *Context, index int) (Vec2, error) {
	if index < 0 {
		return Vec2{}, nil
	}
	cell, err := g.cell(ctx)
	if err != nil {
		return Vec2{}, err
	}
	_, pos := g.position(cell, index)
	return pos, nil
}

func (g *gridLayout) PrepareType(ctx *Context, typ int) Zygote {
	var raw Size
	visual := ctx.Source.Prototype(typ)
	if visual != nil {
		raw = visual.Size()
	}
	n := float64(g.lines())
	cross := (g.axis.cross(ctx.Content) - g.cfg.CrossSpacing*(n+1)) / n
	return Zygote{
		Type:   typ,
		Size:   scaleToCross(g.axis, raw, cross),
		Anchor: uniformAnchor(Vec2{X: 0, Y: 1}),
		Visual: visual,
	}
}

// admitRow admits every index of row that skip does not reject, ascending
// or descending.
func (g *gridLayout) admitRow(ctx *Context, cell Size, row int, descending bool, skip func(int) bool) (int, error) {
	first := row * g.lines()
	last := min(first+g.lines(), ctx.Source.Count()) - 1
	admitted := 0
	for k := 0; k <= last-first; k++ {
		index := first + k
		if descending {
			index = last - k
		}
		if skip != nil && skip(index) {
			continue
		}
		main, pos := g.position(cell, index)
		if _, err := ctx.admit(index, main, pos); err != nil {
			return admitted, err
		}
		admitted++
	}
	return admitted, nil
}

func (g *gridLayout) Initialize(ctx *Context) error {
	viewport := g.axis.main(ctx.Viewport)
	g.reset(g.cfg.CoverageFactor, viewport)
	n := ctx.Source.Count()
	if n < 1 {
		return nil
	}
	cell, err := g.cell(ctx)
	if err != nil {
		return err
	}

	limit := viewport * g.cfg.CoverageFactor
	admitted := 0
	for row := range g.rows(n) {
		if g.rowStart(cell, row) >= limit && admitted >= g.cfg.MinActive {
			break
		}
		k, err := g.admitRow(ctx, cell, row, false, nil)
		admitted += k
		if err != nil {
			return err
		}
	}
	return nil
}

func (g *gridLayout) OnPositionDelta(ctx *Context, fraction float64) error {
	w, dir, ok := g.delta(g.axis, ctx, fraction, g.cfg.MinMovement)
	if !ok {
		return nil
	}
	cell, err := g.cell(ctx)
	if err != nil {
		return err
	}
	if err := ctx.trimCount(); err != nil {
		return err
	}

	if dir > 0 {
		if err := g.trimFront(ctx, cell, w); err != nil {
			return err
		}
		if ctx.Pool.Len() == 0 {
			return g.fill(ctx, cell, w)
		}
		return g.growBack(ctx, cell, w)
	}

	if err := g.trimBack(ctx, cell, w); err != nil {
		return err
	}
	if ctx.Pool.Len() == 0 {
		return g.fill(ctx, cell, w)
	}
	return g.growFront(ctx, cell, w)
}

func (g *gridLayout) OnJump(ctx *Context, fraction float64) error {
	w := g.jump(g.axis, ctx, fraction)
	if ctx.Source.Count() < 1 {
		ctx.Pool.EvictAll()
		return nil
	}
	cell, err := g.cell(ctx)
	if err != nil {
		return err
	}
	if err := ctx.trimCount(); err != nil {
		return err
	}
	if err := g.trimFront(ctx, cell, w); err != nil {
		return err
	}
	if err := g.trimBack(ctx, cell, w); err != nil {
		return err
	}
	return g.fill(ctx, cell, w)
}

// trimFront evicts whole leading rows that end before the window.
func (g *gridLayout) trimFront(ctx *Context, cell Size, w window) error {
	for {
		first, ok := ctx.Pool.Smallest()
		if !ok {
			return nil
		}
		row := first.Index / g.lines()
		if g.rowEnd(cell, row) >= w.lo {
			return nil
		}
		for ok && first.Index/g.lines() == row {
			if err := ctx.Pool.Evict(first); err != nil {
				return err
			}
			first, ok = ctx.Pool.Smallest()
		}
	}
}

// trimBack evicts whole trailing rows that start after the window.
func (g *gridLayout) trimBack(ctx *Context, cell Size, w window) error {
	for {
		last, ok := ctx.Pool.Largest()
		if !ok {
			return nil
		}
		row := last.Index / g.lines()
		if g.rowStart(cell, row) <= w.hi {
			return nil
		}
		for ok && last.Index/g.lines() == row {
			if err := ctx.Pool.Evict(last); err != nil {
				return err
			}
			last, ok = ctx.Pool.Largest()
		}
	}
}

func (g *gridLayout) growBack(ctx *Context, cell Size, w window) error {
	n := ctx.Source.Count()
	for {
		last, ok := ctx.Pool.Largest()
		if !ok {
			return nil
		}
		if last.Index%g.lines() != g.lines()-1 && last.Index != n-1 {
			return fmt.Errorf("%w: row %d ends at partial index %d", ErrInvariant, last.Index/g.lines(), last.Index)
		}
		next := last.Index/g.lines() + 1
		if next*g.lines() >= n || g.rowStart(cell, next) > w.hi {
			return nil
		}
		if _, err := g.admitRow(ctx, cell, next, false, nil); err != nil {
			return err
		}
	}
}

func (g *gridLayout) growFront(ctx *Context, cell Size, w window) error {
	for {
		first, ok := ctx.Pool.Smallest()
		if !ok {
			return nil
		}
		if first.Index%g.lines() != 0 {
			return fmt.Errorf("%w: row %d starts at partial index %d", ErrInvariant, first.Index/g.lines(), first.Index)
		}
		prev := first.Index/g.lines() - 1
		if prev < 0 || g.rowEnd(cell, prev) < w.lo {
			return nil
		}
		if _, err := g.admitRow(ctx, cell, prev, true, nil); err != nil {
			return err
		}
	}
}

// fill walks whole rows across the window, admitting every index that is
// not already active.
func (g *gridLayout) fill(ctx *Context, cell Size, w window) error {
	first, last, active := activeRange(ctx.Pool)
	skip := func(index int) bool {
		return active && index >= first && index <= last
	}

	rows := g.rows(ctx.Source.Count())
	row := 0
	if step := g.axis.main(cell) + g.cfg.Spacing; step > 0 && w.lo > g.cfg.LeadingPadding {
		row = min(int(math.Floor((w.lo-g.cfg.LeadingPadding)/step)), rows)
	}
	for row < rows && g.rowEnd(cell, row) < w.lo {
		row++
	}
	for ; row < rows && g.rowStart(cell, row) <= w.hi; row++ {
		if _, err := g.admitRow(ctx, cell, row, false, skip); err != nil {
			return err
		}
	}
	return nil
}
