package recycle

import "math"

// listLayout places items one after another along a single axis.
type listLayout struct {
	cfg  Config
	axis Axis
	tracker
}

func (l *listLayout) Mode() Mode { return l.cfg.Mode }
func (l *listLayout) Axis() Axis { return l.axis }

func (l *listLayout) extentOf(ctx *Context, index int) float64 {
	return l.axis.main(ctx.Pool.Zygote(index).Size)
}

// leading returns the offset of index's leading edge.
func (l *listLayout) leading(ctx *Context, index int) float64 {
	if index < 1 {
		return l.cfg.LeadingPadding
	}
	if ctx.Source.SinglePrototype() {
		return l.cfg.LeadingPadding + float64(index)*(l.extentOf(ctx, 0)+l.cfg.Spacing)
	}
	offset := l.cfg.LeadingPadding
	for i := range index {
		offset += l.extentOf(ctx, i) + l.cfg.Spacing
	}
	return offset
}

func (l *listLayout) TotalExtent(ctx *Context) (float64, error) {
	n := ctx.Source.Count()
	if n < 1 {
		return 0, nil
	}
	return l.leading(ctx, n) - l.cfg.Spacing + l.cfg.TrailingPadding, nil
}

func (l *listLayout) OffsetFor(ctx *Context, index int) (Vec2, error) {
	if index < 0 {
		return Vec2{}, nil
	}
	return l.axis.point(l.leading(ctx, index), 0), nil
}

func (l *listLayout) PrepareType(ctx *Context, typ int) Zygote {
	var raw Size
	visual := ctx.Source.Prototype(typ)
	if visual != nil {
		raw = visual.Size()
	}
	anchor := Vec2{X: 0.5, Y: 1}
	if l.axis == Horizontal {
		anchor = Vec2{X: 0, Y: 0.5}
	}
	return Zygote{
		Type:   typ,
		Size:   scaleToCross(l.axis, raw, l.axis.cross(ctx.Content)),
		Anchor: uniformAnchor(anchor),
		Visual: visual,
	}
}

func (l *listLayout) place(ctx *Context, index int, offset float64) (Entry, error) {
	return ctx.admit(index, offset, l.axis.point(offset, 0))
}

func (l *listLayout) Initialize(ctx *Context) error {
	viewport := l.axis.main(ctx.Viewport)
	l.reset(l.cfg.CoverageFactor, viewport)
	n := ctx.Source.Count()
	if n < 1 {
		return nil
	}

	limit := viewport * l.cfg.CoverageFactor
	offset := l.cfg.LeadingPadding
	for i := 0; i < n && (offset < limit || i < l.cfg.MinActive); i++ {
		e, err := l.place(ctx, i, offset)
		if err != nil {
			return err
		}
		offset = e.end(l.axis) + l.cfg.Spacing
	}
	return nil
}

func (l *listLayout) OnPositionDelta(ctx *Context, fraction float64) error {
	w, dir, ok := l.delta(l.axis, ctx, fraction, l.cfg.MinMovement)
	if !ok {
		return nil
	}
	if err := ctx.trimCount(); err != nil {
		return err
	}

	if dir > 0 {
		if err := l.trimFront(ctx, w); err != nil {
			return err
		}
		if ctx.Pool.Len() == 0 {
			return l.fill(ctx, w)
		}
		return l.growBack(ctx, w)
	}

	if err := l.trimBack(ctx, w); err != nil {
		return err
	}
	if ctx.Pool.Len() == 0 {
		return l.fill(ctx, w)
	}
	return l.growFront(ctx, w)
}

func (l *listLayout) OnJump(ctx *Context, fraction float64) error {
	w := l.jump(l.axis, ctx, fraction)
	if err := ctx.trimCount(); err != nil {
		return err
	}
	if err := l.trimFront(ctx, w); err != nil {
		return err
	}
	if err := l.trimBack(ctx, w); err != nil {
		return err
	}
	return l.fill(ctx, w)
}

// trimFront evicts low indices that end before the window.
func (l *listLayout) trimFront(ctx *Context, w window) error {
	for {
		first, ok := ctx.Pool.Smallest()
		if !ok || first.end(l.axis) >= w.lo {
			return nil
		}
		if err := ctx.Pool.Evict(first); err != nil {
			return err
		}
	}
}

// trimBack evicts high indices that start after the window.
func (l *listLayout) trimBack(ctx *Context, w window) error {
	for {
		last, ok := ctx.Pool.Largest()
		if !ok || last.Offset <= w.hi {
			return nil
		}
		if err := ctx.Pool.Evict(last); err != nil {
			return err
		}
	}
}

// growBack admits increasing indices after the last active entry until the
// window's far boundary or the end of the data.
func (l *listLayout) growBack(ctx *Context, w window) error {
	n := ctx.Source.Count()
	for {
		last, ok := ctx.Pool.Largest()
		if !ok || last.Index+1 >= n {
			return nil
		}
		start := last.end(l.axis) + l.cfg.Spacing
		if start > w.hi {
			return nil
		}
		if _, err := l.place(ctx, last.Index+1, start); err != nil {
			return err
		}
	}
}

// growFront admits decreasing indices before the first active entry until
// the window's near boundary or index zero.
func (l *listLayout) growFront(ctx *Context, w window) error {
	for {
		first, ok := ctx.Pool.Smallest()
		if !ok || first.Index < 1 {
			return nil
		}
		index := first.Index - 1
		extent := l.extentOf(ctx, index)
		start := first.Offset - l.cfg.Spacing - extent
		if start+extent < w.lo {
			return nil
		}
		if _, err := l.place(ctx, index, start); err != nil {
			return err
		}
	}
}

// seek returns the first index that does not end before lo, with its
// leading offset.
func (l *listLayout) seek(ctx *Context, lo float64) (int, float64) {
	n := ctx.Source.Count()
	index, offset := 0, l.cfg.LeadingPadding
	if ctx.Source.SinglePrototype() {
		step := l.extentOf(ctx, 0) + l.cfg.Spacing
		if step > 0 && lo > offset {
			index = min(int(math.Floor((lo-offset)/step)), n)
			offset += float64(index) * step
		}
	}
	for index < n {
		extent := l.extentOf(ctx, index)
		if offset+extent >= lo {
			break
		}
		offset += extent + l.cfg.Spacing
		index++
	}
	return index, offset
}

// fill walks the window from its start, admitting every index that is not
// already active.
func (l *listLayout) fill(ctx *Context, w window) error {
	first, last, active := activeRange(ctx.Pool)
	n := ctx.Source.Count()
	index, offset := l.seek(ctx, w.lo)
	for ; index < n && offset <= w.hi; index++ {
		extent := l.extentOf(ctx, index)
		if !(active && index >= first && index <= last) && w.intersects(offset, offset+extent) {
			if _, err := l.place(ctx, index, offset); err != nil {
				return err
			}
		}
		offset += extent + l.cfg.Spacing
	}
	return nil
}
