package recycle

// Anchor is the placement metadata a host applies to every cell created
// from a prototype, in normalized parent coordinates.
type Anchor struct {
	Min, Max, Pivot Vec2
}

// Zygote is the immutable layout prototype of one visual type.
type Zygote struct {
	Type   int
	Size   Size
	Anchor Anchor
	Visual Visual
}

func uniformAnchor(v Vec2) Anchor {
	return Anchor{Min: v, Max: v, Pivot: v}
}

// scaleToCross scales raw so that its cross-axis extent becomes cross while
// keeping its aspect ratio. A raw size without a cross extent is kept as is.
func scaleToCross(axis Axis, raw Size, cross float64) Size {
	rawMain, rawCross := axis.main(raw), axis.cross(raw)
	if rawCross <= 0 {
		return raw
	}
	if cross < 0 {
		cross = 0
	}
	return axis.size(rawMain/rawCross*cross, cross)
}

// prototypes memoizes one Zygote per visual type. Entries are never
// re-derived until clear.
type prototypes struct {
	byType map[int]Zygote
	derive func(typ int) Zygote
}

func newPrototypes(derive func(typ int) Zygote) *prototypes {
	return &prototypes{
		byType: make(map[int]Zygote),
		derive: derive,
	}
}

func (p *prototypes) get(typ int) Zygote {
	if z, ok := p.byType[typ]; ok {
		return z
	}
	z := p.derive(typ)
	z.Type = typ
	p.byType[typ] = z
	return z
}

func (p *prototypes) len() int {
	return len(p.byType)
}

func (p *prototypes) clear() {
	clear(p.byType)
}
