package recycle

import "math"

// Vec2 is a position in content coordinates or a pair of scroll fractions.
// X grows rightwards and Y grows downwards from the content's leading corner.
type Vec2 struct {
	X, Y float64
}

// Size is a width and height in content units.
type Size struct {
	Width, Height float64
}

// Axis is the direction content slides in.
type Axis int

const (
	Vertical Axis = iota
	Horizontal
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// main returns the extent of s along the axis.
func (a Axis) main(s Size) float64 {
	if a == Horizontal {
		return s.Width
	}
	return s.Height
}

// cross returns the extent of s across the axis.
func (a Axis) cross(s Size) float64 {
	if a == Horizontal {
		return s.Height
	}
	return s.Width
}

func (a Axis) size(main, cross float64) Size {
	if a == Horizontal {
		return Size{Width: main, Height: cross}
	}
	return Size{Width: cross, Height: main}
}

func (a Axis) point(main, cross float64) Vec2 {
	if a == Horizontal {
		return Vec2{X: main, Y: cross}
	}
	return Vec2{X: cross, Y: main}
}

// Component picks the scroll fraction that belongs to the axis.
func (a Axis) Component(v Vec2) float64 {
	if a == Horizontal {
		return v.X
	}
	return v.Y
}

// Progress converts a host scroll fraction into progress from the content's
// leading edge. Hosts report vertical fractions bottom-anchored (1 is the
// top), so the vertical axis inverts them. Progress is its own inverse.
func (a Axis) Progress(fraction float64) float64 {
	f := clamp01(fraction)
	if a == Vertical {
		return 1 - f
	}
	return f
}

func clamp01(f float64) float64 {
	switch {
	case math.IsNaN(f), f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
