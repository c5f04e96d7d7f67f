package recycle

const (
	defaultListCoverage = 1.64
	defaultGridCoverage = 1.5
	defaultListMinimum  = 3
	defaultGridMinimum  = 6
	defaultMinMovement  = 1
)

// Config tunes a layout. Zero values select the defaults of the mode.
type Config struct {
	Mode Mode

	// OrthogonalCount is the number of columns of a vertical grid or rows
	// of a horizontal grid.
	OrthogonalCount int

	// LeadingPadding and TrailingPadding surround the content along the
	// sliding axis.
	LeadingPadding  float64
	TrailingPadding float64

	// Spacing separates consecutive items (lists) or rows/columns (grids)
	// along the sliding axis.
	Spacing float64

	// CrossSpacing is the gutter between and around grid cells across the
	// sliding axis. Lists ignore it.
	CrossSpacing float64

	// CoverageFactor is the multiple of the viewport extent kept bound.
	CoverageFactor float64

	// MinActive is the number of items initialization admits even when the
	// coverage is already reached.
	MinActive int

	// MinMovement is the scroll distance below which a continuous update is
	// ignored.
	MinMovement float64
}

// Normalize clamps out-of-range values and fills in mode defaults.
func (c Config) Normalize() Config {
	if _, ok := modeNames[c.Mode]; !ok {
		c.Mode = ModeVertical
	}
	if c.OrthogonalCount < 1 {
		c.OrthogonalCount = 1
	}
	c.LeadingPadding = max(c.LeadingPadding, 0)
	c.TrailingPadding = max(c.TrailingPadding, 0)
	c.Spacing = max(c.Spacing, 0)
	c.CrossSpacing = max(c.CrossSpacing, 0)

	switch {
	case c.CoverageFactor == 0 && c.Mode.Grid():
		c.CoverageFactor = defaultGridCoverage
	case c.CoverageFactor == 0:
		c.CoverageFactor = defaultListCoverage
	case c.CoverageFactor < 1:
		c.CoverageFactor = 1
	}

	switch {
	case c.MinActive == 0 && c.Mode.Grid():
		c.MinActive = defaultGridMinimum
	case c.MinActive == 0:
		c.MinActive = defaultListMinimum
	case c.MinActive < 0:
		c.MinActive = 0
	}

	if c.MinMovement <= 0 {
		c.MinMovement = defaultMinMovement
	}
	return c
}
