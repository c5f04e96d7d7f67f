package recycle

import "fmt"

// Mode selects one of the four layout variants.
type Mode int

const (
	ModeVertical Mode = iota
	ModeHorizontal
	ModeGridVertical
	ModeGridHorizontal
)

var modeNames = map[Mode]string{
	ModeVertical:       "vertical",
	ModeHorizontal:     "horizontal",
	ModeGridVertical:   "grid-vertical",
	ModeGridHorizontal: "grid-horizontal",
}

// Modes lists every mode in declaration order.
func Modes() []Mode {
	return []Mode{ModeVertical, ModeHorizontal, ModeGridVertical, ModeGridHorizontal}
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Grid reports whether the mode lays items out in rows or columns.
func (m Mode) Grid() bool {
	return m == ModeGridVertical || m == ModeGridHorizontal
}

// Axis returns the sliding axis of the mode.
func (m Mode) Axis() Axis {
	if m == ModeHorizontal || m == ModeGridHorizontal {
		return Horizontal
	}
	return Vertical
}

// ParseMode parses the string form of a mode.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown layout mode %q", ErrConfiguration, s)
}

func (m Mode) MarshalText() ([]byte, error) {
	if _, ok := modeNames[m]; !ok {
		return nil, fmt.Errorf("%w: unknown layout mode %d", ErrConfiguration, int(m))
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
