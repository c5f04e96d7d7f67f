package styles

import (
	"image/color"
	"sync"

	"charm.land/lipgloss/v2"
)

// Theme is a palette plus the styles derived from it.
type Theme struct {
	Name   string
	IsDark bool

	Primary   color.Color
	Secondary color.Color
	Tertiary  color.Color
	Accent    color.Color

	BgBase    color.Color
	BgSubtle  color.Color
	BgOverlay color.Color

	FgBase     color.Color
	FgMuted    color.Color
	FgSubtle   color.Color
	FgSelected color.Color

	Border      color.Color
	BorderFocus color.Color

	Success color.Color
	Error   color.Color
	Warning color.Color
	Info    color.Color

	White color.Color

	// CellColors tint cells by visual type.
	CellColors []color.Color

	styles     *Styles
	stylesOnce sync.Once
}

// Styles are the lipgloss styles the terminal host renders with.
type Styles struct {
	Base        lipgloss.Style
	Muted       lipgloss.Style
	Subtle      lipgloss.Style
	Title       lipgloss.Style
	Status      lipgloss.Style
	StatusKey   lipgloss.Style
	StatusError lipgloss.Style
	Cell        lipgloss.Style
	CellFresh   lipgloss.Style
}

var currentTheme = sync.OnceValue(NewCharmtoneTheme)

// CurrentTheme returns the active theme.
func CurrentTheme() *Theme {
	return currentTheme()
}

func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = t.buildStyles()
	})
	return t.styles
}

// CellColor returns the tint for visual type typ.
func (t *Theme) CellColor(typ int) color.Color {
	if len(t.CellColors) == 0 {
		return t.Primary
	}
	if typ < 0 {
		typ = -typ
	}
	return t.CellColors[typ%len(t.CellColors)]
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)
	return &Styles{
		Base:   base,
		Muted:  base.Foreground(t.FgMuted),
		Subtle: base.Foreground(t.FgSubtle),
		Title:  base.Foreground(t.Secondary).Bold(true),
		Status: base.
			Foreground(t.FgMuted).
			Background(t.BgSubtle).
			Padding(0, 1),
		StatusKey: base.
			Foreground(t.White).
			Background(t.Primary).
			Bold(true).
			Padding(0, 1),
		StatusError: base.
			Foreground(t.White).
			Background(t.Error).
			Padding(0, 1),
		Cell: base.
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		CellFresh: base.
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Accent).
			Padding(0, 1),
	}
}
