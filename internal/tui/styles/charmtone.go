package styles

import (
	"image/color"

	"github.com/charmbracelet/x/exp/charmtone"
)

func NewCharmtoneTheme() *Theme {
	return &Theme{
		Name:   "charmtone",
		IsDark: true,

		Primary:   charmtone.Charple,
		Secondary: charmtone.Dolly,
		Tertiary:  charmtone.Bok,
		Accent:    charmtone.Zest,

		// Backgrounds
		BgBase:    charmtone.Pepper,
		BgSubtle:  charmtone.Charcoal,
		BgOverlay: charmtone.Iron,

		// Foregrounds
		FgBase:     charmtone.Ash,
		FgMuted:    charmtone.Squid,
		FgSubtle:   charmtone.Oyster,
		FgSelected: charmtone.Salt,

		// Borders
		Border:      charmtone.Charcoal,
		BorderFocus: charmtone.Charple,

		// Status
		Success: charmtone.Guac,
		Error:   charmtone.Sriracha,
		Warning: charmtone.Zest,
		Info:    charmtone.Malibu,

		White: charmtone.Butter,

		CellColors: []color.Color{
			charmtone.Malibu,
			charmtone.Julep,
			charmtone.Coral,
			charmtone.Citron,
			charmtone.Dolly,
		},
	}
}
