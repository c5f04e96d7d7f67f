package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/recycle/internal/recycle"
	"github.com/charmbracelet/recycle/internal/stringext"
	"github.com/charmbracelet/recycle/internal/tui/styles"
	"github.com/charmbracelet/recycle/internal/tui/util"
	"github.com/charmbracelet/x/ansi"
)

const (
	statusHeight = 1
	freshFor     = 2 * time.Second
	minWidth     = 20
	minHeight    = 8
)

func helpHeight(k KeyMap) int {
	h := 0
	for _, column := range k.FullHelp() {
		h = max(h, len(column))
	}
	return h
}

func modeTitle(m recycle.Mode) string {
	return stringext.Humanize(m.String())
}

// rect is a cell's footprint in terminal cells, relative to the viewport.
type rect struct {
	x, y, w, h int
}

// span floors both edges so that adjacent cells never overlap.
func span(start, extent float64) (int, int) {
	lo := int(math.Floor(start))
	hi := int(math.Floor(start + extent))
	return lo, hi - lo
}

func (h *host) rectOf(e recycle.Entry) rect {
	size := e.Instance.Size
	if h.axis == recycle.Horizontal {
		x, w := span(e.Position.X-h.offset, size.Width)
		y, hh := span(e.Position.Y, size.Height)
		return rect{x: x, y: y, w: w, h: hh}
	}
	x, w := span(e.Position.X, size.Width)
	y, hh := span(e.Position.Y-h.offset, size.Height)
	return rect{x: x, y: y, w: w, h: hh}
}

func renderCell(c *cell, w, h int, now time.Time) string {
	t := styles.CurrentTheme()
	style := t.S().Cell
	title := c.item.Title
	if !c.item.Updated.IsZero() && now.Sub(c.item.Updated) < freshFor {
		style = t.S().CellFresh
		title = styles.FreshIcon + " " + title
	}
	style = style.BorderForeground(t.CellColor(c.item.Type))
	lines := []string{
		t.S().Title.Render(title),
		t.S().Muted.Render(fmt.Sprintf("#%d type %d hits %d", c.index, c.item.Type, c.item.Hits)),
		t.S().Subtle.Render(fmt.Sprintf("cell %s bound %dx", c.id.String()[:8], c.binds)),
	}
	if w < 4 || h < 3 {
		return t.S().Base.Foreground(t.CellColor(c.item.Type)).Render(fmt.Sprintf("%d", c.index))
	}
	inner := max(w-4, 1)
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, inner, "…")
	}
	return style.Width(w).Height(h).Render(strings.Join(lines[:min(len(lines), h-2)], "\n"))
}

// clip cuts a rendered block at r to the viewport and returns the visible
// part with its on-screen origin.
func clip(block string, r rect, width, height int) (string, int, int, bool) {
	lines := strings.Split(block, "\n")
	left := max(-r.x, 0)
	right := min(r.w, width-r.x)
	if right <= left {
		return "", 0, 0, false
	}
	var out []string
	for i, line := range lines {
		row := r.y + i
		if i >= r.h || row >= height {
			break
		}
		if row < 0 {
			continue
		}
		out = append(out, ansi.Cut(line, left, right))
	}
	if len(out) == 0 {
		return "", 0, 0, false
	}
	return strings.Join(out, "\n"), max(r.x, 0), max(r.y, 0), true
}

func (a *appModel) bodyLayers(now time.Time) []*lipgloss.Layer {
	if a.engine == nil || a.engine.State() != recycle.StateReady {
		return nil
	}
	body := a.bodySize()
	width, height := int(body.Width), int(body.Height)
	var layers []*lipgloss.Layer
	for _, e := range a.engine.Active() {
		c, ok := e.Instance.Cell.(*cell)
		if !ok {
			continue
		}
		r := a.host.rectOf(e)
		if r.w <= 0 || r.h <= 0 {
			continue
		}
		visible, x, y, ok := clip(renderCell(c, r.w, r.h, now), r, width, height)
		if !ok {
			continue
		}
		layers = append(layers, lipgloss.NewLayer(visible).X(x).Y(y))
	}
	return layers
}

func (a *appModel) statusView() string {
	t := styles.CurrentTheme()
	mode := t.S().StatusKey.Render(modeTitle(a.layout.Mode))

	var detail string
	switch {
	case a.err != nil:
		detail = t.S().StatusError.Render(styles.ErrorIcon + " " + a.err.Error())
	case a.info.Msg != "":
		style, icon := t.S().Status, styles.InfoIcon
		switch a.info.Type {
		case util.InfoTypeSuccess:
			icon = styles.CheckIcon
		case util.InfoTypeWarn:
			icon = styles.WarnIcon
		case util.InfoTypeError:
			style, icon = t.S().StatusError, styles.ErrorIcon
		}
		detail = style.Render(icon + " " + a.info.Msg)
	case a.engine != nil && a.engine.State() == recycle.StateReady:
		stats := a.engine.Stats()
		detail = t.S().Status.Render(fmt.Sprintf(
			"%d items  %d active  %d free  %d prototypes  %d created  %d reused  %3.0f%%",
			a.store.Count(),
			stats.Active,
			stats.Free,
			stats.Prototypes,
			a.metrics.CellsCreated.Load(),
			a.metrics.CellsReused.Load(),
			a.host.progress()*100,
		))
	default:
		detail = t.S().Status.Render(styles.LoadingIcon + " laying out…")
	}

	line := mode + detail
	if !a.showFullHelp {
		short := a.help.ShortHelpView(a.keyMap.ShortHelp())
		if gap := a.width - lipgloss.Width(line) - lipgloss.Width(short) - 1; gap > 0 {
			line += strings.Repeat(" ", gap) + short
		}
	}
	return ansi.Truncate(line, a.width, "…")
}

func (a *appModel) View() tea.View {
	var view tea.View
	t := styles.CurrentTheme()
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	view.BackgroundColor = t.BgBase
	if a.width < minWidth || a.height < minHeight {
		view.SetContent(
			t.S().Base.Width(a.width).Height(a.height).
				Align(lipgloss.Center, lipgloss.Center).
				Render("Window too small!"),
		)
		return view
	}

	layers := a.bodyLayers(time.Now())
	bottom := int(a.bodySize().Height)
	layers = append(layers, lipgloss.NewLayer(a.statusView()).Y(bottom))
	if a.showFullHelp {
		layers = append(layers, lipgloss.NewLayer(a.help.View(a.keyMap)).Y(bottom+statusHeight))
	}
	view.Content = lipgloss.NewCanvas(layers...).Render()
	return view
}
