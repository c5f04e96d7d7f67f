package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/recycle/internal/config"
	"github.com/charmbracelet/recycle/internal/metrics"
	"github.com/charmbracelet/recycle/internal/recycle"
	"github.com/charmbracelet/recycle/internal/tui/util"
)

const (
	refreshInterval = 100 * time.Millisecond
	resizeStep      = 10
	defaultGridLine = 3
	wheelStep       = 3
)

type (
	frameMsg struct{}
	tickMsg  time.Time

	// ConfigChangedMsg carries a reloaded configuration.
	ConfigChangedMsg struct {
		Config *config.Config
	}
)

var lastMouseEvent time.Time

// MouseEventFilter drops wheel events that arrive faster than a frame.
func MouseEventFilter(m tea.Model, msg tea.Msg) tea.Msg {
	switch msg.(type) {
	case tea.MouseWheelMsg, tea.MouseMotionMsg:
		now := time.Now()
		// trackpad is sending too many requests
		if now.Sub(lastMouseEvent) < 15*time.Millisecond {
			return nil
		}
		lastMouseEvent = now
	}
	return msg
}

func frameCmd() tea.Msg { return frameMsg{} }

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// appModel hosts one windowing engine over the demo store.
type appModel struct {
	width, height int
	keyMap        KeyMap
	help          help.Model
	showFullHelp  bool

	cfg     *config.Config
	layout  recycle.Config
	metrics *metrics.Metrics

	store  *Store
	host   *host
	source *dataSource
	engine *recycle.Engine

	// restore is the progress to jump back to once a re-attached engine is
	// ready.
	restore float64
	seen    uint64

	info util.InfoMsg
	err  error
}

// New returns the terminal browser for store, laid out per cfg.
func New(cfg *config.Config, store *Store, m *metrics.Metrics) (*appModel, error) {
	layout, err := cfg.Layout.Engine()
	if err != nil {
		return nil, err
	}
	if m == nil {
		m = metrics.NewMetrics()
	}
	_, seen := store.Changed(0)
	return &appModel{
		keyMap:  DefaultKeyMap(),
		help:    help.New(),
		cfg:     cfg,
		layout:  layout,
		metrics: m,
		store:   store,
		seen:    seen,
	}, nil
}

func (a *appModel) Init() tea.Cmd {
	return tickCmd()
}

func (a *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, a.reattach()

	case frameMsg:
		if a.host != nil {
			a.host.flush()
		}
		return a, nil

	case tickMsg:
		if changed, seen := a.store.Changed(a.seen); changed {
			a.seen = seen
			if a.engine != nil {
				a.setError(a.engine.RefreshVisible())
			}
		}
		return a, tickCmd()

	case ConfigChangedMsg:
		return a, a.applyConfig(msg.Config)

	case util.InfoMsg:
		a.info = msg
		return a, util.ClearAfter(msg.TTL)

	case util.ClearStatusMsg:
		a.info = util.InfoMsg{}
		return a, nil

	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelDown, tea.MouseWheelRight:
			a.scroll(wheelStep)
		case tea.MouseWheelUp, tea.MouseWheelLeft:
			a.scroll(-wheelStep)
		}
		return a, nil

	case tea.KeyPressMsg:
		return a, a.handleKeyPressMsg(msg)
	}
	return a, nil
}

func (a *appModel) handleKeyPressMsg(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keyMap.Quit):
		return tea.Quit
	case key.Matches(msg, a.keyMap.Help):
		a.showFullHelp = !a.showFullHelp
		a.help.ShowAll = a.showFullHelp
		return a.reattach()
	case key.Matches(msg, a.keyMap.Mode):
		a.layout = nextMode(a.layout)
		return tea.Batch(a.rebuild(), util.ReportInfo("Layout: "+modeTitle(a.layout.Mode)))
	}

	if a.engine == nil || a.engine.State() != recycle.StateReady {
		return nil
	}

	switch {
	case key.Matches(msg, a.keyMap.Forward):
		a.scroll(1)
	case key.Matches(msg, a.keyMap.Backward):
		a.scroll(-1)
	case key.Matches(msg, a.keyMap.PageForward):
		a.scroll(a.host.mainViewport())
	case key.Matches(msg, a.keyMap.PageBackward):
		a.scroll(-a.host.mainViewport())
	case key.Matches(msg, a.keyMap.Start):
		a.setError(a.engine.ScrollTo(0))
	case key.Matches(msg, a.keyMap.End):
		a.setError(a.engine.ScrollTo(1))
	case key.Matches(msg, a.keyMap.More):
		a.store.Resize(a.store.Count() + resizeStep)
		a.setError(a.engine.DataChanged())
	case key.Matches(msg, a.keyMap.Fewer):
		if a.store.Count() == 0 {
			return util.ReportWarn("The collection is already empty")
		}
		a.store.Resize(a.store.Count() - resizeStep)
		a.setError(a.engine.DataChanged())
	case key.Matches(msg, a.keyMap.Refresh):
		a.setError(a.engine.RefreshVisible())
		return util.ReportInfo(fmt.Sprintf("Rebound %d cells", a.engine.Stats().Active))
	}
	return nil
}

func (a *appModel) scroll(d float64) {
	if a.engine == nil || a.host == nil || !a.host.scrollBy(d) {
		return
	}
	a.setError(a.engine.OnScrollPositionChanged(a.host.ScrollFraction()))
}

func (a *appModel) setError(err error) {
	if err == nil {
		return
	}
	slog.Error("Engine operation failed", "mode", a.layout.Mode, "error", err)
	a.err = err
}

// bodySize is the part of the window left to the viewport.
func (a *appModel) bodySize() recycle.Size {
	chrome := statusHeight
	if a.showFullHelp {
		chrome += helpHeight(a.keyMap)
	}
	return recycle.Size{
		Width:  float64(max(a.width, 0)),
		Height: float64(max(a.height-chrome, 0)),
	}
}

// rebuild replaces the engine, so that a new layout variant never shares
// state with the previous one.
func (a *appModel) rebuild() tea.Cmd {
	if a.engine != nil {
		a.engine.Detach()
		a.engine = nil
	}
	a.err = nil
	a.restore = 0
	if a.width == 0 || a.height == 0 {
		return nil
	}

	a.host = newHost(a.layout.Mode.Axis(), a.bodySize())
	a.source = newDataSource(a.store, a.host, a.layout.Mode)
	engine, err := recycle.New(a.layout, a.source, a.host, a.host, recycle.WithMetrics(a.metrics))
	if err != nil {
		a.setError(err)
		return nil
	}
	a.engine = engine
	a.engine.Attach(a.host, a.onReady)
	return frameCmd
}

// reattach sizes the viewport again. Prototypes depend on the cross extent,
// so the engine starts over and jumps back to where it was.
func (a *appModel) reattach() tea.Cmd {
	if a.engine == nil {
		return a.rebuild()
	}
	restore := a.host.progress()
	a.engine.Detach()
	a.host.resize(a.bodySize())
	a.restore = restore
	a.engine.Attach(a.host, a.onReady)
	return frameCmd
}

func (a *appModel) onReady(err error) {
	if err != nil {
		a.setError(err)
		return
	}
	a.err = nil
	if a.restore > 0 {
		a.setError(a.engine.ScrollTo(a.restore))
		a.restore = 0
	}
	slog.Debug("Terminal host ready", "mode", a.layout.Mode, "stats", a.engine.Stats())
}

func (a *appModel) applyConfig(cfg *config.Config) tea.Cmd {
	layout, err := cfg.Layout.Engine()
	if err != nil {
		return util.ReportError(fmt.Errorf("ignoring reloaded config: %w", err))
	}
	changed := config.LayoutChanged(a.cfg, cfg)
	a.cfg = cfg
	if !changed {
		return nil
	}
	a.layout = layout
	if cfg.Demo.Items != a.store.Count() {
		a.store.Resize(cfg.Demo.Items)
	}
	return tea.Batch(a.rebuild(), util.ReportSuccess("Configuration reloaded"))
}

// nextMode cycles through the layout variants. Grids get a few lines when
// the configuration asks for a single one.
func nextMode(cfg recycle.Config) recycle.Config {
	modes := recycle.Modes()
	i := slices.Index(modes, cfg.Mode)
	cfg.Mode = modes[(i+1)%len(modes)]
	if cfg.Mode.Grid() && cfg.OrthogonalCount < 2 {
		cfg.OrthogonalCount = defaultGridLine
	}
	// Zero values pick the new variant's defaults.
	cfg.CoverageFactor = 0
	cfg.MinActive = 0
	return cfg.Normalize()
}

// Err returns the last engine error, if any.
func (a *appModel) Err() error {
	return a.err
}

var errNotReady = errors.New("engine is not ready")

// Snapshot returns the active indices, for diagnostics.
func (a *appModel) Snapshot() ([]int, error) {
	if a.engine == nil || a.engine.State() != recycle.StateReady {
		return nil, errNotReady
	}
	active := a.engine.Active()
	out := make([]int, len(active))
	for i, e := range active {
		out[i] = e.Index
	}
	return out, nil
}
