package cmd

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/charmbracelet/recycle/internal/home"
	"github.com/charmbracelet/recycle/internal/metrics"
	"github.com/charmbracelet/recycle/internal/recycle"
	termutil "github.com/charmbracelet/recycle/internal/term"
	"github.com/charmbracelet/recycle/internal/tui"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a headless scrolling simulation",
	Long: `Drive the windowing engine over an off-screen viewport with random scrolls,
jumps and collection resizes, then print how the cell pool behaved.`,
	Example: `
# Simulate the configured layout
recycle run

# Simulate a three column grid for 5000 steps
recycle run --mode grid-vertical --columns 3 --steps 5000

# Print every 100th frame
recycle run --every 100

# Reproduce a run
recycle run --seed 42
  `,
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, _ := cmd.Flags().GetInt("steps")
		every, _ := cmd.Flags().GetInt("every")
		seed, _ := cmd.Flags().GetUint64("seed")
		width, _ := cmd.Flags().GetInt("width")
		height, _ := cmd.Flags().GetInt("height")
		modeName, _ := cmd.Flags().GetString("mode")
		columns, _ := cmd.Flags().GetInt("columns")

		cfg, err := setupApp(cmd)
		if err != nil {
			return err
		}
		layout, err := cfg.Layout.Engine()
		if err != nil {
			return err
		}
		if modeName != "" {
			if layout.Mode, err = recycle.ParseMode(modeName); err != nil {
				return err
			}
		}
		if columns > 0 {
			layout.OrthogonalCount = columns
		}

		if termutil.SupportsProgressBar() {
			_, _ = fmt.Fprint(os.Stderr, ansi.SetIndeterminateProgressBar)
			defer func() { _, _ = fmt.Fprint(os.Stderr, ansi.ResetProgressBar) }()
		}

		m := metrics.NewMetrics()
		sim := tui.Simulation{
			Layout:   layout.Normalize(),
			Store:    tui.NewStore(cfg.Demo.Items, cfg.Demo.Types),
			Viewport: recycle.Size{Width: float64(width), Height: float64(height)},
			Steps:    steps,
			Rand:     rand.New(rand.NewPCG(seed, seed)),
			Metrics:  m,
		}

		var frames [][]string
		err = sim.Run(cmd.Context(), func(f tui.Frame) error {
			if every > 0 && f.Step%every == 0 {
				frames = append(frames, frameRow(f))
			}
			return nil
		})
		if err != nil {
			return err
		}

		slog.Info("Simulation finished", "mode", sim.Layout.Mode, "steps", steps, "created", m.CellsCreated.Load())
		printSimulation(cmd, sim, frames, m)
		cmd.PrintErrf("Logs written to %s\n", home.Short(cfg.LogFile()))
		return nil
	},
}

func frameRow(f tui.Frame) []string {
	return []string{
		strconv.Itoa(f.Step),
		f.Action,
		fmt.Sprintf("%.1f%%", f.Progress*100),
		fmt.Sprintf("%d-%d", f.First, f.Last),
		strconv.Itoa(f.Stats.Active),
		strconv.Itoa(f.Stats.Free),
	}
}

func printSimulation(cmd *cobra.Command, sim tui.Simulation, frames [][]string, m *metrics.Metrics) {
	summary := [][]string{
		{"Mode", sim.Layout.Mode.String()},
		{"Steps", strconv.Itoa(sim.Steps)},
		{"Items", strconv.Itoa(sim.Store.Count())},
		{"Cells created", strconv.FormatInt(m.CellsCreated.Load(), 10)},
		{"Cells reused", strconv.FormatInt(m.CellsReused.Load(), 10)},
		{"Admissions", strconv.FormatInt(m.Admissions.Load(), 10)},
		{"Evictions", strconv.FormatInt(m.Evictions.Load(), 10)},
		{"Binds", strconv.FormatInt(m.Binds.Load(), 10)},
		{"Scroll updates", strconv.FormatInt(m.Deltas.Load(), 10)},
		{"Debounced", strconv.FormatInt(m.Debounced.Load(), 10)},
		{"Jumps", strconv.FormatInt(m.Jumps.Load(), 10)},
		{"Rebuilds", strconv.FormatInt(m.Rebuilds.Load(), 10)},
	}

	if term.IsTerminal(os.Stdout.Fd()) {
		// We're in a TTY: make it fancy.
		style := func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 2)
		}
		if len(frames) > 0 {
			lipgloss.Println(table.New().
				Border(lipgloss.RoundedBorder()).
				StyleFunc(style).
				Headers("Step", "Action", "Progress", "Window", "Active", "Free").
				Rows(frames...))
		}
		lipgloss.Println(table.New().
			Border(lipgloss.RoundedBorder()).
			StyleFunc(style).
			Rows(summary...))
		return
	}
	// Not a TTY.
	for _, row := range frames {
		cmd.Println(joinTabs(row))
	}
	for _, row := range summary {
		cmd.Println(joinTabs(row))
	}
}

func joinTabs(row []string) string {
	return strings.Join(row, "\t")
}

func init() {
	runCmd.Flags().Int("steps", 1000, "Number of simulated steps")
	runCmd.Flags().Int("every", 0, "Print every nth frame")
	runCmd.Flags().Uint64("seed", 1, "Random seed")
	runCmd.Flags().Int("width", 80, "Viewport width in cells")
	runCmd.Flags().Int("height", 24, "Viewport height in cells")
	runCmd.Flags().StringP("mode", "m", "", "Layout mode, overriding the configuration")
	runCmd.Flags().Int("columns", 0, "Grid columns or rows, overriding the configuration")
}
