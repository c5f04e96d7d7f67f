package cmd

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/recycle/internal/config"
	"github.com/charmbracelet/recycle/internal/log"
	"github.com/charmbracelet/recycle/internal/metrics"
	"github.com/charmbracelet/recycle/internal/tui"
	"github.com/charmbracelet/recycle/internal/version"
	"github.com/charmbracelet/x/exp/charmtone"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.PersistentFlags().StringP("cwd", "c", "", "Current working directory")
	rootCmd.PersistentFlags().StringP("data-dir", "D", "", "Custom recycle data directory")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")
	rootCmd.Flags().BoolP("help", "h", false, "Help")
	rootCmd.Flags().Bool("no-reload", false, "Do not watch configuration files for changes")

	rootCmd.AddCommand(
		runCmd,
		dirsCmd,
		configCmd,
		logsCmd,
		schemaCmd,
	)
}

var rootCmd = &cobra.Command{
	Use:   "recycle",
	Short: "Browse a large collection through a recycling viewport",
	Long: `Recycle virtualizes a large scrolling collection: only the items near the
viewport are bound to a small pool of reusable cells, which are recycled as
you scroll. It supports vertical and horizontal lists and grids.`,
	Example: `
# Browse the demo collection
recycle

# Run with debug logging
recycle -d

# Run with debug logging in a specific directory
recycle -d -c /path/to/project

# Run with custom data directory
recycle -D /path/to/custom/.recycle

# Print version
recycle -v

# Run a headless simulation
recycle run --mode grid-vertical --steps 1000
  `,
	RunE: func(cmd *cobra.Command, args []string) error {
		noReload, _ := cmd.Flags().GetBool("no-reload")

		cfg, err := setupApp(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		store := tui.NewStore(cfg.Demo.Items, cfg.Demo.Types)
		if !cfg.Demo.DisableFeed {
			interval := time.Duration(cfg.FeedInterval()) * time.Millisecond
			go func() {
				defer log.RecoverPanic("feed", cancel)
				store.Feed(ctx, interval, rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)))
			}()
		}

		ui, err := tui.New(cfg, store, metrics.NewMetrics())
		if err != nil {
			return err
		}
		program := tea.NewProgram(
			ui,
			tea.WithContext(ctx),
			tea.WithFilter(tui.MouseEventFilter))

		if !noReload {
			reloader, err := watchConfig(cfg, program)
			if err != nil {
				slog.Warn("Config hot reload disabled", "error", err)
			} else {
				defer reloader.Stop() //nolint:errcheck
			}
		}

		if _, err := program.Run(); err != nil {
			slog.Error("TUI run error", "error", err)
			return fmt.Errorf("recycle crashed, see %s for details: %w", cfg.LogFile(), err)
		}
		return nil
	},
}

// watchConfig forwards configuration changes to the running program.
func watchConfig(cfg *config.Config, program *tea.Program) (*config.HotReloader, error) {
	reloader, err := config.NewHotReloader(cfg, cfg.Options.DataDirectory)
	if err != nil {
		return nil, err
	}
	reloader.AddCallback(func(updated *config.Config) error {
		config.Manager().SetConfig(updated)
		program.Send(tui.ConfigChangedMsg{Config: updated})
		return nil
	})
	if err := reloader.Start(); err != nil {
		return nil, err
	}
	return reloader, nil
}

var heartbit = lipgloss.NewStyle().Foreground(charmtone.Dolly).SetString(`
   ▄▄▄▄▄▄    ▄▄▄▄▄▄
 ██████████▄▄██████████
 ████▀▀████████▀▀████▀▀
 ████  ████████  ████
 ████▄▄████████▄▄████▄▄
 ██████████▀▀██████████
   ▀▀▀▀▀▀    ▀▀▀▀▀▀
`)

// copied from cobra:
const defaultVersionTemplate = `{{with .DisplayName}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
`

func Execute() {
	// cobra prints the version before any hook runs, so the colored banner is
	// rendered through a colorprofile writer up front and baked into the
	// version template.
	if term.IsTerminal(os.Stdout.Fd()) {
		var b bytes.Buffer
		w := colorprofile.NewWriter(os.Stdout, os.Environ())
		w.Forward = &b
		_, _ = w.WriteString(heartbit.String())
		rootCmd.SetVersionTemplate(b.String() + "\n" + defaultVersionTemplate)
	}
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version.Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// setupApp loads the configuration, prepares the data directory and installs
// the file logger.
func setupApp(cmd *cobra.Command) (*config.Config, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	dataDir, _ := cmd.Flags().GetString("data-dir")

	cwd, err := ResolveCwd(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Init(cwd, dataDir, debug)
	if err != nil {
		return nil, err
	}

	if err := createDotRecycleDir(cfg.Options.DataDirectory); err != nil {
		return nil, err
	}

	log.Setup(cfg.LogFile(), cfg.Options.Debug)
	slog.Info("Starting recycle", "version", version.Version, "mode", cfg.Layout.Mode, "items", cfg.Demo.Items)
	return cfg, nil
}

func ResolveCwd(cmd *cobra.Command) (string, error) {
	cwd, _ := cmd.Flags().GetString("cwd")
	if cwd != "" {
		err := os.Chdir(cwd)
		if err != nil {
			return "", fmt.Errorf("failed to change directory: %v", err)
		}
		return cwd, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %v", err)
	}
	return cwd, nil
}

func createDotRecycleDir(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create data directory: %q %w", dir, err)
	}

	gitIgnorePath := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(gitIgnorePath); os.IsNotExist(err) {
		if err := os.WriteFile(gitIgnorePath, []byte("*\n"), 0o644); err != nil {
			return fmt.Errorf("failed to create .gitignore file: %q %w", gitIgnorePath, err)
		}
	}

	return nil
}
