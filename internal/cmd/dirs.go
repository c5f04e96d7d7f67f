package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/charmbracelet/recycle/internal/config"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
)

type dir struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

func dirs() []dir {
	return []dir{
		{Name: "Config", Path: filepath.Dir(config.GlobalConfig())},
		{Name: "Data", Path: filepath.Dir(config.GlobalConfigData())},
	}
}

var dirsCmd = &cobra.Command{
	Use:   "dirs",
	Short: "Print directories used by recycle",
	Long: `Print the directories where recycle stores its configuration and data files.
This includes the global configuration directory and data directory.`,
	Example: `
# Print all directories
recycle dirs

# Print only the config directory
recycle dirs config

# Print only the data directory
recycle dirs data

# List the configuration files in merge order
recycle dirs files
  `,
	Run: func(cmd *cobra.Command, args []string) {
		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			bts, _ := json.Marshal(dirs())
			cmd.Println(string(bts))
			return
		}
		if term.IsTerminal(os.Stdout.Fd()) {
			// We're in a TTY: make it fancy.
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				StyleFunc(func(row, col int) lipgloss.Style {
					return lipgloss.NewStyle().Padding(0, 2)
				})
			for _, d := range dirs() {
				t.Row(d.Name, d.Path)
			}
			lipgloss.Println(t)
			return
		}
		// Not a TTY.
		for _, d := range dirs() {
			cmd.Println(d.Path)
		}
	},
}

var configDirCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the configuration directory used by recycle",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(filepath.Dir(config.GlobalConfig()))
	},
}

var dataDirCmd = &cobra.Command{
	Use:   "data",
	Short: "Print the data directory used by recycle",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(filepath.Dir(config.GlobalConfigData()))
	},
}

var filesDirCmd = &cobra.Command{
	Use:   "files",
	Short: "List configuration files in merge order, later ones winning",
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := ResolveCwd(cmd)
		if err != nil {
			return err
		}
		for _, path := range config.ConfigPaths(cwd) {
			state := "missing"
			if _, err := os.Stat(path); err == nil {
				state = "found"
			}
			cmd.Printf("%s\t%s\n", state, path)
		}
		return nil
	},
}

func init() {
	dirsCmd.Flags().Bool("json", false, "Print directories as JSON")
	dirsCmd.AddCommand(configDirCmd, dataDirCmd, filesDirCmd)
}
