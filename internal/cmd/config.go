package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/recycle/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change the recycle configuration",
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value in the data config file",
	Long: `Set a key in the data config file. Keys use dotted paths and values are
parsed as JSON when possible, so numbers and booleans keep their type.`,
	Example: `
# Switch to a three column grid
recycle config set layout.mode grid-vertical
recycle config set layout.orthogonal_count 3

# Turn the live feed off
recycle config set demo.disable_feed true
  `,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setupApp(cmd)
		if err != nil {
			return err
		}
		if err := cfg.SetConfigField(args[0], parseValue(args[1])); err != nil {
			return err
		}
		cmd.Printf("Set %s in %s\n", args[0], cfg.DataConfigPath())
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the merged configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setupApp(cmd)
		if err != nil {
			return err
		}
		return printConfig(cmd, cfg)
	},
}

func printConfig(cmd *cobra.Command, cfg *config.Config) error {
	bts, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	cmd.Println(string(bts))
	return nil
}

// parseValue keeps JSON scalars typed and falls back to the raw string.
func parseValue(s string) any {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	return v
}

func init() {
	configCmd.AddCommand(configSetCmd, configShowCmd)
}
