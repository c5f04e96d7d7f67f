package config

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/recycle/internal/home"
	"github.com/qjebbs/go-jsons"
)

// Load reads and merges every config file that applies to workingDir. Later
// files win: global config, global data config, then the project files.
func Load(workingDir, dataDir string, debug bool) (*Config, error) {
	configPaths := lookupConfigs(workingDir)

	cfg, err := loadFromConfigPaths(configPaths)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from paths %v: %w", configPaths, err)
	}

	cfg.dataConfigPath = GlobalConfigData()
	cfg.setDefaults(workingDir, dataDir)
	if debug {
		cfg.Options.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("Loaded configuration", "paths", configPaths, "mode", cfg.Layout.Mode)
	return cfg, nil
}

// ConfigPaths lists the files [Load] reads for workingDir, in merge order.
func ConfigPaths(workingDir string) []string {
	return lookupConfigs(workingDir)
}

func lookupConfigs(cwd string) []string {
	return []string{
		GlobalConfig(),
		GlobalConfigData(),
		filepath.Join(cwd, fmt.Sprintf("%s.json", appName)),
		filepath.Join(cwd, fmt.Sprintf(".%s.json", appName)),
	}
}

func loadFromConfigPaths(configPaths []string) (*Config, error) {
	var readers []io.Reader

	for _, path := range configPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to open config file %s: %w", path, err)
		}
		if len(bytes.TrimSpace(data)) == 0 {
			continue
		}
		readers = append(readers, bytes.NewReader(data))
	}

	return loadFromReaders(readers)
}

func loadFromReaders(readers []io.Reader) (*Config, error) {
	if len(readers) == 0 {
		return &Config{}, nil
	}

	merged, err := jsons.Merge(readers)
	if err != nil {
		return nil, fmt.Errorf("failed to merge configuration readers: %w", err)
	}

	var config Config
	if err := json.Unmarshal([]byte(merged), &config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return &config, nil
}

// GlobalConfig returns the global configuration file path for the
// application.
func GlobalConfig() string {
	if path := os.Getenv("RECYCLE_GLOBAL_CONFIG"); path != "" {
		return filepath.Join(path, fmt.Sprintf("%s.json", appName))
	}
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, appName, fmt.Sprintf("%s.json", appName))
	}
	return filepath.Join(home.Dir(), ".config", appName, fmt.Sprintf("%s.json", appName))
}

// GlobalConfigData returns the path to the main data directory's config
// file. This is where settings changed from the command line are written.
func GlobalConfigData() string {
	if path := os.Getenv("RECYCLE_GLOBAL_DATA"); path != "" {
		return filepath.Join(path, fmt.Sprintf("%s.json", appName))
	}
	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return filepath.Join(xdgDataHome, appName, fmt.Sprintf("%s.json", appName))
	}

	// Windows keeps per-user data under LOCALAPPDATA.
	if runtime.GOOS == "windows" {
		localAppData := cmp.Or(os.Getenv("LOCALAPPDATA"), filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local"))
		return filepath.Join(localAppData, appName, fmt.Sprintf("%s.json", appName))
	}

	return filepath.Join(home.Dir(), ".local", "share", appName, fmt.Sprintf("%s.json", appName))
}
