package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/recycle/internal/recycle"
	"github.com/stretchr/testify/require"
)

// isolate points every global config location at fresh directories.
func isolate(t *testing.T) (configHome, dataHome, cwd string) {
	t.Helper()
	configHome, dataHome, cwd = t.TempDir(), t.TempDir(), t.TempDir()
	t.Setenv("RECYCLE_GLOBAL_CONFIG", "")
	t.Setenv("RECYCLE_GLOBAL_DATA", "")
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_DATA_HOME", dataHome)
	return configHome, dataHome, cwd
}

func writeJSON(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	_, _, cwd := isolate(t)

	cfg, err := Load(cwd, "", false)
	require.NoError(t, err)
	require.Equal(t, cwd, cfg.WorkingDir())
	require.Equal(t, defaultDemoItems, cfg.Demo.Items)
	require.Equal(t, defaultDemoTypes, cfg.Demo.Types)
	require.Equal(t, defaultFeedInterval, cfg.FeedInterval())
	require.Equal(t, filepath.Join(cwd, defaultDataDirectory), cfg.Options.DataDirectory)
	require.False(t, cfg.Options.Debug)

	engine, err := cfg.Layout.Engine()
	require.NoError(t, err)
	require.Equal(t, recycle.ModeVertical, engine.Mode)
	require.Equal(t, 1.64, engine.CoverageFactor)
}

func TestLoadMergeOrder(t *testing.T) {
	configHome, dataHome, cwd := isolate(t)

	writeJSON(t, filepath.Join(configHome, appName, "recycle.json"), `{
		"layout": {"mode": "grid-vertical", "orthogonal_count": 4, "spacing": 2},
		"demo": {"items": 100}
	}`)
	writeJSON(t, filepath.Join(dataHome, appName, "recycle.json"), `{
		"layout": {"orthogonal_count": 5}
	}`)
	writeJSON(t, filepath.Join(cwd, "recycle.json"), `{
		"demo": {"items": 42}
	}`)
	writeJSON(t, filepath.Join(cwd, ".recycle.json"), `{
		"layout": {"spacing": 3}
	}`)

	cfg, err := Load(cwd, "", true)
	require.NoError(t, err)
	require.Equal(t, "grid-vertical", cfg.Layout.Mode)
	require.Equal(t, 5, cfg.Layout.OrthogonalCount)
	require.Equal(t, 3.0, cfg.Layout.Spacing)
	require.Equal(t, 42, cfg.Demo.Items)
	require.True(t, cfg.Options.Debug)
}

func TestLoadSkipsEmptyFiles(t *testing.T) {
	_, _, cwd := isolate(t)
	writeJSON(t, filepath.Join(cwd, "recycle.json"), "  \n")

	cfg, err := Load(cwd, "", false)
	require.NoError(t, err)
	require.Equal(t, defaultDemoItems, cfg.Demo.Items)
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	_, _, cwd := isolate(t)
	writeJSON(t, filepath.Join(cwd, "recycle.json"), `{"layout": {"mode": "spiral"}}`)

	_, err := Load(cwd, "", false)
	require.ErrorIs(t, err, recycle.ErrConfiguration)
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	_, _, cwd := isolate(t)
	writeJSON(t, filepath.Join(cwd, "recycle.json"), `{"layout": `)

	_, err := Load(cwd, "", false)
	require.Error(t, err)
}

func TestLoadDataDirOverride(t *testing.T) {
	_, _, cwd := isolate(t)
	dataDir := filepath.Join(t.TempDir(), "custom")

	cfg, err := Load(cwd, dataDir, false)
	require.NoError(t, err)
	require.Equal(t, dataDir, cfg.Options.DataDirectory)
	require.True(t, strings.HasPrefix(cfg.LogFile(), dataDir))
}

func TestLoadRelativeDataDirectory(t *testing.T) {
	_, _, cwd := isolate(t)
	writeJSON(t, filepath.Join(cwd, "recycle.json"), `{"options":{"data_directory":"state"}}`)

	cfg, err := Load(cwd, "", false)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(cwd, "state"), cfg.Options.DataDirectory)
}

func TestSetConfigField(t *testing.T) {
	_, dataHome, cwd := isolate(t)

	cfg, err := Load(cwd, "", false)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dataHome, appName, "recycle.json"), cfg.DataConfigPath())

	require.NoError(t, cfg.SetConfigField("layout.mode", "horizontal"))
	require.NoError(t, cfg.SetConfigField("layout.spacing", 4.5))

	data, err := os.ReadFile(cfg.DataConfigPath())
	require.NoError(t, err)
	require.JSONEq(t, `{"layout": {"mode": "horizontal", "spacing": 4.5}}`, string(data))

	reloaded, err := Load(cwd, "", false)
	require.NoError(t, err)
	require.Equal(t, "horizontal", reloaded.Layout.Mode)
	require.Equal(t, 4.5, reloaded.Layout.Spacing)
}

func TestGlobalPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	t.Setenv("RECYCLE_GLOBAL_CONFIG", "")
	t.Setenv("RECYCLE_GLOBAL_DATA", "")
	require.Equal(t, filepath.FromSlash("/tmp/cfg/recycle/recycle.json"), GlobalConfig())
	require.Equal(t, filepath.FromSlash("/tmp/data/recycle/recycle.json"), GlobalConfigData())

	t.Setenv("RECYCLE_GLOBAL_CONFIG", "/opt/recycle")
	require.Equal(t, filepath.FromSlash("/opt/recycle/recycle.json"), GlobalConfig())
}

func TestConfigManager(t *testing.T) {
	_, _, cwd := isolate(t)

	cm := NewConfigManager()
	require.Nil(t, cm.GetConfig())

	cfg, err := cm.InitConfig(cwd, "", false)
	require.NoError(t, err)
	require.Same(t, cfg, cm.GetConfig())

	next := &Config{}
	require.Same(t, cfg, cm.Swap(next))
	require.Same(t, next, cm.GetConfig())

	cm.Reset()
	require.Nil(t, cm.GetConfig())
}

func TestLayoutChanged(t *testing.T) {
	t.Parallel()

	a := &Config{Layout: &Layout{Mode: "vertical"}, Demo: &Demo{Items: 10}}
	b := &Config{Layout: &Layout{Mode: "vertical"}, Demo: &Demo{Items: 10}}
	require.False(t, LayoutChanged(a, b))

	b.Layout.Spacing = 1
	require.True(t, LayoutChanged(a, b))
	require.True(t, LayoutChanged(nil, b))
	require.False(t, LayoutChanged(nil, nil))
}
