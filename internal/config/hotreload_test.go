package config

import (
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHotReloaderReloadsProjectConfig(t *testing.T) {
	_, _, cwd := isolate(t)
	path := filepath.Join(cwd, "recycle.json")
	writeJSON(t, path, `{"layout": {"mode": "vertical"}}`)

	cfg, err := Load(cwd, "", false)
	require.NoError(t, err)

	hr, err := NewHotReloader(cfg, "")
	require.NoError(t, err)
	hr.SetDebounce(20 * time.Millisecond)

	var latest atomic.Pointer[Config]
	hr.AddCallback(func(c *Config) error {
		latest.Store(c)
		return nil
	})
	require.NoError(t, hr.Start())
	t.Cleanup(func() { _ = hr.Stop() })

	writeJSON(t, path, `{"layout": {"mode": "grid-horizontal", "orthogonal_count": 2}}`)

	require.Eventually(t, func() bool {
		c := latest.Load()
		return c != nil && c.Layout.Mode == "grid-horizontal"
	}, 5*time.Second, 10*time.Millisecond)
	require.Equal(t, "grid-horizontal", hr.GetConfig().Layout.Mode)
	require.Equal(t, 2, hr.GetConfig().Layout.OrthogonalCount)
}

func TestHotReloaderIgnoresOtherFiles(t *testing.T) {
	_, _, cwd := isolate(t)

	cfg, err := Load(cwd, "", false)
	require.NoError(t, err)

	hr, err := NewHotReloader(cfg, "")
	require.NoError(t, err)
	require.True(t, hr.isConfigFile(filepath.Join(cwd, "recycle.json")))
	require.True(t, hr.isConfigFile(filepath.Join(cwd, ".recycle.json")))
	require.False(t, hr.isConfigFile(filepath.Join(cwd, "notes.json")))
	require.NoError(t, hr.Stop())
}
