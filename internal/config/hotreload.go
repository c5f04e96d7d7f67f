package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultReloadDebounce = 250 * time.Millisecond

// HotReloaderCallback is called when configuration is reloaded
type HotReloaderCallback func(*Config) error

// HotReloader reloads the configuration when any of its source files
// changes. Bursts of events are coalesced and the reload runs once the
// files have been quiet for the debounce period.
type HotReloader struct {
	mu         sync.RWMutex
	config     *Config
	workingDir string
	dataDir    string
	debug      bool
	paths      []string
	watcher    *fsnotify.Watcher
	callbacks  []HotReloaderCallback
	ctx        context.Context
	cancel     context.CancelFunc

	debounce time.Duration
	timer    *time.Timer
}

// NewHotReloader creates a reloader for the config files of workingDir. Its
// current configuration starts as cfg.
func NewHotReloader(cfg *Config, dataDir string) (*HotReloader, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	hr := &HotReloader{
		config:     cfg,
		workingDir: cfg.WorkingDir(),
		dataDir:    dataDir,
		debug:      cfg.Options.Debug,
		paths:      lookupConfigs(cfg.WorkingDir()),
		watcher:    watcher,
		ctx:        ctx,
		cancel:     cancel,
		debounce:   defaultReloadDebounce,
	}
	return hr, nil
}

// SetDebounce changes the quiet period before a reload. Call it before
// [HotReloader.Start].
func (hr *HotReloader) SetDebounce(d time.Duration) {
	hr.debounce = d
}

// Start begins watching the directories holding the config files.
// Directories that do not exist are skipped.
func (hr *HotReloader) Start() error {
	watched := make(map[string]bool)
	for _, path := range hr.paths {
		dir := filepath.Dir(path)
		if watched[dir] {
			continue
		}
		if _, err := os.Stat(dir); err != nil {
			slog.Debug("Skipping missing config directory", "dir", dir)
			continue
		}
		if err := hr.watcher.Add(dir); err != nil {
			return err
		}
		watched[dir] = true
	}

	go hr.watchLoop()
	slog.Info("Configuration hot reloader started", "paths", hr.paths)
	return nil
}

// AddCallback adds a callback to be called when configuration changes
func (hr *HotReloader) AddCallback(callback HotReloaderCallback) {
	hr.mu.Lock()
	defer hr.mu.Unlock()
	hr.callbacks = append(hr.callbacks, callback)
}

// GetConfig returns the current configuration
func (hr *HotReloader) GetConfig() *Config {
	hr.mu.RLock()
	defer hr.mu.RUnlock()
	return hr.config
}

func (hr *HotReloader) watchLoop() {
	for {
		select {
		case <-hr.ctx.Done():
			return
		case event, ok := <-hr.watcher.Events:
			if !ok {
				return
			}
			if !hr.isConfigFile(event.Name) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			slog.Debug("Configuration file changed", "file", event.Name, "op", event.Op.String())
			hr.schedule()

		case err, ok := <-hr.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("File watcher error", "error", err)
		}
	}
}

func (hr *HotReloader) schedule() {
	hr.mu.Lock()
	defer hr.mu.Unlock()
	if hr.timer != nil {
		hr.timer.Stop()
	}
	hr.timer = time.AfterFunc(hr.debounce, func() {
		if hr.ctx.Err() != nil {
			return
		}
		if err := hr.reloadConfig(); err != nil {
			slog.Error("Failed to reload configuration", "error", err)
		}
	})
}

func (hr *HotReloader) isConfigFile(filename string) bool {
	for _, path := range hr.paths {
		if filepath.Clean(filename) == filepath.Clean(path) {
			return true
		}
	}
	return false
}

func (hr *HotReloader) reloadConfig() error {
	newConfig, err := Load(hr.workingDir, hr.dataDir, hr.debug)
	if err != nil {
		return err
	}

	hr.mu.Lock()
	oldConfig := hr.config
	hr.config = newConfig
	callbacks := make([]HotReloaderCallback, len(hr.callbacks))
	copy(callbacks, hr.callbacks)
	hr.mu.Unlock()

	for i, callback := range callbacks {
		if err := callback(newConfig); err != nil {
			slog.Error("Configuration reload callback failed", "callback", i, "error", err)
			// Rollback on first error
			hr.mu.Lock()
			hr.config = oldConfig
			hr.mu.Unlock()
			return err
		}
	}

	slog.Info("Configuration reloaded successfully", "layout_changed", LayoutChanged(oldConfig, newConfig))
	return nil
}

// Stop stops the hot reloader
func (hr *HotReloader) Stop() error {
	hr.cancel()
	hr.mu.Lock()
	if hr.timer != nil {
		hr.timer.Stop()
	}
	hr.mu.Unlock()
	if hr.watcher != nil {
		return hr.watcher.Close()
	}
	return nil
}

// LayoutChanged reports whether an engine built from old must be rebuilt to
// honor updated.
func LayoutChanged(old, updated *Config) bool {
	if old == nil || updated == nil {
		return old != updated
	}
	return !reflect.DeepEqual(old.Layout, updated.Layout) || !reflect.DeepEqual(old.Demo, updated.Demo)
}
