package config

import (
	"sync/atomic"
)

// ConfigManager manages configuration instances without using global state
type ConfigManager struct {
	config atomic.Pointer[Config]
}

// NewConfigManager creates a new configuration manager
func NewConfigManager() *ConfigManager {
	return &ConfigManager{}
}

// SetConfig sets the configuration atomically
func (cm *ConfigManager) SetConfig(cfg *Config) {
	cm.config.Store(cfg)
}

// GetConfig returns the current configuration
func (cm *ConfigManager) GetConfig() *Config {
	return cm.config.Load()
}

// InitConfig loads the configuration for workingDir and makes it current.
func (cm *ConfigManager) InitConfig(workingDir, dataDir string, debug bool) (*Config, error) {
	cfg, err := Load(workingDir, dataDir, debug)
	if err != nil {
		return nil, err
	}
	cm.SetConfig(cfg)
	return cfg, nil
}

// Swap replaces the current configuration and returns the previous one.
func (cm *ConfigManager) Swap(cfg *Config) *Config {
	return cm.config.Swap(cfg)
}

// Reset clears the configuration (useful for testing)
func (cm *ConfigManager) Reset() {
	cm.config.Store(nil)
}
