package config

var defaultManager = NewConfigManager()

// Init loads the configuration into the process-wide manager.
func Init(workingDir, dataDir string, debug bool) (*Config, error) {
	return defaultManager.InitConfig(workingDir, dataDir, debug)
}

// Get returns the configuration loaded by [Init].
func Get() *Config {
	return defaultManager.GetConfig()
}

// Manager returns the process-wide manager.
func Manager() *ConfigManager {
	return defaultManager
}
