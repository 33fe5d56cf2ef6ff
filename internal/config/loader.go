package config

import (
	"strconv"
	"time"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config     *Config
	configPath string
}

// NewLoader creates a new configuration loader reading the default config file
func NewLoader() *Loader {
	return &Loader{
		config:     NewConfig(),
		configPath: DefaultConfigPath(),
	}
}

// NewLoaderWithFile creates a loader that reads path instead of the default file
func NewLoaderWithFile(path string) *Loader {
	return &Loader{
		config:     NewConfig(),
		configPath: path,
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the yaml config file, if present
// 3. Override with environment variables
// 4. Override with command line flags (handled by LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	// Step 1: Start with defaults (already done in NewConfig)

	// Step 2: Load from the config file
	if err := l.config.LoadFromFile(l.configPath); err != nil {
		return nil, err
	}

	// Step 3: Load from environment variables
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	// Step 4: Validate the configuration
	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	if overrides != nil && overrides.ConfigFile != nil {
		l.configPath = *overrides.ConfigFile
	}

	// Load base configuration
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	// Apply command line overrides
	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	ConfigFile *string

	// Storage overrides
	StorageDriver   *string
	StorageDir      *string
	StorageFilename *string
	StorageSlot     *string

	// Timer and task store overrides
	TimerBudget *time.Duration
	TaskLatency *time.Duration

	// Validation overrides
	TitleMaxLength       *int
	DescriptionMaxLength *int

	// Display overrides
	DateFormat *string

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	// Storage overrides
	if overrides.StorageDriver != nil {
		config.Storage.Driver = *overrides.StorageDriver
	}
	if overrides.StorageDir != nil {
		config.Storage.Dir = *overrides.StorageDir
	}
	if overrides.StorageFilename != nil {
		config.Storage.Filename = *overrides.StorageFilename
	}
	if overrides.StorageSlot != nil {
		config.Storage.Slot = *overrides.StorageSlot
	}

	// Timer and task store overrides
	if overrides.TimerBudget != nil {
		config.Timer.Budget = *overrides.TimerBudget
	}
	if overrides.TaskLatency != nil {
		config.Tasks.Latency = *overrides.TaskLatency
	}

	// Validation overrides
	if overrides.TitleMaxLength != nil {
		config.Validation.TitleMaxLength = *overrides.TitleMaxLength
	}
	if overrides.DescriptionMaxLength != nil {
		config.Validation.DescriptionMaxLength = *overrides.DescriptionMaxLength
	}

	// Display overrides
	if overrides.DateFormat != nil {
		config.Display.DateFormat = *overrides.DateFormat
	}

	// Application overrides
	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
