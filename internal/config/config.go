package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"task-board/internal/logging"
)

// Storage drivers
const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
	DriverMemory = "memory"
)

// Config holds all configuration options for the task board application
type Config struct {
	Storage     StorageConfig     `yaml:"storage"`
	Timer       TimerConfig       `yaml:"timer"`
	Tasks       TasksConfig       `yaml:"tasks"`
	Validation  ValidationConfig  `yaml:"validation"`
	Display     DisplayConfig     `yaml:"display"`
	Application ApplicationConfig `yaml:"application"`
}

// StorageConfig holds persistence configuration
type StorageConfig struct {
	Driver         string        `yaml:"driver" env:"TB_STORAGE_DRIVER"`
	Dir            string        `yaml:"dir" env:"TB_STORAGE_DIR"`
	Filename       string        `yaml:"filename" env:"TB_STORAGE_FILENAME"`
	Slot           string        `yaml:"slot" env:"TB_STORAGE_SLOT"`
	QueryTimeout   time.Duration `yaml:"query_timeout" env:"TB_STORAGE_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"TB_STORAGE_WRITE_TIMEOUT"`
	DirPermissions uint32        `yaml:"dir_permissions" env:"TB_STORAGE_DIR_PERMISSIONS"`
}

// TimerConfig holds countdown configuration
type TimerConfig struct {
	Budget time.Duration `yaml:"budget" env:"TB_TIMER_BUDGET"`
}

// TasksConfig holds task store configuration
type TasksConfig struct {
	Latency time.Duration `yaml:"latency" env:"TB_TASK_LATENCY"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TitleMaxLength       int `yaml:"title_max_length" env:"TB_VALIDATION_TITLE_MAX"`
	DescriptionMaxLength int `yaml:"description_max_length" env:"TB_VALIDATION_DESCRIPTION_MAX"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	DateFormat string `yaml:"date_format" env:"TB_DISPLAY_DATE_FORMAT"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"TB_APP_TIMEOUT"`
	Verbose bool          `yaml:"verbose" env:"TB_APP_VERBOSE"`
}

// DefaultDir returns the directory holding the database and config file
func DefaultDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".taskboard"
	}
	return filepath.Join(homeDir, ".taskboard")
}

// DefaultConfigPath returns the config file location used when TB_CONFIG is unset
func DefaultConfigPath() string {
	if path := os.Getenv("TB_CONFIG"); path != "" {
		return path
	}
	return filepath.Join(DefaultDir(), "config.yaml")
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver:         DriverSQLite,
			Dir:            DefaultDir(),
			Filename:       "taskboard.db",
			Slot:           "tasks",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Timer: TimerConfig{
			Budget: 60 * time.Minute,
		},
		Tasks: TasksConfig{
			Latency: 500 * time.Millisecond,
		},
		Validation: ValidationConfig{
			TitleMaxLength:       100,
			DescriptionMaxLength: 500,
		},
		Display: DisplayConfig{
			DateFormat: "2006-01-02",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Storage.Dir, c.Storage.Filename)
}

// LoadFromFile overlays values from a yaml file. A missing file is not an error.
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Debugf("no config file at %s", path)
			return nil
		}
		return &ConfigError{Field: "config", Message: fmt.Sprintf("cannot read %s: %v", path, err)}
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return &ConfigError{Field: "config", Message: fmt.Sprintf("cannot parse %s: %v", path, err)}
	}

	logging.Debugf("loaded config file %s", path)
	return nil
}

// LoadFromEnvironment loads configuration from environment variables.
// Unparseable values are reported as warnings and ignored.
func (c *Config) LoadFromEnvironment() error {
	// Storage configuration
	if driver := os.Getenv("TB_STORAGE_DRIVER"); driver != "" {
		c.Storage.Driver = strings.ToLower(driver)
	}
	if dir := os.Getenv("TB_STORAGE_DIR"); dir != "" {
		c.Storage.Dir = dir
	}
	if filename := os.Getenv("TB_STORAGE_FILENAME"); filename != "" {
		c.Storage.Filename = filename
	}
	if slot := os.Getenv("TB_STORAGE_SLOT"); slot != "" {
		c.Storage.Slot = slot
	}
	c.Storage.QueryTimeout = durationFromEnv("TB_STORAGE_QUERY_TIMEOUT", c.Storage.QueryTimeout)
	c.Storage.WriteTimeout = durationFromEnv("TB_STORAGE_WRITE_TIMEOUT", c.Storage.WriteTimeout)
	if perms := os.Getenv("TB_STORAGE_DIR_PERMISSIONS"); perms != "" {
		c.Storage.DirPermissions = ParseUint32WithFallback(perms, 8, c.Storage.DirPermissions)
	}

	// Timer and task store configuration
	c.Timer.Budget = durationFromEnv("TB_TIMER_BUDGET", c.Timer.Budget)
	c.Tasks.Latency = durationFromEnv("TB_TASK_LATENCY", c.Tasks.Latency)

	// Validation configuration
	c.Validation.TitleMaxLength = intFromEnv("TB_VALIDATION_TITLE_MAX", c.Validation.TitleMaxLength)
	c.Validation.DescriptionMaxLength = intFromEnv("TB_VALIDATION_DESCRIPTION_MAX", c.Validation.DescriptionMaxLength)

	// Display configuration
	if format := os.Getenv("TB_DISPLAY_DATE_FORMAT"); format != "" {
		c.Display.DateFormat = format
	}

	// Application configuration
	c.Application.Timeout = durationFromEnv("TB_APP_TIMEOUT", c.Application.Timeout)
	if verbose := os.Getenv("TB_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

func durationFromEnv(name string, current time.Duration) time.Duration {
	value := os.Getenv(name)
	if value == "" {
		return current
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		logging.Warnf("ignoring %s=%q: %v", name, value, err)
		return current
	}
	return d
}

func intFromEnv(name string, current int) int {
	value := os.Getenv(name)
	if value == "" {
		return current
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		logging.Warnf("ignoring %s=%q: not an integer", name, value)
		return current
	}
	return n
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate storage configuration
	switch c.Storage.Driver {
	case DriverSQLite, DriverFile, DriverMemory:
	default:
		return &ConfigError{Field: "storage.driver", Message: fmt.Sprintf("unknown driver %q (want sqlite, file or memory)", c.Storage.Driver)}
	}
	if c.Storage.Driver != DriverMemory && c.Storage.Dir == "" {
		return &ConfigError{Field: "storage.dir", Message: "storage directory cannot be empty"}
	}
	if c.Storage.Driver == DriverSQLite && c.Storage.Filename == "" {
		return &ConfigError{Field: "storage.filename", Message: "database filename cannot be empty"}
	}
	if c.Storage.Slot == "" || strings.ContainsAny(c.Storage.Slot, `/\`) || strings.HasPrefix(c.Storage.Slot, ".") {
		return &ConfigError{Field: "storage.slot", Message: "slot must be a plain name"}
	}
	if c.Storage.QueryTimeout <= 0 {
		return &ConfigError{Field: "storage.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Storage.WriteTimeout <= 0 {
		return &ConfigError{Field: "storage.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate timer and task store configuration
	if c.Timer.Budget < time.Second {
		return &ConfigError{Field: "timer.budget", Message: "timer budget must be at least one second"}
	}
	if c.Tasks.Latency < 0 {
		return &ConfigError{Field: "tasks.latency", Message: "latency cannot be negative"}
	}

	// Validate validation configuration
	if c.Validation.TitleMaxLength < 1 {
		return &ConfigError{Field: "validation.title_max_length", Message: "title maximum length must be at least 1"}
	}
	if c.Validation.DescriptionMaxLength < 0 {
		return &ConfigError{Field: "validation.description_max_length", Message: "description maximum length cannot be negative"}
	}

	// Validate display configuration
	if c.Display.DateFormat == "" {
		return &ConfigError{Field: "display.date_format", Message: "date format cannot be empty"}
	}
	if !dateFormatRoundTrips(c.Display.DateFormat) {
		return &ConfigError{Field: "display.date_format", Message: fmt.Sprintf("%q must contain a year, month and day", c.Display.DateFormat)}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// dateFormatRoundTrips reports whether layout can both render and parse a
// calendar date without losing it
func dateFormatRoundTrips(layout string) bool {
	probe := time.Date(2031, time.December, 28, 0, 0, 0, 0, time.UTC)
	parsed, err := time.Parse(layout, probe.Format(layout))
	if err != nil {
		return false
	}
	y1, m1, d1 := probe.Date()
	y2, m2, d2 := parsed.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
