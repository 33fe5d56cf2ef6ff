package config

import (
	"fmt"
	"os"

	"task-board/internal/logging"
	"task-board/internal/repository"
	"task-board/internal/repository/file"
	"task-board/internal/repository/sqlite"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment from TB_ENV
func GetEnvironment() Environment {
	switch Environment(os.Getenv("TB_ENV")) {
	case Development:
		return Development
	case Testing:
		return Testing
	default:
		// Default to production for safety
		return Production
	}
}

// CreateRepository creates the slot store selected by the configuration
func CreateRepository(config *Config) (repository.SlotStore, error) {
	switch config.Storage.Driver {
	case DriverMemory:
		return repository.NewMemoryStore(), nil

	case DriverFile:
		store, err := file.New(config.Storage.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize file storage: %w", err)
		}
		return store, nil

	case DriverSQLite, "":
		if err := os.MkdirAll(config.Storage.Dir, os.FileMode(config.Storage.DirPermissions)); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
		store, err := sqlite.NewWithOptions(config.GetDatabasePath(), sqlite.Options{
			QueryTimeout: config.Storage.QueryTimeout,
			WriteTimeout: config.Storage.WriteTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return store, nil

	default:
		return nil, &ConfigError{Field: "storage.driver", Message: fmt.Sprintf("unknown driver %q", config.Storage.Driver)}
	}
}

// CreateRepositoryForEnvironment adjusts the configuration for env before
// creating the store. Testing keeps everything in memory and development
// keeps the database in the working directory.
func CreateRepositoryForEnvironment(env Environment, config *Config) (repository.SlotStore, error) {
	switch env {
	case Testing:
		config.Storage.Driver = DriverMemory
	case Development:
		if config.Storage.Driver != DriverMemory {
			config.Storage.Dir = "."
		}
	}
	logging.Debugf("environment %s: %s storage in %q", env, config.Storage.Driver, config.Storage.Dir)
	return CreateRepository(config)
}

// CreateTestRepository creates an in-memory store for testing
func CreateTestRepository() repository.SlotStore {
	return repository.NewMemoryStore()
}
