package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"sitecraft/local-app/src/pkg/log"
	"sitecraft/local-app/src/pkg/model"
)

// Storage represents the main storage implementation.
type Storage struct {
	db     Database
	logger *log.Logger
	ProjectStore
	PageStore
}

// NewStorage creates a new Storage instance and initializes the database.
func NewStorage(config *model.Config, logger *log.Logger) (*Storage, error) {
	if logger == nil {
		return nil, errors.New("logger is nil")
	}
	dataSourceName := filepath.Join(config.DatabaseDir, config.DatabaseFile)
	return openStorage(config.DatabaseType, dataSourceName, logger)
}

// NewMemoryStorage creates a Storage backed by a private in-memory SQLite database.
func NewMemoryStorage(logger *log.Logger) (*Storage, error) {
	if logger == nil {
		return nil, errors.New("logger is nil")
	}
	return openStorage(string(SQLite), ":memory:", logger)
}

func openStorage(driver, dataSourceName string, logger *log.Logger) (*Storage, error) {
	dbDriver, err := validateDBDriver(driver)
	if err != nil {
		return nil, fmt.Errorf("invalid database driver '%s': %w", driver, err)
	}

	db, err := NewDatabase(dbDriver, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create database instance: %w", err)
	}

	// Open the database connection
	if err := db.Open(dataSourceName); err != nil {
		return nil, fmt.Errorf("failed to open database connection '%s': %w", dataSourceName, err)
	}

	storage := &Storage{
		db:     db,
		logger: logger,
	}

	// Create project and page tables
	if err := storage.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	// Create storages
	storage.ProjectStore = NewProjectStorage(storage)
	storage.PageStore = NewPageStorage(storage)

	logger.Info(context.Background(), "Storage ready", log.Fields{"driver": dbDriver, "source": filepath.Base(dataSourceName)})
	return storage, nil
}

// Close closes the database connection.
func (s *Storage) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// initSchema initializes the database schema.
func (s *Storage) initSchema() error {
	if err := s.db.InitSchema(); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// GetDatabase returns the database instance
func (s *Storage) GetDatabase() Database {
	return s.db
}

// withTx runs fn inside a transaction, rolling back when it fails.
func (s *Storage) withTx(fn func(db Database) error) (err error) {
	db := s.db
	if err = db.Begin(); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = db.Rollback()
		}
	}()

	if err = fn(db); err != nil {
		return err
	}
	if err = db.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
