// Package storage persists Sitecraft projects and pages.
// This file holds the driver-independent database layer and the schema migrations.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"sitecraft/local-app/src/pkg/log"
)

// ErrNotFound is returned when a looked-up record does not exist.
var ErrNotFound = errors.New("not found")

// DBDriver names a supported database backend
type DBDriver string

const (
	SQLite DBDriver = "sqlite"
)

// Database interface defines common database operations
type Database interface {
	Open(dataSourceName string) error
	Close() error
	Begin() error
	Commit() error
	Rollback() error
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	InitSchema() error
}

// NewDatabase creates an unopened Database for driver
func NewDatabase(driver DBDriver, logger *log.Logger) (Database, error) {
	switch driver {
	case SQLite:
		return &SQLiteDatabase{BaseDatabase: BaseDatabase{logger: logger}}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

func validateDBDriver(driver string) (DBDriver, error) {
	if DBDriver(driver) == SQLite {
		return SQLite, nil
	}
	return "", fmt.Errorf("unsupported database driver: %s", driver)
}

// migrations are applied in order; the schema version is the number applied.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		name TEXT UNIQUE NOT NULL,
		created DATETIME NOT NULL,
		updated DATETIME NOT NULL
	);
	CREATE TABLE IF NOT EXISTS pages (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		name TEXT NOT NULL,
		slug TEXT NOT NULL,
		elements TEXT NOT NULL DEFAULT '[]',
		created DATETIME NOT NULL,
		updated DATETIME NOT NULL,
		FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE,
		UNIQUE (project_id, name),
		UNIQUE (project_id, slug)
	);
	CREATE INDEX IF NOT EXISTS idx_pages_project ON pages(project_id);`,

	`ALTER TABLE pages ADD COLUMN published_hash TEXT NOT NULL DEFAULT '';`,
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// BaseDatabase routes statements through the open transaction when there is one
type BaseDatabase struct {
	db     *sql.DB
	mu     sync.Mutex
	tx     *sql.Tx
	logger *log.Logger
}

func (b *BaseDatabase) conn() queryer {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.tx != nil {
		return b.tx
	}
	return b.db
}

// Begin starts a transaction. Only one may be open at a time.
func (b *BaseDatabase) Begin() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.tx != nil {
		return errors.New("transaction already active")
	}
	tx, err := b.db.Begin()
	if err != nil {
		b.logger.Error(context.Background(), "Failed to begin transaction", log.Fields{"error": err})
		return err
	}
	b.tx = tx
	return nil
}

// Commit commits the open transaction
func (b *BaseDatabase) Commit() error {
	return b.endTx("commit", (*sql.Tx).Commit)
}

// Rollback abandons the open transaction
func (b *BaseDatabase) Rollback() error {
	return b.endTx("rollback", (*sql.Tx).Rollback)
}

func (b *BaseDatabase) endTx(name string, end func(*sql.Tx) error) error {
	b.mu.Lock()
	tx := b.tx
	b.tx = nil
	b.mu.Unlock()

	if tx == nil {
		return fmt.Errorf("no active transaction to %s", name)
	}
	if err := end(tx); err != nil {
		b.logger.Error(context.Background(), "Transaction "+name+" failed", log.Fields{"error": err})
		return err
	}
	b.logger.Debug(context.Background(), "Transaction "+name, nil)
	return nil
}

// Exec executes a statement without returning rows
func (b *BaseDatabase) Exec(query string, args ...interface{}) (sql.Result, error) {
	b.logger.Debug(context.Background(), "Executing statement", log.Fields{"query": query})
	return b.conn().Exec(query, args...)
}

// Query executes a query that returns rows
func (b *BaseDatabase) Query(query string, args ...interface{}) (*sql.Rows, error) {
	b.logger.Debug(context.Background(), "Querying", log.Fields{"query": query})
	return b.conn().Query(query, args...)
}

// QueryRow executes a query that returns at most one row
func (b *BaseDatabase) QueryRow(query string, args ...interface{}) *sql.Row {
	return b.conn().QueryRow(query, args...)
}

// InitSchema applies the migrations newer than the stored schema version
func (b *BaseDatabase) InitSchema() error {
	ctx := context.Background()

	var version int
	if err := b.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version > len(migrations) {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, len(migrations))
	}

	for i := version; i < len(migrations); i++ {
		if err := b.migrate(i); err != nil {
			b.logger.Error(ctx, "Schema migration failed", log.Fields{"version": i + 1, "error": err})
			return fmt.Errorf("failed to migrate schema to version %d: %w", i+1, err)
		}
		b.logger.Info(ctx, "Schema migrated", log.Fields{"version": i + 1})
	}
	return nil
}

func (b *BaseDatabase) migrate(index int) (err error) {
	if err = b.Begin(); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = b.Rollback()
		}
	}()
	if _, err = b.Exec(migrations[index]); err != nil {
		return err
	}
	// PRAGMA does not accept bound parameters
	if _, err = b.Exec(fmt.Sprintf("PRAGMA user_version = %d", index+1)); err != nil {
		return err
	}
	return b.Commit()
}
