package sqlite

import (
	"context"
	"database/sql"
	"time"

	"task-board/internal/errors"
	"task-board/internal/repository"
	"task-board/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// SlotRepository implements repository.SlotStore on a SQLite database
type SlotRepository struct {
	db           *sql.DB
	queryTimeout time.Duration
	writeTimeout time.Duration
}

var _ repository.SlotStore = (*SlotRepository)(nil)

// Options tunes per-statement timeouts. Zero values disable the timeout.
type Options struct {
	QueryTimeout time.Duration
	WriteTimeout time.Duration
}

// New creates a new SQLite slot repository instance
func New(dbPath string) (*SlotRepository, error) {
	return NewWithOptions(dbPath, Options{})
}

// NewWithOptions opens dbPath, runs migrations and applies opts
func NewWithOptions(dbPath string, opts Options) (*SlotRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}

	// Every connection to ":memory:" is a separate database.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := migrations.Run(context.Background(), db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}

	return &SlotRepository{
		db:           db,
		queryTimeout: opts.QueryTimeout,
		writeTimeout: opts.WriteTimeout,
	}, nil
}

// Close closes the database connection
func (r *SlotRepository) Close() error {
	return r.db.Close()
}

// Read returns the value stored under key
func (r *SlotRepository) Read(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := withTimeout(ctx, r.queryTimeout)
	defer cancel()

	query := `SELECT key, value, updated_at FROM slots WHERE key = ?`
	slot, err := QuerySingle(ctx, r.db, query, ScanSlot, "slot", key, key)
	if err != nil {
		return nil, err
	}
	return []byte(slot.Value), nil
}

// Write inserts or replaces the value stored under key
func (r *SlotRepository) Write(ctx context.Context, key string, value []byte) error {
	ctx, cancel := withTimeout(ctx, r.writeTimeout)
	defer cancel()

	query := `
	INSERT INTO slots (key, value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	_, err := Execute(ctx, r.db, query, key, string(value), repository.FormatTimeForStore(time.Now().UTC()))
	return err
}

// Delete removes key. Missing keys are ignored.
func (r *SlotRepository) Delete(ctx context.Context, key string) error {
	ctx, cancel := withTimeout(ctx, r.writeTimeout)
	defer cancel()

	_, err := Execute(ctx, r.db, `DELETE FROM slots WHERE key = ?`, key)
	return err
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
