package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
)

//go:embed *.sql
var migrationsFS embed.FS

// Migration is one numbered schema step read from a NNNNNN_name.up.sql /
// NNNNNN_name.down.sql pair
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// Run applies every migration that is not yet recorded in schema_migrations
func Run(ctx context.Context, db *sql.DB) error {
	if err := ensureVersionTable(ctx, db); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	all, err := Load()
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	applied, err := appliedSet(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to read applied migrations: %w", err)
	}

	for _, m := range all {
		if applied[m.Version] {
			continue
		}
		err := inTx(ctx, db, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, m.Up); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx,
				"INSERT INTO schema_migrations (version, name) VALUES (?, ?)", m.Version, m.Name)
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to apply migration %06d_%s: %w", m.Version, m.Name, err)
		}
	}
	return nil
}

// Rollback reverts applied migrations newer than target, newest first
func Rollback(ctx context.Context, db *sql.DB, target int) error {
	if err := ensureVersionTable(ctx, db); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	all, err := Load()
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	applied, err := appliedSet(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to read applied migrations: %w", err)
	}

	for i := len(all) - 1; i >= 0; i-- {
		m := all[i]
		if m.Version <= target || !applied[m.Version] {
			continue
		}
		err := inTx(ctx, db, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, m.Down); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx, "DELETE FROM schema_migrations WHERE version = ?", m.Version)
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to revert migration %06d_%s: %w", m.Version, m.Name, err)
		}
	}
	return nil
}

// Versions returns the applied migration versions in ascending order
func Versions(ctx context.Context, db *sql.DB) ([]int, error) {
	applied, err := appliedSet(ctx, db)
	if err != nil {
		return nil, err
	}
	versions := make([]int, 0, len(applied))
	for v := range applied {
		versions = append(versions, v)
	}
	sort.Ints(versions)
	return versions, nil
}

// Load reads the embedded migrations sorted by version. Every up file
// needs a matching down file.
func Load() ([]Migration, error) {
	ups, err := fs.Glob(migrationsFS, "*.up.sql")
	if err != nil {
		return nil, err
	}

	all := make([]Migration, 0, len(ups))
	for _, upName := range ups {
		version, name, ok := parseFilename(upName)
		if !ok {
			return nil, fmt.Errorf("malformed migration filename %q", upName)
		}

		up, err := fs.ReadFile(migrationsFS, upName)
		if err != nil {
			return nil, err
		}
		down, err := fs.ReadFile(migrationsFS, strings.TrimSuffix(upName, ".up.sql")+".down.sql")
		if err != nil {
			return nil, fmt.Errorf("migration %q has no down file: %w", upName, err)
		}

		all = append(all, Migration{Version: version, Name: name, Up: string(up), Down: string(down)})
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Version < all[j].Version })
	return all, nil
}

// parseFilename splits "000001_create_slots.up.sql" into 1 and "create_slots"
func parseFilename(filename string) (int, string, bool) {
	base := strings.TrimSuffix(filename, ".up.sql")
	prefix, name, found := strings.Cut(base, "_")
	if !found || name == "" {
		return 0, "", false
	}
	version, err := strconv.Atoi(prefix)
	if err != nil || version <= 0 {
		return 0, "", false
	}
	return version, name, true
}

func ensureVersionTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	return err
}

func appliedSet(ctx context.Context, db *sql.DB) (map[int]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func inTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
