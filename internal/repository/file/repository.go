// Package file stores slots as JSON documents in a directory, one file per
// slot, guarded by an advisory lock so concurrent processes do not interleave
// writes.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"task-board/internal/errors"
	"task-board/internal/logging"
	"task-board/internal/repository"
)

const (
	lockFileName   = ".taskboard.lock"
	slotExtension  = ".json"
	lockRetryDelay = 25 * time.Millisecond
)

// Repository implements repository.SlotStore on the local filesystem
type Repository struct {
	dir string
	flk *flock.Flock
}

var _ repository.SlotStore = (*Repository)(nil)

// New creates the directory if needed and returns a repository rooted there
func New(dir string) (*Repository, error) {
	if dir == "" {
		return nil, errors.NewInvalidInputError("dir", dir, "storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.NewStorageError("create storage directory", err)
	}
	return &Repository{
		dir: dir,
		flk: flock.New(filepath.Join(dir, lockFileName)),
	}, nil
}

// Path returns the file backing key
func (r *Repository) Path(key string) string {
	return filepath.Join(r.dir, key+slotExtension)
}

// Read returns the contents of the slot file
func (r *Repository) Read(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if err := r.lock(ctx, false); err != nil {
		return nil, err
	}
	defer r.unlock()

	data, err := os.ReadFile(r.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("slot", key)
		}
		return nil, errors.NewStorageError("read slot "+key, err)
	}
	return data, nil
}

// Write replaces the slot file atomically
func (r *Repository) Write(ctx context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := r.lock(ctx, true); err != nil {
		return err
	}
	defer r.unlock()

	target := r.Path(key)
	tmp, err := os.CreateTemp(r.dir, "."+key+"-*.tmp")
	if err != nil {
		return errors.NewStorageError("write slot "+key, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.NewStorageError("write slot "+key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.NewStorageError("sync slot "+key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.NewStorageError("close slot "+key, err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return errors.NewStorageError("replace slot "+key, err)
	}

	logging.Debugf("wrote %d bytes to %s", len(value), target)
	return nil
}

// Delete removes the slot file. Missing slots are ignored.
func (r *Repository) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := r.lock(ctx, true); err != nil {
		return err
	}
	defer r.unlock()

	if err := os.Remove(r.Path(key)); err != nil && !os.IsNotExist(err) {
		return errors.NewStorageError("delete slot "+key, err)
	}
	return nil
}

// Close releases the lock if it is still held
func (r *Repository) Close() error {
	return r.flk.Unlock()
}

func (r *Repository) lock(ctx context.Context, exclusive bool) error {
	var (
		locked bool
		err    error
	)
	if exclusive {
		locked, err = r.flk.TryLockContext(ctx, lockRetryDelay)
	} else {
		locked, err = r.flk.TryRLockContext(ctx, lockRetryDelay)
	}
	if err != nil {
		return errors.NewStorageError("lock "+r.dir, err)
	}
	if !locked {
		return errors.NewStorageError("lock "+r.dir, fmt.Errorf("lock not acquired"))
	}
	return nil
}

func (r *Repository) unlock() {
	if err := r.flk.Unlock(); err != nil {
		logging.Warnf("failed to release lock on %s: %v", r.dir, err)
	}
}

func validateKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return errors.NewInvalidInputError("slot", key, "slot names must be plain file names")
	}
	return nil
}
