package repository

import (
	"context"

	"task-board/internal/errors"
	"task-board/internal/logging"
)

// TaskSlot reads and writes the whole task collection under one slot key.
type TaskSlot struct {
	store SlotStore
	key   string
}

// NewTaskSlot binds a slot key to a store. An empty key selects DefaultSlot.
func NewTaskSlot(store SlotStore, key string) *TaskSlot {
	if key == "" {
		key = DefaultSlot
	}
	return &TaskSlot{store: store, key: key}
}

// Key returns the slot key.
func (s *TaskSlot) Key() string {
	return s.key
}

// Load returns the stored records, or an empty slice when the slot is unset.
func (s *TaskSlot) Load(ctx context.Context) ([]TaskRecord, error) {
	data, err := s.store.Read(ctx, s.key)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			logging.Debugf("slot %q is empty", s.key)
			return []TaskRecord{}, nil
		}
		return nil, err
	}

	records, err := DecodeTasks(data)
	if err != nil {
		return nil, errors.NewStorageError("decode slot "+s.key, err)
	}
	return records, nil
}

// Save replaces the slot contents with records.
func (s *TaskSlot) Save(ctx context.Context, records []TaskRecord) error {
	data, err := EncodeTasks(records)
	if err != nil {
		return errors.NewStorageError("encode slot "+s.key, err)
	}
	if err := s.store.Write(ctx, s.key, data); err != nil {
		return err
	}
	logging.Debugf("saved %d tasks to slot %q", len(records), s.key)
	return nil
}

// Clear removes the slot from the store. A later Load sees an empty collection.
func (s *TaskSlot) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.key); err != nil {
		return err
	}
	logging.Debugf("cleared slot %q", s.key)
	return nil
}
