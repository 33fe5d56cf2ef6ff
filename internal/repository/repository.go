// Package repository persists task collections into named key-value slots.
// Backends live in subpackages (sqlite, file); MemoryStore serves tests.
package repository

import (
	"context"
)

// SlotStore defines the interface for slot storage backends.
// Read returns a not-found AppError when the slot has never been written.
type SlotStore interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// DefaultSlot is the slot key holding the task collection.
const DefaultSlot = "tasks"
