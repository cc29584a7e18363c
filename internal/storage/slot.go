// Package storage provides the durable key-value slots planbook persists its
// plan collection to, and the lock guarding a local data directory.
package storage

import (
	"context"
	"errors"
)

// SlotKey names the single slot holding the plan collection.
const SlotKey = "planbook_v1"

// ErrEmpty is returned by Read when nothing has been written to the slot.
var ErrEmpty = errors.New("slot is empty")

// Slot is a single durable value. Every driver in this package implements it.
type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
	Close() error
}
