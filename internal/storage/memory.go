package storage

import (
	"context"
	"sync"
)

// MemorySlot keeps the slot in process memory. FailWrites makes every Write
// fail with the given error.
type MemorySlot struct {
	mu         sync.Mutex
	data       []byte
	written    bool
	writes     int
	FailWrites error
}

// NewMemorySlot returns an empty in-memory slot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (s *MemorySlot) Read(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.written {
		return nil, ErrEmpty
	}
	return append([]byte(nil), s.data...), nil
}

func (s *MemorySlot) Write(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.data = append([]byte(nil), data...)
	s.written = true
	s.writes++
	return nil
}

func (s *MemorySlot) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	s.written = false
	return nil
}

func (s *MemorySlot) Close() error { return nil }

// Writes returns how many successful writes the slot has seen.
func (s *MemorySlot) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
