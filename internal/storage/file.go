package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileSlot keeps the slot as a JSON file inside a data directory.
type FileSlot struct {
	path string
}

// NewFileSlot creates a slot stored at <dataDir>/<SlotKey>.json.
func NewFileSlot(dataDir string) *FileSlot {
	return &FileSlot{path: filepath.Join(dataDir, SlotKey+".json")}
}

// Path returns the file backing the slot.
func (s *FileSlot) Path() string { return s.path }

// Read returns the file content, or ErrEmpty if the file does not exist.
func (s *FileSlot) Read(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	return data, nil
}

// Write atomically replaces the file: temp file first, then rename.
func (s *FileSlot) Write(ctx context.Context, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmpPath := fmt.Sprintf("%s.tmp.%d", s.path, os.Getpid())
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		// Clean up temp file on failure
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Clear removes the file. Clearing an empty slot is not an error.
func (s *FileSlot) Clear(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op.
func (s *FileSlot) Close() error { return nil }
