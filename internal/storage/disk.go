package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"

	"github.com/starford/dagaz/internal/apperr"
)

// Disk implements Provider backed by diskv: one file per key under a
// single base directory, with write-then-rename durability handled by
// diskv itself.
type Disk struct {
	d    *diskv.Diskv
	base string
}

// NewDisk creates a Disk provider rooted at the given directory,
// creating it if necessary.
func NewDisk(base string) (*Disk, error) {
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve base: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create base: %w", err)
	}
	d := diskv.New(diskv.Options{
		BasePath:     abs,
		CacheSizeMax: 1024 * 1024, // 1MB
	})
	return &Disk{d: d, base: abs}, nil
}

// BasePath returns the directory the store writes under.
func (s *Disk) BasePath() string {
	return s.base
}

// Read returns the payload stored under key.
func (s *Disk) Read(key string) ([]byte, error) {
	data, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("storage: read %s: %w", key, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("storage: read %s: %w", key, err)
	}
	return data, nil
}

// Write durably stores payload under key.
func (s *Disk) Write(key string, payload []byte) error {
	if err := s.d.Write(key, payload); err != nil {
		return fmt.Errorf("storage: write %s: %w", key, err)
	}
	return nil
}

// Delete removes the payload under key. Missing keys are a no-op.
func (s *Disk) Delete(key string) error {
	if err := s.d.Erase(key); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("storage: delete %s: %w", key, err)
	}
	return nil
}

// Keys returns every key currently present in the store.
func (s *Disk) Keys() []string {
	var keys []string
	for key := range s.d.Keys(nil) {
		keys = append(keys, key)
	}
	return keys
}
