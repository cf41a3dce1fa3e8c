// Package jsonstore persists domain collections as JSON array documents in
// a data directory, one file per collection.
package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

const (
	attendanceFile = "attendance.json"
	workersFile    = "workers.json"
	companiesFile  = "companies.json"
)

var collections = []string{attendanceFile, workersFile, companiesFile}

// Store serialises access to the documents of one data directory. Writes
// go to a temporary file first and are renamed into place.
type Store struct {
	dir  string
	mu   sync.Mutex
	txMu sync.Mutex
}

func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string { return s.dir }

// Ping checks the data directory is writable.
func (s *Store) Ping(ctx context.Context) error {
	f, err := os.CreateTemp(s.dir, ".ping-*")
	if err != nil {
		return fmt.Errorf("data directory not writable: %w", err)
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

// WithinTransaction snapshots every collection, runs fn and restores the
// snapshots if fn fails. Transactions run one at a time.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snapshot := make(map[string][]byte, len(collections))
	s.mu.Lock()
	for _, name := range collections {
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.mu.Unlock()
			return fmt.Errorf("failed to snapshot %s: %w", name, err)
		}
		snapshot[name] = data
	}
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		for name, data := range snapshot {
			if rbErr := s.restore(name, data); rbErr != nil {
				return fmt.Errorf("rollback error: %v (original error: %w)", rbErr, err)
			}
		}
		return err
	}
	return nil
}

func (s *Store) restore(name string, data []byte) error {
	path := filepath.Join(s.dir, name)
	if data == nil {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	}
	return s.writeRaw(name, data)
}

// readLocked decodes a collection. A missing or empty file is an empty
// collection. Callers hold s.mu.
func readLocked[T any](s *Store, name string) ([]T, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if len(data) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func writeLocked[T any](s *Store, name string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return s.writeRaw(name, data)
}

func (s *Store) writeRaw(name string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

// load returns a copy of a collection.
func load[T any](s *Store, name string) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readLocked[T](s, name)
}

// mutate reads a collection, applies fn and writes the result back under a
// single lock. Nothing is written when fn fails.
func mutate[T any](s *Store, name string, fn func(items []T) ([]T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := readLocked[T](s, name)
	if err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	return writeLocked(s, name, items)
}
