// Package store is a small durable key-value store persisted as a single
// JSON document. Every mutation is written to disk atomically (temp file
// then rename) before the in-memory state is updated.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

var ErrKeyNotFound = errors.New("key not found")

type Store struct {
	mu       sync.RWMutex
	filePath string
	values   map[string]string
}

// Open loads the store from filePath, starting empty if the file does not
// exist yet. A file that exists but cannot be read or parsed is an error.
func Open(filePath string) (*Store, error) {
	s := &Store{filePath: filePath, values: make(map[string]string)}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filePath, err)
	}
	return s, nil
}

func (s *Store) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.copyValues()
	next[key] = value
	if err := s.writeAtomic(next); err != nil {
		return err
	}
	s.values = next
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[key]; !ok {
		return nil
	}
	next := s.copyValues()
	delete(next, key)
	if err := s.writeAtomic(next); err != nil {
		return err
	}
	s.values = next
	return nil
}

// List returns the keys matching prefix, sorted. An empty prefix matches
// every key.
func (s *Store) List(prefix string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]string)
	if err := s.writeAtomic(next); err != nil {
		return err
	}
	s.values = next
	return nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// Shutdown satisfies the shutdown registry; the store writes through on
// every mutation so there is nothing to flush.
func (s *Store) Shutdown() {}

// copyValues returns a mutable copy of the current map so a failed write
// never leaves memory ahead of disk. Caller must hold s.mu.
func (s *Store) copyValues() map[string]string {
	next := make(map[string]string, len(s.values))
	for k, v := range s.values {
		next[k] = v
	}
	return next
}

// writeAtomic writes values to a temp file then renames it over filePath.
// Caller must hold s.mu.
func (s *Store) writeAtomic(values map[string]string) error {
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.filePath)
}
