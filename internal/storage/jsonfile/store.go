// Package jsonfile implements the record store over a single JSON document
// on disk.
//
// The whole reminder collection lives in one file shaped as
// {"reminders": [...]}. Every read loads the full document and every write
// replaces it, so the on-disk state is always one consistent snapshot.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pawkeep/reminder-service/internal/model"
)

// document is the on-disk layout of the store.
type document struct {
	Reminders []model.Reminder `json:"reminders"`
}

// Store persists the reminder collection as a JSON document at a fixed path.
type Store struct {
	path string
	mu   sync.Mutex
}

// New creates a store backed by the JSON document at path.
//
// The file is not touched until the first access; ReadAll bootstraps an
// empty document if none exists.
func New(path string) *Store {
	return &Store{path: path}
}

// ensureFile creates the data directory and an empty document if the file
// does not exist yet. Safe to call repeatedly.
func (s *Store) ensureFile() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat store file: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}

	return s.write(document{Reminders: []model.Reminder{}})
}

func (s *Store) write(doc document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store document: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}

	return nil
}

// ReadAll loads the current reminder collection from disk.
func (s *Store) ReadAll(_ context.Context) ([]model.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureFile(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal store document: %w", err)
	}

	if doc.Reminders == nil {
		doc.Reminders = []model.Reminder{}
	}

	return doc.Reminders, nil
}

// WriteAll atomically replaces the stored collection with the given list.
func (s *Store) WriteAll(_ context.Context, reminders []model.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}

	return s.write(document{Reminders: reminders})
}
