package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/comitanigiacomo/momentum/internal/core/domain"
)

var _ domain.Store = (*JSONStore)(nil)

// document keeps the two keys the browser build used in local storage.
type document struct {
	Habits     json.RawMessage    `json:"habits"`
	Categories []*domain.Category `json:"habit_tracker_categories"`
}

// JSONStore persists the habit and category lists in a single JSON file.
type JSONStore struct {
	path string
	loc  *time.Location

	mu sync.RWMutex
}

func NewJSONStore(path string, loc *time.Location) (*JSONStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	return &JSONStore{path: path, loc: loc}, nil
}

func (s *JSONStore) read() (*document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &document{}, nil
		}
		return nil, fmt.Errorf("failed to read store: %w", err)
	}

	if len(data) == 0 {
		return &document{}, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse store %s: %w", s.path, err)
	}
	return &doc, nil
}

// write replaces the file atomically through a temp file in the same directory.
func (s *JSONStore) write(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".momentum-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to flush store: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace store: %w", err)
	}
	return nil
}

func (s *JSONStore) Load(ctx context.Context) ([]*domain.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	if len(doc.Habits) == 0 || string(doc.Habits) == "null" {
		return []*domain.Habit{}, nil
	}

	habits, err := DecodeHabits(doc.Habits, s.loc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse habits: %w", err)
	}
	return habits, nil
}

func (s *JSONStore) Save(ctx context.Context, habits []*domain.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	if habits == nil {
		habits = []*domain.Habit{}
	}
	encoded, err := json.Marshal(habits)
	if err != nil {
		return fmt.Errorf("failed to encode habits: %w", err)
	}
	doc.Habits = encoded

	return s.write(doc)
}

func (s *JSONStore) LoadCategories(ctx context.Context) ([]*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	if doc.Categories == nil {
		return []*domain.Category{}, nil
	}
	return doc.Categories, nil
}

func (s *JSONStore) SaveCategories(ctx context.Context, categories []*domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	if categories == nil {
		categories = []*domain.Category{}
	}
	doc.Categories = categories

	return s.write(doc)
}

func (s *JSONStore) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := s.read()
	return err
}

func (s *JSONStore) Close() error {
	return nil
}
