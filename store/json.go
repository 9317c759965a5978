package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// jsonFile keeps the whole history in one JSON document, rewritten on every save.
type jsonFile struct {
	path    string
	mutex   sync.RWMutex
	records []GameRecord
	closed  bool
}

// NewJSONStore loads path if it exists. A missing file starts an empty history.
func NewJSONStore(path string) (Store, error) {
	s := &jsonFile{path: path}
	if err := s.loadFromFile(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *jsonFile) Save(ctx context.Context, rec GameRecord) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.records = append(s.records, rec)
	if err := s.saveToFile(); err != nil {
		s.records = s.records[:len(s.records)-1]
		return err
	}
	return nil
}

func (s *jsonFile) Best(ctx context.Context) (int, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return bestOf(s.records), nil
}

func (s *jsonFile) Recent(ctx context.Context, n int) ([]GameRecord, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return newestFirst(s.records, n), nil
}

func (s *jsonFile) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.closed = true
	return nil
}

func (s *jsonFile) saveToFile() error {
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create stats directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats data: %w", err)
	}

	// Write next to the target and rename so a crash never leaves half a file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write stats file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace stats file: %w", err)
	}
	return nil
}

func (s *jsonFile) loadFromFile() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.records = make([]GameRecord, 0)
			return nil
		}
		return fmt.Errorf("read stats file: %w", err)
	}

	if err := json.Unmarshal(data, &s.records); err != nil {
		return fmt.Errorf("decode stats file %s: %w", s.path, err)
	}
	return nil
}
