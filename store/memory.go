package store

import (
	"context"
	"sync"
)

// memory keeps records for the lifetime of the process only.
type memory struct {
	mu      sync.RWMutex
	records []GameRecord
	closed  bool
}

// NewMemoryStore returns a Store that forgets everything on exit.
func NewMemoryStore() Store {
	return &memory{}
}

func (m *memory) Save(ctx context.Context, rec GameRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *memory) Best(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return bestOf(m.records), nil
}

func (m *memory) Recent(ctx context.Context, n int) ([]GameRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return newestFirst(m.records, n), nil
}

func (m *memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
