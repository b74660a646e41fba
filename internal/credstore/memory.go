package credstore

import (
	"context"
	"sync"
)

// Memory keeps records in a process-local map. Used by tests and dev runs.
type Memory struct {
	mu   sync.Mutex
	recs map[string]Record
}

func NewMemory() *Memory {
	return &Memory{recs: make(map[string]Record)}
}

func (m *Memory) Save(ctx context.Context, userID string, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[userID] = rec
	return nil
}

func (m *Memory) Load(ctx context.Context, userID string) (Record, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[userID]
	return rec, ok, nil
}
