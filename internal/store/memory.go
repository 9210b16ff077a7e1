package store

import (
	"context"
	"sync"

	"github.com/cloudhire/cloudhire-backend/internal/models"
)

// Memory is a map-backed RecordStore for tests and demo deployments without
// a real table behind them.
type Memory struct {
	mu      sync.RWMutex
	records map[string]models.Record
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string]models.Record)}
}

func (m *Memory) Get(_ context.Context, id string) (models.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return rec.Clone(), nil
}

func (m *Memory) Put(_ context.Context, rec models.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.ID()] = rec.Clone()
	return nil
}

func (m *Memory) Update(_ context.Context, id string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok {
		// Same as DynamoDB UpdateItem: an update against a missing key
		// creates the record from the delta.
		rec = models.Record{"id": id}
	}
	for k, v := range fields {
		rec[k] = v
	}
	m.records[id] = rec
	return nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, id)
	return nil
}

func (m *Memory) Scan(_ context.Context) ([]models.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Record, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, rec.Clone())
	}
	return out, nil
}

// Len reports the number of stored records. Test helper.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
