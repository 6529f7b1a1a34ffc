package repository

import (
	"context"
	"sync"

	"github.com/NeuralTrust/TMSHarness/pkg/domain/record"
)

// MemoryHistoryRepository keeps history for the lifetime of the process.
type MemoryHistoryRepository struct {
	mu      sync.RWMutex
	records []record.TestRecord
}

func NewMemoryHistoryRepository() record.Repository {
	return &MemoryHistoryRepository{}
}

func (r *MemoryHistoryRepository) Append(_ context.Context, rec record.TestRecord) error {
	r.mu.Lock()
	r.records = append(r.records, rec)
	r.mu.Unlock()
	return nil
}

func (r *MemoryHistoryRepository) List(_ context.Context, limit int) ([]record.TestRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	start := 0
	if limit > 0 && len(r.records) > limit {
		start = len(r.records) - limit
	}
	out := make([]record.TestRecord, len(r.records)-start)
	copy(out, r.records[start:])
	return out, nil
}

func (r *MemoryHistoryRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records), nil
}

func (r *MemoryHistoryRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	r.records = nil
	r.mu.Unlock()
	return nil
}
