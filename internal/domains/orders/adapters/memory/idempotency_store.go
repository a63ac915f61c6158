package memory

import (
	"context"
	"sync"
	"time"

	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/ports"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore provides an in-memory implementation for development and tests.
type IdempotencyStore struct {
	mu      sync.Mutex
	records map[string]ports.IdempotencyRecord
	now     func() time.Time
}

func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{
		records: map[string]ports.IdempotencyRecord{},
		now:     time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (s *IdempotencyStore) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *IdempotencyStore) Get(_ context.Context, key string) (*ports.IdempotencyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[key]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (s *IdempotencyStore) Reserve(_ context.Context, key, requestHash string) (*ports.IdempotencyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if existing, ok := s.records[key]; ok && !existing.Stale(now) {
		return &existing, nil
	}
	s.records[key] = ports.IdempotencyRecord{
		Key:         key,
		RequestHash: requestHash,
		Pending:     true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return nil, nil
}

func (s *IdempotencyStore) Complete(_ context.Context, record ports.IdempotencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	record.Pending = false
	record.CreatedAt = now
	if existing, ok := s.records[record.Key]; ok {
		record.CreatedAt = existing.CreatedAt
	}
	record.UpdatedAt = now
	s.records[record.Key] = record
	return nil
}

func (s *IdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.records[key]; ok && existing.Pending {
		delete(s.records, key)
	}
	return nil
}
