package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/domain"
	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/ports"
)

var _ ports.Journal = (*Journal)(nil)

// DefaultJournalCapacity matches the largest page the journal listing serves.
const DefaultJournalCapacity = 500

// Journal is an in-memory submission journal holding the newest entries in
// a fixed-size ring.
type Journal struct {
	mu       sync.RWMutex
	entries  []domain.SubmissionEntry
	next     int
	capacity int
}

func NewJournal() *Journal {
	return NewJournalWithCapacity(DefaultJournalCapacity)
}

// NewJournalWithCapacity keeps at most capacity entries; older ones are overwritten.
func NewJournalWithCapacity(capacity int) *Journal {
	if capacity <= 0 {
		capacity = DefaultJournalCapacity
	}
	return &Journal{capacity: capacity}
}

func (j *Journal) Append(_ context.Context, entry domain.SubmissionEntry) error {
	clone := entry
	clone.Parts = append([]string(nil), entry.Parts...)
	j.mu.Lock()
	defer j.mu.Unlock()
	if len(j.entries) < j.capacity {
		j.entries = append(j.entries, clone)
		return nil
	}
	j.entries[j.next] = clone
	j.next = (j.next + 1) % j.capacity
	return nil
}

func (j *Journal) Recent(_ context.Context, limit int) ([]domain.SubmissionEntry, error) {
	j.mu.RLock()
	list := make([]domain.SubmissionEntry, len(j.entries))
	copy(list, j.entries)
	j.mu.RUnlock()

	sort.SliceStable(list, func(a, b int) bool {
		return list[a].CreatedAt.After(list[b].CreatedAt)
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (j *Journal) PurgeBefore(_ context.Context, cutoff time.Time) (int64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	ordered := append(append([]domain.SubmissionEntry(nil), j.entries[j.next:]...), j.entries[:j.next]...)
	kept := ordered[:0]
	var purged int64
	for _, entry := range ordered {
		if entry.CreatedAt.Before(cutoff) {
			purged++
			continue
		}
		kept = append(kept, entry)
	}
	j.entries = kept
	j.next = 0
	return purged, nil
}
