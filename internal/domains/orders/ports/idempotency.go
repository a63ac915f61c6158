package ports

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var (
	// ErrIdempotencyConflict indicates the same key was used with a different payload.
	ErrIdempotencyConflict = errors.New("idempotency key reused with a different payload")
	// ErrIdempotencyInProgress indicates another request holds the key and has not finished.
	ErrIdempotencyInProgress = errors.New("a request with this idempotency key is still in progress")
)

// IdempotencyLease bounds how long a pending reservation blocks the key. It
// outlives the distributor timeout so a live request never loses its claim.
const IdempotencyLease = 2 * time.Minute

// IdempotencyRecord associates a client-supplied key with a delivered submission.
// Pending records are reservations whose delivery has not completed.
type IdempotencyRecord struct {
	Key         string
	RequestHash string
	Pending     bool
	Sent        json.RawMessage
	Result      json.RawMessage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Stale reports whether a pending reservation has outlived its lease.
func (r IdempotencyRecord) Stale(now time.Time) bool {
	return r.Pending && now.Sub(r.UpdatedAt) > IdempotencyLease
}

// IdempotencyStore persists idempotency keys so client retries replay the
// first delivery instead of placing a second order.
type IdempotencyStore interface {
	// Get returns the stored record for the key, or nil when unknown.
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	// Reserve atomically claims the key with a pending record. It returns
	// (nil, nil) when the claim succeeded, otherwise the record already
	// holding the key. A stale pending record is taken over.
	Reserve(ctx context.Context, key, requestHash string) (*IdempotencyRecord, error)
	// Complete stores the delivery on a reserved key.
	Complete(ctx context.Context, record IdempotencyRecord) error
	// Release drops a pending reservation so the key can be retried.
	Release(ctx context.Context, key string) error
}
