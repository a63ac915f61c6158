package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/ports"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore persists idempotency keys in PostgreSQL.
type IdempotencyStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewIdempotencyStore(db *gorm.DB) *IdempotencyStore {
	return &IdempotencyStore{db: db, now: time.Now}
}

// Get loads a record by key, returning nil when absent.
func (s *IdempotencyStore) Get(ctx context.Context, key string) (*ports.IdempotencyRecord, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var record idempotencyRecord
	if err := s.db.WithContext(ctx).First(&record, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toPortRecord(&record), nil
}

// Reserve inserts a pending row with ON CONFLICT DO NOTHING; the insert
// winning is the claim. A stale pending row is taken over with a guarded update.
func (s *IdempotencyStore) Reserve(ctx context.Context, key, requestHash string) (*ports.IdempotencyRecord, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	pending := idempotencyRecord{Key: key, RequestHash: requestHash, Pending: true, CreatedAt: now, UpdatedAt: now}
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&pending)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 1 {
		return nil, nil
	}

	takeover := s.db.WithContext(ctx).Model(&idempotencyRecord{}).
		Where("key = ? AND pending AND updated_at < ?", key, now.Add(-ports.IdempotencyLease)).
		Updates(map[string]any{"request_hash": requestHash, "created_at": now, "updated_at": now})
	if takeover.Error != nil {
		return nil, takeover.Error
	}
	if takeover.RowsAffected == 1 {
		return nil, nil
	}

	existing, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		// released between the insert and the read
		return s.Reserve(ctx, key, requestHash)
	}
	return existing, nil
}

// Complete records the delivery on the reserved row.
func (s *IdempotencyStore) Complete(ctx context.Context, record ports.IdempotencyRecord) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&idempotencyRecord{}).
		Where("key = ?", record.Key).
		Updates(map[string]any{
			"pending":    false,
			"sent":       []byte(record.Sent),
			"result":     []byte(record.Result),
			"updated_at": s.now().UTC(),
		}).Error
}

// Release deletes the row only while it is still pending.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Where("key = ? AND pending", key).Delete(&idempotencyRecord{}).Error
}

func (s *IdempotencyStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres idempotency store not configured")
	}
	return nil
}

type idempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:128"`
	Pending     bool      `gorm:"column:pending;not null;default:false"`
	Sent        []byte    `gorm:"column:sent;type:bytea"`
	Result      []byte    `gorm:"column:result;type:bytea"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (idempotencyRecord) TableName() string { return "order_idempotency_keys" }

func toPortRecord(rec *idempotencyRecord) *ports.IdempotencyRecord {
	if rec == nil {
		return nil
	}
	return &ports.IdempotencyRecord{
		Key:         rec.Key,
		RequestHash: rec.RequestHash,
		Pending:     rec.Pending,
		Sent:        rec.Sent,
		Result:      rec.Result,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}
