package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the gateway schema.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&submissionRecord{},
		&idempotencyRecord{},
	)
}

// Submission journal schema mirrors the orders Postgres adapter.
type submissionRecord struct {
	ID        string         `gorm:"primaryKey;column:id;type:uuid"`
	Kind      string         `gorm:"column:kind;type:varchar(16);index"`
	PONumber  string         `gorm:"column:po_number;index"`
	Parts     pq.StringArray `gorm:"column:parts;type:text[]"`
	Outcome   string         `gorm:"column:outcome;type:varchar(16);index"`
	Error     string         `gorm:"column:error"`
	CreatedAt time.Time      `gorm:"column:created_at;index"`
}

func (submissionRecord) TableName() string { return "order_submissions" }

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
