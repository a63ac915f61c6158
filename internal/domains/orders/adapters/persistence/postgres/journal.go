package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/domain"
	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/ports"
)

var _ ports.Journal = (*Journal)(nil)

// Journal persists submission attempts in PostgreSQL using GORM.
type Journal struct {
	db *gorm.DB
}

// NewJournal wires a PostgreSQL-backed journal. Caller manages DB lifecycle.
// Schema is owned by the migrations package.
func NewJournal(db *gorm.DB) *Journal {
	return &Journal{db: db}
}

// submissionRecord maps a journal entry to a relational table.
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

// Append inserts one entry.
func (j *Journal) Append(ctx context.Context, entry domain.SubmissionEntry) error {
	if err := j.ensureDB(); err != nil {
		return err
	}
	record := toRecord(entry)
	return j.db.WithContext(ctx).Create(&record).Error
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]domain.SubmissionEntry, error) {
	if err := j.ensureDB(); err != nil {
		return nil, err
	}
	var records []submissionRecord
	query := j.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	entries := make([]domain.SubmissionEntry, 0, len(records))
	for i := range records {
		entries = append(entries, records[i].toDomain())
	}
	return entries, nil
}

// PurgeBefore deletes entries created before cutoff.
func (j *Journal) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := j.ensureDB(); err != nil {
		return 0, err
	}
	result := j.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&submissionRecord{})
	return result.RowsAffected, result.Error
}

func (j *Journal) ensureDB() error {
	if j == nil || j.db == nil {
		return errors.New("postgres submission journal not configured")
	}
	return nil
}

func toRecord(entry domain.SubmissionEntry) submissionRecord {
	return submissionRecord{
		ID:        entry.ID,
		Kind:      string(entry.Kind),
		PONumber:  entry.PONumber,
		Parts:     pq.StringArray(entry.Parts),
		Outcome:   string(entry.Outcome),
		Error:     entry.Error,
		CreatedAt: entry.CreatedAt,
	}
}

func (r submissionRecord) toDomain() domain.SubmissionEntry {
	return domain.SubmissionEntry{
		ID:        r.ID,
		Kind:      domain.SubmissionKind(r.Kind),
		PONumber:  r.PONumber,
		Parts:     []string(r.Parts),
		Outcome:   domain.Outcome(r.Outcome),
		Error:     r.Error,
		CreatedAt: r.CreatedAt,
	}
}
