package ports

import (
	"context"
	"time"

	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/domain"
)

// Journal records submission attempts for traceability.
type Journal interface {
	Append(ctx context.Context, entry domain.SubmissionEntry) error
	Recent(ctx context.Context, limit int) ([]domain.SubmissionEntry, error)
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
