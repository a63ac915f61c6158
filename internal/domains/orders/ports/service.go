package ports

import (
	"context"
	"encoding/json"

	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/application/types"
	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/domain"
)

// Service exposes order submission use cases to adapters.
type Service interface {
	SubmitDemo(ctx context.Context, input types.DemoInput) (*types.SubmissionResult, error)
	SubmitPayload(ctx context.Context, kind domain.SubmissionKind, payload json.RawMessage) (*types.SubmissionResult, error)
	// SubmitPayloadOnce is SubmitPayload guarded by an idempotency key. An
	// empty key behaves exactly like SubmitPayload.
	SubmitPayloadOnce(ctx context.Context, kind domain.SubmissionKind, key string, payload json.RawMessage) (*types.SubmissionResult, error)
	ListSubmissions(ctx context.Context, limit int) ([]domain.SubmissionEntry, error)
}
