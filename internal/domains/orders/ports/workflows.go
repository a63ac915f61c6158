package ports

import (
	"context"
	"encoding/json"

	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/application/types"
)

// SubmissionWorkflows hands payloads to a caller-owned retry policy.
type SubmissionWorkflows interface {
	SubmitDurably(ctx context.Context, payload json.RawMessage) (*types.SubmissionResult, error)
}
