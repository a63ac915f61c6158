package ports

import (
	"context"
	"encoding/json"

	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/domain"
)

// Submitter delivers orders to the distributor. Implementations make a single
// attempt; retries belong to callers.
type Submitter interface {
	SubmitOrder(ctx context.Context, order *domain.OrderRecord) (*domain.Receipt, error)
	SubmitPayload(ctx context.Context, payload json.RawMessage) (*domain.Receipt, error)
}
