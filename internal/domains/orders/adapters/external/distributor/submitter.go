package distributor

import (
	"context"
	"encoding/json"
	"errors"

	distributorclient "github.com/thegunfirm/Mag-Lock-sub017/internal/clients/http/distributor"
	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/domain"
	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/ports"
)

// Submitter implements the outbound submission port over the distributor client.
type Submitter struct {
	client *distributorclient.Client
}

// NewSubmitter wires a distributor HTTP client into a submission adapter.
func NewSubmitter(client *distributorclient.Client) *Submitter {
	return &Submitter{client: client}
}

// SubmitOrder maps the record to the wire schema and posts it.
func (s *Submitter) SubmitOrder(ctx context.Context, order *domain.OrderRecord) (*domain.Receipt, error) {
	if s == nil || s.client == nil {
		return nil, errors.New("distributor submitter not configured")
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	sent, response, err := s.client.SubmitOrder(ctx, ToPayload(order))
	if err != nil {
		return nil, err
	}
	return &domain.Receipt{Sent: sent, Response: response}, nil
}

// SubmitPayload posts a caller-supplied payload without inspecting it.
func (s *Submitter) SubmitPayload(ctx context.Context, payload json.RawMessage) (*domain.Receipt, error) {
	if s == nil || s.client == nil {
		return nil, errors.New("distributor submitter not configured")
	}
	response, err := s.client.Submit(ctx, payload)
	if err != nil {
		return nil, err
	}
	return &domain.Receipt{Sent: payload, Response: response}, nil
}

var _ ports.Submitter = (*Submitter)(nil)
