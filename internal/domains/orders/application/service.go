package application

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/application/types"
	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/domain"
	"github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/ports"
	apierrors "github.com/thegunfirm/Mag-Lock-sub017/internal/shared/errors"
)

const (
	defaultJournalLimit = 50
	maxJournalLimit     = 500
)

// Service orchestrates order submission use cases.
type Service struct {
	builder     *Builder
	accounts    domain.AccountMapping
	submitter   ports.Submitter
	journal     ports.Journal
	idempotency ports.IdempotencyStore
	logger      *slog.Logger
	now         func() time.Time
}

// Option customizes the service.
type Option func(*Service)

// WithJournal records every submission attempt in journal.
func WithJournal(journal ports.Journal) Option {
	return func(s *Service) {
		s.journal = journal
	}
}

// WithAccountMapping replaces the default account mapping table.
func WithAccountMapping(accounts domain.AccountMapping) Option {
	return func(s *Service) {
		if accounts != nil {
			s.accounts = accounts
		}
	}
}

// WithLogger sets the logger used for non-fatal journal failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithServiceClock overrides the clock stamped on journal entries.
func WithServiceClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the builder and distributor submitter.
func NewService(builder *Builder, submitter ports.Submitter, opts ...Option) *Service {
	s := &Service{
		builder:   builder,
		accounts:  domain.DefaultAccountMapping(),
		submitter: submitter,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// SubmitDemo builds a sample order whose PO number is annotated with the
// account mapping, then submits it.
func (s *Service) SubmitDemo(ctx context.Context, input types.DemoInput) (*types.SubmissionResult, error) {
	accountID := firstNonEmpty(input.AccountID, s.builder.AccountID())
	base := input.PONumber
	if base == "" {
		base = s.builder.NextPONumber(accountID)
	}
	poNumber := s.accounts.AnnotatePONumber(base, accountID)

	order := s.builder.Build(types.BuildInput{AccountID: &accountID, PONumber: &poNumber})
	if err := order.Validate(); err != nil {
		return nil, mapError(err)
	}
	if s.submitter == nil {
		return nil, ErrSubmitterNotConfigured
	}
	receipt, err := s.submitter.SubmitOrder(ctx, &order)
	s.record(ctx, domain.KindDemo, order.PONumber, partNumbers(order.Items), err)
	if err != nil {
		return nil, err
	}
	return toResult(receipt), nil
}

// SubmitPayload forwards a caller-supplied payload unmodified. Only the
// structural check is performed; schema conformance is the caller's concern.
func (s *Service) SubmitPayload(ctx context.Context, kind domain.SubmissionKind, payload json.RawMessage) (*types.SubmissionResult, error) {
	if err := ValidatePayload(payload); err != nil {
		return nil, err
	}
	if s.submitter == nil {
		return nil, ErrSubmitterNotConfigured
	}
	if kind == "" {
		kind = domain.KindRaw
	}
	receipt, err := s.submitter.SubmitPayload(ctx, payload)
	summary := summarize(payload)
	s.record(ctx, kind, summary.PONumber, summary.parts(), err)
	if err != nil {
		return nil, err
	}
	return toResult(receipt), nil
}

// ListSubmissions returns the most recent journal entries, newest first.
func (s *Service) ListSubmissions(ctx context.Context, limit int) ([]domain.SubmissionEntry, error) {
	if s.journal == nil {
		return []domain.SubmissionEntry{}, nil
	}
	if limit <= 0 {
		limit = defaultJournalLimit
	}
	if limit > maxJournalLimit {
		limit = maxJournalLimit
	}
	return s.journal.Recent(ctx, limit)
}

// ValidatePayload accepts any JSON object or array.
func ValidatePayload(payload json.RawMessage) error {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return apierrors.NewValidationError(InvalidBodyMessage)
	}
	switch trimmed[0] {
	case '{', '[':
		return nil
	default:
		return apierrors.NewValidationError(InvalidBodyMessage)
	}
}

func (s *Service) record(ctx context.Context, kind domain.SubmissionKind, poNumber string, parts []string, submitErr error) {
	if s.journal == nil {
		return
	}
	entry := domain.SubmissionEntry{
		ID:        uuid.NewString(),
		Kind:      kind,
		PONumber:  poNumber,
		Parts:     parts,
		Outcome:   domain.OutcomeSent,
		CreatedAt: s.now().UTC(),
	}
	if submitErr != nil {
		entry.Outcome = domain.OutcomeFailed
		entry.Error = submitErr.Error()
	}
	if err := s.journal.Append(ctx, entry); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to journal order submission",
			slog.String("order.po_number", poNumber), slog.String("error", err.Error()))
	}
}

func toResult(receipt *domain.Receipt) *types.SubmissionResult {
	if receipt == nil {
		return &types.SubmissionResult{Sent: json.RawMessage("null"), Result: json.RawMessage("null")}
	}
	return &types.SubmissionResult{Sent: receipt.Sent, Result: receipt.Response}
}

func partNumbers(items []domain.LineItem) []string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, item.PartNumber)
	}
	return parts
}

// payloadSummary picks traceability fields out of an unchecked payload.
type payloadSummary struct {
	PONumber string `json:"poNumber"`
	Items    []struct {
		PartNumber string `json:"partNumber"`
	} `json:"items"`
}

func summarize(payload json.RawMessage) payloadSummary {
	var summary payloadSummary
	_ = json.Unmarshal(payload, &summary)
	return summary
}

func (p payloadSummary) parts() []string {
	parts := make([]string, 0, len(p.Items))
	for _, item := range p.Items {
		if item.PartNumber != "" {
			parts = append(parts, item.PartNumber)
		}
	}
	return parts
}

var _ ports.Service = (*Service)(nil)

// PayloadPONumber returns the poNumber field of a pass-through payload, or ""
// when the payload is an array or carries none.
func PayloadPONumber(payload json.RawMessage) string {
	return summarize(payload).PONumber
}
