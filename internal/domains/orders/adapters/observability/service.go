package observability

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	orderstypes "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/application/types"
	ordersdomain "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/domain"
	ordersports "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/ports"
	apierrors "github.com/thegunfirm/Mag-Lock-sub017/internal/shared/errors"
)

const tracerName = "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core orders service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) SubmitDemo(ctx context.Context, input orderstypes.DemoInput) (*orderstypes.SubmissionResult, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.SubmitDemo",
		trace.WithAttributes(attribute.String("order.account_id", input.AccountID), attribute.String("order.po_number", input.PONumber)))
	defer span.End()

	s.logInfo(ctx, "submitting demo order", slog.String("order.account_id", input.AccountID), slog.String("order.po_number", input.PONumber))
	result, err := s.inner.SubmitDemo(ctx, input)
	if err != nil {
		s.metrics.recordSubmission(ctx, ordersdomain.KindDemo, err)
		return nil, s.handleError(ctx, span, err, "demo order submission failed", slog.String("order.account_id", input.AccountID))
	}
	s.metrics.recordSubmission(ctx, ordersdomain.KindDemo, nil)
	s.logInfo(ctx, "demo order submitted", slog.Int("order.sent_bytes", len(result.Sent)))
	return result, nil
}

func (s *Service) SubmitPayload(ctx context.Context, kind ordersdomain.SubmissionKind, payload json.RawMessage) (*orderstypes.SubmissionResult, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.SubmitPayload",
		trace.WithAttributes(attribute.String("order.kind", string(kind)), attribute.Int("order.payload_bytes", len(payload))))
	defer span.End()

	s.logInfo(ctx, "submitting order payload", slog.String("order.kind", string(kind)), slog.Int("order.payload_bytes", len(payload)))
	result, err := s.inner.SubmitPayload(ctx, kind, payload)
	if err != nil {
		s.metrics.recordSubmission(ctx, kind, err)
		return nil, s.handleError(ctx, span, err, "order payload submission failed", slog.String("order.kind", string(kind)))
	}
	s.metrics.recordSubmission(ctx, kind, nil)
	s.logInfo(ctx, "order payload submitted", slog.String("order.kind", string(kind)))
	return result, nil
}

func (s *Service) SubmitPayloadOnce(ctx context.Context, kind ordersdomain.SubmissionKind, key string, payload json.RawMessage) (*orderstypes.SubmissionResult, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.SubmitPayloadOnce",
		trace.WithAttributes(
			attribute.String("order.kind", string(kind)),
			attribute.Bool("order.idempotent", key != ""),
			attribute.Int("order.payload_bytes", len(payload)),
		))
	defer span.End()

	result, err := s.inner.SubmitPayloadOnce(ctx, kind, key, payload)
	if err != nil {
		if errors.Is(err, ordersports.ErrIdempotencyConflict) || errors.Is(err, ordersports.ErrIdempotencyInProgress) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			s.logError(ctx, slog.LevelWarn, "idempotency key rejected", err, slog.String("order.kind", string(kind)))
			return nil, err
		}
		s.metrics.recordSubmission(ctx, kind, err)
		return nil, s.handleError(ctx, span, err, "order payload submission failed", slog.String("order.kind", string(kind)))
	}
	span.SetAttributes(attribute.Bool("order.replayed", result.Replayed))
	if result.Replayed {
		s.logInfo(ctx, "replayed idempotent order submission", slog.String("order.kind", string(kind)))
		return result, nil
	}
	s.metrics.recordSubmission(ctx, kind, nil)
	s.logInfo(ctx, "order payload submitted", slog.String("order.kind", string(kind)), slog.Bool("order.idempotent", key != ""))
	return result, nil
}

func (s *Service) ListSubmissions(ctx context.Context, limit int) ([]ordersdomain.SubmissionEntry, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.ListSubmissions", trace.WithAttributes(attribute.Int("journal.limit", limit)))
	defer span.End()

	result, err := s.inner.ListSubmissions(ctx, limit)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list submissions")
	}
	span.SetAttributes(attribute.Int("journal.count", len(result)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, level slog.Level, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, level, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	level := slog.LevelError
	if apierrors.IsValidation(err) {
		level = slog.LevelWarn
	}
	s.logError(ctx, level, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	submissions metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	submissions, _ := m.Int64Counter("orders.gateway.submissions", metric.WithDescription("Order submissions by entry point and outcome"))
	return serviceMetrics{submissions: submissions}
}

func (m serviceMetrics) recordSubmission(ctx context.Context, kind ordersdomain.SubmissionKind, err error) {
	if m.submissions == nil {
		return
	}
	m.submissions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("order.kind", string(kind)),
		attribute.String("outcome", outcome(err)),
	))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return string(ordersdomain.OutcomeSent)
	case apierrors.IsValidation(err):
		return "rejected"
	case apierrors.IsConfiguration(err):
		return "misconfigured"
	default:
		return string(ordersdomain.OutcomeFailed)
	}
}

var _ ordersports.Service = (*Service)(nil)
