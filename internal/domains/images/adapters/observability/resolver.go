package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	imagesdomain "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/images/domain"
	imagesports "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/images/ports"
)

const tracerName = "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/images/adapters/observability/resolver"

// Resolver decorates an image resolver with tracing, logging, and metrics.
type Resolver struct {
	inner       imagesports.Resolver
	tracer      trace.Tracer
	logger      *slog.Logger
	resolutions metric.Int64Counter
}

type Option func(*Resolver)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(r *Resolver) {
		r.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(r *Resolver) {
		if m == nil {
			return
		}
		r.resolutions, _ = m.Int64Counter("images.resolver.resolutions", metric.WithDescription("Image reference resolutions by status"))
	}
}

func New(inner imagesports.Resolver, opts ...Option) imagesports.Resolver {
	r := &Resolver{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.tracer == nil {
		r.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return r
}

func (r *Resolver) Resolve(ctx context.Context, ref string) imagesdomain.Resolution {
	ctx, span := r.tracer.Start(ctx, "ImageResolver.Resolve")
	defer span.End()

	res := r.inner.Resolve(ctx, ref)
	span.SetAttributes(
		attribute.String("image.status", string(res.Status)),
		attribute.String("image.key", res.Key.String()),
	)
	if r.resolutions != nil {
		r.resolutions.Add(ctx, 1, metric.WithAttributes(attribute.String("image.status", string(res.Status))))
	}

	switch res.Status {
	case imagesdomain.StatusProbeFailed:
		if res.Err != nil {
			span.RecordError(res.Err)
			span.SetStatus(codes.Error, res.Err.Error())
		}
		attrs := []slog.Attr{slog.String("image.ref", ref), slog.String("image.key", res.Key.String())}
		if res.Err != nil {
			attrs = append(attrs, slog.String("error", res.Err.Error()))
		}
		if r.logger != nil {
			r.logger.LogAttrs(ctx, slog.LevelWarn, "image probe failed, serving original reference", attrs...)
		}
	case imagesdomain.StatusNotFound:
		if r.logger != nil {
			r.logger.LogAttrs(ctx, slog.LevelDebug, "image not in bucket", slog.String("image.key", res.Key.String()))
		}
	}
	return res
}

var _ imagesports.Resolver = (*Resolver)(nil)
