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

	recordtypes "github.com/Apurer/go-vet-office/internal/domains/records/application/types"
	"github.com/Apurer/go-vet-office/internal/domains/records/ports"
)

const tracerName = "github.com/Apurer/go-vet-office/internal/domains/records/adapters/observability/service"

// Service decorates the records port with tracing, logging, and metrics.
type Service struct {
	inner     ports.Service
	tracer    trace.Tracer
	logger    *slog.Logger
	submitted metric.Int64Counter
	rejected  metric.Int64Counter
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

// WithMeter registers submission counters, labelled by record kind.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		if m == nil {
			return
		}
		s.submitted, _ = m.Int64Counter("records.service.submitted", metric.WithDescription("Number of records stored"))
		s.rejected, _ = m.Int64Counter("records.service.rejected", metric.WithDescription("Number of submissions that failed"))
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{inner: inner}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// Submit stores a record with instrumentation.
func (s *Service) Submit(ctx context.Context, input recordtypes.SubmitRecordInput) (*recordtypes.RecordProjection, error) {
	kind := attribute.String("record.kind", string(input.Envelope.Kind))
	ctx, span := s.tracer.Start(ctx, "Service.Submit", trace.WithAttributes(kind))
	defer span.End()

	result, err := s.inner.Submit(ctx, input)
	if err != nil {
		if s.rejected != nil {
			s.rejected.Add(ctx, 1, metric.WithAttributes(kind))
		}
		return nil, s.fail(ctx, span, err, "failed to submit record", slog.String("record.kind", string(input.Envelope.Kind)))
	}
	if s.submitted != nil {
		s.submitted.Add(ctx, 1, metric.WithAttributes(kind))
	}
	span.SetAttributes(attribute.String("record.id", result.ID.String()))
	s.logger.LogAttrs(ctx, slog.LevelInfo, "record submitted",
		slog.String("record.id", result.ID.String()),
		slog.String("record.kind", string(result.Kind)),
	)
	return result, nil
}

// Get loads a record with instrumentation.
func (s *Service) Get(ctx context.Context, input recordtypes.RecordIdentifier) (*recordtypes.RecordProjection, error) {
	ctx, span := s.tracer.Start(ctx, "Service.Get", trace.WithAttributes(attribute.String("record.id", input.ID.String())))
	defer span.End()

	result, err := s.inner.Get(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to load record", slog.String("record.id", input.ID.String()))
	}
	return result, nil
}

// List returns records with instrumentation.
func (s *Service) List(ctx context.Context, input recordtypes.ListRecordsInput) ([]*recordtypes.RecordProjection, error) {
	ctx, span := s.tracer.Start(ctx, "Service.List", trace.WithAttributes(attribute.String("record.kind", string(input.Kind))))
	defer span.End()

	result, err := s.inner.List(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to list records")
	}
	span.SetAttributes(attribute.Int("record.result.count", len(result)))
	return result, nil
}

func (s *Service) fail(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

var _ ports.Service = (*Service)(nil)
