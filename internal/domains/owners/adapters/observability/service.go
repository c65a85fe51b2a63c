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

	ownertypes "github.com/Apurer/go-vet-office/internal/domains/owners/application/types"
	"github.com/Apurer/go-vet-office/internal/domains/owners/ports"
)

const tracerName = "github.com/Apurer/go-vet-office/internal/domains/owners/adapters/observability/service"

// Service decorates the owners port with tracing, logging, and metrics.
type Service struct {
	inner    ports.Service
	tracer   trace.Tracer
	logger   *slog.Logger
	created  metric.Int64Counter
	searches metric.Int64Histogram
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

// WithMeter registers an owners-created counter and a histogram of search
// result sizes.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		if m == nil {
			return
		}
		s.created, _ = m.Int64Counter("owners.service.created", metric.WithDescription("Number of owners registered"))
		s.searches, _ = m.Int64Histogram("owners.service.search.rows", metric.WithDescription("Rows returned per owner search"))
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

// CreateOwner registers an owner with instrumentation.
func (s *Service) CreateOwner(ctx context.Context, input ownertypes.CreateOwnerInput) (*ownertypes.OwnerProjection, error) {
	ctx, span := s.tracer.Start(ctx, "Service.CreateOwner")
	defer span.End()

	result, err := s.inner.CreateOwner(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to create owner", slog.String("owner.name", input.Name))
	}
	if s.created != nil {
		s.created.Add(ctx, 1)
	}
	span.SetAttributes(attribute.Int64("owner.id", result.Owner.ID))
	s.logger.LogAttrs(ctx, slog.LevelInfo, "owner created", slog.Int64("owner.id", result.Owner.ID))
	return result, nil
}

// GetOwner loads an owner with instrumentation.
func (s *Service) GetOwner(ctx context.Context, input ownertypes.OwnerIdentifier) (*ownertypes.OwnerProjection, error) {
	ctx, span := s.tracer.Start(ctx, "Service.GetOwner", trace.WithAttributes(attribute.Int64("owner.id", input.ID)))
	defer span.End()

	result, err := s.inner.GetOwner(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to load owner", slog.Int64("owner.id", input.ID))
	}
	return result, nil
}

// SearchOwners runs the joined owner search with instrumentation.
func (s *Service) SearchOwners(ctx context.Context, input ownertypes.SearchOwnersInput) ([]ownertypes.OwnerMatch, error) {
	ctx, span := s.tracer.Start(ctx, "Service.SearchOwners", trace.WithAttributes(attribute.Int("owner.query.length", len(input.Query))))
	defer span.End()

	rows, err := s.inner.SearchOwners(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "owner search failed")
	}
	span.SetAttributes(attribute.Int("owner.result.count", len(rows)))
	if s.searches != nil {
		s.searches.Record(ctx, int64(len(rows)))
	}
	s.logger.LogAttrs(ctx, slog.LevelDebug, "owner search", slog.Int("count", len(rows)))
	return rows, nil
}

func (s *Service) fail(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

var _ ports.Service = (*Service)(nil)
