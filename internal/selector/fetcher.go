package selector

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "github.com/Apurer/go-vet-office/internal/selector"

// FetchFunc runs one candidate search.
type FetchFunc[C any] func(ctx context.Context, query string) ([]C, error)

// Outcome describes how the latest search settled.
type Outcome int

const (
	// OutcomeIdle means no search has settled since the last reset.
	OutcomeIdle Outcome = iota
	// OutcomeResults means the latest search returned candidates.
	OutcomeResults
	// OutcomeEmpty means the latest search succeeded with no candidates.
	OutcomeEmpty
	// OutcomeFailed means the latest search errored; candidates are empty.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeResults:
		return "results"
	case OutcomeEmpty:
		return "empty"
	case OutcomeFailed:
		return "failed"
	default:
		return "idle"
	}
}

type fetcherConfig struct {
	timeout  time.Duration
	logger   *slog.Logger
	tracer   trace.Tracer
	onSettle func()
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*fetcherConfig)

// WithFetchTimeout bounds every search call.
func WithFetchTimeout(d time.Duration) FetcherOption {
	return func(c *fetcherConfig) { c.timeout = d }
}

// WithFetchLogger injects the logger used for failed searches.
func WithFetchLogger(logger *slog.Logger) FetcherOption {
	return func(c *fetcherConfig) { c.logger = logger }
}

// WithFetchTracer injects the tracer used for search spans.
func WithFetchTracer(tr trace.Tracer) FetcherOption {
	return func(c *fetcherConfig) { c.tracer = tr }
}

// WithSettleHook registers a function called after the latest search settles.
func WithSettleHook(fn func()) FetcherOption {
	return func(c *fetcherConfig) { c.onSettle = fn }
}

// Fetcher issues searches and applies only the most recently issued one.
type Fetcher[C any] struct {
	fetch FetchFunc[C]
	cfg   fetcherConfig

	mu         sync.Mutex
	latest     uint64
	cancel     context.CancelFunc
	loading    bool
	candidates []C
	outcome    Outcome
	settled    chan struct{}
	idle       bool
}

// NewFetcher wraps fetch with request tracking.
func NewFetcher[C any](fetch FetchFunc[C], opts ...FetcherOption) *Fetcher[C] {
	cfg := fetcherConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.tracer == nil {
		cfg.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	settled := make(chan struct{})
	close(settled)
	return &Fetcher[C]{fetch: fetch, cfg: cfg, settled: settled, idle: true}
}

// Issue starts a search for query and returns its request token. The
// previous request, if still running, is cancelled and its result ignored.
func (f *Fetcher[C]) Issue(ctx context.Context, query string) uint64 {
	f.mu.Lock()
	if f.cancel != nil {
		f.cancel()
	}
	f.latest++
	token := f.latest
	reqCtx, cancel := f.requestContext(ctx)
	f.cancel = cancel
	f.loading = true
	if f.idle {
		f.settled = make(chan struct{})
		f.idle = false
	}
	f.mu.Unlock()

	go f.run(reqCtx, cancel, token, query)
	return token
}

// Reset clears candidates and invalidates any request in flight.
func (f *Fetcher[C]) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.latest++
	f.loading = false
	f.candidates = nil
	f.outcome = OutcomeIdle
	f.markSettledLocked()
}

// Snapshot returns a copy of the candidates plus loading state and outcome.
func (f *Fetcher[C]) Snapshot() ([]C, bool, Outcome) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]C(nil), f.candidates...), f.loading, f.outcome
}

// Settled returns a channel closed once no request is outstanding.
func (f *Fetcher[C]) Settled() <-chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settled
}

func (f *Fetcher[C]) run(ctx context.Context, cancel context.CancelFunc, token uint64, query string) {
	defer cancel()
	ctx, span := f.cfg.tracer.Start(ctx, "selector.fetch", trace.WithAttributes(
		attribute.Int64("selector.request.token", int64(token)),
		attribute.Int("selector.query.length", utf8.RuneCountInString(query)),
	))
	defer span.End()

	results, err := f.fetch(ctx, query)

	f.mu.Lock()
	if token != f.latest {
		f.mu.Unlock()
		span.SetAttributes(attribute.Bool("selector.stale", true))
		return
	}
	f.cancel = nil
	f.loading = false
	switch {
	case err != nil:
		f.candidates = nil
		f.outcome = OutcomeFailed
	case len(results) == 0:
		f.candidates = nil
		f.outcome = OutcomeEmpty
	default:
		f.candidates = append([]C(nil), results...)
		f.outcome = OutcomeResults
	}
	f.markSettledLocked()
	f.mu.Unlock()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		f.cfg.logger.LogAttrs(ctx, slog.LevelWarn, "candidate search failed",
			slog.Int("query.length", utf8.RuneCountInString(query)),
			slog.String("error", err.Error()),
		)
	} else {
		span.SetAttributes(attribute.Int("selector.result.count", len(results)))
	}
	if f.cfg.onSettle != nil {
		f.cfg.onSettle()
	}
}

func (f *Fetcher[C]) requestContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if f.cfg.timeout > 0 {
		return context.WithTimeout(parent, f.cfg.timeout)
	}
	return context.WithCancel(parent)
}

func (f *Fetcher[C]) markSettledLocked() {
	if !f.idle {
		close(f.settled)
		f.idle = true
	}
}
