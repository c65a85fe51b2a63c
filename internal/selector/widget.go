// Package selector implements the typed-search selector used by the owner
// and pet pickers: debounced searching, last-request-wins candidate
// fetching, outside-pointer dismissal and the open/closed state machine.
package selector

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/facebookgo/clock"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-vet-office/internal/selector/dom"
)

// KeyEscape closes an open widget.
const KeyEscape = "Escape"

var (
	// ErrNoCandidate is returned when selecting an index outside the candidate list.
	ErrNoCandidate = errors.New("no candidate at index")
	// ErrUnmounted is returned by operations on an unmounted widget.
	ErrUnmounted = errors.New("selector unmounted")
)

// Candidate is one row a widget can offer for selection.
type Candidate interface {
	Label() string
}

// State is a point-in-time copy of a widget.
type State[C Candidate] struct {
	Query      string
	Open       bool
	Loading    bool
	Candidates []C
	Selection  *C
	Outcome    Outcome
}

type widgetConfig struct {
	clock  clock.Clock
	logger *slog.Logger
	tracer trace.Tracer
	parent context.Context
	doc    *dom.Document
	inside []*dom.Element
}

// Option configures a Widget.
type Option func(*widgetConfig)

// WithClock drives the debounce timer from clk.
func WithClock(clk clock.Clock) Option {
	return func(c *widgetConfig) { c.clock = clk }
}

// WithLogger injects a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *widgetConfig) { c.logger = logger }
}

// WithTracer injects a tracer for search spans.
func WithTracer(tr trace.Tracer) Option {
	return func(c *widgetConfig) { c.tracer = tr }
}

// WithContext sets the parent context of every search call.
func WithContext(ctx context.Context) Option {
	return func(c *widgetConfig) { c.parent = ctx }
}

// WithDOM attaches the widget to doc. Pointer events outside root and panel
// close the open widget.
func WithDOM(doc *dom.Document, root, panel *dom.Element) Option {
	return func(c *widgetConfig) {
		c.doc = doc
		c.inside = []*dom.Element{root, panel}
	}
}

// Widget is one typed-search selector instance.
type Widget[C Candidate] struct {
	opts      Options
	logger    *slog.Logger
	fetcher   *Fetcher[C]
	debouncer *Debouncer
	dismissal *Dismissal
	cancel    context.CancelFunc

	mu        sync.Mutex
	query     string
	open      bool
	active    bool
	selection *C
	unmounted bool

	onSelect func(C)
	onInput  func(string)
	onClear  func()
	onChange func(State[C])
}

// New builds a widget searching with fetch.
func New[C Candidate](fetch FetchFunc[C], opts Options, options ...Option) *Widget[C] {
	cfg := widgetConfig{}
	for _, opt := range options {
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
	if cfg.parent == nil {
		cfg.parent = context.Background()
	}
	opts = opts.normalized()

	ctx, cancel := context.WithCancel(cfg.parent)
	w := &Widget[C]{
		opts:      opts,
		logger:    cfg.logger,
		debouncer: NewDebouncer(cfg.clock, opts.Debounce),
		cancel:    cancel,
	}
	w.fetcher = NewFetcher(w.guard(ctx, fetch),
		WithFetchTimeout(opts.FetchTimeout),
		WithFetchLogger(cfg.logger),
		WithFetchTracer(cfg.tracer),
		WithSettleHook(w.settled),
	)
	if cfg.doc != nil {
		w.dismissal = NewDismissal(cfg.doc, w.dismiss, cfg.inside...)
	}
	return w
}

// guard binds every search to the widget lifetime.
func (w *Widget[C]) guard(lifetime context.Context, fetch FetchFunc[C]) FetchFunc[C] {
	return func(ctx context.Context, query string) ([]C, error) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		stop := context.AfterFunc(lifetime, cancel)
		defer stop()
		return fetch(ctx, query)
	}
}

// OnSelect registers the function called with the chosen candidate.
func (w *Widget[C]) OnSelect(fn func(C)) {
	w.mu.Lock()
	w.onSelect = fn
	w.mu.Unlock()
}

// OnInput registers the function called with raw typed text.
func (w *Widget[C]) OnInput(fn func(string)) {
	w.mu.Lock()
	w.onInput = fn
	w.mu.Unlock()
}

// OnClear registers the function called by the explicit clear action.
func (w *Widget[C]) OnClear(fn func()) {
	w.mu.Lock()
	w.onClear = fn
	w.mu.Unlock()
}

// OnChange registers the function called with a fresh state after every change.
func (w *Widget[C]) OnChange(fn func(State[C])) {
	w.mu.Lock()
	w.onChange = fn
	w.mu.Unlock()
}

// Options returns the effective widget options.
func (w *Widget[C]) Options() Options { return w.opts }

// Focus opens the widget.
func (w *Widget[C]) Focus() {
	w.mu.Lock()
	if w.unmounted {
		w.mu.Unlock()
		return
	}
	w.active = true
	w.setOpenLocked(true)
	w.mu.Unlock()
	w.changed()
}

// Type replaces the query text. It detaches any selected candidate and
// schedules a search once typing goes quiet; queries shorter than the
// minimum length cancel the pending search and clear candidates at once.
func (w *Widget[C]) Type(query string) {
	w.mu.Lock()
	if w.unmounted {
		w.mu.Unlock()
		return
	}
	w.query = query
	w.selection = nil
	w.active = true
	w.setOpenLocked(true)
	term := strings.TrimSpace(query)
	if utf8.RuneCountInString(term) < w.opts.MinLength {
		w.debouncer.Cancel()
		w.fetcher.Reset()
	} else {
		w.debouncer.Schedule(func() { w.search(term) })
	}
	onInput := w.onInput
	w.mu.Unlock()

	if onInput != nil {
		onInput(query)
	}
	w.changed()
}

// Select attaches a copy of c, shows its label and closes the widget.
func (w *Widget[C]) Select(c C) {
	w.mu.Lock()
	if w.unmounted {
		w.mu.Unlock()
		return
	}
	selected := c
	w.selection = &selected
	w.query = c.Label()
	w.active = false
	w.debouncer.Cancel()
	w.setOpenLocked(false)
	onSelect := w.onSelect
	w.mu.Unlock()

	if onSelect != nil {
		onSelect(c)
	}
	w.changed()
}

// SelectIndex selects the i-th current candidate.
func (w *Widget[C]) SelectIndex(i int) error {
	w.mu.Lock()
	unmounted := w.unmounted
	w.mu.Unlock()
	if unmounted {
		return ErrUnmounted
	}
	candidates, _, _ := w.fetcher.Snapshot()
	if i < 0 || i >= len(candidates) {
		return ErrNoCandidate
	}
	w.Select(candidates[i])
	return nil
}

// BindRow makes row select the i-th candidate on pointer down. The event
// stops at the row so no outside listener sees it.
func (w *Widget[C]) BindRow(row *dom.Element, i int) {
	row.On(func(ev *dom.Event) {
		ev.StopPropagation()
		if err := w.SelectIndex(i); err != nil {
			w.logger.Debug("row selection ignored", slog.Int("index", i), slog.String("error", err.Error()))
		}
	})
}

// Clear is the explicit removal action: empty query, no selection, no
// candidates.
func (w *Widget[C]) Clear() {
	w.mu.Lock()
	if w.unmounted {
		w.mu.Unlock()
		return
	}
	w.query = ""
	w.selection = nil
	w.debouncer.Cancel()
	w.fetcher.Reset()
	onClear := w.onClear
	w.mu.Unlock()

	if onClear != nil {
		onClear()
	}
	w.changed()
}

// KeyDown handles a key press and reports whether the widget consumed it.
func (w *Widget[C]) KeyDown(key string) bool {
	if key != KeyEscape {
		return false
	}
	w.Close()
	return true
}

// Close closes the candidate list and cancels the pending search.
func (w *Widget[C]) Close() {
	w.mu.Lock()
	w.active = false
	w.debouncer.Cancel()
	w.setOpenLocked(false)
	w.mu.Unlock()
	w.changed()
}

// Reset returns the widget to its initial state.
func (w *Widget[C]) Reset() {
	w.mu.Lock()
	w.resetLocked()
	w.mu.Unlock()
	w.changed()
}

// Unmount resets the widget, cancels in-flight searches and turns every
// later call into a no-op.
func (w *Widget[C]) Unmount() {
	w.mu.Lock()
	w.resetLocked()
	w.unmounted = true
	w.onSelect, w.onInput, w.onClear, w.onChange = nil, nil, nil, nil
	w.mu.Unlock()
	w.cancel()
}

// Flush runs the pending search now and waits for it to settle.
func (w *Widget[C]) Flush(ctx context.Context) error {
	w.mu.Lock()
	unmounted := w.unmounted
	w.mu.Unlock()
	if unmounted {
		return ErrUnmounted
	}
	w.debouncer.Flush()
	select {
	case <-w.fetcher.Settled():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// State returns a copy of the widget state.
func (w *Widget[C]) State() State[C] {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stateLocked()
}

func (w *Widget[C]) stateLocked() State[C] {
	candidates, loading, outcome := w.fetcher.Snapshot()
	st := State[C]{
		Query:      w.query,
		Open:       w.open,
		Loading:    loading,
		Candidates: candidates,
		Outcome:    outcome,
	}
	if w.selection != nil {
		sel := *w.selection
		st.Selection = &sel
	}
	return st
}

func (w *Widget[C]) search(term string) {
	w.mu.Lock()
	if w.unmounted {
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()
	w.fetcher.Issue(context.Background(), term)
	w.changed()
}

func (w *Widget[C]) settled() {
	w.mu.Lock()
	if w.unmounted {
		w.mu.Unlock()
		return
	}
	if _, _, outcome := w.fetcher.Snapshot(); outcome != OutcomeIdle && w.active {
		w.setOpenLocked(true)
	}
	w.mu.Unlock()
	w.changed()
}

func (w *Widget[C]) dismiss() {
	w.mu.Lock()
	if !w.open {
		w.mu.Unlock()
		return
	}
	w.active = false
	w.setOpenLocked(false)
	w.mu.Unlock()
	w.changed()
}

func (w *Widget[C]) resetLocked() {
	w.query = ""
	w.selection = nil
	w.active = false
	w.debouncer.Cancel()
	w.fetcher.Reset()
	w.setOpenLocked(false)
}

// setOpenLocked keeps the outside listener registered exactly while open.
func (w *Widget[C]) setOpenLocked(open bool) {
	w.open = open
	if open {
		w.dismissal.Arm()
	} else {
		w.dismissal.Disarm()
	}
}

func (w *Widget[C]) changed() {
	w.mu.Lock()
	fn := w.onChange
	if fn == nil {
		w.mu.Unlock()
		return
	}
	st := w.stateLocked()
	w.mu.Unlock()
	fn(st)
}
