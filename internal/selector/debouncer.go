package selector

import (
	"sync"
	"time"

	"github.com/facebookgo/clock"
)

// Debouncer runs the most recently scheduled function once the schedule
// calls have been quiet for a fixed period.
type Debouncer struct {
	clock clock.Clock
	quiet time.Duration

	mu      sync.Mutex
	timer   *clock.Timer
	pending func()
	gen     uint64
}

// NewDebouncer builds a debouncer on clk. A nil clock uses wall time.
func NewDebouncer(clk clock.Clock, quiet time.Duration) *Debouncer {
	if clk == nil {
		clk = clock.New()
	}
	return &Debouncer{clock: clk, quiet: quiet}
}

// Schedule stops any pending timer and arms a new one for fn.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.gen++
	gen := d.gen
	d.pending = fn
	d.timer = d.clock.AfterFunc(d.quiet, func() { d.fire(gen) })
}

// Cancel stops the pending timer, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.gen++
}

// Flush runs the pending function immediately. It reports whether one ran.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	fn := d.pending
	d.stopLocked()
	d.gen++
	d.mu.Unlock()
	if fn == nil {
		return false
	}
	fn()
	return true
}

// Pending reports whether a function is waiting for the quiet period.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	// a timer that fired while being replaced must not run
	if gen != d.gen || d.pending == nil {
		d.mu.Unlock()
		return
	}
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()
	fn()
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
}
