// Package debounce coalesces bursts of calls into a single trailing call.
//
// Each Call replaces the pending one and restarts the quiet period, so only
// the arguments of the latest call ever reach the wrapped function. A call
// that was superseded or cancelled never runs, even when its timer already
// fired on another goroutine.
package debounce

import (
	"sync"
	"time"
)

// Timer is the handle returned by a Scheduler.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once d has elapsed.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(d time.Duration, f func()) Timer

// AfterFunc implements Scheduler.
func (fn SchedulerFunc) AfterFunc(d time.Duration, f func()) Timer {
	return fn(d, f)
}

// RealScheduler schedules on the runtime timer queue.
var RealScheduler Scheduler = SchedulerFunc(func(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
})

type config struct {
	scheduler Scheduler
}

// Option configures a Debouncer.
type Option func(*config)

// WithScheduler overrides the scheduler. Nil keeps RealScheduler.
func WithScheduler(s Scheduler) Option {
	return func(c *config) {
		if s != nil {
			c.scheduler = s
		}
	}
}

// Debouncer delays fn until delay has passed without another Call.
type Debouncer[T any] struct {
	fn        func(T)
	delay     time.Duration
	scheduler Scheduler

	mu      sync.Mutex
	timer   Timer
	gen     uint64
	stopped bool

	// runMu serialises fn so a newer call never lands before an older one
	// that already passed the generation check.
	runMu sync.Mutex
}

// New wraps fn. A nil fn yields a debouncer whose calls are no-ops.
func New[T any](fn func(T), delay time.Duration, opts ...Option) *Debouncer[T] {
	cfg := config{scheduler: RealScheduler}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if delay < 0 {
		delay = 0
	}
	return &Debouncer[T]{
		fn:        fn,
		delay:     delay,
		scheduler: cfg.scheduler,
	}
}

// Func returns a fire-and-forget function debouncing fn. Use New when the
// caller needs to cancel pending calls.
func Func[T any](fn func(T), delay time.Duration, opts ...Option) func(T) {
	return New(fn, delay, opts...).Call
}

// Delay reports the configured quiet period.
func (d *Debouncer[T]) Delay() time.Duration {
	return d.delay
}

// Call schedules fn(arg) after the quiet period, dropping any pending call.
// Calls after Stop are ignored.
func (d *Debouncer[T]) Call(arg T) {
	if d == nil || d.fn == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.scheduler.AfterFunc(d.delay, func() {
		d.fire(gen, arg)
	})
}

// Cancel drops the pending call, if any. The debouncer stays usable.
func (d *Debouncer[T]) Cancel() {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

// Stop cancels the pending call and ignores every later Call.
func (d *Debouncer[T]) Stop() {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.stopped = true
}

// Pending reports whether a call is waiting for its quiet period to end.
func (d *Debouncer[T]) Pending() bool {
	if d == nil {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Debouncer[T]) cancelLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	// Invalidate a callback that may already be running its timer.
	d.gen++
}

func (d *Debouncer[T]) fire(gen uint64, arg T) {
	d.runMu.Lock()
	defer d.runMu.Unlock()

	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.fn(arg)
}
