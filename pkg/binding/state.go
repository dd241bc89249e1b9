package binding

import (
	"sync"
	"time"

	"github.com/goliatone/go-formstate/pkg/debounce"
)

// State is what a binder exposes to its presentation layer.
type State struct {
	Value   string
	Error   string
	Valid   bool
	Shaking bool
	// Touched is set once a change has been processed.
	Touched bool
}

// Result is the outcome of one validation pass.
type Result struct {
	Value   string
	Message string
	Valid   bool
}

// fieldState is the local, unshared half of a binder: the last result and the
// transient shake flag.
type fieldState struct {
	scheduler debounce.Scheduler
	shakeFor  time.Duration

	mu         sync.Mutex
	state      State
	shakeTimer debounce.Timer
	shakeGen   uint64
	closed     bool
}

func newFieldState(scheduler debounce.Scheduler, shakeFor time.Duration) *fieldState {
	return &fieldState{
		scheduler: scheduler,
		shakeFor:  shakeFor,
		state:     State{Valid: true},
	}
}

func (f *fieldState) apply(res Result) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.state.Value = res.Value
	f.state.Error = res.Message
	f.state.Valid = res.Valid
	f.state.Touched = true

	if f.shakeTimer != nil {
		f.shakeTimer.Stop()
		f.shakeTimer = nil
	}
	f.shakeGen++
	f.state.Shaking = false
	if res.Valid || f.closed || f.shakeFor <= 0 {
		return
	}

	gen := f.shakeGen
	f.state.Shaking = true
	f.shakeTimer = f.scheduler.AfterFunc(f.shakeFor, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if gen != f.shakeGen {
			return
		}
		f.state.Shaking = false
		f.shakeTimer = nil
	})
}

func (f *fieldState) seed(res Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Value = res.Value
	f.state.Error = res.Message
	f.state.Valid = res.Valid
}

func (f *fieldState) snapshot() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fieldState) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *fieldState) close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.shakeTimer != nil {
		f.shakeTimer.Stop()
		f.shakeTimer = nil
	}
	f.shakeGen++
	f.state.Shaking = false
	f.closed = true
}
