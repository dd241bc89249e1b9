package store

import (
	"context"
	"errors"
	"io"
	"sync"
)

var (
	// ErrNoScope is the panic value when a form scope is required but the
	// context carries none.
	ErrNoScope = errors.New("store: no form scope in context")
	// ErrScopeClosed is the panic value when a closed scope is used.
	ErrScopeClosed = errors.New("store: form scope is closed")
)

// Scope is the lifetime boundary of one form instance. It creates the store
// up front, tracks resources that must be released on unmount (pending
// debounced validations, shake timers) and closes nested scopes with it.
type Scope struct {
	store *Store
	opts  []Option

	mu       sync.Mutex
	closed   bool
	closers  []io.Closer
	children []*Scope
}

// NewScope opens a scope with a fresh store.
func NewScope(opts ...Option) *Scope {
	return &Scope{
		store: New(opts...),
		opts:  opts,
	}
}

// Store returns the scope's registry. It panics with ErrScopeClosed once the
// scope has been closed.
func (s *Scope) Store() *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		panic(ErrScopeClosed)
	}
	return s.store
}

// Closed reports whether Close has run.
func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Nest opens a child scope with its own store. Options default to the
// parent's. The child closes when the parent does.
func (s *Scope) Nest(opts ...Option) *Scope {
	if len(opts) == 0 {
		opts = s.opts
	}
	child := NewScope(opts...)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		panic(ErrScopeClosed)
	}
	s.children = append(s.children, child)
	return child
}

// Track registers c to be closed with the scope. Tracking on a closed scope
// closes c right away.
func (s *Scope) Track(c io.Closer) {
	if c == nil {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = c.Close()
		return
	}
	s.closers = append(s.closers, c)
	s.mu.Unlock()
}

// Close releases nested scopes first, then tracked resources in reverse
// registration order, and discards the store. Subsequent calls are no-ops.
func (s *Scope) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	children := s.children
	closers := s.closers
	s.children = nil
	s.closers = nil
	s.mu.Unlock()

	var errs []error
	for i := len(children) - 1; i >= 0; i-- {
		if err := children[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.store.logger.Debug().Int("released", len(closers)).Msg("form scope closed")
	return errors.Join(errs...)
}

type scopeKey struct{}

// WithScope returns a context carrying s.
func WithScope(ctx context.Context, s *Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

// FromContext returns the scope carried by ctx.
func FromContext(ctx context.Context) (*Scope, bool) {
	if ctx == nil {
		return nil, false
	}
	s, ok := ctx.Value(scopeKey{}).(*Scope)
	return s, ok && s != nil
}

// MustFromContext returns the scope carried by ctx and panics with ErrNoScope
// when there is none.
func MustFromContext(ctx context.Context) *Scope {
	s, ok := FromContext(ctx)
	if !ok {
		panic(ErrNoScope)
	}
	return s
}
