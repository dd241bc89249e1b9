// Package store holds the per-form field registry: the current value and the
// current validity of every field key, plus the aggregate validity query the
// presentation layer polls.
//
// The two maps are keyed independently. A choice field can mark itself valid
// before any value is written, and a prefilled field can carry a value before
// it was ever validated. Aggregate validity only considers keys present in the
// validity map.
//
// A Store belongs to exactly one Scope. Nested scopes own independent stores;
// nothing is shared across form instances.
package store

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Revalidator recomputes the validity of one key during RevalidateAll.
type Revalidator func(key, value string) bool

// Store is the field registry of one form scope. Methods are safe for
// concurrent use because debounced validations land on timer goroutines.
type Store struct {
	id          uuid.UUID
	logger      zerolog.Logger
	revalidator Revalidator

	mu       sync.RWMutex
	values   map[string]string
	validity map[string]bool
}

// New returns an empty store.
func New(opts ...Option) *Store {
	cfg := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	id := uuid.New()
	return &Store{
		id:          id,
		logger:      cfg.logger.With().Str("form_scope", id.String()).Logger(),
		revalidator: cfg.revalidator,
		values:      make(map[string]string),
		validity:    make(map[string]bool),
	}
}

// ID identifies the store in logs.
func (s *Store) ID() uuid.UUID {
	return s.id
}

// UpdateValue records the latest value for key. It does not touch validity.
func (s *Store) UpdateValue(key, value string) {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()

	s.logger.Debug().Str("field", key).Int("length", len(value)).Msg("value updated")
}

// SetValidity records whether key currently passes validation.
func (s *Store) SetValidity(key string, valid bool) {
	s.mu.Lock()
	s.validity[key] = valid
	s.mu.Unlock()

	s.logger.Debug().Str("field", key).Bool("valid", valid).Msg("validity updated")
}

// IsFormValid reports whether at least one field is registered and every
// registered field is valid with a non-blank value. It reads the maps on every
// call.
func (s *Store) IsFormValid() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.validity) == 0 {
		return false
	}
	for key, valid := range s.validity {
		if !valid {
			return false
		}
		value, ok := s.values[key]
		if !ok || isBlank(value) {
			return false
		}
	}
	return true
}

// RevalidateAll overwrites the validity of every key in the value map. By
// default a value is valid when it is non-blank; WithRevalidator replaces that
// rule.
func (s *Store) RevalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range s.values {
		s.validity[key] = s.revalidator(key, value)
	}
	s.logger.Debug().Int("fields", len(s.values)).Msg("revalidated")
}

// Value returns the stored value for key.
func (s *Store) Value(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok
}

// Valid returns the stored validity for key.
func (s *Store) Valid(key string) (bool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	valid, ok := s.validity[key]
	return valid, ok
}

// Values returns a copy of the value map.
func (s *Store) Values() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Validity returns a copy of the validity map.
func (s *Store) Validity() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]bool, len(s.validity))
	for k, v := range s.validity {
		out[k] = v
	}
	return out
}

// Len reports how many keys have a validity entry.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.validity)
}

// PresenceRevalidator is the default RevalidateAll rule.
func PresenceRevalidator(_ string, value string) bool {
	return !isBlank(value)
}

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}
