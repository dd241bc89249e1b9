package binding

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/pkg/debounce"
	"github.com/goliatone/go-formstate/pkg/validate"
)

// Input binds a free-text style field (email, password, date, number, text)
// to a registry.
type Input struct {
	reg         Registry
	key         string
	kind        validate.Kind
	required    bool
	security    validate.Security
	custom      validate.Custom
	onChange    func(string)
	onValidity  func(bool)
	placeholder string
	logger      zerolog.Logger

	debouncer *debounce.Debouncer[string]
	field     *fieldState
}

// NewInput binds key on reg. Inputs are required unless WithRequired(false)
// is passed.
func NewInput(reg Registry, key string, opts ...Option) (*Input, error) {
	if reg == nil {
		return nil, ErrNilRegistry
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrEmptyKey
	}
	s := newSettings(opts)
	if !s.kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, s.kind)
	}
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	in := &Input{
		reg:         reg,
		key:         key,
		kind:        s.kind,
		required:    s.requiredOr(true),
		security:    s.security,
		custom:      s.custom,
		onChange:    s.onChange,
		onValidity:  s.onValidity,
		placeholder: s.placeholder,
		logger:      s.logger.With().Str("field", key).Str("kind", string(s.kind)).Logger(),
		field:       newFieldState(s.scheduler, s.config.ShakeDuration),
	}
	if in.placeholder == "" {
		in.placeholder = s.kind.Title()
	}
	in.debouncer = debounce.New(func(value string) {
		in.publish(value)
	}, s.config.DebounceDelay, debounce.WithScheduler(s.scheduler))
	return in, nil
}

// Key returns the field key.
func (in *Input) Key() string { return in.key }

// Kind returns the field kind.
func (in *Input) Kind() validate.Kind { return in.kind }

// Required reports whether an empty value is rejected up front.
func (in *Input) Required() bool { return in.required }

// Placeholder returns the configured placeholder or the capitalised kind.
func (in *Input) Placeholder() string { return in.placeholder }

// Change schedules validation of value once typing pauses. Only the latest
// value of a burst is validated.
func (in *Input) Change(value string) {
	in.debouncer.Call(value)
}

// Pending reports whether a debounced validation is waiting to run.
func (in *Input) Pending() bool {
	return in.debouncer.Pending()
}

// Evaluate computes the result for value without touching any state.
func (in *Input) Evaluate(value string) Result {
	message := validate.Evaluate(in.kind, value, validate.Options{
		Required: in.required,
		Security: in.security,
		Custom:   in.custom,
	})
	return Result{Value: value, Message: message, Valid: message == ""}
}

// Commit validates value immediately and publishes the result: registry value,
// registry validity, local state, then callbacks. A pending debounced call is
// dropped. After Close only the evaluation runs.
func (in *Input) Commit(value string) Result {
	in.debouncer.Cancel()
	return in.publish(value)
}

func (in *Input) publish(value string) Result {
	res := in.Evaluate(value)
	if in.field.isClosed() {
		return res
	}

	in.reg.UpdateValue(in.key, value)
	in.reg.SetValidity(in.key, res.Valid)
	in.field.apply(res)

	in.logger.Debug().Bool("valid", res.Valid).Str("message", res.Message).Msg("field validated")

	if in.onChange != nil {
		in.onChange(value)
	}
	if in.onValidity != nil {
		in.onValidity(res.Valid)
	}
	return res
}

// Seed records a starting value, such as a default or a prefilled value. The
// registry receives the value and its validity and the local state mirrors the
// result, but the field is not marked touched, no shake starts and no
// callbacks run.
func (in *Input) Seed(value string) Result {
	res := in.Evaluate(value)
	if in.field.isClosed() {
		return res
	}
	in.reg.UpdateValue(in.key, value)
	in.reg.SetValidity(in.key, res.Valid)
	in.field.seed(res)
	in.logger.Debug().Bool("valid", res.Valid).Msg("field seeded")
	return res
}

// State returns the presentation state.
func (in *Input) State() State {
	return in.field.snapshot()
}

// Close drops any pending validation and the shake timer. It implements
// io.Closer so inputs can be tracked by a store.Scope.
func (in *Input) Close() error {
	in.debouncer.Stop()
	in.field.close()
	return nil
}
