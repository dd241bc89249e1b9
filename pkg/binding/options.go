package binding

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/pkg/debounce"
	"github.com/goliatone/go-formstate/pkg/validate"
)

var (
	// ErrNilRegistry is returned when a binder is constructed without a registry.
	ErrNilRegistry = errors.New("binding: registry is nil")
	// ErrEmptyKey is returned when a binder is constructed without a field key.
	ErrEmptyKey = errors.New("binding: field key is required")
	// ErrUnknownKind is returned for kinds outside validate.Kind.
	ErrUnknownKind = errors.New("binding: unknown field kind")
	// ErrNoOptions is returned when a choice field has nothing to choose from.
	ErrNoOptions = errors.New("binding: choice field needs at least one option")
)

// Registry is the part of the form store a binder writes to.
type Registry interface {
	UpdateValue(key, value string)
	SetValidity(key string, valid bool)
	Value(key string) (string, bool)
}

// Style distinguishes how a choice field is presented.
type Style string

const (
	StyleRadio    Style = "radio"
	StyleDropdown Style = "dropdown"
)

type settings struct {
	kind        validate.Kind
	required    *bool
	security    validate.Security
	custom      validate.Custom
	onChange    func(string)
	onValidity  func(bool)
	config      Config
	scheduler   debounce.Scheduler
	logger      zerolog.Logger
	style       Style
	placeholder string
}

func newSettings(opts []Option) settings {
	s := settings{
		kind:      validate.KindText,
		config:    DefaultConfig(),
		scheduler: debounce.RealScheduler,
		logger:    zerolog.Nop(),
		style:     StyleDropdown,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	if s.security == "" {
		s.security = s.config.security()
	}
	return s
}

func (s settings) requiredOr(fallback bool) bool {
	if s.required == nil {
		return fallback
	}
	return *s.required
}

// Option configures Input and Choice binders. Options that do not apply to a
// binder are ignored by it.
type Option func(*settings)

// WithKind selects the kind rule for an Input. Defaults to text.
func WithKind(kind validate.Kind) Option {
	return func(s *settings) {
		s.kind = kind
	}
}

// WithRequired overrides the binder's default required-ness (true for
// Input, false for Choice).
func WithRequired(required bool) Option {
	return func(s *settings) {
		s.required = &required
	}
}

// WithSecurity selects the password tier. Defaults to Config.Security.
func WithSecurity(tier validate.Security) Option {
	return func(s *settings) {
		s.security = tier
	}
}

// WithCustom adds a caller supplied rule that overrides kind messages.
func WithCustom(fn validate.Custom) Option {
	return func(s *settings) {
		s.custom = fn
	}
}

// WithOnChange is called with the raw value after the registry is updated.
func WithOnChange(fn func(value string)) Option {
	return func(s *settings) {
		s.onChange = fn
	}
}

// WithOnValidityChange is called with the computed validity after every
// change.
func WithOnValidityChange(fn func(valid bool)) Option {
	return func(s *settings) {
		s.onValidity = fn
	}
}

// WithConfig replaces the timing configuration.
func WithConfig(cfg Config) Option {
	return func(s *settings) {
		s.config = cfg
	}
}

// WithScheduler overrides the clock used for debouncing and shake expiry.
func WithScheduler(scheduler debounce.Scheduler) Option {
	return func(s *settings) {
		if scheduler != nil {
			s.scheduler = scheduler
		}
	}
}

// WithLogger routes binder debug events through logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithStyle selects radio or dropdown presentation for a Choice.
func WithStyle(style Style) Option {
	return func(s *settings) {
		if style != "" {
			s.style = style
		}
	}
}

// WithPlaceholder sets the text shown before a value is entered. Inputs fall
// back to the capitalised kind.
func WithPlaceholder(text string) Option {
	return func(s *settings) {
		s.placeholder = text
	}
}
