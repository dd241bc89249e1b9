package store

import "github.com/rs/zerolog"

type options struct {
	logger      zerolog.Logger
	revalidator Revalidator
}

func defaultOptions() options {
	return options{
		logger:      zerolog.Nop(),
		revalidator: PresenceRevalidator,
	}
}

// Option configures a Store or a Scope.
type Option func(*options)

// WithLogger routes debug events through logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRevalidator replaces the presence check RevalidateAll applies. Passing a
// rule that re-runs the field validators gives the stronger guarantee.
func WithRevalidator(fn Revalidator) Option {
	return func(o *options) {
		if fn != nil {
			o.revalidator = fn
		}
	}
}
