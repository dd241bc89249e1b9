package prompt

import "github.com/rs/zerolog"

// Theme captures the prefixes the runner puts in front of messages it prints
// through the driver.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// DefaultTheme is used when WithTheme is not supplied.
var DefaultTheme = Theme{
	InfoPrefix:  "",
	ErrorPrefix: "! ",
}

// Option configures a Runner.
type Option func(*Runner)

// WithDriver overrides the prompt driver used by the runner.
func WithDriver(driver Driver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Runner) {
		r.theme = theme
	}
}

// WithMaxAttempts bounds how many times one field is asked before Run gives
// up. Zero, the default, asks until the value is valid.
func WithMaxAttempts(n int) Option {
	return func(r *Runner) {
		if n >= 0 {
			r.maxAttempts = n
		}
	}
}

// WithLogger routes runner debug events through logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}
