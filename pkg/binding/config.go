package binding

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/goliatone/go-formstate/pkg/validate"
)

// Default timings.
const (
	DefaultDebounceDelay = 800 * time.Millisecond
	DefaultShakeDuration = 500 * time.Millisecond
)

// Config holds the timing knobs shared by binders. LoadConfig reads it from
// the environment.
type Config struct {
	DebounceDelay time.Duration `env:"FORMSTATE_DEBOUNCE_DELAY" envDefault:"800ms"`
	ShakeDuration time.Duration `env:"FORMSTATE_SHAKE_DURATION" envDefault:"500ms"`
	Security      string        `env:"FORMSTATE_PASSWORD_SECURITY" envDefault:"low"`
}

// DefaultConfig mirrors the envDefault values.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: DefaultDebounceDelay,
		ShakeDuration: DefaultShakeDuration,
		Security:      string(validate.SecurityLow),
	}
}

// LoadConfig parses Config from the process environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("binding: load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects negative durations and unknown security tiers.
func (c Config) Validate() error {
	if c.DebounceDelay < 0 {
		return fmt.Errorf("binding: debounce delay must not be negative, got %s", c.DebounceDelay)
	}
	if c.ShakeDuration < 0 {
		return fmt.Errorf("binding: shake duration must not be negative, got %s", c.ShakeDuration)
	}
	if _, err := validate.ParseSecurity(c.Security); err != nil {
		return fmt.Errorf("binding: %w", err)
	}
	return nil
}

func (c Config) security() validate.Security {
	tier, err := validate.ParseSecurity(c.Security)
	if err != nil {
		return validate.SecurityLow
	}
	return tier
}
