package binding

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// MsgChoiceEmpty is reported when a required choice is cleared.
const MsgChoiceEmpty = "This field cannot be empty."

// DefaultChoicePlaceholder is shown by dropdowns before a selection.
const DefaultChoicePlaceholder = "Select an option"

// ChoiceOption is one selectable entry. Value may be a string or a number;
// the registry stores its string form.
type ChoiceOption struct {
	Value any    `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Key returns the string stored in the registry for the option.
func (o ChoiceOption) Key() string {
	switch v := o.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return formatNumber(v, 64)
	case float32:
		return formatNumber(float64(v), 32)
	default:
		return fmt.Sprint(v)
	}
}

// formatNumber renders decoded JSON numbers in plain decimal form, so 1234567
// stays "1234567" instead of "1.234567e+06".
func formatNumber(v float64, bitSize int) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e21 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, bitSize)
}

// Choice binds a single-choice field (radio group or dropdown).
type Choice struct {
	reg         Registry
	key         string
	options     []ChoiceOption
	style       Style
	required    bool
	placeholder string
	onChange    func(string)
	onValidity  func(bool)
	logger      zerolog.Logger

	initOnce sync.Once
	field    *fieldState
}

// NewChoice binds key on reg and registers the first option as a valid
// default when the registry holds no value for key yet.
func NewChoice(reg Registry, key string, options []ChoiceOption, opts ...Option) (*Choice, error) {
	if reg == nil {
		return nil, ErrNilRegistry
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrEmptyKey
	}
	if len(options) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoOptions, key)
	}
	s := newSettings(opts)
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	c := &Choice{
		reg:         reg,
		key:         key,
		options:     append([]ChoiceOption(nil), options...),
		style:       s.style,
		required:    s.requiredOr(false),
		placeholder: s.placeholder,
		onChange:    s.onChange,
		onValidity:  s.onValidity,
		logger:      s.logger.With().Str("field", key).Str("style", string(s.style)).Logger(),
		field:       newFieldState(s.scheduler, s.config.ShakeDuration),
	}
	if c.placeholder == "" {
		c.placeholder = DefaultChoicePlaceholder
	}
	c.init()
	return c, nil
}

func (c *Choice) init() {
	c.initOnce.Do(func() {
		if current, ok := c.reg.Value(c.key); ok && current != "" {
			c.field.seed(Result{Value: current, Valid: true})
			return
		}
		def := c.options[0].Key()
		c.reg.UpdateValue(c.key, def)
		c.reg.SetValidity(c.key, true)
		c.field.seed(Result{Value: def, Valid: true})
		c.logger.Debug().Msg("default option registered")
	})
}

// Key returns the field key.
func (c *Choice) Key() string { return c.key }

// Style returns the presentation style.
func (c *Choice) Style() Style { return c.style }

// Required reports whether clearing the selection is rejected.
func (c *Choice) Required() bool { return c.required }

// Placeholder returns the dropdown placeholder.
func (c *Choice) Placeholder() string { return c.placeholder }

// Options returns a copy of the selectable options.
func (c *Choice) Options() []ChoiceOption {
	return append([]ChoiceOption(nil), c.options...)
}

// Index returns the position of value among the options, or -1.
func (c *Choice) Index(value string) int {
	for i, opt := range c.options {
		if opt.Key() == value {
			return i
		}
	}
	return -1
}

// Select records value as the current choice. An empty value on a required
// choice is invalid; everything else is valid. The validity callback runs
// before the change callback.
func (c *Choice) Select(value string) Result {
	res := Result{Value: value, Valid: true}
	if c.required && value == "" {
		res.Message = MsgChoiceEmpty
		res.Valid = false
	}
	if c.field.isClosed() {
		return res
	}

	c.reg.UpdateValue(c.key, value)
	c.reg.SetValidity(c.key, res.Valid)
	c.field.apply(res)

	c.logger.Debug().Bool("valid", res.Valid).Msg("choice selected")

	if c.onValidity != nil {
		c.onValidity(res.Valid)
	}
	if c.onChange != nil {
		c.onChange(value)
	}
	return res
}

// State returns the presentation state.
func (c *Choice) State() State {
	return c.field.snapshot()
}

// Close stops the shake timer. It implements io.Closer.
func (c *Choice) Close() error {
	c.field.close()
	return nil
}
