package formspec

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/pkg/binding"
	"github.com/goliatone/go-formstate/pkg/store"
	"github.com/goliatone/go-formstate/pkg/validate"
	"github.com/goliatone/go-formstate/pkg/widgets"
)

var (
	// ErrNilScope is returned when Build is called without a scope.
	ErrNilScope = errors.New("formspec: scope is nil")
	// ErrNoWidget is returned when no widget matches a field.
	ErrNoWidget = errors.New("formspec: no widget for field")
	// ErrUnknownField is returned when an option names a field the definition
	// does not declare.
	ErrUnknownField = errors.New("formspec: unknown field")
)

type buildOptions struct {
	widgets *widgets.Registry
	prefill []byte
	custom  map[string]validate.Custom
	binding []binding.Option
	logger  zerolog.Logger
}

// BuildOption customises Build.
type BuildOption func(*buildOptions)

// WithWidgets replaces the widget registry. Defaults to widgets.NewRegistry.
func WithWidgets(reg *widgets.Registry) BuildOption {
	return func(o *buildOptions) {
		if reg != nil {
			o.widgets = reg
		}
	}
}

// WithPrefill supplies a JSON document whose values seed the form.
func WithPrefill(doc []byte) BuildOption {
	return func(o *buildOptions) {
		o.prefill = doc
	}
}

// WithCustom attaches a custom rule to the input bound to key.
func WithCustom(key string, fn validate.Custom) BuildOption {
	return func(o *buildOptions) {
		if fn == nil {
			return
		}
		if o.custom == nil {
			o.custom = make(map[string]validate.Custom)
		}
		o.custom[key] = fn
	}
}

// WithBindingOptions applies opts to every binder before the per-field
// settings from the definition.
func WithBindingOptions(opts ...binding.Option) BuildOption {
	return func(o *buildOptions) {
		o.binding = append(o.binding, opts...)
	}
}

// WithLogger routes build and binder debug events through logger.
func WithLogger(logger zerolog.Logger) BuildOption {
	return func(o *buildOptions) {
		o.logger = logger
	}
}

// Build binds every field of def onto the scope's store. def is expected to
// come from Parse, LoadFS or Normalize; Build re-checks it but leaves its text
// untouched. Start values come from declared defaults overlaid by the prefill
// document. Every binder is tracked on scope, so closing the scope releases
// them.
func Build(def Definition, scope *store.Scope, opts ...BuildOption) (*Form, error) {
	if scope == nil {
		return nil, ErrNilScope
	}
	cfg := buildOptions{
		widgets: widgets.NewRegistry(),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := check(def, def.Form); err != nil {
		return nil, err
	}
	for key := range cfg.custom {
		if _, ok := def.Field(key); !ok {
			return nil, fmt.Errorf("%w: custom rule for %q", ErrUnknownField, key)
		}
	}
	start, err := startValues(def, cfg.prefill)
	if err != nil {
		return nil, err
	}

	st := scope.Store()
	form := &Form{
		def:     def,
		store:   st,
		fields:  make([]Bound, 0, len(def.Fields)),
		inputs:  make(map[string]*binding.Input),
		choices: make(map[string]*binding.Choice),
		logger:  cfg.logger.With().Str("form", def.Form).Logger(),
	}

	for _, field := range def.Fields {
		bound, err := form.bind(field, cfg, start)
		if err != nil {
			form.Close()
			return nil, fmt.Errorf("formspec: form %q field %q: %w", def.Form, field.Key, err)
		}
		form.fields = append(form.fields, bound)
		scope.Track(bound.closer())
	}

	form.logger.Debug().Int("fields", len(form.fields)).Str("store", st.ID().String()).Msg("form built")
	return form, nil
}

func (f *Form) bind(field Field, cfg buildOptions, start map[string]string) (Bound, error) {
	widget, ok := cfg.widgets.Resolve(field.Descriptor())
	if !ok {
		return Bound{}, ErrNoWidget
	}
	bound := Bound{Field: field, Widget: widget}

	opts := append([]binding.Option{binding.WithLogger(cfg.logger)}, cfg.binding...)
	if field.Required != nil {
		opts = append(opts, binding.WithRequired(*field.Required))
	}
	if field.Placeholder != "" {
		opts = append(opts, binding.WithPlaceholder(field.Placeholder))
	}
	value, seeded := start[field.Key]

	if widgets.IsChoice(widget) {
		style := binding.StyleDropdown
		if widget == widgets.WidgetRadio {
			style = binding.StyleRadio
		}
		opts = append(opts, binding.WithStyle(style))
		if seeded && hasOption(field.Options, value) {
			f.store.UpdateValue(field.Key, value)
			f.store.SetValidity(field.Key, true)
		} else if seeded {
			f.logger.Warn().Str("field", field.Key).Msg("start value is not an option, using first option")
		}
		choice, err := binding.NewChoice(f.store, field.Key, field.Options, opts...)
		if err != nil {
			return Bound{}, err
		}
		bound.Choice = choice
		f.choices[field.Key] = choice
		return bound, nil
	}

	kind, err := validate.ParseKind(field.Kind)
	if err != nil {
		return Bound{}, err
	}
	opts = append(opts, binding.WithKind(kind))
	if field.Security != "" {
		tier, err := validate.ParseSecurity(field.Security)
		if err != nil {
			return Bound{}, err
		}
		opts = append(opts, binding.WithSecurity(tier))
	}
	if fn, ok := cfg.custom[field.Key]; ok {
		opts = append(opts, binding.WithCustom(fn))
	}
	input, err := binding.NewInput(f.store, field.Key, opts...)
	if err != nil {
		return Bound{}, err
	}
	if seeded {
		input.Seed(value)
	}
	bound.Input = input
	f.inputs[field.Key] = input
	return bound, nil
}

func hasOption(options []binding.ChoiceOption, value string) bool {
	for _, opt := range options {
		if opt.Key() == value {
			return true
		}
	}
	return false
}
