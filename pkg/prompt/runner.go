package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/pkg/binding"
	"github.com/goliatone/go-formstate/pkg/formspec"
	"github.com/goliatone/go-formstate/pkg/validate"
)

// Runner walks a built form field by field, feeding every answer through the
// field's binder until it is accepted.
type Runner struct {
	driver      Driver
	theme       Theme
	maxAttempts int
	logger      zerolog.Logger
}

// New constructs a runner with the survey driver and DefaultTheme.
func New(options ...Option) *Runner {
	r := &Runner{
		driver: NewSurveyDriver(nil),
		theme:  DefaultTheme,
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Run prompts for every field of form in declaration order and submits it.
// Answers are committed immediately, so the debounce delay does not apply.
// Optional inputs left blank keep their current value.
func (r *Runner) Run(ctx context.Context, form *formspec.Form) (map[string]string, error) {
	if ctx == nil {
		return nil, errors.New("prompt: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrNilForm
	}

	for _, bound := range form.Fields() {
		var err error
		if bound.Choice != nil {
			err = r.promptChoice(ctx, bound.Field, bound.Choice)
		} else {
			err = r.promptInput(ctx, bound.Field, bound.Input)
		}
		if err != nil {
			return nil, err
		}
	}

	values, err := form.Submit()
	if err != nil {
		_ = r.driver.Info(ctx, r.theme.ErrorPrefix+err.Error())
		return nil, err
	}
	_ = r.driver.Info(ctx, fmt.Sprintf("%s%s: %d fields accepted", r.theme.InfoPrefix, displayName(form), len(values)))
	r.logger.Debug().Str("form", form.Name()).Int("fields", len(values)).Msg("form completed")
	return values, nil
}

func (r *Runner) promptInput(ctx context.Context, field formspec.Field, input *binding.Input) error {
	label := displayLabel(field, input.Placeholder())
	secret := input.Kind() == validate.KindPassword

	for attempt := 1; ; attempt++ {
		cfg := InputConfig{
			Message: label,
			Help:    input.Placeholder(),
		}
		var (
			response string
			err      error
		)
		if secret {
			response, err = r.driver.Password(ctx, cfg)
		} else {
			cfg.Default = input.State().Value
			response, err = r.driver.Input(ctx, cfg)
		}
		if err != nil {
			return err
		}

		if !input.Required() && strings.TrimSpace(response) == "" {
			return nil
		}

		res := input.Commit(response)
		if res.Valid {
			return nil
		}
		r.logger.Debug().Str("field", field.Key).Int("attempt", attempt).Msg("answer rejected")
		_ = r.driver.Info(ctx, fmt.Sprintf("%s%s: %s", r.theme.ErrorPrefix, label, res.Message))
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return fmt.Errorf("%w: %s", ErrTooManyAttempts, field.Key)
		}
	}
}

func (r *Runner) promptChoice(ctx context.Context, field formspec.Field, choice *binding.Choice) error {
	label := displayLabel(field, choice.Placeholder())
	options := choice.Options()
	labels := make([]string, len(options))
	for i, opt := range options {
		labels[i] = optionLabel(opt)
	}

	for attempt := 1; ; attempt++ {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      labels,
			DefaultIndex: choice.Index(choice.State().Value),
		})
		if err != nil {
			return err
		}
		if idx >= 0 && idx < len(options) {
			if res := choice.Select(options[idx].Key()); res.Valid {
				return nil
			}
		}
		_ = r.driver.Info(ctx, fmt.Sprintf("%sInvalid %s selection", r.theme.ErrorPrefix, label))
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return fmt.Errorf("%w: %s", ErrTooManyAttempts, field.Key)
		}
	}
}

func displayLabel(field formspec.Field, fallback string) string {
	if field.Label != "" {
		return field.Label
	}
	if fallback != "" {
		return fallback
	}
	return field.Key
}

func displayName(form *formspec.Form) string {
	if name := form.Name(); name != "" {
		return name
	}
	return "form"
}

func optionLabel(opt binding.ChoiceOption) string {
	if opt.Label != "" {
		return opt.Label
	}
	return opt.Key()
}
