package formspec

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/pkg/binding"
	"github.com/goliatone/go-formstate/pkg/store"
)

// ErrFormInvalid is returned by Submit while any field is invalid.
var ErrFormInvalid = errors.New("formspec: form is not valid")

// Bound pairs a field declaration with its binder. Exactly one of Input and
// Choice is set.
type Bound struct {
	Field  Field
	Widget string
	Input  *binding.Input
	Choice *binding.Choice
}

// State returns the binder's presentation state.
func (b Bound) State() binding.State {
	if b.Choice != nil {
		return b.Choice.State()
	}
	return b.Input.State()
}

func (b Bound) closer() io.Closer {
	if b.Choice != nil {
		return b.Choice
	}
	return b.Input
}

// Form is a built definition: its binders in declaration order and the store
// they share.
type Form struct {
	def     Definition
	store   *store.Store
	fields  []Bound
	inputs  map[string]*binding.Input
	choices map[string]*binding.Choice
	logger  zerolog.Logger
}

// Name returns the definition's form name.
func (f *Form) Name() string { return f.def.Form }

// Definition returns the normalised definition the form was built from.
func (f *Form) Definition() Definition { return f.def }

// Store returns the registry shared by the form's binders.
func (f *Form) Store() *store.Store { return f.store }

// Fields returns the bound fields in declaration order.
func (f *Form) Fields() []Bound {
	return append([]Bound(nil), f.fields...)
}

// Input returns the input bound to key.
func (f *Form) Input(key string) (*binding.Input, bool) {
	in, ok := f.inputs[key]
	return in, ok
}

// Choice returns the choice bound to key.
func (f *Form) Choice(key string) (*binding.Choice, bool) {
	c, ok := f.choices[key]
	return c, ok
}

// Valid reports whether the form can be submitted: the store's aggregate
// validity holds and no required input of this form is still unregistered.
func (f *Form) Valid() bool {
	return f.store.IsFormValid() && len(f.blocked()) == 0
}

// Values returns a copy of the registered values.
func (f *Form) Values() map[string]string {
	return f.store.Values()
}

// Errors returns the current message of every field that has one.
func (f *Form) Errors() map[string]string {
	out := make(map[string]string)
	for _, bound := range f.fields {
		if msg := bound.State().Error; msg != "" {
			out[bound.Field.Key] = msg
		}
	}
	return out
}

// Submit returns the form values when the form is valid. Otherwise it returns
// ErrFormInvalid naming the fields that block submission.
func (f *Form) Submit() (map[string]string, error) {
	if f.Valid() {
		f.logger.Debug().Msg("form submitted")
		return f.store.Values(), nil
	}
	blocked := f.blocked()
	if len(blocked) == 0 {
		return nil, ErrFormInvalid
	}
	return nil, fmt.Errorf("%w: %s", ErrFormInvalid, strings.Join(blocked, ", "))
}

// blocked lists the fields that keep the form from submitting, in declaration
// order.
func (f *Form) blocked() []string {
	validity := f.store.Validity()
	values := f.store.Values()
	var out []string
	for _, bound := range f.fields {
		key := bound.Field.Key
		valid, registered := validity[key]
		if !registered {
			if bound.Input != nil && bound.Input.Required() {
				out = append(out, key)
			}
			continue
		}
		if !valid || strings.TrimSpace(values[key]) == "" {
			out = append(out, key)
		}
	}
	return out
}

// Close releases every binder. It is safe to call more than once.
func (f *Form) Close() error {
	var errs []error
	for _, bound := range f.fields {
		if err := bound.closer().Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
