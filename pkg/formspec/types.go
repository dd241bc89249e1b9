package formspec

import (
	"github.com/goliatone/go-formstate/pkg/binding"
	"github.com/goliatone/go-formstate/pkg/widgets"
)

// Definition describes one form.
type Definition struct {
	Form   string  `json:"form" yaml:"form"`
	Fields []Field `json:"fields" yaml:"fields" validate:"required,min=1,dive"`
}

// Field declares a single field. Required is a pointer so an omitted value
// keeps the binder's own default.
type Field struct {
	Key         string                 `json:"key" yaml:"key" validate:"required"`
	Kind        string                 `json:"kind,omitempty" yaml:"kind,omitempty" validate:"omitempty,oneof=email password date number text"`
	Label       string                 `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string                 `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Required    *bool                  `json:"required,omitempty" yaml:"required,omitempty"`
	Security    string                 `json:"security,omitempty" yaml:"security,omitempty" validate:"omitempty,oneof=low max"`
	Widget      string                 `json:"widget,omitempty" yaml:"widget,omitempty" validate:"omitempty,oneof=input select radio"`
	Default     *string                `json:"default,omitempty" yaml:"default,omitempty"`
	Prefill     string                 `json:"prefill,omitempty" yaml:"prefill,omitempty"`
	Options     []binding.ChoiceOption `json:"options,omitempty" yaml:"options,omitempty" validate:"dive"`
}

// Descriptor converts the field into the shape the widget registry matches
// on.
func (f Field) Descriptor() widgets.Descriptor {
	return widgets.Descriptor{
		Key:         f.Key,
		Kind:        f.Kind,
		Widget:      f.Widget,
		OptionCount: len(f.Options),
	}
}

// PrefillPath returns the JSON path used to look up a prefill value. It
// defaults to the field key.
func (f Field) PrefillPath() string {
	if f.Prefill != "" {
		return f.Prefill
	}
	return f.Key
}

// Field returns the declaration for key.
func (d Definition) Field(key string) (Field, bool) {
	for _, field := range d.Fields {
		if field.Key == key {
			return field, true
		}
	}
	return Field{}, false
}
