package validate

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Rule is a kind validator. It returns the message to surface, or "" when
// value is acceptable.
type Rule func(value string, opts Options) string

// Custom is a caller supplied rule. A non-nil error with a non-empty message
// replaces whatever the kind rule reported.
type Custom func(value string) error

// Options carries the per-field settings Evaluate needs.
type Options struct {
	Required bool
	Security Security
	Custom   Custom
}

var rules = map[Kind]Rule{
	KindEmail: func(value string, _ Options) string { return Email(value) },
	KindPassword: func(value string, opts Options) string {
		return Password(value, opts.Security)
	},
	KindDate:   func(value string, _ Options) string { return Date(value) },
	KindNumber: func(value string, _ Options) string { return Number(value) },
}

// Lookup returns the built-in rule for kind. KindText has none.
func Lookup(kind Kind) (Rule, bool) {
	rule, ok := rules[kind]
	return rule, ok
}

// Evaluate runs the required check, the kind rule and the custom rule in that
// order and returns the resulting message.
func Evaluate(kind Kind, value string, opts Options) string {
	if opts.Required && value == "" {
		return RequiredMessage(kind)
	}

	message := ""
	if rule, ok := Lookup(kind); ok {
		message = rule(value, opts)
	}

	if opts.Custom != nil {
		if err := opts.Custom(value); err != nil && err.Error() != "" {
			message = err.Error()
		}
	}
	return message
}

// RequiredMessage returns "<Kind> is required." with the kind capitalised.
func RequiredMessage(kind Kind) string {
	return kind.Title() + " is required."
}

func capitalize(value string) string {
	if value == "" {
		return ""
	}
	// Casers keep state between calls, so each call gets its own.
	return cases.Title(language.Und, cases.NoLower).String(value)
}
