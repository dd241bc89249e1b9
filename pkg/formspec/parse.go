package formspec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/goliatone/go-formstate/pkg/binding"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDefinition wraps every structural problem found in a definition.
var ErrInvalidDefinition = errors.New("formspec: invalid definition")

var (
	validateOnce sync.Once
	structValid  *validator.Validate
)

func definitionValidator() *validator.Validate {
	validateOnce.Do(func() {
		structValid = validator.New(validator.WithRequiredStructEnabled())
	})
	return structValid
}

// LoadFS reads and parses the definition at path inside fsys.
func LoadFS(fsys fs.FS, path string) (Definition, error) {
	if fsys == nil {
		return Definition{}, errors.New("formspec: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Definition{}, fmt.Errorf("formspec: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a JSON or YAML definition and normalises it. source is only
// used in error messages.
func Parse(data []byte, source string) (Definition, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Definition{}, fmt.Errorf("%w: %s is empty", ErrInvalidDefinition, source)
	}

	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		def = Definition{}
		if err := yaml.Unmarshal(data, &def); err != nil {
			return Definition{}, fmt.Errorf("formspec: parse %s: invalid JSON or YAML: %w", source, err)
		}
	}

	return Normalize(def, source)
}

// Normalize trims keys, strips markup from display text, rejects duplicate
// keys and runs struct validation. Display text is rewritten, so a
// definition should be normalised once; Build only re-checks it.
func Normalize(def Definition, source string) (Definition, error) {
	out := Definition{
		Form:   strings.TrimSpace(def.Form),
		Fields: make([]Field, 0, len(def.Fields)),
	}
	for _, raw := range def.Fields {
		out.Fields = append(out.Fields, normalizeField(raw))
	}
	if err := check(out, source); err != nil {
		return Definition{}, err
	}
	return out, nil
}

// check rejects missing and duplicate keys and runs struct validation without
// rewriting def.
func check(def Definition, source string) error {
	seen := make(map[string]struct{}, len(def.Fields))
	for idx, field := range def.Fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			return fmt.Errorf("%w: %s field #%d has no key", ErrInvalidDefinition, source, idx)
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: %s defines duplicate field %q", ErrInvalidDefinition, source, key)
		}
		seen[key] = struct{}{}
	}

	if err := definitionValidator().Struct(def); err != nil {
		return fmt.Errorf("%w: %s: %s", ErrInvalidDefinition, source, describeValidation(err))
	}
	return nil
}

func normalizeField(raw Field) Field {
	field := raw
	field.Key = strings.TrimSpace(raw.Key)
	field.Kind = strings.ToLower(strings.TrimSpace(raw.Kind))
	field.Security = strings.ToLower(strings.TrimSpace(raw.Security))
	field.Widget = strings.ToLower(strings.TrimSpace(raw.Widget))
	field.Prefill = strings.TrimSpace(raw.Prefill)
	field.Label = sanitizeText(raw.Label)
	field.Placeholder = sanitizeText(raw.Placeholder)
	if len(raw.Options) > 0 {
		field.Options = make([]binding.ChoiceOption, len(raw.Options))
		for i, opt := range raw.Options {
			opt.Label = sanitizeText(opt.Label)
			field.Options[i] = opt
		}
	}
	return field
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
