package formspec

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrInvalidPrefill is returned when a prefill document is not valid JSON.
var ErrInvalidPrefill = errors.New("formspec: prefill document is not valid JSON")

// PrefillValues looks up each field's prefill path in doc and returns the
// scalar values found, keyed by field key. Objects, arrays and nulls are
// skipped. An empty doc yields no values.
func PrefillValues(def Definition, doc []byte) (map[string]string, error) {
	values := make(map[string]string)
	if len(doc) == 0 {
		return values, nil
	}
	if !gjson.ValidBytes(doc) {
		return nil, ErrInvalidPrefill
	}
	for _, field := range def.Fields {
		res := gjson.GetBytes(doc, field.PrefillPath())
		if !res.Exists() {
			continue
		}
		switch res.Type {
		case gjson.String, gjson.Number, gjson.True, gjson.False:
			values[field.Key] = res.String()
		}
	}
	return values, nil
}

// startValues merges declared defaults with prefill values. Prefill wins.
func startValues(def Definition, doc []byte) (map[string]string, error) {
	values, err := PrefillValues(def, doc)
	if err != nil {
		return nil, fmt.Errorf("formspec: form %q: %w", def.Form, err)
	}
	for _, field := range def.Fields {
		if field.Default == nil {
			continue
		}
		if _, ok := values[field.Key]; !ok {
			values[field.Key] = *field.Default
		}
	}
	return values, nil
}
