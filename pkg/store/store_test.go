package store

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

func TestIsFormValid_EmptyRegistryIsInvalid(t *testing.T) {
	s := New()
	if s.IsFormValid() {
		t.Fatalf("empty validity map must be invalid")
	}

	s.UpdateValue("a", "x")
	if s.IsFormValid() {
		t.Fatalf("values alone do not register a field")
	}
}

func TestIsFormValid(t *testing.T) {
	cases := []struct {
		name     string
		values   map[string]string
		validity map[string]bool
		expect   bool
	}{
		{
			name:     "single valid field",
			values:   map[string]string{"a": "x"},
			validity: map[string]bool{"a": true},
			expect:   true,
		},
		{
			name:     "one invalid field",
			values:   map[string]string{"a": "x", "b": "y"},
			validity: map[string]bool{"a": true, "b": false},
			expect:   false,
		},
		{
			name:     "valid flag without value",
			values:   map[string]string{},
			validity: map[string]bool{"a": true},
			expect:   false,
		},
		{
			name:     "valid flag with blank value",
			values:   map[string]string{"a": " \t "},
			validity: map[string]bool{"a": true},
			expect:   false,
		},
		{
			name:     "unvalidated values are ignored",
			values:   map[string]string{"a": "x", "b": ""},
			validity: map[string]bool{"a": true},
			expect:   true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := New()
			for k, v := range tc.values {
				s.UpdateValue(k, v)
			}
			for k, v := range tc.validity {
				s.SetValidity(k, v)
			}
			if got := s.IsFormValid(); got != tc.expect {
				t.Fatalf("IsFormValid() = %v, want %v", got, tc.expect)
			}
		})
	}
}

func TestIsFormValid_ReflectsLatestState(t *testing.T) {
	s := New()
	s.UpdateValue("a", "x")
	s.SetValidity("a", true)
	if !s.IsFormValid() {
		t.Fatalf("expected valid form")
	}
	s.SetValidity("a", false)
	if s.IsFormValid() {
		t.Fatalf("expected aggregate to follow the latest validity")
	}
}

func TestUpdateValue_DoesNotTouchValidity(t *testing.T) {
	s := New()
	s.UpdateValue("a", "x")
	if _, ok := s.Valid("a"); ok {
		t.Fatalf("UpdateValue must not register validity")
	}
	s.SetValidity("b", true)
	if _, ok := s.Value("b"); ok {
		t.Fatalf("SetValidity must not register a value")
	}
}

func TestRevalidateAll_PresenceOnly(t *testing.T) {
	s := New()
	s.UpdateValue("a", "")
	s.UpdateValue("b", "ok")
	s.SetValidity("b", false)

	s.RevalidateAll()

	want := map[string]bool{"a": false, "b": true}
	if diff := cmp.Diff(want, s.Validity()); diff != "" {
		t.Fatalf("validity mismatch (-want +got):\n%s", diff)
	}
}

func TestRevalidateAll_LeavesValidityOnlyKeys(t *testing.T) {
	s := New()
	s.SetValidity("choice", true)
	s.UpdateValue("name", "  ")

	s.RevalidateAll()

	want := map[string]bool{"choice": true, "name": false}
	if diff := cmp.Diff(want, s.Validity()); diff != "" {
		t.Fatalf("validity mismatch (-want +got):\n%s", diff)
	}
}

func TestRevalidateAll_CustomRevalidator(t *testing.T) {
	s := New(WithRevalidator(func(key, value string) bool {
		return key != "email" || strings.Contains(value, "@")
	}))
	s.UpdateValue("email", "nope")
	s.UpdateValue("name", "")

	s.RevalidateAll()

	want := map[string]bool{"email": false, "name": true}
	if diff := cmp.Diff(want, s.Validity()); diff != "" {
		t.Fatalf("validity mismatch (-want +got):\n%s", diff)
	}
}

func TestReadAccessReturnsCopies(t *testing.T) {
	s := New()
	s.UpdateValue("a", "x")
	s.SetValidity("a", true)

	values := s.Values()
	values["a"] = "mutated"
	validity := s.Validity()
	validity["a"] = false

	if v, _ := s.Value("a"); v != "x" {
		t.Fatalf("Values() leaked internal map, value now %q", v)
	}
	if ok, _ := s.Valid("a"); !ok {
		t.Fatalf("Validity() leaked internal map")
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
}

func TestStore_LogsMutations(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	s := New(WithLogger(logger))

	s.UpdateValue("email", "a@b.co")
	s.SetValidity("email", true)

	out := buf.String()
	for _, want := range []string{`"field":"email"`, "value updated", "validity updated", s.ID().String()} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected log output to contain %q, got %s", want, out)
		}
	}
	if strings.Contains(out, "a@b.co") {
		t.Fatalf("values must not be logged: %s", out)
	}
}

func TestStore_ConcurrentWriters(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i))
			s.UpdateValue(key, "v")
			s.SetValidity(key, true)
			_ = s.IsFormValid()
		}(i)
	}
	wg.Wait()

	if !s.IsFormValid() || s.Len() != 16 {
		t.Fatalf("expected 16 valid fields, got len=%d valid=%v", s.Len(), s.IsFormValid())
	}
}
