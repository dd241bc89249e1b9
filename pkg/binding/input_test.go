package binding

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/store"
	"github.com/goliatone/go-formstate/pkg/testsupport"
	"github.com/goliatone/go-formstate/pkg/validate"
)

func newTestInput(t *testing.T, reg Registry, clock *testsupport.Scheduler, opts ...Option) *Input {
	t.Helper()
	opts = append([]Option{WithScheduler(clock)}, opts...)
	in, err := NewInput(reg, "field", opts...)
	if err != nil {
		t.Fatalf("new input: %v", err)
	}
	return in
}

func TestNewInput_UsageErrors(t *testing.T) {
	if _, err := NewInput(nil, "a"); !errors.Is(err, ErrNilRegistry) {
		t.Fatalf("expected ErrNilRegistry, got %v", err)
	}
	if _, err := NewInput(store.New(), "  "); !errors.Is(err, ErrEmptyKey) {
		t.Fatalf("expected ErrEmptyKey, got %v", err)
	}
	if _, err := NewInput(store.New(), "a", WithKind("color")); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
	bad := DefaultConfig()
	bad.DebounceDelay = -time.Second
	if _, err := NewInput(store.New(), "a", WithConfig(bad)); err == nil {
		t.Fatalf("expected config error")
	}
}

func TestInput_Defaults(t *testing.T) {
	in, err := NewInput(store.New(), "email", WithKind(validate.KindEmail))
	if err != nil {
		t.Fatalf("new input: %v", err)
	}
	defer in.Close()

	if !in.Required() {
		t.Fatalf("inputs are required by default")
	}
	if in.Placeholder() != "Email" {
		t.Fatalf("expected kind placeholder, got %q", in.Placeholder())
	}
	if in.Key() != "email" || in.Kind() != validate.KindEmail {
		t.Fatalf("unexpected key/kind %q/%q", in.Key(), in.Kind())
	}
}

func TestInput_CommitPublishesToRegistryAndState(t *testing.T) {
	reg := store.New()
	clock := testsupport.NewScheduler()
	var (
		changes  []string
		validity []bool
	)
	in := newTestInput(t, reg, clock,
		WithKind(validate.KindEmail),
		WithOnChange(func(v string) { changes = append(changes, v) }),
		WithOnValidityChange(func(v bool) { validity = append(validity, v) }),
	)

	res := in.Commit("a@b")
	if res.Valid || res.Message != validate.MsgEmailInvalid {
		t.Fatalf("unexpected result %+v", res)
	}
	if v, _ := reg.Value("field"); v != "a@b" {
		t.Fatalf("registry value = %q", v)
	}
	if ok, present := reg.Valid("field"); !present || ok {
		t.Fatalf("registry validity = %v (present=%v)", ok, present)
	}
	state := in.State()
	want := State{Value: "a@b", Error: validate.MsgEmailInvalid, Valid: false, Shaking: true, Touched: true}
	if diff := cmp.Diff(want, state); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}

	in.Commit("a@b.co")
	if !reg.IsFormValid() {
		t.Fatalf("expected form to be valid after a valid email")
	}
	if diff := cmp.Diff([]string{"a@b", "a@b.co"}, changes); diff != "" {
		t.Fatalf("onChange mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]bool{false, true}, validity); diff != "" {
		t.Fatalf("onValidityChange mismatch (-want +got):\n%s", diff)
	}
}

func TestInput_RequiredEmpty(t *testing.T) {
	reg := store.New()
	in := newTestInput(t, reg, testsupport.NewScheduler(), WithKind(validate.KindPassword))

	res := in.Commit("")
	if res.Valid || res.Message != "Password is required." {
		t.Fatalf("unexpected result %+v", res)
	}
	if ok, _ := reg.Valid("field"); ok {
		t.Fatalf("required empty must be invalid in the registry")
	}
}

func TestInput_ChangeIsDebounced(t *testing.T) {
	reg := store.New()
	clock := testsupport.NewScheduler()
	var seen []string
	in := newTestInput(t, reg, clock,
		WithKind(validate.KindNumber),
		WithOnChange(func(v string) { seen = append(seen, v) }),
	)

	in.Change("1")
	clock.Advance(100 * time.Millisecond)
	in.Change("12")
	clock.Advance(100 * time.Millisecond)
	in.Change("12x")

	if _, ok := reg.Value("field"); ok {
		t.Fatalf("nothing may reach the registry during the quiet period")
	}
	if !in.Pending() {
		t.Fatalf("expected pending validation")
	}

	clock.Advance(DefaultDebounceDelay)

	if v, _ := reg.Value("field"); v != "12x" {
		t.Fatalf("expected latest value, got %q", v)
	}
	if diff := cmp.Diff([]string{"12x"}, seen); diff != "" {
		t.Fatalf("expected a single validation (-want +got):\n%s", diff)
	}
	if got := in.State().Error; got != validate.MsgNumberInvalid {
		t.Fatalf("unexpected error %q", got)
	}
}

func TestInput_CommitDropsPendingChange(t *testing.T) {
	reg := store.New()
	clock := testsupport.NewScheduler()
	in := newTestInput(t, reg, clock)

	in.Change("stale")
	in.Commit("fresh")
	clock.Advance(time.Hour)

	if v, _ := reg.Value("field"); v != "fresh" {
		t.Fatalf("stale debounced value overwrote commit: %q", v)
	}
}

func TestInput_ShakeExpires(t *testing.T) {
	clock := testsupport.NewScheduler()
	in := newTestInput(t, store.New(), clock, WithKind(validate.KindEmail))

	in.Commit("bad")
	if !in.State().Shaking {
		t.Fatalf("expected shake after invalid input")
	}
	clock.Advance(DefaultShakeDuration - time.Millisecond)
	if !in.State().Shaking {
		t.Fatalf("shake ended early")
	}
	clock.Advance(time.Millisecond)
	if in.State().Shaking {
		t.Fatalf("shake should expire after %s", DefaultShakeDuration)
	}
	if in.State().Error == "" {
		t.Fatalf("shake expiry must not clear the error")
	}
}

func TestInput_ShakeRestartsOnRepeatedFailure(t *testing.T) {
	clock := testsupport.NewScheduler()
	in := newTestInput(t, store.New(), clock, WithKind(validate.KindEmail))

	in.Commit("bad")
	clock.Advance(400 * time.Millisecond)
	in.Commit("worse")
	clock.Advance(200 * time.Millisecond)
	if !in.State().Shaking {
		t.Fatalf("second failure should restart the shake window")
	}
	clock.Advance(300 * time.Millisecond)
	if in.State().Shaking {
		t.Fatalf("expected shake to end")
	}
}

func TestInput_ValidValueDoesNotShake(t *testing.T) {
	in := newTestInput(t, store.New(), testsupport.NewScheduler(), WithKind(validate.KindText))
	in.Commit("hello")
	if in.State().Shaking {
		t.Fatalf("valid input must not shake")
	}
}

func TestInput_CloseCancelsPendingValidation(t *testing.T) {
	reg := store.New()
	clock := testsupport.NewScheduler()
	in := newTestInput(t, reg, clock)

	in.Change("typed")
	if err := in.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	clock.Advance(time.Hour)

	if _, ok := reg.Value("field"); ok {
		t.Fatalf("closed input must not write to the registry")
	}
	if clock.Pending() != 0 {
		t.Fatalf("closed input leaked %d timers", clock.Pending())
	}

	res := in.Commit("later")
	if !res.Valid {
		t.Fatalf("evaluation still runs after close, got %+v", res)
	}
	if _, ok := reg.Value("field"); ok {
		t.Fatalf("commit after close must not write to the registry")
	}
}

func TestInput_ScopeCloseReleasesInputs(t *testing.T) {
	scope := store.NewScope()
	clock := testsupport.NewScheduler()
	in := newTestInput(t, scope.Store(), clock)
	scope.Track(in)

	in.Change("typed")
	_ = scope.Close()
	clock.Advance(time.Hour)

	if in.Pending() {
		t.Fatalf("scope close must cancel pending validation")
	}
}

func TestInput_CustomValidation(t *testing.T) {
	reg := store.New()
	in := newTestInput(t, reg, testsupport.NewScheduler(),
		WithKind(validate.KindText),
		WithRequired(false),
		WithCustom(func(v string) error {
			if len(v) < 3 {
				return errors.New("Too short.")
			}
			return nil
		}),
	)

	if res := in.Commit("ab"); res.Message != "Too short." {
		t.Fatalf("expected custom message, got %+v", res)
	}
	if res := in.Commit("abc"); !res.Valid {
		t.Fatalf("expected valid, got %+v", res)
	}
}

func TestInput_SecurityFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Security = "max"
	in := newTestInput(t, store.New(), testsupport.NewScheduler(),
		WithKind(validate.KindPassword),
		WithConfig(cfg),
	)
	if res := in.Commit("Abcdefgh"); res.Message != validate.MsgPasswordSymbol {
		t.Fatalf("expected max tier from config, got %+v", res)
	}

	override := newTestInput(t, store.New(), testsupport.NewScheduler(),
		WithKind(validate.KindPassword),
		WithConfig(cfg),
		WithSecurity(validate.SecurityLow),
	)
	if res := override.Commit("Abcdefgh"); !res.Valid {
		t.Fatalf("explicit tier should win over config, got %+v", res)
	}
}

func TestInput_SeedDoesNotTouchOrShake(t *testing.T) {
	reg := store.New()
	clock := testsupport.NewScheduler()
	var calls int
	in := newTestInput(t, reg, clock,
		WithKind(validate.KindNumber),
		WithOnChange(func(string) { calls++ }),
	)

	res := in.Seed("abc")
	if res.Valid || res.Message != validate.MsgNumberInvalid {
		t.Fatalf("unexpected result %+v", res)
	}
	if ok, present := reg.Valid("field"); !present || ok {
		t.Fatalf("expected seeded validity false, got %v (present=%v)", ok, present)
	}
	want := State{Value: "abc", Error: validate.MsgNumberInvalid}
	if diff := cmp.Diff(want, in.State()); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
	if calls != 0 || clock.Pending() != 0 {
		t.Fatalf("seed must not fire callbacks or timers (calls=%d pending=%d)", calls, clock.Pending())
	}
}
