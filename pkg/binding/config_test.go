package binding

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"FORMSTATE_DEBOUNCE_DELAY", "FORMSTATE_SHAKE_DURATION", "FORMSTATE_PASSWORD_SECURITY"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("FORMSTATE_DEBOUNCE_DELAY", "250ms")
	t.Setenv("FORMSTATE_SHAKE_DURATION", "1s")
	t.Setenv("FORMSTATE_PASSWORD_SECURITY", "max")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	want := Config{DebounceDelay: 250 * time.Millisecond, ShakeDuration: time.Second, Security: "max"}
	if cfg != want {
		t.Fatalf("got %+v, want %+v", cfg, want)
	}
}

func TestLoadConfig_RejectsBadValues(t *testing.T) {
	t.Setenv("FORMSTATE_PASSWORD_SECURITY", "medium")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for unknown tier")
	}

	t.Setenv("FORMSTATE_PASSWORD_SECURITY", "low")
	t.Setenv("FORMSTATE_DEBOUNCE_DELAY", "soon")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for malformed duration")
	}
}
