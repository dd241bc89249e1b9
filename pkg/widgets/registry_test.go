package widgets

import "testing"

func TestResolve_ExplicitWidgetWins(t *testing.T) {
	reg := NewRegistry()
	field := Descriptor{Key: "plan", OptionCount: 3, Widget: " Radio "}

	if got, ok := reg.Resolve(field); !ok || got != WidgetRadio {
		t.Fatalf("expected explicit widget to win, got %q (ok=%v)", got, ok)
	}
}

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		name   string
		field  Descriptor
		expect string
	}{
		{
			name:   "options select",
			field:  Descriptor{Key: "plan", OptionCount: 2},
			expect: WidgetSelect,
		},
		{
			name:   "email input",
			field:  Descriptor{Key: "email", Kind: "email"},
			expect: WidgetInput,
		},
		{
			name:   "bare text input",
			field:  Descriptor{Key: "name"},
			expect: WidgetInput,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := reg.Resolve(tc.field)
			if !ok || got != tc.expect {
				t.Fatalf("expected %q, got %q (ok=%v)", tc.expect, got, ok)
			}
		})
	}
}

func TestRegister_PriorityAndOrder(t *testing.T) {
	reg := &Registry{}
	reg.Register("low", 1, func(Descriptor) bool { return true })
	reg.Register("high-a", 5, func(Descriptor) bool { return true })
	reg.Register("high-b", 5, func(Descriptor) bool { return true })
	reg.Register("  ", 9, func(Descriptor) bool { return true })
	reg.Register("nil", 9, nil)

	if got, _ := reg.Resolve(Descriptor{}); got != "high-a" {
		t.Fatalf("expected registration order to break ties, got %q", got)
	}
}

func TestResolve_EmptyRegistry(t *testing.T) {
	var nilReg *Registry
	if _, ok := nilReg.Resolve(Descriptor{}); ok {
		t.Fatalf("nil registry must not resolve")
	}
	if _, ok := (&Registry{}).Resolve(Descriptor{}); ok {
		t.Fatalf("empty registry must not resolve")
	}
}

func TestIsChoice(t *testing.T) {
	if !IsChoice(WidgetSelect) || !IsChoice(WidgetRadio) || IsChoice(WidgetInput) {
		t.Fatalf("unexpected IsChoice classification")
	}
}
