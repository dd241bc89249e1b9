package widgets

import (
	"sort"
	"strings"
	"sync"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetInput  = "input"
	WidgetSelect = "select"
	WidgetRadio  = "radio"
)

// Descriptor is the subset of a field declaration widget resolution looks at.
type Descriptor struct {
	Key         string
	Kind        string
	Widget      string
	OptionCount int
}

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field Descriptor) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on explicit hints or registered
// matchers. Higher priority wins; ties fall back to registration order. An
// empty registry never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in widget matchers
// registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority. Higher
// priority values take precedence. Callers should avoid duplicate names; the
// latest registration wins during resolution.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. An explicit Widget hint is
// honoured before matcher evaluation.
func (r *Registry) Resolve(field Descriptor) (string, bool) {
	if explicit := strings.ToLower(strings.TrimSpace(field.Widget)); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// IsChoice reports whether widget binds through a choice binder.
func IsChoice(widget string) bool {
	return widget == WidgetSelect || widget == WidgetRadio
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetSelect, 70, func(field Descriptor) bool {
		return field.OptionCount > 0
	})

	r.Register(WidgetInput, 10, func(field Descriptor) bool {
		return field.OptionCount == 0
	})
}
