// Package persona holds the fixed system-prompt templates and resolves the
// trigger prefix a user can put in front of a message to pick one.
package persona

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// DefaultID is the persona used when no trigger prefix matches.
const DefaultID = "default"

const defaultTemperature = 0.7

// Template is one immutable persona definition. The set is fixed at
// process start.
type Template struct {
	ID            string  `json:"id"`
	TriggerPrefix string  `json:"trigger_prefix,omitempty"`
	SystemText    string  `json:"system_text"`
	Temperature   float64 `json:"temperature,omitempty"`
}

// IsDefault reports whether this is the fallback persona.
func (t Template) IsDefault() bool {
	return t.ID == DefaultID
}

// Registry maps trigger prefixes to templates. Resolution checks triggers
// in registration order, so no registered trigger may be a prefix of
// another; Register enforces that.
type Registry struct {
	templates map[string]Template
	order     []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]Template)}
}

// Register adds a template. It fails on a duplicate ID, a missing system
// text, or a trigger that overlaps an already-registered one.
func (r *Registry) Register(t Template) error {
	if t.ID == "" {
		return fmt.Errorf("persona id cannot be empty")
	}
	if t.SystemText == "" {
		return fmt.Errorf("persona %q has no system text", t.ID)
	}
	if _, ok := r.templates[t.ID]; ok {
		return fmt.Errorf("persona %q is already registered", t.ID)
	}
	if t.Temperature == 0 {
		t.Temperature = defaultTemperature
	}
	if t.TriggerPrefix != "" {
		trigger := strings.ToLower(t.TriggerPrefix)
		for _, id := range r.order {
			other := strings.ToLower(r.templates[id].TriggerPrefix)
			if other == "" {
				continue
			}
			if strings.HasPrefix(trigger, other) || strings.HasPrefix(other, trigger) {
				return fmt.Errorf("trigger %q of persona %q overlaps trigger %q of persona %q",
					t.TriggerPrefix, t.ID, r.templates[id].TriggerPrefix, id)
			}
		}
	}
	r.templates[t.ID] = t
	r.order = append(r.order, t.ID)
	return nil
}

// Get returns a template by ID.
func (r *Registry) Get(id string) (Template, bool) {
	t, ok := r.templates[id]
	return t, ok
}

// Default returns the fallback persona. The registry is only usable once a
// default has been registered, so a missing one is a programming error.
func (r *Registry) Default() Template {
	t, ok := r.templates[DefaultID]
	if !ok {
		panic("persona registry has no default template")
	}
	return t
}

// Resolve matches the text's prefix against each registered trigger,
// case-insensitively, in registration order. On a match it returns that
// persona and the text with the trigger and surrounding whitespace
// stripped. Otherwise it returns the default persona and the text
// unchanged. Resolve never fails.
func (r *Registry) Resolve(raw string) (Template, string) {
	lowered := strings.ToLower(raw)
	for _, id := range r.order {
		t := r.templates[id]
		if t.TriggerPrefix == "" {
			continue
		}
		if strings.HasPrefix(lowered, strings.ToLower(t.TriggerPrefix)) {
			cleaned := strings.TrimSpace(raw[len(t.TriggerPrefix):])
			return t, cleaned
		}
	}
	return r.Default(), raw
}

// LoadFile replaces the registry contents with templates from a JSON file:
// a flat array of Template objects. The file must include a "default"
// persona.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading persona file: %w", err)
	}
	var templates []Template
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("parsing persona file %s: %w", path, err)
	}
	r := NewRegistry()
	for _, t := range templates {
		if err := r.Register(t); err != nil {
			return nil, fmt.Errorf("persona file %s: %w", path, err)
		}
	}
	if _, ok := r.Get(DefaultID); !ok {
		return nil, fmt.Errorf("persona file %s has no %q persona", path, DefaultID)
	}
	return r, nil
}
