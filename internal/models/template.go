package models

import (
	"strings"
	"time"
)

// Template represents a reusable generation recipe: a placeholder-bearing
// body plus the field metadata describing how to fill it. Templates are
// static catalog data; they are loaded at startup and never mutated.
type Template struct {
	// Frontmatter fields
	ID          string            `yaml:"id"`
	Category    string            `yaml:"category"`
	Name        string            `yaml:"name"`
	Summary     string            `yaml:"description,omitempty"`
	Fields      []Field           `yaml:"fields"`
	Defaults    map[string]string `yaml:"defaults,omitempty"`
	ModelHints  ModelHints        `yaml:"model_hints,omitempty"`
	Limits      LengthLimits      `yaml:"limits,omitempty"`
	CreatedAt   time.Time         `yaml:"created_at,omitempty"`
	UpdatedAt   time.Time         `yaml:"updated_at,omitempty"`

	// Content fields
	Body     string `yaml:"-"` // The template body after frontmatter
	FilePath string `yaml:"-"` // Path to the file
}

// Field describes one user-fillable input of a template.
type Field struct {
	Key       string   `yaml:"key"`
	Label     string   `yaml:"label"`
	Kind      string   `yaml:"kind,omitempty"` // "text", "textarea", "select"
	Default   string   `yaml:"default,omitempty"`
	Required  bool     `yaml:"required,omitempty"`
	Options   []string `yaml:"options,omitempty"` // allowed values for "select"
	MaxLength int      `yaml:"max_length,omitempty"`
}

// ModelHints carries advisory metadata about the preferred downstream AI
// model. Informational only; nothing in the compiler enforces it.
type ModelHints struct {
	Preferred string   `yaml:"preferred,omitempty"`
	Suitable  []string `yaml:"suitable,omitempty"`
}

// LengthLimits bounds the compiled output. Max defaults to the catalog-wide
// cap when zero; Min has no mandated default and is set per call site.
type LengthLimits struct {
	Max int `yaml:"max,omitempty"`
	Min int `yaml:"min,omitempty"`
}

// FieldByKey returns the field descriptor for a key, if present.
func (t *Template) FieldByKey(key string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// DefaultFor resolves the default value for a field key. Field-level
// defaults win over the template-level defaults map.
func (t *Template) DefaultFor(key string) string {
	if f, ok := t.FieldByKey(key); ok && f.Default != "" {
		return f.Default
	}
	return t.Defaults[key]
}

// Implement list.Item interface for bubbles list component

// FilterValue returns the value used for filtering in lists
func (t Template) FilterValue() string {
	return t.Name + " " + t.Category
}

// Title satisfies the list.Item interface
func (t Template) Title() string {
	if t.Name != "" {
		return t.Name
	}
	return t.ID
}

// Description satisfies the list.Item interface
func (t Template) Description() string {
	var parts []string
	if t.Category != "" {
		parts = append(parts, t.Category)
	}
	if t.Summary != "" {
		summary := t.Summary
		if len(summary) > 60 {
			summary = summary[:57] + "..."
		}
		parts = append(parts, summary)
	}
	return strings.Join(parts, " • ")
}
