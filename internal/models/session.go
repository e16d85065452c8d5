package models

// SelectionContext holds the user-chosen field values for one
// template-editing session. It is created when a template is chosen and
// cleared when a different template is chosen. At render time selections
// override template defaults; a key with neither renders as a placeholder.
type SelectionContext struct {
	TemplateID string            `json:"templateId"`
	Values     map[string]string `json:"values"`
}

// NewSelectionContext creates an empty selection context for a template.
func NewSelectionContext(templateID string) *SelectionContext {
	return &SelectionContext{
		TemplateID: templateID,
		Values:     make(map[string]string),
	}
}

// Set records a field value chosen by the user.
func (sc *SelectionContext) Set(key, value string) {
	if sc.Values == nil {
		sc.Values = make(map[string]string)
	}
	sc.Values[key] = value
}

// Clear drops all selections, keeping the session bound to its template.
func (sc *SelectionContext) Clear() {
	sc.Values = make(map[string]string)
}

// Merged returns defaults overlaid with the user's selections. Empty
// selection values do not shadow defaults; an explicitly empty field with
// no default is left absent so the compiler substitutes its placeholder.
func (sc *SelectionContext) Merged(t *Template) map[string]any {
	data := make(map[string]any, len(t.Fields)+len(t.Defaults))
	for k, v := range t.Defaults {
		if v != "" {
			data[k] = v
		}
	}
	for _, f := range t.Fields {
		if def := t.DefaultFor(f.Key); def != "" {
			data[f.Key] = def
		}
	}
	for k, v := range sc.Values {
		if v != "" {
			data[k] = v
		} else if _, ok := data[k]; !ok {
			// Present-but-empty with no default: surfaced to the
			// compiler so it is reported as an unresolved key.
			data[k] = ""
		}
	}
	return data
}
