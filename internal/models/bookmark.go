package models

import "time"

// Bookmark is a persisted snapshot of a compiled prompt together with the
// selections that produced it. The compiler only produces FinalPrompt; the
// bookmark store owns the rest.
type Bookmark struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	TemplateID  string            `json:"templateId"`
	FinalPrompt string            `json:"finalPrompt"`
	Selections  map[string]string `json:"selections,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}
