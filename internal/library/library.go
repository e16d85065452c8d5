package library

import (
	"embed"
	"fmt"
	"sort"
	"sync"

	"github.com/promptforge/prompt-forge/internal/models"
	"github.com/promptforge/prompt-forge/internal/storage"
)

//go:embed catalog/*.md
var catalogFS embed.FS

// Library holds the merged template catalog: the embedded starter
// templates plus any user templates on disk. User templates with the
// same id shadow the embedded ones.
type Library struct {
	mu      sync.RWMutex
	store   *storage.Storage
	byID    map[string]*models.Template
	ordered []*models.Template
}

// New creates a library backed by the given storage. The storage may be
// nil for an embedded-only catalog.
func New(store *storage.Storage) (*Library, error) {
	lib := &Library{store: store}
	if err := lib.Reload(); err != nil {
		return nil, err
	}
	return lib, nil
}

// Reload rebuilds the catalog index from the embedded templates and the
// storage directory.
func (l *Library) Reload() error {
	byID := make(map[string]*models.Template)

	entries, err := catalogFS.ReadDir("catalog")
	if err != nil {
		return fmt.Errorf("failed to read embedded catalog: %w", err)
	}
	for _, entry := range entries {
		content, err := catalogFS.ReadFile("catalog/" + entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read embedded template %s: %w", entry.Name(), err)
		}
		template, err := storage.ParseTemplateFile(content)
		if err != nil {
			return fmt.Errorf("failed to parse embedded template %s: %w", entry.Name(), err)
		}
		byID[template.ID] = template
	}

	if l.store != nil {
		userTemplates, err := l.store.ListTemplates()
		if err != nil {
			return fmt.Errorf("failed to list user templates: %w", err)
		}
		for _, template := range userTemplates {
			byID[template.ID] = template
		}
	}

	ordered := make([]*models.Template, 0, len(byID))
	for _, template := range byID {
		ordered = append(ordered, template)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Category != ordered[j].Category {
			return ordered[i].Category < ordered[j].Category
		}
		return ordered[i].Name < ordered[j].Name
	})

	l.mu.Lock()
	l.byID = byID
	l.ordered = ordered
	l.mu.Unlock()

	return nil
}

// List returns all templates sorted by category then name.
func (l *Library) List() []*models.Template {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]*models.Template, len(l.ordered))
	copy(result, l.ordered)
	return result
}

// ListByCategory returns the templates in a category.
func (l *Library) ListByCategory(category string) []*models.Template {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var result []*models.Template
	for _, template := range l.ordered {
		if template.Category == category {
			result = append(result, template)
		}
	}
	return result
}

// Get returns the template with the given id.
func (l *Library) Get(id string) (*models.Template, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	template, ok := l.byID[id]
	if !ok {
		return nil, fmt.Errorf("template not found: %s", id)
	}
	return template, nil
}

// Categories returns the distinct categories in sorted order.
func (l *Library) Categories() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	seen := make(map[string]bool)
	var categories []string
	for _, template := range l.ordered {
		if !seen[template.Category] {
			seen[template.Category] = true
			categories = append(categories, template.Category)
		}
	}
	sort.Strings(categories)
	return categories
}
