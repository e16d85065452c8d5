// Package service provides the business logic that ties the template
// library, the compiler and bookmark storage together. Every interface
// (CLI, HTTP API, TUI) goes through this layer rather than touching the
// compiler or storage directly.
package service

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"

	"github.com/promptforge/prompt-forge/internal/compiler"
	"github.com/promptforge/prompt-forge/internal/errors"
	"github.com/promptforge/prompt-forge/internal/library"
	"github.com/promptforge/prompt-forge/internal/models"
	"github.com/promptforge/prompt-forge/internal/storage"
	"github.com/promptforge/prompt-forge/internal/validation"
)

// Service provides business logic for template management and compilation
type Service struct {
	storage   *storage.Storage
	library   *library.Library
	compiler  *compiler.Compiler
	validator *validation.Validator

	mu       sync.Mutex
	sessions map[string]*models.SelectionContext // keyed by template id
}

// NewService creates a new service instance
func NewService() (*Service, error) {
	// Check for custom directory from environment
	rootPath := os.Getenv("PROMPT_FORGE_DIR")
	store, err := storage.NewStorage(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	lib, err := library.New(store)
	if err != nil {
		return nil, fmt.Errorf("failed to load template library: %w", err)
	}

	return &Service{
		storage:   store,
		library:   lib,
		compiler:  compiler.New(),
		validator: validation.NewValidator(),
		sessions:  make(map[string]*models.SelectionContext),
	}, nil
}

// NewServiceWithLibrary creates a service over an existing library and
// storage. Used by tests and embedded setups.
func NewServiceWithLibrary(lib *library.Library, store *storage.Storage) *Service {
	return &Service{
		storage:   store,
		library:   lib,
		compiler:  compiler.New(),
		validator: validation.NewValidator(),
		sessions:  make(map[string]*models.SelectionContext),
	}
}

// InitLibrary initializes the on-disk library directories
func (s *Service) InitLibrary() error {
	if s.storage == nil {
		return nil
	}
	return s.storage.InitLibrary()
}

// ListTemplates returns all templates in the catalog
func (s *Service) ListTemplates() []*models.Template {
	return s.library.List()
}

// ListTemplatesByCategory returns the templates in one category
func (s *Service) ListTemplatesByCategory(category string) []*models.Template {
	return s.library.ListByCategory(category)
}

// Categories returns the distinct template categories
func (s *Service) Categories() []string {
	return s.library.Categories()
}

// GetTemplate returns a template by ID
func (s *Service) GetTemplate(id string) (*models.Template, error) {
	template, err := s.library.Get(id)
	if err != nil {
		return nil, errors.NotFoundError(fmt.Sprintf("template '%s'", id))
	}
	return template, nil
}

// SearchTemplates searches templates by query string
func (s *Service) SearchTemplates(query string) []*models.Template {
	templates := s.library.List()

	if query == "" {
		return templates
	}

	// Create searchable strings for each template
	var searchStrings []string
	for _, t := range templates {
		searchStr := fmt.Sprintf("%s %s %s %s",
			t.Name,
			t.Summary,
			t.ID,
			t.Category)
		searchStrings = append(searchStrings, searchStr)
	}

	// Perform fuzzy search
	matches := fuzzy.Find(query, searchStrings)

	var results []*models.Template
	for _, match := range matches {
		results = append(results, templates[match.Index])
	}

	return results
}

// StartSession begins a selection session for a template. Choosing a
// template discards any session for a previously chosen one.
func (s *Service) StartSession(templateID string) (*models.SelectionContext, error) {
	template, err := s.GetTemplate(templateID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// one active session per template choice
	s.sessions = map[string]*models.SelectionContext{
		template.ID: models.NewSelectionContext(template.ID),
	}
	return s.sessions[template.ID], nil
}

// SetField records a field value in the active session for a template
func (s *Service) SetField(templateID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[templateID]
	if !ok {
		return errors.NotFoundError(fmt.Sprintf("session for template '%s'", templateID))
	}
	session.Set(key, value)
	return nil
}

// ClearSession discards the active session for a template. Clearing a
// session that does not exist is a no-op.
func (s *Service) ClearSession(templateID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, templateID)
}

// Session returns the active selection context for a template
func (s *Service) Session(templateID string) (*models.SelectionContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[templateID]
	if !ok {
		return nil, errors.NotFoundError(fmt.Sprintf("session for template '%s'", templateID))
	}
	return session, nil
}

// CompileSession compiles the active session's template against its
// current selections. Validation issues surface as warnings on the
// result, same as Compile.
func (s *Service) CompileSession(templateID string) (models.CompileResult, error) {
	session, err := s.Session(templateID)
	if err != nil {
		return models.CompileResult{}, err
	}
	template, err := s.GetTemplate(templateID)
	if err != nil {
		return models.CompileResult{}, err
	}

	result := s.compile(template, session.Merged(template))

	if vr := s.validator.ValidateSelections(template, session.Values); !vr.Valid {
		for _, e := range vr.Errors {
			result.Warnings = append(result.Warnings, e.Message)
		}
	}

	return result, nil
}

// Compile compiles a template by ID against the given selections. The
// selections are merged over the template's defaults first, and validated
// against the template's field descriptors; validation issues surface as
// warnings on the result rather than blocking compilation.
func (s *Service) Compile(templateID string, selections map[string]string) (models.CompileResult, error) {
	template, err := s.GetTemplate(templateID)
	if err != nil {
		return models.CompileResult{}, err
	}

	session := models.NewSelectionContext(template.ID)
	for k, v := range selections {
		session.Set(k, v)
	}

	result := s.compile(template, session.Merged(template))

	if vr := s.validator.ValidateSelections(template, selections); !vr.Valid {
		for _, e := range vr.Errors {
			result.Warnings = append(result.Warnings, e.Message)
		}
	}

	return result, nil
}

// compile runs the compiler with the template's own length limits layered
// over the defaults.
func (s *Service) compile(template *models.Template, data map[string]any) models.CompileResult {
	opts := compiler.DefaultOptions()
	if template.Limits.Max > 0 {
		opts.Limits.Max = template.Limits.Max
	}
	if template.Limits.Min > 0 {
		opts.Limits.Min = template.Limits.Min
	}
	return s.compiler.Compile(template.Body, data, opts)
}

// CompileRaw compiles an ad-hoc template string, bypassing the catalog.
func (s *Service) CompileRaw(template string, data map[string]any) models.CompileResult {
	return s.compiler.Compile(template, data, compiler.DefaultOptions())
}

// ValidateTemplate checks a template definition for structural problems
func (s *Service) ValidateTemplate(template *models.Template) *validation.ValidationResult {
	return s.validator.ValidateTemplate(template)
}

// CompilerStats returns compile counters and cache effectiveness
func (s *Service) CompilerStats() compiler.Stats {
	return s.compiler.Stats()
}

// ClearCompilerCache drops all cached parsed templates
func (s *Service) ClearCompilerCache() {
	s.compiler.ClearCache()
}

// ReloadLibrary re-reads the catalog from disk and invalidates cached
// parses, so edited templates take effect.
func (s *Service) ReloadLibrary() error {
	if err := s.library.Reload(); err != nil {
		return errors.StorageError("reload library", err)
	}
	s.compiler.ClearCache()
	return nil
}

// Bookmarks

// ListBookmarks returns all saved bookmarks, newest first
func (s *Service) ListBookmarks() ([]*models.Bookmark, error) {
	if s.storage == nil {
		return nil, errors.NewAppError(errors.ErrCodeServiceUnavailable, "bookmark storage is not configured")
	}
	bookmarks, err := s.storage.Bookmarks().List()
	if err != nil {
		return nil, errors.StorageError("list bookmarks", err)
	}
	return bookmarks, nil
}

// GetBookmark returns a bookmark by ID
func (s *Service) GetBookmark(id string) (*models.Bookmark, error) {
	if s.storage == nil {
		return nil, errors.NewAppError(errors.ErrCodeServiceUnavailable, "bookmark storage is not configured")
	}
	bookmark, err := s.storage.Bookmarks().Get(id)
	if err != nil {
		return nil, errors.NotFoundError(fmt.Sprintf("bookmark '%s'", id))
	}
	return bookmark, nil
}

// SaveBookmark persists a compiled prompt for later reuse
func (s *Service) SaveBookmark(bookmark *models.Bookmark) error {
	if s.storage == nil {
		return errors.NewAppError(errors.ErrCodeServiceUnavailable, "bookmark storage is not configured")
	}
	if strings.TrimSpace(bookmark.FinalPrompt) == "" {
		return errors.ValidationError("bookmark has no prompt content")
	}
	if err := s.storage.Bookmarks().Save(bookmark); err != nil {
		return errors.StorageError("save bookmark", err)
	}
	return nil
}

// DeleteBookmark removes a bookmark by ID
func (s *Service) DeleteBookmark(id string) error {
	if s.storage == nil {
		return errors.NewAppError(errors.ErrCodeServiceUnavailable, "bookmark storage is not configured")
	}
	if err := s.storage.Bookmarks().Delete(id); err != nil {
		return errors.NotFoundError(fmt.Sprintf("bookmark '%s'", id))
	}
	return nil
}
