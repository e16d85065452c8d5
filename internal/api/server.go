// Package api provides a RESTful HTTP API server for prompt-forge.
//
// SYSTEM ARCHITECTURE ROLE:
// This module implements the HTTP interface layer of the system. It exposes the
// template catalog and the compiler over standardized JSON endpoints with a
// middleware stack for logging, CORS and panic recovery.
//
// ENDPOINT STRUCTURE:
// - /api/v1/templates: Catalog listing and per-template retrieval
// - /api/v1/categories: Distinct template categories
// - /api/v1/search: Fuzzy search over the catalog
// - /api/v1/compile: Template compilation
// - /api/v1/bookmarks: Saved prompt management
// - /api/v1/stats: Compiler counters and cache effectiveness
// - /api/v1/health: System health monitoring
//
// USAGE PATTERNS:
// - Start server: Use Start() method with desired port
// - Add endpoints: Implement handler methods following established patterns
// - Handle errors: Use writeError() for consistent error responses
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/promptforge/prompt-forge/internal/errors"
	"github.com/promptforge/prompt-forge/internal/models"
	"github.com/promptforge/prompt-forge/internal/service"
)

// APIServer provides the HTTP API with middleware support
type APIServer struct {
	service      *service.Service
	errorHandler *errors.HTTPErrorHandler
	port         int
	server       *http.Server
	ctx          context.Context
	cancel       context.CancelFunc
}

// NewAPIServer creates a new API server instance
func NewAPIServer(svc *service.Service, port int) *APIServer {
	ctx, cancel := context.WithCancel(context.Background())

	return &APIServer{
		service:      svc,
		errorHandler: errors.NewHTTPErrorHandler(true), // Include details in responses
		port:         port,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Start begins serving HTTP requests with middleware
func (s *APIServer) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("API server starting on http://localhost:%d", s.port)

	return s.server.ListenAndServe()
}

// Handler returns the routed handler with middleware applied. Exposed so
// tests can drive the API without binding a port.
func (s *APIServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/templates", s.withMiddleware(s.handleTemplates))
	mux.HandleFunc("/api/v1/templates/", s.withMiddleware(s.handleTemplatesWithID))
	mux.HandleFunc("/api/v1/categories", s.withMiddleware(s.handleCategories))
	mux.HandleFunc("/api/v1/search", s.withMiddleware(s.handleSearch))
	mux.HandleFunc("/api/v1/compile", s.withMiddleware(s.handleCompile))
	mux.HandleFunc("/api/v1/bookmarks", s.withMiddleware(s.handleBookmarks))
	mux.HandleFunc("/api/v1/bookmarks/", s.withMiddleware(s.handleBookmarksWithID))
	mux.HandleFunc("/api/v1/stats", s.withMiddleware(s.handleStats))
	mux.HandleFunc("/api/v1/health", s.withMiddleware(s.handleHealth))

	return mux
}

// Stop gracefully shuts down the server
func (s *APIServer) Stop(ctx context.Context) error {
	s.cancel()
	return s.server.Shutdown(ctx)
}

// withMiddleware applies middleware to HTTP handlers
func (s *APIServer) withMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	return s.loggingMiddleware(
		s.corsMiddleware(
			s.contentTypeMiddleware(
				s.errorMiddleware(handler),
			),
		),
	)
}

// loggingMiddleware logs HTTP requests
func (s *APIServer) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		duration := time.Since(start)
		log.Printf("[%s] %s %s - %v", r.Method, r.URL.Path, r.RemoteAddr, duration)
	}
}

// corsMiddleware handles CORS headers
func (s *APIServer) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// contentTypeMiddleware sets default content type
func (s *APIServer) contentTypeMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next(w, r)
	}
}

// errorMiddleware handles panics and errors
func (s *APIServer) errorMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("Panic in handler: %v", err)
				appErr := errors.InternalError("Internal server error")
				s.errorHandler.WriteHTTPError(w, appErr)
			}
		}()
		next(w, r)
	}
}

// APIResponse represents a standardized API response
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Message   string      `json:"message,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// writeResponse writes a standardized JSON response
func (s *APIServer) writeResponse(w http.ResponseWriter, data interface{}, message string, statusCode int) {
	response := APIResponse{
		Success:   statusCode < 400,
		Data:      data,
		Message:   message,
		Timestamp: time.Now(),
	}

	w.WriteHeader(statusCode)

	// Use pretty-printed JSON for better readability
	jsonData, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		json.NewEncoder(w).Encode(response)
		return
	}

	w.Write(jsonData)
}

// writeError writes an error response using the error handler
func (s *APIServer) writeError(w http.ResponseWriter, err error) {
	s.errorHandler.WriteHTTPError(w, err)
}

func (s *APIServer) methodNotAllowed(w http.ResponseWriter) {
	s.writeError(w, errors.NewAppError(errors.ErrCodeInvalidInput, "Method not allowed"))
}

// handleTemplates handles GET /api/v1/templates
func (s *APIServer) handleTemplates(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		s.methodNotAllowed(w)
		return
	}

	var templates []*models.Template
	if category := r.URL.Query().Get("category"); category != "" {
		templates = s.service.ListTemplatesByCategory(category)
	} else {
		templates = s.service.ListTemplates()
	}

	s.writeResponse(w, templates, fmt.Sprintf("%d templates", len(templates)), http.StatusOK)
}

// handleTemplatesWithID handles GET /api/v1/templates/{id}
func (s *APIServer) handleTemplatesWithID(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		s.methodNotAllowed(w)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/templates/")
	if id == "" {
		s.writeError(w, errors.ValidationError("Template ID is required"))
		return
	}

	template, err := s.service.GetTemplate(id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeResponse(w, template, "", http.StatusOK)
}

// handleCategories handles GET /api/v1/categories
func (s *APIServer) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		s.methodNotAllowed(w)
		return
	}

	s.writeResponse(w, s.service.Categories(), "", http.StatusOK)
}

// handleSearch handles GET /api/v1/search
func (s *APIServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		s.methodNotAllowed(w)
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		s.writeError(w, errors.ValidationError("Search query 'q' parameter is required"))
		return
	}

	results := s.service.SearchTemplates(query)
	s.writeResponse(w, results, fmt.Sprintf("%d matches", len(results)), http.StatusOK)
}

// compileRequest is the request body for POST /api/v1/compile
type compileRequest struct {
	TemplateID string            `json:"templateId"`
	Template   string            `json:"template,omitempty"` // ad-hoc body, used when templateId is empty
	Selections map[string]string `json:"selections"`
}

// handleCompile handles POST /api/v1/compile
func (s *APIServer) handleCompile(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		s.methodNotAllowed(w)
		return
	}

	var req compileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.ValidationError("Invalid JSON request body"))
		return
	}

	var result models.CompileResult
	switch {
	case req.TemplateID != "":
		var err error
		result, err = s.service.Compile(req.TemplateID, req.Selections)
		if err != nil {
			s.writeError(w, err)
			return
		}
	case req.Template != "":
		data := make(map[string]any, len(req.Selections))
		for k, v := range req.Selections {
			data[k] = v
		}
		result = s.service.CompileRaw(req.Template, data)
	default:
		s.writeError(w, errors.ValidationError("Either 'templateId' or 'template' is required"))
		return
	}

	// Compilation failures are part of the result contract, not HTTP errors.
	s.writeResponse(w, result, "", http.StatusOK)
}

// handleBookmarks handles /api/v1/bookmarks
func (s *APIServer) handleBookmarks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		bookmarks, err := s.service.ListBookmarks()
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeResponse(w, bookmarks, fmt.Sprintf("%d bookmarks", len(bookmarks)), http.StatusOK)
	case "POST":
		var bookmark models.Bookmark
		if err := json.NewDecoder(r.Body).Decode(&bookmark); err != nil {
			s.writeError(w, errors.ValidationError("Invalid JSON request body"))
			return
		}
		if err := s.service.SaveBookmark(&bookmark); err != nil {
			s.writeError(w, err)
			return
		}
		s.writeResponse(w, bookmark, "Bookmark saved", http.StatusCreated)
	default:
		s.methodNotAllowed(w)
	}
}

// handleBookmarksWithID handles /api/v1/bookmarks/{id}
func (s *APIServer) handleBookmarksWithID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/bookmarks/")
	if id == "" {
		s.writeError(w, errors.ValidationError("Bookmark ID is required"))
		return
	}

	switch r.Method {
	case "GET":
		bookmark, err := s.service.GetBookmark(id)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeResponse(w, bookmark, "", http.StatusOK)
	case "DELETE":
		if err := s.service.DeleteBookmark(id); err != nil {
			s.writeError(w, err)
			return
		}
		s.writeResponse(w, nil, "Bookmark deleted", http.StatusOK)
	default:
		s.methodNotAllowed(w)
	}
}

// handleStats handles GET /api/v1/stats
func (s *APIServer) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		s.methodNotAllowed(w)
		return
	}

	s.writeResponse(w, s.service.CompilerStats(), "", http.StatusOK)
}

// handleHealth handles GET /api/v1/health
func (s *APIServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		s.methodNotAllowed(w)
		return
	}

	health := map[string]interface{}{
		"status":    "ok",
		"templates": len(s.service.ListTemplates()),
	}
	s.writeResponse(w, health, "", http.StatusOK)
}
