package service

import (
	"strings"
	"testing"

	"github.com/promptforge/prompt-forge/internal/library"
	"github.com/promptforge/prompt-forge/internal/models"
	"github.com/promptforge/prompt-forge/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	store, err := storage.NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewStorage failed: %v", err)
	}
	if err := store.InitLibrary(); err != nil {
		t.Fatalf("InitLibrary failed: %v", err)
	}

	lib, err := library.New(store)
	if err != nil {
		t.Fatalf("library.New failed: %v", err)
	}

	return NewServiceWithLibrary(lib, store)
}

func TestListAndGetTemplates(t *testing.T) {
	svc := newTestService(t)

	templates := svc.ListTemplates()
	if len(templates) == 0 {
		t.Fatal("expected embedded templates")
	}

	template, err := svc.GetTemplate("blog-post")
	if err != nil {
		t.Fatalf("GetTemplate failed: %v", err)
	}
	if template.Category != "writing" {
		t.Errorf("unexpected category %q", template.Category)
	}

	if _, err := svc.GetTemplate("nope"); err == nil {
		t.Error("expected error for unknown template")
	}
}

func TestSearchTemplates(t *testing.T) {
	svc := newTestService(t)

	results := svc.SearchTemplates("blog")
	if len(results) == 0 {
		t.Fatal("expected search results for 'blog'")
	}
	if results[0].ID != "blog-post" {
		t.Errorf("expected blog-post first, got %s", results[0].ID)
	}

	all := svc.SearchTemplates("")
	if len(all) != len(svc.ListTemplates()) {
		t.Error("empty query should return all templates")
	}
}

func TestSessionLifecycle(t *testing.T) {
	svc := newTestService(t)

	session, err := svc.StartSession("blog-post")
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if session.TemplateID != "blog-post" {
		t.Errorf("session bound to %q", session.TemplateID)
	}

	if err := svc.SetField("blog-post", "topic", "AI 도구 활용법"); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}

	result, err := svc.CompileSession("blog-post")
	if err != nil {
		t.Fatalf("CompileSession failed: %v", err)
	}
	if !result.Success {
		t.Fatalf("compile failed: %s", result.Error)
	}
	if !strings.Contains(result.Content, "AI 도구 활용법") {
		t.Error("compiled content missing the selected topic")
	}

	// Starting a session for another template discards the first.
	if _, err := svc.StartSession("code-review"); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if err := svc.SetField("blog-post", "topic", "x"); err == nil {
		t.Error("expected stale session to be gone")
	}

	svc.ClearSession("code-review")
	if err := svc.SetField("code-review", "language", "Go"); err == nil {
		t.Error("expected cleared session to be gone")
	}
}

func TestCompileSessionReportsValidationWarnings(t *testing.T) {
	svc := newTestService(t)

	// topic is required; an untouched session compiles but warns.
	if _, err := svc.StartSession("blog-post"); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	result, err := svc.CompileSession("blog-post")
	if err != nil {
		t.Fatalf("CompileSession failed: %v", err)
	}
	if !result.Success {
		t.Fatalf("compile failed: %s", result.Error)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "'topic' is required") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a required-field warning, got %v", result.Warnings)
	}
}

func TestCompileMergesDefaults(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.Compile("blog-post", map[string]string{"topic": "재택근무"})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if !result.Success {
		t.Fatalf("compile failed: %s", result.Error)
	}
	if strings.Contains(result.Content, "[tone]") {
		t.Error("tone default was not applied")
	}
}

func TestCompileReportsValidationWarnings(t *testing.T) {
	svc := newTestService(t)

	// topic is required; leaving it out should still compile but warn.
	result, err := svc.Compile("blog-post", map[string]string{})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if !result.Success {
		t.Fatalf("compile failed: %s", result.Error)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "topic") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a warning about the missing topic, got %v", result.Warnings)
	}
}

func TestCompileUnknownTemplate(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Compile("missing", nil); err == nil {
		t.Error("expected error for unknown template")
	}
}

func TestCompileRaw(t *testing.T) {
	svc := newTestService(t)

	result := svc.CompileRaw("안녕하세요 {{name}}님", map[string]any{"name": "민수"})
	if !result.Success {
		t.Fatalf("compile failed: %s", result.Error)
	}
	if !strings.Contains(result.Content, "민수") {
		t.Errorf("unexpected content %q", result.Content)
	}
}

func TestCompilerStatsAccumulate(t *testing.T) {
	svc := newTestService(t)

	svc.CompileRaw("{{a}}", map[string]any{"a": "1"})
	svc.CompileRaw("{{a}}", map[string]any{"a": "2"})

	stats := svc.CompilerStats()
	if stats.Total != 2 {
		t.Errorf("Total = %d, want 2", stats.Total)
	}
	if stats.CacheHits != 1 {
		t.Errorf("CacheHits = %d, want 1", stats.CacheHits)
	}
}

func TestBookmarkLifecycle(t *testing.T) {
	svc := newTestService(t)

	bm := &models.Bookmark{
		Title:       "주간 블로그",
		TemplateID:  "blog-post",
		FinalPrompt: "완성된 프롬프트",
		Selections:  map[string]string{"topic": "AI"},
	}
	if err := svc.SaveBookmark(bm); err != nil {
		t.Fatalf("SaveBookmark failed: %v", err)
	}
	if bm.ID == "" {
		t.Fatal("expected bookmark ID to be assigned")
	}

	list, err := svc.ListBookmarks()
	if err != nil {
		t.Fatalf("ListBookmarks failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 bookmark, got %d", len(list))
	}

	got, err := svc.GetBookmark(bm.ID)
	if err != nil {
		t.Fatalf("GetBookmark failed: %v", err)
	}
	if got.Title != "주간 블로그" {
		t.Errorf("unexpected title %q", got.Title)
	}

	if err := svc.DeleteBookmark(bm.ID); err != nil {
		t.Fatalf("DeleteBookmark failed: %v", err)
	}
	if _, err := svc.GetBookmark(bm.ID); err == nil {
		t.Error("expected error after delete")
	}
}

func TestSaveBookmarkRequiresContent(t *testing.T) {
	svc := newTestService(t)

	err := svc.SaveBookmark(&models.Bookmark{Title: "빈 북마크"})
	if err == nil {
		t.Error("expected validation error for empty prompt")
	}
}
