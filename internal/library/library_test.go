package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/promptforge/prompt-forge/internal/storage"
)

func TestEmbeddedCatalog(t *testing.T) {
	lib, err := New(nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	templates := lib.List()
	if len(templates) < 5 {
		t.Fatalf("expected at least 5 embedded templates, got %d", len(templates))
	}

	for _, id := range []string{"blog-post", "code-review", "marketing-copy", "study-plan", "meeting-summary"} {
		template, err := lib.Get(id)
		if err != nil {
			t.Errorf("Get(%q) failed: %v", id, err)
			continue
		}
		if template.Name == "" {
			t.Errorf("template %q has no name", id)
		}
		if template.Body == "" {
			t.Errorf("template %q has no body", id)
		}
	}
}

func TestGetUnknownTemplate(t *testing.T) {
	lib, err := New(nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := lib.Get("does-not-exist"); err == nil {
		t.Error("expected error for unknown template id")
	}
}

func TestCategories(t *testing.T) {
	lib, err := New(nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	categories := lib.Categories()
	if len(categories) == 0 {
		t.Fatal("expected at least one category")
	}
	for i := 1; i < len(categories); i++ {
		if categories[i-1] >= categories[i] {
			t.Errorf("categories not sorted: %v", categories)
		}
	}

	writing := lib.ListByCategory("writing")
	if len(writing) == 0 {
		t.Error("expected templates in category writing")
	}
	for _, template := range writing {
		if template.Category != "writing" {
			t.Errorf("ListByCategory returned template in category %q", template.Category)
		}
	}
}

func TestUserTemplateShadowsEmbedded(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := storage.NewStorage(tmpDir)
	if err != nil {
		t.Fatalf("NewStorage failed: %v", err)
	}
	if err := store.InitLibrary(); err != nil {
		t.Fatalf("InitLibrary failed: %v", err)
	}

	custom := `---
id: blog-post
category: writing
name: 내 블로그 템플릿
description: 사용자 정의 버전
---

{{topic}}에 대해 작성하세요.
`
	path := filepath.Join(tmpDir, "templates", "blog-post.md")
	if err := os.WriteFile(path, []byte(custom), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	lib, err := New(store)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	template, err := lib.Get("blog-post")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if template.Name != "내 블로그 템플릿" {
		t.Errorf("expected user template to shadow embedded one, got name %q", template.Name)
	}
}
