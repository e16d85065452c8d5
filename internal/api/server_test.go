package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/promptforge/prompt-forge/internal/library"
	"github.com/promptforge/prompt-forge/internal/service"
	"github.com/promptforge/prompt-forge/internal/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
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

	svc := service.NewServiceWithLibrary(lib, store)
	ts := httptest.NewServer(NewAPIServer(svc, 0).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func decodeResponse(t *testing.T, resp *http.Response) APIResponse {
	t.Helper()
	defer resp.Body.Close()

	var envelope APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return envelope
}

func TestListTemplates(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/templates")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	envelope := decodeResponse(t, resp)
	if !envelope.Success {
		t.Fatal("expected success envelope")
	}
	templates, ok := envelope.Data.([]interface{})
	if !ok || len(templates) == 0 {
		t.Fatalf("expected template list, got %T", envelope.Data)
	}
}

func TestGetTemplate(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/templates/blog-post")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	envelope := decodeResponse(t, resp)
	if !envelope.Success {
		t.Fatal("expected success envelope")
	}

	resp, err = http.Get(ts.URL + "/api/v1/templates/missing")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown template should 404, got %d", resp.StatusCode)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/search")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing query should 400, got %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/api/v1/search?q=blog")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCompileEndpoint(t *testing.T) {
	ts := newTestServer(t)

	body := `{"templateId":"blog-post","selections":{"topic":"AI 도구 활용법"}}`
	resp, err := http.Post(ts.URL+"/api/v1/compile", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	envelope := decodeResponse(t, resp)
	result, ok := envelope.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("expected result object, got %T", envelope.Data)
	}
	if result["success"] != true {
		t.Fatalf("compile failed: %v", result["error"])
	}
	content, _ := result["content"].(string)
	if !strings.Contains(content, "AI 도구 활용법") {
		t.Error("compiled content missing the topic")
	}
}

func TestCompileRawTemplate(t *testing.T) {
	ts := newTestServer(t)

	body := `{"template":"안녕하세요 {{name}}님","selections":{"name":"민수"}}`
	resp, err := http.Post(ts.URL+"/api/v1/compile", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	envelope := decodeResponse(t, resp)
	result := envelope.Data.(map[string]interface{})
	if content, _ := result["content"].(string); !strings.Contains(content, "민수") {
		t.Errorf("unexpected content %v", result["content"])
	}
}

func TestCompileValidatesBody(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/v1/compile", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty request should 400, got %d", resp.StatusCode)
	}
}

func TestBookmarkEndpoints(t *testing.T) {
	ts := newTestServer(t)

	body := `{"title":"저장된 프롬프트","templateId":"blog-post","finalPrompt":"완성된 내용"}`
	resp, err := http.Post(ts.URL+"/api/v1/bookmarks", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	envelope := decodeResponse(t, resp)
	saved := envelope.Data.(map[string]interface{})
	id, _ := saved["id"].(string)
	if id == "" {
		t.Fatal("expected assigned bookmark id")
	}

	resp, err = http.Get(ts.URL + "/api/v1/bookmarks/" + id)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/v1/bookmarks/"+id, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/api/v1/bookmarks/" + id)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("deleted bookmark should 404, got %d", resp.StatusCode)
	}
}

func TestHealthAndStats(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/health")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	envelope := decodeResponse(t, resp)
	health := envelope.Data.(map[string]interface{})
	if health["status"] != "ok" {
		t.Errorf("unexpected health %v", health)
	}

	resp, err = http.Get(ts.URL + "/api/v1/stats")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("stats status = %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/v1/templates", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("POST to templates should be rejected, got %d", resp.StatusCode)
	}
}
