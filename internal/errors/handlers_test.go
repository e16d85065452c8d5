package errors

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCLIErrorHandlerFormat(t *testing.T) {
	h := NewCLIErrorHandler(false)

	got := h.FormatError(NotFoundError("Template 'x'"))
	if !strings.Contains(got, "Template 'x' not found") {
		t.Errorf("message lost in formatting: %q", got)
	}
	if !strings.Contains(got, "ERROR") {
		t.Errorf("expected severity marker, got %q", got)
	}

	// Plain errors are wrapped as internal AppErrors first.
	got = h.FormatError(fmt.Errorf("disk on fire"))
	if !strings.Contains(got, "Internal error") {
		t.Errorf("plain error not wrapped as internal: %q", got)
	}
}

func TestCLIErrorHandlerHandleError(t *testing.T) {
	h := NewCLIErrorHandler(false)
	err := h.HandleError(ValidationError("bad input"))
	if err == nil {
		t.Fatal("HandleError returned nil")
	}
	if !strings.Contains(err.Error(), "bad input") {
		t.Errorf("returned error lost the message: %v", err)
	}
}

func TestTUIErrorHandlerFormat(t *testing.T) {
	h := NewTUIErrorHandler(true)
	appErr := ValidationError("field missing").WithDetails("topic is empty")

	got := h.FormatError(appErr)
	if !strings.Contains(got, "field missing") || !strings.Contains(got, "topic is empty") {
		t.Errorf("expected message and details, got %q", got)
	}

	terse := NewTUIErrorHandler(false).FormatError(appErr)
	if strings.Contains(terse, "topic is empty") {
		t.Errorf("details shown while disabled: %q", terse)
	}
}

func TestTUIErrorHandlerLogsToFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PROMPT_FORGE_DIR", dir)

	h := NewTUIErrorHandler(false)
	if err := h.HandleError(NotFoundError("bookmark 'b1'")); err == nil {
		t.Fatal("HandleError returned nil")
	}

	data, err := os.ReadFile(filepath.Join(dir, "logs", "error.log"))
	if err != nil {
		t.Fatalf("error log not written: %v", err)
	}
	if !strings.Contains(string(data), string(ErrCodeNotFound)) {
		t.Errorf("log entry missing error code: %q", data)
	}
}
