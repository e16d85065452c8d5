package validation

import (
	"strings"
	"testing"

	"github.com/promptforge/prompt-forge/internal/models"
)

func testTemplate() *models.Template {
	return &models.Template{
		ID:       "blog-post",
		Category: "writing",
		Name:     "블로그 글 작성",
		Body:     "{{topic}}에 대해 작성하세요.",
		Fields: []models.Field{
			{Key: "topic", Label: "주제", Kind: "text", Required: true},
			{Key: "tone", Label: "어조", Kind: "select", Options: []string{"친근한", "격식 있는"}, Default: "친근한"},
			{Key: "cta", Label: "행동 유도", Kind: "text", MaxLength: 10},
		},
	}
}

func TestValidateSelections(t *testing.T) {
	v := NewValidator()
	template := testTemplate()

	tests := []struct {
		name       string
		selections map[string]string
		valid      bool
		errCode    string
	}{
		{
			name:       "all valid",
			selections: map[string]string{"topic": "AI 도구 활용법", "tone": "친근한"},
			valid:      true,
		},
		{
			name:       "missing required",
			selections: map[string]string{"tone": "친근한"},
			valid:      false,
			errCode:    "REQUIRED_FIELD_MISSING",
		},
		{
			name:       "required is whitespace",
			selections: map[string]string{"topic": "   "},
			valid:      false,
			errCode:    "REQUIRED_FIELD_MISSING",
		},
		{
			name:       "invalid option",
			selections: map[string]string{"topic": "주제", "tone": "냉소적인"},
			valid:      false,
			errCode:    "INVALID_OPTION",
		},
		{
			name:       "too long",
			selections: map[string]string{"topic": "주제", "cta": strings.Repeat("가", 11)},
			valid:      false,
			errCode:    "MAX_LENGTH_VIOLATION",
		},
		{
			name:       "max length counts runes not bytes",
			selections: map[string]string{"topic": "주제", "cta": strings.Repeat("가", 10)},
			valid:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.ValidateSelections(template, tt.selections)
			if result.Valid != tt.valid {
				t.Fatalf("Valid = %v, want %v (errors: %v)", result.Valid, tt.valid, result.Errors)
			}
			if tt.errCode != "" {
				found := false
				for _, e := range result.Errors {
					if e.Code == tt.errCode {
						found = true
					}
				}
				if !found {
					t.Errorf("expected error code %s, got %v", tt.errCode, result.Errors)
				}
			}
		})
	}
}

func TestValidateSelectionsWarnsOnUnknownKeys(t *testing.T) {
	v := NewValidator()
	result := v.ValidateSelections(testTemplate(), map[string]string{
		"topic":   "주제",
		"unknown": "값",
	})

	if !result.Valid {
		t.Fatalf("unknown keys should not invalidate: %v", result.Errors)
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Field != "unknown" {
		t.Errorf("expected warning about unknown key, got %v", result.Warnings)
	}
}

func TestValidateTemplate(t *testing.T) {
	v := NewValidator()

	good := testTemplate()
	if result := v.ValidateTemplate(good); !result.Valid {
		t.Errorf("expected valid template, got %v", result.Errors)
	}

	badID := testTemplate()
	badID.ID = "Blog Post!"
	if result := v.ValidateTemplate(badID); result.Valid {
		t.Error("expected invalid id to fail")
	}

	emptyBody := testTemplate()
	emptyBody.Body = "  \n"
	if result := v.ValidateTemplate(emptyBody); result.Valid {
		t.Error("expected empty body to fail")
	}

	duplicate := testTemplate()
	duplicate.Fields = append(duplicate.Fields, models.Field{Key: "topic"})
	if result := v.ValidateTemplate(duplicate); result.Valid {
		t.Error("expected duplicate field key to fail")
	}

	badLimits := testTemplate()
	badLimits.Limits = models.LengthLimits{Max: 100, Min: 200}
	if result := v.ValidateTemplate(badLimits); result.Valid {
		t.Error("expected min > max to fail")
	}

	selectNoOptions := testTemplate()
	selectNoOptions.Fields = []models.Field{{Key: "choice", Kind: "select"}}
	result := v.ValidateTemplate(selectNoOptions)
	if !result.Valid {
		t.Errorf("select without options should only warn: %v", result.Errors)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected warning for select without options")
	}
}

func TestToAppError(t *testing.T) {
	v := NewValidator()

	valid := v.ValidateSelections(testTemplate(), map[string]string{"topic": "주제"})
	if valid.ToAppError() != nil {
		t.Error("valid result should convert to nil error")
	}

	invalid := v.ValidateSelections(testTemplate(), map[string]string{})
	appErr := invalid.ToAppError()
	if appErr == nil {
		t.Fatal("invalid result should convert to an AppError")
	}
	if !strings.Contains(appErr.Details, "topic") {
		t.Errorf("details should mention the failing field, got %q", appErr.Details)
	}
}
