package postprocess

import (
	"strings"
	"testing"
)

func TestCleanupMetadataFrontmatter(t *testing.T) {
	input := "---\nid: sample\ncategory: writing\n---\n본문 시작"
	got := CleanupMetadata(input)
	if strings.Contains(got, "id: sample") {
		t.Errorf("frontmatter was not stripped: %q", got)
	}
	if !strings.Contains(got, "본문 시작") {
		t.Errorf("body was lost: %q", got)
	}
}

func TestCleanupMetadataHTMLTags(t *testing.T) {
	got := CleanupMetadata("<div>내용</div> 그리고 <br/> 줄바꿈")
	if strings.Contains(got, "<") || strings.Contains(got, ">") {
		t.Errorf("HTML tags survived: %q", got)
	}
	if !strings.Contains(got, "내용") {
		t.Errorf("tag contents were lost: %q", got)
	}
}

func TestCleanupMetadataAllowList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"placeholder brackets kept", "값: [topic] 입니다", "값: [topic] 입니다"},
		{"common punctuation kept", `질문? 답: "예", (아니오)! #태그`, `질문? 답: "예", (아니오)! #태그`},
		{"emoji stripped", "좋아요 👍 완료", "좋아요  완료"},
		{"asterisks stripped", "**강조**", "강조"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanupMetadata(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanupMetadataIdempotent(t *testing.T) {
	input := "---\nk: v\n---\n내용 <b>강조</b> 👍 [key]"
	once := CleanupMetadata(input)
	if twice := CleanupMetadata(once); once != twice {
		t.Errorf("stage is not idempotent: %q vs %q", once, twice)
	}
}
