package postprocess

import (
	"strings"
	"testing"
)

func TestRunOrdersStages(t *testing.T) {
	input := "#제목\n• English한글 항목\n\n\n\n끝。"
	got, truncated := Run(input, Options{MaxLength: 4000, Korean: true})
	if truncated {
		t.Error("unexpected truncation")
	}
	want := "# 제목\n\n- English 한글 항목\n\n끝."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRunKeepsParagraphAfterEmptyHeading(t *testing.T) {
	// A bare heading run must not swallow the following paragraph.
	got, _ := Run("##\n\n본문", Options{MaxLength: 4000, Korean: true})
	want := "##\n\n본문"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRunCapsLength(t *testing.T) {
	input := strings.Repeat("A", 5000)
	got, truncated := Run(input, Options{MaxLength: DefaultMaxLength, Korean: true})
	if !truncated {
		t.Error("expected truncation flag")
	}
	if l := len([]rune(got)); l > DefaultMaxLength {
		t.Errorf("result length %d exceeds %d", l, DefaultMaxLength)
	}
}

func TestRunMinLengthGuidance(t *testing.T) {
	got, truncated := Run("짧은 글", Options{MaxLength: 4000, MinLength: 100, Korean: true})
	if truncated {
		t.Error("padding must not report truncation")
	}
	// The metadata cleanup stage strips the bold markers from the
	// guidance suffix; the text itself must survive.
	if !strings.Contains(got, "더 자세한 내용을 추가해 주세요.") {
		t.Errorf("expected guidance text, got %q", got)
	}
}

func TestRunKoreanStageGated(t *testing.T) {
	got, _ := Run("English한글", Options{MaxLength: 4000, Korean: false})
	if got != "English한글" {
		t.Errorf("Korean stage ran while disabled: %q", got)
	}
}

func TestPipelineIdempotentOnCleanText(t *testing.T) {
	inputs := []string{
		"# 제목\n\n- 항목 하나\n- 항목 둘\n\n본문이 이어집니다.",
		"일반 문단 텍스트입니다.",
		"1. 첫째\n2. 둘째",
	}
	opts := Options{MaxLength: 4000, MinLength: 1, Korean: true}
	for _, input := range inputs {
		once, _ := Run(input, opts)
		twice, _ := Run(once, opts)
		if once != twice {
			t.Errorf("pipeline is not idempotent for %q: %q vs %q", input, once, twice)
		}
		if once != input {
			t.Errorf("already-clean text was modified: %q -> %q", input, once)
		}
	}
}
