package postprocess

import (
	"strings"
	"testing"
)

func TestEnforceLengthWithinBounds(t *testing.T) {
	text := "적당한 길이의 본문입니다. 자르지도 늘리지도 않습니다."
	got, truncated := EnforceLength(text, 4000, 10)
	if truncated {
		t.Error("text within bounds reported as truncated")
	}
	if got != text {
		t.Errorf("text within bounds was modified: %q", got)
	}
}

func TestEnforceLengthTruncatesWholeParagraphs(t *testing.T) {
	p1 := strings.Repeat("가", 100)
	p2 := strings.Repeat("나", 100)
	p3 := strings.Repeat("다", 100)
	p4 := strings.Repeat("라", 100)
	text := strings.Join([]string{p1, p2, p3, p4}, "\n\n")

	got, truncated := EnforceLength(text, 250, 0)
	if !truncated {
		t.Fatal("expected truncation")
	}
	if l := len([]rune(got)); l > 250 {
		t.Errorf("result length %d exceeds cap", l)
	}
	// Whole paragraphs must survive intact as a strict prefix.
	if !strings.HasPrefix(text, strings.TrimSuffix(got, "...")) {
		t.Errorf("truncated result is not a prefix of the input: %q", got)
	}
	kept := strings.Split(got, "\n\n")
	if len(kept) != 3 || kept[0] != p1 || kept[1] != p2 {
		t.Fatalf("expected two whole paragraphs plus one partial, got %d parts", len(kept))
	}
	if !strings.HasSuffix(kept[2], "...") {
		t.Errorf("partial paragraph must end in ellipsis: %q", kept[2])
	}
}

func TestEnforceLengthSkipsTinyPartial(t *testing.T) {
	// Second paragraph would only fit with fewer than 20 characters, so
	// it is dropped wholesale.
	first := strings.Repeat("가", 95)
	second := strings.Repeat("나", 100)
	text := first + "\n\n" + second

	got, truncated := EnforceLength(text, 105, 0)
	if !truncated {
		t.Fatal("expected truncation")
	}
	if got != first {
		t.Errorf("expected only the first paragraph, got %q", got)
	}
}

func TestEnforceLengthPadsShortText(t *testing.T) {
	got, truncated := EnforceLength("짧다", 4000, 100)
	if truncated {
		t.Error("padding must not report truncation")
	}
	if !strings.HasSuffix(got, GuidanceSuffix) {
		t.Errorf("expected guidance suffix, got %q", got)
	}
	if !strings.HasPrefix(got, "짧다") {
		t.Errorf("original text must be preserved: %q", got)
	}
}

func TestEnforceLengthIdempotentWithinBounds(t *testing.T) {
	text := strings.Repeat("본문 ", 30)
	once, _ := EnforceLength(text, 4000, 10)
	twice, _ := EnforceLength(once, 4000, 10)
	if once != twice {
		t.Errorf("stage is not idempotent: %q vs %q", once, twice)
	}
}
