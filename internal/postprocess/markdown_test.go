package postprocess

import "testing"

func TestStandardizeMarkdownBullets(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"dot glyph", "• 첫 번째", "- 첫 번째"},
		{"middle dot", "· 두 번째", "- 두 번째"},
		{"hyphen bullet glyph", "⁃ 항목", "- 항목"},
		{"square glyph", "▪ 항목", "- 항목"},
		{"asterisk marker", "* 항목", "- 항목"},
		{"plus marker", "+ 항목", "- 항목"},
		{"already normalized", "- 항목", "- 항목"},
		{"paren numbering", "(1) 첫 단계", "1. 첫 단계"},
		{"paren numbering two digit", "(12) 열두 번째", "12. 열두 번째"},
		{"bold is not a bullet", "**강조** 텍스트", "**강조** 텍스트"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StandardizeMarkdown(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStandardizeMarkdownHeadings(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"#제목", "# 제목"},
		{"##   소제목  ", "## 소제목"},
		{"# 이미 정상", "# 이미 정상"},
		{"# 제목\n\n본문", "# 제목\n\n본문"},
		{"##\n\n본문", "## \n\n본문"},
	}

	for _, tt := range tests {
		if got := StandardizeMarkdown(tt.input); got != tt.want {
			t.Errorf("StandardizeMarkdown(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestStandardizeMarkdownIdempotent(t *testing.T) {
	input := "• 하나\n(2) 둘\n#제목\n* 셋"
	once := StandardizeMarkdown(input)
	twice := StandardizeMarkdown(once)
	if once != twice {
		t.Errorf("stage is not idempotent: %q vs %q", once, twice)
	}
}
