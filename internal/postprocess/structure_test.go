package postprocess

import "testing"

func TestNormalizeStructureHeadings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "heading gains blank line",
			input: "# 제목\n본문",
			want:  "# 제목\n\n본문",
		},
		{
			name:  "extra blanks after heading collapse",
			input: "# 제목\n\n\n\n본문",
			want:  "# 제목\n\n본문",
		},
		{
			name:  "trailing heading gets no blank",
			input: "본문\n# 제목",
			want:  "본문\n# 제목",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeStructure(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeStructureListIndent(t *testing.T) {
	input := "  - 들여쓴 항목\n\t2. 번호 항목\n일반 줄"
	want := "- 들여쓴 항목\n2. 번호 항목\n일반 줄"
	if got := NormalizeStructure(input); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalizeStructureCodeBlocksPassThrough(t *testing.T) {
	input := "```go\n  - not a list\n# not a heading\n```\n# 진짜 제목\n본문"
	want := "```go\n  - not a list\n# not a heading\n```\n# 진짜 제목\n\n본문"
	if got := NormalizeStructure(input); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalizeStructureIdempotent(t *testing.T) {
	input := "# 제목\n\n\n본문\n  - 항목\n```\n  raw\n```"
	once := NormalizeStructure(input)
	if twice := NormalizeStructure(once); once != twice {
		t.Errorf("stage is not idempotent: %q vs %q", once, twice)
	}
}
