package postprocess

import "testing"

func TestCleanWhitespace(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"tabs become two spaces", "a\tb", "a  b"},
		{"trailing spaces stripped", "줄 끝   \n다음 줄", "줄 끝\n다음 줄"},
		{"excess newlines collapse", "문단 하나\n\n\n\n문단 둘", "문단 하나\n\n문단 둘"},
		{"double newline kept", "문단 하나\n\n문단 둘", "문단 하나\n\n문단 둘"},
		{"document trimmed", "\n\n  내용  \n\n", "내용"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanWhitespace(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanWhitespaceIdempotent(t *testing.T) {
	input := "a\t줄   \n\n\n\nb"
	once := CleanWhitespace(input)
	if twice := CleanWhitespace(once); once != twice {
		t.Errorf("stage is not idempotent: %q vs %q", once, twice)
	}
}
