package postprocess

import (
	"regexp"
	"strings"
)

var (
	frontmatterRe = regexp.MustCompile(`(?s)\A---\n.*?\n---\n?`)
	htmlTagRe     = regexp.MustCompile(`</?[A-Za-z][^>]*>`)

	// Everything outside this set is dropped: word characters, Hangul
	// syllables and jamo, whitespace, and common punctuation. The [ ]
	// pair stays so unresolved placeholders remain visible. The set is
	// ASCII/Hangul-centric; other scripts are out of scope.
	disallowedRe = regexp.MustCompile(`[^\w\s.,!?:;()\-'"#\[\]` +
		`\x{AC00}-\x{D7A3}\x{1100}-\x{11FF}\x{3130}-\x{318F}]`)
)

// CleanupMetadata strips a leading YAML frontmatter block, HTML tags, and
// any character outside the allow-list.
func CleanupMetadata(text string) string {
	text = frontmatterRe.ReplaceAllString(text, "")
	text = htmlTagRe.ReplaceAllString(text, "")
	text = disallowedRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
