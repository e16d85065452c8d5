package postprocess

import (
	"regexp"
	"strings"
)

var (
	trailingSpaceRe = regexp.MustCompile(`(?m)[ \t]+$`)
	excessNewlineRe = regexp.MustCompile(`\n{3,}`)
)

// CleanWhitespace converts tabs to two spaces, strips trailing whitespace
// per line, collapses runs of 3+ newlines down to one blank line, and trims
// the whole document.
func CleanWhitespace(text string) string {
	text = strings.ReplaceAll(text, "\t", "  ")
	text = trailingSpaceRe.ReplaceAllString(text, "")
	text = excessNewlineRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
