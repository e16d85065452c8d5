package postprocess

import "regexp"

var (
	bulletGlyphRe    = regexp.MustCompile(`(?m)^([ \t]*)[•·‧⁃▪▫][ \t]*`)
	bulletMarkerRe   = regexp.MustCompile(`(?m)^([ \t]*)[*+][ \t]+`)
	parenNumberRe    = regexp.MustCompile(`(?m)^([ \t]*)\((\d+)\)[ \t]*`)
	headingSpacingRe = regexp.MustCompile(`(?m)^(#{1,6})[ \t]*(.*?)[ \t]*$`)
)

// StandardizeMarkdown normalizes heterogeneous list and heading syntax:
// bullet glyphs and */+ markers become "- ", parenthesized numbering
// becomes "N. ", and heading hashes are followed by exactly one space.
// All four rewrites stay within a single line.
func StandardizeMarkdown(text string) string {
	text = bulletGlyphRe.ReplaceAllString(text, "$1- ")
	text = bulletMarkerRe.ReplaceAllString(text, "$1- ")
	text = parenNumberRe.ReplaceAllString(text, "$1$2. ")
	text = headingSpacingRe.ReplaceAllString(text, "$1 $2")
	return text
}
