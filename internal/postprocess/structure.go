package postprocess

import (
	"regexp"
	"strings"
)

var (
	headingLineRe   = regexp.MustCompile(`^#{1,6} `)
	indentedItemRe  = regexp.MustCompile(`^[ \t]+(- |\d+\. )`)
)

// NormalizeStructure walks the document line by line, tracking fenced code
// blocks. Outside a fence, each heading is followed by exactly one blank
// line and list items lose their leading indentation. Fenced lines pass
// through untouched. Nested lists are deliberately flattened; the catalog
// templates do not use them.
func NormalizeStructure(text string) string {
	lines := strings.Split(text, "\n")
	var out []string
	inCode := false

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if strings.HasPrefix(line, "```") {
			inCode = !inCode
			out = append(out, line)
			continue
		}
		if inCode {
			out = append(out, line)
			continue
		}

		if headingLineRe.MatchString(line) {
			out = append(out, line)
			// Swallow any blank run that follows, then restore a
			// single blank line when more content remains.
			j := i + 1
			for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
				j++
			}
			if j < len(lines) {
				out = append(out, "")
			}
			i = j - 1
			continue
		}

		if indentedItemRe.MatchString(line) {
			out = append(out, strings.TrimLeft(line, " \t"))
			continue
		}

		out = append(out, line)
	}

	return strings.Join(out, "\n")
}
