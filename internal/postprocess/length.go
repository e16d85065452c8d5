package postprocess

import "strings"

// DefaultMaxLength is the production cap on compiled prompt length.
const DefaultMaxLength = 4000

// GuidanceSuffix is appended when a result falls short of the configured
// minimum; the text asks the author to add more detail.
const GuidanceSuffix = "\n\n**더 자세한 내용을 추가해 주세요.**"

// minPartialParagraph is the smallest slice of a paragraph worth keeping
// when truncating; anything shorter is dropped wholesale.
const minPartialParagraph = 20

const ellipsis = "..."

// EnforceLength applies the hard length cap. Oversized text is cut at
// paragraph boundaries: whole paragraphs are kept while they fit, then the
// first overflowing paragraph is partially included (ending in "...") only
// when at least minPartialParagraph characters of it fit. Undersized text
// gets the guidance suffix appended and is never truncated further.
// Lengths are counted in runes.
func EnforceLength(text string, max, min int) (string, bool) {
	if max > 0 && runeLen(text) > max {
		return truncateParagraphs(text, max), true
	}
	if min > 0 && runeLen(strings.TrimSpace(text)) < min {
		return text + GuidanceSuffix, false
	}
	return text, false
}

func truncateParagraphs(text string, max int) string {
	paragraphs := strings.Split(text, "\n\n")
	var kept []string
	used := 0

	for _, para := range paragraphs {
		sep := 0
		if len(kept) > 0 {
			sep = 2 // the "\n\n" separator
		}
		length := runeLen(para)
		if used+sep+length <= max {
			kept = append(kept, para)
			used += sep + length
			continue
		}

		room := max - used - sep - len(ellipsis)
		if room >= minPartialParagraph {
			runes := []rune(para)
			kept = append(kept, string(runes[:room])+ellipsis)
		}
		break
	}

	return strings.Join(kept, "\n\n")
}

func runeLen(s string) int {
	return len([]rune(s))
}
