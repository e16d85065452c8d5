package postprocess

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	latinHangulRe = regexp.MustCompile(`([A-Za-z0-9])([\x{AC00}-\x{D7A3}\x{1100}-\x{11FF}\x{3130}-\x{318F}])`)
	hangulLatinRe = regexp.MustCompile(`([\x{AC00}-\x{D7A3}\x{1100}-\x{11FF}\x{3130}-\x{318F}])([A-Za-z0-9])`)
)

// OptimizeKorean normalizes Korean prose: full-width punctuation becomes
// ASCII, a single space is inserted at Latin/Hangul run boundaries in both
// directions, and immediately repeated multi-character substrings are
// collapsed.
func OptimizeKorean(text string) string {
	text = strings.NewReplacer("。", ".", "、", ",").Replace(text)
	text = latinHangulRe.ReplaceAllString(text, "$1 $2")
	text = hangulLatinRe.ReplaceAllString(text, "$1 $2")
	return collapseStutters(text)
}

// maxStutterUnit bounds the repeated-substring search; stutters longer
// than this are left alone.
const maxStutterUnit = 12

// collapseStutters reduces "안녕하세요안녕하세요" to a single occurrence.
// Backreferences are not available in RE2, so the scan is done by hand.
// Units that are purely digits or whitespace are skipped: "2020" is a
// year, not a stutter. Units made of a single distinct rune are also
// skipped, so uniform runs like "AAAA" or "ㅋㅋㅋㅋ" pass through intact.
// Runs to a fixpoint so one collapse exposing another repeat does not
// leave the stage non-idempotent.
func collapseStutters(text string) string {
	for {
		next := collapseStuttersOnce(text)
		if next == text {
			return text
		}
		text = next
	}
}

func collapseStuttersOnce(text string) string {
	runes := []rune(text)
	var out []rune
	i := 0
	for i < len(runes) {
		unit := stutterUnitAt(runes, i)
		if unit == 0 {
			out = append(out, runes[i])
			i++
			continue
		}
		out = append(out, runes[i:i+unit]...)
		i += unit
		for i+unit <= len(runes) && runesEqual(runes[i:i+unit], out[len(out)-unit:]) {
			i += unit
		}
	}
	return string(out)
}

// stutterUnitAt returns the length of the longest repeated unit starting
// at position i, or 0 if none.
func stutterUnitAt(runes []rune, i int) int {
	max := maxStutterUnit
	if rem := (len(runes) - i) / 2; rem < max {
		max = rem
	}
	for unit := max; unit >= 2; unit-- {
		if runesEqual(runes[i:i+unit], runes[i+unit:i+2*unit]) && !trivialUnit(runes[i:i+unit]) {
			return unit
		}
	}
	return 0
}

func trivialUnit(unit []rune) bool {
	allFiller := true
	uniform := true
	for i, r := range unit {
		if !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			allFiller = false
		}
		if i > 0 && r != unit[0] {
			uniform = false
		}
	}
	return allFiller || uniform
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
