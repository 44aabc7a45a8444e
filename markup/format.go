package markup

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Chunking policy for Format. Tuned for column balance on the printed page,
// not derived from glyph metrics.
const (
	shortLineWords = 5 // lines with at most this many words are left alone
	chunkWords     = 4 // a chunk closes at this many words
	longWordRunes  = 6 // a word longer than this closes a chunk of 2
	longChunkWords = 2
)

var clauseBreakRe = regexp.MustCompile(`([,.;])\s*`)

// Format turns free text into column-sized lines separated by "\n".
//
// Text that already contains a line break is considered laid out by hand
// and is returned unchanged. Otherwise the text is broken after every comma,
// period or semicolon, and each resulting line with more than five words is
// cut into chunks of four words, or two when the second word is long.
func Format(text string) string {
	if text == "" || strings.Contains(text, "\n") {
		return text
	}

	broken := clauseBreakRe.ReplaceAllString(text, "$1\n")
	lines := strings.Split(broken, "\n")
	for i, line := range lines {
		lines[i] = chunkLine(line)
	}
	return strings.Join(lines, "\n")
}

func chunkLine(line string) string {
	words := strings.Fields(line)
	if len(words) <= shortLineWords {
		return line
	}

	var chunks []string
	var cur []string
	for _, w := range words {
		cur = append(cur, w)
		if len(cur) >= chunkWords || (len(cur) >= longChunkWords && plainLen(w) > longWordRunes) {
			chunks = append(chunks, strings.Join(cur, " "))
			cur = nil
		}
	}
	if len(cur) > 0 {
		chunks = append(chunks, strings.Join(cur, " "))
	}
	return strings.Join(chunks, "\n")
}

// plainLen counts the runes a word displays, without the bold marker.
func plainLen(w string) int {
	return utf8.RuneCountInString(strings.TrimPrefix(w, BoldMarker))
}

// MarkBold prefixes every word of text with the bold marker.
func MarkBold(text string) string {
	words := strings.Fields(text)
	for i, w := range words {
		words[i] = BoldMarker + w
	}
	return strings.Join(words, " ")
}

// StripClausePunct removes commas, periods and semicolons, used when free
// text is embedded in a column that must not be re-broken.
func StripClausePunct(text string) string {
	return strings.NewReplacer(",", "", ".", "", ";", "").Replace(text)
}
