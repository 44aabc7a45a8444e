package markup

import "strings"

// Tokenize converts one line of marked-up text into tokens. Tabs and tab
// tokens become Blank tokens; a bold marker is stripped and recorded.
func Tokenize(line string) Line {
	line = strings.ReplaceAll(line, "\t", " "+TabToken+" ")
	fields := strings.Fields(line)

	out := make(Line, 0, len(fields))
	for _, f := range fields {
		if f == TabToken {
			out = append(out, Token{Kind: Blank})
			continue
		}
		bold := strings.HasPrefix(f, BoldMarker)
		text := strings.TrimPrefix(f, BoldMarker)
		if text == "" {
			// a lone marker has nothing to emphasise
			out = append(out, Token{Kind: Blank})
			continue
		}
		out = append(out, Token{Kind: Word, Text: text, Bold: bold})
	}
	return out
}

// Lines splits formatted text on line breaks and tokenizes each line.
func Lines(formatted string) []Line {
	if formatted == "" {
		return nil
	}
	raw := strings.Split(formatted, "\n")
	out := make([]Line, len(raw))
	for i, l := range raw {
		out[i] = Tokenize(l)
	}
	return out
}

// Parse runs Format and then Lines: raw composed text in, token lines out.
func Parse(raw string) []Line {
	return Lines(Format(raw))
}
