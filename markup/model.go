package markup

import (
	"fmt"
	"strings"
)

// Reserved micro-syntax shared by templates and the formatter.
const (
	// BoldMarker prefixes a word that must be emphasised.
	BoldMarker = "^"

	// TabToken stands for one empty layout cell. A literal tab character in
	// composed text is converted to it during tokenization.
	TabToken = "{{TAB}}"
)

// Kind distinguishes words from spacer cells.
type Kind int

const (
	Word Kind = iota
	Blank
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "word"
	case Blank:
		return "blank"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Token is one cell's worth of text after markup has been resolved. Text
// never carries the bold marker.
type Token struct {
	Kind Kind
	Text string
	Bold bool
}

func (t Token) String() string {
	return fmt.Sprintf("Kind: %s, Text: %q, Bold: %t", t.Kind, t.Text, t.Bold)
}

// Line is one column's token stream, top to bottom.
type Line []Token

// Words returns the number of word tokens, ignoring spacers.
func (l Line) Words() int {
	n := 0
	for _, t := range l {
		if t.Kind == Word {
			n++
		}
	}
	return n
}

// Markup renders the line back into the micro-syntax.
func (l Line) Markup() string {
	parts := make([]string, len(l))
	for i, t := range l {
		switch {
		case t.Kind == Blank:
			parts[i] = TabToken
		case t.Bold:
			parts[i] = BoldMarker + t.Text
		default:
			parts[i] = t.Text
		}
	}
	return strings.Join(parts, " ")
}
