package layout

import (
	"strings"

	"github.com/aerissecure/votive/markup"
)

// PageSeparator divides pages in plain-text output.
const PageSeparator = "\n\n--------------------\n\n"

// RenderText renders pages as plain text for copying: each page is its
// title, a blank line, then one line of markup per column in reading order.
// Blank cells are written as tab tokens so the text can be parsed back.
func RenderText(pages []Page) string {
	parts := make([]string, len(pages))
	for i, p := range pages {
		lines := make([]string, len(p.Grid.Columns))
		for j, col := range p.Grid.Columns {
			lines[j] = ColumnLine(col).Markup()
		}
		parts[i] = p.Title + "\n\n" + strings.Join(lines, "\n")
	}
	return strings.Join(parts, PageSeparator)
}

// ColumnLine converts a column back into a token line.
func ColumnLine(c Column) markup.Line {
	line := make(markup.Line, len(c.Cells))
	for i, cell := range c.Cells {
		if cell.Blank {
			line[i] = markup.Token{Kind: markup.Blank}
			continue
		}
		line[i] = markup.Token{Kind: markup.Word, Text: cell.Text, Bold: cell.Bold}
	}
	return line
}
