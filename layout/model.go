package layout

import (
	"fmt"
	"strings"
)

// Intermediate representation for a laid-out petition.
//
// Columns are stored in reading order: Columns[0] is the first line of the
// composed text and is printed rightmost. Renderers that can only place
// cells left to right use LeftToRight.

// Cell is one slot in a column: a word, optionally emphasised, or a blank
// spacer.
type Cell struct {
	Text  string
	Bold  bool
	Blank bool
}

func (c Cell) String() string {
	return fmt.Sprintf("Text: %q, Bold: %t, Blank: %t", c.Text, c.Bold, c.Blank)
}

// Column is a top-to-bottom run of cells. It may hold fewer cells than the
// grid has rows; the remainder is implicit blank padding.
type Column struct {
	Cells []Cell
}

func (c Column) String() string {
	return fmt.Sprintf("Cells: %d", len(c.Cells))
}

// Text joins the column's words with spaces, dropping blanks and emphasis.
func (c Column) Text() string {
	words := make([]string, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if !cell.Blank {
			words = append(words, cell.Text)
		}
	}
	return strings.Join(words, " ")
}

// Grid is the complete layout of one page.
type Grid struct {
	Columns []Column
	Cols    int     // len(Columns)
	Rows    int     // max cells in any column, floored at the engine minimum
	Scale   float64 // font size hint for renderers, in percent of page width
}

func (g Grid) String() string {
	return fmt.Sprintf("Cols: %d, Rows: %d, Scale: %.4f", g.Cols, g.Rows, g.Scale)
}

// At returns the cell at column col, row row. Padding slots and
// out-of-range positions are blank.
func (g Grid) At(col, row int) Cell {
	if col < 0 || col >= len(g.Columns) || row < 0 {
		return Cell{Blank: true}
	}
	cells := g.Columns[col].Cells
	if row >= len(cells) {
		return Cell{Blank: true}
	}
	return cells[row]
}

// LeftToRight returns the columns in visual left-to-right order.
func (g Grid) LeftToRight() []Column {
	out := make([]Column, len(g.Columns))
	for i, c := range g.Columns {
		out[len(g.Columns)-1-i] = c
	}
	return out
}

// Page is a laid-out document ready for a renderer.
type Page struct {
	ID    string
	Title string
	Grid  Grid
}

func (p Page) String() string {
	return fmt.Sprintf("ID: %s, Title: %q, Grid: [%s]", p.ID, p.Title, p.Grid.String())
}
