package docx

import (
	"fmt"
	"strings"

	"github.com/unidoc/unioffice/document"

	"github.com/aerissecure/votive/layout"
)

// Intermediate representation for a petition read back from DOCX.
//
// Each page is written as a title paragraph followed by a table whose
// cells hold one word each, left to right, so the model only keeps text
// and emphasis.

// RunStyle captures the character formatting that matters for petitions.
type RunStyle struct {
	FontSizePt float64
	Bold       bool
}

func (s RunStyle) String() string {
	return fmt.Sprintf("FontSizePt: %f, Bold: %t", s.FontSizePt, s.Bold)
}

// RenderRun represents a single run (\<w:r>) within a paragraph.
type RenderRun struct {
	Run   document.Run
	Text  string
	Style RunStyle
}

func (r RenderRun) String() string {
	return fmt.Sprintf("Text: %q, Style: [%s]", r.Text, r.Style.String())
}

// RenderParagraph is the IR for a paragraph.
type RenderParagraph struct {
	Paragraph document.Paragraph
	Runs      []RenderRun
}

func (p RenderParagraph) String() string {
	return fmt.Sprintf("Runs: %d, Text: %q", len(p.Runs), p.Text())
}

// Text concatenates the paragraph's runs.
func (p RenderParagraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Bold reports whether any run carrying text is bold.
func (p RenderParagraph) Bold() bool {
	for _, r := range p.Runs {
		if r.Text != "" && r.Style.Bold {
			return true
		}
	}
	return false
}

// RenderTableCell is the IR for a single table cell.
type RenderTableCell struct {
	Paragraphs []RenderParagraph
}

func (c RenderTableCell) String() string {
	return fmt.Sprintf("Paragraphs: %d", len(c.Paragraphs))
}

// Cell converts the table cell to a grid cell. A cell without text is blank.
func (c RenderTableCell) Cell() layout.Cell {
	var words []string
	bold := false
	for _, p := range c.Paragraphs {
		if t := strings.TrimSpace(p.Text()); t != "" {
			words = append(words, t)
			bold = bold || p.Bold()
		}
	}
	if len(words) == 0 {
		return layout.Cell{Blank: true}
	}
	return layout.Cell{Text: strings.Join(words, " "), Bold: bold}
}

// RenderTableRow represents a row within a table.
type RenderTableRow struct {
	Cells []RenderTableCell
}

func (r RenderTableRow) String() string {
	return fmt.Sprintf("Cells: %d", len(r.Cells))
}

// RenderTable is the IR for a table, rows in order.
type RenderTable struct {
	Rows []RenderTableRow
}

func (t RenderTable) String() string {
	return fmt.Sprintf("Rows: %d", len(t.Rows))
}

// DocumentBlock represents a top-level block element in the DOCX body,
// either a paragraph or a table. Exactly one of Paragraph/Table is non-nil.
type DocumentBlock struct {
	Paragraph *RenderParagraph
	Table     *RenderTable
}

type DocumentModel struct {
	Blocks []DocumentBlock
}

func (d DocumentModel) String() string {
	return fmt.Sprintf("Blocks: %d", len(d.Blocks))
}

// Pages rebuilds the laid-out pages: every table becomes one page titled by
// the last non-empty paragraph before it. Table columns are read right to
// left back into reading order. IDs are not stored in DOCX and are left
// empty.
func (d DocumentModel) Pages() []layout.Page {
	var (
		pages []layout.Page
		title string
	)
	engine := layout.NewEngine()
	for _, blk := range d.Blocks {
		switch {
		case blk.Paragraph != nil:
			if t := strings.TrimSpace(blk.Paragraph.Text()); t != "" {
				title = t
			}
		case blk.Table != nil:
			grid := tableGrid(*blk.Table)
			grid.Scale = engine.Scale(grid.Cols, grid.Rows)
			pages = append(pages, layout.Page{Title: title, Grid: grid})
			title = ""
		}
	}
	return pages
}

func tableGrid(t RenderTable) layout.Grid {
	cols := 0
	for _, r := range t.Rows {
		cols = max(cols, len(r.Cells))
	}
	g := layout.Grid{Columns: make([]layout.Column, cols), Cols: cols, Rows: len(t.Rows)}
	for ri, r := range t.Rows {
		for ci, c := range r.Cells {
			col := &g.Columns[cols-1-ci]
			cell := c.Cell()
			if cell.Blank {
				continue
			}
			for len(col.Cells) < ri {
				col.Cells = append(col.Cells, layout.Cell{Blank: true})
			}
			col.Cells = append(col.Cells, cell)
		}
	}
	return g
}
