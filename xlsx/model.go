package xlsx

import (
	"fmt"
	"strings"

	"github.com/unidoc/unioffice/spreadsheet"

	"github.com/aerissecure/votive/layout"
)

// Intermediate representation for a petition read back from XLSX. Row 1
// of every sheet holds the page title; the grid starts on row 2.

// CellStyle captures the font attributes written for petition words.
type CellStyle struct {
	FontFamily string
	FontSizePt float64
	Bold       bool
}

func (s CellStyle) String() string {
	return fmt.Sprintf("FontFamily: %s, FontSizePt: %f, Bold: %t", s.FontFamily, s.FontSizePt, s.Bold)
}

// RenderCell is the IR for a single non-empty cell.
type RenderCell struct {
	Cell  spreadsheet.Cell
	Ref   string // e.g. "A1"
	Value string
	Style CellStyle
}

func (c RenderCell) String() string {
	return fmt.Sprintf("Ref: %s, Value: %s, Style: %s", c.Ref, c.Value, c.Style.String())
}

// RenderRow represents one row in a sheet.
type RenderRow struct {
	Cells []*RenderCell // length == column count of the sheet; nil for empty cells
}

func (r RenderRow) String() string {
	return fmt.Sprintf("Cells: %d", len(r.Cells))
}

// RenderSheet is the intermediate representation of a worksheet.
type RenderSheet struct {
	Name string
	Cols int
	Rows []RenderRow // in order, starting at row 1
}

func (s RenderSheet) String() string {
	return fmt.Sprintf("Name: %s, Cols: %d, Rows: %d", s.Name, s.Cols, len(s.Rows))
}

// Page rebuilds the laid-out page. The sheet name carries the page id and
// columns are read right to left back into reading order.
func (s RenderSheet) Page() layout.Page {
	p := layout.Page{ID: pageID(s.Name)}
	if len(s.Rows) > 0 && len(s.Rows[0].Cells) > 0 && s.Rows[0].Cells[0] != nil {
		p.Title = s.Rows[0].Cells[0].Value
	}

	g := layout.Grid{Columns: make([]layout.Column, s.Cols), Cols: s.Cols, Rows: max(len(s.Rows)-1, 0)}
	for ri, row := range s.Rows[min(1, len(s.Rows)):] {
		for ci, rc := range row.Cells {
			if rc == nil || strings.TrimSpace(rc.Value) == "" {
				continue
			}
			col := &g.Columns[s.Cols-1-ci]
			for len(col.Cells) < ri {
				col.Cells = append(col.Cells, layout.Cell{Blank: true})
			}
			col.Cells = append(col.Cells, layout.Cell{Text: rc.Value, Bold: rc.Style.Bold})
		}
	}
	g.Scale = layout.NewEngine().Scale(g.Cols, g.Rows)
	p.Grid = g
	return p
}

// WorkbookModel is the top-level IR containing all sheets.
type WorkbookModel struct {
	Sheets []RenderSheet
}

func (m WorkbookModel) String() string {
	return fmt.Sprintf("Sheets: %d", len(m.Sheets))
}

// Pages returns one page per sheet, in sheet order.
func (m WorkbookModel) Pages() []layout.Page {
	out := make([]layout.Page, len(m.Sheets))
	for i, s := range m.Sheets {
		out[i] = s.Page()
	}
	return out
}
