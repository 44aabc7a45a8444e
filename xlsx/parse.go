package xlsx

import (
	"fmt"
	"io"

	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"
)

// ParseWorkbookModel reads an XLSX from r/size and returns the intermediate representation.
func ParseWorkbookModel(r io.ReaderAt, size int64) (WorkbookModel, error) {
	wb, err := spreadsheet.Read(r, size)
	if err != nil {
		return WorkbookModel{}, err
	}

	var model WorkbookModel
	for _, sheet := range wb.Sheets() {
		rs := RenderSheet{Name: sheet.Name(), Cols: declaredCols(sheet)}

		// cells may sit beyond the declared columns in hand-edited files
		for _, row := range sheet.Rows() {
			for _, cell := range row.Cells() {
				if col, err := cell.Column(); err == nil {
					rs.Cols = max(rs.Cols, int(reference.ColumnToIndex(col))+1)
				}
			}
		}

		for _, row := range sheet.Rows() {
			rowIdx := int(row.RowNumber()) - 1
			if rowIdx < 0 {
				continue
			}
			for len(rs.Rows) <= rowIdx {
				rs.Rows = append(rs.Rows, RenderRow{Cells: make([]*RenderCell, rs.Cols)})
			}
			rr := &rs.Rows[rowIdx]

			for _, cell := range row.Cells() {
				colName, err := cell.Column()
				if err != nil {
					continue
				}
				colIdx := int(reference.ColumnToIndex(colName))
				rr.Cells[colIdx] = &RenderCell{
					Cell:  cell,
					Ref:   fmt.Sprintf("%s%d", colName, rowIdx+1),
					Value: cell.GetFormattedValue(),
					Style: cellStyle(wb, cell),
				}
			}
		}

		model.Sheets = append(model.Sheets, rs)
	}

	return model, nil
}

// declaredCols counts the columns given explicit widths, which Write does
// for every grid column including ones with no words.
func declaredCols(sheet spreadsheet.Sheet) int {
	n := 0
	for _, cols := range sheet.X().Cols {
		for _, c := range cols.Col {
			n = max(n, int(c.MaxAttr))
		}
	}
	return n
}

func cellStyle(wb *spreadsheet.Workbook, cell spreadsheet.Cell) CellStyle {
	var st CellStyle
	if cell.X().SAttr == nil {
		return st
	}
	font := GetFontProps(wb.StyleSheet, *cell.X().SAttr)
	if font == nil {
		return st
	}
	if len(font.Name) > 0 {
		st.FontFamily = font.Name[0].ValAttr
	}
	if len(font.Sz) > 0 {
		st.FontSizePt = font.Sz[0].ValAttr
	}
	if len(font.B) > 0 {
		st.Bold = font.B[0].ValAttr == nil || *font.B[0].ValAttr
	}
	return st
}
