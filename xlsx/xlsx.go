// Package xlsx writes laid-out petitions as spreadsheets, one sheet per
// page, and reads them back.
package xlsx

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/unidoc/unioffice/measurement"
	"github.com/unidoc/unioffice/schema/soo/sml"
	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"

	"github.com/aerissecure/votive/layout"
)

const (
	// FontFamily is applied to every written cell.
	FontFamily = "Times New Roman"

	wordSizePt  = 14
	titleSizePt = 16
	maxSheetLen = 31
)

var sheetNameReplacer = strings.NewReplacer(
	":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_",
)

// Write renders pages into a workbook. Row 1 holds the title and each grid
// row follows; grid columns are written left to right, so the first composed
// line lands in the rightmost column.
func Write(w io.Writer, pages []layout.Page) error {
	wb := spreadsheet.New()

	word := newStyle(wb, wordSizePt, false)
	bold := newStyle(wb, wordSizePt, true)
	title := newStyle(wb, titleSizePt, true)

	for i, p := range pages {
		sheet := wb.AddSheet()
		sheet.SetName(sheetName(i, p.ID))

		cell := sheet.Row(1).Cell("A")
		cell.SetString(p.Title)
		cell.SetStyle(title)

		cols := len(p.Grid.Columns)
		for c := 0; c < cols; c++ {
			sheet.Column(uint32(c + 1)).SetWidth(measurement.Inch)
		}
		for r := 0; r < p.Grid.Rows; r++ {
			row := sheet.Row(uint32(r + 2))
			for c := 0; c < cols; c++ {
				gc := p.Grid.At(cols-1-c, r)
				if gc.Blank {
					continue
				}
				cell := row.Cell(reference.IndexToColumn(uint32(c)))
				cell.SetString(gc.Text)
				if gc.Bold {
					cell.SetStyle(bold)
				} else {
					cell.SetStyle(word)
				}
			}
		}
	}

	if err := wb.Save(w); err != nil {
		return fmt.Errorf("saving xlsx: %w", err)
	}
	return nil
}

func newStyle(wb *spreadsheet.Workbook, sizePt float64, bold bool) spreadsheet.CellStyle {
	font := wb.StyleSheet.AddFont()
	font.SetName(FontFamily)
	font.SetSize(sizePt)
	font.SetBold(bold)

	cs := wb.StyleSheet.AddCellStyle()
	cs.SetFont(font)
	return cs
}

// sheetName prefixes the page id with its position, which keeps names
// unique once they are cut to the 31 characters a sheet name allows.
func sheetName(i int, id string) string {
	name := strconv.Itoa(i+1) + " " + sheetNameReplacer.Replace(id)
	for utf8.RuneCountInString(name) > maxSheetLen {
		_, size := utf8.DecodeLastRuneInString(name)
		name = name[:len(name)-size]
	}
	return name
}

// pageID reverses sheetName for ids that fit.
func pageID(name string) string {
	if _, id, ok := strings.Cut(name, " "); ok {
		return id
	}
	return name
}

// GetFontProps returns the font XML of a cell style, or nil.
func GetFontProps(ss spreadsheet.StyleSheet, styleID uint32) *sml.CT_Font {
	if int(styleID) >= len(ss.X().CellXfs.Xf) {
		return nil
	}
	xf := ss.X().CellXfs.Xf[styleID]
	if xf.FontIdAttr == nil {
		return nil
	}
	fontIdx := int(*xf.FontIdAttr)
	if fontIdx >= len(ss.X().Fonts.Font) {
		return nil
	}
	return ss.X().Fonts.Font[fontIdx]
}
