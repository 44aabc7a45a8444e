// Package docx writes laid-out petitions as Word documents and reads them
// back.
package docx

import (
	"fmt"
	"io"
	"math"

	"github.com/unidoc/unioffice"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/measurement"
	"github.com/unidoc/unioffice/schema/soo/ofc/sharedTypes"
	"github.com/unidoc/unioffice/schema/soo/wml"

	"github.com/aerissecure/votive/layout"
	"github.com/aerissecure/votive/paper"
)

const (
	titleSizePt = 14
	minWordPt   = 6
)

// Write renders pages into a single landscape document: a title paragraph
// and a one-word-per-cell table per page, separated by page breaks. Table
// columns run left to right, so the first composed line ends up rightmost.
func Write(w io.Writer, pages []layout.Page, size paper.Size) error {
	doc := document.New()

	sect := doc.BodySection()
	sect.X().PgSz = pageSize(size)
	margin := measurement.Distance(10 * measurement.Millimeter)
	sect.SetPageMargins(margin, margin, margin, margin, 0, 0, 0)

	for i, p := range pages {
		if i > 0 {
			doc.AddParagraph().AddRun().AddPageBreak()
		}
		writeTitle(doc, p.Title)
		writeGrid(doc, p.Grid, wordSize(p.Grid.Scale, size))
	}

	if err := doc.Save(w); err != nil {
		return fmt.Errorf("saving docx: %w", err)
	}
	return nil
}

// pageSize is the landscape section size in twips.
func pageSize(size paper.Size) *wml.CT_PageSz {
	pgSz := wml.NewCT_PageSz()
	pgSz.WAttr = &sharedTypes.ST_TwipsMeasure{ST_UnsignedDecimalNumber: unioffice.Uint64(twips(size.WidthMM))}
	pgSz.HAttr = &sharedTypes.ST_TwipsMeasure{ST_UnsignedDecimalNumber: unioffice.Uint64(twips(size.HeightMM))}
	pgSz.OrientAttr = wml.ST_PageOrientationLandscape
	return pgSz
}

func twips(mm float64) uint64 {
	return uint64(math.Round(mm * measurement.Millimeter / measurement.Twips))
}

func writeTitle(doc *document.Document, title string) {
	para := doc.AddParagraph()
	para.Properties().SetAlignment(wml.ST_JcCenter)
	run := para.AddRun()
	run.Properties().SetBold(true)
	run.Properties().SetSize(titleSizePt * measurement.Point)
	run.AddText(title)
}

func writeGrid(doc *document.Document, g layout.Grid, pt measurement.Distance) {
	table := doc.AddTable()
	table.Properties().SetWidthPercent(100)
	for r := 0; r < g.Rows; r++ {
		row := table.AddRow()
		for c := len(g.Columns) - 1; c >= 0; c-- {
			para := row.AddCell().AddParagraph()
			para.Properties().SetAlignment(wml.ST_JcCenter)
			cell := g.At(c, r)
			if cell.Blank {
				continue
			}
			run := para.AddRun()
			run.Properties().SetBold(cell.Bold)
			run.Properties().SetSize(pt)
			run.AddText(cell.Text)
		}
	}
}

// wordSize converts the grid's scale hint, a percentage of page width, to
// a font size.
func wordSize(scale float64, size paper.Size) measurement.Distance {
	widthPt := size.WidthMM / 25.4 * 72
	pt := math.Max(minWordPt, math.Round(widthPt*scale/100))
	return measurement.Distance(pt) * measurement.Point
}
