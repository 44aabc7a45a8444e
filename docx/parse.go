package docx

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/unidoc/unioffice/document"
)

// ParseDocumentModel reads a DOCX document from the provided reader and size
// and returns its top-level paragraphs and tables in body order.
func ParseDocumentModel(r io.ReaderAt, size int64) (DocumentModel, error) {
	doc, err := document.Read(r, size)
	if err != nil {
		return DocumentModel{}, fmt.Errorf("reading docx: %w", err)
	}

	order := bodyOrder(doc)

	type placed struct {
		at  int
		blk DocumentBlock
	}
	var found []placed
	for _, p := range doc.Paragraphs() {
		if at, ok := order[p.X()]; ok {
			rp := readParagraph(p)
			found = append(found, placed{at, DocumentBlock{Paragraph: &rp}})
		}
	}
	for _, t := range doc.Tables() {
		if at, ok := order[t.X()]; ok {
			rt := readTable(t)
			found = append(found, placed{at, DocumentBlock{Table: &rt}})
		}
	}
	slices.SortFunc(found, func(a, b placed) int { return cmp.Compare(a.at, b.at) })

	mdl := DocumentModel{Blocks: make([]DocumentBlock, len(found))}
	for i, f := range found {
		mdl.Blocks[i] = f.blk
	}
	return mdl, nil
}

// bodyOrder numbers the body's top-level paragraphs and tables, keyed by
// their XML elements.
func bodyOrder(doc *document.Document) map[any]int {
	order := make(map[any]int)
	body := doc.X().Body
	if body == nil {
		return order
	}
	for _, bl := range body.EG_BlockLevelElts {
		for _, c := range bl.EG_ContentBlockContent {
			for _, p := range c.P {
				order[p] = len(order)
			}
			for _, t := range c.Tbl {
				order[t] = len(order)
			}
		}
	}
	return order
}

func readRun(r document.Run) RenderRun {
	props := r.Properties()
	st := RunStyle{Bold: props.IsBold()}
	// w:sz is in half-points
	if x := props.X(); x != nil && x.Sz != nil && x.Sz.ValAttr.ST_UnsignedDecimalNumber != nil {
		st.FontSizePt = float64(*x.Sz.ValAttr.ST_UnsignedDecimalNumber) / 2
	}
	return RenderRun{Run: r, Text: r.Text(), Style: st}
}

func readParagraph(p document.Paragraph) RenderParagraph {
	runs := p.Runs()
	rp := RenderParagraph{Paragraph: p, Runs: make([]RenderRun, 0, len(runs))}
	for _, run := range runs {
		rp.Runs = append(rp.Runs, readRun(run))
	}
	return rp
}

func readTable(t document.Table) RenderTable {
	var rt RenderTable
	for _, row := range t.Rows() {
		var rr RenderTableRow
		for _, cell := range row.Cells() {
			var rc RenderTableCell
			for _, p := range cell.Paragraphs() {
				rc.Paragraphs = append(rc.Paragraphs, readParagraph(p))
			}
			rr.Cells = append(rr.Cells, rc)
		}
		rt.Rows = append(rt.Rows, rr)
	}
	return rt
}
