package layout

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/aerissecure/votive/paper"
)

// DebugHTML controls whether data attributes with grid coordinates are
// included in the rendered HTML output.
var DebugHTML bool

// FontFamily is the CSS font stack used for petition text.
var FontFamily = "Noto Serif, Times New Roman, serif"

const (
	regularWeight = 500
	boldWeight    = 800
)

var fontFamilySafeRe = regexp.MustCompile(`[^a-zA-Z0-9 ,_-]+`)

// sanitizeFontFamily strips any characters that are not considered safe for a
// CSS font-family declaration.
func sanitizeFontFamily(s string) string {
	return fontFamilySafeRe.ReplaceAllString(s, "")
}

// RenderHTML renders pages as a standalone printable document, one page per
// sheet of the given size. Columns flow right to left; the last, leftmost
// column is twice as wide as the others.
func RenderHTML(pages []Page, size paper.Size) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"vi\">\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<style>\n")
	b.WriteString(fmt.Sprintf("@page { size: %s; margin: 0; }\n", size.CSS()))
	b.WriteString("body { margin: 0; }\n")
	b.WriteString(fmt.Sprintf(".page { position: relative; width: %gmm; aspect-ratio: %s; container-type: inline-size; page-break-after: always; box-sizing: border-box; padding: 4%%; }\n",
		size.WidthMM, size.AspectRatio()))
	b.WriteString(fmt.Sprintf(".grid { display: grid; direction: rtl; width: 100%%; height: 100%%; font-family: %s; }\n",
		sanitizeFontFamily(FontFamily)))
	b.WriteString(".cell { display: flex; align-items: center; justify-content: center; white-space: nowrap; line-height: 1; }\n")
	b.WriteString("</style>\n</head>\n<body>\n")
	for _, p := range pages {
		b.WriteString(renderPageHTML(p))
	}
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func gridTemplateColumns(cols int) string {
	if cols <= 1 {
		return "1fr"
	}
	return fmt.Sprintf("repeat(%d, 1fr) 2fr", cols-1)
}

func renderPageHTML(p Page) string {
	g := p.Grid
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<section class=\"page\" id=\"%s\" title=\"%s\">\n",
		html.EscapeString(p.ID), html.EscapeString(p.Title)))
	b.WriteString(fmt.Sprintf("<div class=\"grid\" style=\"grid-template-columns:%s;grid-template-rows:repeat(%d, 1fr);\">\n",
		gridTemplateColumns(g.Cols), g.Rows))

	for ci := range g.Columns {
		for ri := 0; ri < g.Rows; ri++ {
			b.WriteString(renderCellHTML(g.At(ci, ri), g.Scale, ci, ri))
		}
		b.WriteString("\n")
	}

	b.WriteString("</div>\n</section>\n")
	return b.String()
}

// renderCellHTML places the cell explicitly; under rtl grid column 1 is the
// rightmost track.
func renderCellHTML(c Cell, scale float64, col, row int) string {
	var attrs strings.Builder
	attrs.WriteString(fmt.Sprintf(" style=\"grid-column:%d;grid-row:%d;", col+1, row+1))
	if !c.Blank {
		weight := regularWeight
		if c.Bold {
			weight = boldWeight
		}
		attrs.WriteString(fmt.Sprintf("font-size:clamp(8px, %.4fcqi, 120px);font-weight:%d;", scale, weight))
	}
	attrs.WriteString("\"")
	if DebugHTML {
		attrs.WriteString(fmt.Sprintf(" data-pos=\"%d,%d\"", col, row))
	}
	if c.Blank {
		return fmt.Sprintf("<div class=\"cell blank\"%s></div>", attrs.String())
	}
	return fmt.Sprintf("<div class=\"cell\"%s>%s</div>", attrs.String(), html.EscapeString(c.Text))
}
