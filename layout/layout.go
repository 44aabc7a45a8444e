package layout

import (
	"math"
	"strings"

	"github.com/aerissecure/votive/markup"
)

const (
	// DefaultMinRows keeps short documents on a visually stable grid.
	DefaultMinRows = 15

	// DefaultScaleFactor keeps long all-caps names inside their cell.
	DefaultScaleFactor = 0.2
)

// Engine lays token lines out as vertical columns. The zero value is not
// usable; call NewEngine.
type Engine struct {
	minRows int
	factor  float64
}

type Option func(*Engine)

// WithMinRows overrides the row floor. Values below 1 are ignored.
func WithMinRows(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.minRows = n
		}
	}
}

// WithScaleFactor overrides the empirical constant applied to the scale
// hint. Non-positive values are ignored.
func WithScaleFactor(k float64) Option {
	return func(e *Engine) {
		if k > 0 {
			e.factor = k
		}
	}
}

// NewEngine returns an Engine with the default row floor and scale factor.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{minRows: DefaultMinRows, factor: DefaultScaleFactor}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Layout turns each line into one column. It never fails: no lines gives a
// grid with zero columns and the minimum row count.
func (e *Engine) Layout(lines []markup.Line) Grid {
	g := Grid{Columns: make([]Column, len(lines))}

	rows := e.minRows
	for i, line := range lines {
		cells := make([]Cell, len(line))
		for j, tok := range line {
			if tok.Kind == markup.Blank {
				cells[j] = Cell{Blank: true}
				continue
			}
			cells[j] = Cell{Text: tok.Text, Bold: tok.Bold}
		}
		g.Columns[i] = Column{Cells: cells}
		rows = max(rows, len(cells))
	}

	g.Cols = len(g.Columns)
	g.Rows = rows
	g.Scale = e.Scale(g.Cols, g.Rows)
	return g
}

// Scale is the font-size hint for a grid of the given shape: the smaller of
// the per-column width and 1.4x the per-row height, times the factor. The
// renderer decides whether to honour it.
func (e *Engine) Scale(cols, rows int) float64 {
	if rows < 1 {
		rows = 1
	}
	return math.Min(100/float64(cols+1), 100/float64(rows)*1.4) * e.factor
}

// SplitWords applies the overflow rule to a column of text: when it has
// more than width words it is cut into consecutive groups of width words,
// the last possibly shorter. Otherwise the text is returned as-is.
func SplitWords(text string, width int) []string {
	words := strings.Fields(text)
	if width <= 0 || len(words) <= width {
		return []string{text}
	}
	out := make([]string, 0, (len(words)+width-1)/width)
	for i := 0; i < len(words); i += width {
		end := min(i+width, len(words))
		out = append(out, strings.Join(words[i:end], " "))
	}
	return out
}

// SplitLine is SplitWords over tokens; every token, blank or not, takes a
// slot.
func SplitLine(line markup.Line, width int) []markup.Line {
	if width <= 0 || len(line) <= width {
		return []markup.Line{line}
	}
	out := make([]markup.Line, 0, (len(line)+width-1)/width)
	for i := 0; i < len(line); i += width {
		end := min(i+width, len(line))
		out = append(out, line[i:end:end])
	}
	return out
}

// SplitAt replaces lines[index] with its SplitLine groups, in place of the
// original column and in order. An out-of-range index returns lines
// unchanged.
func SplitAt(lines []markup.Line, index, width int) []markup.Line {
	if index < 0 || index >= len(lines) {
		return lines
	}
	parts := SplitLine(lines[index], width)
	out := make([]markup.Line, 0, len(lines)+len(parts)-1)
	out = append(out, lines[:index]...)
	out = append(out, parts...)
	return append(out, lines[index+1:]...)
}
