// Package pdf prints rendered petition pages through a headless browser.
package pdf

import (
	"context"
	"fmt"
	"io"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/aerissecure/votive/paper"
)

// Printer drives a browser to turn the HTML rendering into PDF.
type Printer struct {
	bin      string
	headless bool
	log      *zap.Logger
}

type Option func(*Printer)

// WithBrowserBin uses a specific Chrome/Chromium executable. Empty lets rod
// locate or download one.
func WithBrowserBin(bin string) Option {
	return func(p *Printer) { p.bin = bin }
}

func WithHeadless(headless bool) Option {
	return func(p *Printer) { p.headless = headless }
}

func WithLogger(l *zap.Logger) Option {
	return func(p *Printer) {
		if l != nil {
			p.log = l
		}
	}
}

func NewPrinter(opts ...Option) *Printer {
	p := &Printer{headless: true, log: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Print renders html at the given paper size and copies the PDF to w.
func (p *Printer) Print(ctx context.Context, html string, size paper.Size, w io.Writer) error {
	l := launcher.New().Headless(p.headless)
	if p.bin != "" {
		l = l.Bin(p.bin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launch browser: %w", err)
	}
	defer l.Cleanup()
	defer l.Kill()
	p.log.Debug("browser launched", zap.String("control_url", controlURL))

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("connect to browser: %w", err)
	}
	defer func() { _ = browser.Close() }()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return fmt.Errorf("open page: %w", err)
	}
	if err := page.SetDocumentContent(html); err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait for document: %w", err)
	}

	stream, err := page.PDF(PrintParams(size))
	if err != nil {
		return fmt.Errorf("print to pdf: %w", err)
	}
	n, err := io.Copy(w, stream)
	if err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	p.log.Info("pdf printed", zap.String("paper", size.Key), zap.Int64("bytes", n))
	return nil
}

// PrintParams sizes the PDF to the paper with no margins. The stylesheet's
// @page rule carries the same size.
func PrintParams(size paper.Size) *proto.PagePrintToPDF {
	width, height := size.Inches()
	zero := 0.0
	return &proto.PagePrintToPDF{
		PrintBackground:   true,
		PreferCSSPageSize: true,
		PaperWidth:        &width,
		PaperHeight:       &height,
		MarginTop:         &zero,
		MarginBottom:      &zero,
		MarginLeft:        &zero,
		MarginRight:       &zero,
	}
}
