package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aerissecure/votive/config"
	"github.com/aerissecure/votive/docx"
	"github.com/aerissecure/votive/layout"
	"github.com/aerissecure/votive/pdf"
	"github.com/aerissecure/votive/xlsx"
)

// Output formats accepted by --format.
var formats = []string{"html", "text", "docx", "xlsx", "pdf"}

func composeCmd(a *app) *cobra.Command {
	var (
		formPath string
		ids      []string
		format   string
		out      string
	)

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Compose petitions from a form file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pages, err := a.composeForm(cmd.Context(), formPath, ids)
			if err != nil {
				return err
			}

			kind, err := resolveFormat(format, out)
			if err != nil {
				return err
			}

			render := func(w io.Writer) error {
				return a.render(cmd.Context(), w, kind, pages)
			}
			if out == "" {
				return render(cmd.OutOrStdout())
			}
			if err := writeFile(out, render); err != nil {
				return err
			}
			a.log.Info("petitions written", zap.String("path", out), zap.String("format", kind), zap.Int("pages", len(pages)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&formPath, "form", "f", "", "form file (.yaml, .toml or .json)")
	cmd.Flags().StringSliceVarP(&ids, "template", "t", nil, "petition type; repeatable, overrides the form")
	cmd.Flags().StringVar(&format, "format", "", "output format: "+strings.Join(formats, "|")+" (default from --out, else html)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	_ = cmd.MarkFlagRequired("form")
	return cmd
}

// writeFile creates path and fills it with render. A failed render leaves
// no file behind.
func writeFile(path string, render func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return render(f)
}

func (a *app) composeForm(ctx context.Context, path string, ids []string) ([]layout.Page, error) {
	f, err := config.LoadForm(path)
	if err != nil {
		return nil, err
	}
	if len(ids) > 0 {
		f.Templates = ids
	}
	c, err := a.composer()
	if err != nil {
		return nil, err
	}
	return c.Compose(ctx, f)
}

// resolveFormat picks the explicit format, else the one the output file's
// extension names, else html.
func resolveFormat(format, out string) (string, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(out)) {
		case ".txt":
			format = "text"
		case ".htm":
			format = "html"
		case "":
			format = "html"
		default:
			format = strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), ".")
		}
	}
	format = strings.ToLower(format)
	for _, f := range formats {
		if f == format {
			return format, nil
		}
	}
	return "", fmt.Errorf("unsupported format %q (want %s)", format, strings.Join(formats, ", "))
}

func (a *app) render(ctx context.Context, w io.Writer, format string, pages []layout.Page) error {
	size, err := a.cfg.PaperSize()
	if err != nil {
		return err
	}

	switch format {
	case "html":
		_, err = io.WriteString(w, layout.RenderHTML(pages, size))
	case "text":
		_, err = io.WriteString(w, layout.RenderText(pages)+"\n")
	case "docx":
		err = docx.Write(w, pages, size)
	case "xlsx":
		err = xlsx.Write(w, pages)
	case "pdf":
		printer := pdf.NewPrinter(
			pdf.WithBrowserBin(a.cfg.PDF.BrowserBin),
			pdf.WithHeadless(a.cfg.PDF.Headless),
			pdf.WithLogger(a.log),
		)
		err = printer.Print(ctx, layout.RenderHTML(pages, size), size, w)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	return err
}
