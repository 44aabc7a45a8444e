package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/aerissecure/votive/layout"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFC107"))
	boldStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e53935"))
	wordStyle  = lipgloss.NewStyle()
	pageStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func previewCmd(a *app) *cobra.Command {
	var (
		formPath string
		ids      []string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show composed petitions in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pages, err := a.composeForm(cmd.Context(), formPath, ids)
			if err != nil {
				return err
			}
			for _, p := range pages {
				fmt.Fprintln(cmd.OutOrStdout(), renderPreview(p))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formPath, "form", "f", "", "form file (.yaml, .toml or .json)")
	cmd.Flags().StringSliceVarP(&ids, "template", "t", nil, "petition type; repeatable, overrides the form")
	_ = cmd.MarkFlagRequired("form")
	return cmd
}

// renderPreview draws the grid the way it prints: rows top down, the first
// composed line in the rightmost column.
func renderPreview(p layout.Page) string {
	g := p.Grid
	width := 1
	for _, col := range g.Columns {
		for _, c := range col.Cells {
			width = max(width, lipgloss.Width(c.Text))
		}
	}

	rows := make([]string, g.Rows)
	for r := 0; r < g.Rows; r++ {
		cells := make([]string, 0, g.Cols)
		for c := g.Cols - 1; c >= 0; c-- {
			cells = append(cells, previewCell(g.At(c, r), width))
		}
		rows[r] = strings.Join(cells, " ")
	}

	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return pageStyle.Render(lipgloss.JoinVertical(lipgloss.Center, titleStyle.Render(p.Title), "", body))
}

func previewCell(c layout.Cell, width int) string {
	if c.Bold {
		return boldStyle.Width(width).Render(c.Text)
	}
	return wordStyle.Width(width).Render(c.Text)
}
