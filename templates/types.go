package templates

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/aerissecure/votive/layout"
	"github.com/aerissecure/votive/markup"
	"github.com/aerissecure/votive/member"
)

// Datum is everything a template may refer to. It is built fresh for each
// composition and never modified by a template.
type Datum struct {
	Address    string
	TempleName string
	Prayer     string
	Year       string // stem-branch label of the ceremony's lunar year
	Month      int    // lunar month of the ceremony
	Day        int    // lunar day of the ceremony
	Members    []member.Member
}

// First returns the head of the roster, or a zero Member.
func (d Datum) First() member.Member {
	if len(d.Members) == 0 {
		return member.Member{}
	}
	return d.Members[0]
}

// Template is one petition type. Exactly one of Body or Columns is set.
type Template struct {
	ID    string `toml:"id"`
	Name  string `toml:"name"`
	Title string `toml:"title"`

	// PerMember asks the composer for one document per roster member, each
	// rendered with a single-member datum.
	PerMember bool `toml:"per_member"`

	Body    string   `toml:"body"`
	Columns []Column `toml:"column"`

	body *template.Template
}

func (t *Template) String() string {
	return fmt.Sprintf("ID: %s, Name: %q, Columns: %d, PerMember: %t", t.ID, t.Name, len(t.Columns), t.PerMember)
}

// Column is one column of a column template, listed in reading order.
type Column struct {
	ID   string `toml:"id"`
	Text string `toml:"text"`

	// Bold marks every word of the rendered column.
	Bold bool `toml:"bold"`

	// EachMember renders Text once per member, with the member as the
	// template dot, one line each.
	EachMember bool `toml:"each_member"`

	// Split names a reference column. When this column renders to more
	// words than the reference, it is cut into columns of the reference's
	// word count.
	Split string `toml:"split"`

	tmpl *template.Template
}

// Validate checks the template's structure.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("template id is required")
	}
	if t.Title == "" {
		return fmt.Errorf("template %q: title is required", t.ID)
	}
	hasBody := strings.TrimSpace(t.Body) != ""
	if hasBody == (len(t.Columns) > 0) {
		return fmt.Errorf("template %q: exactly one of body or columns is required", t.ID)
	}

	seen := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		if c.ID == "" {
			return fmt.Errorf("template %q: column id is required", t.ID)
		}
		if seen[c.ID] {
			return fmt.Errorf("template %q: duplicate column %q", t.ID, c.ID)
		}
		seen[c.ID] = true
	}
	for _, c := range t.Columns {
		if c.Split != "" && !seen[c.Split] {
			return fmt.Errorf("template %q: column %q splits against unknown column %q", t.ID, c.ID, c.Split)
		}
		if c.Split == c.ID && c.Split != "" {
			return fmt.Errorf("template %q: column %q splits against itself", t.ID, c.ID)
		}
	}
	return nil
}

func (t *Template) compile() error {
	var err error
	if t.Body != "" {
		t.body, err = template.New(t.ID).Funcs(funcs).Parse(t.Body)
		if err != nil {
			return fmt.Errorf("template %q: %w", t.ID, err)
		}
		return nil
	}
	for i := range t.Columns {
		c := &t.Columns[i]
		c.tmpl, err = template.New(t.ID + "." + c.ID).Funcs(funcs).Parse(c.Text)
		if err != nil {
			return fmt.Errorf("template %q column %q: %w", t.ID, c.ID, err)
		}
	}
	return nil
}

// Render produces the template's marked-up text. Column templates come out
// as one line per column, so the formatter keeps them as laid out.
func (t *Template) Render(d Datum) (string, error) {
	if t.body != nil {
		out, err := execute(t.body, d)
		if err != nil {
			return "", fmt.Errorf("rendering %s: %w", t.ID, err)
		}
		return out, nil
	}

	rendered := make(map[string]string, len(t.Columns))
	for _, c := range t.Columns {
		text, err := c.render(d)
		if err != nil {
			return "", fmt.Errorf("rendering %s column %s: %w", t.ID, c.ID, err)
		}
		rendered[c.ID] = text
	}

	var cols []string
	for _, c := range t.Columns {
		text := rendered[c.ID]
		if c.Split == "" {
			cols = append(cols, text)
			continue
		}
		width := len(strings.Fields(rendered[c.Split]))
		cols = append(cols, layout.SplitWords(text, width)...)
	}
	return strings.Join(cols, "\n"), nil
}

func (c Column) render(d Datum) (string, error) {
	if !c.EachMember {
		text, err := execute(c.tmpl, d)
		if err != nil {
			return "", err
		}
		return c.emphasise(text), nil
	}

	lines := make([]string, len(d.Members))
	for i, m := range d.Members {
		text, err := execute(c.tmpl, m)
		if err != nil {
			return "", err
		}
		lines[i] = c.emphasise(text)
	}
	return strings.Join(lines, "\n"), nil
}

func (c Column) emphasise(text string) string {
	if c.Bold {
		return markup.MarkBold(text)
	}
	return text
}
