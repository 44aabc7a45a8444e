// Package templates holds the registry of petition types and renders each
// one from a document datum into marked-up text.
package templates

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/aerissecure/votive/markup"
	"github.com/aerissecure/votive/member"
)

//go:embed catalog.toml
var catalogTOML []byte

// ErrUnknownTemplate is returned for an id that is not in the registry.
var ErrUnknownTemplate = errors.New("unknown template")

// EmptyRoster stands in for the member list when there is nobody to name.
const EmptyRoster = "...................."

// Registry is an ordered, read-only set of templates.
type Registry struct {
	templates []*Template
	byID      map[string]*Template
}

type catalog struct {
	Templates []*Template `toml:"template"`
}

// New returns the built-in registry of ten petition types.
func New() (*Registry, error) {
	return Parse(catalogTOML)
}

// ParseFile reads a catalog from disk, replacing the built-in wording.
func ParseFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from user config
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a TOML catalog, validates it and compiles every template.
func Parse(data []byte) (*Registry, error) {
	var c catalog
	if _, err := toml.Decode(string(data), &c); err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}

	r := &Registry{byID: make(map[string]*Template, len(c.Templates))}
	for _, t := range c.Templates {
		if _, dup := r.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate template id %q", t.ID)
		}
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if err := t.compile(); err != nil {
			return nil, err
		}
		r.templates = append(r.templates, t)
		r.byID[t.ID] = t
	}
	if len(r.templates) == 0 {
		return nil, errors.New("catalog has no templates")
	}
	return r, nil
}

// IDs returns template ids in catalog order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.templates))
	for i, t := range r.templates {
		ids[i] = t.ID
	}
	return ids
}

// All returns the templates in catalog order.
func (r *Registry) All() []*Template {
	return append([]*Template(nil), r.templates...)
}

// Get looks a template up by id.
func (r *Registry) Get(id string) (*Template, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
	}
	return t, nil
}

// Render produces the marked-up text of one template for d.
func (r *Registry) Render(id string, d Datum) (string, error) {
	t, err := r.Get(id)
	if err != nil {
		return "", err
	}
	return t.Render(d)
}

// Casers keep state between calls, so each use gets its own.
func titleCase(s string) string { return cases.Title(language.Vietnamese).String(s) }
func upperCase(s string) string { return cases.Upper(language.Vietnamese).String(s) }

var funcs = template.FuncMap{
	"title":    titleCase,
	"upper":    upperCase,
	"bold":     markup.MarkBold,
	"plain":    markup.StripClausePunct,
	"vertical": markup.Format,
	"roster":   RosterText,
}

// RosterText names every member on one line:
// "<title> <NAME> <age> Tuổi * " per member, joined by a space.
func RosterText(members []member.Member) string {
	if len(members) == 0 {
		return EmptyRoster
	}
	parts := make([]string, len(members))
	for i, m := range members {
		title := m.Title
		if title == "" {
			title = member.DefaultTitle
		}
		parts[i] = fmt.Sprintf("%s %s %d Tuổi * ", title, upperCase(m.Name), m.Age)
	}
	return strings.Join(parts, " ")
}

func execute(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
