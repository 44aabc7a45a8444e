// Package votive composes ceremonial petitions: it enriches the people on a
// form with their lunar attributes, renders each selected petition type and
// lays the text out as right-to-left vertical columns.
package votive

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aerissecure/votive/layout"
	"github.com/aerissecure/votive/lunar"
	"github.com/aerissecure/votive/markup"
	"github.com/aerissecure/votive/member"
	"github.com/aerissecure/votive/templates"
)

// Composer turns forms into laid-out pages. It holds no per-request state
// and is safe for concurrent use.
type Composer struct {
	registry   *templates.Registry
	conv       *lunar.Converter
	calc       *lunar.Calculator
	engine     *layout.Engine
	log        *zap.Logger
	templeName string
	now        func() time.Time
}

type Option func(*Composer)

func WithRegistry(r *templates.Registry) Option {
	return func(c *Composer) { c.registry = r }
}

func WithConverter(conv *lunar.Converter) Option {
	return func(c *Composer) { c.conv = conv }
}

func WithTables(t lunar.Tables) Option {
	return func(c *Composer) { c.calc = lunar.NewCalculator(t) }
}

func WithEngine(e *layout.Engine) Option {
	return func(c *Composer) { c.engine = e }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Composer) {
		if l != nil {
			c.log = l
		}
	}
}

// WithTempleName sets the venue used when a form leaves it blank.
func WithTempleName(name string) Option {
	return func(c *Composer) { c.templeName = strings.TrimSpace(name) }
}

// WithNow sets the clock that supplies the ceremony date for forms without
// one.
func WithNow(now func() time.Time) Option {
	return func(c *Composer) {
		if now != nil {
			c.now = now
		}
	}
}

// NewComposer returns a Composer with the built-in template catalog, the
// default attribute tables and layout engine.
func NewComposer(opts ...Option) (*Composer, error) {
	c := &Composer{
		calc:       lunar.NewCalculator(lunar.DefaultTables()),
		engine:     layout.NewEngine(),
		log:        zap.NewNop(),
		templeName: DefaultTempleName,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.registry == nil {
		r, err := templates.New()
		if err != nil {
			return nil, fmt.Errorf("loading templates: %w", err)
		}
		c.registry = r
	}
	if c.conv == nil {
		c.conv = lunar.NewConverter(lunar.WithLogger(c.log), lunar.WithNow(c.now))
	}
	if c.templeName == "" {
		c.templeName = DefaultTempleName
	}
	return c, nil
}

// Registry returns the template registry in use.
func (c *Composer) Registry() *templates.Registry {
	return c.registry
}

// Validate checks the fields required before anything is composed.
func (c *Composer) Validate(f Form) error {
	if len(f.Members) == 0 {
		return &ValidationError{Field: "members", Reason: "at least one member is required"}
	}
	for i, m := range f.Members {
		if strings.TrimSpace(m.Name) == "" {
			return &ValidationError{Field: fmt.Sprintf("members[%d].name", i), Reason: "every member needs a full name"}
		}
		if _, err := lunar.ParseSex(string(m.Sex)); err != nil {
			return &ValidationError{Field: fmt.Sprintf("members[%d].sex", i), Reason: "sex must be male or female"}
		}
	}
	if strings.TrimSpace(f.Address) == "" {
		return &ValidationError{Field: "address", Reason: "an address is required"}
	}
	if len(f.Templates) == 0 {
		return &ValidationError{Field: "templates", Reason: "select at least one petition type"}
	}
	for _, id := range f.Templates {
		if _, err := c.registry.Get(id); err != nil {
			return &ValidationError{Field: "templates", Reason: err.Error()}
		}
	}
	return nil
}

// Datum builds the template data for f: the ceremony's lunar date and year
// label, and every member enriched for the ceremony's lunar year.
func (c *Composer) Datum(f Form) (templates.Datum, error) {
	date := f.Date
	if date.IsZero() {
		date = c.now()
	}
	ceremony := c.conv.SolarToLunar(date)

	members, err := member.NewBuilder(c.conv, c.calc).BuildAll(f.Members, ceremony.Year)
	if err != nil {
		return templates.Datum{}, err
	}

	temple := strings.TrimSpace(f.TempleName)
	if temple == "" {
		temple = c.templeName
	}
	return templates.Datum{
		Address:    strings.TrimSpace(f.Address),
		TempleName: temple,
		Prayer:     strings.TrimSpace(f.Prayer),
		Year:       c.calc.StemBranch(ceremony.Year),
		Month:      ceremony.Month,
		Day:        ceremony.Day,
		Members:    members,
	}, nil
}

type job struct {
	id    string
	title string
	tmpl  *templates.Template
	datum templates.Datum
}

// memberKeys returns a distinct page-id suffix per member: its id, or its
// 1-based position when the id is blank or already taken.
func memberKeys(members []member.Member) []string {
	keys := make([]string, len(members))
	seen := make(map[string]bool, len(members))
	for i, m := range members {
		key := m.ID
		if key == "" || seen[key] {
			key = strconv.Itoa(i + 1)
		}
		for seen[key] {
			key += "_" + strconv.Itoa(i+1)
		}
		seen[key] = true
		keys[i] = key
	}
	return keys
}

// Compose validates f and returns one page per selected template, in
// selection order. Templates that ask for it yield one page per member
// instead, in roster order. Pages are composed concurrently.
func (c *Composer) Compose(ctx context.Context, f Form) ([]layout.Page, error) {
	if err := c.Validate(f); err != nil {
		return nil, err
	}
	d, err := c.Datum(f)
	if err != nil {
		return nil, err
	}

	var jobs []job
	for _, id := range f.Templates {
		t, _ := c.registry.Get(id) // validated above
		if !t.PerMember {
			jobs = append(jobs, job{id: t.ID, title: t.Title, tmpl: t, datum: d})
			continue
		}
		keys := memberKeys(d.Members)
		for i, m := range d.Members {
			single := d
			single.Members = []member.Member{m}
			jobs = append(jobs, job{
				id:    t.ID + "_" + keys[i],
				title: t.Title + " - " + m.Name,
				tmpl:  t,
				datum: single,
			})
		}
	}

	c.log.Info("composing petitions",
		zap.Strings("templates", f.Templates),
		zap.Int("members", len(d.Members)),
		zap.Int("pages", len(jobs)))

	pages := make([]layout.Page, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			page, err := c.composePage(j)
			if err != nil {
				return err
			}
			pages[i] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}

func (c *Composer) composePage(j job) (layout.Page, error) {
	raw, err := j.tmpl.Render(j.datum)
	if err != nil {
		return layout.Page{}, err
	}
	grid := c.engine.Layout(markup.Parse(raw))
	c.log.Debug("laid out page",
		zap.String("id", j.id),
		zap.Int("cols", grid.Cols),
		zap.Int("rows", grid.Rows),
		zap.Float64("scale", grid.Scale))
	return layout.Page{ID: j.id, Title: j.title, Grid: grid}, nil
}
