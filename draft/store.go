// Package draft keeps named snapshots of petition forms in a single JSON
// file, newest first.
package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aerissecure/votive"
	"github.com/aerissecure/votive/templates"
)

// ErrNotFound is returned for an unknown draft id.
var ErrNotFound = errors.New("draft not found")

// UnnamedMember stands in for the first member's name when it is blank.
const UnnamedMember = "Chưa có tên"

const (
	lockTimeout = 5 * time.Second
	lockRetry   = 50 * time.Millisecond
)

// Draft is one saved form.
type Draft struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Form      votive.Form `json:"data"`
	CreatedAt time.Time   `json:"created_at"`
}

// UnmarshalJSON accepts drafts saved before several petition types could be
// selected: a lone template_id becomes the selection.
func (d *Draft) UnmarshalJSON(b []byte) error {
	type plain Draft
	var aux struct {
		plain
		Data struct {
			votive.Form
			TemplateID string `json:"template_id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*d = Draft(aux.plain)
	d.Form = aux.Data.Form
	if len(d.Form.Templates) == 0 && aux.Data.TemplateID != "" {
		d.Form.Templates = []string{aux.Data.TemplateID}
	}
	return nil
}

func (d Draft) String() string {
	return fmt.Sprintf("ID: %s, Name: %q, CreatedAt: %s", d.ID, d.Name, d.CreatedAt.Format(time.RFC3339))
}

// Store reads and writes the draft file. Every operation takes a file lock,
// so several processes may share one file.
type Store struct {
	path string
	mu   sync.Mutex // flock does not exclude goroutines sharing one handle
	lock *flock.Flock
	now  func() time.Time
	log  *zap.Logger
}

type Option func(*Store)

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// NewStore returns a Store backed by the file at path. The file and its
// directory are created on first save.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path: path,
		lock: flock.New(path + ".lock"),
		now:  time.Now,
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the draft file location.
func (s *Store) Path() string {
	return s.path
}

// Save stores form under name as a new draft at the head of the list.
func (s *Store) Save(ctx context.Context, name string, form votive.Form) (Draft, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Draft{}, errors.New("draft name is required")
	}

	d := Draft{
		ID:        uuid.New().String(),
		Name:      name,
		Form:      form,
		CreatedAt: s.now().UTC(),
	}
	err := s.update(ctx, func(drafts []Draft) ([]Draft, error) {
		return append([]Draft{d}, drafts...), nil
	})
	if err != nil {
		return Draft{}, err
	}
	s.log.Info("saved draft", zap.String("id", d.ID), zap.String("name", d.Name))
	return d, nil
}

// List returns every draft, newest first.
func (s *Store) List(ctx context.Context) ([]Draft, error) {
	release, err := s.acquire(ctx, false)
	if err != nil {
		return nil, err
	}
	defer release()

	drafts, err := s.read()
	if err != nil {
		return nil, err
	}
	for i := range drafts {
		drafts[i].Form.ApplyDefaults()
	}
	return drafts, nil
}

// Get returns the draft with the given id, with form defaults applied.
func (s *Store) Get(ctx context.Context, id string) (Draft, error) {
	drafts, err := s.List(ctx)
	if err != nil {
		return Draft{}, err
	}
	for _, d := range drafts {
		if d.ID == id {
			return d, nil
		}
	}
	return Draft{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Delete removes the draft with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	err := s.update(ctx, func(drafts []Draft) ([]Draft, error) {
		for i, d := range drafts {
			if d.ID == id {
				return append(drafts[:i:i], drafts[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	})
	if err != nil {
		return err
	}
	s.log.Info("deleted draft", zap.String("id", id))
	return nil
}

func (s *Store) update(ctx context.Context, fn func([]Draft) ([]Draft, error)) error {
	release, err := s.acquire(ctx, true)
	if err != nil {
		return err
	}
	defer release()

	drafts, err := s.read()
	if err != nil {
		return err
	}
	drafts, err = fn(drafts)
	if err != nil {
		return err
	}
	return s.write(drafts)
}

func (s *Store) acquire(ctx context.Context, exclusive bool) (release func(), err error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, fmt.Errorf("creating draft directory: %w", err)
	}

	s.mu.Lock()
	defer func() {
		if err != nil {
			s.mu.Unlock()
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	var locked bool
	if exclusive {
		locked, err = s.lock.TryLockContext(ctx, lockRetry)
	} else {
		locked, err = s.lock.TryRLockContext(ctx, lockRetry)
	}
	if err != nil {
		return nil, fmt.Errorf("lock acquisition failed: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("draft file is busy (lock held: %s)", s.lock.Path())
	}
	return func() {
		_ = s.lock.Unlock()
		s.mu.Unlock()
	}, nil
}

func (s *Store) read() ([]Draft, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading drafts: %w", err)
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return nil, nil
	}
	var drafts []Draft
	if err := json.Unmarshal(b, &drafts); err != nil {
		return nil, fmt.Errorf("decoding drafts %s: %w", s.path, err)
	}
	return drafts, nil
}

func (s *Store) write(drafts []Draft) error {
	if drafts == nil {
		drafts = []Draft{}
	}
	b, err := json.MarshalIndent(drafts, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding drafts: %w", err)
	}

	// tmp then rename
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("writing drafts: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing drafts: %w", err)
	}
	return nil
}

// DefaultName suggests a draft name: the first member, the petition type
// (or how many were selected) and the date.
func DefaultName(form votive.Form, reg *templates.Registry, now time.Time) string {
	who := UnnamedMember
	if len(form.Members) > 0 && strings.TrimSpace(form.Members[0].Name) != "" {
		who = strings.TrimSpace(form.Members[0].Name)
	}

	what := "Sớ"
	switch n := len(form.Templates); {
	case n > 1:
		what = fmt.Sprintf("%d loại sớ", n)
	case n == 1 && reg != nil:
		if t, err := reg.Get(form.Templates[0]); err == nil {
			what = t.Name
		}
	}
	return fmt.Sprintf("%s - %s (%s)", who, what, now.Format("2/1/2006"))
}
