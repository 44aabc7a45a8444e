package member

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aerissecure/votive/lunar"
)

var (
	// ErrLastMember is returned when removing the only roster entry.
	ErrLastMember = errors.New("roster must keep at least one member")

	// ErrNotFound is returned for an unknown person id.
	ErrNotFound = errors.New("member not found")
)

// Roster is the ordered list of people a petition is made for.
type Roster []Person

// NewPerson returns a blank entry the way the form seeds a new row.
func NewPerson(title string, sex lunar.Sex) Person {
	return Person{
		ID:        uuid.New().String(),
		Title:     title,
		BirthDate: time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
		Sex:       sex,
	}
}

// DefaultRoster is the single head-of-household entry a fresh form starts with.
func DefaultRoster() Roster {
	return Roster{NewPerson(DefaultTitle, lunar.Male)}
}

// Add appends p, assigning an id when it has none.
func (r Roster) Add(p Person) Roster {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return append(r, p)
}

// Remove drops the entry with the given id. The last entry cannot be removed.
func (r Roster) Remove(id string) (Roster, error) {
	if len(r) <= 1 {
		return r, ErrLastMember
	}
	for i, p := range r {
		if p.ID == id {
			out := make(Roster, 0, len(r)-1)
			out = append(out, r[:i]...)
			return append(out, r[i+1:]...), nil
		}
	}
	return r, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Update applies fn to the entry with the given id.
func (r Roster) Update(id string, fn func(*Person)) error {
	for i := range r {
		if r[i].ID == id {
			fn(&r[i])
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// EnsureIDs fills in missing ids, e.g. after loading a hand-written form.
func (r Roster) EnsureIDs() {
	for i := range r {
		if r[i].ID == "" {
			r[i].ID = uuid.New().String()
		}
	}
}
