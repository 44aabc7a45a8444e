package votive

import (
	"fmt"
	"strings"
	"time"

	"github.com/aerissecure/votive/member"
)

// DefaultTemplate is selected when a form names no petition type.
const DefaultTemplate = "cau_an"

// DefaultTempleName is the venue written on petitions that name none.
const DefaultTempleName = "Mõ Hạc Linh Từ"

// Form is everything the user enters for one composition request.
type Form struct {
	Members    member.Roster `json:"members" yaml:"members" toml:"members"`
	Address    string        `json:"address" yaml:"address" toml:"address"`
	TempleName string        `json:"temple_name" yaml:"temple_name" toml:"temple_name"`
	Prayer     string        `json:"prayer" yaml:"prayer" toml:"prayer"`

	// Date is the solar date of the ceremony. Zero means today.
	Date time.Time `json:"date" yaml:"date" toml:"date"`

	// Templates lists petition ids in the order the pages are produced.
	Templates []string `json:"templates" yaml:"templates" toml:"templates"`
}

// NewForm returns the form a fresh session starts with.
func NewForm() Form {
	return Form{
		Members:   member.DefaultRoster(),
		Templates: []string{DefaultTemplate},
	}
}

// ApplyDefaults fills the fields a stored or hand-written form may omit.
func (f *Form) ApplyDefaults() {
	if len(f.Templates) == 0 {
		f.Templates = []string{DefaultTemplate}
	}
	f.Members.EnsureIDs()
}

func (f Form) String() string {
	names := make([]string, len(f.Members))
	for i, m := range f.Members {
		names[i] = m.Name
	}
	return fmt.Sprintf("Members: [%s], Address: %q, Templates: %v",
		strings.Join(names, ", "), f.Address, f.Templates)
}
