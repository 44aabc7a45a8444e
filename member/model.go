package member

import (
	"fmt"
	"time"

	"github.com/aerissecure/votive/lunar"
)

// DefaultTitle is the honorific used when a person has none.
const DefaultTitle = "Tín chủ"

// Titles are the honorifics offered on the form, head of household first.
var Titles = []string{
	"Tín chủ", "Thân thê", "Phu quân", "Nam tử", "Nữ tử",
	"Hôn tử", "Tế tử", "Nội tôn", "Ngoại tôn", "Dưỡng tử",
}

// Person is one roster entry as entered by the user.
type Person struct {
	ID        string    `json:"id" yaml:"id" toml:"id"`
	Title     string    `json:"title" yaml:"title" toml:"title"`
	Name      string    `json:"name" yaml:"name" toml:"name"`
	BirthDate time.Time `json:"birth_date" yaml:"birth_date" toml:"birth_date"`
	Sex       lunar.Sex `json:"sex" yaml:"sex" toml:"sex"`
}

func (p Person) String() string {
	return fmt.Sprintf("ID: %s, Title: %q, Name: %q, BirthDate: %s, Sex: %s",
		p.ID, p.Title, p.Name, p.BirthDate.Format(time.DateOnly), p.Sex)
}

// Member is a Person enriched with the attributes derived for one
// observation year. It is always rebuilt from its Person, never stored.
type Member struct {
	Person

	Age          int    `json:"age"`
	StemBranch   string `json:"stem_branch"`
	GuardianStar string `json:"guardian_star"`
	Affliction   string `json:"affliction"`
	CyclicStatus string `json:"cyclic_status"`
	CyclicStar   string `json:"cyclic_star"`
}

func (m Member) String() string {
	return fmt.Sprintf("Name: %q, Age: %d, StemBranch: %s, GuardianStar: %s, Affliction: %s, CyclicStatus: %s, CyclicStar: %s",
		m.Name, m.Age, m.StemBranch, m.GuardianStar, m.Affliction, m.CyclicStatus, m.CyclicStar)
}
