package member

import (
	"fmt"
	"strings"

	"github.com/aerissecure/votive/lunar"
)

// Builder enriches a Person for a given observation year.
type Builder struct {
	conv *lunar.Converter
	calc *lunar.Calculator
}

// NewBuilder returns a Builder. Both collaborators are required.
func NewBuilder(conv *lunar.Converter, calc *lunar.Calculator) *Builder {
	return &Builder{conv: conv, calc: calc}
}

// Age is the traditional lunar age: the year of birth counts as 1.
// Never negative.
func Age(observationYear, birthYear int) int {
	if birthYear == 0 {
		return 0
	}
	age := observationYear - birthYear + 1
	if age < 0 {
		return 0
	}
	return age
}

// Build derives the member record. The only rejected input is a sex outside
// male/female; a missing title defaults to DefaultTitle and a missing birth
// date goes through the converter's fallback.
func (b *Builder) Build(p Person, observationYear int) (Member, error) {
	sex, err := lunar.ParseSex(string(p.Sex))
	if err != nil {
		return Member{}, fmt.Errorf("member %q: %w", p.Name, err)
	}
	p.Sex = sex
	p.Name = strings.TrimSpace(p.Name)
	if strings.TrimSpace(p.Title) == "" {
		p.Title = DefaultTitle
	}

	birth := b.conv.SolarToLunar(p.BirthDate)
	age := Age(observationYear, birth.Year)
	cyc := b.calc.Cyclic(age)

	return Member{
		Person:       p,
		Age:          age,
		StemBranch:   b.calc.StemBranch(birth.Year),
		GuardianStar: b.calc.GuardianStar(age, sex),
		Affliction:   b.calc.Affliction(age, sex),
		CyclicStatus: cyc.Status,
		CyclicStar:   cyc.Star,
	}, nil
}

// BuildAll enriches every person in order.
func (b *Builder) BuildAll(people []Person, observationYear int) ([]Member, error) {
	out := make([]Member, 0, len(people))
	for _, p := range people {
		m, err := b.Build(p, observationYear)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
