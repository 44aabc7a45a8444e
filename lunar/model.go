package lunar

import (
	"errors"
	"fmt"
	"strings"
)

// Placeholder is what every attribute degrades to when its input is missing
// or out of range. Documents still render structurally with it.
const Placeholder = "..."

// DefaultYear is the fallback lunar year used when the converter has no
// notion of "now".
const DefaultYear = 2024

// ErrInvalidSex is returned by ParseSex for anything but male/female.
var ErrInvalidSex = errors.New("invalid sex")

// Date is a lunar calendar date. Month is always positive; leap months are
// reported with their ordinary month number.
type Date struct {
	Day   int `json:"day" yaml:"day"`
	Month int `json:"month" yaml:"month"`
	Year  int `json:"year" yaml:"year"`
}

// Valid reports whether all three fields are positive and in range.
func (d Date) Valid() bool {
	return d.Year > 0 && d.Month >= 1 && d.Month <= 12 && d.Day >= 1 && d.Day <= 30
}

func (d Date) String() string {
	return fmt.Sprintf("%02d/%02d/%d", d.Day, d.Month, d.Year)
}

// Sex selects the guardian star and affliction tables.
type Sex string

const (
	Male   Sex = "male"
	Female Sex = "female"
)

// ParseSex accepts the English and Vietnamese spellings used on forms.
func ParseSex(s string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m", "nam":
		return Male, nil
	case "female", "f", "nu", "nữ":
		return Female, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSex, s)
}

// Cyclic status tags.
const (
	Received  = "Sở Được"
	Afflicted = "Sở Bị"
)

// Cyclic pairs a status tag with its companion star.
type Cyclic struct {
	Status string `json:"status" yaml:"status"`
	Star   string `json:"star" yaml:"star"`
}

func (c Cyclic) String() string {
	return fmt.Sprintf("Status: %s, Star: %s", c.Status, c.Star)
}
