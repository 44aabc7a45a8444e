package lunar

// Calculator derives the per-person astrological attributes. It is
// stateless apart from its tables and safe for concurrent use.
type Calculator struct {
	t Tables
}

// NewCalculator returns a Calculator over a copy of t.
func NewCalculator(t Tables) *Calculator {
	return &Calculator{t: t}
}

// mod is a non-negative remainder.
func mod(a, n int) int {
	return ((a % n) + n) % n
}

// Stem returns the heavenly stem for year, or Placeholder for year 0.
func (c *Calculator) Stem(year int) string {
	if year == 0 {
		return Placeholder
	}
	return c.t.Stems[mod(year, len(c.t.Stems))]
}

// Branch returns the earthly branch for year, or Placeholder for year 0.
func (c *Calculator) Branch(year int) string {
	if year == 0 {
		return Placeholder
	}
	return c.t.Branches[mod(year, len(c.t.Branches))]
}

// StemBranch returns the sexagenary label "Stem Branch" for a lunar year.
func (c *Calculator) StemBranch(year int) string {
	if year == 0 {
		return Placeholder
	}
	return c.Stem(year) + " " + c.Branch(year)
}

// GuardianStar returns the star watching over a person of the given lunar
// age. Period 9 in age.
func (c *Calculator) GuardianStar(age int, sex Sex) string {
	if age < 1 {
		return Placeholder
	}
	i := (age - 1) % len(c.t.GuardianMale)
	if sex == Male {
		return c.t.GuardianMale[i]
	}
	return c.t.GuardianFemale[i]
}

// Affliction returns the affliction for the given lunar age. Period 8.
func (c *Calculator) Affliction(age int, sex Sex) string {
	if age < 1 {
		return Placeholder
	}
	i := (age - 1) % len(c.t.AfflictionMale)
	if sex == Male {
		return c.t.AfflictionMale[i]
	}
	return c.t.AfflictionFemale[i]
}

// Cyclic returns the received/afflicted status and its companion star.
// Period 12, indexed by age%12 (not age-1).
func (c *Calculator) Cyclic(age int) Cyclic {
	if age < 1 {
		return Cyclic{Status: Placeholder, Star: Placeholder}
	}
	return c.t.Cyclic[age%len(c.t.Cyclic)]
}
