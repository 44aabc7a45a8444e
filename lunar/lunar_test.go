package lunar

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStemBranch(t *testing.T) {
	c := NewCalculator(DefaultTables())

	assert.Equal(t, "Canh Ngọ", c.StemBranch(1990))
	assert.Equal(t, "Giáp Thìn", c.StemBranch(2024))
	assert.Equal(t, Placeholder, c.StemBranch(0))
}

func TestStemBranchPeriods(t *testing.T) {
	c := NewCalculator(DefaultTables())

	// index 0 of the stem list is year%10 == 0
	assert.Equal(t, "Canh", c.Stem(10))
	assert.Equal(t, c.Stem(10), c.Stem(20))
	assert.Equal(t, "Thân", c.Branch(12))

	for y := 1; y <= 200; y++ {
		assert.Equal(t, c.Stem(y), c.Stem(y+10), "stem period, year %d", y)
		assert.Equal(t, c.Branch(y), c.Branch(y+12), "branch period, year %d", y)
		assert.Equal(t, c.StemBranch(y), c.StemBranch(y+60), "sexagenary period, year %d", y)
	}
	// 30 is a multiple of 10 but not 12
	assert.NotEqual(t, c.StemBranch(1990), c.StemBranch(2020))
}

func TestStemBranchNegativeYear(t *testing.T) {
	c := NewCalculator(DefaultTables())
	assert.NotPanics(t, func() { c.StemBranch(-7) })
	assert.Equal(t, c.StemBranch(53), c.StemBranch(-7))
}

func TestAttributePeriods(t *testing.T) {
	c := NewCalculator(DefaultTables())

	for _, sex := range []Sex{Male, Female} {
		for age := 1; age <= 120; age++ {
			assert.Equal(t, c.GuardianStar(age, sex), c.GuardianStar(age+9, sex))
			assert.Equal(t, c.Affliction(age, sex), c.Affliction(age+8, sex))
		}
	}
	for age := 1; age <= 120; age++ {
		assert.Equal(t, c.Cyclic(age), c.Cyclic(age+12))
	}
}

func TestAttributesForAge35Male(t *testing.T) {
	c := NewCalculator(DefaultTables())
	tbl := DefaultTables()

	assert.Equal(t, tbl.GuardianMale[7], c.GuardianStar(35, Male))
	assert.Equal(t, "Thái Âm", c.GuardianStar(35, Male))
	assert.Equal(t, tbl.AfflictionMale[2], c.Affliction(35, Male))
	assert.Equal(t, "Ngũ Hộ", c.Affliction(35, Male))
	assert.Equal(t, Cyclic{Status: Afflicted, Star: "Điếu Khách"}, c.Cyclic(35))
}

func TestAttributesFemaleTablesDiffer(t *testing.T) {
	c := NewCalculator(DefaultTables())
	assert.Equal(t, "Kế Đô", c.GuardianStar(1, Female))
	assert.Equal(t, "La Hầu", c.GuardianStar(1, Male))
	assert.Equal(t, "Toán Tận", c.Affliction(1, Female))
}

func TestAttributesPlaceholders(t *testing.T) {
	c := NewCalculator(DefaultTables())
	for _, age := range []int{0, -3} {
		assert.Equal(t, Placeholder, c.GuardianStar(age, Male))
		assert.Equal(t, Placeholder, c.Affliction(age, Female))
		assert.Equal(t, Cyclic{Status: Placeholder, Star: Placeholder}, c.Cyclic(age))
	}
}

func TestCalculatorCopiesTables(t *testing.T) {
	tbl := DefaultTables()
	c := NewCalculator(tbl)
	tbl.Stems[0] = "changed"
	assert.Equal(t, "Canh", c.Stem(2020))
}

func TestParseSex(t *testing.T) {
	s, err := ParseSex(" Nữ ")
	require.NoError(t, err)
	assert.Equal(t, Female, s)

	s, err = ParseSex("male")
	require.NoError(t, err)
	assert.Equal(t, Male, s)

	_, err = ParseSex("other")
	assert.ErrorIs(t, err, ErrInvalidSex)
}

func TestConverterLunarNewYear(t *testing.T) {
	c := NewConverter()

	// Tết Giáp Thìn
	assert.Equal(t, Date{Day: 1, Month: 1, Year: 2024}, c.SolarToLunar(day(2024, time.February, 10)))

	// before Tết Canh Ngọ the lunar year is still 1989
	d := c.SolarToLunar(day(1990, time.January, 1))
	assert.Equal(t, 1989, d.Year)
	assert.True(t, d.Valid())
}

func TestConverterFallback(t *testing.T) {
	fixed := func() time.Time { return day(2031, time.June, 5) }

	t.Run("zero time", func(t *testing.T) {
		c := NewConverter(WithNow(fixed))
		assert.Equal(t, Date{Day: 1, Month: 1, Year: 2031}, c.SolarToLunar(time.Time{}))
	})

	t.Run("no clock", func(t *testing.T) {
		c := NewConverter(WithNow(nil))
		assert.Equal(t, Date{Day: 1, Month: 1, Year: DefaultYear}, c.SolarToLunar(time.Time{}))
	})

	t.Run("resolver error", func(t *testing.T) {
		c := NewConverter(WithNow(fixed), WithResolver(func(time.Time) (Date, error) {
			return Date{}, errors.New("backend down")
		}))
		assert.Equal(t, c.Fallback(), c.SolarToLunar(day(2000, time.March, 3)))
	})

	t.Run("unparsable fields", func(t *testing.T) {
		c := NewConverter(WithNow(fixed), WithResolver(func(time.Time) (Date, error) {
			return Date{Day: 0, Month: 13, Year: 2000}, nil
		}))
		assert.Equal(t, c.Fallback(), c.SolarToLunar(day(2000, time.March, 3)))
	})

	t.Run("resolver panic", func(t *testing.T) {
		c := NewConverter(WithNow(fixed), WithResolver(func(time.Time) (Date, error) {
			panic("boom")
		}))
		assert.Equal(t, c.Fallback(), c.SolarToLunar(day(2000, time.March, 3)))
	})

	t.Run("bad string", func(t *testing.T) {
		c := NewConverter(WithNow(fixed))
		assert.Equal(t, c.Fallback(), c.ParseSolar("not-a-date"))
		assert.Equal(t, c.Fallback(), c.ParseSolar(""))
	})
}
