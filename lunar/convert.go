package lunar

import (
	"errors"
	"fmt"
	"time"

	"github.com/6tail/lunar-go/calendar"
	"go.uber.org/zap"
)

// ErrUnparsable is reported to the fallback path when a resolver returns a
// date with missing or out-of-range fields.
var ErrUnparsable = errors.New("unparsable lunar date")

// Resolver converts a solar day into a lunar date. The converter never does
// lunar astronomy itself; it delegates to a Resolver.
type Resolver func(t time.Time) (Date, error)

// Converter turns solar dates into lunar dates and never fails: any missing
// input or resolver failure yields day 1, month 1 of the fallback year.
type Converter struct {
	resolve Resolver
	now     func() time.Time
	log     *zap.Logger
}

type Option func(*Converter)

// WithNow sets the clock used for the fallback year. A nil clock makes the
// fallback year DefaultYear, which keeps conversion fully deterministic.
func WithNow(now func() time.Time) Option {
	return func(c *Converter) { c.now = now }
}

// WithResolver replaces the calendar backend.
func WithResolver(r Resolver) Option {
	return func(c *Converter) { c.resolve = r }
}

// WithLogger reports fallbacks at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.log = l
		}
	}
}

// NewConverter returns a Converter backed by github.com/6tail/lunar-go.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		resolve: ResolveSolar,
		now:     time.Now,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ResolveSolar is the default Resolver.
func ResolveSolar(t time.Time) (d Date, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lunar conversion of %s: %v", t.Format(time.DateOnly), r)
		}
	}()

	l := calendar.NewSolarFromYmd(t.Year(), int(t.Month()), t.Day()).GetLunar()
	month := l.GetMonth()
	if month < 0 {
		month = -month // leap month
	}
	d = Date{Day: l.GetDay(), Month: month, Year: l.GetYear()}
	if !d.Valid() {
		return Date{}, fmt.Errorf("%w: %s", ErrUnparsable, d)
	}
	return d, nil
}

// Fallback is the date substituted for missing or unconvertible input.
func (c *Converter) Fallback() Date {
	year := DefaultYear
	if c.now != nil {
		year = c.now().Year()
	}
	return Date{Day: 1, Month: 1, Year: year}
}

// SolarToLunar converts t. A zero t is treated as absent input.
func (c *Converter) SolarToLunar(t time.Time) (d Date) {
	if t.IsZero() {
		return c.Fallback()
	}

	defer func() {
		if r := recover(); r != nil {
			c.log.Debug("lunar resolver panicked", zap.Time("solar", t), zap.Any("panic", r))
			d = c.Fallback()
		}
	}()

	d, err := c.resolve(t)
	if err == nil && !d.Valid() {
		err = fmt.Errorf("%w: %s", ErrUnparsable, d)
	}
	if err != nil {
		c.log.Debug("lunar conversion fell back", zap.Time("solar", t), zap.Error(err))
		return c.Fallback()
	}
	return d
}

// ParseSolar converts an ISO date string (2006-01-02). Empty or malformed
// strings yield the fallback date.
func (c *Converter) ParseSolar(s string) Date {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return c.Fallback()
	}
	return c.SolarToLunar(t)
}
