package engine

import (
	"fmt"
	"time"
)

// Clock supplies the current time. Injected so completion dates are testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// FixedClock returns a Clock frozen at t. Used by tests and backfill tooling.
func FixedClock(t time.Time) Clock { return fixedClock{t: t} }

const dateLayout = "2006-01-02"

// Date is a calendar date in YYYY-MM-DD form. The zero value "" means unset.
// The layout sorts lexicographically, so < and > compare chronologically.
type Date string

func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

func (d Date) Time() time.Time {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// TodayIn returns the clock's current date in the given location.
func TodayIn(c Clock, loc *time.Location) Date {
	return DateOf(c.Now().In(loc))
}

// LoadLocation resolves a user's configured time zone, falling back to UTC
// for missing or broken entries rather than failing the completion.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
