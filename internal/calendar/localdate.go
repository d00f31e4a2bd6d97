package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultUTCOffsetHours is the academy's fixed offset from UTC (Vietnam,
// no daylight saving).
const DefaultUTCOffsetHours = 7

// ErrInvalidDateFormat flags a stored date field that cannot be normalised.
// Callers must drop the offending record, never guess.
var ErrInvalidDateFormat = errors.New("invalid date format")

// LocalDate is an unambiguous calendar date in the academy's timezone.
type LocalDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NewLocalDate builds a LocalDate from calendar components.
func NewLocalDate(year int, month time.Month, day int) LocalDate {
	return LocalDate{Year: year, Month: month, Day: day}
}

// String renders the date as YYYY-MM-DD.
func (d LocalDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Display renders the date as DD/MM/YYYY for free-text matching and titles.
func (d LocalDate) Display() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}

// anchor pins the date at noon so day arithmetic never crosses midnight.
func (d LocalDate) anchor() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC)
}

// Weekday returns the day of week, 0=Sunday .. 6=Saturday.
func (d LocalDate) Weekday() int {
	return int(d.anchor().Weekday())
}

// AddDays returns the date shifted by n calendar days.
func (d LocalDate) AddDays(n int) LocalDate {
	t := d.anchor().AddDate(0, 0, n)
	return LocalDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Before reports whether d is strictly earlier than other.
func (d LocalDate) Before(other LocalDate) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After reports whether d is strictly later than other.
func (d LocalDate) After(other LocalDate) bool {
	return other.Before(d)
}

// Equal reports whether both dates name the same day.
func (d LocalDate) Equal(other LocalDate) bool {
	return d == other
}

// IsZero reports whether the date is unset.
func (d LocalDate) IsZero() bool {
	return d == LocalDate{}
}

// Normalizer converts stored date representations into unambiguous local
// calendar dates. Storage serialises Vietnam wall-clock dates via UTC, so a
// UTC-qualified instant shifted by the fixed offset always lands on the
// intended day.
type Normalizer struct {
	offset time.Duration
}

// NewNormalizer builds a Normalizer with the given UTC offset in hours.
func NewNormalizer(offsetHours int) Normalizer {
	return Normalizer{offset: time.Duration(offsetHours) * time.Hour}
}

// FromInstant converts an absolute instant by applying the fixed offset to
// its UTC representation and discarding the time of day.
func (n Normalizer) FromInstant(t time.Time) LocalDate {
	shifted := t.UTC().Add(n.offset)
	return LocalDate{Year: shifted.Year(), Month: shifted.Month(), Day: shifted.Day()}
}

// FromLocal reads the calendar fields of t directly, trusting its location.
func (n Normalizer) FromLocal(t time.Time) LocalDate {
	return LocalDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Today returns the current local calendar date for the given instant.
func (n Normalizer) Today(now time.Time) LocalDate {
	return n.FromInstant(now)
}

// Normalize converts a stored date string into a LocalDate. Zone-qualified
// timestamps go through the instant path; everything else must yield exactly
// three numeric components.
func (n Normalizer) Normalize(raw string) (LocalDate, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return LocalDate{}, ErrInvalidDateFormat
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return n.FromInstant(t), nil
	}
	return parseBareDate(s)
}

// parseBareDate extracts the three numeric components of a plain date
// string such as "2026-02-02". Component count other than three means the
// value is ambiguous and the record is rejected.
func parseBareDate(s string) (LocalDate, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if len(parts) != 3 {
		return LocalDate{}, ErrInvalidDateFormat
	}

	nums := make([]int, 3)
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil {
			return LocalDate{}, ErrInvalidDateFormat
		}
		nums[i] = v
	}

	d := LocalDate{Year: nums[0], Month: time.Month(nums[1]), Day: nums[2]}
	// Round-trip through time.Date to reject impossible days like Feb 30.
	if t := d.anchor(); t.Year() != d.Year || t.Month() != d.Month || t.Day() != d.Day {
		return LocalDate{}, ErrInvalidDateFormat
	}
	return d, nil
}
