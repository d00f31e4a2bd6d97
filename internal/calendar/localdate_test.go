package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeUTCTimestampShiftsToLocalDay(t *testing.T) {
	n := NewNormalizer(DefaultUTCOffsetHours)

	// 17:00 UTC + 7h crosses midnight into the next local day.
	d, err := n.Normalize("2025-10-02T17:00:00.000Z")
	require.NoError(t, err)
	assert.Equal(t, "2025-10-03", d.String())

	// Morning instants stay on the same day.
	d, err = n.Normalize("2025-10-02T03:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2025-10-02", d.String())
}

func TestNormalizeBareDate(t *testing.T) {
	n := NewNormalizer(DefaultUTCOffsetHours)

	d, err := n.Normalize("2026-02-02")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year)
	assert.Equal(t, time.February, d.Month)
	assert.Equal(t, 2, d.Day)
	assert.Equal(t, 1, d.Weekday()) // a Monday
}

func TestNormalizeRejectsAmbiguousInput(t *testing.T) {
	n := NewNormalizer(DefaultUTCOffsetHours)

	for _, raw := range []string{
		"",
		"2025-10",
		"2025-10-02-05",
		"2025-10-02T17:00:00", // zoneless timestamp: six numeric components
		"next tuesday",
		"2025-02-30", // impossible day
	} {
		_, err := n.Normalize(raw)
		assert.ErrorIs(t, err, ErrInvalidDateFormat, "input %q", raw)
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	n := NewNormalizer(DefaultUTCOffsetHours)

	for _, raw := range []string{
		"2025-10-02T17:00:00.000Z",
		"2025-12-31T18:30:00Z",
		"2026-02-02",
		"2024-02-29",
	} {
		first, err := n.Normalize(raw)
		require.NoError(t, err)
		second, err := n.Normalize(first.String())
		require.NoError(t, err)
		assert.Equal(t, first, second, "input %q", raw)
	}
}

func TestLocalDateWeekdayUsesSundayZero(t *testing.T) {
	// 2026-02-01 is a Sunday.
	assert.Equal(t, 0, NewLocalDate(2026, time.February, 1).Weekday())
	assert.Equal(t, 6, NewLocalDate(2026, time.February, 7).Weekday())
}

func TestLocalDateArithmeticAndOrdering(t *testing.T) {
	d := NewLocalDate(2026, time.February, 27)
	next := d.AddDays(3)
	assert.Equal(t, "2026-03-02", next.String())
	assert.True(t, d.Before(next))
	assert.True(t, next.After(d))
	assert.False(t, d.Equal(next))
	assert.Equal(t, d, next.AddDays(-3))
}

func TestTodayAppliesFixedOffset(t *testing.T) {
	n := NewNormalizer(DefaultUTCOffsetHours)
	now := time.Date(2025, time.October, 2, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-10-03", n.Today(now).String())
}

func TestLocalDateDisplay(t *testing.T) {
	assert.Equal(t, "03/10/2025", NewLocalDate(2025, time.October, 3).Display())
}
