package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietlang-dev/vla-admin-api/internal/models"
)

func mondayTemplate() models.ScheduleTemplate {
	return models.ScheduleTemplate{
		ID:        "tpl-1",
		ClassID:   "class-1",
		DayOfWeek: 1,
		StartTime: "08:00",
		EndTime:   "10:00",
		StartDate: "2026-02-02",
		EndDate:   "2026-02-16",
		Status:    "ACTIVE",
	}
}

func TestMaterializeEmitsEveryMatchingWeekday(t *testing.T) {
	n := NewNormalizer(DefaultUTCOffsetHours)

	sessions, err := Materialize(n, mondayTemplate(), Range{})
	require.NoError(t, err)
	require.Len(t, sessions, 3)

	dates := []string{sessions[0].Date.String(), sessions[1].Date.String(), sessions[2].Date.String()}
	assert.Equal(t, []string{"2026-02-02", "2026-02-09", "2026-02-16"}, dates)

	for _, s := range sessions {
		assert.Equal(t, "class-1", s.ClassID)
		assert.Equal(t, OriginTemplate, s.Origin)
		assert.Equal(t, 1, s.DayOfWeek)
		assert.Equal(t, "08:00", s.StartTime)
		assert.Equal(t, "10:00", s.EndTime)
	}
}

func TestMaterializeCountMatchesWeekdayOccurrences(t *testing.T) {
	n := NewNormalizer(DefaultUTCOffsetHours)
	tpl := mondayTemplate()
	tpl.StartDate = "2026-01-05"
	tpl.EndDate = "2026-03-30"

	// A window that covers the whole template must not change the count.
	window := Range{Start: NewLocalDate(2025, time.December, 1), End: NewLocalDate(2026, time.May, 1)}
	sessions, err := Materialize(n, tpl, window)
	require.NoError(t, err)

	expected := 0
	start, _ := n.Normalize(tpl.StartDate)
	end, _ := n.Normalize(tpl.EndDate)
	for d := start; !d.After(end); d = d.AddDays(1) {
		if d.Weekday() == tpl.DayOfWeek {
			expected++
		}
	}
	assert.Equal(t, expected, len(sessions))
}

func TestMaterializeClampsToRenderWindow(t *testing.T) {
	n := NewNormalizer(DefaultUTCOffsetHours)

	window := Range{Start: NewLocalDate(2026, time.February, 8), End: NewLocalDate(2026, time.February, 10)}
	sessions, err := Materialize(n, mondayTemplate(), window)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "2026-02-09", sessions[0].Date.String())
}

func TestMaterializeInvertedRangeIsEmpty(t *testing.T) {
	n := NewNormalizer(DefaultUTCOffsetHours)
	tpl := mondayTemplate()
	tpl.StartDate = "2026-02-16"
	tpl.EndDate = "2026-02-02"

	sessions, err := Materialize(n, tpl, Range{})
	require.NoError(t, err)
	assert.Empty(t, sessions)

	// Disjoint window behaves the same.
	window := Range{Start: NewLocalDate(2027, time.January, 1), End: NewLocalDate(2027, time.February, 1)}
	sessions, err = Materialize(n, mondayTemplate(), window)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestMaterializeRejectsUnparsableDates(t *testing.T) {
	n := NewNormalizer(DefaultUTCOffsetHours)
	tpl := mondayTemplate()
	tpl.StartDate = "not-a-date"

	_, err := Materialize(n, tpl, Range{})
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestMaterializeNormalizesTimestampBounds(t *testing.T) {
	n := NewNormalizer(DefaultUTCOffsetHours)
	tpl := mondayTemplate()
	// 17:00 UTC on Sunday serialises the intended Monday wall-clock date.
	tpl.StartDate = "2026-02-01T17:00:00.000Z"
	tpl.EndDate = "2026-02-15T17:00:00.000Z"

	sessions, err := Materialize(n, tpl, Range{})
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, "2026-02-02", sessions[0].Date.String())
	assert.Equal(t, "2026-02-16", sessions[2].Date.String())
}
