package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSessions() []Session {
	return []Session{
		{
			ClassID:     "class-1",
			Date:        NewLocalDate(2026, 2, 2),
			StartTime:   "08:00",
			EndTime:     "10:00",
			TeacherName: "Nguyễn Văn An",
			RoomName:    "Phòng A1",
			Status:      "ACTIVE",
			Note:        "bring textbooks",
		},
		{
			ClassID:     "class-2",
			Date:        NewLocalDate(2026, 2, 3),
			StartTime:   "14:00",
			EndTime:     "16:00",
			TeacherName: "Trần Thị Bích",
			RoomName:    "Phòng B2",
			Status:      "CANCELLED",
			Note:        "",
		},
		{
			ClassID:     "class-1",
			Date:        NewLocalDate(2026, 2, 9),
			StartTime:   "08:00",
			EndTime:     "10:00",
			TeacherName: "Nguyễn Văn An",
			RoomName:    "Phòng A1",
			Status:      "ACTIVE",
			Note:        "",
		},
	}
}

func TestFilterTextTermsAndAcrossTermsOrAcrossFields(t *testing.T) {
	sessions := sampleSessions()

	// Both terms match fields of the first session.
	out := Filter(sessions, Query{Scope: AllScope(), Text: "phòng a1"})
	require.Len(t, out, 2)
	assert.Equal(t, "class-1", out[0].ClassID)

	// Second term matches nothing: the session is excluded.
	out = Filter(sessions, Query{Scope: AllScope(), Text: "phòng a1 thứ2"})
	assert.Empty(t, out)
}

func TestFilterTextMatchesAnySearchableField(t *testing.T) {
	sessions := sampleSessions()

	assert.Len(t, Filter(sessions, Query{Scope: AllScope(), Text: "bích"}), 1)        // teacher name
	assert.Len(t, Filter(sessions, Query{Scope: AllScope(), Text: "cancelled"}), 1)   // status
	assert.Len(t, Filter(sessions, Query{Scope: AllScope(), Text: "14:00"}), 1)       // time range
	assert.Len(t, Filter(sessions, Query{Scope: AllScope(), Text: "textbooks"}), 1)   // note
	assert.Len(t, Filter(sessions, Query{Scope: AllScope(), Text: "03/02/2026"}), 1)  // formatted date
	assert.Len(t, Filter(sessions, Query{Scope: AllScope(), Text: "2026-02-09"}), 1)  // iso date
}

func TestFilterScopeSingleDate(t *testing.T) {
	out := Filter(sampleSessions(), Query{Scope: DateScope(NewLocalDate(2026, 2, 2))})
	require.Len(t, out, 1)
	assert.Equal(t, "2026-02-02", out[0].Date.String())
}

func TestFilterScopeWindow(t *testing.T) {
	scope := WindowScope(NewLocalDate(2026, 2, 2), NewLocalDate(2026, 2, 8))
	out := Filter(sampleSessions(), Query{Scope: scope})
	require.Len(t, out, 2)
	assert.Equal(t, "2026-02-02", out[0].Date.String())
	assert.Equal(t, "2026-02-03", out[1].Date.String())
}

func TestFilterStatusAndRoomEquality(t *testing.T) {
	sessions := sampleSessions()

	out := Filter(sessions, Query{Scope: AllScope(), Status: "CANCELLED"})
	require.Len(t, out, 1)
	assert.Equal(t, "class-2", out[0].ClassID)

	out = Filter(sessions, Query{Scope: AllScope(), Room: "Phòng A1"})
	assert.Len(t, out, 2)

	// Predicates AND together.
	out = Filter(sessions, Query{Scope: AllScope(), Room: "Phòng A1", Status: "CANCELLED"})
	assert.Empty(t, out)
}

func TestFilterPreservesOrderAndIsDeterministic(t *testing.T) {
	sessions := sampleSessions()
	q := Query{Scope: AllScope(), Text: "an"}

	first := Filter(sessions, q)
	second := Filter(sessions, q)
	assert.Equal(t, first, second)
	for i := 1; i < len(first); i++ {
		assert.False(t, first[i].Date.Before(first[i-1].Date))
	}
}

func TestFilterEmptyResultIsNotAnError(t *testing.T) {
	out := Filter(nil, Query{Scope: AllScope(), Text: "anything"})
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
