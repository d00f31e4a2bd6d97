package calendar

import (
	"github.com/vietlang-dev/vla-admin-api/internal/models"
)

// Range is an inclusive local-date interval. Zero bounds are open.
type Range struct {
	Start LocalDate
	End   LocalDate
}

// Contains reports whether d falls inside the range.
func (r Range) Contains(d LocalDate) bool {
	if !r.Start.IsZero() && d.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && d.After(r.End) {
		return false
	}
	return true
}

// intersect clamps the template bounds to the render window.
func intersect(start, end LocalDate, window Range) (LocalDate, LocalDate) {
	if !window.Start.IsZero() && start.Before(window.Start) {
		start = window.Start
	}
	if !window.End.IsZero() && end.After(window.End) {
		end = window.End
	}
	return start, end
}

// Materialize expands one recurring template into concrete dated sessions
// inside the render window (default: the template's own bounds). Inverted
// or empty ranges yield an empty result, not an error. A template whose
// dates cannot be normalised is rejected with ErrInvalidDateFormat so the
// caller can drop it without aborting the batch.
func Materialize(n Normalizer, tpl models.ScheduleTemplate, window Range) ([]Session, error) {
	start, err := n.Normalize(tpl.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := n.Normalize(tpl.EndDate)
	if err != nil {
		return nil, err
	}

	start, end = intersect(start, end, window)
	if end.Before(start) {
		return nil, nil
	}

	if tpl.DayOfWeek < 0 || tpl.DayOfWeek > 6 {
		return nil, nil
	}

	// Jump to the first matching weekday, then step a week at a time.
	offset := (tpl.DayOfWeek - start.Weekday() + 7) % 7
	var sessions []Session
	for d := start.AddDays(offset); !d.After(end); d = d.AddDays(7) {
		sessions = append(sessions, sessionFromTemplate(tpl, d))
	}
	return sessions, nil
}

func sessionFromTemplate(tpl models.ScheduleTemplate, date LocalDate) Session {
	room := ""
	if tpl.RoomName != nil {
		room = *tpl.RoomName
	}
	note := ""
	if tpl.Note != nil {
		note = *tpl.Note
	}
	return Session{
		ClassID:   tpl.ClassID,
		SourceID:  tpl.ID,
		Origin:    OriginTemplate,
		Date:      date,
		DayOfWeek: date.Weekday(),
		StartTime: tpl.StartTime,
		EndTime:   tpl.EndTime,
		TeacherID: tpl.TeacherID,
		RoomName:  room,
		Status:    tpl.Status,
		Note:      note,
	}
}
