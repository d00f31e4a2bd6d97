package calendar

import (
	"github.com/vietlang-dev/vla-admin-api/internal/models"
)

// dateKey marks one class-day for override suppression.
type dateKey struct {
	ClassID string
	Date    string
}

// Expand materialises every template inside the render window and lays the
// override sessions in front of the template-derived candidates. An
// override claims its (class, date) outright: the template candidate for
// that day is suppressed, never field-merged. The returned order therefore
// encodes override precedence for the deduplicator.
//
// An override whose schedule back-reference points at a template of a
// different class is kept as an independent ad hoc session. Records with
// unparsable dates are dropped; the count of drops is reported so callers
// can log it.
func Expand(n Normalizer, templates []models.ScheduleTemplate, overrides []models.SessionOverride, window Range) ([]Session, int) {
	templateClass := make(map[string]string, len(templates))
	for _, tpl := range templates {
		templateClass[tpl.ID] = tpl.ClassID
	}

	dropped := 0
	claimed := make(map[dateKey]struct{}, len(overrides))
	out := make([]Session, 0, len(overrides))

	for _, ov := range overrides {
		date, err := n.Normalize(ov.Date)
		if err != nil {
			dropped++
			continue
		}
		if !window.Contains(date) {
			continue
		}

		s := sessionFromOverride(ov, date)
		if ov.ScheduleID != nil {
			if classID, ok := templateClass[*ov.ScheduleID]; !ok || classID != ov.ClassID {
				// Mismatched back-reference: ad hoc session, no template link.
				s.SourceID = ov.ID
			}
		}
		claimed[dateKey{ClassID: ov.ClassID, Date: date.String()}] = struct{}{}
		out = append(out, s)
	}

	for _, tpl := range templates {
		sessions, err := Materialize(n, tpl, window)
		if err != nil {
			dropped++
			continue
		}
		for _, s := range sessions {
			if _, taken := claimed[dateKey{ClassID: s.ClassID, Date: s.Date.String()}]; taken {
				continue
			}
			out = append(out, s)
		}
	}

	return out, dropped
}

func sessionFromOverride(ov models.SessionOverride, date LocalDate) Session {
	room := ""
	if ov.RoomName != nil {
		room = *ov.RoomName
	}
	sourceID := ov.ID
	if ov.ScheduleID != nil {
		sourceID = *ov.ScheduleID
	}
	return Session{
		ClassID:   ov.ClassID,
		SourceID:  sourceID,
		Origin:    OriginOverride,
		Date:      date,
		DayOfWeek: date.Weekday(),
		StartTime: ov.StartTime,
		EndTime:   ov.EndTime,
		TeacherID: ov.TeacherID,
		RoomName:  room,
		Status:    ov.Status,
		Note:      ov.Note,
	}
}
