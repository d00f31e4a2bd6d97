package calendar

import "fmt"

// Origin records which source a materialised session came from.
type Origin string

const (
	OriginTemplate Origin = "template"
	OriginOverride Origin = "override"
)

// Session is one concrete dated class meeting, derived from a recurring
// template or a persisted override. Sessions are never stored; the whole
// set is recomputed from the sources and never mutated in place.
type Session struct {
	ClassID   string    `json:"class_id"`
	SourceID  string    `json:"source_id"`
	Origin    Origin    `json:"origin"`
	Date      LocalDate `json:"-"`
	DayOfWeek int       `json:"day_of_week"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	TeacherID *string   `json:"teacher_id,omitempty"`
	RoomName  string    `json:"room_name"`
	Status    string    `json:"status"`
	Note      string    `json:"note"`

	// Resolved presentation fields, filled by the assignment resolver
	// and the class catalogue.
	ResolvedTeacherID string `json:"resolved_teacher_id"`
	TeacherName       string `json:"teacher_name"`
	ClassName         string `json:"class_name"`
	ColorTag          string `json:"color_tag"`
	Title             string `json:"title"`
}

// Key identifies a session for deduplication purposes.
type Key struct {
	ClassID   string
	Date      string
	StartTime string
	EndTime   string
	TeacherID string
	RoomName  string
}

// Key computes the session's identity key.
func (s Session) Key() Key {
	teacherID := ""
	if s.TeacherID != nil {
		teacherID = *s.TeacherID
	}
	return Key{
		ClassID:   s.ClassID,
		Date:      s.Date.String(),
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		TeacherID: teacherID,
		RoomName:  s.RoomName,
	}
}

// TimeRange renders the session's time span for display and text matching.
func (s Session) TimeRange() string {
	return s.StartTime + " - " + s.EndTime
}

// Per-language calendar colors. Unknown languages fall back to slate.
var languageColors = map[string]string{
	"ENGLISH":  "#2563eb",
	"CHINESE":  "#dc2626",
	"JAPANESE": "#9333ea",
	"KOREAN":   "#0d9488",
	"FRENCH":   "#d97706",
}

const defaultColorTag = "#64748b"

// ColorForLanguage maps a class language to its calendar color tag.
func ColorForLanguage(language string) string {
	if c, ok := languageColors[language]; ok {
		return c
	}
	return defaultColorTag
}

// Decorate fills the presentation fields derived from the class catalogue.
// Resolve must have run first so the teacher name is final.
func (s *Session) Decorate(className, language string) {
	s.ClassName = className
	s.ColorTag = ColorForLanguage(language)
	s.Title = fmt.Sprintf("%s • %s • %s", className, s.TimeRange(), s.TeacherName)
}
