package dto

import "time"

// SessionListRequest captures the calendar query parameters.
type SessionListRequest struct {
	Scope   string `form:"scope" validate:"omitempty,oneof=all date week month"`
	Date    string `form:"date"`
	Anchor  string `form:"anchor"`
	Query   string `form:"q"`
	Status  string `form:"status"`
	Room    string `form:"room"`
	ClassID string `form:"class_id"`
}

// SessionView is the API shape of one materialised session.
type SessionView struct {
	ClassID     string `json:"class_id"`
	ClassName   string `json:"class_name"`
	SourceID    string `json:"source_id"`
	Origin      string `json:"origin"`
	Date        string `json:"date"`
	DisplayDate string `json:"display_date"`
	DayOfWeek   int    `json:"day_of_week"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	TimeRange   string `json:"time_range"`
	TeacherID   string `json:"teacher_id,omitempty"`
	TeacherName string `json:"teacher_name"`
	RoomName    string `json:"room_name"`
	Status      string `json:"status"`
	Note        string `json:"note,omitempty"`
	ColorTag    string `json:"color_tag"`
	Title       string `json:"title"`
	IsToday     bool   `json:"is_today"`
}

// WindowMeta describes the effective date scope of a session list.
type WindowMeta struct {
	Scope          string `json:"scope"`
	Start          string `json:"start,omitempty"`
	End            string `json:"end,omitempty"`
	Anchor         string `json:"anchor,omitempty"`
	DroppedRecords int    `json:"dropped_records"`
}

// RefreshResult reports the outcome of a calendar source refresh.
type RefreshResult struct {
	Generation  uint64    `json:"generation"`
	Applied     bool      `json:"applied"`
	Templates   int       `json:"templates"`
	Overrides   int       `json:"overrides"`
	Teachers    int       `json:"teachers"`
	Assignments int       `json:"assignments"`
	Classes     int       `json:"classes"`
	LoadedAt    time.Time `json:"loaded_at"`
}
