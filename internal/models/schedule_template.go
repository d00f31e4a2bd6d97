package models

import "time"

// ScheduleTemplate defines a weekly recurring class slot bounded by a date range.
// StartDate and EndDate are kept in their stored form (bare date or UTC
// timestamp string) and normalised by the calendar engine.
type ScheduleTemplate struct {
	ID        string    `db:"id" json:"id"`
	ClassID   string    `db:"class_id" json:"class_id"`
	TeacherID *string   `db:"teacher_id" json:"teacher_id,omitempty"`
	DayOfWeek int       `db:"day_of_week" json:"day_of_week"` // 0=Sunday .. 6=Saturday
	StartTime string    `db:"start_time" json:"start_time"`   // HH:MM
	EndTime   string    `db:"end_time" json:"end_time"`       // HH:MM, after StartTime
	StartDate string    `db:"start_date" json:"start_date"`
	EndDate   string    `db:"end_date" json:"end_date"`
	RoomName  *string   `db:"room_name" json:"room_name,omitempty"`
	Status    string    `db:"status" json:"status"`
	Note      *string   `db:"note" json:"note,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ScheduleTemplateFilter narrows down templates when listing.
type ScheduleTemplateFilter struct {
	ClassID   string
	TeacherID string
	Status    string
	Page      int
	PageSize  int
}
