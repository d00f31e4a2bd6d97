package models

import "time"

// SessionOverride is a persisted one-off session record. When it targets a
// date a template would also produce for the same class, it replaces the
// template-derived session wholesale.
type SessionOverride struct {
	ID         string    `db:"id" json:"id"`
	ClassID    string    `db:"class_id" json:"class_id"`
	ScheduleID *string   `db:"schedule_id" json:"schedule_id,omitempty"` // back-ref to template, optional
	Date       string    `db:"date" json:"date"`
	DayOfWeek  int       `db:"day_of_week" json:"day_of_week"`
	StartTime  string    `db:"start_time" json:"start_time"`
	EndTime    string    `db:"end_time" json:"end_time"`
	TeacherID  *string   `db:"teacher_id" json:"teacher_id,omitempty"`
	RoomName   *string   `db:"room_name" json:"room_name,omitempty"`
	Status     string    `db:"status" json:"status"`
	Note       string    `db:"note" json:"note"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// SessionOverrideFilter narrows down overrides when listing.
type SessionOverrideFilter struct {
	ClassID   string
	DateFrom  string
	DateTo    string
	Status    string
	Page      int
	PageSize  int
}
