package models

import "time"

// AssignmentRole describes a teacher's responsibility within a class.
type AssignmentRole string

// Known assignment roles in display-priority order.
const (
	RoleInstructor  AssignmentRole = "INSTRUCTOR"
	RoleHeadTeacher AssignmentRole = "HEAD_TEACHER"
	RoleAssistant   AssignmentRole = "ASSISTANT"
)

// TeacherAssignment links a teacher to a class with a role. Several
// assignments can coexist per class.
type TeacherAssignment struct {
	ID          string         `db:"id" json:"id"`
	ClassID     string         `db:"class_id" json:"class_id"`
	TeacherID   string         `db:"teacher_id" json:"teacher_id"`
	TeacherName *string        `db:"teacher_name" json:"teacher_name,omitempty"`
	Role        AssignmentRole `db:"role" json:"role"`
	Status      string         `db:"status" json:"status"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}
