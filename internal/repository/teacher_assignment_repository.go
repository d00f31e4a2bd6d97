package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vietlang-dev/vla-admin-api/internal/models"
)

const teacherAssignmentColumns = "ta.id, ta.class_id, ta.teacher_id, t.full_name AS teacher_name, ta.role, ta.status, ta.created_at"

// TeacherAssignmentRepository reads class role assignments from Postgres.
type TeacherAssignmentRepository struct {
	db *sqlx.DB
}

// NewTeacherAssignmentRepository constructs a TeacherAssignmentRepository.
func NewTeacherAssignmentRepository(db *sqlx.DB) *TeacherAssignmentRepository {
	return &TeacherAssignmentRepository{db: db}
}

// ListAll returns every role assignment joined with the teacher's name.
// The cached name lets the resolver fall back when the directory misses.
func (r *TeacherAssignmentRepository) ListAll(ctx context.Context) ([]models.TeacherAssignment, error) {
	query := fmt.Sprintf("SELECT %s FROM teacher_assignments ta LEFT JOIN teachers t ON t.id = ta.teacher_id ORDER BY ta.created_at ASC", teacherAssignmentColumns)
	var assignments []models.TeacherAssignment
	if err := r.db.SelectContext(ctx, &assignments, query); err != nil {
		return nil, fmt.Errorf("list teacher assignments: %w", err)
	}
	return assignments, nil
}

// ListByClass returns the role assignments of one class.
func (r *TeacherAssignmentRepository) ListByClass(ctx context.Context, classID string) ([]models.TeacherAssignment, error) {
	query := fmt.Sprintf("SELECT %s FROM teacher_assignments ta LEFT JOIN teachers t ON t.id = ta.teacher_id WHERE ta.class_id = $1 ORDER BY ta.created_at ASC", teacherAssignmentColumns)
	var assignments []models.TeacherAssignment
	if err := r.db.SelectContext(ctx, &assignments, query, classID); err != nil {
		return nil, fmt.Errorf("list teacher assignments for class %s: %w", classID, err)
	}
	return assignments, nil
}
