package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vietlang-dev/vla-admin-api/internal/models"
)

const scheduleTemplateColumns = "id, class_id, teacher_id, day_of_week, start_time, end_time, start_date, end_date, room_name, status, note, created_at, updated_at"

// ScheduleTemplateRepository reads recurring schedule templates from Postgres.
type ScheduleTemplateRepository struct {
	db *sqlx.DB
}

// NewScheduleTemplateRepository constructs a ScheduleTemplateRepository.
func NewScheduleTemplateRepository(db *sqlx.DB) *ScheduleTemplateRepository {
	return &ScheduleTemplateRepository{db: db}
}

// ListAll returns every recurring template, oldest first.
func (r *ScheduleTemplateRepository) ListAll(ctx context.Context) ([]models.ScheduleTemplate, error) {
	query := fmt.Sprintf("SELECT %s FROM schedule_templates ORDER BY created_at ASC", scheduleTemplateColumns)
	var templates []models.ScheduleTemplate
	if err := r.db.SelectContext(ctx, &templates, query); err != nil {
		return nil, fmt.Errorf("list schedule templates: %w", err)
	}
	return templates, nil
}

// ListByClass returns the recurring templates of one class.
func (r *ScheduleTemplateRepository) ListByClass(ctx context.Context, classID string) ([]models.ScheduleTemplate, error) {
	query := fmt.Sprintf("SELECT %s FROM schedule_templates WHERE class_id = $1 ORDER BY day_of_week ASC, start_time ASC", scheduleTemplateColumns)
	var templates []models.ScheduleTemplate
	if err := r.db.SelectContext(ctx, &templates, query, classID); err != nil {
		return nil, fmt.Errorf("list schedule templates for class %s: %w", classID, err)
	}
	return templates, nil
}
