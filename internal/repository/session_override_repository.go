package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vietlang-dev/vla-admin-api/internal/models"
)

const sessionOverrideColumns = "id, class_id, schedule_id, date, day_of_week, start_time, end_time, teacher_id, room_name, status, note, created_at, updated_at"

// SessionOverrideRepository reads persisted session overrides from Postgres.
type SessionOverrideRepository struct {
	db *sqlx.DB
}

// NewSessionOverrideRepository constructs a SessionOverrideRepository.
func NewSessionOverrideRepository(db *sqlx.DB) *SessionOverrideRepository {
	return &SessionOverrideRepository{db: db}
}

// ListAll returns every persisted session override ordered by date.
func (r *SessionOverrideRepository) ListAll(ctx context.Context) ([]models.SessionOverride, error) {
	query := fmt.Sprintf("SELECT %s FROM session_overrides ORDER BY date ASC, start_time ASC", sessionOverrideColumns)
	var overrides []models.SessionOverride
	if err := r.db.SelectContext(ctx, &overrides, query); err != nil {
		return nil, fmt.Errorf("list session overrides: %w", err)
	}
	return overrides, nil
}

// ListByClass returns the overrides of one class ordered by date.
func (r *SessionOverrideRepository) ListByClass(ctx context.Context, classID string) ([]models.SessionOverride, error) {
	query := fmt.Sprintf("SELECT %s FROM session_overrides WHERE class_id = $1 ORDER BY date ASC, start_time ASC", sessionOverrideColumns)
	var overrides []models.SessionOverride
	if err := r.db.SelectContext(ctx, &overrides, query, classID); err != nil {
		return nil, fmt.Errorf("list session overrides for class %s: %w", classID, err)
	}
	return overrides, nil
}
