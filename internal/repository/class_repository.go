package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vietlang-dev/vla-admin-api/internal/models"
)

const classColumns = "id, name, language, level, status, created_at, updated_at"

// ClassRepository is the class catalogue backed by Postgres.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs a ClassRepository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// ListAll returns the full class catalogue ordered by name.
func (r *ClassRepository) ListAll(ctx context.Context) ([]models.Class, error) {
	query := fmt.Sprintf("SELECT %s FROM classes ORDER BY name ASC", classColumns)
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// FindByID fetches a class by ID.
func (r *ClassRepository) FindByID(ctx context.Context, id string) (*models.Class, error) {
	query := fmt.Sprintf("SELECT %s FROM classes WHERE id = $1", classColumns)
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		return nil, err
	}
	return &class, nil
}
