package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func templateRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "class_id", "teacher_id", "day_of_week", "start_time", "end_time", "start_date", "end_date", "room_name", "status", "note", "created_at", "updated_at"}).
		AddRow("tpl-1", "class-1", nil, 1, "08:00", "10:00", "2026-02-02", "2026-02-16", "Phòng A1", "ACTIVE", nil, time.Now(), time.Now())
}

func TestScheduleTemplateRepositoryListAll(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleTemplateRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, class_id, teacher_id, day_of_week, start_time, end_time, start_date, end_date, room_name, status, note, created_at, updated_at FROM schedule_templates ORDER BY created_at ASC")).
		WillReturnRows(templateRows())

	templates, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "class-1", templates[0].ClassID)
	assert.Equal(t, 1, templates[0].DayOfWeek)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleTemplateRepositoryListByClass(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleTemplateRepository(db)

	mock.ExpectQuery("SELECT .+ FROM schedule_templates WHERE class_id = \\$1").
		WithArgs("class-1").
		WillReturnRows(templateRows())

	templates, err := repo.ListByClass(context.Background(), "class-1")
	require.NoError(t, err)
	assert.Len(t, templates, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
