package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietlang-dev/vla-admin-api/internal/dto"
	appErrors "github.com/vietlang-dev/vla-admin-api/pkg/errors"
)

type calendarServiceMock struct {
	views      []dto.SessionView
	window     *dto.WindowMeta
	refresh    *dto.RefreshResult
	err        error
	lastReq    dto.SessionListRequest
	lastClass  string
	refreshHit bool
}

func (m *calendarServiceMock) Sessions(_ context.Context, req dto.SessionListRequest) ([]dto.SessionView, *dto.WindowMeta, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, nil, m.err
	}
	return m.views, m.window, nil
}

func (m *calendarServiceMock) ClassSessions(_ context.Context, classID string, req dto.SessionListRequest) ([]dto.SessionView, *dto.WindowMeta, error) {
	m.lastClass = classID
	m.lastReq = req
	if m.err != nil {
		return nil, nil, m.err
	}
	return m.views, m.window, nil
}

func (m *calendarServiceMock) ForceRefresh(context.Context) (*dto.RefreshResult, error) {
	m.refreshHit = true
	if m.err != nil {
		return nil, m.err
	}
	return m.refresh, nil
}

func calendarTestContext(t *testing.T, method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(method, target, nil)
	require.NoError(t, err)
	c.Request = req
	return c, w
}

func TestCalendarHandlerSessions(t *testing.T) {
	mock := &calendarServiceMock{
		views: []dto.SessionView{
			{ClassID: "class-1", Date: "2026-02-02", StartTime: "08:00", EndTime: "10:00"},
		},
		window: &dto.WindowMeta{Scope: "week", Start: "2026-02-02", End: "2026-02-08"},
	}
	handler := NewCalendarHandler(mock)
	c, w := calendarTestContext(t, http.MethodGet, "/calendar/sessions?scope=week&anchor=2026-02-04&q=mai")

	handler.Sessions(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "week", mock.lastReq.Scope)
	assert.Equal(t, "2026-02-04", mock.lastReq.Anchor)
	assert.Equal(t, "mai", mock.lastReq.Query)

	var envelope struct {
		Data []dto.SessionView      `json:"data"`
		Meta map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "2026-02-02", envelope.Data[0].Date)
	require.Contains(t, envelope.Meta, "window")
}

func TestCalendarHandlerSessionsServiceError(t *testing.T) {
	mock := &calendarServiceMock{err: appErrors.Clone(appErrors.ErrInvalidDateFormat, "invalid date filter")}
	handler := NewCalendarHandler(mock)
	c, w := calendarTestContext(t, http.MethodGet, "/calendar/sessions?scope=date&date=garbage")

	handler.Sessions(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalendarHandlerClassSessions(t *testing.T) {
	mock := &calendarServiceMock{window: &dto.WindowMeta{Scope: "all"}}
	handler := NewCalendarHandler(mock)
	c, w := calendarTestContext(t, http.MethodGet, "/calendar/classes/class-1/sessions")
	c.Params = gin.Params{{Key: "id", Value: "class-1"}}

	handler.ClassSessions(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "class-1", mock.lastClass)
}

func TestCalendarHandlerClassSessionsNotFound(t *testing.T) {
	mock := &calendarServiceMock{err: appErrors.Clone(appErrors.ErrNotFound, "class not found")}
	handler := NewCalendarHandler(mock)
	c, w := calendarTestContext(t, http.MethodGet, "/calendar/classes/class-404/sessions")
	c.Params = gin.Params{{Key: "id", Value: "class-404"}}

	handler.ClassSessions(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCalendarHandlerRefresh(t *testing.T) {
	mock := &calendarServiceMock{refresh: &dto.RefreshResult{Generation: 3, Applied: true, LoadedAt: time.Now().UTC()}}
	handler := NewCalendarHandler(mock)
	c, w := calendarTestContext(t, http.MethodPost, "/calendar/refresh")

	handler.Refresh(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mock.refreshHit)

	var envelope struct {
		Data dto.RefreshResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, uint64(3), envelope.Data.Generation)
	assert.True(t, envelope.Data.Applied)
}

func TestCalendarHandlerRefreshFetchFailure(t *testing.T) {
	mock := &calendarServiceMock{err: appErrors.Clone(appErrors.ErrFetchFailure, "calendar source fetch failed")}
	handler := NewCalendarHandler(mock)
	c, w := calendarTestContext(t, http.MethodPost, "/calendar/refresh")

	handler.Refresh(c)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCalendarHandlerNilService(t *testing.T) {
	handler := NewCalendarHandler(nil)
	c, w := calendarTestContext(t, http.MethodGet, "/calendar/sessions")

	handler.Sessions(c)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
