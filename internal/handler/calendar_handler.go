package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vietlang-dev/vla-admin-api/internal/dto"
	appErrors "github.com/vietlang-dev/vla-admin-api/pkg/errors"
	"github.com/vietlang-dev/vla-admin-api/pkg/response"
)

type calendarService interface {
	Sessions(ctx context.Context, req dto.SessionListRequest) ([]dto.SessionView, *dto.WindowMeta, error)
	ClassSessions(ctx context.Context, classID string, req dto.SessionListRequest) ([]dto.SessionView, *dto.WindowMeta, error)
	ForceRefresh(ctx context.Context) (*dto.RefreshResult, error)
}

// CalendarHandler wires the calendar service to HTTP endpoints.
type CalendarHandler struct {
	service calendarService
}

// NewCalendarHandler constructs the handler.
func NewCalendarHandler(service calendarService) *CalendarHandler {
	return &CalendarHandler{service: service}
}

// Sessions godoc
// @Summary List materialised calendar sessions
// @Tags Calendar
// @Produce json
// @Param scope query string false "Date scope: all, date, week or month" default(all)
// @Param date query string false "Date (YYYY-MM-DD), required when scope=date"
// @Param anchor query string false "Anchor date for week/month windows. Defaults to today"
// @Param q query string false "Free-text filter (teacher, room, status, date, time)"
// @Param status query string false "Exact status filter"
// @Param room query string false "Exact room filter"
// @Param class_id query string false "Restrict to one class"
// @Success 200 {object} response.Envelope
// @Router /calendar/sessions [get]
func (h *CalendarHandler) Sessions(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req dto.SessionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid query parameters"))
		return
	}
	start := time.Now()
	views, window, err := h.service.Sessions(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, views, nil, map[string]interface{}{
		"window":             window,
		"processing_time_ms": time.Since(start).Milliseconds(),
	})
}

// ClassSessions godoc
// @Summary List materialised sessions for one class
// @Tags Calendar
// @Produce json
// @Param id path string true "Class ID"
// @Param scope query string false "Date scope: all, date, week or month" default(all)
// @Param anchor query string false "Anchor date for week/month windows"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /calendar/classes/{id}/sessions [get]
func (h *CalendarHandler) ClassSessions(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	classID := strings.TrimSpace(c.Param("id"))
	if classID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "class id is required"))
		return
	}
	var req dto.SessionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid query parameters"))
		return
	}
	start := time.Now()
	views, window, err := h.service.ClassSessions(c.Request.Context(), classID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, views, nil, map[string]interface{}{
		"window":             window,
		"processing_time_ms": time.Since(start).Milliseconds(),
	})
}

// Refresh godoc
// @Summary Refresh the calendar sources
// @Tags Calendar
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /calendar/refresh [post]
func (h *CalendarHandler) Refresh(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	result, err := h.service.ForceRefresh(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
