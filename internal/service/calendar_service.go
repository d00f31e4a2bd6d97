package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/vietlang-dev/vla-admin-api/internal/calendar"
	"github.com/vietlang-dev/vla-admin-api/internal/dto"
	"github.com/vietlang-dev/vla-admin-api/internal/models"
	appErrors "github.com/vietlang-dev/vla-admin-api/pkg/errors"
)

type templateStore interface {
	ListAll(ctx context.Context) ([]models.ScheduleTemplate, error)
	ListByClass(ctx context.Context, classID string) ([]models.ScheduleTemplate, error)
}

type overrideStore interface {
	ListAll(ctx context.Context) ([]models.SessionOverride, error)
	ListByClass(ctx context.Context, classID string) ([]models.SessionOverride, error)
}

type teacherDirectory interface {
	ListActive(ctx context.Context) ([]models.Teacher, error)
}

type assignmentDirectory interface {
	ListAll(ctx context.Context) ([]models.TeacherAssignment, error)
	ListByClass(ctx context.Context, classID string) ([]models.TeacherAssignment, error)
}

type classCatalog interface {
	ListAll(ctx context.Context) ([]models.Class, error)
	FindByID(ctx context.Context, id string) (*models.Class, error)
}

type directoryCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, keys ...string)
}

const (
	cacheKeyTeachers = "calendar:directory:teachers"
	cacheKeyClasses  = "calendar:directory:classes"
)

// Snapshot is the immutable recompute input: everything the pipeline needs,
// loaded in one barrier fetch. It is replaced wholesale, never patched.
type Snapshot struct {
	Templates   []models.ScheduleTemplate
	Overrides   []models.SessionOverride
	Teachers    []models.Teacher
	Assignments []models.TeacherAssignment
	Classes     []models.Class
	LoadedAt    time.Time
}

// CalendarConfig tunes the calendar service.
type CalendarConfig struct {
	UTCOffsetHours    int
	DirectoryCacheTTL time.Duration
}

// CalendarService materialises recurring templates and overrides into the
// session calendar. The pipeline itself is pure; the service owns the
// asynchronous boundary around the bulk source fetch.
type CalendarService struct {
	templates   templateStore
	overrides   overrideStore
	teachers    teacherDirectory
	assignments assignmentDirectory
	classes     classCatalog
	cache       directoryCache
	metrics     *MetricsService
	validator   *validator.Validate
	logger      *zap.Logger
	normalizer  calendar.Normalizer
	cacheTTL    time.Duration

	generation atomic.Uint64

	mu         sync.RWMutex
	snapshot   *Snapshot
	appliedGen uint64
}

// NewCalendarService wires the calendar dependencies.
func NewCalendarService(
	templates templateStore,
	overrides overrideStore,
	teachers teacherDirectory,
	assignments assignmentDirectory,
	classes classCatalog,
	cache directoryCache,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg CalendarConfig,
) *CalendarService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	offset := cfg.UTCOffsetHours
	if offset == 0 {
		offset = calendar.DefaultUTCOffsetHours
	}
	ttl := cfg.DirectoryCacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CalendarService{
		templates:   templates,
		overrides:   overrides,
		teachers:    teachers,
		assignments: assignments,
		classes:     classes,
		cache:       cache,
		metrics:     metrics,
		validator:   validate,
		logger:      logger,
		normalizer:  calendar.NewNormalizer(offset),
		cacheTTL:    ttl,
	}
}

// Refresh performs the barrier fetch over all calendar sources. Either every
// fetch succeeds and the snapshot is swapped wholesale, or the previous
// snapshot is retained untouched. A refresh that loses the generation race
// is dropped silently (Applied stays false).
func (s *CalendarService) Refresh(ctx context.Context) (*dto.RefreshResult, error) {
	gen := s.generation.Add(1)
	started := time.Now()

	snap := &Snapshot{LoadedAt: time.Now().UTC()}
	var wg sync.WaitGroup
	errs := make([]error, 5)
	wg.Add(5)
	go func() { defer wg.Done(); snap.Templates, errs[0] = s.templates.ListAll(ctx) }()
	go func() { defer wg.Done(); snap.Overrides, errs[1] = s.overrides.ListAll(ctx) }()
	go func() { defer wg.Done(); snap.Teachers, errs[2] = s.loadTeachers(ctx) }()
	go func() { defer wg.Done(); snap.Assignments, errs[3] = s.assignments.ListAll(ctx) }()
	go func() { defer wg.Done(); snap.Classes, errs[4] = s.loadClasses(ctx) }()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			s.metrics.ObserveRecompute(time.Since(started), err)
			return nil, appErrors.Wrap(err, appErrors.ErrFetchFailure.Code, appErrors.ErrFetchFailure.Status, "calendar source fetch failed")
		}
	}

	result := &dto.RefreshResult{
		Generation:  gen,
		Templates:   len(snap.Templates),
		Overrides:   len(snap.Overrides),
		Teachers:    len(snap.Teachers),
		Assignments: len(snap.Assignments),
		Classes:     len(snap.Classes),
		LoadedAt:    snap.LoadedAt,
	}

	// Apply only if no newer refresh has landed in the meantime.
	s.mu.Lock()
	if gen > s.appliedGen {
		s.snapshot = snap
		s.appliedGen = gen
		result.Applied = true
	}
	s.mu.Unlock()

	s.metrics.ObserveRecompute(time.Since(started), nil)
	if !result.Applied {
		s.metrics.RecordStaleRecompute()
		s.logger.Debug("stale recompute dropped", zap.Uint64("generation", gen))
		return result, nil
	}

	s.logger.Info("calendar sources refreshed",
		zap.Uint64("generation", gen),
		zap.Int("templates", result.Templates),
		zap.Int("overrides", result.Overrides),
		zap.Int("teachers", result.Teachers),
		zap.Int("assignments", result.Assignments),
		zap.Duration("took", time.Since(started)),
	)
	return result, nil
}

// ForceRefresh drops the directory caches before refreshing, so the next
// barrier fetch reads the sources of record.
func (s *CalendarService) ForceRefresh(ctx context.Context) (*dto.RefreshResult, error) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, cacheKeyTeachers, cacheKeyClasses)
	}
	return s.Refresh(ctx)
}

// Sessions runs the full pipeline over the current snapshot and returns the
// ordered, filtered session list.
func (s *CalendarService) Sessions(ctx context.Context, req dto.SessionListRequest) ([]dto.SessionView, *dto.WindowMeta, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session query")
	}

	snap, err := s.currentSnapshot(ctx)
	if err != nil {
		return nil, nil, err
	}

	scope, meta, err := s.resolveScope(req)
	if err != nil {
		return nil, nil, err
	}

	templates := snap.Templates
	overrides := snap.Overrides
	if req.ClassID != "" {
		templates = filterTemplatesByClass(templates, req.ClassID)
		overrides = filterOverridesByClass(overrides, req.ClassID)
	}

	views, dropped := s.runPipeline(templates, overrides, snap.Teachers, groupAssignments(snap.Assignments), indexClasses(snap.Classes), scope, req)
	meta.DroppedRecords = dropped
	return views, meta, nil
}

// ClassSessions materialises one class's calendar straight from the per-class
// stores, joined with the cached teacher directory.
func (s *CalendarService) ClassSessions(ctx context.Context, classID string, req dto.SessionListRequest) ([]dto.SessionView, *dto.WindowMeta, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session query")
	}

	class, err := s.classes.FindByID(ctx, classID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}

	scope, meta, err := s.resolveScope(req)
	if err != nil {
		return nil, nil, err
	}

	// Same all-or-nothing barrier as the global refresh, scoped to one class.
	var (
		wg          sync.WaitGroup
		templates   []models.ScheduleTemplate
		overrides   []models.SessionOverride
		assignments []models.TeacherAssignment
		teachers    []models.Teacher
	)
	errs := make([]error, 4)
	wg.Add(4)
	go func() { defer wg.Done(); templates, errs[0] = s.templates.ListByClass(ctx, classID) }()
	go func() { defer wg.Done(); overrides, errs[1] = s.overrides.ListByClass(ctx, classID) }()
	go func() { defer wg.Done(); assignments, errs[2] = s.assignments.ListByClass(ctx, classID) }()
	go func() { defer wg.Done(); teachers, errs[3] = s.loadTeachers(ctx) }()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, nil, appErrors.Wrap(err, appErrors.ErrFetchFailure.Code, appErrors.ErrFetchFailure.Status, "calendar source fetch failed")
		}
	}

	classes := map[string]models.Class{class.ID: *class}
	views, dropped := s.runPipeline(templates, overrides, teachers, groupAssignments(assignments), classes, scope, req)
	meta.DroppedRecords = dropped
	return views, meta, nil
}

// runPipeline is the pure part: expand, dedupe, resolve, decorate, order,
// filter. Re-running it on unchanged inputs yields identical output.
func (s *CalendarService) runPipeline(
	templates []models.ScheduleTemplate,
	overrides []models.SessionOverride,
	teachers []models.Teacher,
	assignmentsByClass map[string][]models.TeacherAssignment,
	classByID map[string]models.Class,
	scope calendar.Scope,
	req dto.SessionListRequest,
) ([]dto.SessionView, int) {
	window := rangeFromScope(scope)
	sessions, dropped := calendar.Expand(s.normalizer, templates, overrides, window)
	sessions = calendar.Dedupe(sessions)

	resolver := calendar.NewResolver(teachers)
	for i := range sessions {
		id, name := resolver.Resolve(sessions[i], assignmentsByClass[sessions[i].ClassID])
		sessions[i].ResolvedTeacherID = id
		sessions[i].TeacherName = name
		if class, ok := classByID[sessions[i].ClassID]; ok {
			sessions[i].Decorate(class.Name, class.Language)
		} else {
			sessions[i].Decorate(sessions[i].ClassID, "")
		}
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		a, b := sessions[i], sessions[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		return a.ClassName < b.ClassName
	})

	filtered := calendar.Filter(sessions, calendar.Query{
		Scope:  scope,
		Text:   req.Query,
		Status: req.Status,
		Room:   req.Room,
	})
	s.metrics.ObserveSessionQuery(len(filtered), dropped)
	if dropped > 0 {
		s.logger.Warn("calendar records dropped", zap.Int("count", dropped))
	}

	today := s.normalizer.Today(time.Now())
	views := make([]dto.SessionView, 0, len(filtered))
	for _, sess := range filtered {
		views = append(views, toSessionView(sess, today))
	}
	return views, dropped
}

func (s *CalendarService) currentSnapshot(ctx context.Context) (*Snapshot, error) {
	s.mu.RLock()
	snap := s.snapshot
	s.mu.RUnlock()
	if snap != nil {
		return snap, nil
	}

	if _, err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, appErrors.Clone(appErrors.ErrFetchFailure, "calendar sources unavailable")
	}
	return s.snapshot, nil
}

func (s *CalendarService) resolveScope(req dto.SessionListRequest) (calendar.Scope, *dto.WindowMeta, error) {
	switch req.Scope {
	case "date":
		d, err := s.normalizer.Normalize(req.Date)
		if err != nil {
			return calendar.Scope{}, nil, appErrors.Clone(appErrors.ErrInvalidDateFormat, "invalid date filter")
		}
		return calendar.DateScope(d), &dto.WindowMeta{Scope: "date", Start: d.String(), End: d.String(), Anchor: d.String()}, nil
	case "week", "month":
		anchor := s.normalizer.Today(time.Now())
		if req.Anchor != "" {
			var err error
			anchor, err = s.normalizer.Normalize(req.Anchor)
			if err != nil {
				return calendar.Scope{}, nil, appErrors.Clone(appErrors.ErrInvalidDateFormat, "invalid anchor date")
			}
		}
		var start, end calendar.LocalDate
		if req.Scope == "month" {
			start, end = calendar.MonthWindow(anchor)
		} else {
			start, end = calendar.WeekWindow(anchor)
		}
		return calendar.WindowScope(start, end), &dto.WindowMeta{Scope: req.Scope, Start: start.String(), End: end.String(), Anchor: anchor.String()}, nil
	default:
		return calendar.AllScope(), &dto.WindowMeta{Scope: "all"}, nil
	}
}

func (s *CalendarService) loadTeachers(ctx context.Context) ([]models.Teacher, error) {
	if s.cache != nil {
		var cached []models.Teacher
		err := s.cache.Get(ctx, cacheKeyTeachers, &cached)
		if err == nil {
			s.metrics.RecordCacheOperation(true)
			return cached, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("teacher directory cache read failed", zap.Error(err))
		}
		s.metrics.RecordCacheOperation(false)
	}

	teachers, err := s.teachers.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeyTeachers, teachers, s.cacheTTL); err != nil {
			s.logger.Warn("teacher directory cache write failed", zap.Error(err))
		}
	}
	return teachers, nil
}

func (s *CalendarService) loadClasses(ctx context.Context) ([]models.Class, error) {
	if s.cache != nil {
		var cached []models.Class
		err := s.cache.Get(ctx, cacheKeyClasses, &cached)
		if err == nil {
			s.metrics.RecordCacheOperation(true)
			return cached, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("class catalogue cache read failed", zap.Error(err))
		}
		s.metrics.RecordCacheOperation(false)
	}

	classes, err := s.classes.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeyClasses, classes, s.cacheTTL); err != nil {
			s.logger.Warn("class catalogue cache write failed", zap.Error(err))
		}
	}
	return classes, nil
}

func rangeFromScope(scope calendar.Scope) calendar.Range {
	switch scope.Kind {
	case calendar.ScopeSingleDate:
		return calendar.Range{Start: scope.Date, End: scope.Date}
	case calendar.ScopeWindow:
		return calendar.Range{Start: scope.Start, End: scope.End}
	default:
		return calendar.Range{}
	}
}

func groupAssignments(assignments []models.TeacherAssignment) map[string][]models.TeacherAssignment {
	grouped := make(map[string][]models.TeacherAssignment, len(assignments))
	for _, a := range assignments {
		grouped[a.ClassID] = append(grouped[a.ClassID], a)
	}
	return grouped
}

func indexClasses(classes []models.Class) map[string]models.Class {
	indexed := make(map[string]models.Class, len(classes))
	for _, c := range classes {
		indexed[c.ID] = c
	}
	return indexed
}

func filterTemplatesByClass(templates []models.ScheduleTemplate, classID string) []models.ScheduleTemplate {
	out := make([]models.ScheduleTemplate, 0, len(templates))
	for _, tpl := range templates {
		if tpl.ClassID == classID {
			out = append(out, tpl)
		}
	}
	return out
}

func filterOverridesByClass(overrides []models.SessionOverride, classID string) []models.SessionOverride {
	out := make([]models.SessionOverride, 0, len(overrides))
	for _, ov := range overrides {
		if ov.ClassID == classID {
			out = append(out, ov)
		}
	}
	return out
}

func toSessionView(s calendar.Session, today calendar.LocalDate) dto.SessionView {
	return dto.SessionView{
		ClassID:     s.ClassID,
		ClassName:   s.ClassName,
		SourceID:    s.SourceID,
		Origin:      string(s.Origin),
		Date:        s.Date.String(),
		DisplayDate: s.Date.Display(),
		DayOfWeek:   s.DayOfWeek,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		TimeRange:   s.TimeRange(),
		TeacherID:   s.ResolvedTeacherID,
		TeacherName: s.TeacherName,
		RoomName:    s.RoomName,
		Status:      s.Status,
		Note:        s.Note,
		ColorTag:    s.ColorTag,
		Title:       s.Title,
		IsToday:     s.Date.Equal(today),
	}
}
