package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/vietlang-dev/vla-admin-api/api/swagger"
	"github.com/vietlang-dev/vla-admin-api/internal/handler"
	"github.com/vietlang-dev/vla-admin-api/internal/middleware"
	"github.com/vietlang-dev/vla-admin-api/internal/repository"
	"github.com/vietlang-dev/vla-admin-api/internal/service"
	"github.com/vietlang-dev/vla-admin-api/pkg/cache"
	"github.com/vietlang-dev/vla-admin-api/pkg/config"
	"github.com/vietlang-dev/vla-admin-api/pkg/database"
	"github.com/vietlang-dev/vla-admin-api/pkg/logger"
	corsmiddleware "github.com/vietlang-dev/vla-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/vietlang-dev/vla-admin-api/pkg/middleware/requestid"
)

// @title VLA Admin API
// @version 1.0.0
// @description Back-office calendar service for the language academy: materialises weekly schedule templates and session overrides into the session calendar.
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// The calendar works without Redis, just without the directory cache.
		logr.Warn("redis unavailable, directory caching disabled", zap.Error(err))
		redisClient = nil
	}

	validate := validator.New()

	templateRepo := repository.NewScheduleTemplateRepository(db)
	overrideRepo := repository.NewSessionOverrideRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	assignmentRepo := repository.NewTeacherAssignmentRepository(db)
	classRepo := repository.NewClassRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	calendarSvc := service.NewCalendarService(
		templateRepo,
		overrideRepo,
		teacherRepo,
		assignmentRepo,
		classRepo,
		cacheRepo,
		metricsSvc,
		validate,
		logr,
		service.CalendarConfig{
			UTCOffsetHours:    cfg.Calendar.UTCOffsetHours,
			DirectoryCacheTTL: cfg.Calendar.DirectoryCacheTTL,
		},
	)
	calendarHandler := handler.NewCalendarHandler(calendarSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if metricsSvc != nil {
		r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		calendarGroup := api.Group("/calendar")
		calendarGroup.GET("/sessions", calendarHandler.Sessions)
		calendarGroup.GET("/classes/:id/sessions", calendarHandler.ClassSessions)
		calendarGroup.POST("/refresh", calendarHandler.Refresh)
	}

	// Warm the first snapshot so the initial session query does not pay the
	// barrier-fetch latency.
	warmCtx, cancelWarm := context.WithTimeout(context.Background(), 10*time.Second)
	if _, err := calendarSvc.Refresh(warmCtx); err != nil {
		logr.Warn("initial calendar refresh failed", zap.Error(err))
	}
	cancelWarm()

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("shutdown incomplete", zap.Error(err))
	}
}
