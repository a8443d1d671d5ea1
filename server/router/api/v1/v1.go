// Package v1 exposes the REST API.
package v1

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/tuhang/eduplan/internal/profile"
	"github.com/tuhang/eduplan/plugin/markdown"
	"github.com/tuhang/eduplan/server/lesson"
	"github.com/tuhang/eduplan/server/middleware"
	"github.com/tuhang/eduplan/server/practices"
	"github.com/tuhang/eduplan/server/studentdata"
	"github.com/tuhang/eduplan/store"
)

type APIV1Service struct {
	Profile         *profile.Profile
	Store           *store.Store
	Practices       *practices.Service
	Lessons         *lesson.Generator
	Students        *studentdata.Manager
	MarkdownService *markdown.Service

	logger  *slog.Logger
	limiter *middleware.RateLimiter
}

func NewAPIV1Service(profile *profile.Profile, st *store.Store, practiceService *practices.Service, generator *lesson.Generator, students *studentdata.Manager, logger *slog.Logger) *APIV1Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &APIV1Service{
		Profile:         profile,
		Store:           st,
		Practices:       practiceService,
		Lessons:         generator,
		Students:        students,
		MarkdownService: markdown.NewService(),
		logger:          logger,
		// 10 rps with burst 20 per client, matching the upstream API quota.
		limiter: middleware.NewRateLimiter(rate.Limit(10), 20),
	}
}

// Register mounts all routes on the given Echo instance.
func (s *APIV1Service) Register(e *echo.Echo) {
	e.Use(echomw.CORS())
	e.Use(middleware.RequestLogger(s.logger))

	e.GET("/healthz", s.Healthz)

	g := e.Group("/api/v1", s.limiter.Middleware())

	g.GET("/teaching-practices", s.GetTeachingPractices)
	g.GET("/teaching-strategies", s.GetTeachingStrategies)
	g.GET("/classroom-activities", s.GetClassroomActivities)
	g.GET("/assessment-methods", s.GetAssessmentMethods)
	g.GET("/classroom-management", s.GetClassroomManagement)
	g.POST("/batch-query", s.BatchQuery)
	g.GET("/enums", s.GetEnums)

	g.GET("/cache-stats", s.GetCacheStats)
	g.DELETE("/cache", s.ClearCache)

	g.GET("/classes/:class_id/student-status", s.GetStudentStatus)
	g.GET("/classes/:class_id/performance", s.GetClassPerformance)

	g.POST("/lesson-plans", s.CreateLessonPlan)
	g.GET("/lesson-plans", s.ListLessonPlans)
	g.GET("/lesson-plans/:uid", s.GetLessonPlan)
}

func (s *APIV1Service) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.Profile.Version,
	})
}

// errorJSON shapes API errors; validation failures carry the offending field.
func errorJSON(c echo.Context, status int, err error) error {
	body := map[string]string{"error": err.Error()}
	var ve *practices.ValidationError
	if errors.As(err, &ve) {
		body["field"] = ve.Field
	}
	return c.JSON(status, body)
}
