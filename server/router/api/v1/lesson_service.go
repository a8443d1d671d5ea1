package v1

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tuhang/eduplan/server/lesson"
	"github.com/tuhang/eduplan/server/practices"
	"github.com/tuhang/eduplan/store"
)

type lessonPlanResponse struct {
	UID             string  `json:"uid"`
	ClassID         string  `json:"class_id,omitempty"`
	Subject         string  `json:"subject"`
	Grade           string  `json:"grade,omitempty"`
	Topic           string  `json:"topic"`
	Duration        int     `json:"duration"`
	Content         string  `json:"lesson_plan"`
	ContentHTML     string  `json:"lesson_plan_html,omitempty"`
	ConfidenceScore float64 `json:"confidence_score"`
	CreatedTs       int64   `json:"created_ts"`
}

func toLessonPlanResponse(plan *store.LessonPlan) *lessonPlanResponse {
	return &lessonPlanResponse{
		UID:             plan.UID,
		ClassID:         plan.ClassID,
		Subject:         plan.Subject,
		Grade:           plan.Grade,
		Topic:           plan.Topic,
		Duration:        plan.Duration,
		Content:         plan.Content,
		ConfidenceScore: plan.ConfidenceScore,
		CreatedTs:       plan.CreatedTs,
	}
}

func (s *APIV1Service) CreateLessonPlan(c echo.Context) error {
	var req lesson.Request
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, err)
	}

	plan, err := s.Lessons.Generate(c.Request().Context(), &req)
	if err != nil {
		if practices.IsValidationError(err) {
			return errorJSON(c, http.StatusBadRequest, err)
		}
		return errorJSON(c, http.StatusInternalServerError, err)
	}

	payload, err := json.Marshal(map[string]any{
		"reference_materials": plan.ReferenceMaterials,
		"student_analysis":    plan.StudentAnalysis,
		"teaching_practices":  plan.TeachingPractices,
	})
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err)
	}

	created, err := s.Store.CreateLessonPlan(c.Request().Context(), &store.LessonPlan{
		ClassID:         req.ClassID,
		Subject:         req.Subject,
		Grade:           req.Grade,
		Topic:           req.Topic,
		Duration:        req.Duration,
		Content:         plan.Content,
		ConfidenceScore: plan.ConfidenceScore,
		Payload:         string(payload),
	})
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusCreated, toLessonPlanResponse(created))
}

func (s *APIV1Service) ListLessonPlans(c echo.Context) error {
	find := &store.FindLessonPlan{}

	if v := c.QueryParam("class_id"); v != "" {
		find.ClassID = &v
	}
	if v := c.QueryParam("subject"); v != "" {
		find.Subject = &v
	}
	limit := 20
	if raw := c.QueryParam("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return errorJSON(c, http.StatusBadRequest, &practices.ValidationError{Field: "limit", Value: raw})
		}
		limit = v
	}
	find.Limit = &limit

	plans, err := s.Store.ListLessonPlans(c.Request().Context(), find)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err)
	}

	list := make([]*lessonPlanResponse, 0, len(plans))
	for _, plan := range plans {
		list = append(list, toLessonPlanResponse(plan))
	}
	return c.JSON(http.StatusOK, map[string]any{
		"lesson_plans": list,
		"count":        len(list),
	})
}

func (s *APIV1Service) GetLessonPlan(c echo.Context) error {
	uid := c.Param("uid")

	plan, err := s.Store.GetLessonPlan(c.Request().Context(), &store.FindLessonPlan{UID: &uid})
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err)
	}
	if plan == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "lesson plan not found"})
	}

	resp := toLessonPlanResponse(plan)
	if c.QueryParam("format") == "html" {
		html, err := s.MarkdownService.Render(plan.Content)
		if err != nil {
			return errorJSON(c, http.StatusInternalServerError, err)
		}
		resp.ContentHTML = html
	}
	return c.JSON(http.StatusOK, resp)
}
