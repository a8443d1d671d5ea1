package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tuhang/eduplan/server/practices"
)

// GetStudentStatus returns the per-student learning status for a class.
func (s *APIV1Service) GetStudentStatus(c echo.Context) error {
	classID := c.Param("class_id")

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return errorJSON(c, http.StatusBadRequest, &practices.ValidationError{Field: "limit", Value: raw})
		}
		limit = v
	}

	students, err := s.Students.GetStudentStatus(c.Request().Context(), classID, limit)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"class_id": classID,
		"students": students,
		"count":    len(students),
	})
}

// GetClassPerformance returns the aggregate performance for a class subject.
func (s *APIV1Service) GetClassPerformance(c echo.Context) error {
	classID := c.Param("class_id")
	subject := c.QueryParam("subject")

	perf, err := s.Students.GetClassPerformance(c.Request().Context(), classID, subject)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, perf)
}
