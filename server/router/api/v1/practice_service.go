package v1

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tuhang/eduplan/server/practices"
)

// maxBatchQueries caps one batch request, protecting the provider quota.
const maxBatchQueries = 10

// queryFromContext builds a practices query from URL parameters.
// keywords is a comma-separated list; limit defaults inside the service.
func queryFromContext(c echo.Context) (practices.Query, error) {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return practices.Query{}, &practices.ValidationError{Field: "limit", Value: raw}
		}
		limit = v
	}

	var keywords []string
	if raw := c.QueryParam("keywords"); raw != "" {
		for _, kw := range strings.Split(raw, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				keywords = append(keywords, kw)
			}
		}
	}

	return practices.NewQuery(
		c.QueryParam("subject"),
		c.QueryParam("grade"),
		c.QueryParam("objective"),
		c.QueryParam("method_type"),
		keywords,
		limit,
	)
}

func (s *APIV1Service) GetTeachingPractices(c echo.Context) error {
	query, err := queryFromContext(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err)
	}

	resp, err := s.Practices.GetTeachingPractices(c.Request().Context(), query)
	if err != nil {
		if practices.IsValidationError(err) {
			return errorJSON(c, http.StatusBadRequest, err)
		}
		return errorJSON(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *APIV1Service) GetTeachingStrategies(c echo.Context) error {
	query, err := queryFromContext(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err)
	}

	strategies, err := s.Practices.GetTeachingStrategies(c.Request().Context(), query)
	if err != nil {
		if practices.IsValidationError(err) {
			return errorJSON(c, http.StatusBadRequest, err)
		}
		return errorJSON(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"teaching_strategies": strategies,
		"count":               len(strategies),
	})
}

func (s *APIV1Service) GetClassroomActivities(c echo.Context) error {
	query, err := queryFromContext(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err)
	}

	activities, err := s.Practices.GetClassroomActivities(c.Request().Context(), query)
	if err != nil {
		if practices.IsValidationError(err) {
			return errorJSON(c, http.StatusBadRequest, err)
		}
		return errorJSON(c, http.StatusInternalServerError, err)
	}

	// Optional substring filter on the duration text, e.g. "20".
	if duration := c.QueryParam("duration"); duration != "" {
		filtered := activities[:0:0]
		for _, activity := range activities {
			if strings.Contains(activity.Duration, duration) {
				filtered = append(filtered, activity)
			}
		}
		activities = filtered
	}

	return c.JSON(http.StatusOK, map[string]any{
		"classroom_activities": activities,
		"count":                len(activities),
	})
}

func (s *APIV1Service) GetAssessmentMethods(c echo.Context) error {
	query, err := queryFromContext(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err)
	}

	methods, err := s.Practices.GetAssessmentMethods(c.Request().Context(), query)
	if err != nil {
		if practices.IsValidationError(err) {
			return errorJSON(c, http.StatusBadRequest, err)
		}
		return errorJSON(c, http.StatusInternalServerError, err)
	}

	if assessmentType := c.QueryParam("type"); assessmentType != "" {
		filtered := methods[:0:0]
		for _, method := range methods {
			if method.Type == assessmentType {
				filtered = append(filtered, method)
			}
		}
		methods = filtered
	}

	return c.JSON(http.StatusOK, map[string]any{
		"assessment_methods": methods,
		"count":              len(methods),
	})
}

func (s *APIV1Service) GetClassroomManagement(c echo.Context) error {
	query, err := queryFromContext(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err)
	}

	tips, err := s.Practices.GetClassroomManagement(c.Request().Context(), query)
	if err != nil {
		if practices.IsValidationError(err) {
			return errorJSON(c, http.StatusBadRequest, err)
		}
		return errorJSON(c, http.StatusInternalServerError, err)
	}

	if category := c.QueryParam("category"); category != "" {
		filtered := tips[:0:0]
		for _, tip := range tips {
			if tip.Category == category {
				filtered = append(filtered, tip)
			}
		}
		tips = filtered
	}

	return c.JSON(http.StatusOK, map[string]any{
		"classroom_management": tips,
		"count":                len(tips),
	})
}

// GetEnums returns the four query vocabularies for UI option lists.
func (s *APIV1Service) GetEnums(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{
		"subjects":     practices.Subjects(),
		"grades":       practices.GradeLevels(),
		"objectives":   practices.TeachingObjectives(),
		"method_types": practices.TeachingMethodTypes(),
	})
}

type batchQueryItem struct {
	Subject    string   `json:"subject"`
	Grade      string   `json:"grade"`
	Objective  string   `json:"objective"`
	MethodType string   `json:"method_type"`
	Keywords   []string `json:"keywords,omitempty"`
	Limit      int      `json:"limit"`
}

type batchResultItem struct {
	QueryIndex int                 `json:"query_index"`
	Success    bool                `json:"success"`
	Response   *practices.Response `json:"response,omitempty"`
	Error      string              `json:"error,omitempty"`
	Field      string              `json:"field,omitempty"`
}

func toBatchResultError(index int, err error) batchResultItem {
	item := batchResultItem{QueryIndex: index, Error: err.Error()}
	var ve *practices.ValidationError
	if errors.As(err, &ve) {
		item.Field = ve.Field
	}
	return item
}

// BatchQuery processes up to maxBatchQueries queries and returns results in
// matching positions. One malformed query fails only its own slot.
func (s *APIV1Service) BatchQuery(c echo.Context) error {
	var items []batchQueryItem
	if err := c.Bind(&items); err != nil {
		return errorJSON(c, http.StatusBadRequest, err)
	}
	if len(items) == 0 {
		return errorJSON(c, http.StatusBadRequest, &practices.ValidationError{Field: "queries", Value: "empty"})
	}
	if len(items) > maxBatchQueries {
		return errorJSON(c, http.StatusBadRequest, &practices.ValidationError{Field: "queries", Value: strconv.Itoa(len(items))})
	}

	results := make([]batchResultItem, len(items))
	queries := make([]practices.Query, 0, len(items))
	positions := make([]int, 0, len(items))
	for i, item := range items {
		query, err := practices.NewQuery(item.Subject, item.Grade, item.Objective, item.MethodType, item.Keywords, item.Limit)
		if err != nil {
			results[i] = toBatchResultError(i, err)
			continue
		}
		queries = append(queries, query)
		positions = append(positions, i)
	}

	for j, result := range s.Practices.GetTeachingPracticesBatch(c.Request().Context(), queries) {
		i := positions[j]
		if result.Err != nil {
			results[i] = toBatchResultError(i, result.Err)
			continue
		}
		results[i] = batchResultItem{QueryIndex: i, Success: true, Response: result.Response}
	}

	successful := 0
	for _, result := range results {
		if result.Success {
			successful++
		}
	}
	return c.JSON(http.StatusOK, map[string]any{
		"batch_results":      results,
		"total_queries":      len(items),
		"successful_queries": successful,
		"timestamp":          time.Now(),
	})
}

func (s *APIV1Service) GetCacheStats(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Practices.CacheStats())
}

func (s *APIV1Service) ClearCache(c echo.Context) error {
	s.Practices.ClearCache()
	return c.JSON(http.StatusOK, map[string]string{"status": "cache cleared"})
}
