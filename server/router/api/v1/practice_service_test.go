package v1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuhang/eduplan/internal/profile"
	"github.com/tuhang/eduplan/server/practices"
	"github.com/tuhang/eduplan/server/studentdata"
)

// offlineSource simulates an unreachable provider so every category
// falls back to the default corpus.
type offlineSource struct{}

func (offlineSource) ResolveLibraryID(context.Context, string) (string, error) {
	return "", errors.New("provider offline")
}

func (offlineSource) GetLibraryDocs(context.Context, string, string, []string) (string, error) {
	return "", errors.New("provider offline")
}

func newTestAPI(t *testing.T) (*APIV1Service, *echo.Echo) {
	t.Helper()

	practiceService := practices.NewService(offlineSource{}, practices.ServiceConfig{
		CacheTTL:        time.Hour,
		CategoryTimeout: 100 * time.Millisecond,
	}, nil)
	t.Cleanup(practiceService.Close)

	svc := NewAPIV1Service(&profile.Profile{Mode: "dev", Version: "test"}, nil, practiceService, nil, studentdata.NewManager(nil), nil)
	e := echo.New()
	svc.Register(e)
	return svc, e
}

func doJSON(t *testing.T, e *echo.Echo, method, target string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHealthz(t *testing.T) {
	_, e := newTestAPI(t)

	code, body := doJSON(t, e, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])
}

func TestGetTeachingPractices(t *testing.T) {
	_, e := newTestAPI(t)

	code, body := doJSON(t, e, http.MethodGet,
		"/api/v1/teaching-practices?subject=%E6%95%B0%E5%AD%A6&grade=%E4%BA%94%E5%B9%B4%E7%BA%A7&limit=3")
	require.Equal(t, http.StatusOK, code)

	queryInfo, ok := body["query_info"].(map[string]any)
	require.True(t, ok, "missing query_info: %v", body)
	assert.Equal(t, "数学", queryInfo["subject"])
	assert.Equal(t, float64(3), queryInfo["limit"])

	strategies, ok := body["teaching_strategies"].([]any)
	require.True(t, ok)
	assert.NotEmpty(t, strategies)
}

func TestGetTeachingPractices_InvalidSubject(t *testing.T) {
	_, e := newTestAPI(t)

	code, body := doJSON(t, e, http.MethodGet, "/api/v1/teaching-practices?subject=nonsense")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "subject", body["field"])
}

func TestGetTeachingPractices_LimitTooLarge(t *testing.T) {
	_, e := newTestAPI(t)

	code, body := doJSON(t, e, http.MethodGet, "/api/v1/teaching-practices?limit=21")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "limit", body["field"])
}

func TestGetTeachingPractices_NonNumericLimit(t *testing.T) {
	_, e := newTestAPI(t)

	code, body := doJSON(t, e, http.MethodGet, "/api/v1/teaching-practices?limit=abc")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "limit", body["field"])
}

func TestConvenienceEndpoints(t *testing.T) {
	_, e := newTestAPI(t)

	t.Run("teaching strategies", func(t *testing.T) {
		code, body := doJSON(t, e, http.MethodGet, "/api/v1/teaching-strategies")
		require.Equal(t, http.StatusOK, code)
		assert.NotZero(t, body["count"])
	})

	t.Run("assessment methods filtered by type", func(t *testing.T) {
		code, body := doJSON(t, e, http.MethodGet,
			"/api/v1/assessment-methods?type=%E5%BD%A2%E6%88%90%E6%80%A7%E8%AF%84%E4%BC%B0")
		require.Equal(t, http.StatusOK, code)

		methods, ok := body["assessment_methods"].([]any)
		require.True(t, ok)
		for _, raw := range methods {
			method := raw.(map[string]any)
			assert.Equal(t, "形成性评估", method["type"])
		}
	})

	t.Run("classroom management filtered by category", func(t *testing.T) {
		code, body := doJSON(t, e, http.MethodGet,
			"/api/v1/classroom-management?category=%E6%97%B6%E9%97%B4%E7%AE%A1%E7%90%86")
		require.Equal(t, http.StatusOK, code)

		tips, ok := body["classroom_management"].([]any)
		require.True(t, ok)
		for _, raw := range tips {
			tip := raw.(map[string]any)
			assert.Equal(t, "时间管理", tip["category"])
		}
	})
}

func TestGetEnums(t *testing.T) {
	_, e := newTestAPI(t)

	code, body := doJSON(t, e, http.MethodGet, "/api/v1/enums")
	require.Equal(t, http.StatusOK, code)

	subjects, ok := body["subjects"].([]any)
	require.True(t, ok)
	assert.Len(t, subjects, 14)
	assert.Contains(t, subjects, "数学")

	grades, ok := body["grades"].([]any)
	require.True(t, ok)
	assert.Len(t, grades, 14)
	assert.Contains(t, grades, "五年级")

	objectives, ok := body["objectives"].([]any)
	require.True(t, ok)
	assert.Len(t, objectives, 8)
	assert.Contains(t, objectives, "问题解决")

	methodTypes, ok := body["method_types"].([]any)
	require.True(t, ok)
	assert.Len(t, methodTypes, 10)
	assert.Contains(t, methodTypes, "互动式教学")
}

func TestBatchQuery(t *testing.T) {
	_, e := newTestAPI(t)

	code, body := postJSON(t, e, "/api/v1/batch-query", `[
		{"subject": "数学", "limit": 3},
		{"subject": "nonsense"},
		{"grade": "五年级", "limit": 2}
	]`)
	require.Equal(t, http.StatusOK, code)

	assert.Equal(t, float64(3), body["total_queries"])
	assert.Equal(t, float64(2), body["successful_queries"])

	results, ok := body["batch_results"].([]any)
	require.True(t, ok)
	require.Len(t, results, 3)

	first := results[0].(map[string]any)
	assert.Equal(t, float64(0), first["query_index"])
	assert.Equal(t, true, first["success"])
	require.NotNil(t, first["response"])
	queryInfo := first["response"].(map[string]any)["query_info"].(map[string]any)
	assert.Equal(t, "数学", queryInfo["subject"])

	// The malformed query fails only its own slot.
	second := results[1].(map[string]any)
	assert.Equal(t, false, second["success"])
	assert.Equal(t, "subject", second["field"])
	_, hasResponse := second["response"]
	assert.False(t, hasResponse)

	third := results[2].(map[string]any)
	assert.Equal(t, float64(2), third["query_index"])
	assert.Equal(t, true, third["success"])
}

func TestBatchQuery_Limits(t *testing.T) {
	_, e := newTestAPI(t)

	t.Run("empty batch is rejected", func(t *testing.T) {
		code, body := postJSON(t, e, "/api/v1/batch-query", `[]`)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "queries", body["field"])
	})

	t.Run("more than ten queries are rejected", func(t *testing.T) {
		items := make([]string, 11)
		for i := range items {
			items[i] = `{"subject": "数学"}`
		}
		code, body := postJSON(t, e, "/api/v1/batch-query", "["+strings.Join(items, ",")+"]")
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "queries", body["field"])
	})
}

func TestCacheEndpoints(t *testing.T) {
	_, e := newTestAPI(t)

	// Warm the cache.
	code, _ := doJSON(t, e, http.MethodGet, "/api/v1/teaching-practices")
	require.Equal(t, http.StatusOK, code)

	code, body := doJSON(t, e, http.MethodGet, "/api/v1/cache-stats")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["total_entries"])

	code, _ = doJSON(t, e, http.MethodDelete, "/api/v1/cache")
	require.Equal(t, http.StatusOK, code)

	code, body = doJSON(t, e, http.MethodGet, "/api/v1/cache-stats")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(0), body["total_entries"])
}
