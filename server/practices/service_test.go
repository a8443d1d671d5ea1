package practices

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSource is an in-memory ContentSource. Its docs content trips every
// category parser so live records show up in all four lists.
type mockSource struct {
	mu           sync.Mutex
	resolveCalls int
	docsCalls    int

	failAll       bool
	failLibraries map[string]bool
	delay         map[string]time.Duration
}

const mockDocsContent = "互动与参与：小组合作学习，配合形成性评估与课堂管理、纪律要点。"

var errProviderDown = errors.New("provider unavailable")

func (m *mockSource) ResolveLibraryID(ctx context.Context, query string) (string, error) {
	m.mu.Lock()
	m.resolveCalls++
	m.mu.Unlock()

	if d := m.delay[query]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if m.failAll || m.failLibraries[query] {
		return "", errProviderDown
	}
	return "lib-" + query, nil
}

func (m *mockSource) GetLibraryDocs(ctx context.Context, libraryID, topic string, keywords []string) (string, error) {
	m.mu.Lock()
	m.docsCalls++
	m.mu.Unlock()
	return mockDocsContent, nil
}

func (m *mockSource) calls() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolveCalls, m.docsCalls
}

func newTestService(source ContentSource) *Service {
	return NewService(source, ServiceConfig{
		CacheTTL:        time.Hour,
		CategoryTimeout: 200 * time.Millisecond,
	}, nil)
}

func TestService_CacheHitIssuesNoExternalCalls(t *testing.T) {
	source := &mockSource{}
	svc := newTestService(source)
	defer svc.Close()

	query := Query{Subject: SubjectMath, Grade: Grade5, Limit: 5}

	first, err := svc.GetTeachingPractices(context.Background(), query)
	require.NoError(t, err)

	resolvesAfterFirst, docsAfterFirst := source.calls()
	require.Positive(t, resolvesAfterFirst)

	second, err := svc.GetTeachingPractices(context.Background(), query)
	require.NoError(t, err)

	resolvesAfterSecond, docsAfterSecond := source.calls()
	assert.Equal(t, resolvesAfterFirst, resolvesAfterSecond, "cache hit must not touch the provider")
	assert.Equal(t, docsAfterFirst, docsAfterSecond)

	// Cached responses come back unchanged, timestamp included.
	assert.Same(t, first, second)
	assert.Equal(t, first.Timestamp, second.Timestamp)
}

func TestService_TTLExpiryTriggersRefetch(t *testing.T) {
	source := &mockSource{}
	svc := newTestService(source)
	defer svc.Close()

	now := time.Now()
	svc.cache.now = func() time.Time { return now }

	query := Query{Subject: SubjectMath, Limit: 3}
	_, err := svc.GetTeachingPractices(context.Background(), query)
	require.NoError(t, err)

	resolvesBefore, _ := source.calls()

	now = now.Add(time.Hour + time.Minute)

	stats := svc.CacheStats()
	assert.Equal(t, 0, stats.ValidEntries, "expired key must not count as valid")

	_, err = svc.GetTeachingPractices(context.Background(), query)
	require.NoError(t, err)

	resolvesAfter, _ := source.calls()
	assert.Greater(t, resolvesAfter, resolvesBefore, "expired entry must cause a fresh fetch")
}

func TestService_KeywordOrderHitsSameEntry(t *testing.T) {
	source := &mockSource{}
	svc := newTestService(source)
	defer svc.Close()

	first, err := svc.GetTeachingPractices(context.Background(), Query{
		Subject: SubjectMath, Keywords: []string{"互动", "数学"}, Limit: 5,
	})
	require.NoError(t, err)

	resolves, _ := source.calls()

	second, err := svc.GetTeachingPractices(context.Background(), Query{
		Subject: SubjectMath, Keywords: []string{"数学", "互动"}, Limit: 5,
	})
	require.NoError(t, err)

	resolvesAfter, _ := source.calls()
	assert.Equal(t, resolves, resolvesAfter)
	assert.Same(t, first, second)
}

func TestService_TotalFallback(t *testing.T) {
	source := &mockSource{failAll: true}
	svc := newTestService(source)
	defer svc.Close()

	response, err := svc.GetTeachingPractices(context.Background(), Query{Subject: SubjectHistory, Limit: 5})
	require.NoError(t, err, "provider failure must never surface to the caller")

	require.NotEmpty(t, response.TeachingStrategies)
	require.NotEmpty(t, response.ClassroomActivities)
	require.NotEmpty(t, response.AssessmentMethods)
	require.NotEmpty(t, response.ClassroomManagement)

	for _, strategy := range response.TeachingStrategies {
		assert.Equal(t, SourceDefault, strategy.Source)
	}
	for _, method := range response.AssessmentMethods {
		assert.Equal(t, SourceDefault, method.Source)
	}
}

func TestService_PartialFallbackIsolation(t *testing.T) {
	source := &mockSource{
		failLibraries: map[string]bool{"教育评估方法": true},
	}
	svc := newTestService(source)
	defer svc.Close()

	response, err := svc.GetTeachingPractices(context.Background(), Query{Subject: SubjectMath, Limit: 2})
	require.NoError(t, err)

	// The failed category degrades to defaults.
	require.NotEmpty(t, response.AssessmentMethods)
	for _, method := range response.AssessmentMethods {
		assert.Equal(t, SourceDefault, method.Source)
	}

	// Its siblings keep live-sourced content.
	require.NotEmpty(t, response.TeachingStrategies)
	assert.Equal(t, SourceContext7, response.TeachingStrategies[0].Source)
	require.NotEmpty(t, response.ClassroomActivities)
	assert.Equal(t, SourceContext7, response.ClassroomActivities[0].Source)
	require.NotEmpty(t, response.ClassroomManagement)
	assert.Equal(t, SourceContext7, response.ClassroomManagement[0].Source)
}

func TestService_SlowCategoryBoundsLatency(t *testing.T) {
	// One category hangs well past the per-category budget; the other three
	// are instant. Aggregation must finish near the single budget, not near
	// the sum of four of them.
	source := &mockSource{
		delay: map[string]time.Duration{"课堂管理": time.Second},
	}
	svc := NewService(source, ServiceConfig{
		CacheTTL:        time.Hour,
		CategoryTimeout: 100 * time.Millisecond,
	}, nil)
	defer svc.Close()

	start := time.Now()
	response, err := svc.GetTeachingPractices(context.Background(), Query{Limit: 2})
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Less(t, elapsed, 500*time.Millisecond, "latency must be bounded by one category budget")

	require.NotEmpty(t, response.ClassroomManagement)
	assert.Equal(t, SourceDefault, response.ClassroomManagement[0].Source)
	require.NotEmpty(t, response.TeachingStrategies)
	assert.Equal(t, SourceContext7, response.TeachingStrategies[0].Source)
}

func TestService_BatchIndependence(t *testing.T) {
	source := &mockSource{}
	svc := newTestService(source)
	defer svc.Close()

	queries := []Query{
		{Subject: SubjectMath, Limit: 3},
		{Subject: "不存在的学科", Limit: 3},
		{Subject: SubjectEnglish, Limit: 3},
	}

	results := svc.GetTeachingPracticesBatch(context.Background(), queries)
	require.Len(t, results, 3)

	require.NoError(t, results[0].Err)
	require.NotNil(t, results[0].Response)
	assert.Equal(t, string(SubjectMath), results[0].Response.QueryInfo.Subject)

	require.Error(t, results[1].Err)
	assert.True(t, IsValidationError(results[1].Err))
	assert.Nil(t, results[1].Response)

	require.NoError(t, results[2].Err)
	require.NotNil(t, results[2].Response)
	assert.Equal(t, string(SubjectEnglish), results[2].Response.QueryInfo.Subject)
}

func TestService_ExampleQuery(t *testing.T) {
	source := &mockSource{}
	svc := newTestService(source)
	defer svc.Close()

	query := Query{
		Subject:   SubjectMath,
		Grade:     Grade5,
		Objective: ObjectiveProblemSolving,
		Limit:     3,
	}

	response, err := svc.GetTeachingPractices(context.Background(), query)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(response.TeachingStrategies), 3)
	assert.LessOrEqual(t, len(response.ClassroomActivities), 3)
	assert.LessOrEqual(t, len(response.AssessmentMethods), 3)
	assert.LessOrEqual(t, len(response.ClassroomManagement), 3)
	assert.Equal(t, "数学", response.QueryInfo.Subject)
	assert.Equal(t, "五年级", response.QueryInfo.Grade)
	assert.False(t, response.Timestamp.IsZero())
	assert.NotEmpty(t, response.AdditionalResources)
}

func TestService_ValidationErrorsSurfaceImmediately(t *testing.T) {
	source := &mockSource{}
	svc := newTestService(source)
	defer svc.Close()

	_, err := svc.GetTeachingPractices(context.Background(), Query{Limit: MaxLimit + 1})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	resolves, docs := source.calls()
	assert.Zero(t, resolves, "invalid queries must not reach the provider")
	assert.Zero(t, docs)
}

func TestService_ConvenienceViewsShareCache(t *testing.T) {
	source := &mockSource{}
	svc := newTestService(source)
	defer svc.Close()

	query := Query{Subject: SubjectMath, Limit: 4}

	strategies, err := svc.GetTeachingStrategies(context.Background(), query)
	require.NoError(t, err)
	require.NotEmpty(t, strategies)

	resolves, _ := source.calls()

	activities, err := svc.GetClassroomActivities(context.Background(), query)
	require.NoError(t, err)
	require.NotEmpty(t, activities)

	resolvesAfter, _ := source.calls()
	assert.Equal(t, resolves, resolvesAfter, "projection views share the full-query cache entry")

	methods, err := svc.GetAssessmentMethods(context.Background(), query)
	require.NoError(t, err)
	require.NotEmpty(t, methods)

	management, err := svc.GetClassroomManagement(context.Background(), query)
	require.NoError(t, err)
	require.NotEmpty(t, management)
}

func TestService_ClearCache(t *testing.T) {
	source := &mockSource{}
	svc := newTestService(source)
	defer svc.Close()

	query := Query{Subject: SubjectArt, Limit: 2}
	_, err := svc.GetTeachingPractices(context.Background(), query)
	require.NoError(t, err)
	require.Equal(t, 1, svc.CacheStats().TotalEntries)

	svc.ClearCache()
	assert.Equal(t, 0, svc.CacheStats().TotalEntries)

	resolvesBefore, _ := source.calls()
	_, err = svc.GetTeachingPractices(context.Background(), query)
	require.NoError(t, err)
	resolvesAfter, _ := source.calls()
	assert.Greater(t, resolvesAfter, resolvesBefore)
}

func TestTopUp(t *testing.T) {
	live := []TeachingStrategy{{Name: "a", Source: SourceContext7}}
	defaults := []TeachingStrategy{{Name: "b", Source: SourceDefault}, {Name: "c", Source: SourceDefault}}

	t.Run("short live list is topped up", func(t *testing.T) {
		merged := topUp(live, defaults, 3)
		require.Len(t, merged, 3)
		assert.Equal(t, SourceContext7, merged[0].Source)
		assert.Equal(t, SourceDefault, merged[1].Source)
	})

	t.Run("live list at limit stays untouched", func(t *testing.T) {
		merged := topUp(live, defaults, 1)
		require.Len(t, merged, 1)
		assert.Equal(t, "a", merged[0].Name)
	})

	t.Run("over-long live list is truncated", func(t *testing.T) {
		long := append(append([]TeachingStrategy{}, live...), live...)
		merged := topUp(long, defaults, 1)
		assert.Len(t, merged, 1)
	})

	t.Run("empty live list yields defaults", func(t *testing.T) {
		merged := topUp(nil, defaults, 10)
		require.Len(t, merged, 2)
		assert.Equal(t, SourceDefault, merged[0].Source)
	})
}
