package practices

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// ContentSource is the outbound contract to the remote teaching-practice
// provider. Both calls are idempotent and safe to time out; any error is a
// degradation signal, not a caller-visible failure.
type ContentSource interface {
	// ResolveLibraryID resolves a knowledge library from a free-text
	// description. An empty ID with nil error means "no such library".
	ResolveLibraryID(ctx context.Context, query string) (string, error)

	// GetLibraryDocs fetches structured content for a library topic,
	// filtered by the query's keywords.
	GetLibraryDocs(ctx context.Context, libraryID, topic string, keywords []string) (string, error)
}

// ServiceConfig configures the aggregation service.
type ServiceConfig struct {
	CacheTTL         time.Duration // response cache TTL (default: 1 hour)
	CategoryTimeout  time.Duration // per-category fetch budget (default: 5s)
	CleanupInterval  time.Duration // cache sweep interval, 0 disables
	BatchConcurrency int64         // concurrent aggregations in a batch (default: 4)
}

// DefaultServiceConfig returns the default service configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		CacheTTL:         time.Hour,
		CategoryTimeout:  5 * time.Second,
		CleanupInterval:  0,
		BatchConcurrency: 4,
	}
}

// Service 教学实践聚合服务
//
// One instance is constructed at process start and shared by reference;
// the cache is its only mutable state.
type Service struct {
	source ContentSource
	cache  *Cache
	logger *slog.Logger

	categoryTimeout time.Duration
	batchSem        *semaphore.Weighted
}

// NewService creates the aggregation service around a content source.
func NewService(source ContentSource, cfg ServiceConfig, logger *slog.Logger) *Service {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	if cfg.CategoryTimeout <= 0 {
		cfg.CategoryTimeout = 5 * time.Second
	}
	if cfg.BatchConcurrency <= 0 {
		cfg.BatchConcurrency = 4
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		source: source,
		cache: NewCache(CacheConfig{
			TTL:             cfg.CacheTTL,
			CleanupInterval: cfg.CleanupInterval,
		}),
		logger:          logger,
		categoryTimeout: cfg.CategoryTimeout,
		batchSem:        semaphore.NewWeighted(cfg.BatchConcurrency),
	}
}

// Close releases background resources.
func (s *Service) Close() {
	s.cache.Close()
}

// GetTeachingPractices runs the full aggregation for a query.
//
// The call is total for valid queries: every provider-side failure degrades
// to default content per category, so the response always carries four
// non-empty category lists. Only validation errors are returned.
func (s *Service) GetTeachingPractices(ctx context.Context, query Query) (*Response, error) {
	if query.Limit == 0 {
		query.Limit = DefaultLimit
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}

	key := query.CacheKey()
	if cached, ok := s.cache.Get(key); ok {
		s.logger.Debug("teaching practices served from cache", "key", key)
		return cached, nil
	}

	var (
		strategies  []TeachingStrategy
		activities  []ClassroomActivity
		assessments []AssessmentMethod
		management  []ClassroomManagement
	)

	// The four categories settle independently: a failed or slow category
	// degrades to defaults without delaying or cancelling its siblings, so
	// overall latency is bounded by the slowest single category budget.
	g := new(errgroup.Group)
	g.Go(func() error {
		strategies = s.fetchStrategies(ctx, query)
		return nil
	})
	g.Go(func() error {
		activities = s.fetchActivities(ctx, query)
		return nil
	})
	g.Go(func() error {
		assessments = s.fetchAssessments(ctx, query)
		return nil
	})
	g.Go(func() error {
		management = s.fetchManagement(ctx, query)
		return nil
	})
	_ = g.Wait()

	response := &Response{
		QueryInfo:           query.Info(),
		TeachingStrategies:  strategies,
		ClassroomActivities: activities,
		AssessmentMethods:   assessments,
		ClassroomManagement: management,
		AdditionalResources: additionalResources(),
		Timestamp:           time.Now(),
	}

	s.cache.Put(key, response)
	s.logger.Info("teaching practices aggregated",
		"key", key,
		"strategies", len(strategies),
		"activities", len(activities),
	)
	return response, nil
}

// GetTeachingStrategies is a single-category view over the same aggregation.
func (s *Service) GetTeachingStrategies(ctx context.Context, query Query) ([]TeachingStrategy, error) {
	response, err := s.GetTeachingPractices(ctx, query)
	if err != nil {
		return nil, err
	}
	return response.TeachingStrategies, nil
}

// GetClassroomActivities is a single-category view over the same aggregation.
func (s *Service) GetClassroomActivities(ctx context.Context, query Query) ([]ClassroomActivity, error) {
	response, err := s.GetTeachingPractices(ctx, query)
	if err != nil {
		return nil, err
	}
	return response.ClassroomActivities, nil
}

// GetAssessmentMethods is a single-category view over the same aggregation.
func (s *Service) GetAssessmentMethods(ctx context.Context, query Query) ([]AssessmentMethod, error) {
	response, err := s.GetTeachingPractices(ctx, query)
	if err != nil {
		return nil, err
	}
	return response.AssessmentMethods, nil
}

// GetClassroomManagement is a single-category view over the same aggregation.
func (s *Service) GetClassroomManagement(ctx context.Context, query Query) ([]ClassroomManagement, error) {
	response, err := s.GetTeachingPractices(ctx, query)
	if err != nil {
		return nil, err
	}
	return response.ClassroomManagement, nil
}

// BatchResult holds the outcome for one query of a batch.
type BatchResult struct {
	Response *Response
	Err      error
}

// GetTeachingPracticesBatch processes queries independently and returns
// results in matching positions. A validation failure in one query never
// aborts the others.
func (s *Service) GetTeachingPracticesBatch(ctx context.Context, queries []Query) []BatchResult {
	results := make([]BatchResult, len(queries))

	var wg sync.WaitGroup
	for i, query := range queries {
		if err := s.batchSem.Acquire(ctx, 1); err != nil {
			results[i] = BatchResult{Err: err}
			continue
		}
		wg.Add(1)
		go func(i int, query Query) {
			defer wg.Done()
			defer s.batchSem.Release(1)
			response, err := s.GetTeachingPractices(ctx, query)
			results[i] = BatchResult{Response: response, Err: err}
		}(i, query)
	}
	wg.Wait()

	return results
}

// CacheStats reports the response cache state.
func (s *Service) CacheStats() CacheStats {
	return s.cache.Stats()
}

// ClearCache drops all cached responses.
func (s *Service) ClearCache() {
	s.cache.Clear()
	s.logger.Info("teaching practices cache cleared")
}

func (s *Service) fetchStrategies(ctx context.Context, query Query) []TeachingStrategy {
	var topics []string
	if query.Subject != "" {
		topics = append(topics, string(query.Subject)+"教学策略")
	}
	if query.MethodType != "" {
		topics = append(topics, string(query.MethodType))
	}
	if query.Objective != "" {
		topics = append(topics, string(query.Objective)+"教学方法")
	}
	if len(topics) == 0 {
		topics = []string{"现代教学策略", "有效教学方法"}
	}
	if len(topics) > 3 {
		topics = topics[:3]
	}

	live := fetchCategory(ctx, s, "strategies", "现代教育教学方法", topics, query.Keywords, parseStrategies)
	return topUp(live, DefaultStrategies(query.Subject, query.Grade), query.Limit)
}

func (s *Service) fetchActivities(ctx context.Context, query Query) []ClassroomActivity {
	var topics []string
	if query.Subject != "" {
		topics = append(topics, string(query.Subject)+"课堂活动")
	}
	if query.Grade != "" {
		topics = append(topics, string(query.Grade)+"互动活动")
	}
	if len(topics) == 0 {
		topics = []string{"互动课堂活动", "学生参与活动"}
	}
	if len(topics) > 2 {
		topics = topics[:2]
	}

	live := fetchCategory(ctx, s, "activities", "课堂活动设计", topics, query.Keywords, parseActivities)
	return topUp(live, DefaultActivities(query.Subject, query.Grade), query.Limit)
}

func (s *Service) fetchAssessments(ctx context.Context, query Query) []AssessmentMethod {
	topics := []string{"形成性评估", "学习评价方法", "教学评估技巧"}

	live := fetchCategory(ctx, s, "assessments", "教育评估方法", topics, query.Keywords, parseAssessments)
	return topUp(live, DefaultAssessments(query.Subject, query.Grade), query.Limit)
}

func (s *Service) fetchManagement(ctx context.Context, query Query) []ClassroomManagement {
	topics := []string{"课堂管理技巧", "学生行为管理", "课堂纪律管理"}

	live := fetchCategory(ctx, s, "management", "课堂管理", topics, query.Keywords, parseManagement)
	return topUp(live, DefaultManagement(query.Subject, query.Grade), query.Limit)
}

// fetchCategory runs the two-step provider protocol for one category under
// its own timeout. Any failure empties the category; the caller degrades to
// defaults. Errors never propagate past this point.
func fetchCategory[T any](ctx context.Context, s *Service, category, library string, topics, keywords []string, parse func(string) []T) []T {
	ctx, cancel := context.WithTimeout(ctx, s.categoryTimeout)
	defer cancel()

	libraryID, err := s.source.ResolveLibraryID(ctx, library)
	if err != nil {
		s.logger.Warn("practice provider unavailable, using defaults",
			"category", category, "err", err)
		return nil
	}
	if libraryID == "" {
		return nil
	}

	var records []T
	for _, topic := range topics {
		content, err := s.source.GetLibraryDocs(ctx, libraryID, topic, keywords)
		if err != nil {
			s.logger.Warn("practice docs fetch failed, using defaults",
				"category", category, "topic", topic, "err", err)
			return nil
		}
		records = append(records, parse(content)...)
	}
	return records
}

// topUp truncates live records to limit and fills any shortfall from the
// default corpus; default records keep their source tag so callers can tell
// them apart.
func topUp[T any](live, defaults []T, limit int) []T {
	if len(live) > limit {
		live = live[:limit]
	}
	for _, record := range defaults {
		if len(live) >= limit {
			break
		}
		live = append(live, record)
	}
	return live
}

func additionalResources() []string {
	return []string{
		"现代教育技术应用指南",
		"学生参与度提升策略",
		"差异化教学实践手册",
		"形成性评估工具包",
	}
}
