package practices

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// DefaultLimit is applied when a query does not set a per-category limit.
	DefaultLimit = 10
	// MaxLimit bounds the per-category item count. Values above it are
	// rejected, never silently clamped.
	MaxLimit = 20
)

// Query 教学实践查询参数
//
// The zero value of each enum field means "unset". Two queries with the same
// field values canonicalize to the same cache key regardless of keyword order.
type Query struct {
	Subject    Subject
	Grade      GradeLevel
	Objective  TeachingObjective
	MethodType TeachingMethodType
	Keywords   []string
	Limit      int
}

// NewQuery builds a query from free-text field values, accepting the same
// Chinese vocabulary the enums carry. It is the entry point for API callers;
// enum construction and NewQuery map identical inputs to identical queries.
func NewQuery(subject, grade, objective, methodType string, keywords []string, limit int) (Query, error) {
	q := Query{
		Subject:    Subject(subject),
		Grade:      GradeLevel(grade),
		Objective:  TeachingObjective(objective),
		MethodType: TeachingMethodType(methodType),
		Keywords:   keywords,
		Limit:      limit,
	}
	if q.Limit == 0 {
		q.Limit = DefaultLimit
	}
	if err := q.Validate(); err != nil {
		return Query{}, err
	}
	return q, nil
}

// Validate checks enum membership and the limit bounds. The returned
// *ValidationError names the offending field.
func (q *Query) Validate() error {
	if q.Subject != "" && !q.Subject.Valid() {
		return &ValidationError{Field: "subject", Value: string(q.Subject)}
	}
	if q.Grade != "" && !q.Grade.Valid() {
		return &ValidationError{Field: "grade", Value: string(q.Grade)}
	}
	if q.Objective != "" && !q.Objective.Valid() {
		return &ValidationError{Field: "objective", Value: string(q.Objective)}
	}
	if q.MethodType != "" && !q.MethodType.Valid() {
		return &ValidationError{Field: "method_type", Value: string(q.MethodType)}
	}
	if q.Limit <= 0 || q.Limit > MaxLimit {
		return &ValidationError{Field: "limit", Value: fmt.Sprintf("%d", q.Limit)}
	}
	return nil
}

// CacheKey returns the canonical cache key for the query: fields serialized
// in a fixed order, absent optionals normalized to "-", keywords sorted.
func (q *Query) CacheKey() string {
	field := func(v string) string {
		if v == "" {
			return "-"
		}
		return v
	}

	keywords := make([]string, len(q.Keywords))
	copy(keywords, q.Keywords)
	sort.Strings(keywords)

	return fmt.Sprintf("practices:v1:s=%s|g=%s|o=%s|m=%s|k=%s|l=%d",
		field(string(q.Subject)),
		field(string(q.Grade)),
		field(string(q.Objective)),
		field(string(q.MethodType)),
		strings.Join(keywords, ","),
		q.Limit,
	)
}

// Info returns the query echo embedded in responses.
func (q *Query) Info() QueryInfo {
	return QueryInfo{
		Subject:    string(q.Subject),
		Grade:      string(q.Grade),
		Objective:  string(q.Objective),
		MethodType: string(q.MethodType),
		Keywords:   q.Keywords,
		Limit:      q.Limit,
	}
}
