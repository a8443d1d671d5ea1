package store

import (
	"context"

	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"
)

// LessonPlan is the persisted form of a generated lesson plan.
type LessonPlan struct {
	ID  int32
	UID string

	ClassID         string
	Subject         string
	Grade           string
	Topic           string
	Duration        int
	Content         string
	ConfidenceScore float64

	// Payload carries the JSON-encoded generation context
	// (student analysis, teaching practices, references).
	Payload string

	CreatedTs int64
	UpdatedTs int64
}

type FindLessonPlan struct {
	ID      *int32
	UID     *string
	ClassID *string
	Subject *string

	Limit  *int
	Offset *int
}

type DeleteLessonPlan struct {
	ID int32
}

func (s *Store) CreateLessonPlan(ctx context.Context, create *LessonPlan) (*LessonPlan, error) {
	if create.UID == "" {
		create.UID = shortuuid.New()
	}
	return s.driver.CreateLessonPlan(ctx, create)
}

func (s *Store) ListLessonPlans(ctx context.Context, find *FindLessonPlan) ([]*LessonPlan, error) {
	return s.driver.ListLessonPlans(ctx, find)
}

func (s *Store) GetLessonPlan(ctx context.Context, find *FindLessonPlan) (*LessonPlan, error) {
	list, err := s.ListLessonPlans(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	if len(list) > 1 {
		return nil, errors.Errorf("expected 1 lesson plan, got %d", len(list))
	}
	return list[0], nil
}

func (s *Store) DeleteLessonPlan(ctx context.Context, delete *DeleteLessonPlan) error {
	return s.driver.DeleteLessonPlan(ctx, delete)
}
