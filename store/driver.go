package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)
	Migrate(ctx context.Context) error

	// LessonPlan model related methods.
	CreateLessonPlan(ctx context.Context, create *LessonPlan) (*LessonPlan, error)
	ListLessonPlans(ctx context.Context, find *FindLessonPlan) ([]*LessonPlan, error)
	DeleteLessonPlan(ctx context.Context, delete *DeleteLessonPlan) error
}
