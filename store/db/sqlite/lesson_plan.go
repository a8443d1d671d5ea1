package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/tuhang/eduplan/store"
)

func (d *DB) CreateLessonPlan(ctx context.Context, create *store.LessonPlan) (*store.LessonPlan, error) {
	fields := []string{
		"uid", "class_id", "subject", "grade", "topic",
		"duration", "content", "confidence_score", "payload",
	}
	placeholderValues := []any{
		create.UID, create.ClassID, create.Subject, create.Grade, create.Topic,
		create.Duration, create.Content, create.ConfidenceScore, create.Payload,
	}

	if create.CreatedTs != 0 {
		fields = append(fields, "created_ts")
		placeholderValues = append(placeholderValues, create.CreatedTs)
	}
	if create.UpdatedTs != 0 {
		fields = append(fields, "updated_ts")
		placeholderValues = append(placeholderValues, create.UpdatedTs)
	}

	stmt := `INSERT INTO lesson_plan (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		RETURNING id, created_ts, updated_ts`

	if err := d.db.QueryRowContext(ctx, stmt, placeholderValues...).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create lesson plan: %w", err)
	}

	return create, nil
}

func (d *DB) ListLessonPlans(ctx context.Context, find *store.FindLessonPlan) ([]*store.LessonPlan, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "lesson_plan.id = ?"), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "lesson_plan.uid = ?"), append(args, *v)
	}
	if v := find.ClassID; v != nil {
		where, args = append(where, "lesson_plan.class_id = ?"), append(args, *v)
	}
	if v := find.Subject; v != nil {
		where, args = append(where, "lesson_plan.subject = ?"), append(args, *v)
	}

	query := `
		SELECT
			id, uid, class_id, subject, grade, topic,
			duration, content, confidence_score, payload,
			created_ts, updated_ts
		FROM lesson_plan
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY lesson_plan.created_ts DESC`

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
		if find.Offset != nil {
			query = fmt.Sprintf("%s OFFSET %d", query, *find.Offset)
		}
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query lesson plans: %w", err)
	}
	defer rows.Close()

	list := make([]*store.LessonPlan, 0)
	for rows.Next() {
		var plan store.LessonPlan
		if err := rows.Scan(
			&plan.ID,
			&plan.UID,
			&plan.ClassID,
			&plan.Subject,
			&plan.Grade,
			&plan.Topic,
			&plan.Duration,
			&plan.Content,
			&plan.ConfidenceScore,
			&plan.Payload,
			&plan.CreatedTs,
			&plan.UpdatedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan lesson plan: %w", err)
		}
		list = append(list, &plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lesson plans: %w", err)
	}

	return list, nil
}

func (d *DB) DeleteLessonPlan(ctx context.Context, delete *store.DeleteLessonPlan) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM lesson_plan WHERE id = ?`, delete.ID); err != nil {
		return fmt.Errorf("failed to delete lesson plan: %w", err)
	}
	return nil
}
