package studentdata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetClassPerformance(t *testing.T) {
	m := NewManager(nil)

	perf, err := m.GetClassPerformance(context.Background(), "class-301", "数学")
	require.NoError(t, err)

	assert.Equal(t, "class-301", perf.ClassID)
	assert.Equal(t, "数学", perf.Subject)
	assert.InDelta(t, 76.5, perf.AverageScore, 0.001)
	assert.InDelta(t, 0.85, perf.PassRate, 0.001)
	assert.NotEmpty(t, perf.CommonMistakes)

	total := 0
	for _, n := range perf.ScoreRanges {
		total += n
	}
	assert.Equal(t, perf.TotalStudents, total)
}

func TestGetKnowledgeGaps_SubjectSpecific(t *testing.T) {
	m := NewManager(nil)

	math, err := m.GetKnowledgeGaps(context.Background(), "class-301", "数学")
	require.NoError(t, err)
	require.NotEmpty(t, math)
	assert.Equal(t, "二次函数", math[0].KnowledgePoint)

	other, err := m.GetKnowledgeGaps(context.Background(), "class-301", "语文")
	require.NoError(t, err)
	require.NotEmpty(t, other)
	assert.Equal(t, "阅读理解", other[0].KnowledgePoint)

	// Sorted weakest first.
	for i := 1; i < len(math); i++ {
		assert.LessOrEqual(t, math[i-1].MasteryRate, math[i].MasteryRate)
	}
}

func TestGetStudentStatus(t *testing.T) {
	m := NewManager(nil)

	students, err := m.GetStudentStatus(context.Background(), "class-301", 8)
	require.NoError(t, err)
	require.Len(t, students, 8)

	assert.Equal(t, "class-301-S001", students[0].StudentID)
	assert.Equal(t, "视觉型", students[0].LearningStyle)
	assert.Equal(t, "听觉型", students[1].LearningStyle)

	// Deterministic across calls.
	again, err := m.GetStudentStatus(context.Background(), "class-301", 8)
	require.NoError(t, err)
	assert.Equal(t, students, again)
}

func TestAnalyzeClassNeeds(t *testing.T) {
	m := NewManager(nil)
	ctx := context.Background()

	t.Run("weak topics become priorities", func(t *testing.T) {
		perf, err := m.GetClassPerformance(ctx, "c1", "数学")
		require.NoError(t, err)
		gaps, err := m.GetKnowledgeGaps(ctx, "c1", "数学")
		require.NoError(t, err)

		analysis := m.AnalyzeClassNeeds(perf, gaps)
		require.Len(t, analysis.PriorityTopics, 1)
		assert.Equal(t, "二次函数", analysis.PriorityTopics[0].KnowledgePoint)
		assert.Equal(t, "保持当前难度，适度分层", analysis.DifficultyAdjustment)
	})

	t.Run("low average lowers difficulty", func(t *testing.T) {
		analysis := m.AnalyzeClassNeeds(&ClassPerformance{AverageScore: 62}, nil)
		assert.Equal(t, "降低题目难度，增加基础题比例", analysis.DifficultyAdjustment)
		assert.NotEmpty(t, analysis.TeachingStrategies)
	})

	t.Run("high average raises difficulty", func(t *testing.T) {
		analysis := m.AnalyzeClassNeeds(&ClassPerformance{AverageScore: 91}, nil)
		assert.Equal(t, "提高题目难度，增加综合应用题", analysis.DifficultyAdjustment)
	})

	t.Run("nil performance still yields advice", func(t *testing.T) {
		analysis := m.AnalyzeClassNeeds(nil, nil)
		assert.NotEmpty(t, analysis.TeachingStrategies)
	})
}

func TestContextCancellation(t *testing.T) {
	m := NewManager(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.GetClassPerformance(ctx, "c1", "数学")
	assert.Error(t, err)
	_, err = m.GetKnowledgeGaps(ctx, "c1", "数学")
	assert.Error(t, err)
}
