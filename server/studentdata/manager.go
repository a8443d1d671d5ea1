// Package studentdata 提供班级学情数据的获取与分析。
//
// 当前实现返回确定性的模拟数据，便于离线开发与测试。
// 接入真实学情系统时只需替换 Manager 的数据来源，分析逻辑不变。
package studentdata

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ClassPerformance 描述一个班级在某学科上的整体表现。
type ClassPerformance struct {
	ClassID          string             `json:"class_id"`
	Subject          string             `json:"subject"`
	TotalStudents    int                `json:"total_students"`
	AverageScore     float64            `json:"average_score"`
	PassRate         float64            `json:"pass_rate"`
	ExcellentRate    float64            `json:"excellent_rate"`
	ScoreRanges      map[string]int     `json:"score_ranges"`
	SubjectBreakdown map[string]float64 `json:"subject_breakdown"`
	CommonMistakes   []string           `json:"common_mistakes"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// KnowledgeGap 描述某个知识点的班级掌握情况。
type KnowledgeGap struct {
	KnowledgePoint      string   `json:"knowledge_point"`
	MasteryRate         float64  `json:"mastery_rate"`
	DifficultyLevel     string   `json:"difficulty_level"`
	AffectedStudents    int      `json:"affected_students"`
	CommonErrors        []string `json:"common_errors"`
	RecommendedPractice []string `json:"recommended_practice"`
}

// StudentStatus 描述单个学生的学习状态。
type StudentStatus struct {
	StudentID     string  `json:"student_id"`
	Name          string  `json:"name"`
	Level         string  `json:"level"`
	LearningStyle string  `json:"learning_style"`
	RecentScore   float64 `json:"recent_score"`
	Engagement    string  `json:"engagement"`
}

// PriorityTopic 是需求分析挑出的优先讲解知识点。
type PriorityTopic struct {
	KnowledgePoint string  `json:"knowledge_point"`
	MasteryRate    float64 `json:"mastery_rate"`
	Reason         string  `json:"reason"`
}

// NeedsAnalysis 汇总班级表现与知识缺口，给出备课建议。
type NeedsAnalysis struct {
	ClassID              string          `json:"class_id"`
	Subject              string          `json:"subject"`
	PriorityTopics       []PriorityTopic `json:"priority_topics"`
	TeachingStrategies   []string        `json:"teaching_strategies"`
	DifficultyAdjustment string          `json:"difficulty_adjustment"`
	GeneratedAt          time.Time       `json:"generated_at"`
}

// Manager 提供学情数据查询与需求分析。
type Manager struct {
	logger *slog.Logger
	now    func() time.Time
}

func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{logger: logger, now: time.Now}
}

// GetClassPerformance 返回班级在指定学科的整体表现。
func (m *Manager) GetClassPerformance(ctx context.Context, classID, subject string) (*ClassPerformance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	perf := &ClassPerformance{
		ClassID:       classID,
		Subject:       subject,
		TotalStudents: 45,
		AverageScore:  76.5,
		PassRate:      0.85,
		ExcellentRate: 0.25,
		ScoreRanges: map[string]int{
			"90-100": 11,
			"80-89":  15,
			"70-79":  10,
			"60-69":  5,
			"0-59":   4,
		},
		SubjectBreakdown: map[string]float64{
			"基础知识": 0.82,
			"理解应用": 0.74,
			"综合分析": 0.61,
		},
		CommonMistakes: commonMistakes(subject),
		UpdatedAt:      m.now(),
	}

	m.logger.Debug("class performance loaded",
		"class_id", classID, "subject", subject, "avg_score", perf.AverageScore)
	return perf, nil
}

// GetKnowledgeGaps 返回班级在指定学科上的知识薄弱点，按掌握率从低到高排列。
func (m *Manager) GetKnowledgeGaps(ctx context.Context, classID, subject string) ([]KnowledgeGap, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return knowledgeGaps(subject), nil
}

// GetStudentStatus 返回班级内每个学生的学习状态。
func (m *Manager) GetStudentStatus(ctx context.Context, classID string, limit int) ([]StudentStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 45 {
		limit = 45
	}

	styles := []string{"视觉型", "听觉型", "动手型", "阅读型"}
	levels := []string{"优秀", "良好", "中等", "待提高"}
	engagements := []string{"积极", "一般", "被动"}

	students := make([]StudentStatus, 0, limit)
	for i := 0; i < limit; i++ {
		students = append(students, StudentStatus{
			StudentID:     fmt.Sprintf("%s-S%03d", classID, i+1),
			Name:          fmt.Sprintf("学生%d", i+1),
			Level:         levels[i%len(levels)],
			LearningStyle: styles[i%len(styles)],
			RecentScore:   60 + float64((i*7)%40),
			Engagement:    engagements[i%len(engagements)],
		})
	}
	return students, nil
}

// AnalyzeClassNeeds 根据整体表现和知识缺口给出备课优先级与策略建议。
func (m *Manager) AnalyzeClassNeeds(perf *ClassPerformance, gaps []KnowledgeGap) *NeedsAnalysis {
	analysis := &NeedsAnalysis{
		GeneratedAt: m.now(),
	}
	if perf != nil {
		analysis.ClassID = perf.ClassID
		analysis.Subject = perf.Subject
	}

	// 掌握率低于一半的知识点需要优先重讲。
	for _, gap := range gaps {
		if gap.MasteryRate < 0.5 {
			analysis.PriorityTopics = append(analysis.PriorityTopics, PriorityTopic{
				KnowledgePoint: gap.KnowledgePoint,
				MasteryRate:    gap.MasteryRate,
				Reason:         fmt.Sprintf("班级掌握率仅 %.0f%%，需要重点讲解", gap.MasteryRate*100),
			})
		}
	}

	switch {
	case perf == nil:
		analysis.TeachingStrategies = []string{"先收集班级测评数据再细化策略"}
		analysis.DifficultyAdjustment = "保持当前难度"
	case perf.AverageScore < 70:
		analysis.TeachingStrategies = []string{
			"放慢教学节奏，夯实基础知识",
			"增加课堂练习与即时反馈",
			"安排课后辅导小组",
		}
		analysis.DifficultyAdjustment = "降低题目难度，增加基础题比例"
	case perf.AverageScore > 85:
		analysis.TeachingStrategies = []string{
			"引入拓展性问题与探究任务",
			"鼓励学生自主设计解题方案",
		}
		analysis.DifficultyAdjustment = "提高题目难度，增加综合应用题"
	default:
		analysis.TeachingStrategies = []string{
			"分层布置练习，兼顾不同水平学生",
			"针对薄弱知识点安排专项讲解",
		}
		analysis.DifficultyAdjustment = "保持当前难度，适度分层"
	}

	return analysis
}

func commonMistakes(subject string) []string {
	if subject == "数学" {
		return []string{
			"二次函数图像性质理解不牢",
			"几何证明步骤书写不规范",
			"应用题审题不仔细",
		}
	}
	return []string{
		"阅读理解抓不住关键信息",
		"答题表述不完整",
	}
}

func knowledgeGaps(subject string) []KnowledgeGap {
	if subject == "数学" {
		return []KnowledgeGap{
			{
				KnowledgePoint:      "二次函数",
				MasteryRate:         0.45,
				DifficultyLevel:     "较难",
				AffectedStudents:    25,
				CommonErrors:        []string{"顶点坐标计算错误", "开口方向判断混淆"},
				RecommendedPractice: []string{"图像变换专项练习", "配方法分步训练"},
			},
			{
				KnowledgePoint:      "几何证明",
				MasteryRate:         0.52,
				DifficultyLevel:     "较难",
				AffectedStudents:    22,
				CommonErrors:        []string{"辅助线添加无从下手", "证明过程跳步"},
				RecommendedPractice: []string{"典型辅助线题组训练", "规范书写示范与仿写"},
			},
			{
				KnowledgePoint:      "分式运算",
				MasteryRate:         0.68,
				DifficultyLevel:     "中等",
				AffectedStudents:    14,
				CommonErrors:        []string{"通分时漏乘", "约分不彻底"},
				RecommendedPractice: []string{"限时口算训练"},
			},
		}
	}
	return []KnowledgeGap{
		{
			KnowledgePoint:      "阅读理解",
			MasteryRate:         0.55,
			DifficultyLevel:     "中等",
			AffectedStudents:    20,
			CommonErrors:        []string{"主旨概括不准确", "细节定位困难"},
			RecommendedPractice: []string{"段落大意提炼练习", "关键词圈画训练"},
		},
		{
			KnowledgePoint:      "书面表达",
			MasteryRate:         0.62,
			DifficultyLevel:     "中等",
			AffectedStudents:    17,
			CommonErrors:        []string{"结构松散", "论据单一"},
			RecommendedPractice: []string{"提纲先行的写作训练"},
		},
	}
}
