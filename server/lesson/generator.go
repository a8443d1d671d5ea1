// Package lesson 根据班级学情、参考资料与教学实践生成个性化教案。
package lesson

import (
	"context"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/sync/errgroup"

	"github.com/tuhang/eduplan/server/practices"
	"github.com/tuhang/eduplan/server/studentdata"
)

// ReferenceDocument 是知识库检索出的参考资料片段。
type ReferenceDocument struct {
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// KnowledgeBase 检索与课题相关的历史教案和参考资料。
type KnowledgeBase interface {
	SearchSimilarLessons(ctx context.Context, query string, topK int) ([]ReferenceDocument, error)
}

// StudentData 提供班级学情数据与需求分析。
type StudentData interface {
	GetClassPerformance(ctx context.Context, classID, subject string) (*studentdata.ClassPerformance, error)
	GetKnowledgeGaps(ctx context.Context, classID, subject string) ([]studentdata.KnowledgeGap, error)
	AnalyzeClassNeeds(perf *studentdata.ClassPerformance, gaps []studentdata.KnowledgeGap) *studentdata.NeedsAnalysis
}

// PracticeProvider 提供教学实践建议。
type PracticeProvider interface {
	GetTeachingPractices(ctx context.Context, query practices.Query) (*practices.Response, error)
}

// Request 描述一次教案生成请求。
type Request struct {
	ClassID             string   `json:"class_id"`
	Subject             string   `json:"subject"`
	Grade               string   `json:"grade"`
	Topic               string   `json:"topic"`
	Duration            int      `json:"duration"`
	LearningObjectives  []string `json:"learning_objectives,omitempty"`
	SpecialRequirements string   `json:"special_requirements,omitempty"`
}

func (r *Request) normalize() {
	if r.Duration <= 0 {
		r.Duration = 45
	}
}

func (r *Request) validate() error {
	if strings.TrimSpace(r.Subject) == "" {
		return &practices.ValidationError{Field: "subject", Value: r.Subject}
	}
	if strings.TrimSpace(r.Topic) == "" {
		return &practices.ValidationError{Field: "topic", Value: r.Topic}
	}
	return nil
}

// Plan 是生成的教案及其依据。
type Plan struct {
	Content            string                     `json:"lesson_plan"`
	ReferenceMaterials []ReferenceDocument        `json:"reference_materials"`
	StudentAnalysis    *studentdata.NeedsAnalysis `json:"student_analysis,omitempty"`
	TeachingPractices  *practices.Response        `json:"teaching_practices,omitempty"`
	GeneratedAt        time.Time                  `json:"generated_at"`
	ConfidenceScore    float64                    `json:"confidence_score"`
}

// Config 配置教案生成器。APIKey 为空时退化为纯模板生成。
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
}

// Generator 汇聚三路数据并产出教案。
type Generator struct {
	client    *openai.Client
	model     string
	temp      float32
	kb        KnowledgeBase
	students  StudentData
	practices PracticeProvider
	logger    *slog.Logger
	now       func() time.Time
}

func NewGenerator(cfg Config, kb KnowledgeBase, students StudentData, provider PracticeProvider, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Model == "" {
		cfg.Model = openai.GPT4oMini
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.7
	}

	var client *openai.Client
	if cfg.APIKey != "" {
		clientConfig := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientConfig.BaseURL = cfg.BaseURL
		}
		client = openai.NewClientWithConfig(clientConfig)
	}

	return &Generator{
		client:    client,
		model:     cfg.Model,
		temp:      cfg.Temperature,
		kb:        kb,
		students:  students,
		practices: provider,
		logger:    logger,
		now:       time.Now,
	}
}

// Generate 并行收集参考资料、学情分析和教学实践，再生成教案。
// 三路数据任何一路失败都不会中断生成，缺失的部分会降低置信度。
func (g *Generator) Generate(ctx context.Context, req *Request) (*Plan, error) {
	req.normalize()
	if err := req.validate(); err != nil {
		return nil, err
	}

	var (
		references []ReferenceDocument
		analysis   *studentdata.NeedsAnalysis
		practice   *practices.Response
	)

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		if g.kb == nil {
			return nil
		}
		docs, err := g.kb.SearchSimilarLessons(egCtx, req.Subject+" "+req.Topic, 3)
		if err != nil {
			g.logger.Warn("reference lookup failed", "topic", req.Topic, "error", err)
			return nil
		}
		references = docs
		return nil
	})

	eg.Go(func() error {
		if g.students == nil || req.ClassID == "" {
			return nil
		}
		perf, err := g.students.GetClassPerformance(egCtx, req.ClassID, req.Subject)
		if err != nil {
			g.logger.Warn("class performance lookup failed", "class_id", req.ClassID, "error", err)
			return nil
		}
		gaps, err := g.students.GetKnowledgeGaps(egCtx, req.ClassID, req.Subject)
		if err != nil {
			g.logger.Warn("knowledge gap lookup failed", "class_id", req.ClassID, "error", err)
			gaps = nil
		}
		analysis = g.students.AnalyzeClassNeeds(perf, gaps)
		return nil
	})

	eg.Go(func() error {
		if g.practices == nil {
			return nil
		}
		query := practices.Query{
			Subject: practices.Subject(req.Subject),
			Grade:   practices.GradeLevel(req.Grade),
			Limit:   practices.DefaultLimit,
		}
		resp, err := g.practices.GetTeachingPractices(egCtx, query)
		if err != nil {
			g.logger.Warn("teaching practice lookup failed", "subject", req.Subject, "error", err)
			return nil
		}
		practice = resp
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	content, err := g.compose(ctx, req, references, analysis, practice)
	if err != nil {
		return nil, err
	}

	return &Plan{
		Content:            content,
		ReferenceMaterials: references,
		StudentAnalysis:    analysis,
		TeachingPractices:  practice,
		GeneratedAt:        g.now(),
		ConfidenceScore:    confidence(references, analysis, practice),
	}, nil
}

func (g *Generator) compose(ctx context.Context, req *Request, refs []ReferenceDocument, analysis *studentdata.NeedsAnalysis, practice *practices.Response) (string, error) {
	template := renderTemplate(req, refs, analysis, practice)
	if g.client == nil {
		return template, nil
	}

	prompt := buildPrompt(req, refs, analysis, practice)
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temp,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		g.logger.Warn("llm generation failed, falling back to template", "error", err)
		return template, nil
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return template, nil
	}
	return resp.Choices[0].Message.Content, nil
}

// confidence 按可用数据源加权：基础 0.3，参考资料 0.2，学情 0.2，
// 教学实践 0.3 再按非兜底内容比例折算。
func confidence(refs []ReferenceDocument, analysis *studentdata.NeedsAnalysis, practice *practices.Response) float64 {
	score := 0.3
	if len(refs) > 0 {
		score += 0.2
	}
	if analysis != nil {
		score += 0.2
	}
	if practice != nil {
		live, total := 0, 0
		for _, s := range practice.TeachingStrategies {
			total++
			if s.Source == practices.SourceContext7 {
				live++
			}
		}
		for _, a := range practice.ClassroomActivities {
			total++
			if a.Source == practices.SourceContext7 {
				live++
			}
		}
		if total == 0 {
			score += 0.15
		} else {
			score += 0.15 + 0.15*float64(live)/float64(total)
		}
	}
	if score > 1 {
		score = 1
	}
	return score
}
