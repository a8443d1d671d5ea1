package lesson

import (
	"fmt"
	"strings"

	"github.com/tuhang/eduplan/server/practices"
	"github.com/tuhang/eduplan/server/studentdata"
)

const systemPrompt = `你是一位资深的教学设计专家，擅长根据班级学情制定个性化教案。
请严格按照给定的结构输出 Markdown 格式的完整教案，内容具体可操作，适合一线教师直接使用。`

// buildPrompt 把三路数据拼装成一段生成指令。
func buildPrompt(req *Request, refs []ReferenceDocument, analysis *studentdata.NeedsAnalysis, practice *practices.Response) string {
	var b strings.Builder

	fmt.Fprintf(&b, "请为以下课程生成一份完整教案：\n\n")
	fmt.Fprintf(&b, "学科：%s\n年级：%s\n课题：%s\n课时：%d分钟\n", req.Subject, req.Grade, req.Topic, req.Duration)
	if len(req.LearningObjectives) > 0 {
		fmt.Fprintf(&b, "教学目标：%s\n", strings.Join(req.LearningObjectives, "；"))
	}
	if req.SpecialRequirements != "" {
		fmt.Fprintf(&b, "特殊要求：%s\n", req.SpecialRequirements)
	}

	if analysis != nil {
		b.WriteString("\n## 班级学情\n")
		for _, topic := range analysis.PriorityTopics {
			fmt.Fprintf(&b, "- 薄弱知识点：%s（掌握率 %.0f%%）\n", topic.KnowledgePoint, topic.MasteryRate*100)
		}
		fmt.Fprintf(&b, "- 难度建议：%s\n", analysis.DifficultyAdjustment)
		for _, s := range analysis.TeachingStrategies {
			fmt.Fprintf(&b, "- 策略建议：%s\n", s)
		}
	}

	if len(refs) > 0 {
		b.WriteString("\n## 参考资料\n")
		for _, doc := range refs {
			fmt.Fprintf(&b, "### %s\n%s\n", doc.Title, doc.Content)
		}
	}

	if practice != nil {
		b.WriteString("\n## 推荐教学实践\n")
		for _, s := range practice.TeachingStrategies {
			fmt.Fprintf(&b, "- 策略：%s（%s）\n", s.Name, s.Description)
		}
		for _, a := range practice.ClassroomActivities {
			fmt.Fprintf(&b, "- 活动：%s（时长 %s）\n", a.Name, a.Duration)
		}
		for _, m := range practice.AssessmentMethods {
			fmt.Fprintf(&b, "- 评估：%s（%s）\n", m.Name, m.Type)
		}
	}

	b.WriteString(`
请按以下结构输出：
# 教案
## 基本信息
## 教学目标
## 教学重点
## 教学难点
## 教学方法
## 教学准备
## 教学过程
### 导入（5分钟）
### 新课讲授（25分钟）
### 课堂练习（10分钟）
### 课堂小结（3分钟）
### 作业布置（2分钟）
## 板书设计
## 教学反思
## 差异化教学建议
`)
	return b.String()
}

// renderTemplate 在没有 LLM 的情况下产出结构完整的模板教案。
func renderTemplate(req *Request, refs []ReferenceDocument, analysis *studentdata.NeedsAnalysis, practice *practices.Response) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s教案：%s\n\n", req.Subject, req.Topic)
	b.WriteString("## 基本信息\n")
	fmt.Fprintf(&b, "- 学科：%s\n- 年级：%s\n- 课题：%s\n- 课时：%d分钟\n\n", req.Subject, req.Grade, req.Topic, req.Duration)

	b.WriteString("## 教学目标\n")
	if len(req.LearningObjectives) > 0 {
		for _, obj := range req.LearningObjectives {
			fmt.Fprintf(&b, "- %s\n", obj)
		}
	} else {
		fmt.Fprintf(&b, "- 理解并掌握「%s」的核心概念\n- 能运用所学知识解决相关问题\n", req.Topic)
	}
	b.WriteString("\n")

	b.WriteString("## 教学重点\n")
	if analysis != nil && len(analysis.PriorityTopics) > 0 {
		for _, topic := range analysis.PriorityTopics {
			fmt.Fprintf(&b, "- %s（班级掌握率 %.0f%%，需重点讲解）\n", topic.KnowledgePoint, topic.MasteryRate*100)
		}
	} else {
		fmt.Fprintf(&b, "- %s的核心知识点\n", req.Topic)
	}
	b.WriteString("\n")

	b.WriteString("## 教学方法\n")
	if practice != nil && len(practice.TeachingStrategies) > 0 {
		for _, s := range practice.TeachingStrategies {
			fmt.Fprintf(&b, "- %s：%s\n", s.Name, s.Description)
		}
	} else {
		b.WriteString("- 讲授与练习结合\n")
	}
	b.WriteString("\n")

	b.WriteString("## 教学过程\n")
	fmt.Fprintf(&b, "### 导入（5分钟）\n结合生活实例引出「%s」。\n\n", req.Topic)
	b.WriteString("### 新课讲授（25分钟）\n讲解核心概念，配合例题示范。\n\n")
	if practice != nil && len(practice.ClassroomActivities) > 0 {
		fmt.Fprintf(&b, "### 课堂练习（10分钟）\n开展「%s」活动。\n\n", practice.ClassroomActivities[0].Name)
	} else {
		b.WriteString("### 课堂练习（10分钟）\n分层布置练习题。\n\n")
	}
	b.WriteString("### 课堂小结（3分钟）\n师生共同梳理本课要点。\n\n")
	b.WriteString("### 作业布置（2分钟）\n布置巩固练习与拓展思考题。\n\n")

	if analysis != nil {
		b.WriteString("## 差异化教学建议\n")
		fmt.Fprintf(&b, "- %s\n", analysis.DifficultyAdjustment)
		for _, s := range analysis.TeachingStrategies {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		b.WriteString("\n")
	}

	if len(refs) > 0 {
		b.WriteString("## 参考资料\n")
		for _, doc := range refs {
			fmt.Fprintf(&b, "- %s\n", doc.Title)
		}
	}

	return b.String()
}
