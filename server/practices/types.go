// Package practices provides retrieval, caching and degradation of
// teaching-practice content (strategies, activities, assessments and
// classroom management techniques) used by the lesson plan generator.
//
// Content is fetched per category from the Context7 knowledge provider and
// falls back to a built-in default corpus when the provider is unavailable.
package practices

import "time"

// Subject 学科类型
type Subject string

const (
	SubjectChinese    Subject = "语文"
	SubjectMath       Subject = "数学"
	SubjectEnglish    Subject = "英语"
	SubjectPhysics    Subject = "物理"
	SubjectChemistry  Subject = "化学"
	SubjectBiology    Subject = "生物"
	SubjectHistory    Subject = "历史"
	SubjectGeography  Subject = "地理"
	SubjectPolitics   Subject = "政治"
	SubjectMusic      Subject = "音乐"
	SubjectArt        Subject = "美术"
	SubjectPE         Subject = "体育"
	SubjectTechnology Subject = "信息技术"
	SubjectGeneral    Subject = "通用"
)

var subjectOrder = []Subject{
	SubjectChinese, SubjectMath, SubjectEnglish, SubjectPhysics,
	SubjectChemistry, SubjectBiology, SubjectHistory, SubjectGeography,
	SubjectPolitics, SubjectMusic, SubjectArt, SubjectPE,
	SubjectTechnology, SubjectGeneral,
}

var subjects = toSet(subjectOrder)

// Valid reports whether s is a known subject tag.
func (s Subject) Valid() bool { return subjects[s] }

// GradeLevel 年级水平
type GradeLevel string

const (
	Grade1       GradeLevel = "一年级"
	Grade2       GradeLevel = "二年级"
	Grade3       GradeLevel = "三年级"
	Grade4       GradeLevel = "四年级"
	Grade5       GradeLevel = "五年级"
	Grade6       GradeLevel = "六年级"
	Grade7       GradeLevel = "七年级"
	Grade8       GradeLevel = "八年级"
	Grade9       GradeLevel = "九年级"
	Grade10      GradeLevel = "高一"
	Grade11      GradeLevel = "高二"
	Grade12      GradeLevel = "高三"
	Kindergarten GradeLevel = "幼儿园"
	University   GradeLevel = "大学"
)

var gradeLevelOrder = []GradeLevel{
	Grade1, Grade2, Grade3, Grade4, Grade5, Grade6,
	Grade7, Grade8, Grade9, Grade10, Grade11, Grade12,
	Kindergarten, University,
}

var gradeLevels = toSet(gradeLevelOrder)

// Valid reports whether g is a known grade band.
func (g GradeLevel) Valid() bool { return gradeLevels[g] }

// TeachingObjective 教学目标
type TeachingObjective string

const (
	ObjectiveKnowledgeTransfer TeachingObjective = "知识传授"
	ObjectiveSkillDevelopment  TeachingObjective = "技能培养"
	ObjectiveCriticalThinking  TeachingObjective = "批判性思维"
	ObjectiveCreativity        TeachingObjective = "创造力培养"
	ObjectiveCollaboration     TeachingObjective = "合作能力"
	ObjectiveCommunication     TeachingObjective = "沟通能力"
	ObjectiveProblemSolving    TeachingObjective = "问题解决"
	ObjectiveCharacterBuilding TeachingObjective = "品格塑造"
)

var teachingObjectiveOrder = []TeachingObjective{
	ObjectiveKnowledgeTransfer, ObjectiveSkillDevelopment,
	ObjectiveCriticalThinking, ObjectiveCreativity,
	ObjectiveCollaboration, ObjectiveCommunication,
	ObjectiveProblemSolving, ObjectiveCharacterBuilding,
}

var teachingObjectives = toSet(teachingObjectiveOrder)

// Valid reports whether o is a known teaching objective.
func (o TeachingObjective) Valid() bool { return teachingObjectives[o] }

// TeachingMethodType 教学方法类型
type TeachingMethodType string

const (
	MethodInteractive        TeachingMethodType = "互动式教学"
	MethodInquiryBased       TeachingMethodType = "探究式学习"
	MethodProjectBased       TeachingMethodType = "项目式学习"
	MethodCollaborative      TeachingMethodType = "合作学习"
	MethodDifferentiated     TeachingMethodType = "差异化教学"
	MethodFlipped            TeachingMethodType = "翻转课堂"
	MethodGamification       TeachingMethodType = "游戏化教学"
	MethodTechnologyEnhanced TeachingMethodType = "技术增强教学"
	MethodExperiential       TeachingMethodType = "体验式学习"
	MethodScaffolding        TeachingMethodType = "支架式教学"
)

var teachingMethodTypeOrder = []TeachingMethodType{
	MethodInteractive, MethodInquiryBased, MethodProjectBased,
	MethodCollaborative, MethodDifferentiated, MethodFlipped,
	MethodGamification, MethodTechnologyEnhanced,
	MethodExperiential, MethodScaffolding,
}

var teachingMethodTypes = toSet(teachingMethodTypeOrder)

// Valid reports whether m is a known teaching method type.
func (m TeachingMethodType) Valid() bool { return teachingMethodTypes[m] }

func toSet[T comparable](ordered []T) map[T]bool {
	set := make(map[T]bool, len(ordered))
	for _, v := range ordered {
		set[v] = true
	}
	return set
}

func stringsOf[T ~string](ordered []T) []string {
	out := make([]string, len(ordered))
	for i, v := range ordered {
		out[i] = string(v)
	}
	return out
}

// Subjects returns the subject vocabulary in declaration order. The slice is
// a copy; callers may not mutate the canonical set.
func Subjects() []string { return stringsOf(subjectOrder) }

// GradeLevels returns the grade vocabulary in declaration order.
func GradeLevels() []string { return stringsOf(gradeLevelOrder) }

// TeachingObjectives returns the objective vocabulary in declaration order.
func TeachingObjectives() []string { return stringsOf(teachingObjectiveOrder) }

// TeachingMethodTypes returns the method type vocabulary in declaration order.
func TeachingMethodTypes() []string { return stringsOf(teachingMethodTypeOrder) }

// Record source tags. Live content keeps its provider tag so downstream
// consumers can tell degraded (default) records from fetched ones.
const (
	SourceContext7 = "context7"
	SourceDefault  = "default"
)

// TeachingStrategy 教学策略
type TeachingStrategy struct {
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	SubjectAreas        []string `json:"subject_areas"`
	GradeLevels         []string `json:"grade_levels"`
	Objectives          []string `json:"objectives"`
	ImplementationSteps []string `json:"implementation_steps"`
	Benefits            []string `json:"benefits"`
	Considerations      []string `json:"considerations"`
	ResourcesNeeded     []string `json:"resources_needed"`
	AssessmentMethods   []string `json:"assessment_methods"`
	Source              string   `json:"source,omitempty"`
}

// ClassroomActivity 课堂活动
type ClassroomActivity struct {
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	Duration            string   `json:"duration"`
	Materials           []string `json:"materials"`
	Instructions        []string `json:"instructions"`
	LearningOutcomes    []string `json:"learning_outcomes"`
	DifferentiationTips []string `json:"differentiation_tips"`
	ExtensionActivities []string `json:"extension_activities"`
	Source              string   `json:"source,omitempty"`
}

// AssessmentMethod 评估方法
type AssessmentMethod struct {
	Name               string   `json:"name"`
	Type               string   `json:"type"`
	Description        string   `json:"description"`
	WhenToUse          string   `json:"when_to_use"`
	Implementation     []string `json:"implementation"`
	RubricCriteria     []string `json:"rubric_criteria"`
	DataCollection     []string `json:"data_collection"`
	FeedbackStrategies []string `json:"feedback_strategies"`
	Source             string   `json:"source,omitempty"`
}

// ClassroomManagement 课堂管理技巧
type ClassroomManagement struct {
	Category              string   `json:"category"`
	Techniques            []string `json:"techniques"`
	PreventiveStrategies  []string `json:"preventive_strategies"`
	InterventionMethods   []string `json:"intervention_methods"`
	PositiveReinforcement []string `json:"positive_reinforcement"`
	EnvironmentSetup      []string `json:"environment_setup"`
	Source                string   `json:"source,omitempty"`
}

// QueryInfo echoes the originating query back in the response payload.
type QueryInfo struct {
	Subject    string   `json:"subject,omitempty"`
	Grade      string   `json:"grade,omitempty"`
	Objective  string   `json:"objective,omitempty"`
	MethodType string   `json:"method_type,omitempty"`
	Keywords   []string `json:"keywords,omitempty"`
	Limit      int      `json:"limit"`
}

// Response 教学实践响应
//
// A response is assembled once per aggregation and never mutated afterwards;
// a refresh writes a complete new response over the cache entry.
type Response struct {
	QueryInfo           QueryInfo             `json:"query_info"`
	TeachingStrategies  []TeachingStrategy    `json:"teaching_strategies"`
	ClassroomActivities []ClassroomActivity   `json:"classroom_activities"`
	AssessmentMethods   []AssessmentMethod    `json:"assessment_methods"`
	ClassroomManagement []ClassroomManagement `json:"classroom_management"`
	AdditionalResources []string              `json:"additional_resources"`
	Timestamp           time.Time             `json:"timestamp"`
}
