package practices

import "strings"

// 远端文档内容解析
//
// Context7 returns loosely structured Chinese text per topic. Parsing is
// keyword-gated: a record is emitted only when the content actually covers
// the practice it describes, so thin or off-topic payloads yield nothing and
// the category degrades to defaults.

func parseStrategies(content string) []TeachingStrategy {
	var strategies []TeachingStrategy

	if strings.Contains(content, "互动") || strings.Contains(content, "参与") {
		strategies = append(strategies, TeachingStrategy{
			Name:         "互动式教学",
			Description:  "通过师生互动、生生互动促进学习",
			SubjectAreas: []string{"通用"},
			GradeLevels:  []string{"全年级"},
			Objectives:   []string{"提高参与度", "促进理解"},
			ImplementationSteps: []string{
				"设计互动环节",
				"鼓励学生参与",
				"及时反馈",
				"总结讨论结果",
			},
			Benefits:          []string{"提高学习兴趣", "加深理解", "培养表达能力"},
			Considerations:    []string{"控制讨论时间", "确保全员参与"},
			ResourcesNeeded:   []string{"多媒体设备", "讨论空间"},
			AssessmentMethods: []string{"观察记录", "参与度评估"},
			Source:            SourceContext7,
		})
	}

	return strategies
}

func parseActivities(content string) []ClassroomActivity {
	var activities []ClassroomActivity

	if strings.Contains(content, "小组") || strings.Contains(content, "合作") {
		activities = append(activities, ClassroomActivity{
			Name:        "小组合作学习",
			Description: "学生分组完成学习任务，培养合作能力",
			Duration:    "20-30分钟",
			Materials:   []string{"任务卡片", "记录表", "展示材料"},
			Instructions: []string{
				"将学生分成4-6人小组",
				"分配明确的角色和任务",
				"设定时间限制",
				"组织成果展示",
			},
			LearningOutcomes: []string{"团队合作能力", "沟通技能", "问题解决能力"},
			DifferentiationTips: []string{
				"根据能力分配不同难度任务",
				"提供不同类型的支持材料",
			},
			ExtensionActivities: []string{"跨组交流", "反思总结"},
			Source:              SourceContext7,
		})
	}

	return activities
}

func parseAssessments(content string) []AssessmentMethod {
	if !strings.Contains(content, "评估") && !strings.Contains(content, "评价") {
		return nil
	}

	return []AssessmentMethod{{
		Name:        "形成性评估",
		Type:        "过程性评估",
		Description: "在教学过程中持续评估学生学习进展",
		WhenToUse:   "整个教学过程中",
		Implementation: []string{
			"课堂观察",
			"即时反馈",
			"小测验",
			"学习日志",
		},
		RubricCriteria:     []string{"参与度", "理解程度", "进步情况"},
		DataCollection:     []string{"观察记录", "作业分析", "学生自评"},
		FeedbackStrategies: []string{"及时口头反馈", "书面评语", "同伴互评"},
		Source:             SourceContext7,
	}}
}

func parseManagement(content string) []ClassroomManagement {
	if !strings.Contains(content, "管理") && !strings.Contains(content, "纪律") {
		return nil
	}

	return []ClassroomManagement{{
		Category: "课堂纪律管理",
		Techniques: []string{
			"建立明确的课堂规则",
			"使用积极的语言",
			"及时表扬良好行为",
		},
		PreventiveStrategies: []string{
			"创造积极的学习环境",
			"建立例行程序",
			"预设活动转换",
		},
		InterventionMethods: []string{
			"重定向注意力",
			"私下提醒",
			"暂停活动",
		},
		PositiveReinforcement: []string{
			"口头表扬",
			"积分系统",
			"特权奖励",
		},
		EnvironmentSetup: []string{
			"合理安排座位",
			"准备充足材料",
			"营造温馨氛围",
		},
		Source: SourceContext7,
	}}
}
