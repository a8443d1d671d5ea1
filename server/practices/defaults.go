package practices

// 默认教学实践内容
//
// The default corpus keeps the aggregation total: whenever the provider is
// unavailable for a category, or live content comes up short, these records
// fill the gap. Output depends only on the subject/grade hints.

func subjectHint(subject Subject, fallback []string) []string {
	if subject == "" || subject == SubjectGeneral {
		return fallback
	}
	return []string{string(subject)}
}

func gradeHint(grade GradeLevel, fallback []string) []string {
	if grade == "" {
		return fallback
	}
	return []string{string(grade)}
}

// DefaultStrategies returns the fallback teaching strategies for the given
// subject/grade hints. Always at least one record.
func DefaultStrategies(subject Subject, grade GradeLevel) []TeachingStrategy {
	return []TeachingStrategy{
		{
			Name:         "探究式学习",
			Description:  "引导学生主动探索和发现知识",
			SubjectAreas: subjectHint(subject, []string{"科学", "数学", "社会"}),
			GradeLevels:  gradeHint(grade, []string{"中高年级"}),
			Objectives:   []string{"培养探究能力", "提高批判思维"},
			ImplementationSteps: []string{
				"提出问题或挑战",
				"引导学生制定探究计划",
				"支持学生收集和分析数据",
				"促进结论分享和讨论",
			},
			Benefits:          []string{"提高学习主动性", "培养科学思维", "增强解决问题能力"},
			Considerations:    []string{"需要充足时间", "要求教师引导技巧"},
			ResourcesNeeded:   []string{"探究材料", "参考资源", "记录工具"},
			AssessmentMethods: []string{"过程观察", "成果展示", "反思报告"},
			Source:            SourceDefault,
		},
		{
			Name:         "差异化教学",
			Description:  "根据学生不同需求提供个性化教学",
			SubjectAreas: subjectHint(subject, []string{"全学科"}),
			GradeLevels:  gradeHint(grade, []string{"全年级"}),
			Objectives:   []string{"满足个体需求", "促进全面发展"},
			ImplementationSteps: []string{
				"评估学生起点水平",
				"设计分层任务",
				"提供多样化资源",
				"实施个性化指导",
			},
			Benefits:          []string{"提高学习效果", "增强学习信心", "促进包容性"},
			Considerations:    []string{"需要详细规划", "资源需求较大"},
			ResourcesNeeded:   []string{"多层次材料", "辅助工具", "评估量表"},
			AssessmentMethods: []string{"个性化评估", "成长档案", "自我评价"},
			Source:            SourceDefault,
		},
	}
}

// DefaultActivities returns the fallback classroom activities.
func DefaultActivities(subject Subject, grade GradeLevel) []ClassroomActivity {
	return []ClassroomActivity{
		{
			Name:        "思维导图制作",
			Description: "学生创建思维导图来组织和展示知识",
			Duration:    "15-25分钟",
			Materials:   []string{"纸张", "彩笔", "思维导图模板"},
			Instructions: []string{
				"选择中心主题",
				"添加主要分支",
				"补充详细信息",
				"美化和完善",
			},
			LearningOutcomes: []string{"知识整理能力", "创造性思维", "视觉表达能力"},
			DifferentiationTips: []string{
				"提供不同复杂度的模板",
				"允许使用数字工具",
			},
			ExtensionActivities: []string{"分享展示", "互相评价", "数字化制作"},
			Source:              SourceDefault,
		},
		{
			Name:        "角色扮演",
			Description: "学生扮演不同角色来理解概念或情境",
			Duration:    "20-40分钟",
			Materials:   []string{"角色卡片", "道具", "剧本大纲"},
			Instructions: []string{
				"分配角色",
				"准备表演",
				"进行表演",
				"讨论反思",
			},
			LearningOutcomes: []string{"理解能力", "表达能力", "同理心"},
			DifferentiationTips: []string{
				"根据性格分配角色",
				"提供表演支持",
			},
			ExtensionActivities: []string{"录制视频", "改编剧本", "跨班交流"},
			Source:              SourceDefault,
		},
	}
}

// DefaultAssessments returns the fallback assessment methods.
func DefaultAssessments(subject Subject, grade GradeLevel) []AssessmentMethod {
	return []AssessmentMethod{
		{
			Name:        "学习档案评估",
			Type:        "综合性评估",
			Description: "收集学生学习成果建立成长档案",
			WhenToUse:   "整个学期或学年",
			Implementation: []string{
				"设定收集标准",
				"定期收集作品",
				"学生自我反思",
				"教师点评指导",
			},
			RubricCriteria:     []string{"完整性", "质量提升", "反思深度"},
			DataCollection:     []string{"作业作品", "测试结果", "活动记录"},
			FeedbackStrategies: []string{"定期回顾", "目标设定", "成长庆祝"},
			Source:             SourceDefault,
		},
		{
			Name:        "同伴互评",
			Type:        "互动性评估",
			Description: "学生相互评价学习成果和表现",
			WhenToUse:   "项目完成后或展示活动中",
			Implementation: []string{
				"制定评价标准",
				"培训评价技巧",
				"组织互评活动",
				"总结反馈结果",
			},
			RubricCriteria:     []string{"客观性", "建设性", "具体性"},
			DataCollection:     []string{"评价表格", "口头反馈", "改进建议"},
			FeedbackStrategies: []string{"匿名反馈", "面对面交流", "改进计划"},
			Source:             SourceDefault,
		},
	}
}

// DefaultManagement returns the fallback classroom management techniques.
func DefaultManagement(subject Subject, grade GradeLevel) []ClassroomManagement {
	return []ClassroomManagement{
		{
			Category: "学习环境管理",
			Techniques: []string{
				"创建舒适的物理环境",
				"建立学习角落",
				"展示学生作品",
			},
			PreventiveStrategies: []string{
				"合理规划空间布局",
				"确保材料易于获取",
				"营造温馨氛围",
			},
			InterventionMethods: []string{
				"调整座位安排",
				"改变活动区域",
				"优化光线和温度",
			},
			PositiveReinforcement: []string{
				"环境美化奖励",
				"清洁维护表扬",
				"空间使用认可",
			},
			EnvironmentSetup: []string{
				"功能区域划分",
				"材料分类存放",
				"学习成果展示区",
			},
			Source: SourceDefault,
		},
		{
			Category: "时间管理",
			Techniques: []string{
				"制定时间表",
				"使用计时器",
				"建立转换信号",
			},
			PreventiveStrategies: []string{
				"预告时间安排",
				"准备过渡活动",
				"留有缓冲时间",
			},
			InterventionMethods: []string{
				"重新分配时间",
				"简化活动步骤",
				"提供时间提醒",
			},
			PositiveReinforcement: []string{
				"守时表扬",
				"效率认可",
				"时间管理奖励",
			},
			EnvironmentSetup: []string{
				"时钟显示",
				"进度条展示",
				"时间管理工具",
			},
			Source: SourceDefault,
		},
	}
}
