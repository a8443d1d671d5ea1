package practices

import (
	"reflect"
	"testing"
)

func TestDefaultsAreNonEmptyAndDeterministic(t *testing.T) {
	combos := []struct {
		subject Subject
		grade   GradeLevel
	}{
		{"", ""},
		{SubjectMath, Grade5},
		{SubjectGeneral, University},
		{SubjectPE, Kindergarten},
	}

	for _, combo := range combos {
		if got := DefaultStrategies(combo.subject, combo.grade); len(got) == 0 {
			t.Errorf("DefaultStrategies(%q, %q) is empty", combo.subject, combo.grade)
		}
		if got := DefaultActivities(combo.subject, combo.grade); len(got) == 0 {
			t.Errorf("DefaultActivities(%q, %q) is empty", combo.subject, combo.grade)
		}
		if got := DefaultAssessments(combo.subject, combo.grade); len(got) == 0 {
			t.Errorf("DefaultAssessments(%q, %q) is empty", combo.subject, combo.grade)
		}
		if got := DefaultManagement(combo.subject, combo.grade); len(got) == 0 {
			t.Errorf("DefaultManagement(%q, %q) is empty", combo.subject, combo.grade)
		}

		// Pure: same hints, same output.
		if !reflect.DeepEqual(DefaultStrategies(combo.subject, combo.grade), DefaultStrategies(combo.subject, combo.grade)) {
			t.Errorf("DefaultStrategies(%q, %q) is not deterministic", combo.subject, combo.grade)
		}
	}
}

func TestDefaultsCarrySubjectAndGradeHints(t *testing.T) {
	strategies := DefaultStrategies(SubjectMath, Grade5)
	for _, strategy := range strategies {
		if !reflect.DeepEqual(strategy.SubjectAreas, []string{"数学"}) {
			t.Errorf("SubjectAreas = %v, want hinted [数学]", strategy.SubjectAreas)
		}
		if !reflect.DeepEqual(strategy.GradeLevels, []string{"五年级"}) {
			t.Errorf("GradeLevels = %v, want hinted [五年级]", strategy.GradeLevels)
		}
		if strategy.Source != SourceDefault {
			t.Errorf("Source = %q, want %q", strategy.Source, SourceDefault)
		}
	}

	// The general subject keeps the corpus defaults.
	general := DefaultStrategies(SubjectGeneral, "")
	if reflect.DeepEqual(general[0].SubjectAreas, []string{"通用"}) {
		t.Error("general subject should not narrow the subject areas")
	}
}

func TestDefaultsAreWellFormed(t *testing.T) {
	for _, strategy := range DefaultStrategies("", "") {
		if strategy.Name == "" || strategy.Description == "" {
			t.Errorf("strategy missing name or description: %+v", strategy)
		}
		if len(strategy.ImplementationSteps) == 0 {
			t.Errorf("strategy %q has no implementation steps", strategy.Name)
		}
	}
	for _, activity := range DefaultActivities("", "") {
		if activity.Name == "" || activity.Duration == "" {
			t.Errorf("activity missing name or duration: %+v", activity)
		}
	}
	for _, method := range DefaultAssessments("", "") {
		if method.Name == "" || method.Type == "" {
			t.Errorf("assessment missing name or type: %+v", method)
		}
	}
	for _, tip := range DefaultManagement("", "") {
		if tip.Category == "" || len(tip.Techniques) == 0 {
			t.Errorf("management tip missing category or techniques: %+v", tip)
		}
	}
}
