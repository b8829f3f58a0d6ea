package grading

import (
	"errors"
	"testing"

	"github.com/gradeaid/gradeaid/internal/model"
)

func TestExplainWeighted(t *testing.T) {
	a := &model.AnalysisResult{
		Questions:         questions(true, false),
		OverallAssessment: assessment(ptr(4), ptr(7)),
	}
	b, err := Explain(a, "English")
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}
	// 80*0.3 + 100*0.3 + 50*0.4 = 74
	if b.Score != 74 || b.Method != MethodWeightedCriteria {
		t.Errorf("result = %+v, want 74 weighted", b.Result)
	}

	want := []Component{
		{Name: ComponentTechnical, Weight: 0.30, Percent: 80},
		{Name: ComponentConceptual, Weight: 0.30, Percent: 100},
		{Name: ComponentAccuracy, Weight: 0.40, Percent: 50},
	}
	if len(b.Components) != len(want) {
		t.Fatalf("got %d components, want %d", len(b.Components), len(want))
	}
	for i, c := range b.Components {
		if c != want[i] {
			t.Errorf("component %d = %+v, want %+v", i, c, want[i])
		}
	}
}

func TestExplainAccuracyOnly(t *testing.T) {
	a := &model.AnalysisResult{
		Questions:         questions(true, true, true, false),
		OverallAssessment: assessment(ptr(1), ptr(1)),
	}
	b, err := Explain(a, "Math")
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}
	if b.Score != 75 || b.Method != MethodAccuracyOnly {
		t.Errorf("result = %+v, want 75 accuracy_only", b.Result)
	}
	if len(b.Components) != 1 {
		t.Fatalf("got %d components, want 1", len(b.Components))
	}
	if c := b.Components[0]; c.Name != ComponentAccuracy || c.Weight != 1 || c.Percent != 75 {
		t.Errorf("component = %+v", c)
	}
}

func TestExplainMatchesCalculateScore(t *testing.T) {
	a := &model.AnalysisResult{
		Questions:         questions(true, false, false),
		OverallAssessment: assessment(ptr(2.2), nil),
	}
	for _, subject := range []string{"math", "Art", ""} {
		res, err := CalculateScore(a, subject)
		if err != nil {
			t.Fatalf("CalculateScore(%q): %v", subject, err)
		}
		b, err := Explain(a, subject)
		if err != nil {
			t.Fatalf("Explain(%q): %v", subject, err)
		}
		if b.Result != res {
			t.Errorf("subject %q: Explain result %+v != CalculateScore %+v", subject, b.Result, res)
		}
	}
}

func TestExplainValidation(t *testing.T) {
	_, err := Explain(&model.AnalysisResult{Questions: questions()}, "English")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}
