package grading

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/gradeaid/gradeaid/internal/model"
)

func ptr(v float64) *float64 { return &v }

func questions(accuracy ...bool) []model.QuestionResult {
	qs := make([]model.QuestionResult, 0, len(accuracy))
	for i, a := range accuracy {
		qs = append(qs, model.QuestionResult{Number: i + 1, Accuracy: a})
	}
	return qs
}

func assessment(technical, conceptual *float64) *model.OverallAssessment {
	oa := &model.OverallAssessment{}
	if technical != nil {
		oa.TechnicalSkills = &model.SkillAssessment{Score: technical}
	}
	if conceptual != nil {
		oa.ConceptualUnderstanding = &model.SkillAssessment{Score: conceptual}
	}
	return oa
}

func TestClassifySubject(t *testing.T) {
	tests := []struct {
		subject string
		want    Method
	}{
		{"math", MethodAccuracyOnly},
		{"Math", MethodAccuracyOnly},
		{"MATHEMATICS", MethodAccuracyOnly},
		{"mathematics", MethodAccuracyOnly},
		{"biology", MethodWeightedCriteria},
		{"", MethodWeightedCriteria},
		{"mathematics club", MethodWeightedCriteria},
		{"aftermath", MethodWeightedCriteria},
		{" math", MethodWeightedCriteria},
		{"maths", MethodWeightedCriteria},
	}

	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			if got := ClassifySubject(tt.subject); got != tt.want {
				t.Errorf("ClassifySubject(%q) = %q, want %q", tt.subject, got, tt.want)
			}
		})
	}
}

func TestAccuracyScoreAllCounts(t *testing.T) {
	for n := 0; n <= 12; n++ {
		for k := 0; k <= n; k++ {
			acc := make([]bool, n)
			for i := 0; i < k; i++ {
				acc[i] = true
			}
			a := &model.AnalysisResult{Questions: questions(acc...), OverallAssessment: &model.OverallAssessment{}}

			res, err := CalculateScore(a, "math")
			if err != nil {
				t.Fatalf("n=%d k=%d: CalculateScore: %v", n, k, err)
			}

			want := 0
			if n > 0 {
				// Integer form of floor(100k/n + 0.5).
				want = (200*k + n) / (2 * n)
			}
			if res.Score != want {
				t.Errorf("n=%d k=%d: score = %d, want %d", n, k, res.Score, want)
			}
			if res.Method != MethodAccuracyOnly {
				t.Errorf("n=%d k=%d: method = %q", n, k, res.Method)
			}
		}
	}
}

func TestAccuracyScoreRounding(t *testing.T) {
	tests := []struct {
		name string
		acc  []bool
		want int
	}{
		{"empty", nil, 0},
		{"one of eight rounds half up", []bool{true, false, false, false, false, false, false, false}, 13},
		{"three of eight rounds half up", []bool{true, true, true, false, false, false, false, false}, 38},
		{"two of three", []bool{true, true, false}, 67},
		{"one of three", []bool{true, false, false}, 33},
		{"all", []bool{true, true}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AccuracyScore(questions(tt.acc...)); got != tt.want {
				t.Errorf("AccuracyScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWeightsSumToOne(t *testing.T) {
	w := Weights()
	if math.Abs(w.Sum()-1) > 1e-9 {
		t.Errorf("weights sum = %v, want 1", w.Sum())
	}
	if w.Technical != 0.30 || w.Conceptual != 0.30 || w.Accuracy != 0.40 {
		t.Errorf("unexpected weights %+v", w)
	}
}

func TestWeightsReturnsCopy(t *testing.T) {
	w := Weights()
	w.Accuracy = 1
	if Weights().Accuracy != 0.40 {
		t.Error("modifying the returned weights changed the package weights")
	}
}

func TestWeightedScore(t *testing.T) {
	tests := []struct {
		name       string
		assessment *model.OverallAssessment
		acc        []bool
		want       int
	}{
		{"perfect", assessment(ptr(5), ptr(5)), []bool{true, true, true}, 100},
		{"zero", assessment(ptr(0), ptr(0)), []bool{false, false}, 0},
		{"english scenario", assessment(ptr(4), ptr(3)), []bool{true, false}, 62},
		{"skills above range are clamped", assessment(ptr(7), ptr(1000)), []bool{true}, 100},
		{"skills below range are clamped", assessment(ptr(-1), ptr(-3)), []bool{false}, 0},
		{"mixed out of range", assessment(ptr(7), ptr(-1)), []bool{true}, 70},
		{"missing technical skills", assessment(nil, ptr(5)), []bool{true}, 70},
		{"missing both skills", assessment(nil, nil), []bool{true, true}, 40},
		{"nil assessment", nil, []bool{true}, 40},
		{"NaN skill counts as zero", assessment(ptr(math.NaN()), ptr(5)), []bool{true}, 70},
		{"infinite skill is clamped", assessment(ptr(math.Inf(1)), ptr(math.Inf(-1))), nil, 30},
		{"no questions", assessment(ptr(5), ptr(5)), nil, 60},
		{"exact half rounds up", assessment(ptr(0.05), ptr(1.2)), []bool{false}, 8},
		{"exact half from tenths", assessment(ptr(0.15), ptr(0.1)), []bool{false}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeightedScore(tt.assessment, questions(tt.acc...))
			if got != tt.want {
				t.Errorf("WeightedScore() = %d, want %d", got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("WeightedScore() = %d outside 0-100", got)
			}
		})
	}
}

// Skill scores in tenths make every weighted total a multiple of 0.1, so the
// exact result is (6*tech + 6*concept + 4*accuracy + 5) / 10 in integers.
func TestWeightedScoreTenthsRoundHalfUp(t *testing.T) {
	answerSets := [][]bool{nil, {false}, {true, false}, {true, true, false, false, false}, {true}}
	for tech := 0; tech <= 50; tech++ {
		for concept := 0; concept <= 50; concept++ {
			for _, answers := range answerSets {
				qs := questions(answers...)
				acc := AccuracyScore(qs)
				want := (6*tech + 6*concept + 4*acc + 5) / 10
				a := assessment(ptr(float64(tech)/10), ptr(float64(concept)/10))
				if got := WeightedScore(a, qs); got != want {
					t.Fatalf("skills %.1f/%.1f accuracy %d: got %d, want %d",
						float64(tech)/10, float64(concept)/10, acc, got, want)
				}
			}
		}
	}
}

func TestWeightedScoreMissingScoreField(t *testing.T) {
	oa := &model.OverallAssessment{
		TechnicalSkills:         &model.SkillAssessment{Strengths: []string{"neat"}},
		ConceptualUnderstanding: &model.SkillAssessment{Score: ptr(5)},
	}
	if got := WeightedScore(oa, questions(true)); got != 70 {
		t.Errorf("WeightedScore() = %d, want 70", got)
	}
}

func TestCalculateScoreScenarios(t *testing.T) {
	tests := []struct {
		name       string
		subject    string
		assessment *model.OverallAssessment
		acc        []bool
		want       Result
	}{
		{
			name:       "mathematics half correct",
			subject:    "Mathematics",
			assessment: assessment(ptr(1), ptr(1)),
			acc:        []bool{true, true, false, false},
			want:       Result{Score: 50, Method: MethodAccuracyOnly},
		},
		{
			name:       "english weighted",
			subject:    "English",
			assessment: assessment(ptr(4), ptr(3)),
			acc:        []bool{true, false},
			want:       Result{Score: 62, Method: MethodWeightedCriteria},
		},
		{
			name:       "math ignores skills",
			subject:    "math",
			assessment: assessment(ptr(5), ptr(5)),
			acc:        []bool{false, false},
			want:       Result{Score: 0, Method: MethodAccuracyOnly},
		},
		{
			name:       "empty subject is weighted",
			subject:    "",
			assessment: assessment(ptr(5), ptr(5)),
			acc:        []bool{true},
			want:       Result{Score: 100, Method: MethodWeightedCriteria},
		},
		{
			name:       "math with no questions",
			subject:    "MATH",
			assessment: &model.OverallAssessment{},
			acc:        []bool{},
			want:       Result{Score: 0, Method: MethodAccuracyOnly},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &model.AnalysisResult{Questions: questions(tt.acc...), OverallAssessment: tt.assessment}
			got, err := CalculateScore(a, tt.subject)
			if err != nil {
				t.Fatalf("CalculateScore: %v", err)
			}
			if got != tt.want {
				t.Errorf("CalculateScore() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCalculateScoreValidation(t *testing.T) {
	tests := []struct {
		name      string
		analysis  *model.AnalysisResult
		wantField string
	}{
		{"nil analysis", nil, "analysis"},
		{"nil questions", &model.AnalysisResult{OverallAssessment: &model.OverallAssessment{}}, "questions"},
		{"missing overall assessment", &model.AnalysisResult{Questions: questions(true)}, "overallAssessment"},
	}

	for _, tt := range tests {
		for _, subject := range []string{"math", "English", ""} {
			t.Run(tt.name+"/"+subject, func(t *testing.T) {
				res, err := CalculateScore(tt.analysis, subject)
				if err == nil {
					t.Fatalf("expected error, got %+v", res)
				}
				if res != (Result{}) {
					t.Errorf("expected zero result alongside error, got %+v", res)
				}
				if !errors.Is(err, ErrValidation) {
					t.Errorf("expected ErrValidation, got %v", err)
				}
				if errors.Is(err, ErrComputation) {
					t.Error("validation error must not match ErrComputation")
				}
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("expected *ValidationError, got %T", err)
				}
				if ve.Field != tt.wantField {
					t.Errorf("field = %q, want %q", ve.Field, tt.wantField)
				}
			})
		}
	}
}

func TestCalculateScoreFromJSON(t *testing.T) {
	input := `{
		"questions": [{"number": 1, "accuracy": true}, {"number": 2, "accuracy": false}],
		"overallAssessment": {"conceptualUnderstanding": {"score": 3}}
	}`
	var a model.AnalysisResult
	if err := json.Unmarshal([]byte(input), &a); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	got, err := CalculateScore(&a, "History")
	if err != nil {
		t.Fatalf("CalculateScore: %v", err)
	}
	// 0*0.3 + 60*0.3 + 50*0.4 = 38
	if got.Score != 38 || got.Method != MethodWeightedCriteria {
		t.Errorf("got %+v, want score 38 weighted", got)
	}

	var missing model.AnalysisResult
	if err := json.Unmarshal([]byte(`{"questions": []}`), &missing); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, err := CalculateScore(&missing, "math"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error for missing overallAssessment, got %v", err)
	}
}

func TestCalculateScoreIsIdempotentAndPure(t *testing.T) {
	a := &model.AnalysisResult{
		Questions:         questions(true, false, true),
		OverallAssessment: assessment(ptr(9), ptr(2.5)),
	}
	before, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	first, err := CalculateScore(a, "Science")
	if err != nil {
		t.Fatalf("CalculateScore: %v", err)
	}
	second, err := CalculateScore(a, "Science")
	if err != nil {
		t.Fatalf("CalculateScore: %v", err)
	}
	if first != second {
		t.Errorf("results differ: %+v vs %+v", first, second)
	}

	after, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !reflect.DeepEqual(before, after) {
		t.Errorf("analysis was mutated:\nbefore %s\nafter  %s", before, after)
	}
	if *a.OverallAssessment.TechnicalSkills.Score != 9 {
		t.Error("out-of-range skill score was clamped in place")
	}
}

func TestCheckScore(t *testing.T) {
	for _, score := range []int{0, 50, 100} {
		if err := checkScore(MethodWeightedCriteria, score); err != nil {
			t.Errorf("checkScore(%d) = %v, want nil", score, err)
		}
	}
	for _, score := range []int{-1, 101, 1000} {
		err := checkScore(MethodAccuracyOnly, score)
		if !errors.Is(err, ErrComputation) {
			t.Errorf("checkScore(%d) = %v, want ErrComputation", score, err)
		}
		var ce *ComputationError
		if !errors.As(err, &ce) || ce.Method != MethodAccuracyOnly {
			t.Errorf("checkScore(%d): expected *ComputationError for accuracy_only, got %v", score, err)
		}
	}
}

func TestCalculateScoreRejectsBrokenWeights(t *testing.T) {
	saved := weights
	t.Cleanup(func() { weights = saved })
	weights.Accuracy = 0.5

	a := &model.AnalysisResult{Questions: questions(true), OverallAssessment: &model.OverallAssessment{}}
	_, err := CalculateScore(a, "English")
	if !errors.Is(err, ErrComputation) {
		t.Fatalf("expected ErrComputation, got %v", err)
	}
	if errors.Is(err, ErrValidation) {
		t.Error("computation error must not match ErrValidation")
	}
}
