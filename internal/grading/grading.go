// Package grading turns an LLM analysis of a student paper into a 0-100 score.
//
// Quantitative subjects are scored on question accuracy alone. Every other
// subject blends technical skills, conceptual understanding and accuracy with
// fixed weights. All functions are pure and safe for concurrent use.
package grading

import (
	"math"
	"strings"

	"github.com/gradeaid/gradeaid/internal/model"
)

// Method identifies the scoring policy applied to a paper.
type Method string

const (
	// MethodAccuracyOnly scores the share of correctly answered questions.
	MethodAccuracyOnly Method = "accuracy_only"
	// MethodWeightedCriteria blends skill ratings with question accuracy.
	MethodWeightedCriteria Method = "weighted_criteria"
)

// MaxSkillScore is the top of the 0-5 skill scale.
const MaxSkillScore = 5.0

const (
	skillToPercent     = 20.0 // 0-5 scale to 0-100
	maxScore           = 100
	weightSumTolerance = 1e-9
	snapPrecision      = 1e9
)

// ScoreWeights are the component weights of the weighted policy.
type ScoreWeights struct {
	Technical  float64 `json:"technicalSkills"`
	Conceptual float64 `json:"conceptualUnderstanding"`
	Accuracy   float64 `json:"questionAccuracy"`
}

// Sum returns the total of all weights.
func (w ScoreWeights) Sum() float64 {
	return w.Technical + w.Conceptual + w.Accuracy
}

var weights = ScoreWeights{
	Technical:  0.30,
	Conceptual: 0.30,
	Accuracy:   0.40,
}

// Weights returns a copy of the weights used by WeightedScore.
func Weights() ScoreWeights {
	return weights
}

// Result is the outcome of scoring one analysis.
type Result struct {
	Score  int    `json:"score"`
	Method Method `json:"method"`
}

// quantitativeSubjects are compared with case folding and must match exactly.
var quantitativeSubjects = []string{"math", "mathematics"}

// ClassifySubject picks the scoring method for a subject label.
func ClassifySubject(subject string) Method {
	for _, s := range quantitativeSubjects {
		if strings.EqualFold(subject, s) {
			return MethodAccuracyOnly
		}
	}
	return MethodWeightedCriteria
}

// AccuracyScore returns round(100 * correct / total). An empty question list
// uses a denominator of 1 and therefore scores 0.
func AccuracyScore(questions []model.QuestionResult) int {
	correct := 0
	for _, q := range questions {
		if q.Accuracy {
			correct++
		}
	}
	total := len(questions)
	if total == 0 {
		total = 1
	}
	return int(roundHalfUp(float64(maxScore*correct) / float64(total)))
}

// WeightedScore blends the two skill ratings with AccuracyScore. Missing or
// NaN skill ratings count as 0 and ratings outside 0-5 are clamped first.
func WeightedScore(a *model.OverallAssessment, questions []model.QuestionResult) int {
	technical, conceptual := skillPercents(a)
	accuracy := float64(AccuracyScore(questions))

	total := technical*weights.Technical +
		conceptual*weights.Conceptual +
		accuracy*weights.Accuracy

	return int(clamp(roundHalfUp(snap(total)), 0, maxScore))
}

// CalculateScore validates the analysis, selects the method for subject and
// computes the score. It returns a *ValidationError for missing required
// fields and a *ComputationError if an engine invariant does not hold.
func CalculateScore(a *model.AnalysisResult, subject string) (Result, error) {
	if err := Validate(a); err != nil {
		return Result{}, err
	}
	if sum := weights.Sum(); math.Abs(sum-1) > weightSumTolerance {
		return Result{}, &ComputationError{Value: sum, Reason: "weights do not sum to 1"}
	}

	method := ClassifySubject(subject)
	var score int
	switch method {
	case MethodAccuracyOnly:
		score = AccuracyScore(a.Questions)
	default:
		score = WeightedScore(a.OverallAssessment, a.Questions)
	}

	if err := checkScore(method, score); err != nil {
		return Result{}, err
	}
	return Result{Score: score, Method: method}, nil
}

// Validate checks the fields CalculateScore requires.
func Validate(a *model.AnalysisResult) error {
	if a == nil {
		return &ValidationError{Field: "analysis", Reason: "is required"}
	}
	if a.Questions == nil {
		return &ValidationError{Field: "questions", Reason: "must be a list"}
	}
	if a.OverallAssessment == nil {
		return &ValidationError{Field: "overallAssessment", Reason: "is required"}
	}
	return nil
}

func checkScore(method Method, score int) error {
	if score < 0 || score > maxScore {
		return &ComputationError{Method: method, Value: float64(score), Reason: "score outside 0-100"}
	}
	return nil
}

// skillPercents returns both skill ratings converted to 0-100.
func skillPercents(a *model.OverallAssessment) (technical, conceptual float64) {
	if a == nil {
		return 0, 0
	}
	return skillPercent(a.TechnicalSkills), skillPercent(a.ConceptualUnderstanding)
}

func skillPercent(s *model.SkillAssessment) float64 {
	v, _ := s.SkillScore()
	return clamp(v, 0, MaxSkillScore) * skillToPercent
}

// roundHalfUp rounds to the nearest integer, with halves going up.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// snap removes float noise below 1e-9 so that totals which are exactly .5 in
// decimal arithmetic round up. 25*0.30 sums to 7.4999999... without it.
func snap(x float64) float64 {
	return math.Round(x*snapPrecision) / snapPrecision
}

// clamp limits x to [lo, hi]. NaN maps to lo.
func clamp(x, lo, hi float64) float64 {
	switch {
	case math.IsNaN(x), x < lo:
		return lo
	case x > hi:
		return hi
	}
	return x
}
