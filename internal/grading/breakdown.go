package grading

import "github.com/gradeaid/gradeaid/internal/model"

// Component names used in a Breakdown.
const (
	ComponentTechnical  = "technical_skills"
	ComponentConceptual = "conceptual_understanding"
	ComponentAccuracy   = "question_accuracy"
)

// Component is one input to the overall score as shown to a teacher.
type Component struct {
	Name    string  `json:"name"`
	Weight  float64 `json:"weight"`
	Percent int     `json:"percent"`
}

// Breakdown explains how a score was reached.
type Breakdown struct {
	Result
	Components []Component `json:"components"`
}

// Explain scores the analysis like CalculateScore and also reports each
// component's percentage and weight. Accuracy-only scoring has a single
// component with weight 1.
func Explain(a *model.AnalysisResult, subject string) (Breakdown, error) {
	res, err := CalculateScore(a, subject)
	if err != nil {
		return Breakdown{}, err
	}

	accuracy := Component{Name: ComponentAccuracy, Weight: 1, Percent: AccuracyScore(a.Questions)}
	if res.Method == MethodAccuracyOnly {
		return Breakdown{Result: res, Components: []Component{accuracy}}, nil
	}

	technical, conceptual := skillPercents(a.OverallAssessment)
	accuracy.Weight = weights.Accuracy
	return Breakdown{
		Result: res,
		Components: []Component{
			{Name: ComponentTechnical, Weight: weights.Technical, Percent: int(roundHalfUp(snap(technical)))},
			{Name: ComponentConceptual, Weight: weights.Conceptual, Percent: int(roundHalfUp(snap(conceptual)))},
			accuracy,
		},
	}, nil
}
