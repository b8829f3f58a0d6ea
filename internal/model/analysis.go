package model

// AnalysisResult is the structured grading analysis an LLM produces for one
// submission. Field names follow the JSON the model is asked to return.
//
// Questions is nil when the field was absent or null; an empty slice means the
// model found no questions.
type AnalysisResult struct {
	Questions         []QuestionResult   `json:"questions"`
	OverallAssessment *OverallAssessment `json:"overallAssessment"`
	Meta              *AnalysisMeta      `json:"meta,omitempty"`
}

// QuestionResult is the per-question evaluation. Only Accuracy affects scoring.
type QuestionResult struct {
	Number                 int      `json:"number"`
	Accuracy               bool     `json:"accuracy"`
	Score                  float64  `json:"score,omitempty"`
	ProcessEvaluation      string   `json:"processEvaluation,omitempty"`
	CompletenessEvaluation string   `json:"completenessEvaluation,omitempty"`
	PresentationEvaluation string   `json:"presentationEvaluation,omitempty"`
	Feedback               string   `json:"feedback,omitempty"`
	CommonMistakes         []string `json:"commonMistakes,omitempty"`
	ConceptsCovered        []string `json:"conceptsCovered,omitempty"`
	LearningObjectives     []string `json:"learningObjectives,omitempty"`
	RemedialSuggestions    []string `json:"remedialSuggestions,omitempty"`
	ChallengeExtensions    []string `json:"challengeExtensions,omitempty"`
}

// SkillAssessment rates one skill dimension on a 0-5 scale.
type SkillAssessment struct {
	Score      *float64 `json:"score,omitempty"`
	Strengths  []string `json:"strengths,omitempty"`
	Weaknesses []string `json:"weaknesses,omitempty"`
}

// OverallAssessment summarises the whole submission.
type OverallAssessment struct {
	TotalScore              float64          `json:"totalScore,omitempty"`
	GradingMethod           string           `json:"gradingMethod,omitempty"`
	TechnicalSkills         *SkillAssessment `json:"technicalSkills,omitempty"`
	ConceptualUnderstanding *SkillAssessment `json:"conceptualUnderstanding,omitempty"`
	MajorStrengths          []string         `json:"majorStrengths,omitempty"`
	AreasForImprovement     []string         `json:"areasForImprovement,omitempty"`
	Recommendations         []string         `json:"recommendations,omitempty"`
	TeacherSummary          string           `json:"teacherSummary,omitempty"`
	LearningPath            *LearningPath    `json:"learningPath,omitempty"`
	SkillGaps               *SkillGaps       `json:"skillGaps,omitempty"`
	NextSteps               *NextSteps       `json:"nextSteps,omitempty"`
}

type LearningPath struct {
	ShortTerm  []string `json:"shortTerm,omitempty"`
	MediumTerm []string `json:"mediumTerm,omitempty"`
	LongTerm   []string `json:"longTerm,omitempty"`
}

type SkillGaps struct {
	Critical []string `json:"critical,omitempty"`
	Moderate []string `json:"moderate,omitempty"`
	Minor    []string `json:"minor,omitempty"`
}

type NextSteps struct {
	Practice []string `json:"practice,omitempty"`
	Review   []string `json:"review,omitempty"`
	Advance  []string `json:"advance,omitempty"`
}

// AnalysisMeta records where an analysis came from.
type AnalysisMeta struct {
	AnalysisTimestamp string `json:"analysisTimestamp,omitempty"`
	Subject           string `json:"subject,omitempty"`
	ModelVersion      string `json:"modelVersion,omitempty"`
}

// SkillScore returns the score of a possibly missing skill assessment.
// The second value is false when the assessment or its score is absent.
func (s *SkillAssessment) SkillScore() (float64, bool) {
	if s == nil || s.Score == nil {
		return 0, false
	}
	return *s.Score, true
}
