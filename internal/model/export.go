package model

import "time"

// PapersExport is the top-level JSON structure for a teacher's graded papers.
type PapersExport struct {
	Teacher    string        `json:"teacher"`
	ExportedAt time.Time     `json:"exported_at"`
	NumPapers  int           `json:"num_papers"`
	Results    []PaperResult `json:"results"`
}

// PaperResult holds one graded paper for export.
type PaperResult struct {
	PaperID        string           `json:"paper_id"`
	StudentName    string           `json:"student_name"`
	Subject        string           `json:"subject"`
	FileName       string           `json:"file_name"`
	Score          int              `json:"score"`
	Method         string           `json:"method"`
	Letter         string           `json:"letter"`
	AnalyzedAt     time.Time        `json:"analyzed_at"`
	TeacherSummary string           `json:"teacher_summary,omitempty"`
	Questions      []QuestionResult `json:"questions"`
}
