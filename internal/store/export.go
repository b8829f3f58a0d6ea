package store

import (
	"context"
	"fmt"

	"github.com/gradeaid/gradeaid/internal/model"
)

// ExportPapers builds export-ready results from all of a teacher's papers.
func (s *Store) ExportPapers(ctx context.Context, teacherID int64) ([]model.PaperResult, error) {
	papers, err := s.ListPapers(ctx, teacherID, 0)
	if err != nil {
		return nil, fmt.Errorf("list papers: %w", err)
	}

	students, err := s.ListStudents(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	names := make(map[int64]string, len(students))
	for _, st := range students {
		names[st.ID] = st.Name
	}

	results := make([]model.PaperResult, 0, len(papers))
	for _, p := range papers {
		r := model.PaperResult{
			PaperID:     p.ID,
			StudentName: names[p.StudentID],
			Subject:     p.Subject,
			FileName:    p.FileName,
			Score:       p.Score,
			Method:      p.Method,
			Letter:      p.Letter,
			AnalyzedAt:  p.AnalyzedAt,
		}
		if p.Analysis != nil {
			r.Questions = p.Analysis.Questions
			if oa := p.Analysis.OverallAssessment; oa != nil {
				r.TeacherSummary = oa.TeacherSummary
			}
		}
		results = append(results, r)
	}

	return results, nil
}
