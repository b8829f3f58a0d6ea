package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gradeaid/gradeaid/internal/model"
)

const paperColumns = `id, teacher_id, student_id, subject, file_name, score, method, letter, analysis_json, analyzed_at`

// SavePaper stores a graded paper. The analysis is serialised as received.
// An empty ID is replaced with a new UUID; the stored paper is returned.
func (s *Store) SavePaper(ctx context.Context, p model.Paper) (model.Paper, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.AnalyzedAt.IsZero() {
		p.AnalyzedAt = time.Now().UTC()
	}
	js, err := json.Marshal(p.Analysis)
	if err != nil {
		return model.Paper{}, fmt.Errorf("marshal analysis: %w", err)
	}
	_, err = s.exec(ctx,
		`INSERT INTO papers (`+paperColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.TeacherID, p.StudentID, p.Subject, p.FileName, p.Score, p.Method, p.Letter, string(js), p.AnalyzedAt,
	)
	if err != nil {
		return model.Paper{}, err
	}
	return p, nil
}

// GetPaper returns one of the teacher's papers, or nil if there is none.
func (s *Store) GetPaper(ctx context.Context, teacherID int64, id string) (*model.Paper, error) {
	rows, err := s.query(ctx,
		`SELECT `+paperColumns+` FROM papers WHERE id = ? AND teacher_id = ?`, id, teacherID,
	)
	if err != nil {
		return nil, err
	}
	papers, err := scanPapers(rows)
	if err != nil {
		return nil, err
	}
	if len(papers) == 0 {
		return nil, nil
	}
	return &papers[0], nil
}

// ListPapers returns the teacher's papers, newest first. A non-zero
// studentID restricts the list to that student.
func (s *Store) ListPapers(ctx context.Context, teacherID, studentID int64) ([]model.Paper, error) {
	query := `SELECT ` + paperColumns + ` FROM papers WHERE teacher_id = ?`
	args := []any{teacherID}
	if studentID != 0 {
		query += ` AND student_id = ?`
		args = append(args, studentID)
	}
	query += ` ORDER BY analyzed_at DESC, id`
	rows, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanPapers(rows)
}

// DeletePaper removes one of the teacher's papers. It reports false when the
// teacher has no paper with that ID.
func (s *Store) DeletePaper(ctx context.Context, teacherID int64, id string) (bool, error) {
	res, err := s.exec(ctx, `DELETE FROM papers WHERE id = ? AND teacher_id = ?`, id, teacherID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// StudentSummary aggregates the scores of one student's papers.
func (s *Store) StudentSummary(ctx context.Context, teacherID, studentID int64) (model.StudentSummary, error) {
	sum := model.StudentSummary{StudentID: studentID}
	err := s.queryRow(ctx,
		`SELECT COUNT(*),
		        CAST(COALESCE(AVG(score), 0) AS DOUBLE PRECISION),
		        COALESCE(MIN(score), 0),
		        COALESCE(MAX(score), 0)
		 FROM papers WHERE teacher_id = ? AND student_id = ?`,
		teacherID, studentID,
	).Scan(&sum.PaperCount, &sum.AverageScore, &sum.MinScore, &sum.MaxScore)
	return sum, err
}

func scanPapers(rows *sql.Rows) ([]model.Paper, error) {
	defer rows.Close()
	var papers []model.Paper
	for rows.Next() {
		var (
			p  model.Paper
			js string
		)
		if err := rows.Scan(&p.ID, &p.TeacherID, &p.StudentID, &p.Subject, &p.FileName,
			&p.Score, &p.Method, &p.Letter, &js, &p.AnalyzedAt); err != nil {
			return nil, err
		}
		var a model.AnalysisResult
		if err := json.Unmarshal([]byte(js), &a); err != nil {
			return nil, fmt.Errorf("decode analysis for paper %s: %w", p.ID, err)
		}
		p.Analysis = &a
		papers = append(papers, p)
	}
	return papers, rows.Err()
}
