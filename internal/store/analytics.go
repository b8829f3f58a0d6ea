package store

import (
	"context"
	"fmt"

	"github.com/gradeaid/gradeaid/internal/grading"
	"github.com/gradeaid/gradeaid/internal/model"
)

// DefaultTopStudents is how many students Analytics ranks when asked for none.
const DefaultTopStudents = 5

// Analytics aggregates the teacher's papers: a letter grade distribution,
// per-subject averages and the students with the highest average score.
// Letters are grouped as stored, so the bands are those of grading.LetterGrade.
func (s *Store) Analytics(ctx context.Context, teacherID int64, topStudents int) (model.Analytics, error) {
	if topStudents <= 0 {
		topStudents = DefaultTopStudents
	}
	var a model.Analytics

	err := s.queryRow(ctx,
		`SELECT COUNT(*), CAST(COALESCE(AVG(score), 0) AS DOUBLE PRECISION)
		 FROM papers WHERE teacher_id = ?`, teacherID,
	).Scan(&a.PaperCount, &a.AverageScore)
	if err != nil {
		return a, fmt.Errorf("totals: %w", err)
	}

	if a.Distribution, err = s.gradeDistribution(ctx, teacherID); err != nil {
		return a, fmt.Errorf("distribution: %w", err)
	}
	if a.Subjects, err = s.subjectAverages(ctx, teacherID); err != nil {
		return a, fmt.Errorf("subjects: %w", err)
	}
	if a.TopStudents, err = s.topStudents(ctx, teacherID, topStudents); err != nil {
		return a, fmt.Errorf("top students: %w", err)
	}
	return a, nil
}

func (s *Store) gradeDistribution(ctx context.Context, teacherID int64) ([]model.GradeBucket, error) {
	rows, err := s.query(ctx,
		`SELECT letter, COUNT(*) FROM papers WHERE teacher_id = ? GROUP BY letter`, teacherID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			letter string
			n      int
		)
		if err := rows.Scan(&letter, &n); err != nil {
			return nil, err
		}
		counts[letter] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	bands := grading.Bands()
	dist := make([]model.GradeBucket, 0, len(bands))
	for _, b := range bands {
		dist = append(dist, model.GradeBucket{Letter: b.Letter, Min: b.Min, Max: b.Max, Count: counts[b.Letter]})
	}
	return dist, nil
}

func (s *Store) subjectAverages(ctx context.Context, teacherID int64) ([]model.SubjectAverage, error) {
	rows, err := s.query(ctx,
		`SELECT subject, COUNT(*), CAST(AVG(score) AS DOUBLE PRECISION) AS avg_score
		 FROM papers WHERE teacher_id = ?
		 GROUP BY subject
		 ORDER BY avg_score DESC, subject`, teacherID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subjects := []model.SubjectAverage{}
	for rows.Next() {
		var sa model.SubjectAverage
		if err := rows.Scan(&sa.Subject, &sa.PaperCount, &sa.AverageScore); err != nil {
			return nil, err
		}
		subjects = append(subjects, sa)
	}
	return subjects, rows.Err()
}

func (s *Store) topStudents(ctx context.Context, teacherID int64, limit int) ([]model.StudentAverage, error) {
	rows, err := s.query(ctx,
		`SELECT p.student_id, st.name, COUNT(*), CAST(AVG(p.score) AS DOUBLE PRECISION) AS avg_score
		 FROM papers p JOIN students st ON st.id = p.student_id
		 WHERE p.teacher_id = ?
		 GROUP BY p.student_id, st.name
		 ORDER BY avg_score DESC, st.name
		 LIMIT ?`, teacherID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []model.StudentAverage{}
	for rows.Next() {
		var sa model.StudentAverage
		if err := rows.Scan(&sa.StudentID, &sa.Name, &sa.PaperCount, &sa.AverageScore); err != nil {
			return nil, err
		}
		students = append(students, sa)
	}
	return students, rows.Err()
}
