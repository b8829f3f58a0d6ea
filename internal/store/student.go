package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gradeaid/gradeaid/internal/model"
)

// CreateStudent adds a student to a teacher's roster.
func (s *Store) CreateStudent(ctx context.Context, st model.Student) (int64, error) {
	var id int64
	err := s.queryRow(ctx,
		`INSERT INTO students (teacher_id, name, grade, created_at) VALUES (?, ?, ?, ?) RETURNING id`,
		st.TeacherID, st.Name, st.Grade, time.Now().UTC(),
	).Scan(&id)
	return id, err
}

// GetStudent returns one of the teacher's students, or nil if the student
// does not exist or belongs to another teacher.
func (s *Store) GetStudent(ctx context.Context, teacherID, id int64) (*model.Student, error) {
	var st model.Student
	err := s.queryRow(ctx,
		`SELECT id, teacher_id, name, grade, created_at FROM students WHERE id = ? AND teacher_id = ?`,
		id, teacherID,
	).Scan(&st.ID, &st.TeacherID, &st.Name, &st.Grade, &st.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// ListStudents returns the teacher's students ordered by name.
func (s *Store) ListStudents(ctx context.Context, teacherID int64) ([]model.Student, error) {
	rows, err := s.query(ctx,
		`SELECT id, teacher_id, name, grade, created_at FROM students WHERE teacher_id = ? ORDER BY name, id`,
		teacherID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var students []model.Student
	for rows.Next() {
		var st model.Student
		if err := rows.Scan(&st.ID, &st.TeacherID, &st.Name, &st.Grade, &st.CreatedAt); err != nil {
			return nil, err
		}
		students = append(students, st)
	}
	return students, rows.Err()
}
