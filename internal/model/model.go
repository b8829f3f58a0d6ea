package model

import (
	"context"
	"time"
)

// UserRole represents a user's access level.
type UserRole string

const (
	// UserRoleTeacher is a teacher account. Teachers only see their own students and papers.
	UserRoleTeacher UserRole = "teacher"
	// UserRoleAdmin is an admin account.
	UserRoleAdmin UserRole = "admin"
)

// User represents a teacher or admin account.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthSession represents an authentication session.
type AuthSession struct {
	ID        string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

type userCtxKey struct{}

// ContextWithUser stores a user in the request context.
func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// UserFromContext retrieves the authenticated user from context, or nil.
func UserFromContext(ctx context.Context) *User {
	u, _ := ctx.Value(userCtxKey{}).(*User)
	return u
}

// Student belongs to exactly one teacher.
type Student struct {
	ID        int64     `json:"id"`
	TeacherID int64     `json:"teacher_id"`
	Name      string    `json:"name"`
	Grade     string    `json:"grade,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Paper is a graded submission: the analysis as produced upstream, stored
// unchanged, alongside the score derived from it.
type Paper struct {
	ID         string          `json:"id"`
	TeacherID  int64           `json:"teacher_id"`
	StudentID  int64           `json:"student_id"`
	Subject    string          `json:"subject"`
	FileName   string          `json:"file_name"`
	Score      int             `json:"score"`
	Method     string          `json:"method"`
	Letter     string          `json:"letter"`
	Analysis   *AnalysisResult `json:"analysis"`
	AnalyzedAt time.Time       `json:"analyzed_at"`
}

// StudentSummary aggregates a student's graded papers.
type StudentSummary struct {
	StudentID    int64   `json:"student_id"`
	PaperCount   int     `json:"paper_count"`
	AverageScore float64 `json:"average_score"`
	MinScore     int     `json:"min_score"`
	MaxScore     int     `json:"max_score"`
}

// ServerConfig holds runtime parameters set via CLI flags.
type ServerConfig struct {
	SecureCookies bool // Set Secure flag on cookies (disable for local dev)
	MaxUploadSize int64
}

// GradeBucket counts papers whose score falls in one letter band.
type GradeBucket struct {
	Letter string `json:"letter"`
	Min    int    `json:"min"`
	Max    int    `json:"max"`
	Count  int    `json:"count"`
}

type SubjectAverage struct {
	Subject      string  `json:"subject"`
	PaperCount   int     `json:"paper_count"`
	AverageScore float64 `json:"average_score"`
}

type StudentAverage struct {
	StudentID    int64   `json:"student_id"`
	Name         string  `json:"name"`
	PaperCount   int     `json:"paper_count"`
	AverageScore float64 `json:"average_score"`
}

// Analytics aggregates all of a teacher's graded papers.
type Analytics struct {
	PaperCount   int              `json:"paper_count"`
	AverageScore float64          `json:"average_score"`
	Distribution []GradeBucket    `json:"distribution"`
	Subjects     []SubjectAverage `json:"subjects"`
	TopStudents  []StudentAverage `json:"top_students"`
}
