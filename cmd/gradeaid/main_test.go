package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/cors"

	"github.com/gradeaid/gradeaid/internal/grading"
	"github.com/gradeaid/gradeaid/internal/store"
)

func TestScoreAnalysis(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		input   string
		want    scoreOutput
		wantErr error
	}{
		{
			name:    "math accuracy only",
			subject: "math",
			input:   `{"questions": [{"accuracy": true}, {"accuracy": true}, {"accuracy": false}, {"accuracy": false}], "overallAssessment": {}}`,
			want:    scoreOutput{Score: 50, Method: grading.MethodAccuracyOnly, Letter: "F"},
		},
		{
			name:    "english weighted",
			subject: "English",
			input: `{"questions": [{"accuracy": true}, {"accuracy": false}],
				"overallAssessment": {"technicalSkills": {"score": 4}, "conceptualUnderstanding": {"score": 3}}}`,
			want: scoreOutput{Score: 62, Method: grading.MethodWeightedCriteria, Letter: "D"},
		},
		{
			name:    "passing",
			subject: "Science",
			input: `{"questions": [{"accuracy": true}],
				"overallAssessment": {"technicalSkills": {"score": 5}, "conceptualUnderstanding": {"score": 5}}}`,
			want: scoreOutput{Score: 100, Method: grading.MethodWeightedCriteria, Letter: "A", Passing: true},
		},
		{
			name:    "missing questions",
			subject: "math",
			input:   `{"overallAssessment": {}}`,
			wantErr: grading.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scoreAnalysis(strings.NewReader(tt.input), tt.subject)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("scoreAnalysis: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestScoreAnalysisBadJSON(t *testing.T) {
	if _, err := scoreAnalysis(strings.NewReader("{"), "math"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestWriteJSONOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	want := scoreOutput{Score: 74, Method: grading.MethodWeightedCriteria, Letter: "C", Passing: true}
	if err := writeJSONOutput(path, want); err != nil {
		t.Fatalf("writeJSONOutput: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasSuffix(string(data), "}\n") {
		t.Error("output should end with a newline")
	}
	var got scoreOutput
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSeedAdmin(t *testing.T) {
	ctx := context.Background()
	db, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	defer db.Close()

	if err := seedAdmin(ctx, db, ""); err == nil {
		t.Fatal("empty store without password should fail")
	}
	if err := seedAdmin(ctx, db, "pw"); err != nil {
		t.Fatalf("seedAdmin: %v", err)
	}
	if err := seedAdmin(ctx, db, ""); err != nil {
		t.Fatalf("second seedAdmin should be a no-op: %v", err)
	}
	n, err := db.UserCount(ctx)
	if err != nil || n != 1 {
		t.Errorf("UserCount = %d, %v", n, err)
	}
	admin, err := db.GetUserByUsername(ctx, "admin")
	if err != nil || admin == nil || admin.PasswordHash == "pw" {
		t.Errorf("admin not seeded with a hashed password: %+v, %v", admin, err)
	}
}

func TestCORSAllowsDelete(t *testing.T) {
	h := cors.Handler(corsOptions([]string{"http://localhost:3000"}))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/papers/abc", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, http.MethodDelete) {
		t.Errorf("Access-Control-Allow-Methods = %q, want DELETE allowed", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}
