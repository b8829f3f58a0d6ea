package handler

import (
	"log/slog"
	"net/http"
	"strings"

	appI18n "github.com/gradeaid/gradeaid/internal/i18n"
	"github.com/gradeaid/gradeaid/internal/model"
)

type summaryResponse struct {
	model.StudentSummary
	Message string `json:"message"`
}

type createStudentRequest struct {
	Name  string `json:"name"`
	Grade string `json:"grade"`
}

func (h *Handler) handleListStudents(w http.ResponseWriter, r *http.Request) {
	teacher := model.UserFromContext(r.Context())
	students, err := h.store.ListStudents(r.Context(), teacher.ID)
	if err != nil {
		slog.Error("failed to list students", "teacher_id", teacher.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if students == nil {
		students = []model.Student{}
	}
	writeJSON(w, http.StatusOK, students)
}

func (h *Handler) handleCreateStudent(w http.ResponseWriter, r *http.Request) {
	teacher := model.UserFromContext(r.Context())

	var req createStudentRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}

	st := model.Student{TeacherID: teacher.ID, Name: req.Name, Grade: strings.TrimSpace(req.Grade)}
	id, err := h.store.CreateStudent(r.Context(), st)
	if err != nil {
		slog.Error("failed to create student", "teacher_id", teacher.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	created, err := h.store.GetStudent(r.Context(), teacher.ID, id)
	if err != nil || created == nil {
		slog.Error("failed to reload student", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleStudentSummary(w http.ResponseWriter, r *http.Request) {
	teacher := model.UserFromContext(r.Context())
	id, err := parseID(r, "studentID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	st, err := h.store.GetStudent(r.Context(), teacher.ID, id)
	if err != nil {
		slog.Error("failed to get student", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if st == nil {
		writeError(w, http.StatusNotFound, appI18n.T(r.Context(), "ErrStudentNotFound"))
		return
	}

	sum, err := h.store.StudentSummary(r.Context(), teacher.ID, id)
	if err != nil {
		slog.Error("failed to summarize student", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{
		StudentSummary: sum,
		Message:        appI18n.Tp(r.Context(), "PapersGraded", sum.PaperCount),
	})
}
