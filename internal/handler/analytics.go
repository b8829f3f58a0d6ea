package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	appI18n "github.com/gradeaid/gradeaid/internal/i18n"
	"github.com/gradeaid/gradeaid/internal/model"
	"github.com/gradeaid/gradeaid/internal/store"
)

const maxTopStudents = 50

type analyticsResponse struct {
	model.Analytics
	Message string `json:"message"`
}

func (h *Handler) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	teacher := model.UserFromContext(r.Context())

	top := store.DefaultTopStudents
	if v := r.URL.Query().Get("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxTopStudents {
			writeError(w, http.StatusBadRequest, "invalid top")
			return
		}
		top = n
	}

	a, err := h.store.Analytics(r.Context(), teacher.ID, top)
	if err != nil {
		slog.Error("failed to build analytics", "teacher_id", teacher.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, analyticsResponse{
		Analytics: a,
		Message:   appI18n.Tp(r.Context(), "PapersGraded", a.PaperCount),
	})
}
