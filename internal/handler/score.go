package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gradeaid/gradeaid/internal/grading"
	appI18n "github.com/gradeaid/gradeaid/internal/i18n"
	"github.com/gradeaid/gradeaid/internal/model"
)

var methodMessages = map[grading.Method]string{
	grading.MethodAccuracyOnly:     "MethodAccuracyOnly",
	grading.MethodWeightedCriteria: "MethodWeightedCriteria",
}

var componentMessages = map[string]string{
	grading.ComponentTechnical:  "ComponentTechnical",
	grading.ComponentConceptual: "ComponentConceptual",
	grading.ComponentAccuracy:   "ComponentAccuracy",
}

type scoreRequest struct {
	Subject  string                `json:"subject"`
	Analysis *model.AnalysisResult `json:"analysis"`
}

type componentView struct {
	Name    string  `json:"name"`
	Label   string  `json:"label"`
	Weight  float64 `json:"weight"`
	Percent int     `json:"percent"`
}

type scoreResponse struct {
	Score       int             `json:"score"`
	Method      grading.Method  `json:"method"`
	Letter      string          `json:"letter"`
	Passing     bool            `json:"passing"`
	Summary     string          `json:"summary"`
	Description string          `json:"description"`
	Breakdown   []componentView `json:"breakdown"`
}

func newScoreResponse(ctx context.Context, b grading.Breakdown) scoreResponse {
	letter := grading.LetterGrade(b.Score)
	resp := scoreResponse{
		Score:       b.Score,
		Method:      b.Method,
		Letter:      letter,
		Passing:     grading.Passing(b.Score),
		Summary:     appI18n.Td(ctx, "ScoreSummary", map[string]any{"Score": b.Score, "Letter": letter}),
		Description: appI18n.T(ctx, methodMessages[b.Method]),
		Breakdown:   make([]componentView, 0, len(b.Components)),
	}
	for _, c := range b.Components {
		resp.Breakdown = append(resp.Breakdown, componentView{
			Name:    c.Name,
			Label:   appI18n.T(ctx, componentMessages[c.Name]),
			Weight:  c.Weight,
			Percent: c.Percent,
		})
	}
	return resp
}

// handleScore scores an analysis supplied by the caller without storing it.
func (h *Handler) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	b, err := grading.Explain(req.Analysis, req.Subject)
	if err != nil {
		h.writeScoreError(w, r, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, newScoreResponse(r.Context(), b))
}

// writeScoreError maps grading errors to HTTP. invalidStatus is used for
// validation failures: 400 when the caller sent the analysis, 502 when the
// analyzer produced it.
func (h *Handler) writeScoreError(w http.ResponseWriter, r *http.Request, err error, invalidStatus int) {
	var verr *grading.ValidationError
	switch {
	case errors.As(err, &verr):
		slog.Warn("rejected analysis", "field", verr.Field, "reason", verr.Reason)
		writeError(w, invalidStatus, appI18n.Td(r.Context(), "ErrInvalidAnalysis",
			map[string]any{"Detail": verr.Field + ": " + verr.Reason}))
	case errors.Is(err, grading.ErrComputation):
		slog.Error("score computation failed", "error", err)
		writeError(w, http.StatusInternalServerError, appI18n.T(r.Context(), "ErrScoreFailed"))
	default:
		slog.Error("scoring failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
