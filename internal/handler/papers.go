package handler

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/gradeaid/gradeaid/internal/grading"
	appI18n "github.com/gradeaid/gradeaid/internal/i18n"
	"github.com/gradeaid/gradeaid/internal/model"
)

var errUnsupportedFile = errors.New("only plain text files are supported")

type createPaperRequest struct {
	StudentID int64  `json:"student_id"`
	Subject   string `json:"subject"`
	FileName  string `json:"file_name"`
	Text      string `json:"text"`
}

type paperResponse struct {
	model.Paper
	Passing     bool   `json:"passing"`
	Description string `json:"description"`
}

func (h *Handler) newPaperResponse(r *http.Request, p model.Paper) paperResponse {
	return paperResponse{
		Paper:       p,
		Passing:     grading.Passing(p.Score),
		Description: appI18n.T(r.Context(), methodMessages[grading.Method(p.Method)]),
	}
}

// handleCreatePaper analyzes an uploaded paper, scores it and stores the result.
func (h *Handler) handleCreatePaper(w http.ResponseWriter, r *http.Request) {
	teacher := model.UserFromContext(r.Context())

	req, err := h.readPaperRequest(w, r)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errUnsupportedFile) {
			status = http.StatusUnsupportedMediaType
		}
		writeError(w, status, err.Error())
		return
	}
	req.Subject = strings.TrimSpace(req.Subject)
	if req.Subject == "" {
		writeError(w, http.StatusBadRequest, "subject required")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text required")
		return
	}

	st, err := h.store.GetStudent(r.Context(), teacher.ID, req.StudentID)
	if err != nil {
		slog.Error("failed to get student", "id", req.StudentID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if st == nil {
		writeError(w, http.StatusNotFound, appI18n.T(r.Context(), "ErrStudentNotFound"))
		return
	}

	analysis, err := h.analyzer.AnalyzePaper(r.Context(), req.Subject, req.Text)
	if err != nil {
		slog.Error("paper analysis failed", "student_id", st.ID, "subject", req.Subject, "error", err)
		writeError(w, http.StatusBadGateway, appI18n.T(r.Context(), "ErrAnalysisFailed"))
		return
	}

	res, err := grading.CalculateScore(analysis, req.Subject)
	if err != nil {
		h.writeScoreError(w, r, err, http.StatusBadGateway)
		return
	}

	p, err := h.store.SavePaper(r.Context(), model.Paper{
		TeacherID: teacher.ID,
		StudentID: st.ID,
		Subject:   req.Subject,
		FileName:  req.FileName,
		Score:     res.Score,
		Method:    string(res.Method),
		Letter:    grading.LetterGrade(res.Score),
		Analysis:  analysis,
	})
	if err != nil {
		slog.Error("failed to save paper", "student_id", st.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	slog.Info("paper graded",
		"paper_id", p.ID,
		"student_id", st.ID,
		"subject", p.Subject,
		"score", p.Score,
		"method", p.Method,
	)
	writeJSON(w, http.StatusCreated, h.newPaperResponse(r, p))
}

// readPaperRequest accepts either a multipart upload with a text file or a
// JSON body carrying the text inline.
func (h *Handler) readPaperRequest(w http.ResponseWriter, r *http.Request) (createPaperRequest, error) {
	var req createPaperRequest
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct != "multipart/form-data" {
		if err := h.decodeJSON(w, r, &req); err != nil {
			return req, err
		}
		if req.FileName == "" {
			req.FileName = "paper.txt"
		}
		return req, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.config.MaxUploadSize)
	if err := r.ParseMultipartForm(h.config.MaxUploadSize); err != nil {
		return req, errors.New("file too large or malformed upload")
	}

	studentID, err := strconv.ParseInt(r.FormValue("student_id"), 10, 64)
	if err != nil {
		return req, errors.New("invalid student_id")
	}
	req.StudentID = studentID
	req.Subject = r.FormValue("subject")

	file, header, err := r.FormFile("file")
	if err != nil {
		return req, errors.New("no file uploaded")
	}
	defer file.Close()

	if fct := header.Header.Get("Content-Type"); fct != "" && !strings.HasPrefix(fct, "text/") {
		return req, errUnsupportedFile
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return req, errors.New("failed to read file")
	}
	if !utf8.Valid(data) {
		return req, errUnsupportedFile
	}
	req.FileName = header.Filename
	req.Text = string(data)
	return req, nil
}

func (h *Handler) handleListPapers(w http.ResponseWriter, r *http.Request) {
	teacher := model.UserFromContext(r.Context())

	var studentID int64
	if v := r.URL.Query().Get("student_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			writeError(w, http.StatusBadRequest, "invalid student_id")
			return
		}
		studentID = id
	}

	papers, err := h.store.ListPapers(r.Context(), teacher.ID, studentID)
	if err != nil {
		slog.Error("failed to list papers", "teacher_id", teacher.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	resp := make([]paperResponse, 0, len(papers))
	for _, p := range papers {
		resp = append(resp, h.newPaperResponse(r, p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetPaper(w http.ResponseWriter, r *http.Request) {
	teacher := model.UserFromContext(r.Context())
	id := chi.URLParam(r, "paperID")

	p, err := h.store.GetPaper(r.Context(), teacher.ID, id)
	if err != nil {
		slog.Error("failed to get paper", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, appI18n.T(r.Context(), "ErrPaperNotFound"))
		return
	}
	writeJSON(w, http.StatusOK, h.newPaperResponse(r, *p))
}

func (h *Handler) handleDeletePaper(w http.ResponseWriter, r *http.Request) {
	teacher := model.UserFromContext(r.Context())
	id := chi.URLParam(r, "paperID")

	deleted, err := h.store.DeletePaper(r.Context(), teacher.ID, id)
	if err != nil {
		slog.Error("failed to delete paper", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, appI18n.T(r.Context(), "ErrPaperNotFound"))
		return
	}
	slog.Info("paper deleted", "paper_id", id, "teacher_id", teacher.ID)
	w.WriteHeader(http.StatusNoContent)
}
