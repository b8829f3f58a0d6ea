package prompts

import (
	"bytes"
	"embed"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"text/template"
	"unicode/utf8"
)

//go:embed templates/analysis.txt templates/response.json
var templateFS embed.FS

var paperTagRegex = regexp.MustCompile(`(?i)</?\s*student-paper\b[^>]*>`)

// TruncationNotice is appended to papers cut to the maximum length.
const TruncationNotice = "\n[Content truncated for length]"

const defaultSystemPrompt = "You are a mathematics teacher. Respond with ONLY valid JSON matching the exact structure provided. Do not include any additional text or formatting."

const mathSystemPrompt = "You are an experienced mathematics teacher specializing in detailed problem solving analysis. Respond with ONLY valid JSON matching the exact structure provided."

// Keys match the subjects grading scores by accuracy alone.
var systemPrompts = map[string]string{
	"math":        mathSystemPrompt,
	"mathematics": mathSystemPrompt,
	"english":     "You are an experienced English teacher specializing in writing and comprehension analysis. Respond with ONLY valid JSON matching the exact structure provided.",
	"science":     "You are an experienced science teacher specializing in scientific method and experimental analysis. Respond with ONLY valid JSON matching the exact structure provided.",
}

var (
	loadOnce         sync.Once
	loadErr          error
	analysisTmpl     *template.Template
	responseTemplate string
)

// AnalysisData holds template data for the analysis prompt.
type AnalysisData struct {
	Subject          string
	Paper            string
	ResponseTemplate string
}

func load() error {
	loadOnce.Do(func() {
		raw, err := templateFS.ReadFile("templates/analysis.txt")
		if err != nil {
			loadErr = fmt.Errorf("read analysis template: %w", err)
			return
		}
		analysisTmpl, err = template.New("analysis").Parse(string(raw))
		if err != nil {
			loadErr = fmt.Errorf("parse analysis template: %w", err)
			return
		}
		resp, err := templateFS.ReadFile("templates/response.json")
		if err != nil {
			loadErr = fmt.Errorf("read response template: %w", err)
			return
		}
		responseTemplate = strings.TrimSpace(string(resp))
	})
	return loadErr
}

// SystemPrompt returns the system prompt for a subject. Unknown subjects get
// the default prompt.
func SystemPrompt(subject string) string {
	if p, ok := systemPrompts[strings.ToLower(subject)]; ok {
		return p
	}
	return defaultSystemPrompt
}

// BuildAnalysisPrompt renders the user prompt for one paper. The paper text
// should already be cut with PrepareText.
func BuildAnalysisPrompt(subject, paper string) (string, error) {
	if err := load(); err != nil {
		return "", err
	}
	data := AnalysisData{
		Subject:          subject,
		Paper:            sanitizePaper(paper),
		ResponseTemplate: responseTemplate,
	}
	var buf bytes.Buffer
	if err := analysisTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// PrepareText cuts text to maxRunes runes and marks the cut. A maxRunes of
// zero or less disables truncation.
func PrepareText(text string, maxRunes int) string {
	if maxRunes <= 0 || utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxRunes]) + TruncationNotice
}

func sanitizePaper(paper string) string {
	paper = paperTagRegex.ReplaceAllString(paper, "")
	paper = strings.TrimSpace(paper)
	if paper == "" {
		return "[No content provided]"
	}
	return paper
}
