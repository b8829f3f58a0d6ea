package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/gradeaid/gradeaid/internal/llm/prompts"
	"github.com/gradeaid/gradeaid/internal/model"
)

// DefaultMaxTextLength is the number of runes of a paper sent to the model.
const DefaultMaxTextLength = 12000

// ErrEmptyResponse is returned when the model answers without content.
var ErrEmptyResponse = errors.New("LLM returned no choices")

var (
	codeFenceRegex     = regexp.MustCompile("```(?:json)?\\s*")
	trailingCommaRegex = regexp.MustCompile(`,(\s*[}\]])`)
)

// Client wraps an OpenAI-compatible API client.
type Client struct {
	api           *openai.Client
	model         string
	maxTextLength int
}

// New creates a new LLM client. maxTextLength of zero selects
// DefaultMaxTextLength.
func New(baseURL, apiKey, modelName string, maxTextLength int) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if maxTextLength == 0 {
		maxTextLength = DefaultMaxTextLength
	}
	return &Client{
		api:           openai.NewClientWithConfig(config),
		model:         modelName,
		maxTextLength: maxTextLength,
	}
}

// Ping checks that the endpoint is reachable and accepts the API key.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.api.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// AnalyzePaper asks the model to grade a paper's text and returns the parsed
// analysis. Missing top-level fields are left missing so that scoring can
// reject them.
func (c *Client) AnalyzePaper(ctx context.Context, subject, text string) (*model.AnalysisResult, error) {
	userPrompt, err := prompts.BuildAnalysisPrompt(subject, prompts.PrepareText(text, c.maxTextLength))
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompts.SystemPrompt(subject)},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		MaxTokens:   4000,
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM API call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	raw := resp.Choices[0].Message.Content
	slog.Debug("LLM response", "subject", subject, "raw", raw)

	result, err := ParseAnalysis(raw)
	if err != nil {
		return nil, err
	}
	result.Meta = &model.AnalysisMeta{
		AnalysisTimestamp: time.Now().UTC().Format(time.RFC3339),
		Subject:           subject,
		ModelVersion:      c.model,
	}
	return result, nil
}

// ParseAnalysis decodes a model response after CleanResponse.
func ParseAnalysis(raw string) (*model.AnalysisResult, error) {
	cleaned := CleanResponse(raw)
	if !strings.HasPrefix(cleaned, "{") || !strings.HasSuffix(cleaned, "}") {
		return nil, fmt.Errorf("parse LLM response: no JSON object (raw: %s)", raw)
	}
	var result model.AnalysisResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, fmt.Errorf("parse LLM response: %w (raw: %s)", err, raw)
	}
	return &result, nil
}

// CleanResponse strips the wrapping models tend to add around JSON: code
// fences, a BOM, prose before the first { or after the last }, and trailing
// commas.
func CleanResponse(raw string) string {
	s := strings.TrimPrefix(raw, "\ufeff")
	s = codeFenceRegex.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if start, end := strings.Index(s, "{"), strings.LastIndex(s, "}"); start >= 0 && end > start {
		s = s[start : end+1]
	}
	return trailingCommaRegex.ReplaceAllString(s, "$1")
}
