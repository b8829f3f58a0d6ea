package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Models sometimes quote booleans and numbers ("true", "4.5"). The decoders
// below accept both forms for the fields that feed scoring.

func (q *QuestionResult) UnmarshalJSON(data []byte) error {
	type plain QuestionResult
	aux := struct {
		*plain
		Accuracy json.RawMessage `json:"accuracy"`
		Score    json.RawMessage `json:"score"`
	}{plain: (*plain)(q)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	acc, err := lenientBool(aux.Accuracy)
	if err != nil {
		return fmt.Errorf("question accuracy: %w", err)
	}
	q.Accuracy = acc

	score, err := lenientNumber(aux.Score)
	if err != nil {
		return fmt.Errorf("question score: %w", err)
	}
	q.Score = 0
	if score != nil {
		q.Score = *score
	}
	return nil
}

func (s *SkillAssessment) UnmarshalJSON(data []byte) error {
	type plain SkillAssessment
	aux := struct {
		*plain
		Score json.RawMessage `json:"score"`
	}{plain: (*plain)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	score, err := lenientNumber(aux.Score)
	if err != nil {
		return fmt.Errorf("skill score: %w", err)
	}
	s.Score = score
	return nil
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// lenientBool decodes a JSON boolean or a string strconv.ParseBool accepts.
// Absent and null decode as false.
func lenientBool(raw json.RawMessage) (bool, error) {
	if isNull(raw) {
		return false, nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return false, fmt.Errorf("want boolean, got %s", raw)
	}
	b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return false, fmt.Errorf("want boolean, got %q", s)
	}
	return b, nil
}

// lenientNumber decodes a JSON number or a numeric string. Absent, null and
// blank strings decode as nil.
func lenientNumber(raw json.RawMessage) (*float64, error) {
	if isNull(raw) {
		return nil, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return &f, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("want number, got %s", raw)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("want number, got %q", s)
	}
	return &f, nil
}
