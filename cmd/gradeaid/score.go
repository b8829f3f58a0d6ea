package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gradeaid/gradeaid/internal/grading"
	"github.com/gradeaid/gradeaid/internal/model"
)

type scoreOutput struct {
	Score   int            `json:"score"`
	Method  grading.Method `json:"method"`
	Letter  string         `json:"letter"`
	Passing bool           `json:"passing"`
}

func scoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score an analysis JSON file without the server",
		RunE:  runScore,
	}
	f := cmd.Flags()
	f.StringP("file", "f", "-", "Analysis JSON file (- for stdin)")
	f.StringP("subject", "s", "", "Subject of the paper (required)")
	f.StringP("output", "o", "-", "Output file path (- for stdout)")
	addLogFlags(cmd)

	_ = cmd.MarkFlagRequired("subject")

	return cmd
}

func runScore(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	var in io.Reader = cmd.InOrStdin()
	if path := v.GetString("file"); path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open analysis: %w", err)
		}
		defer f.Close()
		in = f
	}

	out, err := scoreAnalysis(in, v.GetString("subject"))
	if err != nil {
		return err
	}
	return writeJSONOutput(v.GetString("output"), out)
}

// scoreAnalysis decodes one analysis and scores it for subject.
func scoreAnalysis(r io.Reader, subject string) (scoreOutput, error) {
	var a model.AnalysisResult
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return scoreOutput{}, fmt.Errorf("decode analysis: %w", err)
	}
	res, err := grading.CalculateScore(&a, subject)
	if err != nil {
		return scoreOutput{}, err
	}
	return scoreOutput{
		Score:   res.Score,
		Method:  res.Method,
		Letter:  grading.LetterGrade(res.Score),
		Passing: grading.Passing(res.Score),
	}, nil
}

// writeJSONOutput writes v as indented JSON to path, or stdout for "" and "-".
func writeJSONOutput(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}

	var w io.Writer
	if path == "" || path == "-" {
		w = os.Stdout
	} else {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	// Ensure trailing newline.
	_, _ = fmt.Fprintln(w)
	return nil
}
