package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"studentinsight.dev/dashboard/internal/logging"
	"studentinsight.dev/dashboard/internal/students"
)

// ErrEmptySelection is returned when an analysis is requested without any student.
var ErrEmptySelection = errors.New("no students selected")

// ErrNoSummarizer is returned when an analysis needs a model call but none is configured.
var ErrNoSummarizer = errors.New("summarizer is not configured")

// Result is the outcome of one analysis request.
type Result struct {
	// Text is either the summarizer response, unmodified, or a diagnostic.
	Text    string   `json:"text"`
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
	// Summarized is false when Text is a diagnostic and no model call was made.
	Summarized bool `json:"summarized"`
}

// Analyzer resolves a selection of user ids and asks the Summarizer about them.
type Analyzer struct {
	summarizer Summarizer
	logger     *slog.Logger
}

func NewAnalyzer(summarizer Summarizer, logger *slog.Logger) *Analyzer {
	return &Analyzer{summarizer: summarizer, logger: logger}
}

// Analyze summarizes the selected students.
//
// A single unknown id yields a diagnostic naming it. In a multi-student
// selection unknown ids are dropped and a diagnostic is returned only when
// none matched. Neither case calls the summarizer.
func (a *Analyzer) Analyze(ctx context.Context, records []students.AggregatedRecord, userIDs []string) (Result, error) {
	selection := NormalizeSelection(userIDs)
	if len(selection) == 0 {
		return Result{}, ErrEmptySelection
	}

	var result Result
	var matched []students.AggregatedRecord
	for _, id := range selection {
		rec, ok := students.Find(records, id)
		if !ok {
			result.Missing = append(result.Missing, id)
			continue
		}
		matched = append(matched, rec)
		result.Matched = append(result.Matched, id)
	}

	multi := len(selection) > 1
	if len(matched) == 0 {
		if multi {
			result.Text = fmt.Sprintf("No data found for the selected student IDs: %s", strings.Join(selection, ", "))
		} else {
			result.Text = fmt.Sprintf("No data found for student ID: %s", selection[0])
		}
		return result, nil
	}

	prompt, err := BuildPrompt(matched, multi)
	if err != nil {
		return result, err
	}

	if a.summarizer == nil {
		return result, ErrNoSummarizer
	}

	start := time.Now()
	text, err := a.summarizer.Summarize(ctx, prompt)
	if err != nil {
		logging.LogError(a.logger, "summarization failed", err,
			slog.Int("students", len(matched)),
			slog.String("component", "summary"))
		return result, fmt.Errorf("summarize students: %w", err)
	}

	logging.LogOperation(a.logger, "students_summarized",
		slog.Int("students", len(matched)),
		slog.Int("missing", len(result.Missing)),
		slog.Int("prompt_len", len(prompt)),
		slog.Duration("duration", time.Since(start)))

	result.Text = text
	result.Summarized = true
	return result, nil
}

// NormalizeSelection trims ids, drops blanks and keeps the first occurrence of duplicates.
func NormalizeSelection(userIDs []string) []string {
	seen := make(map[string]bool, len(userIDs))
	out := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
