package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentinsight.dev/dashboard/internal/models"
	"studentinsight.dev/dashboard/internal/summary"
)

type recordingSummarizer struct {
	prompts []string
}

func (r *recordingSummarizer) Summarize(_ context.Context, prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	return "summary text", nil
}

func execute(t *testing.T, factory summarizerFactory, args ...string) (string, string, error) {
	t.Helper()

	if factory == nil {
		factory = func(context.Context, string) (summary.Summarizer, error) {
			return nil, errors.New("no summarizer in this test")
		}
	}

	var stdout, stderr bytes.Buffer
	root := newRootCmd(factory)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append(args, "--source", models.FixturePath(t, "students.csv")))

	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestAggregateCommandTable(t *testing.T) {
	out, _, err := execute(t, nil, "aggregate")
	require.NoError(t, err)

	assert.Contains(t, out, "S001")
	assert.Contains(t, out, "[12, 15, 18]")
	assert.Contains(t, out, "Rentrée stress")
}

func TestAggregateCommandJSON(t *testing.T) {
	out, _, err := execute(t, nil, "aggregate", "--json", "--policy", "sum")
	require.NoError(t, err)

	var entries []models.StudentEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 3)
	assert.Equal(t, "sum", entries[0].Scores[0].Policy)
	assert.InDelta(t, 45.0, entries[0].Scores[0].Value, 1e-9)
}

func TestContextCommand(t *testing.T) {
	out, stderr, err := execute(t, nil, "context", "--id", "S002,S404")
	require.NoError(t, err)

	assert.Contains(t, out, "S002")
	assert.NotContains(t, out, "S001")
	assert.Contains(t, stderr, "No data found for student ID: S404")
}

func TestContextCommandPrompt(t *testing.T) {
	out, _, err := execute(t, nil, "context", "--id", "S001", "--prompt")
	require.NoError(t, err)
	assert.Contains(t, out, "exam performance of one student")
}

func TestContextCommandEmptySelection(t *testing.T) {
	_, _, err := execute(t, nil, "context")
	assert.ErrorIs(t, err, summary.ErrEmptySelection)
}

func TestChartCommand(t *testing.T) {
	out, _, err := execute(t, nil, "chart", "--id", "S001")
	require.NoError(t, err)

	assert.Contains(t, out, "Performance Distribution for S001")
	assert.Contains(t, out, "96.00")
}

func TestSummarizeCommand(t *testing.T) {
	summarizer := &recordingSummarizer{}
	factory := func(context.Context, string) (summary.Summarizer, error) {
		return summarizer, nil
	}

	out, _, err := execute(t, factory, "summarize", "--id", "S001", "--id", "S003")
	require.NoError(t, err)

	assert.Equal(t, "summary text\n", out)
	require.Len(t, summarizer.prompts, 1)
	assert.Contains(t, summarizer.prompts[0], "exam performance of 2 students")
}

func TestSummarizeCommandFactoryError(t *testing.T) {
	_, _, err := execute(t, nil, "summarize", "--id", "S001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no summarizer in this test")
}

func TestSummarizeCommandUnknownIDNeedsNoModel(t *testing.T) {
	built := false
	factory := func(context.Context, string) (summary.Summarizer, error) {
		built = true
		return nil, errors.New("GEMINI_API_KEY is not set")
	}

	out, _, err := execute(t, factory, "summarize", "--id", "S999")
	require.NoError(t, err)
	assert.Equal(t, "No data found for student ID: S999\n", out)
	assert.False(t, built)
}

func TestUnknownPolicy(t *testing.T) {
	_, _, err := execute(t, nil, "aggregate", "--policy", "median")
	assert.Error(t, err)
}
