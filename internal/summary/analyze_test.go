package summary

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentinsight.dev/dashboard/internal/logging"
	"studentinsight.dev/dashboard/internal/students"
)

// fakeSummarizer records prompts and returns a canned response.
type fakeSummarizer struct {
	prompts  []string
	response string
	err      error
}

func (f *fakeSummarizer) Summarize(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func testRecords() []students.AggregatedRecord {
	raw := []students.RawRecord{
		{
			UserID:           "alice",
			Marks:            [3]students.Cell{students.Value("[12, 15]"), students.Value("9"), students.Value("7")},
			ProductivityFlag: students.Value("Yes"),
			ProductivityRate: students.Value("8"),
			EmotionalFactors: students.Value("BACKLOGS"),
		},
		{
			UserID:           "bob",
			Marks:            [3]students.Cell{students.Value("3"), students.Value("4"), students.Value("5")},
			ProductivityFlag: students.Value("No"),
			ProductivityRate: students.Value("3"),
		},
		{
			UserID: "carol",
			Marks:  [3]students.Cell{students.Value("1"), students.Value("2"), students.Value("3")},
		},
	}
	return students.Aggregate(raw, students.PolicyCollect)
}

func TestAnalyzeSingleStudent(t *testing.T) {
	fake := &fakeSummarizer{response: "  Alice is strong in physics.\n"}
	analyzer := NewAnalyzer(fake, nil)

	result, err := analyzer.Analyze(context.Background(), testRecords(), []string{"alice"})
	require.NoError(t, err)

	assert.True(t, result.Summarized)
	assert.Equal(t, "  Alice is strong in physics.\n", result.Text, "response must be passed through unmodified")
	assert.Equal(t, []string{"alice"}, result.Matched)
	assert.Empty(t, result.Missing)

	require.Len(t, fake.prompts, 1)
	prompt := fake.prompts[0]
	assert.Contains(t, prompt, "exam performance of one student")
	assert.Contains(t, prompt, "[12, 15]")
	assert.Contains(t, prompt, "BACKLOGS")
	assert.NotContains(t, prompt, "bob")
}

func TestAnalyzeUnknownSingleStudentSkipsSummarizer(t *testing.T) {
	fake := &fakeSummarizer{response: "should not be used"}
	analyzer := NewAnalyzer(fake, nil)

	result, err := analyzer.Analyze(context.Background(), testRecords(), []string{"zed"})
	require.NoError(t, err)

	assert.False(t, result.Summarized)
	assert.Contains(t, result.Text, "zed")
	assert.Equal(t, []string{"zed"}, result.Missing)
	assert.Empty(t, fake.prompts)
}

func TestAnalyzeMultiDropsUnknownStudents(t *testing.T) {
	fake := &fakeSummarizer{response: "summary of two"}
	analyzer := NewAnalyzer(fake, nil)

	result, err := analyzer.Analyze(context.Background(), testRecords(), []string{"bob", "ghost", "alice"})
	require.NoError(t, err)

	assert.True(t, result.Summarized)
	assert.Equal(t, "summary of two", result.Text)
	assert.Equal(t, []string{"bob", "alice"}, result.Matched)
	assert.Equal(t, []string{"ghost"}, result.Missing)

	require.Len(t, fake.prompts, 1)
	prompt := fake.prompts[0]
	assert.Contains(t, prompt, "exam performance of 2 students")
	assert.Contains(t, prompt, "alice")
	assert.Contains(t, prompt, "bob")
	assert.NotContains(t, prompt, "ghost")
	assert.NotContains(t, prompt, "carol")
	assert.Less(t, strings.Index(prompt, "bob"), strings.Index(prompt, "alice"), "rows follow selection order")
}

func TestAnalyzeMultiWithSingleMatchUsesMultiTemplate(t *testing.T) {
	fake := &fakeSummarizer{response: "ok"}
	analyzer := NewAnalyzer(fake, nil)

	_, err := analyzer.Analyze(context.Background(), testRecords(), []string{"ghost", "carol"})
	require.NoError(t, err)

	require.Len(t, fake.prompts, 1)
	assert.Contains(t, fake.prompts[0], "exam performance of 1 students")

	carol, ok := students.Find(testRecords(), "carol")
	require.True(t, ok)
	assert.Contains(t, fake.prompts[0], BuildContext([]students.AggregatedRecord{carol}, true))
	assert.NotContains(t, fake.prompts[0], BuildContext([]students.AggregatedRecord{carol}, false))
}

func TestAnalyzeMultiNoneMatched(t *testing.T) {
	fake := &fakeSummarizer{}
	analyzer := NewAnalyzer(fake, nil)

	result, err := analyzer.Analyze(context.Background(), testRecords(), []string{"x", "y"})
	require.NoError(t, err)

	assert.False(t, result.Summarized)
	assert.Contains(t, result.Text, "No data found")
	assert.Equal(t, []string{"x", "y"}, result.Missing)
	assert.Empty(t, fake.prompts)
}

func TestAnalyzeEmptySelection(t *testing.T) {
	fake := &fakeSummarizer{}
	analyzer := NewAnalyzer(fake, nil)

	_, err := analyzer.Analyze(context.Background(), testRecords(), []string{" ", ""})
	assert.ErrorIs(t, err, ErrEmptySelection)
	assert.Empty(t, fake.prompts)
}

func TestAnalyzeDuplicateIDsCollapse(t *testing.T) {
	fake := &fakeSummarizer{response: "ok"}
	analyzer := NewAnalyzer(fake, nil)

	result, err := analyzer.Analyze(context.Background(), testRecords(), []string{"alice", " alice "})
	require.NoError(t, err)

	assert.Equal(t, []string{"alice"}, result.Matched)
	assert.Contains(t, fake.prompts[0], "exam performance of one student")
}

func TestAnalyzeSummarizerFailurePropagates(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewStructuredLogger(&buf, slog.LevelInfo)
	fake := &fakeSummarizer{err: assert.AnError}
	analyzer := NewAnalyzer(fake, logger)

	result, err := analyzer.Analyze(context.Background(), testRecords(), []string{"alice"})
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.False(t, result.Summarized)
	assert.Equal(t, []string{"alice"}, result.Matched)
	assert.Contains(t, buf.String(), `"msg":"summarization failed"`)
}

func TestAnalyzeWithoutSummarizer(t *testing.T) {
	analyzer := NewAnalyzer(nil, nil)

	_, err := analyzer.Analyze(context.Background(), testRecords(), []string{"alice"})
	assert.ErrorIs(t, err, ErrNoSummarizer)

	result, err := analyzer.Analyze(context.Background(), testRecords(), []string{"nobody"})
	require.NoError(t, err)
	assert.Contains(t, result.Text, "nobody")
}

func TestSummarizerFunc(t *testing.T) {
	var s Summarizer = SummarizerFunc(func(_ context.Context, prompt string) (string, error) {
		return "echo: " + prompt, nil
	})

	out, err := s.Summarize(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "echo: hi", out)
}

func TestNormalizeSelection(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, NormalizeSelection([]string{" a", "b", "a ", ""}))
	assert.Empty(t, NormalizeSelection(nil))
}
