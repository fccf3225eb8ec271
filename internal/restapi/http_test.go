package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"studentinsight.dev/dashboard/internal/app"
	"studentinsight.dev/dashboard/internal/appconf"
	"studentinsight.dev/dashboard/internal/dataset"
	"studentinsight.dev/dashboard/internal/logging"
	"studentinsight.dev/dashboard/internal/models"
	"studentinsight.dev/dashboard/internal/summary"
)

// fakeSummarizer records the prompts it receives.
type fakeSummarizer struct {
	mu      sync.Mutex
	prompts []string
	reply   string
	err     error
}

func (f *fakeSummarizer) Summarize(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func (f *fakeSummarizer) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

// createTestApi creates a RestAPI backed by the students.csv fixture.
func createTestApi(t *testing.T, summarizer summary.Summarizer) *RestAPI {
	t.Helper()

	logger := logging.NewStructuredLogger(io.Discard, slog.LevelDebug)
	datasetConfig := dataset.Config{
		SourceURL: models.FixturePath(t, "students.csv"),
		Env:       appconf.Test,
	}
	manager, err := dataset.InitManager(context.Background(), datasetConfig, logger)
	require.NoError(t, err)

	application := &app.Application{
		Config: app.Config{
			Env:          appconf.EnvFlagToEnvironment("test"),
			ApiKeys:      []string{"TEST"},
			RateLimit:    100,
			MaxSelection: 10,
		},
		Logger:         logger,
		DatasetManager: manager,
		Analyzer:       summary.NewAnalyzer(summarizer, logger),
	}

	api := NewRestAPI(application)
	t.Cleanup(api.Shutdown)
	t.Cleanup(manager.Shutdown)
	return api
}

// serveApiAndRetrieveEndpoint starts a test server, sends one request and decodes the envelope.
func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, method, endpoint, body string) (*http.Response, models.ResponseModel) {
	t.Helper()

	server := httptest.NewServer(api.Routes())
	defer server.Close()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, server.URL+endpoint, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var response models.ResponseModel
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") && len(bytes.TrimSpace(raw)) > 0 {
		require.NoError(t, json.Unmarshal(raw, &response), string(raw))
	}

	return resp, response
}

// serveAndRetrieveEndpoint issues a GET against a fresh test API.
func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*RestAPI, *http.Response, models.ResponseModel) {
	api := createTestApi(t, &fakeSummarizer{reply: "ok"})
	resp, model := serveApiAndRetrieveEndpoint(t, api, http.MethodGet, endpoint, "")
	return api, resp, model
}

// entryOf extracts data.entry from a decoded envelope.
func entryOf(t *testing.T, model models.ResponseModel) map[string]interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object")
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok, "data.entry should be an object")
	return entry
}
