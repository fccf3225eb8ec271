package app

import (
	"log/slog"

	"studentinsight.dev/dashboard/internal/appconf"
	"studentinsight.dev/dashboard/internal/dataset"
	"studentinsight.dev/dashboard/internal/summary"
)

// Application holds the dependencies shared by the HTTP handlers, the web UI
// and the middleware.
type Application struct {
	Config         Config
	Logger         *slog.Logger
	DatasetManager *dataset.Manager
	Analyzer       *summary.Analyzer
}

// Config holds the settings read from flags, the optional YAML file and the
// environment when the server starts.
type Config struct {
	Port      int
	Env       appconf.Environment
	ApiKeys   []string
	RateLimit int // requests per second per API key
	// MaxSelection caps the number of students in one analysis request.
	MaxSelection int
}
