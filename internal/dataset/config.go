package dataset

import (
	"strings"
	"time"

	"studentinsight.dev/dashboard/internal/appconf"
	"studentinsight.dev/dashboard/internal/students"
)

// DefaultTimeout bounds a single dataset download.
const DefaultTimeout = 60 * time.Second

type Config struct {
	// SourceURL is either an http(s) URL or a local file path.
	SourceURL   string
	ScorePolicy students.ScorePolicy
	Timeout     time.Duration
	Env         appconf.Environment
	Verbose     bool
}

func (config Config) isLocalFile() bool {
	return !strings.HasPrefix(config.SourceURL, "http://") && !strings.HasPrefix(config.SourceURL, "https://")
}

func (config Config) timeout() time.Duration {
	if config.Timeout <= 0 {
		return DefaultTimeout
	}
	return config.Timeout
}
