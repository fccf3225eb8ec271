package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"studentinsight.dev/dashboard/internal/logging"
	"studentinsight.dev/dashboard/internal/students"
)

const loadKey = "dataset"

// Manager loads the student dataset once and serves it from memory until the
// cache is cleared.
type Manager struct {
	config      Config
	httpClient  *http.Client
	logger      *slog.Logger
	loads       singleflight.Group
	mu          sync.RWMutex
	records     []students.RawRecord
	loaded      bool
	lastUpdated time.Time
}

// Statistics describes the cached dataset.
type Statistics struct {
	Source      string    `json:"source"`
	IsLocalFile bool      `json:"isLocalFile"`
	Loaded      bool      `json:"loaded"`
	Rows        int       `json:"rows"`
	Students    int       `json:"students"`
	ScorePolicy string    `json:"scorePolicy"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// NewManager creates a Manager without loading anything.
func NewManager(config Config, logger *slog.Logger) *Manager {
	if config.ScorePolicy == "" {
		config.ScorePolicy = students.DefaultScorePolicy
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		config:     config,
		httpClient: &http.Client{Timeout: config.timeout()},
		logger:     logger.With(slog.String("component", "dataset")),
	}
}

// InitManager creates a Manager and loads the dataset eagerly. A fetch or
// schema failure is returned so the caller can refuse to start.
func InitManager(ctx context.Context, config Config, logger *slog.Logger) (*Manager, error) {
	manager := NewManager(config, logger)
	if _, err := manager.Records(ctx); err != nil {
		return nil, err
	}
	return manager, nil
}

// Records returns the cached raw records, loading them on first use.
// Concurrent callers share one load, which runs detached from the caller's
// cancellation and is bounded by the configured timeout instead. The returned
// slice must not be modified.
func (manager *Manager) Records(ctx context.Context) ([]students.RawRecord, error) {
	manager.mu.RLock()
	if manager.loaded {
		records := manager.records
		manager.mu.RUnlock()
		return records, nil
	}
	manager.mu.RUnlock()

	v, err, _ := manager.loads.Do(loadKey, func() (interface{}, error) {
		manager.mu.RLock()
		if manager.loaded {
			records := manager.records
			manager.mu.RUnlock()
			return records, nil
		}
		manager.mu.RUnlock()

		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), manager.config.timeout())
		defer cancel()
		return manager.load(loadCtx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]students.RawRecord), nil
}

func (manager *Manager) load(ctx context.Context) ([]students.RawRecord, error) {
	start := time.Now()

	records, err := loadDataset(ctx, manager.httpClient, manager.config, manager.logger)
	if err != nil {
		logging.LogError(manager.logger, "failed to load dataset", err,
			slog.String("source", manager.config.SourceURL))
		return nil, fmt.Errorf("error loading dataset from %s: %w", manager.config.SourceURL, err)
	}

	manager.mu.Lock()
	manager.records = records
	manager.loaded = true
	manager.lastUpdated = time.Now()
	manager.mu.Unlock()

	logging.LogOperation(manager.logger, "dataset_loaded",
		slog.String("source", manager.config.SourceURL),
		slog.Bool("local_file", manager.config.isLocalFile()),
		slog.Int("rows", len(records)),
		slog.Int("students", len(students.UserIDs(records))),
		slog.Duration("duration", time.Since(start)))

	return records, nil
}

// Clear drops the cached dataset; the next access reloads it.
func (manager *Manager) Clear() {
	manager.mu.Lock()
	manager.records = nil
	manager.loaded = false
	manager.mu.Unlock()
	manager.loads.Forget(loadKey)

	if manager.config.Verbose {
		manager.logger.Debug("dataset cache cleared")
	}
}

// Reload clears the cache and loads the dataset again.
func (manager *Manager) Reload(ctx context.Context) error {
	manager.Clear()
	_, err := manager.Records(ctx)
	return err
}

// Shutdown releases idle connections held by the dataset HTTP client.
func (manager *Manager) Shutdown() {
	manager.httpClient.CloseIdleConnections()
}

// ScorePolicy returns the policy applied by Aggregated.
func (manager *Manager) ScorePolicy() students.ScorePolicy {
	return manager.config.ScorePolicy
}

// Aggregated derives one record per student from the cached dataset.
func (manager *Manager) Aggregated(ctx context.Context) ([]students.AggregatedRecord, error) {
	records, err := manager.Records(ctx)
	if err != nil {
		return nil, err
	}
	return students.Aggregate(records, manager.config.ScorePolicy), nil
}

// Student returns the aggregated record of one student.
func (manager *Manager) Student(ctx context.Context, userID string) (students.AggregatedRecord, error) {
	aggregated, err := manager.Aggregated(ctx)
	if err != nil {
		return students.AggregatedRecord{}, err
	}
	rec, ok := students.Find(aggregated, userID)
	if !ok {
		return students.AggregatedRecord{}, fmt.Errorf("%w: %s", ErrStudentNotFound, userID)
	}
	return rec, nil
}

// UserIDs lists the distinct user ids in dataset order.
func (manager *Manager) UserIDs(ctx context.Context) ([]string, error) {
	records, err := manager.Records(ctx)
	if err != nil {
		return nil, err
	}
	return students.UserIDs(records), nil
}

func (manager *Manager) Statistics() Statistics {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	return Statistics{
		Source:      manager.config.SourceURL,
		IsLocalFile: manager.config.isLocalFile(),
		Loaded:      manager.loaded,
		Rows:        len(manager.records),
		Students:    len(students.UserIDs(manager.records)),
		ScorePolicy: string(manager.config.ScorePolicy),
		LastUpdated: manager.lastUpdated,
	}
}
