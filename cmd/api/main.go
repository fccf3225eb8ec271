package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"

	"studentinsight.dev/dashboard/internal/app"
	"studentinsight.dev/dashboard/internal/appconf"
	"studentinsight.dev/dashboard/internal/dataset"
	"studentinsight.dev/dashboard/internal/logging"
	"studentinsight.dev/dashboard/internal/restapi"
	"studentinsight.dev/dashboard/internal/summary"
	"studentinsight.dev/dashboard/internal/webui"
)

func main() {
	if err := appconf.LoadDotEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, err := parseConfig(os.Args[1:], os.Getenv, os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	logger := logging.NewLogger(os.Stdout, cfg.app.Env, cfg.verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	datasetManager, err := dataset.InitManager(ctx, cfg.dataset, logger)
	if err != nil {
		logging.LogError(logger, "failed to initialize dataset manager", err)
		os.Exit(1)
	}
	defer datasetManager.Shutdown()

	// The dashboard stays usable without a model; analysis reports the error.
	var summarizer summary.Summarizer
	gemini, err := summary.NewGeminiSummarizer(ctx, cfg.summarizer)
	if err != nil {
		logging.LogError(logger, "summarizer unavailable", err)
	} else {
		summarizer = gemini
		logger.Info("summarizer ready", slog.String("model", gemini.Name()))
	}

	application := &app.Application{
		Config:         cfg.app,
		Logger:         logger,
		DatasetManager: datasetManager,
		Analyzer:       summary.NewAnalyzer(summarizer, logger),
	}

	api := restapi.NewRestAPI(application)
	defer api.Shutdown()

	router := httprouter.New()
	api.SetRoutes(router)
	(&webui.WebUI{Application: application}).SetWebUIRoutes(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.app.Port),
		Handler:      api.WithMiddleware(router),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second, // covers one summarization call
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.LogError(logger, "server shutdown failed", err)
		}
	}()

	logger.Info("starting server",
		slog.String("addr", srv.Addr),
		slog.String("env", cfg.app.Env.String()),
		slog.String("dataset", cfg.dataset.SourceURL),
		slog.String("score_policy", string(cfg.dataset.ScorePolicy)))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.LogError(logger, "server stopped", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
