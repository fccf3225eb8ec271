package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"studentinsight.dev/dashboard/internal/appconf"
	"studentinsight.dev/dashboard/internal/dataset"
	"studentinsight.dev/dashboard/internal/logging"
	"studentinsight.dev/dashboard/internal/students"
	"studentinsight.dev/dashboard/internal/summary"
)

// summarizerFactory builds the Summarizer used by the summarize command.
type summarizerFactory func(ctx context.Context, model string) (summary.Summarizer, error)

func defaultSummarizerFactory(ctx context.Context, model string) (summary.Summarizer, error) {
	cfg := summary.DefaultGeminiConfig(os.Getenv("GEMINI_API_KEY"))
	if model != "" {
		cfg.Model = model
	}
	return summary.NewGeminiSummarizer(ctx, cfg)
}

type globalOptions struct {
	source  string
	policy  string
	verbose bool
}

func newRootCmd(newSummarizer summarizerFactory) *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:          "studentctl",
		Short:        "Inspect the student performance dataset",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.source, "source", "testdata/students.csv", "URL or local path of the student CSV dataset")
	root.PersistentFlags().StringVar(&opts.policy, "policy", string(students.DefaultScorePolicy), "Score policy (collect|sum|mean)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newAggregateCmd(opts),
		newContextCmd(opts),
		newChartCmd(opts),
		newSummarizeCmd(opts, newSummarizer),
	)

	return root
}

func (opts *globalOptions) logger(cmd *cobra.Command) *slog.Logger {
	return logging.NewLogger(cmd.ErrOrStderr(), appconf.Development, opts.verbose)
}

// loadAggregated reads the dataset and aggregates it under the selected policy.
func (opts *globalOptions) loadAggregated(cmd *cobra.Command) ([]students.AggregatedRecord, error) {
	policy, err := students.ParseScorePolicy(opts.policy)
	if err != nil {
		return nil, err
	}

	manager := dataset.NewManager(dataset.Config{
		SourceURL:   opts.source,
		ScorePolicy: policy,
		Verbose:     opts.verbose,
	}, opts.logger(cmd))
	defer manager.Shutdown()

	aggregated, err := manager.Aggregated(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return aggregated, nil
}
