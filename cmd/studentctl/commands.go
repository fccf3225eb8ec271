package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"studentinsight.dev/dashboard/internal/models"
	"studentinsight.dev/dashboard/internal/students"
	"studentinsight.dev/dashboard/internal/summary"
)

func newAggregateCmd(opts *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Print one aggregated row per student",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			aggregated, err := opts.loadAggregated(cmd)
			if err != nil {
				return err
			}

			if asJSON {
				entries := make([]models.StudentEntry, 0, len(aggregated))
				for _, rec := range aggregated {
					entries = append(entries, models.NewStudentEntry(rec))
				}
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(entries)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), summary.BuildContext(aggregated, len(aggregated) > 1))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

// selectRecords resolves ids against the aggregated dataset, reporting unknown ids.
func selectRecords(aggregated []students.AggregatedRecord, ids []string) ([]students.AggregatedRecord, []string) {
	var matched []students.AggregatedRecord
	var missing []string
	for _, id := range summary.NormalizeSelection(ids) {
		rec, ok := students.Find(aggregated, id)
		if !ok {
			missing = append(missing, id)
			continue
		}
		matched = append(matched, rec)
	}
	return matched, missing
}

func newContextCmd(opts *globalOptions) *cobra.Command {
	var ids []string
	var withPrompt bool

	cmd := &cobra.Command{
		Use:   "context",
		Short: "Print the summary context for the selected students",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			selection := summary.NormalizeSelection(ids)
			if len(selection) == 0 {
				return summary.ErrEmptySelection
			}

			aggregated, err := opts.loadAggregated(cmd)
			if err != nil {
				return err
			}

			matched, missing := selectRecords(aggregated, selection)
			if len(missing) > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "No data found for student ID: %s\n", strings.Join(missing, ", "))
			}
			if len(matched) == 0 {
				return errors.New("none of the selected students exist in the dataset")
			}

			out := summary.BuildContext(matched, len(selection) > 1)
			if withPrompt {
				if out, err = summary.BuildPrompt(matched, len(selection) > 1); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringSliceVar(&ids, "id", nil, "Student id (repeatable or comma separated)")
	cmd.Flags().BoolVar(&withPrompt, "prompt", false, "Print the full model prompt instead of the table")
	return cmd
}

func newChartCmd(opts *globalOptions) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Print the per-subject distribution of one student",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			aggregated, err := opts.loadAggregated(cmd)
			if err != nil {
				return err
			}

			rec, ok := students.Find(aggregated, strings.TrimSpace(id))
			if !ok {
				return fmt.Errorf("no data found for student ID: %s", id)
			}

			chart := students.ChartTotals(rec)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, chart.Title)
			for _, slice := range chart.Slices {
				fmt.Fprintf(out, "  %-12s %8.2f %6.1f%%\n", slice.Label, slice.Value, slice.Percent)
			}
			_, err = fmt.Fprintf(out, "  %-12s %8.2f\n", "Total", chart.Total)
			return err
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Student id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newSummarizeCmd(opts *globalOptions, newSummarizer summarizerFactory) *cobra.Command {
	var ids []string
	var model string

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Ask the language model to summarize the selected students",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			aggregated, err := opts.loadAggregated(cmd)
			if err != nil {
				return err
			}

			// The model client is only built once a selected student matched.
			summarizer := summary.SummarizerFunc(func(ctx context.Context, prompt string) (string, error) {
				s, err := newSummarizer(ctx, model)
				if err != nil {
					return "", err
				}
				return s.Summarize(ctx, prompt)
			})

			result, err := summary.NewAnalyzer(summarizer, opts.logger(cmd)).Analyze(cmd.Context(), aggregated, ids)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), result.Text)
			return err
		},
	}

	cmd.Flags().StringSliceVar(&ids, "id", nil, "Student id (repeatable or comma separated)")
	cmd.Flags().StringVar(&model, "model", "", "Gemini model override")
	return cmd
}
