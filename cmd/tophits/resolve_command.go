package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"tophits/internal/models"
	"tophits/internal/report"
	"tophits/internal/services"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var reportDir string
	var noReport bool

	cmd := &cobra.Command{
		Use:   "resolve <chart.json>",
		Short: "Resolve every entry of a chart file and write the match report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chart, err := loadChartFile(args[0])
			if err != nil {
				return err
			}

			app, err := newApplication(cmd.Context(), ctx.config)
			if err != nil {
				return err
			}
			defer app.Close(cmd.Context())

			resolution, err := app.resolver.ResolveChart(cmd.Context(), chart)
			if err != nil {
				return err
			}

			dir := ctx.config.ReportDir
			if reportDir != "" {
				dir = reportDir
			}
			if noReport {
				dir = ""
			}
			return printResolution(cmd.OutOrStdout(), resolution, dir)
		},
	}

	cmd.Flags().StringVar(&reportDir, "report-dir", "", "Directory for the markdown report (defaults to REPORT_DIR)")
	cmd.Flags().BoolVar(&noReport, "no-report", false, "Only print the match table")

	return cmd
}

// loadChartFile reads a chart year from a JSON file
func loadChartFile(path string) (models.ChartInfo, error) {
	var chart models.ChartInfo

	data, err := os.ReadFile(path)
	if err != nil {
		return chart, fmt.Errorf("read chart file: %w", err)
	}
	if err := json.Unmarshal(data, &chart); err != nil {
		return chart, fmt.Errorf("parse chart file %s: %w", path, err)
	}
	if chart.Year <= 0 {
		return chart, fmt.Errorf("chart file %s has no year", path)
	}
	if len(chart.Entries) == 0 {
		return chart, fmt.Errorf("chart file %s has no entries", path)
	}

	chart.Normalize()
	return chart, nil
}

// printResolution prints the match table and writes the markdown report to dir unless dir is empty
func printResolution(out io.Writer, resolution *services.ChartResolution, dir string) error {
	entries := make([]models.SourceEntry, len(resolution.Resolutions))
	matches := make([]*models.CandidateTrack, len(resolution.Resolutions))
	for i, res := range resolution.Resolutions {
		entries[i] = res.Entry
		matches[i] = res.Track()
	}

	table, err := report.RenderConsole(entries, matches)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, table)
	fmt.Fprintf(out, "Matched %d of %d entries for %d\n", resolution.MatchedCount(), len(resolution.Resolutions), resolution.Year)

	if dir == "" {
		return nil
	}
	path, err := report.WriteMarkdown(dir, resolution.Year, entries, matches)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Report written to %s\n", path)
	return nil
}
