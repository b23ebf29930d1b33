// Package report renders chart entries next to the catalog tracks they were
// matched to.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"tophits/internal/models"
)

const (
	noMatch     = "-"
	platformDir = "spotify"
)

var header = table.Row{"#", "Charts-Info", "Spotify Match"}

// MatchRows pairs every entry with its match. matches[i] is nil when entry i has none.
func MatchRows(entries []models.SourceEntry, matches []*models.CandidateTrack) ([][]string, error) {
	if len(entries) != len(matches) {
		return nil, fmt.Errorf("match results are not on par: %d chart entries but %d matches", len(entries), len(matches))
	}

	rows := make([][]string, len(entries))
	for i, entry := range entries {
		match := noMatch
		if matches[i] != nil {
			match = matches[i].ShortDesc()
		}
		rows[i] = []string{strconv.Itoa(i + 1), entry.ShortDesc(), match}
	}
	return rows, nil
}

func newWriter(rows [][]string) table.Writer {
	tw := table.NewWriter()
	tw.AppendHeader(header)
	for _, row := range rows {
		tw.AppendRow(table.Row{row[0], row[1], row[2]})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignRight},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})
	return tw
}

// RenderMarkdown renders the match table of a chart year as a markdown document
func RenderMarkdown(year int, entries []models.SourceEntry, matches []*models.CandidateTrack) (string, error) {
	rows, err := MatchRows(entries, matches)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Spotify matches for charts *%d*\n\n", year)
	b.WriteString(newWriter(rows).RenderMarkdown())
	b.WriteString("\n")
	return b.String(), nil
}

// RenderConsole renders the match table for a terminal
func RenderConsole(entries []models.SourceEntry, matches []*models.CandidateTrack) (string, error) {
	rows, err := MatchRows(entries, matches)
	if err != nil {
		return "", err
	}

	tw := newWriter(rows)
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	return tw.Render(), nil
}

// MarkdownPath is where the report of a chart year is written below dir
func MarkdownPath(dir string, year int) string {
	return filepath.Join(dir, platformDir, strconv.Itoa(year)+".md")
}

// WriteMarkdown writes the markdown report of a chart year and returns its path
func WriteMarkdown(dir string, year int, entries []models.SourceEntry, matches []*models.CandidateTrack) (string, error) {
	doc, err := RenderMarkdown(year, entries, matches)
	if err != nil {
		return "", err
	}

	path := MarkdownPath(dir, year)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
