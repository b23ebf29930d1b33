package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tophits/internal/models"
)

func sampleEntries() []models.SourceEntry {
	return []models.SourceEntry{
		{Year: 2001, Position: 1, Title: "Lady (Hear Me Tonight)", Artists: []string{"Modjo"}},
		{Year: 2001, Position: 2, Title: "Hie u jetzt", Artists: []string{"Mia Aegerter"}, LocalAct: true},
	}
}

func sampleMatches() []*models.CandidateTrack {
	return []*models.CandidateTrack{
		{ID: "modjo", Title: "Lady (Hear Me Tonight)", ArtistNames: []string{"Modjo"}, AlbumTitle: "Modjo", ReleaseDate: "2001-09-10"},
		nil,
	}
}

func TestMatchRows(t *testing.T) {
	rows, err := MatchRows(sampleEntries(), sampleMatches())
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"1", "Lady (Hear Me Tonight) [Modjo]", "Lady (Hear Me Tonight) [Modjo], Modjo (2001-09-10)"},
		{"2", "Hie u jetzt [Mia Aegerter] [CH]", "-"},
	}, rows)
}

func TestMatchRows_LengthMismatch(t *testing.T) {
	_, err := MatchRows(sampleEntries(), sampleMatches()[:1])

	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 chart entries but 1 matches")
}

func TestRenderMarkdown(t *testing.T) {
	doc, err := RenderMarkdown(2001, sampleEntries(), sampleMatches())
	require.NoError(t, err)

	lines := strings.Split(doc, "\n")
	assert.Equal(t, "# Spotify matches for charts *2001*", lines[0])
	assert.Equal(t, "", lines[1])
	assert.Contains(t, lines[2], "| # | Charts-Info | Spotify Match |")
	assert.Contains(t, doc, "| 1 | Lady (Hear Me Tonight) [Modjo] | Lady (Hear Me Tonight) [Modjo], Modjo (2001-09-10) |")
	assert.Contains(t, doc, "| 2 | Hie u jetzt [Mia Aegerter] [CH] | - |")
}

func TestRenderConsole(t *testing.T) {
	out, err := RenderConsole(sampleEntries(), sampleMatches())
	require.NoError(t, err)

	assert.Contains(t, out, "Charts-Info")
	assert.Contains(t, out, "Spotify Match")
	assert.Contains(t, out, "Hie u jetzt [Mia Aegerter] [CH]")
	assert.True(t, strings.HasPrefix(out, "╭"))
}

func TestWriteMarkdown(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteMarkdown(dir, 2001, sampleEntries(), sampleMatches())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "spotify", "2001.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Spotify matches for charts *2001*\n"))
}

func TestWriteMarkdown_LengthMismatchWritesNothing(t *testing.T) {
	dir := t.TempDir()

	_, err := WriteMarkdown(dir, 2001, sampleEntries(), nil)
	require.Error(t, err)

	_, statErr := os.Stat(MarkdownPath(dir, 2001))
	assert.True(t, os.IsNotExist(statErr))
}
