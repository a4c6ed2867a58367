// package formatter converts songs and playlists to and from JSON, CSV, Markdown and plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/vibetune/internal/models"
	"github.com/desertthunder/vibetune/internal/shared"
)

// Export is a named, ordered list of songs: a playlist or a library view.
type Export struct {
	Name  string
	Songs []models.Song
}

// Format is an export file format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
)

// Formats lists the supported formats.
func Formats() []Format { return []Format{FormatJSON, FormatCSV, FormatMarkdown, FormatText} }

// ParseFormat accepts a format name or a file extension such as ".csv" or "markdown".
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, s)
}

// FormatFromPath infers the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	if f, err := ParseFormat(filepath.Ext(path)); err == nil {
		return f
	}
	return FormatJSON
}

// ExportToCSV renders songs with columns: Title, Artist, Mood, Energy, Valence, Duration
func ExportToCSV(export Export) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Title", "Artist", "Mood", "Energy", "Valence", "Duration"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range export.Songs {
		record := []string{
			song.Title,
			song.Artist,
			string(song.Mood),
			strconv.Itoa(song.Energy),
			strconv.Itoa(song.Valence),
			shared.FormatDuration(song.Duration),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders a heading, a summary and a song table
func ExportToMarkdown(export Export) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", export.Name)
	fmt.Fprintf(&buf, "**Songs**: %d\n", len(export.Songs))
	fmt.Fprintf(&buf, "**Total time**: %s\n\n", shared.FormatDuration(totalDuration(export.Songs)))

	buf.WriteString("| # | Title | Artist | Mood | Energy | Valence | Duration |\n")
	buf.WriteString("|---|---|---|---|---|---|---|\n")
	for i, song := range export.Songs {
		fmt.Fprintf(&buf, "| %d | %s | %s | %s | %d | %d | %s |\n",
			i+1, escapeCell(song.Title), escapeCell(song.Artist), song.Mood,
			song.Energy, song.Valence, shared.FormatDuration(song.Duration))
	}

	return buf.Bytes(), nil
}

// ExportToText renders one numbered line per song
func ExportToText(export Export) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Playlist: %s\n", export.Name)
	fmt.Fprintf(&buf, "Songs: %d\n\n", len(export.Songs))

	for i, song := range export.Songs {
		fmt.Fprintf(&buf, "%d. %s - %s [%s]\n", i+1, song.Artist, song.Title, shared.FormatDuration(song.Duration))
	}

	return buf.Bytes(), nil
}

// Render encodes export in the given format.
func Render(export Export, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return ExportToJSON(export)
	case FormatCSV:
		return ExportToCSV(export)
	case FormatMarkdown:
		return ExportToMarkdown(export)
	case FormatText:
		return ExportToText(export)
	}
	return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
}

// WriteExport writes export to path, choosing the format from the file extension.
func WriteExport(export Export, path string) (Format, error) {
	format := FormatFromPath(path)
	data, err := Render(export, format)
	if err != nil {
		return format, fmt.Errorf("failed to render %s: %w", format, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return format, fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return format, fmt.Errorf("failed to write %s file: %w", format, err)
	}
	return format, nil
}

func totalDuration(songs []models.Song) int {
	total := 0
	for _, s := range songs {
		total += s.Duration
	}
	return total
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
