// package testing contains shared testing utilities
package testing

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/vibetune/internal/models"
)

// DefaultLibrary returns the fifteen-song library shipped with the application.
func DefaultLibrary() []models.Song {
	return []models.Song{
		{Title: "Blinding Lights", Artist: "The Weeknd", Mood: models.MoodEnergetic, Energy: 95, Valence: 85, Duration: 200},
		{Title: "Someone Like You", Artist: "Adele", Mood: models.MoodSad, Energy: 25, Valence: 15, Duration: 285},
		{Title: "Happy", Artist: "Pharrell Williams", Mood: models.MoodHappy, Energy: 90, Valence: 95, Duration: 233},
		{Title: "The Sound of Silence", Artist: "Simon & Garfunkel", Mood: models.MoodMelancholic, Energy: 20, Valence: 30, Duration: 185},
		{Title: "Can't Stop the Feeling", Artist: "Justin Timberlake", Mood: models.MoodHappy, Energy: 85, Valence: 90, Duration: 236},
		{Title: "Bohemian Rhapsody", Artist: "Queen", Mood: models.MoodEnergetic, Energy: 80, Valence: 70, Duration: 355},
		{Title: "Mad World", Artist: "Gary Jules", Mood: models.MoodSad, Energy: 15, Valence: 10, Duration: 187},
		{Title: "Good Vibrations", Artist: "The Beach Boys", Mood: models.MoodHappy, Energy: 75, Valence: 85, Duration: 216},
		{Title: "Hurt", Artist: "Johnny Cash", Mood: models.MoodMelancholic, Energy: 30, Valence: 20, Duration: 218},
		{Title: "I Want It That Way", Artist: "Backstreet Boys", Mood: models.MoodEnergetic, Energy: 70, Valence: 80, Duration: 213},
		{Title: "Tears in Heaven", Artist: "Eric Clapton", Mood: models.MoodSad, Energy: 35, Valence: 25, Duration: 272},
		{Title: "Walking on Sunshine", Artist: "Katrina and the Waves", Mood: models.MoodHappy, Energy: 88, Valence: 92, Duration: 238},
		{Title: "Everybody Hurts", Artist: "R.E.M.", Mood: models.MoodSad, Energy: 40, Valence: 20, Duration: 317},
		{Title: "Don't Stop Me Now", Artist: "Queen", Mood: models.MoodEnergetic, Energy: 92, Valence: 88, Duration: 209},
		{Title: "Black", Artist: "Pearl Jam", Mood: models.MoodMelancholic, Energy: 45, Valence: 25, Duration: 343},
	}
}

// Song builds a minimal valid song.
func Song(title, artist string, mood models.Mood, energy int) models.Song {
	return models.Song{Title: title, Artist: artist, Mood: mood, Energy: energy, Valence: 50, Duration: 180}
}

// Chain returns three songs A, B, C where A-B share an artist, B-C share a mood and A-C share nothing.
func Chain() []models.Song {
	return []models.Song{
		{Title: "A", Artist: "X", Mood: models.MoodHappy, Energy: 10, Duration: 100},
		{Title: "B", Artist: "X", Mood: models.MoodSad, Energy: 20, Duration: 100},
		{Title: "C", Artist: "Y", Mood: models.MoodSad, Energy: 30, Duration: 100},
	}
}

// Numbered returns n songs with distinct titles and energies n-1 down to 0, spread across artists and moods.
func Numbered(n int) []models.Song {
	moods := models.Moods()
	out := make([]models.Song, n)
	for i := range n {
		out[i] = models.Song{
			Title:    fmt.Sprintf("Song %03d", i),
			Artist:   fmt.Sprintf("Artist %d", i%7),
			Mood:     moods[i%len(moods)],
			Energy:   (n - 1 - i) % 101,
			Valence:  (i * 37) % 101,
			Duration: 120 + (i*13)%240,
		}
	}
	return out
}

// Titles extracts song titles in order.
func Titles(songs []models.Song) []string {
	out := make([]string, len(songs))
	for i, s := range songs {
		out[i] = s.Title
	}
	return out
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// TempPath returns a path named name inside a per-test temporary directory.
func TempPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}
