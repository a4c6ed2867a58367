package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/vibetune/internal/shared"
)

// Mood is the category tag of a [Song].
type Mood string

const (
	MoodHappy       Mood = "Happy"
	MoodEnergetic   Mood = "Energetic"
	MoodSad         Mood = "Sad"
	MoodCalm        Mood = "Calm"
	MoodMelancholic Mood = "Melancholic"

	// MoodAll is a filter value matching every mood; it is never stored on a song.
	MoodAll Mood = "All"
)

// Moods returns the storable mood vocabulary in display order.
func Moods() []Mood {
	return []Mood{MoodHappy, MoodEnergetic, MoodSad, MoodCalm, MoodMelancholic}
}

// ParseMood matches s case-insensitively against the vocabulary, including [MoodAll].
func ParseMood(s string) (Mood, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, string(MoodAll)) {
		return MoodAll, nil
	}
	for _, m := range Moods() {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: unknown mood %q", shared.ErrInvalidInput, s)
}

// Matches reports whether a song tagged other passes the filter m.
func (m Mood) Matches(other Mood) bool {
	return m == MoodAll || m == "" || m == other
}

// SongKey is the identity of a song: two songs with the same title and artist are the same song.
type SongKey struct {
	Title  string
	Artist string
}

func (k SongKey) String() string { return fmt.Sprintf("%s - %s", k.Artist, k.Title) }

// Song is one catalog entry.
type Song struct {
	Title    string `json:"title" toml:"title"`
	Artist   string `json:"artist" toml:"artist"`
	Mood     Mood   `json:"mood" toml:"mood"`
	Energy   int    `json:"energy" toml:"energy"`
	Valence  int    `json:"valence" toml:"valence"`
	Duration int    `json:"duration" toml:"duration"` // seconds
}

// Key returns the (title, artist) identity.
func (s Song) Key() SongKey { return SongKey{Title: s.Title, Artist: s.Artist} }

// Equal compares identities only; mood, energy and the rest may differ.
func (s Song) Equal(other Song) bool { return s.Key() == other.Key() }

// Validate checks the song against the record constraints.
func (s Song) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("%w: title is required", shared.ErrInvalidInput)
	}
	if strings.TrimSpace(s.Artist) == "" {
		return fmt.Errorf("%w: artist is required", shared.ErrInvalidInput)
	}
	if _, err := ParseMood(string(s.Mood)); err != nil || s.Mood == MoodAll {
		return fmt.Errorf("%w: unknown mood %q", shared.ErrInvalidInput, s.Mood)
	}
	if s.Energy < 0 || s.Energy > 100 {
		return fmt.Errorf("%w: energy must be within 0..100", shared.ErrInvalidInput)
	}
	if s.Valence < 0 || s.Valence > 100 {
		return fmt.Errorf("%w: valence must be within 0..100", shared.ErrInvalidInput)
	}
	if s.Duration < 0 {
		return fmt.Errorf("%w: duration must not be negative", shared.ErrInvalidInput)
	}
	return nil
}

func (s Song) String() string {
	return fmt.Sprintf("%s - %s [%s, %s]", s.Artist, s.Title, s.Mood, shared.FormatDuration(s.Duration))
}

// FilterByMood returns the songs passing the mood filter, preserving order.
func FilterByMood(songs []Song, mood Mood) []Song {
	out := make([]Song, 0, len(songs))
	for _, s := range songs {
		if mood.Matches(s.Mood) {
			out = append(out, s)
		}
	}
	return out
}

// IndexOf returns the position of the song with key k, or -1.
func IndexOf(songs []Song, k SongKey) int {
	for i, s := range songs {
		if s.Key() == k {
			return i
		}
	}
	return -1
}

// LibrarySong is a [Song] persisted in the library.
type LibrarySong struct {
	entity
	song Song
}

// NewLibrarySong wraps song for persistence.
func NewLibrarySong(sequence int, song Song) *LibrarySong {
	return &LibrarySong{entity: newEntity(sequence), song: song}
}

func (l *LibrarySong) Song() Song        { return l.song }
func (l *LibrarySong) SetSong(song Song) { l.song = song }
func (l *LibrarySong) Validate() error   { return l.song.Validate() }
