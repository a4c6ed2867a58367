package formatter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/vibetune/internal/models"
	"github.com/desertthunder/vibetune/internal/shared"
)

// Duration is a song length in seconds that reads either "m:ss" or a bare number and writes "m:ss".
type Duration int

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(shared.FormatDuration(int(d)))
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		if n < 0 {
			return fmt.Errorf("%w: negative duration %d", shared.ErrInvalidInput, n)
		}
		*d = Duration(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: duration must be a string or number", shared.ErrInvalidInput)
	}
	secs, err := shared.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(secs)
	return nil
}

// SongRecord is the file representation of a song.
type SongRecord struct {
	Title    string      `json:"title"`
	Artist   string      `json:"artist"`
	Mood     models.Mood `json:"mood"`
	Energy   int         `json:"energy"`
	Valence  int         `json:"valence"`
	Duration Duration    `json:"duration"`
}

// NewSongRecord converts a song for encoding.
func NewSongRecord(s models.Song) SongRecord {
	return SongRecord{
		Title: s.Title, Artist: s.Artist, Mood: s.Mood,
		Energy: s.Energy, Valence: s.Valence, Duration: Duration(s.Duration),
	}
}

// Song converts the record back, normalizing the mood spelling.
func (r SongRecord) Song() models.Song {
	mood := r.Mood
	if m, err := models.ParseMood(string(mood)); err == nil {
		mood = m
	}
	return models.Song{
		Title: strings.TrimSpace(r.Title), Artist: strings.TrimSpace(r.Artist), Mood: mood,
		Energy: r.Energy, Valence: r.Valence, Duration: int(r.Duration),
	}
}

// PlaylistRecord is the file representation of a playlist.
type PlaylistRecord struct {
	Name  string       `json:"name"`
	Songs []SongRecord `json:"songs"`
}

func records(songs []models.Song) []SongRecord {
	out := make([]SongRecord, len(songs))
	for i, s := range songs {
		out[i] = NewSongRecord(s)
	}
	return out
}

// ExportToJSON renders a single playlist record
func ExportToJSON(export Export) ([]byte, error) {
	data, err := json.MarshalIndent(PlaylistRecord{Name: export.Name, Songs: records(export.Songs)}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal playlist: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeSongs reads songs from either a JSON array of songs or a single playlist record.
//
// Every song is validated; the first invalid one fails the whole decode.
func DecodeSongs(r io.Reader) ([]models.Song, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read songs: %w", err)
	}

	var recs []SongRecord
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		var pl PlaylistRecord
		if err := json.Unmarshal(data, &pl); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
		}
		recs = pl.Songs
	} else if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	songs := make([]models.Song, 0, len(recs))
	for i, rec := range recs {
		s := rec.Song()
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("song %d: %w", i+1, err)
		}
		songs = append(songs, s)
	}
	return songs, nil
}

// EncodePlaylists writes playlists as a JSON object keyed by playlist name.
func EncodePlaylists(w io.Writer, playlists []Export) error {
	out := make(map[string]PlaylistRecord, len(playlists))
	for _, p := range playlists {
		out[p.Name] = PlaylistRecord{Name: p.Name, Songs: records(p.Songs)}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode playlists: %w", err)
	}
	return nil
}

// DecodePlaylists reads a JSON object keyed by playlist name, sorted by name.
func DecodePlaylists(r io.Reader) ([]Export, error) {
	var in map[string]PlaylistRecord
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	out := make([]Export, 0, len(in))
	for key, rec := range in {
		name := strings.TrimSpace(rec.Name)
		if name == "" {
			name = strings.TrimSpace(key)
		}
		songs := make([]models.Song, 0, len(rec.Songs))
		for _, s := range rec.Songs {
			songs = append(songs, s.Song())
		}
		out = append(out, Export{Name: name, Songs: songs})
	}
	slices.SortFunc(out, func(a, b Export) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

// LoadPlaylistsFile reads the playlists file at path.
//
// A missing or malformed file yields no playlists; the problem is logged, never returned.
func LoadPlaylistsFile(path string, logger *log.Logger) []Export {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("no playlists file", "path", path)
		return []Export{}
	}
	if err != nil {
		logger.Warn("failed to open playlists file", "path", path, "err", err)
		return []Export{}
	}
	defer f.Close()

	playlists, err := DecodePlaylists(f)
	if err != nil {
		logger.Warn("failed to load playlists", "path", path, "err", err)
		return []Export{}
	}
	return playlists
}

// SavePlaylistsFile replaces the playlists file at path.
func SavePlaylistsFile(path string, playlists []Export) error {
	var buf bytes.Buffer
	if err := EncodePlaylists(&buf, playlists); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write playlists file: %w", err)
	}
	return nil
}
