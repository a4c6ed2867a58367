package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/vibetune/internal/models"
	"github.com/desertthunder/vibetune/internal/shared"
)

const songColumns = `id, sequence, title, artist, mood, energy, valence, duration, created_at, updated_at, deleted_at`

// SongRepository implements models.Repository[*models.LibrarySong] for the music library.
//
// Songs are unique by (title, artist) among non-deleted rows.
type SongRepository struct {
	db *sql.DB
}

// NewSongRepository creates a new SongRepository with the given database connection
func NewSongRepository(db *sql.DB) *SongRepository {
	return &SongRepository{db: db}
}

// Create inserts a new song with generated ID and sequence; a song with the same identity is refused
// with [shared.ErrDuplicateSong].
func (r *SongRepository) Create(song *models.LibrarySong) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	s := song.Song()
	if _, err := r.GetByKey(s.Key()); err == nil {
		return fmt.Errorf("%w: %s", shared.ErrDuplicateSong, s.Key())
	} else if !errors.Is(err, shared.ErrSongNotFound) {
		return err
	}

	sequence, err := NextSequence(r.db, "songs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	song.SetID(id)
	song.SetSequence(sequence)

	query := `
		INSERT INTO songs (id, sequence, title, artist, mood, energy, valence, duration, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		s.Title,
		s.Artist,
		string(s.Mood),
		s.Energy,
		s.Valence,
		s.Duration,
		song.CreatedAt(),
		song.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert song: %w", err)
	}

	return nil
}

// Get retrieves a song by ID, excluding soft-deleted songs
func (r *SongRepository) Get(id string) (*models.LibrarySong, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE id = ? AND deleted_at IS NULL`
	return r.scan(r.db.QueryRow(query, id))
}

// GetByKey retrieves a song by its exact (title, artist) identity
func (r *SongRepository) GetByKey(key models.SongKey) (*models.LibrarySong, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE title = ? AND artist = ? AND deleted_at IS NULL`
	return r.scan(r.db.QueryRow(query, key.Title, key.Artist))
}

// FindByTitle returns every song whose title matches case-insensitively, oldest first
func (r *SongRepository) FindByTitle(title string) ([]*models.LibrarySong, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE title = ? COLLATE NOCASE AND deleted_at IS NULL ORDER BY sequence ASC`
	return r.query(query, strings.TrimSpace(title))
}

// Update modifies an existing song's fields
func (r *SongRepository) Update(song *models.LibrarySong) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	song.SetUpdatedAt(now)
	s := song.Song()

	query := `
		UPDATE songs
		SET title = ?, artist = ?, mood = ?, energy = ?, valence = ?, duration = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, s.Title, s.Artist, string(s.Mood), s.Energy, s.Valence, s.Duration, now, song.ID())
	if err != nil {
		return fmt.Errorf("failed to update song: %w", err)
	}
	return requireRow(result, shared.ErrSongNotFound, song.ID())
}

// Delete soft-deletes a song by ID
func (r *SongRepository) Delete(id string) error {
	query := `UPDATE songs SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}
	return requireRow(result, shared.ErrSongNotFound, id)
}

// List retrieves songs in library order.
//
// Supported criteria: "mood" (a mood name, "All" matches everything) and "artist" (exact).
func (r *SongRepository) List(criteria map[string]any) ([]*models.LibrarySong, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE deleted_at IS NULL`
	args := []any{}

	if mood, ok := criteria["mood"].(string); ok && mood != "" {
		m, err := models.ParseMood(mood)
		if err != nil {
			return nil, err
		}
		if m != models.MoodAll {
			query += " AND mood = ?"
			args = append(args, string(m))
		}
	}

	if artist, ok := criteria["artist"].(string); ok && artist != "" {
		query += " AND artist = ?"
		args = append(args, artist)
	}

	query += " ORDER BY sequence ASC"
	return r.query(query, args...)
}

// Songs lists the plain songs passing the mood filter
func (r *SongRepository) Songs(mood models.Mood) ([]models.Song, error) {
	rows, err := r.List(map[string]any{"mood": string(mood)})
	if err != nil {
		return nil, err
	}
	songs := make([]models.Song, len(rows))
	for i, row := range rows {
		songs[i] = row.Song()
	}
	return songs, nil
}

// Count returns the number of songs in the library
func (r *SongRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM songs WHERE deleted_at IS NULL`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count songs: %w", err)
	}
	return n, nil
}

// Upsert inserts song or, when its identity exists, refreshes the stored fields. It reports whether a row
// was inserted.
func (r *SongRepository) Upsert(song models.Song) (*models.LibrarySong, bool, error) {
	existing, err := r.GetByKey(song.Key())
	switch {
	case err == nil:
		if existing.Song() == song {
			return existing, false, nil
		}
		existing.SetSong(song)
		return existing, false, r.Update(existing)
	case errors.Is(err, shared.ErrSongNotFound):
		created := models.NewLibrarySong(0, song)
		return created, true, r.Create(created)
	default:
		return nil, false, err
	}
}

func (r *SongRepository) query(query string, args ...any) ([]*models.LibrarySong, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	var songs []*models.LibrarySong
	for rows.Next() {
		song, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return songs, nil
}

// scan reads one row from [sql.Row] or [sql.Rows] into a [models.LibrarySong]
func (r *SongRepository) scan(row scanner) (*models.LibrarySong, error) {
	var (
		id        string
		sequence  int
		mood      string
		s         models.Song
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(&id, &sequence, &s.Title, &s.Artist, &mood, &s.Energy, &s.Valence, &s.Duration, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrSongNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan song: %w", err)
	}
	s.Mood = models.Mood(mood)

	song := models.NewLibrarySong(sequence, s)
	song.SetID(id)
	song.SetCreatedAt(createdAt)
	song.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		song.SetDeletedAt(&deletedAt.Time)
	}

	return song, nil
}
