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

// PlaylistRepository implements models.Repository[*models.Playlist].
//
// Playlist names are unique among non-deleted playlists. Membership references library songs, so every
// song in a playlist must exist in the library when the playlist is written.
type PlaylistRepository struct {
	db *sql.DB
}

// NewPlaylistRepository creates a new PlaylistRepository with the given database connection
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Create inserts a new playlist and its songs
func (r *PlaylistRepository) Create(playlist *models.Playlist) error {
	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if _, err := r.GetByName(playlist.Name()); err == nil {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistExists, playlist.Name())
	} else if !errors.Is(err, shared.ErrPlaylistNotFound) {
		return err
	}

	sequence, err := NextSequence(r.db, "playlists")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	playlist.SetID(id)
	playlist.SetSequence(sequence)

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO playlists (id, sequence, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`
	if _, err := tx.Exec(query, id, sequence, playlist.Name(), playlist.CreatedAt(), playlist.UpdatedAt()); err != nil {
		return fmt.Errorf("failed to insert playlist: %w", err)
	}

	if err := writeMembers(tx, id, playlist.Songs()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit playlist: %w", err)
	}
	return nil
}

// Get retrieves a playlist and its songs by ID
func (r *PlaylistRepository) Get(id string) (*models.Playlist, error) {
	query := `
		SELECT id, sequence, name, created_at, updated_at, deleted_at
		FROM playlists
		WHERE id = ? AND deleted_at IS NULL
	`
	return r.load(r.db.QueryRow(query, id))
}

// GetByName retrieves a playlist by its exact name
func (r *PlaylistRepository) GetByName(name string) (*models.Playlist, error) {
	query := `
		SELECT id, sequence, name, created_at, updated_at, deleted_at
		FROM playlists
		WHERE name = ? AND deleted_at IS NULL
	`
	return r.load(r.db.QueryRow(query, strings.TrimSpace(name)))
}

// Update renames a playlist and replaces its membership with the playlist's current songs
func (r *PlaylistRepository) Update(playlist *models.Playlist) error {
	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	playlist.SetUpdatedAt(now)

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`UPDATE playlists SET name = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		playlist.Name(), now, playlist.ID())
	if err != nil {
		return fmt.Errorf("failed to update playlist: %w", err)
	}
	if err := requireRow(result, shared.ErrPlaylistNotFound, playlist.ID()); err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM playlist_songs WHERE playlist_id = ?`, playlist.ID()); err != nil {
		return fmt.Errorf("failed to clear playlist songs: %w", err)
	}
	if err := writeMembers(tx, playlist.ID(), playlist.Songs()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit playlist: %w", err)
	}
	return nil
}

// Delete soft-deletes a playlist by ID
func (r *PlaylistRepository) Delete(id string) error {
	result, err := r.db.Exec(`UPDATE playlists SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}
	return requireRow(result, shared.ErrPlaylistNotFound, id)
}

// List retrieves every playlist sorted by name.
//
// Supported criteria: "name" (case-insensitive substring).
func (r *PlaylistRepository) List(criteria map[string]any) ([]*models.Playlist, error) {
	query := `
		SELECT id, sequence, name, created_at, updated_at, deleted_at
		FROM playlists
		WHERE deleted_at IS NULL
	`
	args := []any{}

	if name, ok := criteria["name"].(string); ok && name != "" {
		query += " AND name LIKE ?"
		args = append(args, "%"+name+"%")
	}

	query += " ORDER BY name ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}

	var playlists []*models.Playlist
	for rows.Next() {
		playlist, err := scanPlaylist(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		playlists = append(playlists, playlist)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	rows.Close()

	for _, p := range playlists {
		if err := r.loadSongs(p); err != nil {
			return nil, err
		}
	}
	return playlists, nil
}

// AddSong appends song to the named playlist. It reports false when the song is already there.
func (r *PlaylistRepository) AddSong(name string, song models.Song) (bool, error) {
	playlist, err := r.GetByName(name)
	if err != nil {
		return false, err
	}
	if !playlist.AddSong(song) {
		return false, nil
	}
	return true, r.Update(playlist)
}

// RemoveSong removes song from the named playlist. It reports false when the song was not there.
func (r *PlaylistRepository) RemoveSong(name string, song models.Song) (bool, error) {
	playlist, err := r.GetByName(name)
	if err != nil {
		return false, err
	}
	if !playlist.RemoveSong(song) {
		return false, nil
	}
	return true, r.Update(playlist)
}

// writeMembers stores songs in order; each must exist in the library.
func writeMembers(tx *sql.Tx, playlistID string, songs []models.Song) error {
	now := time.Now()
	for pos, s := range songs {
		var songID string
		err := tx.QueryRow(`SELECT id FROM songs WHERE title = ? AND artist = ? AND deleted_at IS NULL`, s.Title, s.Artist).Scan(&songID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", shared.ErrSongNotFound, s.Key())
		}
		if err != nil {
			return fmt.Errorf("failed to look up song: %w", err)
		}

		query := `INSERT INTO playlist_songs (playlist_id, song_id, position, added_at) VALUES (?, ?, ?, ?)`
		if _, err := tx.Exec(query, playlistID, songID, pos, now); err != nil {
			return fmt.Errorf("failed to add playlist song: %w", err)
		}
	}
	return nil
}

func (r *PlaylistRepository) load(row *sql.Row) (*models.Playlist, error) {
	playlist, err := scanPlaylist(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadSongs(playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

// loadSongs attaches the playlist's live library songs in position order
func (r *PlaylistRepository) loadSongs(playlist *models.Playlist) error {
	query := `
		SELECT s.title, s.artist, s.mood, s.energy, s.valence, s.duration
		FROM playlist_songs ps
		JOIN songs s ON s.id = ps.song_id
		WHERE ps.playlist_id = ? AND s.deleted_at IS NULL
		ORDER BY ps.position ASC
	`

	rows, err := r.db.Query(query, playlist.ID())
	if err != nil {
		return fmt.Errorf("failed to query playlist songs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			s    models.Song
			mood string
		)
		if err := rows.Scan(&s.Title, &s.Artist, &mood, &s.Energy, &s.Valence, &s.Duration); err != nil {
			return fmt.Errorf("failed to scan playlist song: %w", err)
		}
		s.Mood = models.Mood(mood)
		playlist.AddSong(s)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("row iteration error: %w", err)
	}
	return nil
}

func scanPlaylist(row scanner) (*models.Playlist, error) {
	var (
		id        string
		sequence  int
		name      string
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(&id, &sequence, &name, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrPlaylistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan playlist: %w", err)
	}

	playlist := models.NewPlaylist(sequence, name)
	playlist.SetID(id)
	playlist.SetCreatedAt(createdAt)
	playlist.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		playlist.SetDeletedAt(&deletedAt.Time)
	}
	return playlist, nil
}
