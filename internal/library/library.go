// Package library is the persistence collaborator shared by the CLI, the terminal UI and the HTTP server.
//
// It fronts the song and playlist repositories and mirrors playlists to a JSON file after every change,
// so the file stays importable by older tooling. A missing or malformed playlists file is never an error.
package library

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/vibetune/internal/formatter"
	"github.com/desertthunder/vibetune/internal/models"
	"github.com/desertthunder/vibetune/internal/repositories"
	"github.com/desertthunder/vibetune/internal/shared"
)

// Service exposes library and playlist operations.
type Service struct {
	songs         *repositories.SongRepository
	playlists     *repositories.PlaylistRepository
	playlistsFile string
	logger        *log.Logger
}

// New creates a service over db. playlistsFile may be empty to disable the JSON mirror.
func New(db *sql.DB, playlistsFile string, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		songs:         repositories.NewSongRepository(db),
		playlists:     repositories.NewPlaylistRepository(db),
		playlistsFile: playlistsFile,
		logger:        logger,
	}
}

// Songs lists the library in insertion order, filtered by mood.
func (s *Service) Songs(mood models.Mood) ([]models.Song, error) {
	return s.songs.Songs(mood)
}

// AddSong validates and stores a new song.
func (s *Service) AddSong(song models.Song) error {
	song.Title = strings.TrimSpace(song.Title)
	song.Artist = strings.TrimSpace(song.Artist)
	if err := s.songs.Create(models.NewLibrarySong(0, song)); err != nil {
		return err
	}
	s.logger.Info("song added", "title", song.Title, "artist", song.Artist)
	return nil
}

// RemoveSong deletes the song with song's identity.
func (s *Service) RemoveSong(song models.Song) error {
	stored, err := s.songs.GetByKey(song.Key())
	if err != nil {
		return err
	}
	if err := s.songs.Delete(stored.ID()); err != nil {
		return err
	}
	s.logger.Info("song removed", "title", song.Title, "artist", song.Artist)
	return s.sync()
}

// FindSong resolves a title, and optionally an artist, to exactly one library song.
func (s *Service) FindSong(title, artist string) (models.Song, error) {
	matches, err := s.songs.FindByTitle(title)
	if err != nil {
		return models.Song{}, err
	}
	var found []models.Song
	for _, m := range matches {
		if artist == "" || strings.EqualFold(m.Song().Artist, strings.TrimSpace(artist)) {
			found = append(found, m.Song())
		}
	}
	switch len(found) {
	case 0:
		return models.Song{}, fmt.Errorf("%w: %q", shared.ErrSongNotFound, title)
	case 1:
		return found[0], nil
	default:
		return models.Song{}, fmt.Errorf("%w: %q matches %d songs, pass an artist", shared.ErrInvalidArgument, title, len(found))
	}
}

// Import upserts songs and reports how many were new.
func (s *Service) Import(songs []models.Song) (int, error) {
	inserted := 0
	for _, song := range songs {
		_, created, err := s.songs.Upsert(song)
		if err != nil {
			return inserted, fmt.Errorf("failed to import %s: %w", song.Key(), err)
		}
		if created {
			inserted++
		}
	}
	return inserted, nil
}

// Seed loads the default library when the library is empty.
func (s *Service) Seed() (int, error) {
	return repositories.SeedIfEmpty(s.songs)
}

// Playlists lists every playlist sorted by name.
func (s *Service) Playlists() ([]*models.Playlist, error) {
	return s.playlists.List(nil)
}

// Playlist fetches one playlist by name.
func (s *Service) Playlist(name string) (*models.Playlist, error) {
	return s.playlists.GetByName(name)
}

// CreatePlaylist creates an empty playlist with a unique name.
func (s *Service) CreatePlaylist(name string) error {
	if err := s.playlists.Create(models.NewPlaylist(0, name)); err != nil {
		return err
	}
	return s.sync()
}

// DeletePlaylist removes the named playlist.
func (s *Service) DeletePlaylist(name string) error {
	p, err := s.playlists.GetByName(name)
	if err != nil {
		return err
	}
	if err := s.playlists.Delete(p.ID()); err != nil {
		return err
	}
	return s.sync()
}

// AddToPlaylist appends song to the named playlist; false when it was already there.
func (s *Service) AddToPlaylist(name string, song models.Song) (bool, error) {
	added, err := s.playlists.AddSong(name, song)
	if err != nil || !added {
		return added, err
	}
	return true, s.sync()
}

// RemoveFromPlaylist removes song from the named playlist; false when it was not there.
func (s *Service) RemoveFromPlaylist(name string, song models.Song) (bool, error) {
	removed, err := s.playlists.RemoveSong(name, song)
	if err != nil || !removed {
		return removed, err
	}
	return true, s.sync()
}

// ImportPlaylists loads playlists from the JSON file at path, adding any unknown songs to the library.
// Existing playlists are merged, never duplicated. It returns how many playlists were created.
func (s *Service) ImportPlaylists(path string) (int, error) {
	created := 0
	for _, p := range formatter.LoadPlaylistsFile(path, s.logger) {
		if _, err := s.Import(p.Songs); err != nil {
			return created, err
		}

		if _, err := s.playlists.GetByName(p.Name); errors.Is(err, shared.ErrPlaylistNotFound) {
			if err := s.playlists.Create(models.NewPlaylist(0, p.Name)); err != nil {
				return created, err
			}
			created++
		} else if err != nil {
			return created, err
		}

		for _, song := range p.Songs {
			if _, err := s.playlists.AddSong(p.Name, song); err != nil {
				return created, err
			}
		}
	}
	s.logger.Debug("playlists imported", "path", path, "created", created)
	return created, nil
}

// Exports converts every playlist for the formatter.
func (s *Service) Exports() ([]formatter.Export, error) {
	list, err := s.playlists.List(nil)
	if err != nil {
		return nil, err
	}
	out := make([]formatter.Export, len(list))
	for i, p := range list {
		out[i] = formatter.Export{Name: p.Name(), Songs: p.Songs()}
	}
	return out, nil
}

// sync mirrors all playlists to the playlists file.
func (s *Service) sync() error {
	if s.playlistsFile == "" {
		return nil
	}
	exports, err := s.Exports()
	if err != nil {
		return err
	}
	if err := formatter.SavePlaylistsFile(s.playlistsFile, exports); err != nil {
		return err
	}
	s.logger.Debug("playlists saved", "path", s.playlistsFile, "count", len(exports))
	return nil
}
