package repositories

import (
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/desertthunder/vibetune/internal/models"
)

//go:embed library.default.toml
var defaultLibrary string

type seedFile struct {
	Songs []models.Song `toml:"songs"`
}

// DefaultSongs decodes the embedded default library.
func DefaultSongs() ([]models.Song, error) {
	var f seedFile
	if _, err := toml.Decode(defaultLibrary, &f); err != nil {
		return nil, fmt.Errorf("failed to decode default library: %w", err)
	}
	for i, s := range f.Songs {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("default song %d: %w", i+1, err)
		}
	}
	return f.Songs, nil
}

// Seed upserts the default library and returns how many songs were inserted.
func Seed(songs *SongRepository) (int, error) {
	defaults, err := DefaultSongs()
	if err != nil {
		return 0, err
	}

	inserted := 0
	for _, s := range defaults {
		_, created, err := songs.Upsert(s)
		if err != nil {
			return inserted, fmt.Errorf("failed to seed %s: %w", s.Key(), err)
		}
		if created {
			inserted++
		}
	}
	return inserted, nil
}

// SeedIfEmpty seeds only an empty library.
func SeedIfEmpty(songs *SongRepository) (int, error) {
	n, err := songs.Count()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	return Seed(songs)
}
