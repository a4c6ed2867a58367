package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/vibetune/internal/shared"
)

// Playlist is a named, ordered list of songs without duplicates.
type Playlist struct {
	entity
	name  string
	songs []Song
}

// NewPlaylist creates an empty playlist.
func NewPlaylist(sequence int, name string) *Playlist {
	return &Playlist{entity: newEntity(sequence), name: strings.TrimSpace(name)}
}

func (p *Playlist) Name() string        { return p.name }
func (p *Playlist) SetName(name string) { p.name = strings.TrimSpace(name) }
func (p *Playlist) Len() int            { return len(p.songs) }

// Songs returns a copy of the playlist's songs.
func (p *Playlist) Songs() []Song {
	out := make([]Song, len(p.songs))
	copy(out, p.songs)
	return out
}

// Contains reports whether a song with the same identity is present.
func (p *Playlist) Contains(song Song) bool {
	return IndexOf(p.songs, song.Key()) >= 0
}

// AddSong appends song unless a song with the same identity is already present.
func (p *Playlist) AddSong(song Song) bool {
	if p.Contains(song) {
		return false
	}
	p.songs = append(p.songs, song)
	return true
}

// RemoveSong removes the song with the same identity; false if absent.
func (p *Playlist) RemoveSong(song Song) bool {
	i := IndexOf(p.songs, song.Key())
	if i < 0 {
		return false
	}
	p.songs = append(p.songs[:i], p.songs[i+1:]...)
	return true
}

// Validate requires a non-empty name.
func (p *Playlist) Validate() error {
	if p.name == "" {
		return fmt.Errorf("%w: playlist name is required", shared.ErrInvalidInput)
	}
	return nil
}
