package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/vibetune/internal/models"
	"github.com/desertthunder/vibetune/internal/shared"
)

var (
	_ list.Item = playlistItem{}
	_ list.Item = songItem{}
)

// playlistItem wraps [models.Playlist] to implement [list.Item].
type playlistItem struct {
	name  string
	songs []models.Song
}

func (i playlistItem) FilterValue() string { return i.name }
func (i playlistItem) Title() string       { return i.name }
func (i playlistItem) Description() string {
	total := 0
	for _, s := range i.songs {
		total += s.Duration
	}
	return fmt.Sprintf("%d songs • %s", len(i.songs), shared.FormatDuration(total))
}

// songItem wraps [models.Song] to implement [list.Item].
type songItem struct {
	song models.Song
}

func (i songItem) FilterValue() string { return i.song.Title }
func (i songItem) Title() string       { return i.song.Title }
func (i songItem) Description() string {
	return fmt.Sprintf("%s • %s • energy %d • valence %d • %s",
		i.song.Artist, i.song.Mood, i.song.Energy, i.song.Valence, shared.FormatDuration(i.song.Duration))
}

func songItems(songs []models.Song) []list.Item {
	items := make([]list.Item, len(songs))
	for i, s := range songs {
		items[i] = songItem{song: s}
	}
	return items
}

func playlistItems(playlists []*models.Playlist) []list.Item {
	items := make([]list.Item, len(playlists))
	for i, p := range playlists {
		items[i] = playlistItem{name: p.Name(), songs: p.Songs()}
	}
	return items
}
