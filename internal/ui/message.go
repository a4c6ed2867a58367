package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/vibetune/internal/models"
	"github.com/desertthunder/vibetune/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSongsLoaded MsgKind = iota
	MsgPlaylistsLoaded
	MsgRunEvent
	MsgEventsClosed
	MsgTick
	MsgActionDone
)

// songsLoadedMsg is the constructor for [MsgSongsLoaded]
func songsLoadedMsg(songs []models.Song, err error) Msg {
	return Msg{
		kind: MsgSongsLoaded,
		data: struct {
			songs []models.Song
			err   error
		}{songs, err},
	}
}

// playlistsLoadedMsg is the constructor for [MsgPlaylistsLoaded]
func playlistsLoadedMsg(playlists []*models.Playlist, err error) Msg {
	return Msg{
		kind: MsgPlaylistsLoaded,
		data: struct {
			playlists []*models.Playlist
			err       error
		}{playlists, err},
	}
}

// runEventMsg is the constructor for [MsgRunEvent]; one per event received from the visualizer
func runEventMsg(e tasks.Event) Msg {
	return Msg{kind: MsgRunEvent, data: e}
}

// eventsClosedMsg is the constructor for [MsgEventsClosed]
func eventsClosedMsg() Msg {
	return Msg{kind: MsgEventsClosed}
}

// tickMsg is the constructor for [MsgTick], the playback clock
func tickMsg() Msg {
	return Msg{kind: MsgTick}
}

// actionDoneMsg is the constructor for [MsgActionDone]: a library mutation finished with a status line
func actionDoneMsg(status string, err error, reload bool) Msg {
	return Msg{
		kind: MsgActionDone,
		data: struct {
			status string
			err    error
			reload bool
		}{status, err, reload},
	}
}
