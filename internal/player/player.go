// Package player implements a simulated playback transport.
//
// No audio is decoded. The transport tracks a queue, the index of the current song, a play/pause flag and an
// elapsed position advanced by [Transport.Tick]. Only the observer goroutine drives it.
package player

import (
	"fmt"
	"slices"

	"github.com/desertthunder/vibetune/internal/models"
	"github.com/desertthunder/vibetune/internal/shared"
)

// State is a read-only snapshot of the transport.
type State struct {
	Song    models.Song
	Index   int
	Length  int
	Playing bool
	Elapsed int // seconds into Song
}

// Loaded reports whether the snapshot refers to a song.
func (s State) Loaded() bool { return s.Length > 0 }

// Progress is the elapsed fraction of the current song in [0, 1].
func (s State) Progress() float64 {
	if s.Song.Duration <= 0 {
		return 0
	}
	return min(float64(s.Elapsed)/float64(s.Song.Duration), 1)
}

func (s State) String() string {
	if !s.Loaded() {
		return "stopped"
	}
	verb := "paused"
	if s.Playing {
		verb = "playing"
	}
	return fmt.Sprintf("%s %s (%s / %s) [%d/%d]", verb, s.Song.Title,
		shared.FormatDuration(s.Elapsed), shared.FormatDuration(s.Song.Duration), s.Index+1, s.Length)
}

// Transport is the playback state machine.
type Transport struct {
	queue   []models.Song
	index   int
	playing bool
	elapsed int
}

// New creates an empty, stopped transport.
func New() *Transport { return &Transport{} }

// Play loads queue and starts the song at index.
func (t *Transport) Play(queue []models.Song, index int) error {
	if len(queue) == 0 {
		return fmt.Errorf("%w: nothing to play", shared.ErrInvalidInput)
	}
	if index < 0 || index >= len(queue) {
		return fmt.Errorf("%w: index %d outside queue of %d", shared.ErrInvalidArgument, index, len(queue))
	}
	t.queue = slices.Clone(queue)
	t.index = index
	t.elapsed = 0
	t.playing = true
	return nil
}

// Toggle flips play/pause. It reports the new playing flag; an empty transport stays stopped.
func (t *Transport) Toggle() bool {
	if len(t.queue) == 0 {
		return false
	}
	t.playing = !t.playing
	return t.playing
}

// Stop unloads the queue.
func (t *Transport) Stop() {
	*t = Transport{}
}

// Next advances to the following song. It stays on the last song and reports false at the end of the queue.
func (t *Transport) Next() bool {
	if t.index+1 >= len(t.queue) {
		return false
	}
	t.index++
	t.elapsed = 0
	t.playing = true
	return true
}

// Previous steps back one song, bounded at the first.
func (t *Transport) Previous() bool {
	if len(t.queue) == 0 || t.index == 0 {
		return false
	}
	t.index--
	t.elapsed = 0
	t.playing = true
	return true
}

// Current returns the loaded song.
func (t *Transport) Current() (models.Song, bool) {
	if len(t.queue) == 0 {
		return models.Song{}, false
	}
	return t.queue[t.index], true
}

// Tick advances the elapsed position by seconds while playing. When the current song ends the transport moves
// to the next one, or pauses at the end of the last. It reports whether the song changed.
func (t *Transport) Tick(seconds int) bool {
	if !t.playing || len(t.queue) == 0 || seconds <= 0 {
		return false
	}
	t.elapsed += seconds
	if d := t.queue[t.index].Duration; d > 0 && t.elapsed >= d {
		if t.Next() {
			return true
		}
		t.elapsed = d
		t.playing = false
	}
	return false
}

// State snapshots the transport.
func (t *Transport) State() State {
	s := State{Index: t.index, Length: len(t.queue), Playing: t.playing, Elapsed: t.elapsed}
	if song, ok := t.Current(); ok {
		s.Song = song
	}
	return s
}
