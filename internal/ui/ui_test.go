package ui

import (
	"context"
	"errors"
	"io"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/vibetune/internal/models"
	"github.com/desertthunder/vibetune/internal/shared"
	"github.com/desertthunder/vibetune/internal/tasks"
	th "github.com/desertthunder/vibetune/internal/testing"
)

type fakeLibrary struct {
	mu        sync.Mutex
	songs     []models.Song
	removed   []models.Song
	playlists map[string][]models.Song
}

func newFakeLibrary() *fakeLibrary {
	return &fakeLibrary{songs: th.DefaultLibrary(), playlists: map[string][]models.Song{}}
}

func (f *fakeLibrary) Songs(mood models.Mood) ([]models.Song, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return models.FilterByMood(f.songs, mood), nil
}

func (f *fakeLibrary) RemoveSong(song models.Song) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := models.IndexOf(f.songs, song.Key())
	if i < 0 {
		return shared.ErrSongNotFound
	}
	f.songs = slices.Delete(f.songs, i, i+1)
	f.removed = append(f.removed, song)
	return nil
}

func (f *fakeLibrary) Playlists() ([]*models.Playlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.playlists))
	for name := range f.playlists {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make([]*models.Playlist, 0, len(names))
	for i, name := range names {
		p := models.NewPlaylist(i+1, name)
		for _, s := range f.playlists[name] {
			p.AddSong(s)
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeLibrary) CreatePlaylist(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.playlists[name]; ok {
		return shared.ErrPlaylistExists
	}
	f.playlists[name] = nil
	return nil
}

func (f *fakeLibrary) DeletePlaylist(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.playlists[name]; !ok {
		return shared.ErrPlaylistNotFound
	}
	delete(f.playlists, name)
	return nil
}

func (f *fakeLibrary) AddToPlaylist(name string, song models.Song) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	songs, ok := f.playlists[name]
	if !ok {
		return false, shared.ErrPlaylistNotFound
	}
	if models.IndexOf(songs, song.Key()) >= 0 {
		return false, nil
	}
	f.playlists[name] = append(songs, song)
	return true, nil
}

func (f *fakeLibrary) RemoveFromPlaylist(name string, song models.Song) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	songs, ok := f.playlists[name]
	if !ok {
		return false, shared.ErrPlaylistNotFound
	}
	i := models.IndexOf(songs, song.Key())
	if i < 0 {
		return false, nil
	}
	f.playlists[name] = slices.Delete(songs, i, i+1)
	return true, nil
}

func newTestModel(t *testing.T, delay time.Duration) (*Model, *fakeLibrary) {
	t.Helper()
	logger := log.New(io.Discard)
	ctx, cancel := context.WithCancel(context.Background())

	sink := tasks.NewChannelSink(ctx, 64)
	v := tasks.NewVisualizer(tasks.Options{Logger: logger, StepDelay: delay, Sink: sink})
	t.Cleanup(func() {
		v.Cancel()
		v.Wait()
	})
	t.Cleanup(cancel)

	lib := newFakeLibrary()
	m := NewModel(ctx, Options{
		Logger:         logger,
		Library:        lib,
		Visualizer:     v,
		Events:         sink.Events(),
		Algorithm:      tasks.AlgorithmBubble,
		Criterion:      tasks.CriterionTitle,
		RecommendCount: 5,
	})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 60})
	m.Update(m.loadSongs()())
	m.Update(m.loadPlaylists()())
	return m, lib
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(m *Model, k string) tea.Cmd {
	_, cmd := m.Update(keyMsg(k))
	return cmd
}

// exec runs cmd and feeds its library messages back into the model, following the commands they return.
func exec(m *Model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			exec(m, c)
		}
	case Msg:
		_, next := m.Update(msg)
		exec(m, next)
	}
}

// drain pumps events into the model until the current run delivers its result.
func drain(t *testing.T, m *Model) {
	t.Helper()
	for m.running {
		m.Update(m.waitForEvent()())
	}
	if m.run.result == nil {
		t.Fatal("run finished without a result")
	}
}

func TestModel(t *testing.T) {
	t.Run("Load", func(t *testing.T) {
		m, _ := newTestModel(t, 0)

		if got := len(m.songs); got != 15 {
			t.Fatalf("expected 15 songs, got %d", got)
		}
		if got := len(m.songList.Items()); got != 15 {
			t.Errorf("expected 15 list items, got %d", got)
		}
		if got := len(m.visualizer.Songs()); got != 15 {
			t.Errorf("expected visualizer library of 15, got %d", got)
		}
		if m.visualizer.Graph().Len() != 15 {
			t.Errorf("expected graph of 15 nodes, got %d", m.visualizer.Graph().Len())
		}
	})

	t.Run("Mood filter", func(t *testing.T) {
		m, _ := newTestModel(t, 0)

		press(m, "m")
		if m.mood != models.MoodHappy {
			t.Fatalf("expected Happy, got %s", m.mood)
		}
		if got := len(m.songs); got != 4 {
			t.Fatalf("expected 4 happy songs, got %d", got)
		}
		for _, s := range m.songs {
			if s.Mood != models.MoodHappy {
				t.Errorf("unexpected mood %s for %s", s.Mood, s.Title)
			}
		}

		for range models.Moods() {
			press(m, "m")
		}
		if m.mood != models.MoodAll || len(m.songs) != 15 {
			t.Errorf("expected the filter to wrap to All, got %s with %d songs", m.mood, len(m.songs))
		}
	})

	t.Run("Cycle settings", func(t *testing.T) {
		m, _ := newTestModel(t, 0)

		press(m, "a")
		press(m, "c")
		if m.algorithm != tasks.AlgorithmSelection {
			t.Errorf("expected selection, got %s", m.algorithm)
		}
		if m.criterion != tasks.CriterionArtist {
			t.Errorf("expected artist, got %s", m.criterion)
		}

		press(m, "a")
		press(m, "a")
		if m.algorithm != tasks.AlgorithmBubble {
			t.Errorf("expected the algorithm to wrap to bubble, got %s", m.algorithm)
		}
	})
}

func TestSortView(t *testing.T) {
	t.Run("Sorts the displayed songs", func(t *testing.T) {
		m, _ := newTestModel(t, 0)

		press(m, "s")
		if m.view != SortView {
			t.Fatalf("expected sort view, got %d", m.view)
		}
		drain(t, m)

		if m.run.result.Status != tasks.StatusCompleted {
			t.Fatalf("expected completed, got %s", m.run.result.Status)
		}
		if len(m.run.songs) != 15 {
			t.Fatalf("expected 15 sorted songs, got %d", len(m.run.songs))
		}
		sorted := slices.IsSortedFunc(m.run.songs, func(a, b models.Song) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		})
		if !sorted {
			t.Errorf("songs not sorted by title: %v", th.Titles(m.run.songs))
		}
		if m.run.comparisons == 0 || m.run.comparisons != m.run.result.Comparisons {
			t.Errorf("expected comparisons to match the result, got %d vs %d", m.run.comparisons, m.run.result.Comparisons)
		}
		if !strings.Contains(m.View(), "Bubble Sort by Title") {
			t.Error("expected the view to name the algorithm and criterion")
		}
	})

	t.Run("Sorts the mood selection only", func(t *testing.T) {
		m, _ := newTestModel(t, 0)

		press(m, "m")
		press(m, "c")
		press(m, "c")
		press(m, "c")
		press(m, "s")
		drain(t, m)

		if got := len(m.run.songs); got != 4 {
			t.Fatalf("expected 4 sorted songs, got %d", got)
		}
		for i := 1; i < len(m.run.songs); i++ {
			if m.run.songs[i-1].Energy > m.run.songs[i].Energy {
				t.Errorf("energy out of order at %d: %v", i, th.Titles(m.run.songs))
			}
		}
	})

	t.Run("Removal refused while running", func(t *testing.T) {
		m, lib := newTestModel(t, time.Hour)

		press(m, "s")
		if !m.running {
			t.Fatal("expected a run in flight")
		}
		press(m, "esc")
		if cmd := press(m, "d"); cmd != nil {
			t.Error("expected no removal command while busy")
		}
		if !errors.Is(m.err, shared.ErrBusy) {
			t.Errorf("expected ErrBusy, got %v", m.err)
		}
		if len(lib.removed) != 0 {
			t.Errorf("expected nothing removed, got %v", lib.removed)
		}

		press(m, "x")
		drain(t, m)
		if m.run.result.Status != tasks.StatusCancelled {
			t.Errorf("expected cancelled, got %s", m.run.result.Status)
		}
	})

	t.Run("Second start while running", func(t *testing.T) {
		m, _ := newTestModel(t, time.Hour)

		press(m, "s")
		press(m, "esc")
		press(m, "r")
		if m.run.op != tasks.OpSort || m.view != LibraryView {
			t.Error("expected the second start to be ignored")
		}

		press(m, "x")
		drain(t, m)
	})
}

func TestGraphView(t *testing.T) {
	t.Run("Recommend", func(t *testing.T) {
		m, _ := newTestModel(t, 0)
		origin, _ := m.selectedSong()

		press(m, "r")
		if m.view != GraphView {
			t.Fatalf("expected graph view, got %d", m.view)
		}
		drain(t, m)

		r := m.run.result
		if r.Status != tasks.StatusCompleted {
			t.Fatalf("expected completed, got %s", r.Status)
		}
		if len(r.Recommendations) == 0 || len(r.Recommendations) > 5 {
			t.Errorf("expected 1..5 recommendations, got %d", len(r.Recommendations))
		}
		if len(m.run.visited) == 0 || m.run.visited[0] != origin.Title {
			t.Errorf("expected the traversal to start at %q, got %v", origin.Title, m.run.visited)
		}
	})

	t.Run("Path find from prompt", func(t *testing.T) {
		m, _ := newTestModel(t, 0)
		origin, _ := m.selectedSong()

		var target models.Song
		for _, s := range m.songs[1:] {
			if s.Mood == origin.Mood || s.Artist == origin.Artist {
				target = s
				break
			}
		}
		if target.Title == "" {
			t.Fatal("default library has no neighbor for the first song")
		}

		press(m, "f")
		if m.promptKind != promptPath {
			t.Fatalf("expected the path prompt, got %d", m.promptKind)
		}
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(target.Title)})
		press(m, "enter")
		if m.promptKind != promptNone {
			t.Error("expected the prompt to close")
		}
		drain(t, m)

		if !m.run.found {
			t.Fatalf("expected a path from %q to %q", origin.Title, target.Title)
		}
		if m.run.path[0] != origin.Title || m.run.path[len(m.run.path)-1] != target.Title {
			t.Errorf("unexpected path %v", m.run.path)
		}
	})

	t.Run("Misspelled destination", func(t *testing.T) {
		m, _ := newTestModel(t, 0)
		origin, _ := m.selectedSong()
		if origin.Mood != models.MoodEnergetic {
			t.Fatalf("expected an energetic first song, got %s", origin)
		}

		press(m, "f")
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Dont Stop Me Now")})
		press(m, "enter")
		drain(t, m)

		if m.run.target != "Don't Stop Me Now" {
			t.Errorf("expected the destination to resolve, got %q", m.run.target)
		}
		if !m.run.found || m.run.path[len(m.run.path)-1] != "Don't Stop Me Now" {
			t.Errorf("unexpected path %v", m.run.path)
		}
	})

	t.Run("Unknown destination", func(t *testing.T) {
		m, _ := newTestModel(t, 0)

		press(m, "f")
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("zzzz qqqq")})
		press(m, "enter")
		drain(t, m)

		if m.run.found || len(m.run.path) != 0 {
			t.Errorf("expected no path, got %v", m.run.path)
		}
		if m.run.result.Status != tasks.StatusCompleted {
			t.Errorf("expected completed, got %s", m.run.result.Status)
		}
	})
}

func TestPlayback(t *testing.T) {
	m, _ := newTestModel(t, 0)
	first, _ := m.selectedSong()

	press(m, "enter")
	state := m.transport.State()
	if !state.Playing || state.Song.Key() != first.Key() {
		t.Fatalf("expected %q playing, got %s", first.Title, state)
	}

	m.Update(tickMsg())
	if got := m.transport.State().Elapsed; got != 1 {
		t.Errorf("expected 1s elapsed, got %d", got)
	}

	press(m, " ")
	if m.transport.State().Playing {
		t.Error("expected paused after toggle")
	}

	press(m, "n")
	if got := m.transport.State().Index; got != 1 {
		t.Errorf("expected index 1, got %d", got)
	}
	press(m, "b")
	press(m, "b")
	if got := m.transport.State().Index; got != 0 {
		t.Errorf("expected previous to stop at 0, got %d", got)
	}
}

func TestLibraryEdits(t *testing.T) {
	t.Run("Remove song", func(t *testing.T) {
		m, lib := newTestModel(t, 0)
		first, _ := m.selectedSong()

		exec(m, press(m, "d"))

		if len(lib.removed) != 1 || lib.removed[0].Key() != first.Key() {
			t.Fatalf("expected %q removed, got %v", first.Title, lib.removed)
		}
		if got := len(m.songs); got != 14 {
			t.Errorf("expected 14 songs after reload, got %d", got)
		}
		if m.visualizer.Graph().Has(first.Title) {
			t.Error("expected the graph to be rebuilt without the removed song")
		}
	})

	t.Run("Playlists", func(t *testing.T) {
		m, lib := newTestModel(t, 0)
		first, _ := m.selectedSong()

		press(m, "p")
		if m.view != PlaylistListView {
			t.Fatalf("expected playlist view, got %d", m.view)
		}
		press(m, "N")
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Road Trip")})
		exec(m, press(m, "enter"))

		if _, ok := lib.playlists["Road Trip"]; !ok {
			t.Fatal("expected the playlist to be created")
		}
		if got := len(m.playlistList.Items()); got != 1 {
			t.Fatalf("expected 1 playlist item, got %d", got)
		}

		press(m, "esc")
		press(m, "+")
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Road Trip")})
		exec(m, press(m, "enter"))
		if got := lib.playlists["Road Trip"]; len(got) != 1 || got[0].Key() != first.Key() {
			t.Fatalf("expected %q in the playlist, got %v", first.Title, got)
		}

		press(m, "+")
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Road Trip")})
		exec(m, press(m, "enter"))
		if !strings.Contains(m.status, "already exists") {
			t.Errorf("expected a duplicate notice, got %q", m.status)
		}

		press(m, "p")
		press(m, "enter")
		if m.view != PlaylistSongsView || len(m.memberList.Items()) != 1 {
			t.Fatalf("expected the playlist songs view with 1 song, got view %d", m.view)
		}
		exec(m, press(m, "d"))
		if got := lib.playlists["Road Trip"]; len(got) != 0 {
			t.Errorf("expected the playlist to be empty, got %v", got)
		}
	})

	t.Run("Unknown playlist", func(t *testing.T) {
		m, _ := newTestModel(t, 0)

		press(m, "+")
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Nope")})
		exec(m, press(m, "enter"))
		if !errors.Is(m.err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", m.err)
		}
	})
}
