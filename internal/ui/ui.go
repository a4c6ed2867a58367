package ui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/vibetune/internal/models"
	"github.com/desertthunder/vibetune/internal/player"
	"github.com/desertthunder/vibetune/internal/shared"
	"github.com/desertthunder/vibetune/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LibraryView ViewState = iota
	SortView
	GraphView
	PlaylistListView
	PlaylistSongsView
)

type promptKind int

const (
	promptNone promptKind = iota
	promptPath
	promptAddToPlaylist
	promptNewPlaylist
)

// Library is the persistence surface the TUI edits.
type Library interface {
	Songs(mood models.Mood) ([]models.Song, error)
	RemoveSong(song models.Song) error
	Playlists() ([]*models.Playlist, error)
	CreatePlaylist(name string) error
	DeletePlaylist(name string) error
	AddToPlaylist(name string, song models.Song) (bool, error)
	RemoveFromPlaylist(name string, song models.Song) (bool, error)
}

// Options wires a [Model] to its collaborators. Events must be the channel of the [tasks.ChannelSink] the
// visualizer was built with.
type Options struct {
	Logger         *log.Logger
	Library        Library
	Visualizer     *tasks.Visualizer
	Events         <-chan tasks.Event
	Algorithm      tasks.Algorithm
	Criterion      tasks.Criterion
	RecommendCount int
}

// runView is the observer's copy of the current or last run, rebuilt from events only.
type runView struct {
	op        tasks.Op
	algorithm tasks.Algorithm
	criterion tasks.Criterion
	origin    string
	target    string

	songs       []models.Song
	kind        tasks.StepKind
	positions   []int
	visited     []string
	path        []string
	found       bool
	comparisons int
	swaps       int
	steps       int
	result      *tasks.Result
}

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	logger     *log.Logger
	view       ViewState
	library    Library
	visualizer *tasks.Visualizer
	events     <-chan tasks.Event
	transport  *player.Transport
	width      int
	height     int

	songList     list.Model
	playlistList list.Model
	memberList   list.Model
	all          []models.Song
	songs        []models.Song
	playlists    []*models.Playlist
	selected     string
	mood         models.Mood

	algorithm      tasks.Algorithm
	criterion      tasks.Criterion
	recommendCount int
	running        bool
	run            runView

	prompt     textinput.Model
	promptKind promptKind

	status string
	err    error
	help   help.Model
	keys   keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.RecommendCount <= 0 {
		opts.RecommendCount = 5
	}

	prompt := textinput.New()
	prompt.CharLimit = 128

	m := &Model{
		ctx:            ctx,
		logger:         opts.Logger,
		view:           LibraryView,
		library:        opts.Library,
		visualizer:     opts.Visualizer,
		events:         opts.Events,
		transport:      player.New(),
		songList:       newList("Library", nil),
		playlistList:   newList("Playlists", nil),
		memberList:     newList("", nil),
		mood:           models.MoodAll,
		algorithm:      opts.Algorithm,
		criterion:      opts.Criterion,
		recommendCount: opts.RecommendCount,
		prompt:         prompt,
		help:           help.New(),
		keys:           newKeyMap(),
	}
	return m
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	return l
}

// Init loads the library and playlists and starts the event pump and playback clock.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadSongs(), m.loadPlaylists(), m.waitForEvent(), tick())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, l := range []*list.Model{&m.songList, &m.playlistList, &m.memberList} {
			l.SetSize(msg.Width-4, msg.Height-10)
		}
		return m, nil
	case tea.KeyMsg:
		if m.promptKind != promptNone {
			return m.handlePromptKeys(msg)
		}
		if key.Matches(msg, m.keys.quit) && !m.filtering() {
			m.visualizer.Cancel()
			return m, tea.Quit
		}
		switch m.view {
		case LibraryView:
			return m.handleLibraryKeys(msg)
		case SortView, GraphView:
			return m.handleRunKeys(msg)
		case PlaylistListView:
			return m.handlePlaylistListKeys(msg)
		case PlaylistSongsView:
			return m.handlePlaylistSongsKeys(msg)
		}
	case Msg:
		return m.handleMsg(msg)
	}
	return m.updateLists(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgSongsLoaded:
		data := msg.data.(struct {
			songs []models.Song
			err   error
		})
		if data.err != nil {
			m.fail(data.err)
			return m, nil
		}
		m.all = data.songs
		if err := m.visualizer.SetLibrary(data.songs); err != nil {
			m.logger.Warn("library not applied to visualizer", "error", err)
		}
		return m, m.applyMood()
	case MsgPlaylistsLoaded:
		data := msg.data.(struct {
			playlists []*models.Playlist
			err       error
		})
		if data.err != nil {
			m.fail(data.err)
			return m, nil
		}
		m.playlists = data.playlists
		cmds := []tea.Cmd{m.playlistList.SetItems(playlistItems(data.playlists))}
		if p := m.findPlaylist(m.selected); p != nil {
			cmds = append(cmds, m.memberList.SetItems(songItems(p.Songs())))
		}
		return m, tea.Batch(cmds...)
	case MsgRunEvent:
		m.apply(msg.data.(tasks.Event))
		return m, m.waitForEvent()
	case MsgEventsClosed:
		m.running = false
		return m, nil
	case MsgTick:
		m.transport.Tick(1)
		return m, tick()
	case MsgActionDone:
		data := msg.data.(struct {
			status string
			err    error
			reload bool
		})
		if data.err != nil {
			m.fail(data.err)
			return m, nil
		}
		m.setStatus(data.status)
		if data.reload {
			return m, tea.Batch(m.loadSongs(), m.loadPlaylists())
		}
		return m, m.loadPlaylists()
	}
	return m, nil
}

// apply folds one engine event into the run view. Events arrive in emission order.
func (m *Model) apply(e tasks.Event) {
	switch e := e.(type) {
	case tasks.Step:
		m.run.kind = e.Kind
		m.run.positions = e.Positions
		m.run.steps++
		switch e.Kind {
		case tasks.StepCompare, tasks.StepSwap:
			if e.Songs != nil {
				m.run.songs = e.Songs
			}
		case tasks.StepVisit:
			m.run.visited = append(m.run.visited, e.Titles...)
			m.run.path = e.Path
		case tasks.StepPath:
			m.run.path = e.Path
			m.run.found = e.Found
		}
	case tasks.Progress:
		m.run.comparisons = e.Comparisons
		m.run.swaps = e.Swaps
	case tasks.Result:
		m.running = false
		m.run.result = &e
		m.run.positions = nil
		m.run.comparisons = e.Comparisons
		m.run.swaps = e.Swaps
		m.run.steps = e.Steps
		switch e.Op {
		case tasks.OpSort:
			if e.Songs != nil {
				m.run.songs = e.Songs
			}
		case tasks.OpPathFind:
			m.run.path = e.Path
			m.run.found = e.Found
		}
		m.setStatus(summarize(e))
		if e.Status == tasks.StatusFailed {
			m.err = e.Err
		}
	}
}

func (m *Model) handleLibraryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering() {
		return m.updateLists(msg)
	}

	switch {
	case key.Matches(msg, m.keys.enter):
		if song, ok := m.selectedSong(); ok {
			m.play(m.songs, models.IndexOf(m.songs, song.Key()))
		}
		return m, nil
	case key.Matches(msg, m.keys.mood):
		m.mood = nextMood(m.mood)
		m.setStatus("mood: " + string(m.mood))
		return m, m.applyMood()
	case key.Matches(msg, m.keys.sort):
		m.startSort()
		return m, nil
	case key.Matches(msg, m.keys.recommend):
		if song, ok := m.selectedSong(); ok {
			m.startRecommend(song.Title)
		}
		return m, nil
	case key.Matches(msg, m.keys.path):
		if _, ok := m.selectedSong(); ok {
			return m, m.openPrompt(promptPath, "destination title")
		}
		return m, nil
	case key.Matches(msg, m.keys.add):
		if _, ok := m.selectedSong(); ok {
			return m, m.openPrompt(promptAddToPlaylist, "playlist name")
		}
		return m, nil
	case key.Matches(msg, m.keys.remove):
		song, ok := m.selectedSong()
		if !ok {
			return m, nil
		}
		if m.busy() {
			m.fail(fmt.Errorf("%w: cannot remove songs while a visualization runs", shared.ErrBusy))
			return m, nil
		}
		return m, m.removeSong(song)
	case key.Matches(msg, m.keys.playlists):
		m.view = PlaylistListView
		return m, m.loadPlaylists()
	}
	if cmd, ok := m.handleCommonKeys(msg); ok {
		return m, cmd
	}
	return m.updateLists(msg)
}

func (m *Model) handleRunKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.view = LibraryView
		return m, nil
	case key.Matches(msg, m.keys.sort) && m.view == SortView:
		m.startSort()
		return m, nil
	}
	cmd, _ := m.handleCommonKeys(msg)
	return m, cmd
}

func (m *Model) handlePlaylistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering() {
		return m.updateLists(msg)
	}

	switch {
	case key.Matches(msg, m.keys.back):
		m.view = LibraryView
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if it, ok := m.playlistList.SelectedItem().(playlistItem); ok {
			m.selected = it.name
			m.memberList.Title = it.name
			m.view = PlaylistSongsView
			return m, m.memberList.SetItems(songItems(it.songs))
		}
		return m, nil
	case key.Matches(msg, m.keys.create):
		return m, m.openPrompt(promptNewPlaylist, "new playlist name")
	case key.Matches(msg, m.keys.remove):
		if it, ok := m.playlistList.SelectedItem().(playlistItem); ok {
			return m, m.deletePlaylist(it.name)
		}
		return m, nil
	}
	if cmd, ok := m.handleCommonKeys(msg); ok {
		return m, cmd
	}
	return m.updateLists(msg)
}

func (m *Model) handlePlaylistSongsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering() {
		return m.updateLists(msg)
	}

	p := m.findPlaylist(m.selected)
	switch {
	case key.Matches(msg, m.keys.back):
		m.view = PlaylistListView
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if it, ok := m.memberList.SelectedItem().(songItem); ok && p != nil {
			songs := p.Songs()
			m.play(songs, models.IndexOf(songs, it.song.Key()))
		}
		return m, nil
	case key.Matches(msg, m.keys.remove):
		if it, ok := m.memberList.SelectedItem().(songItem); ok && p != nil {
			return m, m.removeFromPlaylist(p.Name(), it.song)
		}
		return m, nil
	}
	if cmd, ok := m.handleCommonKeys(msg); ok {
		return m, cmd
	}
	return m.updateLists(msg)
}

// handleCommonKeys covers the bindings shared by every view: transport, run control and sort settings.
func (m *Model) handleCommonKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.toggle):
		m.transport.Toggle()
		m.setStatus(m.transport.State().String())
	case key.Matches(msg, m.keys.next):
		if m.transport.Next() {
			m.setStatus(m.transport.State().String())
		}
	case key.Matches(msg, m.keys.previous):
		if m.transport.Previous() {
			m.setStatus(m.transport.State().String())
		}
	case key.Matches(msg, m.keys.cancel):
		if m.visualizer.Cancel() {
			m.setStatus("cancelling...")
		}
	case key.Matches(msg, m.keys.algorithm):
		m.algorithm = cycle(tasks.Algorithms(), m.algorithm)
		m.setStatus("algorithm: " + m.algorithm.Label())
	case key.Matches(msg, m.keys.criterion):
		m.criterion = cycle(tasks.Criteria(), m.criterion)
		m.setStatus("criterion: " + m.criterion.Label())
	default:
		return nil, false
	}
	return nil, true
}

func (m *Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closePrompt()
		return m, nil
	case tea.KeyEnter:
		kind, value := m.promptKind, strings.TrimSpace(m.prompt.Value())
		m.closePrompt()
		if value == "" {
			return m, nil
		}
		switch kind {
		case promptPath:
			if song, ok := m.selectedSong(); ok {
				if title, ok := m.visualizer.Resolve(value); ok {
					value = title
				}
				m.startPathFind(song.Title, value)
			}
		case promptAddToPlaylist:
			if song, ok := m.selectedSong(); ok {
				return m, m.addToPlaylist(value, song)
			}
		case promptNewPlaylist:
			return m, m.createPlaylist(value)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) openPrompt(kind promptKind, placeholder string) tea.Cmd {
	m.promptKind = kind
	m.prompt.Placeholder = placeholder
	m.prompt.SetValue("")
	return m.prompt.Focus()
}

func (m *Model) closePrompt() {
	m.promptKind = promptNone
	m.prompt.Blur()
}

func (m *Model) startSort() {
	if m.running {
		m.setStatus("a visualization is already running")
		return
	}
	songs := slices.Clone(m.songs)
	started, err := m.visualizer.StartSort(m.algorithm.String(), m.criterion.String(), songs)
	if !m.started(started, err) {
		return
	}
	m.run = runView{op: tasks.OpSort, algorithm: m.algorithm, criterion: m.criterion, songs: songs}
	m.view = SortView
	m.setStatus(fmt.Sprintf("%s by %s", m.algorithm.Label(), m.criterion.Label()))
}

func (m *Model) startRecommend(title string) {
	if m.running {
		m.setStatus("a visualization is already running")
		return
	}
	started, err := m.visualizer.StartRecommend(title, m.recommendCount)
	if !m.started(started, err) {
		return
	}
	m.run = runView{op: tasks.OpRecommend, origin: title}
	m.view = GraphView
	m.setStatus("recommending from " + title)
}

func (m *Model) startPathFind(from, to string) {
	if m.running {
		m.setStatus("a visualization is already running")
		return
	}
	started, err := m.visualizer.StartPathFind(from, to)
	if !m.started(started, err) {
		return
	}
	m.run = runView{op: tasks.OpPathFind, origin: from, target: to}
	m.view = GraphView
	m.setStatus(fmt.Sprintf("finding a path from %s to %s", from, to))
}

func (m *Model) started(started bool, err error) bool {
	switch {
	case err != nil:
		m.fail(err)
		return false
	case !started:
		m.setStatus("a visualization is already running")
		return false
	}
	m.err = nil
	m.running = true
	return true
}

func (m *Model) play(queue []models.Song, index int) {
	if err := m.transport.Play(queue, index); err != nil {
		m.fail(err)
		return
	}
	m.setStatus(m.transport.State().String())
}

func (m *Model) applyMood() tea.Cmd {
	m.songs = models.FilterByMood(m.all, m.mood)
	m.songList.Title = fmt.Sprintf("Library (%s, %d songs)", m.mood, len(m.songs))
	return m.songList.SetItems(songItems(m.songs))
}

func (m *Model) selectedSong() (models.Song, bool) {
	it, ok := m.songList.SelectedItem().(songItem)
	if !ok {
		return models.Song{}, false
	}
	return it.song, true
}

func (m *Model) findPlaylist(name string) *models.Playlist {
	for _, p := range m.playlists {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

func (m *Model) busy() bool { return m.running || m.visualizer.Busy() }

func (m *Model) filtering() bool {
	switch m.view {
	case LibraryView:
		return m.songList.FilterState() == list.Filtering
	case PlaylistListView:
		return m.playlistList.FilterState() == list.Filtering
	case PlaylistSongsView:
		return m.memberList.FilterState() == list.Filtering
	}
	return false
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.err = nil
}

func (m *Model) fail(err error) {
	m.logger.Error("action failed", "error", err)
	m.err = err
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case LibraryView:
		m.songList, cmd = m.songList.Update(msg)
	case PlaylistListView:
		m.playlistList, cmd = m.playlistList.Update(msg)
	case PlaylistSongsView:
		m.memberList, cmd = m.memberList.Update(msg)
	}
	return m, cmd
}

// waitForEvent turns one receive from the visualizer's channel into one message.
// Update re-arms it after every event, so events are applied one at a time in order.
func (m *Model) waitForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e, ok := <-m.events:
			if !ok {
				return eventsClosedMsg()
			}
			return runEventMsg(e)
		case <-m.ctx.Done():
			return eventsClosedMsg()
		}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return tickMsg() })
}

func (m *Model) loadSongs() tea.Cmd {
	return func() tea.Msg {
		songs, err := m.library.Songs(models.MoodAll)
		return songsLoadedMsg(songs, err)
	}
}

func (m *Model) loadPlaylists() tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.library.Playlists()
		return playlistsLoadedMsg(playlists, err)
	}
}

func (m *Model) removeSong(song models.Song) tea.Cmd {
	return func() tea.Msg {
		err := m.library.RemoveSong(song)
		return actionDoneMsg("removed "+song.Title, err, true)
	}
}

func (m *Model) createPlaylist(name string) tea.Cmd {
	return func() tea.Msg {
		err := m.library.CreatePlaylist(name)
		return actionDoneMsg("created playlist "+name, err, false)
	}
}

func (m *Model) deletePlaylist(name string) tea.Cmd {
	return func() tea.Msg {
		err := m.library.DeletePlaylist(name)
		return actionDoneMsg("deleted playlist "+name, err, false)
	}
}

func (m *Model) addToPlaylist(name string, song models.Song) tea.Cmd {
	return func() tea.Msg {
		added, err := m.library.AddToPlaylist(name, song)
		status := fmt.Sprintf("added %s to %s", song.Title, name)
		if err == nil && !added {
			status = fmt.Sprintf("%s already exists in %s", song.Title, name)
		}
		return actionDoneMsg(status, err, false)
	}
}

func (m *Model) removeFromPlaylist(name string, song models.Song) tea.Cmd {
	return func() tea.Msg {
		removed, err := m.library.RemoveFromPlaylist(name, song)
		status := fmt.Sprintf("removed %s from %s", song.Title, name)
		if err == nil && !removed {
			err = fmt.Errorf("%w: %s is not in %s", shared.ErrSongNotFound, song.Title, name)
		}
		return actionDoneMsg(status, err, false)
	}
}

func summarize(r tasks.Result) string {
	switch r.Op {
	case tasks.OpSort:
		return fmt.Sprintf("sort %s: %d comparisons, %d swaps", r.Status, r.Comparisons, r.Swaps)
	case tasks.OpRecommend:
		return fmt.Sprintf("recommend %s: %d songs", r.Status, len(r.Recommendations))
	default:
		if r.Found {
			return fmt.Sprintf("path %s: %d hops", r.Status, len(r.Path)-1)
		}
		return fmt.Sprintf("path %s: no path", r.Status)
	}
}

func nextMood(current models.Mood) models.Mood {
	return cycle(append([]models.Mood{models.MoodAll}, models.Moods()...), current)
}

// cycle returns the element after current in values, wrapping around.
func cycle[T comparable](values []T, current T) T {
	i := slices.Index(values, current)
	return values[(i+1)%len(values)]
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case LibraryView:
		body = m.renderList(m.songList, m.keys.enter, m.keys.sort, m.keys.recommend, m.keys.path, m.keys.mood,
			m.keys.add, m.keys.remove, m.keys.playlists, m.keys.quit)
	case SortView:
		body = m.renderSort()
	case GraphView:
		body = m.renderGraph()
	case PlaylistListView:
		body = m.renderList(m.playlistList, m.keys.enter, m.keys.create, m.keys.remove, m.keys.back, m.keys.quit)
	case PlaylistSongsView:
		body = m.renderList(m.memberList, m.keys.enter, m.keys.remove, m.keys.back, m.keys.quit)
	}
	return fmt.Sprintf("%s\n%s", body, m.renderFooter())
}

func (m *Model) renderList(l list.Model, bindings ...key.Binding) string {
	return fmt.Sprintf("%s\n\n%s", l.View(), m.help.ShortHelpView(bindings))
}

func (m *Model) renderSort() string {
	var b strings.Builder
	b.WriteString(styles.title.Render(fmt.Sprintf("%s by %s", m.run.algorithm.Label(), m.run.criterion.Label())))
	b.WriteString("\n")

	for i, s := range m.run.songs {
		line := fmt.Sprintf("%3d. %-32s %8s", i+1, s.Title, m.run.criterion.Value(s))
		if m.running && slices.Contains(m.run.positions, i) {
			switch m.run.kind {
			case tasks.StepCompare:
				line = styles.compare.Render(line)
			case tasks.StepSwap:
				line = styles.swap.Render(line)
			}
		}
		b.WriteString(line + "\n")
	}

	fmt.Fprintf(&b, "\ncomparisons: %d  swaps: %d  steps: %d\n", m.run.comparisons, m.run.swaps, m.run.steps)
	b.WriteString(m.renderRunState())
	b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{m.keys.sort, m.keys.algorithm, m.keys.criterion,
		m.keys.cancel, m.keys.back, m.keys.quit}))
	return b.String()
}

func (m *Model) renderGraph() string {
	var b strings.Builder
	switch m.run.op {
	case tasks.OpRecommend:
		b.WriteString(styles.title.Render("Recommendations for " + m.run.origin))
	default:
		b.WriteString(styles.title.Render(fmt.Sprintf("Path from %s to %s", m.run.origin, m.run.target)))
	}
	b.WriteString("\n")

	for i, title := range m.run.visited {
		line := fmt.Sprintf("%3d. %s", i+1, title)
		switch {
		case m.running && i == len(m.run.visited)-1:
			line = styles.visit.Render(line)
		case slices.Contains(m.run.path, title) && m.run.found:
			line = styles.path.Render(line)
		}
		b.WriteString(line + "\n")
	}

	if r := m.run.result; r != nil {
		b.WriteString("\n")
		switch r.Op {
		case tasks.OpRecommend:
			for _, s := range r.Recommendations {
				fmt.Fprintf(&b, "  • %s - %s\n", s.Artist, s.Title)
			}
		case tasks.OpPathFind:
			if r.Found {
				b.WriteString(styles.ok.Render(strings.Join(r.Path, " → ")) + "\n")
			} else {
				b.WriteString(styles.warn.Render("no path") + "\n")
			}
		}
	}

	b.WriteString(m.renderRunState())
	b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{m.keys.cancel, m.keys.back, m.keys.quit}))
	return b.String()
}

func (m *Model) renderRunState() string {
	switch {
	case m.running:
		return styles.warn.Render("running...") + "\n"
	case m.run.result == nil:
		return ""
	case m.run.result.Status == tasks.StatusCompleted:
		return styles.ok.Render(m.run.result.Status.String()) + "\n"
	default:
		return styles.err.Render(m.run.result.Status.String()) + "\n"
	}
}

func (m *Model) renderFooter() string {
	var b strings.Builder
	if m.promptKind != promptNone {
		b.WriteString(m.prompt.View() + "\n")
	}

	state := m.transport.State()
	line := state.String()
	if state.Loaded() {
		const width = 20
		filled := int(state.Progress() * width)
		line = fmt.Sprintf("%s %s", styles.bar.Render(strings.Repeat("█", filled)+strings.Repeat("░", width-filled)), line)
	}
	b.WriteString(line + "\n")

	switch {
	case m.err != nil:
		b.WriteString(styles.err.Render(m.err.Error()))
	case m.status != "":
		b.WriteString(styles.help.Render(m.status))
	}
	return b.String()
}
