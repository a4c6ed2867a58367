package tasks

import (
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/vibetune/internal/graph"
	"github.com/desertthunder/vibetune/internal/models"
	"github.com/desertthunder/vibetune/internal/shared"
)

// Visualizer is the single entry point observers use: one sort runner and one graph runner behind a shared
// gate, plus the working set of songs they operate on.
type Visualizer struct {
	logger *log.Logger
	gate   *Gate
	sorts  *SortRunner
	graphs *GraphRunner

	mu    sync.RWMutex
	songs []models.Song
}

// NewVisualizer creates an idle visualizer. opts.Gate is ignored; the visualizer owns its gate.
func NewVisualizer(opts Options) *Visualizer {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	opts.Gate = NewGate()
	return &Visualizer{
		logger: opts.Logger,
		gate:   opts.Gate,
		sorts:  NewSortRunner(opts),
		graphs: NewGraphRunner(opts, graph.New(opts.Logger)),
	}
}

// SetLibrary replaces the working set and rebuilds the similarity graph from scratch.
// It is refused with [shared.ErrBusy] while a run is in flight.
func (v *Visualizer) SetLibrary(songs []models.Song) error {
	if v.Busy() {
		return shared.ErrBusy
	}
	g := graph.Build(songs, v.logger)

	v.mu.Lock()
	v.songs = slices.Clone(songs)
	v.mu.Unlock()
	v.graphs.SetGraph(g)
	return nil
}

// Songs returns a copy of the working set.
func (v *Visualizer) Songs() []models.Song {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.songs)
}

// Graph returns the similarity graph built by the last [Visualizer.SetLibrary].
func (v *Visualizer) Graph() *graph.Graph { return v.graphs.Graph() }

// Busy reports whether any run is in flight. The gate is released just before the run's [Result] is
// handed to the sink, so Busy can report false while that delivery is still under way; observers that
// need the outcome should wait for the Result event rather than poll Busy.
func (v *Visualizer) Busy() bool { return v.gate.Busy() }

// StartSort sorts songs, or the working set when songs is nil.
func (v *Visualizer) StartSort(algorithm, criterion string, songs []models.Song) (bool, error) {
	if songs == nil {
		songs = v.Songs()
	}
	return v.sorts.Start(algorithm, criterion, songs)
}

// StartRecommend starts a recommendation run from title. Only exact and case-insensitive matches count;
// an unknown title completes with no recommendations.
func (v *Visualizer) StartRecommend(title string, count int) (bool, error) {
	return v.graphs.StartRecommend(v.resolve(title), count)
}

// StartPathFind starts a path-find run between two titles, matched like [Visualizer.StartRecommend].
func (v *Visualizer) StartPathFind(from, to string) (bool, error) {
	return v.graphs.StartPathFind(v.resolve(from), v.resolve(to))
}

// Cancel stops whichever run is in flight. It reports whether there was one.
func (v *Visualizer) Cancel() bool {
	sorted := v.sorts.Cancel()
	traversed := v.graphs.Cancel()
	return sorted || traversed
}

// Wait blocks until both runners are idle.
func (v *Visualizer) Wait() {
	v.sorts.Wait()
	v.graphs.Wait()
}

// Resolve maps user input to a song title, tolerating typos. Observers call it before starting a run
// and show the result; the runs themselves only match exactly.
func (v *Visualizer) Resolve(query string) (string, bool) {
	g := v.Graph()
	if g == nil {
		return "", false
	}
	title, ok := g.Resolve(query)
	if ok && title != strings.TrimSpace(query) {
		v.logger.Debug("title resolved", "query", query, "title", title)
	}
	return title, ok
}

func (v *Visualizer) resolve(title string) string {
	if g := v.Graph(); g != nil {
		if found, ok := g.Lookup(title); ok {
			return found
		}
	}
	return title
}
