package tasks

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/desertthunder/vibetune/internal/graph"
	"github.com/desertthunder/vibetune/internal/shared"
	"golang.org/x/time/rate"
)

// GraphRunner animates recommendation (BFS) and path-find (DFS) traversals of the similarity graph.
type GraphRunner struct {
	runner

	gmu   sync.RWMutex
	graph *graph.Graph
}

// NewGraphRunner creates an idle graph runner over g, which may be nil until [GraphRunner.SetGraph].
func NewGraphRunner(opts Options, g *graph.Graph) *GraphRunner {
	return &GraphRunner{runner: newRunner(opts), graph: g}
}

// SetGraph swaps the traversed graph. A run already in flight keeps the graph it started with.
func (r *GraphRunner) SetGraph(g *graph.Graph) {
	r.gmu.Lock()
	defer r.gmu.Unlock()
	r.graph = g
}

// Graph returns the current graph.
func (r *GraphRunner) Graph() *graph.Graph {
	r.gmu.RLock()
	defer r.gmu.RUnlock()
	return r.graph
}

func (r *GraphRunner) loaded() (*graph.Graph, error) {
	g := r.Graph()
	if g == nil || g.Len() == 0 {
		return nil, fmt.Errorf("%w: similarity graph is empty", shared.ErrEmptyInput)
	}
	return g, nil
}

// StartRecommend collects up to count songs nearest to title, emitting a visit step per processed node.
//
// An unknown title completes with no recommendations. A cancelled run reports what it collected so far.
func (r *GraphRunner) StartRecommend(title string, count int) (bool, error) {
	if strings.TrimSpace(title) == "" {
		return false, fmt.Errorf("%w: song title is required", shared.ErrInvalidRun)
	}
	if count <= 0 {
		return false, fmt.Errorf("%w: count must be positive, got %d", shared.ErrInvalidRun, count)
	}
	g, err := r.loaded()
	if err != nil {
		return false, err
	}

	rs, ok := r.begin(OpRecommend)
	if !ok {
		r.logger.Debug("recommend ignored, runner busy", "title", title)
		return false, nil
	}

	r.launch(rs, func(rs *RunState, limiter *rate.Limiter) Result {
		recs, err := g.RecommendFunc(title, count, r.visitor(rs, limiter))
		res := Result{Status: StatusCompleted, Recommendations: recs}
		res.Status, res.Err = traversalStatus(err)
		return res
	})
	return true, nil
}

// StartPathFind searches for a path from one title to another, emitting a visit step per processed node and,
// on completion, a final path step. A cancelled search reports not found.
func (r *GraphRunner) StartPathFind(from, to string) (bool, error) {
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		return false, fmt.Errorf("%w: both endpoint titles are required", shared.ErrInvalidRun)
	}
	g, err := r.loaded()
	if err != nil {
		return false, err
	}

	rs, ok := r.begin(OpPathFind)
	if !ok {
		r.logger.Debug("path-find ignored, runner busy", "from", from, "to", to)
		return false, nil
	}

	r.launch(rs, func(rs *RunState, limiter *rate.Limiter) Result {
		path, found, err := g.FindPathFunc(from, to, r.visitor(rs, limiter))
		res := Result{Path: path, Found: found}
		res.Status, res.Err = traversalStatus(err)
		if res.Status != StatusCompleted {
			res.Path, res.Found = nil, false
		} else {
			r.sink.OnStep(Step{RunID: rs.ID, Kind: StepPath, Path: res.Path, Found: res.Found})
		}
		return res
	})
	return true, nil
}

// visitor adapts the runner to [graph.VisitFunc]: check for cancellation, emit, then pace.
func (r *GraphRunner) visitor(rs *RunState, limiter *rate.Limiter) graph.VisitFunc {
	return func(title string, path []string) error {
		if !rs.Active() {
			return errCancelled
		}
		rs.steps++
		r.sink.OnStep(Step{RunID: rs.ID, Kind: StepVisit, Titles: []string{title}, Path: path})
		_ = limiter.Wait(rs.ctx)
		return nil
	}
}

func traversalStatus(err error) (Status, error) {
	switch {
	case err == nil:
		return StatusCompleted, nil
	case errors.Is(err, errCancelled):
		return StatusCancelled, nil
	default:
		return StatusFailed, fmt.Errorf("%w: %v", shared.ErrRunFault, err)
	}
}
