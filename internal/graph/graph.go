package graph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/vibetune/internal/models"
)

// ErrInconsistent reports an edge pointing at a title that has no node.
var ErrInconsistent = fmt.Errorf("graph inconsistent")

// resolveThreshold is the minimum Jaro-Winkler score accepted by [Graph.Resolve].
const resolveThreshold = 0.85

// VisitFunc observes one processed node. path is a snapshot: the visitation order so far for BFS, the
// path from the start for DFS.
type VisitFunc func(title string, path []string) error

// Graph is an undirected adjacency-list graph of songs.
type Graph struct {
	logger    *log.Logger
	nodes     map[string]models.Song
	adjacency map[string][]models.Song
	order     []string
	edges     int
}

// New creates an empty graph. logger may be nil.
func New(logger *log.Logger) *Graph {
	if logger == nil {
		logger = log.Default()
	}
	return &Graph{
		logger:    logger,
		nodes:     make(map[string]models.Song),
		adjacency: make(map[string][]models.Song),
	}
}

// Build creates a graph from songs.
func Build(songs []models.Song, logger *log.Logger) *Graph {
	g := New(logger)
	g.BuildFrom(songs)
	return g
}

// Linked reports whether two songs share an artist or a mood.
func Linked(a, b models.Song) bool {
	return a.Artist == b.Artist || a.Mood == b.Mood
}

// BuildFrom clears the graph and repopulates it from songs with an O(n²) pairwise scan.
//
// Every song becomes a node, isolated or not. A repeated title keeps the first song.
func (g *Graph) BuildFrom(songs []models.Song) {
	g.nodes = make(map[string]models.Song, len(songs))
	g.adjacency = make(map[string][]models.Song, len(songs))
	g.order = make([]string, 0, len(songs))
	g.edges = 0

	for _, s := range songs {
		if _, ok := g.nodes[s.Title]; ok {
			g.logger.Warn("duplicate title ignored in similarity graph", "title", s.Title, "artist", s.Artist)
			continue
		}
		g.nodes[s.Title] = s
		g.adjacency[s.Title] = nil
		g.order = append(g.order, s.Title)
	}

	for i, a := range g.order {
		for _, b := range g.order[i+1:] {
			sa, sb := g.nodes[a], g.nodes[b]
			if !Linked(sa, sb) {
				continue
			}
			g.adjacency[a] = append(g.adjacency[a], sb)
			g.adjacency[b] = append(g.adjacency[b], sa)
			g.edges++
		}
	}

	g.logger.Debug("similarity graph built", "nodes", len(g.order), "edges", g.edges)
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.order) }

// Edges returns the number of undirected edges.
func (g *Graph) Edges() int { return g.edges }

// Has reports whether title is a node.
func (g *Graph) Has(title string) bool {
	_, ok := g.nodes[title]
	return ok
}

// Song returns the song stored under title.
func (g *Graph) Song(title string) (models.Song, bool) {
	s, ok := g.nodes[title]
	return s, ok
}

// Titles returns node titles in build order.
func (g *Graph) Titles() []string {
	return slices.Clone(g.order)
}

// Neighbors returns a copy of the neighbour list of title; false if title is not a node.
func (g *Graph) Neighbors(title string) ([]models.Song, bool) {
	if !g.Has(title) {
		return nil, false
	}
	return slices.Clone(g.adjacency[title]), true
}

// Adjacency returns a copy of the full mapping from title to neighbour titles.
func (g *Graph) Adjacency() map[string][]string {
	out := make(map[string][]string, len(g.adjacency))
	for title, ns := range g.adjacency {
		names := make([]string, len(ns))
		for i, n := range ns {
			names[i] = n.Title
		}
		out[title] = names
	}
	return out
}

// Lookup finds the node titled query, ignoring case and surrounding space.
func (g *Graph) Lookup(query string) (string, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", false
	}
	if g.Has(query) {
		return query, true
	}
	for _, title := range g.order {
		if strings.EqualFold(title, query) {
			return title, true
		}
	}
	return "", false
}

// Resolve maps user input to a node title: a [Graph.Lookup] hit first, then the closest
// Jaro-Winkler match scoring at least 0.85. Traversals never call it; observers do, before
// starting a run, so the user sees which song was picked.
func (g *Graph) Resolve(query string) (string, bool) {
	if title, ok := g.Lookup(query); ok {
		return title, true
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return "", false
	}

	var (
		best      string
		bestScore float64
		metric    = metrics.NewJaroWinkler()
		needle    = strings.ToLower(query)
	)
	for _, title := range g.order {
		score := strutil.Similarity(needle, strings.ToLower(title), metric)
		if score >= resolveThreshold && score > bestScore {
			best, bestScore = title, score
		}
	}
	return best, best != ""
}

// neighbors returns the adjacency of title after checking every neighbour is a node.
func (g *Graph) neighbors(title string) ([]models.Song, error) {
	ns := g.adjacency[title]
	for _, n := range ns {
		if !g.Has(n.Title) {
			return nil, fmt.Errorf("%w: %q links to missing node %q", ErrInconsistent, title, n.Title)
		}
	}
	return ns, nil
}
