package graph

import (
	"slices"
	"strings"

	"github.com/desertthunder/vibetune/internal/models"
)

// Recommend returns up to count songs nearest to start, breadth first.
func (g *Graph) Recommend(start string, count int) []models.Song {
	out, _ := g.RecommendFunc(start, count, nil)
	return out
}

// RecommendFunc runs the breadth-first recommendation, calling visit once per frontier pop.
//
// Results are distinct, never include start, and follow visitation order with ties broken by neighbour
// list order. An unknown start or a non-positive count yields an empty result. When visit returns an
// error the songs collected so far are returned with it.
func (g *Graph) RecommendFunc(start string, count int, visit VisitFunc) ([]models.Song, error) {
	result := []models.Song{}
	if count <= 0 || !g.Has(start) {
		return result, nil
	}

	visited := map[string]bool{start: true}
	queue := []string{start}
	var order []string

	for len(queue) > 0 && len(result) < count {
		current := queue[0]
		queue = queue[1:]
		order = append(order, current)

		if visit != nil {
			if err := visit(current, slices.Clone(order)); err != nil {
				return result, err
			}
		}

		ns, err := g.neighbors(current)
		if err != nil {
			return result, err
		}
		for _, n := range ns {
			if visited[n.Title] {
				continue
			}
			visited[n.Title] = true
			queue = append(queue, n.Title)
			if len(result) < count {
				result = append(result, n)
			}
		}
	}

	return result, nil
}

// FindPath returns the first path from start to end found by depth-first search.
func (g *Graph) FindPath(start, end string) ([]string, bool) {
	path, found, _ := g.FindPathFunc(start, end, nil)
	return path, found
}

type frame struct {
	title string
	path  []string
}

// FindPathFunc runs the depth-first path search with an explicit stack, calling visit once per processed
// pop with the path from start to the popped node.
//
// Neighbours are pushed reverse-sorted by title so the lexically smallest is explored first, which makes
// the result reproducible. No node is processed twice; stale stack entries for visited nodes are dropped.
// When visit returns an error the search stops and reports not found.
func (g *Graph) FindPathFunc(start, end string, visit VisitFunc) ([]string, bool, error) {
	if !g.Has(start) || !g.Has(end) {
		return nil, false, nil
	}

	visited := make(map[string]bool)
	stack := []frame{{title: start, path: []string{start}}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[top.title] {
			continue
		}

		if visit != nil {
			if err := visit(top.title, slices.Clone(top.path)); err != nil {
				return nil, false, err
			}
		}
		visited[top.title] = true

		if top.title == end {
			return top.path, true, nil
		}

		ns, err := g.neighbors(top.title)
		if err != nil {
			return nil, false, err
		}

		next := make([]string, 0, len(ns))
		for _, n := range ns {
			if !visited[n.Title] {
				next = append(next, n.Title)
			}
		}
		slices.SortFunc(next, func(a, b string) int { return strings.Compare(b, a) })

		for _, title := range next {
			path := make([]string, len(top.path), len(top.path)+1)
			copy(path, top.path)
			stack = append(stack, frame{title: title, path: append(path, title)})
		}
	}

	return nil, false, nil
}
