// Package graph implements the song similarity graph.
//
// # Model
//
// Nodes are keyed by song title (titles are assumed unique within a working set). Two songs are linked when
// they share an artist or a mood. Edges are undirected and stored symmetrically in an adjacency list; each
// node's neighbour list keeps the order in which the neighbours appeared in the build input.
//
// The graph is rebuilt wholesale with [Graph.BuildFrom] whenever the library changes. There is no
// incremental edge maintenance.
//
// # Traversals
//
//   - [Graph.Recommend] : breadth-first collection of the nearest neighbours of a song
//   - [Graph.FindPath] : depth-first search with an explicit stack between two songs
//
// Both have instrumented variants taking a [VisitFunc], called once per processed node. Returning an
// error from the VisitFunc stops the traversal; the runners in package tasks use this for step events
// and cancellation.
//
// A Graph is not safe for concurrent mutation. Readers may share a built graph.
package graph
