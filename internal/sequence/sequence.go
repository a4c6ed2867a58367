// Package sequence implements the singly-linked song list used as the mutable subject of in-place sorts.
//
// A [List] owns its [Node] chain. Nodes have a single forward link; traversal always starts at the head.
// In-place algorithms exchange node payloads ([List.Swap], [List.SwapNodes]) rather than relinking, so the
// head stays stable and no next pointer is ever rewritten after insertion.
//
// A List is not safe for concurrent use. While a visualization owns a list, nothing else may touch it.
package sequence

import (
	"iter"

	"github.com/desertthunder/vibetune/internal/models"
)

// Node wraps one song and links to its successor.
type Node struct {
	song models.Song
	next *Node
}

// Song returns the node's payload.
func (n *Node) Song() models.Song { return n.song }

// Next returns the successor, or nil at the tail.
func (n *Node) Next() *Node { return n.next }

// List is an ordered chain of nodes with a cached size.
//
// Invariant: size equals the number of nodes reachable from head. The tail pointer makes
// [List.Append] O(1).
type List struct {
	head *Node
	tail *Node
	size int
}

// New builds a list holding songs in order.
func New(songs ...models.Song) *List {
	l := &List{}
	for _, s := range songs {
		l.Append(s)
	}
	return l
}

// Len returns the number of songs.
func (l *List) Len() int { return l.size }

// Front returns the head node, or nil when empty.
func (l *List) Front() *Node { return l.head }

// Append inserts song at the tail, preserving prior order.
func (l *List) Append(song models.Song) {
	n := &Node{song: song}
	if l.head == nil {
		l.head = n
	} else {
		l.tail.next = n
	}
	l.tail = n
	l.size++
}

// node walks to position i.
func (l *List) node(i int) *Node {
	if i < 0 || i >= l.size {
		return nil
	}
	n := l.head
	for ; i > 0; i-- {
		n = n.next
	}
	return n
}

// Get returns the song at position i; false when i is outside [0, Len()).
func (l *List) Get(i int) (models.Song, bool) {
	n := l.node(i)
	if n == nil {
		return models.Song{}, false
	}
	return n.song, true
}

// Set replaces the payload at position i.
func (l *List) Set(i int, song models.Song) bool {
	n := l.node(i)
	if n == nil {
		return false
	}
	n.song = song
	return true
}

// Swap exchanges the payloads at positions i and j.
func (l *List) Swap(i, j int) bool {
	if i == j {
		return l.node(i) != nil
	}
	lo, hi := min(i, j), max(i, j)
	a := l.node(lo)
	if a == nil || hi >= l.size {
		return false
	}
	b := a
	for k := lo; k < hi; k++ {
		b = b.next
	}
	l.SwapNodes(a, b)
	return true
}

// SwapNodes exchanges the payloads of two nodes owned by l.
func (l *List) SwapNodes(a, b *Node) {
	a.song, b.song = b.song, a.song
}

// Slice returns a snapshot of all songs in order. It does not mutate the list and may be called repeatedly.
func (l *List) Slice() []models.Song {
	out := make([]models.Song, 0, l.size)
	for n := l.head; n != nil; n = n.next {
		out = append(out, n.song)
	}
	return out
}

// All yields (index, song) pairs walking forward from the head as the chain exists when iteration starts.
//
// Callers must not mutate the list while ranging over it.
func (l *List) All() iter.Seq2[int, models.Song] {
	return func(yield func(int, models.Song) bool) {
		i := 0
		for n := l.head; n != nil; n = n.next {
			if !yield(i, n.song) {
				return
			}
			i++
		}
	}
}

// Find returns the position and node of the first song matching pred, or (-1, nil).
func (l *List) Find(pred func(models.Song) bool) (int, *Node) {
	i := 0
	for n := l.head; n != nil; n = n.next {
		if pred(n.song) {
			return i, n
		}
		i++
	}
	return -1, nil
}

// IndexOf returns the position of the song with identity k, or -1.
func (l *List) IndexOf(k models.SongKey) int {
	i, _ := l.Find(func(s models.Song) bool { return s.Key() == k })
	return i
}

// count walks the chain; used to check the size invariant.
func (l *List) count() int {
	c := 0
	for n := l.head; n != nil; n = n.next {
		c++
	}
	return c
}
