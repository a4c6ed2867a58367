package sequence

import (
	"testing"

	"github.com/desertthunder/vibetune/internal/models"
	"github.com/google/go-cmp/cmp"
)

func songs(titles ...string) []models.Song {
	out := make([]models.Song, len(titles))
	for i, t := range titles {
		out[i] = models.Song{Title: t, Artist: "artist " + t, Mood: models.MoodCalm}
	}
	return out
}

func titles(ss []models.Song) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = s.Title
	}
	return out
}

func TestList(t *testing.T) {
	t.Run("Append preserves order", func(t *testing.T) {
		l := New()
		for _, s := range songs("a", "b", "c") {
			l.Append(s)
		}

		if diff := cmp.Diff([]string{"a", "b", "c"}, titles(l.Slice())); diff != "" {
			t.Errorf("Slice() mismatch (-want +got):\n%s", diff)
		}
		if l.Len() != 3 || l.count() != 3 {
			t.Errorf("size invariant broken: Len()=%d count=%d", l.Len(), l.count())
		}
	})

	t.Run("Get", func(t *testing.T) {
		l := New(songs("a", "b", "c")...)

		if s, ok := l.Get(1); !ok || s.Title != "b" {
			t.Errorf("Get(1) = %v, %v", s, ok)
		}
		for _, i := range []int{-1, 3, 10} {
			if _, ok := l.Get(i); ok {
				t.Errorf("Get(%d) should report not found", i)
			}
		}
		if _, ok := New().Get(0); ok {
			t.Error("Get on empty list should report not found")
		}
	})

	t.Run("Swap exchanges payloads only", func(t *testing.T) {
		l := New(songs("a", "b", "c", "d")...)
		head := l.Front()

		if !l.Swap(3, 0) {
			t.Fatal("Swap(3, 0) failed")
		}
		if l.Front() != head {
			t.Error("head node should be stable across swaps")
		}
		if diff := cmp.Diff([]string{"d", "b", "c", "a"}, titles(l.Slice())); diff != "" {
			t.Errorf("after swap (-want +got):\n%s", diff)
		}
		if l.Swap(0, 4) || l.Swap(-1, 2) {
			t.Error("out of range swaps should fail")
		}
		if !l.Swap(2, 2) {
			t.Error("self swap of a valid index should succeed")
		}
		if l.count() != l.Len() {
			t.Error("size invariant broken after swaps")
		}
	})

	t.Run("Set", func(t *testing.T) {
		l := New(songs("a", "b")...)
		if !l.Set(1, songs("z")[0]) {
			t.Fatal("Set(1) failed")
		}
		if l.Set(2, songs("y")[0]) {
			t.Error("Set out of range should fail")
		}
		if diff := cmp.Diff([]string{"a", "z"}, titles(l.Slice())); diff != "" {
			t.Errorf("after set (-want +got):\n%s", diff)
		}
	})

	t.Run("Slice is a snapshot", func(t *testing.T) {
		l := New(songs("a", "b")...)
		snap := l.Slice()
		l.Swap(0, 1)
		if snap[0].Title != "a" {
			t.Error("snapshot should not observe later mutation")
		}
		if diff := cmp.Diff(titles(l.Slice()), titles(l.Slice())); diff != "" {
			t.Error("Slice() should be restartable")
		}
	})

	t.Run("All", func(t *testing.T) {
		l := New(songs("a", "b", "c")...)
		var got []string
		for i, s := range l.All() {
			if i == 2 {
				break
			}
			got = append(got, s.Title)
		}
		if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
			t.Errorf("All() early exit (-want +got):\n%s", diff)
		}
	})

	t.Run("Find and IndexOf", func(t *testing.T) {
		l := New(songs("a", "b", "c")...)
		i, n := l.Find(func(s models.Song) bool { return s.Title == "c" })
		if i != 2 || n == nil || n.Song().Title != "c" || n.Next() != nil {
			t.Errorf("Find() = %d, %v", i, n)
		}
		if got := l.IndexOf(models.SongKey{Title: "b", Artist: "artist b"}); got != 1 {
			t.Errorf("IndexOf() = %d, want 1", got)
		}
		if got := l.IndexOf(models.SongKey{Title: "b", Artist: "someone else"}); got != -1 {
			t.Errorf("IndexOf() with different artist = %d, want -1", got)
		}
	})
}
