package library

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/vibetune/internal/formatter"
	"github.com/desertthunder/vibetune/internal/models"
	"github.com/desertthunder/vibetune/internal/shared"
	th "github.com/desertthunder/vibetune/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, playlistsFile string) *Service {
	t.Helper()
	db, err := shared.OpenDatabase(shared.DatabaseConfig{Path: shared.MemoryDatabase})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db, playlistsFile, log.New(io.Discard))
}

func TestService(t *testing.T) {
	t.Run("Seed and filter", func(t *testing.T) {
		svc := newService(t, "")
		n, err := svc.Seed()
		require.NoError(t, err)
		assert.Equal(t, 15, n)

		calm, err := svc.Songs(models.MoodCalm)
		require.NoError(t, err)
		assert.Empty(t, calm)

		happy, err := svc.Songs(models.MoodHappy)
		require.NoError(t, err)
		assert.Len(t, happy, 4)
	})

	t.Run("Add and remove songs", func(t *testing.T) {
		svc := newService(t, "")
		song := th.Song("  Title ", " Artist ", models.MoodCalm, 10)
		require.NoError(t, svc.AddSong(song))
		assert.ErrorIs(t, svc.AddSong(song), shared.ErrDuplicateSong)
		assert.ErrorIs(t, svc.AddSong(models.Song{Title: "x", Mood: models.MoodCalm}), shared.ErrInvalidInput)

		found, err := svc.FindSong("title", "")
		require.NoError(t, err)
		assert.Equal(t, "Artist", found.Artist)

		require.NoError(t, svc.RemoveSong(found))
		_, err = svc.FindSong("title", "")
		assert.ErrorIs(t, err, shared.ErrSongNotFound)
	})

	t.Run("Ambiguous title", func(t *testing.T) {
		svc := newService(t, "")
		require.NoError(t, svc.AddSong(th.Song("Hurt", "Johnny Cash", models.MoodSad, 1)))
		require.NoError(t, svc.AddSong(th.Song("Hurt", "NIN", models.MoodSad, 1)))

		_, err := svc.FindSong("hurt", "")
		assert.ErrorIs(t, err, shared.ErrInvalidArgument)
		song, err := svc.FindSong("hurt", "nin")
		require.NoError(t, err)
		assert.Equal(t, "NIN", song.Artist)
	})

	t.Run("Playlists mirror to file", func(t *testing.T) {
		path := th.TempPath(t, "playlists.json")
		svc := newService(t, path)
		_, err := svc.Seed()
		require.NoError(t, err)

		require.NoError(t, svc.CreatePlaylist("Gym"))
		assert.ErrorIs(t, svc.CreatePlaylist("Gym"), shared.ErrPlaylistExists)

		lib := th.DefaultLibrary()
		added, err := svc.AddToPlaylist("Gym", lib[0])
		require.NoError(t, err)
		assert.True(t, added)
		added, err = svc.AddToPlaylist("Gym", lib[0])
		require.NoError(t, err)
		assert.False(t, added)

		saved := formatter.LoadPlaylistsFile(path, log.New(io.Discard))
		require.Len(t, saved, 1)
		assert.Equal(t, "Gym", saved[0].Name)
		assert.Equal(t, []models.Song{lib[0]}, saved[0].Songs)

		removed, err := svc.RemoveFromPlaylist("Gym", lib[0])
		require.NoError(t, err)
		assert.True(t, removed)

		require.NoError(t, svc.DeletePlaylist("Gym"))
		assert.ErrorIs(t, svc.DeletePlaylist("Gym"), shared.ErrPlaylistNotFound)
		assert.Empty(t, formatter.LoadPlaylistsFile(path, log.New(io.Discard)))
	})

	t.Run("Import playlists", func(t *testing.T) {
		path := th.TempPath(t, "playlists.json")
		newSong := th.Song("Fresh", "Someone", models.MoodCalm, 12)
		require.NoError(t, formatter.SavePlaylistsFile(path, []formatter.Export{
			{Name: "Chill", Songs: []models.Song{newSong, th.DefaultLibrary()[3]}},
		}))

		svc := newService(t, "")
		_, err := svc.Seed()
		require.NoError(t, err)

		created, err := svc.ImportPlaylists(path)
		require.NoError(t, err)
		assert.Equal(t, 1, created)

		again, err := svc.ImportPlaylists(path)
		require.NoError(t, err)
		assert.Zero(t, again)

		p, err := svc.Playlist("Chill")
		require.NoError(t, err)
		assert.Equal(t, []string{"Fresh", "The Sound of Silence"}, th.Titles(p.Songs()))

		all, err := svc.Songs(models.MoodAll)
		require.NoError(t, err)
		assert.Len(t, all, 16)
	})

	t.Run("Import missing or malformed file", func(t *testing.T) {
		svc := newService(t, "")
		n, err := svc.ImportPlaylists(th.TempPath(t, "missing.json"))
		require.NoError(t, err)
		assert.Zero(t, n)

		bad := th.TempPath(t, "bad.json")
		th.MustWriteFile(t, bad, "[1, 2")
		n, err = svc.ImportPlaylists(bad)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("Import songs", func(t *testing.T) {
		svc := newService(t, "")
		n, err := svc.Import(th.Chain())
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		n, err = svc.Import(th.Chain())
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.True(t, errors.Is(svc.AddSong(th.Chain()[0]), shared.ErrDuplicateSong))
	})
}
