package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/vibetune/internal/formatter"
	"github.com/desertthunder/vibetune/internal/shared"
	"github.com/urfave/cli/v3"
)

func playlistName(cmd *cli.Command) (string, error) {
	name := cmd.StringArg("name")
	if name == "" {
		return "", fmt.Errorf("%w: playlist name", shared.ErrMissingArgument)
	}
	return name, nil
}

// PlaylistList prints every playlist with its size and running time.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	lib, err := r.Library()
	if err != nil {
		return err
	}
	exports, err := lib.Exports()
	if err != nil {
		return fmt.Errorf("failed to list playlists: %w", err)
	}

	if cmd.Bool("json") {
		records := make([]formatter.PlaylistRecord, 0, len(exports))
		for _, e := range exports {
			rec := formatter.PlaylistRecord{Name: e.Name, Songs: []formatter.SongRecord{}}
			for _, s := range e.Songs {
				rec.Songs = append(rec.Songs, formatter.NewSongRecord(s))
			}
			records = append(records, rec)
		}
		return r.writeJSON(records, true)
	}

	if len(exports) == 0 {
		r.writePlain("No playlists\n")
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("Playlists (%d)", len(exports)))
	for _, e := range exports {
		total := 0
		for _, s := range e.Songs {
			total += s.Duration
		}
		r.writePlain("%-30s %3d songs  %s\n", e.Name, len(e.Songs), shared.FormatDuration(total))
	}
	return nil
}

// PlaylistCreate creates an empty playlist.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	name, err := playlistName(cmd)
	if err != nil {
		return err
	}
	lib, err := r.Library()
	if err != nil {
		return err
	}
	if err := lib.CreatePlaylist(name); err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}

	r.writePlain("✓ Created playlist %s\n", name)
	return nil
}

// PlaylistDelete deletes a playlist; its songs stay in the library.
func (r *Runner) PlaylistDelete(ctx context.Context, cmd *cli.Command) error {
	name, err := playlistName(cmd)
	if err != nil {
		return err
	}
	lib, err := r.Library()
	if err != nil {
		return err
	}
	if err := lib.DeletePlaylist(name); err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	r.writePlain("✓ Deleted playlist %s\n", name)
	return nil
}

// PlaylistShow renders one playlist.
func (r *Runner) PlaylistShow(ctx context.Context, cmd *cli.Command) error {
	name, err := playlistName(cmd)
	if err != nil {
		return err
	}
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}
	lib, err := r.Library()
	if err != nil {
		return err
	}
	p, err := lib.Playlist(name)
	if err != nil {
		return err
	}

	return r.render(formatter.Export{Name: p.Name(), Songs: p.Songs()}, format)
}

// PlaylistAdd appends a library song to a playlist.
func (r *Runner) PlaylistAdd(ctx context.Context, cmd *cli.Command) error {
	name, err := playlistName(cmd)
	if err != nil {
		return err
	}
	lib, err := r.Library()
	if err != nil {
		return err
	}
	song, err := lib.FindSong(cmd.String("title"), cmd.String("artist"))
	if err != nil {
		return err
	}

	added, err := lib.AddToPlaylist(name, song)
	if err != nil {
		return fmt.Errorf("failed to add to playlist: %w", err)
	}
	if !added {
		r.writePlain("%s already exists in %s\n", song.Title, name)
		return nil
	}
	r.writePlain("✓ Added %s to %s\n", song.Title, name)
	return nil
}

// PlaylistRemove drops a song from a playlist.
func (r *Runner) PlaylistRemove(ctx context.Context, cmd *cli.Command) error {
	name, err := playlistName(cmd)
	if err != nil {
		return err
	}
	lib, err := r.Library()
	if err != nil {
		return err
	}
	song, err := lib.FindSong(cmd.String("title"), cmd.String("artist"))
	if err != nil {
		return err
	}

	removed, err := lib.RemoveFromPlaylist(name, song)
	if err != nil {
		return fmt.Errorf("failed to remove from playlist: %w", err)
	}
	if !removed {
		return fmt.Errorf("%w: %s is not in %s", shared.ErrSongNotFound, song.Title, name)
	}
	r.writePlain("✓ Removed %s from %s\n", song.Title, name)
	return nil
}

// PlaylistExport writes one playlist to --output or stdout.
func (r *Runner) PlaylistExport(ctx context.Context, cmd *cli.Command) error {
	name, err := playlistName(cmd)
	if err != nil {
		return err
	}
	lib, err := r.Library()
	if err != nil {
		return err
	}
	p, err := lib.Playlist(name)
	if err != nil {
		return err
	}

	return r.export(cmd, formatter.Export{Name: p.Name(), Songs: p.Songs()})
}

// PlaylistImport merges the playlists of a playlists JSON file into the library.
func (r *Runner) PlaylistImport(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}
	lib, err := r.Library()
	if err != nil {
		return err
	}
	n, err := lib.ImportPlaylists(path)
	if err != nil {
		return fmt.Errorf("failed to import playlists: %w", err)
	}

	r.writePlain("✓ Imported %d new playlists from %s\n", n, path)
	return nil
}
