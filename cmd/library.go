package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/vibetune/internal/formatter"
	"github.com/desertthunder/vibetune/internal/models"
	"github.com/desertthunder/vibetune/internal/shared"
	"github.com/urfave/cli/v3"
)

// LibraryList prints the library, optionally filtered by mood.
func (r *Runner) LibraryList(ctx context.Context, cmd *cli.Command) error {
	mood, err := models.ParseMood(cmd.String("mood"))
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
	songs, err := lib.Songs(mood)
	if err != nil {
		return fmt.Errorf("failed to list songs: %w", err)
	}

	return r.render(formatter.Export{Name: fmt.Sprintf("Library (%s)", mood), Songs: songs}, format)
}

// LibraryAdd adds one song to the library.
func (r *Runner) LibraryAdd(ctx context.Context, cmd *cli.Command) error {
	mood, err := models.ParseMood(cmd.String("mood"))
	if err != nil {
		return err
	}
	if mood == models.MoodAll {
		return fmt.Errorf("%w: a song needs a concrete mood", shared.ErrInvalidFlag)
	}
	duration, err := shared.ParseDuration(cmd.String("duration"))
	if err != nil {
		return err
	}

	song := models.Song{
		Title:    cmd.String("title"),
		Artist:   cmd.String("artist"),
		Mood:     mood,
		Energy:   int(cmd.Int("energy")),
		Valence:  int(cmd.Int("valence")),
		Duration: duration,
	}

	lib, err := r.Library()
	if err != nil {
		return err
	}
	if err := lib.AddSong(song); err != nil {
		return fmt.Errorf("failed to add song: %w", err)
	}

	r.logger.Info("song added", "title", song.Title, "artist", song.Artist)
	r.writePlain("✓ Added %s\n", strings.TrimSpace(song.Title))
	return nil
}

// LibraryRemove removes a song and drops it from every playlist.
func (r *Runner) LibraryRemove(ctx context.Context, cmd *cli.Command) error {
	lib, err := r.Library()
	if err != nil {
		return err
	}
	song, err := lib.FindSong(cmd.String("title"), cmd.String("artist"))
	if err != nil {
		return err
	}
	if err := lib.RemoveSong(song); err != nil {
		return fmt.Errorf("failed to remove song: %w", err)
	}

	r.writePlain("✓ Removed %s\n", song)
	return nil
}

// LibraryImport adds the songs of a JSON file, skipping ones already in the library.
func (r *Runner) LibraryImport(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	songs, err := formatter.DecodeSongs(f)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	lib, err := r.Library()
	if err != nil {
		return err
	}
	n, err := lib.Import(songs)
	if err != nil {
		return fmt.Errorf("failed to import songs: %w", err)
	}

	r.logger.Info("songs imported", "path", path, "read", len(songs), "added", n)
	r.writePlain("✓ Imported %d of %d songs from %s\n", n, len(songs), path)
	return nil
}

// LibraryExport writes the whole library to --output or stdout.
func (r *Runner) LibraryExport(ctx context.Context, cmd *cli.Command) error {
	lib, err := r.Library()
	if err != nil {
		return err
	}
	songs, err := lib.Songs(models.MoodAll)
	if err != nil {
		return err
	}

	return r.export(cmd, formatter.Export{Name: "Library", Songs: songs})
}

// export writes e to --output, or renders it to the runner's output when no file is given.
func (r *Runner) export(cmd *cli.Command, e formatter.Export) error {
	path := cmd.String("output")
	name := cmd.String("format")

	if path == "" {
		if name == "" {
			name = string(formatter.FormatText)
		}
		format, err := formatter.ParseFormat(name)
		if err != nil {
			return err
		}
		return r.render(e, format)
	}

	if name != "" {
		format, err := formatter.ParseFormat(name)
		if err != nil {
			return err
		}
		data, err := formatter.Render(e, format)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		r.writePlain("✓ Exported %d songs to %s (%s)\n", len(e.Songs), path, format)
		return nil
	}

	format, err := formatter.WriteExport(e, path)
	if err != nil {
		return err
	}
	r.writePlain("✓ Exported %d songs to %s (%s)\n", len(e.Songs), path, format)
	return nil
}

func (r *Runner) render(e formatter.Export, format formatter.Format) error {
	data, err := formatter.Render(e, format)
	if err != nil {
		return err
	}
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
