package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/vibetune/internal/models"
	"github.com/desertthunder/vibetune/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the embedded default configuration to --config.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	r.logger.Info("creating config file from template", "path", configPath)
	if err := shared.CreateConfigFile(configPath); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	r.writePlain("✓ Config written to %s\n", configPath)
	return nil
}

// SetupDatabase initializes the database, runs migrations and optionally seeds the default songs.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("initializing database", "path", r.config.Database.Path)

	lib, err := r.Library()
	if err != nil {
		return err
	}

	if cmd.Bool("seed") {
		n, err := lib.Seed()
		if err != nil {
			return fmt.Errorf("failed to seed library: %w", err)
		}
		r.logger.Info("seeded library", "songs", n)
	}

	songs, err := lib.Songs(models.MoodAll)
	if err != nil {
		return err
	}
	playlists, err := lib.Playlists()
	if err != nil {
		return err
	}

	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	r.writePlain("✓ Database ready: %s\n", r.config.Database.Path)
	r.writePlain("  Songs: %d\n", len(songs))
	r.writePlain("  Playlists: %d\n", len(playlists))
	return nil
}
