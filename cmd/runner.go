package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/vibetune/internal/library"
	"github.com/desertthunder/vibetune/internal/models"
	"github.com/desertthunder/vibetune/internal/shared"
	"github.com/desertthunder/vibetune/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer
	db         *sql.DB
	library    *library.Service
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
	Output     io.Writer
	DB         *sql.DB // opened from Config.Database on first use when nil
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
		db:         opts.DB,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, libraryCommand, playlistCommand, sortCommand, recommendCommand, pathCommand, tuiCommand, serveCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the logger used by the runner and everything it creates afterwards.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// Library opens the configured database on first use. A fresh library is seeded with the default songs
// when the config asks for it, and picks up the playlists file when it has no playlists yet.
func (r *Runner) Library() (*library.Service, error) {
	if r.library != nil {
		return r.library, nil
	}

	if r.db == nil {
		db, err := shared.OpenDatabase(r.config.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		r.db = db
	}

	lib := library.New(r.db, r.config.Library.PlaylistsFile, r.logger)
	if r.config.Library.SeedDefaults {
		n, err := lib.Seed()
		if err != nil {
			return nil, fmt.Errorf("failed to seed library: %w", err)
		}
		if n > 0 {
			r.logger.Info("seeded default library", "songs", n)
		}
	}

	if path := r.config.Library.PlaylistsFile; path != "" {
		playlists, err := lib.Playlists()
		if err != nil {
			return nil, err
		}
		if len(playlists) == 0 {
			if _, err := lib.ImportPlaylists(path); err != nil {
				return nil, fmt.Errorf("failed to import playlists: %w", err)
			}
		}
	}

	r.library = lib
	return lib, nil
}

// visualizer builds a visualizer over the whole library that reports to sink.
func (r *Runner) visualizer(sink tasks.Sink, delay time.Duration) (*tasks.Visualizer, error) {
	lib, err := r.Library()
	if err != nil {
		return nil, err
	}
	songs, err := lib.Songs(models.MoodAll)
	if err != nil {
		return nil, err
	}

	v := tasks.NewVisualizer(tasks.Options{Logger: r.logger, StepDelay: delay, Sink: sink})
	if err := v.SetLibrary(songs); err != nil {
		return nil, err
	}
	return v, nil
}

// Close releases the database, if one was opened.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	r.library = nil
	return err
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
