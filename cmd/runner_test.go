package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/vibetune/internal/formatter"
	"github.com/desertthunder/vibetune/internal/models"
	"github.com/desertthunder/vibetune/internal/shared"
	th "github.com/desertthunder/vibetune/internal/testing"
	"github.com/urfave/cli/v3"
)

// newTestRunner returns a runner over a seeded in-memory library that writes to a buffer.
func newTestRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	t.Helper()
	db, err := shared.OpenDatabase(shared.DatabaseConfig{Path: shared.MemoryDatabase})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	config := shared.DefaultConfig()
	config.Library.PlaylistsFile = ""
	config.Visualizer.StepDelayMS = 0

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{Config: config, Logger: log.New(io.Discard), Output: output, DB: db})
	t.Cleanup(func() { runner.Close() })
	return runner, output
}

func run(r *Runner, args ...string) error {
	app := &cli.Command{Name: "vibetune", Commands: r.register()}
	return app.Run(context.Background(), append([]string{"vibetune"}, args...))
}

func mustRun(t *testing.T, r *Runner, output *bytes.Buffer, args ...string) string {
	t.Helper()
	output.Reset()
	if err := run(r, args...); err != nil {
		t.Fatalf("%v: unexpected error: %v", args, err)
	}
	return output.String()
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				ConfigPath: "/test/path/config.toml",
				Logger:     logger,
				Output:     output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
			if runner.db != nil || runner.library != nil {
				t.Error("expected the database to be opened lazily")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if result := output.String(); result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)
			if err == nil || !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &th.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := th.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if result := output.String(); result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &th.FWriter{}})

			err := runner.writePlain("test")
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		var names []string
		for i, cmd := range commands {
			if cmd == nil {
				t.Fatalf("command at index %d is nil", i)
			}
			names = append(names, cmd.Name)
		}
		for _, want := range []string{"setup", "library", "playlist", "sort", "recommend", "path", "tui", "serve"} {
			if !slices.Contains(names, want) {
				t.Errorf("expected command %q to be registered, got %v", want, names)
			}
		}
	})

	t.Run("Library seeds once", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		lib, err := runner.Library()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		again, err := runner.Library()
		if err != nil || again != lib {
			t.Fatalf("expected the same library, got %v", err)
		}

		songs, err := lib.Songs(models.MoodAll)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(songs) != 15 {
			t.Errorf("expected 15 seeded songs, got %d", len(songs))
		}
	})
}

func TestLibraryCommands(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		runner, output := newTestRunner(t)

		out := mustRun(t, runner, output, "library", "list")
		if !strings.Contains(out, "Songs: 15") || !strings.Contains(out, "Queen - Bohemian Rhapsody") {
			t.Errorf("unexpected listing:\n%s", out)
		}
	})

	t.Run("list by mood as JSON", func(t *testing.T) {
		runner, output := newTestRunner(t)

		out := mustRun(t, runner, output, "library", "list", "--mood", "happy", "--format", "json")
		var rec formatter.PlaylistRecord
		if err := json.Unmarshal([]byte(out), &rec); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, out)
		}
		if len(rec.Songs) != 4 {
			t.Errorf("expected 4 happy songs, got %d", len(rec.Songs))
		}
		for _, s := range rec.Songs {
			if s.Mood != models.MoodHappy {
				t.Errorf("unexpected mood %s for %s", s.Mood, s.Title)
			}
		}
	})

	t.Run("add and remove", func(t *testing.T) {
		runner, output := newTestRunner(t)

		out := mustRun(t, runner, output, "library", "add", "--title", "Heroes", "--artist", "David Bowie",
			"--mood", "energetic", "--energy", "75", "--duration", "6:07")
		if !strings.Contains(out, "Added Heroes") {
			t.Errorf("unexpected output %q", out)
		}

		err := run(runner, "library", "add", "--title", "Heroes", "--artist", "David Bowie")
		if !errors.Is(err, shared.ErrDuplicateSong) {
			t.Errorf("expected ErrDuplicateSong, got %v", err)
		}

		lib, _ := runner.Library()
		song, err := lib.FindSong("Heroes", "")
		if err != nil {
			t.Fatalf("expected the song to be found, got %v", err)
		}
		if song.Duration != 367 || song.Energy != 75 || song.Mood != models.MoodEnergetic {
			t.Errorf("unexpected song %+v", song)
		}

		mustRun(t, runner, output, "library", "remove", "--title", "Heroes")
		if _, err := lib.FindSong("Heroes", ""); !errors.Is(err, shared.ErrSongNotFound) {
			t.Errorf("expected ErrSongNotFound, got %v", err)
		}
	})

	t.Run("add rejects the All mood", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		err := run(runner, "library", "add", "--title", "Heroes", "--artist", "David Bowie", "--mood", "all")
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})

	t.Run("import", func(t *testing.T) {
		runner, output := newTestRunner(t)
		path := th.TempPath(t, "songs.json")
		th.MustWriteFile(t, path, `[
			{"title": "Heroes", "artist": "David Bowie", "mood": "energetic", "energy": 75, "valence": 60, "duration": "6:07"},
			{"title": "Hello", "artist": "Adele", "mood": "Sad", "energy": 40, "valence": 20, "duration": 295}
		]`)

		out := mustRun(t, runner, output, "library", "import", path)
		if !strings.Contains(out, "Imported 2 of 2") {
			t.Errorf("unexpected output %q", out)
		}
		out = mustRun(t, runner, output, "library", "import", path)
		if !strings.Contains(out, "Imported 0 of 2") {
			t.Errorf("expected a second import to add nothing, got %q", out)
		}
	})

	t.Run("export", func(t *testing.T) {
		runner, output := newTestRunner(t)
		path := th.TempPath(t, "library.csv")

		mustRun(t, runner, output, "library", "export", "--output", path)
		th.AssertFileExists(t, path)

		content := th.MustReadFile(t, path)
		if !strings.HasPrefix(content, "Title,Artist,Mood,Energy,Valence,Duration") {
			t.Errorf("expected a CSV header, got %q", content)
		}
		if got := strings.Count(strings.TrimSpace(content), "\n"); got != 15 {
			t.Errorf("expected 15 rows, got %d", got)
		}
	})
}

func TestPlaylistCommands(t *testing.T) {
	t.Run("lifecycle", func(t *testing.T) {
		runner, output := newTestRunner(t)

		mustRun(t, runner, output, "playlist", "create", "Road Trip")
		if err := run(runner, "playlist", "create", "Road Trip"); !errors.Is(err, shared.ErrPlaylistExists) {
			t.Errorf("expected ErrPlaylistExists, got %v", err)
		}

		out := mustRun(t, runner, output, "playlist", "add", "--title", "bohemian rhapsody", "Road Trip")
		if !strings.Contains(out, "Added Bohemian Rhapsody to Road Trip") {
			t.Errorf("unexpected output %q", out)
		}
		out = mustRun(t, runner, output, "playlist", "add", "--title", "Bohemian Rhapsody", "Road Trip")
		if !strings.Contains(out, "already exists") {
			t.Errorf("expected a duplicate notice, got %q", out)
		}

		out = mustRun(t, runner, output, "playlist", "show", "Road Trip")
		if !strings.Contains(out, "Songs: 1") {
			t.Errorf("unexpected playlist:\n%s", out)
		}

		out = mustRun(t, runner, output, "playlist", "list", "--json")
		var records []formatter.PlaylistRecord
		if err := json.Unmarshal([]byte(out), &records); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(records) != 1 || records[0].Name != "Road Trip" || len(records[0].Songs) != 1 {
			t.Errorf("unexpected playlists %+v", records)
		}

		mustRun(t, runner, output, "playlist", "remove", "--title", "Bohemian Rhapsody", "Road Trip")
		if err := run(runner, "playlist", "remove", "--title", "Bohemian Rhapsody", "Road Trip"); !errors.Is(err, shared.ErrSongNotFound) {
			t.Errorf("expected ErrSongNotFound, got %v", err)
		}

		mustRun(t, runner, output, "playlist", "delete", "Road Trip")
		out = mustRun(t, runner, output, "playlist", "list")
		if !strings.Contains(out, "No playlists") {
			t.Errorf("expected no playlists, got %q", out)
		}
	})

	t.Run("unknown playlist", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		err := run(runner, "playlist", "add", "--title", "Bohemian Rhapsody", "Nope")
		if !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})

	t.Run("import and export", func(t *testing.T) {
		runner, output := newTestRunner(t)
		path := th.TempPath(t, "playlists.json")
		err := formatter.SavePlaylistsFile(path, []formatter.Export{
			{Name: "Mellow", Songs: []models.Song{
				th.Song("Hurt", "Johnny Cash", models.MoodMelancholic, 20),
			}},
		})
		if err != nil {
			t.Fatalf("failed to write playlists file: %v", err)
		}

		out := mustRun(t, runner, output, "playlist", "import", path)
		if !strings.Contains(out, "Imported 1 new playlists") {
			t.Errorf("unexpected output %q", out)
		}

		md := th.TempPath(t, "mellow.md")
		mustRun(t, runner, output, "playlist", "export", "--output", md, "Mellow")
		if content := th.MustReadFile(t, md); !strings.Contains(content, "Hurt") {
			t.Errorf("expected the exported playlist to list Hurt, got %q", content)
		}
	})
}

func TestVisualizeCommands(t *testing.T) {
	t.Run("sort", func(t *testing.T) {
		runner, output := newTestRunner(t)

		out := mustRun(t, runner, output, "sort", "--algorithm", "insertion", "--criterion", "energy", "--json")
		var res struct {
			Status      string        `json:"status"`
			Op          string        `json:"op"`
			Songs       []models.Song `json:"songs"`
			Comparisons int           `json:"comparisons"`
		}
		if err := json.Unmarshal([]byte(out), &res); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, out)
		}
		if res.Status != "completed" || res.Op != "sort" {
			t.Errorf("unexpected result %s/%s", res.Op, res.Status)
		}
		if len(res.Songs) != 15 || res.Comparisons == 0 {
			t.Fatalf("expected 15 songs and some comparisons, got %d/%d", len(res.Songs), res.Comparisons)
		}
		if !slices.IsSortedFunc(res.Songs, func(a, b models.Song) int { return a.Energy - b.Energy }) {
			t.Errorf("songs not sorted by energy: %v", th.Titles(res.Songs))
		}
	})

	t.Run("sort with steps", func(t *testing.T) {
		runner, output := newTestRunner(t)

		out := mustRun(t, runner, output, "sort", "--algorithm", "bubble", "--criterion", "title", "--mood", "happy", "--steps")
		if !strings.Contains(out, "Bubble Sort by Title (completed)") {
			t.Errorf("unexpected output:\n%s", out)
		}
		if !strings.Contains(out, "compare") {
			t.Errorf("expected step lines, got:\n%s", out)
		}
	})

	t.Run("sort validation", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		if err := run(runner, "sort", "--algorithm", "quick"); !errors.Is(err, shared.ErrUnknownAlgorithm) {
			t.Errorf("expected ErrUnknownAlgorithm, got %v", err)
		}
		if err := run(runner, "sort", "--criterion", "tempo"); !errors.Is(err, shared.ErrUnknownCriterion) {
			t.Errorf("expected ErrUnknownCriterion, got %v", err)
		}
		if err := run(runner, "sort", "--mood", "calm"); !errors.Is(err, shared.ErrEmptyInput) {
			t.Errorf("expected ErrEmptyInput for a mood with no songs, got %v", err)
		}
	})

	t.Run("recommend", func(t *testing.T) {
		runner, output := newTestRunner(t)

		out := mustRun(t, runner, output, "recommend", "--count", "3", "bohemian rhapsody")
		if !strings.Contains(out, "Recommendations for Bohemian Rhapsody (completed)") {
			t.Errorf("unexpected output:\n%s", out)
		}
		if got := strings.Count(out, ". "); got != 3 {
			t.Errorf("expected 3 recommendations, got %d:\n%s", got, out)
		}
	})

	t.Run("path", func(t *testing.T) {
		runner, output := newTestRunner(t)

		out := mustRun(t, runner, output, "path", "Bohemian Rhapsody", "Don't Stop Me Now")
		if !strings.Contains(out, "Bohemian Rhapsody → Blinding Lights → Don't Stop Me Now") {
			t.Errorf("unexpected path:\n%s", out)
		}
	})

	t.Run("path with a misspelled title", func(t *testing.T) {
		runner, output := newTestRunner(t)

		out := mustRun(t, runner, output, "path", "Bohemian Rapsody", "Don't Stop Me Now")
		if !strings.Contains(out, `Using "Bohemian Rhapsody" for "Bohemian Rapsody"`) {
			t.Errorf("expected the resolved title to be shown, got:\n%s", out)
		}
		if !strings.Contains(out, "Bohemian Rhapsody → Blinding Lights → Don't Stop Me Now") {
			t.Errorf("unexpected path:\n%s", out)
		}
	})

	t.Run("path requires both titles", func(t *testing.T) {
		runner, _ := newTestRunner(t)

		if err := run(runner, "path", "Bohemian Rhapsody"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}

func TestSetupCommands(t *testing.T) {
	t.Run("database", func(t *testing.T) {
		runner, output := newTestRunner(t)

		out := mustRun(t, runner, output, "setup", "database", "--seed")
		if !strings.Contains(out, "Songs: 15") || !strings.Contains(out, "Playlists: 0") {
			t.Errorf("unexpected output:\n%s", out)
		}
	})

	t.Run("config", func(t *testing.T) {
		runner, output := newTestRunner(t)
		path := th.TempPath(t, "config.toml")

		mustRun(t, runner, output, "setup", "config", "--config", path)
		config, err := shared.LoadConfig(path)
		if err != nil {
			t.Fatalf("expected the written config to load, got %v", err)
		}
		if config.Visualizer.RecommendCount != 5 {
			t.Errorf("expected the default recommend count, got %d", config.Visualizer.RecommendCount)
		}
	})
}
