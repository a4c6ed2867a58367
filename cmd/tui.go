package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/vibetune/internal/shared"
	"github.com/desertthunder/vibetune/internal/tasks"
	"github.com/desertthunder/vibetune/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive music browser.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	alg, err := tasks.ParseAlgorithm(r.config.Visualizer.DefaultAlgorithm)
	if err != nil {
		return err
	}
	crit, err := tasks.ParseCriterion(r.config.Visualizer.DefaultCriterion)
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	if path := r.config.Log.File; path != "" {
		fileLogger, err := shared.NewFileLogger(path)
		if err != nil {
			return fmt.Errorf("failed to create file logger: %w", err)
		}
		shared.SetLogLevel(fileLogger, shared.ParseLogLevel(r.config.Log.Level))
		r.SetLogger(fileLogger)
	}

	lib, err := r.Library()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	sink := tasks.NewChannelSink(ctx, 256)
	v, err := r.visualizer(sink, r.config.Visualizer.StepDelay())
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, ui.Options{
		Logger:         r.logger,
		Library:        lib,
		Visualizer:     v,
		Events:         sink.Events(),
		Algorithm:      alg,
		Criterion:      crit,
		RecommendCount: r.config.Visualizer.RecommendCount,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err = p.Run()
	v.Cancel()
	cancel()
	v.Wait()
	if err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
