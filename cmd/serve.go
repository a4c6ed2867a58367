package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/desertthunder/vibetune/internal/server"
	"github.com/desertthunder/vibetune/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve exposes the library and the visualizer over HTTP until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if cmd.IsSet("host") {
		cfg.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Port = int(cmd.Int("port"))
	}
	delay := r.config.Visualizer.StepDelay()
	if cmd.IsSet("delay") {
		delay = time.Duration(cmd.Int("delay")) * time.Millisecond
	}

	lib, err := r.Library()
	if err != nil {
		return err
	}

	hub := server.NewHub(0, r.logger)
	v, err := r.visualizer(hub, delay)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	context.AfterFunc(ctx, func() {
		v.Cancel()
		hub.Close()
	})

	if cmd.Bool("open") {
		if err := shared.OpenBrowser(cfg.BrowseURL("/songs")); err != nil {
			r.logger.Warn("could not open browser", "error", err)
		}
	}

	api := server.NewAPI(lib, v, r.config.Visualizer.RecommendCount, r.logger)
	err = server.Serve(ctx, cfg.Addr(), server.NewHandler(api, hub, r.logger), r.logger)
	v.Wait()
	return err
}
