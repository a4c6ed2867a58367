package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/desertthunder/vibetune/internal/models"
	"github.com/desertthunder/vibetune/internal/shared"
	"github.com/desertthunder/vibetune/internal/tasks"
	"github.com/urfave/cli/v3"
)

// resultOutput is the JSON form of a finished run.
type resultOutput struct {
	tasks.Result
	Error string `json:"error,omitempty"`
}

// Sort sorts the library (or one mood of it) and prints the outcome.
func (r *Runner) Sort(ctx context.Context, cmd *cli.Command) error {
	algorithm := cmd.String("algorithm")
	if algorithm == "" {
		algorithm = r.config.Visualizer.DefaultAlgorithm
	}
	criterion := cmd.String("criterion")
	if criterion == "" {
		criterion = r.config.Visualizer.DefaultCriterion
	}
	alg, err := tasks.ParseAlgorithm(algorithm)
	if err != nil {
		return err
	}
	crit, err := tasks.ParseCriterion(criterion)
	if err != nil {
		return err
	}
	mood, err := models.ParseMood(cmd.String("mood"))
	if err != nil {
		return err
	}

	lib, err := r.Library()
	if err != nil {
		return err
	}
	songs, err := lib.Songs(mood)
	if err != nil {
		return err
	}

	r.logger.Info("starting sort", "algorithm", alg, "criterion", crit, "songs", len(songs))
	res, err := r.visualize(ctx, cmd, func(v *tasks.Visualizer) (bool, error) {
		return v.StartSort(alg.String(), crit.String(), songs)
	})
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return r.writeJSON(resultOutput{Result: res, Error: res.Message()}, true)
	}

	r.writePlainHeader(fmt.Sprintf("%s by %s (%s)", alg.Label(), crit.Label(), res.Status))
	for i, s := range res.Songs {
		r.writePlain("%3d. %-32s %-20s %8s\n", i+1, s.Title, s.Artist, crit.Value(s))
	}
	r.writePlainln("Comparisons: %d  Swaps: %d  Steps: %d", res.Comparisons, res.Swaps, res.Steps)
	return nil
}

// Recommend runs a breadth-first recommendation from a title.
func (r *Runner) Recommend(ctx context.Context, cmd *cli.Command) error {
	title := cmd.StringArg("title")
	if title == "" {
		return fmt.Errorf("%w: title", shared.ErrMissingArgument)
	}
	count := int(cmd.Int("count"))
	if !cmd.IsSet("count") {
		count = r.config.Visualizer.RecommendCount
	}

	res, err := r.visualize(ctx, cmd, func(v *tasks.Visualizer) (bool, error) {
		title = r.resolveTitle(cmd, v, title)
		return v.StartRecommend(title, count)
	})
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return r.writeJSON(resultOutput{Result: res, Error: res.Message()}, true)
	}

	r.writePlainHeader(fmt.Sprintf("Recommendations for %s (%s)", title, res.Status))
	if len(res.Recommendations) == 0 {
		r.writePlain("No similar songs found\n")
	}
	for i, s := range res.Recommendations {
		r.writePlain("%3d. %s\n", i+1, s)
	}
	r.writePlainln("Visited: %d", res.Steps)
	return nil
}

// Path runs a depth-first search for a chain of similar songs.
func (r *Runner) Path(ctx context.Context, cmd *cli.Command) error {
	from, to := cmd.StringArg("from"), cmd.StringArg("to")
	if from == "" || to == "" {
		return fmt.Errorf("%w: from and to titles", shared.ErrMissingArgument)
	}

	res, err := r.visualize(ctx, cmd, func(v *tasks.Visualizer) (bool, error) {
		from, to = r.resolveTitle(cmd, v, from), r.resolveTitle(cmd, v, to)
		return v.StartPathFind(from, to)
	})
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return r.writeJSON(resultOutput{Result: res, Error: res.Message()}, true)
	}

	r.writePlainHeader(fmt.Sprintf("Path from %s to %s (%s)", from, to, res.Status))
	if res.Found {
		r.writePlain("%s\n", strings.Join(res.Path, " → "))
	} else {
		r.writePlain("No path found\n")
	}
	r.writePlainln("Visited: %d", res.Steps)
	return nil
}

// resolveTitle maps a typed title to the closest library title and tells the user when it differs.
// Unmatched input is passed through so the run reports it as not found.
func (r *Runner) resolveTitle(cmd *cli.Command, v *tasks.Visualizer, query string) string {
	title, ok := v.Resolve(query)
	if !ok {
		return query
	}
	if !strings.EqualFold(title, strings.TrimSpace(query)) && !cmd.Bool("json") {
		r.writePlain("Using %q for %q\n", title, query)
	}
	return title
}

// visualize starts one run and observes it to completion, printing steps when asked.
// An interrupt cancels the run; the cancelled result is still returned.
func (r *Runner) visualize(ctx context.Context, cmd *cli.Command, start func(*tasks.Visualizer) (bool, error)) (tasks.Result, error) {
	delay := r.config.Visualizer.StepDelay()
	if cmd.IsSet("delay") {
		delay = time.Duration(cmd.Int("delay")) * time.Millisecond
	}

	sinkCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	sink := tasks.NewChannelSink(sinkCtx, 64)

	v, err := r.visualizer(sink, delay)
	if err != nil {
		return tasks.Result{}, err
	}
	defer v.Wait()

	started, err := start(v)
	if err != nil {
		return tasks.Result{}, err
	}
	if !started {
		return tasks.Result{}, shared.ErrBusy
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	verbose := cmd.Bool("steps")
	for {
		select {
		case <-interrupt:
			r.logger.Warn("interrupted, cancelling run")
			v.Cancel()
			interrupt = nil
		case <-ctx.Done():
			v.Cancel()
			return tasks.Result{}, ctx.Err()
		case e := <-sink.Events():
			switch e := e.(type) {
			case tasks.Step:
				if verbose {
					r.writePlain("  %s\n", e)
				}
			case tasks.Result:
				if e.Status == tasks.StatusFailed {
					return e, e.Err
				}
				return e, nil
			}
		}
	}
}
