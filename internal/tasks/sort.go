package tasks

import (
	"errors"
	"fmt"

	"github.com/desertthunder/vibetune/internal/models"
	"github.com/desertthunder/vibetune/internal/sequence"
	"github.com/desertthunder/vibetune/internal/shared"
	"golang.org/x/time/rate"
)

// SortRunner animates one sorting algorithm at a time over a snapshot of songs.
type SortRunner struct {
	runner
}

// NewSortRunner creates an idle sort runner.
func NewSortRunner(opts Options) *SortRunner {
	return &SortRunner{runner: newRunner(opts)}
}

// Start validates the request and, when idle, sorts a copy of songs on a new goroutine.
//
// Validation errors are returned synchronously and nothing is emitted. When another run holds the gate the
// request is ignored and started is false with a nil error. The caller's slice is never modified.
func (r *SortRunner) Start(algorithm, criterion string, songs []models.Song) (started bool, err error) {
	alg, err := ParseAlgorithm(algorithm)
	if err != nil {
		return false, err
	}
	crit, err := ParseCriterion(criterion)
	if err != nil {
		return false, err
	}
	return r.StartWith(alg, crit, songs)
}

// StartWith is [SortRunner.Start] for already parsed names.
func (r *SortRunner) StartWith(alg Algorithm, crit Criterion, songs []models.Song) (bool, error) {
	sorter := alg.sorter()
	if sorter == nil {
		return false, fmt.Errorf("%w: %d", shared.ErrUnknownAlgorithm, int(alg))
	}
	if crit.String() == "" {
		return false, fmt.Errorf("%w: %d", shared.ErrUnknownCriterion, int(crit))
	}
	if len(songs) == 0 {
		return false, fmt.Errorf("%w: nothing to sort", shared.ErrEmptyInput)
	}

	rs, ok := r.begin(OpSort)
	if !ok {
		r.logger.Debug("sort ignored, runner busy", "algorithm", alg, "criterion", crit)
		return false, nil
	}

	list := sequence.New(songs...)
	r.logger.Debug("sort queued", "run_id", rs.ID, "algorithm", alg, "criterion", crit, "songs", list.Len())

	r.launch(rs, func(rs *RunState, limiter *rate.Limiter) Result {
		trace := &sortTrace{state: rs, list: list, criterion: crit, sink: r.sink, limiter: limiter}
		err := sorter(trace)

		res := Result{Status: StatusCompleted, Songs: list.Slice()}
		switch {
		case errors.Is(err, errCancelled):
			res.Status = StatusCancelled
		case err != nil:
			res.Status, res.Err = StatusFailed, fmt.Errorf("%w: %v", shared.ErrRunFault, err)
		}
		return res
	})
	return true, nil
}
