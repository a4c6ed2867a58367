package tasks

import (
	"errors"

	"github.com/desertthunder/vibetune/internal/sequence"
	"golang.org/x/time/rate"
)

// errCancelled unwinds an algorithm when its run is no longer active.
var errCancelled = errors.New("run cancelled")

// sortTrace instruments a list: every comparison and swap is counted, emitted and paced.
type sortTrace struct {
	state     *RunState
	list      *sequence.List
	criterion Criterion
	sink      StepSink
	limiter   *rate.Limiter
}

// greater checks for cancellation, emits a compare step for (i, j) and reports whether list[i] > list[j].
func (t *sortTrace) greater(i, j int) (bool, error) {
	if !t.state.Active() {
		return false, errCancelled
	}
	a, _ := t.list.Get(i)
	b, _ := t.list.Get(j)
	t.state.comparisons++
	t.emit(StepCompare, i, j, a.Title, b.Title)
	return t.criterion.Greater(a, b), nil
}

func (t *sortTrace) swap(i, j int) {
	t.list.Swap(i, j)
	t.state.swaps++
	a, _ := t.list.Get(i)
	b, _ := t.list.Get(j)
	t.emit(StepSwap, i, j, a.Title, b.Title)
}

func (t *sortTrace) emit(kind StepKind, i, j int, ti, tj string) {
	t.state.steps++
	t.sink.OnStep(Step{
		RunID:     t.state.ID,
		Kind:      kind,
		Positions: []int{i, j},
		Titles:    []string{ti, tj},
		Songs:     t.list.Slice(),
	})
	t.sink.OnProgress(t.state.progress())
	_ = t.limiter.Wait(t.state.ctx)
}

type sortFunc func(*sortTrace) error

func (a Algorithm) sorter() sortFunc {
	switch a {
	case AlgorithmBubble:
		return bubbleSort
	case AlgorithmSelection:
		return selectionSort
	case AlgorithmInsertion:
		return insertionSort
	default:
		return nil
	}
}

// bubbleSort makes adjacent passes and stops after a pass without swaps.
func bubbleSort(t *sortTrace) error {
	n := t.list.Len()
	for i := 0; i < n-1; i++ {
		swapped := false
		for j := 0; j < n-1-i; j++ {
			g, err := t.greater(j, j+1)
			if err != nil {
				return err
			}
			if g {
				t.swap(j, j+1)
				swapped = true
			}
		}
		if !swapped {
			break
		}
	}
	return nil
}

// selectionSort keeps the first minimum of each suffix and swaps it into place at most once per position.
func selectionSort(t *sortTrace) error {
	n := t.list.Len()
	for i := 0; i < n-1; i++ {
		lowest := i
		for j := i + 1; j < n; j++ {
			g, err := t.greater(lowest, j)
			if err != nil {
				return err
			}
			if g {
				lowest = j
			}
		}
		if lowest != i {
			t.swap(i, lowest)
		}
	}
	return nil
}

// insertionSort sinks each element leftwards with adjacent swaps until its predecessor is not greater.
func insertionSort(t *sortTrace) error {
	n := t.list.Len()
	for i := 1; i < n; i++ {
		for j := i; j > 0; j-- {
			g, err := t.greater(j-1, j)
			if err != nil {
				return err
			}
			if !g {
				break
			}
			t.swap(j-1, j)
		}
	}
	return nil
}
