package tasks

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/vibetune/internal/shared"
	"golang.org/x/time/rate"
)

// Gate admits one run at a time across every runner sharing it.
//
// busy is claimed by Start before the worker is spawned. The worker holds delivery for its whole life, so
// a run admitted right after another finishes cannot emit before the previous [Result] is delivered.
type Gate struct {
	busy     atomic.Bool
	delivery sync.Mutex
}

// NewGate creates an open gate.
func NewGate() *Gate { return &Gate{} }

// Busy reports whether a run is in flight.
func (g *Gate) Busy() bool { return g.busy.Load() }

func (g *Gate) acquire() bool { return g.busy.CompareAndSwap(false, true) }
func (g *Gate) release()      { g.busy.Store(false) }

// RunState is the per-run bookkeeping. It is created by Start and discarded at completion.
//
// The counters are owned by the worker goroutine; only the active flag crosses goroutines.
type RunState struct {
	ID          string
	Op          Op
	comparisons int
	swaps       int
	steps       int
	active      atomic.Bool
	ctx         context.Context
	cancel      context.CancelFunc
}

func newRunState(op Op) *RunState {
	ctx, cancel := context.WithCancel(context.Background())
	rs := &RunState{ID: shared.GenerateID(), Op: op, ctx: ctx, cancel: cancel}
	rs.active.Store(true)
	return rs
}

// Active is false once the run has been cancelled.
func (rs *RunState) Active() bool { return rs.active.Load() }

// stop clears the active flag and aborts any pending pacing wait.
func (rs *RunState) stop() {
	rs.active.Store(false)
	rs.cancel()
}

func (rs *RunState) progress() Progress {
	return Progress{RunID: rs.ID, Comparisons: rs.comparisons, Swaps: rs.swaps}
}

// Options configures a runner.
type Options struct {
	Logger    *log.Logger
	StepDelay time.Duration // pause after every step; zero disables pacing
	Sink      Sink          // receives steps and the result; nil discards
	Gate      *Gate         // shared admission gate; nil creates a private one
}

// runner holds the lifecycle shared by the sort and graph runners.
type runner struct {
	logger *log.Logger
	delay  time.Duration
	sink   Sink
	gate   *Gate

	mu      sync.Mutex
	current *RunState
	idle    sync.WaitGroup
}

func newRunner(opts Options) runner {
	r := runner{logger: opts.Logger, delay: opts.StepDelay, sink: opts.Sink, gate: opts.Gate}
	if r.logger == nil {
		r.logger = log.Default()
	}
	if r.sink == nil {
		r.sink = Discard
	}
	if r.gate == nil {
		r.gate = NewGate()
	}
	return r
}

// Busy reports whether any run sharing this runner's gate is in flight.
func (r *runner) Busy() bool { return r.gate.Busy() }

// Cancel stops this runner's run at its next check. It returns false when the runner has nothing to cancel.
func (r *runner) Cancel() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil || !r.current.Active() {
		return false
	}
	r.current.stop()
	r.logger.Info("run cancel requested", "run_id", r.current.ID, "op", r.current.Op)
	return true
}

// Wait blocks until this runner's run, if any, has delivered its result and released the gate.
func (r *runner) Wait() { r.idle.Wait() }

// begin claims the gate and registers a fresh run; false when busy.
func (r *runner) begin(op Op) (*RunState, bool) {
	if !r.gate.acquire() {
		return nil, false
	}
	rs := newRunState(op)
	r.mu.Lock()
	r.current = rs
	r.mu.Unlock()
	r.idle.Add(1)
	return rs, true
}

// launch runs body on a new goroutine and delivers exactly one result.
//
// A panic in body is recovered and reported as [StatusFailed] with [shared.ErrRunFault].
func (r *runner) launch(rs *RunState, body func(*RunState, *rate.Limiter) Result) {
	go func() {
		r.gate.delivery.Lock()
		defer r.gate.delivery.Unlock()

		logger := shared.WithLogger(r.logger, "run_id", rs.ID, "op", rs.Op)
		logger.Info("run started")

		res := r.execute(rs, logger, body)
		res.RunID, res.Op = rs.ID, rs.Op
		res.Comparisons, res.Swaps, res.Steps = rs.comparisons, rs.swaps, rs.steps

		switch res.Status {
		case StatusCancelled:
			logger.Warn("run cancelled", "comparisons", res.Comparisons, "swaps", res.Swaps)
		case StatusFailed:
			logger.Error("run failed", "err", res.Err)
		default:
			logger.Info("run completed", "steps", res.Steps)
		}

		rs.cancel()
		r.mu.Lock()
		r.current = nil
		r.mu.Unlock()

		// Released before delivery so an observer handling the Result can start the next run.
		r.gate.release()
		r.sink.OnDone(res)
		r.idle.Done()
	}()
}

func (r *runner) execute(rs *RunState, logger *log.Logger, body func(*RunState, *rate.Limiter) Result) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			logger.Error("run panicked", "panic", p)
			res = Result{Status: StatusFailed, Err: shared.ErrRunFault}
		}
	}()
	return body(rs, r.limiter())
}

func (r *runner) limiter() *rate.Limiter {
	if r.delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(r.delay), 1)
}
