package tasks

import (
	"context"
	"slices"
	"sync"
)

// StepSink receives step and progress events, in emission order, from the worker goroutine.
type StepSink interface {
	OnStep(Step)
	OnProgress(Progress)
}

// CompletionSink receives the single [Result] of a run.
type CompletionSink interface {
	OnDone(Result)
}

// Sink observes a whole run.
type Sink interface {
	StepSink
	CompletionSink
}

type discard struct{}

func (discard) OnStep(Step)         {}
func (discard) OnProgress(Progress) {}
func (discard) OnDone(Result)       {}

// Discard is a [Sink] that drops everything.
var Discard Sink = discard{}

// ChannelSink funnels every event of every run into one ordered channel.
//
// Sends block until the observer receives, which keeps the worker in lock step with rendering. Once ctx is
// done pending and future sends are dropped so a vanished observer cannot wedge the worker.
type ChannelSink struct {
	ctx    context.Context
	events chan Event
}

// NewChannelSink creates a sink with the given channel buffer.
func NewChannelSink(ctx context.Context, buffer int) *ChannelSink {
	return &ChannelSink{ctx: ctx, events: make(chan Event, buffer)}
}

// Events is the observer side of the stream.
func (c *ChannelSink) Events() <-chan Event { return c.events }

func (c *ChannelSink) OnStep(s Step)         { c.send(s) }
func (c *ChannelSink) OnProgress(p Progress) { c.send(p) }
func (c *ChannelSink) OnDone(r Result)       { c.send(r) }

func (c *ChannelSink) send(e Event) {
	select {
	case c.events <- e:
	case <-c.ctx.Done():
	}
}

// Recorder is a [Sink] that keeps every event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	done   chan Result
}

// NewRecorder creates an empty recorder for a single run.
func NewRecorder() *Recorder {
	return &Recorder{done: make(chan Result, 1)}
}

func (r *Recorder) OnStep(s Step)         { r.add(s) }
func (r *Recorder) OnProgress(p Progress) { r.add(p) }

func (r *Recorder) OnDone(res Result) {
	r.add(res)
	select {
	case r.done <- res:
	default:
	}
}

func (r *Recorder) add(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Wait blocks until a [Result] arrives or ctx is done.
func (r *Recorder) Wait(ctx context.Context) (Result, error) {
	select {
	case res := <-r.done:
		r.done <- res
		return res, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Steps returns the recorded steps, optionally filtered to the given kinds.
func (r *Recorder) Steps(kinds ...StepKind) []Step {
	var out []Step
	for _, e := range r.Events() {
		s, ok := e.(Step)
		if !ok {
			continue
		}
		if len(kinds) == 0 || slices.Contains(kinds, s.Kind) {
			out = append(out, s)
		}
	}
	return out
}

// Results returns every recorded completion event.
func (r *Recorder) Results() []Result {
	var out []Result
	for _, e := range r.Events() {
		if res, ok := e.(Result); ok {
			out = append(out, res)
		}
	}
	return out
}
