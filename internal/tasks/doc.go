// Package tasks runs instrumented algorithms on a background goroutine and streams their steps to an observer.
//
// # Runs
//
// A [Visualizer] fronts two runners sharing one [Gate], so at most one run is in flight system-wide:
//
//  1. [SortRunner] : bubble, selection or insertion sort over a [sequence.List] snapshot
//     - emits a compare step before every comparison and a swap step after every exchange
//     - each compare/swap step is followed by a [Progress] with the running counters
//
//  2. [GraphRunner] : traversals of the similarity graph
//     - recommend (BFS) emits one visit step per processed node
//     - path-find (DFS) emits one visit step per processed node and a final path step
//
// Start methods validate synchronously and return an error without emitting anything. Starting while busy is
// a silent no-op reported as started == false.
//
// # Events
//
// Steps and progress reach the observer through a [StepSink] in emission order, and every run ends with
// exactly one [Result] on the [CompletionSink]. [ChannelSink] merges them into a single ordered channel
// which the terminal UI drains one receive per bubbletea command, so every event is applied on the Update
// goroutine. Step payloads are snapshots.
//
// # Pacing and cancellation
//
// After each step the worker waits on a rate limiter (one token per step delay). [Visualizer.Cancel] clears
// the run's active flag and aborts any pending wait; the worker notices before its next comparison or node
// and finishes with [StatusCancelled]. A panic inside a run is recovered and reported as [StatusFailed].
package tasks
