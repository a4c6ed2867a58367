package tasks

import (
	"fmt"

	"github.com/desertthunder/vibetune/internal/models"
)

// Event is one message on an observer's ordered stream: a [Step], a [Progress] or a [Result].
type Event interface {
	event()
}

// StepKind enumerates the visualization step events.
type StepKind int

const (
	StepCompare StepKind = iota // two positions are about to be compared
	StepSwap                    // two positions just exchanged payloads
	StepVisit                   // a graph node was processed
	StepPath                    // final path-find answer
)

func (k StepKind) String() string {
	switch k {
	case StepCompare:
		return "compare"
	case StepSwap:
		return "swap"
	case StepVisit:
		return "visit"
	case StepPath:
		return "path"
	default:
		return ""
	}
}

func (k StepKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Op names the operation a run performs.
type Op int

const (
	OpSort Op = iota
	OpRecommend
	OpPathFind
)

func (o Op) String() string {
	switch o {
	case OpSort:
		return "sort"
	case OpRecommend:
		return "recommend"
	case OpPathFind:
		return "path"
	default:
		return ""
	}
}

func (o Op) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// Status is the terminal state of a run.
type Status int

const (
	StatusCompleted Status = iota
	StatusCancelled
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	case StatusFailed:
		return "failed"
	default:
		return ""
	}
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Step is a single visualization event.
//
// Sort steps carry the two positions and a snapshot of the whole sequence; graph steps carry the
// visited title and a snapshot of the path so far. Snapshots are copies and never alias runner state.
type Step struct {
	RunID     string        `json:"run_id"`
	Kind      StepKind      `json:"kind"`
	Positions []int         `json:"positions,omitempty"`
	Titles    []string      `json:"titles,omitempty"`
	Songs     []models.Song `json:"songs,omitempty"`
	Path      []string      `json:"path,omitempty"`
	Found     bool          `json:"found,omitempty"`
}

func (Step) event() {}

func (s Step) String() string {
	switch s.Kind {
	case StepCompare, StepSwap:
		return fmt.Sprintf("%s %v %v", s.Kind, s.Positions, s.Titles)
	case StepPath:
		if !s.Found {
			return "path not found"
		}
		return fmt.Sprintf("path %v", s.Path)
	default:
		return fmt.Sprintf("%s %v", s.Kind, s.Titles)
	}
}

// Progress carries the running counters of a sort.
type Progress struct {
	RunID       string `json:"run_id"`
	Comparisons int    `json:"comparisons"`
	Swaps       int    `json:"swaps"`
}

func (Progress) event() {}

// Result is the single completion event of a run.
type Result struct {
	RunID           string        `json:"run_id"`
	Op              Op            `json:"op"`
	Status          Status        `json:"status"`
	Songs           []models.Song `json:"songs,omitempty"`
	Recommendations []models.Song `json:"recommendations,omitempty"`
	Path            []string      `json:"path,omitempty"`
	Found           bool          `json:"found"`
	Comparisons     int           `json:"comparisons"`
	Swaps           int           `json:"swaps"`
	Steps           int           `json:"steps"`
	Err             error         `json:"-"`
}

func (Result) event() {}

// Message returns the fault message, if any.
func (r Result) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}
