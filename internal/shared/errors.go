package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Run request errors, surfaced before a worker is spawned
	ErrInvalidRun       = fmt.Errorf("invalid run request")
	ErrUnknownAlgorithm = fmt.Errorf("%w: unknown algorithm", ErrInvalidRun)
	ErrUnknownCriterion = fmt.Errorf("%w: unknown criterion", ErrInvalidRun)
	ErrEmptyInput       = fmt.Errorf("%w: empty input", ErrInvalidRun)

	// Run lifecycle errors
	ErrBusy     = fmt.Errorf("visualization in progress")
	ErrRunFault = fmt.Errorf("run failed, state indeterminate")

	// Library errors
	ErrSongNotFound     = fmt.Errorf("song not found")
	ErrPlaylistNotFound = fmt.Errorf("playlist not found")
	ErrDuplicateSong    = fmt.Errorf("song already exists")
	ErrPlaylistExists   = fmt.Errorf("playlist already exists")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
