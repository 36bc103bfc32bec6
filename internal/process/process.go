package process

import (
	"context"

	"extedit/internal/errors"
)

// ExitStatus describes how a child process terminated.
type ExitStatus int

const (
	// StatusUnknown means the process has not terminated yet (or never started).
	StatusUnknown ExitStatus = iota
	// StatusNormal means the process exited on its own, with any exit code.
	StatusNormal
	// StatusCrash means the process was terminated by a signal or otherwise
	// ended abnormally.
	StatusCrash
)

// String returns the string representation of the exit status.
func (s ExitStatus) String() string {
	switch s {
	case StatusNormal:
		return "normal"
	case StatusCrash:
		return "crash"
	default:
		return "unknown"
	}
}

// FinishedFunc is invoked exactly once when the process terminates.
// exitCode is -1 when status is StatusCrash.
type FinishedFunc func(exitCode int, status ExitStatus)

// ErrorFunc is invoked when the process monitor fails in a way that is not
// an ordinary exit (for example the wait itself erroring out).
type ErrorFunc func(err error)

// Process defines the interface for running one external editor invocation.
//
// The typical lifecycle is:
//  1. Create a Process implementation
//  2. Register callbacks with OnFinished and OnError
//  3. Start the process with Start(ctx, executable, args)
//  4. React to the completion or error callback
//
// A Process runs at most one child; it is not restarted after termination.
type Process interface {
	// Start launches the child process and returns once it has been spawned.
	//
	// Callbacks registered beforehand fire asynchronously when the child
	// terminates. Returns ErrAlreadyRunning if Start was already called,
	// or the spawn error if the executable cannot be started (in which case
	// no callback fires).
	Start(ctx context.Context, executable string, args []string) error

	// OnFinished registers the completion callback. Only one callback can be
	// registered; subsequent calls replace the previous one. Must be called
	// before Start.
	OnFinished(fn FinishedFunc)

	// OnError registers the monitor error callback. Must be called before
	// Start.
	OnError(fn ErrorFunc)

	// ExitStatus returns how the process terminated, or StatusUnknown while
	// it is still running. Safe to call from callbacks.
	ExitStatus() ExitStatus

	// Kill forcefully terminates the child process.
	// Returns ErrNotStarted if the process was never started.
	Kill() error
}

// checkStartable returns an error when the start parameters are unusable.
func checkStartable(executable string) error {
	if executable == "" {
		return errors.ErrEmptyCommand
	}
	return nil
}
