package executor

import (
	"fmt"
	"syscall"
)

// ExitError reports a command line that exited with a non-zero status. The
// engine propagates the status unchanged to the process exit code.
type ExitError struct {
	Recipe string
	Line   string
	Code   int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("recipe %q: command %q exited with status %d", e.Recipe, e.Line, e.Code)
}

// SignalError reports a command line that was killed by a signal, for
// example an operator interrupt. It is distinguished from a normal failure
// so the caller can abort immediately with the conventional 128+signal
// exit code.
type SignalError struct {
	Recipe string
	Line   string
	Signal syscall.Signal
}

func (e *SignalError) Error() string {
	return fmt.Sprintf("recipe %q: command %q terminated by signal %v", e.Recipe, e.Line, e.Signal)
}

// ExitCode returns the conventional shell exit code for the signal.
func (e *SignalError) ExitCode() int {
	return 128 + int(e.Signal)
}
