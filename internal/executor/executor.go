// Package executor runs resolved recipes strictly sequentially.
//
// Each command line is handed to the shell as a separate blocking
// subprocess. The first non-zero exit aborts the remaining lines and every
// recipe after it in the order, which is how a dependency failure skips
// all of its transitive dependents.
package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/mkravets/gust/internal/ctxlog"
	"github.com/mkravets/gust/internal/recipe"
)

// Options configures an Executor. Zero values fall back to the invoking
// process's streams and working directory.
type Options struct {
	// Dir is the working directory for every command line, normally the
	// directory of the recipe document.
	Dir string
	// Stdout receives echoed command lines and command output.
	Stdout io.Writer
	// Stderr receives command error output.
	Stderr io.Writer
	// Quiet suppresses echo for every line of this invocation, on top of
	// recipe- and line-level suppression.
	Quiet bool
}

// Executor runs recipe bodies via the system shell.
type Executor struct {
	dir    string
	stdout io.Writer
	stderr io.Writer
	quiet  bool
}

// New returns an executor with the given options.
func New(opts Options) *Executor {
	e := &Executor{
		dir:    opts.Dir,
		stdout: opts.Stdout,
		stderr: opts.Stderr,
		quiet:  opts.Quiet,
	}
	if e.stdout == nil {
		e.stdout = os.Stdout
	}
	if e.stderr == nil {
		e.stderr = os.Stderr
	}
	return e
}

// Run executes an already-resolved order, dependencies first. It stops at
// the first failure and returns it; recipes later in the order never run.
func (e *Executor) Run(ctx context.Context, order []*recipe.Recipe) error {
	for _, r := range order {
		if err := e.runRecipe(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) runRecipe(ctx context.Context, r *recipe.Recipe) error {
	logger := ctxlog.FromContext(ctx).With("recipe", r.Name)
	logger.Debug("Recipe started.", "lines", len(r.Body))

	for _, line := range r.Body {
		if line.Echo == recipe.EchoCommand && !e.quiet {
			fmt.Fprintln(e.stdout, line.Text)
		}
		if err := e.runLine(ctx, r, line); err != nil {
			logger.Debug("Recipe aborted.", "error", err)
			return err
		}
	}

	logger.Debug("Recipe finished.")
	return nil
}

// runLine blocks until the spawned shell terminates, then inspects its
// status. Environment and streams are inherited; the engine imposes no
// timeout.
func (e *Executor) runLine(ctx context.Context, r *recipe.Recipe, line recipe.Line) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", line.Text)
	cmd.Dir = e.dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			return &SignalError{Recipe: r.Name, Line: line.Text, Signal: ws.Signal()}
		}
		return &ExitError{Recipe: r.Name, Line: line.Text, Code: exitErr.ExitCode()}
	}
	return fmt.Errorf("recipe %q: command %q: %w", r.Name, line.Text, err)
}
