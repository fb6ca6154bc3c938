package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mkravets/gust/internal/cli"
	"github.com/mkravets/gust/internal/executor"
)

// main is the entrypoint for the gust recipe runner.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	os.Exit(run(os.Stdout, os.Stderr, os.Args[1:]))
}

// run encapsulates the invocation so tests can drive it without exiting.
func run(outW, errW io.Writer, args []string) int {
	err := cli.Execute(context.Background(), outW, errW, args)
	if err == nil {
		return 0
	}
	fmt.Fprintln(errW, "gust:", err)
	return exitCode(err)
}

// exitCode maps the error taxonomy to process exit codes: a failing
// command propagates its own status, a signal-killed command maps to
// 128+signal, and every configuration error maps to 2.
func exitCode(err error) int {
	var exitErr *executor.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	var sigErr *executor.SignalError
	if errors.As(err, &sigErr) {
		return sigErr.ExitCode()
	}
	var cliErr *cli.ExitError
	if errors.As(err, &cliErr) {
		return cliErr.Code
	}
	return 2
}
