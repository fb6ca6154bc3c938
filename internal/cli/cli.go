// Package cli maps command-line invocations onto app calls.
package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/mkravets/gust/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Execute runs one gust invocation against the given argv, writing recipe
// output to outW and diagnostics to errW. The returned error carries the
// exit-code taxonomy for main to translate.
func Execute(ctx context.Context, outW, errW io.Writer, args []string) error {
	cmd := NewRootCommand(outW, errW)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// NewRootCommand builds the root cobra command.
//
// With no positional arguments gust lists every recipe's name and doc
// string, in declaration order, without executing anything. With one or
// more recipe names it resolves the union of their dependency closures and
// runs each recipe exactly once, dependencies first.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	var (
		file      string
		list      bool
		quiet     bool
		logLevel  string
		logFormat string
	)

	cmd := &cobra.Command{
		Use:   "gust [recipe ...]",
		Short: "Run named command recipes with dependency ordering",
		Long: `gust runs the named recipes from the nearest gustfile (or gustfile.hcl),
executing each recipe's dependencies first. Without arguments it lists the
available recipes instead of running anything.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateLogFlags(logLevel, logFormat); err != nil {
				return err
			}

			a, err := app.New(outW, errW, app.Config{
				File:      file,
				LogLevel:  logLevel,
				LogFormat: logFormat,
				Quiet:     quiet,
			})
			if err != nil {
				return err
			}

			if list || len(args) == 0 {
				return a.List()
			}
			return a.Run(cmd.Context(), args...)
		},
	}

	cmd.SetOut(outW)
	cmd.SetErr(errW)

	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the recipe document")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "list recipes and exit")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "never echo command lines")
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, or error")
	cmd.Flags().StringVar(&logFormat, "log-format", "text", "log format: text or json")

	return cmd
}

func validateLogFlags(level, format string) error {
	switch level {
	case "debug", "info", "warn", "error":
	default:
		return &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	switch format {
	case "text", "json":
	default:
		return &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	return nil
}
