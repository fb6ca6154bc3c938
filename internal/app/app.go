// Package app wires the loaders, graph, and executor behind a single type
// that the CLI front-end drives.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/gookit/color"

	"github.com/mkravets/gust/internal/ctxlog"
	"github.com/mkravets/gust/internal/executor"
	"github.com/mkravets/gust/internal/graph"
	"github.com/mkravets/gust/internal/recipe"
)

// Config holds everything an App needs to run one invocation.
type Config struct {
	// File is an explicit recipe document path. Empty means discover the
	// default document by searching upward from Dir.
	File string
	// Dir is the directory discovery starts from. Empty means the current
	// working directory.
	Dir string

	LogLevel  string
	LogFormat string

	// Quiet suppresses command echo for the whole invocation.
	Quiet bool
}

// App holds one loaded, validated recipe document and the streams the
// invocation writes to.
type App struct {
	outW   io.Writer
	errW   io.Writer
	logger *slog.Logger
	set    *recipe.Set
	graph  *graph.Graph
	quiet  bool
}

// New loads the recipe document named by cfg, validates the dependency
// graph, and returns an App ready to list or run. Cycles and duplicate
// names are reported here, before any execution.
func New(outW, errW io.Writer, cfg Config) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)

	path, err := locate(cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("Recipe document located.", "path", path)

	set, err := load(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Recipe document loaded.", "recipes", set.Len())

	g := graph.New(set)
	if err := g.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("Dependency graph validated.")

	return &App{
		outW:   outW,
		errW:   errW,
		logger: logger,
		set:    set,
		graph:  g,
		quiet:  cfg.Quiet,
	}, nil
}

// List prints every recipe's name and doc string in declaration order. It
// has no execution side effects and its output is stable for a given
// document.
func (a *App) List() error {
	width := 0
	for _, r := range a.set.Recipes() {
		if len(r.Name) > width {
			width = len(r.Name)
		}
	}

	for _, r := range a.set.Recipes() {
		if r.Doc == "" {
			if _, err := fmt.Fprintln(a.outW, color.Green.Sprint(r.Name)); err != nil {
				return err
			}
			continue
		}
		line := fmt.Sprintf("%s  %s\n", color.Green.Sprintf("%-*s", width, r.Name), r.Doc)
		if _, err := io.WriteString(a.outW, line); err != nil {
			return err
		}
	}
	return nil
}

// Run resolves the requested recipes into one deduplicated topological
// order and executes it sequentially. The union is resolved up front, so a
// recipe shared by several targets still runs exactly once.
func (a *App) Run(ctx context.Context, names ...string) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	order, err := a.graph.Resolve(names...)
	if err != nil {
		return err
	}
	a.logger.Debug("Execution order resolved.", "targets", names, "count", len(order))

	exec := executor.New(executor.Options{
		Dir:    a.set.Dir,
		Stdout: a.outW,
		Stderr: a.errW,
		Quiet:  a.quiet,
	})
	return exec.Run(ctx, order)
}
