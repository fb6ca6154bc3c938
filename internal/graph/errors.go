package graph

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCycle is the sentinel wrapped by every CycleError.
	ErrCycle = errors.New("dependency cycle")
	// ErrNotFound is the sentinel wrapped by every NotFoundError.
	ErrNotFound = errors.New("recipe not found")
)

// CycleError reports that the dependency relation is not acyclic. Path
// holds the recipes forming the cycle, first recipe repeated at the end.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle: %s", strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCycle }

// NotFoundError reports a reference to an undefined recipe, either a
// requested target or a declared dependency.
type NotFoundError struct {
	Name string
	// Wanter is the recipe that declared Name as a dependency; empty when
	// Name was requested directly.
	Wanter string
}

func (e *NotFoundError) Error() string {
	if e.Wanter != "" {
		return fmt.Sprintf("recipe %q depends on undefined recipe %q", e.Wanter, e.Name)
	}
	return fmt.Sprintf("recipe not found: %q", e.Name)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
