// Package graph resolves recipe dependencies into execution orders.
//
// Resolution is a depth-first traversal with visiting/visited marks:
// re-entering a node that is still being visited is a cycle, and completed
// nodes append to the output exactly once, so shared (diamond) dependencies
// run a single time per invocation.
package graph

import (
	"github.com/mkravets/gust/internal/recipe"
)

// Graph indexes an immutable recipe set for dependency resolution.
type Graph struct {
	set *recipe.Set
}

// New returns a graph over the given set.
func New(set *recipe.Set) *Graph {
	return &Graph{set: set}
}

type mark int

const (
	unvisited mark = iota
	visiting
	visited
)

// Resolve returns a valid topological execution order covering the
// requested recipes and their transitive dependencies. Every recipe
// appears at most once, even when requested or depended on repeatedly.
func (g *Graph) Resolve(names ...string) ([]*recipe.Recipe, error) {
	w := &walker{set: g.set, marks: make(map[string]mark)}
	for _, name := range names {
		if err := w.visit(name, ""); err != nil {
			return nil, err
		}
	}
	return w.order, nil
}

// Validate runs cycle and reference checks over every recipe in the set,
// so configuration errors surface before any execution begins.
func (g *Graph) Validate() error {
	w := &walker{set: g.set, marks: make(map[string]mark)}
	for _, r := range g.set.Recipes() {
		if err := w.visit(r.Name, ""); err != nil {
			return err
		}
	}
	return nil
}

type walker struct {
	set   *recipe.Set
	marks map[string]mark
	stack []string
	order []*recipe.Recipe
}

func (w *walker) visit(name, wanter string) error {
	switch w.marks[name] {
	case visited:
		return nil
	case visiting:
		return &CycleError{Path: w.cyclePath(name)}
	}

	r, ok := w.set.Lookup(name)
	if !ok {
		return &NotFoundError{Name: name, Wanter: wanter}
	}

	w.marks[name] = visiting
	w.stack = append(w.stack, name)
	for _, dep := range r.Dependencies {
		if err := w.visit(dep, name); err != nil {
			return err
		}
	}
	w.stack = w.stack[:len(w.stack)-1]
	w.marks[name] = visited
	w.order = append(w.order, r)
	return nil
}

// cyclePath slices the visiting stack from the re-entered node onward and
// closes the loop by repeating it.
func (w *walker) cyclePath(name string) []string {
	for i, n := range w.stack {
		if n == name {
			path := make([]string, 0, len(w.stack)-i+1)
			path = append(path, w.stack[i:]...)
			return append(path, name)
		}
	}
	return []string{name, name}
}
