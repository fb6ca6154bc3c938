// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maksym Kravets

// Package recipe defines the format-agnostic data model shared by every
// loader and by the graph and executor: a Recipe is a named, documented
// sequence of opaque command lines with explicit dependencies.
//
// Recipes are built once by a loader and never mutated afterwards. The Set
// preserves declaration order, which is also the order used by list mode.
package recipe

import "fmt"

// EchoMode controls whether a command line is printed before it runs.
//
// The effective mode is computed once at load time from the recipe-level
// quiet flag and the per-line suppression marker, so the executor has a
// single branch per line.
type EchoMode int

const (
	// EchoCommand prints the command line to stdout before running it.
	EchoCommand EchoMode = iota
	// EchoSuppressed runs the command line without printing it.
	EchoSuppressed
)

// Line is one opaque command line of a recipe body.
type Line struct {
	// Text is the command exactly as it will be handed to the shell.
	Text string
	// Echo is the effective visibility of this line.
	Echo EchoMode
}

// NewLine builds a Line from raw loader input. A leading '@' marker
// suppresses echo for this line and is stripped from the text; quiet
// suppresses echo for the whole recipe.
func NewLine(text string, quiet bool) Line {
	echo := EchoCommand
	if len(text) > 0 && text[0] == '@' {
		text = text[1:]
		echo = EchoSuppressed
	}
	if quiet {
		echo = EchoSuppressed
	}
	return Line{Text: text, Echo: echo}
}

// Recipe is a single named unit of work.
type Recipe struct {
	// Name is the unique identifier within a document.
	Name string
	// Doc is an optional one-line description used only by list mode.
	Doc string
	// Quiet suppresses per-line echo for the whole body.
	Quiet bool
	// Dependencies are recipe names that must complete successfully
	// before this recipe's body runs, in declaration order.
	Dependencies []string
	// Body is the ordered sequence of command lines. An empty body is a
	// legal no-op recipe.
	Body []Line
}

// Set is an ordered, name-indexed collection of recipes loaded from one
// document. It is immutable once the loader returns it.
type Set struct {
	// Path is the document the set was loaded from.
	Path string
	// Dir is the directory command lines run in.
	Dir string

	recipes []*Recipe
	byName  map[string]*Recipe
}

// NewSet returns an empty set for the given document path and working
// directory.
func NewSet(path, dir string) *Set {
	return &Set{
		Path:   path,
		Dir:    dir,
		byName: make(map[string]*Recipe),
	}
}

// Add appends a recipe, preserving declaration order. Adding a second
// recipe with the same name is an error.
func (s *Set) Add(r *Recipe) error {
	if _, exists := s.byName[r.Name]; exists {
		return fmt.Errorf("duplicate recipe name %q", r.Name)
	}
	s.byName[r.Name] = r
	s.recipes = append(s.recipes, r)
	return nil
}

// Lookup returns the recipe with the given name.
func (s *Set) Lookup(name string) (*Recipe, bool) {
	r, ok := s.byName[name]
	return r, ok
}

// Recipes returns the recipes in declaration order. The returned slice is
// a copy; the recipes themselves are shared.
func (s *Set) Recipes() []*Recipe {
	out := make([]*Recipe, len(s.recipes))
	copy(out, s.recipes)
	return out
}

// Len returns the number of recipes in the set.
func (s *Set) Len() int { return len(s.recipes) }
