// Package manifest loads recipes from HCL documents.
//
// The manifest dialect carries the same model as the plain-text format but
// declares dependencies first class:
//
//	recipe "test" {
//	  doc        = "run the test suite"
//	  quiet      = true
//	  depends_on = ["build"]
//	  run        = ["go test ./...", "@echo done"]
//	}
//
// Block order defines declaration order. A leading '@' on a run line still
// suppresses echo for that line only.
package manifest

import (
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/mkravets/gust/internal/recipe"
)

// fileRoot decodes the top-level blocks of a manifest. There is no remain
// body: unknown attributes or blocks are decode errors, not silently
// ignored.
type fileRoot struct {
	Recipes []*recipeBlock `hcl:"recipe,block"`
}

type recipeBlock struct {
	Name      string         `hcl:"name,label"`
	Doc       string         `hcl:"doc,optional"`
	Quiet     bool           `hcl:"quiet,optional"`
	DependsOn []string       `hcl:"depends_on,optional"`
	Run       hcl.Expression `hcl:"run,optional"`
}

// Load parses and decodes an HCL recipe manifest into a recipe set.
func Load(path string) (*recipe.Set, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, &DecodeError{Path: path, Detail: diags.Error()}
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, &DecodeError{Path: path, Detail: diags.Error()}
	}

	set := recipe.NewSet(path, filepath.Dir(path))
	for _, block := range root.Recipes {
		r, err := translate(path, block)
		if err != nil {
			return nil, err
		}
		if err := set.Add(r); err != nil {
			return nil, &DecodeError{Path: path, Detail: err.Error()}
		}
	}
	return set, nil
}

// translate turns one decoded block into an immutable recipe, evaluating
// the run expression into the body.
func translate(path string, block *recipeBlock) (*recipe.Recipe, error) {
	r := &recipe.Recipe{
		Name:         block.Name,
		Doc:          block.Doc,
		Quiet:        block.Quiet,
		Dependencies: block.DependsOn,
	}

	lines, err := decodeRun(path, block)
	if err != nil {
		return nil, err
	}
	for _, text := range lines {
		r.Body = append(r.Body, recipe.NewLine(text, block.Quiet))
	}
	return r, nil
}

// decodeRun evaluates the run attribute to a list of strings. Manifests
// are static documents, so evaluation uses no variable context.
func decodeRun(path string, block *recipeBlock) ([]string, error) {
	if block.Run == nil {
		return nil, nil // empty body is a legal no-op recipe
	}

	val, diags := block.Run.Value(nil)
	if diags.HasErrors() {
		return nil, &DecodeError{Path: path, Detail: diags.Error()}
	}

	val, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, &DecodeError{
			Path:   path,
			Detail: fmt.Sprintf("run for recipe %q must be a list of strings: %v", block.Name, err),
		}
	}
	if val.IsNull() || val.LengthInt() == 0 {
		return nil, nil
	}

	lines := make([]string, 0, val.LengthInt())
	for it := val.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		lines = append(lines, elem.AsString())
	}
	return lines, nil
}
