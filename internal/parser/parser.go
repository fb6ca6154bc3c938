// Package parser reads the plain-text recipe document format.
//
// The format is line oriented. A header line `name:` starts a recipe,
// optionally prefixed with `@` (quiet shorthand), optionally followed by
// whitespace-separated dependency names, and optionally preceded by
// `[attr]` attribute lines and a contiguous block of `#` comment lines.
// Contiguous indented lines after the header form the body; a blank line
// or a column-zero line ends it.
package parser

import (
	"bufio"
	"bytes"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mkravets/gust/internal/recipe"
)

var (
	headerPattern = regexp.MustCompile(`^(@?)([A-Za-z_][A-Za-z0-9_-]*)[ \t]*:(.*)$`)
	namePattern   = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)
	attrPattern   = regexp.MustCompile(`^\[([A-Za-z][A-Za-z0-9_-]*)\][ \t]*$`)
)

// Parse turns the full text of a recipe document into a recipe set. It
// returns a *ParseError describing the first structural problem found.
func Parse(path string, src []byte) (*recipe.Set, error) {
	p := &docParser{
		path: path,
		set:  recipe.NewSet(path, filepath.Dir(path)),
	}

	sc := bufio.NewScanner(bytes.NewReader(src))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for sc.Scan() {
		n++
		if err := p.line(n, sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if err := p.finish(); err != nil {
		return nil, err
	}
	return p.set, nil
}

// docParser holds the line scanner's state. Recipes are added to the set
// as soon as their header is seen; body lines append to the open recipe.
type docParser struct {
	path string
	set  *recipe.Set

	// Pending column-zero context for the next header.
	comments []string
	attrs    []string
	attrLine int

	// Open recipe, nil between recipes.
	current *recipe.Recipe
	indent  string
}

func (p *docParser) line(n int, text string) error {
	blank := strings.TrimSpace(text) == ""

	if p.current != nil {
		if blank {
			p.closeBody()
			return nil
		}
		if text[0] == ' ' || text[0] == '\t' {
			return p.bodyLine(n, text)
		}
		// Dedent to column zero ends the body; the line is handled
		// as top-level below.
		p.closeBody()
	}

	switch {
	case blank:
		if len(p.attrs) > 0 {
			return errorf(p.path, p.attrLine, "attribute is not attached to a recipe header")
		}
		p.comments = nil
		return nil

	case strings.HasPrefix(text, "#"):
		if len(p.attrs) > 0 {
			return errorf(p.path, n, "expected recipe header after attribute, found comment")
		}
		p.comments = append(p.comments, strings.TrimSpace(strings.TrimPrefix(text, "#")))
		return nil

	default:
		if m := attrPattern.FindStringSubmatch(text); m != nil {
			return p.attrLineAt(n, m[1])
		}
		if m := headerPattern.FindStringSubmatch(text); m != nil {
			return p.header(n, m)
		}
		return errorf(p.path, n, "expected recipe header, found %q", text)
	}
}

func (p *docParser) attrLineAt(n int, name string) error {
	if name != "quiet" {
		return errorf(p.path, n, "unknown attribute %q", name)
	}
	p.attrs = append(p.attrs, name)
	p.attrLine = n
	return nil
}

func (p *docParser) header(n int, m []string) error {
	quiet := m[1] == "@"
	for _, attr := range p.attrs {
		if attr == "quiet" {
			quiet = true
		}
	}

	var deps []string
	for _, dep := range strings.Fields(m[3]) {
		if !namePattern.MatchString(dep) {
			return errorf(p.path, n, "invalid dependency name %q in recipe %q", dep, m[2])
		}
		deps = append(deps, dep)
	}

	// The last line of the contiguous comment block is the doc string.
	doc := ""
	if len(p.comments) > 0 {
		doc = p.comments[len(p.comments)-1]
	}

	r := &recipe.Recipe{
		Name:         m[2],
		Doc:          doc,
		Quiet:        quiet,
		Dependencies: deps,
	}
	if err := p.set.Add(r); err != nil {
		return errorf(p.path, n, "%v", err)
	}

	p.current = r
	p.indent = ""
	p.comments = nil
	p.attrs = nil
	return nil
}

func (p *docParser) bodyLine(n int, text string) error {
	if p.indent == "" {
		// The first body line fixes the indent prefix for the recipe.
		i := 0
		for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
			i++
		}
		p.indent = text[:i]
	} else if !strings.HasPrefix(text, p.indent) {
		return errorf(p.path, n, "inconsistent indentation in recipe %q", p.current.Name)
	}

	p.current.Body = append(p.current.Body, recipe.NewLine(text[len(p.indent):], p.current.Quiet))
	return nil
}

func (p *docParser) closeBody() {
	p.current = nil
	p.indent = ""
}

func (p *docParser) finish() error {
	if len(p.attrs) > 0 {
		return errorf(p.path, p.attrLine, "attribute is not attached to a recipe header")
	}
	p.closeBody()
	return nil
}
