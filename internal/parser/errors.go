package parser

import (
	"errors"
	"fmt"
)

// ErrParse is the sentinel wrapped by every ParseError.
var ErrParse = errors.New("malformed recipe document")

// ParseError reports a structural problem in a recipe document: a malformed
// header, a duplicate name, an unknown attribute, or inconsistent body
// indentation.
type ParseError struct {
	Path string
	Line int // 1-based
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error { return ErrParse }

func errorf(path string, line int, format string, args ...any) error {
	return &ParseError{Path: path, Line: line, Msg: fmt.Sprintf(format, args...)}
}
