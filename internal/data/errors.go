package data

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("data artifact not found")
	ErrMissingColumn  = errors.New("missing column")
	ErrUnknownKeyword = errors.New("unknown keyword")
	ErrUnknownFormat  = errors.New("unknown artifact format")
)

// ParseError reports a malformed artifact.
type ParseError struct {
	Name string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s:%d: %v", e.Name, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Name, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// CellError reports a cell that cannot be read as the requested type.
type CellError struct {
	Column string
	Row    int
	Value  string
	Err    error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("column %q row %d: cannot parse %q: %v", e.Column, e.Row, e.Value, e.Err)
}

func (e *CellError) Unwrap() error { return e.Err }
