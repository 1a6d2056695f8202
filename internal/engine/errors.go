package engine

import "fmt"

// LoadError means the dataset file could not be read or its header is unusable.
type LoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("load %s: %s", e.Path, e.Reason)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ParseError identifies a malformed cell. Line is the 1-based line in the
// file (header is line 1), Row the 0-based data row.
type ParseError struct {
	Line  int
	Row   int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse line %d (row %d): field %s: invalid value %q: %v", e.Line, e.Row, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// EmptyViewError is returned when an aggregate needs at least one row.
type EmptyViewError struct {
	Op    string
	Field Field
}

func (e *EmptyViewError) Error() string {
	return fmt.Sprintf("%s(%s): view has no rows", e.Op, e.Field)
}

// UndefinedCorrelationError marks a correlation cell that has no value.
type UndefinedCorrelationError struct {
	RowField Field
	ColField Field
	Reason   string
}

func (e *UndefinedCorrelationError) Error() string {
	return fmt.Sprintf("correlation(%s, %s) undefined: %s", e.RowField, e.ColField, e.Reason)
}

// InvalidArgumentError reports a rejected parameter.
type InvalidArgumentError struct {
	Param  string
	Value  any
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Param, e.Value, e.Reason)
}
