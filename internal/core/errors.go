package core

import (
	"errors"
	"fmt"
)

// Resolution and streaming failure kinds. Match them with errors.Is.
var (
	ErrMissingPathSpec  = errors.New("no path specification")
	ErrPathNotFound     = errors.New("path not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrEmptyResultSet   = errors.New("no files to read")
	ErrFileUnavailable  = errors.New("file unavailable at read time")
)

// Configuration failure kinds.
var (
	ErrRequiredValue   = errors.New("required value missing")
	ErrIllegalValue    = errors.New("illegal value")
	ErrMixedIndexValue = errors.New("column sets both index and value")
	ErrNoIndexValue    = errors.New("column sets neither index nor value")
)

// ErrDirtyRecord marks a row that could not be converted into a Record.
// Dirty rows are counted and skipped; they never stop a read.
var ErrDirtyRecord = errors.New("dirty record")

// PathError reports a failure tied to one path. It unwraps to both its Kind
// and the underlying OS error, if any.
type PathError struct {
	Kind error
	Path string
	Err  error
}

func (e *PathError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Path)
}

func (e *PathError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newPathError(kind error, path string, err error) *PathError {
	return &PathError{Kind: kind, Path: path, Err: err}
}
