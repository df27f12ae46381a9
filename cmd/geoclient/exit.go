package main

import (
	"errors"

	geoerrors "github.com/gezibash/geoclient/pkg/errors"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// commandError carries the exit code and error code for a failed run.
type commandError struct {
	err   error
	code  string
	usage bool
}

func (e *commandError) Error() string { return e.err.Error() }
func (e *commandError) Unwrap() error { return e.err }

// ExitCode is 2 for command-line mistakes and 1 for everything else.
func (e *commandError) ExitCode() int {
	if e.usage {
		return exitUsage
	}
	return exitFailure
}

// classify maps err onto its error code and exit status.
func classify(err error) *commandError {
	var ce *commandError
	if errors.As(err, &ce) {
		return ce
	}
	class, _ := geoerrors.Classify(err)
	return &commandError{err: err, code: class.Code, usage: class.Usage}
}
