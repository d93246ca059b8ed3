package scenario

import (
	"errors"
	"fmt"
)

// ErrNoSession is returned by a capture when there is no active browser session.
var ErrNoSession = errors.New("no active browser session")

// ErrInvalidCaptureName is returned by a named capture whose name has no usable file name part.
var ErrInvalidCaptureName = errors.New("capture name has no file name")

// StepError describes a failed step in a scenario's error list.
type StepError struct {
	Index  int
	Text   string
	Reason string
}

func (e StepError) Error() string {
	return fmt.Sprintf("step %d (%s) failed: %s", e.Index, e.Text, e.Reason)
}

// CaptureError is a failed artifact capture. It is only ever logged; a capture never changes a
// scenario's outcome.
type CaptureError struct {
	Name string
	Err  error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("could not capture %s: %v", e.Name, e.Err)
}

func (e *CaptureError) Unwrap() error { return e.Err }
