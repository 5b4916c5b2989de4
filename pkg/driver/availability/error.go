// Package availability holds the errors capture backends report when a
// display cannot deliver a frame.
package availability

import (
	"errors"
)

var (
	ErrUnimplemented = NewError("not implemented")
	ErrBusy          = NewError("device or resource busy")
	ErrNoDevice      = NewError("no such device")

	// ErrSessionUnavailable means the platform capture resource could not be
	// obtained, e.g. no display connection or no shared memory extension.
	ErrSessionUnavailable = NewError("capture session unavailable")
	// ErrPermissionDenied means the platform refused to hand out the screen
	// contents. It may be temporary.
	ErrPermissionDenied = NewError("permission to capture denied")
	// ErrTimeout means no frame was delivered before the deadline.
	ErrTimeout = NewError("timed out waiting for frame")
	// ErrLost means the display was reconfigured. The session has to be
	// prepared again.
	ErrLost = NewError("capture session lost")
)

type errorString struct {
	s string
}

func NewError(text string) error {
	return &errorString{text}
}

// IsError reports whether err wraps one of the availability errors.
func IsError(err error) bool {
	var target *errorString
	return errors.As(err, &target)
}

func (e *errorString) Error() string {
	return e.s
}
