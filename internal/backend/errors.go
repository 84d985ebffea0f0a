package backend

import "errors"

// unavailableError signals that the native library cannot be reached.
type unavailableError struct{ msg string }

func (e unavailableError) Error() string { return e.msg }

// ErrUnavailable constructs an unavailableError.
func ErrUnavailable(msg string) error { return unavailableError{msg: msg} }

// IsUnavailable reports whether err indicates a missing or failed backend.
func IsUnavailable(err error) bool {
	var u unavailableError
	return errors.As(err, &u)
}

// ErrClosed is returned by Kick after Close.
var ErrClosed = errors.New("reconciler closed")
