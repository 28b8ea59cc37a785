// SPDX-License-Identifier: GPL-3.0-or-later

package sockaddr

import "errors"

var (
	// ErrInvalidArgument indicates malformed input such as an unparsable
	// address, an out-of-range port, or an oversized Unix path.
	ErrInvalidArgument = errors.New("sockaddr: invalid argument")

	// ErrRuntimeFailure indicates an environment-level failure that is not
	// tied to a specific input (e.g., failing to enumerate interfaces).
	ErrRuntimeFailure = errors.New("sockaddr: runtime failure")

	// ErrLogic indicates a programming error (e.g., using a handler
	// before it has been associated with a transport).
	ErrLogic = errors.New("sockaddr: logic error")
)

// Error is a generic error carrying a human readable message and,
// optionally, the underlying OS error.
type Error struct {
	// Message is the human readable message.
	Message string

	// Err is the optional underlying OS error.
	Err error
}

var _ error = &Error{}

// NewError returns a new [*Error] with the given message.
func NewError(message string) *Error {
	return &Error{Message: message}
}

// SystemError returns a new [*Error] whose message is decorated
// with the description of the given OS error.
func SystemError(message string, err error) *Error {
	return &Error{Message: message, Err: err}
}

// Error implements error.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

// Unwrap returns the underlying OS error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}
