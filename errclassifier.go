// SPDX-License-Identifier: GPL-3.0-or-later

package sockaddr

import (
	"errors"

	"github.com/bassosimone/errclass"
)

// ErrClassifier classifies errors into categorical strings for analysis.
//
// Implementations map errors to short labels (e.g., "ETIMEDOUT") that
// end up in the errClass field of the structured logs.
type ErrClassifier interface {
	Classify(err error) string
}

// ErrClassifierFunc adapts a function to the [ErrClassifier] interface.
type ErrClassifierFunc func(error) string

var _ ErrClassifier = ErrClassifierFunc(nil)

// Classify implements [ErrClassifier].
func (f ErrClassifierFunc) Classify(err error) string {
	return f(err)
}

// DefaultErrClassifier classifies errors using [errclass.New] and maps
// resolution failures to their EAI_* status name.
var DefaultErrClassifier = ErrClassifierFunc(classifyError)

func classifyError(err error) string {
	if err == nil {
		return ""
	}
	var resErr *AddrResolutionError
	if errors.As(err, &resErr) {
		return resErr.Status.Name()
	}
	return errclass.New(err)
}
