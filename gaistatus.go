// SPDX-License-Identifier: GPL-3.0-or-later

package sockaddr

import (
	"context"
	"errors"
	"net"
)

// ResolverStatus is a name resolution status code.
//
// The values and descriptions follow the getaddrinfo(3) EAI_* codes.
type ResolverStatus int

// Resolver status codes.
const (
	StatusOK         ResolverStatus = 0
	StatusBadFlags   ResolverStatus = -1
	StatusNoName     ResolverStatus = -2
	StatusAgain      ResolverStatus = -3
	StatusFail       ResolverStatus = -4
	StatusNoData     ResolverStatus = -5
	StatusFamily     ResolverStatus = -6
	StatusSockType   ResolverStatus = -7
	StatusService    ResolverStatus = -8
	StatusAddrFamily ResolverStatus = -9
	StatusMemory     ResolverStatus = -10
	StatusSystem     ResolverStatus = -11
	StatusOverflow   ResolverStatus = -12
)

var statusText = map[ResolverStatus]string{
	StatusOK:         "Success",
	StatusBadFlags:   "Bad value for ai_flags",
	StatusNoName:     "Name or service not known",
	StatusAgain:      "Temporary failure in name resolution",
	StatusFail:       "Non-recoverable failure in name resolution",
	StatusNoData:     "No address associated with hostname",
	StatusFamily:     "ai_family not supported",
	StatusSockType:   "ai_socktype not supported",
	StatusService:    "Servname not supported for ai_socktype",
	StatusAddrFamily: "Address family for hostname not supported",
	StatusMemory:     "Memory allocation failure",
	StatusSystem:     "System error",
	StatusOverflow:   "Argument buffer overflow",
}

var statusName = map[ResolverStatus]string{
	StatusOK:         "EAI_OK",
	StatusBadFlags:   "EAI_BADFLAGS",
	StatusNoName:     "EAI_NONAME",
	StatusAgain:      "EAI_AGAIN",
	StatusFail:       "EAI_FAIL",
	StatusNoData:     "EAI_NODATA",
	StatusFamily:     "EAI_FAMILY",
	StatusSockType:   "EAI_SOCKTYPE",
	StatusService:    "EAI_SERVICE",
	StatusAddrFamily: "EAI_ADDRFAMILY",
	StatusMemory:     "EAI_MEMORY",
	StatusSystem:     "EAI_SYSTEM",
	StatusOverflow:   "EAI_OVERFLOW",
}

// Name returns the symbolic name of the status (e.g., "EAI_NONAME").
func (s ResolverStatus) Name() string {
	if name, found := statusName[s]; found {
		return name
	}
	return "EAI_UNKNOWN"
}

// String returns the resolver's description of the status.
func (s ResolverStatus) String() string {
	if text, found := statusText[s]; found {
		return text
	}
	return "Unknown error"
}

// AddrResolutionError is the error returned when name resolution or
// numeric address formatting fails.
type AddrResolutionError struct {
	// Status is the resolver status code.
	Status ResolverStatus

	// Err is the optional underlying error.
	Err error
}

var _ error = &AddrResolutionError{}

// NewAddrResolutionError returns a new [*AddrResolutionError].
func NewAddrResolutionError(status ResolverStatus, err error) *AddrResolutionError {
	return &AddrResolutionError{Status: status, Err: err}
}

// Error implements error.
func (e *AddrResolutionError) Error() string {
	return "address resolution failed: " + e.Status.String()
}

// Unwrap returns the underlying error, if any.
func (e *AddrResolutionError) Unwrap() error {
	return e.Err
}

// StatusFromError maps an error returned by a Go resolver to a [ResolverStatus].
//
// A nil error maps to [StatusOK]. An [*AddrResolutionError] maps to its own status.
func StatusFromError(err error) ResolverStatus {
	if err == nil {
		return StatusOK
	}

	var resErr *AddrResolutionError
	if errors.As(err, &resErr) {
		return resErr.Status
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return StatusAgain
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		switch {
		case dnsErr.IsNotFound:
			return StatusNoName
		case dnsErr.IsTimeout || dnsErr.IsTemporary:
			return StatusAgain
		default:
			return StatusFail
		}
	}

	var addrErr *net.AddrError
	if errors.As(err, &addrErr) {
		return StatusNoName
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return StatusAgain
	}

	return StatusSystem
}
