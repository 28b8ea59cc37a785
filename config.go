// SPDX-License-Identifier: GPL-3.0-or-later

package sockaddr

import (
	"net"
	"time"
)

// Config holds common configuration for sockaddr operations.
//
// Pass this to constructor functions to pre-wire dependencies.
// All fields have sensible defaults set by [NewConfig].
type Config struct {
	// Dialer is used by [*DNSResolver].
	//
	// Set by [NewConfig] to [*net.Dialer].
	Dialer Dialer

	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewConfig] to [DefaultErrClassifier].
	ErrClassifier ErrClassifier

	// InterfaceLister is used by [*IPv6SupportFunc].
	//
	// Set by [NewConfig] to [DefaultInterfaceLister].
	InterfaceLister InterfaceLister

	// Resolver is used by [*AddrInfoFunc].
	//
	// Set by [NewConfig] to a [*SystemResolver].
	Resolver Resolver

	// TimeNow returns the current time.
	//
	// Set by [NewConfig] to [time.Now].
	TimeNow func() time.Time
}

// NewConfig creates a [*Config] with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Dialer:          &net.Dialer{},
		ErrClassifier:   DefaultErrClassifier,
		InterfaceLister: DefaultInterfaceLister,
		Resolver:        NewSystemResolver(),
		TimeNow:         time.Now,
	}
}
