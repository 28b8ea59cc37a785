// SPDX-License-Identifier: GPL-3.0-or-later

package sockaddr

import (
	"fmt"
	"math"
	"strconv"
)

// Port is a TCP or UDP port number.
//
// The zero value is port 0, which is valid and means "any port"
// when used for binding.
type Port uint16

const (
	// MinPort is the smallest representable [Port].
	MinPort Port = 0

	// MaxPort is the largest representable [Port].
	MaxPort Port = math.MaxUint16

	// reservedPortLimit is the first non-reserved port.
	reservedPortLimit = 1024
)

// IsReserved returns whether the port is below 1024.
func (p Port) IsReserved() bool {
	return p < reservedPortLimit
}

// String returns the decimal representation of the port.
func (p Port) String() string {
	return strconv.FormatUint(uint64(p), 10)
}

// ParsePort parses a base-10 port number.
//
// The whole string must be consumed and the value must be within
// [MinPort, MaxPort]. Errors wrap [ErrInvalidArgument].
func ParsePort(s string) (Port, error) {
	value, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid port %q", ErrInvalidArgument, s)
	}
	if value > uint64(MaxPort) {
		return 0, fmt.Errorf("%w: port %d out of range", ErrInvalidArgument, value)
	}
	return Port(value), nil
}
