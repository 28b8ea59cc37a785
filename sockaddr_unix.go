//go:build unix

// SPDX-License-Identifier: GPL-3.0-or-later

package sockaddr

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Sockaddr converts the address to the native [unix.Sockaddr] representation
// used by the socket system calls.
func (a Address) Sockaddr() unix.Sockaddr {
	switch a.Family() {
	case FamilyIPv4:
		return &unix.SockaddrInet4{Port: int(a.port), Addr: a.ip.As4()}
	case FamilyIPv6:
		return &unix.SockaddrInet6{Port: int(a.port), Addr: a.ip.As16()}
	default:
		return &unix.SockaddrUnix{Name: a.path}
	}
}

// AddressFromSockaddr converts a native [unix.Sockaddr] to an [Address].
//
// Families other than AF_INET, AF_INET6 and AF_UNIX fail with an error
// wrapping [ErrInvalidArgument].
func AddressFromSockaddr(sa unix.Sockaddr) (Address, error) {
	switch v := sa.(type) {
	case *unix.SockaddrInet4:
		return NetworkAddressIPv4(IPv4FromBytes(v.Addr), Port(v.Port)), nil
	case *unix.SockaddrInet6:
		return NetworkAddressIPv6(IPv6From16(v.Addr), Port(v.Port)), nil
	case *unix.SockaddrUnix:
		return UnixAddress(v.Name)
	default:
		return Address{}, fmt.Errorf("%w: address family not supported: %T", ErrInvalidArgument, sa)
	}
}
