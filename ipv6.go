// SPDX-License-Identifier: GPL-3.0-or-later

package sockaddr

import (
	"encoding/binary"
	"fmt"
	"net/netip"
)

// maxIPv6TextLen is INET6_ADDRSTRLEN without the terminator.
const maxIPv6TextLen = 45

// IPv6 is an IPv6 address stored in network byte order.
//
// The zero value is the wildcard address ::.
type IPv6 struct {
	addr [16]byte
}

// IPv6From16 constructs an [IPv6] from its raw 16 bytes.
func IPv6From16(b [16]byte) IPv6 {
	return IPv6{addr: b}
}

// IPv6FromUint16s constructs an [IPv6] whose first four groups are the
// given 16-bit values, each stored in network byte order. The remaining
// groups are zero.
//
// Note that this differs from [IPv6FromBytes], which copies bytes verbatim.
func IPv6FromUint16s(groups [4]uint16) IPv6 {
	var ip IPv6
	for idx, group := range groups {
		binary.BigEndian.PutUint16(ip.addr[2*idx:], group)
	}
	return ip
}

// IPv6FromBytes constructs an [IPv6] whose first eight bytes are copied
// verbatim from b. The remaining bytes are zero.
func IPv6FromBytes(b [8]byte) IPv6 {
	var ip IPv6
	copy(ip.addr[:], b[:])
	return ip
}

// ParseIPv6 parses the textual representation of an IPv6 address.
//
// Errors wrap [ErrInvalidArgument]. IPv4 literals, zoned addresses and text
// longer than the longest valid IPv6 literal are rejected.
func ParseIPv6(s string) (IPv6, error) {
	if len(s) > maxIPv6TextLen {
		return IPv6{}, fmt.Errorf("%w: IPv6 address text too long: %q", ErrInvalidArgument, s)
	}
	addr, err := netip.ParseAddr(s)
	if err != nil || !addr.Is6() || addr.Zone() != "" {
		return IPv6{}, fmt.Errorf("%w: invalid IPv6 address: %q", ErrInvalidArgument, s)
	}
	return IPv6{addr: addr.As16()}, nil
}

// MustParseIPv6 is like [ParseIPv6] but panics on error.
func MustParseIPv6(s string) IPv6 {
	ip, err := ParseIPv6(s)
	if err != nil {
		panic(err)
	}
	return ip
}

// IPv6Any returns the IPv6 wildcard address ::.
func IPv6Any() IPv6 {
	return IPv6{}
}

// IPv6Loopback returns the IPv6 loopback address ::1.
func IPv6Loopback() IPv6 {
	return IPv6{addr: [16]byte{15: 1}}
}

// As16 returns the address bytes in network byte order.
func (ip IPv6) As16() [16]byte {
	return ip.addr
}

// Addr returns the equivalent [netip.Addr].
func (ip IPv6) Addr() netip.Addr {
	return netip.AddrFrom16(ip.addr)
}

// String returns the canonical textual representation.
func (ip IPv6) String() string {
	return ip.Addr().String()
}
