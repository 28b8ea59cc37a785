// SPDX-License-Identifier: GPL-3.0-or-later

package sockaddr

import (
	"encoding/binary"
	"fmt"
	"net/netip"
)

// maxIPv4TextLen is the longest valid dotted-decimal IPv4 text
// ("255.255.255.255"), that is INET_ADDRSTRLEN without the terminator.
const maxIPv4TextLen = 15

// IPv4 is an IPv4 address stored in network byte order.
//
// The zero value is the wildcard address 0.0.0.0.
type IPv4 struct {
	addr [4]byte
}

// IPv4FromUint32 constructs an [IPv4] from its numeric value, where the
// most significant byte is the first octet (e.g., 0x7f000001 is 127.0.0.1).
func IPv4FromUint32(v uint32) IPv4 {
	var ip IPv4
	binary.BigEndian.PutUint32(ip.addr[:], v)
	return ip
}

// IPv4FromBytes constructs an [IPv4] from its octets, where b[0] is the most
// significant octet (IPv4FromBytes([4]byte{10, 0, 0, 1}) is 10.0.0.1).
func IPv4FromBytes(b [4]byte) IPv4 {
	return IPv4FromUint32(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]))
}

// ParseIPv4 parses the dotted-decimal representation of an IPv4 address.
//
// Errors wrap [ErrInvalidArgument]. Text longer than the longest valid
// IPv4 literal is rejected rather than truncated.
func ParseIPv4(s string) (IPv4, error) {
	if len(s) > maxIPv4TextLen {
		return IPv4{}, fmt.Errorf("%w: IPv4 address text too long: %q", ErrInvalidArgument, s)
	}
	addr, err := netip.ParseAddr(s)
	if err != nil || !addr.Is4() {
		return IPv4{}, fmt.Errorf("%w: invalid IPv4 address: %q", ErrInvalidArgument, s)
	}
	return IPv4{addr: addr.As4()}, nil
}

// MustParseIPv4 is like [ParseIPv4] but panics on error.
func MustParseIPv4(s string) IPv4 {
	ip, err := ParseIPv4(s)
	if err != nil {
		panic(err)
	}
	return ip
}

// IPv4Any returns the IPv4 wildcard address 0.0.0.0.
func IPv4Any() IPv4 {
	return IPv4{}
}

// IPv4Loopback returns the IPv4 loopback address 127.0.0.1.
func IPv4Loopback() IPv4 {
	return IPv4{addr: [4]byte{127, 0, 0, 1}}
}

// As4 returns the address octets in network byte order.
func (ip IPv4) As4() [4]byte {
	return ip.addr
}

// Uint32 returns the numeric value of the address (see [IPv4FromUint32]).
func (ip IPv4) Uint32() uint32 {
	return binary.BigEndian.Uint32(ip.addr[:])
}

// Addr returns the equivalent [netip.Addr].
func (ip IPv4) Addr() netip.Addr {
	return netip.AddrFrom4(ip.addr)
}

// String returns the dotted-decimal representation.
func (ip IPv4) String() string {
	return ip.Addr().String()
}
