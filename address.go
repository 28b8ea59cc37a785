// SPDX-License-Identifier: GPL-3.0-or-later

package sockaddr

import (
	"fmt"
	"net"
	"net/netip"
	"strings"

	"go4.org/netipx"
)

// Family identifies which representation an [Address] holds.
type Family uint8

const (
	// FamilyUnspec is the unspecified family. It is only meaningful in
	// resolver [Hints] and never describes a valid [Address].
	FamilyUnspec Family = iota

	// FamilyIPv4 is an IPv4 address and port.
	FamilyIPv4

	// FamilyIPv6 is an IPv6 address and port.
	FamilyIPv6

	// FamilyUnix is a Unix-domain socket path.
	FamilyUnix
)

// String returns the family name.
func (f Family) String() string {
	switch f {
	case FamilyIPv4:
		return "IPv4"
	case FamilyIPv6:
		return "IPv6"
	case FamilyUnix:
		return "Unix"
	default:
		return "Unspec"
	}
}

// unixPrefix prefixes Unix paths in the text form accepted by [ParseAddress].
const unixPrefix = "unix:"

// Address is a socket address: an IPv4 address and port, an IPv6 address
// and port, or a Unix-domain socket path.
//
// Construct an Address using [NetworkAddressIPv4], [NetworkAddressIPv6],
// [UnixAddress], [ParseNetworkAddress] or [ParseAddress]. The zero value
// is not a valid address and calling [Address.Family] on it panics.
//
// Address is a comparable value type that is safe to copy and to use
// concurrently from multiple goroutines.
type Address struct {
	// family is the discriminant selecting the active member.
	family Family

	// ip is the address for the IP families.
	ip netip.Addr

	// port is the port for the IP families.
	port Port

	// path is the path for the Unix family.
	path string
}

// NetworkAddressIPv4 returns the [Address] for the given IPv4 address and port.
func NetworkAddressIPv4(ip IPv4, port Port) Address {
	return Address{family: FamilyIPv4, ip: ip.Addr(), port: port}
}

// NetworkAddressIPv6 returns the [Address] for the given IPv6 address and port.
func NetworkAddressIPv6(ip IPv6, port Port) Address {
	return Address{family: FamilyIPv6, ip: ip.Addr(), port: port}
}

// UnixAddress returns the [Address] for the given Unix-domain socket path.
//
// Paths longer than [MaxUnixPathLen] fail with an error wrapping
// [ErrInvalidArgument], since they cannot be stored in the native
// socket address structure.
func UnixAddress(path string) (Address, error) {
	if len(path) > MaxUnixPathLen {
		return Address{}, fmt.Errorf(
			"%w: unix path is %d bytes, maximum is %d", ErrInvalidArgument, len(path), MaxUnixPathLen)
	}
	return Address{family: FamilyUnix, path: path}, nil
}

// ParseNetworkAddress parses "<ipv4>:<port>", "*:<port>" or "[<ipv6>]:<port>".
//
// The rightmost colon separates the port. When both brackets are present
// the host is parsed as IPv6. Otherwise the host is parsed as IPv4, with
// "*" standing for the IPv4 wildcard address. Hence an input containing
// a single bracket fails as an invalid IPv4 address.
//
// Errors wrap [ErrInvalidArgument].
func ParseNetworkAddress(s string) (Address, error) {
	portPos := strings.LastIndexByte(s, ':')
	if portPos < 0 {
		return Address{}, fmt.Errorf("%w: missing port in address %q", ErrInvalidArgument, s)
	}
	ipv6Beg := strings.IndexByte(s[:portPos], '[')
	ipv6End := strings.IndexByte(s, ']')

	port, err := ParsePort(s[portPos+1:])
	if err != nil {
		return Address{}, err
	}

	if ipv6Beg >= 0 && ipv6End >= 0 {
		if ipv6End < ipv6Beg || ipv6End != portPos-1 {
			return Address{}, fmt.Errorf("%w: malformed bracketed address %q", ErrInvalidArgument, s)
		}
		ip, err := ParseIPv6(s[ipv6Beg+1 : ipv6End])
		if err != nil {
			return Address{}, err
		}
		return NetworkAddressIPv6(ip, port), nil
	}

	host := s[:portPos]
	ip := IPv4Any()
	if host != "*" {
		ip, err = ParseIPv4(host)
		if err != nil {
			return Address{}, err
		}
	}
	return NetworkAddressIPv4(ip, port), nil
}

// MustParseNetworkAddress is like [ParseNetworkAddress] but panics on error.
func MustParseNetworkAddress(s string) Address {
	addr, err := ParseNetworkAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}

// ParseAddress is like [ParseNetworkAddress] but additionally accepts
// "unix:<path>" for Unix-domain socket addresses.
func ParseAddress(s string) (Address, error) {
	if path, found := strings.CutPrefix(s, unixPrefix); found {
		return UnixAddress(path)
	}
	return ParseNetworkAddress(s)
}

// AddressFromAddrPort converts a [netip.AddrPort] to an [Address].
//
// IPv4-mapped IPv6 addresses are kept in the IPv6 family. Zones are
// dropped. Invalid inputs fail with [ErrInvalidArgument].
func AddressFromAddrPort(ap netip.AddrPort) (Address, error) {
	ip := ap.Addr()
	switch {
	case ip.Is4():
		return NetworkAddressIPv4(IPv4{addr: ip.As4()}, Port(ap.Port())), nil
	case ip.Is6():
		return NetworkAddressIPv6(IPv6{addr: ip.As16()}, Port(ap.Port())), nil
	default:
		return Address{}, fmt.Errorf("%w: invalid address %q", ErrInvalidArgument, ap.String())
	}
}

// AddressFromNetAddr converts a [*net.TCPAddr], [*net.UDPAddr], [*net.IPAddr]
// or [*net.UnixAddr] to an [Address].
//
// Other address types fail with [ErrInvalidArgument].
func AddressFromNetAddr(addr net.Addr) (Address, error) {
	switch v := addr.(type) {
	case *net.TCPAddr:
		return addressFromStd(v.IP, v.Port, v.Zone)
	case *net.UDPAddr:
		return addressFromStd(v.IP, v.Port, v.Zone)
	case *net.IPAddr:
		return addressFromStd(v.IP, 0, v.Zone)
	case *net.UnixAddr:
		return UnixAddress(v.Name)
	default:
		return Address{}, fmt.Errorf("%w: address family not supported: %T", ErrInvalidArgument, addr)
	}
}

func addressFromStd(ip net.IP, port int, zone string) (Address, error) {
	ap, ok := netipx.FromStdAddr(ip, port, zone)
	if !ok {
		return Address{}, fmt.Errorf("%w: invalid address %v port %d", ErrInvalidArgument, ip, port)
	}
	return AddressFromAddrPort(ap)
}

// Family returns the family of the address.
//
// It panics if the address was not built through one of the constructors.
func (a Address) Family() Family {
	switch a.family {
	case FamilyIPv4, FamilyIPv6, FamilyUnix:
		return a.family
	default:
		panic("sockaddr: unexpected socket address family")
	}
}

// Host returns the numeric host for IP addresses and an empty string for
// Unix addresses. It never performs reverse DNS lookups.
func (a Address) Host() string {
	switch a.Family() {
	case FamilyIPv4, FamilyIPv6:
		return a.ip.String()
	default:
		return ""
	}
}

// Port returns the port and true for IP addresses and 0 and false for
// Unix addresses.
func (a Address) Port() (Port, bool) {
	switch a.Family() {
	case FamilyIPv4, FamilyIPv6:
		return a.port, true
	default:
		return 0, false
	}
}

// Path returns the socket path for Unix addresses and an empty string
// for IP addresses.
func (a Address) Path() string {
	if a.Family() == FamilyUnix {
		return a.path
	}
	return ""
}

// IPv4 returns the IPv4 address and true for [FamilyIPv4] addresses.
func (a Address) IPv4() (IPv4, bool) {
	if a.Family() != FamilyIPv4 {
		return IPv4{}, false
	}
	return IPv4{addr: a.ip.As4()}, true
}

// IPv6 returns the IPv6 address and true for [FamilyIPv6] addresses.
func (a Address) IPv6() (IPv6, bool) {
	if a.Family() != FamilyIPv6 {
		return IPv6{}, false
	}
	return IPv6{addr: a.ip.As16()}, true
}

// AddrPort returns the [netip.AddrPort] and true for IP addresses.
func (a Address) AddrPort() (netip.AddrPort, bool) {
	if a.Family() == FamilyUnix {
		return netip.AddrPort{}, false
	}
	return netip.AddrPortFrom(a.ip, uint16(a.port)), true
}

// NetAddr converts the address to a [net.Addr] for the given network.
//
// IP addresses map to [*net.UDPAddr] for "udp", "udp4" and "udp6" and to
// [*net.TCPAddr] otherwise. Unix addresses map to [*net.UnixAddr], using
// "unix" when network is empty.
func (a Address) NetAddr(network string) net.Addr {
	if a.Family() == FamilyUnix {
		if network == "" {
			network = "unix"
		}
		return &net.UnixAddr{Name: a.path, Net: network}
	}
	ap, _ := a.AddrPort()
	switch network {
	case "udp", "udp4", "udp6":
		return net.UDPAddrFromAddrPort(ap)
	default:
		return net.TCPAddrFromAddrPort(ap)
	}
}

// String returns "host:port" for IPv4, "[host]:port" for IPv6 and the path
// for Unix addresses. The output of String for IP addresses is accepted
// by [ParseNetworkAddress].
func (a Address) String() string {
	switch a.Family() {
	case FamilyIPv6:
		return "[" + a.ip.String() + "]:" + a.port.String()
	case FamilyIPv4:
		return a.ip.String() + ":" + a.port.String()
	default:
		return a.path
	}
}

// MarshalText implements [encoding.TextMarshaler].
//
// Unix addresses are prefixed with "unix:" so that [Address.UnmarshalText]
// can round-trip them.
func (a Address) MarshalText() ([]byte, error) {
	if a.family == FamilyUnspec {
		return []byte{}, nil
	}
	if a.family == FamilyUnix {
		return []byte(unixPrefix + a.path), nil
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler] using [ParseAddress].
func (a *Address) UnmarshalText(text []byte) error {
	addr, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
