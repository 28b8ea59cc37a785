// SPDX-License-Identifier: GPL-3.0-or-later

package sockaddr

import (
	"context"
	"net/netip"
)

// Resolver translates a node and a service into a list of candidate
// socket addresses, in the manner of getaddrinfo(3).
//
// GetAddrInfo returns the head of a linked list of records or an
// [*AddrResolutionError]. Each list returned by GetAddrInfo must be
// released exactly once by passing it to FreeAddrInfo. Use [NewAddrInfo]
// rather than calling these methods directly.
type Resolver interface {
	GetAddrInfo(ctx context.Context, node, service string, hints *Hints) (*AddrRecord, error)
	FreeAddrInfo(list *AddrRecord)
}

// SocketType is the socket type of a resolved candidate.
type SocketType int

const (
	// SocketTypeAny matches any socket type in [Hints].
	SocketTypeAny SocketType = 0

	// SocketTypeStream is SOCK_STREAM.
	SocketTypeStream SocketType = 1

	// SocketTypeDgram is SOCK_DGRAM.
	SocketTypeDgram SocketType = 2
)

// String returns the socket type name.
func (st SocketType) String() string {
	switch st {
	case SocketTypeAny:
		return "any"
	case SocketTypeStream:
		return "stream"
	case SocketTypeDgram:
		return "dgram"
	default:
		return "unknown"
	}
}

// Protocol is the IP protocol number of a resolved candidate.
type Protocol int

const (
	// ProtocolAny matches any protocol in [Hints].
	ProtocolAny Protocol = 0

	// ProtocolTCP is IPPROTO_TCP.
	ProtocolTCP Protocol = 6

	// ProtocolUDP is IPPROTO_UDP.
	ProtocolUDP Protocol = 17
)

// String returns the protocol name.
func (p Protocol) String() string {
	switch p {
	case ProtocolAny:
		return "any"
	case ProtocolTCP:
		return "tcp"
	case ProtocolUDP:
		return "udp"
	default:
		return "unknown"
	}
}

// Flags modifies the behavior of a [Resolver].
type Flags uint32

const (
	// FlagPassive returns wildcard addresses suitable for binding when
	// the node is empty. Without it, an empty node means loopback.
	FlagPassive Flags = 1 << iota

	// FlagCanonName requests the canonical name in the first record.
	FlagCanonName

	// FlagNumericHost forbids looking up the node by name.
	FlagNumericHost

	// FlagNumericServ forbids looking up the service by name.
	FlagNumericServ

	allFlags = FlagPassive | FlagCanonName | FlagNumericHost | FlagNumericServ
)

// Hints restricts the records returned by a [Resolver].
//
// The zero value, like a nil *Hints, allows any family, socket type
// and protocol with no flags set.
type Hints struct {
	// Flags contains the resolver flags.
	Flags Flags

	// Family restricts the address family: [FamilyUnspec], [FamilyIPv4] or [FamilyIPv6].
	Family Family

	// SocketType restricts the socket type.
	SocketType SocketType

	// Protocol restricts the protocol.
	Protocol Protocol
}

// addrInfoBackend performs the lookups that require a name service.
type addrInfoBackend interface {
	lookupHost(ctx context.Context, host string, family Family) ([]netip.Addr, error)
	lookupCanonName(ctx context.Context, host string) (string, error)
	lookupPort(ctx context.Context, network, service string) (int, error)
}

// socketKind is a socket type and the protocol it implies.
type socketKind struct {
	socketType SocketType
	protocol   Protocol
}

var allSocketKinds = []socketKind{
	{SocketTypeStream, ProtocolTCP},
	{SocketTypeDgram, ProtocolUDP},
}

// getAddrInfo implements the getaddrinfo algorithm shared by all the
// resolvers, delegating name lookups to the backend.
func getAddrInfo(ctx context.Context, be addrInfoBackend,
	node, service string, hints *Hints) (*AddrRecord, error) {
	var h Hints
	if hints != nil {
		h = *hints
	}

	if h.Flags&^allFlags != 0 {
		return nil, NewAddrResolutionError(StatusBadFlags, nil)
	}
	switch h.Family {
	case FamilyUnspec, FamilyIPv4, FamilyIPv6:
	default:
		return nil, NewAddrResolutionError(StatusFamily, nil)
	}
	kinds := selectSocketKinds(h)
	if len(kinds) == 0 {
		return nil, NewAddrResolutionError(StatusSockType, nil)
	}
	if node == "" && service == "" {
		return nil, NewAddrResolutionError(StatusNoName, nil)
	}

	port, err := resolveService(ctx, be, service, h, kinds)
	if err != nil {
		return nil, err
	}
	addrs, numeric, err := resolveNode(ctx, be, node, h)
	if err != nil {
		return nil, err
	}

	var canonName string
	if h.Flags&FlagCanonName != 0 && node != "" {
		canonName = node
		if !numeric {
			if name, err := be.lookupCanonName(ctx, node); err == nil && name != "" {
				canonName = name
			}
		}
	}

	var records []AddrRecord
	for _, ip := range addrs {
		addr, err := AddressFromAddrPort(netip.AddrPortFrom(ip, uint16(port)))
		if err != nil {
			continue
		}
		for _, kind := range kinds {
			records = append(records, AddrRecord{
				Flags:      h.Flags,
				Family:     addr.Family(),
				SocketType: kind.socketType,
				Protocol:   kind.protocol,
				Address:    addr,
			})
		}
	}
	if len(records) == 0 {
		return nil, NewAddrResolutionError(StatusNoName, nil)
	}
	records[0].CanonName = canonName
	return NewAddrRecordList(records...), nil
}

// selectSocketKinds returns the socket kinds compatible with the hints.
func selectSocketKinds(h Hints) (out []socketKind) {
	for _, kind := range allSocketKinds {
		if h.SocketType != SocketTypeAny && h.SocketType != kind.socketType {
			continue
		}
		if h.Protocol != ProtocolAny && h.Protocol != kind.protocol {
			continue
		}
		out = append(out, kind)
	}
	return
}

// resolveService maps the service to a port number.
func resolveService(ctx context.Context, be addrInfoBackend,
	service string, h Hints, kinds []socketKind) (Port, error) {
	if service == "" {
		return 0, nil
	}
	if port, err := ParsePort(service); err == nil {
		return port, nil
	}
	if h.Flags&FlagNumericServ != 0 {
		return 0, NewAddrResolutionError(StatusNoName, nil)
	}
	network := "tcp"
	if kinds[0].protocol == ProtocolUDP {
		network = "udp"
	}
	value, err := be.lookupPort(ctx, network, service)
	if err != nil || value < int(MinPort) || value > int(MaxPort) {
		return 0, NewAddrResolutionError(StatusService, err)
	}
	return Port(value), nil
}

// resolveNode maps the node to addresses, also returning whether
// the node was a numeric address.
func resolveNode(ctx context.Context, be addrInfoBackend,
	node string, h Hints) ([]netip.Addr, bool, error) {
	if node == "" {
		return unnamedNodeAddrs(h), true, nil
	}

	if ip, err := netip.ParseAddr(node); err == nil {
		ip = ip.WithZone("")
		switch {
		case h.Family == FamilyIPv4 && !ip.Is4():
			return nil, true, NewAddrResolutionError(StatusAddrFamily, nil)
		case h.Family == FamilyIPv6 && !ip.Is6():
			return nil, true, NewAddrResolutionError(StatusAddrFamily, nil)
		}
		return []netip.Addr{ip}, true, nil
	}

	if h.Flags&FlagNumericHost != 0 {
		return nil, false, NewAddrResolutionError(StatusNoName, nil)
	}

	addrs, err := be.lookupHost(ctx, node, h.Family)
	if err != nil {
		return nil, false, NewAddrResolutionError(StatusFromError(err), err)
	}
	var out []netip.Addr
	for _, ip := range addrs {
		if h.Family != FamilyIPv6 {
			ip = ip.Unmap()
		}
		if (h.Family == FamilyIPv4 && !ip.Is4()) || (h.Family == FamilyIPv6 && !ip.Is6()) {
			continue
		}
		out = append(out, ip.WithZone(""))
	}
	return out, false, nil
}

// unnamedNodeAddrs returns the wildcard (passive) or loopback addresses
// used when the node is empty.
func unnamedNodeAddrs(h Hints) []netip.Addr {
	v4, v6 := IPv4Loopback().Addr(), IPv6Loopback().Addr()
	if h.Flags&FlagPassive != 0 {
		v4, v6 = IPv4Any().Addr(), IPv6Any().Addr()
	}
	switch h.Family {
	case FamilyIPv4:
		return []netip.Addr{v4}
	case FamilyIPv6:
		return []netip.Addr{v6}
	default:
		return []netip.Addr{v4, v6}
	}
}
