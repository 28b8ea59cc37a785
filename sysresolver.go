// SPDX-License-Identifier: GPL-3.0-or-later

package sockaddr

import (
	"context"
	"net"
	"net/netip"
	"strings"
)

// NewSystemResolver returns a [*SystemResolver] using [net.DefaultResolver].
func NewSystemResolver() *SystemResolver {
	return &SystemResolver{Resolver: net.DefaultResolver}
}

// SystemResolver is a [Resolver] backed by a [*net.Resolver], which uses
// the host's name service configuration.
type SystemResolver struct {
	// Resolver is the [*net.Resolver] to use.
	//
	// Set by [NewSystemResolver] to [net.DefaultResolver].
	Resolver *net.Resolver
}

var _ Resolver = &SystemResolver{}

// GetAddrInfo implements [Resolver].
func (r *SystemResolver) GetAddrInfo(
	ctx context.Context, node, service string, hints *Hints) (*AddrRecord, error) {
	return getAddrInfo(ctx, r, node, service, hints)
}

// FreeAddrInfo implements [Resolver].
func (r *SystemResolver) FreeAddrInfo(list *AddrRecord) {
	FreeAddrRecordList(list)
}

func (r *SystemResolver) lookupHost(ctx context.Context, host string, family Family) ([]netip.Addr, error) {
	return r.Resolver.LookupNetIP(ctx, lookupNetwork(family), host)
}

func (r *SystemResolver) lookupCanonName(ctx context.Context, host string) (string, error) {
	name, err := r.Resolver.LookupCNAME(ctx, host)
	return strings.TrimSuffix(name, "."), err
}

func (r *SystemResolver) lookupPort(ctx context.Context, network, service string) (int, error) {
	return r.Resolver.LookupPort(ctx, network, service)
}

// lookupNetwork maps a hints family to the network name used by [net.Resolver].
func lookupNetwork(family Family) string {
	switch family {
	case FamilyIPv4:
		return "ip4"
	case FamilyIPv6:
		return "ip6"
	default:
		return "ip"
	}
}
