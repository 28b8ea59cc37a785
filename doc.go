// SPDX-License-Identifier: GPL-3.0-or-later

// Package sockaddr models the socket addresses used by a TCP-serving
// framework and resolves names into candidate addresses.
//
// # Addresses
//
// [Port] is a 16-bit port number. [IPv4] and [IPv6] are immutable IP address
// values parsed with numeric-only parsers. [Address] is a tagged value holding
// either an IP address and port or a Unix-domain socket path:
//
//	addr, err := sockaddr.ParseNetworkAddress("[::1]:8080")
//
// [ParseNetworkAddress] accepts "<ipv4>:<port>", "*:<port>" and
// "[<ipv6>]:<port>". [ParseAddress] additionally accepts "unix:<path>".
//
// # Name Resolution
//
// A [Resolver] implements getaddrinfo(3) semantics. [NewAddrInfo] wraps the
// returned list into an [*AddrInfo], which owns it, releases it exactly once
// on Close, and exposes read-only iteration through [AddrInfo.Begin] and
// [AddrInfo.All]. Two resolvers are available:
//
//   - [SystemResolver]: uses the host configuration through [*net.Resolver]
//   - [DNSResolver]: sends A and AAAA queries to a DNS-over-UDP server
//
// Resolution failures are reported as [*AddrResolutionError] carrying a
// [ResolverStatus]. Other failures wrap [ErrInvalidArgument],
// [ErrRuntimeFailure] or [ErrLogic].
//
// # Composition and Observability
//
// [AddrInfoFunc] and [IPv6SupportFunc] implement [Func], so they compose
// with [Compose2], [Apply] and [ConstFunc]. They emit *Start/*Done
// structured log events through [SLogger], with t0, t, err and errClass
// fields on completion. [DNSResolver] also emits dnsQuery/dnsResponse
// wire observations. Logging is disabled by default.
//
// Use [NewSpanID] to generate a UUIDv7 and attach it to the logger with
// [*slog.Logger.With] to correlate the events of a single operation.
//
// This package never modifies the contexts it receives. The caller
// bounds blocking operations using [context.WithTimeout].
package sockaddr
