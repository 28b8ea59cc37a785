//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: https://github.com/bassosimone/nop/blob/main/dnsoverudp.go
// Adapted from: https://github.com/bassosimone/nop/blob/main/dnsovertcp.go
//

package sockaddr

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/netip"
	"time"

	"github.com/bassosimone/dnscodec"
	"github.com/bassosimone/dnsoverstream"
	"github.com/bassosimone/minest"
	"github.com/bassosimone/safeconn"
	"github.com/miekg/dns"
)

// Dialer abstracts the [*net.Dialer] behavior.
//
// By making [*DNSResolver] depend on an abstract implementation we
// allow for unit testing and for using alternative dialers.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// NewDNSResolver returns a new [*DNSResolver] querying the given server.
//
// The cfg argument contains the common configuration.
//
// The logger argument is the [SLogger] to use for structured logging.
//
// The server argument is the DNS server endpoint (e.g., 8.8.8.8:53).
func NewDNSResolver(cfg *Config, logger SLogger, server netip.AddrPort) *DNSResolver {
	return &DNSResolver{
		Dialer:        cfg.Dialer,
		ErrClassifier: cfg.ErrClassifier,
		Logger:        logger,
		Server:        server,
		TimeNow:       cfg.TimeNow,
	}
}

// DNSResolver is a [Resolver] that looks up names by sending A and AAAA
// queries to a DNS-over-UDP server. A truncated UDP response causes the
// query to be sent again over TCP to the same server.
//
// Services are still mapped to ports using the host's services database.
//
// All fields are safe to modify after construction but before first use.
// Fields must not be mutated concurrently with calls to GetAddrInfo.
type DNSResolver struct {
	// Dialer creates the UDP or TCP connection used for each query.
	//
	// Set by [NewDNSResolver] from [Config.Dialer].
	Dialer Dialer

	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewDNSResolver] from [Config.ErrClassifier].
	ErrClassifier ErrClassifier

	// Logger is the [SLogger] to use.
	//
	// Set by [NewDNSResolver] to the user-provided logger.
	Logger SLogger

	// Server is the DNS server endpoint.
	//
	// Set by [NewDNSResolver] to the user-provided value.
	Server netip.AddrPort

	// TimeNow is the function to get the current time.
	//
	// Set by [NewDNSResolver] from [Config.TimeNow].
	TimeNow func() time.Time
}

var _ Resolver = &DNSResolver{}

// GetAddrInfo implements [Resolver].
func (r *DNSResolver) GetAddrInfo(
	ctx context.Context, node, service string, hints *Hints) (*AddrRecord, error) {
	return getAddrInfo(ctx, r, node, service, hints)
}

// FreeAddrInfo implements [Resolver].
func (r *DNSResolver) FreeAddrInfo(list *AddrRecord) {
	FreeAddrRecordList(list)
}

// lookupHost queries A records, AAAA records or both depending on family.
//
// When both are queried, a failure of one query is ignored as long as
// the other one returns addresses.
func (r *DNSResolver) lookupHost(ctx context.Context, host string, family Family) ([]netip.Addr, error) {
	var qtypes []uint16
	switch family {
	case FamilyIPv4:
		qtypes = []uint16{dns.TypeA}
	case FamilyIPv6:
		qtypes = []uint16{dns.TypeAAAA}
	default:
		qtypes = []uint16{dns.TypeA, dns.TypeAAAA}
	}

	var (
		addrs    []netip.Addr
		firstErr error
	)
	for _, qtype := range qtypes {
		found, err := r.lookup(ctx, host, qtype)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		addrs = append(addrs, found...)
	}
	if len(addrs) > 0 {
		return addrs, nil
	}
	if firstErr == nil {
		firstErr = r.newDNSError(host, "no such host", true)
	}
	return nil, firstErr
}

// lookupCanonName returns the host itself since we do not follow CNAME chains.
func (r *DNSResolver) lookupCanonName(ctx context.Context, host string) (string, error) {
	return host, nil
}

func (r *DNSResolver) lookupPort(ctx context.Context, network, service string) (int, error) {
	return net.DefaultResolver.LookupPort(ctx, network, service)
}

// lookup performs a single query over UDP, retrying over TCP when
// the UDP response is truncated.
func (r *DNSResolver) lookup(ctx context.Context, host string, qtype uint16) ([]netip.Addr, error) {
	query := dnscodec.NewQuery(host, qtype)
	resp, truncated, err := r.roundTrip(ctx, "udp", host, query)
	if truncated {
		resp, _, err = r.roundTrip(ctx, "tcp", host, query)
	}
	if err != nil {
		return nil, err
	}

	var records []string
	switch qtype {
	case dns.TypeAAAA:
		records, err = resp.RecordsAAAA()
	default:
		records, err = resp.RecordsA()
	}
	if err != nil {
		return nil, r.newDNSError(host, err.Error(), true)
	}

	var addrs []netip.Addr
	for _, record := range records {
		if ip, err := netip.ParseAddr(record); err == nil {
			addrs = append(addrs, ip)
		}
	}
	return addrs, nil
}

// roundTrip sends the query for host using a dedicated connection for the
// given network and returns the response and whether it was truncated.
func (r *DNSResolver) roundTrip(ctx context.Context,
	network, host string, query *dnscodec.Query) (*dnscodec.Response, bool, error) {
	conn, err := r.dial(ctx, network)
	if err != nil {
		return nil, false, err
	}
	stop := context.AfterFunc(ctx, func() {
		conn.Close()
	})
	defer func() {
		stop()
		conn.Close()
	}()

	lc := newDNSExchangeLogContext(r, conn)
	var resp *dnscodec.Response
	switch network {
	case "tcp":
		resp, err = r.exchangeStream(ctx, lc, conn, query)
	default:
		resp, err = r.exchangeDatagram(ctx, lc, conn, query)
	}
	lc.logDone(err)
	truncated := network == "udp" && lc.truncated()

	switch {
	case err == nil:
		return resp, truncated, nil
	case ctx.Err() != nil:
		return nil, truncated, ctx.Err()
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return nil, truncated, err
	}
	return nil, truncated, r.newDNSError(host, err.Error(), isDNSNotFound(err))
}

// isDNSNotFound returns whether err means the name has no records.
func isDNSNotFound(err error) bool {
	return errors.Is(err, dnscodec.ErrNoName) || errors.Is(err, dnscodec.ErrNoData)
}

func (r *DNSResolver) newDNSError(host, reason string, notFound bool) *net.DNSError {
	return &net.DNSError{
		Err:        reason,
		Name:       host,
		Server:     r.Server.String(),
		IsNotFound: notFound,
	}
}

// dial creates the connection to the server.
func (r *DNSResolver) dial(ctx context.Context, network string) (net.Conn, error) {
	t0 := r.TimeNow()
	address := r.Server.String()
	r.Logger.Info(
		"connectStart",
		slog.String("protocol", network),
		slog.String("remoteAddr", address),
		slog.Time("t", t0),
	)
	conn, err := r.Dialer.DialContext(ctx, network, address)
	r.Logger.Info(
		"connectDone",
		slog.Any("err", err),
		slog.String("errClass", r.ErrClassifier.Classify(err)),
		slog.String("localAddr", safeconn.LocalAddr(conn)),
		slog.String("protocol", network),
		slog.String("remoteAddr", address),
		slog.Time("t0", t0),
		slog.Time("t", r.TimeNow()),
	)
	return conn, err
}

// exchangeDatagram performs the exchange over a UDP conn.
func (r *DNSResolver) exchangeDatagram(ctx context.Context,
	lc *dnsExchangeLogContext, conn net.Conn, query *dnscodec.Query) (*dnscodec.Response, error) {
	// We pass the connection explicitly, so the transport must never dial.
	txp := minest.NewDNSOverUDPTransport(dnsUnusedDialer{}, netip.AddrPortFrom(netip.IPv4Unspecified(), 0))
	txp.ObserveRawQuery = lc.observeQuery
	txp.ObserveRawResponse = lc.observeResponse
	return txp.ExchangeWithConn(ctx, conn, query)
}

// exchangeStream performs the exchange over a TCP conn.
func (r *DNSResolver) exchangeStream(ctx context.Context,
	lc *dnsExchangeLogContext, conn net.Conn, query *dnscodec.Query) (*dnscodec.Response, error) {
	streamDialer := dnsoverstream.NewStreamOpenerDialerTCP(dnsUnusedDialer{})
	txp := dnsoverstream.NewTransport(streamDialer, netip.AddrPortFrom(netip.IPv4Unspecified(), 0))
	txp.ObserveRawQuery = lc.observeQuery
	txp.ObserveRawResponse = lc.observeResponse
	return txp.ExchangeWithStreamOpener(ctx, dnsoverstream.NewTCPStreamOpener(conn), query)
}

// dnsUnusedDialer is a [Dialer] that panics if DialContext is called.
type dnsUnusedDialer struct{}

var _ Dialer = dnsUnusedDialer{}

// DialContext always panics.
func (dnsUnusedDialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	panic("sockaddr: DNS transport must not dial; this is a programming error")
}
