// SPDX-License-Identifier: GPL-3.0-or-later

package sockaddr

import (
	"log/slog"
	"net"
	"time"

	"github.com/bassosimone/safeconn"
	"github.com/miekg/dns"
)

// dnsExchangeLogContext holds the logging state of a single DNS
// exchange performed by [*DNSResolver] over UDP or TCP.
type dnsExchangeLogContext struct {
	// ErrClassifier classifies errors for structured logging.
	ErrClassifier ErrClassifier

	// LocalAddr is the local address of the connection.
	LocalAddr string

	// Logger is the SLogger to use.
	Logger SLogger

	// Protocol is the network protocol of the connection.
	Protocol string

	// RawQuery is the last raw query observed.
	RawQuery []byte

	// RawResponse is the last raw response observed.
	RawResponse []byte

	// RemoteAddr is the remote address of the connection.
	RemoteAddr string

	// T0 is when the exchange started.
	T0 time.Time

	// TimeNow is the function to get the current time.
	TimeNow func() time.Time
}

// newDNSExchangeLogContext returns the log context for an exchange over conn.
func newDNSExchangeLogContext(r *DNSResolver, conn net.Conn) *dnsExchangeLogContext {
	return &dnsExchangeLogContext{
		ErrClassifier: r.ErrClassifier,
		LocalAddr:     safeconn.LocalAddr(conn),
		Logger:        r.Logger,
		Protocol:      safeconn.Network(conn),
		RemoteAddr:    safeconn.RemoteAddr(conn),
		T0:            r.TimeNow(),
		TimeNow:       r.TimeNow,
	}
}

// observeQuery logs and records the raw query.
func (lc *dnsExchangeLogContext) observeQuery(raw []byte) {
	lc.RawQuery = raw
	lc.Logger.Info(
		"dnsQuery",
		slog.Any("dnsRawQuery", raw),
		slog.String("localAddr", lc.LocalAddr),
		slog.String("protocol", lc.Protocol),
		slog.String("remoteAddr", lc.RemoteAddr),
		slog.Time("t", lc.T0),
	)
}

// observeResponse logs and records the raw response.
func (lc *dnsExchangeLogContext) observeResponse(raw []byte) {
	lc.RawResponse = raw
	lc.Logger.Info(
		"dnsResponse",
		slog.Any("dnsRawQuery", lc.RawQuery),
		slog.Any("dnsRawResponse", raw),
		slog.String("localAddr", lc.LocalAddr),
		slog.String("protocol", lc.Protocol),
		slog.String("remoteAddr", lc.RemoteAddr),
		slog.Time("t0", lc.T0),
		slog.Time("t", lc.TimeNow()),
	)
}

// logDone logs the completion of the exchange.
func (lc *dnsExchangeLogContext) logDone(err error) {
	lc.Logger.Info(
		"dnsExchangeDone",
		slog.Any("err", err),
		slog.String("errClass", lc.ErrClassifier.Classify(err)),
		slog.String("localAddr", lc.LocalAddr),
		slog.String("protocol", lc.Protocol),
		slog.String("remoteAddr", lc.RemoteAddr),
		slog.Bool("truncated", lc.truncated()),
		slog.Time("t0", lc.T0),
		slog.Time("t", lc.TimeNow()),
	)
}

// truncated returns whether the raw response has the TC bit set.
func (lc *dnsExchangeLogContext) truncated() bool {
	if len(lc.RawResponse) <= 0 {
		return false
	}
	// The header is set even when the sections fail to unpack.
	var msg dns.Msg
	_ = msg.Unpack(lc.RawResponse)
	return msg.Truncated
}
