// SPDX-License-Identifier: GPL-3.0-or-later

package sockaddr

import (
	"context"
	"log/slog"
	"net"
	"net/netip"
	"time"

	"github.com/bassosimone/netstub"
	"github.com/bassosimone/slogstub"
)

// newCapturingLogger returns a logger that captures all log records into the
// returned slice. The caller can inspect the slice after exercising the code
// under test to verify which events were emitted.
func newCapturingLogger() (*slog.Logger, *[]slog.Record) {
	var records []slog.Record
	handler := &slogstub.FuncHandler{
		EnabledFunc: func(ctx context.Context, level slog.Level) bool {
			return true
		},
		HandleFunc: func(ctx context.Context, record slog.Record) error {
			records = append(records, record)
			return nil
		},
	}
	return slog.New(handler), &records
}

// recordMessages returns the messages of the captured records.
func recordMessages(records []slog.Record) (out []string) {
	for _, record := range records {
		out = append(out, record.Message)
	}
	return
}

// newMinimalConn returns a [*netstub.FuncConn] with only LocalAddrFunc and
// RemoteAddrFunc set, as needed by the [safeconn] helpers.
func newMinimalConn() *netstub.FuncConn {
	return &netstub.FuncConn{
		LocalAddrFunc:  func() net.Addr { return &net.UDPAddr{} },
		RemoteAddrFunc: func() net.Addr { return &net.UDPAddr{} },
	}
}

// fixedTimeNow returns a TimeNow function always returning the same time.
func fixedTimeNow() func() time.Time {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time { return t0 }
}

// fakeBackend is an [addrInfoBackend] with canned answers.
type fakeBackend struct {
	hosts    map[string][]netip.Addr
	cnames   map[string]string
	services map[string]int
	hostErr  error

	// lookups counts the calls to lookupHost.
	lookups int
}

func (fb *fakeBackend) lookupHost(ctx context.Context, host string, family Family) ([]netip.Addr, error) {
	fb.lookups++
	if fb.hostErr != nil {
		return nil, fb.hostErr
	}
	addrs, found := fb.hosts[host]
	if !found {
		return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
	}
	return addrs, nil
}

func (fb *fakeBackend) lookupCanonName(ctx context.Context, host string) (string, error) {
	if name, found := fb.cnames[host]; found {
		return name, nil
	}
	return "", &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
}

func (fb *fakeBackend) lookupPort(ctx context.Context, network, service string) (int, error) {
	if port, found := fb.services[service]; found {
		return port, nil
	}
	return 0, &net.DNSError{Err: "unknown port", Name: network + "/" + service, IsNotFound: true}
}

// countingResolver is a [Resolver] built on a [*fakeBackend] that counts
// the lists it hands out and releases.
type countingResolver struct {
	backend *fakeBackend
	err     error
	allocs  int
	frees   int
}

var _ Resolver = &countingResolver{}

func newCountingResolver() *countingResolver {
	return &countingResolver{backend: &fakeBackend{
		hosts: map[string][]netip.Addr{
			"example.com": {
				netip.MustParseAddr("93.184.216.34"),
				netip.MustParseAddr("2606:2800:220:1::248"),
			},
		},
	}}
}

func (r *countingResolver) GetAddrInfo(
	ctx context.Context, node, service string, hints *Hints) (*AddrRecord, error) {
	if r.err != nil {
		return nil, r.err
	}
	list, err := getAddrInfo(ctx, r.backend, node, service, hints)
	if err == nil {
		r.allocs++
	}
	return list, err
}

func (r *countingResolver) FreeAddrInfo(list *AddrRecord) {
	r.frees++
	FreeAddrRecordList(list)
}
