// SPDX-License-Identifier: GPL-3.0-or-later

package sockaddr

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"go4.org/netipx"
)

// InterfaceLister enumerates the addresses of the local network interfaces.
//
// By making [IPv6Supported] depend on an abstract implementation we
// allow for deterministic unit testing.
type InterfaceLister interface {
	InterfaceAddrs() ([]net.Addr, error)
}

// InterfaceListerFunc adapts a function to the [InterfaceLister] interface.
type InterfaceListerFunc func() ([]net.Addr, error)

var _ InterfaceLister = InterfaceListerFunc(nil)

// InterfaceAddrs implements [InterfaceLister].
func (f InterfaceListerFunc) InterfaceAddrs() ([]net.Addr, error) {
	return f()
}

// DefaultInterfaceLister lists the host interfaces using [net.InterfaceAddrs].
var DefaultInterfaceLister = InterfaceListerFunc(net.InterfaceAddrs)

// IPv6Supported returns whether any local interface has an IPv6 address.
//
// The result depends on the host environment at call time. Enumeration
// failures wrap [ErrRuntimeFailure].
func IPv6Supported(lister InterfaceLister) (bool, error) {
	addrs, err := lister.InterfaceAddrs()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrRuntimeFailure, SystemError("cannot list interface addresses", err))
	}
	for _, addr := range addrs {
		ip := interfaceIP(addr)
		if ip == nil {
			continue
		}
		if nip, ok := netipx.FromStdIP(ip); ok && nip.Is6() {
			return true, nil
		}
	}
	return false, nil
}

// interfaceIP extracts the IP from an interface address, if any.
func interfaceIP(addr net.Addr) net.IP {
	switch v := addr.(type) {
	case *net.IPNet:
		return v.IP
	case *net.IPAddr:
		return v.IP
	default:
		return nil
	}
}

// NewIPv6SupportFunc returns a new [*IPv6SupportFunc].
//
// The cfg argument contains the common configuration.
//
// The logger argument is the [SLogger] to use for structured logging.
func NewIPv6SupportFunc(cfg *Config, logger SLogger) *IPv6SupportFunc {
	return &IPv6SupportFunc{
		ErrClassifier:   cfg.ErrClassifier,
		InterfaceLister: cfg.InterfaceLister,
		Logger:          logger,
		TimeNow:         cfg.TimeNow,
	}
}

// IPv6SupportFunc probes whether the host has IPv6-capable interfaces.
//
// All fields are safe to modify after construction but before first use.
// Fields must not be mutated concurrently with calls to [Call].
type IPv6SupportFunc struct {
	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewIPv6SupportFunc] from [Config.ErrClassifier].
	ErrClassifier ErrClassifier

	// InterfaceLister enumerates the local interface addresses.
	//
	// Set by [NewIPv6SupportFunc] from [Config.InterfaceLister].
	InterfaceLister InterfaceLister

	// Logger is the [SLogger] to use.
	//
	// Set by [NewIPv6SupportFunc] to the user-provided logger.
	Logger SLogger

	// TimeNow is the function to get the current time.
	//
	// Set by [NewIPv6SupportFunc] from [Config.TimeNow].
	TimeNow func() time.Time
}

var _ Func[Unit, bool] = &IPv6SupportFunc{}

// Call invokes [IPv6Supported] using the configured [InterfaceLister].
func (op *IPv6SupportFunc) Call(ctx context.Context, _ Unit) (bool, error) {
	t0 := op.TimeNow()
	op.Logger.Info("ipv6ProbeStart", slog.Time("t", t0))
	supported, err := IPv6Supported(op.InterfaceLister)
	op.Logger.Info(
		"ipv6ProbeDone",
		slog.Any("err", err),
		slog.String("errClass", op.ErrClassifier.Classify(err)),
		slog.Bool("supported", supported),
		slog.Time("t0", t0),
		slog.Time("t", op.TimeNow()),
	)
	return supported, err
}
