// SPDX-License-Identifier: GPL-3.0-or-later

package sockaddr

import (
	"context"
	"log/slog"
	"time"
)

// AddrInfoRequest is the input of [*AddrInfoFunc].
type AddrInfoRequest struct {
	// Node is the host name or numeric address. It may be empty.
	Node string

	// Service is the service name or decimal port. It may be empty.
	Service string

	// Hints optionally restricts the results.
	Hints *Hints
}

// NewAddrInfoFunc returns a new [*AddrInfoFunc].
//
// The cfg argument contains the common configuration.
//
// The logger argument is the [SLogger] to use for structured logging.
func NewAddrInfoFunc(cfg *Config, logger SLogger) *AddrInfoFunc {
	return &AddrInfoFunc{
		ErrClassifier: cfg.ErrClassifier,
		Logger:        logger,
		Resolver:      cfg.Resolver,
		TimeNow:       cfg.TimeNow,
	}
}

// AddrInfoFunc resolves an [AddrInfoRequest] into an [*AddrInfo].
//
// Returns either a valid [*AddrInfo] or an error, never both. The caller
// owns the returned [*AddrInfo] and must Close it.
//
// All fields are safe to modify after construction but before first use.
// Fields must not be mutated concurrently with calls to [Call].
type AddrInfoFunc struct {
	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewAddrInfoFunc] from [Config.ErrClassifier].
	ErrClassifier ErrClassifier

	// Logger is the [SLogger] to use.
	//
	// Set by [NewAddrInfoFunc] to the user-provided logger.
	Logger SLogger

	// Resolver is the [Resolver] to use.
	//
	// Set by [NewAddrInfoFunc] from [Config.Resolver].
	Resolver Resolver

	// TimeNow is the function to get the current time.
	//
	// Set by [NewAddrInfoFunc] from [Config.TimeNow].
	TimeNow func() time.Time
}

var _ Func[AddrInfoRequest, *AddrInfo] = &AddrInfoFunc{}

// Call invokes [NewAddrInfo] using the configured [Resolver].
func (op *AddrInfoFunc) Call(ctx context.Context, req AddrInfoRequest) (*AddrInfo, error) {
	t0 := op.TimeNow()
	deadline, _ := ctx.Deadline()
	op.Logger.Info(
		"getaddrinfoStart",
		slog.Time("deadline", deadline),
		slog.String("node", req.Node),
		slog.String("service", req.Service),
		slog.Time("t", t0),
	)

	ai, err := NewAddrInfo(ctx, op.Resolver, req.Node, req.Service, req.Hints)

	var addrs []string
	if err == nil {
		for _, addr := range ai.Addresses() {
			addrs = append(addrs, addr.String())
		}
	}
	op.Logger.Info(
		"getaddrinfoDone",
		slog.Any("addrs", addrs),
		slog.Time("deadline", deadline),
		slog.Any("err", err),
		slog.String("errClass", op.ErrClassifier.Classify(err)),
		slog.String("node", req.Node),
		slog.String("service", req.Service),
		slog.Time("t0", t0),
		slog.Time("t", op.TimeNow()),
	)
	return ai, err
}
