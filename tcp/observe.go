// SPDX-License-Identifier: GPL-3.0-or-later

package tcp

import (
	"log/slog"
	"time"

	"github.com/bassosimone/sockaddr"
)

// NewObserveHandler returns a new [*ObserveHandler] wrapping handler.
//
// The cfg argument contains the common configuration.
//
// The logger argument is the [sockaddr.SLogger] to use for structured logging.
func NewObserveHandler(cfg *sockaddr.Config, logger sockaddr.SLogger, handler Handler) *ObserveHandler {
	return &ObserveHandler{
		ErrClassifier: cfg.ErrClassifier,
		Handler:       handler,
		Logger:        logger,
		TimeNow:       cfg.TimeNow,
	}
}

// ObserveHandler is a [Handler] that logs the callbacks it receives
// before forwarding them to the wrapped [Handler].
//
// Connection events are logged at Info level and input events at
// Debug level.
//
// All fields are safe to modify after construction but before first use.
type ObserveHandler struct {
	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewObserveHandler] from [sockaddr.Config.ErrClassifier].
	ErrClassifier sockaddr.ErrClassifier

	// Handler is the wrapped handler.
	//
	// Set by [NewObserveHandler] to the user-provided handler.
	Handler Handler

	// Logger is the [sockaddr.SLogger] to use.
	//
	// Set by [NewObserveHandler] to the user-provided logger.
	Logger sockaddr.SLogger

	// TimeNow is the function to get the current time.
	//
	// Set by [NewObserveHandler] from [sockaddr.Config.TimeNow].
	TimeNow func() time.Time
}

var _ Handler = &ObserveHandler{}

// OnInput implements [Handler].
func (h *ObserveHandler) OnInput(buf []byte, peer Peer) {
	t0 := h.TimeNow()
	h.Logger.Debug(
		"inputStart",
		slog.Int("ioBytesCount", len(buf)),
		slog.String("remoteAddr", peerAddr(peer)),
		slog.Time("t", t0),
	)
	h.Handler.OnInput(buf, peer)
	h.Logger.Debug(
		"inputDone",
		slog.Int("ioBytesCount", len(buf)),
		slog.String("remoteAddr", peerAddr(peer)),
		slog.Time("t0", t0),
		slog.Time("t", h.TimeNow()),
	)
}

// OnConnection implements [Handler].
func (h *ObserveHandler) OnConnection(peer Peer) {
	h.Logger.Info(
		"peerConnected",
		slog.String("remoteAddr", peerAddr(peer)),
		slog.Time("t", h.TimeNow()),
	)
	h.Handler.OnConnection(peer)
}

// OnDisconnection implements [Handler].
func (h *ObserveHandler) OnDisconnection(peer Peer) {
	h.Handler.OnDisconnection(peer)
	h.Logger.Info(
		"peerDisconnected",
		slog.String("remoteAddr", peerAddr(peer)),
		slog.Time("t", h.TimeNow()),
	)
}

// AssociateTransport implements [Handler].
func (h *ObserveHandler) AssociateTransport(transport Transport) error {
	err := h.Handler.AssociateTransport(transport)
	h.Logger.Info(
		"associateTransport",
		slog.Any("err", err),
		slog.String("errClass", h.ErrClassifier.Classify(err)),
		slog.Time("t", h.TimeNow()),
	)
	return err
}

// Clone implements [Handler].
//
// The clone shares the logging configuration and wraps a clone of
// the wrapped handler.
func (h *ObserveHandler) Clone() Handler {
	return &ObserveHandler{
		ErrClassifier: h.ErrClassifier,
		Handler:       h.Handler.Clone(),
		Logger:        h.Logger,
		TimeNow:       h.TimeNow,
	}
}

// peerAddr returns the text form of the peer address.
func peerAddr(peer Peer) string {
	if peer == nil {
		return ""
	}
	text, _ := peer.Address().MarshalText()
	return string(text)
}
