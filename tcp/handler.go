// SPDX-License-Identifier: GPL-3.0-or-later

package tcp

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bassosimone/sockaddr"
)

var (
	// ErrOrphanedHandler indicates that a handler used its transport
	// before being associated with one.
	ErrOrphanedHandler = fmt.Errorf("%w: orphaned handler", sockaddr.ErrLogic)

	// ErrAlreadyAssociated indicates an attempt to associate a handler
	// with a second transport.
	ErrAlreadyAssociated = fmt.Errorf("%w: handler already associated with a transport", sockaddr.ErrLogic)
)

// Peer is one accepted connection, owned by the transport.
type Peer interface {
	// Address returns the remote address of the connection.
	Address() sockaddr.Address
}

// Transport owns the live sockets and drives the [Handler] callbacks.
type Transport interface {
	// AsyncWrite schedules buf to be written to the peer. The transport
	// takes ownership of buf.
	AsyncWrite(peer Peer, buf []byte) error
}

// Handler is the per-connection callback interface a [Transport] drives.
//
// A handler is a prototype: the server keeps one instance and gives each
// transport its own [Handler.Clone], so that a handler is never shared
// across transports. The threading and reentrancy rules of the callbacks
// are defined by the transport.
type Handler interface {
	// OnInput is called when buf has been read from peer. The handler
	// must not retain buf after returning.
	OnInput(buf []byte, peer Peer)

	// OnConnection is called when peer connects.
	OnConnection(peer Peer)

	// OnDisconnection is called when peer disconnects.
	OnDisconnection(peer Peer)

	// AssociateTransport pairs the handler with its transport. Only the
	// transport calls this method, exactly once, before first use.
	AssociateTransport(transport Transport) error

	// Clone returns a new unassociated handler with the same behavior,
	// ready to be associated with another transport.
	Clone() Handler
}

// HandlerBase implements the association logic and the optional callbacks
// of [Handler]. Embed it and implement OnInput and Clone.
//
// The zero value is an unassociated handler. Clone implementations must
// start from a zero HandlerBase rather than copying the embedded one, so
// that the clone is unassociated regardless of the state of the prototype.
type HandlerBase struct {
	mu        sync.Mutex
	transport Transport
}

// OnConnection implements [Handler] and does nothing.
func (h *HandlerBase) OnConnection(peer Peer) {}

// OnDisconnection implements [Handler] and does nothing.
func (h *HandlerBase) OnDisconnection(peer Peer) {}

// AssociateTransport implements [Handler].
//
// It fails with [ErrAlreadyAssociated] when called more than once and with
// [sockaddr.ErrInvalidArgument] when transport is nil.
func (h *HandlerBase) AssociateTransport(transport Transport) error {
	if transport == nil {
		return fmt.Errorf("%w: nil transport", sockaddr.ErrInvalidArgument)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.transport != nil {
		return ErrAlreadyAssociated
	}
	h.transport = transport
	return nil
}

// Transport returns the associated transport or [ErrOrphanedHandler].
func (h *HandlerBase) Transport() (Transport, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.transport == nil {
		return nil, ErrOrphanedHandler
	}
	return h.transport, nil
}

// Associated returns whether the handler has been associated.
func (h *HandlerBase) Associated() bool {
	_, err := h.Transport()
	return !errors.Is(err, ErrOrphanedHandler)
}
