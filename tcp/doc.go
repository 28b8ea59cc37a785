// SPDX-License-Identifier: GPL-3.0-or-later

// Package tcp defines the contract between connection handlers and the
// transport that drives them.
//
// The transport owns the live sockets and the event loop. The server
// clones its prototype [Handler] for each transport, which associates
// the clone with itself exactly once, before first use, and then
// invokes the handler callbacks. Handlers use the associated [Transport]
// to write to their peers.
//
// Embed [HandlerBase] to get no-op connection callbacks and the
// association logic, then implement OnInput and Clone:
//
//	type echoHandler struct {
//		tcp.HandlerBase
//	}
//
//	func (h *echoHandler) Clone() tcp.Handler {
//		return &echoHandler{}
//	}
//
//	func (h *echoHandler) OnInput(buf []byte, peer tcp.Peer) {
//		if transport, err := h.Transport(); err == nil {
//			transport.AsyncWrite(peer, buf)
//		}
//	}
//
// [Option] names the socket and behavior toggles a transport applies.
package tcp
