// SPDX-License-Identifier: GPL-3.0-or-later

package tcp

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bassosimone/slogstub"
	"github.com/bassosimone/sockaddr"
)

// newCapturingLogger returns a logger capturing the messages it logs.
func newCapturingLogger() (*slog.Logger, *[]string) {
	var messages []string
	handler := &slogstub.FuncHandler{
		EnabledFunc: func(ctx context.Context, level slog.Level) bool {
			return true
		},
		HandleFunc: func(ctx context.Context, record slog.Record) error {
			messages = append(messages, record.Message)
			return nil
		},
	}
	return slog.New(handler), &messages
}

// fakePeer is a [Peer] with a fixed address.
type fakePeer struct {
	addr sockaddr.Address
}

func (p *fakePeer) Address() sockaddr.Address {
	return p.addr
}

func newFakePeer(text string) *fakePeer {
	return &fakePeer{addr: sockaddr.MustParseNetworkAddress(text)}
}

// fakeTransport is a [Transport] recording the writes.
type fakeTransport struct {
	mu     sync.Mutex
	writes []string
}

func (t *fakeTransport) AsyncWrite(peer Peer, buf []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.writes = append(t.writes, peer.Address().String()+" "+string(buf))
	return nil
}

// echoHandler writes back its input.
type echoHandler struct {
	HandlerBase
	connected    int
	disconnected int
}

func (h *echoHandler) OnInput(buf []byte, peer Peer) {
	transport, err := h.Transport()
	if err != nil {
		return
	}
	transport.AsyncWrite(peer, append([]byte(nil), buf...))
}

func (h *echoHandler) Clone() Handler {
	return &echoHandler{}
}

func (h *echoHandler) OnConnection(peer Peer) {
	h.connected++
}

func (h *echoHandler) OnDisconnection(peer Peer) {
	h.disconnected++
}
