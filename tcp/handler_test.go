// SPDX-License-Identifier: GPL-3.0-or-later

package tcp

import (
	"sync"
	"testing"

	"github.com/bassosimone/sockaddr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// An unassociated handler fails with a logic error.
func TestHandlerBaseOrphaned(t *testing.T) {
	var h HandlerBase

	transport, err := h.Transport()

	assert.Nil(t, transport)
	require.ErrorIs(t, err, ErrOrphanedHandler)
	require.ErrorIs(t, err, sockaddr.ErrLogic)
	assert.False(t, h.Associated())
}

// After association the same transport is returned on every call.
func TestHandlerBaseAssociate(t *testing.T) {
	var h HandlerBase
	transport := &fakeTransport{}

	require.NoError(t, h.AssociateTransport(transport))
	assert.True(t, h.Associated())

	for range 3 {
		got, err := h.Transport()
		require.NoError(t, err)
		assert.Same(t, transport, got)
	}
}

// A handler cannot be associated twice.
func TestHandlerBaseAssociateTwice(t *testing.T) {
	var h HandlerBase
	first := &fakeTransport{}
	require.NoError(t, h.AssociateTransport(first))

	err := h.AssociateTransport(&fakeTransport{})

	require.ErrorIs(t, err, ErrAlreadyAssociated)
	require.ErrorIs(t, err, sockaddr.ErrLogic)
	got, err := h.Transport()
	require.NoError(t, err)
	assert.Same(t, first, got)
}

// A nil transport is rejected.
func TestHandlerBaseAssociateNil(t *testing.T) {
	var h HandlerBase

	err := h.AssociateTransport(nil)

	require.ErrorIs(t, err, sockaddr.ErrInvalidArgument)
	assert.False(t, h.Associated())
}

// The default connection callbacks do nothing.
func TestHandlerBaseCallbacks(t *testing.T) {
	var h HandlerBase
	peer := newFakePeer("127.0.0.1:1234")
	h.OnConnection(peer)
	h.OnDisconnection(peer)
}

// Once associated, the transport can be used concurrently.
func TestHandlerBaseConcurrentUse(t *testing.T) {
	h := &echoHandler{}
	transport := &fakeTransport{}
	require.NoError(t, h.AssociateTransport(transport))

	const count = 16
	var wg sync.WaitGroup
	for range count {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.OnInput([]byte("ping"), newFakePeer("[::1]:9"))
		}()
	}
	wg.Wait()

	assert.Len(t, transport.writes, count)
}

// A handler driven by a transport echoes its input.
func TestEchoHandler(t *testing.T) {
	h := &echoHandler{}
	var handler Handler = h
	peer := newFakePeer("10.0.0.1:4000")

	// Input before association is dropped
	handler.OnInput([]byte("lost"), peer)

	transport := &fakeTransport{}
	require.NoError(t, handler.AssociateTransport(transport))
	handler.OnConnection(peer)
	handler.OnInput([]byte("hello"), peer)
	handler.OnDisconnection(peer)

	assert.Equal(t, []string{"10.0.0.1:4000 hello"}, transport.writes)
	assert.Equal(t, 1, h.connected)
	assert.Equal(t, 1, h.disconnected)
}

// A clone starts unassociated and binding it leaves the prototype alone.
func TestHandlerClone(t *testing.T) {
	prototype := &echoHandler{}
	first := &fakeTransport{}
	require.NoError(t, prototype.AssociateTransport(first))

	clone := prototype.Clone()
	require.IsType(t, &echoHandler{}, clone)
	assert.NotSame(t, prototype, clone)
	assert.False(t, clone.(*echoHandler).Associated())

	second := &fakeTransport{}
	require.NoError(t, clone.AssociateTransport(second))

	got, err := prototype.Transport()
	require.NoError(t, err)
	assert.Same(t, first, got)
	got, err = clone.(*echoHandler).Transport()
	require.NoError(t, err)
	assert.Same(t, second, got)
}
