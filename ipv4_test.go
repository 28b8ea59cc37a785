// SPDX-License-Identifier: GPL-3.0-or-later

package sockaddr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPv4Constants(t *testing.T) {
	assert.Equal(t, "0.0.0.0", IPv4Any().String())
	assert.Equal(t, "127.0.0.1", IPv4Loopback().String())
	assert.Equal(t, uint32(0x7f000001), IPv4Loopback().Uint32())
}

func TestIPv4FromUint32(t *testing.T) {
	ip := IPv4FromUint32(0xc0a80101)
	assert.Equal(t, "192.168.1.1", ip.String())
	assert.Equal(t, [4]byte{192, 168, 1, 1}, ip.As4())
	assert.Equal(t, uint32(0xc0a80101), ip.Uint32())
}

func TestIPv4FromBytes(t *testing.T) {
	ip := IPv4FromBytes([4]byte{10, 0, 0, 1})
	assert.Equal(t, "10.0.0.1", ip.String())
	assert.Equal(t, IPv4FromUint32(0x0a000001), ip)
}

func TestParseIPv4(t *testing.T) {
	tests := []struct {
		// name describes what this test case verifies.
		name string

		// input is the text to parse.
		input string

		// want is the expected canonical text.
		want string

		// wantErr indicates whether we expect an error.
		wantErr bool
	}{
		{name: "loopback", input: "127.0.0.1", want: "127.0.0.1"},
		{name: "longest", input: "255.255.255.255", want: "255.255.255.255"},
		{name: "any", input: "0.0.0.0", want: "0.0.0.0"},
		{name: "too long", input: "255.255.255.2555", wantErr: true},
		{name: "ipv6 text", input: "::1", wantErr: true},
		{name: "mapped ipv6 text", input: "::ffff:1.2.3.4", wantErr: true},
		{name: "hostname", input: "localhost", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "three octets", input: "1.2.3", wantErr: true},
		{name: "octet out of range", input: "1.2.3.256", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIPv4(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestMustParseIPv4(t *testing.T) {
	assert.Equal(t, IPv4Loopback(), MustParseIPv4("127.0.0.1"))
	assert.Panics(t, func() { MustParseIPv4("nope") })
}

func TestIPv4Addr(t *testing.T) {
	addr := MustParseIPv4("8.8.8.8").Addr()
	assert.True(t, addr.Is4())
	assert.Equal(t, "8.8.8.8", addr.String())
}
