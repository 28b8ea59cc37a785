// SPDX-License-Identifier: GPL-3.0-or-later

package sockaddr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortIsReserved(t *testing.T) {
	assert.True(t, Port(0).IsReserved())
	assert.True(t, Port(80).IsReserved())
	assert.True(t, Port(1023).IsReserved())
	assert.False(t, Port(1024).IsReserved())
	assert.False(t, MaxPort.IsReserved())
}

func TestPortBounds(t *testing.T) {
	assert.Equal(t, uint16(0), uint16(MinPort))
	assert.Equal(t, uint16(65535), uint16(MaxPort))
}

func TestPortString(t *testing.T) {
	assert.Equal(t, "8080", Port(8080).String())
	assert.Equal(t, "0", MinPort.String())
}

func TestParsePort(t *testing.T) {
	tests := []struct {
		// name describes what this test case verifies.
		name string

		// input is the text to parse.
		input string

		// want is the expected port.
		want Port

		// wantErr indicates whether we expect an error.
		wantErr bool
	}{
		{name: "zero", input: "0", want: 0},
		{name: "http", input: "80", want: 80},
		{name: "max", input: "65535", want: 65535},
		{name: "one past max", input: "65536", wantErr: true},
		{name: "way out of range", input: "99999", wantErr: true},
		{name: "huge", input: "99999999999999999999999", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "trailing garbage", input: "80x", wantErr: true},
		{name: "negative", input: "-1", wantErr: true},
		{name: "hex", input: "0x50", wantErr: true},
		{name: "space", input: " 80", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePort(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
