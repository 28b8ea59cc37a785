// SPDX-License-Identifier: GPL-3.0-or-later

package sockaddr

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	require.NotNil(t, cfg)

	// Dialer should be set to *net.Dialer
	_, ok := cfg.Dialer.(*net.Dialer)
	assert.True(t, ok, "Dialer should be *net.Dialer")

	// ErrClassifier should not classify a nil error
	assert.Equal(t, "", cfg.ErrClassifier.Classify(nil))

	// InterfaceLister should be set
	assert.NotNil(t, cfg.InterfaceLister)

	// Resolver should be the system resolver
	sysr, ok := cfg.Resolver.(*SystemResolver)
	require.True(t, ok, "Resolver should be *SystemResolver")
	assert.Same(t, net.DefaultResolver, sysr.Resolver)

	// TimeNow should be set and return a valid time
	assert.False(t, cfg.TimeNow().IsZero())
}
