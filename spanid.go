// SPDX-License-Identifier: GPL-3.0-or-later

package sockaddr

import (
	"github.com/bassosimone/runtimex"
	"github.com/google/uuid"
)

// NewSpanID returns a UUIDv7 identifying a span.
//
// A span groups the log events of a single operation, for example one
// name resolution including all of its DNS exchanges. Attach the span ID
// to the logger using [*slog.Logger.With].
//
// This function panics if the system random number generator fails.
func NewSpanID() string {
	return runtimex.PanicOnError1(uuid.NewV7()).String()
}
