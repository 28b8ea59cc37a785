//go:build !unix && !windows

// SPDX-License-Identifier: GPL-3.0-or-later

package sockaddr

// MaxUnixPathLen is the longest Unix-domain socket path that fits in a
// 108-byte sun_path field together with its terminating NUL byte.
const MaxUnixPathLen = 107
