//go:build unix

// SPDX-License-Identifier: GPL-3.0-or-later

package sockaddr

import "golang.org/x/sys/unix"

// MaxUnixPathLen is the longest Unix-domain socket path that fits in the
// native sun_path field together with its terminating NUL byte.
const MaxUnixPathLen = len(unix.RawSockaddrUnix{}.Path) - 1
