//go:build windows

// SPDX-License-Identifier: GPL-3.0-or-later

package sockaddr

import "golang.org/x/sys/windows"

// MaxUnixPathLen is the longest Unix-domain socket path that fits in the
// native sun_path field together with its terminating NUL byte.
const MaxUnixPathLen = len(windows.RawSockaddrUnix{}.Path) - 1
