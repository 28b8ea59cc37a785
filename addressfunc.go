// SPDX-License-Identifier: GPL-3.0-or-later

package sockaddr

import "context"

// NewAddressFunc returns a [Func] that always returns the given [Address].
//
// This is a convenience wrapper around [ConstFunc] for the common case of
// injecting an already known address into a pipeline.
func NewAddressFunc(addr Address) Func[Unit, Address] {
	return ConstFunc(addr)
}

// ParseAddressFunc is a [Func] that parses its input using [ParseAddress].
var ParseAddressFunc Func[string, Address] = FuncAdapter[string, Address](
	func(ctx context.Context, text string) (Address, error) {
		return ParseAddress(text)
	})
