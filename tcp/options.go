// SPDX-License-Identifier: GPL-3.0-or-later

package tcp

import (
	"fmt"
	"strings"

	"github.com/bassosimone/sockaddr"
)

// Option is a socket or behavior toggle applied by the transport.
type Option uint8

const (
	// NoDelay disables Nagle's algorithm (TCP_NODELAY).
	NoDelay Option = iota

	// Linger enables SO_LINGER on close.
	Linger

	// FastOpen enables TCP Fast Open.
	FastOpen

	// QuickAck enables TCP_QUICKACK.
	QuickAck

	// ReuseAddr enables SO_REUSEADDR.
	ReuseAddr

	// ReverseLookup resolves peer addresses to names.
	ReverseLookup

	// InstallSignalHandler makes the transport handle termination signals.
	InstallSignalHandler

	numOptions
)

var optionNames = [numOptions]string{
	NoDelay:              "NoDelay",
	Linger:               "Linger",
	FastOpen:             "FastOpen",
	QuickAck:             "QuickAck",
	ReuseAddr:            "ReuseAddr",
	ReverseLookup:        "ReverseLookup",
	InstallSignalHandler: "InstallSignalHandler",
}

// AllOptions returns all the options in declaration order.
func AllOptions() []Option {
	out := make([]Option, 0, numOptions)
	for opt := range numOptions {
		out = append(out, opt)
	}
	return out
}

// String returns the option name.
func (o Option) String() string {
	if o < numOptions {
		return optionNames[o]
	}
	return fmt.Sprintf("Option(%d)", uint8(o))
}

// ParseOption parses an option name, ignoring case.
func ParseOption(s string) (Option, error) {
	for opt, name := range optionNames {
		if strings.EqualFold(name, s) {
			return Option(opt), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown option %q", sockaddr.ErrInvalidArgument, s)
}

// OptionSet is a set of [Option] values. The zero value is empty.
type OptionSet uint32

// NewOptionSet returns the set containing opts.
func NewOptionSet(opts ...Option) OptionSet {
	var set OptionSet
	for _, opt := range opts {
		set = set.With(opt)
	}
	return set
}

// ParseOptionSet parses option names separated by "|" or ",".
// The empty string is the empty set.
func ParseOptionSet(s string) (OptionSet, error) {
	var set OptionSet
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' })
	for _, field := range fields {
		opt, err := ParseOption(strings.TrimSpace(field))
		if err != nil {
			return 0, err
		}
		set = set.With(opt)
	}
	return set, nil
}

// Has returns whether opt is in the set.
func (s OptionSet) Has(opt Option) bool {
	return opt < numOptions && s&(1<<opt) != 0
}

// With returns the set with opt added.
func (s OptionSet) With(opt Option) OptionSet {
	return s | 1<<opt
}

// Without returns the set with opt removed.
func (s OptionSet) Without(opt Option) OptionSet {
	return s &^ (1 << opt)
}

// Options returns the options in the set in declaration order.
func (s OptionSet) Options() (out []Option) {
	for _, opt := range AllOptions() {
		if s.Has(opt) {
			out = append(out, opt)
		}
	}
	return
}

// String returns the option names joined by "|".
func (s OptionSet) String() string {
	var names []string
	for _, opt := range s.Options() {
		names = append(names, opt.String())
	}
	return strings.Join(names, "|")
}

// MarshalText implements [encoding.TextMarshaler].
func (s OptionSet) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler] using [ParseOptionSet].
func (s *OptionSet) UnmarshalText(text []byte) error {
	set, err := ParseOptionSet(string(text))
	if err != nil {
		return err
	}
	*s = set
	return nil
}
