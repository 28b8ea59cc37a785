// SPDX-License-Identifier: GPL-3.0-or-later

package sockaddr

import (
	"context"
	"iter"
)

// AddrInfo owns the list of candidate addresses returned by a [Resolver].
//
// At most one AddrInfo owns a given list. Ownership moves with [AddrInfo.Move]
// and [AddrInfo.MoveFrom], which leave the source empty. [AddrInfo.Close]
// releases the list exactly once. AddrInfo must not be copied.
//
// Iterators borrow from their owner: once the owner is closed or moved
// from, every iterator obtained before becomes stale and using it panics.
//
// The zero value is an empty AddrInfo. AddrInfo is not safe for
// concurrent use without external synchronization.
type AddrInfo struct {
	_ noCopy

	// addrs is the owned list.
	addrs *AddrRecord

	// gen is bumped whenever the owned list is released or moved.
	gen uint64

	// resolver releases addrs.
	resolver Resolver
}

// noCopy makes go vet's copylocks check flag copies of [AddrInfo].
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// NewAddrInfo resolves the node and service using the given resolver.
//
// On failure it returns an [*AddrResolutionError]. On success the returned
// [*AddrInfo] owns the resolved list and the caller must call Close.
//
// The call is synchronous and may perform network I/O; use the context
// to bound its duration.
func NewAddrInfo(ctx context.Context, resolver Resolver,
	node, service string, hints *Hints) (*AddrInfo, error) {
	list, err := resolver.GetAddrInfo(ctx, node, service, hints)
	if err != nil {
		if _, ok := err.(*AddrResolutionError); !ok {
			err = NewAddrResolutionError(StatusFromError(err), err)
		}
		return nil, err
	}
	return &AddrInfo{addrs: list, resolver: resolver}, nil
}

// Close releases the owned list, if any. Calling Close on an empty,
// already closed or moved-from AddrInfo does nothing.
func (ai *AddrInfo) Close() error {
	if ai == nil || ai.addrs == nil {
		return nil
	}
	list, resolver := ai.addrs, ai.resolver
	ai.addrs, ai.resolver = nil, nil
	ai.gen++
	resolver.FreeAddrInfo(list)
	return nil
}

// Move transfers ownership of the list to a new [*AddrInfo], leaving
// the receiver empty.
func (ai *AddrInfo) Move() *AddrInfo {
	dst := &AddrInfo{}
	dst.MoveFrom(ai)
	return dst
}

// MoveFrom releases the list owned by the receiver, if any, and takes
// ownership of the list owned by other, leaving other empty. Iterators
// of both values become stale. A nil other does nothing.
func (ai *AddrInfo) MoveFrom(other *AddrInfo) {
	if other == nil || ai == other {
		return
	}
	ai.Close()
	ai.addrs, ai.resolver = other.addrs, other.resolver
	ai.gen++
	other.addrs, other.resolver = nil, nil
	other.gen++
}

// Empty returns whether the AddrInfo owns no records.
func (ai *AddrInfo) Empty() bool {
	return ai.addrs == nil
}

// Len returns the number of owned records.
func (ai *AddrInfo) Len() (count int) {
	for node := ai.addrs; node != nil; node = node.next {
		count++
	}
	return
}

// Begin returns an iterator positioned at the first record.
func (ai *AddrInfo) Begin() AddrInfoIterator {
	return AddrInfoIterator{owner: ai, gen: ai.gen, node: ai.addrs}
}

// End returns the end iterator.
func (ai *AddrInfo) End() AddrInfoIterator {
	return AddrInfoIterator{owner: ai, gen: ai.gen}
}

// All returns a sequence yielding a copy of each owned record in order.
//
// The sequence panics if the owner is closed or moved from while iterating.
func (ai *AddrInfo) All() iter.Seq[AddrRecord] {
	return func(yield func(AddrRecord) bool) {
		for it := ai.Begin(); !it.Done(); it = it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// Addresses returns the address of each owned record in order.
func (ai *AddrInfo) Addresses() (out []Address) {
	for record := range ai.All() {
		out = append(out, record.Address)
	}
	return
}

// AddrInfoIterator is a forward-only, read-only cursor over the records
// owned by an [AddrInfo].
//
// An iterator is only valid while its owner still owns the same list.
type AddrInfoIterator struct {
	owner *AddrInfo
	gen   uint64
	node  *AddrRecord
}

// checkValid panics if the owner released or moved its list.
func (it AddrInfoIterator) checkValid() {
	if it.owner == nil || it.owner.gen != it.gen {
		panic("sockaddr: stale AddrInfo iterator")
	}
}

// Done returns whether the iterator is at the end.
func (it AddrInfoIterator) Done() bool {
	it.checkValid()
	return it.node == nil
}

// Equal returns whether two iterators point to the same position.
func (it AddrInfoIterator) Equal(other AddrInfoIterator) bool {
	it.checkValid()
	other.checkValid()
	return it.node == other.node
}

// Value returns a copy of the current record.
//
// It panics at the end of the list.
func (it AddrInfoIterator) Value() AddrRecord {
	it.checkValid()
	if it.node == nil {
		panic("sockaddr: dereferencing the end AddrInfo iterator")
	}
	record := *it.node
	record.next = nil
	return record
}

// Next returns an iterator positioned at the following record.
//
// It panics at the end of the list.
func (it AddrInfoIterator) Next() AddrInfoIterator {
	it.checkValid()
	if it.node == nil {
		panic("sockaddr: advancing the end AddrInfo iterator")
	}
	return AddrInfoIterator{owner: it.owner, gen: it.gen, node: it.node.next}
}
