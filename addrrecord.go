// SPDX-License-Identifier: GPL-3.0-or-later

package sockaddr

// AddrRecord is one candidate returned by a [Resolver].
//
// Records form a singly linked list owned by an [AddrInfo]. Callers only
// ever observe copies of records through [AddrInfoIterator.Value] and
// [AddrInfo.All], so they cannot modify the owned list.
type AddrRecord struct {
	// Flags contains the flags that were used for resolving.
	Flags Flags

	// Family is the address family of Address.
	Family Family

	// SocketType is the socket type to use with Address.
	SocketType SocketType

	// Protocol is the protocol to use with Address.
	Protocol Protocol

	// Address is the candidate socket address.
	Address Address

	// CanonName is the canonical name of the node. It is only set on the
	// first record and only when [FlagCanonName] was requested.
	CanonName string

	// next is the next record in the list.
	next *AddrRecord
}

// NewAddrRecordList copies the records into a new linked list and returns
// its head, or nil when there are no records.
//
// This function is meant for [Resolver] implementations.
func NewAddrRecordList(records ...AddrRecord) *AddrRecord {
	var head *AddrRecord
	for idx := len(records) - 1; idx >= 0; idx-- {
		node := records[idx]
		node.next = head
		head = &node
	}
	return head
}

// FreeAddrRecordList releases a list created by [NewAddrRecordList] by
// unlinking all of its nodes.
//
// This function is meant for [Resolver] implementations.
func FreeAddrRecordList(list *AddrRecord) {
	for list != nil {
		next := list.next
		list.next = nil
		list = next
	}
}

// Next returns the next record in the list or nil.
//
// Records returned by [AddrInfoIterator.Value] are detached copies, hence
// their Next always returns nil.
func (r *AddrRecord) Next() *AddrRecord {
	return r.next
}
