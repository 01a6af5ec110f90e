package goshardcache

import "time"

// entry is an intrusive doubly linked list node owned by a shard. It stores
// the key/value pair alongside the list links that express recency order.
type entry[K comparable, V any] struct {
	key K
	val V

	// expiresAt is the absolute expiry instant. The zero value means the
	// entry never expires.
	expiresAt time.Time

	prev, next *entry[K, V]
}

// expired reports whether the entry's deadline is at or before now.
func (e *entry[K, V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !e.expiresAt.After(now)
}

// recencyList is a doubly linked list with sentinel head and tail nodes.
// The node adjacent to head is the most recently used, the node adjacent to
// tail is the next eviction candidate. Sentinels make pushFront, unlink and
// popBack unconditional pointer swaps with no empty-list special cases.
//
// The list is not safe for concurrent use; the owning shard's lock guards
// every operation.
type recencyList[K comparable, V any] struct {
	head entry[K, V] // sentinel, head.next is MRU
	tail entry[K, V] // sentinel, tail.prev is LRU
}

// init links the sentinels to each other, producing an empty list.
func (l *recencyList[K, V]) init() {
	l.head.next = &l.tail
	l.head.prev = nil
	l.tail.prev = &l.head
	l.tail.next = nil
}

// pushFront inserts e immediately after the head sentinel, marking it most
// recently used.
func (l *recencyList[K, V]) pushFront(e *entry[K, V]) {
	e.prev = &l.head
	e.next = l.head.next
	l.head.next.prev = e
	l.head.next = e
}

// unlink removes e from the list and clears its links.
func (l *recencyList[K, V]) unlink(e *entry[K, V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev = nil
	e.next = nil
}

// popBack unlinks and returns the least recently used entry, or nil when the
// list is empty.
func (l *recencyList[K, V]) popBack() *entry[K, V] {
	e := l.tail.prev
	if e == &l.head {
		return nil
	}
	l.unlink(e)
	return e
}
