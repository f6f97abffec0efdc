// Package lru provides a bounded least-recently-used map.
package lru

// entry is one node of the recency list. The key is kept so eviction can
// delete from the index without a search.
type entry[K comparable, V any] struct {
	key        K
	value      V
	prev, next *entry[K, V]
}

// Map is a key/value map holding at most Cap entries. Adding past the cap
// evicts the least recently used entry.
//
// A Map is not safe for concurrent use.
type Map[K comparable, V any] struct {
	index map[K]*entry[K, V]
	head  *entry[K, V] // most recent
	tail  *entry[K, V] // least recent
	cap   int
}

// New returns an empty Map. A capacity below 1 is treated as 1.
func New[K comparable, V any](capacity int) *Map[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	return &Map[K, V]{index: make(map[K]*entry[K, V], capacity), cap: capacity}
}

// Get returns the value stored for key and marks it most recently used.
func (m *Map[K, V]) Get(key K) (V, bool) {
	e, ok := m.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	m.moveToFront(e)
	return e.value, true
}

// Put stores value for key, evicting the oldest entry when the map is full.
// It reports whether an entry was evicted.
func (m *Map[K, V]) Put(key K, value V) bool {
	if e, ok := m.index[key]; ok {
		e.value = value
		m.moveToFront(e)
		return false
	}
	evicted := false
	if len(m.index) >= m.cap {
		old := m.tail
		m.unlink(old)
		delete(m.index, old.key)
		evicted = true
	}
	e := &entry[K, V]{key: key, value: value}
	m.pushFront(e)
	m.index[key] = e
	return evicted
}

// Len returns the number of stored entries.
func (m *Map[K, V]) Len() int {
	return len(m.index)
}

// Cap returns the maximum number of entries.
func (m *Map[K, V]) Cap() int {
	return m.cap
}

// Clear removes every entry.
func (m *Map[K, V]) Clear() {
	clear(m.index)
	m.head, m.tail = nil, nil
}

func (m *Map[K, V]) pushFront(e *entry[K, V]) {
	e.prev = nil
	e.next = m.head
	if m.head != nil {
		m.head.prev = e
	}
	m.head = e
	if m.tail == nil {
		m.tail = e
	}
}

func (m *Map[K, V]) moveToFront(e *entry[K, V]) {
	if e == m.head {
		return
	}
	m.unlink(e)
	m.pushFront(e)
}

func (m *Map[K, V]) unlink(e *entry[K, V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		m.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		m.tail = e.prev
	}
	e.prev, e.next = nil, nil
}
