package chaintable

import (
	"iter"
	"math"

	"go.uber.org/zap"
)

// ChainMap is a hash table with a prime number of buckets. Each bucket
// is a singly-linked chain threaded through the entries themselves, so
// the bucket array holds only chain heads and no per-bucket slices are
// allocated. Bucket indexes are the hash modulo the table length.
//
// A ChainMap is not safe for concurrent use. Create one with NewChain
// or NewChainWithHashers.
type ChainMap[K, V any] struct {
	buckets []*Entry[K, V]

	count      int
	threshold  int
	loadFactor float64

	keys   Hasher[K]
	values Hasher[V]
	logger *zap.Logger

	mods uint64

	// stats
	gets          int64
	getChainSteps int64
	grows         int
}

// NewChain returns an empty ChainMap for comparable keys and values,
// hashed with ComparableHasher. By default it has 17 buckets and a
// load factor of 0.75.
func NewChain[K, V comparable](opts ...Option) (*ChainMap[K, V], error) {
	return NewChainWithHashers[K, V](ComparableHasher[K]{}, ComparableHasher[V]{}, opts...)
}

// NewChainWithHashers returns an empty ChainMap that hashes and compares
// keys with keys, and compares values with values.
func NewChainWithHashers[K, V any](keys Hasher[K], values Hasher[V], opts ...Option) (*ChainMap[K, V], error) {
	if err := checkHashers(keys, values); err != nil {
		return nil, err
	}
	c, err := newConfig(defaultChainCapacity, opts)
	if err != nil {
		return nil, err
	}

	tableLength := chainLength(c.capacity)
	return &ChainMap[K, V]{
		buckets:    make([]*Entry[K, V], tableLength),
		threshold:  calcThreshold(tableLength, c.loadFactor),
		loadFactor: c.loadFactor,
		keys:       keys,
		values:     values,
		logger:     c.logger,
	}, nil
}

// lookup returns the entry for k, or nil.
func (m *ChainMap[K, V]) lookup(k K) *Entry[K, V] {
	h := hashOf(m.keys, k)
	for e := m.buckets[modIndex(h, len(m.buckets))]; e != nil; e = e.next {
		if e.hash == h && equal(m.keys, e.key, k) {
			return e
		}
		m.getChainSteps++ // stats
	}
	return nil
}

// Get returns the value stored for k, and whether k was present.
func (m *ChainMap[K, V]) Get(k K) (v V, ok bool) {
	m.gets++ // stats

	e := m.lookup(k)
	if e == nil {
		return v, false
	}
	return e.value, true
}

func (m *ChainMap[K, V]) ContainsKey(k K) bool {
	return m.lookup(k) != nil
}

// ContainsValue reports whether any key maps to v.
// It visits every entry.
func (m *ChainMap[K, V]) ContainsValue(v V) bool {
	for _, head := range m.buckets {
		for e := head; e != nil; e = e.next {
			if equal(m.values, e.value, v) {
				return true
			}
		}
	}
	return false
}

// Set associates v with k. If k was already present, its value is
// replaced in place and the old value is returned with replaced true.
// A new key is pushed onto the front of its chain and may grow the table.
func (m *ChainMap[K, V]) Set(k K, v V) (prev V, replaced bool) {
	h := hashOf(m.keys, k)
	b := modIndex(h, len(m.buckets))
	for e := m.buckets[b]; e != nil; e = e.next {
		if e.hash == h && equal(m.keys, e.key, k) {
			return e.SetValue(v), true
		}
	}

	m.buckets[b] = &Entry[K, V]{key: k, value: v, hash: h, next: m.buckets[b]}
	m.count++
	m.mods++
	if m.count > m.threshold {
		m.grow()
	}
	return prev, false
}

// SetAll sets every pair of seq, in the order seq yields them.
func (m *ChainMap[K, V]) SetAll(seq iter.Seq2[K, V]) {
	for k, v := range seq {
		m.Set(k, v)
	}
}

// Delete removes k and returns the value it had, if any.
// Deleting a missing key does nothing.
func (m *ChainMap[K, V]) Delete(k K) (v V, ok bool) {
	h := hashOf(m.keys, k)
	b := modIndex(h, len(m.buckets))
	var prev *Entry[K, V]
	for e := m.buckets[b]; e != nil; prev, e = e, e.next {
		if e.hash == h && equal(m.keys, e.key, k) {
			m.unlink(b, prev, e)
			return e.value, true
		}
	}
	return v, false
}

// unlink removes e from chain b, where prev is the entry before e
// or nil if e is the head.
func (m *ChainMap[K, V]) unlink(b int, prev, e *Entry[K, V]) {
	if prev == nil {
		m.buckets[b] = e.next
	} else {
		prev.next = e.next
	}
	e.next = nil
	m.count--
	m.mods++
}

// Clear removes all entries. The number of buckets is unchanged.
func (m *ChainMap[K, V]) Clear() {
	clear(m.buckets)
	m.count = 0
	m.mods++
}

// grow moves to chainLength(2*N), relinking every entry onto the
// front of its new chain. A table already at the largest prime
// below maxCapacity stops growing.
func (m *ChainMap[K, V]) grow() {
	oldLength := len(m.buckets)
	newLength := chainLength(2 * oldLength)
	if newLength <= oldLength {
		m.threshold = math.MaxInt
		return
	}

	buckets := make([]*Entry[K, V], newLength)
	for _, head := range m.buckets {
		var next *Entry[K, V]
		for e := head; e != nil; e = next {
			next = e.next
			b := modIndex(e.hash, newLength)
			e.next = buckets[b]
			buckets[b] = e
		}
	}
	m.buckets = buckets
	m.threshold = calcThreshold(newLength, m.loadFactor)
	m.mods++
	m.grows++ // stats

	if ce := m.logger.Check(zap.DebugLevel, "chaintable: chain map grew"); ce != nil {
		ce.Write(
			zap.Int("old_cap", oldLength),
			zap.Int("new_cap", newLength),
			zap.Int("len", m.count),
			zap.Int("threshold", m.threshold),
		)
	}
}

// Len returns the number of entries.
func (m *ChainMap[K, V]) Len() int {
	return m.count
}

func (m *ChainMap[K, V]) IsEmpty() bool {
	return m.count == 0
}

// Cap returns the current number of buckets, which is always prime.
func (m *ChainMap[K, V]) Cap() int {
	return len(m.buckets)
}

// Equal reports whether other is a Container holding the same pairs.
func (m *ChainMap[K, V]) Equal(other any) bool {
	return equalContainers[K, V](m, m.values, other)
}

// HashCode returns the sum over entries of key hash ^ value hash.
func (m *ChainMap[K, V]) HashCode() uint64 {
	return hashCode(m.iterator, m.keys, m.values)
}

// EntryEqual reports whether a and b have equal keys and equal values
// under the ChainMap's Hashers. Two nil entries are equal.
func (m *ChainMap[K, V]) EntryEqual(a, b *Entry[K, V]) bool {
	return entryEqual(m.keys, m.values, a, b)
}

// EntryHash returns the hash of e's key xor the hash of its value,
// the term HashCode sums over.
func (m *ChainMap[K, V]) EntryHash(e *Entry[K, V]) uint64 {
	return entryHash(m.keys, m.values, e)
}

func (m *ChainMap[K, V]) String() string {
	return format(m.All())
}
