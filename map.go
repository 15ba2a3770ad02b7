package chaintable

import (
	"iter"
	"math"

	"go.uber.org/zap"
)

// Map is a hash table with a power of 2 number of buckets, each bucket
// a slice of entries. Bucket indexes are taken with a mask rather than
// a division, after folding the high half of the hash into the low half.
//
// A Map is not safe for concurrent use. The zero Map is not usable;
// create one with New or NewWithHashers.
type Map[K, V any] struct {
	buckets [][]*Entry[K, V]

	count      int
	threshold  int
	loadFactor float64

	keys   Hasher[K]
	values Hasher[V]
	logger *zap.Logger

	// mods counts structural changes so that iterators can tell
	// when the table changed under them.
	mods uint64

	// stats
	gets          int64
	getChainSteps int64
	grows         int
}

// New returns an empty Map for comparable keys and values,
// hashed with ComparableHasher. By default it has 16 buckets
// and a load factor of 0.75.
func New[K, V comparable](opts ...Option) (*Map[K, V], error) {
	return NewWithHashers[K, V](ComparableHasher[K]{}, ComparableHasher[V]{}, opts...)
}

// NewWithHashers returns an empty Map that hashes and compares keys
// with keys, and compares values with values.
func NewWithHashers[K, V any](keys Hasher[K], values Hasher[V], opts ...Option) (*Map[K, V], error) {
	if err := checkHashers(keys, values); err != nil {
		return nil, err
	}
	c, err := newConfig(defaultMapCapacity, opts)
	if err != nil {
		return nil, err
	}

	tableLength := roundPow2(c.capacity)
	return &Map[K, V]{
		buckets:    make([][]*Entry[K, V], tableLength),
		threshold:  calcThreshold(tableLength, c.loadFactor),
		loadFactor: c.loadFactor,
		keys:       keys,
		values:     values,
		logger:     c.logger,
	}, nil
}

func (m *Map[K, V]) hash(k K) uint64 {
	return spread(hashOf(m.keys, k))
}

// find returns the hash of k, its bucket, and the position of k
// within the bucket, or -1 if k is not present.
func (m *Map[K, V]) find(k K) (uint64, int, int) {
	h := m.hash(k)
	b := maskIndex(h, len(m.buckets))
	for i, e := range m.buckets[b] {
		if e.hash == h && equal(m.keys, e.key, k) {
			return h, b, i
		}
		m.getChainSteps++ // stats
	}
	return h, b, -1
}

// Get returns the value stored for k, and whether k was present.
func (m *Map[K, V]) Get(k K) (v V, ok bool) {
	m.gets++ // stats

	_, b, i := m.find(k)
	if i < 0 {
		return v, false
	}
	return m.buckets[b][i].value, true
}

func (m *Map[K, V]) ContainsKey(k K) bool {
	_, _, i := m.find(k)
	return i >= 0
}

// ContainsValue reports whether any key maps to v.
// It visits every entry.
func (m *Map[K, V]) ContainsValue(v V) bool {
	for _, bucket := range m.buckets {
		for _, e := range bucket {
			if equal(m.values, e.value, v) {
				return true
			}
		}
	}
	return false
}

// Set associates v with k. If k was already present, its value is
// replaced in place and the old value is returned with replaced true.
// Adding a new key may grow the table.
func (m *Map[K, V]) Set(k K, v V) (prev V, replaced bool) {
	h, b, i := m.find(k)
	if i >= 0 {
		return m.buckets[b][i].SetValue(v), true
	}

	m.buckets[b] = append(m.buckets[b], &Entry[K, V]{key: k, value: v, hash: h})
	m.count++
	m.mods++
	if m.count > m.threshold {
		m.grow()
	}
	return prev, false
}

// SetAll sets every pair of seq, in the order seq yields them.
func (m *Map[K, V]) SetAll(seq iter.Seq2[K, V]) {
	for k, v := range seq {
		m.Set(k, v)
	}
}

// Delete removes k and returns the value it had, if any.
// Deleting a missing key does nothing.
func (m *Map[K, V]) Delete(k K) (v V, ok bool) {
	_, b, i := m.find(k)
	if i < 0 {
		return v, false
	}
	v = m.buckets[b][i].value
	m.removeAt(b, i)
	return v, true
}

// removeAt removes position i of bucket b, keeping the order of the
// remaining entries so that an iterator positioned in b stays valid.
func (m *Map[K, V]) removeAt(b, i int) {
	bucket := m.buckets[b]
	copy(bucket[i:], bucket[i+1:])
	bucket[len(bucket)-1] = nil
	m.buckets[b] = bucket[:len(bucket)-1]
	m.count--
	m.mods++
}

// Clear removes all entries. The number of buckets is unchanged.
func (m *Map[K, V]) Clear() {
	for i := range m.buckets {
		m.buckets[i] = nil
	}
	m.count = 0
	m.mods++
}

// grow doubles the bucket array and moves every entry to the bucket
// its cached hash selects in the new array.
func (m *Map[K, V]) grow() {
	oldLength := len(m.buckets)
	if oldLength >= maxCapacity {
		m.threshold = math.MaxInt
		return
	}

	newLength := oldLength * 2
	buckets := make([][]*Entry[K, V], newLength)
	for _, bucket := range m.buckets {
		for _, e := range bucket {
			b := maskIndex(e.hash, newLength)
			buckets[b] = append(buckets[b], e)
		}
	}
	m.buckets = buckets
	m.threshold = calcThreshold(newLength, m.loadFactor)
	m.mods++
	m.grows++ // stats

	if ce := m.logger.Check(zap.DebugLevel, "chaintable: map grew"); ce != nil {
		ce.Write(
			zap.Int("old_cap", oldLength),
			zap.Int("new_cap", newLength),
			zap.Int("len", m.count),
			zap.Int("threshold", m.threshold),
		)
	}
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return m.count
}

func (m *Map[K, V]) IsEmpty() bool {
	return m.count == 0
}

// Cap returns the current number of buckets.
func (m *Map[K, V]) Cap() int {
	return len(m.buckets)
}

// Equal reports whether other is a Container holding the same pairs.
func (m *Map[K, V]) Equal(other any) bool {
	return equalContainers[K, V](m, m.values, other)
}

// HashCode returns the sum over entries of key hash ^ value hash.
// Equal tables using the same Hashers have the same HashCode.
func (m *Map[K, V]) HashCode() uint64 {
	return hashCode(m.iterator, m.keys, m.values)
}

// EntryEqual reports whether a and b have equal keys and equal values
// under the Map's Hashers. Two nil entries are equal.
func (m *Map[K, V]) EntryEqual(a, b *Entry[K, V]) bool {
	return entryEqual(m.keys, m.values, a, b)
}

// EntryHash returns the hash of e's key xor the hash of its value,
// the term HashCode sums over.
func (m *Map[K, V]) EntryHash(e *Entry[K, V]) uint64 {
	return entryHash(m.keys, m.values, e)
}

func (m *Map[K, V]) String() string {
	return format(m.All())
}
