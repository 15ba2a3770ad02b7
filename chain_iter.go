package chaintable

import "iter"

// ChainIterator walks a ChainMap bucket by bucket, following each chain
// from its head. It tracks the predecessor of both the pending and the
// last returned entry, so Remove unlinks without rescanning the chain.
type ChainIterator[K, V any] struct {
	m *ChainMap[K, V]

	// bucket holds next. -1 before the first call to HasNext.
	bucket int
	next   *Entry[K, V]
	prev   *Entry[K, V] // entry before next in its chain, nil at a head

	last       *Entry[K, V]
	lastPrev   *Entry[K, V]
	lastBucket int

	mods uint64
}

// Iter returns an iterator positioned before the first entry.
func (m *ChainMap[K, V]) Iter() *ChainIterator[K, V] {
	return &ChainIterator[K, V]{m: m, bucket: -1, mods: m.mods}
}

func (it *ChainIterator[K, V]) HasNext() bool {
	if it.next != nil {
		return true
	}
	buckets := it.m.buckets
	for it.bucket < len(buckets) {
		it.bucket++
		if it.bucket < len(buckets) && buckets[it.bucket] != nil {
			it.next = buckets[it.bucket]
			it.prev = nil
			return true
		}
	}
	return false
}

func (it *ChainIterator[K, V]) Next() (*Entry[K, V], error) {
	if it.mods != it.m.mods {
		return nil, ErrConcurrentModification
	}
	if !it.HasNext() {
		return nil, ErrNoSuchElement
	}
	e := it.next
	it.last, it.lastPrev, it.lastBucket = e, it.prev, it.bucket
	it.prev, it.next = e, e.next
	return e, nil
}

// Remove deletes the entry last returned by Next from the ChainMap.
func (it *ChainIterator[K, V]) Remove() error {
	if it.last == nil {
		return ErrInvalidState
	}
	if it.mods != it.m.mods {
		return ErrConcurrentModification
	}
	if it.prev == it.last {
		// next is still in the same chain and now follows lastPrev
		it.prev = it.lastPrev
	}
	it.m.unlink(it.lastBucket, it.lastPrev, it.last)
	it.last, it.lastPrev = nil, nil
	it.mods = it.m.mods
	return nil
}

func (m *ChainMap[K, V]) iterator() EntryIterator[K, V] {
	return m.Iter()
}

// All returns a sequence of every key and value.
// It panics with ErrConcurrentModification if the ChainMap is
// structurally modified while the sequence is being ranged over.
func (m *ChainMap[K, V]) All() iter.Seq2[K, V] {
	return all(m.iterator)
}

func (m *ChainMap[K, V]) Keys() iter.Seq[K] {
	return keys(m.All())
}

func (m *ChainMap[K, V]) Values() iter.Seq[V] {
	return values(m.All())
}

// Range calls f for each key and value until f returns false.
// f must not add or delete keys.
func (m *ChainMap[K, V]) Range(f func(key K, value V) bool) {
	for k, v := range m.All() {
		if !f(k, v) {
			return
		}
	}
}
