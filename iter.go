package chaintable

import "iter"

// Iterator walks a Map bucket by bucket, and within a bucket in slice order.
// The order is only meaningful for one pass over an unchanged table.
// Removing through the iterator is the only mutation allowed while it is in use;
// any other structural change makes Next return ErrConcurrentModification.
type Iterator[K, V any] struct {
	m *Map[K, V]

	// bucket and pos locate the entry the next call to Next returns,
	// once HasNext has confirmed pos is within bucket.
	bucket int
	pos    int

	// lastBucket and lastPos locate the entry last returned by Next.
	lastBucket int
	lastPos    int
	canRemove  bool

	mods uint64
}

// Iter returns an iterator positioned before the first entry.
func (m *Map[K, V]) Iter() *Iterator[K, V] {
	return &Iterator[K, V]{m: m, mods: m.mods}
}

func (it *Iterator[K, V]) HasNext() bool {
	buckets := it.m.buckets
	for it.bucket < len(buckets) {
		if it.pos < len(buckets[it.bucket]) {
			return true
		}
		it.bucket++
		it.pos = 0
	}
	return false
}

func (it *Iterator[K, V]) Next() (*Entry[K, V], error) {
	if it.mods != it.m.mods {
		return nil, ErrConcurrentModification
	}
	if !it.HasNext() {
		return nil, ErrNoSuchElement
	}
	e := it.m.buckets[it.bucket][it.pos]
	it.lastBucket, it.lastPos = it.bucket, it.pos
	it.canRemove = true
	it.pos++
	return e, nil
}

// Remove deletes the entry last returned by Next from the Map.
// The iterator is left where it was, just past the removed entry.
func (it *Iterator[K, V]) Remove() error {
	if !it.canRemove {
		return ErrInvalidState
	}
	if it.mods != it.m.mods {
		return ErrConcurrentModification
	}
	it.m.removeAt(it.lastBucket, it.lastPos)
	if it.bucket == it.lastBucket {
		// later entries in this bucket shifted down by one
		it.pos--
	}
	it.canRemove = false
	it.mods = it.m.mods
	return nil
}

func (m *Map[K, V]) iterator() EntryIterator[K, V] {
	return m.Iter()
}

// All returns a sequence of every key and value.
// It panics with ErrConcurrentModification if the Map is
// structurally modified while the sequence is being ranged over.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return all(m.iterator)
}

func (m *Map[K, V]) Keys() iter.Seq[K] {
	return keys(m.All())
}

func (m *Map[K, V]) Values() iter.Seq[V] {
	return values(m.All())
}

// Range calls f for each key and value until f returns false.
// f must not add or delete keys; values may be updated with Set.
func (m *Map[K, V]) Range(f func(key K, value V) bool) {
	for k, v := range m.All() {
		if !f(k, v) {
			return
		}
	}
}
