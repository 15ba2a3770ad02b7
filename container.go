package chaintable

import (
	"fmt"
	"iter"
	"strings"
)

// Container is the read side shared by Map and ChainMap.
// Equal accepts any Container with matching type arguments,
// so a Map and a ChainMap holding the same pairs are equal.
type Container[K, V any] interface {
	Len() int
	Get(k K) (V, bool)
	ContainsKey(k K) bool
	All() iter.Seq2[K, V]
}

// EntryIterator walks the entries of a table in bucket order and
// allows removing the last returned entry.
//
// HasNext may move the iterator to the next non-empty bucket,
// and can be called any number of times between calls to Next.
// Next returns ErrNoSuchElement once exhausted. Remove returns
// ErrInvalidState unless Next returned an entry since the last Remove.
type EntryIterator[K, V any] interface {
	HasNext() bool
	Next() (*Entry[K, V], error)
	Remove() error
}

var (
	_ Container[string, int]     = (*Map[string, int])(nil)
	_ Container[string, int]     = (*ChainMap[string, int])(nil)
	_ EntryIterator[string, int] = (*Iterator[string, int])(nil)
	_ EntryIterator[string, int] = (*ChainIterator[string, int])(nil)
)

// all returns a sequence over a fresh iterator from start.
// The sequence panics with ErrConcurrentModification if the
// table changes shape while being ranged over.
func all[K, V any](start func() EntryIterator[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		it := start()
		for it.HasNext() {
			e, err := it.Next()
			if err != nil {
				panic(err)
			}
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}

func keys[K, V any](seq iter.Seq2[K, V]) iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range seq {
			if !yield(k) {
				return
			}
		}
	}
}

func values[K, V any](seq iter.Seq2[K, V]) iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range seq {
			if !yield(v) {
				return
			}
		}
	}
}

// equalContainers reports whether other is a Container with the same
// pairs as m. Any panic while comparing, for example from a user
// Hasher or from a nil other, means the two are not equal.
func equalContainers[K, V any](m Container[K, V], vh Hasher[V], other any) (eq bool) {
	o, ok := other.(Container[K, V])
	if !ok {
		return false
	}
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	if o == m {
		return true
	}
	if o.Len() != m.Len() {
		return false
	}
	for k, v := range m.All() {
		ov, ok := o.Get(k)
		if !ok || !equal(vh, v, ov) {
			return false
		}
	}
	return true
}

// entryEqual reports whether a and b hold equal keys and equal values.
func entryEqual[K, V any](kh Hasher[K], vh Hasher[V], a, b *Entry[K, V]) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return equal(kh, a.key, b.key) && equal(vh, a.value, b.value)
}

// entryHash is key hash ^ value hash, with 0 for a nil key or value.
func entryHash[K, V any](kh Hasher[K], vh Hasher[V], e *Entry[K, V]) uint64 {
	return hashOf(kh, e.key) ^ hashOf(vh, e.value)
}

// hashCode sums entryHash over a fresh iterator from start, which does
// not depend on iteration order.
func hashCode[K, V any](start func() EntryIterator[K, V], kh Hasher[K], vh Hasher[V]) uint64 {
	var h uint64
	for it := start(); it.HasNext(); {
		e, err := it.Next()
		if err != nil {
			panic(err)
		}
		h += entryHash(kh, vh, e)
	}
	return h
}

// format renders pairs as {(k1, v1), (k2, v2)}.
func format[K, V any](seq iter.Seq2[K, V]) string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for k, v := range seq {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "(%v, %v)", k, v)
	}
	b.WriteByte('}')
	return b.String()
}
