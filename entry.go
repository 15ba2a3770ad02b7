package chaintable

import "fmt"

// An Entry is a key/value pair stored in a table.
// The key is fixed once inserted; the value may be changed in place.
// A table keeps the same *Entry for a key across growth.
type Entry[K, V any] struct {
	key   K
	value V

	// hash is the spread hash for Map and the raw hash for ChainMap.
	hash uint64

	// next links the entries of one ChainMap bucket. Unused by Map.
	next *Entry[K, V]
}

func (e *Entry[K, V]) Key() K {
	return e.key
}

func (e *Entry[K, V]) Value() V {
	return e.value
}

// SetValue replaces the value and returns the previous one.
// It does not move the entry.
func (e *Entry[K, V]) SetValue(v V) (old V) {
	old = e.value
	e.value = v
	return old
}

func (e *Entry[K, V]) String() string {
	return fmt.Sprintf("(%v, %v)", e.key, e.value)
}
