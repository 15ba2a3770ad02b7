package chaintable

import (
	"bytes"
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/constraints"
)

// A Hasher supplies the hash function and equivalence relation
// a table uses for its keys, or for its values when comparing
// whole tables. Equal values must produce equal hashes.
type Hasher[T any] interface {
	Hash(v T) uint64
	Equal(a, b T) bool
}

// seed is shared by every ComparableHasher so that two tables holding
// the same contents report the same HashCode within a process.
var seed = maphash.MakeSeed()

// ComparableHasher hashes any comparable type with hash/maphash.
// Its Equal is consistent with ==.
type ComparableHasher[T comparable] struct{}

func (ComparableHasher[T]) Hash(v T) uint64   { return maphash.Comparable(seed, v) }
func (ComparableHasher[T]) Equal(a, b T) bool { return a == b }

// StringHasher hashes strings with xxhash. Unlike ComparableHasher,
// hashes are stable across processes.
type StringHasher struct{}

func (StringHasher) Hash(s string) uint64   { return xxhash.Sum64String(s) }
func (StringHasher) Equal(a, b string) bool { return a == b }

// BytesHasher lets []byte, which is not comparable, be used as a key.
type BytesHasher struct{}

func (BytesHasher) Hash(b []byte) uint64   { return xxhash.Sum64(b) }
func (BytesHasher) Equal(a, b []byte) bool { return bytes.Equal(a, b) }

// IntegerHasher uses the integer itself as its hash.
// Keys that differ only in their high bits collide under a plain
// power-of-two mask; Map folds the hash to compensate.
type IntegerHasher[T constraints.Integer] struct{}

func (IntegerHasher[T]) Hash(v T) uint64   { return uint64(v) }
func (IntegerHasher[T]) Equal(a, b T) bool { return a == b }

// HashFuncs adapts a pair of plain functions to a Hasher.
type HashFuncs[T any] struct {
	HashFunc  func(v T) uint64
	EqualFunc func(a, b T) bool
}

func (h HashFuncs[T]) Hash(v T) uint64   { return h.HashFunc(v) }
func (h HashFuncs[T]) Equal(a, b T) bool { return h.EqualFunc(a, b) }

// isNil reports whether v is a nil interface value.
// It is always false for non-interface type arguments.
func isNil[T any](v T) bool {
	return any(v) == nil
}

// hashOf returns the raw hash of v, with a nil key hashing to 0
// without consulting h.
func hashOf[T any](h Hasher[T], v T) uint64 {
	if isNil(v) {
		return 0
	}
	return h.Hash(v)
}

// equal compares a and b with h. A nil value is only equal to another nil.
func equal[T any](h Hasher[T], a, b T) bool {
	an, bn := isNil(a), isNil(b)
	if an || bn {
		return an && bn
	}
	return h.Equal(a, b)
}

// spread folds the upper half of h into the lower half.
// Map indexes with a mask, which otherwise ignores every bit above
// the table length.
func spread(h uint64) uint64 {
	return h ^ (h >> 32)
}

// maskIndex reduces a spread hash to a bucket of a power of two table.
func maskIndex(h uint64, n int) int {
	return int(h & uint64(n-1))
}

// modIndex reduces a raw hash to a bucket of a prime length table.
// Hashes are unsigned, so the remainder is never negative.
func modIndex(h uint64, n int) int {
	return int(h % uint64(n))
}
