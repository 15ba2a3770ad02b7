package chaintable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	a := mustNewMap(0, ComparableHasher[Key]{})
	b := mustNewMap(64, identityHash)
	c := mustNewChain(0, zeroHash)

	// same pairs, different insertion order and table shapes
	for i := Key(0); i < 30; i++ {
		a.Set(i, Value(i))
		b.Set(29-i, Value(29-i))
		c.Set((i*7)%30, Value((i*7)%30))
	}

	require.True(t, a.Equal(a))
	require.True(t, a.Equal(b))
	require.True(t, b.Equal(a))
	require.True(t, a.Equal(c))
	require.True(t, c.Equal(a))
	require.Equal(t, a.HashCode(), b.HashCode())
	require.Equal(t, a.HashCode(), c.HashCode())

	c.Set(5, 500)
	require.False(t, a.Equal(c))
	require.False(t, c.Equal(a))

	c.Set(5, 5)
	c.Set(30, 30)
	require.False(t, a.Equal(c), "different sizes")

	c.Delete(30)
	c.Delete(0)
	c.Set(31, 0)
	require.False(t, a.Equal(c), "same size, different keys")
}

func TestEqual_Mismatched(t *testing.T) {
	m := mustNewMap(0, ComparableHasher[Key]{})
	m.Set(1, 1)

	other, err := New[Key, string]()
	require.NoError(t, err)
	other.Set(1, "1")

	require.False(t, m.Equal(nil))
	require.False(t, m.Equal("{(1, 1)}"))
	require.False(t, m.Equal(map[Key]Value{1: 1}))
	require.False(t, m.Equal(other))
	require.False(t, m.Equal((*ChainMap[Key, Value])(nil)))
}

func TestEqual_Empty(t *testing.T) {
	m := mustNewMap(0, ComparableHasher[Key]{})
	c := mustNewChain(100, zeroHash)
	require.True(t, m.Equal(c))
	require.Zero(t, m.HashCode())
	require.Zero(t, c.HashCode())
}

func TestEqual_PanickingHasher(t *testing.T) {
	boom := HashFuncs[Value]{
		HashFunc:  func(v Value) uint64 { return uint64(v) },
		EqualFunc: func(a, b Value) bool { panic("boom") },
	}
	m, err := NewWithHashers[Key, Value](ComparableHasher[Key]{}, boom)
	require.NoError(t, err)
	m.Set(1, 1)
	c := mustNewChain(0, ComparableHasher[Key]{})
	c.Set(1, 1)

	require.NotPanics(t, func() {
		require.False(t, m.Equal(c))
	})
}

func TestString(t *testing.T) {
	m := mustNewMap(0, ComparableHasher[Key]{})
	c := mustNewChain(0, ComparableHasher[Key]{})
	require.Equal(t, "{}", m.String())
	require.Equal(t, "{}", c.String())

	m.Set(1, 10)
	c.Set(1, 10)
	require.Equal(t, "{(1, 10)}", m.String())
	require.Equal(t, "{(1, 10)}", c.String())

	m.Set(2, 20)
	s := m.String()
	require.Contains(t, []string{"{(1, 10), (2, 20)}", "{(2, 20), (1, 10)}"}, s)
}

func TestEntry(t *testing.T) {
	m := mustNewChain(0, ComparableHasher[Key]{})
	m.Set(3, 30)

	it := m.Iter()
	e, err := it.Next()
	require.NoError(t, err)
	require.Equal(t, Key(3), e.Key())
	require.Equal(t, Value(30), e.Value())
	require.Equal(t, "(3, 30)", e.String())

	// SetValue writes through to the table
	require.Equal(t, Value(30), e.SetValue(31))
	v, ok := m.Get(3)
	require.True(t, ok)
	require.Equal(t, Value(31), v)
}

func TestNilValues(t *testing.T) {
	m, err := New[string, any]()
	require.NoError(t, err)
	c, err := NewChain[string, any]()
	require.NoError(t, err)

	for _, tbl := range []interface {
		Set(string, any) (any, bool)
		ContainsValue(any) bool
		Get(string) (any, bool)
		String() string
	}{m, c} {
		tbl.Set("a", nil)
		v, ok := tbl.Get("a")
		require.True(t, ok)
		require.Nil(t, v)
		require.True(t, tbl.ContainsValue(nil))
		require.False(t, tbl.ContainsValue(0))
		require.Equal(t, "{(a, <nil>)}", tbl.String())
	}
	require.True(t, m.Equal(c))
	require.Equal(t, m.HashCode(), c.HashCode())
}

func TestEntryEqualAndHash(t *testing.T) {
	m := mustNewMap(0, ComparableHasher[Key]{})
	c := mustNewChain(0, zeroHash)
	for i := Key(0); i < 10; i++ {
		m.Set(i, Value(i*2))
		c.Set(i, Value(i*2))
	}
	me := entriesByKey(m.Iter())
	ce := entriesByKey(c.Iter())

	for k := Key(0); k < 10; k++ {
		require.True(t, m.EntryEqual(me[k], ce[k]), "key %v", k)
		require.True(t, c.EntryEqual(ce[k], me[k]), "key %v", k)
		require.False(t, m.EntryEqual(me[k], me[(k+1)%10]))
	}
	require.True(t, m.EntryEqual(nil, nil))
	require.False(t, m.EntryEqual(me[0], nil))
	require.False(t, c.EntryEqual(nil, ce[0]))

	// same key, different value
	other := mustNewMap(0, ComparableHasher[Key]{})
	other.Set(3, 7)
	require.False(t, m.EntryEqual(me[3], entriesByKey(other.Iter())[3]))

	// HashCode is the sum of EntryHash
	var sum uint64
	for _, e := range me {
		want := ComparableHasher[Key]{}.Hash(e.Key()) ^ ComparableHasher[Value]{}.Hash(e.Value())
		require.Equal(t, want, m.EntryHash(e))
		sum += m.EntryHash(e)
	}
	require.Equal(t, sum, m.HashCode())

	// every key hashes to 0 under zeroHash, leaving only the value term
	var chainSum uint64
	for _, e := range ce {
		require.Equal(t, ComparableHasher[Value]{}.Hash(e.Value()), c.EntryHash(e))
		chainSum += c.EntryHash(e)
	}
	require.Equal(t, chainSum, c.HashCode())
}

func TestEntryHash_Nil(t *testing.T) {
	m, err := New[any, any]()
	require.NoError(t, err)
	m.Set(nil, nil)
	m.Set("k", nil)

	es := make(map[any]*Entry[any, any])
	it := m.Iter()
	for it.HasNext() {
		e, err := it.Next()
		require.NoError(t, err)
		es[e.Key()] = e
	}
	require.Zero(t, m.EntryHash(es[nil]))
	require.Equal(t, ComparableHasher[any]{}.Hash("k"), m.EntryHash(es["k"]))
	require.False(t, m.EntryEqual(es[nil], es["k"]))
	require.True(t, m.EntryEqual(es[nil], &Entry[any, any]{}))
	require.Equal(t, m.EntryHash(es["k"]), m.HashCode())
}
