package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_Lookup(t *testing.T) {
	x := NewIndex(4)

	assert.Equal(t, 0, x.Add("name"))
	assert.Equal(t, 1, x.Add("age"))
	assert.Equal(t, 2, x.Add("name"))
	assert.Equal(t, 3, x.Len())

	pos, ok := x.Lookup("name")
	require.True(t, ok)
	assert.Equal(t, 2, pos, "the latest duplicate wins")

	pos, ok = x.LookupBytes([]byte("age"))
	require.True(t, ok)
	assert.Equal(t, 1, pos)

	_, ok = x.Lookup("missing")
	assert.False(t, ok)
	_, ok = x.LookupBytes(nil)
	assert.False(t, ok)
}

func TestIndex_SharedHashChain(t *testing.T) {
	x := NewIndex(2)
	x.Add("a")

	// Force "b" into the chain of "a" to exercise the name comparison.
	h := ID("a")
	x.heads[h] = len(x.names)
	x.names = append(x.names, "b")
	x.next = append(x.next, 0)

	pos, ok := x.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, 0, pos)

	_, ok = x.LookupBytes([]byte("c"))
	assert.False(t, ok)
}

func TestIndex_Reset(t *testing.T) {
	x := NewIndex(0)
	x.Add("k")
	x.Reset()

	assert.Equal(t, 0, x.Len())
	_, ok := x.Lookup("k")
	assert.False(t, ok)

	assert.Equal(t, 0, x.Add("j"))
}
