package hash

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
		{"long string", "this is a longer test string to hash", 0x69275f7f7ee59dbd},
		{"another string", "another test string", 0x212a22f593810bec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, ID(tt.data))
			assert.Equal(t, tt.id, Bytes([]byte(tt.data)))
		})
	}
}

func TestIndex(t *testing.T) {
	x := NewIndex(4)
	require.Equal(t, 0, x.Add("name"))
	require.Equal(t, 1, x.Add("age"))
	require.Equal(t, 2, x.Add("active"))

	pos, ok := x.Lookup("age")
	require.True(t, ok)
	assert.Equal(t, 1, pos)

	pos, ok = x.LookupBytes([]byte("active"))
	require.True(t, ok)
	assert.Equal(t, 2, pos)

	_, ok = x.Lookup("missing")
	assert.False(t, ok)
	assert.Equal(t, 3, x.Len())
}

func TestIndex_DuplicateNameResolvesToLatest(t *testing.T) {
	x := NewIndex(0)
	x.Add("k")
	x.Add("other")
	x.Add("k")

	pos, ok := x.Lookup("k")
	require.True(t, ok)
	assert.Equal(t, 2, pos)
}

func TestIndex_CollidingHashesAreChained(t *testing.T) {
	x := NewIndex(0)
	x.Add("a")
	x.Add("b")

	// Force both names onto one chain to exercise the name comparison.
	x.heads = map[uint64]int{ID("a"): 1}
	x.next[1] = 0
	x.heads[ID("b")] = 1

	pos, ok := x.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, 0, pos)

	pos, ok = x.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, 1, pos)
}

func TestIndex_ResetAfterAdd(t *testing.T) {
	x := NewIndex(2)
	x.Add("a")
	x.Reset()

	_, ok := x.Lookup("a")
	assert.False(t, ok)
	assert.Equal(t, 0, x.Len())
	assert.Equal(t, 0, x.Add("b"))
}

func randString(n int) string {
	const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	b := make([]byte, n)
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := range b {
		b[i] = letters[seededRand.Intn(len(letters))]
	}

	return string(b)
}

func BenchmarkID(b *testing.B) {
	randStr := randString(20)
	b.ResetTimer()
	for b.Loop() {
		ID(randStr)
	}
}

func BenchmarkIndex_LookupBytes(b *testing.B) {
	x := NewIndex(32)
	keys := make([][]byte, 32)
	for i := range keys {
		s := randString(12)
		x.Add(s)
		keys[i] = []byte(s)
	}
	b.ResetTimer()
	for i := 0; b.Loop(); i++ {
		x.LookupBytes(keys[i%len(keys)])
	}
}
