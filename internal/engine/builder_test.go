package engine

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func view(t *testing.T, b *Builder) string {
	t.Helper()

	out, st := b.View()
	require.Equal(t, Success, st)

	return string(out)
}

func TestBuilder_Sequence(t *testing.T) {
	b := NewBuilder(0)
	defer b.Release()

	b.StartArray()
	b.AppendBool(true)
	b.AppendComma()
	b.AppendInt64(42)
	b.AppendComma()
	b.AppendDouble(3.15)
	b.AppendComma()
	b.EscapeAndAppendWithQuotes("hello")
	b.AppendComma()
	b.AppendNull()
	b.EndArray()

	assert.Equal(t, `[true,42,3.15,"hello",null]`, view(t, b))
	assert.Equal(t, 27, b.Size())
	assert.True(t, b.ValidateUnicode())
}

func TestBuilder_Object(t *testing.T) {
	b := NewBuilder(64)
	defer b.Release()

	b.StartObject()
	b.EscapeAndAppendWithQuotes("name")
	b.AppendColon()
	b.EscapeAndAppendWithQuotes("Bob")
	b.AppendComma()
	b.EscapeAndAppendWithQuotes("big")
	b.AppendColon()
	b.AppendUint64(math.MaxUint64)
	b.EndObject()

	assert.Equal(t, `{"name":"Bob","big":18446744073709551615}`, view(t, b))
}

func TestBuilder_AppendDouble(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{3.0, "3.0"},
		{0, "0.0"},
		{math.Copysign(0, -1), "-0.0"},
		{-2.5, "-2.5"},
		{1e20, "100000000000000000000.0"},
		{1e21, "1e+21"},
		{1.5e-7, "1.5e-7"},
		{0.000001, "0.000001"},
		{123.456, "123.456"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			b := NewBuilder(0)
			defer b.Release()

			b.AppendDouble(tt.in)
			assert.Equal(t, tt.want, view(t, b))
		})
	}
}

func TestBuilder_AppendDouble_NonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		b := NewBuilder(0)
		b.AppendDouble(v)

		_, st := b.View()
		assert.Equal(t, NumberError, st)
		assert.Equal(t, 0, b.Size(), "non-finite doubles must not be written")
		b.Release()
	}
}

func TestBuilder_Escaping(t *testing.T) {
	b := NewBuilder(0)
	defer b.Release()

	b.EscapeAndAppendWithQuotes("a\"b\\c\nd\te\x01f\x1f/é")
	assert.Equal(t, `"a\"b\\c\nd\te\u0001f\u001f/é"`, view(t, b))
}

func TestBuilder_InvalidUTF8IsSticky(t *testing.T) {
	b := NewBuilder(0)
	defer b.Release()

	b.EscapeAndAppendWithQuotes("ok\xff")
	b.AppendNull()

	_, st := b.View()
	assert.Equal(t, UTF8Error, st)
	assert.False(t, b.ValidateUnicode())

	b.Reset()
	b.AppendNull()
	assert.Equal(t, "null", view(t, b))
}

func TestBuilder_RawAndChar(t *testing.T) {
	b := NewBuilder(0)
	defer b.Release()

	b.AppendRaw([]byte(`{"x":`))
	b.AppendRawString("1")
	b.AppendChar('}')
	assert.Equal(t, `{"x":1}`, view(t, b))
}

func TestBuilder_WriteTo(t *testing.T) {
	var empty Builder
	var w bytes.Buffer
	n, err := empty.WriteTo(&w)
	require.NoError(t, err)
	assert.Zero(t, n)

	b := NewBuilder(0)
	defer b.Release()

	b.StartArray()
	b.AppendNull()
	b.AppendComma()
	b.AppendBool(false)
	b.EndArray()

	n, err = b.WriteTo(&w)
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)
	assert.Equal(t, "[null,false]", w.String())
}

func TestBuilder_ReleaseThenReuse(t *testing.T) {
	b := NewBuilder(0)
	b.AppendInt64(-5)
	b.Release()

	assert.Equal(t, 0, b.Size())
	out, st := b.View()
	assert.Equal(t, Success, st)
	assert.Empty(t, out)

	b.AppendInt64(7)
	assert.Equal(t, "7", view(t, b))
	b.Release()
}
