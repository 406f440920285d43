package dom

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/jsimd/errs"
)

// Tapes from a WithSIMD parser must match the portable builder word for word, whether or not
// the CPU runs the simdjson-go backend.
func TestWithSIMD_TapeMatchesPortable(t *testing.T) {
	docs := []string{
		`{"a":[1,-2,"x"],"b":null}`,
		`[true,false,null,0,-0,1.5,-0.0,1e2,2.5e-300]`,
		`{"max":9223372036854775807,"min":-9223372036854775808,"u":18446744073709551615}`,
		`{"esc":"tab\tquote\"unié😀","empty":"","k\n":{}}`,
		`[[[[[]]]],{"x":{"y":{"z":[1,{}]}}}]`,
		`"scalar root"`,
		`  42  `,
		`1e19`,
		`[` + strings.Repeat(`{"id":7,"tags":["a","b"]},`, 200) + `{}]`,
	}

	portable := newParser(t)
	simd := newParser(t, WithSIMD(true))

	for _, src := range docs {
		want, err := portable.ParseString(src)
		require.NoError(t, err, src)
		got, err := simd.ParseString(src)
		require.NoError(t, err, src)

		assert.Equal(t, want.tape.Words, got.tape.Words, src)
		assert.Equal(t, want.tape.Strings, got.tape.Strings, src)

		wantJSON, err := want.Root().AppendJSON(nil)
		require.NoError(t, err)
		gotJSON, err := got.Root().AppendJSON(nil)
		require.NoError(t, err)
		assert.Equal(t, string(wantJSON), string(gotJSON), src)

		require.NoError(t, got.Close())
		require.NoError(t, want.Close())
	}
}

func TestWithSIMD_ErrorsMatchPortable(t *testing.T) {
	docs := []string{
		`[18446744073709551616]`,
		`[-9223372036854775809]`,
		`[1e400]`,
		`{"a":1,}`,
		`[1,,2]`,
		`[1] [2]`,
		`[tru]`,
		`{"a" 1}`,
		`   `,
		`[` + strings.Repeat(`[`, 10) + strings.Repeat(`]`, 11),
	}

	portable := newParser(t, WithMaxDepth(8))
	simd := newParser(t, WithMaxDepth(8), WithSIMD(true))

	for _, src := range docs {
		_, want := portable.ParseString(src)
		require.Error(t, want, src)
		_, got := simd.ParseString(src)
		require.Error(t, got, src)

		assert.Equal(t, errs.CodeOf(want), errs.CodeOf(got), src)
		assert.Equal(t, errs.KindOf(want), errs.KindOf(got), src)
	}
}

func TestWithSIMD_ParserReuse(t *testing.T) {
	p := newParser(t, WithSIMD(true))

	for i, src := range []string{`{"a":[1,2,3]}`, `[]`, `{"b":"c"}`} {
		doc, err := p.ParseString(src)
		require.NoError(t, err, i)
		assert.Equal(t, src, doc.Root().String())
		require.NoError(t, doc.Close())
	}
}

func TestTapeDouble(t *testing.T) {
	tests := []struct {
		f    float64
		want bool
	}{
		{1.5, true},
		{0, true},
		{-2.5e-300, true},
		{9.2e18, true},
		{1 << 62, true},
		{math.Copysign(0, -1), false},
		{math.Inf(1), false},
		{math.NaN(), false},
		{1 << 63, false},
		{-(1 << 63), false},
		{1.8446744073709552e19, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tapeDouble(tt.f), "%g", tt.f)
	}
}
