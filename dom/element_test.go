package dom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/jsimd/errs"
	"github.com/arloliu/jsimd/format"
	"github.com/arloliu/jsimd/internal/engine"
)

const sample = `{
	"name": "Alice",
	"age": 30,
	"score": 97.5,
	"big": 18446744073709551615,
	"neg": -7,
	"active": true,
	"nick": null,
	"tags": ["a", "b\n", "é"],
	"address": {"city": "Paris", "zip": "75001"},
	"a/b": 1,
	"m~n": 2,
	"dup": 1,
	"dup": 2
}`

func TestElement_Types(t *testing.T) {
	doc := parse(t, newParser(t), sample)
	root := doc.Root()

	tests := []struct {
		ptr  string
		want format.ElementType
	}{
		{"", format.TypeObject},
		{"/name", format.TypeString},
		{"/age", format.TypeInt64},
		{"/score", format.TypeDouble},
		{"/big", format.TypeUint64},
		{"/active", format.TypeBool},
		{"/nick", format.TypeNull},
		{"/tags", format.TypeArray},
	}

	for _, tt := range tests {
		t.Run(tt.ptr, func(t *testing.T) {
			assert.Equal(t, tt.want, at(t, root, tt.ptr).Type())
		})
	}
}

func TestElement_Scalars(t *testing.T) {
	doc := parse(t, newParser(t), sample)
	root := doc.Root()

	name, err := at(t, root, "/name").GetString()
	require.NoError(t, err)
	assert.Equal(t, "Alice", name)

	raw, err := at(t, root, "/tags/1").GetStringBytes()
	require.NoError(t, err)
	assert.Equal(t, "b\n", string(raw))

	accent, err := at(t, root, "/tags/2").GetString()
	require.NoError(t, err)
	assert.Equal(t, "é", accent)

	age, err := at(t, root, "/age").GetInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(30), age)

	uage, err := at(t, root, "/age").GetUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(30), uage)

	fage, err := at(t, root, "/age").GetDouble()
	require.NoError(t, err)
	assert.InDelta(t, 30.0, fage, 0)

	score, err := at(t, root, "/score").GetDouble()
	require.NoError(t, err)
	assert.InDelta(t, 97.5, score, 0)

	big, err := at(t, root, "/big").GetUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), big)

	fbig, err := at(t, root, "/big").GetDouble()
	require.NoError(t, err)
	assert.InDelta(t, float64(math.MaxUint64), fbig, 0)

	active, err := at(t, root, "/active").GetBool()
	require.NoError(t, err)
	assert.True(t, active)

	assert.True(t, at(t, root, "/nick").IsNull())
	assert.False(t, at(t, root, "/name").IsNull())
}

func TestElement_TypeErrors(t *testing.T) {
	doc := parse(t, newParser(t), sample)
	root := doc.Root()

	_, err := at(t, root, "/age").GetString()
	require.ErrorIs(t, err, errs.ErrType)
	assert.Equal(t, int(engine.IncorrectType), errs.CodeOf(err))
	assert.Contains(t, err.Error(), "expected string, found int64")

	_, err = at(t, root, "/score").GetInt64()
	require.ErrorIs(t, err, errs.ErrType, "doubles are not truncated")

	_, err = at(t, root, "/name").GetDouble()
	require.ErrorIs(t, err, errs.ErrType)

	_, err = at(t, root, "/nick").GetBool()
	require.ErrorIs(t, err, errs.ErrType)

	_, err = at(t, root, "/tags").GetObject()
	require.ErrorIs(t, err, errs.ErrType)

	_, err = root.GetArray()
	require.ErrorIs(t, err, errs.ErrType)
}

func TestElement_NumberRange(t *testing.T) {
	doc := parse(t, newParser(t), sample)
	root := doc.Root()

	_, err := at(t, root, "/big").GetInt64()
	require.ErrorIs(t, err, errs.ErrNumberRange)
	assert.Equal(t, int(engine.NumberOutOfRange), errs.CodeOf(err))

	_, err = at(t, root, "/neg").GetUint64()
	require.ErrorIs(t, err, errs.ErrNumberRange)
	assert.NotErrorIs(t, err, errs.ErrType)
}

func TestArray_Access(t *testing.T) {
	doc := parse(t, newParser(t), sample)

	tags, err := at(t, doc.Root(), "/tags").GetArray()
	require.NoError(t, err)
	assert.Equal(t, 3, tags.Len())

	first, err := tags.At(0)
	require.NoError(t, err)
	s, err := first.GetString()
	require.NoError(t, err)
	assert.Equal(t, "a", s)

	for _, i := range []int{-1, 3, 100} {
		_, err = tags.At(i)
		require.ErrorIs(t, err, errs.ErrNotFound)
		assert.Equal(t, int(engine.IndexOutOfBounds), errs.CodeOf(err))
	}

	elems, err := tags.Elements()
	require.NoError(t, err)
	require.Len(t, elems, 3)
	assert.Equal(t, `"é"`, elems[2].String())
	assert.Equal(t, format.TypeArray, tags.Element().Type())
}

func TestArray_EarlyBreak(t *testing.T) {
	doc := parse(t, newParser(t), `[1,[2,3],4]`)
	arr, err := doc.Root().GetArray()
	require.NoError(t, err)

	var seen []string
	for _, e := range arr.All() {
		seen = append(seen, e.String())
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"1", "[2,3]"}, seen)
}

func TestObject_Access(t *testing.T) {
	doc := parse(t, newParser(t), sample)

	obj, err := doc.Root().GetObject()
	require.NoError(t, err)
	assert.Equal(t, 13, obj.Len())

	dup, err := obj.Get("dup")
	require.NoError(t, err)
	v, err := dup.GetInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(1), v, "Get returns the first of duplicate keys")

	_, err = obj.Get("missing")
	require.ErrorIs(t, err, errs.ErrNotFound)
	assert.Equal(t, int(engine.NoSuchField), errs.CodeOf(err))

	var keys []string
	for k := range obj.All() {
		keys = append(keys, k)
	}
	assert.Equal(t, []string{
		"name", "age", "score", "big", "neg", "active", "nick",
		"tags", "address", "a/b", "m~n", "dup", "dup",
	}, keys)

	n := 0
	for k, v := range obj.Members() {
		if string(k) == "address" {
			assert.Equal(t, `{"city":"Paris","zip":"75001"}`, v.String())
		}
		n++
	}
	assert.Equal(t, 13, n)
	assert.Equal(t, format.TypeObject, obj.Element().Type())
}

func TestElement_AtPointer(t *testing.T) {
	doc := parse(t, newParser(t), sample)
	root := doc.Root()

	tests := []struct {
		ptr  string
		want string
	}{
		{"", ""},
		{"/address/city", `"Paris"`},
		{"/tags/0", `"a"`},
		{"/a~1b", "1"},
		{"/m~0n", "2"},
		{"/dup", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.ptr, func(t *testing.T) {
			e := at(t, root, tt.ptr)
			if tt.ptr == "" {
				assert.Equal(t, root, e)
				return
			}
			assert.Equal(t, tt.want, e.String())
		})
	}
}

func TestElement_AtPointerErrors(t *testing.T) {
	doc := parse(t, newParser(t), sample)
	root := doc.Root()

	tests := []struct {
		ptr  string
		kind error
		code engine.Status
		path string
	}{
		{ptr: "name", kind: errs.ErrParse, code: engine.InvalidJSONPointer},
		{ptr: "/m~2n", kind: errs.ErrParse, code: engine.InvalidJSONPointer},
		{ptr: "/tags/01", kind: errs.ErrParse, code: engine.InvalidJSONPointer, path: "/tags/01"},
		{ptr: "/tags/x", kind: errs.ErrParse, code: engine.InvalidJSONPointer, path: "/tags/x"},
		{ptr: "/tags/3", kind: errs.ErrNotFound, code: engine.IndexOutOfBounds, path: "/tags/3"},
		{ptr: "/tags/-", kind: errs.ErrNotFound, code: engine.IndexOutOfBounds, path: "/tags/-"},
		{ptr: "/missing/x", kind: errs.ErrNotFound, code: engine.NoSuchField, path: "/missing"},
		{ptr: "/name/x", kind: errs.ErrType, code: engine.IncorrectType, path: "/name/x"},
	}

	for _, tt := range tests {
		t.Run(tt.ptr, func(t *testing.T) {
			_, err := root.AtPointer(tt.ptr)
			require.ErrorIs(t, err, tt.kind)
			assert.Equal(t, int(tt.code), errs.CodeOf(err))

			if tt.path != "" {
				var e *errs.Error
				require.ErrorAs(t, err, &e)
				assert.Equal(t, tt.path, e.Path)
			}
		})
	}
}

func TestElement_AppendJSON(t *testing.T) {
	doc := parse(t, newParser(t), ` { "a" : [ 1 , -2.5e-7 , "x\"y" ] , "b" : { } } `)

	out, err := doc.Root().AppendJSON([]byte("prefix:"))
	require.NoError(t, err)
	assert.Equal(t, `prefix:{"a":[1,-2.5e-7,"x\"y"],"b":{}}`, string(out))
}

func TestDocument_ConcurrentReaders(t *testing.T) {
	doc := parse(t, newParser(t), sample)
	root := doc.Root()

	done := make(chan string, 8)
	for range 8 {
		go func() {
			zip, err := root.AtPointer("/address/zip")
			if err != nil {
				done <- err.Error()
				return
			}
			s, err := zip.GetString()
			if err != nil {
				done <- err.Error()
				return
			}
			done <- s
		}()
	}
	for range 8 {
		assert.Equal(t, "75001", <-done)
	}
}
