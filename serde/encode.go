package serde

import (
	"cmp"
	"encoding"
	"fmt"
	"io"
	"math"
	"reflect"
	"slices"
	"strconv"
	"sync"

	"github.com/arloliu/jsimd/builder"
	"github.com/arloliu/jsimd/dom"
	"github.com/arloliu/jsimd/errs"
)

// Marshaler is implemented by types that encode themselves. It matches encoding/json.Marshaler.
type Marshaler interface {
	MarshalJSON() ([]byte, error)
}

// maxEncodeDepth bounds nesting while encoding, which also stops pointer cycles.
const maxEncodeDepth = 1000

var (
	marshalerType     = reflect.TypeFor[Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

var tapePool = sync.Pool{
	New: func() any { return &Tape{Atoms: make([]Atom, 0, 64)} },
}

// rawParsers validate and compact the output of Marshaler implementations.
var rawParsers = sync.Pool{
	New: func() any {
		p, _ := dom.NewParser()
		return p
	},
}

// Marshal encodes v as JSON.
//
// Struct fields keep their declaration order and map keys are sorted. NaN and infinite floats
// fail with errs.ErrNumberRange; channels, functions and complex numbers fail with errs.ErrType.
func Marshal(v any) (string, error) {
	return MarshalWithCapacity(v, builder.DefaultCapacity)
}

// MarshalWithCapacity is Marshal with an initial output buffer of capacity bytes.
func MarshalWithCapacity(v any, capacity int) (string, error) {
	t := tapePool.Get().(*Tape)
	defer func() {
		t.Reset()
		tapePool.Put(t)
	}()

	if err := Encode(t, v); err != nil {
		return "", err
	}

	sb := builder.WithCapacity(capacity)
	defer sb.Release()

	if err := t.Emit(sb); err != nil {
		return "", err
	}

	return sb.View()
}

// MarshalTo encodes v as JSON and writes it to w. Nothing is written when encoding fails.
func MarshalTo(w io.Writer, v any) error {
	t := tapePool.Get().(*Tape)
	defer func() {
		t.Reset()
		tapePool.Put(t)
	}()

	if err := Encode(t, v); err != nil {
		return err
	}

	sb := builder.New()
	defer sb.Release()

	if err := t.Emit(sb); err != nil {
		return err
	}

	_, err := sb.WriteTo(w)

	return err
}

// Encode appends the atoms describing v to t. On failure t is left as it was.
func Encode(t *Tape, v any) error {
	n := len(t.Atoms)
	e := encoder{tape: t}
	if err := e.value(reflect.ValueOf(v)); err != nil {
		t.Atoms = t.Atoms[:n]
		return err
	}

	return nil
}

type encoder struct {
	tape  *Tape
	depth int
}

const encodeOp = "serde.Marshal"

func (e *encoder) value(v reflect.Value) error {
	if !v.IsValid() {
		e.tape.AppendNull()
		return nil
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			e.tape.AppendNull()
			return nil
		}
	}

	if ok, err := e.custom(v); ok {
		return err
	}

	switch v.Kind() {
	case reflect.Bool:
		e.tape.AppendBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		e.tape.AppendInt64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		e.tape.AppendUint64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return e.float(v)
	case reflect.String:
		e.tape.AppendString(v.String())
	case reflect.Pointer, reflect.Interface:
		return e.nested(func() error { return e.value(v.Elem()) })
	case reflect.Struct:
		return e.nested(func() error { return e.structValue(v) })
	case reflect.Map:
		return e.nested(func() error { return e.mapValue(v) })
	case reflect.Slice:
		if v.IsNil() {
			e.tape.AppendNull()
			return nil
		}

		return e.nested(func() error { return e.array(v) })
	case reflect.Array:
		return e.nested(func() error { return e.array(v) })
	default:
		return errs.Type(encodeOp, "JSON value", v.Type().String())
	}

	return nil
}

func (e *encoder) nested(fn func() error) error {
	if e.depth >= maxEncodeDepth {
		return errs.Capacity(encodeOp, errs.ErrDepthExceeded,
			fmt.Sprintf("value nests deeper than %d levels", maxEncodeDepth))
	}
	e.depth++
	err := fn()
	e.depth--

	return err
}

// custom handles Marshaler and encoding.TextMarshaler implementations, including pointer
// receivers on addressable values.
func (e *encoder) custom(v reflect.Value) (bool, error) {
	t := v.Type()
	if t.Kind() != reflect.Pointer && v.CanAddr() {
		pt := reflect.PointerTo(t)
		if pt.Implements(marshalerType) || pt.Implements(textMarshalerType) {
			v = v.Addr()
			t = pt
		}
	}

	switch {
	case t.Implements(marshalerType):
		return true, e.raw(v.Interface().(Marshaler))
	case t.Implements(textMarshalerType):
		text, err := v.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			ee := errs.Type(encodeOp, "text", t.String())
			ee.Err = err

			return true, ee
		}
		e.tape.AppendString(string(text))

		return true, nil
	default:
		return false, nil
	}
}

func (e *encoder) raw(m Marshaler) error {
	b, err := m.MarshalJSON()
	if err != nil {
		ee := errs.Parse(encodeOp, "MarshalJSON failed")
		ee.Err = err

		return ee
	}

	p := rawParsers.Get().(*dom.Parser)
	defer rawParsers.Put(p)

	doc, err := p.ParseBytes(b)
	if err != nil {
		return err
	}
	defer func() { _ = doc.Close() }()

	out, err := doc.Root().AppendJSON(nil)
	if err != nil {
		return err
	}
	e.tape.AppendRaw(string(out))

	return nil
}

func (e *encoder) float(v reflect.Value) error {
	f := v.Float()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return errs.NumberRange(encodeOp, fmt.Sprintf("%v is not representable in JSON", f))
	}
	if v.Kind() == reflect.Float32 {
		// Use the shortest decimal of the float32, not of its float64 widening.
		f, _ = strconv.ParseFloat(strconv.FormatFloat(f, 'g', -1, 32), 64)
	}
	e.tape.AppendFloat64(f)

	return nil
}

func (e *encoder) array(v reflect.Value) error {
	e.tape.StartArray()
	for i := range v.Len() {
		if err := e.value(v.Index(i)); err != nil {
			return errs.WithPath(err, "["+strconv.Itoa(i)+"]")
		}
	}
	e.tape.EndArray()

	return nil
}

func (e *encoder) structValue(v reflect.Value) error {
	si := cachedStructInfo(v.Type())

	e.tape.StartObject()
	for i := range si.fields {
		f := &si.fields[i]
		fv, ok := fieldByIndex(v, f.index, false)
		if !ok || (f.omitEmpty && isEmptyValue(fv)) {
			continue
		}

		e.tape.AppendKey(f.name)
		if err := e.value(fv); err != nil {
			return errs.WithPath(err, f.name)
		}
	}
	e.tape.EndObject()

	return nil
}

func (e *encoder) mapValue(v reflect.Value) error {
	if v.IsNil() {
		e.tape.AppendNull()
		return nil
	}

	type entry struct {
		key   string
		value reflect.Value
	}

	entries := make([]entry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		key, err := mapKeyString(iter.Key())
		if err != nil {
			return err
		}
		entries = append(entries, entry{key: key, value: iter.Value()})
	}
	slices.SortFunc(entries, func(a, b entry) int { return cmp.Compare(a.key, b.key) })

	e.tape.StartObject()
	for _, en := range entries {
		e.tape.AppendKey(en.key)
		if err := e.value(en.value); err != nil {
			return errs.WithPath(err, en.key)
		}
	}
	e.tape.EndObject()

	return nil
}

func mapKeyString(k reflect.Value) (string, error) {
	if k.Kind() == reflect.String {
		return k.String(), nil
	}
	if tm, ok := k.Interface().(encoding.TextMarshaler); ok {
		if k.Kind() == reflect.Pointer && k.IsNil() {
			return "", nil
		}
		text, err := tm.MarshalText()
		if err != nil {
			ee := errs.Type(encodeOp, "text map key", k.Type().String())
			ee.Err = err

			return "", ee
		}

		return string(text), nil
	}

	switch k.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10), nil
	default:
		return "", errs.Type(encodeOp, "string or integer map key", k.Type().String())
	}
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Pointer:
		return v.IsZero()
	default:
		return false
	}
}
