package serde

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"sync"

	"github.com/arloliu/jsimd/dom"
	"github.com/arloliu/jsimd/errs"
	"github.com/arloliu/jsimd/format"
	"github.com/arloliu/jsimd/internal/hash"
	"github.com/arloliu/jsimd/internal/options"
)

// Unmarshaler is implemented by types that decode themselves. It matches encoding/json.Unmarshaler.
type Unmarshaler interface {
	UnmarshalJSON([]byte) error
}

var (
	unmarshalerType     = reflect.TypeFor[Unmarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// DecodeConfig holds the decoding settings.
type DecodeConfig struct {
	// DisallowUnknownFields rejects object members that match no struct field.
	DisallowUnknownFields bool
}

// DecodeOption configures decoding.
type DecodeOption = options.Option[*DecodeConfig]

// DisallowUnknownFields makes members without a matching struct field fail with errs.ErrNotFound.
func DisallowUnknownFields() DecodeOption {
	return options.NoError(func(c *DecodeConfig) {
		c.DisallowUnknownFields = true
	})
}

// Unmarshal decodes elem into the value v points to.
//
// Struct fields absent from the object keep their value; when a name appears more than once the
// last member wins. null leaves non-pointer values untouched and sets pointers, maps, slices and
// interfaces to nil. Integers are range-checked against the target width. The first failure is
// returned with the path of the offending field, e.g. "items[2].name".
func Unmarshal(elem dom.Element, v any, opts ...DecodeOption) error {
	const op = "serde.Unmarshal"

	cfg := &DecodeConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return err
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errs.Type(op, "non-nil pointer", fmt.Sprintf("%T", v))
	}

	d := decoder{cfg: cfg}

	return d.value(elem, rv.Elem())
}

// FromElement decodes elem into a new T.
func FromElement[T any](elem dom.Element, opts ...DecodeOption) (T, error) {
	var out T
	err := Unmarshal(elem, &out, opts...)

	return out, err
}

// UnmarshalBytes parses data with a fresh dom.Parser and decodes it into v.
func UnmarshalBytes(data []byte, v any, opts ...DecodeOption) error {
	p, err := dom.NewParser(dom.WithInitialCapacity(len(data)))
	if err != nil {
		return err
	}

	doc, err := p.ParseBytes(data)
	if err != nil {
		return err
	}
	defer func() { _ = doc.Close() }()

	return Unmarshal(doc.Root(), v, opts...)
}

type decoder struct {
	cfg *DecodeConfig
}

const decodeOp = "serde.Unmarshal"

// indirect allocates nil pointers down to a non-pointer value. It stops early at a type that
// implements one of the unmarshaler interfaces.
func indirect(v reflect.Value) reflect.Value {
	for {
		if v.Kind() != reflect.Pointer && v.CanAddr() {
			pt := reflect.PointerTo(v.Type())
			if pt.Implements(unmarshalerType) || pt.Implements(textUnmarshalerType) {
				return v.Addr()
			}
		}
		if v.Kind() != reflect.Pointer {
			return v
		}
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		if v.Type().Implements(unmarshalerType) || v.Type().Implements(textUnmarshalerType) {
			return v
		}
		v = v.Elem()
	}
}

func (d *decoder) value(elem dom.Element, v reflect.Value) error {
	typ := elem.Type()
	if typ == format.TypeInvalid {
		return errs.Lifetime(decodeOp, errs.ErrDocumentClosed)
	}

	if typ == format.TypeNull {
		switch v.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
			v.SetZero()
		}

		return nil
	}

	v = indirect(v)
	if v.Kind() == reflect.Pointer {
		if u, ok := v.Interface().(Unmarshaler); ok {
			return d.unmarshaler(elem, u)
		}

		return d.text(elem, v.Interface().(encoding.TextUnmarshaler))
	}

	switch v.Kind() {
	case reflect.Bool:
		b, err := elem.GetBool()
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := elem.GetInt64()
		if err != nil {
			return err
		}
		if v.OverflowInt(n) {
			return errs.NumberRange(decodeOp, fmt.Sprintf("%d overflows %s", n, v.Type()))
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := elem.GetUint64()
		if err != nil {
			return err
		}
		if v.OverflowUint(n) {
			return errs.NumberRange(decodeOp, fmt.Sprintf("%d overflows %s", n, v.Type()))
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := elem.GetDouble()
		if err != nil {
			return err
		}
		if v.Kind() == reflect.Float32 && math.IsInf(float64(float32(f)), 0) {
			return errs.NumberRange(decodeOp, fmt.Sprintf("%g overflows %s", f, v.Type()))
		}
		v.SetFloat(f)
	case reflect.String:
		s, err := elem.GetString()
		if err != nil {
			return err
		}
		v.SetString(s)
	case reflect.Interface:
		return d.iface(elem, v)
	case reflect.Struct:
		return d.structValue(elem, v)
	case reflect.Map:
		return d.mapValue(elem, v)
	case reflect.Slice:
		return d.slice(elem, v)
	case reflect.Array:
		return d.array(elem, v)
	default:
		return errs.Type(decodeOp, v.Type().String(), typ.String())
	}

	return nil
}

func (d *decoder) unmarshaler(elem dom.Element, u Unmarshaler) error {
	raw, err := elem.AppendJSON(nil)
	if err != nil {
		return err
	}
	if err := u.UnmarshalJSON(raw); err != nil {
		ee := errs.Type(decodeOp, "value accepted by UnmarshalJSON", elem.Type().String())
		ee.Err = err

		return ee
	}

	return nil
}

func (d *decoder) text(elem dom.Element, u encoding.TextUnmarshaler) error {
	b, err := elem.GetStringBytes()
	if err != nil {
		return err
	}
	if err := u.UnmarshalText(b); err != nil {
		ee := errs.Type(decodeOp, "value accepted by UnmarshalText", format.TypeString.String())
		ee.Err = err

		return ee
	}

	return nil
}

func (d *decoder) iface(elem dom.Element, v reflect.Value) error {
	if v.NumMethod() != 0 {
		return errs.Type(decodeOp, v.Type().String(), elem.Type().String())
	}

	val, err := ToValue(elem)
	if err != nil {
		return err
	}
	v.Set(reflect.ValueOf(val))

	return nil
}

// members indexes the members of one object by name.
type members struct {
	names  *hash.Index
	values []dom.Element
}

var membersPool = sync.Pool{
	New: func() any { return &members{names: hash.NewIndex(16)} },
}

func (d *decoder) structValue(elem dom.Element, v reflect.Value) error {
	obj, err := elem.GetObject()
	if err != nil {
		return err
	}

	si := cachedStructInfo(v.Type())

	m := membersPool.Get().(*members)
	defer func() {
		m.names.Reset()
		clear(m.values)
		m.values = m.values[:0]
		membersPool.Put(m)
	}()

	for key, value := range obj.Members() {
		if d.cfg.DisallowUnknownFields {
			if _, ok := si.names.LookupBytes(key); !ok {
				err := errs.NotFound(decodeOp, fmt.Sprintf("unknown field %q", key))
				return errs.WithPath(err, string(key))
			}
		}
		m.names.Add(string(key))
		m.values = append(m.values, value)
	}

	for i := range si.fields {
		f := &si.fields[i]
		pos, ok := m.names.Lookup(f.name)
		if !ok {
			continue
		}

		fv, _ := fieldByIndex(v, f.index, true)
		if !fv.IsValid() {
			continue
		}
		if err := d.value(m.values[pos], fv); err != nil {
			return errs.WithPath(err, f.name)
		}
	}

	return nil
}

func (d *decoder) mapValue(elem dom.Element, v reflect.Value) error {
	obj, err := elem.GetObject()
	if err != nil {
		return err
	}

	t := v.Type()
	if v.IsNil() {
		v.Set(reflect.MakeMapWithSize(t, obj.Len()))
	}

	kt, vt := t.Key(), t.Elem()
	for key, value := range obj.All() {
		k, err := mapKey(kt, key)
		if err != nil {
			return errs.WithPath(err, key)
		}

		ev := reflect.New(vt).Elem()
		if err := d.value(value, ev); err != nil {
			return errs.WithPath(err, key)
		}
		v.SetMapIndex(k, ev)
	}

	return nil
}

func mapKey(kt reflect.Type, key string) (reflect.Value, error) {
	if reflect.PointerTo(kt).Implements(textUnmarshalerType) {
		k := reflect.New(kt)
		if err := k.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(key)); err != nil {
			ee := errs.Type(decodeOp, kt.String()+" map key", "string")
			ee.Err = err

			return reflect.Value{}, ee
		}

		return k.Elem(), nil
	}

	switch kt.Kind() {
	case reflect.String:
		return reflect.ValueOf(key).Convert(kt), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(key, 10, kt.Bits())
		if err != nil {
			return reflect.Value{}, keyError(kt, key, err)
		}

		return reflect.ValueOf(n).Convert(kt), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := strconv.ParseUint(key, 10, kt.Bits())
		if err != nil {
			return reflect.Value{}, keyError(kt, key, err)
		}

		return reflect.ValueOf(n).Convert(kt), nil
	default:
		return reflect.Value{}, errs.Type(decodeOp, "string or integer map key", kt.String())
	}
}

func keyError(kt reflect.Type, key string, err error) error {
	if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
		return errs.NumberRange(decodeOp, fmt.Sprintf("map key %q overflows %s", key, kt))
	}

	return errs.Type(decodeOp, kt.String()+" map key", "string")
}

func (d *decoder) slice(elem dom.Element, v reflect.Value) error {
	arr, err := elem.GetArray()
	if err != nil {
		return err
	}

	n := arr.Len()
	out := reflect.MakeSlice(v.Type(), n, n)
	for i, child := range arr.All() {
		if err := d.value(child, out.Index(i)); err != nil {
			return errs.WithPath(err, "["+strconv.Itoa(i)+"]")
		}
	}
	v.Set(out)

	return nil
}

// array fills a Go array. Extra JSON values are ignored and missing ones zero the rest.
func (d *decoder) array(elem dom.Element, v reflect.Value) error {
	arr, err := elem.GetArray()
	if err != nil {
		return err
	}

	n := 0
	for i, child := range arr.All() {
		if i >= v.Len() {
			break
		}
		if err := d.value(child, v.Index(i)); err != nil {
			return errs.WithPath(err, "["+strconv.Itoa(i)+"]")
		}
		n++
	}
	for i := n; i < v.Len(); i++ {
		v.Index(i).SetZero()
	}

	return nil
}
