package dom

import (
	"fmt"

	"github.com/arloliu/jsimd/errs"
	"github.com/arloliu/jsimd/format"
	"github.com/arloliu/jsimd/internal/engine"
)

// Element is a handle to one value of a Document. It is a small value type; copying it is cheap.
// The zero Element reports errs.ErrDocumentClosed from every accessor.
type Element struct {
	doc *Document
	idx int
}

func typeOfTag(tag byte) format.ElementType {
	switch tag {
	case engine.TagStartArray:
		return format.TypeArray
	case engine.TagStartObject:
		return format.TypeObject
	case engine.TagString:
		return format.TypeString
	case engine.TagInt64:
		return format.TypeInt64
	case engine.TagUint64:
		return format.TypeUint64
	case engine.TagDouble:
		return format.TypeDouble
	case engine.TagTrue, engine.TagFalse:
		return format.TypeBool
	case engine.TagNull:
		return format.TypeNull
	default:
		return format.TypeInvalid
	}
}

func (e Element) tag() byte {
	return e.doc.tape.Tag(e.idx)
}

// Type returns the type of the element, or format.TypeInvalid once the document is closed.
func (e Element) Type() format.ElementType {
	if !e.doc.alive() {
		return format.TypeInvalid
	}

	return typeOfTag(e.tag())
}

func (e Element) typeError(op string, want format.ElementType) error {
	return errs.Type(op, want.String(), typeOfTag(e.tag()).String())
}

// GetArray returns the element as an Array.
func (e Element) GetArray() (Array, error) {
	const op = "dom.GetArray"
	if err := e.doc.check(op); err != nil {
		return Array{}, err
	}
	if e.tag() != engine.TagStartArray {
		return Array{}, e.typeError(op, format.TypeArray)
	}

	return Array(e), nil
}

// GetObject returns the element as an Object.
func (e Element) GetObject() (Object, error) {
	const op = "dom.GetObject"
	if err := e.doc.check(op); err != nil {
		return Object{}, err
	}
	if e.tag() != engine.TagStartObject {
		return Object{}, e.typeError(op, format.TypeObject)
	}

	return Object(e), nil
}

// GetInt64 returns the element as an int64. Unsigned integers above math.MaxInt64 fail with
// errs.ErrNumberRange; doubles fail with errs.ErrType.
func (e Element) GetInt64() (int64, error) {
	const op = "dom.GetInt64"
	if err := e.doc.check(op); err != nil {
		return 0, err
	}

	t := e.doc.tape
	switch e.tag() {
	case engine.TagInt64:
		return t.Int64(e.idx), nil
	case engine.TagUint64:
		return 0, errs.NumberRange(op, fmt.Sprintf("%d overflows int64", t.Uint64(e.idx)))
	default:
		return 0, e.typeError(op, format.TypeInt64)
	}
}

// GetUint64 returns the element as a uint64. Negative integers fail with errs.ErrNumberRange;
// doubles fail with errs.ErrType.
func (e Element) GetUint64() (uint64, error) {
	const op = "dom.GetUint64"
	if err := e.doc.check(op); err != nil {
		return 0, err
	}

	t := e.doc.tape
	switch e.tag() {
	case engine.TagUint64:
		return t.Uint64(e.idx), nil
	case engine.TagInt64:
		v := t.Int64(e.idx)
		if v < 0 {
			return 0, errs.NumberRange(op, fmt.Sprintf("%d is negative", v))
		}

		return uint64(v), nil
	default:
		return 0, e.typeError(op, format.TypeUint64)
	}
}

// GetDouble returns the element as a float64. Integers are converted.
func (e Element) GetDouble() (float64, error) {
	const op = "dom.GetDouble"
	if err := e.doc.check(op); err != nil {
		return 0, err
	}

	typ := typeOfTag(e.tag())
	if !typ.IsNumber() {
		return 0, e.typeError(op, format.TypeDouble)
	}

	t := e.doc.tape
	switch typ {
	case format.TypeInt64:
		return float64(t.Int64(e.idx)), nil
	case format.TypeUint64:
		return float64(t.Uint64(e.idx)), nil
	default:
		return t.Double(e.idx), nil
	}
}

// GetBool returns the element as a bool.
func (e Element) GetBool() (bool, error) {
	const op = "dom.GetBool"
	if err := e.doc.check(op); err != nil {
		return false, err
	}

	switch e.tag() {
	case engine.TagTrue:
		return true, nil
	case engine.TagFalse:
		return false, nil
	default:
		return false, e.typeError(op, format.TypeBool)
	}
}

// GetString returns a copy of the string value.
func (e Element) GetString() (string, error) {
	b, err := e.stringBytes("dom.GetString")
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// GetStringBytes returns the unescaped string value without copying. The slice aliases parser
// memory: it must not be modified and is only valid until the document is closed.
func (e Element) GetStringBytes() ([]byte, error) {
	return e.stringBytes("dom.GetStringBytes")
}

func (e Element) stringBytes(op string) ([]byte, error) {
	if err := e.doc.check(op); err != nil {
		return nil, err
	}
	if e.tag() != engine.TagString {
		return nil, e.typeError(op, format.TypeString)
	}

	return e.doc.tape.StringAt(e.idx), nil
}

// IsNull reports whether the element is null. It is false once the document is closed.
func (e Element) IsNull() bool {
	return e.doc.alive() && e.tag() == engine.TagNull
}

// AppendJSON appends the minified JSON text of the element to dst.
func (e Element) AppendJSON(dst []byte) ([]byte, error) {
	const op = "dom.AppendJSON"
	if err := e.doc.check(op); err != nil {
		return dst, err
	}

	b := engine.NewBuilder(0)
	defer b.Release()

	e.doc.tape.WriteJSON(b, e.idx)
	out, st := b.View()
	if st != engine.Success {
		return dst, errs.FromStatus(op, int(st))
	}

	return append(dst, out...), nil
}

// String returns the minified JSON text of the element, or "" once the document is closed.
func (e Element) String() string {
	out, err := e.AppendJSON(nil)
	if err != nil {
		return ""
	}

	return string(out)
}
