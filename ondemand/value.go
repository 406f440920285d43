package ondemand

import (
	"bytes"

	"github.com/arloliu/jsimd/errs"
	"github.com/arloliu/jsimd/format"
	"github.com/arloliu/jsimd/internal/engine"
)

// Value is the value under the cursor. It stays readable until the cursor moves past it; every
// read consumes it, whether or not the read succeeds.
type Value struct {
	doc *Document
	pos int
}

// begin checks that the cursor still sits on v and returns the first byte of v.
func (v Value) begin(op string) (byte, int, error) {
	d := v.doc
	if err := d.check(op); err != nil {
		return 0, 0, err
	}
	if d.pos != v.pos {
		return 0, 0, errs.OutOfOrder(op)
	}

	c, off, ok := d.peek()
	if !ok {
		return 0, 0, d.fail(op, engine.IncompleteArrayOrObject, off)
	}
	switch c {
	case ',', ':', ']', '}':
		return 0, 0, d.fail(op, engine.TapeError, off)
	}

	return c, off, nil
}

// scalar consumes v and returns its first byte and offset.
func (v Value) scalar(op string) (byte, int, error) {
	c, off, err := v.begin(op)
	if err != nil {
		return 0, 0, err
	}
	if err := v.doc.skipValue(op); err != nil {
		return 0, 0, err
	}

	return c, off, nil
}

func kindOf(c byte) string {
	switch c {
	case '[':
		return format.TypeArray.String()
	case '{':
		return format.TypeObject.String()
	case '"':
		return format.TypeString.String()
	case 't', 'f':
		return format.TypeBool.String()
	case 'n':
		return format.TypeNull.String()
	default:
		return "number"
	}
}

func isNumberHead(c byte) bool {
	return c == '-' || (c >= '0' && c <= '9')
}

// mismatch reports a value of the wrong shape. A byte that starts no JSON value is a parse error
// rather than a type error.
func mismatch(op string, want format.ElementType, c byte, off int) error {
	switch c {
	case '[', '{', '"', 't', 'f', 'n':
	default:
		if !isNumberHead(c) {
			return statusError(op, engine.TapeError, off)
		}
	}

	return errs.Type(op, want.String(), kindOf(c)).At(off)
}

// Type reports the type of v without consuming it. Numbers are decoded to tell int64, uint64 and
// double apart.
func (v Value) Type() (format.ElementType, error) {
	const op = "ondemand.Type"
	c, off, err := v.begin(op)
	if err != nil {
		return format.TypeInvalid, err
	}

	switch c {
	case '[':
		return format.TypeArray, nil
	case '{':
		return format.TypeObject, nil
	case '"':
		return format.TypeString, nil
	case 't', 'f':
		return format.TypeBool, nil
	case 'n':
		return format.TypeNull, nil
	}
	if !isNumberHead(c) {
		return format.TypeInvalid, statusError(op, engine.TapeError, off)
	}

	num, _, st := engine.ParseNumber(v.doc.data, off)
	if st != engine.Success {
		return format.TypeInvalid, statusError(op, st, off)
	}
	switch num.Kind {
	case engine.NumberInt64:
		return format.TypeInt64, nil
	case engine.NumberUint64:
		return format.TypeUint64, nil
	default:
		return format.TypeDouble, nil
	}
}

// GetArray enters the array at the cursor. Any other value is skipped and reported as a type error.
func (v Value) GetArray() (Array, error) {
	sc, err := v.container("ondemand.GetArray", '[')
	if err != nil {
		return Array{}, err
	}

	return Array{doc: v.doc, sc: sc}, nil
}

// GetObject enters the object at the cursor. Any other value is skipped and reported as a type error.
func (v Value) GetObject() (Object, error) {
	sc, err := v.container("ondemand.GetObject", '{')
	if err != nil {
		return Object{}, err
	}

	return Object{doc: v.doc, sc: sc}, nil
}

func (v Value) container(op string, kind byte) (*scope, error) {
	c, off, err := v.begin(op)
	if err != nil {
		return nil, err
	}
	if c != kind {
		if err := v.doc.skipValue(op); err != nil {
			return nil, err
		}
		want := format.TypeArray
		if kind == '{' {
			want = format.TypeObject
		}

		return nil, mismatch(op, want, c, off)
	}

	return v.doc.open(op, kind)
}

func (v Value) number(op string, want format.ElementType) (engine.Number, int, error) {
	c, off, err := v.scalar(op)
	if err != nil {
		return engine.Number{}, 0, err
	}
	if !isNumberHead(c) {
		return engine.Number{}, 0, mismatch(op, want, c, off)
	}

	num, _, st := engine.ParseNumber(v.doc.data, off)
	if st != engine.Success {
		return engine.Number{}, 0, statusError(op, st, off)
	}

	return num, off, nil
}

// GetInt64 reads v as an int64. Integers above math.MaxInt64 fail with errs.ErrNumberRange and
// doubles with errs.ErrType.
func (v Value) GetInt64() (int64, error) {
	const op = "ondemand.GetInt64"
	num, off, err := v.number(op, format.TypeInt64)
	if err != nil {
		return 0, err
	}

	switch num.Kind {
	case engine.NumberInt64:
		return num.Int, nil
	case engine.NumberUint64:
		return 0, errs.NumberRange(op, "integer overflows int64").At(off)
	default:
		return 0, errs.Type(op, format.TypeInt64.String(), format.TypeDouble.String()).At(off)
	}
}

// GetUint64 reads v as a uint64. Negative integers fail with errs.ErrNumberRange and doubles with
// errs.ErrType.
func (v Value) GetUint64() (uint64, error) {
	const op = "ondemand.GetUint64"
	num, off, err := v.number(op, format.TypeUint64)
	if err != nil {
		return 0, err
	}

	switch num.Kind {
	case engine.NumberUint64:
		return num.Uint, nil
	case engine.NumberInt64:
		if num.Int < 0 {
			return 0, errs.NumberRange(op, "negative integer").At(off)
		}

		return uint64(num.Int), nil
	default:
		return 0, errs.Type(op, format.TypeUint64.String(), format.TypeDouble.String()).At(off)
	}
}

// GetDouble reads v as a float64. Integers are converted.
func (v Value) GetDouble() (float64, error) {
	num, _, err := v.number("ondemand.GetDouble", format.TypeDouble)
	if err != nil {
		return 0, err
	}

	switch num.Kind {
	case engine.NumberInt64:
		return float64(num.Int), nil
	case engine.NumberUint64:
		return float64(num.Uint), nil
	default:
		return num.Float, nil
	}
}

// GetBool reads v as a bool.
func (v Value) GetBool() (bool, error) {
	const op = "ondemand.GetBool"
	c, off, err := v.scalar(op)
	if err != nil {
		return false, err
	}

	data := v.doc.data
	switch c {
	case 't':
		if engine.IsLiteral(data, off, "true") {
			return true, nil
		}

		return false, statusError(op, engine.TAtomError, off)
	case 'f':
		if engine.IsLiteral(data, off, "false") {
			return false, nil
		}

		return false, statusError(op, engine.FAtomError, off)
	default:
		return false, mismatch(op, format.TypeBool, c, off)
	}
}

// IsNull consumes v and reports whether it is null.
func (v Value) IsNull() (bool, error) {
	const op = "ondemand.IsNull"
	c, off, err := v.scalar(op)
	if err != nil {
		return false, err
	}
	if c != 'n' {
		return false, nil
	}
	if !engine.IsLiteral(v.doc.data, off, "null") {
		return false, statusError(op, engine.NAtomError, off)
	}

	return true, nil
}

// GetString reads v as a string and returns an unescaped copy.
func (v Value) GetString() (string, error) {
	b, err := v.AppendString(nil)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// AppendString reads v as a string and appends its unescaped content to dst.
func (v Value) AppendString(dst []byte) ([]byte, error) {
	const op = "ondemand.GetString"
	c, off, err := v.scalar(op)
	if err != nil {
		return dst, err
	}
	if c != '"' {
		return dst, mismatch(op, format.TypeString, c, off)
	}

	out, _, st := engine.ParseString(v.doc.data, off, dst)
	if st != engine.Success {
		return dst, statusError(op, st, off)
	}

	return out, nil
}

// RawJSON consumes v and returns its unparsed text. The slice aliases the input buffer and is only
// valid until the document is closed. Containers are returned without validating their content.
func (v Value) RawJSON() ([]byte, error) {
	const op = "ondemand.RawJSON"
	_, off, err := v.scalar(op)
	if err != nil {
		return nil, err
	}

	d := v.doc
	end := d.end()
	if d.pos < len(d.idx) {
		end = int(d.idx[d.pos])
	}

	return bytes.TrimRight(d.data[off:end], " \t\r\n"), nil
}

// Skip consumes v without decoding it.
func (v Value) Skip() error {
	_, _, err := v.scalar("ondemand.Skip")
	return err
}
