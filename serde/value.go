package serde

import (
	"fmt"

	"github.com/arloliu/jsimd/dom"
	"github.com/arloliu/jsimd/errs"
	"github.com/arloliu/jsimd/format"
)

// MaxValueDepth is the deepest nesting ToValue converts.
const MaxValueDepth = 128

// ToValue converts elem into plain Go values: nil, bool, int64, uint64, float64, string, []any
// and map[string]any. Duplicate object keys keep the last value. Nesting deeper than
// MaxValueDepth fails with errs.ErrDepthExceeded.
func ToValue(elem dom.Element) (any, error) {
	return toValue(elem, 0)
}

func toValue(elem dom.Element, depth int) (any, error) {
	const op = "serde.ToValue"
	if depth > MaxValueDepth {
		return nil, errs.Capacity(op, errs.ErrDepthExceeded,
			fmt.Sprintf("nesting depth exceeds maximum of %d", MaxValueDepth))
	}

	switch elem.Type() {
	case format.TypeNull:
		return nil, nil
	case format.TypeBool:
		return elem.GetBool()
	case format.TypeString:
		return elem.GetString()
	case format.TypeInt64:
		return elem.GetInt64()
	case format.TypeUint64:
		return elem.GetUint64()
	case format.TypeDouble:
		return elem.GetDouble()
	case format.TypeArray:
		arr, err := elem.GetArray()
		if err != nil {
			return nil, err
		}
		out := make([]any, 0, arr.Len())
		for i, child := range arr.All() {
			v, err := toValue(child, depth+1)
			if err != nil {
				return nil, errs.WithPath(err, fmt.Sprintf("[%d]", i))
			}
			out = append(out, v)
		}

		return out, nil
	case format.TypeObject:
		obj, err := elem.GetObject()
		if err != nil {
			return nil, err
		}
		out := make(map[string]any, obj.Len())
		for key, child := range obj.All() {
			v, err := toValue(child, depth+1)
			if err != nil {
				return nil, errs.WithPath(err, key)
			}
			out[key] = v
		}

		return out, nil
	default:
		return nil, errs.Lifetime(op, errs.ErrDocumentClosed)
	}
}
