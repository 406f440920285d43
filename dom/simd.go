package dom

import (
	"math"

	"github.com/minio/simdjson-go"
)

// simdTape builds p.tape from data with simdjson-go.
//
// It reports false when the CPU lacks AVX2 and CLMUL, when simdjson-go rejects the document, or
// when a value could be typed differently by engine.BuildTape. The caller then rebuilds the tape
// with engine.BuildTape, which also produces the error status. data must already have passed
// engine.Index, so UTF-8 and control characters are known to be valid.
func (p *Parser) simdTape(data []byte) bool {
	if !simdjson.SupportedCPU() {
		return false
	}

	pj, err := simdjson.Parse(data, p.simd)
	if err != nil {
		return false
	}
	p.simd = pj

	iter := pj.Iter()
	if iter.Advance() != simdjson.TypeRoot {
		return false
	}

	var root simdjson.Iter
	typ, _, err := iter.Root(&root)
	if err != nil {
		return false
	}

	p.tape.BeginDocument()
	if !p.simdValue(&root, typ) {
		return false
	}
	// A second root is trailing content.
	if iter.Advance() != simdjson.TypeNone {
		return false
	}
	p.tape.FinishDocument()

	return true
}

func (p *Parser) simdValue(it *simdjson.Iter, typ simdjson.Type) bool {
	t := &p.tape

	switch typ {
	case simdjson.TypeNull:
		t.AppendNull()
	case simdjson.TypeBool:
		v, err := it.Bool()
		if err != nil {
			return false
		}
		t.AppendBool(v)
	case simdjson.TypeInt:
		v, err := it.Int()
		if err != nil {
			return false
		}
		t.AppendInt64(v)
	case simdjson.TypeUint:
		v, err := it.Uint()
		if err != nil {
			return false
		}
		t.AppendUint64(v)
	case simdjson.TypeFloat:
		v, err := it.Float()
		if err != nil || !tapeDouble(v) {
			return false
		}
		t.AppendDouble(v)
	case simdjson.TypeString:
		v, err := it.StringBytes()
		if err != nil {
			return false
		}
		t.AppendString(v)
	case simdjson.TypeArray:
		if t.Depth() >= p.cfg.MaxDepth {
			return false
		}
		arr, err := it.Array(nil)
		if err != nil {
			return false
		}

		t.StartContainer(true)
		elems := arr.Iter()
		for {
			et := elems.Advance()
			if et == simdjson.TypeNone {
				break
			}
			t.AddChild()
			if !p.simdValue(&elems, et) {
				return false
			}
		}
		t.EndContainer()
	case simdjson.TypeObject:
		if t.Depth() >= p.cfg.MaxDepth {
			return false
		}
		obj, err := it.Object(nil)
		if err != nil {
			return false
		}

		t.StartContainer(false)
		var elem simdjson.Iter
		for {
			name, et, err := obj.NextElementBytes(&elem)
			if err != nil {
				return false
			}
			if et == simdjson.TypeNone {
				break
			}
			t.AddChild()
			t.AppendString(name)
			if !p.simdValue(&elem, et) {
				return false
			}
		}
		t.EndContainer()
	default:
		return false
	}

	return true
}

// tapeDouble reports whether engine.BuildTape stores the number simdjson-go read as f as the
// same double. Integers too large for 64 bits come back from simdjson-go as doubles, but they
// are BigIntError on the tape.
func tapeDouble(f float64) bool {
	switch {
	case math.IsInf(f, 0) || math.IsNaN(f):
		return false
	case f == 0 && math.Signbit(f):
		return false
	case math.Abs(f) >= 1<<63 && f == math.Trunc(f):
		return false
	default:
		return true
	}
}
