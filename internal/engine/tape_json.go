package engine

import "unsafe"

type jsonFrame struct {
	object bool
	n      int
}

// WriteJSON writes the value starting at word i as minified JSON.
//
// The tape must come from a successful BuildTape; strings are re-escaped and doubles keep
// their ".0" suffix.
func (t *Tape) WriteJSON(b *Builder, i int) {
	end := t.After(i)
	var stack []jsonFrame

	for i < end {
		tag := t.Tag(i)
		if tag == TagEndObject || tag == TagEndArray {
			b.AppendChar(tag)
			stack = stack[:len(stack)-1]
			i++

			continue
		}

		if top := len(stack) - 1; top >= 0 {
			f := &stack[top]
			switch {
			case f.object && f.n%2 == 1:
				b.AppendColon()
			case f.n > 0:
				b.AppendComma()
			}
			f.n++
		}

		switch tag {
		case TagStartObject, TagStartArray:
			b.AppendChar(tag)
			stack = append(stack, jsonFrame{object: tag == TagStartObject})
			i++

			continue
		case TagString:
			s := t.StringAt(i)
			b.EscapeAndAppendWithQuotes(unsafe.String(unsafe.SliceData(s), len(s)))
		case TagInt64:
			b.AppendInt64(t.Int64(i))
		case TagUint64:
			b.AppendUint64(t.Uint64(i))
		case TagDouble:
			b.AppendDouble(t.Double(i))
		case TagTrue:
			b.AppendBool(true)
		case TagFalse:
			b.AppendBool(false)
		case TagNull:
			b.AppendNull()
		}
		i = t.After(i)
	}
}
