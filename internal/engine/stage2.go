package engine

import "encoding/binary"

type scope struct {
	open  int
	count uint32
	array bool
	fresh bool
}

func (s *scope) closer() byte {
	if s.array {
		return ']'
	}

	return '}'
}

type tapeBuilder struct {
	buf      []byte
	idx      []uint32
	next     int
	tape     *Tape
	maxDepth int
}

// BuildTape validates the grammar of the indexed document and writes its tape into t.
//
// buf and idx must come from a successful Index call. Containers nested deeper than maxDepth
// fail with DepthError; maxDepth <= 0 selects DefaultMaxDepth.
func BuildTape(buf []byte, idx []uint32, t *Tape, maxDepth int) Status {
	t.Reset()
	if len(idx) == 0 {
		return Empty
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	b := tapeBuilder{buf: buf, idx: idx, tape: t, maxDepth: maxDepth}

	return b.build()
}

func (b *tapeBuilder) advance() (int, bool) {
	if b.next >= len(b.idx) {
		return 0, false
	}
	pos := int(b.idx[b.next])
	b.next++

	return pos, true
}

func (b *tapeBuilder) build() Status {
	t := b.tape
	t.BeginDocument()

	pos, _ := b.advance()
	if st := b.value(pos); st != Success {
		return st
	}

	for len(t.scopes) > 0 {
		pos, ok := b.advance()
		if !ok {
			return TapeError
		}

		c := b.buf[pos]
		sc := &t.scopes[len(t.scopes)-1]
		if c == sc.closer() {
			b.close()
			continue
		}

		if sc.fresh {
			sc.fresh = false
		} else {
			if c != ',' {
				return TapeError
			}
			if pos, ok = b.advance(); !ok {
				return TapeError
			}
			c = b.buf[pos]
		}
		t.AddChild()

		if !sc.array {
			if c != '"' {
				return TapeError
			}
			if st := b.string(pos); st != Success {
				return st
			}
			if pos, ok = b.advance(); !ok || b.buf[pos] != ':' {
				return TapeError
			}
			if pos, ok = b.advance(); !ok {
				return TapeError
			}
		}

		// value may push a scope and invalidate sc.
		if st := b.value(pos); st != Success {
			return st
		}
	}

	if b.next != len(b.idx) {
		return TrailingContent
	}

	t.FinishDocument()

	return Success
}

func (b *tapeBuilder) value(pos int) Status {
	t := b.tape
	switch c := b.buf[pos]; c {
	case '{', '[':
		if t.Depth() >= b.maxDepth {
			return DepthError
		}
		t.StartContainer(c == '[')
	case '"':
		return b.string(pos)
	case 't':
		if !IsLiteral(b.buf, pos, "true") {
			return TAtomError
		}
		t.AppendBool(true)
	case 'f':
		if !IsLiteral(b.buf, pos, "false") {
			return FAtomError
		}
		t.AppendBool(false)
	case 'n':
		if !IsLiteral(b.buf, pos, "null") {
			return NAtomError
		}
		t.AppendNull()
	default:
		if charClass[c]&classNumberHead == 0 {
			return TapeError
		}
		num, _, st := ParseNumber(b.buf, pos)
		if st != Success {
			return st
		}
		switch num.Kind {
		case NumberInt64:
			t.AppendInt64(num.Int)
		case NumberUint64:
			t.AppendUint64(num.Uint)
		default:
			t.AppendDouble(num.Float)
		}
	}

	return Success
}

func (b *tapeBuilder) string(pos int) Status {
	t := b.tape
	off := len(t.Strings)
	t.Strings = append(t.Strings, 0, 0, 0, 0)

	var st Status
	t.Strings, _, st = ParseString(b.buf, pos, t.Strings)
	if st != Success {
		return st
	}

	binary.LittleEndian.PutUint32(t.Strings[off:], uint32(len(t.Strings)-off-4))
	t.Strings = append(t.Strings, 0)
	t.Words = append(t.Words, makeWord(TagString, uint64(off)))

	return Success
}

func (b *tapeBuilder) close() {
	b.tape.EndContainer()
}
