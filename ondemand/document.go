package ondemand

import (
	"errors"

	"github.com/arloliu/jsimd/errs"
	"github.com/arloliu/jsimd/internal/engine"
	"github.com/arloliu/jsimd/padded"
)

// Document is a forward-only cursor over one indexed input.
//
// The cursor is a position in the structural index plus a stack holding the index position of
// every open container. Positions only increase.
type Document struct {
	parser  *Parser
	buf     *padded.Buffer
	data    []byte
	idx     []uint32
	pos     int
	stack   []int
	scratch []byte
	err     error
	closed  bool
}

// Root returns the root value. It is only readable before the cursor has moved.
func (d *Document) Root() Value {
	return Value{doc: d, pos: 0}
}

// Close releases the parser and the input buffer. Close is idempotent.
func (d *Document) Close() error {
	if d.closed {
		return nil
	}

	d.closed = true
	d.buf.Release()
	if d.parser.live == d {
		d.parser.stack = d.stack[:0]
		d.parser.live = nil
	}

	return nil
}

// Closed reports whether Close was called.
func (d *Document) Closed() bool {
	return d.closed
}

// Buffer returns the input buffer the document iterates.
func (d *Document) Buffer() *padded.Buffer {
	return d.buf
}

// Err returns the structural error that stopped the cursor, if any.
func (d *Document) Err() error {
	return d.err
}

// AtEnd reports whether the whole document has been consumed.
func (d *Document) AtEnd() bool {
	return d.alive() && d.err == nil && len(d.stack) == 0 && d.pos == len(d.idx)
}

func (d *Document) alive() bool {
	return d != nil && !d.closed
}

func (d *Document) check(op string) error {
	if !d.alive() {
		return errs.Lifetime(op, errs.ErrDocumentClosed)
	}

	return d.err
}

// fail records a structural error. The document stays unusable afterwards.
func (d *Document) fail(op string, st engine.Status, off int) error {
	d.err = statusError(op, st, off)
	return d.err
}

func statusError(op string, st engine.Status, off int) error {
	err := errs.FromStatus(op, int(st))
	var e *errs.Error
	if errors.As(err, &e) {
		e.At(off)
	}

	return err
}

func (d *Document) end() int {
	return d.buf.Len()
}

// peek returns the structural character at the cursor and its byte offset.
func (d *Document) peek() (byte, int, bool) {
	if d.pos >= len(d.idx) {
		return 0, d.end(), false
	}
	off := int(d.idx[d.pos])

	return d.data[off], off, true
}

func closerOf(open byte) byte {
	if open == '[' {
		return ']'
	}

	return '}'
}

func (d *Document) top() byte {
	return d.data[d.idx[d.stack[len(d.stack)-1]]]
}

func (d *Document) push(op string) error {
	if len(d.stack) >= d.parser.cfg.MaxDepth {
		_, off, _ := d.peek()
		return d.fail(op, engine.DepthError, off)
	}
	d.stack = append(d.stack, d.pos)
	d.pos++

	return nil
}

// pop consumes the closer at the cursor, which must match the innermost open container.
func (d *Document) pop(op string) error {
	c, off, ok := d.peek()
	if !ok {
		return d.fail(op, engine.IncompleteArrayOrObject, off)
	}
	if c != closerOf(d.top()) {
		return d.fail(op, engine.TapeError, off)
	}
	d.stack = d.stack[:len(d.stack)-1]
	d.pos++

	return d.finishRoot(op)
}

// finishRoot rejects input left over once the root value is complete.
func (d *Document) finishRoot(op string) error {
	if len(d.stack) != 0 || d.pos == len(d.idx) {
		return nil
	}

	return d.fail(op, engine.TrailingContent, int(d.idx[d.pos]))
}

// skipValue consumes the whole value at the cursor.
func (d *Document) skipValue(op string) error {
	c, off, ok := d.peek()
	if !ok {
		return d.fail(op, engine.IncompleteArrayOrObject, off)
	}

	switch c {
	case '[', '{':
		depth := len(d.stack)
		if err := d.push(op); err != nil {
			return err
		}

		return d.unwind(op, depth)
	case ']', '}', ',', ':':
		return d.fail(op, engine.TapeError, off)
	default:
		d.pos++
		return d.finishRoot(op)
	}
}

// unwind moves the cursor forward until only depth containers remain open.
func (d *Document) unwind(op string, depth int) error {
	for len(d.stack) > depth {
		c, off, ok := d.peek()
		if !ok {
			return d.fail(op, engine.IncompleteArrayOrObject, off)
		}

		var err error
		switch c {
		case '[', '{':
			err = d.push(op)
		case ']', '}':
			err = d.pop(op)
		default:
			d.pos++
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// finishChild moves the cursor past the current child of sc, whatever the caller did with it.
func (d *Document) finishChild(op string, sc *scope) error {
	switch {
	case len(d.stack) > sc.depth:
		return d.unwind(op, sc.depth)
	case d.pos == sc.child:
		return d.skipValue(op)
	default:
		return nil
	}
}

// open enters the container at the cursor and returns its scope.
func (d *Document) open(op string, kind byte) (*scope, error) {
	if len(d.stack) == 0 {
		// A root container must be closed by the last structural character.
		last := d.data[d.idx[len(d.idx)-1]]
		if last != closerOf(kind) {
			return nil, d.fail(op, engine.IncompleteArrayOrObject, int(d.idx[len(d.idx)-1]))
		}
	}

	sc := &scope{open: d.pos}
	if err := d.push(op); err != nil {
		return nil, err
	}
	sc.depth = len(d.stack)

	c, off, ok := d.peek()
	if !ok {
		return nil, d.fail(op, engine.IncompleteArrayOrObject, off)
	}
	if c == closerOf(kind) {
		sc.state, sc.empty = stateConsumed, true
		if err := d.pop(op); err != nil {
			return nil, err
		}
	}

	return sc, nil
}

// next moves past the current child of sc. It reports false once sc is closed.
func (d *Document) next(op string, sc *scope) (bool, error) {
	if err := d.check(op); err != nil {
		return false, err
	}
	if !sc.valid(d) {
		return false, errs.OutOfOrder(op)
	}
	if err := d.finishChild(op, sc); err != nil {
		return false, err
	}

	c, off, ok := d.peek()
	if !ok {
		return false, d.fail(op, engine.IncompleteArrayOrObject, off)
	}

	closer := closerOf(d.top())
	switch c {
	case ',':
		d.pos++
		c, off, ok = d.peek()
		if !ok {
			return false, d.fail(op, engine.IncompleteArrayOrObject, off)
		}
		if c == closer {
			return false, d.fail(op, engine.TapeError, off)
		}

		return true, nil
	case closer:
		sc.state = stateConsumed
		return false, d.pop(op)
	default:
		return false, d.fail(op, engine.TapeError, off)
	}
}

// field reads the key and colon at the cursor and leaves it on the member value.
func (d *Document) field(op string, sc *scope) (Field, error) {
	c, keyOff, ok := d.peek()
	if !ok {
		return Field{}, d.fail(op, engine.IncompleteArrayOrObject, keyOff)
	}
	if c != '"' {
		return Field{}, d.fail(op, engine.TapeError, keyOff)
	}
	d.pos++

	c, off, ok := d.peek()
	if !ok {
		return Field{}, d.fail(op, engine.IncompleteArrayOrObject, off)
	}
	if c != ':' {
		return Field{}, d.fail(op, engine.TapeError, off)
	}
	d.pos++

	switch c, off, ok = d.peek(); {
	case !ok:
		return Field{}, d.fail(op, engine.IncompleteArrayOrObject, off)
	case c == ',' || c == ':' || c == ']' || c == '}':
		return Field{}, d.fail(op, engine.TapeError, off)
	}

	sc.state, sc.child = stateInValue, d.pos

	return Field{Value: Value{doc: d, pos: d.pos}, key: keyOff}, nil
}
