package dom

import (
	"github.com/arloliu/jsimd/errs"
	"github.com/arloliu/jsimd/internal/engine"
	"github.com/arloliu/jsimd/padded"
)

// Document is the result of one successful Parse.
type Document struct {
	parser *Parser
	buf    *padded.Buffer
	tape   *engine.Tape
	closed bool
}

// Root returns the root element.
func (d *Document) Root() Element {
	return Element{doc: d, idx: 1}
}

// Close releases the parser and the input buffer. Close is idempotent.
func (d *Document) Close() error {
	if d.closed {
		return nil
	}

	d.closed = true
	d.buf.Release()
	if d.parser.live == d {
		d.parser.live = nil
	}

	return nil
}

// Closed reports whether Close was called.
func (d *Document) Closed() bool {
	return d.closed
}

// Buffer returns the input buffer the document was parsed from.
func (d *Document) Buffer() *padded.Buffer {
	return d.buf
}

func (d *Document) check(op string) error {
	if d == nil || d.closed {
		return errs.Lifetime(op, errs.ErrDocumentClosed)
	}

	return nil
}

func (d *Document) alive() bool {
	return d != nil && !d.closed
}
