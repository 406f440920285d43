package ondemand

import (
	"fmt"

	"github.com/arloliu/jsimd/errs"
	"github.com/arloliu/jsimd/internal/engine"
	"github.com/arloliu/jsimd/internal/options"
	"github.com/arloliu/jsimd/padded"
)

// Parser produces lazy Documents. The structural index it keeps is reused by later calls and only
// grows.
type Parser struct {
	cfg      options.ParserConfig
	capacity int
	idx      []uint32
	stack    []int
	live     *Document
}

// NewParser creates a Parser.
//
// Returns:
//   - *Parser: parser ready for Iterate
//   - error: configuration error if invalid options are provided
func NewParser(opts ...ParserOption) (*Parser, error) {
	cfg := options.NewParserConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Parser{cfg: *cfg}
	p.grow(cfg.InitialCapacity)

	return p, nil
}

// Capacity returns the document size, in bytes, the structural index is currently sized for.
func (p *Parser) Capacity() int {
	return p.capacity
}

// MaxDepth returns the configured maximum nesting depth.
func (p *Parser) MaxDepth() int {
	return p.cfg.MaxDepth
}

func (p *Parser) grow(n int) {
	if n <= p.capacity {
		return
	}

	if cap(p.idx) < n {
		p.idx = make([]uint32, 0, n)
	}
	p.capacity = n
}

// Iterate indexes the document in buf and returns a cursor positioned before its root value.
//
// Only the structural scan runs here: UTF-8, string termination and unescaped control characters
// are checked, the grammar is not. The Document borrows both p and buf until it is closed.
func (p *Parser) Iterate(buf *padded.Buffer) (*Document, error) {
	const op = "ondemand.Iterate"

	if p.live != nil {
		return nil, errs.Lifetime(op, errs.ErrParserInUse)
	}

	n := buf.Len()
	if uint64(n) > p.cfg.MaxCapacity {
		return nil, errs.Capacity(op, errs.ErrBufferTooSmall,
			fmt.Sprintf("document of %d bytes exceeds parser capacity %d", n, p.cfg.MaxCapacity))
	}
	p.grow(n)

	data := buf.Padded()
	idx, st := engine.Index(data, n, p.idx)
	p.idx = idx
	if st != engine.Success {
		return nil, errs.FromStatus(op, int(st))
	}

	buf.Borrow()
	doc := &Document{
		parser: p,
		buf:    buf,
		data:   data,
		idx:    idx,
		stack:  p.stack[:0],
	}
	p.live = doc

	return doc, nil
}

// IterateBytes copies data into a new padded buffer and iterates it.
func (p *Parser) IterateBytes(data []byte) (*Document, error) {
	return p.Iterate(padded.FromBytes(data))
}

// IterateString copies s into a new padded buffer and iterates it.
func (p *Parser) IterateString(s string) (*Document, error) {
	return p.Iterate(padded.FromString(s))
}
