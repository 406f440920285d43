package dom

import (
	"fmt"

	"github.com/minio/simdjson-go"

	"github.com/arloliu/jsimd/errs"
	"github.com/arloliu/jsimd/internal/engine"
	"github.com/arloliu/jsimd/internal/options"
	"github.com/arloliu/jsimd/padded"
)

// Parser parses whole documents. Its scratch memory grows to fit the largest document parsed so
// far and is reused by later parses.
type Parser struct {
	cfg      options.ParserConfig
	capacity int
	idx      []uint32
	tape     engine.Tape
	live     *Document
	simd     *simdjson.ParsedJson
}

// NewParser creates a Parser.
//
// Returns:
//   - *Parser: parser ready for Parse
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

// Capacity returns the document size, in bytes, the scratch memory is currently sized for.
// It never decreases.
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

	p.tape.Reserve(n)
	if cap(p.idx) < n {
		p.idx = make([]uint32, 0, n)
	}
	p.capacity = n
}

// Parse parses the document in buf.
//
// On success the returned Document borrows both p and buf until it is closed. On failure no
// Document is created and the error carries the engine status code.
func (p *Parser) Parse(buf *padded.Buffer) (*Document, error) {
	const op = "dom.Parse"

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

	if !p.cfg.SIMD || !p.simdTape(buf.Bytes()) {
		if st := engine.BuildTape(data, p.idx, &p.tape, p.cfg.MaxDepth); st != engine.Success {
			return nil, errs.FromStatus(op, int(st))
		}
	}

	buf.Borrow()
	doc := &Document{parser: p, buf: buf, tape: &p.tape}
	p.live = doc

	return doc, nil
}

// ParseBytes copies data into a new padded buffer and parses it.
func (p *Parser) ParseBytes(data []byte) (*Document, error) {
	return p.Parse(padded.FromBytes(data))
}

// ParseString copies s into a new padded buffer and parses it.
func (p *Parser) ParseString(s string) (*Document, error) {
	return p.Parse(padded.FromString(s))
}

// Load reads the file at path, decompressing it by extension, and parses it.
func (p *Parser) Load(path string) (*Document, error) {
	if p.live != nil {
		return nil, errs.Lifetime("dom.Load", errs.ErrParserInUse)
	}

	buf, err := padded.Load(path)
	if err != nil {
		return nil, err
	}

	return p.Parse(buf)
}
