// Package jsimd parses and generates JSON.
//
// Two parsers share one validating index over a padded input buffer:
//
//   - dom builds an immutable tape of the whole document up front. Elements are cheap handles
//     that can be read in any order and from many goroutines.
//   - ondemand validates the structure lazily while a forward-only cursor walks it. Values are
//     decoded only when the caller asks for them.
//
// The serde package converts between Go values and JSON on top of dom and the builder package.
// Every failure is an *errs.Error; inspect it with errors.Is against the errs sentinels.
//
// # Basic Usage
//
// Parsing a whole document:
//
//	doc, err := jsimd.Parse([]byte(`{"name":"Alice","tags":["a","b"]}`))
//	if err != nil {
//	    return err
//	}
//	defer doc.Close()
//
//	name, err := doc.Root().AtPointer("/name")
//
// Walking a document lazily:
//
//	p, _ := jsimd.NewLazyParser()
//	doc, _ := p.IterateString(`[1,2,3]`)
//	defer doc.Close()
//
//	arr, _ := doc.Root().GetArray()
//	for v, err := range arr.All() {
//	    n, err := v.GetInt64()
//	}
//
// Converting Go values:
//
//	s, err := jsimd.Marshal(person)
//	err = jsimd.Unmarshal([]byte(s), &person)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the dom, ondemand and serde
// packages. Parsers are reusable and not safe for concurrent use; keep one per goroutine and use
// the sub-packages directly for fine-grained control.
package jsimd

import (
	"github.com/arloliu/jsimd/dom"
	"github.com/arloliu/jsimd/ondemand"
	"github.com/arloliu/jsimd/serde"
)

// NewParser creates a dom parser.
//
// Available options:
//   - dom.WithMaxDepth(n)
//   - dom.WithMaxCapacity(n)
//   - dom.WithInitialCapacity(n)
func NewParser(opts ...dom.ParserOption) (*dom.Parser, error) {
	return dom.NewParser(opts...)
}

// NewLazyParser creates an ondemand parser. It accepts the same options as NewParser, from the
// ondemand package.
func NewLazyParser(opts ...ondemand.ParserOption) (*ondemand.Parser, error) {
	return ondemand.NewParser(opts...)
}

// Parse parses data with a fresh dom parser sized for it. The document keeps its parser alive
// until it is closed.
//
// Use a long-lived parser from NewParser when parsing many documents.
func Parse(data []byte) (*dom.Document, error) {
	p, err := dom.NewParser(dom.WithInitialCapacity(len(data)))
	if err != nil {
		return nil, err
	}

	return p.ParseBytes(data)
}

// ParseFile loads the file at path and parses it with a fresh dom parser. Files ending in .zst,
// .s2, .lz4 or .gz are decompressed first.
func ParseFile(path string) (*dom.Document, error) {
	p, err := dom.NewParser()
	if err != nil {
		return nil, err
	}

	return p.Load(path)
}

// Valid reports whether data is a single well-formed JSON value.
func Valid(data []byte) bool {
	doc, err := Parse(data)
	if err != nil {
		return false
	}
	_ = doc.Close()

	return true
}

// Marshal encodes v as JSON. See serde.Marshal.
func Marshal(v any) (string, error) {
	return serde.Marshal(v)
}

// Unmarshal parses data and decodes it into the value v points to. See serde.Unmarshal.
func Unmarshal(data []byte, v any, opts ...serde.DecodeOption) error {
	return serde.UnmarshalBytes(data, v, opts...)
}
