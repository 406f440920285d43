// Package engine is the JSON scanning engine behind the dom and ondemand front ends.
//
// The engine exposes a deliberately narrow, status-code driven surface:
//
//   - Index (stage 1) classifies the input in 64-byte blocks and records the offset of every
//     structural character ({}[]:,) and every scalar start. It validates UTF-8, string termination
//     and control characters, but not the grammar.
//   - BuildTape (stage 2) walks the structural index once and writes a flat tape of 64-bit words
//     plus a string arena, validating the grammar along the way.
//   - ParseNumber, ParseString and IsLiteral decode a single scalar at a byte offset.
//   - Builder is the stringifier used to produce JSON text.
//
// Every entry point returns a Status. Callers must check it before reading any output: on a
// non-success status the outputs are undefined.
//
// # Padding
//
// The scanner reads whole 64-byte blocks and the scalar decoders look ahead a few bytes past the
// current token. Inputs must therefore carry Padding readable bytes after the logical end, and those
// bytes must be zero so that they terminate numbers and literals.
//
// # Tape layout
//
// Each tape word stores a tag in its top byte and a 56-bit payload:
//
//	'r'  root       payload: index of the matching root word
//	'{'  object     payload: index after the matching '}' | count<<32
//	'['  array      payload: index after the matching ']' | count<<32
//	'}'  ']'        payload: index of the opening word
//	'"'  string     payload: offset in the string arena (uint32 length + bytes + NUL)
//	'l'  int64      next word holds the value
//	'u'  uint64     next word holds the value
//	'd'  double     next word holds the IEEE 754 bits
//	't' 'f' 'n'     no payload
package engine

const (
	// Padding is the number of readable zero bytes required after the logical end of the input.
	Padding = 64

	// MaxSize is the largest document the engine can index (offsets are stored as uint32).
	MaxSize = 0xFFFFFFFF

	// DefaultMaxDepth is the default maximum nesting depth of objects and arrays.
	DefaultMaxDepth = 1024

	blockSize = 64
)
