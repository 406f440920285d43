package engine

import (
	"math/bits"
	"unicode/utf8"
)

// Index scans buf[:n] and appends to idx the offset of every structural character and of the
// first byte of every scalar (strings, numbers and literals).
//
// buf must hold at least n+Padding bytes. The returned slice reuses idx's backing array when it
// is large enough, so callers can keep it as grow-only scratch across calls.
//
// Index validates UTF-8, string termination and unescaped control characters. It does not check
// the grammar: "{" or "[1,,]" index successfully.
func Index(buf []byte, n int, idx []uint32) ([]uint32, Status) {
	idx = idx[:0]
	if n < 0 || len(buf) < n+Padding {
		return idx, InsufficientPadding
	}
	if uint64(n) > MaxSize {
		return idx, Capacity
	}
	if !utf8.Valid(buf[:n]) {
		return idx, UTF8Error
	}

	var inString, escaped, inScalar bool
	for base := 0; base < n; base += blockSize {
		// The block may extend into the padding; only the first limit bytes are part of the input.
		block := buf[base : base+blockSize]
		limit := min(n-base, blockSize)

		var mask uint64
		for i := 0; i < limit; i++ {
			c := block[i]
			if inString {
				switch {
				case escaped:
					escaped = false
				case c == '\\':
					escaped = true
				case c == '"':
					inString = false
				case c < 0x20:
					return idx, UnescapedChars
				}

				continue
			}

			cls := charClass[c]
			switch {
			case cls&classQuote != 0:
				mask |= 1 << uint(i)
				inString = true
				inScalar = false
			case cls&classStructural != 0:
				mask |= 1 << uint(i)
				inScalar = false
			case cls&classWhitespace != 0:
				inScalar = false
			default:
				if !inScalar {
					mask |= 1 << uint(i)
					inScalar = true
				}
			}
		}

		for mask != 0 {
			idx = append(idx, uint32(base+bits.TrailingZeros64(mask)))
			mask &= mask - 1
		}
	}

	if inString {
		return idx, UnclosedString
	}
	if len(idx) == 0 {
		return idx, Empty
	}

	return idx, Success
}
