package engine

import "unicode/utf8"

func hexValue(c byte) (rune, bool) {
	switch {
	case c >= '0' && c <= '9':
		return rune(c - '0'), true
	case c >= 'a' && c <= 'f':
		return rune(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return rune(c-'A') + 10, true
	default:
		return 0, false
	}
}

func readHex4(buf []byte, i int) (rune, bool) {
	if i+4 > len(buf) {
		return 0, false
	}

	var r rune
	for _, c := range buf[i : i+4] {
		v, ok := hexValue(c)
		if !ok {
			return 0, false
		}
		r = r<<4 | v
	}

	return r, true
}

// ParseString unescapes the string whose opening quote is at buf[pos], appends its content to
// dst and returns the grown dst together with the offset just past the closing quote.
func ParseString(buf []byte, pos int, dst []byte) ([]byte, int, Status) {
	i := pos + 1
	for {
		// Copy the longest run that needs no attention.
		j := i
		for j < len(buf) {
			c := buf[j]
			if c == '"' || c == '\\' || c < 0x20 {
				break
			}
			j++
		}
		dst = append(dst, buf[i:j]...)
		if j >= len(buf) {
			return dst, j, UnclosedString
		}

		switch c := buf[j]; {
		case c == '"':
			return dst, j + 1, Success
		case c < 0x20:
			return dst, j, UnescapedChars
		}

		// Escape sequence.
		e := byteAt(buf, j+1)
		switch e {
		case '"', '\\', '/':
			dst = append(dst, e)
			i = j + 2
		case 'b':
			dst = append(dst, '\b')
			i = j + 2
		case 'f':
			dst = append(dst, '\f')
			i = j + 2
		case 'n':
			dst = append(dst, '\n')
			i = j + 2
		case 'r':
			dst = append(dst, '\r')
			i = j + 2
		case 't':
			dst = append(dst, '\t')
			i = j + 2
		case 'u':
			r, ok := readHex4(buf, j+2)
			if !ok {
				return dst, j, StringError
			}
			i = j + 6
			switch {
			case r >= 0xD800 && r <= 0xDBFF:
				if byteAt(buf, i) != '\\' || byteAt(buf, i+1) != 'u' {
					return dst, j, StringError
				}
				lo, ok := readHex4(buf, i+2)
				if !ok || lo < 0xDC00 || lo > 0xDFFF {
					return dst, j, StringError
				}
				r = (r-0xD800)<<10 + (lo - 0xDC00) + 0x10000
				i += 6
			case r >= 0xDC00 && r <= 0xDFFF:
				return dst, j, StringError
			}
			dst = utf8.AppendRune(dst, r)
		default:
			return dst, j, StringError
		}
	}
}
