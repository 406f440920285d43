package engine

// Character classes used by the stage 1 scanner.
const (
	classOther      uint8 = 0x00
	classStructural uint8 = 0x01 // {}[]:,
	classWhitespace uint8 = 0x02 // space, tab, newline, carriage return
	classQuote      uint8 = 0x04 // "
	classBackslash  uint8 = 0x08 // \
	classControl    uint8 = 0x10 // 0x00-0x1F
	classNumberHead uint8 = 0x20 // - and 0-9
)

// charClass maps every byte to its class bits.
var charClass = buildCharClass()

func buildCharClass() [256]uint8 {
	var t [256]uint8
	for c := 0; c < 0x20; c++ {
		t[c] = classControl
	}
	for _, c := range []byte{'{', '}', '[', ']', ':', ','} {
		t[c] = classStructural
	}
	for _, c := range []byte{' ', '\t', '\n', '\r'} {
		t[c] = classWhitespace
	}
	t['"'] = classQuote
	t['\\'] = classBackslash
	t['-'] = classNumberHead
	for c := '0'; c <= '9'; c++ {
		t[c] = classNumberHead
	}

	return t
}

// isTerminator reports whether c may follow a scalar: whitespace, a structural character,
// or the zero byte that fills the padding.
func isTerminator(c byte) bool {
	return c == 0 || charClass[c]&(classStructural|classWhitespace) != 0
}

// escapeTable maps each byte to the replacement letter of its short escape, 'u' when it needs a
// \u00XX escape, or 0 when it can be copied as is.
var escapeTable = buildEscapeTable()

func buildEscapeTable() [256]byte {
	var t [256]byte
	for c := 0; c < 0x20; c++ {
		t[c] = 'u'
	}
	t['\b'] = 'b'
	t['\f'] = 'f'
	t['\n'] = 'n'
	t['\r'] = 'r'
	t['\t'] = 't'
	t['"'] = '"'
	t['\\'] = '\\'

	return t
}
