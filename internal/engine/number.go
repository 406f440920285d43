package engine

import (
	"math"
	"strconv"
	"unsafe"
)

// NumberKind identifies how a decoded number is stored.
type NumberKind uint8

const (
	NumberInt64  NumberKind = iota + 1 // NumberInt64 is an integer that fits in int64.
	NumberUint64                       // NumberUint64 is an integer above math.MaxInt64.
	NumberDouble                       // NumberDouble has a fraction or an exponent.
)

// Number is a decoded JSON number. Only the field matching Kind is set.
type Number struct {
	Kind  NumberKind
	Int   int64
	Uint  uint64
	Float float64
}

func byteAt(buf []byte, i int) byte {
	if i < len(buf) {
		return buf[i]
	}

	return 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// ParseNumber decodes the number starting at buf[pos] and returns it together with the offset
// just past it.
//
// Integers are stored as int64 whenever they fit, as uint64 when they only fit unsigned, and fail
// with BigIntError otherwise. Numbers with a fraction or exponent are doubles; NumberError reports
// malformed input, a missing terminator or a double overflow.
func ParseNumber(buf []byte, pos int) (Number, int, Status) {
	i := pos
	neg := byteAt(buf, i) == '-'
	if neg {
		i++
	}

	start := i
	switch c := byteAt(buf, i); {
	case c == '0':
		i++
		if isDigit(byteAt(buf, i)) {
			return Number{}, i, NumberError
		}
	case isDigit(c):
		for isDigit(byteAt(buf, i)) {
			i++
		}
	default:
		return Number{}, i, NumberError
	}
	intEnd := i

	isFloat := false
	if byteAt(buf, i) == '.' {
		i++
		if !isDigit(byteAt(buf, i)) {
			return Number{}, i, NumberError
		}
		for isDigit(byteAt(buf, i)) {
			i++
		}
		isFloat = true
	}
	if c := byteAt(buf, i); c == 'e' || c == 'E' {
		i++
		if c := byteAt(buf, i); c == '+' || c == '-' {
			i++
		}
		if !isDigit(byteAt(buf, i)) {
			return Number{}, i, NumberError
		}
		for isDigit(byteAt(buf, i)) {
			i++
		}
		isFloat = true
	}

	if !isTerminator(byteAt(buf, i)) {
		return Number{}, i, NumberError
	}

	if isFloat {
		// The string does not escape ParseFloat: the error value is discarded.
		f, err := strconv.ParseFloat(unsafe.String(&buf[pos], i-pos), 64)
		if err != nil {
			return Number{}, i, NumberError
		}

		return Number{Kind: NumberDouble, Float: f}, i, Success
	}

	var u uint64
	for _, c := range buf[start:intEnd] {
		d := uint64(c - '0')
		if u > (math.MaxUint64-d)/10 {
			return Number{}, i, BigIntError
		}
		u = u*10 + d
	}

	if neg {
		if u > 1<<63 {
			return Number{}, i, BigIntError
		}

		return Number{Kind: NumberInt64, Int: -int64(u)}, i, Success
	}
	if u <= math.MaxInt64 {
		return Number{Kind: NumberInt64, Int: int64(u)}, i, Success
	}

	return Number{Kind: NumberUint64, Uint: u}, i, Success
}

// IsLiteral reports whether buf holds the literal lit at pos followed by a terminator.
func IsLiteral(buf []byte, pos int, lit string) bool {
	end := pos + len(lit)
	if end > len(buf) || string(buf[pos:end]) != lit {
		return false
	}

	return isTerminator(byteAt(buf, end))
}
