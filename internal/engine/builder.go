package engine

import (
	"io"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/arloliu/jsimd/internal/pool"
)

const hexDigits = "0123456789abcdef"

// Builder is the engine stringifier. It appends JSON tokens into a pooled buffer.
//
// Builder does not place separators: callers emit commas and colons explicitly. Failures are
// sticky and reported by View: appending a non-finite double records NumberError, escaping a
// string that is not valid UTF-8 records UTF8Error.
//
// Note: a Builder is NOT safe for concurrent use.
type Builder struct {
	buf    *pool.ByteBuffer
	status Status
}

// NewBuilder creates a Builder whose buffer can hold at least capacity bytes.
func NewBuilder(capacity int) *Builder {
	bb := pool.GetBuilderBuffer()
	bb.Grow(capacity)

	return &Builder{buf: bb}
}

func (b *Builder) ensure() {
	if b.buf == nil {
		b.buf = pool.GetBuilderBuffer()
	}
}

// Release hands the buffer back to the pool. The Builder stays usable and allocates a fresh
// buffer on the next append.
func (b *Builder) Release() {
	pool.PutBuilderBuffer(b.buf)
	b.buf = nil
	b.status = Success
}

// Reset empties the builder and clears any recorded failure while retaining its capacity.
func (b *Builder) Reset() {
	if b.buf != nil {
		b.buf.Reset()
	}
	b.status = Success
}

// AppendBool appends true or false.
func (b *Builder) AppendBool(v bool) {
	b.ensure()
	b.buf.B = strconv.AppendBool(b.buf.B, v)
}

// AppendInt64 appends a signed integer.
func (b *Builder) AppendInt64(v int64) {
	b.ensure()
	b.buf.B = strconv.AppendInt(b.buf.B, v, 10)
}

// AppendUint64 appends an unsigned integer.
func (b *Builder) AppendUint64(v uint64) {
	b.ensure()
	b.buf.B = strconv.AppendUint(b.buf.B, v, 10)
}

// AppendDouble appends a double in its shortest round-trip form. Integral values keep a ".0"
// suffix so that they read back as doubles.
func (b *Builder) AppendDouble(v float64) {
	b.ensure()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		b.status = NumberError
		return
	}

	abs := math.Abs(v)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}

	start := len(b.buf.B)
	b.buf.B = strconv.AppendFloat(b.buf.B, v, format, -1, 64)
	out := b.buf.B[start:]

	if format == 'e' {
		// Shorten e-07 to e-7.
		n := len(out)
		if n >= 4 && out[n-4] == 'e' && out[n-3] == '-' && out[n-2] == '0' {
			out[n-2] = out[n-1]
			b.buf.B = b.buf.B[:len(b.buf.B)-1]
		}

		return
	}

	for _, c := range out {
		if c == '.' {
			return
		}
	}
	b.buf.B = append(b.buf.B, '.', '0')
}

// AppendNull appends the null literal.
func (b *Builder) AppendNull() {
	b.ensure()
	_, _ = b.buf.WriteString("null")
}

// AppendChar appends a single byte without escaping.
func (b *Builder) AppendChar(c byte) {
	b.ensure()
	_ = b.buf.WriteByte(c)
}

// AppendRaw appends p without escaping. The caller guarantees p is valid JSON.
func (b *Builder) AppendRaw(p []byte) {
	b.ensure()
	_, _ = b.buf.Write(p)
}

// AppendRawString appends s without escaping. The caller guarantees s is valid JSON.
func (b *Builder) AppendRawString(s string) {
	b.ensure()
	_, _ = b.buf.WriteString(s)
}

// EscapeAndAppendWithQuotes appends s as a quoted JSON string.
func (b *Builder) EscapeAndAppendWithQuotes(s string) {
	b.ensure()
	if !utf8.ValidString(s) {
		b.status = UTF8Error
	}

	b.buf.Grow(len(s) + 2)
	out := append(b.buf.B, '"')
	start := 0
	for i := 0; i < len(s); i++ {
		esc := escapeTable[s[i]]
		if esc == 0 {
			continue
		}

		out = append(out, s[start:i]...)
		if esc == 'u' {
			out = append(out, '\\', 'u', '0', '0', hexDigits[s[i]>>4], hexDigits[s[i]&0xF])
		} else {
			out = append(out, '\\', esc)
		}
		start = i + 1
	}
	out = append(out, s[start:]...)
	b.buf.B = append(out, '"')
}

// StartObject appends '{'.
func (b *Builder) StartObject() { b.AppendChar('{') }

// EndObject appends '}'.
func (b *Builder) EndObject() { b.AppendChar('}') }

// StartArray appends '['.
func (b *Builder) StartArray() { b.AppendChar('[') }

// EndArray appends ']'.
func (b *Builder) EndArray() { b.AppendChar(']') }

// AppendComma appends ','.
func (b *Builder) AppendComma() { b.AppendChar(',') }

// AppendColon appends ':'.
func (b *Builder) AppendColon() { b.AppendChar(':') }

// View returns the written bytes and the first failure recorded since the last Reset.
// The bytes alias the builder's buffer and are undefined under a non-success status.
func (b *Builder) View() ([]byte, Status) {
	if b.status != Success {
		return nil, b.status
	}
	if b.buf == nil {
		return nil, Success
	}

	return b.buf.B, Success
}

// WriteTo writes the bytes appended so far to w. It does not consult the status; callers check
// View first.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	if b.buf == nil {
		return 0, nil
	}

	return b.buf.WriteTo(w)
}

// Size returns the number of bytes written.
func (b *Builder) Size() int {
	if b.buf == nil {
		return 0
	}

	return b.buf.Len()
}

// ValidateUnicode reports whether the written bytes are valid UTF-8.
func (b *Builder) ValidateUnicode() bool {
	if b.buf == nil {
		return true
	}

	return utf8.Valid(b.buf.B)
}
