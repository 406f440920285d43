// Package builder writes JSON text token by token.
//
// A StringBuilder places no separators on its own: callers emit commas and colons explicitly.
// Strings are escaped; doubles use the shortest form that reads back to the same value.
//
//	b := builder.New()
//	defer b.Release()
//	b.StartArray()
//	b.AppendBool(true)
//	b.AppendComma()
//	b.AppendInt64(42)
//	b.EndArray()
//	s, err := b.View() // [true,42]
package builder

import (
	"io"

	"github.com/arloliu/jsimd/errs"
	"github.com/arloliu/jsimd/internal/engine"
)

// DefaultCapacity is the initial buffer size of New.
const DefaultCapacity = 1024

// StringBuilder accumulates JSON text in a pooled buffer.
//
// Appending a NaN or infinite double, or a string that is not valid UTF-8, poisons the builder:
// View reports the failure until Clear is called.
//
// Note: a StringBuilder is NOT safe for concurrent use.
type StringBuilder struct {
	b *engine.Builder
}

// New creates a StringBuilder with DefaultCapacity.
func New() *StringBuilder {
	return WithCapacity(DefaultCapacity)
}

// WithCapacity creates a StringBuilder able to hold capacity bytes before growing.
func WithCapacity(capacity int) *StringBuilder {
	return &StringBuilder{b: engine.NewBuilder(capacity)}
}

// Clear empties the builder and resets its error state, keeping the buffer.
func (s *StringBuilder) Clear() {
	s.b.Reset()
}

// Release hands the buffer back to the shared pool. The builder remains usable; the next append
// takes a new buffer. Views returned earlier must not be used after Release.
func (s *StringBuilder) Release() {
	s.b.Release()
}

// AppendBool appends true or false.
func (s *StringBuilder) AppendBool(v bool) {
	s.b.AppendBool(v)
}

// AppendInt64 appends a signed integer.
func (s *StringBuilder) AppendInt64(v int64) {
	s.b.AppendInt64(v)
}

// AppendUint64 appends an unsigned integer.
func (s *StringBuilder) AppendUint64(v uint64) {
	s.b.AppendUint64(v)
}

// AppendFloat64 appends a double. Integral values keep a ".0" suffix.
func (s *StringBuilder) AppendFloat64(v float64) {
	s.b.AppendDouble(v)
}

// AppendNull appends null.
func (s *StringBuilder) AppendNull() {
	s.b.AppendNull()
}

// AppendChar appends c unescaped.
func (s *StringBuilder) AppendChar(c byte) {
	s.b.AppendChar(c)
}

// AppendString appends v escaped and quoted.
func (s *StringBuilder) AppendString(v string) {
	s.b.EscapeAndAppendWithQuotes(v)
}

// AppendRaw appends v verbatim. The caller is responsible for it being valid JSON.
func (s *StringBuilder) AppendRaw(v string) {
	s.b.AppendRawString(v)
}

// AppendRawBytes is AppendRaw for a byte slice.
func (s *StringBuilder) AppendRawBytes(v []byte) {
	s.b.AppendRaw(v)
}

func (s *StringBuilder) StartObject() { s.b.StartObject() }
func (s *StringBuilder) EndObject()   { s.b.EndObject() }
func (s *StringBuilder) StartArray()  { s.b.StartArray() }
func (s *StringBuilder) EndArray()    { s.b.EndArray() }
func (s *StringBuilder) AppendComma() { s.b.AppendComma() }
func (s *StringBuilder) AppendColon() { s.b.AppendColon() }

// View returns the text written so far, or the first recorded failure.
func (s *StringBuilder) View() (string, error) {
	out, err := s.Bytes()
	if err != nil {
		return "", err
	}

	return string(out), nil
}

// Bytes is View without the copy. The slice is only valid until the next append, Clear or Release.
func (s *StringBuilder) Bytes() ([]byte, error) {
	out, st := s.b.View()
	if st != engine.Success {
		return nil, errs.FromStatus("builder.View", int(st))
	}

	return out, nil
}

// WriteTo writes the text written so far to w. A builder holding a failure writes nothing and
// returns that failure.
func (s *StringBuilder) WriteTo(w io.Writer) (int64, error) {
	if _, st := s.b.View(); st != engine.Success {
		return 0, errs.FromStatus("builder.WriteTo", int(st))
	}

	return s.b.WriteTo(w)
}

// ValidateUnicode reports whether the text written so far is valid UTF-8.
func (s *StringBuilder) ValidateUnicode() bool {
	return s.b.ValidateUnicode()
}

// Size returns the number of bytes written so far.
func (s *StringBuilder) Size() int {
	return s.b.Size()
}

// String returns the text written so far, or "" when the builder holds a failure.
func (s *StringBuilder) String() string {
	v, err := s.View()
	if err != nil {
		return ""
	}

	return v
}
