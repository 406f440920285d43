package padded

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/arloliu/jsimd/errs"
	"github.com/arloliu/jsimd/internal/engine"
)

// Padding is the number of zero bytes guaranteed after the logical end of a Buffer.
const Padding = engine.Padding

// Buffer is a byte buffer with zero-filled trailing padding.
//
// Note: mutations are not synchronized. Concurrent readers are fine; a writer needs
// exclusive access.
type Buffer struct {
	data    []byte // len(data) is the capacity; data[n:] is zero
	n       int
	borrows atomic.Int32
}

// New creates an empty Buffer able to hold capacity bytes before growing.
func New(capacity int) *Buffer {
	return &Buffer{data: make([]byte, max(capacity, 0)+Padding)}
}

// FromString copies s into a new Buffer.
func FromString(s string) *Buffer {
	data := make([]byte, len(s)+Padding)
	copy(data, s)

	return &Buffer{data: data, n: len(s)}
}

// FromBytes copies b into a new Buffer.
func FromBytes(b []byte) *Buffer {
	data := make([]byte, len(b)+Padding)
	copy(data, b)

	return &Buffer{data: data, n: len(b)}
}

// FromOwned converts b into a Buffer in place. The caller gives up b.
//
// b's backing array is reused when its spare capacity covers Padding, otherwise b is grown once.
// Either way the whole tail past len(b) is zeroed.
func FromOwned(b []byte) *Buffer {
	n := len(b)
	if cap(b)-n < Padding {
		b = append(b, make([]byte, Padding)...)
	}
	data := b[:cap(b)]
	clear(data[n:])

	return &Buffer{data: data, n: n}
}

// FromReader reads r to EOF into a new Buffer.
func FromReader(r io.Reader) (*Buffer, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.IO("padded.FromReader", err)
	}

	return FromOwned(b), nil
}

// Len returns the logical length.
func (b *Buffer) Len() int {
	return b.n
}

// Cap returns the total size of the allocation, padding included. Cap() >= Len()+Padding.
func (b *Buffer) Cap() int {
	return len(b.data)
}

// Bytes returns the document bytes. The slice aliases the buffer and is capped at Len, so
// appending to it never writes into the padding.
func (b *Buffer) Bytes() []byte {
	return b.data[:b.n:b.n]
}

// Padded returns the whole allocation: the document followed by at least Padding zero bytes.
// Callers must not write into it.
func (b *Buffer) Padded() []byte {
	return b.data
}

// String returns a copy of the document as a string.
func (b *Buffer) String() string {
	return string(b.data[:b.n])
}

// Borrow marks the buffer as read by an open document. Every Borrow must be paired with Release.
func (b *Buffer) Borrow() {
	b.borrows.Add(1)
}

// Release ends a borrow started by Borrow.
func (b *Buffer) Release() {
	for {
		cur := b.borrows.Load()
		if cur <= 0 || b.borrows.CompareAndSwap(cur, cur-1) {
			return
		}
	}
}

// Borrowed reports whether an open document reads the buffer.
func (b *Buffer) Borrowed() bool {
	return b.borrows.Load() > 0
}

func (b *Buffer) checkMutable(op string) error {
	if b.Borrowed() {
		return errs.Lifetime(op, errs.ErrBufferBorrowed)
	}

	return nil
}

// reserve makes room for n document bytes plus padding, keeping the first keep bytes.
func (b *Buffer) reserve(n int, keep int) {
	if n+Padding <= len(b.data) {
		return
	}

	data := make([]byte, max(n, 2*len(b.data))+Padding)
	copy(data, b.data[:keep])
	b.data = data
}

// Append appends p to the document.
func (b *Buffer) Append(p []byte) error {
	if err := b.checkMutable("padded.Append"); err != nil {
		return err
	}

	b.reserve(b.n+len(p), b.n)
	copy(b.data[b.n:], p)
	b.n += len(p)

	return nil
}

// AppendString appends s to the document.
func (b *Buffer) AppendString(s string) error {
	if err := b.checkMutable("padded.AppendString"); err != nil {
		return err
	}

	b.reserve(b.n+len(s), b.n)
	copy(b.data[b.n:], s)
	b.n += len(s)

	return nil
}

// Truncate shortens the document to n bytes and zeroes the released bytes. A length outside
// [0, Len()] fails with errs.ErrCapacity.
func (b *Buffer) Truncate(n int) error {
	if err := b.checkMutable("padded.Truncate"); err != nil {
		return err
	}
	if n < 0 || n > b.n {
		return errs.Capacity("padded.Truncate", nil, fmt.Sprintf("length %d out of range [0, %d]", n, b.n))
	}

	clear(b.data[n:b.n])
	b.n = n

	return nil
}

// SetString replaces the document with s.
func (b *Buffer) SetString(s string) error {
	if err := b.checkMutable("padded.SetString"); err != nil {
		return err
	}

	b.reserve(len(s), 0)
	copy(b.data, s)
	if len(s) < b.n {
		clear(b.data[len(s):b.n])
	}
	b.n = len(s)

	return nil
}

// Reset empties the document while retaining the allocation.
func (b *Buffer) Reset() error {
	if err := b.checkMutable("padded.Reset"); err != nil {
		return err
	}

	clear(b.data[:b.n])
	b.n = 0

	return nil
}
