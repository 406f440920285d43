package engine

import (
	"encoding/binary"
	"math"
)

// Tape tags.
const (
	TagRoot        byte = 'r'
	TagStartObject byte = '{'
	TagEndObject   byte = '}'
	TagStartArray  byte = '['
	TagEndArray    byte = ']'
	TagString      byte = '"'
	TagInt64       byte = 'l'
	TagUint64      byte = 'u'
	TagDouble      byte = 'd'
	TagTrue        byte = 't'
	TagFalse       byte = 'f'
	TagNull        byte = 'n'
)

const (
	payloadMask = 1<<56 - 1
	// MaxTapeCount is the saturation value of the element count stored in container words.
	MaxTapeCount = 0xFFFFFF
)

// Tape is the stage 2 output: a flat sequence of tagged 64-bit words and a string arena.
//
// A Tape is scratch memory owned by a parser. Its slices only grow; Reset keeps their capacity.
type Tape struct {
	Words   []uint64
	Strings []byte

	scopes []scope
}

func makeWord(tag byte, payload uint64) uint64 {
	return uint64(tag)<<56 | payload&payloadMask
}

// Reset empties the tape while retaining its capacity.
func (t *Tape) Reset() {
	t.Words = t.Words[:0]
	t.Strings = t.Strings[:0]
	t.scopes = t.scopes[:0]
}

// Reserve makes sure the tape can hold the output of a document of n bytes without reallocating.
//
// Every value takes at most two words per input byte plus the two root words, and every string
// takes at most five arena bytes (length prefix and NUL) per two input bytes.
func (t *Tape) Reserve(n int) {
	if words := 2*n + 2; cap(t.Words) < words {
		t.Words = make([]uint64, 0, words)
	}
	if strs := n*5/2 + 8; cap(t.Strings) < strs {
		t.Strings = make([]byte, 0, strs)
	}
}

// Tag returns the tag of word i.
func (t *Tape) Tag(i int) byte {
	return byte(t.Words[i] >> 56)
}

// Payload returns the 56-bit payload of word i.
func (t *Tape) Payload(i int) uint64 {
	return t.Words[i] & payloadMask
}

// Int64 returns the value of the int64 entry at word i.
func (t *Tape) Int64(i int) int64 {
	return int64(t.Words[i+1])
}

// Uint64 returns the value of the uint64 entry at word i.
func (t *Tape) Uint64(i int) uint64 {
	return t.Words[i+1]
}

// Double returns the value of the double entry at word i.
func (t *Tape) Double(i int) float64 {
	return math.Float64frombits(t.Words[i+1])
}

// StringAt returns the bytes of the string entry at word i. The slice aliases the arena.
func (t *Tape) StringAt(i int) []byte {
	off := int(t.Payload(i))
	n := int(binary.LittleEndian.Uint32(t.Strings[off:]))

	return t.Strings[off+4 : off+4+n]
}

// Count returns the element count of the container at word i, saturated at MaxTapeCount.
func (t *Tape) Count(i int) int {
	return int((t.Payload(i) >> 32) & MaxTapeCount)
}

// After returns the index of the word following the value that starts at word i.
func (t *Tape) After(i int) int {
	switch t.Tag(i) {
	case TagStartObject, TagStartArray:
		return int(t.Payload(i) & math.MaxUint32)
	case TagInt64, TagUint64, TagDouble:
		return i + 2
	default:
		return i + 1
	}
}
