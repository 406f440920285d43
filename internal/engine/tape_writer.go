package engine

import (
	"encoding/binary"
	"math"
)

// BeginDocument empties t and writes the opening root word.
func (t *Tape) BeginDocument() {
	t.Reset()
	t.Words = append(t.Words, 0) // patched by FinishDocument
}

// FinishDocument writes the closing root word and links it with the opening one.
func (t *Tape) FinishDocument() {
	t.Words[0] = makeWord(TagRoot, uint64(len(t.Words)))
	t.Words = append(t.Words, makeWord(TagRoot, 0))
}

// Depth returns the number of open containers.
func (t *Tape) Depth() int {
	return len(t.scopes)
}

// StartContainer opens an array or an object.
func (t *Tape) StartContainer(array bool) {
	tag := TagStartObject
	if array {
		tag = TagStartArray
	}
	t.scopes = append(t.scopes, scope{open: len(t.Words), array: array, fresh: true})
	t.Words = append(t.Words, makeWord(tag, 0))
}

// AddChild counts one more element, or one more member, of the innermost open container.
func (t *Tape) AddChild() {
	t.scopes[len(t.scopes)-1].count++
}

// EndContainer closes the innermost open container and patches its start word with the word
// index after the container and the saturated child count.
func (t *Tape) EndContainer() {
	top := len(t.scopes) - 1
	sc := t.scopes[top]
	t.scopes = t.scopes[:top]

	openTag, closeTag := TagStartObject, TagEndObject
	if sc.array {
		openTag, closeTag = TagStartArray, TagEndArray
	}

	t.Words = append(t.Words, makeWord(closeTag, uint64(sc.open)))
	count := uint64(min(sc.count, MaxTapeCount))
	t.Words[sc.open] = makeWord(openTag, uint64(len(t.Words))|count<<32)
}

func (t *Tape) AppendNull() { t.Words = append(t.Words, makeWord(TagNull, 0)) }

func (t *Tape) AppendBool(v bool) {
	if v {
		t.Words = append(t.Words, makeWord(TagTrue, 0))
	} else {
		t.Words = append(t.Words, makeWord(TagFalse, 0))
	}
}

func (t *Tape) AppendInt64(v int64) { t.Words = append(t.Words, makeWord(TagInt64, 0), uint64(v)) }

func (t *Tape) AppendUint64(v uint64) { t.Words = append(t.Words, makeWord(TagUint64, 0), v) }

func (t *Tape) AppendDouble(v float64) {
	t.Words = append(t.Words, makeWord(TagDouble, 0), math.Float64bits(v))
}

// AppendString copies an unescaped string into the arena.
func (t *Tape) AppendString(s []byte) {
	off := len(t.Strings)
	t.Strings = binary.LittleEndian.AppendUint32(t.Strings, uint32(len(s)))
	t.Strings = append(t.Strings, s...)
	t.Strings = append(t.Strings, 0)
	t.Words = append(t.Words, makeWord(TagString, uint64(off)))
}
