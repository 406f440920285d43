package dom

import (
	"fmt"
	"iter"

	"github.com/arloliu/jsimd/errs"
	"github.com/arloliu/jsimd/internal/engine"
)

// Array is an array element. Iteration is restartable: every call to All walks the array
// again from the start.
type Array struct {
	doc *Document
	idx int
}

// Len returns the number of elements, or 0 once the document is closed.
func (a Array) Len() int {
	if !a.doc.alive() {
		return 0
	}

	t := a.doc.tape
	if n := t.Count(a.idx); n < engine.MaxTapeCount {
		return n
	}

	// The stored count saturates; count the long way.
	n := 0
	for j := a.idx + 1; t.Tag(j) != engine.TagEndArray; j = t.After(j) {
		n++
	}

	return n
}

// At returns the element at index i.
func (a Array) At(i int) (Element, error) {
	const op = "dom.Array.At"
	if err := a.doc.check(op); err != nil {
		return Element{}, err
	}

	if i >= 0 {
		t := a.doc.tape
		for k, j := 0, a.idx+1; t.Tag(j) != engine.TagEndArray; k, j = k+1, t.After(j) {
			if k == i {
				return Element{doc: a.doc, idx: j}, nil
			}
		}
	}

	err := errs.NotFound(op, fmt.Sprintf("index %d out of range [0, %d)", i, a.Len()))
	err.Code = int(engine.IndexOutOfBounds)

	return Element{}, err
}

// All returns an iterator over the index and element of every array entry in document order.
// It yields nothing once the document is closed.
func (a Array) All() iter.Seq2[int, Element] {
	return func(yield func(int, Element) bool) {
		if !a.doc.alive() {
			return
		}

		t := a.doc.tape
		for k, j := 0, a.idx+1; t.Tag(j) != engine.TagEndArray; k++ {
			if !yield(k, Element{doc: a.doc, idx: j}) || !a.doc.alive() {
				return
			}
			j = t.After(j)
		}
	}
}

// Elements returns the array entries as a slice.
func (a Array) Elements() ([]Element, error) {
	if err := a.doc.check("dom.Array.Elements"); err != nil {
		return nil, err
	}

	out := make([]Element, 0, a.Len())
	for _, e := range a.All() {
		out = append(out, e)
	}

	return out, nil
}

// Element returns the array as an Element.
func (a Array) Element() Element {
	return Element(a)
}

// Object is an object element. Members keep their document order, duplicates included.
type Object struct {
	doc *Document
	idx int
}

// Len returns the number of members, or 0 once the document is closed.
func (o Object) Len() int {
	if !o.doc.alive() {
		return 0
	}

	t := o.doc.tape
	if n := t.Count(o.idx); n < engine.MaxTapeCount {
		return n
	}

	n := 0
	for j := o.idx + 1; t.Tag(j) != engine.TagEndObject; j = t.After(j + 1) {
		n++
	}

	return n
}

// Get returns the value of the first member named key.
func (o Object) Get(key string) (Element, error) {
	const op = "dom.Object.Get"
	if err := o.doc.check(op); err != nil {
		return Element{}, err
	}

	t := o.doc.tape
	for j := o.idx + 1; t.Tag(j) != engine.TagEndObject; j = t.After(j + 1) {
		if string(t.StringAt(j)) == key {
			return Element{doc: o.doc, idx: j + 1}, nil
		}
	}

	err := errs.NotFound(op, fmt.Sprintf("no field %q", key))
	err.Code = int(engine.NoSuchField)

	return Element{}, err
}

// All returns an iterator over the key and value of every member in document order.
// It yields nothing once the document is closed.
func (o Object) All() iter.Seq2[string, Element] {
	return func(yield func(string, Element) bool) {
		for key, value := range o.Members() {
			if !yield(string(key), value) {
				return
			}
		}
	}
}

// Members is All with keys that alias parser memory instead of being copied. A key is only valid
// until the document is closed and must not be modified.
func (o Object) Members() iter.Seq2[[]byte, Element] {
	return func(yield func([]byte, Element) bool) {
		if !o.doc.alive() {
			return
		}

		t := o.doc.tape
		for j := o.idx + 1; t.Tag(j) != engine.TagEndObject; {
			if !yield(t.StringAt(j), Element{doc: o.doc, idx: j + 1}) || !o.doc.alive() {
				return
			}
			j = t.After(j + 1)
		}
	}
}

// Element returns the object as an Element.
func (o Object) Element() Element {
	return Element(o)
}
