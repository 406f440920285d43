package ondemand

import (
	"fmt"
	"iter"

	"github.com/arloliu/jsimd/errs"
	"github.com/arloliu/jsimd/internal/engine"
)

// scopeState tracks how far the cursor has gone through one container.
type scopeState uint8

const (
	stateAtRoot   scopeState = iota // opened, no child handed out yet
	stateInValue                    // a child was handed out
	stateConsumed                   // closer consumed
)

type scope struct {
	open  int // structural position of the opening bracket
	depth int // stack depth inside the container
	child int // structural position of the current child value
	state scopeState
	empty bool
}

// valid reports whether the container is still open on the cursor stack.
func (sc *scope) valid(d *Document) bool {
	return sc != nil && len(d.stack) >= sc.depth && d.stack[sc.depth-1] == sc.open
}

// enter checks that iteration of sc can start. It reports false for an empty container.
func (d *Document) enter(op string, sc *scope) (bool, error) {
	if err := d.check(op); err != nil {
		return false, err
	}
	if sc == nil {
		return false, errs.Lifetime(op, errs.ErrDocumentClosed)
	}
	if sc.empty && sc.state == stateConsumed {
		return false, nil
	}
	if sc.state != stateAtRoot || !sc.valid(d) {
		return false, errs.OutOfOrder(op)
	}

	return true, nil
}

// Array is an array being iterated. It can be walked once.
type Array struct {
	doc *Document
	sc  *scope
}

// All returns an iterator over the array values in document order. A value the loop body does
// not read is skipped. After an error the iterator yields it once and stops.
//
// Calling All again, or after the cursor has left the array, yields errs.ErrOutOfOrder.
func (a Array) All() iter.Seq2[Value, error] {
	return func(yield func(Value, error) bool) {
		const op = "ondemand.Array.All"
		d := a.doc

		ok, err := d.enter(op, a.sc)
		if err != nil {
			yield(Value{}, err)
			return
		}
		if !ok {
			return
		}

		for {
			a.sc.state, a.sc.child = stateInValue, d.pos
			if !yield(Value{doc: d, pos: d.pos}, nil) {
				return
			}

			more, err := d.next(op, a.sc)
			if err != nil {
				yield(Value{}, err)
				return
			}
			if !more {
				return
			}
		}
	}
}

// Count walks the rest of the array, counting its values, and consumes it.
func (a Array) Count() (int, error) {
	n := 0
	for _, err := range a.All() {
		if err != nil {
			return 0, err
		}
		n++
	}

	return n, nil
}

// Object is an object being iterated. Its members can be walked once, in document order.
type Object struct {
	doc *Document
	sc  *scope
}

// Field is one object member. The key stays readable after the value has been consumed.
type Field struct {
	Value

	key int // byte offset of the opening quote of the name
}

// Key returns the unescaped member name.
func (f Field) Key() (string, error) {
	const op = "ondemand.Field.Key"
	if err := f.doc.check(op); err != nil {
		return "", err
	}

	b, _, st := engine.ParseString(f.doc.data, f.key, nil)
	if st != engine.Success {
		return "", statusError(op, st, f.key)
	}

	return string(b), nil
}

func (f Field) keyEquals(op string, key string) (bool, error) {
	d := f.doc
	var st engine.Status
	d.scratch, _, st = engine.ParseString(d.data, f.key, d.scratch[:0])
	if st != engine.Success {
		return false, d.fail(op, st, f.key)
	}

	return string(d.scratch) == key, nil
}

// All returns an iterator over the members in document order. Values the loop body does not read
// are skipped. After an error the iterator yields it once and stops.
func (o Object) All() iter.Seq2[Field, error] {
	return func(yield func(Field, error) bool) {
		const op = "ondemand.Object.All"
		d := o.doc

		ok, err := d.enter(op, o.sc)
		if err != nil {
			yield(Field{}, err)
			return
		}
		if !ok {
			return
		}

		for {
			f, err := d.field(op, o.sc)
			if err != nil {
				yield(Field{}, err)
				return
			}
			if !yield(f, nil) {
				return
			}

			more, err := d.next(op, o.sc)
			if err != nil {
				yield(Field{}, err)
				return
			}
			if !more {
				return
			}
		}
	}
}

// FindField moves forward to the next member named key and returns its value. Members before it
// are skipped and cannot be revisited. When no remaining member matches, the object is consumed
// and errs.ErrNotFound is returned.
func (o Object) FindField(key string) (Value, error) {
	const op = "ondemand.Object.FindField"
	d := o.doc
	sc := o.sc

	if err := d.check(op); err != nil {
		return Value{}, err
	}
	if sc == nil {
		return Value{}, errs.Lifetime(op, errs.ErrDocumentClosed)
	}

	switch {
	case sc.state == stateConsumed:
		return Value{}, notFound(op, key)
	case !sc.valid(d):
		return Value{}, errs.OutOfOrder(op)
	case sc.state == stateInValue:
		more, err := d.next(op, sc)
		if err != nil {
			return Value{}, err
		}
		if !more {
			return Value{}, notFound(op, key)
		}
	}

	for {
		f, err := d.field(op, sc)
		if err != nil {
			return Value{}, err
		}

		match, err := f.keyEquals(op, key)
		if err != nil {
			return Value{}, err
		}
		if match {
			return f.Value, nil
		}

		more, err := d.next(op, sc)
		if err != nil {
			return Value{}, err
		}
		if !more {
			return Value{}, notFound(op, key)
		}
	}
}

func notFound(op string, key string) error {
	err := errs.NotFound(op, fmt.Sprintf("no field %q", key))
	err.Code = int(engine.NoSuchField)

	return err
}
