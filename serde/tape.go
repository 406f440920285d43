package serde

import (
	"github.com/arloliu/jsimd/builder"
	"github.com/arloliu/jsimd/errs"
)

// AtomKind identifies one Tape entry.
type AtomKind uint8

const (
	AtomNull AtomKind = iota
	AtomBool
	AtomInt64
	AtomUint64
	AtomFloat64
	AtomString
	AtomKey
	AtomRaw // pre-encoded JSON text
	AtomStartObject
	AtomEndObject
	AtomStartArray
	AtomEndArray
)

// Atom is one entry of a Tape. Only the field matching Kind is meaningful.
type Atom struct {
	Kind  AtomKind
	Bool  bool
	Int   int64
	Uint  uint64
	Float float64
	Str   string
}

// Tape is the ordered sequence of atoms describing one JSON value. Separators are implied: the
// Tape holds no commas or colons.
type Tape struct {
	Atoms []Atom
}

// Reset empties the tape while retaining its capacity.
func (t *Tape) Reset() {
	t.Atoms = t.Atoms[:0]
}

// Len returns the number of atoms.
func (t *Tape) Len() int {
	return len(t.Atoms)
}

func (t *Tape) AppendNull()           { t.Atoms = append(t.Atoms, Atom{Kind: AtomNull}) }
func (t *Tape) AppendBool(v bool)     { t.Atoms = append(t.Atoms, Atom{Kind: AtomBool, Bool: v}) }
func (t *Tape) AppendInt64(v int64)   { t.Atoms = append(t.Atoms, Atom{Kind: AtomInt64, Int: v}) }
func (t *Tape) AppendUint64(v uint64) { t.Atoms = append(t.Atoms, Atom{Kind: AtomUint64, Uint: v}) }
func (t *Tape) AppendFloat64(v float64) {
	t.Atoms = append(t.Atoms, Atom{Kind: AtomFloat64, Float: v})
}
func (t *Tape) AppendString(v string) { t.Atoms = append(t.Atoms, Atom{Kind: AtomString, Str: v}) }
func (t *Tape) AppendKey(v string)    { t.Atoms = append(t.Atoms, Atom{Kind: AtomKey, Str: v}) }
func (t *Tape) AppendRaw(v string)    { t.Atoms = append(t.Atoms, Atom{Kind: AtomRaw, Str: v}) }
func (t *Tape) StartObject()          { t.Atoms = append(t.Atoms, Atom{Kind: AtomStartObject}) }
func (t *Tape) EndObject()            { t.Atoms = append(t.Atoms, Atom{Kind: AtomEndObject}) }
func (t *Tape) StartArray()           { t.Atoms = append(t.Atoms, Atom{Kind: AtomStartArray}) }
func (t *Tape) EndArray()             { t.Atoms = append(t.Atoms, Atom{Kind: AtomEndArray}) }

// Emit writes the tape into sb, placing commas and colons between atoms.
//
// It fails with errs.ErrParse when the atoms do not describe exactly one well-formed value, and
// with the builder's error when a float is not finite or a string is not valid UTF-8.
func (t *Tape) Emit(sb *builder.StringBuilder) error {
	const op = "serde.Tape.Emit"

	type frame struct {
		object bool
		n      int // values written so far; in objects keys count too
	}
	var stack []frame
	roots := 0

	for i, a := range t.Atoms {
		var top *frame
		if len(stack) > 0 {
			top = &stack[len(stack)-1]
		}

		switch a.Kind {
		case AtomEndObject, AtomEndArray:
			if top == nil || top.object != (a.Kind == AtomEndObject) || (top.object && top.n%2 == 1) {
				return malformed(op, i)
			}
			stack = stack[:len(stack)-1]
			if a.Kind == AtomEndObject {
				sb.EndObject()
			} else {
				sb.EndArray()
			}

			continue
		case AtomKey:
			if top == nil || !top.object || top.n%2 == 1 {
				return malformed(op, i)
			}
			if top.n > 0 {
				sb.AppendComma()
			}
			sb.AppendString(a.Str)
			sb.AppendColon()
			top.n++

			continue
		}

		// A value.
		switch {
		case top == nil:
			if roots > 0 {
				return malformed(op, i)
			}
			roots++
		case top.object:
			if top.n%2 == 0 {
				return malformed(op, i)
			}
			top.n++
		default:
			if top.n > 0 {
				sb.AppendComma()
			}
			top.n++
		}

		switch a.Kind {
		case AtomNull:
			sb.AppendNull()
		case AtomBool:
			sb.AppendBool(a.Bool)
		case AtomInt64:
			sb.AppendInt64(a.Int)
		case AtomUint64:
			sb.AppendUint64(a.Uint)
		case AtomFloat64:
			sb.AppendFloat64(a.Float)
		case AtomString:
			sb.AppendString(a.Str)
		case AtomRaw:
			sb.AppendRaw(a.Str)
		case AtomStartObject:
			sb.StartObject()
			stack = append(stack, frame{object: true})
		case AtomStartArray:
			sb.StartArray()
			stack = append(stack, frame{})
		default:
			return malformed(op, i)
		}
	}

	if len(stack) != 0 || roots != 1 {
		return malformed(op, len(t.Atoms))
	}

	_, err := sb.Bytes()

	return err
}

func malformed(op string, i int) error {
	return errs.Parse(op, "malformed tape").At(i)
}

// Stringify writes the tape into a new string.
func (t *Tape) Stringify() (string, error) {
	sb := builder.WithCapacity(len(t.Atoms) * 8)
	defer sb.Release()

	if err := t.Emit(sb); err != nil {
		return "", err
	}

	return sb.View()
}
