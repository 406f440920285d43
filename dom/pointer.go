package dom

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/jsimd/errs"
	"github.com/arloliu/jsimd/internal/engine"
)

// AtPointer resolves an RFC 6901 JSON pointer relative to e.
//
//	doc.Root().AtPointer("/items/0/name")
//
// The empty pointer resolves to e itself. Malformed pointers fail with errs.ErrParse (status
// InvalidJSONPointer), missing targets with errs.ErrNotFound and steps into scalars with errs.ErrType.
func (e Element) AtPointer(ptr string) (Element, error) {
	const op = "dom.AtPointer"
	if err := e.doc.check(op); err != nil {
		return Element{}, err
	}
	if ptr == "" {
		return e, nil
	}
	if ptr[0] != '/' {
		return Element{}, errs.FromStatus(op, int(engine.InvalidJSONPointer))
	}

	cur := e
	rest := ptr[1:]
	for {
		raw, next, more := strings.Cut(rest, "/")
		token, ok := unescapePointerToken(raw)
		if !ok {
			return Element{}, errs.FromStatus(op, int(engine.InvalidJSONPointer))
		}

		var err error
		switch cur.tag() {
		case engine.TagStartObject:
			cur, err = Object(cur).Get(token)
		case engine.TagStartArray:
			cur, err = pointerIndex(Array(cur), token)
		default:
			err = errs.Type(op, "object or array", typeOfTag(cur.tag()).String())
		}
		if err != nil {
			var path string
			if more {
				path = ptr[:len(ptr)-len(next)-1]
			} else {
				path = ptr
			}

			return Element{}, errs.WithPath(err, path)
		}

		if !more {
			return cur, nil
		}
		rest = next
	}
}

func pointerIndex(a Array, token string) (Element, error) {
	if token == "-" {
		err := errs.NotFound("dom.AtPointer", "index '-' refers past the last element")
		err.Code = int(engine.IndexOutOfBounds)

		return Element{}, err
	}
	if token == "" || (len(token) > 1 && token[0] == '0') {
		return Element{}, errs.FromStatus("dom.AtPointer", int(engine.InvalidJSONPointer))
	}
	for i := 0; i < len(token); i++ {
		if token[i] < '0' || token[i] > '9' {
			return Element{}, errs.FromStatus("dom.AtPointer", int(engine.InvalidJSONPointer))
		}
	}

	i, err := strconv.Atoi(token)
	if err != nil {
		err := errs.NotFound("dom.AtPointer", fmt.Sprintf("index %s out of range", token))
		err.Code = int(engine.IndexOutOfBounds)

		return Element{}, err
	}

	return a.At(i)
}

// unescapePointerToken decodes ~1 to '/' and ~0 to '~'.
func unescapePointerToken(s string) (string, bool) {
	if strings.IndexByte(s, '~') < 0 {
		return s, true
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '~' {
			sb.WriteByte(c)
			continue
		}
		if i+1 >= len(s) {
			return "", false
		}
		switch s[i+1] {
		case '0':
			sb.WriteByte('~')
		case '1':
			sb.WriteByte('/')
		default:
			return "", false
		}
		i++
	}

	return sb.String(), true
}
