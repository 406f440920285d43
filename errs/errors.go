// Package errs defines the closed set of failures reported by jsimd.
//
// Every fallible operation returns an *Error. Callers inspect it with errors.Is against the kind
// sentinels (ErrParse, ErrType, ...) or the reason sentinels (ErrDepthExceeded, ErrParserInUse, ...),
// and with errors.As to read the engine status code, the offset or the field path.
package errs

import (
	"errors"
	"strconv"
	"strings"

	"github.com/arloliu/jsimd/internal/engine"
)

// Kind is the category of a failure.
type Kind uint8

const (
	KindUnknown     Kind = iota // KindUnknown is the zero Kind.
	KindIO                      // KindIO means reading the input failed.
	KindCapacity                // KindCapacity means a size or depth limit was exceeded.
	KindParse                   // KindParse means the input is not valid JSON.
	KindType                    // KindType means the value has a different type than requested.
	KindNumberRange             // KindNumberRange means a number does not fit the requested type.
	KindOutOfOrder              // KindOutOfOrder means a lazy value was accessed after the cursor passed it.
	KindNotFound                // KindNotFound means a field, index or pointer target does not exist.
	KindLifetime                // KindLifetime means a parser, document or buffer was used outside its lifetime.
	KindConfig                  // KindConfig means an option value is invalid.
)

// Kind sentinels. Every *Error matches exactly one of them with errors.Is.
var (
	ErrIO          = errors.New("io error")
	ErrCapacity    = errors.New("capacity error")
	ErrParse       = errors.New("parse error")
	ErrType        = errors.New("type error")
	ErrNumberRange = errors.New("number range error")
	ErrOutOfOrder  = errors.New("out of order error")
	ErrNotFound    = errors.New("not found")
	ErrLifetime    = errors.New("lifetime error")
	ErrConfig      = errors.New("config error")
)

// Reason sentinels refine a kind.
var (
	ErrBufferTooSmall = errors.New("buffer too small") // capacity: the document exceeds the parser capacity or lacks padding
	ErrDepthExceeded  = errors.New("depth exceeded")   // capacity: nesting deeper than the configured maximum
	ErrParserInUse    = errors.New("parser in use")    // lifetime: the parser still backs an open document
	ErrDocumentClosed = errors.New("document closed")  // lifetime: the document was closed
	ErrBufferBorrowed = errors.New("buffer borrowed")  // lifetime: the buffer is borrowed by an open document
)

var kindSentinels = [...]error{
	KindUnknown:     nil,
	KindIO:          ErrIO,
	KindCapacity:    ErrCapacity,
	KindParse:       ErrParse,
	KindType:        ErrType,
	KindNumberRange: ErrNumberRange,
	KindOutOfOrder:  ErrOutOfOrder,
	KindNotFound:    ErrNotFound,
	KindLifetime:    ErrLifetime,
	KindConfig:      ErrConfig,
}

// Sentinel returns the kind sentinel, or nil for KindUnknown.
func (k Kind) Sentinel() error {
	if int(k) >= len(kindSentinels) {
		return nil
	}

	return kindSentinels[k]
}

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "IoError"
	case KindCapacity:
		return "CapacityError"
	case KindParse:
		return "ParseError"
	case KindType:
		return "TypeError"
	case KindNumberRange:
		return "NumberRangeError"
	case KindOutOfOrder:
		return "OutOfOrderError"
	case KindNotFound:
		return "NotFound"
	case KindLifetime:
		return "LifetimeError"
	case KindConfig:
		return "ConfigError"
	default:
		return "Unknown"
	}
}

// Error is the error type returned by every jsimd operation.
type Error struct {
	Kind   Kind
	Reason error  // optional reason sentinel
	Code   int    // engine status code, zero when the failure did not come from the engine
	Op     string // operation that failed, e.g. "dom.Parse"
	Offset int    // byte offset in the input, -1 when unknown
	Path   string // field path for structured decoding, e.g. "items[2].name"
	Msg    string
	Err    error // underlying cause
}

func newError(kind Kind, op string, msg string) *Error {
	return &Error{Kind: kind, Op: op, Offset: -1, Msg: msg}
}

func (e *Error) Error() string {
	var sb strings.Builder
	if e.Op != "" {
		sb.WriteString(e.Op)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Kind.String())
	if e.Path != "" {
		sb.WriteString(" at ")
		sb.WriteString(e.Path)
	}
	if e.Reason != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Reason.Error())
	}
	if e.Msg != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Msg)
	}
	if e.Offset >= 0 {
		sb.WriteString(" (offset ")
		sb.WriteString(strconv.Itoa(e.Offset))
		sb.WriteByte(')')
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}

	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the kind sentinel or the reason sentinel of e.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if target == e.Kind.Sentinel() {
		return true
	}

	return e.Reason != nil && target == e.Reason
}

// At sets the input offset of e and returns it.
func (e *Error) At(offset int) *Error {
	e.Offset = offset
	return e
}

// FromStatus converts an engine status code into an *Error. It returns nil for the success code.
//
// Codes the taxonomy does not know about map to KindParse and keep the raw code.
func FromStatus(op string, code int) error {
	st := engine.Status(code)
	if st == engine.Success {
		return nil
	}

	e := newError(KindParse, op, "")
	e.Code = code
	if st.Known() {
		e.Msg = st.String()
	} else {
		e.Msg = "unknown status code " + strconv.Itoa(code)
	}

	switch st {
	case engine.Capacity, engine.MemAlloc, engine.InsufficientPadding:
		e.Kind, e.Reason = KindCapacity, ErrBufferTooSmall
	case engine.DepthError:
		e.Kind, e.Reason = KindCapacity, ErrDepthExceeded
	case engine.IncorrectType, engine.ScalarDocumentAsValue:
		e.Kind = KindType
	case engine.NumberOutOfRange:
		e.Kind = KindNumberRange
	case engine.IndexOutOfBounds, engine.NoSuchField:
		e.Kind = KindNotFound
	case engine.IOError:
		e.Kind = KindIO
	case engine.ParserInUse:
		e.Kind, e.Reason = KindLifetime, ErrParserInUse
	case engine.OutOfOrderIteration:
		e.Kind = KindOutOfOrder
	}

	return e
}

// IO wraps an I/O failure.
func IO(op string, err error) *Error {
	e := newError(KindIO, op, "")
	e.Err = err

	return e
}

// Capacity reports an exceeded limit. reason is ErrBufferTooSmall, ErrDepthExceeded, or nil for
// a length outside a buffer's bounds.
func Capacity(op string, reason error, msg string) *Error {
	e := newError(KindCapacity, op, msg)
	e.Reason = reason

	return e
}

// Parse reports malformed input found outside the engine.
func Parse(op string, msg string) *Error {
	return newError(KindParse, op, msg)
}

// Config reports an invalid option value.
func Config(op string, msg string) *Error {
	return newError(KindConfig, op, msg)
}

// Type reports that a value of type got was read as want.
func Type(op string, want string, got string) *Error {
	e := newError(KindType, op, "expected "+want+", found "+got)
	e.Code = int(engine.IncorrectType)

	return e
}

// NumberRange reports a number that does not fit the requested representation.
func NumberRange(op string, msg string) *Error {
	e := newError(KindNumberRange, op, msg)
	e.Code = int(engine.NumberOutOfRange)

	return e
}

// OutOfOrder reports an access to a lazy value the cursor already passed.
func OutOfOrder(op string) *Error {
	e := newError(KindOutOfOrder, op, engine.OutOfOrderIteration.String())
	e.Code = int(engine.OutOfOrderIteration)

	return e
}

// NotFound reports a missing object field, array index or pointer target.
func NotFound(op string, msg string) *Error {
	return newError(KindNotFound, op, msg)
}

// Lifetime reports a lifetime violation. reason is one of ErrParserInUse, ErrDocumentClosed
// or ErrBufferBorrowed.
func Lifetime(op string, reason error) *Error {
	e := newError(KindLifetime, op, "")
	e.Reason = reason
	if reason == ErrParserInUse {
		e.Code = int(engine.ParserInUse)
	}

	return e
}

// WithPath returns err with segment prepended to its field path. Segments are field names or
// bracketed indexes such as "[3]". Errors that are not *Error are returned unchanged.
func WithPath(err error, segment string) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}

	cp := *e
	switch {
	case cp.Path == "":
		cp.Path = segment
	case cp.Path[0] == '[':
		cp.Path = segment + cp.Path
	default:
		cp.Path = segment + "." + cp.Path
	}

	return &cp
}

// KindOf returns the kind of err, or KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindUnknown
}

// CodeOf returns the engine status code carried by err, or zero.
func CodeOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return 0
}
