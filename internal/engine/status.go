package engine

// Status is the result code returned by every engine entry point.
//
// A non-success status means the outputs of the call are undefined and must not be read.
type Status int

const (
	Success                 Status = iota // Success means no error.
	Capacity                              // Capacity means the document is larger than the configured capacity.
	MemAlloc                              // MemAlloc means scratch memory could not be allocated.
	TapeError                             // TapeError means the JSON structure is invalid.
	DepthError                            // DepthError means the document nests deeper than the maximum depth.
	StringError                           // StringError means a string contains an invalid escape sequence.
	TAtomError                            // TAtomError means a literal starting with 't' is not "true".
	FAtomError                            // FAtomError means a literal starting with 'f' is not "false".
	NAtomError                            // NAtomError means a literal starting with 'n' is not "null".
	NumberError                           // NumberError means a number is malformed or overflows a double.
	BigIntError                           // BigIntError means an integer does not fit in 64 bits.
	UTF8Error                             // UTF8Error means the input is not valid UTF-8.
	Uninitialized                         // Uninitialized means the parser was used before allocation.
	Empty                                 // Empty means the input holds no JSON value.
	UnescapedChars                        // UnescapedChars means a string contains an unescaped control character.
	UnclosedString                        // UnclosedString means a string is missing its closing quote.
	UnsupportedArchitecture               // UnsupportedArchitecture means no kernel is available for this CPU.
	IncorrectType                         // IncorrectType means the value has a different type than requested.
	NumberOutOfRange                      // NumberOutOfRange means the number does not fit the requested type.
	IndexOutOfBounds                      // IndexOutOfBounds means an array index is past the end.
	NoSuchField                           // NoSuchField means the object has no such key.
	IOError                               // IOError means reading the input failed.
	InvalidJSONPointer                    // InvalidJSONPointer means a JSON pointer is malformed.
	InvalidURIFragment                    // InvalidURIFragment means a URI fragment is malformed.
	UnexpectedError                       // UnexpectedError means an internal invariant was violated.
	ParserInUse                           // ParserInUse means the parser still backs a live document.
	OutOfOrderIteration                   // OutOfOrderIteration means a value was accessed after the cursor passed it.
	InsufficientPadding                   // InsufficientPadding means the input lacks the required trailing padding.
	IncompleteArrayOrObject               // IncompleteArrayOrObject means a root container is never closed.
	ScalarDocumentAsValue                 // ScalarDocumentAsValue means a scalar document was used as a container.
	OutOfBounds                           // OutOfBounds means a position is past the end of the input.
	TrailingContent                       // TrailingContent means data follows the root value.

	numStatusCodes
)

var statusMessages = [numStatusCodes]string{
	Success:                 "no error",
	Capacity:                "this parser can't support a document that big",
	MemAlloc:                "error allocating memory, we're most likely out of memory",
	TapeError:               "the JSON document has an improper structure: missing or superfluous commas, braces, missing keys, etc.",
	DepthError:              "the JSON document was too deep (too many nested objects and arrays)",
	StringError:             "problem while parsing a string",
	TAtomError:              "problem while parsing an atom starting with the letter 't'",
	FAtomError:              "problem while parsing an atom starting with the letter 'f'",
	NAtomError:              "problem while parsing an atom starting with the letter 'n'",
	NumberError:             "problem while parsing a number",
	BigIntError:             "the integer is too large to fit in 64 bits",
	UTF8Error:               "the input is not valid UTF-8",
	Uninitialized:           "uninitialized",
	Empty:                   "empty: no JSON found",
	UnescapedChars:          "within strings, some characters must be escaped, we found unescaped characters",
	UnclosedString:          "a string is opened, but never closed",
	UnsupportedArchitecture: "no implementation is available for this CPU",
	IncorrectType:           "the JSON element does not have the requested type",
	NumberOutOfRange:        "the JSON number is too large or too small to fit within the requested type",
	IndexOutOfBounds:        "attempted to access an element of a JSON array that is beyond its length",
	NoSuchField:             "the JSON field referenced does not exist in this object",
	IOError:                 "error reading the file",
	InvalidJSONPointer:      "invalid JSON pointer syntax",
	InvalidURIFragment:      "invalid URI fragment syntax",
	UnexpectedError:         "unexpected error, consider reporting this problem as you may have found a bug",
	ParserInUse:             "cannot parse a new document while a document is still in use",
	OutOfOrderIteration:     "objects and arrays can only be iterated when they are first encountered",
	InsufficientPadding:     "the input does not carry the required trailing padding",
	IncompleteArrayOrObject: "the JSON document ended early in the middle of an object or array",
	ScalarDocumentAsValue:   "a JSON document made of a scalar cannot be used as an object or array",
	OutOfBounds:             "attempted to access location outside of document",
	TrailingContent:         "unexpected trailing content after the JSON value",
}

// String returns the human readable message for the status.
func (s Status) String() string {
	if s < 0 || s >= numStatusCodes {
		return "unknown status code"
	}

	return statusMessages[s]
}

// Known reports whether s is one of the defined status codes.
func (s Status) Known() bool {
	return s >= 0 && s < numStatusCodes
}
