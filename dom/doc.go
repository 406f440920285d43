// Package dom parses a whole JSON document up front into an immutable tape and exposes it
// through lightweight Element handles.
//
// # Usage
//
//	parser, _ := dom.NewParser()
//	doc, err := parser.Parse(padded.FromString(`[0,1,2,3]`))
//	if err != nil {
//	    return err // *errs.Error carrying the engine status code
//	}
//	defer doc.Close()
//
//	arr, _ := doc.Root().GetArray()
//	for _, elem := range arr.All() {
//	    v, _ := elem.GetUint64()
//	    fmt.Println(v)
//	}
//
// # Lifetimes
//
// A Document is a view over its parser's scratch memory and over the input buffer. Both are
// guarded at runtime:
//
//   - a Parser backs at most one open Document; Parse fails with errs.ErrParserInUse until the
//     previous Document is closed.
//   - the input padded.Buffer is borrowed until Close, so it cannot be mutated underneath the
//     Document.
//   - after Close every Element, Array and Object accessor fails with errs.ErrDocumentClosed and
//     iterators yield nothing.
//
// Slices returned by GetStringBytes alias parser memory and are only valid until Close.
//
// # Errors
//
// Parse either returns a complete Document or a single error; no partial document is ever
// exposed. Accessors report errs.ErrType when the element has another type, errs.ErrNumberRange
// when a number does not fit the requested representation and errs.ErrNotFound for missing keys,
// indexes and pointer targets.
//
// Note: a Parser is NOT safe for concurrent use. Documents may be read concurrently.
package dom
