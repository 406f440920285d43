// Package padded provides the input buffer consumed by the dom and ondemand parsers.
//
// The scanning engine reads whole 64-byte blocks and looks a few bytes ahead of every token, so it
// may touch memory past the logical end of the document. A Buffer guarantees that Padding bytes
// follow the document and that every byte in [Len, Cap) is zero, on every construction path and
// after every mutation.
//
// # Construction
//
//	buf := padded.FromString(`{"name":"Alice"}`)  // copies
//	buf := padded.FromOwned(data)                 // reuses data's spare capacity when it can
//	buf, err := padded.Load("events.json.zst")    // reads, decompresses by extension
//
// # Borrowing
//
// A parsed document reads the buffer in place. While one or more documents are open the buffer is
// borrowed, and Append, Truncate, SetString and Reset fail with errs.ErrBufferBorrowed instead of
// moving bytes out from under them. Closing the document releases the borrow.
package padded
