// Package ondemand provides lazy, forward-only access to a JSON document.
//
// Iterate only runs the structural scan over the input; every value is validated and decoded at
// the moment it is read. The cursor never moves backwards: once a value has been read or skipped,
// reading it again fails with errs.ErrOutOfOrder. Structural errors surface at the first access
// that reaches them and are sticky for the rest of the Document.
//
//	p, _ := ondemand.NewParser()
//	doc, err := p.IterateString(`{"ids":[1,2,3]}`)
//	...
//	defer doc.Close()
//	obj, _ := doc.Root().GetObject()
//	ids, _ := obj.FindField("ids")
//	arr, _ := ids.GetArray()
//	for v, err := range arr.All() {
//		...
//	}
package ondemand
